package clean

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/tickforge/internal/types"
)

type CleanTestSuite struct {
	suite.Suite
}

func TestCleanSuite(t *testing.T) {
	suite.Run(t, new(CleanTestSuite))
}

func row(ts, price, size string) types.RawTick {
	return types.RawTick{Timestamp: ts, Price: price, Size: size}
}

func (suite *CleanTestSuite) TestComputeBoundsDeterministic() {
	raw := []types.RawTick{
		row("2024-01-01 09:30:00.000", "1", "1"),
		row("2024-01-01 09:30:01.000", "2", "1"),
		row("2024-01-01 09:30:02.000", "3", "1"),
		row("2024-01-01 09:30:03.000", "4", "1"),
		row("2024-01-01 09:30:04.000", "5", "1"),
		row("2024-01-01 09:30:05.000", "6", "1"),
		row("2024-01-01 09:30:06.000", "7", "1"),
		row("2024-01-01 09:30:07.000", "8", "1"),
	}

	bounds := ComputeBounds(raw)

	// n=8: Q1 = sorted[2] = 3, Q3 = sorted[6] = 7.
	suite.Equal(3.0, bounds.Q1)
	suite.Equal(7.0, bounds.Q3)
	suite.Equal(4.0, bounds.IQR)
	suite.Equal(-3.0, bounds.Lower)
	suite.Equal(13.0, bounds.Upper)

	// Reproducible across runs on the same input.
	suite.Equal(bounds, ComputeBounds(raw))
}

func (suite *CleanTestSuite) TestComputeBoundsUsesPricesFromOtherwiseInvalidRows() {
	// The second row has an unparseable timestamp and a bad size, but its
	// price still contributes to the distribution.
	withJunkRow := []types.RawTick{
		row("2024-01-01 09:30:00.000", "10", "1"),
		row("not a timestamp", "1000", "x"),
	}

	bounds := ComputeBounds(withJunkRow)
	suite.Equal(10.0, bounds.Q1)
	suite.Equal(1000.0, bounds.Q3)
}

func (suite *CleanTestSuite) TestComputeBoundsNoParseablePrices() {
	raw := []types.RawTick{
		row("2024-01-01 09:30:00.000", "", "1"),
		row("2024-01-01 09:30:01.000", "abc", "1"),
	}

	suite.Equal(types.Bounds{}, ComputeBounds(raw))
}

func (suite *CleanTestSuite) TestCleanRemovesDuplicateTimestamps() {
	// Scenario from the requirements: exact duplicates disqualify every
	// copy, even when the rows are otherwise well formed.
	raw := []types.RawTick{
		row("2024-01-01 09:30:00.000", "100", "10"),
		row("2024-01-01 09:30:00.000", "100", "10"),
		row("2024-01-01 09:30:05.000", "101", "5"),
	}

	ticks, _ := Clean(raw)

	suite.Len(ticks, 1)
	suite.Equal(101.0, ticks[0].Price)
	suite.Equal(int64(5), ticks[0].Size)
}

func (suite *CleanTestSuite) TestCleanRemovesAllCopiesOfTriplicates() {
	raw := []types.RawTick{
		row("2024-01-01 09:30:00.000", "100", "10"),
		row("2024-01-01 09:30:00.000", "101", "20"),
		row("2024-01-01 09:30:00.000", "102", "30"),
		row("2024-01-01 09:30:01.000", "100", "1"),
	}

	ticks, _ := Clean(raw)

	suite.Len(ticks, 1)
	suite.Equal("2024-01-01 09:30:01.000", ticks[0].Timestamp.Format("2006-01-02 15:04:05.000"))
}

func (suite *CleanTestSuite) TestCleanDropsMalformedRows() {
	raw := []types.RawTick{
		row("2024-01-01 09:30:00.000", "100", "10"), // valid
		row("", "100", "10"),                        // empty timestamp
		row("2024-01-01 09:30:01.000", "", "10"),    // empty price
		row("2024-01-01 09:30:02.000", "100", " "),  // blank size
		row("2024-01-01 09:30:03.000", "abc", "10"), // unparseable price
		row("2024-01-01 09:30:04.000", "100", "x"),  // unparseable size
		row("2024-01-01 09:30:05.000", "100", "1.5"), // fractional size
		row("not a timestamp", "100", "10"),          // unparseable timestamp
		row("2024-01-01 09:30:06.000", "100", "0"),   // zero size
		row("2024-01-01 09:30:07.000", "100", "-5"),  // negative size
	}

	ticks, _ := Clean(raw)

	suite.Len(ticks, 1)
	suite.Equal(100.0, ticks[0].Price)
}

func (suite *CleanTestSuite) TestCleanRejectsOutliers() {
	raw := make([]types.RawTick, 0, 11)
	base := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		raw = append(raw, row(base.Add(time.Duration(i)*time.Second).Format("2006-01-02 15:04:05.000"), "100", "1"))
	}
	raw = append(raw, row(base.Add(time.Minute).Format("2006-01-02 15:04:05.000"), "1000", "1"))

	ticks, bounds := Clean(raw)

	// Ten identical prices collapse the IQR to zero, so the fences pin to
	// 100 exactly and the 1000 print is rejected.
	suite.Equal(100.0, bounds.Lower)
	suite.Equal(100.0, bounds.Upper)
	suite.Len(ticks, 10)

	for _, tick := range ticks {
		suite.Equal(100.0, tick.Price)
	}
}

func (suite *CleanTestSuite) TestCleanEmptyInput() {
	ticks, bounds := Clean(nil)

	suite.Empty(ticks)
	suite.Equal(types.Bounds{}, bounds)
}

func (suite *CleanTestSuite) TestCleanSessionFilter() {
	raw := []types.RawTick{
		row("2024-01-01 08:00:00.000", "100", "10"),
		row("2024-01-01 10:00:00.000", "101", "5"),
		row("2024-01-01 16:00:00.000", "100", "7"),
		row("2024-01-01 17:30:00.000", "101", "3"),
	}

	session := Session{Open: 9*time.Hour + 30*time.Minute, Close: 16 * time.Hour}

	filtered, _ := Clean(raw, WithSession(session))
	suite.Len(filtered, 2)
	suite.Equal(101.0, filtered[0].Price)
	suite.Equal(100.0, filtered[1].Price)

	// Without the option the session filter must not apply.
	unfiltered, _ := Clean(raw)
	suite.Len(unfiltered, 4)
}

func (suite *CleanTestSuite) TestCleanIdempotent() {
	raw := []types.RawTick{
		row("2024-01-01 09:30:00.000", "100", "10"),
		row("2024-01-01 09:30:00.000", "100", "10"),
		row("2024-01-01 09:30:03.000", "102", "4"),
		row("2024-01-01 09:30:07.000", "98", "6"),
		row("bad", "97", "2"),
	}

	first, firstBounds := Clean(raw)
	second, secondBounds := Clean(raw)

	suite.Equal(first, second)
	suite.Equal(firstBounds, secondBounds)
}
