package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type TickTestSuite struct {
	suite.Suite
}

func TestTickSuite(t *testing.T) {
	suite.Run(t, new(TickTestSuite))
}

func (suite *TickTestSuite) TestTickStruct() {
	now := time.Now()
	tick := Tick{
		Timestamp: now,
		Price:     152.5,
		Size:      100,
	}

	suite.Equal(now, tick.Timestamp)
	suite.Equal(152.5, tick.Price)
	suite.Equal(int64(100), tick.Size)
}

func (suite *TickTestSuite) TestBoundsContains() {
	bounds := Bounds{
		Q1:    100.0,
		Q3:    110.0,
		IQR:   10.0,
		Lower: 85.0,
		Upper: 125.0,
	}

	tests := []struct {
		name     string
		price    float64
		expected bool
	}{
		{"inside", 100.0, true},
		{"at lower fence", 85.0, true},
		{"at upper fence", 125.0, true},
		{"below lower fence", 84.99, false},
		{"above upper fence", 125.01, false},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(tc.expected, bounds.Contains(tc.price))
		})
	}
}

func (suite *TickTestSuite) TestZeroBoundsRejectEverythingButZero() {
	// Zero fences are the fallback when no price in the input parses.
	bounds := Bounds{}

	suite.True(bounds.Contains(0))
	suite.False(bounds.Contains(0.01))
	suite.False(bounds.Contains(-0.01))
}
