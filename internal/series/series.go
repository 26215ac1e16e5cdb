// Package series provides an immutable, time-sorted view over validated
// ticks and resolves closed time windows to index ranges with binary search.
package series

import (
	"sort"
	"time"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/tickforge/internal/timefmt"
	"github.com/rxtech-lab/tickforge/internal/types"
	"github.com/rxtech-lab/tickforge/pkg/errors"
)

// Window is a closed [Start, End] range over tick timestamps. Both
// boundaries are inclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

// Series wraps ticks sorted by timestamp. Sorting happens once at
// construction; every Resolve afterwards costs two binary searches.
type Series struct {
	ticks []types.Tick
}

// New copies ticks and sorts the copy by timestamp. The sort is stable, so
// ticks sharing a timestamp keep their original relative order.
func New(ticks []types.Tick) *Series {
	sorted := make([]types.Tick, len(ticks))
	copy(sorted, ticks)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	return &Series{ticks: sorted}
}

// Len returns the number of ticks in the series.
func (s *Series) Len() int {
	return len(s.ticks)
}

// Empty reports whether the series holds no ticks.
func (s *Series) Empty() bool {
	return len(s.ticks) == 0
}

// Ticks returns the sorted ticks. Callers must not mutate the slice.
func (s *Series) Ticks() []types.Tick {
	return s.ticks
}

// Last returns the latest timestamp in the series.
func (s *Series) Last() (time.Time, error) {
	if s.Empty() {
		return time.Time{}, errors.NewNoDataError("no data available, cannot determine a valid time range")
	}

	return s.ticks[len(s.ticks)-1].Timestamp, nil
}

// ValidateWindow checks a window against the series: Start must be strictly
// before End, and End must not pass the last tick.
func (s *Series) ValidateWindow(w Window) error {
	last, err := s.Last()
	if err != nil {
		return err
	}

	if !w.Start.Before(w.End) {
		return errors.Newf(errors.ErrCodeInvalidWindow,
			"window start %s must be before end %s",
			timefmt.FormatTimestamp(w.Start), timefmt.FormatTimestamp(w.End))
	}

	if w.End.After(last) {
		return errors.Newf(errors.ErrCodeInvalidWindow,
			"window end %s is past the last tick at %s",
			timefmt.FormatTimestamp(w.End), timefmt.FormatTimestamp(last))
	}

	return nil
}

// Resolve returns the ticks whose timestamps fall inside the closed window.
// A None window resolves to the whole series. The result aliases the
// series' backing array; it is a view, not a copy. An empty series or a
// window covering no ticks yields a NoDataError.
func (s *Series) Resolve(w optional.Option[Window]) ([]types.Tick, error) {
	if s.Empty() {
		return nil, errors.NewNoDataError("series is empty")
	}

	if w.IsNone() {
		return s.ticks, nil
	}

	window := w.Unwrap()

	// lo is the leftmost tick at or after Start, hi the leftmost tick
	// strictly after End. [lo, hi) therefore covers timestamps in
	// [Start, End] inclusive on both sides.
	lo := sort.Search(len(s.ticks), func(i int) bool {
		return !s.ticks[i].Timestamp.Before(window.Start)
	})
	hi := sort.Search(len(s.ticks), func(i int) bool {
		return s.ticks[i].Timestamp.After(window.End)
	})

	if lo >= hi {
		return nil, errors.NewNoDataErrorf("no ticks between %s and %s",
			timefmt.FormatTimestamp(window.Start), timefmt.FormatTimestamp(window.End))
	}

	return s.ticks[lo:hi], nil
}
