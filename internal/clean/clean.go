// Package clean turns raw, unordered tick rows into validated ticks. It
// rejects malformed rows, rows whose raw timestamp string appears more than
// once in the input, rows whose price falls outside the IQR fences of the
// full price distribution, and rows with a non-positive size.
package clean

import (
	"strconv"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/rxtech-lab/tickforge/internal/logger"
	"github.com/rxtech-lab/tickforge/internal/timefmt"
	"github.com/rxtech-lab/tickforge/internal/types"
)

// Session restricts accepted ticks to a wall-clock range within each day,
// inclusive on both ends. Offsets are measured from midnight in the tick's
// own location. Applying a session is always an explicit choice; the default
// pass keeps out-of-session ticks.
type Session struct {
	Open  time.Duration
	Close time.Duration
}

// Contains reports whether t's time of day falls inside the session.
func (s Session) Contains(t time.Time) bool {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := t.Sub(midnight)

	return offset >= s.Open && offset <= s.Close
}

// Option configures a cleaning pass.
type Option func(*config)

type config struct {
	session optional.Option[Session]
	log     *logger.Logger
}

// WithSession enables the trading-session filter for the pass.
func WithSession(session Session) Option {
	return func(c *config) {
		c.session = optional.Some(session)
	}
}

// WithLogger routes pass diagnostics (drop counts, computed fences) to log.
func WithLogger(log *logger.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

// Clean validates raw rows and returns the surviving ticks in input order,
// together with the IQR fences the pass used. Rejected rows are dropped
// silently; an empty input yields an empty result, never an error. No shared
// state survives the call, so re-running on the same input reproduces the
// same output.
func Clean(raw []types.RawTick, opts ...Option) ([]types.Tick, types.Bounds) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	bounds := ComputeBounds(raw)

	// Duplicate detection runs on the exact raw timestamp string across the
	// whole input, not on the parsed time. Any string seen more than once
	// disqualifies every row carrying it.
	timestampCount := make(map[string]int, len(raw))
	for _, row := range raw {
		timestampCount[row.Timestamp]++
	}

	ticks := make([]types.Tick, 0, len(raw))

	for _, row := range raw {
		tick, ok := validate(row, bounds, timestampCount, cfg)
		if !ok {
			continue
		}

		ticks = append(ticks, tick)
	}

	if cfg.log != nil {
		cfg.log.Debug("cleaning pass finished",
			zap.Int("raw_rows", len(raw)),
			zap.Int("valid_ticks", len(ticks)),
			zap.Int("dropped_rows", len(raw)-len(ticks)),
			zap.Float64("lower_bound", bounds.Lower),
			zap.Float64("upper_bound", bounds.Upper),
		)
	}

	return ticks, bounds
}

func validate(row types.RawTick, bounds types.Bounds, timestampCount map[string]int, cfg config) (types.Tick, bool) {
	timestampStr := strings.TrimSpace(row.Timestamp)
	priceStr := strings.TrimSpace(row.Price)
	sizeStr := strings.TrimSpace(row.Size)

	if timestampStr == "" || priceStr == "" || sizeStr == "" {
		return types.Tick{}, false
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return types.Tick{}, false
	}

	size, err := strconv.ParseInt(sizeStr, 10, 64)
	if err != nil {
		return types.Tick{}, false
	}

	timestamp, err := timefmt.ParseTimestamp(timestampStr)
	if err != nil {
		return types.Tick{}, false
	}

	if timestampCount[row.Timestamp] > 1 {
		return types.Tick{}, false
	}

	if !bounds.Contains(price) {
		return types.Tick{}, false
	}

	if size <= 0 {
		return types.Tick{}, false
	}

	if cfg.session.IsSome() && !cfg.session.Unwrap().Contains(timestamp) {
		return types.Tick{}, false
	}

	return types.Tick{Timestamp: timestamp, Price: price, Size: size}, true
}
