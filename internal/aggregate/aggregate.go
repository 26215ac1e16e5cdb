// Package aggregate folds time-sorted ticks into fixed-width OHLCV bars.
package aggregate

import (
	"time"

	"github.com/rxtech-lab/tickforge/internal/types"
	"github.com/rxtech-lab/tickforge/pkg/errors"
)

// Aggregate partitions ticks into consecutive half-open buckets
// [start, start+width) and emits one bar per non-empty bucket, in bucket
// order. Buckets are anchored at the first tick's timestamp and advance by
// a fixed stride; they are not aligned to wall-clock boundaries. A tick
// exactly on a bucket's end boundary opens the next bucket. Empty buckets
// between sparse ticks produce no bar, so the output is not gap-filled.
//
// Ticks must already be sorted by timestamp; ties keep input order, making
// the first tick of a bucket its open and the last its close.
func Aggregate(ticks []types.Tick, width time.Duration) ([]types.Bar, error) {
	if width <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidInterval, "bucket width must be positive, got %s", width)
	}

	if len(ticks) == 0 {
		return nil, nil
	}

	bars := make([]types.Bar, 0)
	bucketStart := ticks[0].Timestamp
	i := 0

	for i < len(ticks) {
		// Stride over buckets that hold no ticks.
		for !ticks[i].Timestamp.Before(bucketStart.Add(width)) {
			bucketStart = bucketStart.Add(width)
		}

		bucketEnd := bucketStart.Add(width)

		bar := types.Bar{
			Timestamp: bucketStart,
			Open:      ticks[i].Price,
			High:      ticks[i].Price,
			Low:       ticks[i].Price,
			Close:     ticks[i].Price,
			Volume:    0,
		}

		for i < len(ticks) && ticks[i].Timestamp.Before(bucketEnd) {
			price := ticks[i].Price
			if price > bar.High {
				bar.High = price
			}

			if price < bar.Low {
				bar.Low = price
			}

			bar.Close = price
			bar.Volume += ticks[i].Size
			i++
		}

		bars = append(bars, bar)
		bucketStart = bucketEnd
	}

	return bars, nil
}
