package types

import "time"

// Bar is one OHLCV candle covering the half-open time bucket
// [Timestamp, Timestamp+width). A bar exists only for buckets that
// contained at least one tick.
type Bar struct {
	Timestamp time.Time `csv:"timestamp"`
	Open      float64   `csv:"open"`
	High      float64   `csv:"high"`
	Low       float64   `csv:"low"`
	Close     float64   `csv:"close"`
	Volume    int64     `csv:"volume"`
}
