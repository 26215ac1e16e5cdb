package types

import "time"

// RawTick is a single row exactly as read from an input file, before any
// validation. Any field may be empty or malformed.
type RawTick struct {
	Timestamp string
	Price     string
	Size      string
}

// Tick is a validated trade record. Timestamps carry millisecond precision,
// Size is strictly positive, and Price lies within the IQR fences computed
// for the run. Ticks are immutable once the cleaning pass has produced them.
type Tick struct {
	Timestamp time.Time
	Price     float64
	Size      int64
}

// Bounds holds the interquartile-range price fences derived once per
// cleaning pass from every raw price that parses as a number.
type Bounds struct {
	Q1    float64
	Q3    float64
	IQR   float64
	Lower float64
	Upper float64
}

// Contains reports whether price lies within the closed interval
// [Lower, Upper].
func (b Bounds) Contains(price float64) bool {
	return price >= b.Lower && price <= b.Upper
}
