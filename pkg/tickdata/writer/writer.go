package writer

import (
	"github.com/rxtech-lab/tickforge/internal/types"
)

// BarWriter defines the interface for writing OHLCV bars to a destination.
type BarWriter interface {
	// Initialize sets up the writer, potentially creating files.
	Initialize() error
	// Write persists a single bar.
	Write(bar types.Bar) error
	// Finalize completes the writing process and publishes the output
	// atomically from the caller's perspective.
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer. Closing before
	// Finalize discards everything written so far.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}
