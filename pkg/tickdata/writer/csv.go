// Package writer persists OHLCV bars. The CSV implementation writes through
// a temporary file and renames on Finalize, so a failed run never leaves a
// torn file at the output path.
package writer

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rxtech-lab/tickforge/internal/timefmt"
	"github.com/rxtech-lab/tickforge/internal/types"
	"github.com/rxtech-lab/tickforge/pkg/errors"
)

var csvHeader = []string{"timestamp", "open", "high", "low", "close", "volume"}

// CSVWriter implements BarWriter for delimited text output.
type CSVWriter struct {
	outputPath string
	tmpFile    *os.File
	csvWriter  *csv.Writer
}

// NewCSVWriter creates a CSVWriter targeting outputPath.
func NewCSVWriter(outputPath string) BarWriter {
	return &CSVWriter{
		outputPath: outputPath,
	}
}

// Initialize creates the output directory and a temporary file next to the
// final path, then writes the header row.
func (w *CSVWriter) Initialize() error {
	dir := filepath.Dir(w.outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to create output directory %s", dir)
	}

	// The temp file lives in the target directory so the final rename
	// stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, ".tickforge-*.csv")
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to create temporary output file", err)
	}

	w.tmpFile = tmpFile
	w.csvWriter = csv.NewWriter(tmpFile)

	if err := w.csvWriter.Write(csvHeader); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to write csv header", err)
	}

	return nil
}

// Write appends one bar to the output.
func (w *CSVWriter) Write(bar types.Bar) error {
	if w.csvWriter == nil {
		return errors.New(errors.ErrCodeWriterClosed, "writer not initialized")
	}

	record := []string{
		timefmt.FormatTimestamp(bar.Timestamp),
		formatPrice(bar.Open),
		formatPrice(bar.High),
		formatPrice(bar.Low),
		formatPrice(bar.Close),
		strconv.FormatInt(bar.Volume, 10),
	}

	if err := w.csvWriter.Write(record); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to write bar", err)
	}

	return nil
}

// Finalize flushes the buffered rows and moves the temporary file to the
// final output path.
func (w *CSVWriter) Finalize() (string, error) {
	if w.tmpFile == nil {
		return "", errors.New(errors.ErrCodeWriterClosed, "writer not initialized or already finalized")
	}

	w.csvWriter.Flush()

	if err := w.csvWriter.Error(); err != nil {
		return "", errors.Wrap(errors.ErrCodeFinalizeFailed, "failed to flush csv output", err)
	}

	tmpPath := w.tmpFile.Name()

	if err := w.tmpFile.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeFinalizeFailed, "failed to close temporary output file", err)
	}

	if err := os.Rename(tmpPath, w.outputPath); err != nil {
		return "", errors.Wrapf(errors.ErrCodeFinalizeFailed, err, "failed to move output to %s", w.outputPath)
	}

	w.tmpFile = nil
	w.csvWriter = nil

	return w.outputPath, nil
}

// Close discards the temporary file if Finalize has not run.
func (w *CSVWriter) Close() error {
	if w.tmpFile == nil {
		return nil
	}

	tmpPath := w.tmpFile.Name()
	w.tmpFile.Close()
	w.tmpFile = nil
	w.csvWriter = nil

	return os.Remove(tmpPath)
}

// GetOutputPath returns the configured output file path.
func (w *CSVWriter) GetOutputPath() string {
	return w.outputPath
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
