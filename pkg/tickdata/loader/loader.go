// Package loader harvests raw tick rows from a directory of CSV files.
package loader

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/rxtech-lab/tickforge/internal/logger"
	"github.com/rxtech-lab/tickforge/internal/types"
	"github.com/rxtech-lab/tickforge/pkg/errors"
)

// OnLoadProgress reports per-file ingestion progress.
type OnLoadProgress = func(current float64, total float64, message string)

// Loader reads every CSV file in a directory with a bounded pool of worker
// goroutines. Row order across files is not preserved; downstream stages
// derive ordering from timestamps, never from file layout.
type Loader struct {
	log     *logger.Logger
	workers int
}

// NewLoader creates a loader with one worker per CPU.
func NewLoader(log *logger.Logger) *Loader {
	return &Loader{
		log:     log,
		workers: runtime.NumCPU(),
	}
}

// Load reads every *.csv file under dir and merges their rows into a single
// unordered slice. Each file's header row is skipped and rows with a field
// count other than 3 are ignored. Unreadable files are logged and skipped,
// never fatal; only a missing directory or a directory without a single CSV
// file is an error.
func (l *Loader) Load(ctx context.Context, dir string, onProgress OnLoadProgress) ([]types.RawTick, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeIngestFailed, err, "failed to read data directory %s", dir)
	}

	files := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}

		files = append(files, filepath.Join(dir, entry.Name()))
	}

	if len(files) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoInputFiles, "no csv files found in %s", dir)
	}

	jobs := make(chan string)
	results := make(chan []types.RawTick)

	var wg sync.WaitGroup

	workers := l.workers
	if workers > len(files) {
		workers = len(files)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for path := range jobs {
				results <- l.readFile(path)
			}
		}()
	}

	go func() {
		defer close(jobs)

		for _, path := range files {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	rows := make([]types.RawTick, 0)
	done := 0
	total := float64(len(files))

	for fileRows := range results {
		rows = append(rows, fileRows...)
		done++

		if onProgress != nil {
			onProgress(float64(done), total, "reading tick files")
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIngestFailed, "ingestion cancelled", err)
	}

	return rows, nil
}

// readFile parses one CSV file into raw rows. Failures are diagnostics, not
// errors: the file simply contributes nothing.
func (l *Loader) readFile(path string) []types.RawTick {
	file, err := os.Open(path)
	if err != nil {
		if l.log != nil {
			l.log.Warn("skipping unreadable file",
				zap.String("path", path),
				zap.Error(err),
			)
		}

		return nil
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	// Skip the header row. An empty file contributes nothing.
	if _, err := reader.Read(); err != nil {
		if err != io.EOF && l.log != nil {
			l.log.Warn("skipping file with unreadable header",
				zap.String("path", path),
				zap.Error(err),
			)
		}

		return nil
	}

	rows := make([]types.RawTick, 0)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			// A torn row is a row-level problem; keep reading the rest
			// of the file.
			continue
		}

		if len(record) != 3 {
			continue
		}

		rows = append(rows, types.RawTick{
			Timestamp: strings.TrimSpace(record[0]),
			Price:     strings.TrimSpace(record[1]),
			Size:      strings.TrimSpace(record[2]),
		})
	}

	return rows
}
