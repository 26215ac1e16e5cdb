// Package tickdata assembles the cleaning and aggregation pipeline: load raw
// rows from a directory, validate them, resolve the requested time window
// over the sorted series, bucket the result into OHLCV bars and write them
// out. Every stage consumes its predecessor's output and returns a new
// value; no state accumulates between runs.
package tickdata

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/rxtech-lab/tickforge/internal/aggregate"
	"github.com/rxtech-lab/tickforge/internal/clean"
	"github.com/rxtech-lab/tickforge/internal/logger"
	"github.com/rxtech-lab/tickforge/internal/series"
	"github.com/rxtech-lab/tickforge/internal/timefmt"
	"github.com/rxtech-lab/tickforge/internal/types"
	"github.com/rxtech-lab/tickforge/pkg/errors"
	"github.com/rxtech-lab/tickforge/pkg/tickdata/loader"
	"github.com/rxtech-lab/tickforge/pkg/tickdata/writer"
)

// RunParams holds the already-validated parameters for one aggregation run.
// Collecting and re-prompting for these values is the caller's concern.
type RunParams struct {
	// Window restricts aggregation to a closed time range. None means the
	// whole series.
	Window optional.Option[series.Window]
	// IntervalSeconds is the bucket width.
	IntervalSeconds int64 `validate:"required,min=1"`
}

// RunResult summarizes one pipeline run.
type RunResult struct {
	RowsRead   int
	ValidTicks int
	Bounds     types.Bounds
	Bars       int
	OutputPath string
	// NoData is set when the run produced a header-only file because the
	// validated dataset (or the resolved window) was empty.
	NoData bool
}

// Dataset is the cleaned, sorted result of the ingestion half of the
// pipeline. It carries everything an interactive caller needs to validate a
// window before asking for bars.
type Dataset struct {
	RowsRead int
	Bounds   types.Bounds
	Series   *series.Series
}

// Client runs the pipeline. It holds configuration and collaborators only;
// per-run data never outlives the call that produced it.
type Client struct {
	config     Config
	log        *logger.Logger
	loader     *loader.Loader
	validate   *validator.Validate
	onProgress loader.OnLoadProgress
}

// NewClient creates a pipeline client with the given configuration.
// onProgress may be nil.
func NewClient(config Config, log *logger.Logger, onProgress loader.OnLoadProgress) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	return &Client{
		config:     config,
		log:        log,
		loader:     loader.NewLoader(log),
		validate:   validate,
		onProgress: onProgress,
	}, nil
}

// Prepare loads every raw row under the configured data path and cleans it
// into a sorted series. The session filter is applied here when the
// configuration enables it.
func (c *Client) Prepare(ctx context.Context) (*Dataset, error) {
	raw, err := c.loader.Load(ctx, c.config.DataPath, c.onProgress)
	if err != nil {
		return nil, err
	}

	opts := []clean.Option{clean.WithLogger(c.log)}

	if c.config.Session.Enabled {
		session, err := c.sessionFilter()
		if err != nil {
			return nil, err
		}

		opts = append(opts, clean.WithSession(session))
	}

	ticks, bounds := clean.Clean(raw, opts...)

	if c.log != nil {
		c.log.Info("dataset prepared",
			zap.Int("rows_read", len(raw)),
			zap.Int("valid_ticks", len(ticks)),
		)
	}

	return &Dataset{
		RowsRead: len(raw),
		Bounds:   bounds,
		Series:   series.New(ticks),
	}, nil
}

// WriteBars resolves the window over a prepared dataset, aggregates the
// resolved ticks and writes the bars. An empty dataset or window still
// produces a header-only output file and a result flagged NoData.
func (c *Client) WriteBars(dataset *Dataset, params RunParams) (*RunResult, error) {
	if err := c.validate.Struct(params); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid run parameters", err)
	}

	if params.Window.IsSome() {
		if err := dataset.Series.ValidateWindow(params.Window.Unwrap()); err != nil {
			if !errors.IsNoDataError(err) {
				return nil, err
			}
		}
	}

	ticks, err := dataset.Series.Resolve(params.Window)
	noData := false

	if err != nil {
		if !errors.IsNoDataError(err) {
			return nil, err
		}

		noData = true
		ticks = nil
	}

	width := time.Duration(params.IntervalSeconds) * time.Second

	bars, err := aggregate.Aggregate(ticks, width)
	if err != nil {
		return nil, err
	}

	outputPath, err := c.write(bars)
	if err != nil {
		return nil, err
	}

	if c.log != nil {
		c.log.Info("bars written",
			zap.Int("bars", len(bars)),
			zap.Int64("interval_seconds", params.IntervalSeconds),
			zap.String("output", outputPath),
		)
	}

	return &RunResult{
		RowsRead:   dataset.RowsRead,
		ValidTicks: dataset.Series.Len(),
		Bounds:     dataset.Bounds,
		Bars:       len(bars),
		OutputPath: outputPath,
		NoData:     noData || len(bars) == 0,
	}, nil
}

// Run executes the whole pipeline in one call for non-interactive callers.
func (c *Client) Run(ctx context.Context, params RunParams) (*RunResult, error) {
	dataset, err := c.Prepare(ctx)
	if err != nil {
		return nil, err
	}

	return c.WriteBars(dataset, params)
}

func (c *Client) newWriter() (writer.BarWriter, error) {
	switch c.config.WriterType {
	case WriterCSV:
		return writer.NewCSVWriter(c.config.OutputPath), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported writer type: %s", c.config.WriterType)
	}
}

func (c *Client) write(bars []types.Bar) (string, error) {
	barWriter, err := c.newWriter()
	if err != nil {
		return "", err
	}

	if err := barWriter.Initialize(); err != nil {
		return "", err
	}
	defer barWriter.Close()

	for _, bar := range bars {
		if err := barWriter.Write(bar); err != nil {
			return "", err
		}
	}

	return barWriter.Finalize()
}

func (c *Client) sessionFilter() (clean.Session, error) {
	openAt, err := timefmt.ParseClock(c.config.Session.Open)
	if err != nil {
		return clean.Session{}, err
	}

	closeAt, err := timefmt.ParseClock(c.config.Session.Close)
	if err != nil {
		return clean.Session{}, err
	}

	if closeAt < openAt {
		return clean.Session{}, errors.Newf(errors.ErrCodeInvalidSession,
			"session close %s is before open %s", c.config.Session.Close, c.config.Session.Open)
	}

	return clean.Session{Open: openAt, Close: closeAt}, nil
}
