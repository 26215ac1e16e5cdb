package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rxtech-lab/tickforge/internal/logger"
	"github.com/rxtech-lab/tickforge/internal/series"
	"github.com/rxtech-lab/tickforge/internal/timefmt"
	"github.com/rxtech-lab/tickforge/pkg/errors"
	"github.com/rxtech-lab/tickforge/pkg/tickdata"
)

// buildConfig layers the config file and CLI flags over the defaults.
func buildConfig(cmd *cli.Command) (tickdata.Config, error) {
	config := tickdata.DefaultConfig()

	if configPath := cmd.String("config"); configPath != "" {
		loaded, err := tickdata.LoadConfig(configPath)
		if err != nil {
			return tickdata.Config{}, err
		}

		config = loaded
	}

	if dataPath := cmd.String("data"); dataPath != "" {
		config.DataPath = dataPath
	}

	if outputPath := cmd.String("output"); outputPath != "" {
		config.OutputPath = outputPath
	}

	if cmd.Bool("session") {
		config.Session.Enabled = true
	}

	if config.DataPath == "" {
		return tickdata.Config{}, errors.New(errors.ErrCodeMissingParameter, "data directory required: pass --data or set data_path in the config file")
	}

	return config, nil
}

// paramsFromFlags builds run parameters from --start/--end/--interval.
func paramsFromFlags(cmd *cli.Command) (tickdata.RunParams, error) {
	seconds, err := timefmt.ParseInterval(cmd.String("interval"))
	if err != nil {
		return tickdata.RunParams{}, err
	}

	startFlag := cmd.String("start")
	endFlag := cmd.String("end")

	if (startFlag == "") != (endFlag == "") {
		return tickdata.RunParams{}, errors.New(errors.ErrCodeInvalidWindow, "--start and --end must be given together")
	}

	window := optional.None[series.Window]()

	if startFlag != "" {
		start, err := timefmt.ParseTimestamp(startFlag)
		if err != nil {
			return tickdata.RunParams{}, err
		}

		end, err := timefmt.ParseTimestamp(endFlag)
		if err != nil {
			return tickdata.RunParams{}, err
		}

		window = optional.Some(series.Window{Start: start, End: end})
	}

	return tickdata.RunParams{Window: window, IntervalSeconds: seconds}, nil
}

// paramsFromPrompts collects run parameters interactively.
func paramsFromPrompts(dataset *tickdata.Dataset) (tickdata.RunParams, error) {
	last, err := dataset.Series.Last()
	if err != nil {
		return tickdata.RunParams{}, err
	}

	program := tea.NewProgram(NewModel(last))

	finalModel, err := program.Run()
	if err != nil {
		return tickdata.RunParams{}, err
	}

	model, ok := finalModel.(Model)
	if !ok {
		return tickdata.RunParams{}, errors.New(errors.ErrCodeUnknown, "unexpected prompt model type")
	}

	if model.Aborted() {
		return tickdata.RunParams{}, errors.New(errors.ErrCodeMissingParameter, "aborted")
	}

	return tickdata.RunParams{
		Window:          optional.Some(model.Window()),
		IntervalSeconds: model.IntervalSeconds(),
	}, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	config, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	onProgress := func(current float64, total float64, message string) {
		if bar == nil {
			bar = progressbar.NewOptions(int(total),
				progressbar.OptionSetDescription(message),
				progressbar.OptionShowCount(),
			)
		}

		_ = bar.Set(int(current))
	}

	client, err := tickdata.NewClient(config, log, onProgress)
	if err != nil {
		return err
	}

	dataset, err := client.Prepare(ctx)
	if err != nil {
		return err
	}

	if bar != nil {
		_ = bar.Finish()
		fmt.Println()
	}

	var params tickdata.RunParams

	if cmd.String("interval") != "" {
		params, err = paramsFromFlags(cmd)
	} else {
		if dataset.Series.Empty() {
			fmt.Println("No data available. Cannot determine a valid time range.")

			// Still publish the header-only output.
			params = tickdata.RunParams{IntervalSeconds: 1}
		} else {
			params, err = paramsFromPrompts(dataset)
		}
	}

	if err != nil {
		return err
	}

	result, err := client.WriteBars(dataset, params)
	if err != nil {
		return err
	}

	log.Info("run finished",
		zap.Int("rows_read", result.RowsRead),
		zap.Int("valid_ticks", result.ValidTicks),
		zap.Int("bars", result.Bars),
	)

	if result.NoData {
		fmt.Println("No data found in the specified time range.")
	}

	fmt.Printf("Wrote %d bars to %s\n", result.Bars, result.OutputPath)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "tickforge",
		Usage: "Clean raw tick CSV files and aggregate them into OHLCV bars",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Directory containing raw tick CSV files",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Path of the aggregated bar CSV",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
			&cli.StringFlag{
				Name:  "start",
				Usage: "Window start in `YYYY-MM-DD HH:MM:SS.mmm` format",
			},
			&cli.StringFlag{
				Name:  "end",
				Usage: "Window end in `YYYY-MM-DD HH:MM:SS.mmm` format",
			},
			&cli.StringFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Bar interval such as `1h30m` (prompts interactively when omitted)",
			},
			&cli.BoolFlag{
				Name:  "session",
				Usage: "Keep only ticks inside the configured trading session",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
