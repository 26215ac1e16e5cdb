package tickdata

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/tickforge/pkg/errors"
)

// WriterType defines the type of bar writer.
type WriterType string

const (
	WriterCSV WriterType = "csv"
)

// SessionConfig describes the optional trading-session filter. The filter is
// never applied unless Enabled is set explicitly.
type SessionConfig struct {
	Enabled bool   `yaml:"enabled"`
	Open    string `yaml:"open"`
	Close   string `yaml:"close"`
}

// Config holds the configuration for the pipeline client.
type Config struct {
	// DataPath is the directory holding the raw tick CSV files.
	DataPath string `yaml:"data_path" validate:"required"`
	// OutputPath is where the aggregated bar CSV is written.
	OutputPath string `yaml:"output_path" validate:"required"`
	// WriterType selects the output format.
	WriterType WriterType `yaml:"writer" validate:"required,oneof=csv"`
	// Session configures the opt-in trading-session filter.
	Session SessionConfig `yaml:"session"`
}

// DefaultConfig returns the configuration used when no config file is given.
// Session times default to regular US equity hours but stay disabled until
// asked for.
func DefaultConfig() Config {
	return Config{
		OutputPath: "ohlcv.csv",
		WriterType: WriterCSV,
		Session: SessionConfig{
			Enabled: false,
			Open:    "09:30",
			Close:   "16:00",
		},
	}
}

// LoadConfig reads a YAML config file on top of the defaults. Fields absent
// from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config file %s", path)
	}

	return config, nil
}
