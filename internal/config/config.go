package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging     LoggingConfig     `yaml:"logging" envconfig:"LOGGING"`
	Paths       PathsConfig       `yaml:"paths" envconfig:"PATHS"`
	Forecasting ForecastingConfig `yaml:"forecasting" envconfig:"FORECASTING"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/finmark.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	ProcessedDataPath string `yaml:"processed_data_path" envconfig:"PROCESSED_DATA_PATH" default:"data/processed" validate:"required"`
	OutputPath        string `yaml:"output_path" envconfig:"OUTPUT_PATH" default:"output" validate:"required"`
}

// ForecastingConfig drives the sales forecasting tool
type ForecastingConfig struct {
	PredictionPeriods int    `yaml:"prediction_periods" envconfig:"PREDICTION_PERIODS" default:"30" validate:"min=1,max=3650"`
	PlotTitle         string `yaml:"plot_title" envconfig:"PLOT_TITLE" default:"Total Sales Forecast"`
	PlotXLabel        string `yaml:"plot_xlabel" envconfig:"PLOT_XLABEL" default:"Date"`
	PlotYLabel        string `yaml:"plot_ylabel" envconfig:"PLOT_YLABEL" default:"Total Sales"`
}

// Load loads configuration from environment variables and an optional config
// file. File values take precedence over environment values, matching the
// behaviour users expect from an explicit -config flag.
func Load(configFile string) (*Config, error) {
	var cfg Config

	// Load from environment variables first (FINMARK_LOGGING_LEVEL etc.)
	if err := envconfig.Process("FINMARK", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile overlays configuration from a YAML file onto cfg
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}

// ForecastCSVPath returns the destination for the forecast data file
func (c *Config) ForecastCSVPath() string {
	return filepath.Join(c.Paths.OutputPath, "sales_forecast.csv")
}

// ForecastChartPath returns the destination for the rendered forecast chart
func (c *Config) ForecastChartPath() string {
	return filepath.Join(c.Paths.OutputPath, "sales_forecast_plot.html")
}

// ComponentsChartPath returns the destination for the model components chart
func (c *Config) ComponentsChartPath() string {
	return filepath.Join(c.Paths.OutputPath, "sales_forecast_components.html")
}

// ProcessedDataFile returns the cleaned data file consumed by forecasting
func (c *Config) ProcessedDataFile() string {
	return filepath.Join(c.Paths.ProcessedDataPath, "marketing_summary_cleaned.csv")
}
