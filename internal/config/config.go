// =============================================================================
// Seller Analytics - Configuration Module
// =============================================================================
//
// This module loads the application configuration. Values come from three
// layers, later layers overriding earlier ones:
//   1. Built-in defaults (applyMainConfigDefaults)
//   2. The YAML configuration file (config.yaml or --config)
//   3. Environment variables prefixed with SALES_ (a .env file is honored)
//
// The merged configuration is validated with struct tags before use.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables that override the file.
// Example: SALES_OUTPUT_FORMAT=yaml overrides output_format.
const EnvPrefix = "SALES_"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for datasets when no single file is given.
	// Default: "./input"
	InputDir string `yaml:"input_dir" validate:"required"`

	// OutputDir receives the generated reports.
	// Default: "./output"
	OutputDir string `yaml:"output_dir" validate:"required"`

	// InputArchiveDir receives datasets after a successful run when
	// ArchiveInputs is set.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// =========================================================================
	// FORMAT SETTINGS
	// =========================================================================

	// InputFormat selects the dataset loader.
	// Valid values: "auto", "json", "csv", "xlsx"
	// Default: "auto" (chosen by file extension, directories are CSV)
	InputFormat string `yaml:"input_format" validate:"oneof=auto json csv xlsx"`

	// OutputFormat selects the report writer.
	// Valid values: "json", "yaml", "xml", "xlsx"
	// Default: "json"
	OutputFormat string `yaml:"output_format" validate:"oneof=json yaml xml xlsx"`

	// ReportFileFormat defines the report file name.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {dataset}   - Dataset name without extension
	// The extension of OutputFormat is appended when missing.
	// Default: "{dataset}_report_{timestamp}"
	ReportFileFormat string `yaml:"report_file_format" validate:"required"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "trace", "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" validate:"oneof=trace debug info warn error"`

	// LogFormat is "json" for structured output or "console" for humans.
	// Default: "console"
	LogFormat string `yaml:"log_format" validate:"oneof=json console text"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of datasets analyzed at once.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency" validate:"min=1,max=64"`

	// StopOnError aborts the remaining datasets after the first failure.
	// Default: false
	StopOnError bool `yaml:"stop_on_error"`

	// ArchiveInputs moves each successfully analyzed dataset to
	// InputArchiveDir.
	// Default: false
	ArchiveInputs bool `yaml:"archive_inputs"`

	// ArchiveTimestampSubdirs files archived datasets under the date of the
	// run, e.g. input_archive/2024/01/15/march.json.
	// Default: false
	ArchiveTimestampSubdirs bool `yaml:"archive_timestamp_subdirs"`

	// CSVSettings applies to datasets stored as CSV directories.
	CSVSettings CSVSettings `yaml:"csv_settings"`
}

// =============================================================================
// CSV SETTINGS STRUCTURE
// =============================================================================

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the field separator.
	// Common values: "," (comma), "|" or "pipe", "\t" or "tab", ";"
	// Default: ","
	Delimiter string `yaml:"delimiter" validate:"required"`

	// DataStartRow is the 1-based row where data begins. Row 1 always holds
	// the headers; rows between the headers and DataStartRow are ignored.
	// Default: 2
	DataStartRow int `yaml:"data_start_row" validate:"min=2"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns the configuration used when no file is present.
func Default() *MainConfig {
	config := &MainConfig{}
	applyMainConfigDefaults(config)
	return config
}

// LoadMainConfig loads the configuration from a YAML file, applies defaults
// and environment overrides, and validates the result.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read or parsed, or fails validation.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return parseMainConfig(data)
}

// LoadMainConfigOrDefault behaves like LoadMainConfig but falls back to the
// defaults (plus environment overrides) when the file does not exist.
func LoadMainConfigOrDefault(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return parseMainConfig(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return parseMainConfig(data)
}

func parseMainConfig(data []byte) (*MainConfig, error) {
	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := applyEnvOverrides(&config); err != nil {
		return nil, err
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.InputFormat == "" {
		config.InputFormat = "auto"
	}
	if config.OutputFormat == "" {
		config.OutputFormat = "json"
	}
	if config.ReportFileFormat == "" {
		config.ReportFileFormat = "{dataset}_report_{timestamp}"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "console"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}

	config.InputFormat = strings.ToLower(config.InputFormat)
	config.OutputFormat = strings.ToLower(config.OutputFormat)
	config.LogLevel = strings.ToLower(config.LogLevel)
	config.LogFormat = strings.ToLower(config.LogFormat)

	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = ","
	}
	if config.CSVSettings.DataStartRow == 0 {
		config.CSVSettings.DataStartRow = 2
	}
}

// applyEnvOverrides copies SALES_* environment variables over the file values.
func applyEnvOverrides(config *MainConfig) error {
	_ = godotenv.Load()

	k := koanf.New(".")
	transform := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", transform), nil); err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}

	fields := map[string]*string{
		"input_dir":          &config.InputDir,
		"output_dir":         &config.OutputDir,
		"input_archive_dir":  &config.InputArchiveDir,
		"input_format":       &config.InputFormat,
		"output_format":      &config.OutputFormat,
		"report_file_format": &config.ReportFileFormat,
		"log_level":          &config.LogLevel,
		"log_format":         &config.LogFormat,
		"csv_delimiter":      &config.CSVSettings.Delimiter,
	}
	for key, target := range fields {
		if k.Exists(key) {
			*target = k.String(key)
		}
	}

	if k.Exists("max_concurrency") {
		config.MaxConcurrency = k.Int("max_concurrency")
	}
	if k.Exists("stop_on_error") {
		config.StopOnError = k.Bool("stop_on_error")
	}
	if k.Exists("archive_inputs") {
		config.ArchiveInputs = k.Bool("archive_inputs")
	}
	if k.Exists("archive_timestamp_subdirs") {
		config.ArchiveTimestampSubdirs = k.Bool("archive_timestamp_subdirs")
	}

	return nil
}

// validateMainConfig validates the merged configuration against its struct tags.
func validateMainConfig(config *MainConfig) error {
	return validator.New().Struct(config)
}
