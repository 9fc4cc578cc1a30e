package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMainConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "output_dir: ./reports\n")

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "./reports", cfg.OutputDir)
	assert.Equal(t, "auto", cfg.InputFormat)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "{dataset}_report_{timestamp}", cfg.ReportFileFormat)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Equal(t, ",", cfg.CSVSettings.Delimiter)
	assert.Equal(t, 2, cfg.CSVSettings.DataStartRow)
}

func TestLoadMainConfigReadsAllFields(t *testing.T) {
	path := writeConfig(t, `
input_dir: /data/in
output_dir: /data/out
input_archive_dir: /data/archive
input_format: XLSX
output_format: yaml
report_file_format: "{dataset}_{uuid}"
log_level: debug
log_format: json
max_concurrency: 2
stop_on_error: true
archive_inputs: true
archive_timestamp_subdirs: true
csv_settings:
  delimiter: ";"
  data_start_row: 4
`)

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, &MainConfig{
		InputDir:                "/data/in",
		OutputDir:               "/data/out",
		InputArchiveDir:         "/data/archive",
		InputFormat:             "xlsx",
		OutputFormat:            "yaml",
		ReportFileFormat:        "{dataset}_{uuid}",
		LogLevel:                "debug",
		LogFormat:               "json",
		MaxConcurrency:          2,
		StopOnError:             true,
		ArchiveInputs:           true,
		ArchiveTimestampSubdirs: true,
		CSVSettings:             CSVSettings{Delimiter: ";", DataStartRow: 4},
	}, cfg)
}

func TestLoadMainConfigRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"output format":  "output_format: pdf\n",
		"input format":   "input_format: parquet\n",
		"concurrency":    "max_concurrency: -1\n",
		"data start row": "csv_settings:\n  data_start_row: 1\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadMainConfig(writeConfig(t, body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestLoadMainConfigMissingFile(t *testing.T) {
	_, err := LoadMainConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	cfg, err := LoadMainConfigOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMainConfigMalformedYAML(t *testing.T) {
	_, err := LoadMainConfig(writeConfig(t, "output_dir: [unterminated\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("SALES_OUTPUT_FORMAT", "xml")
	t.Setenv("SALES_MAX_CONCURRENCY", "8")
	t.Setenv("SALES_ARCHIVE_INPUTS", "true")
	t.Setenv("SALES_CSV_DELIMITER", "|")
	t.Setenv("SALES_ARCHIVE_TIMESTAMP_SUBDIRS", "true")

	cfg, err := LoadMainConfig(writeConfig(t, "output_format: yaml\nmax_concurrency: 2\n"))
	require.NoError(t, err)

	assert.Equal(t, "xml", cfg.OutputFormat)
	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.True(t, cfg.ArchiveInputs)
	assert.Equal(t, "|", cfg.CSVSettings.Delimiter)
	assert.True(t, cfg.ArchiveTimestampSubdirs)
}
