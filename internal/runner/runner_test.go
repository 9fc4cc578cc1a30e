package runner

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/seller-analytics/internal/analytics"
	"github.com/ginjaninja78/seller-analytics/internal/config"
	"github.com/ginjaninja78/seller-analytics/internal/types"
)

const marchJSON = `{
  "sellers": [
    {"id": "s1", "first_name": "Alexey", "last_name": "Petrov"},
    {"id": "s2", "first_name": "Maria", "last_name": "Ivanova"}
  ],
  "products": [
    {"sku": "A", "purchase_price": 40}
  ],
  "purchase_records": [
    {"receipt_id": "r1", "seller_id": "s1", "items": [{"sku": "A", "sale_price": 100, "discount": 0, "quantity": 2}]},
    {"receipt_id": "r2", "seller_id": "s2", "items": [{"sku": "A", "sale_price": 50, "discount": 0, "quantity": 1}]},
    {"receipt_id": "r3", "seller_id": "ghost", "items": [{"sku": "A", "sale_price": 50, "discount": 0, "quantity": 1}]}
  ]
}`

// setup returns a configuration rooted in a temp dir and the path of a
// dataset written to its input directory.
func setup(t *testing.T, body string) (*config.MainConfig, string) {
	t.Helper()
	root := t.TempDir()

	cfg := config.Default()
	cfg.InputDir = filepath.Join(root, "input")
	cfg.OutputDir = filepath.Join(root, "output")
	cfg.InputArchiveDir = filepath.Join(root, "archive")
	cfg.ReportFileFormat = "{dataset}_report"

	require.NoError(t, os.MkdirAll(cfg.InputDir, 0o755))
	path := filepath.Join(cfg.InputDir, "march.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return cfg, path
}

func TestRunWritesReport(t *testing.T) {
	cfg, path := setup(t, marchJSON)

	result := New(path, cfg, zerolog.Nop(), Options{}).Run()
	require.NoError(t, result.Error)
	require.True(t, result.Success)

	assert.Equal(t, "march", result.Dataset)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "march_report.json"), result.OutputFile)
	assert.Empty(t, result.ArchivePath)
	assert.FileExists(t, path)

	assert.Equal(t, ProcessingStats{
		Sellers:         2,
		Products:        1,
		Receipts:        3,
		LineItems:       3,
		ReceiptsSkipped: 1,
		SellersRanked:   2,
		Issues:          1,
		ProcessingTime:  result.Stats.ProcessingTime,
	}, result.Stats)

	data, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	var reports []types.SellerReport
	require.NoError(t, json.Unmarshal(data, &reports))
	assert.Equal(t, result.Reports, reports)

	require.Len(t, reports, 2)
	assert.Equal(t, "s1", reports[0].SellerID)
	assert.Equal(t, 200.0, reports[0].Revenue)
	assert.Equal(t, 120.0, reports[0].Profit)
	assert.Equal(t, 18.0, reports[0].Bonus)
	assert.Equal(t, "s2", reports[1].SellerID)
	assert.Equal(t, 10.0, reports[1].Profit)
	assert.Equal(t, 1.0, reports[1].Bonus)
}

func TestRunFormatOverride(t *testing.T) {
	cfg, path := setup(t, marchJSON)

	result := New(path, cfg, zerolog.Nop(), Options{Format: "xml"}).Run()
	require.NoError(t, result.Error)
	assert.Equal(t, ".xml", filepath.Ext(result.OutputFile))

	data, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<seller n="1">`)
}

func TestRunDryRun(t *testing.T) {
	cfg, path := setup(t, marchJSON)
	cfg.ArchiveInputs = true

	result := New(path, cfg, zerolog.Nop(), Options{DryRun: true}).Run()
	require.True(t, result.Success)
	assert.Len(t, result.Reports, 2)
	assert.Empty(t, result.OutputFile)
	assert.NoDirExists(t, cfg.OutputDir)
	assert.FileExists(t, path)
}

func TestRunToWriter(t *testing.T) {
	cfg, path := setup(t, marchJSON)
	cfg.ArchiveInputs = true

	var buf bytes.Buffer
	result := New(path, cfg, zerolog.Nop(), Options{Format: "yaml", Output: &buf}).Run()
	require.True(t, result.Success)
	assert.Empty(t, result.OutputFile)
	assert.Contains(t, buf.String(), "seller_id: s1")
	assert.FileExists(t, path, "writer output never archives")
}

func TestRunArchivesInput(t *testing.T) {
	cfg, path := setup(t, marchJSON)
	cfg.ArchiveInputs = true

	result := New(path, cfg, zerolog.Nop(), Options{}).Run()
	require.True(t, result.Success)
	assert.Equal(t, filepath.Join(cfg.InputArchiveDir, "march.json"), result.ArchivePath)
	assert.NoFileExists(t, path)
	assert.FileExists(t, result.ArchivePath)
}

func TestRunArchivesIntoDateSubdirs(t *testing.T) {
	cfg, path := setup(t, marchJSON)
	cfg.ArchiveInputs = true
	cfg.ArchiveTimestampSubdirs = true

	result := New(path, cfg, zerolog.Nop(), Options{}).Run()
	require.True(t, result.Success)

	rel, err := filepath.Rel(cfg.InputArchiveDir, result.ArchivePath)
	require.NoError(t, err)
	assert.Regexp(t, `^\d{4}/\d{2}/\d{2}/march\.json$`, filepath.ToSlash(rel))
	assert.FileExists(t, result.ArchivePath)
	assert.NoFileExists(t, path)
}

func TestRunValidationFailure(t *testing.T) {
	cfg, path := setup(t, `{"sellers": [], "products": [{"sku": "A", "purchase_price": 1}], "purchase_records": []}`)
	cfg.ArchiveInputs = true

	result := New(path, cfg, zerolog.Nop(), Options{}).Run()
	assert.False(t, result.Success)
	require.Error(t, result.Error)
	assert.True(t, errors.Is(result.Error, analytics.ErrValidation))

	var verr *analytics.ValidationError
	require.ErrorAs(t, result.Error, &verr)
	assert.Equal(t, analytics.KindEmptySellers, verr.Kind)

	assert.Empty(t, result.OutputFile)
	assert.FileExists(t, path, "failed datasets stay in place")
}

func TestRunLoadFailure(t *testing.T) {
	cfg, _ := setup(t, marchJSON)

	result := New(filepath.Join(cfg.InputDir, "missing.json"), cfg, zerolog.Nop(), Options{}).Run()
	assert.False(t, result.Success)
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "failed to load dataset")
}

func TestRunNonNumericField(t *testing.T) {
	cfg, path := setup(t, `{
  "sellers": [{"id": "s1", "first_name": "A", "last_name": "B"}],
  "products": [{"sku": "A", "purchase_price": 1}],
  "purchase_records": [{"receipt_id": "r1", "seller_id": "s1", "items": [{"sku": "A", "sale_price": 5, "discount": 0}]}]
}`)

	result := New(path, cfg, zerolog.Nop(), Options{}).Run()
	require.Error(t, result.Error)

	var nerr *analytics.NonNumericFieldError
	require.ErrorAs(t, result.Error, &nerr)
	assert.Equal(t, "quantity", nerr.Field)
	assert.Equal(t, 1, result.Stats.Issues)
}
