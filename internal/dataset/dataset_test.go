package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/seller-analytics/internal/config"
)

const sampleJSON = `{
  "sellers": [
    {"id": "seller_1", "first_name": "Alexey", "last_name": "Petrov", "start_date": "2024-01-01", "position": "Senior"},
    {"id": "seller_2", "first_name": "Maria", "last_name": "Ivanova"}
  ],
  "products": [
    {"sku": "SKU_1", "name": "Chair", "category": "Furniture", "purchase_price": 40, "retail_price": 100},
    {"sku": "SKU_2", "purchase_price": null}
  ],
  "purchase_records": [
    {
      "receipt_id": "R-1",
      "seller_id": "seller_1",
      "items": [
        {"sku": "SKU_1", "sale_price": 100, "discount": 10, "quantity": 2},
        {"sku": "SKU_2", "sale_price": "abc", "quantity": 1}
      ],
      "total_amount": 180
    }
  ]
}`

func defaultCSVSettings() config.CSVSettings {
	return config.Default().CSVSettings
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestDecodeJSON(t *testing.T) {
	ds, err := DecodeJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	require.Len(t, ds.Sellers, 2)
	assert.Equal(t, "Alexey Petrov", ds.Sellers[0].FullName())
	assert.Equal(t, "Senior", ds.Sellers[0].Position)

	require.Len(t, ds.Products, 2)
	assert.Equal(t, 40.0, ds.Products[0].PurchasePrice)
	assert.Equal(t, 100.0, ds.Products[0].RetailPrice)
	assert.True(t, math.IsNaN(ds.Products[1].PurchasePrice))
	assert.Zero(t, ds.Products[1].RetailPrice)

	require.Len(t, ds.PurchaseRecords, 1)
	items := ds.PurchaseRecords[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, 100.0, items[0].SalePrice)
	assert.Equal(t, 10.0, items[0].Discount)
	assert.Equal(t, 2.0, items[0].Quantity)
	assert.True(t, math.IsNaN(items[1].SalePrice), "string sale_price")
	assert.True(t, math.IsNaN(items[1].Discount), "missing discount")
	assert.Equal(t, 180.0, ds.PurchaseRecords[0].TotalAmount)
}

func TestDecodeJSONMissingCollections(t *testing.T) {
	ds, err := DecodeJSON(strings.NewReader(`{"sellers": []}`))
	require.NoError(t, err)
	assert.Empty(t, ds.Sellers)
	assert.Empty(t, ds.Products)
	assert.Empty(t, ds.PurchaseRecords)
}

func TestDecodeJSONMalformed(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader(`{"sellers": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode JSON dataset")
}

func TestDetectFormat(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "march.json")
	xlsxPath := filepath.Join(dir, "march.XLSX")
	txtPath := filepath.Join(dir, "notes.txt")
	writeFile(t, jsonPath, "{}")
	writeFile(t, xlsxPath, "")
	writeFile(t, txtPath, "")

	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{dir, FormatCSV, false},
		{jsonPath, FormatJSON, false},
		{xlsxPath, FormatXLSX, false},
		{txtPath, "", true},
		{filepath.Join(dir, "missing.json"), "", true},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadDispatchesByFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "march.json")
	writeFile(t, path, sampleJSON)

	ds, err := Load(path, FormatAuto, defaultCSVSettings())
	require.NoError(t, err)
	assert.Len(t, ds.Sellers, 2)

	ds, err = Load(path, FormatJSON, defaultCSVSettings())
	require.NoError(t, err)
	assert.Len(t, ds.Products, 2)

	_, err = Load(path, "parquet", defaultCSVSettings())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported input format")
}

func TestName(t *testing.T) {
	assert.Equal(t, "march", Name("/data/in/march.json"))
	assert.Equal(t, "april", Name("/data/in/april/"))
	assert.Equal(t, "q1.sales", Name("q1.sales.xlsx"))
}
