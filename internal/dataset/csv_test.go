package dataset

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/seller-analytics/internal/config"
)

func writeCSVDataset(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "sellers.csv"), `id,first_name,last_name,start_date,position
seller_1,Alexey,Petrov,2024-01-01,Senior
seller_2,Maria,Ivanova,,
`)
	writeFile(t, filepath.Join(dir, "products.csv"), `SKU,Name,Category,Purchase Price,Retail Price
SKU_1,Chair,Furniture,40,100
SKU_2,Lamp,Lighting,,n/a
`)
	writeFile(t, filepath.Join(dir, "purchase_records.csv"), `receipt_id,date,seller_id,customer_id,sku,sale_price,discount,quantity
R-1,2024-01-02,seller_1,c_7,SKU_1,100,10,2
R-2,2024-01-03,seller_2,c_9,SKU_2,20,0,1

R-1,2024-01-02,seller_1,c_7,SKU_2,20,0,3
R-3,2024-01-04,seller_1,c_1,,,,
`)
	return dir
}

func TestLoadCSVDir(t *testing.T) {
	ds, err := LoadCSVDir(writeCSVDataset(t), defaultCSVSettings())
	require.NoError(t, err)

	require.Len(t, ds.Sellers, 2)
	assert.Equal(t, "seller_1", ds.Sellers[0].ID)
	assert.Equal(t, "Maria Ivanova", ds.Sellers[1].FullName())
	assert.Equal(t, "2024-01-01", ds.Sellers[0].StartDate)

	require.Len(t, ds.Products, 2)
	assert.Equal(t, "SKU_1", ds.Products[0].SKU)
	assert.Equal(t, 40.0, ds.Products[0].PurchasePrice)
	assert.Equal(t, 100.0, ds.Products[0].RetailPrice)
	assert.True(t, math.IsNaN(ds.Products[1].PurchasePrice))
	assert.Zero(t, ds.Products[1].RetailPrice)

	require.Len(t, ds.PurchaseRecords, 3)

	first := ds.PurchaseRecords[0]
	assert.Equal(t, "R-1", first.ReceiptID)
	assert.Equal(t, "c_7", first.CustomerID)
	require.Len(t, first.Items, 2, "rows sharing a receipt_id are grouped")
	assert.Equal(t, "SKU_1", first.Items[0].SKU)
	assert.Equal(t, "SKU_2", first.Items[1].SKU)
	assert.Equal(t, 3.0, first.Items[1].Quantity)

	assert.Equal(t, "R-2", ds.PurchaseRecords[1].ReceiptID)
	assert.Equal(t, "R-3", ds.PurchaseRecords[2].ReceiptID)
	assert.Empty(t, ds.PurchaseRecords[2].Items, "a row without sku adds no item")
}

func TestLoadCSVDirMissingFilesGiveEmptyCollections(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sellers.csv"), "id,first_name,last_name\ns1,A,B\n")

	ds, err := LoadCSVDir(dir, defaultCSVSettings())
	require.NoError(t, err)
	assert.Len(t, ds.Sellers, 1)
	assert.Empty(t, ds.Products)
	assert.Empty(t, ds.PurchaseRecords)
}

func TestLoadCSVDirRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sellers.csv")
	writeFile(t, path, "id\n")

	_, err := LoadCSVDir(path, defaultCSVSettings())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}

func TestParseCSVDataStartRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "purchase_records.csv")
	writeFile(t, path, "\ufeffReceipt ID;Seller ID;SKU;Sale Price;Discount;Quantity;\n"+
		"# exported 2024-01-05\n"+
		"R-1;s1;A;10;0;2;x\n")

	table, err := ParseCSV(path, config.CSVSettings{Delimiter: "semicolon", DataStartRow: 3})
	require.NoError(t, err)

	assert.Equal(t, []string{"Receipt ID", "Seller ID", "SKU", "Sale Price", "Discount", "Quantity", "column_7"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "x", table.Rows[0]["column_7"])

	receipts := receiptsFromRows(table.Rows)
	require.Len(t, receipts, 1)
	assert.Equal(t, "R-1", receipts[0].ReceiptID)
	assert.Equal(t, "s1", receipts[0].SellerID)
	require.Len(t, receipts[0].Items, 1)
	assert.Equal(t, 10.0, receipts[0].Items[0].SalePrice)
}

func TestParseCSVDataStartRowPastEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sellers.csv")
	writeFile(t, path, "id,first_name\ns1,A\n")

	table, err := ParseCSV(path, config.CSVSettings{Delimiter: ",", DataStartRow: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "first_name"}, table.Headers)
	assert.Empty(t, table.Rows)
}

func TestParseCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sellers.csv")
	writeFile(t, path, "")

	table, err := ParseCSV(path, defaultCSVSettings())
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestParseCSVDelimiters(t *testing.T) {
	tests := map[string]string{
		"tab":       "a\tb\n1\t2\n",
		"\\t":       "a\tb\n1\t2\n",
		"pipe":      "a|b\n1|2\n",
		",":         "a,b\n1,2\n",
		"semicolon": "a;b\n1;2\n",
		"~":         "a~b\n1~2\n",
	}

	for delimiter, body := range tests {
		t.Run(delimiter, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "t.csv")
			writeFile(t, path, body)

			table, err := ParseCSV(path, config.CSVSettings{Delimiter: delimiter, DataStartRow: 2})
			require.NoError(t, err)
			require.Len(t, table.Rows, 1)
			assert.Equal(t, Row{"a": "1", "b": "2"}, table.Rows[0])
		})
	}
}

func TestParseCSVUnsupportedDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	writeFile(t, path, "a,b\n")

	_, err := ParseCSV(path, config.CSVSettings{Delimiter: "::", DataStartRow: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported CSV delimiter")
}

func TestReceiptsWithoutIDAreSeparate(t *testing.T) {
	rows := []Row{
		{"seller_id": "s1", "sku": "A", "sale_price": "1", "discount": "0", "quantity": "1"},
		{"seller_id": "s1", "sku": "B", "sale_price": "1", "discount": "0", "quantity": "1"},
	}

	receipts := receiptsFromRows(rows)
	require.Len(t, receipts, 2)
	assert.Len(t, receipts[0].Items, 1)
	assert.Len(t, receipts[1].Items, 1)
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 12.5, parseNumber(" 12.5 "))
	assert.Equal(t, -3.0, parseNumber("-3"))
	assert.True(t, math.IsNaN(parseNumber("")))
	assert.True(t, math.IsNaN(parseNumber("twelve")))
	assert.Zero(t, parseOptionalNumber("n/a"))
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "purchase_price", normalizeHeader(" Purchase Price "))
	assert.Equal(t, "seller_id", normalizeHeader("SELLER_ID"))
}
