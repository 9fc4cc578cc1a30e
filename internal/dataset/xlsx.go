// =============================================================================
// Seller Analytics - XLSX Dataset Loader
// =============================================================================
//
// An XLSX dataset is one workbook with a sheet per collection:
//
//   | Sheet            | Header row (row 1)                                      |
//   |------------------|---------------------------------------------------------|
//   | sellers          | id, first_name, last_name, start_date, position         |
//   | products         | sku, name, category, purchase_price, retail_price       |
//   | purchase_records | receipt_id, date, seller_id, customer_id, sku,          |
//   |                  | sale_price, discount, quantity                          |
//
// Sheet names and headers are matched case-insensitively. Sheets whose name
// starts with "_" are ignored. A missing sheet yields an empty collection.
//
// =============================================================================

package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/seller-analytics/internal/types"
)

// LoadXLSX reads a dataset from an XLSX workbook.
//
// PARAMETERS:
//   - path: The path to the workbook.
//
// RETURNS:
//   - The loaded dataset. Missing sheets give empty collections.
//   - An error if the workbook cannot be opened or a sheet cannot be read.
func LoadXLSX(path string) (*types.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := make(map[string]string)
	for _, name := range f.GetSheetList() {
		if strings.HasPrefix(name, "_") {
			continue
		}
		sheets[strings.ToLower(strings.TrimSpace(name))] = name
	}

	load := func(collection string) ([]Row, error) {
		sheet, ok := sheets[collection]
		if !ok {
			return nil, nil
		}
		rows, err := parseSheet(f, sheet)
		if err != nil {
			return nil, fmt.Errorf("error parsing sheet '%s': %w", sheet, err)
		}
		return rows, nil
	}

	sellerRows, err := load(SellersCollection)
	if err != nil {
		return nil, err
	}
	productRows, err := load(ProductsCollection)
	if err != nil {
		return nil, err
	}
	receiptRows, err := load(PurchaseRecordsCollection)
	if err != nil {
		return nil, err
	}

	return &types.Dataset{
		Sellers:         sellersFromRows(sellerRows),
		Products:        productsFromRows(productRows),
		PurchaseRecords: receiptsFromRows(receiptRows),
	}, nil
}

// parseSheet reads a sheet whose first row holds the headers. Cells are read
// as stored, so number formats such as "#,##0.00" or "0%" do not change the
// values the loader sees.
func parseSheet(f *excelize.File, sheetName string) ([]Row, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// GetRows trims trailing empty cells; tableRows pads them back.
	return tableRows(cleanHeaders(rows[0]), rows[1:]), nil
}
