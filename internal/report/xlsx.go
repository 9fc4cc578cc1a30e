package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/seller-analytics/internal/types"
)

// Sheet names of the XLSX report.
const (
	SellersSheet     = "sellers"
	TopProductsSheet = "top_products"
)

var (
	sellerHeaders     = []interface{}{"rank", "seller_id", "name", "revenue", "profit", "sales_count", "bonus"}
	topProductHeaders = []interface{}{"seller_id", "rank", "sku", "quantity"}
)

// writeXLSX writes a workbook with one row per seller on the sellers sheet
// and one row per (seller, top product) pair on the top_products sheet.
func writeXLSX(w io.Writer, reports []types.SellerReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SellersSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(TopProductsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := setRow(f, SellersSheet, 1, sellerHeaders); err != nil {
		return err
	}
	if err := setRow(f, TopProductsSheet, 1, topProductHeaders); err != nil {
		return err
	}

	productRow := 2
	for i, r := range reports {
		row := []interface{}{i + 1, r.SellerID, r.Name, r.Revenue, r.Profit, r.SalesCount, r.Bonus}
		if err := setRow(f, SellersSheet, i+2, row); err != nil {
			return err
		}

		for j, p := range r.TopProducts {
			row := []interface{}{r.SellerID, j + 1, p.SKU, p.Quantity}
			if err := setRow(f, TopProductsSheet, productRow, row); err != nil {
				return err
			}
			productRow++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write XLSX report: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
