// =============================================================================
// Seller Analytics - Tabular Record Mapping
// =============================================================================
//
// CSV files and XLSX sheets are both read into rows of header -> value maps.
// This file turns those rows into typed records. Headers are matched
// case-insensitively.
//
// PURCHASE RECORD LAYOUT:
//   Receipts are flattened to one row per line item:
//
//   | receipt_id | date       | seller_id | customer_id | sku   | sale_price | discount | quantity |
//   |------------|------------|-----------|-------------|-------|------------|----------|----------|
//   | R-1        | 2024-01-02 | seller_1  | c_7         | SKU_1 | 100        | 10       | 2        |
//   | R-1        | 2024-01-02 | seller_1  | c_7         | SKU_4 | 20         | 0        | 1        |
//   | R-2        | 2024-01-03 | seller_2  | c_9         | SKU_1 | 95         | 0        | 1        |
//
//   Rows sharing a receipt_id form one receipt, in order of first
//   appearance. Receipt-level columns are taken from the first row. A row
//   with an empty sku contributes a receipt with no line item. Rows with an
//   empty receipt_id each form their own receipt.
//
// =============================================================================

package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ginjaninja78/seller-analytics/internal/types"
)

// Row is one data row keyed by normalized header.
type Row map[string]string

// normalizeHeader lower-cases and trims a header so "Seller ID" and
// "seller_id" match.
func normalizeHeader(header string) string {
	header = strings.ToLower(strings.TrimSpace(header))
	return strings.ReplaceAll(header, " ", "_")
}

// cleanHeaders strips a UTF-8 byte order mark and names empty headers after
// their column (column_1, column_2, ...).
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
		if header == "" {
			header = fmt.Sprintf("column_%d", i+1)
		}
		cleaned[i] = header
	}
	return cleaned
}

// tableRows pairs each non-blank record with the headers. Short records are
// padded with empty values; cells beyond the last header are dropped.
func tableRows(headers []string, records [][]string) []Row {
	keys := make([]string, len(headers))
	for i, header := range headers {
		keys[i] = normalizeHeader(header)
	}

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		if isBlank(record) {
			continue
		}
		row := make(Row, len(keys))
		for i, key := range keys {
			var value string
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			row[key] = value
		}
		rows = append(rows, row)
	}
	return rows
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseNumber returns the numeric value of s, or NaN when s is empty or not a number.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return value
}

// parseOptionalNumber is parseNumber for informational fields: unparseable
// values become zero.
func parseOptionalNumber(s string) float64 {
	value := parseNumber(s)
	if math.IsNaN(value) {
		return 0
	}
	return value
}

func sellersFromRows(rows []Row) []types.Seller {
	sellers := make([]types.Seller, 0, len(rows))
	for _, row := range rows {
		sellers = append(sellers, types.Seller{
			ID:        row["id"],
			FirstName: row["first_name"],
			LastName:  row["last_name"],
			StartDate: row["start_date"],
			Position:  row["position"],
		})
	}
	return sellers
}

func productsFromRows(rows []Row) []types.Product {
	products := make([]types.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, types.Product{
			SKU:           row["sku"],
			Name:          row["name"],
			Category:      row["category"],
			PurchasePrice: parseNumber(row["purchase_price"]),
			RetailPrice:   parseOptionalNumber(row["retail_price"]),
		})
	}
	return products
}

// receiptsFromRows groups line item rows into receipts by receipt_id,
// keeping the order of first appearance.
func receiptsFromRows(rows []Row) []types.PurchaseRecord {
	var receipts []types.PurchaseRecord
	position := make(map[string]int)

	for _, row := range rows {
		key := row["receipt_id"]

		idx, exists := position[key]
		if !exists || key == "" {
			receipts = append(receipts, types.PurchaseRecord{
				ReceiptID:     key,
				Date:          row["date"],
				SellerID:      row["seller_id"],
				CustomerID:    row["customer_id"],
				TotalAmount:   parseOptionalNumber(row["total_amount"]),
				TotalDiscount: parseOptionalNumber(row["total_discount"]),
				Items:         []types.LineItem{},
			})
			idx = len(receipts) - 1
			if key != "" {
				position[key] = idx
			}
		}

		if row["sku"] == "" {
			continue
		}
		receipts[idx].Items = append(receipts[idx].Items, types.LineItem{
			SKU:       row["sku"],
			SalePrice: parseNumber(row["sale_price"]),
			Discount:  parseNumber(row["discount"]),
			Quantity:  parseNumber(row["quantity"]),
		})
	}

	return receipts
}
