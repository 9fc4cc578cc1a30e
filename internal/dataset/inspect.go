// =============================================================================
// Seller Analytics - Dataset Inspection
// =============================================================================
//
// Inspect reports data problems the analyzer tolerates or only discovers
// part way through. The analyzer fails fast on structural errors; Inspect
// instead collects every issue so a dataset can be reviewed in one pass.
//
// CHECKS:
//   | Severity | Collection       | Check                                        |
//   |----------|------------------|----------------------------------------------|
//   | warning  | sellers          | empty or duplicate id (last entry wins)      |
//   | warning  | products         | empty or duplicate sku (last entry wins)     |
//   | error    | products         | purchase_price missing or not a number       |
//   | warning  | products         | negative purchase_price                      |
//   | warning  | purchase_records | seller_id not in sellers (receipt skipped)   |
//   | warning  | purchase_records | sku not in products (item skipped)           |
//   | error    | purchase_records | sale_price/discount/quantity not a number    |
//   | warning  | purchase_records | discount outside 0-100                       |
//   | warning  | purchase_records | quantity not positive                        |
//
// Errors mark values that will abort the analysis; warnings mark values the
// analysis skips or accepts as-is.
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

// Issue severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Issue is a single problem found in a dataset.
type Issue struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string `json:"severity" yaml:"severity"`

	// Collection is the collection holding the record.
	Collection string `json:"collection" yaml:"collection"`

	// Index is the position of the record in its collection.
	Index int `json:"index" yaml:"index"`

	// Item is the line item position within a receipt, or -1.
	Item int `json:"item" yaml:"item"`

	// Field is the offending field.
	Field string `json:"field" yaml:"field"`

	// Value is the offending value, formatted.
	Value string `json:"value" yaml:"value"`

	Message string `json:"message" yaml:"message"`
}

// String implements fmt.Stringer.
func (i Issue) String() string {
	location := fmt.Sprintf("%s[%d]", i.Collection, i.Index)
	if i.Item >= 0 {
		location += fmt.Sprintf(".items[%d]", i.Item)
	}
	return fmt.Sprintf("[%s] %s, Field '%s': %s (value: '%s')",
		strings.ToUpper(i.Severity),
		location,
		i.Field,
		i.Message,
		i.Value,
	)
}

// Inspect checks a dataset and returns every issue found, in collection
// order. A nil dataset yields no issues.
func Inspect(ds *types.Dataset) []Issue {
	if ds == nil {
		return nil
	}

	var issues []Issue
	add := func(severity, collection string, index, item int, field, value, message string) {
		issues = append(issues, Issue{
			Severity:   severity,
			Collection: collection,
			Index:      index,
			Item:       item,
			Field:      field,
			Value:      value,
			Message:    message,
		})
	}

	// =========================================================================
	// SELLERS
	// =========================================================================

	sellerIDs := make(map[string]bool, len(ds.Sellers))
	for i, seller := range ds.Sellers {
		switch {
		case seller.ID == "":
			add(SeverityWarning, SellersCollection, i, -1, "id", "", "Seller id is empty")
		case sellerIDs[seller.ID]:
			add(SeverityWarning, SellersCollection, i, -1, "id", seller.ID, "Duplicate seller id; the last entry wins")
		}
		sellerIDs[seller.ID] = true
	}

	// =========================================================================
	// PRODUCTS
	// =========================================================================

	skus := make(map[string]bool, len(ds.Products))
	for i, product := range ds.Products {
		switch {
		case product.SKU == "":
			add(SeverityWarning, ProductsCollection, i, -1, "sku", "", "Product sku is empty")
		case skus[product.SKU]:
			add(SeverityWarning, ProductsCollection, i, -1, "sku", product.SKU, "Duplicate sku; the last entry wins")
		}
		skus[product.SKU] = true

		if !isFinite(product.PurchasePrice) {
			add(SeverityError, ProductsCollection, i, -1, "purchase_price", formatNumber(product.PurchasePrice), "Value is missing or not a number")
		} else if product.PurchasePrice < 0 {
			add(SeverityWarning, ProductsCollection, i, -1, "purchase_price", formatNumber(product.PurchasePrice), "Purchase price is negative")
		}
	}

	// =========================================================================
	// PURCHASE RECORDS
	// =========================================================================

	for i, record := range ds.PurchaseRecords {
		if !sellerIDs[record.SellerID] {
			add(SeverityWarning, PurchaseRecordsCollection, i, -1, "seller_id", record.SellerID, "Unknown seller; the receipt is skipped")
			continue
		}

		for j, item := range record.Items {
			if !skus[item.SKU] {
				add(SeverityWarning, PurchaseRecordsCollection, i, j, "sku", item.SKU, "Unknown sku; the item is skipped")
				continue
			}

			numeric := []struct {
				field string
				value float64
			}{
				{"sale_price", item.SalePrice},
				{"discount", item.Discount},
				{"quantity", item.Quantity},
			}
			for _, n := range numeric {
				if !isFinite(n.value) {
					add(SeverityError, PurchaseRecordsCollection, i, j, n.field, formatNumber(n.value), "Value is missing or not a number")
				}
			}

			if isFinite(item.Discount) && (item.Discount < 0 || item.Discount > 100) {
				add(SeverityWarning, PurchaseRecordsCollection, i, j, "discount", formatNumber(item.Discount), "Discount is outside 0-100")
			}
			if isFinite(item.Quantity) && item.Quantity <= 0 {
				add(SeverityWarning, PurchaseRecordsCollection, i, j, "quantity", formatNumber(item.Quantity), "Quantity is not positive")
			}
		}
	}

	return issues
}

// CountIssues returns the number of errors and warnings in issues.
func CountIssues(issues []Issue) (errorCount, warningCount int) {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			errorCount++
		} else {
			warningCount++
		}
	}
	return errorCount, warningCount
}

// FormatIssues formats issues for display or logging.
func FormatIssues(issues []Issue) string {
	if len(issues) == 0 {
		return "No issues found."
	}

	var builder strings.Builder
	errorCount, warningCount := CountIssues(issues)
	fmt.Fprintf(&builder, "Inspection found %d error(s) and %d warning(s):\n\n", errorCount, warningCount)
	for i, issue := range issues {
		fmt.Fprintf(&builder, "%d. %s\n", i+1, issue.String())
	}
	return builder.String()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func formatNumber(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
