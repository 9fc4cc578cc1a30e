// =============================================================================
// Seller Analytics - Shared Types
// =============================================================================
//
// This package contains the record types shared by the dataset loaders, the
// analytics engine and the report writers. Keeping them here avoids import
// cycles between:
//   - dataset   (builds Dataset values from JSON / CSV / XLSX)
//   - analytics (turns a Dataset into SellerReport values)
//   - report    (serializes SellerReport values)
//
// NUMERIC FIELDS:
//   Numeric input fields that are missing or not numbers are carried as NaN.
//   The revenue calculation rejects non-finite values with a typed error, so
//   "absent" and "not a number" surface the same way.
//
// =============================================================================

package types

// =============================================================================
// INPUT RECORDS
// =============================================================================

// Seller is a single entry of the sellers collection.
type Seller struct {
	// ID uniquely identifies the seller. Receipts reference it via SellerID.
	ID string `json:"id" yaml:"id"`

	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`

	// StartDate and Position are carried through from the source data but
	// do not take part in the analysis.
	StartDate string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	Position  string `json:"position,omitempty" yaml:"position,omitempty"`
}

// FullName returns the name used in reports: first and last name joined by
// a single space.
func (s Seller) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Product is a single catalog entry.
type Product struct {
	// SKU is the stock-keeping unit, unique per product.
	SKU string `json:"sku" yaml:"sku"`

	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// PurchasePrice is the per-unit cost. NaN when absent in the source.
	PurchasePrice float64 `json:"purchase_price" yaml:"purchase_price"`

	// RetailPrice is informational only.
	RetailPrice float64 `json:"retail_price,omitempty" yaml:"retail_price,omitempty"`
}

// LineItem is one product entry within a receipt.
type LineItem struct {
	SKU string `json:"sku" yaml:"sku"`

	// SalePrice is the per-unit price before discount.
	SalePrice float64 `json:"sale_price" yaml:"sale_price"`

	// Discount is a percentage in the range 0-100.
	Discount float64 `json:"discount" yaml:"discount"`

	// Quantity is the number of units sold.
	Quantity float64 `json:"quantity" yaml:"quantity"`
}

// PurchaseRecord is a receipt. It belongs to exactly one seller and holds an
// ordered sequence of line items.
type PurchaseRecord struct {
	ReceiptID  string `json:"receipt_id" yaml:"receipt_id"`
	Date       string `json:"date,omitempty" yaml:"date,omitempty"`
	SellerID   string `json:"seller_id" yaml:"seller_id"`
	CustomerID string `json:"customer_id,omitempty" yaml:"customer_id,omitempty"`

	Items []LineItem `json:"items" yaml:"items"`

	TotalAmount   float64 `json:"total_amount,omitempty" yaml:"total_amount,omitempty"`
	TotalDiscount float64 `json:"total_discount,omitempty" yaml:"total_discount,omitempty"`
}

// Dataset is the complete input of one analysis run.
type Dataset struct {
	Sellers         []Seller         `json:"sellers" yaml:"sellers"`
	Products        []Product        `json:"products" yaml:"products"`
	PurchaseRecords []PurchaseRecord `json:"purchase_records" yaml:"purchase_records"`
}

// LineItemCount returns the total number of line items across all receipts.
func (d *Dataset) LineItemCount() int {
	if d == nil {
		return 0
	}
	count := 0
	for _, record := range d.PurchaseRecords {
		count += len(record.Items)
	}
	return count
}

// =============================================================================
// OUTPUT RECORDS
// =============================================================================

// TopProduct is one entry of a seller's best-selling products.
type TopProduct struct {
	SKU      string  `json:"sku" yaml:"sku"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
}

// SellerReport is the final, per-seller analysis result.
// Monetary values are rounded to 2 decimal places.
type SellerReport struct {
	SellerID    string       `json:"seller_id" yaml:"seller_id"`
	Name        string       `json:"name" yaml:"name"`
	Revenue     float64      `json:"revenue" yaml:"revenue"`
	Profit      float64      `json:"profit" yaml:"profit"`
	SalesCount  int          `json:"sales_count" yaml:"sales_count"`
	TopProducts []TopProduct `json:"top_products" yaml:"top_products"`
	Bonus       float64      `json:"bonus" yaml:"bonus"`
}
