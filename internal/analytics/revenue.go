package analytics

import (
	"math"

	"github.com/ginjaninja78/seller-analytics/internal/types"
)

// RevenueStrategy computes the revenue of one line item given its catalog entry.
type RevenueStrategy interface {
	Revenue(item *types.LineItem, product *types.Product) (float64, error)
}

// RevenueFunc adapts an ordinary function to RevenueStrategy.
type RevenueFunc func(item *types.LineItem, product *types.Product) (float64, error)

// Revenue calls f(item, product).
func (f RevenueFunc) Revenue(item *types.LineItem, product *types.Product) (float64, error) {
	return f(item, product)
}

// DefaultRevenue is the strategy used when Options.Revenue is nil.
var DefaultRevenue RevenueStrategy = RevenueFunc(ComputeRevenue)

// ComputeRevenue returns the discounted revenue of a line item:
//
//	(sale_price - sale_price*discount/100) * quantity
//
// The product is required even though only its purchase price is checked, so
// that revenue and profit are always derived from the same validated pair.
func ComputeRevenue(item *types.LineItem, product *types.Product) (float64, error) {
	if err := checkLine(item, product); err != nil {
		return 0, err
	}

	discountAmount := item.SalePrice * item.Discount / 100
	return (item.SalePrice - discountAmount) * item.Quantity, nil
}

// ComputeProfit returns revenue minus the purchase cost of the sold quantity.
func ComputeProfit(item *types.LineItem, product *types.Product, revenue float64) float64 {
	return revenue - product.PurchasePrice*item.Quantity
}

func checkLine(item *types.LineItem, product *types.Product) error {
	if item == nil {
		return &InvalidInputError{Argument: "item"}
	}
	if product == nil {
		return &InvalidInputError{Argument: "product"}
	}

	fields := []struct {
		name  string
		value float64
	}{
		{"sale_price", item.SalePrice},
		{"discount", item.Discount},
		{"quantity", item.Quantity},
		{"purchase_price", product.PurchasePrice},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &NonNumericFieldError{Field: f.name, Value: f.value}
		}
	}
	return nil
}
