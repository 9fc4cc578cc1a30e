package types

import (
	"bytes"
	"encoding/json"
	"math"
)

// UnmarshalJSON decodes a line item, mapping missing or non-numeric price,
// discount and quantity values to NaN instead of failing the whole document.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		SKU       string          `json:"sku"`
		SalePrice json.RawMessage `json:"sale_price"`
		Discount  json.RawMessage `json:"discount"`
		Quantity  json.RawMessage `json:"quantity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	li.SKU = raw.SKU
	li.SalePrice = decodeNumber(raw.SalePrice)
	li.Discount = decodeNumber(raw.Discount)
	li.Quantity = decodeNumber(raw.Quantity)
	return nil
}

// UnmarshalJSON decodes a product. A missing or non-numeric purchase_price
// becomes NaN; retail_price is informational and defaults to zero.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw struct {
		SKU           string          `json:"sku"`
		Name          string          `json:"name"`
		Category      string          `json:"category"`
		PurchasePrice json.RawMessage `json:"purchase_price"`
		RetailPrice   json.RawMessage `json:"retail_price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.SKU = raw.SKU
	p.Name = raw.Name
	p.Category = raw.Category
	p.PurchasePrice = decodeNumber(raw.PurchasePrice)
	p.RetailPrice = decodeNumber(raw.RetailPrice)
	if math.IsNaN(p.RetailPrice) {
		p.RetailPrice = 0
	}
	return nil
}

// decodeNumber returns the JSON number held in raw, or NaN when raw is empty,
// null, or any other JSON type.
func decodeNumber(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return math.NaN()
	}

	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return math.NaN()
	}
	return value
}
