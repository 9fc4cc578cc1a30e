// =============================================================================
// Seller Analytics - Report Output
// =============================================================================
//
// This package serializes the analyzer's seller reports. Every format keeps
// the report order (profit descending) and the snake_case field names:
//
//   | Format | Writer     | Layout                                            |
//   |--------|------------|---------------------------------------------------|
//   | json   | writeJSON  | Indented array of seller objects                  |
//   | yaml   | writeYAML  | Sequence of seller mappings                       |
//   | xml    | writeXML   | <salesReport> with one <seller n="rank"> each     |
//   | xlsx   | writeXLSX  | Sheets "sellers" and "top_products"               |
//
// =============================================================================

package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/seller-analytics/internal/types"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXML  = "xml"
	FormatXLSX = "xlsx"
)

// Formats lists the supported output formats.
var Formats = []string{FormatJSON, FormatYAML, FormatXML, FormatXLSX}

// Write serializes reports to w in the given format.
//
// PARAMETERS:
//   - w: The destination.
//   - reports: The seller reports, in report order.
//   - format: One of the Format* constants.
//
// RETURNS:
//   - An error if the format is unknown or writing fails.
func Write(w io.Writer, reports []types.SellerReport, format string) error {
	if reports == nil {
		reports = []types.SellerReport{}
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, reports)
	case FormatYAML:
		return writeYAML(w, reports)
	case FormatXML:
		return writeXML(w, reports)
	case FormatXLSX:
		return writeXLSX(w, reports)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// Extension returns the file extension, with leading dot, for format.
func Extension(format string) string {
	switch format {
	case FormatYAML:
		return ".yaml"
	case FormatXML:
		return ".xml"
	case FormatXLSX:
		return ".xlsx"
	default:
		return ".json"
	}
}

func writeJSON(w io.Writer, reports []types.SellerReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(reports); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, reports []types.SellerReport) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(reports); err != nil {
		return fmt.Errorf("failed to encode YAML report: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode YAML report: %w", err)
	}
	return nil
}

// =============================================================================
// SUMMARY
// =============================================================================

// Totals aggregates a report for console output.
type Totals struct {
	Sellers    int     `json:"sellers" yaml:"sellers"`
	Revenue    float64 `json:"revenue" yaml:"revenue"`
	Profit     float64 `json:"profit" yaml:"profit"`
	Bonus      float64 `json:"bonus" yaml:"bonus"`
	SalesCount int     `json:"sales_count" yaml:"sales_count"`

	// TopSeller is the seller ranked first, empty for an empty report.
	TopSeller string `json:"top_seller" yaml:"top_seller"`
}

// Summary totals the seller reports.
func Summary(reports []types.SellerReport) Totals {
	totals := Totals{Sellers: len(reports)}
	for _, r := range reports {
		totals.Revenue += r.Revenue
		totals.Profit += r.Profit
		totals.Bonus += r.Bonus
		totals.SalesCount += r.SalesCount
	}
	if len(reports) > 0 {
		totals.TopSeller = reports[0].Name
	}
	return totals
}

// String formats the totals on a single line.
func (t Totals) String() string {
	return fmt.Sprintf("%d seller(s), revenue %.2f, profit %.2f, bonus %.2f, %d sale(s)",
		t.Sellers, t.Revenue, t.Profit, t.Bonus, t.SalesCount)
}
