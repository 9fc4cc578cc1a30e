// =============================================================================
// Seller Analytics - Dataset Loading
// =============================================================================
//
// This package builds a types.Dataset from one of the supported sources:
//
//   | Format | Source                                                        |
//   |--------|---------------------------------------------------------------|
//   | json   | One document: {"sellers", "products", "purchase_records"}    |
//   | csv    | A directory with sellers.csv, products.csv,                   |
//   |        | purchase_records.csv (one row per receipt line item)          |
//   | xlsx   | A workbook with sheets sellers, products, purchase_records    |
//
// Loaders only check shape (the file can be read, numbers are numbers where
// they can be). Semantic checks belong to the analyzer (fatal) and to
// Inspect (advisory).
//
// =============================================================================

package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/seller-analytics/internal/config"
	"github.com/ginjaninja78/seller-analytics/internal/types"
)

// Supported input formats.
const (
	FormatAuto = "auto"
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Collection names, used as CSV file stems and XLSX sheet names.
const (
	SellersCollection         = "sellers"
	ProductsCollection        = "products"
	PurchaseRecordsCollection = "purchase_records"
)

// Load reads the dataset at path using the given format. FormatAuto picks the
// loader from the path: directories are CSV, otherwise the file extension.
//
// PARAMETERS:
//   - path: A JSON file, an XLSX workbook, or a directory of CSV files.
//   - format: One of the Format* constants.
//   - settings: CSV parsing settings (ignored for other formats).
//
// RETURNS:
//   - The loaded dataset.
//   - An error if the format is unknown or the source cannot be read.
func Load(path, format string, settings config.CSVSettings) (*types.Dataset, error) {
	if format == "" || format == FormatAuto {
		detected, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	switch format {
	case FormatJSON:
		return LoadJSON(path)
	case FormatCSV:
		return LoadCSVDir(path, settings)
	case FormatXLSX:
		return LoadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

// DetectFormat returns the format implied by path.
func DetectFormat(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat dataset: %w", err)
	}
	if info.IsDir() {
		return FormatCSV, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("cannot detect dataset format of %s", path)
	}
}

// Name returns a short dataset name for use in file names and logs: the base
// name without extension.
func Name(path string) string {
	base := filepath.Base(filepath.Clean(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
