// =============================================================================
// Seller Analytics - CSV Dataset Loader
// =============================================================================
//
// A CSV dataset is a directory holding one file per collection:
//   sellers.csv, products.csv, purchase_records.csv
//
// Each file is parsed with the shared CSVSettings: the delimiter (comma,
// pipe, tab, semicolon or any single character) and the row where data
// starts. The first row always holds the headers.
//
// A missing file yields an empty collection. The analyzer reports empty
// collections as validation errors, so the caller gets one consistent
// message whichever source format was used.
//
// =============================================================================

package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/seller-analytics/internal/config"
	"github.com/ginjaninja78/seller-analytics/internal/types"
)

// =============================================================================
// CSV TABLE STRUCTURE
// =============================================================================

// Table represents one parsed CSV file.
type Table struct {
	// Headers contains the column headers as written in the file.
	Headers []string

	// Rows contains the non-blank data rows keyed by normalized header.
	Rows []Row
}

// =============================================================================
// DIRECTORY LOADER
// =============================================================================

// LoadCSVDir reads a dataset from a directory of CSV files.
//
// PARAMETERS:
//   - dir: The directory containing sellers.csv, products.csv and
//     purchase_records.csv.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - The loaded dataset. Missing files give empty collections.
//   - An error if a present file cannot be read or parsed.
func LoadCSVDir(dir string, settings config.CSVSettings) (*types.Dataset, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat dataset directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	load := func(collection string) ([]Row, error) {
		path := filepath.Join(dir, collection+".csv")
		table, err := ParseCSV(path, settings)
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", collection, err)
		}
		return table.Rows, nil
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

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseCSV reads a CSV file into a Table. Row 1 holds the headers and data
// starts at settings.DataStartRow; rows in between (export banners, notes)
// are ignored. An empty file yields a Table with no rows.
func ParseCSV(filePath string, settings config.CSVSettings) (*Table, error) {
	comma, err := delimiterRune(settings.Delimiter)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return &Table{Rows: []Row{}}, nil
	}

	body := records[1:]
	if skip := settings.DataStartRow - 2; skip > 0 {
		body = body[min(skip, len(body)):]
	}

	headers := cleanHeaders(records[0])
	return &Table{Headers: headers, Rows: tableRows(headers, body)}, nil
}

// delimiterRune resolves a configured delimiter. Besides any single
// character, the names tab, pipe, semicolon and comma are accepted.
func delimiterRune(delimiter string) (rune, error) {
	switch strings.ToLower(delimiter) {
	case "", ",", "comma":
		return ',', nil
	case "\\t", "\t", "tab":
		return '\t', nil
	case "|", "pipe":
		return '|', nil
	case ";", "semicolon":
		return ';', nil
	}

	if utf8.RuneCountInString(delimiter) != 1 {
		return 0, fmt.Errorf("unsupported CSV delimiter %q", delimiter)
	}
	r, _ := utf8.DecodeRuneInString(delimiter)
	return r, nil
}
