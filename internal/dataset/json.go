package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/seller-analytics/internal/types"
)

// LoadJSON reads a dataset document from a file.
func LoadJSON(path string) (*types.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return DecodeJSON(file)
}

// DecodeJSON reads a dataset document from r. Missing collections decode as
// empty; missing or non-numeric numeric fields decode as NaN.
func DecodeJSON(r io.Reader) (*types.Dataset, error) {
	var ds types.Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to decode JSON dataset: %w", err)
	}
	return &ds, nil
}
