// =============================================================================
// Seller Analytics - Main Entry Point
// =============================================================================
//
// USAGE:
//   salesanalyzer analyze   - Analyze every dataset in the input directory
//   salesanalyzer validate  - Validate the configuration and a dataset
//   salesanalyzer version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/                : CLI command definitions (Cobra)
//   - internal/analytics  : Revenue, bonus and seller ranking
//   - internal/dataset    : JSON, CSV and XLSX dataset loaders
//   - internal/report     : JSON, YAML, XML and XLSX report writers
//   - internal/runner     : Single-dataset pipeline
//   - pkg/utils           : File discovery, archival and naming
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/seller-analytics/cmd"
)

func main() {
	cmd.Execute()
}
