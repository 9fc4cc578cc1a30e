// =============================================================================
// Seller Analytics - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (salesanalyzer)
//   ├── analyzeCmd  (salesanalyzer analyze)
//   ├── validateCmd (salesanalyzer validate)
//   └── versionCmd  (salesanalyzer version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration for subcommands
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/seller-analytics/internal/config"
	"github.com/ginjaninja78/seller-analytics/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose forces debug logging when set.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "salesanalyzer",
	Short: "Seller Analytics - revenue, profit, top products and bonuses per seller",
	Long: `Seller Analytics computes per-seller sales statistics from three record
collections: sellers, products and purchase receipts.

For every seller it reports revenue, profit, the number of line items sold,
the ten best-selling products and a bonus based on the seller's profit rank.

Datasets can be JSON documents, XLSX workbooks, or directories of CSV files.
Reports can be written as JSON, YAML, XML or XLSX.

Example Usage:
  salesanalyzer analyze                          # Analyze every dataset in the input directory
  salesanalyzer analyze --file march.json        # Analyze a single dataset
  salesanalyzer analyze --file march.json --stdout --format yaml
  salesanalyzer validate --file march.json       # Check a dataset without writing a report`,

	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file; defaults apply when it is missing",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadRuntime loads the configuration and builds the logger shared by the
// subcommands.
func loadRuntime() (*config.MainConfig, zerolog.Logger, error) {
	cfg, err := config.LoadMainConfigOrDefault(cfgFile)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load main config: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	return cfg, logging.NewLogger(cfg.LogFormat, level), nil
}
