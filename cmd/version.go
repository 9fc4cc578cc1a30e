// =============================================================================
// Seller Analytics - Version Command
// =============================================================================
//
// This file defines the 'version' command.
//
// COMMAND USAGE:
//   salesanalyzer version          # Version, revision, Go version, formats
//   salesanalyzer version --short  # Version only, for scripts
//
// The revision and build time come from ldflags when set, otherwise from the
// VCS stamp the Go toolchain embeds in the binary.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/seller-analytics/internal/dataset"
	"github.com/ginjaninja78/seller-analytics/internal/report"
)

// Build metadata, overridable with
//   -ldflags "-X 'github.com/ginjaninja78/seller-analytics/cmd.Version=1.2.0'"
var (
	Version   = "1.0.0"
	Commit    = ""
	BuildDate = ""
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the analyzer version",
	Long: `Display the analyzer version, the revision it was built from, the Go
runtime version and the supported dataset and report formats.`,

	Run: func(cmd *cobra.Command, args []string) {
		writeVersion(cmd.OutOrStdout(), currentBuild(), versionShort)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
}

// buildInfo is what the version command reports.
type buildInfo struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	Modified  bool
}

// currentBuild merges the ldflags values with the embedded VCS stamp.
// Values set through ldflags win.
func currentBuild() buildInfo {
	b := buildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = setting.Value
			}
		case "vcs.time":
			if b.BuildDate == "" {
				b.BuildDate = setting.Value
			}
		case "vcs.modified":
			b.Modified = setting.Value == "true"
		}
	}
	return b
}

func writeVersion(w io.Writer, b buildInfo, short bool) {
	if short {
		fmt.Fprintln(w, b.Version)
		return
	}

	commit := b.Commit
	switch {
	case commit == "":
		commit = "unknown"
	case len(commit) > 12:
		commit = commit[:12]
	}
	if b.Modified {
		commit += " (modified)"
	}

	built := b.BuildDate
	if built == "" {
		built = "unknown"
	}

	fmt.Fprintf(w, "salesanalyzer %s\n", b.Version)
	fmt.Fprintf(w, "  commit:  %s\n", commit)
	fmt.Fprintf(w, "  built:   %s\n", built)
	fmt.Fprintf(w, "  go:      %s\n", b.GoVersion)
	fmt.Fprintf(w, "  input:   %s\n", strings.Join([]string{dataset.FormatJSON, dataset.FormatCSV, dataset.FormatXLSX}, ", "))
	fmt.Fprintf(w, "  output:  %s\n", strings.Join(report.Formats, ", "))
}
