package cmd

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/nlplaces/internal/pipeline"
)

var capitalCmd = &cobra.Command{
	Use:   "capital",
	Short: "Generate the flat neighbourhood list for the capital city",
	Long: `Capital downloads the city-scoped neighbourhood CSV, detects the code and
name columns and writes a single flat artifact with every neighbourhood of the
capital. Other files under the output root are left untouched.

Columns are detected as follows:
  - Code column: values carrying the configured code prefix, or a known header
  - Name column: a known header, or the non-numeric column with most distinct values

Example:
  nlplaces capital --output out/locations`,
	RunE: runCapital,
}

func init() {
	rootCmd.AddCommand(capitalCmd)
}

func runCapital(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync()

	runner, err := pipeline.NewCapitalRunner(cfg, newFetcher(cfg), log)
	if err != nil {
		return fmt.Errorf("failed to create capital runner: %w", err)
	}

	ctx, cancel := signalContext(log)
	defer cancel()

	result, err := runner.Execute(ctx)
	if err != nil {
		return fmt.Errorf("capital failed: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "\n=== Capital Complete ===\n")
	fmt.Fprintf(w, "Encoding: %s\n", result.Encoding)
	fmt.Fprintf(w, "Columns: %s\n", strings.Join(result.Header, ", "))
	fmt.Fprintf(w, "Rows: %d\n", result.Rows)
	fmt.Fprintln(w, color.Green.Sprintf("✓ Wrote %d neighbourhoods to %s", result.Neighbourhoods, result.Path))
	return nil
}
