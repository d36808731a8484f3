package cmd

import (
	"fmt"
	"io"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/nlplaces/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the per-municipality location files",
	Long: `Generate downloads the CBS neighbourhood list and the Wikipedia municipality
list, resolves every municipality to its province and writes one LOCATIONS.js
file per municipality.

The generate process follows these steps:
  1. Download the nationwide neighbourhood list (CBS)
  2. Download the municipality list (Wikipedia) and build the province mapping
  3. Resolve every municipality, aborting when any has no province
  4. Clear the output root and write <province>/<municipality>/LOCATIONS.js
  5. Verify the written tree (count or SHA256)

Example:
  nlplaces generate --config nlplaces.yaml --output out/locations`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Infow("Starting generate",
		"config", GetConfigFile(),
		"output", cfg.Output.Root,
	)

	orch, err := pipeline.NewOrchestrator(cfg, newFetcher(cfg), log)
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	if err := orch.Initialize(); err != nil {
		return fmt.Errorf("orchestrator initialization failed: %w", err)
	}

	ctx, cancel := signalContext(log)
	defer cancel()

	result, err := orch.Execute(ctx)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	printGenerateResult(cmd.OutOrStdout(), result)
	return nil
}

func printGenerateResult(w io.Writer, result *pipeline.Result) {
	fmt.Fprintf(w, "\n=== Generate Complete ===\n")
	fmt.Fprintf(w, "Output: %s\n", result.Root)
	fmt.Fprintf(w, "Duration: %s\n", result.Duration)
	fmt.Fprintf(w, "Provinces: %d\n", result.Provinces)
	fmt.Fprintf(w, "Municipalities: %d\n", result.Municipalities)
	fmt.Fprintf(w, "Neighbourhoods: %d\n", result.Neighbourhoods)
	fmt.Fprintf(w, "Files written: %d\n", result.FilesWritten)
	if result.Skipped > 0 {
		fmt.Fprintln(w, color.Yellow.Sprintf("Skipped (no neighbourhoods): %d", result.Skipped))
	}
	if result.Digest != nil {
		fmt.Fprintf(w, "SHA256: %s\n", result.Digest.SHA256)
	}
	fmt.Fprintln(w, color.Green.Sprintf("✓ Generated %d municipality files in %s", result.FilesWritten, result.Root))
}
