package cmd

import (
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/nlplaces/internal/config"
	"github.com/dbsmedya/nlplaces/internal/reconcile"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and reconciliation tables",
	Long: `Validate checks the configuration file and the reconciliation tables
without downloading anything.

Checks performed:
  - Configuration syntax and required fields
  - Source URLs are absolute http(s) URLs
  - Output root and artifact names
  - Reconciliation tables: remap and override targets are canonical provinces

Example:
  nlplaces validate --config nlplaces.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.OutputRoot, overrides.SkipVerify)

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "\n=== Configuration Validation ===\n")
	fmt.Fprintf(w, "Config file: %s\n", configFile)

	hasErrors := false
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(w, color.Red.Sprintf("✗ %v", err))
		hasErrors = true
	} else {
		fmt.Fprintln(w, color.Green.Sprint("✓ Configuration is valid"))
	}

	tablesSource := cfg.Reconcile.TablesFile
	if tablesSource == "" {
		tablesSource = "embedded"
	}
	tables, err := reconcile.LoadTablesFile(cfg.Reconcile.TablesFile)
	if err != nil {
		fmt.Fprintln(w, color.Red.Sprintf("✗ Reconciliation tables (%s): %v", tablesSource, err))
		hasErrors = true
	} else {
		fmt.Fprintf(w, "Reconciliation tables: %s\n", tablesSource)
		fmt.Fprintf(w, "  Provinces: %d\n", len(tables.Provinces))
		fmt.Fprintf(w, "  Region remaps: %d\n", len(tables.RegionRemap))
		fmt.Fprintf(w, "  Overrides: %d\n", len(tables.Overrides))
		fmt.Fprintln(w, color.Green.Sprint("✓ Reconciliation tables are valid"))
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}

	fmt.Fprintln(w, "=== Validation Complete ===")
	return nil
}
