package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/nlplaces/internal/emit"
	"github.com/dbsmedya/nlplaces/internal/pipeline"
	"github.com/dbsmedya/nlplaces/internal/reconcile"
)

var dryrunDetail bool

var dryrunCmd = &cobra.Command{
	Use:   "dry-run",
	Short: "Resolve the hierarchy without writing any files",
	Long: `Dry-run downloads both sources and resolves every municipality to its
province, then reports what generate would write without touching the output
directory.

The dry-run shows:
  - Sources with their size and row counts
  - Municipalities and neighbourhoods per province
  - Municipalities resolved through the override table or a fallback name variant
  - With --detail: every municipality and the province mapping in first-seen order

Example:
  nlplaces dry-run --detail`,
	RunE: runDryrun,
}

func init() {
	dryrunCmd.Flags().BoolVar(&dryrunDetail, "detail", false,
		"List every municipality with its target path")

	rootCmd.AddCommand(dryrunCmd)
}

func runDryrun(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync()

	orch, err := pipeline.NewOrchestrator(cfg, newFetcher(cfg), log)
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	if err := orch.Initialize(); err != nil {
		return fmt.Errorf("orchestrator initialization failed: %w", err)
	}

	ctx, cancel := signalContext(log)
	defer cancel()

	plan, err := orch.Plan(ctx)
	if err != nil {
		return fmt.Errorf("dry-run failed: %w", err)
	}

	displayPlan(cmd.OutOrStdout(), plan, cfg.Output.Root, dryrunDetail)
	return nil
}

type provinceSummary struct {
	municipalities int
	empty          int
	neighbourhoods int
}

// displayPlan prints the resolved hierarchy as aligned tables.
func displayPlan(w io.Writer, plan *pipeline.Plan, root string, detail bool) {
	fmt.Fprintf(w, "\n=== Execution Plan (dry run) ===\n")
	fmt.Fprintf(w, "Output root: %s\n\n", root)

	sources := [][]string{{"SOURCE", "BYTES", "ROWS", "URL"}}
	for _, s := range plan.Sources {
		sources = append(sources, []string{s.Name, strconv.Itoa(s.Bytes), strconv.Itoa(s.Rows), s.URL})
	}
	writeTable(w, sources)
	fmt.Fprintln(w)

	summary := make(map[string]*provinceSummary)
	for _, e := range plan.Entities {
		s, ok := summary[e.Region]
		if !ok {
			s = &provinceSummary{}
			summary[e.Region] = s
		}
		s.municipalities++
		s.neighbourhoods += len(e.Children)
		if len(e.Children) == 0 {
			s.empty++
		}
	}

	provinces := [][]string{{"PROVINCE", "MUNICIPALITIES", "EMPTY", "NEIGHBOURHOODS"}}
	for _, p := range plan.Provinces() {
		s := summary[p]
		provinces = append(provinces, []string{
			p,
			strconv.Itoa(s.municipalities),
			strconv.Itoa(s.empty),
			strconv.Itoa(s.neighbourhoods),
		})
	}
	provinces = append(provinces, []string{
		"TOTAL",
		strconv.Itoa(len(plan.Entities)),
		"",
		strconv.Itoa(plan.Neighbourhoods()),
	})
	writeTable(w, provinces)

	if detail {
		fmt.Fprintln(w)
		rows := [][]string{{"CODE", "MUNICIPALITY", "PROVINCE", "NEIGHBOURHOODS", "PATH"}}
		for _, e := range plan.Entities {
			rows = append(rows, []string{
				e.Code,
				e.Name,
				e.Region,
				strconv.Itoa(len(e.Children)),
				emit.Slugify(e.Region) + "/" + emit.Slugify(e.Name),
			})
		}
		writeTable(w, rows)

		fmt.Fprintf(w, "\n=== Province Mapping (first-seen order) ===\n")
		mapping := [][]string{{"NAME", "PROVINCE", "SOURCE"}}
		plan.Mapping.Each(func(name string, a reconcile.Assignment) {
			mapping = append(mapping, []string{name, a.Region, string(a.Source)})
		})
		writeTable(w, mapping)
	}

	if overrides := plan.Overrides(); len(overrides) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Resolved by override: %d\n", len(overrides))
		for _, r := range overrides {
			fmt.Fprintf(w, "  - %s\n", r.Name)
		}
	}

	if fallbacks := plan.Fallbacks(); len(fallbacks) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, color.Yellow.Sprintf("Resolved by fallback variant: %d", len(fallbacks)))
		for _, r := range fallbacks {
			fmt.Fprintf(w, "  - %s -> %s\n", r.Name, r.Matched)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, color.Green.Sprintf("✓ All %d municipalities resolved", len(plan.Entities)))
}

// writeTable writes rows with columns padded to their display width. Names
// such as "Súdwest-Fryslân" are wider in bytes than on screen.
func writeTable(w io.Writer, rows [][]string) {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	for r, row := range rows {
		line := ""
		for i, cell := range row {
			if i == len(row)-1 {
				line += cell
				break
			}
			line += runewidth.FillRight(cell, widths[i]) + "  "
		}
		if r == 0 {
			line = color.OpBold.Sprint(line)
		}
		fmt.Fprintln(w, line)
	}
}
