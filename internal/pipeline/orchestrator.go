// Package pipeline wires the fetch, reconcile and emit stages into one run.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dbsmedya/nlplaces/internal/cbs"
	"github.com/dbsmedya/nlplaces/internal/config"
	"github.com/dbsmedya/nlplaces/internal/emit"
	"github.com/dbsmedya/nlplaces/internal/fetch"
	"github.com/dbsmedya/nlplaces/internal/htmltable"
	"github.com/dbsmedya/nlplaces/internal/logger"
	"github.com/dbsmedya/nlplaces/internal/reconcile"
	"github.com/dbsmedya/nlplaces/internal/reference"
	"github.com/dbsmedya/nlplaces/internal/verifier"
)

// SourceStats describes one fetched source.
type SourceStats struct {
	Name     string
	URL      string
	Bytes    int
	Rows     int
	Duration time.Duration
}

// Plan is the reconciled hierarchy before anything is written.
type Plan struct {
	Sources     []SourceStats
	Mapping     *reconcile.Mapping
	Entities    []reconcile.Entity
	Resolutions []reconcile.Resolution
}

// Provinces returns the sorted distinct provinces of the plan's entities.
func (p *Plan) Provinces() []string {
	seen := make(map[string]struct{})
	for _, e := range p.Entities {
		seen[e.Region] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// Neighbourhoods returns the total number of children across all entities.
func (p *Plan) Neighbourhoods() int {
	n := 0
	for _, e := range p.Entities {
		n += len(e.Children)
	}
	return n
}

// Fallbacks returns the resolutions that needed a name variant.
func (p *Plan) Fallbacks() []reconcile.Resolution {
	var out []reconcile.Resolution
	for _, r := range p.Resolutions {
		if r.Matched != r.Name {
			out = append(out, r)
		}
	}
	return out
}

// Overrides returns the resolutions whose province came from the override
// table.
func (p *Plan) Overrides() []reconcile.Resolution {
	var out []reconcile.Resolution
	for _, r := range p.Resolutions {
		if r.Source == reconcile.SourceOverride {
			out = append(out, r)
		}
	}
	return out
}

// Result contains statistics and status of a generate run.
type Result struct {
	StartedAt      time.Time
	CompletedAt    time.Time
	Duration       time.Duration
	Root           string
	Municipalities int
	Provinces      int
	Neighbourhoods int
	FilesWritten   int
	Skipped        int // municipalities without neighbourhoods
	Digest         *verifier.TreeDigest
	Success        bool
}

// Orchestrator coordinates a full run: fetch both sources, reconcile, clear the
// destination and write one artifact per municipality. The orchestrator must be
// initialized with Initialize() before use.
type Orchestrator struct {
	config      *config.Config
	fetcher     fetch.Fetcher
	logger      *logger.Logger
	reconciler  *reconcile.Reconciler
	writer      *emit.Writer
	verifier    *verifier.Verifier
	initialized bool
}

// NewOrchestrator creates a new orchestrator. A nil logger falls back to the
// default logger.
func NewOrchestrator(cfg *config.Config, fetcher fetch.Fetcher, log *logger.Logger) (*Orchestrator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}

	return &Orchestrator{
		config:  cfg,
		fetcher: fetcher,
		logger:  log,
	}, nil
}

// Initialize loads the reconciliation tables and prepares the writer and verifier.
func (o *Orchestrator) Initialize() error {
	if o.initialized {
		return nil
	}

	tables, err := reconcile.LoadTablesFile(o.config.Reconcile.TablesFile)
	if err != nil {
		return fmt.Errorf("failed to load reconciliation tables: %w", err)
	}

	o.reconciler, err = reconcile.New(tables)
	if err != nil {
		return err
	}

	o.writer, err = emit.NewWriter(o.config.Output.Root, o.config.Output.ArtifactName, o.config.Output.Country)
	if err != nil {
		return fmt.Errorf("failed to create writer: %w", err)
	}

	o.verifier, err = verifier.NewVerifier(verifier.VerificationMethod(o.config.VerificationMethod()), o.logger)
	if err != nil {
		return fmt.Errorf("failed to create verifier: %w", err)
	}

	o.initialized = true

	o.logger.Debugw("Orchestrator initialized",
		"overrides", len(tables.Overrides),
		"region_remap", len(tables.RegionRemap),
		"tables_file", o.config.Reconcile.TablesFile,
	)
	return nil
}

// Plan fetches both sources and reconciles them without touching the output
// directory. Any unresolved municipality or non-canonical province fails the
// plan.
func (o *Orchestrator) Plan(ctx context.Context) (*Plan, error) {
	if !o.initialized {
		return nil, fmt.Errorf("orchestrator not initialized")
	}
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}

	plan := &Plan{}

	o.logger.Info("Downloading nationwide neighbourhood list...")
	records, stats, err := o.fetchRecords(ctx)
	if err != nil {
		return nil, err
	}
	plan.Sources = append(plan.Sources, stats)

	o.logger.Info("Downloading municipality list...")
	table, stats, err := o.fetchReference(ctx)
	if err != nil {
		return nil, err
	}
	plan.Sources = append(plan.Sources, stats)

	plan.Mapping = reconcile.BuildMapping(table, o.reconciler.Tables())
	o.logger.Debugw("Built province mapping", "entries", plan.Mapping.Len())

	entities, resolutions, err := o.reconciler.Resolve(records, plan.Mapping)
	if err != nil {
		return nil, err
	}
	plan.Entities = entities
	plan.Resolutions = resolutions

	if err := o.reconciler.CheckRegions(entities); err != nil {
		return nil, err
	}

	for _, r := range plan.Fallbacks() {
		o.logger.Debugw("Resolved by fallback variant", "municipality", r.Name, "matched", r.Matched)
	}
	for _, r := range plan.Overrides() {
		o.logger.Debugw("Resolved by override", "municipality", r.Name, "matched", r.Matched)
	}

	return plan, nil
}

// Execute runs the plan, clears the destination root and writes the artifacts.
// Nothing is written when planning fails.
func (o *Orchestrator) Execute(ctx context.Context) (*Result, error) {
	result := &Result{
		StartedAt: time.Now(),
		Root:      o.config.Output.Root,
	}

	plan, err := o.Plan(ctx)
	if err != nil {
		return nil, err
	}

	if err := o.writer.Reset(); err != nil {
		return nil, err
	}

	written := make(map[string]string)
	for _, e := range plan.Entities {
		path, err := o.writer.WriteEntity(e)
		if err != nil {
			return nil, err
		}
		if path == "" {
			result.Skipped++
			continue
		}
		if prev, dup := written[path]; dup {
			o.logger.WithEntity(e.Code, e.Name).Warnw("Artifact path collides with another municipality",
				"path", path, "previous", prev)
		} else {
			result.FilesWritten++
		}
		written[path] = e.Code
	}

	result.Municipalities = len(plan.Entities)
	result.Provinces = len(plan.Provinces())
	result.Neighbourhoods = plan.Neighbourhoods()

	result.Digest, err = o.verifier.Verify(o.writer.Root(), result.FilesWritten, o.config.Verification.ExpectedSHA256)
	if err != nil {
		return nil, err
	}

	result.CompletedAt = time.Now()
	result.Duration = result.CompletedAt.Sub(result.StartedAt)
	result.Success = true

	o.logger.Infow("Generated municipality files",
		"files", result.FilesWritten,
		"provinces", result.Provinces,
		"root", result.Root,
		"duration", result.Duration,
	)
	return result, nil
}

func (o *Orchestrator) fetchRecords(ctx context.Context) ([]cbs.RawRecord, SourceStats, error) {
	url := o.config.Sources.Neighbourhoods
	stats := SourceStats{Name: "cbs", URL: url}
	start := time.Now()

	body, err := o.fetcher.Get(ctx, url)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to download neighbourhood list: %w", err)
	}
	records, err := cbs.Decode(body)
	if err != nil {
		return nil, stats, err
	}

	stats.Bytes = len(body)
	stats.Rows = len(records)
	stats.Duration = time.Since(start)
	o.logger.WithSource(stats.Name).Debugw("Fetched source", "bytes", stats.Bytes, "rows", stats.Rows)
	return records, stats, nil
}

func (o *Orchestrator) fetchReference(ctx context.Context) (*reference.Classified, SourceStats, error) {
	url := o.config.Sources.Municipalities
	stats := SourceStats{Name: "wikipedia", URL: url}
	start := time.Now()

	body, err := o.fetcher.Get(ctx, url)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to download municipality list: %w", err)
	}
	tables, err := htmltable.Extract(bytes.NewReader(body), htmltable.WikiTables)
	if err != nil {
		return nil, stats, err
	}
	classified, err := reference.Classify(tables, reference.DutchWikipedia)
	if err != nil {
		return nil, stats, err
	}

	stats.Bytes = len(body)
	stats.Rows = len(classified.Rows)
	stats.Duration = time.Since(start)
	o.logger.WithSource(stats.Name).Debugw("Fetched source",
		"bytes", stats.Bytes,
		"tables", len(tables),
		"rows", stats.Rows,
	)
	return classified, stats, nil
}
