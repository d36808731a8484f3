package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dbsmedya/nlplaces/internal/capital"
	"github.com/dbsmedya/nlplaces/internal/config"
	"github.com/dbsmedya/nlplaces/internal/emit"
	"github.com/dbsmedya/nlplaces/internal/fetch"
	"github.com/dbsmedya/nlplaces/internal/logger"
)

// CapitalResult contains statistics of a capital-city run.
type CapitalResult struct {
	StartedAt      time.Time
	CompletedAt    time.Time
	Duration       time.Duration
	Path           string
	Encoding       string
	Header         []string
	Layout         capital.Layout
	Rows           int
	Neighbourhoods int
	Success        bool
}

// CapitalRunner builds the single flat artifact for the capital city.
type CapitalRunner struct {
	config  *config.Config
	fetcher fetch.Fetcher
	logger  *logger.Logger
}

// NewCapitalRunner creates a runner for the capital feed.
func NewCapitalRunner(cfg *config.Config, fetcher fetch.Fetcher, log *logger.Logger) (*CapitalRunner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &CapitalRunner{config: cfg, fetcher: fetcher, logger: log}, nil
}

func (r *CapitalRunner) options() capital.Options {
	c := r.config.Capital
	return capital.Options{
		CodePrefix:     c.CodePrefix,
		CodeLabels:     c.CodeLabels,
		NameLabels:     c.NameLabels,
		MinCardinality: c.MinCardinality,
	}
}

// Execute fetches the capital feed and writes <root>/<artifact>. Other files
// under root are left alone.
func (r *CapitalRunner) Execute(ctx context.Context) (*CapitalResult, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}

	result := &CapitalResult{StartedAt: time.Now()}
	log := r.logger.WithSource("capital")

	log.Info("Downloading capital neighbourhood list...")
	body, err := r.fetcher.Get(ctx, r.config.Sources.Capital)
	if err != nil {
		return nil, fmt.Errorf("failed to download capital neighbourhood list: %w", err)
	}

	header, rows, encoding, err := capital.Parse(body)
	if err != nil {
		return nil, err
	}
	result.Encoding = encoding
	result.Header = header
	result.Rows = len(rows)

	names, layout, err := capital.Names(header, rows, r.options())
	if err != nil {
		return nil, fmt.Errorf("%w (header: %v)", err, header)
	}
	result.Layout = layout
	result.Neighbourhoods = len(names)

	log.Debugw("Detected capital feed layout",
		"encoding", encoding,
		"code_col", layout.CodeCol,
		"name_col", layout.NameCol,
		"rows", len(rows),
	)

	root := r.config.Output.Root
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", root, err)
	}
	result.Path = filepath.Join(root, r.config.Capital.Artifact)
	if err := emit.WriteFile(result.Path, capital.Entries(names, r.config.Capital.Suffix)); err != nil {
		return nil, err
	}

	result.CompletedAt = time.Now()
	result.Duration = result.CompletedAt.Sub(result.StartedAt)
	result.Success = true

	log.Infow("Wrote capital neighbourhoods",
		"neighbourhoods", result.Neighbourhoods,
		"path", result.Path,
	)
	return result, nil
}
