package reconcile

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

//go:embed tables.yaml
var defaultTables []byte

// Tables is the static reconciliation data: canonical provinces, province label
// remapping, municipality overrides and fallback name rules. A Tables value is
// never modified after it is parsed.
type Tables struct {
	Provinces   []string          `yaml:"provinces"`
	RegionRemap map[string]string `yaml:"region_remap"`
	Overrides   map[string]string `yaml:"overrides"`
	Fallback    FallbackRules     `yaml:"fallback"`
}

// FallbackRules describes the name variants tried when an exact lookup fails.
type FallbackRules struct {
	Remove        []string `yaml:"remove"`
	HyphenToSpace bool     `yaml:"hyphen_to_space"`
}

// DefaultTables returns the embedded tables.
func DefaultTables() (*Tables, error) {
	return ParseTables(defaultTables)
}

// LoadTablesFile reads tables from a YAML file, or the embedded defaults when
// path is empty.
func LoadTablesFile(path string) (*Tables, error) {
	if path == "" {
		return DefaultTables()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tables file %s: %w", path, err)
	}
	return ParseTables(data)
}

// ParseTables decodes a YAML tables document.
func ParseTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing reconciliation tables: %w", err)
	}
	if len(t.Provinces) == 0 {
		return nil, fmt.Errorf("parsing reconciliation tables: no provinces defined")
	}
	for name, region := range t.Overrides {
		if !t.IsCanonical(region) {
			return nil, fmt.Errorf("override %q maps to unknown province %q", name, region)
		}
	}
	for label, region := range t.RegionRemap {
		if !t.IsCanonical(region) {
			return nil, fmt.Errorf("remap %q maps to unknown province %q", label, region)
		}
	}
	return &t, nil
}

// CanonicalRegion maps a raw province label to its canonical spelling.
// Labels without a remap entry are returned unchanged.
func (t *Tables) CanonicalRegion(label string) string {
	if canonical, ok := t.RegionRemap[label]; ok {
		return canonical
	}
	return label
}

// IsCanonical reports whether region is one of the canonical province names.
func (t *Tables) IsCanonical(region string) bool {
	for _, p := range t.Provinces {
		if p == region {
			return true
		}
	}
	return false
}

// Variants returns the single-pass fallback spellings of name, in order.
// Rules are applied independently, never combined. Variants equal to name
// are omitted.
func (t *Tables) Variants(name string) []string {
	var out []string
	add := func(v string) {
		if v == name {
			return
		}
		for _, seen := range out {
			if seen == v {
				return
			}
		}
		out = append(out, v)
	}

	for _, r := range t.Fallback.Remove {
		if r != "" {
			add(strings.ReplaceAll(name, r, ""))
		}
	}
	if t.Fallback.HyphenToSpace {
		add(strings.ReplaceAll(name, "-", " "))
	}
	return out
}
