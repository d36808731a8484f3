package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/dbsmedya/nlplaces/internal/cbs"
)

// Entity is a municipality with its resolved province and neighbourhoods.
type Entity struct {
	Code     string
	Name     string
	Region   string
	Children []string
}

// Resolution records how a municipality name found its province.
type Resolution struct {
	Name    string
	Matched string // the name or variant that hit the mapping
	Source  Source
}

// UnresolvedError lists every municipality without a province.
type UnresolvedError struct {
	Names []string
}

func (e *UnresolvedError) Error() string {
	return "missing province mapping for: " + strings.Join(e.Names, ", ")
}

// NonCanonicalError lists province labels that are neither canonical nor
// remapped to a canonical name.
type NonCanonicalError struct {
	Regions []string
}

func (e *NonCanonicalError) Error() string {
	return "unknown province labels: " + strings.Join(e.Regions, ", ")
}

// Reconciler resolves municipalities against a mapping using the fallback
// rules of its tables.
type Reconciler struct {
	tables *Tables
}

// New creates a Reconciler over immutable tables.
func New(tables *Tables) (*Reconciler, error) {
	if tables == nil {
		return nil, fmt.Errorf("reconciliation tables are nil")
	}
	return &Reconciler{tables: tables}, nil
}

// Tables returns the tables the reconciler was built with.
func (r *Reconciler) Tables() *Tables {
	return r.tables
}

// Lookup resolves one municipality name: exact match first, then each
// fallback variant in order.
func (r *Reconciler) Lookup(m *Mapping, name string) (string, Resolution, bool) {
	if a, ok := m.Lookup(name); ok {
		return a.Region, Resolution{Name: name, Matched: name, Source: a.Source}, true
	}
	for _, v := range r.tables.Variants(name) {
		if a, ok := m.Lookup(v); ok {
			return a.Region, Resolution{Name: name, Matched: v, Source: a.Source}, true
		}
	}
	return "", Resolution{Name: name}, false
}

// Resolve builds one Entity per municipality record, sorted by code, with the
// neighbourhoods that reference it. If any municipality cannot be resolved the
// result is nil and the error is an *UnresolvedError naming all of them.
func (r *Reconciler) Resolve(records []cbs.RawRecord, m *Mapping) ([]Entity, []Resolution, error) {
	names := make(map[string]string)
	children := make(map[string][]string)

	for _, rec := range records {
		switch rec.Kind() {
		case cbs.KindRegion:
			if rec.Title != "" {
				names[rec.Key] = rec.Title
			}
		case cbs.KindLeaf:
			if rec.Title != "" && rec.ParentKey != "" {
				children[rec.ParentKey] = append(children[rec.ParentKey], rec.Title)
			}
		}
	}

	codes := make([]string, 0, len(names))
	for code := range names {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var (
		entities    []Entity
		resolutions []Resolution
		unresolved  = make(map[string]struct{})
	)
	for _, code := range codes {
		name := names[code]
		region, res, ok := r.Lookup(m, name)
		if !ok {
			unresolved[name] = struct{}{}
			continue
		}
		resolutions = append(resolutions, res)
		entities = append(entities, Entity{
			Code:     code,
			Name:     name,
			Region:   region,
			Children: SortFold(children[code]),
		})
	}

	if len(unresolved) > 0 {
		list := make([]string, 0, len(unresolved))
		for name := range unresolved {
			list = append(list, name)
		}
		sort.Strings(list)
		return nil, nil, &UnresolvedError{Names: list}
	}

	return entities, resolutions, nil
}

// CheckRegions returns a *NonCanonicalError naming every distinct region of
// entities that is not a canonical province.
func (r *Reconciler) CheckRegions(entities []Entity) error {
	seen := make(map[string]struct{})
	var bad []string
	for _, e := range entities {
		if r.tables.IsCanonical(e.Region) {
			continue
		}
		if _, dup := seen[e.Region]; dup {
			continue
		}
		seen[e.Region] = struct{}{}
		bad = append(bad, e.Region)
	}
	if len(bad) == 0 {
		return nil
	}
	sort.Strings(bad)
	return &NonCanonicalError{Regions: bad}
}

// SortFold deduplicates names case-insensitively and sorts them by their
// case-folded form. Of several spellings that fold equal, the smallest one in
// byte order is kept so the result does not depend on input order.
func SortFold(names []string) []string {
	if len(names) == 0 {
		return nil
	}

	fold := cases.Fold()
	kept := make(map[string]string, len(names))
	for _, n := range names {
		key := fold.String(n)
		if cur, ok := kept[key]; !ok || n < cur {
			kept[key] = n
		}
	}

	keys := make([]string, 0, len(kept))
	for k := range kept {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = kept[k]
	}
	return out
}
