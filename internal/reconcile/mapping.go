// Package reconcile joins the CBS municipality records with the province
// mapping scraped from the reference table.
package reconcile

import (
	"sort"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/nlplaces/internal/reference"
)

// Source tells where a mapping entry came from.
type Source string

const (
	SourceReference Source = "reference"
	SourceOverride  Source = "override"
)

// Assignment is the province a municipality name maps to.
type Assignment struct {
	Region string
	Source Source
}

// Mapping is the municipality name to province mapping, in first-seen order.
type Mapping struct {
	entries *orderedmap.OrderedMap[string, Assignment]
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{entries: orderedmap.NewOrderedMap[string, Assignment]()}
}

// Set maps name to region. A later Set for the same name replaces the region
// but keeps the original position.
func (m *Mapping) Set(name, region string, src Source) {
	m.entries.Set(name, Assignment{Region: region, Source: src})
}

// Lookup returns the assignment for name.
func (m *Mapping) Lookup(name string) (Assignment, bool) {
	return m.entries.Get(name)
}

// Len returns the number of mapped names.
func (m *Mapping) Len() int {
	return m.entries.Len()
}

// Each calls fn for every entry in first-seen order.
func (m *Mapping) Each(fn func(name string, a Assignment)) {
	for el := m.entries.Front(); el != nil; el = el.Next() {
		fn(el.Key, el.Value)
	}
}

// BuildMapping reads every data row of the classified reference table, remaps
// province labels to their canonical names (last row wins for a repeated name)
// and then applies the override table on top.
func BuildMapping(table *reference.Classified, tables *Tables) *Mapping {
	m := NewMapping()

	if table != nil {
		for _, row := range table.Rows {
			name := table.Name(row)
			region := table.Region(row)
			if name == "" || region == "" {
				continue
			}
			m.Set(name, tables.CanonicalRegion(region), SourceReference)
		}
	}

	names := make([]string, 0, len(tables.Overrides))
	for name := range tables.Overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m.Set(name, tables.Overrides[name], SourceOverride)
	}

	return m
}
