package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/nlplaces/internal/reference"
)

func classified(rows ...[]string) *reference.Classified {
	c := &reference.Classified{
		Header:    []string{"Gemeente", "Provincie"},
		NameCol:   0,
		RegionCol: 1,
	}
	for _, r := range rows {
		c.Rows = append(c.Rows, reference.Row{Cells: r})
	}
	return c
}

func testTables(t *testing.T) *Tables {
	t.Helper()
	tables, err := DefaultTables()
	require.NoError(t, err)
	return tables
}

func TestBuildMapping(t *testing.T) {
	m := BuildMapping(classified(
		[]string{"Aalsmeer", "Noord-Holland"},
		[]string{"Tilburg", "Noord Brabant"},
		[]string{"Leeuwarden", "Fryslân"},
		[]string{"Assen", "Drenthe"},
		[]string{"", "Utrecht"},
		[]string{"Nowhere", ""},
		[]string{"Short"},
		[]string{"Tilburg", "Zuid-Holland"}, // later row wins
	), testTables(t))

	a, ok := m.Lookup("Aalsmeer")
	require.True(t, ok)
	assert.Equal(t, Assignment{Region: "North Holland", Source: SourceReference}, a)

	a, _ = m.Lookup("Tilburg")
	assert.Equal(t, "South Holland", a.Region)

	a, _ = m.Lookup("Leeuwarden")
	assert.Equal(t, "Friesland", a.Region)

	a, _ = m.Lookup("Assen")
	assert.Equal(t, "Drenthe", a.Region)

	_, ok = m.Lookup("Nowhere")
	assert.False(t, ok)
	_, ok = m.Lookup("Short")
	assert.False(t, ok)
}

func TestBuildMappingOverridesWin(t *testing.T) {
	m := BuildMapping(classified(
		[]string{"Weesp", "Utrecht"},
	), testTables(t))

	a, ok := m.Lookup("Weesp")
	require.True(t, ok)
	assert.Equal(t, Assignment{Region: "North Holland", Source: SourceOverride}, a)

	a, ok = m.Lookup("Appingedam")
	require.True(t, ok)
	assert.Equal(t, "Groningen", a.Region)
}

func TestMappingOrder(t *testing.T) {
	m := NewMapping()
	m.Set("b", "Utrecht", SourceReference)
	m.Set("a", "Zeeland", SourceReference)
	m.Set("b", "Limburg", SourceOverride)

	var names []string
	m.Each(func(name string, a Assignment) {
		names = append(names, name+"="+a.Region)
	})
	assert.Equal(t, []string{"b=Limburg", "a=Zeeland"}, names)
	assert.Equal(t, 2, m.Len())
}

func TestBuildMappingNilTable(t *testing.T) {
	tables := testTables(t)
	m := BuildMapping(nil, tables)
	assert.Equal(t, len(tables.Overrides), m.Len())
}
