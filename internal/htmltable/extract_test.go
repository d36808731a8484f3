package htmltable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html><body>
<table class="infobox"><tr><td>Not captured</td></tr></table>
<table class="wikitable sortable">
  <tr><th>Gemeente</th><th>Provincie<sup>[1]</sup></th><th>Inwoners</th></tr>
  <tr><td><a href="/wiki/Aa_en_Hunze">Aa en Hunze</a></td><td>Drenthe</td><td>25.000</td></tr>
  <tr><td>Súdwest-<br>Fryslân</td><td>Frysl&acirc;n</td><td>90&#160;000</td></tr>
  <tr><td>Nested<table><tr><td>inner</td></tr></table></td><td>x</td></tr>
  <tr></tr>
</table>
<table class="wikitable"><tr><td><style>.x{}</style>Styled</td></tr></table>
<table class="wikitable"></table>
</body></html>`

func TestExtractWikiTables(t *testing.T) {
	tables, err := Extract(strings.NewReader(page), WikiTables)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	first := tables[0]
	require.Len(t, first, 4)
	assert.Equal(t, []string{"Gemeente", "Provincie", "Inwoners"}, first[0])
	assert.Equal(t, []string{"Aa en Hunze", "Drenthe", "25.000"}, first[1])
	assert.Equal(t, []string{"Súdwest- Fryslân", "Fryslân", "90 000"}, first[2])
	// The nested table's row is folded into the outer capture.
	assert.Equal(t, []string{"inner"}, first[3])

	assert.Equal(t, Table{{"Styled"}}, tables[1])
}

func TestExtractAllTables(t *testing.T) {
	tables, err := Extract(strings.NewReader(page), Options{})
	require.NoError(t, err)
	require.Len(t, tables, 3)
	assert.Equal(t, Table{{"Not captured"}}, tables[0])
}

func TestExtractSelfClosingTable(t *testing.T) {
	doc := `<table class="wikitable"><tr><td>x<table/></td></tr></table>
<table class="wikitable">
  <tr><th>Gemeente</th><th>Provincie</th></tr>
  <tr><td>Assen</td><td>Drenthe</td></tr>
</table>`

	tables, err := Extract(strings.NewReader(doc), WikiTables)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, Table{{"x"}}, tables[0])
	assert.Equal(t, Table{{"Gemeente", "Provincie"}, {"Assen", "Drenthe"}}, tables[1])
}

func TestExtractNoTables(t *testing.T) {
	tables, err := Extract(strings.NewReader("<html><p>nothing</p></html>"), WikiTables)
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestNormalizeCell(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Groningen[2]", "Groningen"},
		{"Noord-\u00adBrabant", "Noord-Brabant"},
		{"Zuid\u00a0Holland", "Zuid Holland"},
		{"Zee\u200bland", "Zeeland"},
		{"  Bergen   (L.) [noot 3] ", "Bergen (L.)"},
		{"\n\t", ""},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeCell(tt.input))
		})
	}
}
