package capital

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOptions = Options{
	CodePrefix:     "BU0363",
	CodeLabels:     codeLabels,
	NameLabels:     nameLabels,
	MinCardinality: 20,
}

func TestParseSemicolon(t *testing.T) {
	body := []byte("\xEF\xBB\xBFcode;naam\nBU03630000;Kop Zeedijk\nBU03630001;\"Oude Kerk; e.o.\"\n")

	header, rows, enc, err := Parse(body)
	require.NoError(t, err)
	assert.Equal(t, "utf-8", enc)
	assert.Equal(t, []string{"code", "naam"}, header)
	assert.Equal(t, [][]string{{"BU03630000", "Kop Zeedijk"}, {"BU03630001", "Oude Kerk; e.o."}}, rows)
}

func TestParseLegacyEncoding(t *testing.T) {
	body := []byte("naam,code\nCaf\xe9buurt,BU03630000\n")

	_, rows, enc, err := Parse(body)
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", enc)
	assert.Equal(t, "Cafébuurt", rows[0][0])
}

func TestParseEmpty(t *testing.T) {
	_, _, _, err := Parse([]byte("naam;code\n"))
	assert.True(t, errors.Is(err, ErrEmptyPayload))

	_, _, _, err = Parse(nil)
	assert.True(t, errors.Is(err, ErrEmptyPayload))
}

func TestNamesFiltersByCodePrefix(t *testing.T) {
	header := []string{"code", "naam"}
	rows := [][]string{
		{"BU03630001", "Oude Kerk e.o."},
		{"BU03630000", "Kop Zeedijk"},
		{"BU03620000", "Amstelveen Centrum"},
		{"BU03630002", "kop zeedijk"},
		{"BU03630003", " "},
		{"BU03630004"},
	}

	names, layout, err := Names(header, rows, testOptions)
	require.NoError(t, err)
	assert.Equal(t, 0, layout.CodeCol)
	assert.Equal(t, 1, layout.NameCol)
	assert.Equal(t, []string{"Kop Zeedijk", "Oude Kerk e.o."}, names)
}

func TestNamesLabelCodeColumnWithoutPrefix(t *testing.T) {
	header := []string{"identificatie", "naam"}
	rows := [][]string{{"03630000000001", "Kop Zeedijk"}, {"03630000000002", "Nieuwmarkt"}}

	names, layout, err := Names(header, rows, testOptions)
	require.NoError(t, err)
	assert.Equal(t, 0, layout.CodeCol)
	assert.Equal(t, []string{"Kop Zeedijk", "Nieuwmarkt"}, names)
}

func TestNamesCardinalityFallback(t *testing.T) {
	var b strings.Builder
	b.WriteString("stadsdeel,volgnummer,omschrijving\n")
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, "%s,%d,Buurt %02d\n", []string{"Noord", "Oost"}[i%2], i, i)
	}

	header, rows, _, err := Parse([]byte(b.String()))
	require.NoError(t, err)

	names, layout, err := Names(header, rows, testOptions)
	require.NoError(t, err)
	assert.Equal(t, -1, layout.CodeCol)
	assert.Equal(t, 2, layout.NameCol)
	assert.Len(t, names, 25)
	assert.Equal(t, "Buurt 00", names[0])
}

func TestNamesColumnNotFound(t *testing.T) {
	_, _, err := Names([]string{"a"}, [][]string{{"x"}}, testOptions)
	assert.True(t, errors.Is(err, ErrColumnNotFound))
}

func TestEntries(t *testing.T) {
	assert.Equal(t,
		[]string{"Kop Zeedijk, Amsterdam, North Holland, Netherlands"},
		Entries([]string{"Kop Zeedijk"}, "Amsterdam, North Holland, Netherlands"),
	)
}
