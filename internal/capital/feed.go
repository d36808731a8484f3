package capital

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/dbsmedya/nlplaces/internal/emit"
	"github.com/dbsmedya/nlplaces/internal/fetch"
	"github.com/dbsmedya/nlplaces/internal/reconcile"
)

var (
	// ErrEmptyPayload is returned when the feed has a header but no data rows.
	ErrEmptyPayload = errors.New("capital feed returned no rows")
	// ErrColumnNotFound is returned when no column can be used as the name column.
	ErrColumnNotFound = errors.New("could not detect name column in capital feed")
)

// Options carries the heuristics configuration.
type Options struct {
	CodePrefix     string
	CodeLabels     []string
	NameLabels     []string
	MinCardinality int
}

// Layout is the detected column layout of a feed.
type Layout struct {
	Encoding string
	CodeCol  int // -1 when no code column was found
	NameCol  int
}

// Parse decodes a CSV body (UTF-8, Windows-1252 or ISO-8859-1) and returns its
// header and data rows. The delimiter is sniffed from the header line.
func Parse(body []byte) (header []string, rows [][]string, encoding string, err error) {
	text, encoding, err := fetch.DecodeLegacy(body)
	if err != nil {
		return nil, nil, "", err
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to parse capital CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, nil, "", ErrEmptyPayload
	}
	return records[0], records[1:], encoding, nil
}

func sniffDelimiter(text string) rune {
	line := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		line = text[:i]
	}
	best, bestCount := ',', strings.Count(line, ",")
	for _, d := range []rune{';', '\t'} {
		if c := strings.Count(line, string(d)); c > bestCount {
			best, bestCount = d, c
		}
	}
	return best
}

// Names detects the layout and returns the deduplicated, case-insensitively
// sorted neighbourhood names. When a code column exists only rows whose code
// carries the prefix are used.
func Names(header []string, rows [][]string, opts Options) ([]string, Layout, error) {
	layout := Layout{CodeCol: -1, NameCol: -1}

	if col, ok := DetectCodeColumn(header, rows, opts.CodePrefix, opts.CodeLabels); ok {
		layout.CodeCol = col
	}
	col, ok := DetectNameColumn(header, rows, layout.CodeCol, opts.NameLabels, opts.MinCardinality)
	if !ok {
		return nil, layout, ErrColumnNotFound
	}
	layout.NameCol = col

	prefix := strings.ToUpper(opts.CodePrefix)
	hasPrefix := func(r []string) bool {
		return layout.CodeCol < len(r) && strings.HasPrefix(strings.ToUpper(strings.TrimSpace(r[layout.CodeCol])), prefix)
	}
	// A code column found by its header label may use another code scheme;
	// filter only when the prefix actually occurs.
	filter := false
	if layout.CodeCol >= 0 && prefix != "" {
		for _, r := range rows {
			if hasPrefix(r) {
				filter = true
				break
			}
		}
	}

	var names []string
	for _, r := range rows {
		if layout.NameCol >= len(r) {
			continue
		}
		if filter && !hasPrefix(r) {
			continue
		}
		if name := strings.TrimSpace(r[layout.NameCol]); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, layout, ErrEmptyPayload
	}
	return reconcile.SortFold(names), layout, nil
}

// Entries formats each name with the fixed city/region/country suffix.
func Entries(names []string, suffix string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = emit.FormatLocation(n, suffix)
	}
	return out
}
