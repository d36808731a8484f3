// Package htmltable extracts HTML tables as plain rows of text cells.
//
// Extraction knows nothing about what a table means: it returns every captured
// table as [][]string and leaves choosing the right one to the caller.
package htmltable

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Table is a list of rows, each a list of normalized cell texts.
type Table [][]string

// Options controls which tables are captured.
type Options struct {
	// Class restricts capture to tables carrying this CSS class. Empty captures all tables.
	Class string
}

// WikiTables captures Wikipedia content tables.
var WikiTables = Options{Class: "wikitable"}

// Extract reads an HTML document and returns the captured tables in document
// order. Tables nested inside a captured table are folded into it. Empty rows
// and empty tables are dropped.
func Extract(r io.Reader, opts Options) ([]Table, error) {
	z := html.NewTokenizer(r)

	var (
		tables    []Table
		current   Table
		row       []string
		inRow     bool
		depth     int // table nesting depth while capturing, 0 when idle
		inCell    bool
		skipDepth int // inside <script>/<style>
		cell      strings.Builder
	)

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("failed to tokenize html: %w", err)
			}
			return tables, nil

		case html.TextToken:
			if inCell && skipDepth == 0 {
				cell.Write(z.Text())
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			a := atom.Lookup(name)
			switch a {
			case atom.Table:
				// <table/> never gets an end tag.
				if tt == html.SelfClosingTagToken {
					break
				}
				if depth == 0 {
					if hasClass(z, hasAttr, opts.Class) {
						depth = 1
						current = nil
					}
				} else {
					depth++
				}
			case atom.Tr:
				if depth > 0 {
					row = []string{}
					inRow = true
				}
			case atom.Td, atom.Th:
				if depth > 0 && inRow {
					inCell = true
					cell.Reset()
				}
			case atom.Br:
				if inCell {
					cell.WriteByte(' ')
				}
			case atom.Script, atom.Style:
				if tt == html.StartTagToken && inCell {
					skipDepth++
				}
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Table:
				if depth > 0 {
					depth--
					if depth == 0 {
						if len(current) > 0 {
							tables = append(tables, current)
						}
						current = nil
					}
				}
			case atom.Tr:
				if depth > 0 {
					if inRow && len(row) > 0 {
						current = append(current, row)
					}
					row = nil
					inRow = false
				}
			case atom.Td, atom.Th:
				if inCell {
					if inRow {
						row = append(row, NormalizeCell(cell.String()))
					}
					inCell = false
					cell.Reset()
				}
			case atom.Script, atom.Style:
				if skipDepth > 0 {
					skipDepth--
				}
			}
		}
	}
}

// hasClass reports whether the current start tag carries class. An empty class
// always matches.
func hasClass(z *html.Tokenizer, hasAttr bool, class string) bool {
	if class == "" {
		return true
	}
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if string(key) != "class" {
			continue
		}
		for _, c := range strings.Fields(string(val)) {
			if c == class {
				return true
			}
		}
	}
	return false
}
