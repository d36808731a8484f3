// Package reference picks the municipality table out of extracted HTML tables
// and turns its rows into name/region pairs.
package reference

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dbsmedya/nlplaces/internal/htmltable"
)

var (
	// ErrTableNotFound is returned when no table has a header row with the table keyword.
	ErrTableNotFound = errors.New("could not locate municipality table")
	// ErrColumnsNotFound is returned when the header lacks the name or region column.
	ErrColumnsNotFound = errors.New("could not determine header columns in municipality table")
)

// Keywords are the substrings that identify the target table and its columns.
type Keywords struct {
	Table  string // a header cell containing this marks the target table
	Name   string // header of the entity-name column
	Region string // header of the region-name column
}

// DutchWikipedia matches the nl.wikipedia list of municipalities.
var DutchWikipedia = Keywords{
	Table:  "Gemeente",
	Name:   "Gemeente",
	Region: "Provin",
}

// Row is one data row of the classified table.
type Row struct {
	Cells []string
}

// Classified is the selected table with its header and column positions.
type Classified struct {
	Header    []string
	Rows      []Row // data rows, header and header-like rows removed
	NameCol   int
	RegionCol int
}

// Name returns the entity-name cell of r, or "" if the row is too short.
func (c *Classified) Name(r Row) string {
	return cell(r, c.NameCol)
}

// Region returns the raw region cell of r, or "" if the row is too short.
func (c *Classified) Region(r Row) string {
	return cell(r, c.RegionCol)
}

func cell(r Row, idx int) string {
	if idx < 0 || idx >= len(r.Cells) {
		return ""
	}
	return r.Cells[idx]
}

// Classify selects the first table containing a row with a cell that contains
// kw.Table and resolves the name and region columns from that row.
func Classify(tables []htmltable.Table, kw Keywords) (*Classified, error) {
	for _, table := range tables {
		headerIdx := indexOfRow(table, func(row []string) bool {
			return containsCell(row, kw.Table)
		})
		if headerIdx < 0 {
			continue
		}

		header := table[headerIdx]
		nameCol := indexOfCell(header, kw.Name)
		regionCol := indexOfCell(header, kw.Region)
		if nameCol < 0 || regionCol < 0 {
			return nil, fmt.Errorf("%w: header %q", ErrColumnsNotFound, header)
		}

		c := &Classified{
			Header:    header,
			NameCol:   nameCol,
			RegionCol: regionCol,
		}
		for i, row := range table {
			if i == headerIdx || containsCell(row, kw.Table) {
				continue
			}
			c.Rows = append(c.Rows, Row{Cells: row})
		}
		return c, nil
	}
	return nil, ErrTableNotFound
}

func indexOfRow(table htmltable.Table, pred func([]string) bool) int {
	for i, row := range table {
		if pred(row) {
			return i
		}
	}
	return -1
}

func indexOfCell(row []string, keyword string) int {
	for i, c := range row {
		if strings.Contains(c, keyword) {
			return i
		}
	}
	return -1
}

func containsCell(row []string, keyword string) bool {
	return indexOfCell(row, keyword) >= 0
}
