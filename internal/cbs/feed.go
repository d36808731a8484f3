// Package cbs decodes the CBS StatLine "WijkenEnBuurten" OData feed into raw
// region-level (municipality) and leaf-level (neighbourhood) records.
package cbs

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dbsmedya/nlplaces/internal/fetch"
)

// Key prefixes used by CBS region codes.
const (
	RegionPrefix = "GM" // gemeente
	LeafPrefix   = "BU" // buurt
)

// ErrEmptyPayload is returned when the feed contains no rows.
var ErrEmptyPayload = errors.New("CBS dataset returned no rows")

// Kind classifies a record by its key prefix.
type Kind int

const (
	KindOther Kind = iota
	KindRegion
	KindLeaf
)

// RawRecord is a single usable row of the statistical feed.
type RawRecord struct {
	Key       string
	Title     string
	ParentKey string
}

// Kind reports whether the record is a municipality or a neighbourhood.
func (r RawRecord) Kind() Kind {
	switch {
	case strings.HasPrefix(r.Key, RegionPrefix):
		return KindRegion
	case strings.HasPrefix(r.Key, LeafPrefix):
		return KindLeaf
	default:
		return KindOther
	}
}

// row mirrors the OData columns the job reads; all other columns are ignored.
type row struct {
	Key          *string `json:"Key"`
	Title        *string `json:"Title"`
	Municipality *string `json:"Municipality"`
}

type payload struct {
	Value []row `json:"value"`
}

// Decode parses a feed body. Region rows need a title; leaf rows need a title
// and a parent municipality code. Rows of any other kind are dropped.
func Decode(body []byte) ([]RawRecord, error) {
	var p payload
	if err := json.Unmarshal([]byte(fetch.DecodeUTF8(body)), &p); err != nil {
		return nil, fmt.Errorf("failed to parse CBS payload: %w", err)
	}
	if len(p.Value) == 0 {
		return nil, ErrEmptyPayload
	}

	records := make([]RawRecord, 0, len(p.Value))
	for _, r := range p.Value {
		rec := RawRecord{
			Key:       trim(r.Key),
			Title:     trim(r.Title),
			ParentKey: trim(r.Municipality),
		}
		switch rec.Kind() {
		case KindRegion:
			if rec.Title == "" {
				continue
			}
		case KindLeaf:
			if rec.Title == "" || rec.ParentKey == "" {
				continue
			}
		default:
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func trim(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
