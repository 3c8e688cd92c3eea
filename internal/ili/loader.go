// Package ili reads the Collaborative Interlingual Index TSV distribution
// into domain.ILI records.
package ili

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/heartmarshall/wordnet-engine/internal/domain"
)

// Load reads a CILI TSV stream. The header line names the columns
// (lowercased); every subsequent non-empty line produces one domain.ILI.
// The "ili" and "status" columns are required; "definition" is read when
// present and anything else is folded into Meta as "key=value" pairs
// joined by ';'.
func Load(r io.Reader, file string) ([]domain.ILI, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.ParseError{File: file, Element: "header", Err: err}
	}

	cols := make([]string, len(header))
	idx := map[string]int{}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		cols[i] = name
		idx[name] = i
	}

	iliCol, ok := idx["ili"]
	if !ok {
		return nil, &domain.ParseError{File: file, Element: "header", Err: fmt.Errorf("missing required column %q", "ili")}
	}
	statusCol, ok := idx["status"]
	if !ok {
		return nil, &domain.ParseError{File: file, Element: "header", Err: fmt.Errorf("missing required column %q", "status")}
	}
	defCol, hasDef := idx["definition"]
	supersededCol, hasSuperseded := idx["superseded_by"]
	noteCol, hasNote := idx["note"]

	var records []domain.ILI
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &domain.ParseError{File: file, Line: line, Element: "row", Err: err}
		}
		line++

		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}

		rec := domain.ILI{
			ID:     field(row, iliCol),
			Status: domain.ILIStatus(field(row, statusCol)),
		}
		if rec.ID == "" {
			continue
		}
		if hasDef {
			rec.Definition = field(row, defCol)
		}
		if hasSuperseded {
			rec.SupersededBy = field(row, supersededCol)
		}
		if hasNote {
			rec.Note = field(row, noteCol)
		}
		known := map[int]bool{iliCol: true, statusCol: true}
		if hasDef {
			known[defCol] = true
		}
		if hasSuperseded {
			known[supersededCol] = true
		}
		if hasNote {
			known[noteCol] = true
		}
		rec.Meta = extraMeta(cols, row, known)

		records = append(records, rec)
	}

	return records, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// extraMeta folds any TSV columns not otherwise mapped to a domain.ILI field
// into a flat "key=value;key=value" string, preserving column order.
func extraMeta(cols []string, row []string, known map[int]bool) string {
	var parts []string
	for i, name := range cols {
		if known[i] {
			continue
		}
		v := field(row, i)
		if v == "" {
			continue
		}
		parts = append(parts, name+"="+v)
	}
	return strings.Join(parts, ";")
}
