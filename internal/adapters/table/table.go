// Package table reads transition records from state tables.
//
// A state table is either one dimensional (a header starting with "Start State",
// then one start,action,end row per transition) or two dimensional (a header
// starting with "Start/End" listing end states, then one row per start state
// whose non-empty cells are action labels). CSV, YAML and JSON files are supported.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/errfix/pkg/domain"
)

// Kind is the layout of a state table.
type Kind string

const (
	KindUnknown Kind = "unknown"
	KindOneD    Kind = "one_d"
	KindTwoD    Kind = "two_d"
)

// Header labels recognised in the top-left cell.
const (
	HeaderOneD = "Start State"
	HeaderTwoD = "Start/End"
)

// Column positions in a one dimensional table.
const (
	colStart  = 0
	colAction = 1
	colEnd    = 2
)

// ErrUnknownLayout is returned by DetectKind when the header matches neither layout.
var ErrUnknownLayout = errors.New("unable to detect whether this is a 1 or 2 dimensional state table")

// DetectKind inspects the top-left cell of a header row.
func DetectKind(header []string) (Kind, error) {
	if len(header) == 0 {
		return KindUnknown, ErrUnknownLayout
	}
	cell := strings.ToLower(strings.TrimSpace(header[0]))
	switch cell {
	case strings.ToLower(HeaderTwoD):
		return KindTwoD, nil
	case strings.ToLower(HeaderOneD):
		return KindOneD, nil
	}
	return KindUnknown, fmt.Errorf("top-left cell %q: %w", header[0], ErrUnknownLayout)
}

// Load reads a state table file, choosing the format from its extension
// (.yaml/.yml, .json, anything else is CSV).
func Load(path string) ([]domain.Transition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state table: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ReadYAML(f)
	case ".json":
		return ReadJSON(f)
	default:
		return ReadCSV(f)
	}
}

// ReadCSV reads a CSV state table. The first row is a header and is not returned.
//
// No rows at all fail with domain.ErrEmptyInput, a header alone with
// domain.ErrInsufficientInput. Cells are trimmed of surrounding whitespace
// and are otherwise opaque: there is no comment syntax.
// Headers that match neither layout are read as one dimensional tables.
func ReadCSV(r io.Reader) ([]domain.Transition, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse state table: %w", err)
	}
	switch len(rows) {
	case 0:
		return nil, fmt.Errorf("state table is empty: %w", domain.ErrEmptyInput)
	case 1:
		return nil, fmt.Errorf("state table has a header but no data: %w", domain.ErrInsufficientInput)
	}

	if kind, _ := DetectKind(rows[0]); kind == KindTwoD {
		return readMatrix(rows)
	}
	return readRows(rows[1:])
}

func readRows(rows [][]string) ([]domain.Transition, error) {
	var (
		out  []domain.Transition
		errs []error
	)
	for i, row := range rows {
		if blank(row) {
			continue
		}
		if len(row) <= colEnd {
			// +2: one for the header, one for 1-based line numbers.
			errs = append(errs, fmt.Errorf("row %d: expected 3 fields, got %d", i+2, len(row)))
			continue
		}
		out = append(out, domain.NewTransition(
			strings.TrimSpace(row[colStart]),
			strings.TrimSpace(row[colAction]),
			strings.TrimSpace(row[colEnd]),
		))
	}
	if len(errs) > 0 {
		return nil, &domain.AggregateError{Errors: errs}
	}
	return out, nil
}

func readMatrix(rows [][]string) ([]domain.Transition, error) {
	header := rows[0]
	var out []domain.Transition
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		start := strings.TrimSpace(row[0])
		for col := 1; col < len(row) && col < len(header); col++ {
			action := strings.TrimSpace(row[col])
			if action == "" {
				continue
			}
			out = append(out, domain.NewTransition(start, action, strings.TrimSpace(header[col])))
		}
	}
	return out, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
