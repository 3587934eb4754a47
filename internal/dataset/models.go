package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrUnknownSheet is returned when a workbook has no sheet with the requested name.
	ErrUnknownSheet = errors.New("unknown sheet")
	// ErrUnknownColumn is returned when a sheet has no column with the requested name.
	ErrUnknownColumn = errors.New("unknown column")
)

// Workbook is an uploaded spreadsheet with its sheets kept in file order.
type Workbook struct {
	FileName   string
	SheetNames []string
	Sheets     map[string]*Sheet
}

// Sheet returns the named sheet.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSheet, name)
	}
	s, ok := w.Sheets[name]
	if !ok || s == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSheet, name)
	}
	return s, nil
}

// Sheet is a table of raw cell values. Every row has len(Columns) cells.
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named column.
func (s *Sheet) ColumnIndex(name string) (int, bool) {
	if s == nil {
		return -1, false
	}
	for i, c := range s.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// MustColumn is ColumnIndex with an ErrUnknownColumn error.
func (s *Sheet) MustColumn(name string) (int, error) {
	idx, ok := s.ColumnIndex(name)
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return idx, nil
}

// Cell returns the raw value at row/col, or "" when out of range.
func (s *Sheet) Cell(row, col int) string {
	if s == nil || row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Rows[row]) {
		return ""
	}
	return s.Rows[row][col]
}

// SelectableColumns lists the columns offered as plot axes. The first column
// holds the category label and is never offered.
func (s *Sheet) SelectableColumns() []string {
	if s == nil || len(s.Columns) < 2 {
		return nil
	}
	out := make([]string, len(s.Columns)-1)
	copy(out, s.Columns[1:])
	return out
}

// Number parses a raw cell as a finite real number.
func Number(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// HeaderNames turns a raw header row into unique column names.
// Blank cells become "Unnamed: <index>" and repeats get ".1", ".2" suffixes.
func HeaderNames(raw []string) []string {
	names := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	repeats := make(map[string]int)
	for i, h := range raw {
		base := strings.TrimSpace(h)
		if base == "" {
			base = fmt.Sprintf("Unnamed: %d", i)
		}
		name := base
		for used[name] {
			repeats[base]++
			name = fmt.Sprintf("%s.%d", base, repeats[base])
		}
		used[name] = true
		names[i] = name
	}
	return names
}
