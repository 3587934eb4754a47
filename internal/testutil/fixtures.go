package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// WritePNG writes a solid w×h PNG to dir/name and returns its path.
func WritePNG(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, PNGBytes(t, w, h, c), 0o644); err != nil {
		t.Fatalf("write png fixture: %v", err)
	}
	return path
}

// PNGBytes encodes a solid w×h image.
func PNGBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png fixture: %v", err)
	}
	return buf.Bytes()
}

// WorkbookBytes builds an .xlsx in memory. order lists the sheet names in the
// order they should appear; every name must have an entry in sheets.
func WorkbookBytes(t *testing.T, sheets map[string][][]any, order ...string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	const initial = "Sheet1"
	for i, name := range order {
		if i == 0 {
			if name != initial {
				if err := f.SetSheetName(initial, name); err != nil {
					t.Fatalf("rename sheet: %v", err)
				}
			}
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("new sheet %q: %v", name, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			values := row
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				t.Fatalf("set row %d of %q: %v", r+1, name, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// SampleSheetRows is a small league table used across plot and handler tests.
func SampleSheetRows() [][]any {
	return [][]any{
		{"Equipo", "Goles", "Puntos"},
		{"Universidad de Chile", 10, 5},
		{"Colo-Colo", 7, 9},
		{"Sin Datos", "n/a", 3},
	}
}
