// Package spreadsheet decodes uploaded .xlsx workbooks into dataset values.
package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/preston-bernstein/logo-scatter-service/internal/dataset"
)

// ErrNotXLSX is returned for uploads that are not .xlsx workbooks.
var ErrNotXLSX = errors.New("file is not an .xlsx workbook")

// zip local file header; every .xlsx starts with it.
var zipMagic = []byte("PK\x03\x04")

// Read decodes every sheet of an .xlsx workbook. The first row of each sheet
// is the header. Sheets are as wide as their widest row: shorter rows are
// padded and header cells missing past the header's end become unnamed columns.
func Read(fileName string, r io.Reader) (*dataset.Workbook, error) {
	if ext := strings.ToLower(filepath.Ext(fileName)); ext != "" && ext != ".xlsx" {
		return nil, fmt.Errorf("%w: %s", ErrNotXLSX, fileName)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if !bytes.HasPrefix(data, zipMagic) {
		return nil, fmt.Errorf("%w: %s", ErrNotXLSX, fileName)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	book := &dataset.Workbook{
		FileName: fileName,
		Sheets:   make(map[string]*dataset.Sheet),
	}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		book.SheetNames = append(book.SheetNames, name)
		book.Sheets[name] = toSheet(name, rows)
	}
	return book, nil
}

func toSheet(name string, rows [][]string) *dataset.Sheet {
	sheet := &dataset.Sheet{Name: name}
	if len(rows) == 0 {
		return sheet
	}

	width := len(rows[0])
	for _, raw := range rows[1:] {
		width = max(width, usedWidth(raw))
	}
	header := make([]string, width)
	copy(header, rows[0])
	sheet.Columns = dataset.HeaderNames(header)

	for _, raw := range rows[1:] {
		if blank(raw) {
			continue
		}
		row := make([]string, width)
		copy(row, raw)
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

// usedWidth ignores trailing empty cells, which styled but empty columns produce.
func usedWidth(row []string) int {
	n := len(row)
	for n > 0 && strings.TrimSpace(row[n-1]) == "" {
		n--
	}
	return n
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
