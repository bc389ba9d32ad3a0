// Package excel reads xlsx workbooks via excelize.
package excel

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Reader implements sources.SheetReader over xlsx bytes.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// Read opens the workbook, locates the sheet and returns the header row
// (after skipping the configured leading rows) plus the data rows below
// it. Sheet names match exactly first, then case-insensitively: exports
// have been seen with "ENTRADAS" and "Entradas" across years.
func (r *Reader) Read(data []byte, sheetName string, skip int) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	name, err := resolveSheet(f, sheetName)
	if err != nil {
		return nil, nil, err
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	if len(rows) <= skip {
		return nil, nil, fmt.Errorf("sheet %q has %d rows, header expected after %d", name, len(rows), skip)
	}

	return rows[skip], rows[skip+1:], nil
}

func resolveSheet(f *excelize.File, sheetName string) (string, error) {
	list := f.GetSheetList()
	for _, name := range list {
		if name == sheetName {
			return name, nil
		}
	}
	for _, name := range list {
		if strings.EqualFold(name, sheetName) {
			return name, nil
		}
	}
	return "", fmt.Errorf("sheet %q not found (workbook has %v)", sheetName, list)
}
