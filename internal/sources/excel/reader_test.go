package excel

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes a sheet with the given rows starting at A1 and
// returns the xlsx bytes.
func buildWorkbook(t *testing.T, sheet string, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	f.SetActiveSheet(idx)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestReadSkipsLeadingRows(t *testing.T) {
	data := buildWorkbook(t, "ENTRADAS", [][]any{
		{"RELATÓRIO DE ENTRADAS"},
		{},
		{"DATA", "TÉCNICO", "VALOR R$"},
		{"10/03/2025", "Ana", "100,50"},
		{"11/03/2025", "Bia", "50,00"},
	})

	header, rows, err := NewReader().Read(data, "ENTRADAS", 2)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(header) != 3 || header[0] != "DATA" || header[2] != "VALOR R$" {
		t.Errorf("header = %v", header)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(rows))
	}
	if rows[0][1] != "Ana" {
		t.Errorf("rows[0] = %v", rows[0])
	}
}

func TestReadSheetNameCaseInsensitive(t *testing.T) {
	data := buildWorkbook(t, "Entradas", [][]any{
		{"DATA"},
		{"10/03/2025"},
	})

	header, rows, err := NewReader().Read(data, "ENTRADAS", 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if header[0] != "DATA" || len(rows) != 1 {
		t.Errorf("header=%v rows=%v", header, rows)
	}
}

func TestReadMissingSheet(t *testing.T) {
	data := buildWorkbook(t, "ENTRADAS", [][]any{{"DATA"}})

	if _, _, err := NewReader().Read(data, "SAÍDAS", 0); err == nil {
		t.Error("expected error for missing sheet")
	}
}

func TestReadHeaderBeyondSheet(t *testing.T) {
	data := buildWorkbook(t, "ENTRADAS", [][]any{{"DATA"}})

	if _, _, err := NewReader().Read(data, "ENTRADAS", 5); err == nil {
		t.Error("expected error when the skip offset passes the last row")
	}
}

func TestReadGarbageBytes(t *testing.T) {
	if _, _, err := NewReader().Read([]byte("not an xlsx"), "ENTRADAS", 0); err == nil {
		t.Error("expected error for non-workbook bytes")
	}
}
