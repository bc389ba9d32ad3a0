package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"painel/internal/core"
	"painel/internal/pipeline"
	"painel/internal/report"
)

type stubFetcher struct {
	files map[string][]byte
	fail  map[string]error
}

func (f *stubFetcher) Fetch(_ context.Context, fileID string) ([]byte, error) {
	if err, ok := f.fail[fileID]; ok {
		return nil, err
	}
	data, ok := f.files[fileID]
	if !ok {
		return nil, fmt.Errorf("file %q not found", fileID)
	}
	return data, nil
}

type stubSheet struct {
	header []string
	rows   [][]string
}

type stubReader struct {
	sheets map[string]stubSheet
}

func (r *stubReader) Read(_ []byte, sheetName string, _ int) ([]string, [][]string, error) {
	s, ok := r.sheets[sheetName]
	if !ok {
		return nil, nil, fmt.Errorf("sheet %q not found", sheetName)
	}
	return s.header, s.rows, nil
}

func testFileIDs() map[string]string {
	return map[string]string{
		"receipts": "file-receipts",
		"expenses": "file-expenses",
	}
}

func testSchemas() []pipeline.Schema {
	return []pipeline.Schema{pipeline.Receipts(), pipeline.Expenses()}
}

func TestRefreshMergesSources(t *testing.T) {
	fetcher := &stubFetcher{files: map[string][]byte{
		"file-receipts": []byte("wb1"),
		"file-expenses": []byte("wb2"),
	}}
	reader := &stubReader{sheets: map[string]stubSheet{
		"ENTRADAS": {
			header: []string{"DATA", "TÉCNICO", "VALOR R$"},
			rows: [][]string{
				{"10/03/2025", "ana ", "100,50"},
				{"11/03/2025", "ANA", "50,00"},
			},
		},
		"DESPESAS": {
			header: []string{"DATA", "GRUPO DESPESAS", "VALOR R$"},
			rows: [][]string{
				{"12/03/2025", "Combustível", "30,00"},
			},
		},
	}}

	svc := NewRefreshService(fetcher, reader, testSchemas(), testFileIDs())
	ds, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	if ds.Version == "" {
		t.Error("Refresh() dataset has empty version")
	}
	if ds.RefreshedAt.IsZero() {
		t.Error("Refresh() dataset has zero RefreshedAt")
	}
	if got := len(ds.Records); got != 3 {
		t.Fatalf("Refresh() produced %d records, want 3", got)
	}
	if !ds.SourceOK("receipts") || !ds.SourceOK("expenses") {
		t.Errorf("Refresh() source statuses = %+v, want both ok", ds.Sources)
	}

	bySource := map[core.Source]int{}
	for _, r := range ds.Records {
		bySource[r.Source]++
	}
	if bySource[core.SourceReceipts] != 2 || bySource[core.SourceExpenses] != 1 {
		t.Errorf("records per source = %v, want 2 receipts and 1 expense", bySource)
	}
}

func TestRefreshContinuesWhenOneSourceFails(t *testing.T) {
	fetcher := &stubFetcher{
		files: map[string][]byte{"file-receipts": []byte("wb1")},
		fail:  map[string]error{"file-expenses": errors.New("drive timeout")},
	}
	reader := &stubReader{sheets: map[string]stubSheet{
		"ENTRADAS": {
			header: []string{"DATA", "TÉCNICO", "VALOR R$"},
			rows:   [][]string{{"10/03/2025", "Bruno", "200,00"}},
		},
	}}

	svc := NewRefreshService(fetcher, reader, testSchemas(), testFileIDs())
	ds, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v, want degraded success", err)
	}

	if len(ds.Records) != 1 {
		t.Errorf("Refresh() produced %d records, want 1", len(ds.Records))
	}
	if ds.SourceOK("expenses") {
		t.Error("expenses source should be reported as failed")
	}
	if !ds.SourceOK("receipts") {
		t.Error("receipts source should be reported as ok")
	}
}

func TestRefreshFailsWhenAllSourcesFail(t *testing.T) {
	fetcher := &stubFetcher{fail: map[string]error{
		"file-receipts": errors.New("boom"),
		"file-expenses": errors.New("boom"),
	}}
	reader := &stubReader{}

	svc := NewRefreshService(fetcher, reader, testSchemas(), testFileIDs())
	if _, err := svc.Refresh(context.Background()); !errors.Is(err, ErrNoSources) {
		t.Errorf("Refresh() error = %v, want ErrNoSources", err)
	}
}

func TestRefreshReportsUnconfiguredFile(t *testing.T) {
	fetcher := &stubFetcher{files: map[string][]byte{"file-receipts": []byte("wb1")}}
	reader := &stubReader{sheets: map[string]stubSheet{
		"ENTRADAS": {
			header: []string{"DATA", "TÉCNICO", "VALOR R$"},
			rows:   [][]string{{"10/03/2025", "Bruno", "200,00"}},
		},
	}}

	svc := NewRefreshService(fetcher, reader, testSchemas(), map[string]string{
		"receipts": "file-receipts",
	})
	ds, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if ds.SourceOK("expenses") {
		t.Error("unconfigured expenses source should be reported as failed")
	}
}

// The whole chain: raw sheet rows in, ranked dashboard out. Two receipts
// for the same technician spelled differently must land in one group.
func TestRefreshThenDashboard(t *testing.T) {
	fetcher := &stubFetcher{files: map[string][]byte{
		"file-receipts": []byte("wb1"),
		"file-expenses": []byte("wb2"),
	}}
	reader := &stubReader{sheets: map[string]stubSheet{
		"ENTRADAS": {
			header: []string{"DATA", "TÉCNICO", "VALOR R$"},
			rows: [][]string{
				{"10/03/2025", "ana ", "100,50"},
				{"11/03/2025", "ANA", "50,00"},
			},
		},
		"DESPESAS": {
			header: []string{"DATA", "GRUPO DESPESAS", "VALOR R$"},
			rows:   [][]string{{"12/03/2025", "Combustível", "30,00"}},
		},
	}}

	svc := NewRefreshService(fetcher, reader, testSchemas(), testFileIDs())
	ds, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	d := BuildDashboard(ds, DashboardRequest{
		Period:    core.CurrentMonth,
		Dimension: report.ByPerson,
		Page:      report.Page{Index: 1, Size: 5},
		Today:     core.NewDate(2025, 3, 15),
	})

	if d.Total.Cents != 15050 {
		t.Errorf("Total = %d cents, want 15050", d.Total.Cents)
	}
	if d.Mean.Cents != 7525 {
		t.Errorf("Mean = %d cents, want 7525", d.Mean.Cents)
	}
	if d.Count != 2 {
		t.Errorf("Count = %d, want 2", d.Count)
	}
	if len(d.BySum) != 1 || d.BySum[0].Key != "ANA" {
		t.Fatalf("BySum = %+v, want single ANA group", d.BySum)
	}
	if d.BySum[0].Sum.Cents != 15050 || d.BySum[0].Count != 2 {
		t.Errorf("ANA group = %+v, want sum 15050 over 2 records", d.BySum[0])
	}
}
