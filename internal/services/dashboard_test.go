package services

import (
	"testing"

	"painel/internal/core"
	"painel/internal/report"
)

func receipt(day int, person string, cents int64) core.Record {
	return core.Record{
		Date:   core.NewDate(2025, 3, day),
		Person: person,
		Amount: core.Money{Cents: cents},
		Source: core.SourceReceipts,
	}
}

func expense(day int, group string, cents int64) core.Record {
	return core.Record{
		Date:   core.NewDate(2025, 3, day),
		Group:  group,
		Amount: core.Money{Cents: cents},
		Source: core.SourceExpenses,
	}
}

func TestBuildDashboardScopesByDimension(t *testing.T) {
	ds := &Dataset{Records: []core.Record{
		receipt(10, "ANA", 10000),
		expense(11, "COMBUSTÍVEL", 3000),
		expense(12, "PEÇAS", 2000),
	}}
	req := DashboardRequest{
		Period:    core.CurrentMonth,
		Dimension: report.ByGroup,
		Page:      report.Page{Index: 1, Size: 5},
		Today:     core.NewDate(2025, 3, 15),
	}

	d := BuildDashboard(ds, req)

	if d.Total.Cents != 5000 {
		t.Errorf("Total = %d cents, want 5000 (expenses only)", d.Total.Cents)
	}
	if d.Count != 2 {
		t.Errorf("Count = %d, want 2", d.Count)
	}
	if len(d.ByLabor) != 0 || len(d.ByParts) != 0 {
		t.Error("expense dashboards should not carry labor/parts tables")
	}
}

func TestBuildDashboardReceiptsCarryLaborAndParts(t *testing.T) {
	r := receipt(10, "ANA", 10000)
	r.Labor = core.Money{Cents: 4000}
	r.Parts = core.Money{Cents: 2500}
	ds := &Dataset{Records: []core.Record{r}}

	d := BuildDashboard(ds, DashboardRequest{
		Period:    core.CurrentMonth,
		Dimension: report.ByPerson,
		Page:      report.Page{Index: 1, Size: 5},
		Today:     core.NewDate(2025, 3, 15),
	})

	if len(d.ByLabor) != 1 || d.ByLabor[0].Labor.Cents != 4000 {
		t.Errorf("ByLabor = %+v, want one group with 4000 cents", d.ByLabor)
	}
	if len(d.ByParts) != 1 || d.ByParts[0].Parts.Cents != 2500 {
		t.Errorf("ByParts = %+v, want one group with 2500 cents", d.ByParts)
	}
}

func TestBuildDashboardPagination(t *testing.T) {
	people := []string{"ANA", "BRUNO", "CARLA", "DIEGO", "ELISA", "FABIO", "GINA"}
	var records []core.Record
	for i, p := range people {
		records = append(records, receipt(1+i, p, 1000))
	}
	ds := &Dataset{Records: records}

	d := BuildDashboard(ds, DashboardRequest{
		Period:    core.CurrentMonth,
		Dimension: report.ByPerson,
		Page:      report.Page{Index: 2, Size: 5},
		Today:     core.NewDate(2025, 3, 15),
	})

	if d.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", d.TotalPages)
	}
	if len(d.Keys) != 2 || d.Keys[0] != "FABIO" || d.Keys[1] != "GINA" {
		t.Errorf("Keys = %v, want [FABIO GINA]", d.Keys)
	}
	// Tables cover only the page window, totals cover the whole period.
	if len(d.BySum) != 2 {
		t.Errorf("BySum has %d groups, want 2", len(d.BySum))
	}
	if d.Total.Cents != 7000 {
		t.Errorf("Total = %d cents, want 7000", d.Total.Cents)
	}
}

func TestBuildDashboardPagePastEndYieldsEmptyTables(t *testing.T) {
	ds := &Dataset{Records: []core.Record{
		receipt(10, "ANA", 1000),
		receipt(11, "BRUNO", 2000),
		receipt(12, "CARLA", 3000),
	}}

	d := BuildDashboard(ds, DashboardRequest{
		Period:    core.CurrentMonth,
		Dimension: report.ByPerson,
		Page:      report.Page{Index: 9, Size: 2},
		Today:     core.NewDate(2025, 3, 15),
	})

	if d.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", d.TotalPages)
	}
	if len(d.Keys) != 0 {
		t.Fatalf("Keys = %v, want empty window past the last page", d.Keys)
	}
	// Tables and trend must match the empty window, not fall back to
	// every group.
	if len(d.BySum) != 0 || len(d.ByMean) != 0 || len(d.ByCount) != 0 {
		t.Errorf("tables = %d/%d/%d groups, want all empty",
			len(d.BySum), len(d.ByMean), len(d.ByCount))
	}
	if len(d.Trend) != 0 {
		t.Errorf("Trend has %d points, want 0", len(d.Trend))
	}
	// Headline totals still cover the whole filtered period.
	if d.Total.Cents != 6000 || d.Count != 3 {
		t.Errorf("totals = %d cents / %d records, want 6000 / 3", d.Total.Cents, d.Count)
	}
}

func TestBuildDashboardAllTimeBounds(t *testing.T) {
	ds := &Dataset{Records: []core.Record{
		{Date: core.NewDate(2024, 11, 5), Person: "ANA", Amount: core.Money{Cents: 100}, Source: core.SourceReceipts},
		{Person: "BRUNO", Amount: core.Money{Cents: 200}, Source: core.SourceReceipts}, // dateless
		{Date: core.NewDate(2025, 3, 12), Person: "ANA", Amount: core.Money{Cents: 300}, Source: core.SourceReceipts},
	}}

	d := BuildDashboard(ds, DashboardRequest{
		Period:    core.AllTime,
		Dimension: report.ByPerson,
		Page:      report.Page{Index: 1, Size: 5},
		Today:     core.NewDate(2025, 3, 15),
	})

	if d.Start != "05/11/2024" || d.End != "12/03/2025" {
		t.Errorf("bounds = %q..%q, want 05/11/2024..12/03/2025", d.Start, d.End)
	}
	// All time keeps dateless records.
	if d.Count != 3 {
		t.Errorf("Count = %d, want 3", d.Count)
	}
}

func TestBuildDashboardTrendIgnoresPeriodFilter(t *testing.T) {
	ds := &Dataset{Records: []core.Record{
		{Date: core.NewDate(2025, 1, 10), Person: "ANA", Amount: core.Money{Cents: 1000}, Source: core.SourceReceipts},
		{Date: core.NewDate(2025, 3, 10), Person: "ANA", Amount: core.Money{Cents: 2000}, Source: core.SourceReceipts},
	}}

	d := BuildDashboard(ds, DashboardRequest{
		Period:    core.CurrentMonth,
		Dimension: report.ByPerson,
		Page:      report.Page{Index: 1, Size: 5},
		Today:     core.NewDate(2025, 3, 15),
	})

	if d.Count != 1 {
		t.Errorf("Count = %d, want 1 (period filter applies to totals)", d.Count)
	}
	if len(d.Trend) != 2 {
		t.Fatalf("Trend has %d points, want 2 (full history)", len(d.Trend))
	}
	if d.Trend[0].Bucket != "01/2025" || d.Trend[1].Bucket != "03/2025" {
		t.Errorf("Trend buckets = %q, %q, want 01/2025 then 03/2025",
			d.Trend[0].Bucket, d.Trend[1].Bucket)
	}
}

func TestBuildDashboardEmptyDataset(t *testing.T) {
	d := BuildDashboard(&Dataset{}, DashboardRequest{
		Period:    core.LastMonth,
		Dimension: report.ByPerson,
		Page:      report.Page{Index: 1, Size: 5},
		Today:     core.NewDate(2025, 3, 15),
	})

	if d.Total.Cents != 0 || d.Mean.Cents != 0 || d.Count != 0 {
		t.Errorf("empty dataset totals = %d/%d/%d, want zeros",
			d.Total.Cents, d.Mean.Cents, d.Count)
	}
	if len(d.BySum) != 0 {
		t.Errorf("empty dataset BySum = %+v, want no groups", d.BySum)
	}
	if d.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", d.TotalPages)
	}
}
