package report

import (
	"testing"

	"painel/internal/core"
)

func TestGroupByEmptyInput(t *testing.T) {
	rows := GroupBy(nil, ByPerson)
	if len(rows) != 0 {
		t.Errorf("grouping nothing should yield zero groups, got %d", len(rows))
	}

	total, mean, count := Totals(nil)
	if total.Cents != 0 || mean.Cents != 0 || count != 0 {
		t.Errorf("empty totals should be 0/0/0, got %d/%d/%d", total.Cents, mean.Cents, count)
	}
}

func TestGroupByMetrics(t *testing.T) {
	records := []core.Record{
		rec(core.NewDate(2025, 3, 10), "ANA", "VENDA", 10050),
		rec(core.NewDate(2025, 3, 11), "ANA", "VENDA", 5000),
		rec(core.NewDate(2025, 3, 12), "BIA", "VENDA", 30000),
	}
	records[0].Labor = core.Money{Cents: 7000}
	records[0].Parts = core.Money{Cents: 3050}

	rows := GroupBy(records, ByPerson)
	if len(rows) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(rows))
	}

	ana := rows[0]
	if ana.Key != "ANA" {
		t.Fatalf("first-seen order broken: %q first", ana.Key)
	}
	if ana.Sum.Cents != 15050 || ana.Count != 2 {
		t.Errorf("ANA sum/count = %d/%d", ana.Sum.Cents, ana.Count)
	}
	if ana.Mean.Cents != 7525 {
		t.Errorf("ANA mean = %d, expected 7525", ana.Mean.Cents)
	}
	if ana.Labor.Cents != 7000 || ana.Parts.Cents != 3050 {
		t.Errorf("ANA labor/parts = %d/%d", ana.Labor.Cents, ana.Parts.Cents)
	}
}

func TestSortByMetricStableDescending(t *testing.T) {
	rows := []MetricRow{
		{Key: "A", Sum: core.Money{Cents: 100}},
		{Key: "B", Sum: core.Money{Cents: 300}},
		{Key: "C", Sum: core.Money{Cents: 300}},
		{Key: "D", Sum: core.Money{Cents: 200}},
	}
	sorted := SortByMetric(rows, MetricSum)

	want := []string{"B", "C", "D", "A"}
	for i, k := range want {
		if sorted[i].Key != k {
			t.Fatalf("order = %v, expected %v", keysOf(sorted), want)
		}
	}
	// Input untouched.
	if rows[0].Key != "A" {
		t.Error("SortByMetric must not mutate its input")
	}
}

func keysOf(rows []MetricRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Key
	}
	return out
}

func TestEndToEndCurrentMonthByPerson(t *testing.T) {
	// Two receipts for the same person under different spellings, already
	// cleaned: grouping for "Mês Atual" with today = 2025-03-15 must see
	// one group with sum 150,50 and mean 75,25.
	records := []core.Record{
		rec(core.NewDate(2025, 3, 10), "ANA", "VENDA", 10050),
		rec(core.NewDate(2025, 3, 11), "ANA", "VENDA", 5000),
	}

	today := core.NewDate(2025, 3, 15)
	filtered := Apply(records, Query{Range: core.CurrentMonth.Resolve(today)})
	rows := GroupBy(filtered, ByPerson)

	if len(rows) != 1 {
		t.Fatalf("expected a single ANA group, got %d", len(rows))
	}
	got := rows[0]
	if got.Key != "ANA" || got.Sum.Cents != 15050 || got.Mean.Cents != 7525 || got.Count != 2 {
		t.Errorf("group = %+v", got)
	}
}

func TestPageSlice(t *testing.T) {
	keys := []string{"a", "b", "c", "d", "e"}

	cases := []struct {
		page Page
		want []string
	}{
		{Page{Index: 1, Size: 2}, []string{"a", "b"}},
		{Page{Index: 3, Size: 2}, []string{"e"}},
		{Page{Index: 4, Size: 2}, nil},
		{Page{Index: 1, Size: 0}, keys},
	}
	for _, tc := range cases {
		got := tc.page.Slice(keys)
		if len(got) != len(tc.want) {
			t.Errorf("page %+v: got %v, expected %v", tc.page, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("page %+v: got %v, expected %v", tc.page, got, tc.want)
				break
			}
		}
	}

	if pages := (Page{Size: 2}).TotalPages(5); pages != 3 {
		t.Errorf("TotalPages(5) with size 2 = %d, expected 3", pages)
	}
}

func TestTrendBucketsAndWindow(t *testing.T) {
	records := []core.Record{
		rec(core.NewDate(2025, 2, 5), "ANA", "VENDA", 10000),
		rec(core.NewDate(2025, 3, 10), "ANA", "VENDA", 20000),
		rec(core.NewDate(2025, 3, 12), "ANA", "VENDA", 10000),
		rec(core.NewDate(2025, 3, 15), "BIA", "VENDA", 5000),
		rec(core.Date{}, "ANA", "VENDA", 99999), // dateless, excluded
	}

	points := Trend(records, ByPerson, []string{"ANA"})

	if len(points) != 2 {
		t.Fatalf("expected 2 buckets for ANA, got %d", len(points))
	}
	if points[0].Bucket != "02/2025" || points[1].Bucket != "03/2025" {
		t.Errorf("buckets not chronological: %q, %q", points[0].Bucket, points[1].Bucket)
	}
	march := points[1]
	if march.Sum.Cents != 30000 || march.Count != 2 || march.Mean.Cents != 15000 {
		t.Errorf("march point = %+v", march)
	}
	for _, p := range points {
		if p.Key != "ANA" {
			t.Errorf("window restriction leaked key %q", p.Key)
		}
	}
}

func TestTrendYearBoundaryOrder(t *testing.T) {
	records := []core.Record{
		rec(core.NewDate(2025, 1, 5), "ANA", "VENDA", 100),
		rec(core.NewDate(2024, 12, 5), "ANA", "VENDA", 100),
	}
	points := Trend(records, ByPerson, []string{"ANA"})
	if len(points) != 2 || points[0].Bucket != "12/2024" || points[1].Bucket != "01/2025" {
		t.Errorf("buckets must sort across the year boundary, got %+v", points)
	}
}

func TestKeysFirstSeenOrder(t *testing.T) {
	records := []core.Record{
		rec(core.NewDate(2025, 3, 1), "BIA", "VENDA", 1),
		rec(core.NewDate(2025, 3, 2), "ANA", "VENDA", 1),
		rec(core.NewDate(2025, 3, 3), "BIA", "VENDA", 1),
	}
	keys := Keys(records, ByPerson)
	if len(keys) != 2 || keys[0] != "BIA" || keys[1] != "ANA" {
		t.Errorf("keys = %v", keys)
	}
}
