package report

import (
	"reflect"
	"testing"

	"painel/internal/core"
)

func rec(date core.Date, person, operation string, cents int64) core.Record {
	return core.Record{
		Date:      date,
		Person:    person,
		Operation: operation,
		Amount:    core.Money{Cents: cents},
		Source:    core.SourceReceipts,
	}
}

func sampleRecords() []core.Record {
	return []core.Record{
		rec(core.NewDate(2025, 3, 10), "ANA", "VENDA", 10050),
		rec(core.NewDate(2025, 3, 11), "BIA", "CONSERTO", 5000),
		rec(core.NewDate(2025, 2, 20), "ANA", "VENDA", 20000),
		rec(core.Date{}, "CARLOS", "VENDA", 7500), // dateless
	}
}

func TestApplyEmptyQueryIsIdentity(t *testing.T) {
	in := sampleRecords()
	out := Apply(in, Query{})
	if !reflect.DeepEqual(in, out) {
		t.Error("an empty query must return the input unchanged")
	}
}

func TestApplyPeriodRange(t *testing.T) {
	q := Query{Range: core.DateRange{Start: core.NewDate(2025, 3, 1), End: core.NewDate(2025, 3, 31)}}
	out := Apply(sampleRecords(), q)
	if len(out) != 2 {
		t.Fatalf("expected 2 records in March, got %d", len(out))
	}
	for _, r := range out {
		if r.Date.Month() != 3 {
			t.Errorf("record outside range: %v", r.Date)
		}
	}
}

func TestApplyBoundedRangeExcludesDateless(t *testing.T) {
	q := Query{Range: core.DateRange{Start: core.NewDate(2020, 1, 1), End: core.NewDate(2030, 1, 1)}}
	for _, r := range Apply(sampleRecords(), q) {
		if r.Date.IsZero() {
			t.Error("dateless records must not match a bounded range")
		}
	}
}

func TestApplyEmptyIncludeSetIsNoRestriction(t *testing.T) {
	q := Query{Include: map[Dimension][]string{ByPerson: {}}}
	out := Apply(sampleRecords(), q)
	if len(out) != len(sampleRecords()) {
		t.Errorf("an empty inclusion set must not exclude anything, got %d records", len(out))
	}
}

func TestApplyCategoricalInclude(t *testing.T) {
	q := Query{Include: map[Dimension][]string{ByPerson: {"ANA"}}}
	out := Apply(sampleRecords(), q)
	if len(out) != 2 {
		t.Fatalf("expected 2 ANA records, got %d", len(out))
	}
}

func TestApplyAmountRangeInclusive(t *testing.T) {
	min := core.Money{Cents: 5000}
	max := core.Money{Cents: 10050}
	out := Apply(sampleRecords(), Query{MinAmount: &min, MaxAmount: &max})
	if len(out) != 3 {
		t.Fatalf("expected 3 records in [50,00, 100,50], got %d", len(out))
	}
}

func TestFiltersCommute(t *testing.T) {
	in := sampleRecords()
	catQuery := Query{Include: map[Dimension][]string{ByOperation: {"VENDA"}}}
	min := core.Money{Cents: 8000}
	amtQuery := Query{MinAmount: &min}

	catThenAmt := Apply(Apply(in, catQuery), amtQuery)
	amtThenCat := Apply(Apply(in, amtQuery), catQuery)
	combined := Apply(in, Query{Include: catQuery.Include, MinAmount: &min})

	if !reflect.DeepEqual(catThenAmt, amtThenCat) {
		t.Error("category and amount filters must commute")
	}
	if !reflect.DeepEqual(catThenAmt, combined) {
		t.Error("sequential application must equal the conjunction")
	}
}
