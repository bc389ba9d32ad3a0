// Package report implements period filtering and metric aggregation over
// the cleaned record set. Everything here is a pure function of its
// inputs: same records, same query, same tables out.
package report

import (
	"fmt"

	"painel/internal/core"
)

// Dimension is a categorical field used as a group-by key.
type Dimension string

const (
	ByPerson      Dimension = "person"
	ByOperation   Dimension = "operation"
	ByPaymentType Dimension = "payment_type"
	ByGroup       Dimension = "expense_group"
	ByType        Dimension = "expense_type"
)

// ParseDimension validates a dimension name from the API.
func ParseDimension(s string) (Dimension, error) {
	switch d := Dimension(s); d {
	case ByPerson, ByOperation, ByPaymentType, ByGroup, ByType:
		return d, nil
	}
	return "", fmt.Errorf("unknown dimension %q", s)
}

// Key extracts the record's value for the dimension.
func (d Dimension) Key(r core.Record) string {
	switch d {
	case ByPerson:
		return r.Person
	case ByOperation:
		return r.Operation
	case ByPaymentType:
		return r.PaymentType
	case ByGroup:
		return r.Group
	case ByType:
		return r.Type
	default:
		return ""
	}
}

// Query is the conjunction of optional filters applied to the unified
// table. Every filter is independently optional; an empty Query returns
// its input unchanged. Filters commute.
type Query struct {
	// Range restricts record dates, bounds inclusive. The zero range is
	// unbounded and keeps every record, dateless ones included.
	Range core.DateRange

	// Include restricts a dimension to a set of accepted values. An
	// absent dimension or empty set places no restriction.
	Include map[Dimension][]string

	// MinAmount and MaxAmount bound the primary amount, inclusive.
	MinAmount *core.Money
	MaxAmount *core.Money

	// Sources restricts records to the given origins. Empty means all.
	Sources []core.Source
}

// Apply filters the records, returning a fresh slice.
func Apply(records []core.Record, q Query) []core.Record {
	out := make([]core.Record, 0, len(records))
	for _, r := range records {
		if !q.matches(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (q Query) matches(r core.Record) bool {
	if !q.Range.Unbounded() {
		if r.Date.IsZero() || !q.Range.Contains(r.Date) {
			return false
		}
	}
	for dim, accepted := range q.Include {
		if len(accepted) == 0 {
			continue
		}
		if !contains(accepted, dim.Key(r)) {
			return false
		}
	}
	if len(q.Sources) > 0 && !containsSource(q.Sources, r.Source) {
		return false
	}
	if q.MinAmount != nil && r.Amount.Cents < q.MinAmount.Cents {
		return false
	}
	if q.MaxAmount != nil && r.Amount.Cents > q.MaxAmount.Cents {
		return false
	}
	return true
}

func containsSource(values []core.Source, v core.Source) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
