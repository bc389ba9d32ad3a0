package pipeline

import (
	"strings"

	"painel/internal/core"
)

// Clean applies the cleaning rules to a normalized table and returns the
// cleaned table. Cleaning is total: a malformed cell is coerced to a safe
// default or its row is dropped, never an error. Clean is a fixed point:
// cleaning an already-clean table returns it unchanged.
//
// Steps, in order (the order matters: sentinel replacement must run before
// the empty-row drop, or meaningful zeros and genuinely empty cells become
// indistinguishable):
//
//  1. sentinel values (empty, whitespace, "None", "Não Informado", zero)
//     become the absent marker, across all columns
//  2. rows where every relevant field is absent are dropped
//  3. rows whose primary amount is absent or non-numeric are dropped;
//     under AmountPositive, non-positive amounts are dropped too
//  4. dates parse permissively and reformat to dd/mm/yyyy; unparseable
//     dates become absent but keep their row
//  5. optional numeric fields coerce to a canonical decimal, absent -> 0
//  6. absent text fields become the NotInformed label
//  7. person names normalize to their canonical grouping form
func Clean(t Table, s Schema) Table {
	out := Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, 0, len(t.Rows)),
	}
	for _, orig := range t.Rows {
		row := orig.Clone()

		for _, col := range t.Columns {
			row[col] = replaceSentinel(row.Get(col))
		}

		if allAbsent(row, s.Relevant) {
			continue
		}

		cents, err := core.ParseCents(row.Get(ColAmount))
		if err != nil {
			continue
		}
		if s.AmountRule == AmountPositive && cents <= 0 {
			continue
		}
		row[ColAmount] = core.Money{Cents: cents}.Display()

		if t.HasColumn(ColDate) {
			if d, ok := core.ParseDate(row.Get(ColDate)); ok {
				row[ColDate] = d.Display()
			} else {
				row[ColDate] = ""
			}
		}

		for _, col := range t.Columns {
			switch {
			case numericColumns[col]:
				row[col] = coerceDecimal(row.Get(col))
			case textColumns[col]:
				row[col] = coerceText(col, row.Get(col))
			}
		}

		out.Rows = append(out.Rows, row)
	}
	return out
}

// replaceSentinel maps the source sheets' "no value here" spellings onto
// the absent marker.
func replaceSentinel(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	folded := StripAccents(v)
	if strings.EqualFold(folded, "None") || strings.EqualFold(folded, "Nao Informado") {
		return ""
	}
	if cents, err := core.ParseCents(v); err == nil && cents == 0 {
		return ""
	}
	return v
}

func allAbsent(row Row, fields []string) bool {
	for _, f := range fields {
		if row.Get(f) != "" {
			return false
		}
	}
	return true
}

// coerceDecimal canonicalizes an optional numeric cell; anything that does
// not parse counts as no value.
func coerceDecimal(v string) string {
	cents, err := core.ParseCents(v)
	if err != nil {
		cents = 0
	}
	return core.Money{Cents: cents}.Display()
}

// coerceText fills absent text cells with the NotInformed label and
// canonicalizes the fields used for grouping. A description that is itself
// a date string is reformatted for display; other text passes through.
func coerceText(col, v string) string {
	if v == "" {
		return core.NotInformed
	}
	switch col {
	case ColPerson:
		return NormalizePerson(v)
	case ColDescription:
		if d, ok := core.ParseDate(v); ok {
			return d.Display()
		}
	}
	return v
}

// Records converts a cleaned (and possibly merged) table into typed
// canonical records. Cells for columns a row does not carry become the
// typed absent value: zero Date, 0 cents, NotInformed text.
func Records(t Table) []core.Record {
	out := make([]core.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		r := core.Record{Source: core.Source(row.Get(ColSource))}
		if d, ok := core.ParseDate(row.Get(ColDate)); ok {
			r.Date = d
		}
		r.Person = textOr(row, ColPerson)
		r.Operation = textOr(row, ColOperation)
		r.PaymentType = textOr(row, ColPaymentType)
		r.Group = textOr(row, ColGroup)
		r.Type = textOr(row, ColType)
		r.OrderNumber = textOr(row, ColOrderNumber)
		r.Description = textOr(row, ColDescription)
		r.Amount = cents(row, ColAmount)
		r.Labor = cents(row, ColLabor)
		r.Parts = cents(row, ColParts)
		r.Other = cents(row, ColOther)
		r.TotalWithFee = cents(row, ColTotalWithFee)
		out = append(out, r)
	}
	return out
}

func textOr(row Row, col string) string {
	if v := row.Get(col); v != "" {
		return v
	}
	return core.NotInformed
}

func cents(row Row, col string) core.Money {
	c, err := core.ParseCents(row.Get(col))
	if err != nil {
		return core.Money{}
	}
	return core.Money{Cents: c}
}
