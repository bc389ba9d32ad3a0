// Package pipeline implements the data normalization pipeline: projecting
// raw sheet rows onto a canonical schema, merging sources, and cleaning
// cells into a typed, deduplicated record set.
package pipeline

// Canonical column names of the unified table. Source sheets map their
// Portuguese headers onto these via Schema.HeaderMap.
const (
	ColDate         = "date"
	ColPerson       = "person"
	ColOrderNumber  = "order_number"
	ColOperation    = "operation"
	ColPaymentType  = "payment_type"
	ColParts        = "parts"
	ColLabor        = "labor"
	ColAmount       = "amount"
	ColOther        = "other"
	ColTotalWithFee = "total_with_fee"
	ColDescription  = "description"
	ColGroup        = "expense_group"
	ColType         = "expense_type"

	// ColSource is stamped by the normalizer so rows keep their origin
	// through the merge.
	ColSource = "source"
)

// Row is one record of a canonical table. Cells are stringly typed until
// conversion; a missing key or empty string is the absent marker.
type Row map[string]string

// Get returns the cell value, "" when the column is absent.
func (r Row) Get(col string) string {
	return r[col]
}

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered set of canonical columns plus rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the table carries the named column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}
