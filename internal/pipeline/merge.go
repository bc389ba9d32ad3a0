package pipeline

// Merge concatenates tables into one, using the union of their columns.
// Row order is source order then concatenation order. Cells for columns a
// source does not carry stay absent; no row is dropped for lacking a
// column that another source has.
func Merge(tables ...Table) Table {
	var out Table
	seen := make(map[string]bool)
	for _, t := range tables {
		for _, c := range t.Columns {
			if !seen[c] {
				seen[c] = true
				out.Columns = append(out.Columns, c)
			}
		}
		for _, r := range t.Rows {
			out.Rows = append(out.Rows, r.Clone())
		}
	}
	return out
}
