package pipeline

// NormalizeColumns projects a raw sheet (header row plus data rows) onto
// the schema's canonical columns. Headers are matched after whitespace and
// case normalization; a header with no HeaderMap entry, or mapping to a
// canonical column outside Keep, is dropped rather than flagged. A source
// lacking some expected columns yields a table with just the intersection.
func NormalizeColumns(header []string, rows [][]string, s Schema) Table {
	// column index in the sheet -> canonical name
	indexed := make(map[int]string)
	present := make(map[string]bool)
	for i, h := range header {
		canonical, ok := s.HeaderMap[normalizeHeader(h)]
		if !ok || !keeps(s, canonical) {
			continue
		}
		if present[canonical] {
			// First matching header wins; later duplicates (merged
			// cells, repeated section headers) are dropped.
			continue
		}
		indexed[i] = canonical
		present[canonical] = true
	}

	columns := make([]string, 0, len(present)+1)
	for _, c := range s.Keep {
		if present[c] {
			columns = append(columns, c)
		}
	}
	columns = append(columns, ColSource)

	out := Table{Columns: columns, Rows: make([]Row, 0, len(rows))}
	for _, raw := range rows {
		row := make(Row, len(indexed)+1)
		for i, canonical := range indexed {
			if i < len(raw) {
				row[canonical] = raw[i]
			}
		}
		row[ColSource] = string(s.Source)
		out.Rows = append(out.Rows, row)
	}
	return out
}

func keeps(s Schema, canonical string) bool {
	for _, c := range s.Keep {
		if c == canonical {
			return true
		}
	}
	return false
}
