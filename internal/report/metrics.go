package report

import (
	"sort"
	"strconv"
	"strings"

	"painel/internal/core"
)

// Metric names the value a metric table is sorted by.
type Metric int

const (
	MetricSum Metric = iota
	MetricMean
	MetricCount
	MetricLabor
	MetricParts
)

// MetricRow is one group of an aggregated table.
type MetricRow struct {
	Key   string     `json:"key"`
	Sum   core.Money `json:"sum"`
	Mean  core.Money `json:"mean"`
	Count int        `json:"count"`
	Labor core.Money `json:"labor"`
	Parts core.Money `json:"parts"`
}

// GroupBy aggregates records by the dimension, computing sum, mean and
// count of the primary amount plus labor and parts sums per group. Rows
// come back in first-seen key order; use SortByMetric for ranked tables.
// Grouping an empty input yields zero groups.
func GroupBy(records []core.Record, dim Dimension) []MetricRow {
	index := make(map[string]int)
	var rows []MetricRow
	for _, r := range records {
		key := dim.Key(r)
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, MetricRow{Key: key})
		}
		rows[i].Sum.Cents += r.Amount.Cents
		rows[i].Labor.Cents += r.Labor.Cents
		rows[i].Parts.Cents += r.Parts.Cents
		rows[i].Count++
	}
	for i := range rows {
		rows[i].Mean = meanCents(rows[i].Sum.Cents, rows[i].Count)
	}
	return rows
}

// SortByMetric returns a copy of the rows sorted descending by the metric.
// The sort is stable: ties keep the original group key ordering.
func SortByMetric(rows []MetricRow, m Metric) []MetricRow {
	out := append([]MetricRow(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		return metricValue(out[i], m) > metricValue(out[j], m)
	})
	return out
}

func metricValue(r MetricRow, m Metric) int64 {
	switch m {
	case MetricMean:
		return r.Mean.Cents
	case MetricCount:
		return int64(r.Count)
	case MetricLabor:
		return r.Labor.Cents
	case MetricParts:
		return r.Parts.Cents
	default:
		return r.Sum.Cents
	}
}

// meanCents divides with half-up rounding; the mean of an empty group is 0
// by convention, never a division failure.
func meanCents(sum int64, count int) core.Money {
	if count == 0 {
		return core.Money{}
	}
	n := int64(count)
	half := n / 2
	if sum < 0 {
		half = -half
	}
	return core.Money{Cents: (sum + half) / n}
}

// Totals computes the headline metrics over a filtered set: total, mean
// and count of the primary amount. A mean over nothing is 0.
func Totals(records []core.Record) (total core.Money, mean core.Money, count int) {
	for _, r := range records {
		total.Cents += r.Amount.Cents
		count++
	}
	return total, meanCents(total.Cents, count), count
}

// Page is an explicit pagination window over the dimension's values.
// Index is 1-based, matching the UI's page selector.
type Page struct {
	Index int
	Size  int
}

// Slice returns the keys falling inside the page. An out-of-range page
// yields an empty slice; a non-positive size means no pagination.
func (p Page) Slice(keys []string) []string {
	if p.Size <= 0 {
		return keys
	}
	start := (p.Index - 1) * p.Size
	if start < 0 || start >= len(keys) {
		return nil
	}
	end := start + p.Size
	if end > len(keys) {
		end = len(keys)
	}
	return keys[start:end]
}

// TotalPages returns how many pages the key list spans.
func (p Page) TotalPages(n int) int {
	if p.Size <= 0 || n == 0 {
		return 1
	}
	pages := n / p.Size
	if n%p.Size > 0 {
		pages++
	}
	return pages
}

// Keys lists the dimension's distinct values in first-seen order. The
// ordering is what pagination windows slice over, so it must be stable
// across recomputations of the same input.
func Keys(records []core.Record, dim Dimension) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		key := dim.Key(r)
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}

// TrendPoint is one (month bucket, group) cell of a trend series.
type TrendPoint struct {
	Bucket string     `json:"bucket"` // "MM/YYYY"
	Key    string     `json:"key"`
	Sum    core.Money `json:"sum"`
	Mean   core.Money `json:"mean"`
	Count  int        `json:"count"`
	Labor  core.Money `json:"labor"`
	Parts  core.Money `json:"parts"`
}

// Trend aggregates records per (calendar month, dimension value),
// restricted to the given keys (the caller's pagination window). Records
// without a date are excluded: trend series are keyed on the month bucket.
// Points come back in chronological bucket order, keys in first-seen
// order within a bucket.
//
// Callers pass the full unfiltered record set here, not the
// period-filtered one: the trend charts show history regardless of the
// period selector.
func Trend(records []core.Record, dim Dimension, keys []string) []TrendPoint {
	accepted := make(map[string]bool, len(keys))
	for _, k := range keys {
		accepted[k] = true
	}

	type cell struct{ bucket, key string }
	index := make(map[cell]int)
	var points []TrendPoint
	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		key := dim.Key(r)
		if !accepted[key] {
			continue
		}
		c := cell{bucket: r.Date.MonthBucket(), key: key}
		i, ok := index[c]
		if !ok {
			i = len(points)
			index[c] = i
			points = append(points, TrendPoint{Bucket: c.bucket, Key: key})
		}
		points[i].Sum.Cents += r.Amount.Cents
		points[i].Labor.Cents += r.Labor.Cents
		points[i].Parts.Cents += r.Parts.Cents
		points[i].Count++
	}
	for i := range points {
		points[i].Mean = meanCents(points[i].Sum.Cents, points[i].Count)
	}

	sort.SliceStable(points, func(i, j int) bool {
		return bucketOrdinal(points[i].Bucket) < bucketOrdinal(points[j].Bucket)
	})
	return points
}

// bucketOrdinal turns "MM/YYYY" into a sortable year*100+month value.
func bucketOrdinal(bucket string) int {
	parts := strings.SplitN(bucket, "/", 2)
	if len(parts) != 2 {
		return 0
	}
	month, _ := strconv.Atoi(parts[0])
	year, _ := strconv.Atoi(parts[1])
	return year*100 + month
}
