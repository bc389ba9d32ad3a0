package services

import (
	"painel/internal/core"
	"painel/internal/report"
)

// DashboardRequest selects the slice of the dataset a dashboard shows.
// Today anchors relative periods so the same request is reproducible in
// tests; callers pass core.Today() in production.
type DashboardRequest struct {
	Period    core.Period
	Dimension report.Dimension
	Page      report.Page
	Today     core.Date

	// Sources overrides the default scope inferred from the dimension.
	Sources []core.Source
}

// Dashboard is the fully derived view for one request: headline totals
// over the period, ranked metric tables over the paginated keys, and the
// monthly trend series.
type Dashboard struct {
	Period      core.Period `json:"period"`
	PeriodLabel string      `json:"period_label"`
	Start       string      `json:"start,omitempty"`
	End         string      `json:"end,omitempty"`

	Dimension report.Dimension `json:"dimension"`

	Total core.Money `json:"total"`
	Mean  core.Money `json:"mean"`
	Count int        `json:"count"`

	BySum   []report.MetricRow `json:"by_sum"`
	ByMean  []report.MetricRow `json:"by_mean"`
	ByCount []report.MetricRow `json:"by_count"`
	ByLabor []report.MetricRow `json:"by_labor,omitempty"`
	ByParts []report.MetricRow `json:"by_parts,omitempty"`

	Keys       []string `json:"keys"`
	PageIndex  int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`

	Trend []report.TrendPoint `json:"trend"`
}

// ScopeFor picks which sources a dimension reads from: expense
// dimensions read the expense ledger, everything else reads the two
// receipts sheets.
func ScopeFor(dim report.Dimension) []core.Source {
	switch dim {
	case report.ByGroup, report.ByType:
		return []core.Source{core.SourceExpenses}
	default:
		return []core.Source{core.SourceReceipts, core.SourceServiceOrders}
	}
}

// BuildDashboard derives a dashboard from a snapshot. It is a pure
// function of the dataset and the request: no clock reads, no I/O.
//
// The metric tables cover only the keys inside the requested page
// window; the headline totals cover the whole filtered period. The trend
// series deliberately ignores the period filter and spans the full
// history of the windowed keys.
func BuildDashboard(ds *Dataset, req DashboardRequest) Dashboard {
	scope := req.Sources
	if len(scope) == 0 {
		scope = ScopeFor(req.Dimension)
	}

	scoped := report.Apply(ds.Records, report.Query{Sources: scope})
	rng := req.Period.Resolve(req.Today)
	filtered := report.Apply(scoped, report.Query{Range: rng})

	d := Dashboard{
		Period:      req.Period,
		PeriodLabel: req.Period.Label(),
		Dimension:   req.Dimension,
		PageIndex:   req.Page.Index,
		PageSize:    req.Page.Size,
	}
	d.Start, d.End = periodBounds(rng, scoped)

	d.Total, d.Mean, d.Count = report.Totals(filtered)

	keys := report.Keys(filtered, req.Dimension)
	d.TotalPages = req.Page.TotalPages(len(keys))
	d.Keys = req.Page.Slice(keys)

	// A page past the end yields an empty key window. An empty Include
	// set means "no restriction", so grouping must be skipped outright
	// or the tables would cover every group the window excludes.
	if len(d.Keys) > 0 {
		windowed := report.Apply(filtered, report.Query{
			Include: map[report.Dimension][]string{req.Dimension: d.Keys},
		})
		grouped := report.GroupBy(windowed, req.Dimension)
		d.BySum = report.SortByMetric(grouped, report.MetricSum)
		d.ByMean = report.SortByMetric(grouped, report.MetricMean)
		d.ByCount = report.SortByMetric(grouped, report.MetricCount)
		if hasReceipts(scope) {
			d.ByLabor = report.SortByMetric(grouped, report.MetricLabor)
			d.ByParts = report.SortByMetric(grouped, report.MetricParts)
		}

		d.Trend = report.Trend(scoped, req.Dimension, d.Keys)
	}

	return d
}

// periodBounds renders the display bounds of the active range. An
// unbounded range falls back to the span of dated records, so "all time"
// still shows where the data starts and ends.
func periodBounds(rng core.DateRange, records []core.Record) (start, end string) {
	if !rng.Unbounded() {
		return rng.Start.Display(), rng.End.Display()
	}
	var min, max core.Date
	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		if min.IsZero() || r.Date.Before(min) {
			min = r.Date
		}
		if max.IsZero() || r.Date.After(max) {
			max = r.Date
		}
	}
	if min.IsZero() {
		return "", ""
	}
	return min.Display(), max.Display()
}

func hasReceipts(scope []core.Source) bool {
	for _, s := range scope {
		if s == core.SourceReceipts || s == core.SourceServiceOrders {
			return true
		}
	}
	return false
}
