package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"painel/internal/core"
	"painel/internal/report"
)

// maxPageSize caps page_size so one request cannot ask for the whole
// key space at once.
const maxPageSize = 50

type dashboardParams struct {
	period    core.Period
	dimension report.Dimension
	page      report.Page
}

func (s *Server) parseDashboardParams(r *http.Request) (dashboardParams, error) {
	p := dashboardParams{
		period:    core.CurrentMonth,
		dimension: report.ByPerson,
		page:      report.Page{Index: 1, Size: s.pageSize},
	}

	q := r.URL.Query()

	if v := strings.TrimSpace(q.Get("period")); v != "" {
		period, err := core.ParsePeriod(v)
		if err != nil {
			return p, err
		}
		p.period = period
	}

	if v := strings.TrimSpace(q.Get("dimension")); v != "" {
		dim, err := report.ParseDimension(v)
		if err != nil {
			return p, err
		}
		p.dimension = dim
	}

	if v := strings.TrimSpace(q.Get("page")); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return p, fmt.Errorf("invalid page %q: must be a positive number", v)
		}
		p.page.Index = page
	}

	if v := strings.TrimSpace(q.Get("page_size")); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 {
			return p, fmt.Errorf("invalid page_size %q: must be a positive number", v)
		}
		if size > maxPageSize {
			size = maxPageSize
		}
		p.page.Size = size
	}

	return p, nil
}

func parsePeriodParam(r *http.Request) (core.Period, error) {
	v := strings.TrimSpace(r.URL.Query().Get("period"))
	if v == "" {
		return core.AllTime, nil
	}
	return core.ParsePeriod(v)
}

func parseSourceParams(r *http.Request) ([]core.Source, error) {
	var out []core.Source
	for _, v := range r.URL.Query()["source"] {
		switch src := core.Source(strings.TrimSpace(v)); src {
		case core.SourceReceipts, core.SourceServiceOrders, core.SourceExpenses:
			out = append(out, src)
		default:
			return nil, fmt.Errorf("unknown source %q", v)
		}
	}
	return out, nil
}
