package http

import (
	"fmt"
	"net/http"
	"time"

	"painel/internal/core"
	"painel/internal/report"
	"painel/internal/services"
)

func (s *Server) handlePeriods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	type periodView struct {
		Token string `json:"token"`
		Label string `json:"label"`
	}
	var out []periodView
	for _, p := range core.Periods() {
		out = append(out, periodView{Token: string(p), Label: p.Label()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	params, err := s.parseDashboardParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ds, err := s.dataset(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "no data available")
		return
	}

	key := fmt.Sprintf("%s|%s|%s|%d|%d",
		ds.Version, params.period, params.dimension,
		params.page.Index, params.page.Size)
	if d, ok := s.dashboardCache.Get(key); ok {
		writeJSON(w, http.StatusOK, d)
		return
	}

	d := services.BuildDashboard(ds, services.DashboardRequest{
		Period:    params.period,
		Dimension: params.dimension,
		Page:      params.page,
		Today:     core.Today(),
	})
	s.dashboardCache.Set(key, d)

	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	period, err := parsePeriodParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	srcs, err := parseSourceParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ds, err := s.dataset(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "no data available")
		return
	}

	filtered := report.Apply(ds.Records, report.Query{
		Range:   period.Resolve(core.Today()),
		Sources: srcs,
	})

	writeJSON(w, http.StatusOK, struct {
		Version string       `json:"version"`
		Period  core.Period  `json:"period"`
		Count   int          `json:"count"`
		Records []recordView `json:"records"`
	}{
		Version: ds.Version,
		Period:  period,
		Count:   len(filtered),
		Records: newRecordViews(filtered),
	})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	params, err := s.parseDashboardParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ds, err := s.dataset(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "no data available")
		return
	}

	scoped := report.Apply(ds.Records, report.Query{Sources: services.ScopeFor(params.dimension)})
	keys := params.page.Slice(report.Keys(scoped, params.dimension))

	writeJSON(w, http.StatusOK, struct {
		Version   string              `json:"version"`
		Dimension report.Dimension    `json:"dimension"`
		Points    []report.TrendPoint `json:"points"`
	}{
		Version:   ds.Version,
		Dimension: params.dimension,
		Points:    report.Trend(scoped, params.dimension, keys),
	})
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ds, err := s.dataset(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "no data available")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Version     string                  `json:"version"`
		RefreshedAt string                  `json:"refreshed_at"`
		Records     int                     `json:"records"`
		Sources     []services.SourceStatus `json:"sources"`
	}{
		Version:     ds.Version,
		RefreshedAt: ds.RefreshedAt.Format(time.RFC3339),
		Records:     len(ds.Records),
		Sources:     ds.Sources,
	})
}
