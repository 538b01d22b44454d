package http

import (
	"fmt"
	"net/http"
	"strings"

	"expenso/internal/log"
	"expenso/internal/query"
	"expenso/internal/report"
)

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, query.Dashboard(s.store.Snapshot().Transactions, s.now()))
}

// reportOptions parses ?categories=a,b&months=n.
func (s *Server) reportOptions(r *http.Request) (report.Options, error) {
	months, err := queryInt(r, "months", s.reportMonths, 1, 60)
	if err != nil {
		return report.Options{}, err
	}
	return report.Options{
		Selected: queryList(r, "categories"),
		Months:   months,
		Currency: s.currency,
	}, nil
}

// cacheKey identifies a computed view. The date is part of the key because
// month boundaries move with the clock.
func cacheKey(version uint64, opts report.Options, day string) string {
	return fmt.Sprintf("%d|%s|%d|%s", version, strings.Join(opts.Selected, ","), opts.Months, day)
}

func (s *Server) buildReport(opts report.Options) (report.Report, error) {
	now := s.now()
	snap, version := s.store.View()
	key := cacheKey(version, opts, now.Format("2006-01-02"))
	return s.reports.GetOrLoad(key, func() (report.Report, error) {
		return report.Build(snap, opts, now), nil
	})
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	opts, err := s.reportOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "months")
		return
	}
	rep, err := s.buildReport(opts)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	opts, err := s.reportOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "months")
		return
	}

	now := s.now()
	snap, version := s.store.View()
	if len(opts.Selected) == 0 {
		opts.Selected = query.DefaultSelection(snap.Categories)
	}
	key := cacheKey(version, opts, now.Format("2006-01-02"))
	series, err := s.series.GetOrLoad(key, func() ([]query.MonthBucket, error) {
		return query.MonthlySeries(snap.Transactions, snap.Categories, opts.Selected, opts.Months, now), nil
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	opts, err := s.reportOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "months")
		return
	}
	rep, err := s.buildReport(opts)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	filename := fmt.Sprintf("expenso-report-%s.csv", rep.GeneratedAt.Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := report.WriteCSV(w, rep); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "CSV export failed", log.FieldError, err)
	}
}
