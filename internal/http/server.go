// Package http exposes the store and its read-only views as a JSON API.
package http

import (
	"context"
	"net/http"
	"time"

	"expenso/internal/cache"
	"expenso/internal/log"
	"expenso/internal/middleware/ratelimit"
	"expenso/internal/middleware/security"
	"expenso/internal/middleware/trace"
	"expenso/internal/query"
	"expenso/internal/report"
	"expenso/internal/store"
)

const (
	cacheSize = 100
	cacheTTL  = 5 * time.Minute

	maxBodyBytes = 1 << 20
)

// Options configure the API server. Zero values fall back to defaults.
type Options struct {
	Addr               string
	Currency           string
	ReportMonths       int
	RateLimitPerMinute int
	// Ready is consulted by /readyz, e.g. a database ping.
	Ready  func(ctx context.Context) error
	Logger *log.Logger
	Now    func() time.Time
}

type Server struct {
	http.Server
	store  *store.Store
	logger *log.Logger
	tracer *trace.Middleware

	currency     string
	reportMonths int
	ready        func(ctx context.Context) error
	now          func() time.Time

	limiter *ratelimit.Limiter
	// Report views are keyed by store version, so entries never go stale
	// within their TTL.
	reports *cache.LRU[report.Report]
	series  *cache.LRU[[]query.MonthBucket]
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(st *store.Store, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Currency == "" {
		opts.Currency = report.DefaultCurrency
	}
	if opts.ReportMonths <= 0 {
		opts.ReportMonths = report.DefaultMonths
	}

	s := &Server{
		store:        st,
		logger:       opts.Logger.WithComponent(log.ComponentHTTP),
		tracer:       trace.NewMiddleware(opts.Logger, security.ClientIP),
		currency:     opts.Currency,
		reportMonths: opts.ReportMonths,
		ready:        opts.Ready,
		now:          opts.Now,
		limiter:      ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		reports:      cache.NewLRU[report.Report](cacheSize, cacheTTL),
		series:       cache.NewLRU[[]query.MonthBucket](cacheSize, cacheTTL),
	}

	mux := http.NewServeMux()
	s.routes(mux)

	var handler http.Handler = mux
	handler = s.limiter.Middleware(security.ClientIP, ratelimit.WritesOnly, s.handleRateLimited)(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = s.tracer.Middleware(handler)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/state/reset", s.handleReset)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("POST /api/recurring/process", s.handleProcessRecurring)
	mux.HandleFunc("GET /api/recurring/upcoming", s.handleUpcoming)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("PUT /api/categories/{id}", s.handleUpdateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)

	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("PUT /api/budgets/{categoryId}", s.handleSetBudget)

	mux.HandleFunc("POST /api/theme/toggle", s.handleToggleTheme)

	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/reports/breakdown", s.handleBreakdown)
	mux.HandleFunc("GET /api/reports/series", s.handleSeries)
	mux.HandleFunc("GET /api/reports/export.csv", s.handleExportCSV)
}

// Cleaners returns the server's expiring state for a cache.Janitor.
func (s *Server) Cleaners() []cache.Cleaner {
	return []cache.Cleaner{s.reports, s.series, s.limiter}
}

// Metrics returns request counters collected by the trace middleware.
func (s *Server) Metrics() trace.Metrics {
	return s.tracer.GetMetrics()
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			log.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed", log.FieldError, err)
			writeError(w, http.StatusServiceUnavailable, "not ready", "")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ready",
		"version":   s.store.Version(),
		"requests":  s.tracer.GetMetrics(),
		"rateLimit": s.limiter.GetMetrics(),
	})
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, security.ClientIP(r))
	writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later", "")
}
