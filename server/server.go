// Package server serves the P&L dashboard and its JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/etnz/tradestats"
	"github.com/etnz/tradestats/logger"
	"github.com/etnz/tradestats/renderer"
	"github.com/etnz/tradestats/sheet"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultSession is the id of the session loaded from the configured ledger.
const DefaultSession = "default"

// Server holds the sessions and serves them over HTTP.
type Server struct {
	cfg      Config
	fees     tradestats.FeeSchedule
	store    *Store
	registry *prometheus.Registry
	metrics  *Metrics
	logger   *slog.Logger
}

// New returns a Server using the fee schedule fees.
func New(cfg Config, fees tradestats.FeeSchedule) *Server {
	reg := prometheus.NewRegistry()
	return &Server{
		cfg:      cfg,
		fees:     fees,
		store:    NewStore(),
		registry: reg,
		metrics:  NewMetrics(reg),
		logger:   logger.L().With(slog.String("component", "server")),
	}
}

// Store returns the server's sessions.
func (s *Server) Store() *Store { return s.store }

// Routes returns the server's router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api/sessions", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handleReplace)
			r.Delete("/", s.handleDelete)
			r.Post("/filter", s.handleFilter)
		})
	})
	return r
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", slog.String("addr", s.cfg.Addr))
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// Load reads a ledger and builds its session. On error nothing is stored.
func (s *Server) Load(ctx context.Context, name string, r io.Reader, settings tradestats.Settings) (*tradestats.Session, error) {
	op := logger.StartOperation(ctx, "load_ledger", "file", name)
	rows, err := sheet.Read(name, r)
	if err != nil {
		s.metrics.Uploads.WithLabelValues("unreadable").Inc()
		op.EndWithError(err)
		return nil, err
	}
	session, err := tradestats.Load(rows, settings, s.fees)
	if err != nil {
		s.metrics.Uploads.WithLabelValues("empty").Inc()
		op.EndWithError(err)
		return nil, err
	}
	report := session.Report()
	s.metrics.Uploads.WithLabelValues("ok").Inc()
	s.metrics.DroppedRows.Add(float64(report.Dropped()))
	op.End("rows", report.Rows, "trades", report.Trades, "dropped", report.Dropped())
	return session, nil
}

// analyze applies f to session, recording the metrics.
func (s *Server) analyze(session *tradestats.Session, f tradestats.Filter) *tradestats.AnalysisResult {
	start := time.Now()
	res := session.ApplyFilter(f)
	s.metrics.Duration.Observe(time.Since(start).Seconds())
	s.metrics.Analyses.WithLabelValues(f.Mode.String()).Inc()
	return res
}

// SessionResponse describes a stored session.
type SessionResponse struct {
	ID     string                     `json:"id"`
	Ingest tradestats.IngestReport    `json:"ingest"`
	Months []renderer.MonthOption     `json:"months"`
	Result *tradestats.AnalysisResult `json:"result"`
}

// FilterRequest is the body of a filter request. Empty lists mean "All".
type FilterRequest struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Weekdays []string `json:"weekdays"`
	Months   []string `json:"months"`
	Mode     string   `json:"mode"`
}

// Bind implements render.Binder.
func (f *FilterRequest) Bind(*http.Request) error { return nil }

// FilterResponse is a filtered analysis with its rendered report.
type FilterResponse struct {
	Result *tradestats.AnalysisResult `json:"result"`
	HTML   string                     `json:"html"`
	Chart  renderer.Chart             `json:"chart"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context(), "request failed", err, "request_id", middleware.GetReqID(r.Context()))
	}
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: err.Error()})
}

// loadStatus maps a load error to an HTTP status.
func loadStatus(err error) int {
	switch {
	case errors.Is(err, tradestats.ErrNoTrades):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// formFloat reads a numeric form value. Missing values take def, unparsable
// ones are zero.
func formFloat(r *http.Request, key string, def float64) float64 {
	v := r.FormValue(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// upload reads the multipart ledger and its settings.
func (s *Server) upload(w http.ResponseWriter, r *http.Request) (*tradestats.Session, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		return nil, fmt.Errorf("invalid upload: %w", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("missing ledger file: %w", err)
	}
	defer file.Close()

	d := s.cfg.Defaults
	settings := tradestats.NewSettings(
		formFloat(r, "capital", d.Capital),
		formFloat(r, "brokerage", d.Brokerage),
		formFloat(r, "profit_sharing", d.ProfitSharing),
	)
	return s.Load(r.Context(), header.Filename, file, settings)
}

func (s *Server) respondSession(w http.ResponseWriter, r *http.Request, id string, session *tradestats.Session) {
	render.JSON(w, r, SessionResponse{
		ID:     id,
		Ingest: session.Report(),
		Months: renderer.MonthOptions(session.Months()),
		Result: s.analyze(session, tradestats.Filter{}),
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	session, err := s.upload(w, r)
	if err != nil {
		s.respondError(w, r, loadStatus(err), err)
		return
	}
	id := s.store.Create(session)
	s.metrics.Sessions.Set(float64(s.store.Len()))
	s.logger.Info("session created", slog.String("session", id), slog.String("request_id", middleware.GetReqID(r.Context())))
	render.Status(r, http.StatusCreated)
	s.respondSession(w, r, id, session)
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.store.Get(id); !ok {
		s.respondError(w, r, http.StatusNotFound, fmt.Errorf("session %q not found", id))
		return
	}
	session, err := s.upload(w, r)
	if err != nil {
		s.respondError(w, r, loadStatus(err), err)
		return
	}
	if !s.store.Replace(id, session) {
		s.respondError(w, r, http.StatusNotFound, fmt.Errorf("session %q not found", id))
		return
	}
	s.respondSession(w, r, id, session)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, ok := s.store.Get(id)
	if !ok {
		s.respondError(w, r, http.StatusNotFound, fmt.Errorf("session %q not found", id))
		return
	}
	s.respondSession(w, r, id, session)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.store.Delete(id) {
		s.respondError(w, r, http.StatusNotFound, fmt.Errorf("session %q not found", id))
		return
	}
	s.metrics.Sessions.Set(float64(s.store.Len()))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, ok := s.store.Get(id)
	if !ok {
		s.respondError(w, r, http.StatusNotFound, fmt.Errorf("session %q not found", id))
		return
	}
	var req FilterRequest
	if err := render.Bind(r, &req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, fmt.Errorf("invalid filter: %w", err))
		return
	}
	f, err := tradestats.ParseFilter(req.From, req.To, req.Weekdays, req.Months, req.Mode)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err)
		return
	}
	res := s.analyze(session, f)
	html, err := renderer.ToHTML(renderer.Markdown(res, renderer.Options{}))
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, err)
		return
	}
	render.JSON(w, r, FilterResponse{Result: res, HTML: string(html), Chart: renderer.NewChart(res)})
}

// handlePage serves the dashboard of ?session=id, the default session, or
// the upload form.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	explicit := id != ""
	if !explicit {
		id = DefaultSession
	}
	page := &renderer.Page{Title: "P&L Report"}
	if session, ok := s.store.Get(id); ok {
		p, err := renderer.NewPage(s.analyze(session, tradestats.Filter{}), renderer.Options{})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		p.SessionID = id
		p.Months = renderer.MonthOptions(session.Months())
		page = p
	} else if explicit {
		page.Message = fmt.Sprintf("Session %q not found, upload a ledger.", id)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderer.WriteHTML(w, page); err != nil {
		logger.Error(r.Context(), "failed to render page", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{"status": "ok", "sessions": s.store.Len()})
}
