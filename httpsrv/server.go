// Package httpsrv serves page analysis over a small JSON/text HTTP API.
package httpsrv

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hazyhaar/domscope/analyze"
)

// Analyzer is the slice of the domscope service the handlers need.
type Analyzer interface {
	AnalyzeURL(ctx context.Context, pageID, pageURL string) (*analyze.Report, error)
}

// Server exposes analysis over HTTP.
type Server struct {
	analyzer Analyzer
	logger   *slog.Logger
	router   chi.Router
}

// NewServer builds the router. Routes:
//
//	GET /healthz                     liveness probe
//	GET /v1/report?url=&id=          composed text report (text/plain)
//	GET /v1/summary?url=&id=         statistics and tag distribution (JSON)
//	GET /v1/interactive?url=&id=     interactive-element catalog (JSON)
func NewServer(analyzer Analyzer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{analyzer: analyzer, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/v1/report", s.handleReport)
	r.Get("/v1/summary", s.handleSummary)
	r.Get("/v1/interactive", s.handleInteractive)
	s.router = r
	return s
}

// Handler returns the HTTP handler, for mounting or tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()
	s.logger.Info("http server starting", "addr", addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) (*analyze.Report, bool) {
	pageURL := r.URL.Query().Get("url")
	if pageURL == "" {
		s.writeError(w, http.StatusBadRequest, "url parameter is required")
		return nil, false
	}
	rep, err := s.analyzer.AnalyzeURL(r.Context(), r.URL.Query().Get("id"), pageURL)
	if err != nil {
		s.logger.Error("analysis failed", "url", pageURL, "error", err)
		s.writeError(w, http.StatusBadGateway, "analysis failed")
		return nil, false
	}
	return rep, true
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.analyze(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(rep.Text() + "\n"))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.analyze(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"page_url":         rep.PageURL,
		"empty":            rep.Empty,
		"summary":          rep.Summary,
		"tag_distribution": rep.TagDistribution,
	})
}

func (s *Server) handleInteractive(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.analyze(w, r)
	if !ok {
		return
	}
	elements := rep.Interactive
	if elements == nil {
		elements = []analyze.InteractiveEntry{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"page_url": rep.PageURL,
		"elements": elements,
		"total":    len(rep.Interactive) + rep.OmittedInteractive,
		"omitted":  rep.OmittedInteractive,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
