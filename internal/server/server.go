// Package server exposes the engine state over HTTP: cached scan picks,
// watchlist management, experiment history and calibration, plus health and
// Prometheus endpoints.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"BullScout/internal/learn"
	"BullScout/internal/metrics"
	"BullScout/internal/model"
	"BullScout/internal/provider"
	"BullScout/internal/scheduler"
	"BullScout/internal/universe"
	"BullScout/internal/watch"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server wires the HTTP handlers to the engine components.
type Server struct {
	Scheduler *scheduler.Scheduler
	Watch     *watch.Manager
	Learner   *learn.Learner
	Universe  *universe.Universe
	Metrics   *metrics.Metrics

	httpServer *http.Server
}

// NewServer creates a Server listening on addr.
func NewServer(addr string, sch *scheduler.Scheduler, wm *watch.Manager, l *learn.Learner,
	u *universe.Universe, m *metrics.Metrics) *Server {
	s := &Server{
		Scheduler: sch,
		Watch:     wm,
		Learner:   l,
		Universe:  u,
		Metrics:   m,
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", m.Handler())

	r.Get("/api/picks", s.handlePicks)
	r.Get("/api/watchlist", s.handleGetWatchlist)
	r.Post("/api/watchlist", s.handleAddWatchlist)
	r.Delete("/api/watchlist/{ticker}", s.handleRemoveWatchlist)
	r.Get("/api/suggestions", s.handleSuggestions)
	r.Get("/api/sectors", s.handleGetSectors)
	r.Put("/api/sectors", s.handleSetSectors)
	r.Get("/api/experiments", s.handleExperiments)
	r.Get("/api/calibration", s.handleCalibration)

	s.httpServer = &http.Server{Addr: addr, Handler: r}
	return s
}

// Start runs the HTTP server until it fails or is shut down.
func (s *Server) Start() error {
	log.Printf("[INFO] HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, statusCode int, msg string) {
	writeJSON(w, statusCode, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePicks(w http.ResponseWriter, r *http.Request) {
	picks, at := s.Scheduler.LastPicks()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"picks":     picks,
		"scannedAt": at.Format(time.RFC3339),
	})
}

func (s *Server) handleGetWatchlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Watch.Entries())
}

func (s *Server) handleAddWatchlist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ticker string `json:"ticker"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}
	if err := s.Watch.Add(ticker, provider.KindFor(ticker)); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.Watch.Entries())
}

func (s *Server) handleRemoveWatchlist(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))
	if !s.Watch.Remove(ticker) {
		writeError(w, http.StatusNotFound, "ticker not watched")
		return
	}
	writeJSON(w, http.StatusOK, s.Watch.Entries())
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Watch.Suggestions())
}

func (s *Server) handleGetSectors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"available": s.Universe.Sectors(),
		"selected":  s.Watch.SectorFilter(),
	})
}

func (s *Server) handleSetSectors(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sectors []universe.Sector `json:"sectors"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	known := make(map[universe.Sector]bool)
	for _, sec := range s.Universe.Sectors() {
		known[sec] = true
	}
	for _, sec := range req.Sectors {
		if !known[sec] {
			writeError(w, http.StatusBadRequest, "unknown sector: "+string(sec))
			return
		}
	}
	s.Watch.SetSectorFilter(req.Sectors)
	writeJSON(w, http.StatusOK, s.Watch.SectorFilter())
}

func (s *Server) handleExperiments(w http.ResponseWriter, r *http.Request) {
	exps := s.Learner.Experiments()
	if exps == nil {
		exps = []model.Experiment{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"experiments": exps,
		"stats":       s.Learner.Stats(),
	})
}

func (s *Server) handleCalibration(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bins":  s.Learner.CalibrationBins(),
		"stats": s.Learner.Stats(),
	})
}
