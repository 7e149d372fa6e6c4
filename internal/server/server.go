// Package server exposes the solver over HTTP for the drawing frontend:
// solve a plan, then fetch the report, zones, and verdicts as JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Obayne/AutoFireBase-sub001/pkg/pipeline"
	"github.com/Obayne/AutoFireBase-sub001/pkg/plan"
	"github.com/Obayne/AutoFireBase-sub001/pkg/validation"
)

// Server serves solve results for one plan file. The latest result is held
// in memory; POST /api/solve re-reads the plan from disk and replaces it.
type Server struct {
	planPath string
	port     int
	runner   *pipeline.Runner
	logger   *log.Logger

	mu   sync.RWMutex
	last *pipeline.Result
}

// New creates a server for the given plan file.
func New(planPath string, port int, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		planPath: planPath,
		port:     port,
		runner:   pipeline.NewRunner(logger),
		logger:   logger,
	}
}

// Start solves the plan once and then serves until the listener fails.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/api/report", s.handleReport)
	r.Get("/api/zones", s.handleZones)
	r.Get("/api/devices", s.handleDevices)
	r.Get("/api/verdicts", s.handleVerdicts)
	r.Get("/api/validation", s.handleValidation)
	r.Post("/api/solve", s.handleSolve)

	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("server starting", "addr", addr, "plan", s.planPath)

	// Initial solve so GET endpoints have data immediately. An invalid plan
	// is served as-is; the client sees the validation report.
	if _, err := s.solve(); err != nil && !errors.Is(err, pipeline.ErrInvalidPlan) {
		return fmt.Errorf("initial solve: %w", err)
	}

	return http.ListenAndServe(addr, r)
}

func (s *Server) solve() (*pipeline.Result, error) {
	fp, err := plan.Load(s.planPath)
	if err != nil {
		return nil, err
	}
	result, err := s.runner.Run(context.Background(), fp)
	if result != nil {
		s.mu.Lock()
		s.last = result
		s.mu.Unlock()
	}
	return result, err
}

func (s *Server) latest() *pipeline.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *Server) handleSolve(w http.ResponseWriter, _ *http.Request) {
	result, err := s.solve()
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, result.Document)
	case errors.Is(err, pipeline.ErrInvalidPlan):
		writeJSON(w, http.StatusUnprocessableEntity, result.Document)
	default:
		s.logger.Error("solve failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	result := s.latest()
	if result == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no solve result yet"})
		return
	}
	writeJSON(w, http.StatusOK, result.Document)
}

func (s *Server) handleZones(w http.ResponseWriter, _ *http.Request) {
	result := s.latest()
	if result == nil || result.Document == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no solve result yet"})
		return
	}
	writeJSON(w, http.StatusOK, result.Document.Zones)
}

func (s *Server) handleDevices(w http.ResponseWriter, _ *http.Request) {
	result := s.latest()
	if result == nil || result.Document == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no solve result yet"})
		return
	}
	writeJSON(w, http.StatusOK, result.Document.Devices)
}

func (s *Server) handleVerdicts(w http.ResponseWriter, _ *http.Request) {
	result := s.latest()
	if result == nil || result.Document == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no solve result yet"})
		return
	}
	writeJSON(w, http.StatusOK, result.Document.Verdicts)
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	result := s.latest()
	if result == nil || result.Document == nil {
		writeJSON(w, http.StatusOK, validation.NewReport())
		return
	}
	writeJSON(w, http.StatusOK, result.Document.Validation)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
