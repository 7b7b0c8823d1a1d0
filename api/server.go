// Package api - Thin read-only HTTP layer
// The API is ONLY responsible for: query parsing, engine calls, output serialization.
// The API NEVER filters or matches records itself.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"policy-lookup/core/dataset"
	"policy-lookup/core/engine"
	"policy-lookup/core/types"
	perrors "policy-lookup/internal/errors"
)

// Server serves option lists and lookups over a dataset that loads in
// the background. Requests before the load settles get 503.
type Server struct {
	loader  *dataset.Loader
	opts    engine.Options
	version string
	mux     *http.ServeMux
	logger  *zap.Logger

	mu     sync.Mutex
	engine *engine.Engine
}

// NewServer creates a server over a loader. The caller starts the loader.
func NewServer(version string, loader *dataset.Loader, opts engine.Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		loader:  loader,
		opts:    opts,
		version: version,
		mux:     http.NewServeMux(),
		logger:  logger,
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /ready", s.handleReady)
	s.mux.HandleFunc("GET /version", s.handleVersion)

	s.mux.HandleFunc("GET /v1/options/{attribute}", s.handleOptions)
	s.mux.HandleFunc("GET /v1/lookup", s.handleLookup)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// currentEngine returns the engine once the dataset is ready
func (s *Server) currentEngine() (*engine.Engine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine != nil {
		return s.engine, nil
	}
	ds, err := s.loader.Dataset()
	if err != nil {
		return nil, err
	}
	s.engine = engine.New(ds, s.opts)
	return s.engine, nil
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"dataset": s.loader.State().String(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleReady handles GET /ready
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	eng, err := s.currentEngine()
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	ds := eng.Dataset()
	body := map[string]interface{}{
		"dataset": dataset.StateReady.String(),
		"records": ds.Len(),
	}
	if !ds.GeneratedAt().IsZero() {
		body["generated_at"] = ds.GeneratedAt().Format(time.RFC3339)
	}
	s.writeJSON(w, body, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "policy-lookup",
		"api_version": "v1",
	}, http.StatusOK)
}

// handleOptions handles GET /v1/options/{attribute}
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	attr, err := types.ParseAttribute(r.PathValue("attribute"))
	if err != nil {
		s.writeError(w, "INVALID_ATTRIBUTE", err.Error(), http.StatusBadRequest)
		return
	}
	sel, err := selectionFromQuery(r)
	if err != nil {
		s.writeError(w, "INVALID_SELECTION", err.Error(), http.StatusBadRequest)
		return
	}
	eng, err := s.currentEngine()
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	opts, err := eng.ValidOptions(sel, attr)
	if err != nil {
		s.writeInternalError(w, perrors.Internal("options computation failed", err))
		return
	}
	s.writeJSON(w, opts, http.StatusOK)
}

// handleLookup handles GET /v1/lookup. Misses are 200 responses with
// found=false and a reason.
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	sel, err := selectionFromQuery(r)
	if err != nil {
		s.writeError(w, "INVALID_SELECTION", err.Error(), http.StatusBadRequest)
		return
	}
	eng, err := s.currentEngine()
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, eng.View(sel), http.StatusOK)
}

// selectionFromQuery reads category, internet, tv, one_stop and
// extra_device query parameters
func selectionFromQuery(r *http.Request) (types.Selection, error) {
	q := r.URL.Query()
	sel := types.Selection{}.
		WithCategory(q.Get("category")).
		WithInternet(q.Get("internet")).
		WithSecondary(q.Get("tv"))

	oneStop, err := parseFlag(q.Get("one_stop"))
	if err != nil {
		return sel, perrors.Input("one_stop: " + err.Error())
	}
	extra, err := parseFlag(q.Get("extra_device"))
	if err != nil {
		return sel, perrors.Input("extra_device: " + err.Error())
	}
	return sel.WithOneStop(oneStop).WithExtraDevice(extra), nil
}

// parseFlag accepts Y/N codes and Go booleans; empty is false
func parseFlag(v string) (bool, error) {
	switch strings.ToUpper(v) {
	case "", types.FlagNo:
		return false, nil
	case types.FlagYes:
		return true, nil
	}
	return strconv.ParseBool(v)
}

func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	if perrors.IsType(err, perrors.TypeNotReady) {
		s.writeError(w, "NOT_READY", err.Error(), http.StatusServiceUnavailable)
		return
	}
	s.logger.Error("dataset unavailable", zap.Error(err))
	s.writeError(w, "LOAD_FAILED", err.Error(), http.StatusServiceUnavailable)
}

// writeInternalError reports a failure the request could not have caused
func (s *Server) writeInternalError(w http.ResponseWriter, err *perrors.Error) {
	s.logger.Error("request failed", zap.Error(err))
	s.writeError(w, string(perrors.TypeInternal), err.Message, http.StatusInternalServerError)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	}, status)
}
