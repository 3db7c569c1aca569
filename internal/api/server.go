// Package api implements the HTTP API server.
//
// The server exposes the pipeline stages as JSON endpoints under /api/v1.
// Script units travel in the request body, so the server holds no project
// state of its own; the shared cache is the only persistence.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/plotweave/plotweave/pkg/cache"
	"github.com/plotweave/plotweave/pkg/errors"
	"github.com/plotweave/plotweave/pkg/pipeline"
)

// Server handles API requests by delegating to a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates a server around the given runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})

	return r
}

// analyzeResponse is the body returned by POST /api/v1/analyze.
type analyzeResponse struct {
	Analysis     json.RawMessage `json:"analysis"`
	AnalysisHash string          `json:"analysis_hash"`
	CacheHit     bool            `json:"cache_hit"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}

	analysis, hit, err := s.runner.AnalyzeWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	data, err := json.Marshal(analysis)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, analyzeResponse{
		Analysis:     data,
		AnalysisHash: cache.Hash(data),
		CacheHit:     hit,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}

	analysis, _, err := s.runner.AnalyzeWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	positions, err := s.runner.ComputeLayout(r.Context(), analysis, opts)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"positions": positions})
}

// renderResponse carries artifacts keyed by format; []byte values encode
// as base64 in JSON.
type renderResponse struct {
	Artifacts map[string][]byte `json:"artifacts"`
	CacheHit  bool              `json:"cache_hit"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	if err := opts.ValidateForRender(); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, renderResponse{
		Artifacts: result.Artifacts,
		CacheHit:  result.CacheInfo.RenderHit,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeOptions parses the request body into pipeline options. API callers
// must send units inline; server-side file loading is not exposed.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		s.writeError(w, r, http.StatusBadRequest,
			errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return pipeline.Options{}, false
	}
	if len(opts.Units) == 0 {
		s.writeError(w, r, http.StatusBadRequest,
			errors.New(errors.ErrCodeInvalidInput, "units are required"))
		return pipeline.Options{}, false
	}
	opts.Dir = ""
	opts.Files = nil
	return opts, true
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Error("request failed",
		"request_id", GetRequestID(r.Context()),
		"status", status,
		"error", err)

	s.writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(errors.GetCode(err)),
		RequestID: GetRequestID(r.Context()),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
