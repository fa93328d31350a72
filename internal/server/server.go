// Package server exposes decoding over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/verte-zerg/morsel/internal/morse"
	"github.com/verte-zerg/morsel/internal/rank"
	"github.com/verte-zerg/morsel/internal/segment"
)

const maxBodyBytes = 1 << 16

// Server answers decode and encode requests against one loaded dictionary.
type Server struct {
	Alphabet  *morse.Alphabet
	Segmenter *segment.Segmenter
	Splitter  segment.Splitter
	// Mode and Workers apply when a request does not set them.
	Mode    rank.Mode
	Workers int
	// Timeout bounds each decode; zero means no limit.
	Timeout time.Duration
	Logf    func(format string, args ...any)
}

// DecodeRequest is the body of POST /v1/decode. Workers of 0 uses the
// server default.
type DecodeRequest struct {
	Code    string `json:"code"`
	Mode    string `json:"mode,omitempty"`
	Workers int    `json:"workers,omitempty"`
}

// DecodeResponse reports the best candidate. Partial results are returned
// with TimedOut set when the decode runs out of time.
type DecodeResponse struct {
	Best       string   `json:"best"`
	Words      []string `json:"words"`
	Letters    string   `json:"letters"`
	Likelihood float64  `json:"likelihood"`
	Outcome    string   `json:"outcome"`
	Candidates int      `json:"candidates"`
	Scored     int      `json:"scored"`
	ElapsedMs  int64    `json:"elapsed_ms"`
	TimedOut   bool     `json:"timed_out,omitempty"`
}

// EncodeResponse is the body returned by GET /v1/encode.
type EncodeResponse struct {
	Text string `json:"text"`
	Code string `json:"code"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Router returns the HTTP handler with all routes registered.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()
	api := router.PathPrefix("/v1").Subrouter()
	api.HandleFunc("/decode", s.handleDecode).Methods(http.MethodPost)
	api.HandleFunc("/encode", s.handleEncode).Methods(http.MethodGet)
	api.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.Use(s.logRequests)
	return router
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req DecodeRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Code == "" {
		s.sendError(w, http.StatusBadRequest, "code is required")
		return
	}
	mode := s.Mode
	if req.Mode != "" {
		parsed, err := rank.ParseMode(req.Mode)
		if err != nil {
			s.sendError(w, http.StatusBadRequest, err.Error())
			return
		}
		mode = parsed
	}
	if mode == rank.ModeSplitter && s.Splitter == nil {
		s.sendError(w, http.StatusBadRequest, "splitter mode is not available")
		return
	}
	if req.Workers < 0 || req.Workers > rank.MaxWorkers() {
		s.sendError(w, http.StatusBadRequest, fmt.Sprintf("workers must be between 0 and %d", rank.MaxWorkers()))
		return
	}
	workers := s.Workers
	if req.Workers > 0 {
		workers = req.Workers
	}

	ctx := r.Context()
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	ranker := &rank.Ranker{
		Alphabet:  s.Alphabet,
		Segmenter: s.Segmenter,
		Splitter:  s.Splitter,
		Mode:      mode,
		Workers:   workers,
	}
	start := time.Now()
	res, err := ranker.Run(ctx, req.Code)
	elapsed := time.Since(start)
	timedOut := errors.Is(err, context.DeadlineExceeded)
	if err != nil && !timedOut {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.sendError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := DecodeResponse{
		Words:      []string{},
		Outcome:    res.Outcome.String(),
		Candidates: res.Candidates,
		Scored:     res.Scored,
		ElapsedMs:  elapsed.Milliseconds(),
		TimedOut:   timedOut,
	}
	if res.Outcome == rank.OutcomeFound {
		resp.Best = res.Best.Segmentation.Text()
		resp.Words = res.Best.Segmentation.Words
		resp.Letters = res.Best.Letters
		resp.Likelihood = res.Best.Segmentation.Likelihood
	}
	s.sendJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		s.sendError(w, http.StatusBadRequest, "text is required")
		return
	}
	code, err := s.Alphabet.EncodeText(text)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.sendJSON(w, http.StatusOK, EncodeResponse{Text: text, Code: code})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.sendJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"lang":   s.Segmenter.Lang(),
		"words":  s.Segmenter.Dictionary().Len(),
	})
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logf("json encoding error: %v", err)
	}
}

func (s *Server) sendError(w http.ResponseWriter, status int, msg string) {
	s.sendJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}
