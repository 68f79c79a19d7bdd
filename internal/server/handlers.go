package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/kurabe/internal/models"
	"github.com/hyperjump/kurabe/internal/session"
)

// searchResult is the response body for a search: the session state, the
// first page of the paired view, and the chart datasets.
type searchResult struct {
	State string              `json:"state"`
	Error string              `json:"error,omitempty"`
	View  *session.PageView   `json:"view"`
	Chart *session.ChartsView `json:"charts"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("search request", zap.String("query", req.Query), zap.Float64("k1", req.K1), zap.Float64("b", req.B))

	s.session.SetParams(session.Params{K1: req.K1, B: req.B, TFIDFWeight: req.TFIDFWeight})
	token, ok := s.session.Start(req.Query)
	if !ok {
		s.respondError(w, http.StatusBadRequest, "query is required")
		return
	}
	if err := s.session.Run(r.Context(), token); err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, s.currentResult())
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "page must be an integer")
		return
	}
	snap := s.session.Snapshot()
	if !snap.HasResponse {
		s.respondError(w, http.StatusServiceUnavailable, "no search loaded")
		return
	}
	s.session.SetPage(n)
	s.respondJSON(w, http.StatusOK, s.session.PageView())
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	snap := s.session.Snapshot()
	if !snap.HasResponse {
		s.respondError(w, http.StatusServiceUnavailable, "no search loaded")
		return
	}
	s.respondJSON(w, http.StatusOK, s.session.Charts())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "session": s.session.Snapshot().State.String()})
}

func (s *Server) currentResult() searchResult {
	snap := s.session.Snapshot()
	return searchResult{
		State: snap.State.String(),
		Error: snap.Error,
		View:  s.session.PageView(),
		Chart: s.session.Charts(),
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
