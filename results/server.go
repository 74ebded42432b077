// Package results HTTP API for recording and querying evaluation scores.
package results

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// Server exposes Store over HTTP: POST /record, GET /aggregates.
type Server struct {
	Store Store
	Addr  string
}

// NewServer creates a server that uses the given Store.
func NewServer(store Store, addr string) *Server {
	if addr == "" {
		addr = ":8080"
	}
	return &Server{Store: store, Addr: addr}
}

// recordRequest is the JSON body for POST /record.
type recordRequest struct {
	Model         string  `json:"model"`
	Culture       string  `json:"culture"`
	Scenario      string  `json:"scenario"`
	Trial         int     `json:"trial"`
	Alignment     float64 `json:"alignment"`
	Stereotype    float64 `json:"stereotype"`
	LowConfidence bool    `json:"low_confidence"`
	At            string  `json:"at,omitempty"` // RFC3339
}

// aggregateResponse is the JSON response for GET /aggregates.
type aggregateResponse struct {
	Aggregates []Aggregate `json:"aggregates"`
}

// ListenAndServe starts the HTTP server. Use go s.ListenAndServe() to run in
// background.
func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /record", s.handleRecord)
	mux.HandleFunc("PUT /record", s.handleRecord)
	mux.HandleFunc("GET /aggregates", s.handleAggregates)
	mux.HandleFunc("GET /health", s.handleHealth)
	return http.ListenAndServe(s.Addr, mux)
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Model == "" || req.Culture == "" {
		http.Error(w, "model and culture required", http.StatusBadRequest)
		return
	}
	rec := EvalRecord{
		Model:         req.Model,
		Culture:       req.Culture,
		Scenario:      req.Scenario,
		Trial:         req.Trial,
		Alignment:     req.Alignment,
		Stereotype:    req.Stereotype,
		LowConfidence: req.LowConfidence,
	}
	if req.At != "" {
		if t, err := time.Parse(time.RFC3339, req.At); err == nil {
			rec.At = t
		}
	}
	if err := s.Store.Record(r.Context(), rec); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAggregates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	q := Query{
		Model:    r.URL.Query().Get("model"),
		Culture:  r.URL.Query().Get("culture"),
		Scenario: r.URL.Query().Get("scenario"),
		GroupBy:  r.URL.Query().Get("group_by"),
		Limit:    100,
	}
	if from := r.URL.Query().Get("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			q.From = t
		}
	}
	if to := r.URL.Query().Get("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			q.To = t
		}
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			q.Limit = n
		}
	}
	agg, err := s.Store.Query(r.Context(), q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(aggregateResponse{Aggregates: agg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
