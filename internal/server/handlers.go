package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/codequiz/runner/api"
	"github.com/codequiz/runner/internal/sandbox"
)

func (s *Server) handleRunCode(w http.ResponseWriter, r *http.Request) {
	var req api.RunCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp := s.exec.RunCode(r.Context(), req)
	writeJSON(w, resp)
}

func (s *Server) handleSubmitCode(w http.ResponseWriter, r *http.Request) {
	var req api.SubmitCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp := s.exec.SubmitCode(r.Context(), req)
	writeJSON(w, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, pyErr := sandbox.Python.LookupInterpreter()
	_, nodeErr := sandbox.JavaScript.LookupInterpreter()

	resp := api.HealthResponse{
		Status: "ok",
		Python: pyErr == nil,
		Node:   nodeErr == nil,
	}
	if pyErr != nil && nodeErr != nil {
		resp.Status = "degraded"
	}
	writeJSON(w, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.metrics.Snapshot())
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
