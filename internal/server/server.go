// Package server is the thin HTTP boundary around the executor. Both
// execution endpoints answer HTTP 200 with a structured body; failure
// lives in the body's success/error fields, not in the status code.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzhttp"

	"github.com/codequiz/runner/internal/executor"
	"github.com/codequiz/runner/internal/metrics"
)

type Server struct {
	exec       *executor.Executor
	metrics    *metrics.Registry
	httpServer *http.Server
}

func New(exec *executor.Executor, reg *metrics.Registry, addr string) *Server {
	s := &Server{
		exec:    exec,
		metrics: reg,
	}

	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		Addr:         addr,
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Handler builds the full middleware-wrapped router. Exposed for tests.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.Use(loggingMiddleware)
	r.Use(recoverMiddleware)
	r.Use(corsMiddleware)
	r.Use(requestIDMiddleware)

	r.HandleFunc("/run-code", s.handleRunCode).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/submit-code", s.handleSubmitCode).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)

	return gzhttp.GzipHandler(r)
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
