package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/oggyb/zenvia-sms/internal/middleware"
	routes "github.com/oggyb/zenvia-sms/internal/router"
)

// Server owns the underlying http.Server instance.
type Server struct {
	http *http.Server
}

// New creates a new HTTP server bound to the given address, serving the
// relay routes behind the access logger.
func New(addr string, deps routes.AppDeps, lg *zap.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           Handler(deps, lg),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler builds the routed root handler with every request access logged.
func Handler(deps routes.AppDeps, lg *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	routes.Register(mux, deps)

	return middleware.RequestLogger(lg)(mux)
}

// Start runs the HTTP server and blocks until ListenAndServe returns.
func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server, waiting for in-flight
// requests to complete until the given context expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
