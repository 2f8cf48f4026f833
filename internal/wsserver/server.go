package wsserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"storefront/internal/session"
)

type catalogReader interface {
	Departments() []string
	Len() int
}

// Deps bundles everything the transport needs from the core.
type Deps struct {
	Handler *session.Handler
	Catalog catalogReader
	Logo    []byte // raw logo asset, base64-encoded into the init payload
	Metrics *Metrics
}

// Server wraps the HTTP server hosting the websocket endpoint.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New builds a Server with the websocket route and health endpoints.
func New(addr string, logger *log.Logger, deps Deps) *Server {
	router := buildRouter(logger, deps)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
