package channel

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/metrics"
)

// NewHandler routes the websocket endpoint, a health check and the metrics of m.
func NewHandler(hub *Hub, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/ws", hub.ServeWS)
	r.Method(http.MethodGet, "/metrics", m.Handler())
	return r
}

// Server serves a handler on a loopback listener.
type Server struct {
	listener net.Listener
	http     *http.Server
}

// Listen binds addr. Use "127.0.0.1:0" for a free port.
func Listen(addr string, handler http.Handler) (*Server, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errutils.Wrapf(err, "failed to listen on %s", addr)
	}
	return &Server{
		listener: l,
		http:     &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second},
	}, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// URL returns the websocket URL display processes connect to.
func (s *Server) URL() string {
	return "ws://" + s.Addr() + "/ws"
}

// Serve blocks until the server is shut down.
func (s *Server) Serve() error {
	logger.Debug("Channel server listening", logger.Fields{"addr": s.Addr()})
	if err := s.http.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errutils.Wrap(err, "channel server failed")
	}
	return nil
}

// Shutdown stops accepting connections and waits for handlers until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
