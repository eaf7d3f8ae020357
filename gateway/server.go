package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/net/netutil"
)

// readHeaderTimeout bounds how long a client may take to send request
// headers.
const readHeaderTimeout = 10 * time.Second

// Server serves the dashboard over HTTP with a bounded connection count.
//
// Exported fields must be set before the first call to Serve or
// ListenAndServe and not modified afterwards.
type Server struct {
	// Addr is the TCP listen address used by ListenAndServe,
	// e.g. "127.0.0.1:8385".
	Addr string

	// Handler is the root handler, typically Handler.Routes().
	Handler http.Handler

	// MaxConns caps concurrent client connections. 0 means unlimited.
	MaxConns int

	// Logger receives serve and shutdown records. If nil, slog.Default()
	// is used.
	Logger *slog.Logger

	mu  sync.Mutex
	srv *http.Server
}

// ListenAndServe listens on Addr and serves until Shutdown is called or the
// listener fails.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln. When MaxConns is positive at most that
// many connections are served concurrently; excess connections wait in the
// listener backlog. Serve returns nil after a graceful Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	if s.MaxConns > 0 {
		ln = netutil.LimitListener(ln, s.MaxConns)
	}
	srv := &http.Server{
		Handler:           s.Handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()

	s.logger().Info("gateway: serving dashboard", "addr", ln.Addr().String(), "max_conns", s.MaxConns)
	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server, waiting for in-flight requests up to
// the deadline carried by ctx. Calling Shutdown before Serve is a no-op.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	s.logger().Info("gateway: shutting down")
	return srv.Shutdown(ctx)
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
