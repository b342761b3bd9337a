package server

import (
	"context"
	"errors"
	"net"
	"sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StartHook runs once the listener is bound. Hooks run in their own
// goroutine and cannot affect serving.
type StartHook func(url string)

// Server owns the listening socket for a fiber app.
type Server struct {
	app    *fiber.App
	cfg    Config
	logger *zap.Logger

	mu   sync.Mutex
	addr net.Addr
}

// New creates a server for app. Nothing is bound until Run.
func New(cfg Config, app *fiber.App, logger *zap.Logger) *Server {
	return &Server{app: app, cfg: cfg, logger: logger}
}

// Addr returns the bound address, or nil before Run has bound the listener.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Run binds the listener, fires the start hooks and serves until ctx is
// cancelled. A bind failure is returned as *BindError. Cancellation shuts
// the app down within the configured timeout and returns nil.
func (s *Server) Run(ctx context.Context, hooks ...StartHook) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return &BindError{Addr: s.cfg.Addr(), Err: err}
	}

	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	url := PublicURL(ln.Addr())
	s.logger.Info("Starting server", zap.String("addr", ln.Addr().String()), zap.String("url", url))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.app.Listener(ln)
	}()

	for _, hook := range hooks {
		go hook(url)
	}

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, net.ErrClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	if err := s.app.ShutdownWithTimeout(s.cfg.ShutdownTimeout()); err != nil {
		s.logger.Warn("Shutdown did not drain cleanly", zap.Error(err))
	}
	_ = ln.Close()

	if err := <-serveErr; err != nil && !errors.Is(err, net.ErrClosed) {
		s.logger.Warn("Listener returned error during shutdown", zap.Error(err))
	}
	return nil
}
