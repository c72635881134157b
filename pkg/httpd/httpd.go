// Package httpd runs an http.Server under a context with a logged
// lifecycle and graceful shutdown.
package httpd

import (
	"context"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	addr     string
	done     chan error
	handler  http.Handler
	listener net.Listener
	logger   *zap.Logger
	srv      *http.Server
}

func New(addr string, handler http.Handler) *Server {
	return &Server{
		addr:    addr,
		done:    make(chan error, 1),
		handler: handler,
		logger:  zap.NewNop(),
	}
}

// SetLogger must be called before Start.
func (s *Server) SetLogger(logger *zap.Logger) {
	s.logger = logger
}

// Addr returns the address the server is listening on, valid once
// Start has returned without error.  When the configured address asked
// for an ephemeral port, this is how to learn which one was bound.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Start binds the listen address and serves connections on a separate
// goroutine until ctx is canceled, at which point the server shuts
// down gracefully.  An error binding the address is returned here;
// errors from serving arrive through Wait.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.srv = &http.Server{
		Handler: s.handler,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	s.logger.Info("Listening", zap.String("addr", s.Addr()))
	go func() {
		err := s.srv.Serve(ln)
		if err == http.ErrServerClosed {
			err = nil
		}
		s.done <- err
	}()
	go func() {
		<-ctx.Done()
		s.logger.Info("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(ctx); err != nil {
			s.logger.Warn("Graceful shutdown failed", zap.Error(err))
			s.srv.Close()
		}
	}()
	return nil
}

// Wait blocks until the server has stopped and returns any error from
// serving.
func (s *Server) Wait() error {
	err := <-s.done
	if err != nil {
		s.logger.Error("Exited with error", zap.Error(err))
		return err
	}
	s.logger.Info("Exited")
	return nil
}
