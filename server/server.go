package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/formforge/formforge/form"
	"github.com/formforge/formforge/logging"
)

// Options holds configuration overrides passed to New().
type Options struct {
	// Addr is the listen address, host:port.
	Addr string
	// ReadTimeout bounds request reads.
	ReadTimeout time.Duration
	// WriteTimeout bounds response writes.
	WriteTimeout time.Duration
	// Debug keeps gin in debug mode and enables its request logger.
	Debug bool
	// Logger for server lifecycle events.
	Logger logging.Logger
}

// Server serves the form API over HTTP.
type Server struct {
	svc    *form.Service
	http   *http.Server
	logger logging.Logger
}

// New constructs a Server around a form service.
func New(svc *form.Service, optFns ...func(o *Options)) *Server {
	opts := Options{
		Addr:         ":8080",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		svc:    svc,
		logger: opts.Logger,
	}
	s.http = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.routes(opts.Debug),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return s
}

func (s *Server) routes(debug bool) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	if debug {
		engine.Use(gin.Logger())
	}

	engine.GET("/healthz", s.handleHealth)

	api := engine.Group("/api/v1")
	api.POST("/forms", s.handleGenerate)
	api.GET("/forms", s.handleList)
	api.GET("/forms/:id", s.handleGet)
	api.POST("/forms/:id/submissions", s.handleSubmit)
	api.GET("/forms/:id/submissions", s.handleSubmissions)

	return engine
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Run serves until the context is canceled, then shuts down gracefully with a
// bounded drain window.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return <-errCh
}
