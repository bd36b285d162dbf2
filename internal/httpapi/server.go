// Package httpapi exposes upload, processing and artifact retrieval over
// HTTP.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nguyentantai21042004/meeting-flow/internal/config"
	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
	"github.com/nguyentantai21042004/meeting-flow/internal/processor"
	"github.com/nguyentantai21042004/meeting-flow/pkg/executor"
)

// UploadLimit caps a single request body.
const UploadLimit = "2G"

type Server struct {
	echo     *echo.Echo
	cfg      *config.Config
	proc     processor.Processor
	executor executor.Executor
	metrics  http.Handler
	logger   logger.Logger
}

// NewServer wires the routes. metrics may be nil, in which case /metrics is
// not served.
func NewServer(cfg *config.Config, proc processor.Processor, exec executor.Executor, metrics http.Handler, log logger.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if proc == nil {
		return nil, fmt.Errorf("processor is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(UploadLimit))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			log.Info(c.Request().Context(), "http request method=%s uri=%s status=%d duration=%s request_id=%s",
				c.Request().Method,
				c.Request().RequestURI,
				c.Response().Status,
				time.Since(start),
				c.Response().Header().Get(echo.HeaderXRequestID),
			)
			return err
		}
	})

	s := &Server{
		echo:     e,
		cfg:      cfg,
		proc:     proc,
		executor: exec,
		metrics:  metrics,
		logger:   log,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.HEAD("/health", s.handleHealth)
	s.echo.GET("/config", s.handleConfig)

	s.echo.POST("/ingest", s.handleIngest)
	s.echo.POST("/process", s.handleProcess)
	s.echo.GET("/transcript", s.handleTranscript)
	s.echo.GET("/tasks", s.handleTasks)

	if s.metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.metrics))
	}
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.logger.Info(context.Background(), "Starting http server on %s", addr)
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for background extraction
// runs to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "Shutting down http server")
	err := s.echo.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		s.proc.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn(ctx, "Background extraction still running at shutdown")
	}
	return err
}
