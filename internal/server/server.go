// Package server exposes the sentiment analysis service over HTTP. It owns
// request validation and the wire format; the orchestrator owns everything
// behind that.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/config"
	apperrors "github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/errors"
	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/orchestrator"
)

// Server wires the HTTP layer around one orchestrator instance.
type Server struct {
	echo      *echo.Echo
	config    *config.Config
	orch      *orchestrator.Orchestrator
	startTime time.Time
}

// NewServer builds the HTTP server with routes and middleware registered.
func NewServer(cfg *config.Config, orch *orchestrator.Orchestrator) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(correlationMiddleware)
	e.Use(apperrors.Middleware())
	e.Use(newRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst))

	srv := &Server{
		echo:      e,
		config:    cfg,
		orch:      orch,
		startTime: time.Now(),
	}
	srv.registerRoutes()
	return srv
}

// Start blocks serving HTTP until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

// Shutdown drains in-flight requests and closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
