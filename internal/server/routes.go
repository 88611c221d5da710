package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api/v1/sentiment")
	api.POST("/analyze", s.handleAnalyze)
	api.POST("/batch", s.handleBatch)
	api.POST("/train", s.handleTrain)
	api.GET("/metrics", s.handleOrchestratorMetrics)
	api.POST("/metrics/reset", s.handleResetMetrics)
}
