package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/domain"
	apperrors "github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/errors"
)

const maxBatchItems = 100

type batchRequest struct {
	Items []domain.AnalysisRequest `json:"items"`
}

type batchItemResponse struct {
	ID     string                 `json:"id"`
	Result *domain.AnalysisResult `json:"result"`
	Error  string                 `json:"error,omitempty"`
}

type batchResponse struct {
	Count   int                 `json:"count"`
	Results []batchItemResponse `json:"results"`
}

type trainRequest struct {
	Examples []domain.TrainingExample `json:"examples"`
}

func (s *Server) handleAnalyze(c echo.Context) error {
	var req domain.AnalysisRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("malformed request body", err)
	}
	if err := validateRequest(req); err != nil {
		return err
	}

	result, err := s.orch.Analyze(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleBatch(c echo.Context) error {
	var req batchRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("malformed request body", err)
	}
	if len(req.Items) == 0 {
		return apperrors.ValidationError("batch requires at least one item", nil)
	}
	if len(req.Items) > maxBatchItems {
		return apperrors.ValidationError("too many batch items", nil).
			WithContext("items", len(req.Items)).
			WithContext("max", maxBatchItems)
	}
	for _, item := range req.Items {
		if err := validateRequest(item); err != nil {
			return err
		}
	}

	items := s.orch.AnalyzeBatch(c.Request().Context(), req.Items)

	resp := batchResponse{Count: len(items), Results: make([]batchItemResponse, len(items))}
	for i, item := range items {
		entry := batchItemResponse{
			ID:     uuid.NewString(),
			Result: item.Result,
		}
		if item.Err != nil {
			entry.Error = apperrors.AsStructuredError(item.Err).Message
		}
		resp.Results[i] = entry
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleTrain(c echo.Context) error {
	var req trainRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("malformed request body", err)
	}
	if len(req.Examples) == 0 {
		return apperrors.ValidationError("training requires at least one example", nil)
	}

	if err := s.orch.Train(req.Examples); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int{"trained": len(req.Examples)})
}

func (s *Server) handleOrchestratorMetrics(c echo.Context) error {
	return c.JSON(http.StatusOK, s.orch.GetMetrics())
}

func (s *Server) handleResetMetrics(c echo.Context) error {
	s.orch.ResetMetrics()
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).Seconds(),
	})
}

// validateRequest enforces the wire-level input rules before anything reaches
// the orchestrator.
func validateRequest(req domain.AnalysisRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return apperrors.ValidationError("text is required", nil)
	}
	if len(req.Text) > domain.MaxTextLength {
		return apperrors.ValidationError("text exceeds maximum length", domain.ErrTextTooLong).
			WithContext("length", len(req.Text)).
			WithContext("max", domain.MaxTextLength)
	}
	return nil
}
