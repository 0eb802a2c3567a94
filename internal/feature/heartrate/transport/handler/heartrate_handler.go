// Package handler provides the HTTP handlers of the heart-rate feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"rppg_backend/internal/feature/heartrate/domain"
	"rppg_backend/internal/feature/heartrate/domain/entity"
	"rppg_backend/internal/feature/heartrate/transport/http/dto"
	"rppg_backend/internal/feature/heartrate/usecase"
)

// StatusMessage is the body of GET /.
const StatusMessage = "Heart Rate Monitor backend is running"

// AnalyzeUsecase is the use case consumed by HeartRateHandler.
// Interfaces are defined on the consumer side, following Go convention.
type AnalyzeUsecase interface {
	Analyze(ctx context.Context, samples []float64, fs *float64, mode entity.Mode) (*entity.Analysis, error)
}

// HeartRateHandler serves the analysis endpoints.
type HeartRateHandler struct {
	uc AnalyzeUsecase
}

// NewHeartRateHandler creates a HeartRateHandler.
func NewHeartRateHandler(uc AnalyzeUsecase) *HeartRateHandler {
	return &HeartRateHandler{uc: uc}
}

// Index reports that the service is up.
//
// Endpoint: GET /
func (h *HeartRateHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: StatusMessage})
}

// Preflight answers CORS preflight requests that reach the route directly.
//
// Endpoint: OPTIONS /analyze
func (h *HeartRateHandler) Preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Analyze estimates the heart rate of the posted green-channel signal.
//
// Endpoint: POST /analyze
// Body: {"green_signal": [...], "fs": 30.0, "mode": "value"|"image"}
func (h *HeartRateHandler) Analyze(c *gin.Context) {
	var req dto.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid analyze request", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.MsgInvalidRequest})
		return
	}

	analysis, err := h.uc.Analyze(c.Request.Context(), req.GreenSignal, req.Fs, entity.Mode(req.Mode))
	if err != nil {
		h.writeError(c, err, len(req.GreenSignal))
		return
	}

	if analysis.Mode == entity.ModeImage {
		c.Data(http.StatusOK, "image/png", analysis.Image)
		return
	}
	c.JSON(http.StatusOK, dto.HeartRateResponse{HeartRate: analysis.Estimate.BPM})
}

func (h *HeartRateHandler) writeError(c *gin.Context, err error, samples int) {
	switch {
	case errors.Is(err, usecase.ErrInvalidMode):
		slog.Warn("invalid analyze mode", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.MsgInvalidMode})
	case errors.Is(err, domain.ErrInsufficientData):
		slog.Info("analysis rejected", "reason", "insufficient data", "samples", samples)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.MsgNotEnoughData})
	case errors.Is(err, domain.ErrNoValidPeak):
		slog.Info("analysis rejected", "reason", "no valid peak", "samples", samples)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.MsgNoValidPeak})
	case errors.Is(err, domain.ErrComputation):
		slog.Error("analysis failed", "error", err, "samples", samples)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("unexpected analysis failure", "error", err, "samples", samples)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
