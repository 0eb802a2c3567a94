// Package remote calls a heart-rate analysis server over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"rppg_backend/internal/feature/heartrate/domain"
	"rppg_backend/internal/feature/heartrate/domain/entity"
	"rppg_backend/internal/feature/heartrate/transport/http/dto"
)

// maxResponseSize caps the body read from the server.
const maxResponseSize = 32 << 20

// Client posts signals to a remote /analyze endpoint.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient returns a Client for the server at baseURL.
func NewClient(baseURL string, client *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Analyze submits samples and decodes the server reply.
// Failure replies are mapped back onto the domain failure kinds.
func (c *Client) Analyze(ctx context.Context, samples []float64, fs *float64, mode entity.Mode) (*entity.Analysis, error) {
	payload, err := json.Marshal(dto.AnalyzeRequest{GreenSignal: samples, Fs: fs, Mode: string(mode)})
	if err != nil {
		return nil, fmt.Errorf("remote: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("remote: read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, decodeFailure(res.StatusCode, body)
	}

	mediaType, _, _ := mime.ParseMediaType(res.Header.Get("Content-Type"))
	if mediaType == "image/png" {
		return &entity.Analysis{Mode: entity.ModeImage, Image: body}, nil
	}

	var hr dto.HeartRateResponse
	if err := json.Unmarshal(body, &hr); err != nil {
		return nil, fmt.Errorf("remote: decode response: %w", err)
	}
	return &entity.Analysis{
		Mode:     entity.ModeValue,
		Estimate: &entity.Estimate{BPM: hr.HeartRate, PeakHz: hr.HeartRate / 60},
	}, nil
}

func decodeFailure(status int, body []byte) error {
	var e dto.ErrorResponse
	if err := json.Unmarshal(body, &e); err != nil || e.Error == "" {
		return fmt.Errorf("remote: http %d", status)
	}

	switch {
	case status == http.StatusBadRequest && e.Error == dto.MsgNotEnoughData:
		return domain.NewAnalysisError(domain.ErrInsufficientData, "%s", e.Error)
	case status == http.StatusBadRequest && e.Error == dto.MsgNoValidPeak:
		return domain.NewAnalysisError(domain.ErrNoValidPeak, "%s", e.Error)
	case status == http.StatusInternalServerError:
		return domain.NewAnalysisError(domain.ErrComputation, "%s", e.Error)
	default:
		return fmt.Errorf("remote: http %d: %s", status, e.Error)
	}
}
