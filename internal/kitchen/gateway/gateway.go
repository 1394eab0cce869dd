package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"kitchen-dashboard/internal/domain"
	"kitchen-dashboard/internal/dto"
	apperrors "kitchen-dashboard/internal/errors"
)

const (
	opFetchSnapshot = "fetch dashboard"
	opCompleteOrder = "complete order"
)

// HTTPGateway talks to the kitchen backend. It keeps no state between calls
// and never retries.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
	now     func() time.Time
}

func NewHTTPGateway(baseURL string, client *http.Client, logger *zap.Logger) *HTTPGateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
		now:     time.Now,
	}
}

func (g *HTTPGateway) FetchSnapshot(ctx context.Context) (*domain.DashboardSnapshot, error) {
	resp, err := g.do(ctx, http.MethodGet, "/api/dashboard", opFetchSnapshot)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body dto.DashboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperrors.NewServerError(opFetchSnapshot, resp.StatusCode, fmt.Errorf("decoding body: %w", err))
	}

	snapshot, err := body.ToDomain(g.now())
	if err != nil {
		return nil, apperrors.NewServerError(opFetchSnapshot, resp.StatusCode, err)
	}

	return snapshot, nil
}

func (g *HTTPGateway) CompleteOrder(ctx context.Context, orderID int) error {
	resp, err := g.do(ctx, http.MethodPost, fmt.Sprintf("/api/orders/%d/complete", orderID), opCompleteOrder)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// do performs exactly one round trip. Non-2xx responses are closed here and
// returned as ServerError.
func (g *HTTPGateway) do(ctx context.Context, method, path, op string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, nil)
	if err != nil {
		return nil, apperrors.NewNetworkError(op, fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	start := g.now()
	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Debug("backend request failed",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, apperrors.NewNetworkError(op, err)
	}

	g.logger.Debug("backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", g.now().Sub(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, apperrors.NewServerError(op, resp.StatusCode, nil)
	}

	return resp, nil
}
