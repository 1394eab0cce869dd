package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "kitchen-dashboard/internal/errors"
	"kitchen-dashboard/internal/kitchen/dashboard"
	"kitchen-dashboard/internal/kitchen/view"
)

type Dashboard interface {
	Current() dashboard.State
	Retry(ctx context.Context) dashboard.State
	MarkComplete(ctx context.Context, orderID int) dashboard.State
}

type KitchenController struct {
	dashboard Dashboard
	opts      view.Options
	logger    *zap.Logger
	now       func() time.Time
}

func NewKitchenController(d Dashboard, opts view.Options, logger *zap.Logger) *KitchenController {
	return &KitchenController{
		dashboard: d,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

type displayResponse struct {
	TraceID string `json:"traceId"`
	view.Display
}

type upstreamErrorResponse struct {
	TraceID string        `json:"traceId"`
	Error   string        `json:"error"`
	Message string        `json:"message"`
	Display *view.Display `json:"display"`
}

// View returns the current display without contacting the backend.
func (c *KitchenController) View(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	c.writeDisplay(w, traceID, http.StatusOK, c.dashboard.Current())
}

// Refresh is the retry action of the error screen.
func (c *KitchenController) Refresh(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	st := c.dashboard.Retry(r.Context())
	if st.Phase == dashboard.PhaseError {
		logger.Warn("manual refresh failed", zap.Error(st.Err))
		c.writeUpstreamError(w, traceID, st)
		return
	}

	c.writeDisplay(w, traceID, http.StatusOK, st)
}

func (c *KitchenController) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderIDStr := chi.URLParam(r, "orderId")
	orderID, err := strconv.Atoi(orderIDStr)
	if err != nil || orderID <= 0 {
		logger.Warn("invalid orderId in path", zap.String("orderId", orderIDStr))
		c.writeValidationError(w, traceID, "invalid orderId", apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId must be a positive integer",
		})
		return
	}

	st := c.dashboard.MarkComplete(r.Context(), orderID)
	if st.Phase == dashboard.PhaseError {
		logger.Warn("complete order failed", zap.Int("orderId", orderID), zap.Error(st.Err))
		c.writeUpstreamError(w, traceID, st)
		return
	}

	logger.Info("order completed", zap.Int("orderId", orderID))
	c.writeDisplay(w, traceID, http.StatusOK, st)
}

func (c *KitchenController) writeDisplay(w http.ResponseWriter, traceID string, status int, st dashboard.State) {
	c.writeJSON(w, status, displayResponse{
		TraceID: traceID,
		Display: view.Build(st, c.now(), c.opts),
	})
}

func (c *KitchenController) writeUpstreamError(w http.ResponseWriter, traceID string, st dashboard.State) {
	d := view.Build(st, c.now(), c.opts)
	c.writeJSON(w, http.StatusBadGateway, upstreamErrorResponse{
		TraceID: traceID,
		Error:   "UPSTREAM_ERROR",
		Message: st.Message,
		Display: &d,
	})
}

type validationErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *KitchenController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	response := validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	}

	c.writeJSON(w, http.StatusBadRequest, response)
}

func (c *KitchenController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
