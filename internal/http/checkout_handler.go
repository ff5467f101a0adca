package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fjod/go_supply/internal/domain"
)

type CheckoutService interface {
	ProcessCheckout(ctx context.Context, sessionID string, items []domain.CheckoutItem) (*domain.CheckoutResult, error)
}

type CheckoutHandler struct {
	service CheckoutService
	timeout time.Duration
}

func NewCheckoutHandler(service CheckoutService, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		timeout: timeout,
	}
}

type CheckoutRequestDTO struct {
	SessionID string                `json:"sessionId,omitempty"`
	Items     []domain.CheckoutItem `json:"items"`
}

func (h *CheckoutHandler) ProcessCheckout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "empty_checkout", "items must not be empty")
		return
	}

	result, err := h.service.ProcessCheckout(ctx, req.SessionID, req.Items)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, result)
}
