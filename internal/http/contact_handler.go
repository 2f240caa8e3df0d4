package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/lambrugeorge/colipop-site/internal/domain"
	"github.com/lambrugeorge/colipop-site/internal/order"
)

type ContactHandler struct {
	orders  *order.Service
	timeout time.Duration
}

func NewContactHandler(orders *order.Service, timeout time.Duration) *ContactHandler {
	return &ContactHandler{
		orders:  orders,
		timeout: timeout,
	}
}

func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var sub domain.ContactSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result := h.orders.SubmitContact(ctx, sub)
	if !result.Success {
		respondJSON(w, http.StatusBadRequest, result)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
