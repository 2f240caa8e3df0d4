package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/lambrugeorge/colipop-site/internal/cart"
	"github.com/lambrugeorge/colipop-site/internal/domain"
	"github.com/lambrugeorge/colipop-site/internal/order"
)

type OrderHandler struct {
	orders  *order.Service
	carts   *cart.Service
	timeout time.Duration
}

func NewOrderHandler(orders *order.Service, carts *cart.Service, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		carts:   carts,
		timeout: timeout,
	}
}

type OrderRequestDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
	Payment string `json:"payment"`
}

// SubmitOrder snapshots the session cart, runs the submission pipeline and
// clears the cart only after a confirmed success.
func (h *OrderHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no session")
		return
	}

	var req OrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	c, err := h.carts.Get(ctx, sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return
	}

	payment := domain.PaymentMethod(req.Payment)
	switch {
	case req.Payment == "":
		payment = domain.PaymentCash
	case !payment.Valid():
		// The storefront only offers the known methods; anything else is a
		// hand-crafted request and gets the bank-transfer default.
		payment = domain.PaymentTransfer
	}

	sub := domain.OrderSubmission{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Notes:    req.Notes,
		Payment:  payment,
		Items:    c.Snapshot(),
		Subtotal: c.Subtotal(),
		Discount: c.Discount(),
		Coupon:   c.Coupon,
		Total:    c.Total(),
	}

	result := h.orders.SubmitOrder(ctx, sub)
	if !result.Success {
		respondJSON(w, http.StatusBadRequest, result)
		return
	}

	if _, errClear := h.carts.Clear(ctx, sessionID); errClear != nil {
		// The order is already accepted; a stale cart is the lesser problem.
		log.Printf("clear cart after order %s failed: %v", result.OrderNumber, errClear)
	}

	respondJSON(w, http.StatusOK, result)
}
