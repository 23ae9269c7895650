package http

import (
	"context"
	"net/http"
	"time"

	"github.com/somnath11som/webeF/internal/cart"
	"github.com/somnath11som/webeF/internal/checkout"
	"go.uber.org/zap"
)

type Checkouter interface {
	Checkout(ctx context.Context, c *cart.Store, req checkout.Request) (*checkout.Result, error)
}

type CheckoutHandler struct {
	checkout Checkouter
	timeout  time.Duration
}

func NewCheckoutHandler(c Checkouter, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: c,
		timeout:  timeout,
	}
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ws, ok := withWorkspace(w, r)
	if !ok {
		return
	}

	var contact checkout.Contact
	if err := decodeJSON(r, &contact); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	code, pct := ws.Discount.Current()
	result, err := h.checkout.Checkout(ctx, ws.Cart, checkout.Request{
		Contact:         contact,
		VisitorID:       ws.ID,
		PromoCode:       code,
		DiscountPercent: pct,
	})
	if err != nil {
		zap.L().Info("checkout failed",
			zap.String("request_id", getRequestID(r.Context())),
			zap.String("visitor_id", ws.ID),
			zap.Error(err))
		respondServiceError(w, err)
		return
	}

	ws.Discount.Reset()
	respondJSON(w, http.StatusOK, result)
}
