package http

import (
	"context"
	"net/http"
	"time"

	"github.com/somnath11som/webeF/internal/domain"
	"github.com/somnath11som/webeF/internal/orders"
)

type OrderLookup interface {
	Lookup(ctx context.Context, tokens orders.TokenStore, linkToken string) ([]domain.Order, error)
}

type OrdersHandler struct {
	lookup  OrderLookup
	timeout time.Duration
}

func NewOrdersHandler(lookup OrderLookup, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		lookup:  lookup,
		timeout: timeout,
	}
}

type OrdersResponseDTO struct {
	Total  int            `json:"total"`
	Orders []domain.Order `json:"orders"`
}

// GET /api/v1/orders?token=&q=&status=
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ws, ok := withWorkspace(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	all, err := h.lookup.Lookup(ctx, ws.Session, query.Get("token"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, OrdersResponseDTO{
		Total:  len(all),
		Orders: orders.Filter(all, query.Get("q"), query.Get("status")),
	})
}
