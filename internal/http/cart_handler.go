package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/somnath11som/webeF/internal/cart"
	"github.com/somnath11som/webeF/internal/checkout"
	"github.com/somnath11som/webeF/internal/domain"
	"github.com/somnath11som/webeF/internal/visitor"
)

type CartHandler struct {
	catalog    Catalog
	promotions *checkout.Promotions
	timeout    time.Duration
}

func NewCartHandler(c Catalog, promotions *checkout.Promotions, timeout time.Duration) *CartHandler {
	return &CartHandler{
		catalog:    c,
		promotions: promotions,
		timeout:    timeout,
	}
}

// AddItemRequestDTO picks a catalog entry. Billing applies to packages and
// add-ons, Tier to services.
type AddItemRequestDTO struct {
	Kind     domain.ItemType `json:"kind"`
	ID       string          `json:"id"`
	Billing  domain.Billing  `json:"billing,omitempty"`
	Tier     domain.Tier     `json:"tier,omitempty"`
	Quantity int             `json:"quantity,omitempty"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type PromoRequestDTO struct {
	Code string `json:"code"`
}

type CartResponseDTO struct {
	Items   []domain.CartItem `json:"items"`
	Count   int               `json:"count"`
	Summary checkout.Summary  `json:"summary"`
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ws, ok := withWorkspace(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, cartResponse(ws))
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ws, ok := withWorkspace(w, r)
	if !ok {
		return
	}

	var req AddItemRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "id is required")
		return
	}

	variant := string(req.Billing)
	if req.Kind == domain.ItemTypeService {
		variant = string(req.Tier)
	}
	item, err := h.catalog.Item(ctx, req.Kind, req.ID, variant)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if req.Quantity > 0 {
		item.Quantity = req.Quantity
	}

	ws.Cart.Add(item)
	respondJSON(w, http.StatusCreated, cartResponse(ws))
}

// PUT /api/v1/cart/items/{item_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ws, ok := withWorkspace(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// a quantity below one removes the line
	ws.Cart.UpdateQuantity(chi.URLParam(r, "item_id"), req.Quantity)
	respondJSON(w, http.StatusOK, cartResponse(ws))
}

// DELETE /api/v1/cart/items/{item_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ws, ok := withWorkspace(w, r)
	if !ok {
		return
	}
	ws.Cart.Remove(chi.URLParam(r, "item_id"))
	respondJSON(w, http.StatusOK, cartResponse(ws))
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ws, ok := withWorkspace(w, r)
	if !ok {
		return
	}
	ws.Cart.Clear()
	respondJSON(w, http.StatusOK, cartResponse(ws))
}

// POST /api/v1/cart/promo
func (h *CartHandler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	ws, ok := withWorkspace(w, r)
	if !ok {
		return
	}

	var req PromoRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if _, err := ws.Discount.Apply(h.promotions, req.Code); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartResponse(ws))
}

// DELETE /api/v1/cart/promo
func (h *CartHandler) RemovePromo(w http.ResponseWriter, r *http.Request) {
	ws, ok := withWorkspace(w, r)
	if !ok {
		return
	}
	ws.Discount.Reset()
	respondJSON(w, http.StatusOK, cartResponse(ws))
}

func cartResponse(ws *visitor.Workspace) CartResponseDTO {
	items := ws.Cart.Items()
	code, pct := ws.Discount.Current()
	summary := checkout.Summarize(cart.Total(items), pct)
	summary.PromoCode = code

	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return CartResponseDTO{
		Items:   items,
		Count:   count,
		Summary: summary,
	}
}
