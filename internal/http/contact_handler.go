package http

import (
	"context"
	"net/http"
	"time"

	"github.com/somnath11som/webeF/internal/contact"
)

type LeadSubmitter interface {
	Submit(ctx context.Context, c contact.Cart, lead contact.Lead) (string, error)
}

type ContactHandler struct {
	contact LeadSubmitter
	timeout time.Duration
}

func NewContactHandler(s LeadSubmitter, timeout time.Duration) *ContactHandler {
	return &ContactHandler{
		contact: s,
		timeout: timeout,
	}
}

type ContactResponseDTO struct {
	Message string `json:"message"`
}

// POST /api/v1/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ws, ok := withWorkspace(w, r)
	if !ok {
		return
	}

	var lead contact.Lead
	if err := decodeJSON(r, &lead); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	msg, err := h.contact.Submit(ctx, ws.Cart, lead)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ContactResponseDTO{Message: msg})
}
