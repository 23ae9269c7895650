package http

import (
	"context"
	"net/http"
	"time"

	"github.com/somnath11som/webeF/internal/auth"
	"github.com/somnath11som/webeF/internal/domain"
	"go.uber.org/zap"
)

type Authenticator interface {
	Login(ctx context.Context, sess auth.SessionWriter, email, password string) (*domain.User, error)
}

type AuthHandler struct {
	auth    Authenticator
	timeout time.Duration
}

func NewAuthHandler(a Authenticator, timeout time.Duration) *AuthHandler {
	return &AuthHandler{
		auth:    a,
		timeout: timeout,
	}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ws, ok := withWorkspace(w, r)
	if !ok {
		return
	}

	var req LoginRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if _, err := h.auth.Login(ctx, ws.Session, req.Email, req.Password); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ws.Session.State())
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ws, ok := withWorkspace(w, r)
	if !ok {
		return
	}

	if err := ws.Session.Logout(ctx); err != nil {
		// the in-memory session is already cleared
		zap.L().Error("clear session storage failed", zap.String("visitor_id", ws.ID), zap.Error(err))
	}
	respondJSON(w, http.StatusOK, ws.Session.State())
}

// GET /api/v1/auth/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	ws, ok := withWorkspace(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, ws.Session.State())
}
