package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/somnath11som/webeF/internal/auth"
	"github.com/somnath11som/webeF/internal/catalog"
	"github.com/somnath11som/webeF/internal/checkout"
	"github.com/somnath11som/webeF/internal/contact"
	"github.com/somnath11som/webeF/internal/orders"
	"github.com/somnath11som/webeF/internal/remote"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Title   string `json:"title,omitempty"`
	Details string `json:"details,omitempty"`
}

// titles are the notification headings the front-end shows per error code.
var titles = map[string]string{
	"empty_cart":           "Cart is Empty",
	"missing_information":  "Missing Information",
	"invalid_promo_code":   "Invalid Promo Code",
	"order_rejected":       "Failed to process your order",
	"missing_credentials":  "Missing Information",
	"login_failed":         "Login Failed",
	"missing_fields":       "Missing Information",
	"contact_rejected":     "Error",
	"upstream_unavailable": "Error",
}

// LoginRedirectResponse tells the client to send the shopper to the login page.
type LoginRedirectResponse struct {
	Error    string `json:"error"`
	Code     string `json:"code"`
	Redirect string `json:"redirect"`
}

const loginPath = "/login"

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
		Title: titles[code],
	})
}

func respondLoginRequired(w http.ResponseWriter) {
	respondJSON(w, http.StatusUnauthorized, LoginRedirectResponse{
		Error:    orders.ErrLoginRequired.Error(),
		Code:     "login_required",
		Redirect: loginPath,
	})
}

// respondServiceError maps errors from the storefront services to HTTP
// statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	var httpStatus int
	var code string

	switch {
	case errors.Is(err, orders.ErrLoginRequired):
		respondLoginRequired(w)
		return
	case errors.Is(err, checkout.ErrEmptyCart):
		httpStatus, code = http.StatusBadRequest, "empty_cart"
	case errors.Is(err, checkout.ErrMissingInformation):
		httpStatus, code = http.StatusBadRequest, "missing_information"
	case errors.Is(err, checkout.ErrInvalidPromoCode):
		httpStatus, code = http.StatusBadRequest, "invalid_promo_code"
	case errors.Is(err, checkout.ErrCheckoutInProgress):
		httpStatus, code = http.StatusConflict, "checkout_in_progress"
	case errors.Is(err, checkout.ErrOrderRejected):
		httpStatus, code = http.StatusUnprocessableEntity, "order_rejected"
	case errors.Is(err, auth.ErrMissingCredentials):
		httpStatus, code = http.StatusBadRequest, "missing_credentials"
	case errors.Is(err, auth.ErrLoginFailed):
		httpStatus, code = http.StatusUnauthorized, "login_failed"
	case errors.Is(err, contact.ErrMissingFields):
		httpStatus, code = http.StatusBadRequest, "missing_fields"
	case errors.Is(err, contact.ErrUnknownService):
		httpStatus, code = http.StatusBadRequest, "unknown_service"
	case errors.Is(err, contact.ErrRejected):
		httpStatus, code = http.StatusUnprocessableEntity, "contact_rejected"
	case errors.Is(err, catalog.ErrNotFound):
		httpStatus, code = http.StatusNotFound, "not_found"
	case errors.Is(err, catalog.ErrInvalidBilling),
		errors.Is(err, catalog.ErrInvalidTier),
		errors.Is(err, catalog.ErrUnknownKind):
		httpStatus, code = http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, context.DeadlineExceeded):
		httpStatus, code = http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, remote.ErrTransport):
		zap.L().Warn("upstream request failed", zap.Error(err))
		respondError(w, http.StatusBadGateway, "upstream_unavailable", "service temporarily unavailable, please try again later")
		return
	default:
		zap.L().Error("unhandled service error", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondError(w, httpStatus, code, err.Error())
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
