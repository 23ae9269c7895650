package remote

import (
	"encoding/json"

	"github.com/somnath11som/webeF/internal/domain"
)

// StatusOK is the application-level success status of every agency endpoint.
const StatusOK = 1

type CreateOrderRequest struct {
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Company   string            `json:"c_name"`
	Notes     string            `json:"notes"`
	Amount    float64           `json:"amount"`
	Packages  []domain.CartItem `json:"packages"`
	PromoCode string            `json:"promoCode"`
	Discount  float64           `json:"discount"`
}

type CreateOrderResponse struct {
	Status int    `json:"status"`
	Link   string `json:"link"`
}

// OrderDetailsResponse leaves Data raw; the caller validates the records and
// needs their document order.
type OrderDetailsResponse struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Status  int          `json:"status"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
	Message string       `json:"message"`
}

type ContactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Company     string `json:"c_name"`
	ProjectType string `json:"p_type"`
	Budget      string `json:"p_bud"`
	Timeline    string `json:"p_timeline"`
	Message     string `json:"des"`
	Services    string `json:"services"`
	Subscribe   string `json:"subscribe"`
}

type ContactResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
