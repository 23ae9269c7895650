package domain

import (
	"bytes"
	"encoding/json"
	"errors"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in-progress"
	OrderStatusCompleted  OrderStatus = "completed"
)

// Order is one record of the order-details endpoint.
type Order struct {
	ID          string      `json:"id"`
	Customer    string      `json:"customer"`
	Service     string      `json:"service"`
	Status      OrderStatus `json:"status"`
	Date        string      `json:"date"`
	Amount      Amount      `json:"amount"`
	Description string      `json:"description"`
	Email       string      `json:"email"`
}

var ErrInvalidOrder = errors.New("order record is missing id or status")

func (o Order) Validate() error {
	if o.ID == "" || o.Status == "" {
		return ErrInvalidOrder
	}
	return nil
}

// Amount keeps the amount exactly as the orders API formatted it; the API
// sends either a JSON number or a preformatted string.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}
