package checkout

import "errors"

var (
	ErrEmptyCart          = errors.New("cart is empty, nothing to checkout")
	ErrMissingInformation = errors.New("email, full name and phone are required")
	ErrOrderRejected      = errors.New("order was not accepted")
	ErrCheckoutInProgress = errors.New("checkout already in progress for this cart")
	ErrInvalidPromoCode   = errors.New("invalid promo code")
)
