package checkout

import (
	"strings"
	"sync"
)

// DefaultPromoCodes maps the codes the storefront accepts to a discount
// percentage.
var DefaultPromoCodes = map[string]float64{
	"WELCOME15": 15,
}

// Promotions is a static promo-code table. Lookups are case-insensitive.
type Promotions struct {
	codes map[string]float64
}

func NewPromotions(codes map[string]float64) *Promotions {
	p := &Promotions{codes: make(map[string]float64, len(codes))}
	for code, pct := range codes {
		p.codes[normalizeCode(code)] = pct
	}
	return p
}

func (p *Promotions) Lookup(code string) (float64, error) {
	pct, ok := p.codes[normalizeCode(code)]
	if !ok {
		return 0, ErrInvalidPromoCode
	}
	return pct, nil
}

// Discount is the promo currently applied to one shopper's cart.
type Discount struct {
	mu      sync.RWMutex
	code    string
	percent float64
}

// Apply sets the discount from code. An unknown code leaves the previous
// discount in place and returns ErrInvalidPromoCode.
func (d *Discount) Apply(p *Promotions, code string) (float64, error) {
	pct, err := p.Lookup(code)
	if err != nil {
		return 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.code = normalizeCode(code)
	d.percent = pct
	return pct, nil
}

func (d *Discount) Current() (code string, percent float64) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.code, d.percent
}

func (d *Discount) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.code = ""
	d.percent = 0
}

// Summary is the priced breakdown shown next to the cart.
type Summary struct {
	Subtotal        float64 `json:"subtotal"`
	DiscountPercent float64 `json:"discountPercent"`
	DiscountAmount  float64 `json:"discountAmount"`
	Total           float64 `json:"total"`
	PromoCode       string  `json:"promoCode,omitempty"`
}

// Summarize applies percent to subtotal.
func Summarize(subtotal, percent float64) Summary {
	amount := subtotal * percent / 100
	return Summary{
		Subtotal:        subtotal,
		DiscountPercent: percent,
		DiscountAmount:  amount,
		Total:           subtotal - amount,
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
