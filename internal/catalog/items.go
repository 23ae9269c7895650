package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/somnath11som/webeF/internal/domain"
)

var (
	ErrInvalidBilling = errors.New("billing must be monthly or annually")
	ErrInvalidTier    = errors.New("tier must be basic, business or corporate")
	ErrUnknownKind    = errors.New("unknown item kind")
)

// PackageItem builds the cart line for a package at the given billing period.
func PackageItem(p domain.Package, billing domain.Billing) (domain.CartItem, error) {
	price, err := priceFor(p.Monthly, p.Annual, billing)
	if err != nil {
		return domain.CartItem{}, err
	}
	return domain.CartItem{
		ID:          fmt.Sprintf("%s-%s", p.ID, billing),
		Name:        fmt.Sprintf("%s Package (%s)", p.Name, billing),
		Price:       price,
		Quantity:    1,
		Type:        domain.ItemTypePackage,
		Billing:     billing,
		Description: p.Description,
	}, nil
}

func AddOnItem(a domain.AddOn, billing domain.Billing) (domain.CartItem, error) {
	price, err := priceFor(a.Monthly, a.Annual, billing)
	if err != nil {
		return domain.CartItem{}, err
	}
	return domain.CartItem{
		ID:          fmt.Sprintf("%s-%s", a.ID, billing),
		Name:        fmt.Sprintf("%s (%s)", a.Name, billing),
		Price:       price,
		Quantity:    1,
		Type:        domain.ItemTypeAddOn,
		Billing:     billing,
		Description: a.Description,
	}, nil
}

// ServiceItem builds the one-time cart line for a service tier.
func ServiceItem(s domain.Service, tier domain.Tier) (domain.CartItem, error) {
	if !tier.Valid() {
		return domain.CartItem{}, ErrInvalidTier
	}
	return domain.CartItem{
		ID:          fmt.Sprintf("%s-%s", s.ID, tier),
		Name:        fmt.Sprintf("%s (%s)", s.Title, capitalize(string(tier))),
		Price:       s.Pricing[tier],
		Quantity:    1,
		Type:        domain.ItemTypeService,
		Description: s.Description,
	}, nil
}

// Savings compares twelve monthly payments with the annual price.
func Savings(monthly, annual float64) (amount float64, percent int) {
	yearly := monthly * 12
	if yearly == 0 {
		return 0, 0
	}
	amount = yearly - annual
	return amount, int(math.Round(amount / yearly * 100))
}

// Item resolves a catalog entry into a cart line. kind is one of package,
// addon or service; variant is the billing period for packages and add-ons
// and the tier for services.
func (r *Repository) Item(ctx context.Context, kind domain.ItemType, id, variant string) (domain.CartItem, error) {
	switch kind {
	case domain.ItemTypePackage:
		p, err := r.GetPackage(ctx, id)
		if err != nil {
			return domain.CartItem{}, err
		}
		return PackageItem(p, domain.Billing(variant))
	case domain.ItemTypeAddOn:
		a, err := r.GetAddOn(ctx, id)
		if err != nil {
			return domain.CartItem{}, err
		}
		return AddOnItem(a, domain.Billing(variant))
	case domain.ItemTypeService:
		return r.ServiceItem(ctx, id, domain.Tier(variant))
	default:
		return domain.CartItem{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func (r *Repository) ServiceItem(ctx context.Context, id string, tier domain.Tier) (domain.CartItem, error) {
	s, err := r.GetService(ctx, id)
	if err != nil {
		return domain.CartItem{}, err
	}
	return ServiceItem(s, tier)
}

func priceFor(monthly, annual float64, billing domain.Billing) (float64, error) {
	switch billing {
	case domain.BillingMonthly:
		return monthly, nil
	case domain.BillingAnnually:
		return annual, nil
	default:
		return 0, ErrInvalidBilling
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
