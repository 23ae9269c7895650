// Package checkout turns a cart and the shopper's contact details into an
// order on the agency's order API.
package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/somnath11som/webeF/internal/cart"
	"github.com/somnath11som/webeF/internal/domain"
	"github.com/somnath11som/webeF/internal/events"
	"github.com/somnath11som/webeF/internal/remote"
	"go.uber.org/zap"
)

// DefaultClearDelay is how long the cart survives a successful checkout, so
// the redirect can happen before the cart empties.
const DefaultClearDelay = 2 * time.Second

// OrderCreator is the order-creation endpoint.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req remote.CreateOrderRequest) (*remote.CreateOrderResponse, error)
}

type Publisher interface {
	PublishOrderCreated(ctx context.Context, ev events.OrderCreated) error
}

type Contact struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Notes    string `json:"notes"`
}

type Request struct {
	Contact
	VisitorID       string
	PromoCode       string
	DiscountPercent float64
}

type Result struct {
	RedirectURL string  `json:"redirect"`
	Summary     Summary `json:"summary"`
}

type Service struct {
	orders     OrderCreator
	publisher  Publisher
	clearDelay time.Duration
	logger     *zap.Logger

	inFlight sync.Map // *cart.Store -> struct{}
}

func NewService(orders OrderCreator, publisher Publisher, clearDelay time.Duration, logger *zap.Logger) *Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		orders:     orders,
		publisher:  publisher,
		clearDelay: clearDelay,
		logger:     logger,
	}
}

// Checkout validates the request, submits the order and, once the order API
// accepts it, schedules the cart to be cleared and returns the payment link.
// Nothing is sent when validation fails. There is no retry.
func (s *Service) Checkout(ctx context.Context, c *cart.Store, req Request) (*Result, error) {
	items := c.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := validateContact(req.Contact); err != nil {
		return nil, err
	}

	if _, busy := s.inFlight.LoadOrStore(c, struct{}{}); busy {
		return nil, ErrCheckoutInProgress
	}
	defer s.inFlight.Delete(c)

	summary := Summarize(cart.Total(items), req.DiscountPercent)
	summary.PromoCode = req.PromoCode

	resp, err := s.orders.CreateOrder(ctx, remote.CreateOrderRequest{
		Name:      req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Notes:     req.Notes,
		Amount:    summary.Total,
		Packages:  items,
		PromoCode: req.PromoCode,
		Discount:  req.DiscountPercent,
	})
	if err != nil {
		s.logger.Warn("order creation failed", zap.String("visitor_id", req.VisitorID), zap.Error(err))
		return nil, fmt.Errorf("create order: %w", err)
	}
	if resp.Status != remote.StatusOK || resp.Link == "" {
		s.logger.Warn("order rejected",
			zap.String("visitor_id", req.VisitorID),
			zap.Int("status", resp.Status))
		return nil, ErrOrderRejected
	}

	c.ClearAfter(s.clearDelay)
	s.publish(ctx, req, summary, items)

	s.logger.Info("order created",
		zap.String("visitor_id", req.VisitorID),
		zap.Float64("amount", summary.Total),
		zap.Int("items", len(items)))

	return &Result{RedirectURL: resp.Link, Summary: summary}, nil
}

func (s *Service) publish(ctx context.Context, req Request, summary Summary, items []domain.CartItem) {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	ev := events.OrderCreated{
		CheckoutID:      uuid.NewString(),
		VisitorID:       req.VisitorID,
		Email:           req.Email,
		Amount:          summary.Total,
		Subtotal:        summary.Subtotal,
		DiscountPercent: summary.DiscountPercent,
		PromoCode:       req.PromoCode,
		ItemIDs:         ids,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.publisher.PublishOrderCreated(context.WithoutCancel(ctx), ev); err != nil {
		s.logger.Error("publish order event failed", zap.String("checkout_id", ev.CheckoutID), zap.Error(err))
	}
}

func validateContact(c Contact) error {
	if strings.TrimSpace(c.Email) == "" || strings.TrimSpace(c.FullName) == "" || strings.TrimSpace(c.Phone) == "" {
		return ErrMissingInformation
	}
	return nil
}
