package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/somnath11som/webeF/internal/cart"
	"github.com/somnath11som/webeF/internal/domain"
	"github.com/somnath11som/webeF/internal/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContact() Contact {
	return Contact{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "+1 555 123 4567",
		Company:  "Acme",
		Notes:    "needs a blog",
	}
}

func filledCart() *cart.Store {
	c := cart.NewStore()
	c.Add(domain.CartItem{ID: "business-monthly", Name: "Business Package (monthly)", Price: 1000, Type: domain.ItemTypePackage, Billing: domain.BillingMonthly})
	return c
}

func TestCheckout_EmptyCartSendsNothing(t *testing.T) {
	orders := &mockOrderCreator{resp: &remote.CreateOrderResponse{Status: 1, Link: "https://pay"}}
	svc := NewService(orders, nil, time.Millisecond, nil)

	_, err := svc.Checkout(context.Background(), cart.NewStore(), Request{Contact: validContact()})

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, orders.callCount())
}

func TestCheckout_MissingEmailSendsNothing(t *testing.T) {
	orders := &mockOrderCreator{resp: &remote.CreateOrderResponse{Status: 1, Link: "https://pay"}}
	svc := NewService(orders, nil, time.Millisecond, nil)

	contact := validContact()
	contact.Email = ""
	_, err := svc.Checkout(context.Background(), filledCart(), Request{Contact: contact})

	assert.ErrorIs(t, err, ErrMissingInformation)
	assert.Zero(t, orders.callCount())
}

func TestCheckout_MissingNameOrPhone(t *testing.T) {
	orders := &mockOrderCreator{}
	svc := NewService(orders, nil, time.Millisecond, nil)

	noName := validContact()
	noName.FullName = "  "
	_, err := svc.Checkout(context.Background(), filledCart(), Request{Contact: noName})
	assert.ErrorIs(t, err, ErrMissingInformation)

	noPhone := validContact()
	noPhone.Phone = ""
	_, err = svc.Checkout(context.Background(), filledCart(), Request{Contact: noPhone})
	assert.ErrorIs(t, err, ErrMissingInformation)

	assert.Zero(t, orders.callCount())
}

func TestCheckout_Success(t *testing.T) {
	orders := &mockOrderCreator{resp: &remote.CreateOrderResponse{Status: 1, Link: "https://pay.example/xyz"}}
	pub := &mockPublisher{}
	svc := NewService(orders, pub, 20*time.Millisecond, nil)
	c := filledCart()

	res, err := svc.Checkout(context.Background(), c, Request{
		Contact:         validContact(),
		VisitorID:       "visitor-1",
		PromoCode:       "WELCOME15",
		DiscountPercent: 15,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/xyz", res.RedirectURL)
	assert.Equal(t, 850.0, res.Summary.Total)

	require.Equal(t, 1, orders.callCount())
	sent := orders.calls[0]
	assert.Equal(t, "Jane Doe", sent.Name)
	assert.Equal(t, "Acme", sent.Company)
	assert.Equal(t, "needs a blog", sent.Notes)
	assert.Equal(t, 850.0, sent.Amount)
	assert.Equal(t, "WELCOME15", sent.PromoCode)
	assert.Equal(t, 15.0, sent.Discount)
	require.Len(t, sent.Packages, 1)
	assert.Equal(t, "business-monthly", sent.Packages[0].ID)

	// cart survives the redirect, then empties
	assert.Equal(t, 1, c.Len())
	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "visitor-1", pub.events[0].VisitorID)
	assert.Equal(t, []string{"business-monthly"}, pub.events[0].ItemIDs)
	assert.NotEmpty(t, pub.events[0].CheckoutID)
}

func TestCheckout_RejectedKeepsCart(t *testing.T) {
	orders := &mockOrderCreator{resp: &remote.CreateOrderResponse{Status: 0}}
	pub := &mockPublisher{}
	svc := NewService(orders, pub, time.Millisecond, nil)
	c := filledCart()

	_, err := svc.Checkout(context.Background(), c, Request{Contact: validContact()})

	assert.ErrorIs(t, err, ErrOrderRejected)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, c.Len())
	assert.Empty(t, pub.events)
}

func TestCheckout_TransportError(t *testing.T) {
	orders := &mockOrderCreator{err: remote.ErrTransport}
	svc := NewService(orders, nil, time.Millisecond, nil)

	_, err := svc.Checkout(context.Background(), filledCart(), Request{Contact: validContact()})

	assert.ErrorIs(t, err, remote.ErrTransport)
	assert.Equal(t, 1, orders.callCount())
}

func TestCheckout_PublishFailureDoesNotFailCheckout(t *testing.T) {
	orders := &mockOrderCreator{resp: &remote.CreateOrderResponse{Status: 1, Link: "https://pay"}}
	pub := &mockPublisher{err: errors.New("broker down")}
	svc := NewService(orders, pub, time.Minute, nil)

	res, err := svc.Checkout(context.Background(), filledCart(), Request{Contact: validContact()})
	require.NoError(t, err)
	assert.Equal(t, "https://pay", res.RedirectURL)
}

func TestCheckout_RejectsConcurrentSubmission(t *testing.T) {
	orders := &mockOrderCreator{
		resp:     &remote.CreateOrderResponse{Status: 1, Link: "https://pay"},
		block:    make(chan struct{}),
		received: make(chan struct{}, 1),
	}
	svc := NewService(orders, nil, time.Minute, nil)
	c := filledCart()

	done := make(chan error, 1)
	go func() {
		_, err := svc.Checkout(context.Background(), c, Request{Contact: validContact()})
		done <- err
	}()
	<-orders.received

	_, err := svc.Checkout(context.Background(), c, Request{Contact: validContact()})
	assert.ErrorIs(t, err, ErrCheckoutInProgress)

	close(orders.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, orders.callCount())
}
