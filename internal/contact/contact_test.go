package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/somnath11som/webeF/internal/cart"
	"github.com/somnath11som/webeF/internal/domain"
	"github.com/somnath11som/webeF/internal/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccounts struct {
	resp *remote.ContactResponse
	err  error
	got  []remote.ContactRequest
}

func (f *fakeAccounts) SubmitContact(_ context.Context, req remote.ContactRequest) (*remote.ContactResponse, error) {
	f.got = append(f.got, req)
	return f.resp, f.err
}

type fakeCatalog map[string]domain.Service

func (f fakeCatalog) ServiceItem(_ context.Context, id string, tier domain.Tier) (domain.CartItem, error) {
	s, ok := f[id]
	if !ok {
		return domain.CartItem{}, errors.New("not found")
	}
	return domain.CartItem{
		ID:       id + "-" + string(tier),
		Name:     s.Title + " (Basic)",
		Price:    s.Pricing[tier],
		Quantity: 1,
		Type:     domain.ItemTypeService,
	}, nil
}

func testCatalog() fakeCatalog {
	return fakeCatalog{
		"web-design":    {ID: "web-design", Title: "Web Design & Development", Pricing: map[domain.Tier]float64{domain.TierBasic: 499}},
		"cloud-hosting": {ID: "cloud-hosting", Title: "Cloud Hosting", Pricing: map[domain.Tier]float64{domain.TierBasic: 29}},
	}
}

func validLead() Lead {
	return Lead{
		Name:     "Ada",
		Email:    "ada@example.com",
		Message:  "Need a site",
		Services: []string{"web-design", "cloud-hosting"},
	}
}

func TestSubmit_Success(t *testing.T) {
	accounts := &fakeAccounts{resp: &remote.ContactResponse{Status: 1}}
	svc := NewService(accounts, testCatalog(), nil)
	c := cart.NewStore()

	lead := validLead()
	lead.Newsletter = true
	lead.Company = "Acme"
	msg, err := svc.Submit(context.Background(), c, lead)

	require.NoError(t, err)
	assert.Equal(t, SuccessMessage, msg)

	require.Len(t, accounts.got, 1)
	req := accounts.got[0]
	assert.Equal(t, "web-design, cloud-hosting", req.Services)
	assert.Equal(t, "Y", req.Subscribe)
	assert.Equal(t, "Acme", req.Company)
	assert.Equal(t, "Need a site", req.Message)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "web-design-basic", items[0].ID)
	assert.Equal(t, "Basic Web Design & Development package", items[0].Description)
	assert.Equal(t, 528.0, c.Total())
}

func TestSubmit_NoNewsletter(t *testing.T) {
	accounts := &fakeAccounts{resp: &remote.ContactResponse{Status: 1}}
	svc := NewService(accounts, testCatalog(), nil)

	lead := validLead()
	lead.Services = nil
	_, err := svc.Submit(context.Background(), cart.NewStore(), lead)

	require.NoError(t, err)
	assert.Equal(t, "N", accounts.got[0].Subscribe)
	assert.Equal(t, "", accounts.got[0].Services)
}

func TestSubmit_MissingFields(t *testing.T) {
	accounts := &fakeAccounts{resp: &remote.ContactResponse{Status: 1}}
	svc := NewService(accounts, testCatalog(), nil)

	for _, mutate := range []func(*Lead){
		func(l *Lead) { l.Name = " " },
		func(l *Lead) { l.Email = "" },
		func(l *Lead) { l.Message = "" },
	} {
		lead := validLead()
		mutate(&lead)
		c := cart.NewStore()

		_, err := svc.Submit(context.Background(), c, lead)
		assert.ErrorIs(t, err, ErrMissingFields)
		assert.Zero(t, c.Len())
	}
	assert.Empty(t, accounts.got)
}

func TestSubmit_UnknownServiceAddsNothing(t *testing.T) {
	accounts := &fakeAccounts{resp: &remote.ContactResponse{Status: 1}}
	svc := NewService(accounts, testCatalog(), nil)
	c := cart.NewStore()

	lead := validLead()
	lead.Services = []string{"web-design", "time-travel"}
	_, err := svc.Submit(context.Background(), c, lead)

	assert.ErrorIs(t, err, ErrUnknownService)
	assert.Zero(t, c.Len())
	assert.Empty(t, accounts.got)
}

func TestSubmit_Rejected(t *testing.T) {
	accounts := &fakeAccounts{resp: &remote.ContactResponse{Status: 0, Message: "email blocked"}}
	svc := NewService(accounts, testCatalog(), nil)
	c := cart.NewStore()

	_, err := svc.Submit(context.Background(), c, validLead())

	require.ErrorIs(t, err, ErrRejected)
	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "email blocked", rejected.Message)
	assert.Equal(t, 2, c.Len())
}

func TestSubmit_TransportError(t *testing.T) {
	accounts := &fakeAccounts{err: remote.ErrTransport}
	svc := NewService(accounts, testCatalog(), nil)

	_, err := svc.Submit(context.Background(), cart.NewStore(), validLead())

	assert.ErrorIs(t, err, remote.ErrTransport)
}
