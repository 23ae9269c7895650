package catalog_test

import (
	"context"
	"testing"

	"github.com/somnath11som/webeF/internal/catalog"
	"github.com/somnath11som/webeF/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageItem(t *testing.T) {
	p := domain.Package{ID: "starter", Name: "Starter", Description: "small", Monthly: 499, Annual: 4990}

	monthly, err := catalog.PackageItem(p, domain.BillingMonthly)
	require.NoError(t, err)
	assert.Equal(t, domain.CartItem{
		ID:          "starter-monthly",
		Name:        "Starter Package (monthly)",
		Price:       499,
		Quantity:    1,
		Type:        domain.ItemTypePackage,
		Billing:     domain.BillingMonthly,
		Description: "small",
	}, monthly)

	annual, err := catalog.PackageItem(p, domain.BillingAnnually)
	require.NoError(t, err)
	assert.Equal(t, "starter-annually", annual.ID)
	assert.Equal(t, 4990.0, annual.Price)

	_, err = catalog.PackageItem(p, "weekly")
	assert.ErrorIs(t, err, catalog.ErrInvalidBilling)
}

func TestAddOnItem(t *testing.T) {
	a := domain.AddOn{ID: "ssl", Name: "SSL Certificate", Monthly: 20, Annual: 149}

	item, err := catalog.AddOnItem(a, domain.BillingAnnually)
	require.NoError(t, err)
	assert.Equal(t, "ssl-annually", item.ID)
	assert.Equal(t, "SSL Certificate (annually)", item.Name)
	assert.Equal(t, domain.ItemTypeAddOn, item.Type)
	assert.Equal(t, 149.0, item.Price)
}

func TestServiceItem(t *testing.T) {
	s := domain.Service{
		ID:    "app-development",
		Title: "App Development",
		Pricing: map[domain.Tier]float64{
			domain.TierBasic:     2999,
			domain.TierBusiness:  5999,
			domain.TierCorporate: 9999,
		},
	}

	item, err := catalog.ServiceItem(s, domain.TierBusiness)
	require.NoError(t, err)
	assert.Equal(t, "app-development-business", item.ID)
	assert.Equal(t, "App Development (Business)", item.Name)
	assert.Equal(t, 5999.0, item.Price)
	assert.Equal(t, domain.ItemTypeService, item.Type)
	assert.Empty(t, item.Billing)

	_, err = catalog.ServiceItem(s, "premium")
	assert.ErrorIs(t, err, catalog.ErrInvalidTier)
}

func TestSavings(t *testing.T) {
	amount, percent := catalog.Savings(499, 4990)
	assert.Equal(t, 998.0, amount)
	assert.Equal(t, 17, percent)

	amount, percent = catalog.Savings(0, 0)
	assert.Zero(t, amount)
	assert.Zero(t, percent)
}

func TestRepositoryItem(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	item, err := repo.Item(ctx, domain.ItemTypePackage, "business", "annually")
	require.NoError(t, err)
	assert.Equal(t, "business-annually", item.ID)
	assert.Equal(t, 11990.0, item.Price)

	item, err = repo.Item(ctx, domain.ItemTypeAddOn, "hosting", "monthly")
	require.NoError(t, err)
	assert.Equal(t, "Professional Hosting (monthly)", item.Name)

	item, err = repo.Item(ctx, domain.ItemTypeService, "graphic-design", "basic")
	require.NoError(t, err)
	assert.Equal(t, "graphic-design-basic", item.ID)
	assert.Equal(t, 199.0, item.Price)

	_, err = repo.Item(ctx, "bundle", "x", "y")
	assert.ErrorIs(t, err, catalog.ErrUnknownKind)

	_, err = repo.Item(ctx, domain.ItemTypePackage, "missing", "monthly")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}
