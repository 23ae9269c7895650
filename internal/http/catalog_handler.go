package http

import (
	"context"
	"net/http"
	"time"

	"github.com/somnath11som/webeF/internal/catalog"
	"github.com/somnath11som/webeF/internal/domain"
)

// Catalog is the read side of the catalog repository.
type Catalog interface {
	ListPackages(ctx context.Context) ([]domain.Package, error)
	ListAddOns(ctx context.Context) ([]domain.AddOn, error)
	ListServices(ctx context.Context, category string) ([]domain.Service, error)
	Item(ctx context.Context, kind domain.ItemType, id, variant string) (domain.CartItem, error)
}

type CatalogHandler struct {
	catalog Catalog
	timeout time.Duration
}

func NewCatalogHandler(c Catalog, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		catalog: c,
		timeout: timeout,
	}
}

type PackageDTO struct {
	domain.Package
	AnnualSavings        float64 `json:"annualSavings"`
	AnnualSavingsPercent int     `json:"annualSavingsPercent"`
}

// GET /api/v1/catalog/packages
func (h *CatalogHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	packages, err := h.catalog.ListPackages(ctx)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	out := make([]PackageDTO, 0, len(packages))
	for _, p := range packages {
		amount, pct := catalog.Savings(p.Monthly, p.Annual)
		out = append(out, PackageDTO{Package: p, AnnualSavings: amount, AnnualSavingsPercent: pct})
	}
	respondJSON(w, http.StatusOK, out)
}

// GET /api/v1/catalog/addons
func (h *CatalogHandler) ListAddOns(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	addOns, err := h.catalog.ListAddOns(ctx)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, addOns)
}

// GET /api/v1/catalog/services?category=
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	services, err := h.catalog.ListServices(ctx, r.URL.Query().Get("category"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, services)
}
