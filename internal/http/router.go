// Package http exposes the storefront over a JSON API.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type RouterConfig struct {
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
}

type Handlers struct {
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Auth     *AuthHandler
	Orders   *OrdersHandler
	Contact  *ContactHandler
}

func NewRouter(cfg RouterConfig, visitors WorkspaceSource, h Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	if cfg.MaxRequestBodySize > 0 {
		r.Use(middleware.RequestSize(cfg.MaxRequestBodySize))
	}
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/packages", h.Catalog.ListPackages)
			r.Get("/addons", h.Catalog.ListAddOns)
			r.Get("/services", h.Catalog.ListServices)
		})

		r.Group(func(r chi.Router) {
			r.Use(VisitorMiddleware(visitors))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.Cart.GetCart)
				r.Delete("/", h.Cart.ClearCart)
				r.Post("/items", h.Cart.AddItem)
				r.Put("/items/{item_id}", h.Cart.UpdateQuantity)
				r.Delete("/items/{item_id}", h.Cart.RemoveItem)
				r.Post("/promo", h.Cart.ApplyPromo)
				r.Delete("/promo", h.Cart.RemovePromo)
			})

			r.Post("/checkout", h.Checkout.Checkout)

			r.Route("/auth", func(r chi.Router) {
				r.Post("/login", h.Auth.Login)
				r.Post("/logout", h.Auth.Logout)
				r.Get("/session", h.Auth.Session)
			})

			r.Get("/orders", h.Orders.ListOrders)
			r.Post("/contact", h.Contact.Submit)
		})
	})

	return otelhttp.NewHandler(r, "storefront")
}
