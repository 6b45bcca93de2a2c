package http

import (
	"net/http"

	"github.com/atinyakov/storefront/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Auth    *AuthHandler
	Catalog *CatalogHandler
	Cart    *CartHandler
	Orders  *OrderHandler
}

// NewRouter constructs and returns an HTTP handler that serves the
// storefront API under /api/mobile.
//
// Middleware chain (applied in order):
//  1. Recoverer                   — turns handler panics into 500s
//  2. WithRequestLogging(logger)  — logs every request
//  3. APIKey(apiKey)              — rejects requests without the shared key
//  4. Session(sessions)           — resolves or issues the OCSESSID session
func NewRouter(
	h Handlers,
	sessions middleware.SessionToucher,
	apiKey string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api/mobile", func(r chi.Router) {
		r.Use(middleware.APIKey(apiKey))
		r.Use(middleware.Session(sessions))

		// Account
		r.Post("/login", h.Auth.Login)
		r.Post("/register", h.Auth.Register)
		r.Get("/logout", h.Auth.Logout)
		r.Get("/account", h.Auth.Account)

		// Catalog
		r.Get("/products", h.Catalog.Products)
		r.Get("/product", h.Catalog.Product)
		r.Get("/search", h.Catalog.Search)
		r.Get("/categories", h.Catalog.Categories)
		r.Get("/category", h.Catalog.Category)

		// Cart
		r.Get("/cart", h.Cart.Cart)
		r.Post("/cart_add", h.Cart.Add)
		r.Post("/cart_update", h.Cart.Update)
		r.Post("/cart_remove", h.Cart.Remove)

		// Wishlist, checkout and order history
		r.Get("/wishlist", h.Orders.Wishlist)
		r.Post("/wishlist_add", h.Orders.WishlistAdd)
		r.Post("/wishlist_remove", h.Orders.WishlistRemove)
		r.Get("/orders", h.Orders.Orders)
		r.Get("/order_info", h.Orders.OrderInfo)
		r.Get("/payment_methods", h.Orders.PaymentMethods)
		r.Get("/shipping_methods", h.Orders.ShippingMethods)
		r.Post("/order_create", h.Orders.OrderCreate)
	})

	return r
}
