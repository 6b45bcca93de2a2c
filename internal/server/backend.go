// Package server assembles the development commerce backend from its
// repositories, services and HTTP handlers.
package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	handler "github.com/atinyakov/storefront/internal/server/handler/http"
	"github.com/atinyakov/storefront/internal/repository"
	"github.com/atinyakov/storefront/internal/service"
)

// Backend is a wired, in-memory storefront backend seeded with the demo
// catalog.
type Backend struct {
	// Handler serves /api/mobile.
	Handler http.Handler

	sessions *repository.SessionRepository
	carts    *repository.CartRepository
	log      *zap.Logger
}

// NewBackend wires the repositories, services and router. An empty apiKey
// disables the API key check.
func NewBackend(apiKey string, log *zap.Logger) *Backend {
	if log == nil {
		log = zap.NewNop()
	}

	sessions := repository.NewSessionRepository()
	carts := repository.NewCartRepository()
	catalog := repository.SeedCatalog()

	accounts := service.NewAccountService(repository.NewCustomerRepository(), sessions)
	cartService := service.NewCartService(carts, catalog)

	h := handler.Handlers{
		Auth:    &handler.AuthHandler{Accounts: accounts},
		Catalog: &handler.CatalogHandler{Catalog: service.NewCatalogService(catalog)},
		Cart:    &handler.CartHandler{Carts: cartService},
		Orders: &handler.OrderHandler{
			Accounts:  accounts,
			Wishlists: service.NewWishlistService(repository.NewWishlistRepository(), catalog),
			Checkout:  service.NewCheckoutService(repository.NewOrderRepository(), cartService),
		},
	}

	return &Backend{
		Handler:  handler.NewRouter(h, sessions, apiKey, log),
		sessions: sessions,
		carts:    carts,
		log:      log,
	}
}

// StartSweeper removes sessions idle for longer than idle, and their carts,
// every interval until ctx is done.
func (b *Backend) StartSweeper(ctx context.Context, interval, idle time.Duration) {
	service.StartSessionSweeper(ctx, b.sessions, b.carts, interval, idle, b.log.Named("sweeper"))
}
