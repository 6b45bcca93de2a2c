// Package app wires the API client, the state stores and persistence into
// one explicitly constructed application root.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/atinyakov/storefront/internal/client/api"
	"github.com/atinyakov/storefront/internal/client/catalog"
	"github.com/atinyakov/storefront/internal/client/state"
	"github.com/atinyakov/storefront/internal/client/storage"
	"github.com/atinyakov/storefront/internal/models"
)

// RecentSearchesKey is the storage key of the search history.
const RecentSearchesKey = "recent-searches"

// Deps are the collaborators App is built from.
type Deps struct {
	API     *api.Client
	Storage storage.Backend
	Log     *zap.Logger
}

// App owns one instance of every store.
type App struct {
	API    *api.Client
	Auth   *state.Auth
	Cart   *state.Cart
	Toast  *state.Toast
	Recent *catalog.RecentSearches

	store storage.Backend
	log   *zap.Logger
}

// New builds an App. Nothing is loaded until Bootstrap.
func New(d Deps) *App {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		API:    d.API,
		Auth:   state.NewAuth(d.API, log.Named("auth")),
		Cart:   state.NewCart(d.API, log.Named("cart")),
		Toast:  state.NewToast(),
		Recent: catalog.NewRecentSearches(catalog.DefaultRecentLimit),
		store:  d.Storage,
		log:    log,
	}
}

// Bootstrap restores persisted state. A stored session is re-validated with
// a profile fetch; when it is still good the cart is loaded too.
func (a *App) Bootstrap(ctx context.Context) error {
	snap, err := storage.LoadAuth(ctx, a.store)
	if err != nil {
		return fmt.Errorf("load auth state: %w", err)
	}
	if snap.SessionToken == "" {
		// Nothing to authenticate with.
		snap.Customer = nil
		snap.IsAuthenticated = false
	}
	a.Auth.Restore(state.AuthState{
		SessionToken:    snap.SessionToken,
		Customer:        snap.Customer,
		IsAuthenticated: snap.IsAuthenticated,
	})

	var recent []string
	if _, err := storage.LoadJSON(ctx, a.store, RecentSearchesKey, &recent); err != nil {
		a.log.Warn("failed to load recent searches", zap.Error(err))
	}
	a.Recent = catalog.NewRecentSearches(catalog.DefaultRecentLimit, recent...)

	if snap.SessionToken == "" {
		return nil
	}
	if err := a.Auth.LoadCustomer(ctx); err != nil {
		a.log.Info("stored session rejected", zap.Error(err))
		return a.Persist(ctx)
	}
	_ = a.Cart.LoadCart(ctx)
	return a.Persist(ctx)
}

// Persist writes the auth slice and the search history.
func (a *App) Persist(ctx context.Context) error {
	s := a.Auth.Snapshot()
	err := storage.SaveAuth(ctx, a.store, storage.AuthSnapshot{
		SessionToken:    s.SessionToken,
		Customer:        s.Customer,
		IsAuthenticated: s.IsAuthenticated,
	})
	if err != nil {
		return fmt.Errorf("save auth state: %w", err)
	}
	if err := storage.SaveJSON(ctx, a.store, RecentSearchesKey, a.Recent.List()); err != nil {
		return fmt.Errorf("save recent searches: %w", err)
	}
	return nil
}

// Login signs in, loads the cart and persists the new session.
func (a *App) Login(ctx context.Context, email, password string) state.ActionResult {
	res := a.Auth.Login(ctx, email, password)
	if !res.Success {
		a.Toast.Show(res.Message, state.SeverityError)
		return res
	}
	_ = a.Cart.LoadCart(ctx)
	if err := a.Persist(ctx); err != nil {
		a.log.Error("persist after login", zap.Error(err))
	}
	a.Toast.Show("Welcome back", state.SeveritySuccess)
	return res
}

// Logout signs out, drops the local cart and persists the signed-out state.
func (a *App) Logout(ctx context.Context) error {
	a.Auth.Logout(ctx)
	a.Cart.ClearCart()
	a.Cart.HideCart()
	return a.Persist(ctx)
}

// AddToCart adds a product and reports the outcome through the toast.
func (a *App) AddToCart(ctx context.Context, productID string, quantity int, options map[string]string) state.ActionResult {
	res := a.Cart.AddToCart(ctx, productID, quantity, options)
	if res.Success {
		a.Toast.Show(res.Message, state.SeveritySuccess)
	} else {
		a.Toast.Show(res.Message, state.SeverityError)
	}
	return res
}

// Search records query in the history and runs a backend search.
func (a *App) Search(ctx context.Context, query string, page, limit int) (api.Result[[]models.Product], error) {
	a.Recent.Add(query)
	return a.API.SearchProducts(ctx, query, page, limit)
}
