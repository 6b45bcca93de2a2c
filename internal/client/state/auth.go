package state

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/atinyakov/storefront/internal/client/api"
	"github.com/atinyakov/storefront/internal/models"
)

// ErrProfileUnavailable is returned by LoadCustomer when the backend answered
// but did not return a profile for the current session.
var ErrProfileUnavailable = errors.New("customer profile unavailable")

// AuthAPI is the part of the API client the auth store needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (api.Result[api.LoginData], error)
	Register(ctx context.Context, r models.RegisterRequest) (api.Ack, error)
	Logout(ctx context.Context) (api.Ack, error)
	Account(ctx context.Context) (api.Result[models.Customer], error)
	SetSessionToken(token string)
}

// AuthState is a snapshot of the session. The zero value is signed out.
type AuthState struct {
	SessionToken    string
	Customer        *models.Customer
	IsAuthenticated bool
}

func (s AuthState) clone() AuthState {
	if s.Customer != nil {
		c := *s.Customer
		s.Customer = &c
	}
	return s
}

// Auth owns the session token and customer profile.
type Auth struct {
	api AuthAPI
	log *zap.Logger

	mu    sync.Mutex
	state AuthState
	subs  listeners[AuthState]
}

// NewAuth returns a signed-out auth store.
func NewAuth(client AuthAPI, log *zap.Logger) *Auth {
	if log == nil {
		log = zap.NewNop()
	}
	return &Auth{api: client, log: log}
}

// Snapshot returns a copy of the current state.
func (a *Auth) Snapshot() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.clone()
}

// Subscribe registers fn to receive every new state.
func (a *Auth) Subscribe(fn func(AuthState)) (unsubscribe func()) {
	return a.subs.add(fn)
}

func (a *Auth) update(mutate func(*AuthState)) {
	a.mu.Lock()
	mutate(&a.state)
	snap := a.state.clone()
	seq := a.subs.stamp()
	a.mu.Unlock()
	a.subs.notify(seq, snap)
}

// SetSessionToken stores token and attaches it to subsequent API requests.
func (a *Auth) SetSessionToken(token string) {
	a.update(func(s *AuthState) { s.SessionToken = token })
	a.api.SetSessionToken(token)
}

// Restore replaces the state with a previously persisted snapshot and
// re-attaches its token. It does not validate the session; call LoadCustomer.
func (a *Auth) Restore(s AuthState) {
	s = s.clone()
	a.update(func(st *AuthState) { *st = s })
	a.api.SetSessionToken(s.SessionToken)
}

// Login signs in and loads the customer profile.
func (a *Auth) Login(ctx context.Context, email, password string) ActionResult {
	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.log.Error("login error", zap.Error(err))
		return ActionResult{Message: NetworkErrorMessage}
	}
	if !res.Success || res.Data.Token == "" {
		msg := res.Message
		if msg == "" {
			msg = "Login failed"
		}
		return ActionResult{Message: msg}
	}

	a.SetSessionToken(res.Data.Token)
	_ = a.LoadCustomer(ctx)
	a.update(func(s *AuthState) { s.IsAuthenticated = true })
	return ActionResult{Success: true}
}

// Register creates an account without signing in.
func (a *Auth) Register(ctx context.Context, r models.RegisterRequest) RegisterResult {
	res, err := a.api.Register(ctx, r)
	if err != nil {
		a.log.Error("registration error", zap.Error(err))
		return RegisterResult{Message: NetworkErrorMessage}
	}
	if res.Success {
		return RegisterResult{Success: true, Message: res.Message}
	}
	return RegisterResult{Message: res.Message, Errors: res.Errors}
}

// LoadCustomer fetches the profile for the current token. Any failure signs
// the store out by clearing the customer and the authenticated flag; this is
// the only path that invalidates a session.
func (a *Auth) LoadCustomer(ctx context.Context) error {
	res, err := a.api.Account(ctx)
	if err == nil && !res.Success {
		err = ErrProfileUnavailable
	}
	if err != nil {
		a.log.Error("load customer error", zap.Error(err))
		a.update(func(s *AuthState) {
			s.Customer = nil
			s.IsAuthenticated = false
		})
		return err
	}

	customer := res.Data
	a.update(func(s *AuthState) {
		s.Customer = &customer
		s.IsAuthenticated = true
	})
	return nil
}

// Logout ends the server session on a best-effort basis and always clears
// local state, even when the backend call fails.
func (a *Auth) Logout(ctx context.Context) {
	if _, err := a.api.Logout(ctx); err != nil {
		a.log.Warn("logout error", zap.Error(err))
	}
	a.api.SetSessionToken("")
	a.update(func(s *AuthState) { *s = AuthState{} })
}
