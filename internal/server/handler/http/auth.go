package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/atinyakov/storefront/internal/middleware"
	"github.com/atinyakov/storefront/internal/models"
	"github.com/atinyakov/storefront/internal/service"
)

// AccountService defines the account operations required by the HTTP
// handlers.
type AccountService interface {
	// Register creates an account; invalid input is a service.ValidationError.
	Register(ctx context.Context, r models.RegisterRequest) (models.Customer, error)
	// Login signs the customer in on session or returns service.ErrInvalidCredentials.
	Login(ctx context.Context, session, email, password string) (models.Customer, error)
	// Logout signs session's customer out.
	Logout(ctx context.Context, session string)
	// Account returns the signed-in customer or service.ErrUnauthorized.
	Account(ctx context.Context, session string) (models.Customer, error)
}

// AuthHandler handles registration, login, logout and the profile endpoint.
type AuthHandler struct {
	// Accounts performs the underlying account operations.
	Accounts AccountService
}

// Register handles POST /register with firstname, lastname, email,
// telephone and password form fields. It does not sign the customer in.
// Validation failures are answered with 200, success false and field-keyed
// messages under "errors".
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		fail(w, http.StatusBadRequest, "invalid request")
		return
	}

	_, err := h.Accounts.Register(r.Context(), models.RegisterRequest{
		FirstName: r.PostForm.Get("firstname"),
		LastName:  r.PostForm.Get("lastname"),
		Email:     r.PostForm.Get("email"),
		Telephone: r.PostForm.Get("telephone"),
		Password:  r.PostForm.Get("password"),
	})
	if v, isValidation := validation(err); isValidation {
		writeJSON(w, http.StatusOK, envelope{Success: false, Error: summary(v), Errors: v})
		return
	}
	if err != nil {
		serverError(w)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Your Account Has Been Created!"})
}

// Login handles POST /login with email and password form fields.
// The session the request arrived on becomes the signed-in session and its
// id is returned as the token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		fail(w, http.StatusBadRequest, "invalid request")
		return
	}
	session := middleware.GetSessionID(r.Context())

	_, err := h.Accounts.Login(r.Context(), session, r.PostForm.Get("email"), r.PostForm.Get("password"))
	if errors.Is(err, service.ErrInvalidCredentials) {
		fail(w, http.StatusOK, "Warning: No match for E-Mail Address and/or Password.")
		return
	}
	if err != nil {
		serverError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": session})
}

// Logout handles GET /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Accounts.Logout(r.Context(), middleware.GetSessionID(r.Context()))
	writeJSON(w, http.StatusOK, envelope{Success: true})
}

// Account handles GET /account. A guest session is answered with 200 and
// success false.
func (h *AuthHandler) Account(w http.ResponseWriter, r *http.Request) {
	c, err := h.Accounts.Account(r.Context(), middleware.GetSessionID(r.Context()))
	if errors.Is(err, service.ErrUnauthorized) {
		fail(w, http.StatusOK, msgLogin)
		return
	}
	if err != nil {
		serverError(w)
		return
	}
	ok(w, c)
}
