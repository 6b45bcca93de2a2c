package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/atinyakov/storefront/internal/middleware"
	"github.com/atinyakov/storefront/internal/models"
	"github.com/atinyakov/storefront/internal/service"
)

// CartService defines the cart operations required by the HTTP handlers.
type CartService interface {
	Cart(ctx context.Context, session string) models.Cart
	Add(ctx context.Context, session, productID string, quantity int, options map[string]string) (string, error)
	Update(ctx context.Context, session string, quantities map[string]int) error
	Remove(ctx context.Context, session, cartID string) error
}

// CartHandler serves the session cart. Writes answer with
// {"success": "<message>"} or {"error": "<message>"}; the new cart is
// fetched separately.
type CartHandler struct {
	Carts CartService
}

// Cart handles GET /cart.
func (h *CartHandler) Cart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Carts.Cart(r.Context(), middleware.GetSessionID(r.Context())))
}

// Add handles POST /cart_add with product_id, quantity and option[<id>]
// form fields.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		rejected(w, "invalid request")
		return
	}
	qty, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("quantity")))
	if err != nil {
		qty = 1
	}

	name, err := h.Carts.Add(r.Context(), middleware.GetSessionID(r.Context()),
		r.PostForm.Get("product_id"), qty, bracketed(r, "option"))
	if v, isValidation := validation(err); isValidation {
		writeJSON(w, http.StatusOK, map[string]any{"error": summary(v), "errors": v})
		return
	}
	switch {
	case errors.Is(err, service.ErrNotFound):
		rejected(w, "Product not found!")
		return
	case err != nil:
		serverError(w)
		return
	}
	changed(w, "Success: You have added "+name+" to your shopping cart!")
}

// Update handles POST /cart_update with quantity[<cart_id>] form fields.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		rejected(w, "invalid request")
		return
	}
	quantities := map[string]int{}
	for id, raw := range bracketed(r, "quantity") {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			rejected(w, "Invalid quantity for "+id)
			return
		}
		quantities[id] = n
	}
	if len(quantities) == 0 {
		rejected(w, "No quantities given")
		return
	}

	if err := h.Carts.Update(r.Context(), middleware.GetSessionID(r.Context()), quantities); err != nil {
		serverError(w)
		return
	}
	changed(w, "Success: You have modified your shopping cart!")
}

// Remove handles POST /cart_remove with the key form field holding a cart id.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		rejected(w, "invalid request")
		return
	}
	err := h.Carts.Remove(r.Context(), middleware.GetSessionID(r.Context()), r.PostForm.Get("key"))
	switch {
	case errors.Is(err, service.ErrNotFound):
		rejected(w, "Item not found in cart")
		return
	case err != nil:
		serverError(w)
		return
	}
	changed(w, "Success: You have removed an item from your shopping cart!")
}
