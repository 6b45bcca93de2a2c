package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/atinyakov/storefront/internal/middleware"
	"github.com/atinyakov/storefront/internal/models"
	"github.com/atinyakov/storefront/internal/service"
)

// WishlistService defines the wishlist operations required by the HTTP
// handlers.
type WishlistService interface {
	Products(ctx context.Context, customerID string) []models.Product
	Add(ctx context.Context, customerID, productID string) (string, error)
	Remove(ctx context.Context, customerID, productID string)
}

// CheckoutService defines the checkout and order history operations
// required by the HTTP handlers.
type CheckoutService interface {
	PaymentMethods(ctx context.Context) map[string]models.PaymentMethod
	ShippingMethods(ctx context.Context) map[string]models.ShippingMethod
	Create(ctx context.Context, r service.OrderRequest) (string, error)
	Orders(ctx context.Context, customerID string) []models.Order
	Order(ctx context.Context, customerID, id string) (models.OrderDetails, error)
}

// OrderHandler serves the wishlist, checkout and order history. Everything
// except the method listings requires a signed-in customer.
type OrderHandler struct {
	Accounts  AccountService
	Wishlists WishlistService
	Checkout  CheckoutService
}

// customer resolves the signed-in customer or answers 401.
func (h *OrderHandler) customer(w http.ResponseWriter, r *http.Request) (models.Customer, bool) {
	c, err := h.Accounts.Account(r.Context(), middleware.GetSessionID(r.Context()))
	if errors.Is(err, service.ErrUnauthorized) {
		fail(w, http.StatusUnauthorized, msgLogin)
		return models.Customer{}, false
	}
	if err != nil {
		serverError(w)
		return models.Customer{}, false
	}
	return c, true
}

// Wishlist handles GET /wishlist.
func (h *OrderHandler) Wishlist(w http.ResponseWriter, r *http.Request) {
	c, signedIn := h.customer(w, r)
	if !signedIn {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": h.Wishlists.Products(r.Context(), c.ID)})
}

// WishlistAdd handles POST /wishlist_add with a product_id form field.
func (h *OrderHandler) WishlistAdd(w http.ResponseWriter, r *http.Request) {
	c, signedIn := h.customer(w, r)
	if !signedIn {
		return
	}
	name, err := h.Wishlists.Add(r.Context(), c.ID, r.PostFormValue("product_id"))
	if err != nil {
		rejected(w, "Product not found!")
		return
	}
	changed(w, "Success: You have added "+name+" to your wish list!")
}

// WishlistRemove handles POST /wishlist_remove with a product_id form field.
func (h *OrderHandler) WishlistRemove(w http.ResponseWriter, r *http.Request) {
	c, signedIn := h.customer(w, r)
	if !signedIn {
		return
	}
	h.Wishlists.Remove(r.Context(), c.ID, r.PostFormValue("product_id"))
	changed(w, "Success: You have modified your wish list!")
}

// Orders handles GET /orders.
func (h *OrderHandler) Orders(w http.ResponseWriter, r *http.Request) {
	c, signedIn := h.customer(w, r)
	if !signedIn {
		return
	}
	ok(w, h.Checkout.Orders(r.Context(), c.ID))
}

// OrderInfo handles GET /order_info?order_id=.
func (h *OrderHandler) OrderInfo(w http.ResponseWriter, r *http.Request) {
	c, signedIn := h.customer(w, r)
	if !signedIn {
		return
	}
	o, err := h.Checkout.Order(r.Context(), c.ID, r.URL.Query().Get("order_id"))
	if errors.Is(err, service.ErrNotFound) {
		fail(w, http.StatusOK, "Order not found!")
		return
	}
	if err != nil {
		serverError(w)
		return
	}
	ok(w, o)
}

// PaymentMethods handles GET /payment_methods.
func (h *OrderHandler) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"payment_methods": h.Checkout.PaymentMethods(r.Context())})
}

// ShippingMethods handles GET /shipping_methods.
func (h *OrderHandler) ShippingMethods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"shipping_methods": h.Checkout.ShippingMethods(r.Context())})
}

// OrderCreate handles POST /order_create with payment_method,
// shipping_method and comment form fields. The cart is emptied on success
// and the new order id returned as a number under "order_id".
func (h *OrderHandler) OrderCreate(w http.ResponseWriter, r *http.Request) {
	c, signedIn := h.customer(w, r)
	if !signedIn {
		return
	}
	if err := r.ParseForm(); err != nil {
		rejected(w, "invalid request")
		return
	}

	id, err := h.Checkout.Create(r.Context(), service.OrderRequest{
		Session:        middleware.GetSessionID(r.Context()),
		Customer:       c,
		PaymentMethod:  r.PostForm.Get("payment_method"),
		ShippingMethod: r.PostForm.Get("shipping_method"),
		Comment:        r.PostForm.Get("comment"),
	})
	if v, isValidation := validation(err); isValidation {
		writeJSON(w, http.StatusOK, map[string]any{"error": summary(v), "errors": v})
		return
	}
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		rejected(w, "Your shopping cart is empty!")
		return
	case err != nil:
		serverError(w)
		return
	}

	n, err := strconv.Atoi(id)
	if err != nil {
		serverError(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": "Your order has been placed!", "order_id": n})
}
