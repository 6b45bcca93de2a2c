package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/atinyakov/storefront/internal/models"
	"github.com/atinyakov/storefront/internal/repository"
)

// WishlistRepository defines the persistence operations
// required by the wishlist service.
type WishlistRepository interface {
	Add(ctx context.Context, customerID, productID string)
	Remove(ctx context.Context, customerID, productID string)
	List(ctx context.Context, customerID string) []string
}

// OrderRepository defines the persistence operations
// required by the checkout service.
type OrderRepository interface {
	// Create stores an order and assigns its id.
	Create(ctx context.Context, rec repository.OrderRecord) repository.OrderRecord
	// ListByCustomer returns a customer's orders, newest first.
	ListByCustomer(ctx context.Context, customerID string) []models.Order
	// Get returns one of a customer's orders or repository.ErrNotFound.
	Get(ctx context.Context, customerID, id string) (models.OrderDetails, error)
}

// WishlistService manages customers' saved products.
type WishlistService struct {
	lists   WishlistRepository
	catalog CatalogRepository
}

// NewWishlistService constructs a WishlistService.
func NewWishlistService(lists WishlistRepository, catalog CatalogRepository) *WishlistService {
	return &WishlistService{lists: lists, catalog: catalog}
}

// Products returns customerID's saved products that still exist.
func (s *WishlistService) Products(ctx context.Context, customerID string) []models.Product {
	out := []models.Product{}
	for _, id := range s.lists.List(ctx, customerID) {
		if p, err := s.catalog.Product(ctx, id); err == nil {
			out = append(out, present(p))
		}
	}
	return out
}

// Add saves productID and returns its name.
func (s *WishlistService) Add(ctx context.Context, customerID, productID string) (string, error) {
	p, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return "", ErrNotFound
	}
	s.lists.Add(ctx, customerID, productID)
	return p.Name, nil
}

// Remove drops productID from the wishlist.
func (s *WishlistService) Remove(ctx context.Context, customerID, productID string) {
	s.lists.Remove(ctx, customerID, productID)
}

var paymentMethods = map[string]models.PaymentMethod{
	"cod":           {Code: "cod", Title: "Cash On Delivery", SortOrder: "1"},
	"bank_transfer": {Code: "bank_transfer", Title: "Bank Transfer", Terms: "Payment within 7 days", SortOrder: "2"},
}

var shippingMethods = map[string]models.ShippingMethod{
	"flat": {
		Title:     "Flat Rate",
		SortOrder: "1",
		Quote: map[string]models.ShippingQuote{
			"flat": {Code: "flat.flat", Title: "Flat Shipping Rate", Cost: 5, Text: formatMoney(5)},
		},
	},
	"free": {
		Title:     "Free Shipping",
		SortOrder: "2",
		Quote: map[string]models.ShippingQuote{
			"free": {Code: "free.free", Title: "Free Shipping", Cost: 0, Text: formatMoney(0)},
		},
	},
}

func shippingQuote(code string) (models.ShippingQuote, bool) {
	method, _, ok := strings.Cut(code, ".")
	if !ok {
		return models.ShippingQuote{}, false
	}
	for _, q := range shippingMethods[method].Quote {
		if q.Code == code {
			return q, true
		}
	}
	return models.ShippingQuote{}, false
}

// OrderRequest is a checkout submitted by a signed-in customer.
type OrderRequest struct {
	Session        string
	Customer       models.Customer
	PaymentMethod  string
	ShippingMethod string
	Comment        string
}

// CheckoutService turns carts into orders.
type CheckoutService struct {
	orders OrderRepository
	carts  *CartService
	now    func() time.Time
}

// NewCheckoutService constructs a CheckoutService.
func NewCheckoutService(orders OrderRepository, carts *CartService) *CheckoutService {
	return &CheckoutService{orders: orders, carts: carts, now: time.Now}
}

// PaymentMethods returns the available payment methods keyed by code.
func (s *CheckoutService) PaymentMethods(context.Context) map[string]models.PaymentMethod {
	return paymentMethods
}

// ShippingMethods returns the available shipping methods keyed by code.
func (s *CheckoutService) ShippingMethods(context.Context) map[string]models.ShippingMethod {
	return shippingMethods
}

// Create places an order from the session's cart and empties the cart.
func (s *CheckoutService) Create(ctx context.Context, r OrderRequest) (string, error) {
	errs := ValidationError{}
	if _, ok := paymentMethods[r.PaymentMethod]; !ok {
		errs["payment_method"] = "Warning: Payment method required!"
	}
	quote, ok := shippingQuote(r.ShippingMethod)
	if !ok {
		errs["shipping_method"] = "Warning: Shipping method required!"
	}
	if len(errs) > 0 {
		return "", errs
	}

	lines, subtotal := s.carts.lines(ctx, r.Session)
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}

	total := roundCents(subtotal + quote.Cost)
	date := s.now().Format(time.DateTime)

	details := models.OrderDetails{
		Order: models.Order{
			FirstName:     r.Customer.FirstName,
			LastName:      r.Customer.LastName,
			Status:        "Pending",
			DateAdded:     date,
			Total:         formatMoney(total),
			CurrencyCode:  "USD",
			CurrencyValue: "1.00000000",
		},
		Totals: []models.CartTotal{
			{Title: "Sub-Total", Text: formatMoney(subtotal), Value: subtotal},
			{Title: quote.Title, Text: quote.Text, Value: quote.Cost},
			{Title: models.TotalTitle, Text: formatMoney(total), Value: total},
		},
		Histories: []models.OrderHistory{
			{DateAdded: date, Status: "Pending", Comment: r.Comment},
		},
	}
	for i, l := range lines {
		line := cartLine(l)
		details.Products = append(details.Products, models.OrderProduct{
			OrderProductID: strconv.Itoa(i + 1),
			ProductID:      line.ProductID,
			Name:           line.Name,
			Model:          line.Model,
			Quantity:       line.Quantity,
			Price:          line.Price,
			Total:          line.Total,
			Option:         line.Option,
		})
	}

	rec := s.orders.Create(ctx, repository.OrderRecord{OrderDetails: details, CustomerID: r.Customer.ID})
	s.carts.Clear(ctx, r.Session)
	return rec.ID, nil
}

// Orders lists customerID's orders, newest first.
func (s *CheckoutService) Orders(ctx context.Context, customerID string) []models.Order {
	return s.orders.ListByCustomer(ctx, customerID)
}

// Order returns one of customerID's orders.
func (s *CheckoutService) Order(ctx context.Context, customerID, id string) (models.OrderDetails, error) {
	o, err := s.orders.Get(ctx, customerID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.OrderDetails{}, ErrNotFound
	}
	return o, err
}
