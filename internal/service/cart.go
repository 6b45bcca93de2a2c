package service

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/atinyakov/storefront/internal/models"
	"github.com/atinyakov/storefront/internal/repository"
)

// CartRepository defines the persistence operations
// required by the cart service.
type CartRepository interface {
	// Items returns the lines of a session's cart.
	Items(ctx context.Context, session string) []repository.CartItem
	// Add stores a line, merging with an identical one.
	Add(ctx context.Context, session string, item repository.CartItem) repository.CartItem
	// SetQuantity changes a line's quantity; below 1 removes it.
	SetQuantity(ctx context.Context, session, cartID string, quantity int) error
	// Remove deletes a line.
	Remove(ctx context.Context, session, cartID string) error
	// Clear empties a session's cart.
	Clear(ctx context.Context, session string)
}

// CartService prices session carts against the catalog.
type CartService struct {
	carts   CartRepository
	catalog CatalogRepository
}

// NewCartService constructs a CartService using the provided repositories.
func NewCartService(carts CartRepository, catalog CatalogRepository) *CartService {
	return &CartService{carts: carts, catalog: catalog}
}

// pricedLine is a cart line joined with its product.
type pricedLine struct {
	item    repository.CartItem
	product repository.ProductRecord
	total   float64
}

func (s *CartService) lines(ctx context.Context, session string) ([]pricedLine, float64) {
	var (
		out      []pricedLine
		subtotal float64
	)
	for _, it := range s.carts.Items(ctx, session) {
		p, err := s.catalog.Product(ctx, it.ProductID)
		if err != nil {
			continue
		}
		total := roundCents(p.UnitPrice() * float64(it.Quantity))
		subtotal += total
		out = append(out, pricedLine{item: it, product: p, total: total})
	}
	return out, roundCents(subtotal)
}

// optionsOf resolves chosen option values to display name/value pairs,
// ordered by product option id.
func optionsOf(p repository.ProductRecord, chosen map[string]string) []models.CartLineOption {
	ids := make([]string, 0, len(chosen))
	for id := range chosen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := []models.CartLineOption{}
	for _, id := range ids {
		for _, o := range p.Options {
			if o.ProductOptionID != id {
				continue
			}
			value := chosen[id]
			for _, v := range o.Values {
				if v.ProductOptionValueID == value {
					value = v.Name
				}
			}
			out = append(out, models.CartLineOption{Name: o.Name, Value: value})
		}
	}
	return out
}

func cartLine(l pricedLine) models.CartLine {
	return models.CartLine{
		CartID:    l.item.CartID,
		ProductID: l.product.ID,
		Name:      l.product.Name,
		Model:     l.product.Model,
		Option:    optionsOf(l.product, l.item.Options),
		Quantity:  strconv.Itoa(l.item.Quantity),
		Stock:     l.item.Quantity <= l.product.Quantity,
		Shipping:  "1",
		Price:     formatMoney(l.product.UnitPrice()),
		Total:     formatMoney(l.total),
		Image:     l.product.Thumb,
		Href:      l.product.Href,
	}
}

// Cart returns session's cart with Sub-Total and Total rows and the typed
// grand total.
func (s *CartService) Cart(ctx context.Context, session string) models.Cart {
	lines, subtotal := s.lines(ctx, session)

	cart := models.Cart{
		Products: make([]models.CartLine, 0, len(lines)),
		Totals: []models.CartTotal{
			{Title: "Sub-Total", Text: formatMoney(subtotal), Value: subtotal},
			{Title: models.TotalTitle, Text: formatMoney(subtotal), Value: subtotal},
		},
		GrandTotal: &subtotal,
	}
	for _, l := range lines {
		cart.Products = append(cart.Products, cartLine(l))
	}
	return cart
}

// Add puts quantity units of productID in session's cart and returns the
// product name. Missing required options are reported as a ValidationError
// keyed "option[<id>]".
func (s *CartService) Add(ctx context.Context, session, productID string, quantity int, options map[string]string) (string, error) {
	p, err := s.catalog.Product(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	errs := ValidationError{}
	for _, o := range p.Options {
		if o.Required && options[o.ProductOptionID] == "" {
			errs["option["+o.ProductOptionID+"]"] = o.Name + " required!"
		}
	}
	if len(errs) > 0 {
		return "", errs
	}

	if quantity < 1 {
		quantity = 1
	}
	chosen := make(map[string]string, len(options))
	for k, v := range options {
		if v != "" {
			chosen[k] = v
		}
	}
	s.carts.Add(ctx, session, repository.CartItem{ProductID: p.ID, Quantity: quantity, Options: chosen})
	return p.Name, nil
}

// Update sets line quantities keyed by cart id. Unknown cart ids are ignored.
func (s *CartService) Update(ctx context.Context, session string, quantities map[string]int) error {
	for id, q := range quantities {
		if err := s.carts.SetQuantity(ctx, session, id, q); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}
	return nil
}

// Remove deletes line cartID.
func (s *CartService) Remove(ctx context.Context, session, cartID string) error {
	err := s.carts.Remove(ctx, session, cartID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// Clear empties session's cart.
func (s *CartService) Clear(ctx context.Context, session string) {
	s.carts.Clear(ctx, session)
}
