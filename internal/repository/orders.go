package repository

import (
	"context"
	"strconv"
	"sync"

	"github.com/atinyakov/storefront/internal/models"
)

// OrderRecord is a placed order owned by a customer.
type OrderRecord struct {
	models.OrderDetails
	CustomerID string
}

// OrderRepository stores orders with sequential ids.
type OrderRepository struct {
	mu     sync.RWMutex
	orders []OrderRecord
}

// NewOrderRepository returns an empty repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create stores rec and returns it with its new order id and invoice number.
func (r *OrderRepository) Create(_ context.Context, rec OrderRecord) OrderRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.orders) + 1
	rec.ID = strconv.Itoa(n)
	rec.InvoiceNo = "INV-" + strconv.Itoa(1000+n)
	r.orders = append(r.orders, rec)
	return rec
}

// ListByCustomer returns customerID's orders, newest first.
func (r *OrderRepository) ListByCustomer(_ context.Context, customerID string) []models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Order{}
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].CustomerID == customerID {
			out = append(out, r.orders[i].Order)
		}
	}
	return out
}

// Get returns order id if it belongs to customerID.
func (r *OrderRepository) Get(_ context.Context, customerID, id string) (models.OrderDetails, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id && o.CustomerID == customerID {
			return o.OrderDetails, nil
		}
	}
	return models.OrderDetails{}, ErrNotFound
}
