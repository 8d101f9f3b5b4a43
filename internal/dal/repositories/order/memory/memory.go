package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/corray333/swiftserve/internal/service/models/errs"
	"github.com/corray333/swiftserve/internal/service/models/order"
)

// OrderRepository keeps orders in process memory, in insertion order.
type OrderRepository struct {
	mu     sync.RWMutex
	orders []order.Order
	index  map[string]int
}

// NewOrderRepository creates an empty in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		index: make(map[string]int),
	}
}

// Create stores a new order.
func (r *OrderRepository) Create(_ context.Context, o order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[o.ID]; ok {
		return fmt.Errorf("order %s already exists", o.ID)
	}

	r.index[o.ID] = len(r.orders)
	r.orders = append(r.orders, o)

	return nil
}

// GetByID returns the order with the given id.
func (r *OrderRepository) GetByID(_ context.Context, id string) (order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return order.Order{}, fmt.Errorf("%w: order %s", errs.ErrNotFound, id)
	}

	return r.orders[i], nil
}

// UpdateStatus sets the status and optionally the cooking flag of an order.
func (r *OrderRepository) UpdateStatus(
	_ context.Context,
	id string,
	status order.Status,
	cookingTriggered *bool,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return fmt.Errorf("%w: order %s", errs.ErrNotFound, id)
	}

	r.orders[i].Status = status
	if cookingTriggered != nil {
		r.orders[i].CookingTriggered = *cookingTriggered
	}

	return nil
}

// ListAll returns a copy of all orders in insertion order.
func (r *OrderRepository) ListAll(_ context.Context) ([]order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]order.Order, len(r.orders))
	copy(result, r.orders)

	return result, nil
}
