package iorderrepo

import (
	"context"

	"github.com/corray333/swiftserve/internal/service/models/order"
)

// IOrderRepository is the order record store.
type IOrderRepository interface {
	// Create stores a new order. Creating an order with an existing id fails.
	Create(ctx context.Context, o order.Order) error

	// GetByID returns the order or an error matching errs.ErrNotFound.
	GetByID(ctx context.Context, id string) (order.Order, error)

	// UpdateStatus sets the status and, when cookingTriggered is not nil, the cooking flag.
	// Timing snapshots are never touched.
	UpdateStatus(ctx context.Context, id string, status order.Status, cookingTriggered *bool) error

	// ListAll returns all orders in insertion order.
	ListAll(ctx context.Context) ([]order.Order, error)
}
