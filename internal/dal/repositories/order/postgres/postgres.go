package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/swiftserve/internal/dal/postgres"
	"github.com/corray333/swiftserve/internal/service/models/errs"
	"github.com/corray333/swiftserve/internal/service/models/order"
	"github.com/jackc/pgx/v5"
)

var orderColumns = []string{
	"id",
	"restaurant_id",
	"restaurant_name",
	"user_name",
	"party_size",
	"meal_details",
	"user_eta_minutes",
	"prep_time_minutes",
	"booking_time",
	"meal_ready_minutes",
	"status",
	"cooking_triggered",
}

// OrderDal represents order data access layer model
type OrderDal struct {
	ID               string
	RestaurantID     string
	RestaurantName   string
	UserName         string
	PartySize        int
	MealDetails      string
	UserETAMinutes   int
	PrepTimeMinutes  int
	BookingTime      time.Time
	MealReadyMinutes int
	Status           string
	CookingTriggered bool
}

// ToModel converts OrderDal to service layer Order model
func (o *OrderDal) ToModel() (order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return order.Order{}, fmt.Errorf("order %s: %w", o.ID, err)
	}

	return order.Order{
		ID:                       o.ID,
		RestaurantID:             o.RestaurantID,
		RestaurantName:           o.RestaurantName,
		UserName:                 o.UserName,
		PartySize:                o.PartySize,
		MealDetails:              o.MealDetails,
		UserEstimatedArrivalTime: o.UserETAMinutes,
		PrepTime:                 o.PrepTimeMinutes,
		BookingTime:              o.BookingTime,
		EstimatedMealReadyTime:   o.MealReadyMinutes,
		Status:                   status,
		CookingTriggered:         o.CookingTriggered,
	}, nil
}

func (o *OrderDal) scanTargets() []any {
	return []any{
		&o.ID,
		&o.RestaurantID,
		&o.RestaurantName,
		&o.UserName,
		&o.PartySize,
		&o.MealDetails,
		&o.UserETAMinutes,
		&o.PrepTimeMinutes,
		&o.BookingTime,
		&o.MealReadyMinutes,
		&o.Status,
		&o.CookingTriggered,
	}
}

// OrderRepository implements the order record store for PostgreSQL.
type OrderRepository struct {
	client *postgres.Client
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(client *postgres.Client) *OrderRepository {
	return &OrderRepository{
		client: client,
	}
}

// Create inserts a new order.
func (r *OrderRepository) Create(ctx context.Context, o order.Order) error {
	query, args, err := sq.Insert("orders").
		Columns(orderColumns...).
		Values(
			o.ID,
			o.RestaurantID,
			o.RestaurantName,
			o.UserName,
			o.PartySize,
			o.MealDetails,
			o.UserEstimatedArrivalTime,
			o.PrepTime,
			o.BookingTime,
			o.EstimatedMealReadyTime,
			o.Status,
			o.CookingTriggered,
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.client.Pool().Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

// GetByID returns the order with the given id.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (order.Order, error) {
	query, args, err := sq.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal OrderDal
	err = r.client.Pool().QueryRow(ctx, query, args...).Scan(dal.scanTargets()...)
	if errors.Is(err, pgx.ErrNoRows) {
		return order.Order{}, fmt.Errorf("%w: order %s", errs.ErrNotFound, id)
	}
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to query order: %w", err)
	}

	return dal.ToModel()
}

// UpdateStatus sets the status and optionally the cooking flag of an order.
func (r *OrderRepository) UpdateStatus(
	ctx context.Context,
	id string,
	status order.Status,
	cookingTriggered *bool,
) error {
	builder := sq.Update("orders").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar)
	if cookingTriggered != nil {
		builder = builder.Set("cooking_triggered", *cookingTriggered)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.client.Pool().Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %s", errs.ErrNotFound, id)
	}

	return nil
}

// ListAll returns all orders in insertion order.
func (r *OrderRepository) ListAll(ctx context.Context) ([]order.Order, error) {
	query, args, err := sq.Select(orderColumns...).
		From("orders").
		OrderBy("seq ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		if err := rows.Scan(dal.scanTargets()...); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
