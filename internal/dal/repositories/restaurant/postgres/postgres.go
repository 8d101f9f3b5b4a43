package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/swiftserve/internal/dal/postgres"
	"github.com/corray333/swiftserve/internal/service/models/errs"
	"github.com/corray333/swiftserve/internal/service/models/restaurant"
	"github.com/jackc/pgx/v5"
)

var restaurantColumns = []string{"id", "name", "cuisine", "rating", "distance_km", "prep_time_minutes", "menu"}

// RestaurantRepository reads restaurants from PostgreSQL.
type RestaurantRepository struct {
	client *postgres.Client
}

// NewRestaurantRepository creates a new restaurant repository.
func NewRestaurantRepository(client *postgres.Client) *RestaurantRepository {
	return &RestaurantRepository{
		client: client,
	}
}

func scanRestaurant(row pgx.Row) (restaurant.Restaurant, error) {
	var (
		r    restaurant.Restaurant
		menu []byte
	)
	if err := row.Scan(&r.ID, &r.Name, &r.Cuisine, &r.Rating, &r.Distance, &r.PrepTime, &menu); err != nil {
		return restaurant.Restaurant{}, err
	}
	if len(menu) > 0 {
		if err := json.Unmarshal(menu, &r.Menu); err != nil {
			return restaurant.Restaurant{}, fmt.Errorf("failed to decode menu of restaurant %s: %w", r.ID, err)
		}
	}

	return r, nil
}

// GetByID returns the restaurant with the given id.
func (r *RestaurantRepository) GetByID(ctx context.Context, id string) (restaurant.Restaurant, error) {
	query, args, err := sq.Select(restaurantColumns...).
		From("restaurants").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("failed to build select query: %w", err)
	}

	rest, err := scanRestaurant(r.client.Pool().QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return restaurant.Restaurant{}, fmt.Errorf("%w: restaurant %s", errs.ErrNotFound, id)
	}
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("failed to query restaurant: %w", err)
	}

	return rest, nil
}

// List returns all restaurants ordered by id.
func (r *RestaurantRepository) List(ctx context.Context) ([]restaurant.Restaurant, error) {
	query, args, err := sq.Select(restaurantColumns...).
		From("restaurants").
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	var result []restaurant.Restaurant
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		result = append(result, rest)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
