package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"ninedelivery/storefront-svc/internal/domain"

	"github.com/lib/pq"
)

const restaurantColumns = `id, name, phone, address, hours, categories, COALESCE(image, ''),
	delivery_cost, COALESCE(estimated_time, ''), COALESCE(only_takeaway, false)`

const menuItemColumns = `id, restaurant_id, name, price, COALESCE(description, ''), available,
	COALESCE(category, ''), COALESCE(image, ''), extras`

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRestaurant(row rowScanner) (domain.Restaurant, error) {
	var rest domain.Restaurant
	var deliveryCost sql.NullFloat64
	if err := row.Scan(&rest.ID, &rest.Name, &rest.Phone, &rest.Address, &rest.Hours,
		pq.Array(&rest.Categories), &rest.Image, &deliveryCost, &rest.EstimatedTime, &rest.OnlyTakeaway); err != nil {
		return domain.Restaurant{}, err
	}
	if deliveryCost.Valid {
		cost := deliveryCost.Float64
		rest.DeliveryCost = &cost
	}
	if rest.Categories == nil {
		rest.Categories = []string{}
	}
	rest.Menu = []domain.MenuItem{}
	return rest, nil
}

func scanMenuItem(row rowScanner) (string, domain.MenuItem, error) {
	var item domain.MenuItem
	var restaurantID string
	var extras []byte
	if err := row.Scan(&item.ID, &restaurantID, &item.Name, &item.Price, &item.Description,
		&item.Available, &item.Category, &item.Image, &extras); err != nil {
		return "", domain.MenuItem{}, err
	}
	if len(extras) > 0 {
		if err := json.Unmarshal(extras, &item.Extras); err != nil {
			return "", domain.MenuItem{}, fmt.Errorf("menu item %s extras: %w", item.ID, err)
		}
	}
	return restaurantID, item, nil
}

func (r *PostgresRepository) menuItems(ctx context.Context, query string, args ...any) (map[string][]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byRestaurant := make(map[string][]domain.MenuItem)
	for rows.Next() {
		restaurantID, item, err := scanMenuItem(rows)
		if err != nil {
			continue
		}
		byRestaurant[restaurantID] = append(byRestaurant[restaurantID], item)
	}
	return byRestaurant, rows.Err()
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+restaurantColumns+` FROM restaurants ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			continue
		}
		restaurants = append(restaurants, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}

	menus, err := r.menuItems(ctx, `SELECT `+menuItemColumns+` FROM menu_items ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	for i := range restaurants {
		if items, ok := menus[restaurants[i].ID]; ok {
			restaurants[i].Menu = items
		}
	}
	return restaurants, nil
}

// GetRestaurant returns nil without error when no restaurant has the id.
func (r *PostgresRepository) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	rest, err := scanRestaurant(r.DB.QueryRowContext(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get restaurant %s: %w", id, err)
	}

	menus, err := r.menuItems(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE restaurant_id = $1 ORDER BY name`, id)
	if err != nil {
		return nil, fmt.Errorf("get menu of %s: %w", id, err)
	}
	if items, ok := menus[id]; ok {
		rest.Menu = items
	}
	return &rest, nil
}

func nullableCost(cost *float64) any {
	if cost == nil {
		return nil
	}
	return *cost
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// UpsertRestaurant updates the row in place and inserts it only when missing.
// The menu is not touched.
func (r *PostgresRepository) UpsertRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE restaurants
		SET name=$1, phone=$2, address=$3, hours=$4, categories=$5, image=$6,
			delivery_cost=$7, estimated_time=$8, only_takeaway=$9
		WHERE id=$10`,
		rest.Name, rest.Phone, rest.Address, rest.Hours, pq.Array(rest.Categories), rest.Image,
		nullableCost(rest.DeliveryCost), nullableString(rest.EstimatedTime), rest.OnlyTakeaway, rest.ID)
	if err != nil {
		return fmt.Errorf("update restaurant %s: %w", rest.ID, err)
	}
	if n, err := result.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	if _, err := r.DB.ExecContext(ctx, `
		INSERT INTO restaurants (id, name, phone, address, hours, categories, image,
			delivery_cost, estimated_time, only_takeaway)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rest.ID, rest.Name, rest.Phone, rest.Address, rest.Hours, pq.Array(rest.Categories), rest.Image,
		nullableCost(rest.DeliveryCost), nullableString(rest.EstimatedTime), rest.OnlyTakeaway); err != nil {
		return fmt.Errorf("insert restaurant %s: %w", rest.ID, err)
	}
	return nil
}

// DeleteRestaurant removes the restaurant and its menu, returning how many
// restaurants were deleted.
func (r *PostgresRepository) DeleteRestaurant(ctx context.Context, id string) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM menu_items WHERE restaurant_id=$1", id); err != nil {
		return 0, fmt.Errorf("delete menu of %s: %w", id, err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM restaurants WHERE id=$1", id)
	if err != nil {
		return 0, fmt.Errorf("delete restaurant %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) UpsertMenuItem(ctx context.Context, restaurantID string, item *domain.MenuItem) error {
	extras := item.Extras
	if extras == nil {
		extras = []domain.MenuExtra{}
	}
	payload, err := json.Marshal(extras)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO menu_items (id, restaurant_id, name, price, description, available, category, image, extras)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE
		SET restaurant_id=EXCLUDED.restaurant_id, name=EXCLUDED.name, price=EXCLUDED.price,
			description=EXCLUDED.description, available=EXCLUDED.available,
			category=EXCLUDED.category, image=EXCLUDED.image, extras=EXCLUDED.extras`,
		item.ID, restaurantID, item.Name, item.Price, item.Description, item.Available,
		item.Category, nullableString(item.Image), payload)
	if err != nil {
		return fmt.Errorf("upsert menu item %s: %w", item.ID, err)
	}
	return nil
}

func (r *PostgresRepository) DeleteMenuItem(ctx context.Context, restaurantID, itemID string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM menu_items WHERE id=$1 AND restaurant_id=$2", itemID, restaurantID)
	if err != nil {
		return 0, fmt.Errorf("delete menu item %s: %w", itemID, err)
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) UpdateRestaurantImage(ctx context.Context, id, imageURL string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE restaurants SET image=$1 WHERE id=$2", imageURL, id)
	return err
}

func (r *PostgresRepository) UpdateMenuItemImage(ctx context.Context, restaurantID, itemID, imageURL string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE menu_items SET image=$1 WHERE id=$2 AND restaurant_id=$3",
		imageURL, itemID, restaurantID)
	return err
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			hours TEXT NOT NULL DEFAULT '',
			categories TEXT[] NOT NULL DEFAULT '{}',
			image TEXT
		)`,
		"ALTER TABLE restaurants ADD COLUMN IF NOT EXISTS delivery_cost NUMERIC",
		"ALTER TABLE restaurants ADD COLUMN IF NOT EXISTS estimated_time TEXT",
		"ALTER TABLE restaurants ADD COLUMN IF NOT EXISTS only_takeaway BOOLEAN DEFAULT false",
		`CREATE TABLE IF NOT EXISTS menu_items (
			id TEXT PRIMARY KEY,
			restaurant_id TEXT NOT NULL REFERENCES restaurants(id),
			name TEXT NOT NULL,
			price NUMERIC NOT NULL,
			description TEXT,
			available BOOLEAN NOT NULL DEFAULT true,
			category TEXT,
			image TEXT,
			extras JSONB
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}
