package storage

import (
	"context"
	"testing"

	"ninedelivery/storefront-svc/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	restaurantCols = []string{"id", "name", "phone", "address", "hours", "categories", "image",
		"delivery_cost", "estimated_time", "only_takeaway"}
	menuItemCols = []string{"id", "restaurant_id", "name", "price", "description", "available",
		"category", "image", "extras"}
)

func setupRepository(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgresRepository_GetRestaurant(t *testing.T) {
	repo, mock := setupRepository(t)

	mock.ExpectQuery(`SELECT .+ FROM restaurants WHERE id = \$1`).
		WithArgs("rest1").
		WillReturnRows(sqlmock.NewRows(restaurantCols).
			AddRow("rest1", "Pizzería San Juan", "+54 9 351 234 5678", "Av. San Juan 1450",
				"11:30-15:00", "{Pizzas,Empanadas}", "", 500.0, "30-45 min", false))
	mock.ExpectQuery(`SELECT .+ FROM menu_items WHERE restaurant_id = \$1`).
		WithArgs("rest1").
		WillReturnRows(sqlmock.NewRows(menuItemCols).
			AddRow("p1", "rest1", "Muzzarella", 1200.0, "", true, "Pizzas", "",
				[]byte(`[{"id":"x1","name":"Doble queso","price":300}]`)))

	rest, err := repo.GetRestaurant(context.Background(), "rest1")
	require.NoError(t, err)
	require.NotNil(t, rest)
	assert.Equal(t, []string{"Pizzas", "Empanadas"}, rest.Categories)
	require.NotNil(t, rest.DeliveryCost)
	assert.Equal(t, 500.0, *rest.DeliveryCost)
	require.Len(t, rest.Menu, 1)
	assert.Equal(t, []domain.MenuExtra{{ID: "x1", Name: "Doble queso", Price: 300}}, rest.Menu[0].Extras)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetRestaurantMissing(t *testing.T) {
	repo, mock := setupRepository(t)

	mock.ExpectQuery(`SELECT .+ FROM restaurants WHERE id = \$1`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(restaurantCols))

	rest, err := repo.GetRestaurant(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, rest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListRestaurants(t *testing.T) {
	repo, mock := setupRepository(t)

	mock.ExpectQuery(`SELECT .+ FROM restaurants ORDER BY name`).
		WillReturnRows(sqlmock.NewRows(restaurantCols).
			AddRow("rest2", "Burger Norte", "", "", "19:00-23:59", "{}", "", nil, "", true).
			AddRow("rest1", "Pizzería San Juan", "", "", "", "{Pizzas}", "", nil, "", false))
	mock.ExpectQuery(`SELECT .+ FROM menu_items ORDER BY name`).
		WillReturnRows(sqlmock.NewRows(menuItemCols).
			AddRow("h1", "rest2", "Cheese", 1800.0, "", true, "Hamburguesas", "", nil))

	list, err := repo.ListRestaurants(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Nil(t, list[0].DeliveryCost)
	assert.True(t, list[0].OnlyTakeaway)
	assert.Len(t, list[0].Menu, 1)
	assert.Empty(t, list[1].Menu)
	assert.NotNil(t, list[1].Menu)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_UpsertRestaurantInsertsWhenMissing(t *testing.T) {
	repo, mock := setupRepository(t)
	rest := &domain.Restaurant{ID: "rest_1", Name: "Nuevo", Categories: []string{"Pizzas"}}

	mock.ExpectExec(`UPDATE restaurants`).
		WithArgs("Nuevo", "", "", "", sqlmock.AnyArg(), "", nil, nil, false, "rest_1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO restaurants`).
		WithArgs("rest_1", "Nuevo", "", "", "", sqlmock.AnyArg(), "", nil, nil, false).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, repo.UpsertRestaurant(context.Background(), rest))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_UpsertRestaurantUpdatesInPlace(t *testing.T) {
	repo, mock := setupRepository(t)
	rest := &domain.Restaurant{ID: "rest1", Name: "Pizzería San Juan"}

	mock.ExpectExec(`UPDATE restaurants`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpsertRestaurant(context.Background(), rest))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_DeleteRestaurant(t *testing.T) {
	repo, mock := setupRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM menu_items WHERE restaurant_id=\$1`).
		WithArgs("rest1").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`DELETE FROM restaurants WHERE id=\$1`).
		WithArgs("rest1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := repo.DeleteRestaurant(context.Background(), "rest1")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_UpsertMenuItem(t *testing.T) {
	repo, mock := setupRepository(t)
	item := &domain.MenuItem{ID: "p9", Name: "Napolitana", Price: 1500, Available: true, Category: "Pizzas"}

	mock.ExpectExec(`INSERT INTO menu_items .+ ON CONFLICT \(id\) DO UPDATE`).
		WithArgs("p9", "rest1", "Napolitana", 1500.0, "", true, "Pizzas", nil, []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpsertMenuItem(context.Background(), "rest1", item))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_DeleteMenuItem(t *testing.T) {
	repo, mock := setupRepository(t)

	mock.ExpectExec(`DELETE FROM menu_items WHERE id=\$1 AND restaurant_id=\$2`).
		WithArgs("p1", "rest1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.DeleteMenuItem(context.Background(), "rest1", "p1")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_EnsureSchema(t *testing.T) {
	repo, mock := setupRepository(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS restaurants`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`ALTER TABLE restaurants ADD COLUMN IF NOT EXISTS delivery_cost`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`ALTER TABLE restaurants ADD COLUMN IF NOT EXISTS estimated_time`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`ALTER TABLE restaurants ADD COLUMN IF NOT EXISTS only_takeaway`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS menu_items`).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
