package service

import (
	"context"

	"ninedelivery/storefront-svc/internal/cart"
	"ninedelivery/storefront-svc/internal/domain"
	"ninedelivery/storefront-svc/internal/kv"
	"ninedelivery/storefront-svc/internal/order"
	"ninedelivery/storefront-svc/internal/storage"
)

type CatalogRepository interface {
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error)
	UpsertRestaurant(ctx context.Context, rest *domain.Restaurant) error
	DeleteRestaurant(ctx context.Context, id string) (int64, error)
	UpsertMenuItem(ctx context.Context, restaurantID string, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, restaurantID, itemID string) (int64, error)
	UpdateRestaurantImage(ctx context.Context, id, imageURL string) error
	UpdateMenuItemImage(ctx context.Context, restaurantID, itemID, imageURL string) error
}

type CartStorage interface {
	Read(ctx context.Context, key string) (any, bool)
	Write(ctx context.Context, key string, value any)
	Remove(ctx context.Context, key string)
}

type CheckoutPublisher interface {
	PublishCheckout(ctx context.Context, event domain.CheckoutEvent) error
}

type QRGenerator interface {
	Generate(content string) ([]byte, error)
}

type CatalogServiceInterface interface {
	List(ctx context.Context) ([]domain.Restaurant, error)
	Get(ctx context.Context, id string) (*domain.Restaurant, error)
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	DeleteRestaurant(ctx context.Context, id string) error
	CreateMenuItem(ctx context.Context, restaurantID string, item *domain.MenuItem) error
	UpdateMenuItem(ctx context.Context, restaurantID string, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, restaurantID, itemID string) error
	SetRestaurantImage(ctx context.Context, id, imageURL string) error
	SetMenuItemImage(ctx context.Context, restaurantID, itemID, imageURL string) error
}

type CartServiceInterface interface {
	Get(ctx context.Context, session string) *cart.State
	Dispatch(ctx context.Context, session string, action cart.Action) (*cart.State, cart.AddResult, error)
	AddMenuItem(ctx context.Context, session string, req AddItemRequest) (*cart.State, cart.AddResult, error)
	Clear(ctx context.Context, session string) *cart.State
}

type CheckoutServiceInterface interface {
	Prepare(ctx context.Context, session string, draft order.Draft) (*Checkout, error)
	QRCode(ctx context.Context, session string, draft order.Draft) ([]byte, error)
}

var (
	_ CatalogRepository = (*storage.PostgresRepository)(nil)
	_ CatalogRepository = (*storage.LocalCatalog)(nil)
	_ CartStorage       = (*kv.Storage)(nil)
	_ CheckoutPublisher = (*storage.KafkaPublisher)(nil)
)
