package mocks

import (
	"context"

	"ninedelivery/storefront-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// CatalogRepository is a mock type for service.CatalogRepository.
type CatalogRepository struct {
	mock.Mock
}

func (_m *CatalogRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	ret := _m.Called(ctx)
	var r0 []domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogRepository) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogRepository) UpsertRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	ret := _m.Called(ctx, rest)
	return ret.Error(0)
}

func (_m *CatalogRepository) DeleteRestaurant(ctx context.Context, id string) (int64, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *CatalogRepository) UpsertMenuItem(ctx context.Context, restaurantID string, item *domain.MenuItem) error {
	ret := _m.Called(ctx, restaurantID, item)
	return ret.Error(0)
}

func (_m *CatalogRepository) DeleteMenuItem(ctx context.Context, restaurantID, itemID string) (int64, error) {
	ret := _m.Called(ctx, restaurantID, itemID)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *CatalogRepository) UpdateRestaurantImage(ctx context.Context, id, imageURL string) error {
	ret := _m.Called(ctx, id, imageURL)
	return ret.Error(0)
}

func (_m *CatalogRepository) UpdateMenuItemImage(ctx context.Context, restaurantID, itemID, imageURL string) error {
	ret := _m.Called(ctx, restaurantID, itemID, imageURL)
	return ret.Error(0)
}

// NewCatalogRepository creates a new CatalogRepository and registers a
// cleanup that asserts its expectations.
func NewCatalogRepository(t testingT) *CatalogRepository {
	m := &CatalogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// CartStorage is a mock type for service.CartStorage.
type CartStorage struct {
	mock.Mock
}

func (_m *CartStorage) Read(ctx context.Context, key string) (any, bool) {
	ret := _m.Called(ctx, key)
	return ret.Get(0), ret.Bool(1)
}

func (_m *CartStorage) Write(ctx context.Context, key string, value any) {
	_m.Called(ctx, key, value)
}

func (_m *CartStorage) Remove(ctx context.Context, key string) {
	_m.Called(ctx, key)
}

func NewCartStorage(t testingT) *CartStorage {
	m := &CartStorage{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// CheckoutPublisher is a mock type for service.CheckoutPublisher.
type CheckoutPublisher struct {
	mock.Mock
}

func (_m *CheckoutPublisher) PublishCheckout(ctx context.Context, event domain.CheckoutEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

func NewCheckoutPublisher(t testingT) *CheckoutPublisher {
	m := &CheckoutPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// QRGenerator is a mock type for service.QRGenerator.
type QRGenerator struct {
	mock.Mock
}

func (_m *QRGenerator) Generate(content string) ([]byte, error) {
	ret := _m.Called(content)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
