package mocks

import (
	"context"

	"ninedelivery/storefront-svc/internal/cart"
	"ninedelivery/storefront-svc/internal/domain"
	"ninedelivery/storefront-svc/internal/order"
	"ninedelivery/storefront-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

// CatalogServiceInterface is a mock type for service.CatalogServiceInterface.
type CatalogServiceInterface struct {
	mock.Mock
}

func (_m *CatalogServiceInterface) List(ctx context.Context) ([]domain.Restaurant, error) {
	ret := _m.Called(ctx)
	var r0 []domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogServiceInterface) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogServiceInterface) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	return _m.Called(ctx, rest).Error(0)
}

func (_m *CatalogServiceInterface) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	return _m.Called(ctx, rest).Error(0)
}

func (_m *CatalogServiceInterface) DeleteRestaurant(ctx context.Context, id string) error {
	return _m.Called(ctx, id).Error(0)
}

func (_m *CatalogServiceInterface) CreateMenuItem(ctx context.Context, restaurantID string, item *domain.MenuItem) error {
	return _m.Called(ctx, restaurantID, item).Error(0)
}

func (_m *CatalogServiceInterface) UpdateMenuItem(ctx context.Context, restaurantID string, item *domain.MenuItem) error {
	return _m.Called(ctx, restaurantID, item).Error(0)
}

func (_m *CatalogServiceInterface) DeleteMenuItem(ctx context.Context, restaurantID, itemID string) error {
	return _m.Called(ctx, restaurantID, itemID).Error(0)
}

func (_m *CatalogServiceInterface) SetRestaurantImage(ctx context.Context, id, imageURL string) error {
	return _m.Called(ctx, id, imageURL).Error(0)
}

func (_m *CatalogServiceInterface) SetMenuItemImage(ctx context.Context, restaurantID, itemID, imageURL string) error {
	return _m.Called(ctx, restaurantID, itemID, imageURL).Error(0)
}

func NewCatalogServiceInterface(t testingT) *CatalogServiceInterface {
	m := &CatalogServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// CartServiceInterface is a mock type for service.CartServiceInterface.
type CartServiceInterface struct {
	mock.Mock
}

func cartState(v any) *cart.State {
	if v == nil {
		return nil
	}
	return v.(*cart.State)
}

func (_m *CartServiceInterface) Get(ctx context.Context, session string) *cart.State {
	return cartState(_m.Called(ctx, session).Get(0))
}

func (_m *CartServiceInterface) Dispatch(ctx context.Context, session string, action cart.Action) (*cart.State, cart.AddResult, error) {
	ret := _m.Called(ctx, session, action)
	return cartState(ret.Get(0)), ret.Get(1).(cart.AddResult), ret.Error(2)
}

func (_m *CartServiceInterface) AddMenuItem(ctx context.Context, session string, req service.AddItemRequest) (*cart.State, cart.AddResult, error) {
	ret := _m.Called(ctx, session, req)
	return cartState(ret.Get(0)), ret.Get(1).(cart.AddResult), ret.Error(2)
}

func (_m *CartServiceInterface) Clear(ctx context.Context, session string) *cart.State {
	return cartState(_m.Called(ctx, session).Get(0))
}

func NewCartServiceInterface(t testingT) *CartServiceInterface {
	m := &CartServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// CheckoutServiceInterface is a mock type for service.CheckoutServiceInterface.
type CheckoutServiceInterface struct {
	mock.Mock
}

func (_m *CheckoutServiceInterface) Prepare(ctx context.Context, session string, draft order.Draft) (*service.Checkout, error) {
	ret := _m.Called(ctx, session, draft)
	var r0 *service.Checkout
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.Checkout)
	}
	return r0, ret.Error(1)
}

func (_m *CheckoutServiceInterface) QRCode(ctx context.Context, session string, draft order.Draft) ([]byte, error) {
	ret := _m.Called(ctx, session, draft)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func NewCheckoutServiceInterface(t testingT) *CheckoutServiceInterface {
	m := &CheckoutServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
