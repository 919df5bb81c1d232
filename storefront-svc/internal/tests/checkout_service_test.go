package tests

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"ninedelivery/storefront-svc/internal/cart"
	"ninedelivery/storefront-svc/internal/domain"
	"ninedelivery/storefront-svc/internal/mocks"
	"ninedelivery/storefront-svc/internal/order"
	"ninedelivery/storefront-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var customer = order.Draft{CustomerName: "Juan", CustomerAddress: "Calle Falsa 123"}

func pizzeria() *domain.Restaurant {
	return &domain.Restaurant{ID: "rest1", Name: "Pizzería San Juan", Phone: "+54 9 351 234 5678"}
}

func filledCart() *cart.State {
	store := cart.NewStore(nil)
	store.AddItem("rest1", cart.NewItem{ID: "p1", Name: "Muzzarella", Price: 1200})
	store.AddItem("rest1", cart.NewItem{ID: "p1", Name: "Muzzarella", Price: 1200})
	store.AddItem("rest1", cart.NewItem{ID: "b1", Name: "Coca 500ml", Price: 450})
	store.SetNote("p1", "sin cebolla")
	return store.State()
}

type checkoutMocks struct {
	carts     *mocks.CartServiceInterface
	catalog   *mocks.CatalogServiceInterface
	publisher *mocks.CheckoutPublisher
	qr        *mocks.QRGenerator
}

func newCheckoutService(t *testing.T) (*service.CheckoutService, checkoutMocks) {
	m := checkoutMocks{
		carts:     mocks.NewCartServiceInterface(t),
		catalog:   mocks.NewCatalogServiceInterface(t),
		publisher: mocks.NewCheckoutPublisher(t),
		qr:        mocks.NewQRGenerator(t),
	}
	return service.NewCheckoutService(m.carts, m.catalog, m.publisher, m.qr), m
}

func TestCheckoutService_Prepare(t *testing.T) {
	svc, m := newCheckoutService(t)
	ctx := context.Background()

	m.carts.On("Get", ctx, "s1").Return(filledCart()).Once()
	m.catalog.On("Get", ctx, "rest1").Return(pizzeria(), nil).Once()
	m.publisher.On("PublishCheckout", ctx, mock.MatchedBy(func(e domain.CheckoutEvent) bool {
		return e.Type == domain.EventCheckoutLinkIssued && e.RestaurantID == "rest1" &&
			e.Total == 2850 && len(e.Items) == 2 && e.Items[0].Quantity == 2
	})).Return(nil).Once()

	checkout, err := svc.Prepare(ctx, "s1", customer)
	require.NoError(t, err)
	assert.Equal(t, 2850.0, checkout.Payload.Total)
	assert.Equal(t, order.PaymentCash, checkout.Payload.PaymentMethod)
	assert.Contains(t, checkout.Message, "*Cliente:* Juan")
	assert.True(t, strings.HasPrefix(checkout.Link, "https://wa.me/5493512345678?text="))
}

func TestCheckoutService_PrepareIgnoresPublishFailure(t *testing.T) {
	svc, m := newCheckoutService(t)
	ctx := context.Background()

	m.carts.On("Get", ctx, "s1").Return(filledCart()).Once()
	m.catalog.On("Get", ctx, "rest1").Return(pizzeria(), nil).Once()
	m.publisher.On("PublishCheckout", ctx, mock.Anything).Return(assert.AnError).Once()

	checkout, err := svc.Prepare(ctx, "s1", customer)
	require.NoError(t, err)
	assert.NotEmpty(t, checkout.Link)
}

func TestCheckoutService_PrepareErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		draft        order.Draft
		prepareMocks func(m checkoutMocks)
		expectedErr  error
	}{
		{
			name:  "empty_cart",
			draft: customer,
			prepareMocks: func(m checkoutMocks) {
				m.carts.On("Get", ctx, "s1").Return(cart.Empty()).Once()
			},
			expectedErr: order.ErrEmptyCart,
		},
		{
			name:  "missing_address",
			draft: order.Draft{CustomerName: "Juan"},
			prepareMocks: func(m checkoutMocks) {
				m.carts.On("Get", ctx, "s1").Return(filledCart()).Once()
			},
			expectedErr: order.ErrMissingCustomer,
		},
		{
			name:  "restaurant_gone",
			draft: customer,
			prepareMocks: func(m checkoutMocks) {
				m.carts.On("Get", ctx, "s1").Return(filledCart()).Once()
				m.catalog.On("Get", ctx, "rest1").Return(nil, service.ErrRestaurantNotFound).Once()
			},
			expectedErr: order.ErrNotPrepared,
		},
		{
			name:  "catalog_down",
			draft: customer,
			prepareMocks: func(m checkoutMocks) {
				m.carts.On("Get", ctx, "s1").Return(filledCart()).Once()
				m.catalog.On("Get", ctx, "rest1").Return(nil, assert.AnError).Once()
			},
			expectedErr: assert.AnError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, m := newCheckoutService(t)
			testCase.prepareMocks(m)

			checkout, err := svc.Prepare(ctx, "s1", testCase.draft)
			assert.ErrorIs(t, err, testCase.expectedErr)
			assert.Nil(t, checkout)
		})
	}
}

func TestCheckoutService_QRCode(t *testing.T) {
	svc, m := newCheckoutService(t)
	ctx := context.Background()

	m.carts.On("Get", ctx, "s1").Return(filledCart()).Once()
	m.catalog.On("Get", ctx, "rest1").Return(pizzeria(), nil).Once()
	m.qr.On("Generate", mock.MatchedBy(func(content string) bool {
		return strings.HasPrefix(content, "https://wa.me/5493512345678?text=")
	})).Return([]byte("png"), nil).Once()

	png, err := svc.QRCode(ctx, "s1", customer)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)
	m.publisher.AssertNotCalled(t, "PublishCheckout", mock.Anything, mock.Anything)
}

func TestCheckoutService_QRCodeErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		qrErr       error
		expectedErr error
		validation  bool
	}{
		{"too_long", fmt.Errorf("%w: content too long to encode", service.ErrQRContentTooLong), order.ErrTooLongForQR, true},
		{"generator_failure", assert.AnError, assert.AnError, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, m := newCheckoutService(t)
			m.carts.On("Get", ctx, "s1").Return(filledCart()).Once()
			m.catalog.On("Get", ctx, "rest1").Return(pizzeria(), nil).Once()
			m.qr.On("Generate", mock.Anything).Return(nil, testCase.qrErr).Once()

			png, err := svc.QRCode(ctx, "s1", customer)
			assert.Nil(t, png)
			assert.ErrorIs(t, err, testCase.expectedErr)
			assert.Equal(t, testCase.validation, order.IsValidation(err))
		})
	}
}

func TestDefaultQRGenerator(t *testing.T) {
	png, err := service.DefaultQRGenerator{}.Generate("https://wa.me/5493512345678?text=hola")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestDefaultQRGenerator_ContentTooLong(t *testing.T) {
	link := "https://wa.me/5493512345678?text=" + strings.Repeat("hola", 1000)

	png, err := service.DefaultQRGenerator{}.Generate(link)
	assert.Nil(t, png)
	assert.ErrorIs(t, err, service.ErrQRContentTooLong)
}
