package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ninedelivery/storefront-svc/internal/cart"
	"ninedelivery/storefront-svc/internal/domain"
	"ninedelivery/storefront-svc/internal/order"
)

// Checkout is everything handed back to the customer at send time.
type Checkout struct {
	Restaurant *domain.Restaurant `json:"-"`
	Payload    order.Payload      `json:"payload"`
	Message    string             `json:"message"`
	Link       string             `json:"link"`
}

type CheckoutService struct {
	carts     CartServiceInterface
	catalog   CatalogServiceInterface
	publisher CheckoutPublisher
	qr        QRGenerator
}

func NewCheckoutService(carts CartServiceInterface, catalog CatalogServiceInterface, publisher CheckoutPublisher, qr QRGenerator) *CheckoutService {
	return &CheckoutService{carts: carts, catalog: catalog, publisher: publisher, qr: qr}
}

// build validates the session's cart and draft and resolves the link without
// any side effect.
func (s *CheckoutService) build(ctx context.Context, session string, draft order.Draft) (*Checkout, *cart.State, error) {
	state := s.carts.Get(ctx, session)
	if err := order.Validate(state, draft); err != nil {
		return nil, nil, err
	}

	rest, err := s.catalog.Get(ctx, *state.RestaurantID)
	if errors.Is(err, ErrRestaurantNotFound) {
		return nil, nil, order.ErrNotPrepared
	}
	if err != nil {
		return nil, nil, fmt.Errorf("resolve restaurant: %w", err)
	}

	payload := order.BuildPayload(state, draft, rest.Name)
	return &Checkout{
		Restaurant: rest,
		Payload:    payload,
		Message:    order.BuildMessage(payload),
		Link:       order.BuildLink(rest.Phone, payload),
	}, state, nil
}

// Prepare builds the WhatsApp link for the session's cart. Nothing is stored;
// a checkout event is published best-effort.
func (s *CheckoutService) Prepare(ctx context.Context, session string, draft order.Draft) (*Checkout, error) {
	checkout, state, err := s.build(ctx, session, draft)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		items := make([]domain.CheckoutEventItem, 0, len(state.Items))
		for _, l := range state.Items {
			items = append(items, domain.CheckoutEventItem{ItemID: l.ItemID, Quantity: l.Quantity})
		}
		if err := s.publisher.PublishCheckout(ctx, domain.CheckoutEvent{
			Type:         domain.EventCheckoutLinkIssued,
			RestaurantID: checkout.Restaurant.ID,
			Items:        items,
			Total:        checkout.Payload.Total,
			Timestamp:    time.Now(),
		}); err != nil {
			log.Printf("Error publishing checkout event: %v", err)
		}
	}

	return checkout, nil
}

// QRCode renders the checkout link as a PNG so it can be scanned from a phone.
// It publishes nothing: the same order is usually also fetched through Prepare.
func (s *CheckoutService) QRCode(ctx context.Context, session string, draft order.Draft) ([]byte, error) {
	if s.qr == nil {
		return nil, errors.New("qr generator not configured")
	}
	checkout, _, err := s.build(ctx, session, draft)
	if err != nil {
		return nil, err
	}
	png, err := s.qr.Generate(checkout.Link)
	if errors.Is(err, ErrQRContentTooLong) {
		return nil, order.ErrTooLongForQR
	}
	if err != nil {
		return nil, fmt.Errorf("generate qr: %w", err)
	}
	return png, nil
}

var _ CheckoutServiceInterface = (*CheckoutService)(nil)
