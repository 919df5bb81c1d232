package service

import (
	"context"
	"encoding/json"
	"log"

	"ninedelivery/stats-svc/internal/domain"
)

type Consumer struct {
	Reader MessageReader
	Store  PopularityRecorder
}

func NewConsumer(reader MessageReader, store PopularityRecorder) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
	}
}

// Start reads checkout events until ctx is done. Malformed messages are logged
// and skipped.
func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting Stats Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Stats Service consumer stopped")
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var event domain.CheckoutEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.ProcessEvent(ctx, event)
	}
}

func (c *Consumer) ProcessEvent(ctx context.Context, event domain.CheckoutEvent) {
	if event.Type != domain.EventCheckoutLinkIssued || event.RestaurantID == "" {
		return
	}
	log.Printf("Processing checkout: RestaurantID=%s, Items=%d", event.RestaurantID, len(event.Items))

	if err := c.Store.RecordCheckout(ctx, event); err != nil {
		log.Printf("Error recording checkout: %v", err)
	}
}

var _ ConsumerInterface = (*Consumer)(nil)
