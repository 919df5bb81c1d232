package service

import (
	"context"
	"time"

	"ninedelivery/stats-svc/internal/domain"
	"ninedelivery/stats-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type PopularityRecorder interface {
	RecordCheckout(ctx context.Context, event domain.CheckoutEvent) error
}

type PopularityReader interface {
	Top(ctx context.Context, restaurantID, period string, now time.Time, limit int) ([]domain.ItemPopularity, error)
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessEvent(ctx context.Context, event domain.CheckoutEvent)
}

type StatsServiceInterface interface {
	Popular(ctx context.Context, restaurantID, period string, limit int) (domain.PopularityResponse, error)
}

var (
	_ PopularityRecorder = (*storage.PopularityStore)(nil)
	_ PopularityReader   = (*storage.PopularityStore)(nil)
	_ MessageReader      = (*kafka.Reader)(nil)
)
