package service

import (
	"context"
	"time"

	"ninedelivery/stats-svc/internal/domain"
	"ninedelivery/stats-svc/internal/storage"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

type StatsService struct {
	store PopularityReader
	clock func() time.Time
}

func NewStatsService(store PopularityReader, clock func() time.Time) *StatsService {
	return &StatsService{store: store, clock: clock}
}

// Popular lists a restaurant's most ordered items for "today" or "all" (any
// other period reads as "all").
func (s *StatsService) Popular(ctx context.Context, restaurantID, period string, limit int) (domain.PopularityResponse, error) {
	if period != storage.PeriodToday {
		period = storage.PeriodAll
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	items, err := s.store.Top(ctx, restaurantID, period, s.clock(), limit)
	if err != nil {
		return domain.PopularityResponse{}, err
	}
	return domain.PopularityResponse{RestaurantID: restaurantID, Period: period, Items: items}, nil
}

var _ StatsServiceInterface = (*StatsService)(nil)
