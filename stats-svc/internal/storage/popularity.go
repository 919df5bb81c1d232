package storage

import (
	"context"
	"fmt"
	"time"

	"ninedelivery/stats-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	PeriodToday = "today"
	PeriodAll   = "all"

	dailyRetention = 7 * 24 * time.Hour
)

func DailyKey(date, restaurantID string) string {
	return fmt.Sprintf("popularity:daily:%s:%s", date, restaurantID)
}

func AllTimeKey(restaurantID string) string {
	return "popularity:alltime:" + restaurantID
}

// PopularityStore keeps per-restaurant sorted sets of item ids scored by the
// quantity that went through checkout.
type PopularityStore struct {
	rdb *redis.Client
}

func NewPopularityStore(rdb *redis.Client) *PopularityStore {
	return &PopularityStore{rdb: rdb}
}

// RecordCheckout adds every line's quantity to the all-time set and to the set
// of the event's UTC day.
func (s *PopularityStore) RecordCheckout(ctx context.Context, event domain.CheckoutEvent) error {
	ts := event.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	dailyKey := DailyKey(ts.UTC().Format("2006-01-02"), event.RestaurantID)
	allTimeKey := AllTimeKey(event.RestaurantID)

	pipe := s.rdb.TxPipeline()
	for _, item := range event.Items {
		if item.Quantity <= 0 {
			continue
		}
		pipe.ZIncrBy(ctx, dailyKey, float64(item.Quantity), item.ItemID)
		pipe.ZIncrBy(ctx, allTimeKey, float64(item.Quantity), item.ItemID)
	}
	pipe.Expire(ctx, dailyKey, dailyRetention)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record checkout for %s: %w", event.RestaurantID, err)
	}
	return nil
}

// Top returns the limit most ordered items, highest score first.
func (s *PopularityStore) Top(ctx context.Context, restaurantID, period string, now time.Time, limit int) ([]domain.ItemPopularity, error) {
	key := AllTimeKey(restaurantID)
	if period == PeriodToday {
		key = DailyKey(now.UTC().Format("2006-01-02"), restaurantID)
	}

	results, err := s.rdb.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("top items of %s: %w", restaurantID, err)
	}

	top := make([]domain.ItemPopularity, 0, len(results))
	for _, result := range results {
		member, ok := result.Member.(string)
		if !ok {
			continue
		}
		top = append(top, domain.ItemPopularity{ItemID: member, Score: result.Score})
	}
	return top, nil
}
