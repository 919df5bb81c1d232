package storage

import (
	"context"
	"encoding/json"
	"sync"

	"ninedelivery/storefront-svc/internal/catalog"
	"ninedelivery/storefront-svc/internal/domain"
	"ninedelivery/storefront-svc/internal/kv"
)

const RestaurantsKey = "9delivery.restaurants.v1"

// LocalCatalog keeps the whole catalog as one JSON document in the kv store,
// falling back to the bundled seed when nothing valid is stored. It serves
// deployments without Postgres.
type LocalCatalog struct {
	mu      sync.Mutex
	storage *kv.Storage
	seed    func() []domain.Restaurant
}

func NewLocalCatalog(storage *kv.Storage) *LocalCatalog {
	return &LocalCatalog{storage: storage, seed: catalog.Seed}
}

// Load returns the stored catalog when every record in it is valid, otherwise
// the seed.
func (c *LocalCatalog) Load(ctx context.Context) []domain.Restaurant {
	raw, ok := c.storage.ReadRaw(ctx, RestaurantsKey)
	if !ok {
		return c.seed()
	}
	var stored []domain.Restaurant
	if err := json.Unmarshal([]byte(raw), &stored); err != nil || stored == nil {
		return c.seed()
	}
	for _, r := range stored {
		if catalog.ValidateRestaurant(r) != nil {
			return c.seed()
		}
	}
	return stored
}

func (c *LocalCatalog) Save(ctx context.Context, restaurants []domain.Restaurant) {
	c.storage.Write(ctx, RestaurantsKey, restaurants)
}

// Reset drops local edits so the seed is served again.
func (c *LocalCatalog) Reset(ctx context.Context) {
	c.storage.Remove(ctx, RestaurantsKey)
}

func (c *LocalCatalog) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return c.Load(ctx), nil
}

func (c *LocalCatalog) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	for _, r := range c.Load(ctx) {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, nil
}

// mutate runs fn over the current catalog and saves the result.
func (c *LocalCatalog) mutate(ctx context.Context, fn func([]domain.Restaurant) []domain.Restaurant) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Save(ctx, fn(c.Load(ctx)))
}

func (c *LocalCatalog) UpsertRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	c.mutate(ctx, func(list []domain.Restaurant) []domain.Restaurant {
		for i := range list {
			if list[i].ID == rest.ID {
				updated := *rest
				updated.Menu = list[i].Menu
				list[i] = updated
				return list
			}
		}
		created := *rest
		if created.Menu == nil {
			created.Menu = []domain.MenuItem{}
		}
		return append(list, created)
	})
	return nil
}

func (c *LocalCatalog) DeleteRestaurant(ctx context.Context, id string) (int64, error) {
	var deleted int64
	c.mutate(ctx, func(list []domain.Restaurant) []domain.Restaurant {
		out := list[:0]
		for _, r := range list {
			if r.ID == id {
				deleted++
				continue
			}
			out = append(out, r)
		}
		return out
	})
	return deleted, nil
}

func (c *LocalCatalog) UpsertMenuItem(ctx context.Context, restaurantID string, item *domain.MenuItem) error {
	c.mutate(ctx, func(list []domain.Restaurant) []domain.Restaurant {
		for i := range list {
			if list[i].ID != restaurantID {
				continue
			}
			menu := list[i].Menu
			for j := range menu {
				if menu[j].ID == item.ID {
					menu[j] = *item
					return list
				}
			}
			list[i].Menu = append(menu, *item)
		}
		return list
	})
	return nil
}

func (c *LocalCatalog) DeleteMenuItem(ctx context.Context, restaurantID, itemID string) (int64, error) {
	var deleted int64
	c.mutate(ctx, func(list []domain.Restaurant) []domain.Restaurant {
		for i := range list {
			if list[i].ID != restaurantID {
				continue
			}
			menu := make([]domain.MenuItem, 0, len(list[i].Menu))
			for _, m := range list[i].Menu {
				if m.ID == itemID {
					deleted++
					continue
				}
				menu = append(menu, m)
			}
			list[i].Menu = menu
		}
		return list
	})
	return deleted, nil
}

func (c *LocalCatalog) UpdateRestaurantImage(ctx context.Context, id, imageURL string) error {
	c.mutate(ctx, func(list []domain.Restaurant) []domain.Restaurant {
		for i := range list {
			if list[i].ID == id {
				list[i].Image = imageURL
			}
		}
		return list
	})
	return nil
}

func (c *LocalCatalog) UpdateMenuItemImage(ctx context.Context, restaurantID, itemID, imageURL string) error {
	c.mutate(ctx, func(list []domain.Restaurant) []domain.Restaurant {
		for i := range list {
			if list[i].ID != restaurantID {
				continue
			}
			for j := range list[i].Menu {
				if list[i].Menu[j].ID == itemID {
					list[i].Menu[j].Image = imageURL
				}
			}
		}
		return list
	})
	return nil
}
