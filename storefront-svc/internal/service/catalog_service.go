package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"ninedelivery/storefront-svc/internal/catalog"
	"ninedelivery/storefront-svc/internal/category"
	"ninedelivery/storefront-svc/internal/domain"
	"ninedelivery/storefront-svc/internal/hours"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
)

type CatalogService struct {
	repo  CatalogRepository
	ids   catalog.IDProvider
	clock hours.Clock
}

func NewCatalogService(repo CatalogRepository, ids catalog.IDProvider, clock hours.Clock) *CatalogService {
	return &CatalogService{repo: repo, ids: ids, clock: clock}
}

func (s *CatalogService) present(r domain.Restaurant) domain.Restaurant {
	r = catalog.Normalize(r)
	if s.clock != nil {
		r.OpenNow = hours.IsOpenNow(r.Hours, s.clock())
	}
	return r
}

// List returns every valid restaurant, normalized. A result that arrives after
// ctx is done is discarded.
func (s *CatalogService) List(ctx context.Context) ([]domain.Restaurant, error) {
	restaurants, err := s.repo.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if err := catalog.ValidateRestaurant(r); err != nil {
			log.Printf("Skipping restaurant: %v", err)
			continue
		}
		out = append(out, s.present(r))
	}
	return out, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	rest, err := s.repo.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if rest == nil || catalog.ValidateRestaurant(*rest) != nil {
		return nil, ErrRestaurantNotFound
	}
	presented := s.present(*rest)
	return &presented, nil
}

func prepareRestaurant(rest *domain.Restaurant) error {
	rest.Name = strings.TrimSpace(rest.Name)
	rest.Categories = category.CanonicalizeList(rest.Categories)
	withoutMenu := *rest
	withoutMenu.Menu = nil
	return catalog.ValidateRestaurant(withoutMenu)
}

func (s *CatalogService) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	rest.ID = s.ids.NewID("rest")
	if err := prepareRestaurant(rest); err != nil {
		return err
	}
	rest.Menu = []domain.MenuItem{}
	return s.repo.UpsertRestaurant(ctx, rest)
}

func (s *CatalogService) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	if err := prepareRestaurant(rest); err != nil {
		return err
	}
	existing, err := s.repo.GetRestaurant(ctx, rest.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrRestaurantNotFound
	}
	return s.repo.UpsertRestaurant(ctx, rest)
}

func (s *CatalogService) DeleteRestaurant(ctx context.Context, id string) error {
	rows, err := s.repo.DeleteRestaurant(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}

func (s *CatalogService) prepareMenuItem(item *domain.MenuItem) error {
	item.Name = strings.TrimSpace(item.Name)
	item.Category = strings.TrimSpace(item.Category)
	for i := range item.Extras {
		if strings.TrimSpace(item.Extras[i].ID) == "" {
			item.Extras[i].ID = s.ids.NewID("extra")
		}
	}
	if item.Extras == nil {
		item.Extras = []domain.MenuExtra{}
	}
	return catalog.ValidateMenuItem(*item)
}

func (s *CatalogService) requireRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	rest, err := s.repo.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	if rest == nil {
		return nil, ErrRestaurantNotFound
	}
	return rest, nil
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, restaurantID string, item *domain.MenuItem) error {
	item.ID = s.ids.NewID("item")
	if err := s.prepareMenuItem(item); err != nil {
		return err
	}
	if _, err := s.requireRestaurant(ctx, restaurantID); err != nil {
		return err
	}
	return s.repo.UpsertMenuItem(ctx, restaurantID, item)
}

func (s *CatalogService) UpdateMenuItem(ctx context.Context, restaurantID string, item *domain.MenuItem) error {
	if err := s.prepareMenuItem(item); err != nil {
		return err
	}
	rest, err := s.requireRestaurant(ctx, restaurantID)
	if err != nil {
		return err
	}
	if _, ok := rest.FindItem(item.ID); !ok {
		return ErrMenuItemNotFound
	}
	return s.repo.UpsertMenuItem(ctx, restaurantID, item)
}

func (s *CatalogService) DeleteMenuItem(ctx context.Context, restaurantID, itemID string) error {
	rows, err := s.repo.DeleteMenuItem(ctx, restaurantID, itemID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

func (s *CatalogService) SetRestaurantImage(ctx context.Context, id, imageURL string) error {
	if _, err := s.requireRestaurant(ctx, id); err != nil {
		return err
	}
	if err := s.repo.UpdateRestaurantImage(ctx, id, imageURL); err != nil {
		return fmt.Errorf("set image of %s: %w", id, err)
	}
	return nil
}

func (s *CatalogService) SetMenuItemImage(ctx context.Context, restaurantID, itemID, imageURL string) error {
	rest, err := s.requireRestaurant(ctx, restaurantID)
	if err != nil {
		return err
	}
	if _, ok := rest.FindItem(itemID); !ok {
		return ErrMenuItemNotFound
	}
	if err := s.repo.UpdateMenuItemImage(ctx, restaurantID, itemID, imageURL); err != nil {
		return fmt.Errorf("set image of %s: %w", itemID, err)
	}
	return nil
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
