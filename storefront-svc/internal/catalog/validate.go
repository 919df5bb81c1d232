// Package catalog validates and normalizes restaurant records coming from any
// catalog source, and ships the bundled seed catalog.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"ninedelivery/storefront-svc/internal/category"
	"ninedelivery/storefront-svc/internal/domain"
)

var ErrInvalidRecord = errors.New("invalid catalog record")

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func invalidPrice(p float64) bool {
	return math.IsNaN(p) || math.IsInf(p, 0)
}

// ValidateMenuItem requires an id, a name, a finite price and well-formed extras.
func ValidateMenuItem(item domain.MenuItem) error {
	if blank(item.ID) {
		return fmt.Errorf("%w: menu item without id", ErrInvalidRecord)
	}
	if blank(item.Name) {
		return fmt.Errorf("%w: menu item %s without name", ErrInvalidRecord, item.ID)
	}
	if invalidPrice(item.Price) {
		return fmt.Errorf("%w: menu item %s price", ErrInvalidRecord, item.ID)
	}
	for _, e := range item.Extras {
		if blank(e.ID) || blank(e.Name) || invalidPrice(e.Price) {
			return fmt.Errorf("%w: menu item %s extra %q", ErrInvalidRecord, item.ID, e.ID)
		}
	}
	return nil
}

// ValidateRestaurant requires an id and a name and a valid menu.
func ValidateRestaurant(r domain.Restaurant) error {
	if blank(r.ID) {
		return fmt.Errorf("%w: restaurant without id", ErrInvalidRecord)
	}
	if blank(r.Name) {
		return fmt.Errorf("%w: restaurant %s without name", ErrInvalidRecord, r.ID)
	}
	for _, item := range r.Menu {
		if err := ValidateMenuItem(item); err != nil {
			return fmt.Errorf("restaurant %s: %w", r.ID, err)
		}
	}
	return nil
}

// FilterValid drops every restaurant that fails ValidateRestaurant.
func FilterValid(list []domain.Restaurant) []domain.Restaurant {
	out := make([]domain.Restaurant, 0, len(list))
	for _, r := range list {
		if ValidateRestaurant(r) == nil {
			out = append(out, r)
		}
	}
	return out
}

// Normalize canonicalizes the restaurant's categories and files each menu item
// under one of them.
func Normalize(r domain.Restaurant) domain.Restaurant {
	r.Categories = category.CanonicalizeList(r.Categories)
	menu := make([]domain.MenuItem, len(r.Menu))
	for i, item := range r.Menu {
		item.Category = category.ResolveMenuCategory(item.Category, r.Categories)
		if item.Extras == nil {
			item.Extras = []domain.MenuExtra{}
		}
		menu[i] = item
	}
	r.Menu = menu
	return r
}
