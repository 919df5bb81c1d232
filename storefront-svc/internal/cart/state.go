// Package cart holds the single-restaurant shopping cart: its state, the pure
// reducer that evolves it and the Store that owns a live cart.
package cart

import (
	"sort"
	"strings"
)

type Extra struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Line is one distinct item+extras configuration. Name and UnitPrice are a
// snapshot taken when the item was first added.
type Line struct {
	RestaurantID string  `json:"restaurant_id"`
	ItemID       string  `json:"item_id"`
	Name         string  `json:"name"`
	UnitPrice    float64 `json:"unit_price"`
	Quantity     int     `json:"quantity"`
	Note         string  `json:"note,omitempty"`
	Image        string  `json:"image,omitempty"`
	Extras       []Extra `json:"extras,omitempty"`
}

// ExtrasTotal is the price of the line's add-ons for a single unit.
func (l Line) ExtrasTotal() float64 {
	var sum float64
	for _, e := range l.Extras {
		sum += e.Price
	}
	return sum
}

// Subtotal is (unit price + extras) * quantity.
func (l Line) Subtotal() float64 {
	return (l.UnitPrice + l.ExtrasTotal()) * float64(l.Quantity)
}

func (l Line) extrasKey() string {
	return extrasKey(l.Extras)
}

func extrasKey(extras []Extra) string {
	ids := make([]string, len(extras))
	for i, e := range extras {
		ids[i] = e.ID
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// State is an immutable cart snapshot. RestaurantID is nil exactly when Items is
// empty, and every line belongs to *RestaurantID.
type State struct {
	RestaurantID *string `json:"restaurant_id"`
	Items        []Line  `json:"items"`
}

// Empty returns a fresh cart with no restaurant bound.
func Empty() *State {
	return &State{Items: []Line{}}
}

func (s *State) IsEmpty() bool {
	return len(s.Items) == 0
}

// BoundToOther reports whether the cart holds items of a restaurant other than
// restaurantID, in which case adding from restaurantID must be rejected.
func (s *State) BoundToOther(restaurantID string) bool {
	return len(s.Items) > 0 && s.RestaurantID != nil && *s.RestaurantID != restaurantID
}

// Total sums every line's subtotal. No rounding is applied.
func Total(s *State) float64 {
	var total float64
	for _, l := range s.Items {
		total += l.Subtotal()
	}
	return total
}

func stringPtr(s string) *string {
	return &s
}
