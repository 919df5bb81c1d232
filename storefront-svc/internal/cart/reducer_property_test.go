//go:build property
// +build property

package cart

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestRepeatedAddsMergeIntoOneLine(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("n adds of one configuration yield one line of quantity n", prop.ForAll(
		func(n int, extraIDs []string) bool {
			item := NewItem{ID: "p1", Name: "Muzzarella", Price: 1200}
			for _, id := range extraIDs {
				item.Extras = append(item.Extras, Extra{ID: id, Name: id, Price: 10})
			}

			s := Empty()
			for i := 0; i < n; i++ {
				s = Reduce(s, AddItem{RestaurantID: "rest1", Item: item})
			}
			return len(s.Items) == 1 && s.Items[0].Quantity == n
		},
		gen.IntRange(1, 60),
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}

func TestOtherRestaurantLeavesCartUnchanged(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("adding from a second restaurant is rejected", prop.ForAll(
		func(n int, other string) bool {
			if other == "rest1" {
				return true
			}
			store := NewStore(nil)
			for i := 0; i < n; i++ {
				store.AddItem("rest1", NewItem{ID: fmt.Sprintf("i%d", i), Name: "x", Price: 100})
			}
			before := store.State()
			result := store.AddItem(other, NewItem{ID: "z", Name: "z", Price: 1})
			return !result.OK && result.Error == ErrMsgOtherRestaurant && store.State() == before
		},
		gen.IntRange(1, 10),
		gen.Identifier(),
	))

	properties.TestingRun(t)
}

func TestTotalIsSumOfLineSubtotals(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total equals the sum of (price + extras) * quantity", prop.ForAll(
		func(prices []int, quantities []int, extra int) bool {
			s := Empty()
			for i, p := range prices {
				item := NewItem{ID: fmt.Sprintf("i%d", i), Name: "x", Price: float64(p)}
				if i%2 == 0 {
					item.Extras = []Extra{{ID: "e", Name: "e", Price: float64(extra)}}
				}
				s = Reduce(s, AddItem{RestaurantID: "rest1", Item: item})
				if i < len(quantities) {
					s = Reduce(s, SetQty{ItemID: item.ID, Quantity: float64(quantities[i])})
				}
			}

			var expected float64
			for _, l := range s.Items {
				unit := l.UnitPrice
				for _, e := range l.Extras {
					unit += e.Price
				}
				expected += unit * float64(l.Quantity)
			}
			return Total(s) == expected
		},
		gen.SliceOf(gen.IntRange(0, 10000)),
		gen.SliceOf(gen.IntRange(-5, 20)),
		gen.IntRange(0, 500),
	))

	properties.TestingRun(t)
}

func TestRemovingLastLineUnbindsRestaurant(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("removing every item empties the cart", prop.ForAll(
		func(n int) bool {
			s := Empty()
			for i := 0; i < n; i++ {
				s = Reduce(s, AddItem{RestaurantID: "rest1", Item: NewItem{ID: fmt.Sprintf("i%d", i), Name: "x", Price: 1}})
			}
			for i := 0; i < n; i++ {
				s = Reduce(s, RemoveItem{ItemID: fmt.Sprintf("i%d", i)})
			}
			return s.IsEmpty() && s.RestaurantID == nil
		},
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}

func TestSetQtyNeverBelowOne(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("clamped quantity is at least one", prop.ForAll(
		func(q float64) bool {
			s := Reduce(Empty(), AddItem{RestaurantID: "rest1", Item: NewItem{ID: "p1", Name: "x", Price: 1}})
			s = Reduce(s, SetQty{ItemID: "p1", Quantity: q})
			return s.Items[0].Quantity >= 1
		},
		gen.Float64(),
	))

	properties.TestingRun(t)
}
