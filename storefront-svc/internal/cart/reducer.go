package cart

import "math"

// ClampQuantity floors q and forces it to at least 1. NaN, zero and infinities
// become 1; values beyond int32 are capped.
func ClampQuantity(q float64) int {
	if math.IsNaN(q) || math.IsInf(q, 0) || q == 0 {
		return 1
	}
	q = math.Floor(q)
	if q < 1 {
		return 1
	}
	if q > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(q)
}

// Reduce applies action to state and returns the next snapshot. The input is
// never modified. An action that changes nothing returns state itself, so callers
// can detect a no-op by pointer comparison.
func Reduce(state *State, action Action) *State {
	switch a := action.(type) {
	case AddItem:
		return addItem(state, a)
	case RemoveItem:
		return removeItem(state, a)
	case SetQty:
		qty := ClampQuantity(a.Quantity)
		return updateLines(state, a.ItemID, func(l *Line) { l.Quantity = qty })
	case SetNote:
		return updateLines(state, a.ItemID, func(l *Line) { l.Note = a.Note })
	case Clear:
		return Empty()
	}
	return state
}

func addItem(state *State, a AddItem) *State {
	if state.BoundToOther(a.RestaurantID) {
		return state
	}

	key := extrasKey(a.Item.Extras)
	items := make([]Line, 0, len(state.Items)+1)
	merged := false
	for _, l := range state.Items {
		if !merged && l.ItemID == a.Item.ID && l.extrasKey() == key {
			l.Quantity++
			merged = true
		}
		items = append(items, l)
	}
	if !merged {
		items = append(items, Line{
			RestaurantID: a.RestaurantID,
			ItemID:       a.Item.ID,
			Name:         a.Item.Name,
			UnitPrice:    a.Item.Price,
			Quantity:     1,
			Image:        a.Item.Image,
			Extras:       cloneExtras(a.Item.Extras),
		})
	}

	return &State{RestaurantID: stringPtr(a.RestaurantID), Items: items}
}

// removeItem drops every line with the item id, whatever its extras.
func removeItem(state *State, a RemoveItem) *State {
	items := make([]Line, 0, len(state.Items))
	for _, l := range state.Items {
		if l.ItemID != a.ItemID {
			items = append(items, l)
		}
	}
	if len(items) == len(state.Items) {
		return state
	}
	if len(items) == 0 {
		return Empty()
	}
	return &State{RestaurantID: state.RestaurantID, Items: items}
}

// updateLines applies fn to a copy of every line with the item id.
func updateLines(state *State, itemID string, fn func(*Line)) *State {
	items := make([]Line, len(state.Items))
	matched := false
	for i, l := range state.Items {
		if l.ItemID == itemID {
			fn(&l)
			matched = true
		}
		items[i] = l
	}
	if !matched {
		return state
	}
	return &State{RestaurantID: state.RestaurantID, Items: items}
}

func cloneExtras(extras []Extra) []Extra {
	if len(extras) == 0 {
		return nil
	}
	out := make([]Extra, len(extras))
	copy(out, extras)
	return out
}
