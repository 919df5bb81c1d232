package cart

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidSnapshot = errors.New("invalid cart snapshot")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSnapshot, fmt.Sprintf(format, args...))
}

// FromSnapshot checks a decoded JSON value (as produced by encoding/json into
// an any) field by field and rebuilds the State it describes. Anything that
// does not have the exact persisted shape is rejected.
func FromSnapshot(v any) (*State, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, invalid("not an object")
	}

	var restaurantID *string
	switch rid := obj["restaurant_id"].(type) {
	case nil:
	case string:
		restaurantID = stringPtr(rid)
	default:
		return nil, invalid("restaurant_id must be null or string")
	}

	rawItems, ok := obj["items"].([]any)
	if !ok {
		return nil, invalid("items must be an array")
	}

	items := make([]Line, 0, len(rawItems))
	for i, raw := range rawItems {
		line, err := lineFromSnapshot(raw)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, line)
	}

	if (len(items) == 0) != (restaurantID == nil) {
		return nil, invalid("restaurant_id must be set exactly when items exist")
	}
	for i, l := range items {
		if l.RestaurantID != *restaurantID {
			return nil, invalid("item %d belongs to restaurant %q", i, l.RestaurantID)
		}
	}

	return &State{RestaurantID: restaurantID, Items: items}, nil
}

func lineFromSnapshot(v any) (Line, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Line{}, invalid("not an object")
	}

	var line Line
	var err error
	if line.RestaurantID, err = requireString(obj, "restaurant_id"); err != nil {
		return Line{}, err
	}
	if line.ItemID, err = requireString(obj, "item_id"); err != nil {
		return Line{}, err
	}
	if line.Name, err = requireString(obj, "name"); err != nil {
		return Line{}, err
	}
	if line.UnitPrice, err = requireNumber(obj, "unit_price"); err != nil {
		return Line{}, err
	}
	qty, err := requireNumber(obj, "quantity")
	if err != nil {
		return Line{}, err
	}
	if qty < 1 || qty != math.Trunc(qty) || qty > math.MaxInt32 {
		return Line{}, invalid("quantity must be a positive integer")
	}
	line.Quantity = int(qty)
	if line.Note, err = optionalString(obj, "note"); err != nil {
		return Line{}, err
	}
	if line.Image, err = optionalString(obj, "image"); err != nil {
		return Line{}, err
	}

	rawExtras, present := obj["extras"]
	if !present || rawExtras == nil {
		return line, nil
	}
	list, ok := rawExtras.([]any)
	if !ok {
		return Line{}, invalid("extras must be an array")
	}
	for _, raw := range list {
		eobj, ok := raw.(map[string]any)
		if !ok {
			return Line{}, invalid("extra must be an object")
		}
		var e Extra
		if e.ID, err = requireString(eobj, "id"); err != nil {
			return Line{}, err
		}
		if e.Name, err = requireString(eobj, "name"); err != nil {
			return Line{}, err
		}
		if e.Price, err = requireNumber(eobj, "price"); err != nil {
			return Line{}, err
		}
		line.Extras = append(line.Extras, e)
	}
	return line, nil
}

func requireString(obj map[string]any, field string) (string, error) {
	s, ok := obj[field].(string)
	if !ok {
		return "", invalid("%s must be a string", field)
	}
	return s, nil
}

func optionalString(obj map[string]any, field string) (string, error) {
	v, present := obj[field]
	if !present || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", invalid("%s must be a string", field)
	}
	return s, nil
}

func requireNumber(obj map[string]any, field string) (float64, error) {
	n, ok := obj[field].(float64)
	if !ok {
		return 0, invalid("%s must be a number", field)
	}
	return n, nil
}
