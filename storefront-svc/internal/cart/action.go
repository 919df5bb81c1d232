package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	TypeAddItem    = "ADD_ITEM"
	TypeRemoveItem = "REMOVE_ITEM"
	TypeSetQty     = "SET_QTY"
	TypeSetNote    = "SET_NOTE"
	TypeClear      = "CLEAR"
)

var ErrUnknownAction = errors.New("unknown cart action")

// Action is the closed set of cart transitions. Only the types declared in this
// file implement it.
type Action interface {
	Type() string
	isAction()
}

// NewItem is the menu selection carried by AddItem.
type NewItem struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Image  string  `json:"image,omitempty"`
	Extras []Extra `json:"extras,omitempty"`
}

type AddItem struct {
	RestaurantID string  `json:"restaurant_id"`
	Item         NewItem `json:"item"`
}

type RemoveItem struct {
	ItemID string `json:"item_id"`
}

// SetQty carries the raw requested quantity; the reducer clamps it.
type SetQty struct {
	ItemID   string  `json:"item_id"`
	Quantity float64 `json:"quantity"`
}

type SetNote struct {
	ItemID string `json:"item_id"`
	Note   string `json:"note"`
}

type Clear struct{}

func (AddItem) Type() string    { return TypeAddItem }
func (RemoveItem) Type() string { return TypeRemoveItem }
func (SetQty) Type() string     { return TypeSetQty }
func (SetNote) Type() string    { return TypeSetNote }
func (Clear) Type() string      { return TypeClear }

func (AddItem) isAction()    {}
func (RemoveItem) isAction() {}
func (SetQty) isAction()     {}
func (SetNote) isAction()    {}
func (Clear) isAction()      {}

type wireAction struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type wireSetQty struct {
	ItemID   string          `json:"item_id"`
	Quantity json.RawMessage `json:"quantity"`
}

// CoerceQuantity turns an arbitrary JSON quantity into a number the way a form
// field would: numbers and numeric strings pass through, anything else is NaN.
func CoerceQuantity(raw json.RawMessage) float64 {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0
		}
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			return parsed
		}
	}
	return math.NaN()
}

// DecodeAction parses the wire form {"type": "...", "payload": {...}}.
func DecodeAction(data []byte) (Action, error) {
	var w wireAction
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}

	decode := func(dst any) error {
		if len(w.Payload) == 0 {
			return fmt.Errorf("decode %s: missing payload", w.Type)
		}
		if err := json.Unmarshal(w.Payload, dst); err != nil {
			return fmt.Errorf("decode %s: %w", w.Type, err)
		}
		return nil
	}

	switch w.Type {
	case TypeAddItem:
		var a AddItem
		if err := decode(&a); err != nil {
			return nil, err
		}
		return a, nil
	case TypeRemoveItem:
		var a RemoveItem
		if err := decode(&a); err != nil {
			return nil, err
		}
		return a, nil
	case TypeSetQty:
		var raw wireSetQty
		if err := decode(&raw); err != nil {
			return nil, err
		}
		return SetQty{ItemID: raw.ItemID, Quantity: CoerceQuantity(raw.Quantity)}, nil
	case TypeSetNote:
		var a SetNote
		if err := decode(&a); err != nil {
			return nil, err
		}
		return a, nil
	case TypeClear:
		return Clear{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, w.Type)
}
