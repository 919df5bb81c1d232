package cart

import "sync"

// ErrMsgOtherRestaurant is shown when an item from a second restaurant is added.
const ErrMsgOtherRestaurant = "El carrito sólo puede contener ítems de un mismo restaurante"

type AddResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Listener receives every new snapshot produced by a state-changing dispatch.
// It runs while the store is locked and must not call back into it.
type Listener func(*State)

// Store owns one live cart. Dispatches are applied strictly in order and
// listeners run synchronously after each change.
type Store struct {
	mu        sync.Mutex
	state     *State
	listeners map[int]Listener
	nextID    int
}

// NewStore starts a store from initial, or from an empty cart when initial is nil.
func NewStore(initial *State) *Store {
	if initial == nil {
		initial = Empty()
	}
	return &Store{state: initial, listeners: make(map[int]Listener)}
}

func (s *Store) State() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) Total() float64 {
	return Total(s.State())
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Dispatch reduces action into the current state and reports whether it changed.
func (s *Store) Dispatch(action Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatchLocked(action)
}

func (s *Store) dispatchLocked(action Action) bool {
	next := Reduce(s.state, action)
	if next == s.state {
		return false
	}
	s.state = next
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			fn(next)
		}
	}
	return true
}

// AddItem rejects items from a restaurant other than the cart's before
// dispatching; the reducer enforces the same rule on its own.
func (s *Store) AddItem(restaurantID string, item NewItem) AddResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.BoundToOther(restaurantID) {
		return AddResult{OK: false, Error: ErrMsgOtherRestaurant}
	}
	s.dispatchLocked(AddItem{RestaurantID: restaurantID, Item: item})
	return AddResult{OK: true}
}

func (s *Store) RemoveItem(itemID string) {
	s.Dispatch(RemoveItem{ItemID: itemID})
}

func (s *Store) SetQuantity(itemID string, quantity float64) {
	s.Dispatch(SetQty{ItemID: itemID, Quantity: quantity})
}

func (s *Store) SetNote(itemID, note string) {
	s.Dispatch(SetNote{ItemID: itemID, Note: note})
}

func (s *Store) Clear() {
	s.Dispatch(Clear{})
}
