package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"ninedelivery/storefront-svc/internal/cart"
)

const CartKeyPrefix = "9delivery.cart.v1"

var (
	ErrItemUnavailable = errors.New("menu item is not available")
	ErrUnknownExtra    = errors.New("extra not offered for this item")
)

func CartKey(session string) string {
	return CartKeyPrefix + ":" + session
}

// AddItemRequest names a menu selection by ids; prices and names come from the
// catalog, never from the client.
type AddItemRequest struct {
	RestaurantID string   `json:"restaurant_id"`
	ItemID       string   `json:"item_id"`
	ExtraIDs     []string `json:"extra_ids"`
}

type sessionLock struct {
	sync.Mutex
	refs int
}

// sessionLocks hands out one mutex per session and drops it once nobody holds
// or waits on it.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

func (l *sessionLocks) lock(session string) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sessionLock)
	}
	entry, ok := l.locks[session]
	if !ok {
		entry = &sessionLock{}
		l.locks[session] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.Lock()
	return func() {
		entry.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, session)
		}
		l.mu.Unlock()
	}
}

type CartService struct {
	storage  CartStorage
	catalog  CatalogServiceInterface
	sessions sessionLocks
}

func NewCartService(storage CartStorage, catalog CatalogServiceInterface) *CartService {
	return &CartService{storage: storage, catalog: catalog}
}

// Load reads the session's persisted cart, falling back to an empty cart when
// nothing valid is stored.
func (s *CartService) Load(ctx context.Context, session string) *cart.State {
	raw, ok := s.storage.Read(ctx, CartKey(session))
	if !ok {
		return cart.Empty()
	}
	state, err := cart.FromSnapshot(raw)
	if err != nil {
		log.Printf("Discarding stored cart for session %s: %v", session, err)
		return cart.Empty()
	}
	return state
}

// open returns a store for the session that persists every change: an empty
// cart removes the key, anything else overwrites it. Callers hold the session
// lock from open until their last dispatch, so load and write-back of one
// session never interleave within this process.
func (s *CartService) open(ctx context.Context, session string) *cart.Store {
	store := cart.NewStore(s.Load(ctx, session))
	key := CartKey(session)
	persistCtx := context.WithoutCancel(ctx)
	store.Subscribe(func(next *cart.State) {
		if next.IsEmpty() {
			s.storage.Remove(persistCtx, key)
			return
		}
		s.storage.Write(persistCtx, key, next)
	})
	return store
}

func (s *CartService) Get(ctx context.Context, session string) *cart.State {
	return s.Load(ctx, session)
}

// Dispatch applies a wire-level action. Items added this way are re-resolved
// against the catalog by id and extra ids.
func (s *CartService) Dispatch(ctx context.Context, session string, action cart.Action) (*cart.State, cart.AddResult, error) {
	if add, ok := action.(cart.AddItem); ok {
		extraIDs := make([]string, len(add.Item.Extras))
		for i, e := range add.Item.Extras {
			extraIDs[i] = e.ID
		}
		return s.AddMenuItem(ctx, session, AddItemRequest{
			RestaurantID: add.RestaurantID,
			ItemID:       add.Item.ID,
			ExtraIDs:     extraIDs,
		})
	}

	unlock := s.sessions.lock(session)
	defer unlock()
	store := s.open(ctx, session)
	store.Dispatch(action)
	return store.State(), cart.AddResult{OK: true}, nil
}

func (s *CartService) AddMenuItem(ctx context.Context, session string, req AddItemRequest) (*cart.State, cart.AddResult, error) {
	item, err := s.resolve(ctx, req)
	if err != nil {
		return nil, cart.AddResult{}, err
	}
	unlock := s.sessions.lock(session)
	defer unlock()
	store := s.open(ctx, session)
	result := store.AddItem(req.RestaurantID, item)
	return store.State(), result, nil
}

func (s *CartService) Clear(ctx context.Context, session string) *cart.State {
	unlock := s.sessions.lock(session)
	defer unlock()
	store := s.open(ctx, session)
	store.Clear()
	return store.State()
}

func (s *CartService) resolve(ctx context.Context, req AddItemRequest) (cart.NewItem, error) {
	rest, err := s.catalog.Get(ctx, req.RestaurantID)
	if err != nil {
		return cart.NewItem{}, err
	}
	menuItem, ok := rest.FindItem(req.ItemID)
	if !ok {
		return cart.NewItem{}, ErrMenuItemNotFound
	}
	if !menuItem.Available {
		return cart.NewItem{}, ErrItemUnavailable
	}

	item := cart.NewItem{
		ID:    menuItem.ID,
		Name:  menuItem.Name,
		Price: menuItem.Price,
		Image: menuItem.Image,
	}
	seen := make(map[string]bool, len(req.ExtraIDs))
	for _, id := range req.ExtraIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		found := false
		for _, e := range menuItem.Extras {
			if e.ID == id {
				item.Extras = append(item.Extras, cart.Extra{ID: e.ID, Name: e.Name, Price: e.Price})
				found = true
				break
			}
		}
		if !found {
			return cart.NewItem{}, ErrUnknownExtra
		}
	}
	return item, nil
}

var _ CartServiceInterface = (*CartService)(nil)
