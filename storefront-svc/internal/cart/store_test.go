package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_NotifiesOnlyOnChange(t *testing.T) {
	store := NewStore(nil)
	var seen []*State
	store.Subscribe(func(s *State) { seen = append(seen, s) })

	store.AddItem("rest1", muzza)
	store.AddItem("rest2", coca)
	store.SetQuantity("p1", 4)

	assert.Len(t, seen, 2)
	assert.Equal(t, 4, seen[1].Items[0].Quantity)
	assert.Same(t, store.State(), seen[1])
}

func TestStore_Unsubscribe(t *testing.T) {
	store := NewStore(nil)
	calls := 0
	unsubscribe := store.Subscribe(func(*State) { calls++ })

	store.AddItem("rest1", muzza)
	unsubscribe()
	store.AddItem("rest1", muzza)

	assert.Equal(t, 1, calls)
}

func TestStore_ListenersRunInSubscriptionOrder(t *testing.T) {
	store := NewStore(nil)
	var order []string
	store.Subscribe(func(*State) { order = append(order, "first") })
	store.Subscribe(func(*State) { order = append(order, "second") })

	store.SetNote("missing", "x")
	store.AddItem("rest1", muzza)

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestStore_ConcurrentAddsAreSerialized(t *testing.T) {
	store := NewStore(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.AddItem("rest1", muzza)
		}()
	}
	wg.Wait()

	assert.Len(t, store.State().Items, 1)
	assert.Equal(t, 50, store.State().Items[0].Quantity)
}
