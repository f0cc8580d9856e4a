// Package cart holds the in-memory cart and its persistence round-trip.
// One Store instance owns the cart for the process; UI layers call its
// mutation methods instead of touching shared state.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"

	"github.com/foodordering/storefront/internal/api"
	"github.com/foodordering/storefront/internal/notify"
	"github.com/foodordering/storefront/internal/storage"
)

// StorageKey is the adapter key the cart snapshot lives under. Shared with
// the session manager, which clears it on logout.
const StorageKey = "guest_cart"

type LineItem struct {
	ItemID    int     `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type Totals struct {
	ItemCount int
	Subtotal  float64
}

// Lookup resolves a menu item id against the loaded catalog. Returns nil
// when the id is unknown.
type Lookup func(itemID int) *api.MenuItem

type Store struct {
	items    []LineItem
	store    *storage.Adapter
	notifier notify.Notifier
	logger   *log.Logger
}

func NewStore(store *storage.Adapter, notifier notify.Notifier, logger *log.Logger) *Store {
	return &Store{store: store, notifier: notifier, logger: logger}
}

// AddItem adds one unit of the menu item to the cart. Unknown ids are a
// silent no-op. A repeat add increments the existing line instead of
// creating a duplicate.
func (s *Store) AddItem(ctx context.Context, itemID int, lookup Lookup) {
	item := lookup(itemID)
	if item == nil {
		return
	}

	found := false
	for i := range s.items {
		if s.items[i].ItemID == itemID {
			s.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, LineItem{
			ItemID:    item.ID,
			Name:      item.Name,
			UnitPrice: float64(item.Price),
			Quantity:  1,
		})
	}

	s.Save(ctx)
	s.notifier.Toast("Added to cart!", fmt.Sprintf("%s has been added to your cart", item.Name))
}

func (s *Store) IncreaseQuantity(ctx context.Context, itemID int) {
	for i := range s.items {
		if s.items[i].ItemID == itemID {
			s.items[i].Quantity++
			s.Save(ctx)
			return
		}
	}
}

// DecreaseQuantity lowers the line's quantity by one, stopping at 1.
// Removing the line entirely is RemoveItem's job.
func (s *Store) DecreaseQuantity(ctx context.Context, itemID int) {
	for i := range s.items {
		if s.items[i].ItemID == itemID {
			if s.items[i].Quantity > 1 {
				s.items[i].Quantity--
				s.Save(ctx)
			}
			return
		}
	}
}

func (s *Store) RemoveItem(ctx context.Context, itemID int) {
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ItemID != itemID {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.Save(ctx)
}

func (s *Store) Totals() Totals {
	var t Totals
	for _, it := range s.items {
		t.ItemCount += it.Quantity
		t.Subtotal += it.UnitPrice * float64(it.Quantity)
	}
	t.Subtotal = math.Round(t.Subtotal*100) / 100
	return t
}

// Items returns a copy in display order.
func (s *Store) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) IsEmpty() bool { return len(s.items) == 0 }

func (s *Store) Clear(ctx context.Context) {
	s.items = nil
	s.Save(ctx)
}

// Load rehydrates the cart from storage. Malformed snapshots reset to an
// empty cart instead of propagating.
func (s *Store) Load(ctx context.Context) {
	raw, ok := s.store.Get(ctx, StorageKey)
	if !ok {
		// Key gone means the cart was cleared elsewhere (logout wipes it);
		// the in-memory lines must not outlive the snapshot.
		s.items = nil
		return
	}
	// Older snapshots stored prices as strings; api.Price accepts both.
	var stored []struct {
		ItemID   int       `json:"id"`
		Name     string    `json:"name"`
		Price    api.Price `json:"price"`
		Quantity int       `json:"quantity"`
	}
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Printf("cart: discarding malformed snapshot: %v", err)
		s.items = nil
		return
	}
	items := make([]LineItem, 0, len(stored))
	for _, it := range stored {
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		items = append(items, LineItem{
			ItemID:    it.ItemID,
			Name:      it.Name,
			UnitPrice: float64(it.Price),
			Quantity:  it.Quantity,
		})
	}
	s.items = items
}

func (s *Store) Save(ctx context.Context) {
	raw, err := json.Marshal(s.items)
	if err != nil {
		s.logger.Printf("cart: encode snapshot: %v", err)
		return
	}
	s.store.Set(ctx, StorageKey, string(raw))
}
