// Package store holds the state containers behind the storefront: cart and
// wishlist, product catalog, sessions and the notification toast. Each store
// owns its slice of state exclusively; the HTTP layer only dispatches
// through the exported methods. Mutations persist through internal/storage
// after they succeed and announce themselves on the event bus.
package store

import (
	"sync"

	"github.com/asaskevich/EventBus"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/akash06959/agronova/internal/domain"
	"github.com/akash06959/agronova/internal/storage"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Event bus topics published on state changes.
const (
	TopicCartChanged     = "cart.changed"
	TopicWishlistChanged = "wishlist.changed"
	TopicCatalogChanged  = "catalog.changed"
	TopicSessionChanged  = "session.changed"
	TopicNotification    = "notification.changed"
)

// CartStore holds the two independent line-item collections, cart and
// wishlist. All operations are serialized by a mutex and never return
// errors; storage trouble degrades to in-memory operation.
type CartStore struct {
	mu       sync.Mutex
	cart     []domain.CartItem
	wishlist []domain.WishlistItem
	storage  *storage.Store
	bus      EventBus.Bus
}

// NewCartStore builds the store and hydrates both collections from
// persisted state. Hydration is guarded: only a non-empty, parseable array
// replaces the fresh defaults, so a stale empty blob can never clobber a
// newly initialized state.
func NewCartStore(st *storage.Store, bus EventBus.Bus) *CartStore {
	s := &CartStore{storage: st, bus: bus}
	if raw := st.Get(storage.KeyCart); len(raw) > 0 {
		var items []domain.CartItem
		if err := json.Unmarshal(raw, &items); err != nil {
			zap.S().Warnf("cart: ignoring corrupt persisted cart: %v", err)
		} else if len(items) > 0 {
			s.cart = items
		}
	}
	if raw := st.Get(storage.KeyWishlist); len(raw) > 0 {
		var items []domain.WishlistItem
		if err := json.Unmarshal(raw, &items); err != nil {
			zap.S().Warnf("cart: ignoring corrupt persisted wishlist: %v", err)
		} else if len(items) > 0 {
			s.wishlist = items
		}
	}
	return s
}

// AddToCart merges quantity into an existing line for the same product id,
// or appends a new line. Quantities below 1 count as 1.
func (s *CartStore) AddToCart(p domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ID == p.ID {
			s.cart[i].Quantity += quantity
			s.persistCart()
			return
		}
	}
	s.cart = append(s.cart, domain.CartItemOf(p, quantity))
	s.persistCart()
}

// RemoveFromCart drops the line for id. Unknown ids are a no-op.
func (s *CartStore) RemoveFromCart(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ID == id {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			s.persistCart()
			return
		}
	}
}

// UpdateQuantity sets the line quantity, silently flooring invalid input
// to 1 rather than rejecting it. Unknown ids are a no-op.
func (s *CartStore) UpdateQuantity(id int64, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ID == id {
			s.cart[i].Quantity = quantity
			s.persistCart()
			return
		}
	}
}

// ClearCart empties the cart.
func (s *CartStore) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	s.persistCart()
}

// AddToWishlist is idempotent: adding an id that is already present leaves
// the wishlist unchanged.
func (s *CartStore) AddToWishlist(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.wishlist {
		if s.wishlist[i].ID == p.ID {
			return
		}
	}
	s.wishlist = append(s.wishlist, domain.WishlistItemOf(p))
	s.persistWishlist()
}

// RemoveFromWishlist drops the entry for id if present.
func (s *CartStore) RemoveFromWishlist(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.wishlist {
		if s.wishlist[i].ID == id {
			s.wishlist = append(s.wishlist[:i], s.wishlist[i+1:]...)
			s.persistWishlist()
			return
		}
	}
}

// ClearWishlist empties the wishlist.
func (s *CartStore) ClearWishlist() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlist = nil
	s.persistWishlist()
}

// CartItems returns a defensive copy of the cart lines.
func (s *CartStore) CartItems() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.cart))
	copy(out, s.cart)
	return out
}

// WishlistItems returns a defensive copy of the wishlist.
func (s *CartStore) WishlistItems() []domain.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.WishlistItem, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}

// IsInCart reports whether a line exists for id.
func (s *CartStore) IsInCart(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ID == id {
			return true
		}
	}
	return false
}

// IsInWishlist reports whether the wishlist holds id.
func (s *CartStore) IsInWishlist(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.wishlist {
		if s.wishlist[i].ID == id {
			return true
		}
	}
	return false
}

// CartItemQuantity returns the quantity for id, zero when absent.
func (s *CartStore) CartItemQuantity(id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ID == id {
			return s.cart[i].Quantity
		}
	}
	return 0
}

// CartTotal is Σ(price × quantity) over current lines.
func (s *CartStore) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for i := range s.cart {
		total += s.cart[i].Price * float64(s.cart[i].Quantity)
	}
	return total
}

// CartItemsCount is Σ(quantity) over current lines.
func (s *CartStore) CartItemsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int
	for i := range s.cart {
		count += s.cart[i].Quantity
	}
	return count
}

// WishlistCount is the number of wishlist entries.
func (s *CartStore) WishlistCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.wishlist)
}

// persistCart serializes the cart lines after every successful mutation.
// Callers hold the mutex. Storage failures stay inside internal/storage.
func (s *CartStore) persistCart() {
	items := s.cart
	if items == nil {
		items = []domain.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		zap.S().Warnf("cart: marshal failed: %v", err)
		return
	}
	s.storage.Put(storage.KeyCart, data)
	if s.bus != nil {
		s.bus.Publish(TopicCartChanged)
	}
}

func (s *CartStore) persistWishlist() {
	items := s.wishlist
	if items == nil {
		items = []domain.WishlistItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		zap.S().Warnf("cart: marshal wishlist failed: %v", err)
		return
	}
	s.storage.Put(storage.KeyWishlist, data)
	if s.bus != nil {
		s.bus.Publish(TopicWishlistChanged)
	}
}
