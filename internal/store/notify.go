package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"

	"github.com/akash06959/agronova/internal/domain"
)

// DefaultNotifyTTL is how long a toast survives before auto-hide.
const DefaultNotifyTTL = 3 * time.Second

// NotifyStore holds at most one transient notification. Show replaces the
// current one and re-arms the auto-hide timer; Close cancels any pending
// timer so nothing fires after teardown.
type NotifyStore struct {
	mu      sync.Mutex
	current *domain.Notification
	timer   *time.Timer
	gen     uint64
	ttl     time.Duration
	bus     EventBus.Bus
	closed  bool
}

// NewNotifyStore builds the store. ttl <= 0 selects DefaultNotifyTTL.
func NewNotifyStore(bus EventBus.Bus, ttl time.Duration) *NotifyStore {
	if ttl <= 0 {
		ttl = DefaultNotifyTTL
	}
	return &NotifyStore{ttl: ttl, bus: bus}
}

// Show replaces the current notification. The previous auto-hide timer is
// stopped so a superseded toast can never hide its replacement early.
func (s *NotifyStore) Show(typ, title, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.current = &domain.Notification{Type: typ, Title: title, Message: message}
	// The timer is keyed to this notification's generation; a stale timer
	// that already fired can never hide a replacement.
	s.gen++
	gen := s.gen
	s.timer = time.AfterFunc(s.ttl, func() { s.hideGen(gen) })
	s.publishLocked()
}

func (s *NotifyStore) hideGen(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen || s.current == nil {
		return
	}
	s.timer = nil
	s.current = nil
	s.publishLocked()
}

// Hide clears the current notification and cancels the pending timer.
func (s *NotifyStore) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.current == nil {
		return
	}
	s.current = nil
	s.publishLocked()
}

// Current returns a copy of the visible notification, if any.
func (s *NotifyStore) Current() (domain.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.Notification{}, false
	}
	return *s.current, true
}

// Close cancels the timer permanently. Required on application teardown.
func (s *NotifyStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.current = nil
}

// ShowCartAdded is the stock cart toast.
func (s *NotifyStore) ShowCartAdded(productName string) {
	s.Show(domain.NotifyCart, "Added to Cart", fmt.Sprintf("%s has been added to your cart", productName))
}

// ShowWishlistAdded is the stock wishlist toast.
func (s *NotifyStore) ShowWishlistAdded(productName string) {
	s.Show(domain.NotifyWishlist, "Added to Wishlist", fmt.Sprintf("%s has been added to your wishlist", productName))
}

// ShowSuccess shows a success toast.
func (s *NotifyStore) ShowSuccess(title, message string) {
	s.Show(domain.NotifySuccess, title, message)
}

// ShowError shows an error toast.
func (s *NotifyStore) ShowError(title, message string) {
	s.Show(domain.NotifyError, title, message)
}

func (s *NotifyStore) publishLocked() {
	if s.bus != nil {
		s.bus.Publish(TopicNotification)
	}
}
