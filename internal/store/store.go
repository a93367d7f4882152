package store

import (
	"sync"
	"time"

	"techreads/pkg/models"
)

// Event describes one store mutation. Observers receive it synchronously
// after the mutation is applied.
type Event struct {
	Type          string    `json:"type"` // "cart.update" or "wishlist.update"
	BookID        int       `json:"book_id"`
	Quantity      int       `json:"quantity,omitempty"` // cart quantity after the mutation, 0 when removed
	CartCount     int       `json:"cart_count"`
	WishlistCount int       `json:"wishlist_count"`
	At            time.Time `json:"at"`
}

const (
	EventCartUpdate     = "cart.update"
	EventWishlistUpdate = "wishlist.update"
)

type Observer func(Event)

// Store is the shared cart/wishlist registry read by every screen of a
// session. It is a badge cache, not a consistency engine: screens fetch
// authoritative contents from the remote service themselves, and the
// store is never reconciled against those responses.
//
// The original client relied on a single-threaded event loop to
// serialize mutations; here a mutex does the same job. All operations
// succeed locally — remote persistence is a separate call issued by the
// screen, never by the store.
type Store struct {
	mu        sync.Mutex
	cart      []models.CartEntry
	wishlist  []models.WishlistEntry
	version   uint64
	observers []Observer
}

func New() *Store {
	return &Store{}
}

// Subscribe registers an observer for subsequent mutations. Observers
// run synchronously, outside the store lock, in subscription order.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// AddToCart inserts a new entry with quantity 1, or increments the
// existing entry for the same book id.
func (s *Store) AddToCart(book models.Book) {
	s.mu.Lock()
	qty := 1
	found := false
	for i := range s.cart {
		if s.cart[i].BookID == book.ID {
			s.cart[i].Quantity++
			qty = s.cart[i].Quantity
			found = true
			break
		}
	}
	if !found {
		s.cart = append(s.cart, models.CartEntry{
			BookID:   book.ID,
			Title:    book.Title,
			Price:    book.Price,
			ImageURL: book.ImageURL,
			Quantity: 1,
		})
	}
	ev := s.bump(EventCartUpdate, book.ID, qty)
	s.mu.Unlock()
	s.notify(ev)
}

// RemoveFromCart deletes the entry for bookID; no-op when absent.
func (s *Store) RemoveFromCart(bookID int) {
	s.mu.Lock()
	idx := -1
	for i := range s.cart {
		if s.cart[i].BookID == bookID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.cart = append(s.cart[:idx], s.cart[idx+1:]...)
	ev := s.bump(EventCartUpdate, bookID, 0)
	s.mu.Unlock()
	s.notify(ev)
}

// AddToWishlist inserts the book unless an entry with the same book id
// already exists; duplicate adds are no-ops and notify nobody.
func (s *Store) AddToWishlist(book models.Book) {
	s.mu.Lock()
	for i := range s.wishlist {
		if s.wishlist[i].BookID == book.ID {
			s.mu.Unlock()
			return
		}
	}
	s.wishlist = append(s.wishlist, models.WishlistEntry{
		BookID:   book.ID,
		Title:    book.Title,
		Price:    book.Price,
		ImageURL: book.ImageURL,
		Stock:    book.Stock,
	})
	ev := s.bump(EventWishlistUpdate, book.ID, 0)
	s.mu.Unlock()
	s.notify(ev)
}

// RemoveFromWishlist deletes the entry for bookID; no-op when absent.
func (s *Store) RemoveFromWishlist(bookID int) {
	s.mu.Lock()
	idx := -1
	for i := range s.wishlist {
		if s.wishlist[i].BookID == bookID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.wishlist = append(s.wishlist[:idx], s.wishlist[idx+1:]...)
	ev := s.bump(EventWishlistUpdate, bookID, 0)
	s.mu.Unlock()
	s.notify(ev)
}

// MoveToCart removes the wishlist entry for bookID and adds it to the
// cart (increment-or-insert). No-op when the book is not wishlisted.
func (s *Store) MoveToCart(bookID int) {
	s.mu.Lock()
	idx := -1
	for i := range s.wishlist {
		if s.wishlist[i].BookID == bookID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	entry := s.wishlist[idx]
	s.wishlist = append(s.wishlist[:idx], s.wishlist[idx+1:]...)
	wishEv := s.bump(EventWishlistUpdate, bookID, 0)

	qty := 1
	found := false
	for i := range s.cart {
		if s.cart[i].BookID == bookID {
			s.cart[i].Quantity++
			qty = s.cart[i].Quantity
			found = true
			break
		}
	}
	if !found {
		s.cart = append(s.cart, models.CartEntry{
			BookID:   entry.BookID,
			Title:    entry.Title,
			Price:    entry.Price,
			ImageURL: entry.ImageURL,
			Quantity: 1,
		})
	}
	cartEv := s.bump(EventCartUpdate, bookID, qty)
	s.mu.Unlock()
	s.notify(wishEv)
	s.notify(cartEv)
}

// MoveToWishlist removes the cart entry for bookID and wishlists it
// (idempotently). No-op when the book is not in the cart.
func (s *Store) MoveToWishlist(bookID int) {
	s.mu.Lock()
	idx := -1
	for i := range s.cart {
		if s.cart[i].BookID == bookID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	entry := s.cart[idx]
	s.cart = append(s.cart[:idx], s.cart[idx+1:]...)
	cartEv := s.bump(EventCartUpdate, bookID, 0)

	var wishEv *Event
	exists := false
	for i := range s.wishlist {
		if s.wishlist[i].BookID == bookID {
			exists = true
			break
		}
	}
	if !exists {
		s.wishlist = append(s.wishlist, models.WishlistEntry{
			BookID:   entry.BookID,
			Title:    entry.Title,
			Price:    entry.Price,
			ImageURL: entry.ImageURL,
		})
		ev := s.bump(EventWishlistUpdate, bookID, 0)
		wishEv = &ev
	}
	s.mu.Unlock()
	s.notify(cartEv)
	if wishEv != nil {
		s.notify(*wishEv)
	}
}

// Cart returns a copy of the current cart entries.
func (s *Store) Cart() []models.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartEntry, len(s.cart))
	copy(out, s.cart)
	return out
}

// Wishlist returns a copy of the current wishlist entries.
func (s *Store) Wishlist() []models.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.WishlistEntry, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}

// Counts returns the badge numbers: distinct cart entries and wishlist
// entries. Cart quantity does not inflate the badge, matching the
// original navbar.
func (s *Store) Counts() (cart, wishlist int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cart), len(s.wishlist)
}

// Version is the monotonically increasing change counter. No-op
// operations do not advance it.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// bump must be called with the lock held.
func (s *Store) bump(eventType string, bookID, qty int) Event {
	s.version++
	return Event{
		Type:          eventType,
		BookID:        bookID,
		Quantity:      qty,
		CartCount:     len(s.cart),
		WishlistCount: len(s.wishlist),
		At:            time.Now().UTC(),
	}
}

func (s *Store) notify(ev Event) {
	s.mu.Lock()
	obs := make([]Observer, len(s.observers))
	copy(obs, s.observers)
	s.mu.Unlock()
	for _, fn := range obs {
		fn(ev)
	}
}
