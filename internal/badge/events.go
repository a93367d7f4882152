package badge

import (
	"time"

	"techreads/internal/store"
)

// StoreEvent is the wire form of a store mutation, tagged with the user
// whose badges changed so listeners can filter.
type StoreEvent struct {
	Type          string    `json:"type"` // "cart.update" or "wishlist.update"
	UserID        string    `json:"user_id"`
	BookID        int       `json:"book_id"`
	Quantity      int       `json:"quantity,omitempty"`
	CartCount     int       `json:"cart_count"`
	WishlistCount int       `json:"wishlist_count"`
	At            time.Time `json:"at"`
}

func FromStore(userID string, ev store.Event) StoreEvent {
	return StoreEvent{
		Type:          ev.Type,
		UserID:        userID,
		BookID:        ev.BookID,
		Quantity:      ev.Quantity,
		CartCount:     ev.CartCount,
		WishlistCount: ev.WishlistCount,
		At:            ev.At,
	}
}
