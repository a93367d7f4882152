package models

// CartEntry is one line of the shopping cart. At most one entry exists
// per book id; repeated adds increment Quantity instead of duplicating.
type CartEntry struct {
	ID       int     `json:"id,omitempty"` // remote row id, 0 for local-only entries
	BookID   int     `json:"book_id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url,omitempty"`
	Quantity int     `json:"quantity"`
}

// Subtotal is price times quantity for this line.
func (e CartEntry) Subtotal() float64 {
	return e.Price * float64(e.Quantity)
}

// WishlistEntry references a saved book. Entries are unique per book id;
// duplicate adds are no-ops.
type WishlistEntry struct {
	ID       int     `json:"id,omitempty"` // remote row id, 0 for local-only entries
	BookID   int     `json:"book_id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url,omitempty"`
	Stock    int     `json:"stock,omitempty"`
}
