package api

import (
	"strconv"
	"strings"
	"time"

	"techreads/pkg/models"
)

// The remote service is loose about payload shapes: book covers arrive
// as "image" or "image_url" depending on the revision that wrote them,
// cart lines use "name" or "title", and order timestamps use "datetime"
// or "created_at". Every raw shape is mapped into pkg/models right
// here, so nothing downstream branches on field presence.

type rawBook struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	CategoryID  int     `json:"category_id"`
	Image       string  `json:"image"`
	ImageURL    string  `json:"image_url"`
	Rating      float64 `json:"rating"`
}

func (r rawBook) normalize() models.Book {
	return models.Book{
		ID:          r.ID,
		Title:       strings.TrimSpace(r.Title),
		Author:      strings.TrimSpace(r.Author),
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		Category:    r.Category,
		CategoryID:  r.CategoryID,
		ImageURL:    firstNonEmpty(r.ImageURL, r.Image),
		Rating:      r.Rating,
	}
}

type rawCartEntry struct {
	ID       int     `json:"id"`
	BookID   int     `json:"book_id"`
	Title    string  `json:"title"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
	ImageURL string  `json:"image_url"`
}

func (r rawCartEntry) normalize() models.CartEntry {
	bookID := r.BookID
	if bookID == 0 {
		bookID = r.ID
	}
	qty := r.Quantity
	if qty < 1 {
		qty = 1
	}
	return models.CartEntry{
		ID:       r.ID,
		BookID:   bookID,
		Title:    firstNonEmpty(r.Title, r.Name),
		Price:    r.Price,
		Quantity: qty,
		ImageURL: firstNonEmpty(r.ImageURL, r.Image),
	}
}

type rawWishlistEntry struct {
	ID       int     `json:"id"`
	BookID   int     `json:"book_id"`
	Title    string  `json:"title"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Image    string  `json:"image"`
	ImageURL string  `json:"image_url"`
}

func (r rawWishlistEntry) normalize() models.WishlistEntry {
	bookID := r.BookID
	if bookID == 0 {
		bookID = r.ID
	}
	return models.WishlistEntry{
		ID:       r.ID,
		BookID:   bookID,
		Title:    firstNonEmpty(r.Title, r.Name),
		Price:    r.Price,
		Stock:    r.Stock,
		ImageURL: firstNonEmpty(r.ImageURL, r.Image),
	}
}

type rawOrder struct {
	ID        int            `json:"id"`
	Status    string         `json:"status"`
	Datetime  string         `json:"datetime"`
	CreatedAt string         `json:"created_at"`
	Total     float64        `json:"total"`
	Items     []rawOrderItem `json:"items"`
}

type rawOrderItem struct {
	BookID   int     `json:"book_id"`
	Title    string  `json:"title"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func (r rawOrder) normalize() models.Order {
	o := models.Order{
		ID:        r.ID,
		Status:    normalizeStatus(r.Status),
		CreatedAt: parseTimestamp(firstNonEmpty(r.CreatedAt, r.Datetime)),
		Total:     r.Total,
	}
	for _, it := range r.Items {
		o.Items = append(o.Items, models.OrderItem{
			BookID:   it.BookID,
			Title:    firstNonEmpty(it.Title, it.Name),
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}
	return o
}

// normalizeStatus maps whatever casing the server used onto the known
// enum; unknown values default to Pending rather than leaking through.
func normalizeStatus(s string) models.OrderStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "processing":
		return models.StatusProcessing
	case "shipped":
		return models.StatusShipped
	case "delivered":
		return models.StatusDelivered
	case "cancelled", "canceled":
		return models.StatusCancelled
	default:
		return models.StatusPending
	}
}

func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	// numeric epoch seconds as a last resort
	if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil && n > 0 {
		return time.Unix(n, 0).UTC()
	}
	return time.Time{}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
