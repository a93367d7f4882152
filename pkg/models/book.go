package models

import "strings"

// Book is the normalized, internal form of a catalog entry.
//
// All remote payload variants are mapped into this structure first,
// then every screen renders from this representation.
type Book struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category,omitempty"` // comma-joined labels
	CategoryID  int     `json:"category_id,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
}

// CategoryLabels splits the comma-joined category string into
// normalized (trimmed, lowercased) labels for filtering.
func (b Book) CategoryLabels() []string {
	if strings.TrimSpace(b.Category) == "" {
		return nil
	}
	parts := strings.Split(b.Category, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// InStock reports whether the book can currently be ordered.
func (b Book) InStock() bool {
	return b.Stock > 0
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
