package catalog

import (
	"strings"

	"techreads/pkg/models"
)

// Query holds the client-side catalog filters. Zero values mean
// "unconstrained": an empty category selection matches every book, and
// price bounds default to the fetched catalog's actual min/max.
type Query struct {
	Categories []string
	MinPrice   float64
	MaxPrice   float64
	HasMin     bool
	HasMax     bool
	Search     string
}

// Filter applies category, price-range, and title-search filters in
// that order. Category labels are comma-split, trimmed, and lowercased
// before comparison; a selected category matches by substring against
// the book's tags. The price range is inclusive on both bounds. The
// search is multi-term, case-insensitive, AND semantics over the title.
func Filter(books []models.Book, q Query) []models.Book {
	selected := normalizeAll(q.Categories)
	terms := searchTerms(q.Search)

	min, max := q.MinPrice, q.MaxPrice
	if !q.HasMin || !q.HasMax {
		lo, hi := PriceBounds(books)
		if !q.HasMin {
			min = lo
		}
		if !q.HasMax {
			max = hi
		}
	}

	out := make([]models.Book, 0, len(books))
	for _, b := range books {
		if !matchesCategory(b, selected) {
			continue
		}
		if b.Price < min || b.Price > max {
			continue
		}
		if !matchesSearch(b, terms) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// PriceBounds returns the catalog's actual min and max price. An empty
// catalog yields (0, 0).
func PriceBounds(books []models.Book) (min, max float64) {
	if len(books) == 0 {
		return 0, 0
	}
	min, max = books[0].Price, books[0].Price
	for _, b := range books[1:] {
		if b.Price < min {
			min = b.Price
		}
		if b.Price > max {
			max = b.Price
		}
	}
	return min, max
}

func matchesCategory(b models.Book, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	labels := b.CategoryLabels()
	for _, sel := range selected {
		for _, label := range labels {
			if strings.Contains(label, sel) {
				return true
			}
		}
	}
	return false
}

func matchesSearch(b models.Book, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	title := strings.ToLower(b.Title)
	for _, t := range terms {
		if !strings.Contains(title, t) {
			return false
		}
	}
	return true
}

func searchTerms(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	out := fields[:0]
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func normalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
