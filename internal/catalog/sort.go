package catalog

import (
	"sort"
	"strings"

	"techreads/pkg/models"
)

type SortOption string

const (
	SortPriceAsc   SortOption = "price_asc"
	SortPriceDesc  SortOption = "price_desc"
	SortPopularity SortOption = "popularity"
)

// ParseSort maps the UI's sort values (including the original labels)
// onto a SortOption. Unknown values mean "no sort".
func ParseSort(s string) (SortOption, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price_asc", "price: low to high", "low-to-high":
		return SortPriceAsc, true
	case "price_desc", "price: high to low", "high-to-low":
		return SortPriceDesc, true
	case "popularity", "popular":
		return SortPopularity, true
	default:
		return "", false
	}
}

// Sort orders books in place. Popularity ranks exact title matches of
// the search term first, then substring matches, then everything else,
// breaking ties by descending price.
func Sort(books []models.Book, opt SortOption, searchTerm string) {
	switch opt {
	case SortPriceAsc:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].Price < books[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].Price > books[j].Price
		})
	case SortPopularity:
		term := strings.ToLower(strings.TrimSpace(searchTerm))
		sort.SliceStable(books, func(i, j int) bool {
			si, sj := popularityScore(books[i], term), popularityScore(books[j], term)
			if si != sj {
				return si > sj
			}
			return books[i].Price > books[j].Price
		})
	}
}

func popularityScore(b models.Book, term string) int {
	if term == "" {
		return 0
	}
	title := strings.ToLower(b.Title)
	switch {
	case title == term:
		return 2
	case strings.Contains(title, term):
		return 1
	default:
		return 0
	}
}
