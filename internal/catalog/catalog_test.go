package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techreads/pkg/models"
)

func sampleBooks() []models.Book {
	return []models.Book{
		{ID: 1, Title: "Deep Learning with Python", Price: 3000, Category: "AI"},
		{ID: 2, Title: "The DevOps Handbook", Price: 8000, Category: "DevOps"},
		{ID: 3, Title: "Python Crash Course", Price: 4500, Category: "Programming, Python"},
		{ID: 4, Title: "Site Reliability Engineering", Price: 6200, Category: "DevOps, Operations"},
	}
}

func TestFilterByPriceRange(t *testing.T) {
	got := Filter(sampleBooks(), Query{
		MinPrice: 3500, HasMin: true,
		MaxPrice: 10000, HasMax: true,
	})
	ids := bookIDs(got)
	assert.Equal(t, []int{2, 3, 4}, ids)
}

func TestFilterPriceBoundsAreInclusive(t *testing.T) {
	got := Filter(sampleBooks(), Query{
		MinPrice: 3000, HasMin: true,
		MaxPrice: 3000, HasMax: true,
	})
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}

func TestFilterByCategory(t *testing.T) {
	got := Filter(sampleBooks(), Query{Categories: []string{"DevOps"}})
	assert.Equal(t, []int{2, 4}, bookIDs(got))
}

func TestFilterCategoryMatchesAnySelected(t *testing.T) {
	got := Filter(sampleBooks(), Query{Categories: []string{"AI", "Python"}})
	assert.Equal(t, []int{1, 3}, bookIDs(got))
}

func TestFilterEmptyCategorySelectionMatchesAll(t *testing.T) {
	got := Filter(sampleBooks(), Query{Categories: nil})
	assert.Len(t, got, 4)
}

func TestFilterUnknownCategoryMatchesNothing(t *testing.T) {
	got := Filter(sampleBooks(), Query{Categories: []string{"Cooking"}})
	assert.Empty(t, got)
}

func TestFilterSearchIsMultiTermAnd(t *testing.T) {
	got := Filter(sampleBooks(), Query{Search: "python course"})
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)

	got = Filter(sampleBooks(), Query{Search: "PYTHON"})
	assert.Equal(t, []int{1, 3}, bookIDs(got))
}

func TestFilterCombinesAllPredicates(t *testing.T) {
	got := Filter(sampleBooks(), Query{
		Categories: []string{"Python"},
		MinPrice:   4000, HasMin: true,
		MaxPrice: 5000, HasMax: true,
		Search: "crash",
	})
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)
}

func TestPriceBounds(t *testing.T) {
	min, max := PriceBounds(sampleBooks())
	assert.Equal(t, 3000.0, min)
	assert.Equal(t, 8000.0, max)

	min, max = PriceBounds(nil)
	assert.Zero(t, min)
	assert.Zero(t, max)
}

func TestParseSort(t *testing.T) {
	cases := []struct {
		in   string
		want SortOption
		ok   bool
	}{
		{"price_asc", SortPriceAsc, true},
		{"Price: Low to High", SortPriceAsc, true},
		{"price_desc", SortPriceDesc, true},
		{"Price: High to Low", SortPriceDesc, true},
		{"popularity", SortPopularity, true},
		{"", "", false},
		{"newest", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseSort(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestSortByPrice(t *testing.T) {
	books := sampleBooks()
	Sort(books, SortPriceAsc, "")
	assert.Equal(t, []int{1, 3, 4, 2}, bookIDs(books))

	Sort(books, SortPriceDesc, "")
	assert.Equal(t, []int{2, 4, 3, 1}, bookIDs(books))
}

func TestSortByPopularity(t *testing.T) {
	books := []models.Book{
		{ID: 1, Title: "Go in Action", Price: 3000},
		{ID: 2, Title: "go", Price: 1000},
		{ID: 3, Title: "Rust for Rustaceans", Price: 9000},
		{ID: 4, Title: "The Go Programming Language", Price: 5000},
	}
	Sort(books, SortPopularity, "go")

	// exact match first, then substring matches by price desc, then the rest
	assert.Equal(t, []int{2, 4, 1, 3}, bookIDs(books))
}

func TestSortPopularityWithoutTermFallsBackToPriceDesc(t *testing.T) {
	books := sampleBooks()
	Sort(books, SortPopularity, "")
	assert.Equal(t, []int{2, 4, 3, 1}, bookIDs(books))
}

func bookIDs(books []models.Book) []int {
	ids := make([]int, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	return ids
}
