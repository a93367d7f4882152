package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryLabels(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"AI", []string{"ai"}},
		{"Programming, Python", []string{"programming", "python"}},
		{" DevOps ,  , Operations", []string{"devops", "operations"}},
		{"", nil},
		{"   ", nil},
	}
	for _, tc := range cases {
		b := Book{Category: tc.in}
		assert.Equal(t, tc.want, b.CategoryLabels(), tc.in)
	}
}

func TestInStock(t *testing.T) {
	assert.True(t, Book{Stock: 1}.InStock())
	assert.False(t, Book{Stock: 0}.InStock())
	assert.False(t, Book{Stock: -1}.InStock())
}

func TestCartEntrySubtotal(t *testing.T) {
	e := CartEntry{Price: 1500, Quantity: 3}
	assert.Equal(t, 4500.0, e.Subtotal())
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, ValidOrderStatus(s), string(s))
	}
	assert.False(t, ValidOrderStatus("Refunded"))
	assert.False(t, ValidOrderStatus("pending"), "status check is case sensitive")
}
