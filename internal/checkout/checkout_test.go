package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techreads/pkg/models"
)

func TestValidPhone(t *testing.T) {
	valid := []string{
		"0712345678",
		"712345678",
		"254712345678",
		" 0712345678 ",
	}
	for _, s := range valid {
		assert.True(t, ValidPhone(s), s)
	}

	invalid := []string{
		"",
		"0812345678",   // not a 7xx prefix
		"071234567",    // too short
		"07123456789",  // too long
		"25571234567",  // wrong country code
		"+254712345678",
		"07123 45678",
	}
	for _, s := range invalid {
		assert.False(t, ValidPhone(s), s)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"0712345678":   "254712345678",
		"712345678":    "254712345678",
		"254712345678": "254712345678",
	}
	for in, want := range cases {
		got, err := NormalizePhone(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := NormalizePhone("not-a-phone")
	assert.Error(t, err)
}

func entry(price float64, qty int) models.CartEntry {
	return models.CartEntry{Price: price, Quantity: qty}
}

func TestComputeTotals(t *testing.T) {
	cases := []struct {
		name  string
		items []models.CartEntry
		want  Totals
	}{
		{
			name:  "below threshold pays delivery",
			items: []models.CartEntry{entry(2000, 2)},
			want:  Totals{Subtotal: 4000, DeliveryFee: 300, Total: 4300},
		},
		{
			name:  "at threshold ships free",
			items: []models.CartEntry{entry(5000, 1)},
			want:  Totals{Subtotal: 5000, DeliveryFee: 0, Total: 5000},
		},
		{
			name:  "above threshold ships free",
			items: []models.CartEntry{entry(3000, 3)},
			want:  Totals{Subtotal: 9000, DeliveryFee: 0, Total: 9000},
		},
		{
			name:  "empty cart owes nothing",
			items: nil,
			want:  Totals{},
		},
		{
			name: "quantity multiplies the line",
			items: []models.CartEntry{
				entry(1500, 2),
				entry(800, 1),
			},
			want: Totals{Subtotal: 3800, DeliveryFee: 300, Total: 4100},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeTotals(tc.items))
		})
	}
}
