package checkout

import (
	"fmt"
	"regexp"
	"strings"

	"techreads/pkg/models"
)

// Safaricom number, with or without the country code.
var phoneRe = regexp.MustCompile(`^(?:254|0)?7[0-9]{8}$`)

// Orders at or above the threshold ship free.
const (
	FreeDeliveryThreshold = 5000.0
	DeliveryFee           = 300.0
)

func ValidPhone(s string) bool {
	return phoneRe.MatchString(strings.TrimSpace(s))
}

// NormalizePhone converts any accepted input form to the canonical
// 2547XXXXXXXX the payment gateway expects.
func NormalizePhone(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !phoneRe.MatchString(s) {
		return "", fmt.Errorf("invalid phone number %q", s)
	}
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "254"), "0")
	return "254" + digits, nil
}

type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`
}

// ComputeTotals sums the cart lines and applies the delivery fee rule.
func ComputeTotals(items []models.CartEntry) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Subtotal()
	}
	fee := DeliveryFee
	if subtotal >= FreeDeliveryThreshold || subtotal == 0 {
		fee = 0
	}
	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal + fee,
	}
}
