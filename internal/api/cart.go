package api

import (
	"context"
	"fmt"
	"net/http"

	"techreads/pkg/models"
)

// GetCart fetches the authoritative cart contents for a user. The
// remote service keys the cart by the token's subject id.
func (c *Client) GetCart(ctx context.Context, token, userID string) ([]models.CartEntry, error) {
	var raw []rawCartEntry
	if err := c.do(ctx, http.MethodGet, "/cart/"+userID, token, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]models.CartEntry, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.normalize())
	}
	return out, nil
}

// AddToCart persists a cart addition remotely. The increment-vs-insert
// decision is the server's; the local shared store applies the same
// rule independently.
func (c *Client) AddToCart(ctx context.Context, token string, bookID, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	payload := map[string]int{"quantity": quantity}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/cart/%d", bookID), token, payload, nil)
}

// RemoveFromCart deletes a cart line by its remote row id.
func (c *Client) RemoveFromCart(ctx context.Context, token string, entryID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/%d", entryID), token, nil, nil)
}
