package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"techreads/pkg/models"
)

func (c *Client) GetWishlist(ctx context.Context, token string) ([]models.WishlistEntry, error) {
	var raw []rawWishlistEntry
	if err := c.do(ctx, http.MethodGet, "/wishlist", token, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]models.WishlistEntry, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.normalize())
	}
	return out, nil
}

// AddToWishlist persists a wishlist addition. Returns false when the
// book was already wishlisted — the service signals that with a message
// body rather than a conflict status.
func (c *Client) AddToWishlist(ctx context.Context, token string, bookID int) (added bool, err error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/wishlist/%d", bookID), token, nil, &resp); err != nil {
		return false, err
	}
	if strings.Contains(strings.ToLower(resp.Message), "already") {
		return false, nil
	}
	return true, nil
}

// RemoveFromWishlist deletes a wishlist row by its remote row id.
func (c *Client) RemoveFromWishlist(ctx context.Context, token string, entryID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/wishlist/%d", entryID), token, nil, nil)
}
