package api

import (
	"context"
	"fmt"
	"net/http"

	"techreads/pkg/models"
)

func (c *Client) ListOrders(ctx context.Context, token string) ([]models.Order, error) {
	var raw []rawOrder
	if err := c.do(ctx, http.MethodGet, "/orders", token, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]models.Order, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.normalize())
	}
	return out, nil
}

// UpdateOrderStatus sends the desired target status. Whether the
// transition is allowed is entirely the server's call.
func (c *Client) UpdateOrderStatus(ctx context.Context, token string, orderID int, status models.OrderStatus) (*models.Order, error) {
	payload := map[string]string{"status": string(status)}
	var raw rawOrder
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d", orderID), token, payload, &raw); err != nil {
		return nil, err
	}
	o := raw.normalize()
	if o.ID == 0 {
		// some revisions answer with a bare message; synthesize the row
		o = models.Order{ID: orderID, Status: status}
	}
	return &o, nil
}
