package api

import (
	"context"
	"net/http"
)

// STKPushRequest initiates a mobile-money payment prompt on the buyer's
// phone. Gateway protocol details beyond this call are the payment
// collaborator's business.
type STKPushRequest struct {
	PhoneNumber string  `json:"phone_number"`
	Amount      float64 `json:"amount"`
	OrderID     int     `json:"order_id"`
}

type STKPushResponse struct {
	Message    string `json:"message"`
	CheckoutID string `json:"checkout_request_id,omitempty"`
}

func (c *Client) STKPush(ctx context.Context, token string, req STKPushRequest) (*STKPushResponse, error) {
	var resp STKPushResponse
	if err := c.do(ctx, http.MethodPost, "/mpesa/stkpush", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
