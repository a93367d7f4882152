package api

import (
	"context"
	"net/http"

	"techreads/pkg/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string      `json:"access_token"`
	Token       string      `json:"token"` // older revisions of the service
	User        models.User `json:"user"`
}

// Login exchanges credentials for a bearer token and profile.
func (c *Client) Login(ctx context.Context, email, password string) (*models.Session, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/login", "", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	token := resp.AccessToken
	if token == "" {
		token = resp.Token
	}
	return &models.Session{Token: token, User: resp.User}, nil
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account. The service does not log the user in on
// register; callers follow up with Login.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	return c.do(ctx, http.MethodPost, "/register", "", registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, nil)
}
