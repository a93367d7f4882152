package api

import (
	"context"
	"fmt"
	"net/http"

	"techreads/pkg/models"
)

// ListBooks fetches the full catalog. The catalog endpoint is public in
// some deployments and guarded in others, so the token is passed along
// whenever the caller has one.
func (c *Client) ListBooks(ctx context.Context, token string) ([]models.Book, error) {
	var raw []rawBook
	if err := c.do(ctx, http.MethodGet, "/books", token, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]models.Book, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.normalize())
	}
	return out, nil
}

func (c *Client) GetBook(ctx context.Context, token string, id int) (*models.Book, error) {
	var raw rawBook
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/books/%d", id), token, nil, &raw); err != nil {
		return nil, err
	}
	b := raw.normalize()
	return &b, nil
}

func (c *Client) ListCategories(ctx context.Context, token string) ([]models.Category, error) {
	var out []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BookInput is the admin create/edit payload.
type BookInput struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  int     `json:"category_id"`
	ImageURL    string  `json:"image_url"`
}

func (c *Client) CreateBook(ctx context.Context, token string, in BookInput) (*models.Book, error) {
	var raw rawBook
	if err := c.do(ctx, http.MethodPost, "/books", token, in, &raw); err != nil {
		return nil, err
	}
	b := raw.normalize()
	return &b, nil
}

func (c *Client) UpdateBook(ctx context.Context, token string, id int, in BookInput) (*models.Book, error) {
	var raw rawBook
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/books/%d", id), token, in, &raw); err != nil {
		return nil, err
	}
	b := raw.normalize()
	return &b, nil
}

func (c *Client) DeleteBook(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/books/%d", id), token, nil, nil)
}
