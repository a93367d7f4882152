package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techreads/pkg/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestBearerTokenHeader(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]rawBook{})
	})

	_, err := c.ListBooks(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]rawBook{})
	})

	_, err := c.ListBooks(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUnauthorizedError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	})

	_, err := c.ListOrders(context.Background(), "stale")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "token expired")
}

func TestNotFoundError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"no such book"}`))
	})

	_, err := c.GetBook(context.Background(), "tok", 99)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "no such book")
}

func TestBookNormalization(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":1,"title":" Clean Code ","author":"Martin","price":3500,"stock":4,"image":"legacy.jpg"},
			{"id":2,"title":"SRE","price":6000,"image_url":"new.jpg","image":"old.jpg"}
		]`))
	})

	books, err := c.ListBooks(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, "Clean Code", books[0].Title)
	assert.Equal(t, "legacy.jpg", books[0].ImageURL, "image falls back to the legacy key")
	assert.Equal(t, "new.jpg", books[1].ImageURL, "image_url wins when both are present")
}

func TestCartNormalization(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart/u-7", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":10,"book_id":3,"name":"Old Title Key","price":900,"quantity":2},
			{"id":11,"title":"Missing Book ID","price":500}
		]`))
	})

	items, err := c.GetCart(context.Background(), "tok", "u-7")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Old Title Key", items[0].Title)
	assert.Equal(t, 3, items[0].BookID)
	assert.Equal(t, 2, items[0].Quantity)

	assert.Equal(t, 11, items[1].BookID, "book id falls back to the row id")
	assert.Equal(t, 1, items[1].Quantity, "quantity floors at 1")
}

func TestAddToCartPayload(t *testing.T) {
	var gotPath string
	var gotBody map[string]int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})

	require.NoError(t, c.AddToCart(context.Background(), "tok", 42, 3))
	assert.Equal(t, "/cart/42", gotPath)
	assert.Equal(t, map[string]int{"quantity": 3}, gotBody)
}

func TestAddToWishlistDetectsDuplicate(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			_, _ = w.Write([]byte(`{"message":"added to wishlist"}`))
			return
		}
		_, _ = w.Write([]byte(`{"message":"Book already in wishlist"}`))
	})

	added, err := c.AddToWishlist(context.Background(), "tok", 5)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = c.AddToWishlist(context.Background(), "tok", 5)
	require.NoError(t, err)
	assert.False(t, added)
}

func TestLoginAcceptsBothTokenKeys(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "jane@example.com", req["email"])
		_, _ = w.Write([]byte(`{"access_token":"abc","user":{"id":"7","name":"Jane","email":"jane@example.com"}}`))
	})

	sess, err := c.Login(context.Background(), "jane@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "abc", sess.Token)
	assert.Equal(t, "Jane", sess.User.Name)

	legacy := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"xyz"}`))
	})
	sess, err = legacy.Login(context.Background(), "a@b.co", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "xyz", sess.Token)
}

func TestOrderNormalization(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":1,"status":"shipped","datetime":"2025-03-01 10:30:00","total":4200},
			{"id":2,"status":"bogus","created_at":"2025-04-02T08:00:00Z","items":[{"book_id":3,"name":"Old Key","price":700,"quantity":2}]}
		]`))
	})

	orders, err := c.ListOrders(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, models.StatusShipped, orders[0].Status)
	assert.Equal(t, 2025, orders[0].CreatedAt.Year())

	assert.Equal(t, models.StatusPending, orders[1].Status, "unknown statuses default to Pending")
	require.Len(t, orders[1].Items, 1)
	assert.Equal(t, "Old Key", orders[1].Items[0].Title)
}

func TestUpdateOrderStatusSynthesizesBareResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/orders/9", r.URL.Path)
		_, _ = w.Write([]byte(`{"message":"updated"}`))
	})

	order, err := c.UpdateOrderStatus(context.Background(), "tok", 9, models.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, 9, order.ID)
	assert.Equal(t, models.StatusDelivered, order.Status)
}

func TestSTKPush(t *testing.T) {
	var got STKPushRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mpesa/stkpush", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"message":"sent","checkout_request_id":"ws_CO_1"}`))
	})

	resp, err := c.STKPush(context.Background(), "tok", STKPushRequest{
		PhoneNumber: "254712345678",
		Amount:      4300,
		OrderID:     12,
	})
	require.NoError(t, err)
	assert.Equal(t, "254712345678", got.PhoneNumber)
	assert.Equal(t, "ws_CO_1", resp.CheckoutID)
}
