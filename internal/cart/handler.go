package cart

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"techreads/internal/api"
	"techreads/internal/auth"
	"techreads/internal/checkout"
	"techreads/pkg/models"
)

// Handler covers the cart and wishlist screens. The remote service is
// the source of truth for what each screen lists; the shared store is
// mutated alongside every action so badge counts track without a
// reload. A failed remote call leaves the store untouched.
type Handler struct {
	API   *api.Client
	Guard *auth.Guard
}

func NewHandler(client *api.Client, guard *auth.Guard) *Handler {
	return &Handler{API: client, Guard: guard}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cart", h.showCart)
	rg.POST("/cart/:bookId", h.addToCart)
	rg.DELETE("/cart/:id", h.removeFromCart)
	rg.POST("/cart/:bookId/move-to-wishlist", h.moveToWishlist)

	rg.GET("/wishlist", h.showWishlist)
	rg.POST("/wishlist/:bookId", h.addToWishlist)
	rg.DELETE("/wishlist/:id", h.removeFromWishlist)
	rg.POST("/wishlist/:bookId/add-to-cart", h.moveToCart)
}

type cartLine struct {
	models.CartEntry
	Subtotal float64 `json:"subtotal"`
}

func (h *Handler) showCart(c *gin.Context) {
	items, err := h.API.GetCart(c.Request.Context(), auth.Token(c), auth.UserID(c))
	if err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}

	lines := make([]cartLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, cartLine{CartEntry: it, Subtotal: it.Subtotal()})
	}

	cartCount, wishCount := auth.StoreFor(c).Counts()
	c.JSON(http.StatusOK, gin.H{
		"items":          lines,
		"totals":         checkout.ComputeTotals(items),
		"cart_count":     cartCount,
		"wishlist_count": wishCount,
	})
}

func (h *Handler) addToCart(c *gin.Context) {
	bookID, err := strconv.Atoi(c.Param("bookId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	_ = c.ShouldBindJSON(&body) // empty body means quantity 1
	if body.Quantity < 1 {
		body.Quantity = 1
	}

	token := auth.Token(c)
	book, err := h.API.GetBook(c.Request.Context(), token, bookID)
	if err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}

	if err := h.API.AddToCart(c.Request.Context(), token, bookID, body.Quantity); err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}

	st := auth.StoreFor(c)
	for i := 0; i < body.Quantity; i++ {
		st.AddToCart(*book)
	}

	cartCount, wishCount := st.Counts()
	c.JSON(http.StatusOK, gin.H{
		"message":        "added to cart",
		"cart_count":     cartCount,
		"wishlist_count": wishCount,
	})
}

func (h *Handler) removeFromCart(c *gin.Context) {
	entryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart entry id"})
		return
	}

	token := auth.Token(c)
	bookID, ok := h.cartBookID(c, token, entryID)
	if !ok {
		return
	}

	if err := h.API.RemoveFromCart(c.Request.Context(), token, entryID); err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}

	st := auth.StoreFor(c)
	st.RemoveFromCart(bookID)

	cartCount, wishCount := st.Counts()
	c.JSON(http.StatusOK, gin.H{
		"message":        "removed from cart",
		"cart_count":     cartCount,
		"wishlist_count": wishCount,
	})
}

func (h *Handler) moveToWishlist(c *gin.Context) {
	bookID, err := strconv.Atoi(c.Param("bookId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	token := auth.Token(c)
	items, err := h.API.GetCart(c.Request.Context(), token, auth.UserID(c))
	if err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}

	entryID := 0
	for _, it := range items {
		if it.BookID == bookID {
			entryID = it.ID
			break
		}
	}
	if entryID == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not in cart"})
		return
	}

	if _, err := h.API.AddToWishlist(c.Request.Context(), token, bookID); err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}
	if err := h.API.RemoveFromCart(c.Request.Context(), token, entryID); err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}

	st := auth.StoreFor(c)
	st.MoveToWishlist(bookID)

	cartCount, wishCount := st.Counts()
	c.JSON(http.StatusOK, gin.H{
		"message":        "moved to wishlist",
		"cart_count":     cartCount,
		"wishlist_count": wishCount,
	})
}

func (h *Handler) showWishlist(c *gin.Context) {
	items, err := h.API.GetWishlist(c.Request.Context(), auth.Token(c))
	if err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}

	cartCount, wishCount := auth.StoreFor(c).Counts()
	c.JSON(http.StatusOK, gin.H{
		"items":          items,
		"cart_count":     cartCount,
		"wishlist_count": wishCount,
	})
}

func (h *Handler) addToWishlist(c *gin.Context) {
	bookID, err := strconv.Atoi(c.Param("bookId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	token := auth.Token(c)
	book, err := h.API.GetBook(c.Request.Context(), token, bookID)
	if err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}

	added, err := h.API.AddToWishlist(c.Request.Context(), token, bookID)
	if err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}

	st := auth.StoreFor(c)
	st.AddToWishlist(*book) // idempotent either way

	msg := "added to wishlist"
	if !added {
		msg = "already in wishlist"
	}
	cartCount, wishCount := st.Counts()
	c.JSON(http.StatusOK, gin.H{
		"message":        msg,
		"cart_count":     cartCount,
		"wishlist_count": wishCount,
	})
}

func (h *Handler) removeFromWishlist(c *gin.Context) {
	entryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wishlist entry id"})
		return
	}

	token := auth.Token(c)
	items, err := h.API.GetWishlist(c.Request.Context(), token)
	if err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}
	bookID := 0
	for _, it := range items {
		if it.ID == entryID {
			bookID = it.BookID
			break
		}
	}

	if err := h.API.RemoveFromWishlist(c.Request.Context(), token, entryID); err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}

	st := auth.StoreFor(c)
	if bookID != 0 {
		st.RemoveFromWishlist(bookID)
	}

	cartCount, wishCount := st.Counts()
	c.JSON(http.StatusOK, gin.H{
		"message":        "removed from wishlist",
		"cart_count":     cartCount,
		"wishlist_count": wishCount,
	})
}

func (h *Handler) moveToCart(c *gin.Context) {
	bookID, err := strconv.Atoi(c.Param("bookId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	token := auth.Token(c)
	items, err := h.API.GetWishlist(c.Request.Context(), token)
	if err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}
	entryID := 0
	for _, it := range items {
		if it.BookID == bookID {
			entryID = it.ID
			break
		}
	}
	if entryID == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not in wishlist"})
		return
	}

	if err := h.API.AddToCart(c.Request.Context(), token, bookID, 1); err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}
	if err := h.API.RemoveFromWishlist(c.Request.Context(), token, entryID); err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}

	st := auth.StoreFor(c)
	st.MoveToCart(bookID)

	cartCount, wishCount := st.Counts()
	c.JSON(http.StatusOK, gin.H{
		"message":        "added to cart",
		"cart_count":     cartCount,
		"wishlist_count": wishCount,
	})
}

// cartBookID resolves a remote cart row id to its book id so the store
// mutation targets the right entry. Responds on failure.
func (h *Handler) cartBookID(c *gin.Context, token string, entryID int) (int, bool) {
	items, err := h.API.GetCart(c.Request.Context(), token, auth.UserID(c))
	if err != nil {
		h.Guard.RespondAPIError(c, err)
		return 0, false
	}
	for _, it := range items {
		if it.ID == entryID {
			return it.BookID, true
		}
	}
	// unknown row: let the delete proceed, the store has nothing to drop
	return 0, true
}
