package books

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"techreads/internal/api"
	"techreads/internal/auth"
	"techreads/internal/catalog"
	"techreads/pkg/models"
)

type Handler struct {
	API   *api.Client
	Guard *auth.Guard
}

func NewHandler(client *api.Client, guard *auth.Guard) *Handler {
	return &Handler{API: client, Guard: guard}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/all-books", h.list)
	rg.GET("/books/:id", h.detail)
}

// RegisterPublicRoutes wires the screens that render without a session.
func (h *Handler) RegisterPublicRoutes(r *gin.Engine) {
	r.GET("/", h.home)
}

type bookView struct {
	models.Book
	InWishlist bool `json:"in_wishlist"`
	InCart     bool `json:"in_cart"`
}

// home is the landing screen: a handful of featured books, no session
// required. A cold catalog is not an error here — the hero section
// renders regardless.
func (h *Handler) home(c *gin.Context) {
	books, err := h.API.ListBooks(c.Request.Context(), "")
	if err != nil {
		books = nil
	}
	if len(books) > 3 {
		books = books[:3]
	}
	_, cookieErr := c.Cookie(h.Guard.Cookie)
	c.JSON(http.StatusOK, gin.H{
		"featured":      books,
		"authenticated": cookieErr == nil,
	})
}

// list is the catalog grid: the full book collection plus the user's
// wishlist/cart membership, fetched concurrently and joined before
// filtering and sorting client-side.
func (h *Handler) list(c *gin.Context) {
	token := auth.Token(c)
	userID := auth.UserID(c)

	var (
		books    []models.Book
		wishlist []models.WishlistEntry
		cart     []models.CartEntry
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		books, err = h.API.ListBooks(ctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		wishlist, err = h.API.GetWishlist(ctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		cart, err = h.API.GetCart(ctx, token, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}

	boundsMin, boundsMax := catalog.PriceBounds(books)
	query := parseCatalogQuery(c)
	filtered := catalog.Filter(books, query)
	if opt, ok := catalog.ParseSort(c.Query("sort")); ok {
		catalog.Sort(filtered, opt, query.Search)
	}

	wished := make(map[int]bool, len(wishlist))
	for _, w := range wishlist {
		wished[w.BookID] = true
	}
	carted := make(map[int]bool, len(cart))
	for _, e := range cart {
		carted[e.BookID] = true
	}

	views := make([]bookView, 0, len(filtered))
	for _, b := range filtered {
		views = append(views, bookView{
			Book:       b,
			InWishlist: wished[b.ID],
			InCart:     carted[b.ID],
		})
	}

	cartCount, wishCount := auth.StoreFor(c).Counts()
	c.JSON(http.StatusOK, gin.H{
		"books":          views,
		"count":          len(views),
		"price_bounds":   gin.H{"min": boundsMin, "max": boundsMax},
		"cart_count":     cartCount,
		"wishlist_count": wishCount,
	})
}

func (h *Handler) detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	token := auth.Token(c)
	userID := auth.UserID(c)

	var (
		book     *models.Book
		wishlist []models.WishlistEntry
		cart     []models.CartEntry
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		book, err = h.API.GetBook(ctx, token, id)
		return err
	})
	g.Go(func() error {
		var err error
		wishlist, err = h.API.GetWishlist(ctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		cart, err = h.API.GetCart(ctx, token, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		if api.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
			return
		}
		h.Guard.RespondAPIError(c, err)
		return
	}

	view := bookView{Book: *book}
	for _, w := range wishlist {
		if w.BookID == id {
			view.InWishlist = true
			break
		}
	}
	for _, e := range cart {
		if e.BookID == id {
			view.InCart = true
			break
		}
	}

	c.JSON(http.StatusOK, view)
}

// parseCatalogQuery reads the grid's filter params. Categories accept
// both repeated params and one comma-joined value.
func parseCatalogQuery(c *gin.Context) catalog.Query {
	categories := c.QueryArray("category")
	if len(categories) == 1 && strings.Contains(categories[0], ",") {
		categories = strings.Split(categories[0], ",")
	}

	q := catalog.Query{
		Categories: categories,
		Search:     c.Query("q"),
	}
	if v := c.Query("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MinPrice, q.HasMin = f, true
		}
	}
	if v := c.Query("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MaxPrice, q.HasMax = f, true
		}
	}
	return q
}
