package books

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"techreads/internal/api"
	"techreads/internal/auth"
	"techreads/pkg/models"
)

// AdminHandler is the back-office: book management and the dashboard.
// It proxies writes straight to the remote service; the server decides
// what an admin token may do.
type AdminHandler struct {
	API   *api.Client
	Guard *auth.Guard
}

func NewAdminHandler(client *api.Client, guard *auth.Guard) *AdminHandler {
	return &AdminHandler{API: client, Guard: guard}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.dashboard)
	rg.GET("/books", h.list)
	rg.POST("/books", h.create)
	rg.PATCH("/books/:id", h.update)
	rg.DELETE("/books/:id", h.remove)
}

// BookForm mirrors the management form's required fields. Description
// is the only optional one.
type BookForm struct {
	Title       string  `json:"title" binding:"required"`
	Author      string  `json:"author" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Stock       *int    `json:"stock" binding:"required,gte=0"`
	CategoryID  int     `json:"category_id" binding:"required"`
	ImageURL    string  `json:"image_url" binding:"required,url"`
}

func (f BookForm) toInput() api.BookInput {
	return api.BookInput{
		Title:       f.Title,
		Author:      f.Author,
		Description: f.Description,
		Price:       f.Price,
		Stock:       *f.Stock,
		CategoryID:  f.CategoryID,
		ImageURL:    f.ImageURL,
	}
}

func (h *AdminHandler) dashboard(c *gin.Context) {
	token := auth.Token(c)

	var (
		books  []models.Book
		orders []models.Order
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		books, err = h.API.ListBooks(ctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = h.API.ListOrders(ctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}

	var revenue float64
	monthly := map[string]float64{}
	for _, o := range orders {
		if o.Status == models.StatusCancelled {
			continue
		}
		revenue += o.Total
		if !o.CreatedAt.IsZero() {
			monthly[o.CreatedAt.Format("2006-01")] += o.Total
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_books":     len(books),
		"total_orders":    len(orders),
		"total_revenue":   revenue,
		"monthly_revenue": monthly,
	})
}

func (h *AdminHandler) list(c *gin.Context) {
	token := auth.Token(c)

	var (
		books      []models.Book
		categories []models.Category
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		books, err = h.API.ListBooks(ctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = h.API.ListCategories(ctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"books":      books,
		"categories": categories,
	})
}

func (h *AdminHandler) create(c *gin.Context) {
	var form BookForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, author, price, stock, category_id and image_url are required"})
		return
	}

	book, err := h.API.CreateBook(c.Request.Context(), auth.Token(c), form.toInput())
	if err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (h *AdminHandler) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	var form BookForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, author, price, stock, category_id and image_url are required"})
		return
	}

	book, err := h.API.UpdateBook(c.Request.Context(), auth.Token(c), id, form.toInput())
	if err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *AdminHandler) remove(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	if err := h.API.DeleteBook(c.Request.Context(), auth.Token(c), id); err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
