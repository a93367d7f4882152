package orders

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"techreads/internal/api"
	"techreads/internal/auth"
	"techreads/pkg/models"
)

// Handler renders the profile and order-history screens.
type Handler struct {
	API   *api.Client
	Guard *auth.Guard
}

func NewHandler(client *api.Client, guard *auth.Guard) *Handler {
	return &Handler{API: client, Guard: guard}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.profile)
	rg.GET("/orders", h.list)
}

func (h *Handler) profile(c *gin.Context) {
	orders, err := h.API.ListOrders(c.Request.Context(), auth.Token(c))
	if err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}

	cartCount, wishCount := auth.StoreFor(c).Counts()
	c.JSON(http.StatusOK, gin.H{
		"user":           auth.CurrentUser(c),
		"orders":         orders,
		"order_count":    len(orders),
		"cart_count":     cartCount,
		"wishlist_count": wishCount,
	})
}

func (h *Handler) list(c *gin.Context) {
	orders, err := h.API.ListOrders(c.Request.Context(), auth.Token(c))
	if err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// AdminHandler is the back-office order view: every order, with status
// transitions pushed to the remote service.
type AdminHandler struct {
	API   *api.Client
	Guard *auth.Guard
}

func NewAdminHandler(client *api.Client, guard *auth.Guard) *AdminHandler {
	return &AdminHandler{API: client, Guard: guard}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders", h.list)
	rg.PATCH("/orders/:id", h.setStatus)
}

func (h *AdminHandler) list(c *gin.Context) {
	var (
		orders []models.Order
		books  []models.Book
	)
	token := auth.Token(c)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		orders, err = h.API.ListOrders(ctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = h.API.ListBooks(ctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}

	titles := make(map[int]string, len(books))
	for _, b := range books {
		titles[b.ID] = b.Title
	}
	// fill in titles the order rows came back without
	for i := range orders {
		for j := range orders[i].Items {
			it := &orders[i].Items[j]
			if it.Title == "" {
				it.Title = titles[it.BookID]
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":   orders,
		"count":    len(orders),
		"statuses": models.OrderStatuses,
	})
}

type statusReq struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminHandler) setStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	status := models.OrderStatus(req.Status)
	if !models.ValidOrderStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown order status"})
		return
	}

	order, err := h.API.UpdateOrderStatus(c.Request.Context(), auth.Token(c), id, status)
	if err != nil {
		if api.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		h.Guard.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
