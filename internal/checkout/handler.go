package checkout

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"techreads/internal/api"
	"techreads/internal/auth"
)

// Handler is the checkout screen: an order preview priced from the
// live remote cart, and payment kicked off through an STK push to the
// customer's phone.
type Handler struct {
	API   *api.Client
	Guard *auth.Guard
}

func NewHandler(client *api.Client, guard *auth.Guard) *Handler {
	return &Handler{API: client, Guard: guard}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/checkout", h.preview)
	rg.POST("/checkout", h.pay)
}

func (h *Handler) preview(c *gin.Context) {
	items, err := h.API.GetCart(c.Request.Context(), auth.Token(c), auth.UserID(c))
	if err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}

	totals := ComputeTotals(items)
	c.JSON(http.StatusOK, gin.H{
		"items":                   items,
		"totals":                  totals,
		"free_delivery_threshold": FreeDeliveryThreshold,
	})
}

type payReq struct {
	PhoneNumber string  `json:"phone_number" binding:"required"`
	OrderID     int     `json:"order_id"`
	Amount      float64 `json:"amount"`
}

func (h *Handler) pay(c *gin.Context) {
	var req payReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone_number is required"})
		return
	}

	phone, err := NormalizePhone(req.PhoneNumber)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "enter a valid Safaricom number, e.g. 0712345678 or 254712345678"})
		return
	}

	token := auth.Token(c)
	amount := req.Amount
	if amount <= 0 {
		items, err := h.API.GetCart(c.Request.Context(), token, auth.UserID(c))
		if err != nil {
			h.Guard.RespondAPIError(c, err)
			return
		}
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			return
		}
		amount = ComputeTotals(items).Total
	}

	resp, err := h.API.STKPush(c.Request.Context(), token, api.STKPushRequest{
		PhoneNumber: phone,
		Amount:      amount,
		OrderID:     req.OrderID,
	})
	if err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}

	log.WithFields(log.Fields{
		"user":   auth.UserID(c),
		"amount": amount,
	}).Info("stk push initiated")

	msg := resp.Message
	if msg == "" {
		msg = "payment request sent, check your phone"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     msg,
		"checkout_id": resp.CheckoutID,
		"amount":      amount,
	})
}
