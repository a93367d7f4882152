package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"techreads/internal/api"
	"techreads/internal/session"
	"techreads/internal/store"
)

const sessionMaxAge = 30 * 24 * 60 * 60 // seconds

type Handler struct {
	API      *api.Client
	Sessions *session.Repo
	Stores   *store.Registry
	Guard    *Guard
	Cookie   string
}

func NewHandler(client *api.Client, sessions *session.Repo, stores *store.Registry, guard *Guard, cookie string) *Handler {
	return &Handler{API: client, Sessions: sessions, Stores: stores, Guard: guard, Cookie: cookie}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/login", h.login)
	r.POST("/register", h.register)
	r.POST("/logout", h.logout)
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and a password of at least 6 characters are required"})
		return
	}

	sess, err := h.API.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}

	claims, err := session.DecodeToken(sess.Token)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "identity provider returned an unreadable token"})
		return
	}
	if sess.User.ID == "" {
		sess.User.ID = claims.Subject
	}

	sid := uuid.NewString()
	if err := h.Sessions.Put(c.Request.Context(), sid, *sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "saving session failed"})
		return
	}

	c.SetCookie(h.Cookie, sid, sessionMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"user":  sess.User,
		"token": sess.Token,
	})
}

type registerReq struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username (3-30 chars), valid email, and a password of at least 6 characters are required"})
		return
	}

	if err := h.API.Register(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		h.Guard.RespondAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "account created, please log in"})
}

func (h *Handler) logout(c *gin.Context) {
	sid, err := c.Cookie(h.Cookie)
	if err == nil && sid != "" {
		if stored, err := h.Sessions.Get(c.Request.Context(), sid); err == nil && stored != nil {
			if claims, err := session.DecodeToken(stored.Sess.Token); err == nil {
				h.Stores.Drop(claims.Subject)
			}
		}
		_ = h.Sessions.Delete(c.Request.Context(), sid)
	}
	c.SetCookie(h.Cookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
