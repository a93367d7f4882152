package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"techreads/internal/api"
	"techreads/internal/session"
	"techreads/internal/store"
	"techreads/pkg/models"
)

const (
	CtxTokenKey  = "session_token"
	CtxUserKey   = "session_user"
	CtxUserIDKey = "session_user_id"
	CtxStoreKey  = "session_store"
	CtxSIDKey    = "session_id"
)

// Guard gates the authenticated route groups. Presence of a stored
// session is the whole check: the token is rendered optimistically and
// its death is discovered through a 401 from the remote service, which
// RespondAPIError handles centrally.
type Guard struct {
	Sessions *session.Repo
	Stores   *store.Registry
	Cookie   string
}

func (g *Guard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(g.Cookie)
		if err != nil || sid == "" {
			unauthorized(c)
			return
		}

		stored, err := g.Sessions.Get(c.Request.Context(), sid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
			c.Abort()
			return
		}
		if stored == nil {
			unauthorized(c)
			return
		}

		claims, err := session.DecodeToken(stored.Sess.Token)
		if err != nil {
			// malformed token: drop the session and start over
			_ = g.Sessions.Delete(c.Request.Context(), sid)
			unauthorized(c)
			return
		}

		c.Set(CtxSIDKey, sid)
		c.Set(CtxTokenKey, stored.Sess.Token)
		c.Set(CtxUserKey, stored.Sess.User)
		c.Set(CtxUserIDKey, claims.Subject)
		c.Set(CtxStoreKey, g.Stores.For(claims.Subject))
		c.Next()
	}
}

// RespondAPIError is the single upstream-error policy. A 401 from the
// remote service clears the local session and tells the client to log
// in again; other API errors pass their status through; transport
// errors become 502.
func (g *Guard) RespondAPIError(c *gin.Context, err error) {
	if api.IsUnauthorized(err) {
		if sid := c.GetString(CtxSIDKey); sid != "" {
			_ = g.Sessions.Delete(c.Request.Context(), sid)
		}
		if uid := c.GetString(CtxUserIDKey); uid != "" {
			g.Stores.Drop(uid)
		}
		c.SetCookie(g.Cookie, "", -1, "/", "", false, true)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired", "redirect": "/login"})
		return
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
		return
	}

	log.WithError(err).Warn("remote service unreachable")
	c.JSON(http.StatusBadGateway, gin.H{"error": "remote service unavailable"})
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "redirect": "/login"})
	c.Abort()
}

// Token returns the bearer token for the current session.
func Token(c *gin.Context) string {
	return c.GetString(CtxTokenKey)
}

// UserID returns the subject id decoded from the session token.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}

// CurrentUser returns the stored profile for the current session.
func CurrentUser(c *gin.Context) models.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return models.User{}
	}
	u, _ := v.(models.User)
	return u
}

// StoreFor returns the per-user shared store the middleware attached.
func StoreFor(c *gin.Context) *store.Store {
	v, ok := c.Get(CtxStoreKey)
	if !ok {
		return nil
	}
	s, _ := v.(*store.Store)
	return s
}
