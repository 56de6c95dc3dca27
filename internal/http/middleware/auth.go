package middleware

import (
	"context"
	"net/http"
	"strings"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	// AccessTokenCookie holds the bearer token for browser clients.
	AccessTokenCookie = "access_token"

	currentUserKey = "currentUser"
	userIDKey      = "userID"
	userRoleKey    = "userRole"
)

// Authenticator resolves a raw token to a local user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, error)
}

// OpenPaths are reachable without a session.
var OpenPaths = map[string]bool{
	"/signup":        true,
	"/login":         true,
	"/check_session": true,
	"/health":        true,
}

// RequireSession rejects requests outside OpenPaths unless the bearer header or the
// access_token cookie identifies an existing user. On open paths a valid token is
// still resolved so handlers can see the caller.
func RequireSession(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		open := OpenPaths[c.Request.URL.Path]
		token := TokenFromRequest(c)
		if token == "" {
			if open {
				c.Next()
				return
			}
			abortError(c, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if open {
				c.Next()
				return
			}
			if domain.IsUnauthorized(err) {
				abortError(c, http.StatusUnauthorized, "unauthorized", err.Error())
				return
			}
			utils.LogEvent(GetRequestID(c), "auth", "session", "lookup failed: "+err.Error())
			abortError(c, http.StatusInternalServerError, "internal_error", "internal server error")
			return
		}

		c.Set(currentUserKey, user)
		c.Set(userIDKey, user.ID)
		c.Set(userRoleKey, string(user.Role))
		c.Next()
	}
}

// TokenFromRequest prefers the Authorization bearer header over the cookie.
func TokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if scheme, tok, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
	}
	if v, err := c.Cookie(AccessTokenCookie); err == nil {
		return strings.TrimSpace(v)
	}
	return ""
}

// CurrentUser returns the user resolved by RequireSession.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}

// RequestContext returns the caller identity for service-level access checks.
func RequestContext(c *gin.Context) (domain.RequestContext, error) {
	u, ok := CurrentUser(c)
	if !ok {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "authentication required"}
	}
	return domain.RequestContext{UserID: u.ID, Role: u.Role}, nil
}

func abortError(c *gin.Context, status int, kind, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      kind,
		"message":    msg,
		"request_id": GetRequestID(c),
	})
}
