package handlers

import (
	"net/http"
	"time"

	"busbooking/internal/domain/models"
	"busbooking/internal/http/middleware"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) authService(c *gin.Context) services.AuthService {
	return services.AuthService{DB: h.DB, Provider: h.Provider, Tokens: h.Tokens, RequestID: reqID(c)}
}

func (h *Handler) setSessionCookie(c *gin.Context, token string, exp time.Time) {
	maxAge := int(time.Until(exp).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, token, maxAge, "/", "", h.CookieSecure, true)
}

// POST /signup
func (h *Handler) SignUp(c *gin.Context) {
	var in models.SignUpInput
	if !BindJSONOrError(c, &in) {
		return
	}
	res, err := h.authService(c).SignUp(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.setSessionCookie(c, res.Token, res.ExpiresAt)
	c.JSON(http.StatusCreated, res)
}

// POST /login
func (h *Handler) Login(c *gin.Context) {
	var in models.LoginInput
	if !BindJSONOrError(c, &in) {
		return
	}
	res, err := h.authService(c).LogIn(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.setSessionCookie(c, res.Token, res.ExpiresAt)
	c.JSON(http.StatusOK, res)
}

// DELETE /logout clears the cookie. Issued tokens stay valid until they expire.
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.CookieSecure, true)
	c.Status(http.StatusNoContent)
}

// GET /current_user
func (h *Handler) CurrentUser(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}
	c.JSON(http.StatusOK, services.Session(u))
}

// GET /check_session is open; it reports 401 instead of failing at the gate.
func (h *Handler) CheckSession(c *gin.Context) {
	h.CurrentUser(c)
}
