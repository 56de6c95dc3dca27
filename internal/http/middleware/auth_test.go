package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"

	"github.com/gin-gonic/gin"
)

type stubAuth map[string]models.User

func (s stubAuth) Authenticate(_ context.Context, token string) (models.User, error) {
	u, ok := s[token]
	if !ok {
		return models.User{}, domain.UnauthorizedError{Msg: "invalid token"}
	}
	return u, nil
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := stubAuth{
		"admin-token":    {ID: 1, Role: domain.RoleAdmin},
		"customer-token": {ID: 2, Role: domain.RoleCustomer},
	}
	r := gin.New()
	r.Use(RequestID(), RequireSession(auth))
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/health", ok)
	r.GET("/buses", ok)
	r.POST("/buses", RequireRoles("admin"), ok)
	return r
}

func do(r http.Handler, method, path string, setup func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if setup != nil {
		setup(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(tok string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }
}

func TestRequireSessionAllowsOpenPaths(t *testing.T) {
	if w := do(newTestEngine(), http.MethodGet, "/health", nil); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRequireSessionRejectsAnonymous(t *testing.T) {
	w := do(newTestEngine(), http.MethodGet, "/buses", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id header")
	}
}

func TestRequireSessionRejectsBadToken(t *testing.T) {
	if w := do(newTestEngine(), http.MethodGet, "/buses", bearer("nope")); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRequireSessionAcceptsCookie(t *testing.T) {
	w := do(newTestEngine(), http.MethodGet, "/buses", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "customer-token"})
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRequireRoles(t *testing.T) {
	r := newTestEngine()
	if w := do(r, http.MethodPost, "/buses", bearer("customer-token")); w.Code != http.StatusForbidden {
		t.Fatalf("customer status = %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/buses", bearer("admin-token")); w.Code != http.StatusOK {
		t.Fatalf("admin status = %d", w.Code)
	}
}
