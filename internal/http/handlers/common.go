package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"busbooking/internal/domain"
	"busbooking/internal/http/middleware"
	"busbooking/internal/identity"

	"github.com/gin-gonic/gin"
)

// Handler carries the dependencies shared by every endpoint.
type Handler struct {
	DB           *sql.DB
	Provider     identity.Provider
	Tokens       *identity.Tokens
	CookieSecure bool
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "request body is required", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid JSON payload", gin.H{"reason": err.Error()})
		return false
	}
	return true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid id", gin.H{"field": "id"})
		return 0, false
	}
	return id, true
}

// queryID reads an optional positive integer filter from the query string.
func queryID(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid "+name, gin.H{"field": name})
		return 0, false
	}
	return id, true
}

func requestContext(c *gin.Context) (domain.RequestContext, bool) {
	rc, err := middleware.RequestContext(c)
	if err != nil {
		RespondDomainError(c, err)
		return rc, false
	}
	return rc, true
}

func reqID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}
