package handlers

import (
	"errors"
	"net/http"

	"busbooking/internal/domain"
	"busbooking/internal/http/middleware"
	"busbooking/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Detail    any    `json:"detail,omitempty"`
}

func respondError(c *gin.Context, status int, kind, message string, detail any) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     kind,
		Message:   message,
		RequestID: middleware.GetRequestID(c),
		Detail:    detail,
	})
}

// RespondDomainError maps domain errors to HTTP responses. Internal errors are
// logged and never echoed to the client.
func RespondDomainError(c *gin.Context, err error) {
	var (
		verr   domain.ValidationError
		uerr   domain.UniquenessError
		uperr  domain.UpstreamError
		fields gin.H
	)
	switch {
	case errors.As(err, &verr):
		if verr.Field != "" {
			fields = gin.H{"field": verr.Field}
		}
		respondError(c, http.StatusBadRequest, "validation_error", verr.Error(), nilIfEmpty(fields))
	case errors.As(err, &uerr):
		if uerr.Field != "" {
			fields = gin.H{"field": uerr.Field}
		}
		respondError(c, http.StatusUnprocessableEntity, "uniqueness_error", uerr.Error(), nilIfEmpty(fields))
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case errors.As(err, &uperr):
		status := http.StatusBadRequest
		if uperr.Unauthenticated {
			status = http.StatusUnauthorized
		}
		respondError(c, status, "upstream_error", uperr.Msg, gin.H{"service": uperr.Service})
	default:
		utils.LogEvent(middleware.GetRequestID(c), "http", "internal_error", err.Error())
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}

func nilIfEmpty(h gin.H) any {
	if len(h) == 0 {
		return nil
	}
	return h
}
