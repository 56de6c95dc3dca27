package handlers

import (
	"net/http"

	"busbooking/internal/domain/models"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) userService(c *gin.Context) services.UserService {
	return services.UserService{DB: h.DB, RequestID: reqID(c)}
}

// GET /users
func (h *Handler) ListUsers(c *gin.Context) {
	out, err := h.userService(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /users/:id
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	u, err := h.userService(c).Get(c.Request.Context(), rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// POST /users
func (h *Handler) CreateUser(c *gin.Context) {
	var in models.CreateUserInput
	if !BindJSONOrError(c, &in) {
		return
	}
	u, err := h.userService(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// PATCH /users/:id
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	var p models.UserPatch
	if !BindJSONOrError(c, &p) {
		return
	}
	u, err := h.userService(c).Update(c.Request.Context(), rc, id, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DELETE /users/:id
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.userService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
