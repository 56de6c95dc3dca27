package handlers

import (
	"net/http"

	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"

	"github.com/gin-gonic/gin"
)

func (h *Handler) admins() repositories.AdminRepository {
	return repositories.AdminRepository{DB: h.DB}
}

func (h *Handler) ListAdmins(c *gin.Context) {
	out, err := h.admins().List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetAdmin(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	a, err := h.admins().GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) CreateAdmin(c *gin.Context) {
	var in models.CreateAdminInput
	if !BindJSONOrError(c, &in) {
		return
	}
	in.Normalize()
	if err := models.Validate(in); err != nil {
		RespondDomainError(c, err)
		return
	}
	a := in.Admin()
	if err := h.admins().Create(c.Request.Context(), &a); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) UpdateAdmin(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var p models.AdminPatch
	if !BindJSONOrError(c, &p) {
		return
	}
	p.Normalize()
	if err := models.Validate(p); err != nil {
		RespondDomainError(c, err)
		return
	}
	ctx := c.Request.Context()
	a, err := h.admins().GetByID(ctx, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	p.Apply(&a)
	if err := h.admins().Update(ctx, &a); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteAdmin(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.admins().Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
