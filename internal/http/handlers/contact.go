package handlers

import (
	"fmt"
	"net/http"

	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) contacts() repositories.ContactRepository {
	return repositories.ContactRepository{DB: h.DB}
}

func (h *Handler) ListContactMessages(c *gin.Context) {
	out, err := h.contacts().List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetContactMessage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	m, err := h.contacts().GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// POST /contact
func (h *Handler) CreateContactMessage(c *gin.Context) {
	var in models.CreateContactInput
	if !BindJSONOrError(c, &in) {
		return
	}
	in.Normalize()
	if err := models.Validate(in); err != nil {
		RespondDomainError(c, err)
		return
	}
	m := models.ContactMessage{Name: in.Name, Email: in.Email, Message: in.Message}
	if err := h.contacts().Create(c.Request.Context(), &m); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(reqID(c), "contact", "create", fmt.Sprintf("message_id=%d", m.ID))
	c.JSON(http.StatusCreated, m)
}

func (h *Handler) UpdateContactMessage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var p models.ContactPatch
	if !BindJSONOrError(c, &p) {
		return
	}
	p.Normalize()
	if err := models.Validate(p); err != nil {
		RespondDomainError(c, err)
		return
	}
	ctx := c.Request.Context()
	m, err := h.contacts().GetByID(ctx, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	p.Apply(&m)
	if err := h.contacts().Update(ctx, &m); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) DeleteContactMessage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.contacts().Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
