package handlers

import (
	"fmt"
	"net/http"

	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) drivers() repositories.DriverRepository {
	return repositories.DriverRepository{DB: h.DB}
}

// GET /drivers
func (h *Handler) ListDrivers(c *gin.Context) {
	out, err := h.drivers().List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /drivers/:id
func (h *Handler) GetDriver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	d, err := h.drivers().GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// POST /drivers
func (h *Handler) CreateDriver(c *gin.Context) {
	var in models.CreateDriverInput
	if !BindJSONOrError(c, &in) {
		return
	}
	in.Normalize()
	if err := models.Validate(in); err != nil {
		RespondDomainError(c, err)
		return
	}
	d := in.Driver()
	if err := h.drivers().Create(c.Request.Context(), &d); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(reqID(c), "drivers", "create", fmt.Sprintf("driver_id=%d", d.ID))
	c.JSON(http.StatusCreated, d)
}

// PATCH /drivers/:id
func (h *Handler) UpdateDriver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var p models.DriverPatch
	if !BindJSONOrError(c, &p) {
		return
	}
	p.Normalize()
	if err := models.Validate(p); err != nil {
		RespondDomainError(c, err)
		return
	}
	ctx := c.Request.Context()
	d, err := h.drivers().GetByID(ctx, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	p.Apply(&d)
	if err := h.drivers().Update(ctx, &d); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// DELETE /drivers/:id
func (h *Handler) DeleteDriver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.drivers().Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(reqID(c), "drivers", "delete", fmt.Sprintf("driver_id=%d", id))
	c.Status(http.StatusNoContent)
}
