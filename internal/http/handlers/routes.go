package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/services"
	"busbooking/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) routes() repositories.RouteRepository {
	return repositories.RouteRepository{DB: h.DB}
}

// GET /routes?slug=
func (h *Handler) ListRoutes(c *gin.Context) {
	out, err := h.routes().List(c.Request.Context(), strings.TrimSpace(c.Query("slug")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetRoute(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rt, err := h.routes().GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

func (h *Handler) CreateRoute(c *gin.Context) {
	var in models.CreateRouteInput
	if !BindJSONOrError(c, &in) {
		return
	}
	in.Normalize()
	if err := models.Validate(in); err != nil {
		RespondDomainError(c, err)
		return
	}
	rt := in.Route()
	if err := h.routes().Create(c.Request.Context(), &rt); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(reqID(c), "routes", "create", fmt.Sprintf("route_id=%d slug=%s", rt.ID, rt.Slug))
	c.JSON(http.StatusCreated, rt)
}

func (h *Handler) UpdateRoute(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var p models.RoutePatch
	if !BindJSONOrError(c, &p) {
		return
	}
	p.Normalize()
	if err := models.Validate(p); err != nil {
		RespondDomainError(c, err)
		return
	}
	ctx := c.Request.Context()
	rt, err := h.routes().GetByID(ctx, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	p.Apply(&rt)
	if err := h.routes().Update(ctx, &rt); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

// DELETE /routes/:id is refused while a bus still serves the route.
func (h *Handler) DeleteRoute(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	svc := services.RouteService{DB: h.DB, RequestID: reqID(c)}
	if err := svc.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
