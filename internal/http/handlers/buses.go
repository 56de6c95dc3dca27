package handlers

import (
	"net/http"

	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) busService(c *gin.Context) services.BusService {
	return services.BusService{DB: h.DB, RequestID: reqID(c)}
}

// GET /buses?driver_id=&route_id=
func (h *Handler) ListBuses(c *gin.Context) {
	driverID, ok := queryID(c, "driver_id")
	if !ok {
		return
	}
	routeID, ok := queryID(c, "route_id")
	if !ok {
		return
	}
	out, err := repositories.BusRepository{DB: h.DB}.List(c.Request.Context(), models.BusFilter{
		DriverID: driverID,
		RouteID:  routeID,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetBus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := repositories.BusRepository{DB: h.DB}.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) CreateBus(c *gin.Context) {
	var in models.CreateBusInput
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := h.busService(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *Handler) UpdateBus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var p models.BusPatch
	if !BindJSONOrError(c, &p) {
		return
	}
	b, err := h.busService(c).Update(c.Request.Context(), id, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) DeleteBus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.busService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
