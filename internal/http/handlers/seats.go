package handlers

import (
	"net/http"

	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"

	"github.com/gin-gonic/gin"
)

func (h *Handler) seats() repositories.SeatRepository {
	return repositories.SeatRepository{DB: h.DB}
}

// GET /seats?bus_id=
func (h *Handler) ListSeats(c *gin.Context) {
	busID, ok := queryID(c, "bus_id")
	if !ok {
		return
	}
	out, err := h.seats().List(c.Request.Context(), busID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetSeat(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s, err := h.seats().GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// POST /seats. The seat number must fit the bus capacity.
func (h *Handler) CreateSeat(c *gin.Context) {
	var in models.CreateSeatInput
	if !BindJSONOrError(c, &in) {
		return
	}
	in.Normalize()
	if err := models.Validate(in); err != nil {
		RespondDomainError(c, err)
		return
	}
	ctx := c.Request.Context()
	if !h.seatFitsBus(c, in.BusID, in.SeatNumber) {
		return
	}
	s := models.Seat{BusID: in.BusID, SeatNumber: in.SeatNumber, Status: in.Status}
	if err := h.seats().Create(ctx, &s); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *Handler) UpdateSeat(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var p models.SeatPatch
	if !BindJSONOrError(c, &p) {
		return
	}
	if err := models.Validate(p); err != nil {
		RespondDomainError(c, err)
		return
	}
	ctx := c.Request.Context()
	s, err := h.seats().GetByID(ctx, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	p.Apply(&s)
	if p.SeatNumber != nil && !h.seatFitsBus(c, s.BusID, s.SeatNumber) {
		return
	}
	if err := h.seats().Update(ctx, &s); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) DeleteSeat(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.seats().Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// seatFitsBus writes the error response and returns false when the seat number
// exceeds the bus capacity.
func (h *Handler) seatFitsBus(c *gin.Context, busID int64, seatNumber int) bool {
	bus, err := repositories.BusRepository{DB: h.DB}.GetByID(c.Request.Context(), busID)
	if err != nil {
		RespondDomainError(c, err)
		return false
	}
	if seatNumber > bus.NumberOfSeats {
		respondError(c, http.StatusBadRequest, "validation_error", "seat_number: exceeds bus capacity", gin.H{"field": "seat_number"})
		return false
	}
	return true
}
