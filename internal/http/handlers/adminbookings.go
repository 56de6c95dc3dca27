package handlers

import (
	"net/http"

	"busbooking/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// Counter bookings are made by admins for walk-in passengers and have no user.

// GET /adminbookings
func (h *Handler) ListCounterBookings(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	busID, ok := queryID(c, "bus_id")
	if !ok {
		return
	}
	out, err := h.bookingService(c).List(c.Request.Context(), rc, models.BookingFilter{BusID: busID, Counter: true})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /adminbookings
func (h *Handler) CreateCounterBooking(c *gin.Context) {
	var in models.CounterBookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	in.Normalize()
	if err := models.Validate(in); err != nil {
		RespondDomainError(c, err)
		return
	}
	b, err := h.bookingService(c).Create(c.Request.Context(), in.BookingInput(), nil)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}
