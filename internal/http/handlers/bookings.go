package handlers

import (
	"net/http"

	"busbooking/internal/domain/models"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{DB: h.DB, RequestID: reqID(c)}
}

// GET /bookings lists the caller's bookings; admins see all and may filter by user_id.
func (h *Handler) ListBookings(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	busID, ok := queryID(c, "bus_id")
	if !ok {
		return
	}
	userID, ok := queryID(c, "user_id")
	if !ok {
		return
	}
	out, err := h.bookingService(c).List(c.Request.Context(), rc, models.BookingFilter{UserID: userID, BusID: busID})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	b, err := h.bookingService(c).Get(c.Request.Context(), rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// POST /bookings books a seat for the signed-in user.
func (h *Handler) CreateBooking(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	var in models.CreateBookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	userID := rc.UserID
	b, err := h.bookingService(c).Create(c.Request.Context(), in, &userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	var p models.BookingPatch
	if !BindJSONOrError(c, &p) {
		return
	}
	b, err := h.bookingService(c).Update(c.Request.Context(), rc, id, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	if err := h.bookingService(c).Delete(c.Request.Context(), rc, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /bookings/:id/ticket returns the e-ticket PDF inline.
func (h *Handler) GetBookingTicket(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	svc := services.DocsService{DB: h.DB, RequestID: reqID(c)}
	pdf, filename, err := svc.GenerateETicket(c.Request.Context(), rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
