package handlers

import (
	"fmt"
	"net/http"

	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) reviews() repositories.ReviewRepository {
	return repositories.ReviewRepository{DB: h.DB}
}

func (h *Handler) ListReviews(c *gin.Context) {
	out, err := h.reviews().List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rv, err := h.reviews().GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rv)
}

// POST /reviews. A review tied to a booking may only be written by the
// booking's owner or an admin.
func (h *Handler) CreateReview(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	var in models.CreateReviewInput
	if !BindJSONOrError(c, &in) {
		return
	}
	in.Normalize()
	if err := in.Check(); err != nil {
		RespondDomainError(c, err)
		return
	}
	ctx := c.Request.Context()
	if in.BookingID != nil {
		if _, err := h.bookingService(c).Get(ctx, rc, *in.BookingID); err != nil {
			RespondDomainError(c, err)
			return
		}
	}
	rv := in.Review()
	if err := h.reviews().Create(ctx, &rv); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(reqID(c), "reviews", "create", fmt.Sprintf("review_id=%d rating=%d", rv.ID, rv.Rating))
	c.JSON(http.StatusCreated, rv)
}

func (h *Handler) UpdateReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var p models.ReviewPatch
	if !BindJSONOrError(c, &p) {
		return
	}
	p.Normalize()
	if err := models.Validate(p); err != nil {
		RespondDomainError(c, err)
		return
	}
	ctx := c.Request.Context()
	rv, err := h.reviews().GetByID(ctx, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	p.Apply(&rv)
	if err := rv.CheckReviewer(); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := h.reviews().Update(ctx, &rv); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rv)
}

func (h *Handler) DeleteReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.reviews().Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
