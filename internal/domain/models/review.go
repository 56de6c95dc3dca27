package models

import (
	"strings"
	"time"

	"busbooking/internal/domain"
)

// Review is either attached to a booking (at most one per booking) or free-standing.
type Review struct {
	ID         int64     `json:"id"`
	BookingID  *int64    `json:"booking_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	ReviewText string    `json:"review_text"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateReviewInput struct {
	BookingID  *int64 `json:"booking_id" validate:"omitempty,gt=0"`
	Name       string `json:"name" validate:"max=80"`
	Email      string `json:"email" validate:"omitempty,email,max=120"`
	ReviewText string `json:"review_text" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
}

func (in *CreateReviewInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.ReviewText = strings.TrimSpace(in.ReviewText)
}

// Check validates tags and requires reviewer details on free-standing reviews.
func (in CreateReviewInput) Check() error {
	if err := Validate(in); err != nil {
		return err
	}
	return in.Review().CheckReviewer()
}

// CheckReviewer requires reviewer details on free-standing reviews.
func (r Review) CheckReviewer() error {
	if r.BookingID != nil {
		return nil
	}
	if r.Name == "" {
		return domain.ValidationError{Field: "name", Msg: "is required"}
	}
	if r.Email == "" {
		return domain.ValidationError{Field: "email", Msg: "is required"}
	}
	return nil
}

func (in CreateReviewInput) Review() Review {
	return Review{
		BookingID:  in.BookingID,
		Name:       in.Name,
		Email:      in.Email,
		ReviewText: in.ReviewText,
		Rating:     in.Rating,
	}
}

type ReviewPatch struct {
	Name       *string `json:"name" validate:"omitempty,max=80"`
	Email      *string `json:"email" validate:"omitempty,email,max=120"`
	ReviewText *string `json:"review_text" validate:"omitempty,min=1"`
	Rating     *int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

func (p *ReviewPatch) Normalize() {
	trimPtr(p.Name)
	trimPtr(p.ReviewText)
	if p.Email != nil {
		*p.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
}

func (p ReviewPatch) Apply(r *Review) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Email != nil {
		r.Email = *p.Email
	}
	if p.ReviewText != nil {
		r.ReviewText = *p.ReviewText
	}
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
}
