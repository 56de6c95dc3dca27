package models

import (
	"time"

	"busbooking/internal/domain"
)

type Seat struct {
	ID         int64             `json:"id"`
	BusID      int64             `json:"bus_id"`
	SeatNumber int               `json:"seat_number"`
	Status     domain.SeatStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type CreateSeatInput struct {
	BusID      int64             `json:"bus_id" validate:"required,gt=0"`
	SeatNumber int               `json:"seat_number" validate:"required,gt=0"`
	Status     domain.SeatStatus `json:"status" validate:"omitempty,oneof=available booked reserved"`
}

func (in *CreateSeatInput) Normalize() {
	if in.Status == "" {
		in.Status = domain.SeatAvailable
	}
}

type SeatPatch struct {
	SeatNumber *int               `json:"seat_number" validate:"omitempty,gt=0"`
	Status     *domain.SeatStatus `json:"status" validate:"omitempty,oneof=available booked reserved"`
}

func (p SeatPatch) Apply(s *Seat) {
	if p.SeatNumber != nil {
		s.SeatNumber = *p.SeatNumber
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
}
