package models

import (
	"strings"
	"time"

	"busbooking/internal/domain"
)

// Booking is a seat reservation on a bus. UserID is nil for counter bookings,
// which carry the passenger details directly.
type Booking struct {
	ID                int64                `json:"id"`
	BusID             int64                `json:"bus_id"`
	UserID            *int64               `json:"user_id"`
	PassengerName     string               `json:"passenger_name,omitempty"`
	PassengerIDNumber string               `json:"passenger_id_number,omitempty"`
	PassengerPhone    string               `json:"passenger_phone,omitempty"`
	SeatNumber        int                  `json:"seat_number"`
	Status            domain.BookingStatus `json:"status"`
	TicketCode        string               `json:"ticket_code"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// OwnerID returns the owning user id, or 0 for counter bookings.
func (b Booking) OwnerID() int64 {
	if b.UserID == nil {
		return 0
	}
	return *b.UserID
}

func (b Booking) Active() bool { return b.Status == domain.BookingBooked }

type BookingFilter struct {
	UserID  int64
	BusID   int64
	Counter bool // only bookings without a user
}

type CreateBookingInput struct {
	BusID             int64  `json:"bus_id" validate:"required,gt=0"`
	SeatNumber        int    `json:"seat_number" validate:"required,gt=0"`
	PassengerName     string `json:"passenger_name" validate:"max=80"`
	PassengerIDNumber string `json:"passenger_id_number" validate:"max=20"`
	PassengerPhone    string `json:"passenger_phone" validate:"max=20"`
}

// CounterBookingInput is the admin ticket-counter variant: passenger details are required.
type CounterBookingInput struct {
	BusID             int64  `json:"bus_id" validate:"required,gt=0"`
	SeatNumber        int    `json:"seat_number" validate:"required,gt=0"`
	PassengerName     string `json:"passenger_name" validate:"required,max=80"`
	PassengerIDNumber string `json:"passenger_id_number" validate:"required,max=20"`
	PassengerPhone    string `json:"passenger_phone" validate:"required,max=20"`
}

func (in *CreateBookingInput) Normalize() {
	in.PassengerName = strings.TrimSpace(in.PassengerName)
	in.PassengerIDNumber = strings.TrimSpace(in.PassengerIDNumber)
	in.PassengerPhone = strings.TrimSpace(in.PassengerPhone)
}

func (in *CounterBookingInput) Normalize() {
	in.PassengerName = strings.TrimSpace(in.PassengerName)
	in.PassengerIDNumber = strings.TrimSpace(in.PassengerIDNumber)
	in.PassengerPhone = strings.TrimSpace(in.PassengerPhone)
}

func (in CounterBookingInput) BookingInput() CreateBookingInput {
	return CreateBookingInput(in)
}

type BookingPatch struct {
	SeatNumber        *int                  `json:"seat_number" validate:"omitempty,gt=0"`
	Status            *domain.BookingStatus `json:"status" validate:"omitempty,oneof=booked cancelled"`
	PassengerName     *string               `json:"passenger_name" validate:"omitempty,max=80"`
	PassengerIDNumber *string               `json:"passenger_id_number" validate:"omitempty,max=20"`
	PassengerPhone    *string               `json:"passenger_phone" validate:"omitempty,max=20"`
}

func (p *BookingPatch) Normalize() {
	trimPtr(p.PassengerName)
	trimPtr(p.PassengerIDNumber)
	trimPtr(p.PassengerPhone)
}

func (p BookingPatch) Apply(b *Booking) {
	if p.SeatNumber != nil {
		b.SeatNumber = *p.SeatNumber
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.PassengerName != nil {
		b.PassengerName = *p.PassengerName
	}
	if p.PassengerIDNumber != nil {
		b.PassengerIDNumber = *p.PassengerIDNumber
	}
	if p.PassengerPhone != nil {
		b.PassengerPhone = *p.PassengerPhone
	}
}
