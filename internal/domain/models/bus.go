package models

import (
	"strings"
	"time"

	"busbooking/internal/domain"
)

type Bus struct {
	ID             int64     `json:"id"`
	DriverID       int64     `json:"driver_id"`
	NumberPlate    string    `json:"number_plate"`
	NumberOfSeats  int       `json:"number_of_seats"`
	SeatsAvailable int       `json:"seats_available"`
	Model          string    `json:"model"`
	Route          string    `json:"route"`
	DepartureFrom  string    `json:"departure_from"`
	DepartureTo    string    `json:"departure_to"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	PricePerSeat   float64   `json:"price_per_seat"`
	RouteIDs       []int64   `json:"route_ids"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type BusFilter struct {
	DriverID int64
	RouteID  int64
}

type CreateBusInput struct {
	DriverID      int64      `json:"driver_id" validate:"required,gt=0"`
	NumberPlate   string     `json:"number_plate" validate:"required,max=20"`
	NumberOfSeats int        `json:"number_of_seats" validate:"required,gt=0"`
	Model         string     `json:"model" validate:"max=50"`
	Route         string     `json:"route" validate:"max=100"`
	DepartureFrom string     `json:"departure_from" validate:"required,max=50"`
	DepartureTo   string     `json:"departure_to" validate:"required,max=50"`
	DepartureTime *time.Time `json:"departure_time" validate:"required"`
	ArrivalTime   *time.Time `json:"arrival_time" validate:"required"`
	PricePerSeat  *float64   `json:"price_per_seat" validate:"required,gt=0"`
	RouteIDs      []int64    `json:"route_ids" validate:"omitempty,dive,gt=0"`
}

func (in *CreateBusInput) Normalize() {
	in.NumberPlate = strings.ToUpper(strings.TrimSpace(in.NumberPlate))
	in.Model = strings.TrimSpace(in.Model)
	in.Route = strings.TrimSpace(in.Route)
	in.DepartureFrom = strings.TrimSpace(in.DepartureFrom)
	in.DepartureTo = strings.TrimSpace(in.DepartureTo)
}

// Bus builds the entity; seats_available starts at the full capacity.
func (in CreateBusInput) Bus() Bus {
	b := Bus{
		DriverID:       in.DriverID,
		NumberPlate:    in.NumberPlate,
		NumberOfSeats:  in.NumberOfSeats,
		SeatsAvailable: in.NumberOfSeats,
		Model:          in.Model,
		Route:          in.Route,
		DepartureFrom:  in.DepartureFrom,
		DepartureTo:    in.DepartureTo,
		RouteIDs:       uniqueIDs(in.RouteIDs),
	}
	if in.DepartureTime != nil {
		b.DepartureTime = in.DepartureTime.UTC()
	}
	if in.ArrivalTime != nil {
		b.ArrivalTime = in.ArrivalTime.UTC()
	}
	if in.PricePerSeat != nil {
		b.PricePerSeat = *in.PricePerSeat
	}
	return b
}

type BusPatch struct {
	DriverID      *int64     `json:"driver_id" validate:"omitempty,gt=0"`
	NumberPlate   *string    `json:"number_plate" validate:"omitempty,min=1,max=20"`
	NumberOfSeats *int       `json:"number_of_seats" validate:"omitempty,gt=0"`
	Model         *string    `json:"model" validate:"omitempty,max=50"`
	Route         *string    `json:"route" validate:"omitempty,max=100"`
	DepartureFrom *string    `json:"departure_from" validate:"omitempty,min=1,max=50"`
	DepartureTo   *string    `json:"departure_to" validate:"omitempty,min=1,max=50"`
	DepartureTime *time.Time `json:"departure_time"`
	ArrivalTime   *time.Time `json:"arrival_time"`
	PricePerSeat  *float64   `json:"price_per_seat" validate:"omitempty,gt=0"`
	RouteIDs      *[]int64   `json:"route_ids" validate:"omitempty,dive,gt=0"`
}

func (p *BusPatch) Normalize() {
	if p.NumberPlate != nil {
		*p.NumberPlate = strings.ToUpper(strings.TrimSpace(*p.NumberPlate))
	}
	trimPtr(p.Model)
	trimPtr(p.Route)
	trimPtr(p.DepartureFrom)
	trimPtr(p.DepartureTo)
}

// Apply copies the present fields onto b. A capacity change moves seats_available
// by the same delta, clamped to [0, number_of_seats].
func (p BusPatch) Apply(b *Bus) {
	if p.DriverID != nil {
		b.DriverID = *p.DriverID
	}
	if p.NumberPlate != nil {
		b.NumberPlate = *p.NumberPlate
	}
	if p.NumberOfSeats != nil {
		delta := *p.NumberOfSeats - b.NumberOfSeats
		b.NumberOfSeats = *p.NumberOfSeats
		b.SeatsAvailable = clamp(b.SeatsAvailable+delta, 0, b.NumberOfSeats)
	}
	if p.Model != nil {
		b.Model = *p.Model
	}
	if p.Route != nil {
		b.Route = *p.Route
	}
	if p.DepartureFrom != nil {
		b.DepartureFrom = *p.DepartureFrom
	}
	if p.DepartureTo != nil {
		b.DepartureTo = *p.DepartureTo
	}
	if p.DepartureTime != nil {
		b.DepartureTime = p.DepartureTime.UTC()
	}
	if p.ArrivalTime != nil {
		b.ArrivalTime = p.ArrivalTime.UTC()
	}
	if p.PricePerSeat != nil {
		b.PricePerSeat = *p.PricePerSeat
	}
	if p.RouteIDs != nil {
		b.RouteIDs = uniqueIDs(*p.RouteIDs)
	}
}

// CheckSchedule rejects an arrival that is not after the departure.
func (b Bus) CheckSchedule() error {
	if !b.ArrivalTime.After(b.DepartureTime) {
		return domain.ValidationError{Field: "arrival_time", Msg: "must be after departure_time"}
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func uniqueIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
