package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intdb "busbooking/internal/db"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"
)

const (
	msgSeatTaken   = "Seat already booked"
	msgNoSeatsLeft = "No seats available"
)

type BookingService struct {
	DB        *sql.DB
	RequestID string
	// NewCode overrides ticket code generation.
	NewCode func() string
}

func (s BookingService) newCode() string {
	if s.NewCode != nil {
		return s.NewCode()
	}
	return GenerateTicketCode(nil)
}

// Create books a seat for userID (nil for counter bookings). The bus row stays locked
// until the booking and the seat counter are written.
func (s BookingService) Create(ctx context.Context, in models.CreateBookingInput, userID *int64) (models.Booking, error) {
	in.Normalize()
	if err := models.Validate(in); err != nil {
		return models.Booking{}, err
	}

	booking := models.Booking{
		BusID:             in.BusID,
		UserID:            userID,
		PassengerName:     in.PassengerName,
		PassengerIDNumber: in.PassengerIDNumber,
		PassengerPhone:    in.PassengerPhone,
		SeatNumber:        in.SeatNumber,
		Status:            domain.BookingBooked,
	}

	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		buses := repositories.BusRepository{DB: tx}
		bookings := repositories.BookingRepository{DB: tx}

		bus, err := buses.GetForUpdate(ctx, in.BusID)
		if err != nil {
			return err
		}
		if err := s.checkSeat(ctx, bookings, bus, in.SeatNumber, 0); err != nil {
			return err
		}
		if bus.SeatsAvailable <= 0 {
			return domain.ConflictError{Resource: "booking", Msg: msgNoSeatsLeft}
		}
		if err := s.insertWithCode(ctx, bookings, &booking); err != nil {
			return err
		}
		if err := buses.AdjustSeats(ctx, bus.ID, -1); err != nil {
			return err
		}
		return repositories.SeatRepository{DB: tx}.SetStatus(ctx, bus.ID, booking.SeatNumber, domain.SeatBooked)
	})
	if err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d bus_id=%d seat=%d", booking.ID, booking.BusID, booking.SeatNumber))
	return booking, nil
}

// checkSeat validates the seat range and that no other live booking holds it.
func (s BookingService) checkSeat(ctx context.Context, bookings repositories.BookingRepository, bus models.Bus, seat int, excludeID int64) error {
	if seat < 1 || seat > bus.NumberOfSeats {
		return domain.ValidationError{Field: "seat_number", Msg: fmt.Sprintf("must be between 1 and %d", bus.NumberOfSeats)}
	}
	taken, err := bookings.SeatTaken(ctx, bus.ID, seat, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ConflictError{Resource: "booking", Msg: msgSeatTaken}
	}
	return nil
}

func (s BookingService) insertWithCode(ctx context.Context, bookings repositories.BookingRepository, b *models.Booking) error {
	for attempt := 0; attempt < maxTicketAttempts; attempt++ {
		code := s.newCode()
		exists, err := bookings.TicketCodeExists(ctx, code)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		b.TicketCode = code
		err = bookings.Create(ctx, b)
		if err == nil {
			return nil
		}
		switch uniqueField(err) {
		case repositories.KeyBookingTicketCode:
			continue
		case repositories.KeyBookingActiveSeat:
			return domain.ConflictError{Resource: "booking", Msg: msgSeatTaken, Err: err}
		}
		return err
	}
	return domain.InternalError{Msg: "could not allocate a unique ticket code"}
}

func uniqueField(err error) string {
	var uniq domain.UniquenessError
	if errors.As(err, &uniq) {
		return uniq.Field
	}
	return ""
}

func (s BookingService) Get(ctx context.Context, rc domain.RequestContext, id int64) (models.Booking, error) {
	b, err := repositories.BookingRepository{DB: s.DB}.GetByID(ctx, id)
	if err != nil {
		return b, err
	}
	if !rc.CanAccess(b.OwnerID()) {
		return models.Booking{}, domain.ForbiddenError{Msg: "not allowed to access this booking"}
	}
	return b, nil
}

// List returns the caller's own bookings unless the caller is an admin.
func (s BookingService) List(ctx context.Context, rc domain.RequestContext, f models.BookingFilter) ([]models.Booking, error) {
	if !rc.IsAdmin() {
		f.UserID = rc.UserID
		f.Counter = false
	}
	return repositories.BookingRepository{DB: s.DB}.List(ctx, f)
}

// Update applies a partial change. Status transitions move the bus counter and seat
// changes are re-checked against live bookings.
func (s BookingService) Update(ctx context.Context, rc domain.RequestContext, id int64, p models.BookingPatch) (models.Booking, error) {
	p.Normalize()
	if err := models.Validate(p); err != nil {
		return models.Booking{}, err
	}

	var updated models.Booking
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		bookings := repositories.BookingRepository{DB: tx}
		buses := repositories.BusRepository{DB: tx}
		seats := repositories.SeatRepository{DB: tx}

		old, err := bookings.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !rc.CanAccess(old.OwnerID()) {
			return domain.ForbiddenError{Msg: "not allowed to access this booking"}
		}
		b := old
		p.Apply(&b)

		seatMoved := b.SeatNumber != old.SeatNumber
		reactivated := b.Active() && !old.Active()
		released := old.Active() && !b.Active()

		if b.Active() && (seatMoved || reactivated) {
			bus, err := buses.GetForUpdate(ctx, b.BusID)
			if err != nil {
				return err
			}
			if err := s.checkSeat(ctx, bookings, bus, b.SeatNumber, b.ID); err != nil {
				return err
			}
			if reactivated && bus.SeatsAvailable <= 0 {
				return domain.ConflictError{Resource: "booking", Msg: msgNoSeatsLeft}
			}
		}

		if err := bookings.Update(ctx, &b); err != nil {
			if uniqueField(err) == repositories.KeyBookingActiveSeat {
				return domain.ConflictError{Resource: "booking", Msg: msgSeatTaken, Err: err}
			}
			return err
		}

		switch {
		case released:
			err = buses.AdjustSeats(ctx, b.BusID, 1)
		case reactivated:
			err = buses.AdjustSeats(ctx, b.BusID, -1)
		}
		if err != nil {
			return err
		}

		if old.Active() && (released || seatMoved) {
			if err := seats.SetStatus(ctx, old.BusID, old.SeatNumber, domain.SeatAvailable); err != nil {
				return err
			}
		}
		if b.Active() && (reactivated || seatMoved) {
			if err := seats.SetStatus(ctx, b.BusID, b.SeatNumber, domain.SeatBooked); err != nil {
				return err
			}
		}
		updated = b
		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "update",
		fmt.Sprintf("booking_id=%d status=%s seat=%d", updated.ID, updated.Status, updated.SeatNumber))
	return updated, nil
}

// Delete removes the booking and gives its seat back when it was still booked.
func (s BookingService) Delete(ctx context.Context, rc domain.RequestContext, id int64) error {
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		bookings := repositories.BookingRepository{DB: tx}

		b, err := bookings.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !rc.CanAccess(b.OwnerID()) {
			return domain.ForbiddenError{Msg: "not allowed to access this booking"}
		}
		if err := bookings.Delete(ctx, id); err != nil {
			return err
		}
		if !b.Active() {
			return nil
		}
		if err := (repositories.BusRepository{DB: tx}).AdjustSeats(ctx, b.BusID, 1); err != nil {
			return err
		}
		return repositories.SeatRepository{DB: tx}.SetStatus(ctx, b.BusID, b.SeatNumber, domain.SeatAvailable)
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "booking", "delete", fmt.Sprintf("booking_id=%d", id))
	return nil
}
