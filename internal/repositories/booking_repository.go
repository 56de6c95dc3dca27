package repositories

import (
	"context"
	"database/sql"
	"strings"

	intdb "busbooking/internal/db"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/utils"
)

const bookingColumns = `id, bus_id, user_id, passenger_name, passenger_id_number, passenger_phone,
	seat_number, status, ticket_code, created_at, updated_at`

// Unique keys on bookings, as reported by intdb.KeyField.
const (
	KeyBookingActiveSeat = "active_seat"
	KeyBookingTicketCode = "ticket_code"
)

type BookingRepository struct {
	DB intdb.DBTX
}

func scanBooking(r rowScanner) (models.Booking, error) {
	var (
		b      models.Booking
		userID sql.NullInt64
		status string
	)
	err := r.Scan(&b.ID, &b.BusID, &userID, &b.PassengerName, &b.PassengerIDNumber, &b.PassengerPhone,
		&b.SeatNumber, &status, &b.TicketCode, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return b, err
	}
	if userID.Valid {
		b.UserID = &userID.Int64
	}
	b.Status = domain.BookingStatus(status)
	return b, nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func (r BookingRepository) Create(ctx context.Context, b *models.Booking) error {
	now := utils.NowUTC()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO bookings (bus_id, user_id, passenger_name, passenger_id_number, passenger_phone,
			seat_number, status, ticket_code, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.BusID, nullableID(b.UserID), b.PassengerName, b.PassengerIDNumber, b.PassengerPhone,
		b.SeatNumber, string(b.Status), b.TicketCode, now, now)
	if err != nil {
		return mapWriteErr("bookings", "booking", err)
	}
	id, err := lastInsertID(res)
	if err != nil {
		return err
	}
	b.ID, b.CreatedAt, b.UpdatedAt = id, now, now
	return nil
}

func (r BookingRepository) GetByID(ctx context.Context, id int64) (models.Booking, error) {
	b, err := scanBooking(r.DB.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id))
	return b, mapReadErr("booking", err)
}

// GetForUpdate locks the booking row for the rest of the transaction.
func (r BookingRepository) GetForUpdate(ctx context.Context, id int64) (models.Booking, error) {
	b, err := scanBooking(r.DB.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ? FOR UPDATE`, id))
	return b, mapReadErr("booking", err)
}

func (r BookingRepository) List(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	var (
		where []string
		args  []any
	)
	if f.UserID > 0 {
		where = append(where, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.BusID > 0 {
		where = append(where, "bus_id = ?")
		args = append(args, f.BusID)
	}
	if f.Counter {
		where = append(where, "user_id IS NULL")
	}
	q := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// SeatTaken reports whether a booked booking other than excludeID holds the seat.
func (r BookingRepository) SeatTaken(ctx context.Context, busID int64, seatNumber int, excludeID int64) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE bus_id = ? AND seat_number = ? AND status = ? AND id <> ?
	`, busID, seatNumber, string(domain.BookingBooked), excludeID).Scan(&n)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

// BookedStats returns the number of booked bookings on a bus and the highest seat they hold.
func (r BookingRepository) BookedStats(ctx context.Context, busID int64) (count, maxSeat int, err error) {
	err = r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(MAX(seat_number), 0) FROM bookings
		WHERE bus_id = ? AND status = ?
	`, busID, string(domain.BookingBooked)).Scan(&count, &maxSeat)
	if err != nil {
		return 0, 0, domain.InternalError{Err: err}
	}
	return count, maxSeat, nil
}

func (r BookingRepository) TicketCodeExists(ctx context.Context, code string) (bool, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE ticket_code = ?`, code).Scan(&n); err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

func (r BookingRepository) Update(ctx context.Context, b *models.Booking) error {
	now := utils.NowUTC()
	_, err := r.DB.ExecContext(ctx, `
		UPDATE bookings
		SET seat_number = ?, status = ?, passenger_name = ?, passenger_id_number = ?, passenger_phone = ?, updated_at = ?
		WHERE id = ?
	`, b.SeatNumber, string(b.Status), b.PassengerName, b.PassengerIDNumber, b.PassengerPhone, now, b.ID)
	if err != nil {
		return mapWriteErr("bookings", "booking", err)
	}
	b.UpdatedAt = now
	return nil
}

func (r BookingRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "bookings", "booking", id)
}
