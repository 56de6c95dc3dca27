package repositories

import (
	"context"
	"errors"

	intdb "busbooking/internal/db"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/utils"
)

const seatColumns = `id, bus_id, seat_number, status, created_at, updated_at`

type SeatRepository struct {
	DB intdb.DBTX
}

func scanSeat(r rowScanner) (models.Seat, error) {
	var (
		s      models.Seat
		status string
	)
	if err := r.Scan(&s.ID, &s.BusID, &s.SeatNumber, &status, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return s, err
	}
	s.Status = domain.SeatStatus(status)
	return s, nil
}

// seatWriteErr reports the composite (bus_id, seat_number) key as a seat_number clash.
func seatWriteErr(err error) error {
	err = mapWriteErr("seats", "seat", err)
	var uniq domain.UniquenessError
	if errors.As(err, &uniq) {
		uniq.Field = "seat_number"
		return uniq
	}
	return err
}

func (r SeatRepository) Create(ctx context.Context, s *models.Seat) error {
	now := utils.NowUTC()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO seats (bus_id, seat_number, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, s.BusID, s.SeatNumber, string(s.Status), now, now)
	if err != nil {
		return seatWriteErr(err)
	}
	id, err := lastInsertID(res)
	if err != nil {
		return err
	}
	s.ID, s.CreatedAt, s.UpdatedAt = id, now, now
	return nil
}

func (r SeatRepository) GetByID(ctx context.Context, id int64) (models.Seat, error) {
	s, err := scanSeat(r.DB.QueryRowContext(ctx, `SELECT `+seatColumns+` FROM seats WHERE id = ?`, id))
	return s, mapReadErr("seat", err)
}

// List returns all seats, or those of one bus when busID > 0.
func (r SeatRepository) List(ctx context.Context, busID int64) ([]models.Seat, error) {
	q := `SELECT ` + seatColumns + ` FROM seats`
	var args []any
	if busID > 0 {
		q += ` WHERE bus_id = ?`
		args = append(args, busID)
	}
	q += ` ORDER BY bus_id, seat_number`

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Seat{}
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r SeatRepository) Update(ctx context.Context, s *models.Seat) error {
	now := utils.NowUTC()
	_, err := r.DB.ExecContext(ctx, `
		UPDATE seats SET seat_number = ?, status = ?, updated_at = ? WHERE id = ?
	`, s.SeatNumber, string(s.Status), now, s.ID)
	if err != nil {
		return seatWriteErr(err)
	}
	s.UpdatedAt = now
	return nil
}

// SetStatus updates the seat row matching (busID, seatNumber) if one exists.
func (r SeatRepository) SetStatus(ctx context.Context, busID int64, seatNumber int, status domain.SeatStatus) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE seats SET status = ?, updated_at = ? WHERE bus_id = ? AND seat_number = ?
	`, string(status), utils.NowUTC(), busID, seatNumber)
	return mapWriteErr("seats", "seat", err)
}

func (r SeatRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "seats", "seat", id)
}

