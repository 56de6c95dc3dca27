package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

var (
	busCols = []string{"id", "driver_id", "number_plate", "number_of_seats", "seats_available", "model", "route",
		"departure_from", "departure_to", "departure_time", "arrival_time", "price_per_seat", "created_at", "updated_at"}
	bookingCols = []string{"id", "bus_id", "user_id", "passenger_name", "passenger_id_number", "passenger_phone",
		"seat_number", "status", "ticket_code", "created_at", "updated_at"}
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func busRows(id int64, seats, available int) *sqlmock.Rows {
	dep := time.Date(2024, 8, 15, 8, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	return sqlmock.NewRows(busCols).
		AddRow(id, 1, "ABC123", seats, available, "", "", "NY", "Boston", dep, dep.Add(4*time.Hour), 30.0, now, now)
}

func bookingRows(id, busID int64, userID any, seat int, status string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(bookingCols).AddRow(id, busID, userID, "", "", "", seat, status, "12345A", now, now)
}

func fixedCodes(codes ...string) func() string {
	i := 0
	return func() string {
		c := codes[i%len(codes)]
		i++
		return c
	}
}

func TestBookingCreateDecrementsSeats(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM buses WHERE id = \\? FOR UPDATE").WithArgs(int64(1)).
		WillReturnRows(busRows(1, 50, 50))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings WHERE bus_id").
		WithArgs(int64(1), 7, "booked", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings WHERE ticket_code").WithArgs("12345A").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("UPDATE buses SET seats_available").WithArgs(-1, sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE seats SET status").WithArgs("booked", sqlmock.AnyArg(), int64(1), 7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	userID := int64(3)
	svc := BookingService{DB: db, NewCode: fixedCodes("12345A")}
	b, err := svc.Create(context.Background(), models.CreateBookingInput{BusID: 1, SeatNumber: 7}, &userID)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if b.ID != 9 || b.TicketCode != "12345A" || b.Status != domain.BookingBooked || b.OwnerID() != 3 {
		t.Fatalf("unexpected booking: %+v", b)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCreateSeatTaken(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM buses WHERE id = \\? FOR UPDATE").WillReturnRows(busRows(1, 50, 49))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings WHERE bus_id").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectRollback()

	_, err := BookingService{DB: db}.Create(context.Background(), models.CreateBookingInput{BusID: 1, SeatNumber: 7}, nil)
	var conflict domain.ConflictError
	if !errors.As(err, &conflict) || conflict.Msg != "Seat already booked" {
		t.Fatalf("expected seat conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCreateNoSeatsLeft(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM buses WHERE id = \\? FOR UPDATE").WillReturnRows(busRows(1, 2, 0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings WHERE bus_id").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectRollback()

	_, err := BookingService{DB: db}.Create(context.Background(), models.CreateBookingInput{BusID: 1, SeatNumber: 2}, nil)
	if !domain.IsConflict(err) || err.Error() != "No seats available" {
		t.Fatalf("expected no seats conflict, got %v", err)
	}
}

func TestBookingCreateSeatOutOfRange(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM buses WHERE id = \\? FOR UPDATE").WillReturnRows(busRows(1, 10, 10))
	mock.ExpectRollback()

	_, err := BookingService{DB: db}.Create(context.Background(), models.CreateBookingInput{BusID: 1, SeatNumber: 11}, nil)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBookingCreateMissingBus(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM buses WHERE id = \\? FOR UPDATE").WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := BookingService{DB: db}.Create(context.Background(), models.CreateBookingInput{BusID: 999, SeatNumber: 1}, nil)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBookingCreateRetriesTicketCode(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM buses WHERE id = \\? FOR UPDATE").WillReturnRows(busRows(1, 50, 50))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings WHERE bus_id").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	// first code already exists
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings WHERE ticket_code").WithArgs("11111A").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	// second code loses an insert race
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings WHERE ticket_code").WithArgs("22222B").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '22222B' for key 'bookings.uniq_bookings_ticket_code'"})
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings WHERE ticket_code").WithArgs("33333C").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectExec("UPDATE buses SET seats_available").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE seats SET status").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	svc := BookingService{DB: db, NewCode: fixedCodes("11111A", "22222B", "33333C")}
	b, err := svc.Create(context.Background(), models.CreateBookingInput{BusID: 1, SeatNumber: 3}, nil)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if b.TicketCode != "33333C" {
		t.Fatalf("ticket code = %s, want 33333C", b.TicketCode)
	}
}

func TestBookingCreateActiveSeatRaceIsConflict(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM buses WHERE id = \\? FOR UPDATE").WillReturnRows(busRows(1, 50, 50))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings WHERE bus_id").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings WHERE ticket_code").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-3' for key 'bookings.uniq_bookings_active_seat'"})
	mock.ExpectRollback()

	_, err := BookingService{DB: db, NewCode: fixedCodes("12345A")}.
		Create(context.Background(), models.CreateBookingInput{BusID: 1, SeatNumber: 3}, nil)
	if !domain.IsConflict(err) || err.Error() != "Seat already booked" {
		t.Fatalf("expected seat conflict, got %v", err)
	}
}

func TestBookingDeleteRestoresSeat(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\? FOR UPDATE").WithArgs(int64(5)).
		WillReturnRows(bookingRows(5, 1, int64(3), 7, "booked"))
	mock.ExpectExec("DELETE FROM bookings WHERE id = ?").WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE buses SET seats_available").WithArgs(1, sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE seats SET status").WithArgs("available", sqlmock.AnyArg(), int64(1), 7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	rc := domain.RequestContext{UserID: 3, Role: domain.RoleCustomer}
	if err := (BookingService{DB: db}).Delete(context.Background(), rc, 5); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingDeleteCancelledKeepsCounter(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\? FOR UPDATE").
		WillReturnRows(bookingRows(5, 1, int64(3), 7, "cancelled"))
	mock.ExpectExec("DELETE FROM bookings WHERE id = ?").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rc := domain.RequestContext{UserID: 1, Role: domain.RoleAdmin}
	if err := (BookingService{DB: db}).Delete(context.Background(), rc, 5); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingDeleteOtherUserForbidden(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\? FOR UPDATE").
		WillReturnRows(bookingRows(5, 1, int64(3), 7, "booked"))
	mock.ExpectRollback()

	rc := domain.RequestContext{UserID: 4, Role: domain.RoleCustomer}
	err := BookingService{DB: db}.Delete(context.Background(), rc, 5)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestBookingCancelReleasesSeat(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\? FOR UPDATE").
		WillReturnRows(bookingRows(5, 1, int64(3), 7, "booked"))
	mock.ExpectExec("UPDATE bookings").WithArgs(7, "cancelled", "", "", "", sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE buses SET seats_available").WithArgs(1, sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE seats SET status").WithArgs("available", sqlmock.AnyArg(), int64(1), 7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	status := domain.BookingCancelled
	rc := domain.RequestContext{UserID: 3, Role: domain.RoleCustomer}
	b, err := BookingService{DB: db}.Update(context.Background(), rc, 5, models.BookingPatch{Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if b.Status != domain.BookingCancelled || b.SeatNumber != 7 {
		t.Fatalf("unexpected booking: %+v", b)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingListScopesToCaller(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE user_id = \\? ORDER BY id").WithArgs(int64(3)).
		WillReturnRows(bookingRows(5, 1, int64(3), 7, "booked"))

	rc := domain.RequestContext{UserID: 3, Role: domain.RoleCustomer}
	out, err := BookingService{DB: db}.List(context.Background(), rc, models.BookingFilter{UserID: 99})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(out))
	}
}
