package repositories

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

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var busCols = []string{"id", "driver_id", "number_plate", "number_of_seats", "seats_available", "model", "route",
	"departure_from", "departure_to", "departure_time", "arrival_time", "price_per_seat", "created_at", "updated_at"}

func TestUserCreateMapsDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'users.uniq_users_email'"})

	repo := UserRepository{DB: db}
	err := repo.Create(context.Background(), &models.User{Username: "alice", Email: "a@b.c", Role: domain.RoleCustomer})

	var uniq domain.UniquenessError
	if !errors.As(err, &uniq) {
		t.Fatalf("expected uniqueness error, got %v", err)
	}
	if uniq.Field != "email" {
		t.Fatalf("field = %q, want email", uniq.Field)
	}
}

func TestUserGetByIDMissing(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ?").WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	_, err := UserRepository{DB: db}.GetByID(context.Background(), 7)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserCreateSetsIDAndTimestamps(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(12, 1))

	u := models.User{Username: "bob", Email: "bob@example.com", Role: domain.RoleCustomer}
	if err := (UserRepository{DB: db}).Create(context.Background(), &u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID != 12 || u.CreatedAt.IsZero() || !u.CreatedAt.Equal(u.UpdatedAt) {
		t.Fatalf("unexpected user after create: %+v", u)
	}
}

func TestBusGetByIDLoadsRouteLinks(t *testing.T) {
	db, mock := newMock(t)
	dep := time.Date(2024, 8, 15, 8, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM buses WHERE id = ?").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(busCols).
			AddRow(3, 1, "ABC123", 50, 48, "", "", "NY", "Boston", dep, dep.Add(4*time.Hour), 30.0, now, now))
	mock.ExpectQuery("SELECT bus_id, route_id FROM bus_routes").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"bus_id", "route_id"}).AddRow(3, 1).AddRow(3, 4))

	b, err := BusRepository{DB: db}.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("get bus: %v", err)
	}
	if b.SeatsAvailable != 48 || len(b.RouteIDs) != 2 || b.RouteIDs[1] != 4 {
		t.Fatalf("unexpected bus: %+v", b)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBusListEmptySkipsRouteQuery(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT (.+) FROM buses WHERE driver_id = \\? ORDER BY id").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(busCols))

	out, err := BusRepository{DB: db}.List(context.Background(), models.BusFilter{DriverID: 9})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBusReplaceRoutesUnknownRoute(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("DELETE FROM bus_routes WHERE bus_id = ?").WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO bus_routes").WithArgs(int64(2), int64(99)).
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})

	err := BusRepository{DB: db}.ReplaceRoutes(context.Background(), 2, []int64{99})
	var verr domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "route_ids" {
		t.Fatalf("expected route_ids validation error, got %v", err)
	}
}

func TestDeleteMissingRowIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("DELETE FROM routes WHERE id = ?").WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := RouteRepository{DB: db}.Delete(context.Background(), 5)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteReferencedRowIsConflict(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("DELETE FROM drivers WHERE id = ?").WithArgs(int64(1)).
		WillReturnError(&mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"})

	err := DriverRepository{DB: db}.Delete(context.Background(), 1)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSeatCreateDuplicateReportsSeatNumber(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO seats").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-4' for key 'seats.uniq_seats_bus_seat'"})

	err := SeatRepository{DB: db}.Create(context.Background(), &models.Seat{BusID: 1, SeatNumber: 4, Status: domain.SeatAvailable})
	var uniq domain.UniquenessError
	if !errors.As(err, &uniq) || uniq.Field != "seat_number" {
		t.Fatalf("expected seat_number uniqueness error, got %v", err)
	}
}

func TestBookingListFiltersByUser(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	cols := []string{"id", "bus_id", "user_id", "passenger_name", "passenger_id_number", "passenger_phone",
		"seat_number", "status", "ticket_code", "created_at", "updated_at"}
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE user_id = \\? ORDER BY id").WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, 2, 4, "", "", "", 7, "booked", "12A345", now, now).
			AddRow(2, 2, nil, "Counter", "ID1", "0800", 8, "cancelled", "99999Z", now, now))

	out, err := BookingRepository{DB: db}.List(context.Background(), models.BookingFilter{UserID: 4})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(out))
	}
	if out[0].OwnerID() != 4 || !out[0].Active() {
		t.Fatalf("unexpected first booking: %+v", out[0])
	}
	if out[1].UserID != nil || out[1].Status != domain.BookingCancelled {
		t.Fatalf("unexpected second booking: %+v", out[1])
	}
}

func TestBookingSeatTakenExcludesSelf(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs(int64(2), 7, "booked", int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))

	taken, err := BookingRepository{DB: db}.SeatTaken(context.Background(), 2, 7, 11)
	if err != nil {
		t.Fatalf("seat taken: %v", err)
	}
	if taken {
		t.Fatalf("seat should be free")
	}
}
