package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSeedSkipsPopulatedDatabase(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))
	mock.ExpectCommit()

	res, err := SeedService{DB: db}.Run(context.Background())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !res.Skipped || res.Users != 0 {
		t.Fatalf("expected skipped seed, got %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeedPopulatesEmptyDatabase(t *testing.T) {
	db, mock := newMockDB(t)
	mock.MatchExpectationsInOrder(true)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	for i := 1; i <= 3; i++ {
		mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(int64(i), 1))
	}
	mock.ExpectExec("INSERT INTO drivers").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO admins").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO routes").WithArgs("Route 1", "route-1", "Nairobi", "Mombasa", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO routes").WillReturnResult(sqlmock.NewResult(2, 1))
	for i := 1; i <= 2; i++ {
		mock.ExpectExec("INSERT INTO buses").WillReturnResult(sqlmock.NewResult(int64(i), 1))
		mock.ExpectExec("DELETE FROM bus_routes").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO bus_routes").WithArgs(int64(i), int64(i)).WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE buses SET seats_available").WithArgs(-1, sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO reviews").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO reviews").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	res, err := SeedService{DB: db, NewCode: fixedCodes("11111A", "22222B")}.Run(context.Background())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if res.Skipped || res.Users != 3 || res.Buses != 2 || res.Bookings != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
