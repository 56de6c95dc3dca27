package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestDuplicateKeyStripsTablePrefix(t *testing.T) {
	err := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'ABC123' for key 'buses.uniq_buses_number_plate'"}
	key, ok := DuplicateKey(err)
	if !ok {
		t.Fatalf("expected duplicate key to be detected")
	}
	if key != "uniq_buses_number_plate" {
		t.Fatalf("unexpected key %q", key)
	}
	if got := KeyField("buses", key); got != "number_plate" {
		t.Fatalf("unexpected field %q", got)
	}
}

func TestDuplicateKeyIgnoresOtherErrors(t *testing.T) {
	if _, ok := DuplicateKey(errors.New("boom")); ok {
		t.Fatalf("plain error must not be a duplicate key")
	}
	if _, ok := DuplicateKey(&mysql.MySQLError{Number: 1451}); ok {
		t.Fatalf("foreign key error must not be a duplicate key")
	}
	if !IsRowReferenced(&mysql.MySQLError{Number: 1451}) {
		t.Fatalf("1451 should be reported as referenced row")
	}
	if !IsMissingParent(&mysql.MySQLError{Number: 1452}) {
		t.Fatalf("1452 should be reported as missing parent")
	}
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE buses").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = WithTx(context.Background(), conn, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(context.Background(), "UPDATE buses SET seats_available = 1")
		return err
	})
	if err != nil {
		t.Fatalf("WithTx returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	sentinel := errors.New("provider down")
	err = WithTx(context.Background(), conn, func(tx *sql.Tx) error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMigrateCreatesOnlyMissingTables(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer conn.Close()

	for i, name := range TableNames() {
		q := mock.ExpectQuery("information_schema\\.tables").WithArgs(name)
		if i == 0 {
			q.WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow(name))
			continue
		}
		q.WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + name).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	if err := Migrate(context.Background(), conn); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
