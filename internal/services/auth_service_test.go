package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/identity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

var userCols = []string{"id", "username", "email", "firebase_uid", "password_hash", "role", "created_at", "updated_at"}

func newAuth(t *testing.T) (AuthService, sqlmock.Sqlmock, *identity.MemoryProvider) {
	db, mock := newMockDB(t)
	p := identity.NewMemoryProvider()
	return AuthService{DB: db, Provider: p, Tokens: identity.NewTokens("test-secret", time.Hour)}, mock, p
}

func TestSignUpLinksProviderAccount(t *testing.T) {
	svc, mock, p := newAuth(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("UPDATE users SET firebase_uid").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := svc.SignUp(context.Background(), models.SignUpInput{Username: " alice ", Email: "Alice@Example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if res.Token == "" || res.User.ID != 7 || res.User.Name != "alice" || res.User.Email != "alice@example.com" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if id, err := svc.Tokens.Parse(res.Token); err != nil || id != 7 {
		t.Fatalf("token does not resolve to user: %d %v", id, err)
	}
	if p.Len() != 1 {
		t.Fatalf("expected provider account, got %d", p.Len())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSignUpProviderFailureRollsBack(t *testing.T) {
	svc, mock, p := newAuth(t)
	p.Fail = &identity.Error{Kind: identity.KindInvalidInput, Msg: "WEAK_PASSWORD"}
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectRollback()

	_, err := svc.SignUp(context.Background(), models.SignUpInput{Username: "alice", Email: "a@b.c", Password: "secret1"})
	var up domain.UpstreamError
	if !errors.As(err, &up) || up.Msg != "WEAK_PASSWORD" || up.Unauthenticated {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSignUpDuplicateUsernameSkipsProvider(t *testing.T) {
	svc, mock, p := newAuth(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'users.uniq_users_username'"})
	mock.ExpectRollback()

	_, err := svc.SignUp(context.Background(), models.SignUpInput{Username: "alice", Email: "a@b.c", Password: "secret1"})
	var uniq domain.UniquenessError
	if !errors.As(err, &uniq) || uniq.Field != "username" {
		t.Fatalf("expected username uniqueness error, got %v", err)
	}
	if p.Len() != 0 {
		t.Fatalf("provider must not be called")
	}
}

func TestSignUpCommitFailureDeletesProviderAccount(t *testing.T) {
	svc, mock, p := newAuth(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("UPDATE users SET firebase_uid").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("connection lost"))

	if _, err := svc.SignUp(context.Background(), models.SignUpInput{Username: "alice", Email: "a@b.c", Password: "secret1"}); err == nil {
		t.Fatalf("expected error")
	}
	if p.Len() != 0 {
		t.Fatalf("provider account should be removed, got %d", p.Len())
	}
}

func TestSignUpMissingField(t *testing.T) {
	svc, _, _ := newAuth(t)
	_, err := svc.SignUp(context.Background(), models.SignUpInput{Username: "alice", Password: "secret1"})
	var verr domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "email" {
		t.Fatalf("expected email validation error, got %v", err)
	}
}

func TestLogInWithProviderIdentity(t *testing.T) {
	svc, mock, p := newAuth(t)
	acc, err := p.CreateUser(context.Background(), "bob@example.com", "secret1")
	if err != nil {
		t.Fatalf("seed provider: %v", err)
	}
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE firebase_uid = ?").WithArgs(acc.UID).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(4, "bob", "bob@example.com", acc.UID, "", "customer", now, now))

	res, err := svc.LogIn(context.Background(), models.LoginInput{UID: acc.UID, Email: "BOB@example.com"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.User.ID != 4 || res.Token == "" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestLogInEmailMismatch(t *testing.T) {
	svc, _, p := newAuth(t)
	acc, _ := p.CreateUser(context.Background(), "bob@example.com", "secret1")
	_, err := svc.LogIn(context.Background(), models.LoginInput{UID: acc.UID, Email: "eve@example.com"})
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLogInUnknownProviderUser(t *testing.T) {
	svc, _, _ := newAuth(t)
	_, err := svc.LogIn(context.Background(), models.LoginInput{UID: "missing", Email: "x@y.z"})
	var up domain.UpstreamError
	if !errors.As(err, &up) || !up.Unauthenticated {
		t.Fatalf("expected unauthenticated upstream error, got %v", err)
	}
}

func TestLogInWithPassword(t *testing.T) {
	svc, mock, _ := newAuth(t)
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	now := time.Now().UTC()
	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows(userCols).AddRow(2, "carol", "carol@example.com", nil, hash, "admin", now, now)
	}
	mock.ExpectQuery("SELECT (.+) FROM users WHERE username = ?").WithArgs("carol").WillReturnRows(rows())
	mock.ExpectQuery("SELECT (.+) FROM users WHERE username = ?").WithArgs("carol").WillReturnRows(rows())

	res, err := svc.LogIn(context.Background(), models.LoginInput{Username: "carol", Password: "secret1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.User.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role %s", res.User.Role)
	}

	_, err = svc.LogIn(context.Background(), models.LoginInput{Username: "carol", Password: "wrong-password"})
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestAuthenticateDeletedUser(t *testing.T) {
	svc, mock, _ := newAuth(t)
	token, _, err := svc.Tokens.Issue(11, domain.RoleCustomer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ?").WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err = svc.Authenticate(context.Background(), token)
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestSessionProjection(t *testing.T) {
	got := Session(models.User{ID: 4, Username: "bob", Email: "bob@example.com", PasswordHash: "x", Role: domain.RoleDriver})
	want := models.SessionUser{ID: 4, Email: "bob@example.com", Name: "bob", Role: domain.RoleDriver}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
