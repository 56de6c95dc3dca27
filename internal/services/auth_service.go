package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intdb "busbooking/internal/db"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/identity"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	DB        *sql.DB
	Provider  identity.Provider
	Tokens    *identity.Tokens
	RequestID string
}

type AuthResult struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"-"`
	User      models.SessionUser `json:"user"`
}

// SignUp registers the account with the identity provider and the local store in one
// step. A provider failure leaves no local row behind.
func (s AuthService) SignUp(ctx context.Context, in models.SignUpInput) (AuthResult, error) {
	in.Normalize()
	if err := models.Validate(in); err != nil {
		return AuthResult{}, err
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return AuthResult{}, err
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
	}
	var account identity.Account
	err = intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		users := repositories.UserRepository{DB: tx}
		if err := users.Create(ctx, &user); err != nil {
			return err
		}
		acc, err := s.Provider.CreateUser(ctx, in.Email, in.Password)
		if err != nil {
			return upstreamErr(err)
		}
		account = acc
		if err := users.SetFirebaseUID(ctx, user.ID, acc.UID); err != nil {
			return err
		}
		user.FirebaseUID = &acc.UID
		return nil
	})
	if err != nil {
		if account.UID != "" {
			if derr := s.Provider.DeleteUser(ctx, account.UID); derr != nil {
				utils.LogEvent(s.RequestID, "auth", "signup_compensate", "provider cleanup failed: "+derr.Error())
			}
		}
		return AuthResult{}, err
	}

	utils.LogEvent(s.RequestID, "auth", "signup", fmt.Sprintf("user_id=%d", user.ID))
	return s.issue(user)
}

// LogIn accepts a provider identity (uid + email) or local username + password.
func (s AuthService) LogIn(ctx context.Context, in models.LoginInput) (AuthResult, error) {
	in.Normalize()
	users := repositories.UserRepository{DB: s.DB}

	var (
		user models.User
		err  error
	)
	switch {
	case in.UID != "":
		if in.Email == "" {
			return AuthResult{}, domain.ValidationError{Field: "email", Msg: "is required"}
		}
		acc, perr := s.Provider.GetUser(ctx, in.UID)
		if perr != nil {
			return AuthResult{}, upstreamErr(perr)
		}
		if !strings.EqualFold(acc.Email, in.Email) {
			return AuthResult{}, domain.UnauthorizedError{Msg: "email does not match the identity"}
		}
		user, err = users.GetByFirebaseUID(ctx, in.UID)
		if err != nil {
			return AuthResult{}, err
		}
	case in.Username != "":
		if in.Password == "" {
			return AuthResult{}, domain.ValidationError{Field: "password", Msg: "is required"}
		}
		user, err = users.GetByUsername(ctx, in.Username)
		if err != nil {
			if domain.IsNotFound(err) {
				return AuthResult{}, domain.UnauthorizedError{Msg: "invalid username or password"}
			}
			return AuthResult{}, err
		}
		if !CheckPassword(user.PasswordHash, in.Password) {
			return AuthResult{}, domain.UnauthorizedError{Msg: "invalid username or password"}
		}
	default:
		return AuthResult{}, domain.ValidationError{Msg: "uid and email, or username and password, are required"}
	}

	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d", user.ID))
	return s.issue(user)
}

// Authenticate resolves a bearer token to an existing local user.
func (s AuthService) Authenticate(ctx context.Context, token string) (models.User, error) {
	id, err := s.Tokens.Parse(token)
	if err != nil {
		return models.User{}, err
	}
	user, err := repositories.UserRepository{DB: s.DB}.GetByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.User{}, domain.UnauthorizedError{Msg: "user no longer exists"}
		}
		return models.User{}, err
	}
	return user, nil
}

func (s AuthService) issue(u models.User) (AuthResult, error) {
	token, exp, err := s.Tokens.Issue(u.ID, u.Role)
	if err != nil {
		return AuthResult{}, domain.InternalError{Err: err}
	}
	return AuthResult{Token: token, ExpiresAt: exp, User: Session(u)}, nil
}

// Session is the reduced user projection; Name carries the username.
func Session(u models.User) models.SessionUser {
	return models.SessionUser{ID: u.ID, Email: u.Email, Name: u.Username, Role: u.Role}
}

func upstreamErr(err error) error {
	var pe *identity.Error
	if !errors.As(err, &pe) {
		return domain.UpstreamError{Service: "identity", Msg: err.Error(), Err: err}
	}
	msg := pe.Msg
	if msg == "" {
		msg = string(pe.Kind)
	}
	return domain.UpstreamError{
		Service:         "identity",
		Msg:             msg,
		Unauthenticated: pe.Kind == identity.KindUserNotFound,
		Err:             err,
	}
}

func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.InternalError{Msg: "failed to hash password", Err: err}
	}
	return string(hash), nil
}

func CheckPassword(hash, pw string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
