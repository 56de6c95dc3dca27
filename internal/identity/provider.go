// Package identity wraps the external account provider and the bearer tokens
// issued for local users.
package identity

import (
	"context"
	"errors"
	"fmt"
)

// Account is the provider-side view of a user.
type Account struct {
	UID   string
	Email string
}

// Provider registers and looks up accounts at the external identity service.
type Provider interface {
	CreateUser(ctx context.Context, email, password string) (Account, error)
	GetUser(ctx context.Context, uid string) (Account, error)
	DeleteUser(ctx context.Context, uid string) error
}

type ErrorKind string

const (
	KindEmailExists  ErrorKind = "email_exists"
	KindUserNotFound ErrorKind = "user_not_found"
	KindInvalidInput ErrorKind = "invalid_input"
	KindUnavailable  ErrorKind = "unavailable"
)

// Error is the typed failure every Provider returns.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the provider error kind, or "" when err is not an *Error.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
