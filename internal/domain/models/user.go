package models

import (
	"strings"
	"time"

	"busbooking/internal/domain"
)

type User struct {
	ID           int64       `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	FirebaseUID  *string     `json:"firebase_uid,omitempty"`
	PasswordHash string      `json:"-"` // never serialized
	Role         domain.Role `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// SessionUser is the reduced projection returned by the current-user endpoints.
type SessionUser struct {
	ID    int64       `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
}

type SignUpInput struct {
	Username string `json:"username" validate:"required,max=80"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=6"`
}

func (in *SignUpInput) Normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

// LoginInput accepts either a provider identity (uid + email) or local credentials.
type LoginInput struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in *LoginInput) Normalize() {
	in.UID = strings.TrimSpace(in.UID)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)
}

type CreateUserInput struct {
	Username string      `json:"username" validate:"required,max=80"`
	Email    string      `json:"email" validate:"required,email,max=120"`
	Password string      `json:"password" validate:"required,min=6"`
	Role     domain.Role `json:"role" validate:"omitempty,oneof=admin driver customer"`
}

func (in *CreateUserInput) Normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Role == "" {
		in.Role = domain.RoleCustomer
	}
}

type UserPatch struct {
	Username *string      `json:"username" validate:"omitempty,min=1,max=80"`
	Email    *string      `json:"email" validate:"omitempty,email,max=120"`
	Password *string      `json:"password" validate:"omitempty,min=6"`
	Role     *domain.Role `json:"role" validate:"omitempty,oneof=admin driver customer"`
}

func (p *UserPatch) Normalize() {
	trimPtr(p.Username)
	if p.Email != nil {
		*p.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
}

// Apply copies the present fields onto u. The password is hashed by the caller.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
}
