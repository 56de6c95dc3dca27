package services

import (
	"context"
	"database/sql"
	"fmt"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"
)

// UserService manages local accounts from the admin and self-service endpoints.
type UserService struct {
	DB        *sql.DB
	RequestID string
}

func (s UserService) users() repositories.UserRepository {
	return repositories.UserRepository{DB: s.DB}
}

func (s UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users().List(ctx)
}

func (s UserService) Get(ctx context.Context, rc domain.RequestContext, id int64) (models.User, error) {
	if !rc.CanAccess(id) {
		return models.User{}, domain.ForbiddenError{Msg: "not allowed to access this user"}
	}
	return s.users().GetByID(ctx, id)
}

// Create adds a local-only account. It has no identity provider link.
func (s UserService) Create(ctx context.Context, in models.CreateUserInput) (models.User, error) {
	in.Normalize()
	if err := models.Validate(in); err != nil {
		return models.User{}, err
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}
	u := models.User{Username: in.Username, Email: in.Email, PasswordHash: hash, Role: in.Role}
	if err := s.users().Create(ctx, &u); err != nil {
		return models.User{}, err
	}
	utils.LogEvent(s.RequestID, "users", "create", fmt.Sprintf("user_id=%d role=%s", u.ID, u.Role))
	return u, nil
}

// Update lets a user edit their own profile; only admins may change roles.
func (s UserService) Update(ctx context.Context, rc domain.RequestContext, id int64, p models.UserPatch) (models.User, error) {
	if !rc.CanAccess(id) {
		return models.User{}, domain.ForbiddenError{Msg: "not allowed to access this user"}
	}
	if p.Role != nil && !rc.IsAdmin() {
		return models.User{}, domain.ForbiddenError{Msg: "only admins can change roles"}
	}
	p.Normalize()
	if err := models.Validate(p); err != nil {
		return models.User{}, err
	}

	u, err := s.users().GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	p.Apply(&u)
	if p.Password != nil {
		if u.PasswordHash, err = HashPassword(*p.Password); err != nil {
			return models.User{}, err
		}
	}
	if err := s.users().Update(ctx, &u); err != nil {
		return models.User{}, err
	}
	utils.LogEvent(s.RequestID, "users", "update", fmt.Sprintf("user_id=%d", u.ID))
	return u, nil
}

func (s UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users().Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "users", "delete", fmt.Sprintf("user_id=%d", id))
	return nil
}
