package repositories

import (
	"context"
	"database/sql"

	intdb "busbooking/internal/db"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/utils"
)

const userColumns = `id, username, email, firebase_uid, password_hash, role, created_at, updated_at`

type UserRepository struct {
	DB intdb.DBTX
}

func scanUser(r rowScanner) (models.User, error) {
	var (
		u    models.User
		uid  sql.NullString
		role string
	)
	if err := r.Scan(&u.ID, &u.Username, &u.Email, &uid, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return u, err
	}
	if uid.Valid {
		u.FirebaseUID = &uid.String
	}
	u.Role = domain.Role(role)
	return u, nil
}

func (r UserRepository) Create(ctx context.Context, u *models.User) error {
	now := utils.NowUTC()
	var uid any
	if u.FirebaseUID != nil {
		uid = *u.FirebaseUID
	}
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (username, email, firebase_uid, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, u.Username, u.Email, uid, u.PasswordHash, string(u.Role), now, now)
	if err != nil {
		return mapWriteErr("users", "user", err)
	}
	id, err := lastInsertID(res)
	if err != nil {
		return err
	}
	u.ID, u.CreatedAt, u.UpdatedAt = id, now, now
	return nil
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	return u, mapReadErr("user", err)
}

func (r UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username))
	return u, mapReadErr("user", err)
}

func (r UserRepository) GetByFirebaseUID(ctx context.Context, uid string) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE firebase_uid = ?`, uid))
	return u, mapReadErr("user", err)
}

func (r UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r UserRepository) Update(ctx context.Context, u *models.User) error {
	now := utils.NowUTC()
	var uid any
	if u.FirebaseUID != nil {
		uid = *u.FirebaseUID
	}
	_, err := r.DB.ExecContext(ctx, `
		UPDATE users
		SET username = ?, email = ?, firebase_uid = ?, password_hash = ?, role = ?, updated_at = ?
		WHERE id = ?
	`, u.Username, u.Email, uid, u.PasswordHash, string(u.Role), now, u.ID)
	if err != nil {
		return mapWriteErr("users", "user", err)
	}
	u.UpdatedAt = now
	return nil
}

// SetFirebaseUID links a local user to the identity provider account.
func (r UserRepository) SetFirebaseUID(ctx context.Context, id int64, uid string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET firebase_uid = ?, updated_at = ? WHERE id = ?`, uid, utils.NowUTC(), id)
	return mapWriteErr("users", "user", err)
}

func (r UserRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "users", "user", id)
}

func (r UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return n, nil
}
