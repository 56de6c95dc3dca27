package repositories

import (
	"context"

	intdb "busbooking/internal/db"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/utils"
)

const adminColumns = `id, full_name, id_number, phone_number, created_at, updated_at`

type AdminRepository struct {
	DB intdb.DBTX
}

func scanAdmin(r rowScanner) (models.Admin, error) {
	var a models.Admin
	err := r.Scan(&a.ID, &a.FullName, &a.IDNumber, &a.PhoneNumber, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r AdminRepository) Create(ctx context.Context, a *models.Admin) error {
	now := utils.NowUTC()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO admins (full_name, id_number, phone_number, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, a.FullName, a.IDNumber, a.PhoneNumber, now, now)
	if err != nil {
		return mapWriteErr("admins", "admin", err)
	}
	id, err := lastInsertID(res)
	if err != nil {
		return err
	}
	a.ID, a.CreatedAt, a.UpdatedAt = id, now, now
	return nil
}

func (r AdminRepository) GetByID(ctx context.Context, id int64) (models.Admin, error) {
	a, err := scanAdmin(r.DB.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = ?`, id))
	return a, mapReadErr("admin", err)
}

func (r AdminRepository) List(ctx context.Context) ([]models.Admin, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+adminColumns+` FROM admins ORDER BY id`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Admin{}
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r AdminRepository) Update(ctx context.Context, a *models.Admin) error {
	now := utils.NowUTC()
	_, err := r.DB.ExecContext(ctx, `
		UPDATE admins SET full_name = ?, id_number = ?, phone_number = ?, updated_at = ?
		WHERE id = ?
	`, a.FullName, a.IDNumber, a.PhoneNumber, now, a.ID)
	if err != nil {
		return mapWriteErr("admins", "admin", err)
	}
	a.UpdatedAt = now
	return nil
}

func (r AdminRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "admins", "admin", id)
}
