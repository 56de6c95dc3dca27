package repositories

import (
	"context"

	intdb "busbooking/internal/db"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/utils"
)

const driverColumns = `id, full_name, id_number, driving_license, phone_number, created_at, updated_at`

type DriverRepository struct {
	DB intdb.DBTX
}

func scanDriver(r rowScanner) (models.Driver, error) {
	var d models.Driver
	err := r.Scan(&d.ID, &d.FullName, &d.IDNumber, &d.DrivingLicense, &d.PhoneNumber, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r DriverRepository) Create(ctx context.Context, d *models.Driver) error {
	now := utils.NowUTC()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO drivers (full_name, id_number, driving_license, phone_number, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, d.FullName, d.IDNumber, d.DrivingLicense, d.PhoneNumber, now, now)
	if err != nil {
		return mapWriteErr("drivers", "driver", err)
	}
	id, err := lastInsertID(res)
	if err != nil {
		return err
	}
	d.ID, d.CreatedAt, d.UpdatedAt = id, now, now
	return nil
}

func (r DriverRepository) GetByID(ctx context.Context, id int64) (models.Driver, error) {
	d, err := scanDriver(r.DB.QueryRowContext(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = ?`, id))
	return d, mapReadErr("driver", err)
}

func (r DriverRepository) List(ctx context.Context) ([]models.Driver, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+driverColumns+` FROM drivers ORDER BY id`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r DriverRepository) Update(ctx context.Context, d *models.Driver) error {
	now := utils.NowUTC()
	_, err := r.DB.ExecContext(ctx, `
		UPDATE drivers
		SET full_name = ?, id_number = ?, driving_license = ?, phone_number = ?, updated_at = ?
		WHERE id = ?
	`, d.FullName, d.IDNumber, d.DrivingLicense, d.PhoneNumber, now, d.ID)
	if err != nil {
		return mapWriteErr("drivers", "driver", err)
	}
	d.UpdatedAt = now
	return nil
}

func (r DriverRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "drivers", "driver", id)
}
