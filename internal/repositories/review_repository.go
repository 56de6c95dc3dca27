package repositories

import (
	"context"
	"database/sql"

	intdb "busbooking/internal/db"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/utils"
)

const reviewColumns = `id, booking_id, name, email, review_text, rating, created_at, updated_at`

type ReviewRepository struct {
	DB intdb.DBTX
}

func scanReview(r rowScanner) (models.Review, error) {
	var (
		rv        models.Review
		bookingID sql.NullInt64
	)
	if err := r.Scan(&rv.ID, &bookingID, &rv.Name, &rv.Email, &rv.ReviewText, &rv.Rating, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
		return rv, err
	}
	if bookingID.Valid {
		rv.BookingID = &bookingID.Int64
	}
	return rv, nil
}

func (r ReviewRepository) Create(ctx context.Context, rv *models.Review) error {
	now := utils.NowUTC()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO reviews (booking_id, name, email, review_text, rating, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, nullableID(rv.BookingID), rv.Name, rv.Email, rv.ReviewText, rv.Rating, now, now)
	if err != nil {
		if intdb.IsMissingParent(err) {
			return domain.ValidationError{Field: "booking_id", Msg: "references an unknown booking", Err: err}
		}
		return mapWriteErr("reviews", "review", err)
	}
	id, err := lastInsertID(res)
	if err != nil {
		return err
	}
	rv.ID, rv.CreatedAt, rv.UpdatedAt = id, now, now
	return nil
}

func (r ReviewRepository) GetByID(ctx context.Context, id int64) (models.Review, error) {
	rv, err := scanReview(r.DB.QueryRowContext(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, id))
	return rv, mapReadErr("review", err)
}

func (r ReviewRepository) List(ctx context.Context) ([]models.Review, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY id`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r ReviewRepository) Update(ctx context.Context, rv *models.Review) error {
	now := utils.NowUTC()
	_, err := r.DB.ExecContext(ctx, `
		UPDATE reviews SET name = ?, email = ?, review_text = ?, rating = ?, updated_at = ? WHERE id = ?
	`, rv.Name, rv.Email, rv.ReviewText, rv.Rating, now, rv.ID)
	if err != nil {
		return mapWriteErr("reviews", "review", err)
	}
	rv.UpdatedAt = now
	return nil
}

func (r ReviewRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "reviews", "review", id)
}
