package repositories

import (
	"context"

	intdb "busbooking/internal/db"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/utils"
)

const contactColumns = `id, name, email, message, created_at, updated_at`

type ContactRepository struct {
	DB intdb.DBTX
}

func scanContact(r rowScanner) (models.ContactMessage, error) {
	var m models.ContactMessage
	err := r.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r ContactRepository) Create(ctx context.Context, m *models.ContactMessage) error {
	now := utils.NowUTC()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO contact_messages (name, email, message, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, m.Name, m.Email, m.Message, now, now)
	if err != nil {
		return mapWriteErr("contact_messages", "contact message", err)
	}
	id, err := lastInsertID(res)
	if err != nil {
		return err
	}
	m.ID, m.CreatedAt, m.UpdatedAt = id, now, now
	return nil
}

func (r ContactRepository) GetByID(ctx context.Context, id int64) (models.ContactMessage, error) {
	m, err := scanContact(r.DB.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contact_messages WHERE id = ?`, id))
	return m, mapReadErr("contact message", err)
}

func (r ContactRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+contactColumns+` FROM contact_messages ORDER BY id`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.ContactMessage{}
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r ContactRepository) Update(ctx context.Context, m *models.ContactMessage) error {
	now := utils.NowUTC()
	_, err := r.DB.ExecContext(ctx, `
		UPDATE contact_messages SET name = ?, email = ?, message = ?, updated_at = ? WHERE id = ?
	`, m.Name, m.Email, m.Message, now, m.ID)
	if err != nil {
		return mapWriteErr("contact_messages", "contact message", err)
	}
	m.UpdatedAt = now
	return nil
}

func (r ContactRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "contact_messages", "contact message", id)
}
