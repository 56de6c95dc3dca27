package repositories

import (
	"context"

	intdb "busbooking/internal/db"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/utils"
)

const routeColumns = `id, route_name, slug, origin, destination, created_at, updated_at`

type RouteRepository struct {
	DB intdb.DBTX
}

func scanRoute(r rowScanner) (models.Route, error) {
	var rt models.Route
	err := r.Scan(&rt.ID, &rt.RouteName, &rt.Slug, &rt.Origin, &rt.Destination, &rt.CreatedAt, &rt.UpdatedAt)
	return rt, err
}

func (r RouteRepository) Create(ctx context.Context, rt *models.Route) error {
	now := utils.NowUTC()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO routes (route_name, slug, origin, destination, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rt.RouteName, rt.Slug, rt.Origin, rt.Destination, now, now)
	if err != nil {
		return mapWriteErr("routes", "route", err)
	}
	id, err := lastInsertID(res)
	if err != nil {
		return err
	}
	rt.ID, rt.CreatedAt, rt.UpdatedAt = id, now, now
	return nil
}

func (r RouteRepository) GetByID(ctx context.Context, id int64) (models.Route, error) {
	rt, err := scanRoute(r.DB.QueryRowContext(ctx, `SELECT `+routeColumns+` FROM routes WHERE id = ?`, id))
	return rt, mapReadErr("route", err)
}

// List returns all routes, or only those matching slug when it is set.
func (r RouteRepository) List(ctx context.Context, slug string) ([]models.Route, error) {
	q := `SELECT ` + routeColumns + ` FROM routes`
	var args []any
	if slug != "" {
		q += ` WHERE slug = ?`
		args = append(args, slug)
	}
	q += ` ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r RouteRepository) Update(ctx context.Context, rt *models.Route) error {
	now := utils.NowUTC()
	_, err := r.DB.ExecContext(ctx, `
		UPDATE routes SET route_name = ?, slug = ?, origin = ?, destination = ?, updated_at = ?
		WHERE id = ?
	`, rt.RouteName, rt.Slug, rt.Origin, rt.Destination, now, rt.ID)
	if err != nil {
		return mapWriteErr("routes", "route", err)
	}
	rt.UpdatedAt = now
	return nil
}

func (r RouteRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "routes", "route", id)
}
