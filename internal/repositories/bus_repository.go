package repositories

import (
	"context"
	"strings"

	intdb "busbooking/internal/db"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/utils"
)

const busColumns = `id, driver_id, number_plate, number_of_seats, seats_available, model, route,
	departure_from, departure_to, departure_time, arrival_time, price_per_seat, created_at, updated_at`

type BusRepository struct {
	DB intdb.DBTX
}

func scanBus(r rowScanner) (models.Bus, error) {
	var b models.Bus
	err := r.Scan(&b.ID, &b.DriverID, &b.NumberPlate, &b.NumberOfSeats, &b.SeatsAvailable, &b.Model, &b.Route,
		&b.DepartureFrom, &b.DepartureTo, &b.DepartureTime, &b.ArrivalTime, &b.PricePerSeat, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r BusRepository) Create(ctx context.Context, b *models.Bus) error {
	now := utils.NowUTC()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO buses (driver_id, number_plate, number_of_seats, seats_available, model, route,
			departure_from, departure_to, departure_time, arrival_time, price_per_seat, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.DriverID, b.NumberPlate, b.NumberOfSeats, b.SeatsAvailable, b.Model, b.Route,
		b.DepartureFrom, b.DepartureTo, b.DepartureTime, b.ArrivalTime, b.PricePerSeat, now, now)
	if err != nil {
		return mapWriteErr("buses", "bus", err)
	}
	id, err := lastInsertID(res)
	if err != nil {
		return err
	}
	b.ID, b.CreatedAt, b.UpdatedAt = id, now, now
	return nil
}

// GetByID loads the bus together with its linked route ids.
func (r BusRepository) GetByID(ctx context.Context, id int64) (models.Bus, error) {
	b, err := scanBus(r.DB.QueryRowContext(ctx, `SELECT `+busColumns+` FROM buses WHERE id = ?`, id))
	if err != nil {
		return b, mapReadErr("bus", err)
	}
	links, err := r.routeLinks(ctx, []int64{id})
	if err != nil {
		return b, err
	}
	b.RouteIDs = links[id]
	if b.RouteIDs == nil {
		b.RouteIDs = []int64{}
	}
	return b, nil
}

// GetForUpdate locks the bus row for the rest of the transaction. Route links are not loaded.
func (r BusRepository) GetForUpdate(ctx context.Context, id int64) (models.Bus, error) {
	b, err := scanBus(r.DB.QueryRowContext(ctx, `SELECT `+busColumns+` FROM buses WHERE id = ? FOR UPDATE`, id))
	return b, mapReadErr("bus", err)
}

func (r BusRepository) List(ctx context.Context, f models.BusFilter) ([]models.Bus, error) {
	var (
		where []string
		args  []any
	)
	if f.DriverID > 0 {
		where = append(where, "driver_id = ?")
		args = append(args, f.DriverID)
	}
	if f.RouteID > 0 {
		where = append(where, "id IN (SELECT bus_id FROM bus_routes WHERE route_id = ?)")
		args = append(args, f.RouteID)
	}
	q := `SELECT ` + busColumns + ` FROM buses`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Bus{}
	ids := []int64{}
	for rows.Next() {
		b, err := scanBus(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	if len(ids) == 0 {
		return out, nil
	}

	links, err := r.routeLinks(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].RouteIDs = links[out[i].ID]
		if out[i].RouteIDs == nil {
			out[i].RouteIDs = []int64{}
		}
	}
	return out, nil
}

func (r BusRepository) routeLinks(ctx context.Context, busIDs []int64) (map[int64][]int64, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT bus_id, route_id FROM bus_routes WHERE bus_id IN (`+placeholders(len(busIDs))+`) ORDER BY bus_id, route_id`,
		int64Args(busIDs)...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := map[int64][]int64{}
	for rows.Next() {
		var busID, routeID int64
		if err := rows.Scan(&busID, &routeID); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out[busID] = append(out[busID], routeID)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r BusRepository) Update(ctx context.Context, b *models.Bus) error {
	now := utils.NowUTC()
	_, err := r.DB.ExecContext(ctx, `
		UPDATE buses
		SET driver_id = ?, number_plate = ?, number_of_seats = ?, seats_available = ?, model = ?, route = ?,
			departure_from = ?, departure_to = ?, departure_time = ?, arrival_time = ?, price_per_seat = ?, updated_at = ?
		WHERE id = ?
	`, b.DriverID, b.NumberPlate, b.NumberOfSeats, b.SeatsAvailable, b.Model, b.Route,
		b.DepartureFrom, b.DepartureTo, b.DepartureTime, b.ArrivalTime, b.PricePerSeat, now, b.ID)
	if err != nil {
		return mapWriteErr("buses", "bus", err)
	}
	b.UpdatedAt = now
	return nil
}

// AdjustSeats moves seats_available by delta, clamped to [0, number_of_seats].
func (r BusRepository) AdjustSeats(ctx context.Context, id int64, delta int) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE buses
		SET seats_available = LEAST(GREATEST(seats_available + ?, 0), number_of_seats), updated_at = ?
		WHERE id = ?
	`, delta, utils.NowUTC(), id)
	return mapWriteErr("buses", "bus", err)
}

// ReplaceRoutes rewrites the bus_routes links for a bus.
func (r BusRepository) ReplaceRoutes(ctx context.Context, busID int64, routeIDs []int64) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM bus_routes WHERE bus_id = ?`, busID); err != nil {
		return mapWriteErr("bus_routes", "bus", err)
	}
	for _, rid := range routeIDs {
		if _, err := r.DB.ExecContext(ctx, `INSERT INTO bus_routes (bus_id, route_id) VALUES (?, ?)`, busID, rid); err != nil {
			if intdb.IsMissingParent(err) {
				return domain.ValidationError{Field: "route_ids", Msg: "references an unknown route", Err: err}
			}
			return mapWriteErr("bus_routes", "bus", err)
		}
	}
	return nil
}

func (r BusRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.DB, "buses", "bus", id)
}

// CountByRoute returns how many buses link to the route.
func (r BusRepository) CountByRoute(ctx context.Context, routeID int64) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bus_routes WHERE route_id = ?`, routeID).Scan(&n); err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return n, nil
}
