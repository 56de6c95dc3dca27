package services

import (
	"context"
	"database/sql"
	"fmt"

	intdb "busbooking/internal/db"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"
)

// BusService keeps buses, their driver reference and their route links consistent.
type BusService struct {
	DB        *sql.DB
	RequestID string
}

func (s BusService) Create(ctx context.Context, in models.CreateBusInput) (models.Bus, error) {
	in.Normalize()
	if err := models.Validate(in); err != nil {
		return models.Bus{}, err
	}
	bus := in.Bus()
	if err := bus.CheckSchedule(); err != nil {
		return models.Bus{}, err
	}

	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := requireDriver(ctx, tx, bus.DriverID); err != nil {
			return err
		}
		buses := repositories.BusRepository{DB: tx}
		if err := buses.Create(ctx, &bus); err != nil {
			return err
		}
		return buses.ReplaceRoutes(ctx, bus.ID, bus.RouteIDs)
	})
	if err != nil {
		return models.Bus{}, err
	}

	utils.LogEvent(s.RequestID, "buses", "create", fmt.Sprintf("bus_id=%d plate=%s", bus.ID, bus.NumberPlate))
	return bus, nil
}

func (s BusService) Update(ctx context.Context, id int64, p models.BusPatch) (models.Bus, error) {
	p.Normalize()
	if err := models.Validate(p); err != nil {
		return models.Bus{}, err
	}

	var bus models.Bus
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		buses := repositories.BusRepository{DB: tx}
		current, err := buses.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p.NumberOfSeats != nil && *p.NumberOfSeats < current.NumberOfSeats {
			if err := checkCapacity(ctx, tx, id, *p.NumberOfSeats); err != nil {
				return err
			}
		}
		p.Apply(&current)
		if err := current.CheckSchedule(); err != nil {
			return err
		}
		if p.DriverID != nil {
			if err := requireDriver(ctx, tx, current.DriverID); err != nil {
				return err
			}
		}
		if err := buses.Update(ctx, &current); err != nil {
			return err
		}
		if p.RouteIDs != nil {
			if err := buses.ReplaceRoutes(ctx, id, current.RouteIDs); err != nil {
				return err
			}
		}
		bus, err = buses.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return models.Bus{}, err
	}

	utils.LogEvent(s.RequestID, "buses", "update", fmt.Sprintf("bus_id=%d", id))
	return bus, nil
}

// Delete drops the route links with the bus. Buses still holding seats or bookings
// are rejected by the foreign keys.
func (s BusService) Delete(ctx context.Context, id int64) error {
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		buses := repositories.BusRepository{DB: tx}
		if err := buses.ReplaceRoutes(ctx, id, nil); err != nil {
			return err
		}
		return buses.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "buses", "delete", fmt.Sprintf("bus_id=%d", id))
	return nil
}

// checkCapacity refuses a capacity below the live bookings or their highest seat.
func checkCapacity(ctx context.Context, q intdb.DBTX, busID int64, capacity int) error {
	booked, maxSeat, err := repositories.BookingRepository{DB: q}.BookedStats(ctx, busID)
	if err != nil {
		return err
	}
	if booked > capacity || maxSeat > capacity {
		return domain.ConflictError{
			Resource: "bus",
			Msg:      fmt.Sprintf("Bus has %d active bookings up to seat %d", booked, maxSeat),
		}
	}
	return nil
}

func requireDriver(ctx context.Context, q intdb.DBTX, driverID int64) error {
	if _, err := (repositories.DriverRepository{DB: q}).GetByID(ctx, driverID); err != nil {
		if domain.IsNotFound(err) {
			return domain.ValidationError{Field: "driver_id", Msg: "references an unknown driver"}
		}
		return err
	}
	return nil
}

type RouteService struct {
	DB        *sql.DB
	RequestID string
}

// Delete refuses to remove a route that any bus still serves.
func (s RouteService) Delete(ctx context.Context, id int64) error {
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		n, err := repositories.BusRepository{DB: tx}.CountByRoute(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ConflictError{Resource: "route", Msg: "Route is associated with existing buses"}
		}
		return repositories.RouteRepository{DB: tx}.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "routes", "delete", fmt.Sprintf("route_id=%d", id))
	return nil
}
