package services

import (
	"context"
	"database/sql"
	"time"

	intdb "busbooking/internal/db"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"
)

// SeedService loads a small demo dataset into an empty database.
type SeedService struct {
	DB      *sql.DB
	Now     func() time.Time
	NewCode func() string
}

type SeedResult struct {
	Skipped  bool
	Users    int
	Buses    int
	Bookings int
}

type seedUser struct {
	username, email, password string
	role                      domain.Role
}

var seedUsers = []seedUser{
	{"admin", "admin@example.com", "admin123", domain.RoleAdmin},
	{"driver1", "driver1@example.com", "driver123", domain.RoleDriver},
	{"customer1", "customer1@example.com", "customer123", domain.RoleCustomer},
}

// Run inserts the demo data unless users already exist.
func (s SeedService) Run(ctx context.Context) (SeedResult, error) {
	now := utils.NowUTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}
	newCode := s.NewCode
	if newCode == nil {
		newCode = func() string { return GenerateTicketCode(nil) }
	}

	var res SeedResult
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		users := repositories.UserRepository{DB: tx}
		n, err := users.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			res.Skipped = true
			return nil
		}

		var customerID int64
		for _, su := range seedUsers {
			hash, err := HashPassword(su.password)
			if err != nil {
				return err
			}
			u := models.User{Username: su.username, Email: su.email, PasswordHash: hash, Role: su.role}
			if err := users.Create(ctx, &u); err != nil {
				return err
			}
			if su.role == domain.RoleCustomer {
				customerID = u.ID
			}
			res.Users++
		}

		driver := models.Driver{FullName: "Driver One", IDNumber: "DRV-0001", DrivingLicense: "LIC-0001", PhoneNumber: "0700000001"}
		if err := (repositories.DriverRepository{DB: tx}).Create(ctx, &driver); err != nil {
			return err
		}
		admin := models.Admin{FullName: "Admin One", IDNumber: "ADM-0001", PhoneNumber: "0700000002"}
		if err := (repositories.AdminRepository{DB: tx}).Create(ctx, &admin); err != nil {
			return err
		}

		routes := repositories.RouteRepository{DB: tx}
		routeIDs := make([]int64, 0, 2)
		for _, in := range []models.CreateRouteInput{
			{RouteName: "Route 1", Origin: "Nairobi", Destination: "Mombasa"},
			{RouteName: "Route 2", Origin: "Nairobi", Destination: "Kisumu"},
		} {
			rt := in.Route()
			if err := routes.Create(ctx, &rt); err != nil {
				return err
			}
			routeIDs = append(routeIDs, rt.ID)
		}

		buses := repositories.BusRepository{DB: tx}
		busSpecs := []models.Bus{
			{NumberPlate: "ABC123", NumberOfSeats: 50, Model: "Model X", Route: "Route 1", DepartureFrom: "Nairobi", DepartureTo: "Mombasa", PricePerSeat: 10.5},
			{NumberPlate: "XYZ789", NumberOfSeats: 40, Model: "Model Y", Route: "Route 2", DepartureFrom: "Nairobi", DepartureTo: "Kisumu", PricePerSeat: 12.0},
		}
		busIDs := make([]int64, 0, len(busSpecs))
		for i, b := range busSpecs {
			b.DriverID = driver.ID
			b.SeatsAvailable = b.NumberOfSeats
			b.DepartureTime = now.Add(24 * time.Hour).Truncate(time.Hour)
			b.ArrivalTime = b.DepartureTime.Add(8 * time.Hour)
			if err := buses.Create(ctx, &b); err != nil {
				return err
			}
			if err := buses.ReplaceRoutes(ctx, b.ID, []int64{routeIDs[i]}); err != nil {
				return err
			}
			busIDs = append(busIDs, b.ID)
			res.Buses++
		}

		bookings := repositories.BookingRepository{DB: tx}
		reviews := repositories.ReviewRepository{DB: tx}
		for i, row := range []struct {
			seat   int
			status domain.BookingStatus
			text   string
			rating int
		}{
			{1, domain.BookingBooked, "Great service!", 5},
			{2, domain.BookingCancelled, "Cancelled my trip.", 1},
		} {
			b := models.Booking{BusID: busIDs[i], UserID: &customerID, SeatNumber: row.seat, Status: row.status, TicketCode: newCode()}
			if err := bookings.Create(ctx, &b); err != nil {
				return err
			}
			if b.Active() {
				if err := buses.AdjustSeats(ctx, b.BusID, -1); err != nil {
					return err
				}
			}
			rv := models.Review{BookingID: &b.ID, Name: "customer1", Email: "customer1@example.com", ReviewText: row.text, Rating: row.rating}
			if err := reviews.Create(ctx, &rv); err != nil {
				return err
			}
			res.Bookings++
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	return res, nil
}
