package db

import (
	"context"
	"fmt"
	"log"
)

type tableDDL struct {
	name string
	ddl  string
}

// Tables are listed parent-first so foreign keys resolve.
var schema = []tableDDL{
	{"users", `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(80) NOT NULL,
	email VARCHAR(120) NOT NULL,
	firebase_uid VARCHAR(128) NULL,
	password_hash VARCHAR(255) NOT NULL DEFAULT '',
	role VARCHAR(20) NOT NULL DEFAULT 'customer',
	created_at DATETIME(6) NOT NULL,
	updated_at DATETIME(6) NOT NULL,
	UNIQUE KEY uniq_users_username (username),
	UNIQUE KEY uniq_users_email (email),
	UNIQUE KEY uniq_users_firebase_uid (firebase_uid)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"drivers", `
CREATE TABLE IF NOT EXISTS drivers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	full_name VARCHAR(80) NOT NULL,
	id_number VARCHAR(20) NOT NULL,
	driving_license VARCHAR(20) NOT NULL,
	phone_number VARCHAR(20) NOT NULL,
	created_at DATETIME(6) NOT NULL,
	updated_at DATETIME(6) NOT NULL,
	UNIQUE KEY uniq_drivers_id_number (id_number),
	UNIQUE KEY uniq_drivers_driving_license (driving_license),
	UNIQUE KEY uniq_drivers_phone_number (phone_number)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"admins", `
CREATE TABLE IF NOT EXISTS admins (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	full_name VARCHAR(80) NOT NULL,
	id_number VARCHAR(20) NOT NULL,
	phone_number VARCHAR(20) NOT NULL,
	created_at DATETIME(6) NOT NULL,
	updated_at DATETIME(6) NOT NULL,
	UNIQUE KEY uniq_admins_id_number (id_number),
	UNIQUE KEY uniq_admins_phone_number (phone_number)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"buses", `
CREATE TABLE IF NOT EXISTS buses (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	driver_id BIGINT NOT NULL,
	number_plate VARCHAR(20) NOT NULL,
	number_of_seats INT NOT NULL,
	seats_available INT NOT NULL,
	model VARCHAR(50) NOT NULL DEFAULT '',
	route VARCHAR(100) NOT NULL DEFAULT '',
	departure_from VARCHAR(50) NOT NULL,
	departure_to VARCHAR(50) NOT NULL,
	departure_time DATETIME NOT NULL,
	arrival_time DATETIME NOT NULL,
	price_per_seat DECIMAL(10,2) NOT NULL,
	created_at DATETIME(6) NOT NULL,
	updated_at DATETIME(6) NOT NULL,
	UNIQUE KEY uniq_buses_number_plate (number_plate),
	KEY idx_buses_driver (driver_id),
	CONSTRAINT fk_buses_driver_id_drivers FOREIGN KEY (driver_id) REFERENCES drivers (id),
	CONSTRAINT chk_buses_seats_available CHECK (seats_available >= 0 AND seats_available <= number_of_seats)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"routes", `
CREATE TABLE IF NOT EXISTS routes (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	route_name VARCHAR(100) NOT NULL,
	slug VARCHAR(120) NOT NULL DEFAULT '',
	origin VARCHAR(50) NOT NULL DEFAULT '',
	destination VARCHAR(50) NOT NULL DEFAULT '',
	created_at DATETIME(6) NOT NULL,
	updated_at DATETIME(6) NOT NULL,
	KEY idx_routes_slug (slug)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"bus_routes", `
CREATE TABLE IF NOT EXISTS bus_routes (
	bus_id BIGINT NOT NULL,
	route_id BIGINT NOT NULL,
	PRIMARY KEY (bus_id, route_id),
	KEY idx_bus_routes_route (route_id),
	CONSTRAINT fk_bus_routes_bus_id_buses FOREIGN KEY (bus_id) REFERENCES buses (id),
	CONSTRAINT fk_bus_routes_route_id_routes FOREIGN KEY (route_id) REFERENCES routes (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"seats", `
CREATE TABLE IF NOT EXISTS seats (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	bus_id BIGINT NOT NULL,
	seat_number INT NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'available',
	created_at DATETIME(6) NOT NULL,
	updated_at DATETIME(6) NOT NULL,
	UNIQUE KEY uniq_seats_bus_seat (bus_id, seat_number),
	CONSTRAINT fk_seats_bus_id_buses FOREIGN KEY (bus_id) REFERENCES buses (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	// active_seat is NULL for cancelled bookings, so the unique key only binds live seats.
	{"bookings", `
CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	bus_id BIGINT NOT NULL,
	user_id BIGINT NULL,
	passenger_name VARCHAR(80) NOT NULL DEFAULT '',
	passenger_id_number VARCHAR(20) NOT NULL DEFAULT '',
	passenger_phone VARCHAR(20) NOT NULL DEFAULT '',
	seat_number INT NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'booked',
	ticket_code CHAR(6) NOT NULL,
	active_seat INT GENERATED ALWAYS AS (CASE WHEN status = 'booked' THEN seat_number ELSE NULL END) STORED,
	created_at DATETIME(6) NOT NULL,
	updated_at DATETIME(6) NOT NULL,
	UNIQUE KEY uniq_bookings_ticket_code (ticket_code),
	UNIQUE KEY uniq_bookings_active_seat (bus_id, active_seat),
	KEY idx_bookings_user (user_id),
	CONSTRAINT fk_bookings_bus_id_buses FOREIGN KEY (bus_id) REFERENCES buses (id),
	CONSTRAINT fk_bookings_user_id_users FOREIGN KEY (user_id) REFERENCES users (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"reviews", `
CREATE TABLE IF NOT EXISTS reviews (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_id BIGINT NULL,
	name VARCHAR(80) NOT NULL DEFAULT '',
	email VARCHAR(120) NOT NULL DEFAULT '',
	review_text TEXT NOT NULL,
	rating TINYINT NOT NULL,
	created_at DATETIME(6) NOT NULL,
	updated_at DATETIME(6) NOT NULL,
	UNIQUE KEY uniq_reviews_booking_id (booking_id),
	CONSTRAINT fk_reviews_booking_id_bookings FOREIGN KEY (booking_id) REFERENCES bookings (id),
	CONSTRAINT chk_reviews_rating CHECK (rating BETWEEN 1 AND 5)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"contact_messages", `
CREATE TABLE IF NOT EXISTS contact_messages (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(80) NOT NULL,
	email VARCHAR(120) NOT NULL,
	message TEXT NOT NULL,
	created_at DATETIME(6) NOT NULL,
	updated_at DATETIME(6) NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
}

// Migrate creates any missing table. Existing tables are left untouched.
func Migrate(ctx context.Context, q DBTX) error {
	for _, t := range schema {
		if HasTable(ctx, q, t.name) {
			continue
		}
		if _, err := q.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
		log.Printf("[DB] action=migrate table=%s msg=created", t.name)
	}
	return nil
}

// TableNames lists the managed tables in creation order.
func TableNames() []string {
	out := make([]string, 0, len(schema))
	for _, t := range schema {
		out = append(out, t.name)
	}
	return out
}
