package domain

// Role is the authorization role stored on a user account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleDriver   Role = "driver"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDriver, RoleCustomer:
		return true
	}
	return false
}

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingBooked    BookingStatus = "booked"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	return s == BookingBooked || s == BookingCancelled
}

// SeatStatus is the state of a row in the seats table.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBooked    SeatStatus = "booked"
	SeatReserved  SeatStatus = "reserved"
)

func (s SeatStatus) Valid() bool {
	switch s {
	case SeatAvailable, SeatBooked, SeatReserved:
		return true
	}
	return false
}

// RequestContext carries the authenticated caller.
type RequestContext struct {
	UserID int64 `json:"userId"`
	Role   Role  `json:"role"`
}

func (r RequestContext) IsAdmin() bool { return r.Role == RoleAdmin }

// CanAccess reports whether the caller owns the resource or is an admin.
func (r RequestContext) CanAccess(ownerID int64) bool {
	return r.IsAdmin() || (ownerID != 0 && ownerID == r.UserID)
}
