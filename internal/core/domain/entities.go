package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RolePassenger Role = "PASSENGER"
)

// Valid reports whether the value is a member of the enumeration
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RolePassenger:
		return true
	}
	return false
}

// Principal is the acting identity passed into every core operation.
// Handlers build it from the JWT claims; services never read auth state
// from anywhere else.
type Principal struct {
	ID   uint
	Role Role
}

// IsAdmin reports whether the principal holds the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsPassenger reports whether the principal holds the passenger role
func (p Principal) IsPassenger() bool {
	return p.Role == RolePassenger
}

// FlightStatus represents the lifecycle stage of a flight
type FlightStatus string

const (
	FlightScheduled  FlightStatus = "scheduled"
	FlightDelayed    FlightStatus = "delayed"
	FlightCancelled  FlightStatus = "cancelled"
	FlightCompleted  FlightStatus = "completed"
	FlightInProgress FlightStatus = "in_progress"
)

// Valid reports whether the value is a member of the enumeration
func (s FlightStatus) Valid() bool {
	switch s {
	case FlightScheduled, FlightDelayed, FlightCancelled, FlightCompleted, FlightInProgress:
		return true
	}
	return false
}

// SeatClass represents the cabin class of a seat
type SeatClass string

const (
	SeatEconomy  SeatClass = "economy"
	SeatPremium  SeatClass = "premium"
	SeatBusiness SeatClass = "business"
	SeatFirst    SeatClass = "first"
)

// Valid reports whether the value is a member of the enumeration
func (c SeatClass) Valid() bool {
	switch c {
	case SeatEconomy, SeatPremium, SeatBusiness, SeatFirst:
		return true
	}
	return false
}

// SeatOccupancy represents per-seat-per-flight availability state,
// distinct from reservation status
type SeatOccupancy string

const (
	SeatAvailable   SeatOccupancy = "available"
	SeatReserved    SeatOccupancy = "reserved"
	SeatOccupied    SeatOccupancy = "occupied"
	SeatMaintenance SeatOccupancy = "maintenance"
)

// Valid reports whether the value is a member of the enumeration
func (o SeatOccupancy) Valid() bool {
	switch o {
	case SeatAvailable, SeatReserved, SeatOccupied, SeatMaintenance:
		return true
	}
	return false
}

// ReservationStatus represents the lifecycle of a reservation
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "P"
	ReservationConfirmed ReservationStatus = "C"
	ReservationCancelled ReservationStatus = "X"
)

// Valid reports whether the value is a member of the enumeration
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return true
	}
	return false
}

// TicketStatus represents the lifecycle of an issued ticket
type TicketStatus string

const (
	TicketActive TicketStatus = "active"
	TicketUsed   TicketStatus = "used"
	TicketVoid   TicketStatus = "void"
)

// Valid reports whether the value is a member of the enumeration
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketActive, TicketUsed, TicketVoid:
		return true
	}
	return false
}

// User represents a user in the domain layer
type User struct {
	ID        uint
	Username  string
	Email     string
	Password  string // Hashed
	Document  string
	Phone     string
	BirthDate *time.Time
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
