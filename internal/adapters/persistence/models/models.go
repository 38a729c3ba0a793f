package models

import (
	"fmt"
	"time"

	"aerodesk/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Identity tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Document  string         `gorm:"uniqueIndex;size:20;not null" json:"document"`
	Phone     string         `gorm:"size:20" json:"phone"`
	BirthDate *time.Time     `gorm:"type:date" json:"birth_date"`
	Role      string         `gorm:"size:20;default:'PASSENGER'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Document  string     `json:"document"`
	Phone     string     `json:"phone"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Document:  u.Document,
		Phone:     u.Phone,
		BirthDate: u.BirthDate,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Catalogue tables
// ============================================================

// Aircraft represents aircraft table
type Aircraft struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Model           string    `gorm:"size:100;not null" json:"model"`
	Registration    string    `gorm:"uniqueIndex;size:10;not null" json:"registration"`
	Capacity        int       `gorm:"not null" json:"capacity"`
	Rows            int       `gorm:"not null" json:"rows"`
	Columns         int       `gorm:"not null" json:"columns"`
	ManufactureDate time.Time `gorm:"type:date" json:"manufacture_date"`
	LastMaintenance time.Time `gorm:"type:date" json:"last_maintenance"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Aircraft) TableName() string {
	return "aircraft"
}

// Flight represents flights table
type Flight struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"uniqueIndex;size:10;not null" json:"code"`
	Origin      string    `gorm:"size:100;not null;index:idx_flights_route" json:"origin"`
	Destination string    `gorm:"size:100;not null;index:idx_flights_route" json:"destination"`
	Departure   time.Time `gorm:"not null;index" json:"departure"`
	Arrival     time.Time `gorm:"not null" json:"arrival"`
	BasePrice   float64   `gorm:"type:decimal(10,2);not null" json:"base_price"`
	Status      string    `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	AircraftID  uint      `gorm:"not null;index" json:"aircraft_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Aircraft *Aircraft `gorm:"foreignKey:AircraftID" json:"aircraft,omitempty"`
	Crew     []User    `gorm:"many2many:flight_crew" json:"crew,omitempty"`
	Seats    []Seat    `gorm:"foreignKey:FlightID" json:"seats,omitempty"`
}

func (Flight) TableName() string {
	return "flights"
}

// Duration returns the scheduled flight time
func (f *Flight) Duration() time.Duration {
	return f.Arrival.Sub(f.Departure)
}

// FlightResponse DTO
type FlightResponse struct {
	ID            uint            `json:"id"`
	Code          string          `json:"code"`
	Origin        string          `json:"origin"`
	Destination   string          `json:"destination"`
	Departure     time.Time       `json:"departure"`
	Arrival       time.Time       `json:"arrival"`
	DurationMins  int             `json:"duration_minutes"`
	BasePrice     float64         `json:"base_price"`
	Status        string          `json:"status"`
	AircraftID    uint            `json:"aircraft_id"`
	AircraftModel string          `json:"aircraft_model,omitempty"`
	Crew          []*UserResponse `json:"crew,omitempty"`
}

func (f *Flight) ToResponse() *FlightResponse {
	resp := &FlightResponse{
		ID:           f.ID,
		Code:         f.Code,
		Origin:       f.Origin,
		Destination:  f.Destination,
		Departure:    f.Departure,
		Arrival:      f.Arrival,
		DurationMins: int(f.Duration().Minutes()),
		BasePrice:    f.BasePrice,
		Status:       f.Status,
		AircraftID:   f.AircraftID,
	}

	if f.Aircraft != nil {
		resp.AircraftModel = f.Aircraft.Model
	}
	for i := range f.Crew {
		resp.Crew = append(resp.Crew, f.Crew[i].ToResponse())
	}

	return resp
}

// Seat represents seats table. One row per (flight, grid cell), cloned
// from the aircraft layout when the flight is created.
type Seat struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AircraftID uint      `gorm:"not null" json:"aircraft_id"`
	FlightID   uint      `gorm:"not null;uniqueIndex:idx_seats_flight_number" json:"flight_id"`
	Number     string    `gorm:"size:10;not null;uniqueIndex:idx_seats_flight_number" json:"number"`
	Row        int       `gorm:"not null" json:"row"`
	Column     string    `gorm:"size:5;not null" json:"column"`
	Class      string    `gorm:"size:20;not null;default:'economy'" json:"class"`
	Occupancy  string    `gorm:"size:20;not null;default:'available'" json:"occupancy"`
	ExtraPrice float64   `gorm:"type:decimal(10,2);default:0" json:"extra_price"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Seat) TableName() string {
	return "seats"
}

// MaterializeSeats clones the aircraft grid into one seat row per
// (row, column letter) for the flight. Column letters run A, B, C, ...
func MaterializeSeats(aircraft *Aircraft, flightID uint) []*Seat {
	seats := make([]*Seat, 0, aircraft.Rows*aircraft.Columns)
	for row := 1; row <= aircraft.Rows; row++ {
		for col := 0; col < aircraft.Columns; col++ {
			letter := string(rune('A' + col))
			seats = append(seats, &Seat{
				AircraftID: aircraft.ID,
				FlightID:   flightID,
				Number:     fmt.Sprintf("%d%s", row, letter),
				Row:        row,
				Column:     letter,
				Class:      string(domain.SeatEconomy),
				Occupancy:  string(domain.SeatAvailable),
			})
		}
	}
	return seats
}

// SeatResponse DTO for the seat map endpoint
type SeatResponse struct {
	ID         uint    `json:"id"`
	Number     string  `json:"number"`
	Row        int     `json:"row"`
	Column     string  `json:"column"`
	Class      string  `json:"class"`
	ExtraPrice float64 `json:"extra_price"`
	Occupied   bool    `json:"occupied"`
}

// ============================================================
// Booking tables
// ============================================================

// Reservation represents reservations table. Rows are never hard-deleted;
// cancellation is a status change.
type Reservation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FlightID    uint      `gorm:"not null;index" json:"flight_id"`
	PassengerID uint      `gorm:"not null;index" json:"passenger_id"`
	SeatID      *uint     `gorm:"index" json:"seat_id"`
	Status      string    `gorm:"size:1;not null;default:'P'" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Flight    *Flight `gorm:"foreignKey:FlightID" json:"flight,omitempty"`
	Passenger *User   `gorm:"foreignKey:PassengerID" json:"passenger,omitempty"`
	Seat      *Seat   `gorm:"foreignKey:SeatID" json:"seat,omitempty"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// FinalPrice is flight base price plus the seat surcharge when a seat has
// been assigned
func (r *Reservation) FinalPrice() float64 {
	price := 0.0
	if r.Flight != nil {
		price = r.Flight.BasePrice
	}
	if r.Seat != nil {
		price += r.Seat.ExtraPrice
	}
	return price
}

// ReservationResponse DTO
type ReservationResponse struct {
	ID          uint            `json:"id"`
	FlightID    uint            `json:"flight_id"`
	FlightCode  string          `json:"flight_code,omitempty"`
	PassengerID uint            `json:"passenger_id"`
	Passenger   string          `json:"passenger,omitempty"`
	SeatID      *uint           `json:"seat_id"`
	SeatNumber  string          `json:"seat_number,omitempty"`
	Status      string          `json:"status"`
	FinalPrice  float64         `json:"final_price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Flight      *FlightResponse `json:"flight,omitempty"`
}

func (r *Reservation) ToResponse() *ReservationResponse {
	resp := &ReservationResponse{
		ID:          r.ID,
		FlightID:    r.FlightID,
		PassengerID: r.PassengerID,
		SeatID:      r.SeatID,
		Status:      r.Status,
		FinalPrice:  r.FinalPrice(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	if r.Flight != nil {
		resp.FlightCode = r.Flight.Code
		resp.Flight = r.Flight.ToResponse()
	}
	if r.Passenger != nil {
		resp.Passenger = r.Passenger.Username
	}
	if r.Seat != nil {
		resp.SeatNumber = r.Seat.Number
	}

	return resp
}

// IsActive reports whether the reservation still blocks its seat
func (r *Reservation) IsActive() bool {
	return r.Status == string(domain.ReservationPending) || r.Status == string(domain.ReservationConfirmed)
}

// Ticket represents tickets table. One per confirmed reservation; the
// barcode is generated once and never reassigned.
type Ticket struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	ReservationID uint       `gorm:"uniqueIndex;not null" json:"reservation_id"`
	Barcode       string     `gorm:"uniqueIndex;size:50;not null" json:"barcode"`
	Status        string     `gorm:"size:20;not null;default:'active'" json:"status"`
	IssuedAt      time.Time  `gorm:"autoCreateTime" json:"issued_at"`
	CheckedInAt   *time.Time `json:"checked_in_at"`
	BoardingGate  string     `gorm:"size:5" json:"boarding_gate"`

	// Relations
	Reservation *Reservation `gorm:"foreignKey:ReservationID" json:"reservation,omitempty"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// TicketResponse DTO
type TicketResponse struct {
	ID            uint       `json:"id"`
	ReservationID uint       `json:"reservation_id"`
	Barcode       string     `json:"barcode"`
	Status        string     `json:"status"`
	IssuedAt      time.Time  `json:"issued_at"`
	CheckedInAt   *time.Time `json:"checked_in_at,omitempty"`
	BoardingGate  string     `json:"boarding_gate,omitempty"`
	FlightCode    string     `json:"flight_code,omitempty"`
	Passenger     string     `json:"passenger,omitempty"`
	SeatNumber    string     `json:"seat_number,omitempty"`
}

func (t *Ticket) ToResponse() *TicketResponse {
	resp := &TicketResponse{
		ID:            t.ID,
		ReservationID: t.ReservationID,
		Barcode:       t.Barcode,
		Status:        t.Status,
		IssuedAt:      t.IssuedAt,
		CheckedInAt:   t.CheckedInAt,
		BoardingGate:  t.BoardingGate,
	}

	if t.Reservation != nil {
		if t.Reservation.Flight != nil {
			resp.FlightCode = t.Reservation.Flight.Code
		}
		if t.Reservation.Passenger != nil {
			resp.Passenger = t.Reservation.Passenger.Username
		}
		if t.Reservation.Seat != nil {
			resp.SeatNumber = t.Reservation.Seat.Number
		}
	}

	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Aircraft{},
		&Flight{},
		&Seat{},
		&Reservation{},
		&Ticket{},
	)
}
