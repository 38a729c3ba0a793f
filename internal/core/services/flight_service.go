package services

import (
	"context"
	"errors"
	"log"
	"time"

	"aerodesk/internal/adapters/persistence/models"
	"aerodesk/internal/adapters/persistence/repositories"
	"aerodesk/internal/core/domain"

	"gorm.io/gorm"
)

// FlightService handles flight catalogue business logic
type FlightService struct {
	flightRepo   *repositories.FlightRepository
	aircraftRepo *repositories.AircraftRepository
	seatRepo     *repositories.SeatRepository
	userRepo     repositories.UserRepository
}

// NewFlightService creates a new flight service
func NewFlightService(
	flightRepo *repositories.FlightRepository,
	aircraftRepo *repositories.AircraftRepository,
	seatRepo *repositories.SeatRepository,
	userRepo repositories.UserRepository,
) *FlightService {
	return &FlightService{
		flightRepo:   flightRepo,
		aircraftRepo: aircraftRepo,
		seatRepo:     seatRepo,
		userRepo:     userRepo,
	}
}

// CreateFlightInput represents flight creation input
type CreateFlightInput struct {
	Code        string    `json:"code" validate:"required"`
	Origin      string    `json:"origin" validate:"required"`
	Destination string    `json:"destination" validate:"required"`
	Departure   time.Time `json:"departure" validate:"required"`
	Arrival     time.Time `json:"arrival" validate:"required"`
	BasePrice   float64   `json:"base_price" validate:"min=0"`
	AircraftID  uint      `json:"aircraft_id" validate:"required"`
}

// UpdateFlightInput represents flight update input
type UpdateFlightInput struct {
	Origin      *string    `json:"origin"`
	Destination *string    `json:"destination"`
	Departure   *time.Time `json:"departure"`
	Arrival     *time.Time `json:"arrival"`
	BasePrice   *float64   `json:"base_price"`
}

// ListFlightsInput represents flight listing input
type ListFlightsInput struct {
	Origin      string
	Destination string
	Date        *time.Time
	Page        int
	Limit       int
}

// ListFlightsOutput represents flight listing output
type ListFlightsOutput struct {
	Flights    []*models.FlightResponse `json:"flights"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	Limit      int                      `json:"limit"`
	TotalPages int                      `json:"total_pages"`
}

// Create creates a flight and materializes its seat set from the aircraft
// grid
func (s *FlightService) Create(ctx context.Context, p domain.Principal, input *CreateFlightInput) (*models.Flight, error) {
	if !domain.CanManageCatalogue(p) {
		return nil, domain.ErrForbidden
	}

	if input.Code == "" || input.Origin == "" || input.Destination == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.BasePrice < 0 {
		return nil, domain.ErrInvalidInput
	}
	if !input.Arrival.After(input.Departure) {
		return nil, domain.ErrInvalidSchedule
	}

	aircraft, err := s.aircraftRepo.GetByID(ctx, input.AircraftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAircraftNotFound
		}
		return nil, err
	}

	exists, err := s.flightRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrConflict
	}

	flight := &models.Flight{
		Code:        input.Code,
		Origin:      input.Origin,
		Destination: input.Destination,
		Departure:   input.Departure,
		Arrival:     input.Arrival,
		BasePrice:   input.BasePrice,
		Status:      string(domain.FlightScheduled),
		AircraftID:  aircraft.ID,
	}

	if err := s.flightRepo.Create(ctx, flight); err != nil {
		return nil, err
	}

	seats := models.MaterializeSeats(aircraft, flight.ID)
	if err := s.seatRepo.CreateBatch(ctx, seats); err != nil {
		return nil, err
	}

	log.Printf("✅ Flight created: %s (%s → %s, %d seats)",
		flight.Code, flight.Origin, flight.Destination, len(seats))

	flight.Aircraft = aircraft
	return flight, nil
}

// GetByID gets a flight by ID
func (s *FlightService) GetByID(ctx context.Context, id uint) (*models.Flight, error) {
	flight, err := s.flightRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return flight, nil
}

// List lists flights. Non-admin callers only see future scheduled flights.
func (s *FlightService) List(ctx context.Context, p domain.Principal, input *ListFlightsInput) (*ListFlightsOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	filter := &repositories.FlightFilter{
		Origin:       input.Origin,
		Destination:  input.Destination,
		Date:         input.Date,
		OnlyBookable: !p.IsAdmin(),
	}

	offset := (input.Page - 1) * input.Limit
	flights, total, err := s.flightRepo.List(ctx, filter, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.FlightResponse, len(flights))
	for i, f := range flights {
		responses[i] = f.ToResponse()
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListFlightsOutput{
		Flights:    responses,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// Update updates a flight's schedule and pricing
func (s *FlightService) Update(ctx context.Context, p domain.Principal, id uint, input *UpdateFlightInput) (*models.Flight, error) {
	if !domain.CanManageCatalogue(p) {
		return nil, domain.ErrForbidden
	}

	flight, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Origin != nil {
		flight.Origin = *input.Origin
	}
	if input.Destination != nil {
		flight.Destination = *input.Destination
	}
	if input.Departure != nil {
		flight.Departure = *input.Departure
	}
	if input.Arrival != nil {
		flight.Arrival = *input.Arrival
	}
	if input.BasePrice != nil {
		if *input.BasePrice < 0 {
			return nil, domain.ErrInvalidInput
		}
		flight.BasePrice = *input.BasePrice
	}

	if !flight.Arrival.After(flight.Departure) {
		return nil, domain.ErrInvalidSchedule
	}

	if err := s.flightRepo.Update(ctx, flight); err != nil {
		return nil, err
	}

	return flight, nil
}

// ChangeStatus transitions a flight to a new lifecycle status. Cancelling
// a flight does NOT cascade to its reservations; passengers keep their
// bookings and staff resolve them case by case.
func (s *FlightService) ChangeStatus(ctx context.Context, p domain.Principal, id uint, status string) (*models.Flight, error) {
	if !domain.CanManageCatalogue(p) {
		return nil, domain.ErrForbidden
	}

	if !domain.FlightStatus(status).Valid() {
		return nil, domain.ErrInvalidStatus
	}

	flight, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	flight.Status = status
	if err := s.flightRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	log.Printf("✅ Flight %s status changed to %s", flight.Code, status)
	return flight, nil
}

// Delete deletes a flight and its seats. Blocked while reservations exist.
func (s *FlightService) Delete(ctx context.Context, p domain.Principal, id uint) error {
	if !domain.CanManageCatalogue(p) {
		return domain.ErrForbidden
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.flightRepo.CountReservations(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrFlightHasBookings
	}

	return s.flightRepo.Delete(ctx, id)
}

// AssignCrew replaces the crew of a flight. Every crew member must hold
// the admin role.
func (s *FlightService) AssignCrew(ctx context.Context, p domain.Principal, id uint, userIDs []uint) (*models.Flight, error) {
	if !domain.CanManageCatalogue(p) {
		return nil, domain.ErrForbidden
	}

	flight, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	if len(users) != len(userIDs) {
		return nil, domain.ErrUserNotFound
	}
	for _, u := range users {
		if u.Role != string(domain.RoleAdmin) {
			return nil, domain.ErrCrewNotAdmin
		}
	}

	if err := s.flightRepo.ReplaceCrew(ctx, flight, users); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}
