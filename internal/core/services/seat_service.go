package services

import (
	"context"
	"errors"

	"aerodesk/internal/adapters/persistence/models"
	"aerodesk/internal/adapters/persistence/repositories"
	"aerodesk/internal/core/domain"

	"gorm.io/gorm"
)

// SeatService handles per-flight seat inventory
type SeatService struct {
	seatRepo   *repositories.SeatRepository
	flightRepo *repositories.FlightRepository
}

// NewSeatService creates a new seat service
func NewSeatService(seatRepo *repositories.SeatRepository, flightRepo *repositories.FlightRepository) *SeatService {
	return &SeatService{
		seatRepo:   seatRepo,
		flightRepo: flightRepo,
	}
}

// UpdateSeatInput represents the admin seat override input
type UpdateSeatInput struct {
	Class       *string  `json:"class"`
	ExtraPrice  *float64 `json:"extra_price"`
	Maintenance *bool    `json:"maintenance"`
}

// SeatMap returns the seat set of a flight with occupancy derived from
// active reservations (pending holds block seats too)
func (s *SeatService) SeatMap(ctx context.Context, flightID uint) ([]*models.SeatResponse, error) {
	if _, err := s.flightRepo.GetByID(ctx, flightID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}

	seats, err := s.seatRepo.ListByFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}

	held, err := s.seatRepo.HeldSeatIDs(ctx, flightID, 0)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.SeatResponse, len(seats))
	for i, seat := range seats {
		responses[i] = &models.SeatResponse{
			ID:         seat.ID,
			Number:     seat.Number,
			Row:        seat.Row,
			Column:     seat.Column,
			Class:      seat.Class,
			ExtraPrice: seat.ExtraPrice,
			Occupied:   held[seat.ID] || seat.Occupancy != string(domain.SeatAvailable),
		}
	}
	return responses, nil
}

// IsAvailable reports whether a seat on a flight can still be selected
func (s *SeatService) IsAvailable(ctx context.Context, flightID, seatID uint) (bool, error) {
	seat, err := s.seatRepo.GetByFlightAndID(ctx, flightID, seatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, domain.ErrSeatNotFound
		}
		return false, err
	}

	if seat.Occupancy == string(domain.SeatMaintenance) {
		return false, nil
	}

	held, err := s.seatRepo.HeldSeatIDs(ctx, flightID, 0)
	if err != nil {
		return false, err
	}

	return !held[seat.ID] && seat.Occupancy == string(domain.SeatAvailable), nil
}

// UpdateSeat applies the admin override: cabin class, surcharge, or the
// maintenance flag. The maintenance flag only toggles between available
// and maintenance; seats held by reservations are left alone.
func (s *SeatService) UpdateSeat(ctx context.Context, p domain.Principal, flightID, seatID uint, input *UpdateSeatInput) (*models.Seat, error) {
	if !domain.CanManageCatalogue(p) {
		return nil, domain.ErrForbidden
	}

	seat, err := s.seatRepo.GetByFlightAndID(ctx, flightID, seatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSeatNotFound
		}
		return nil, err
	}

	if input.Class != nil {
		if !domain.SeatClass(*input.Class).Valid() {
			return nil, domain.ErrInvalidInput
		}
		seat.Class = *input.Class
	}
	if input.ExtraPrice != nil {
		if *input.ExtraPrice < 0 {
			return nil, domain.ErrInvalidInput
		}
		seat.ExtraPrice = *input.ExtraPrice
	}
	if input.Maintenance != nil {
		switch {
		case *input.Maintenance && seat.Occupancy == string(domain.SeatAvailable):
			seat.Occupancy = string(domain.SeatMaintenance)
		case !*input.Maintenance && seat.Occupancy == string(domain.SeatMaintenance):
			seat.Occupancy = string(domain.SeatAvailable)
		case *input.Maintenance:
			return nil, domain.ErrInvalidState
		}
	}

	if err := s.seatRepo.Update(ctx, seat); err != nil {
		return nil, err
	}

	return seat, nil
}
