package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"aerodesk/internal/adapters/persistence/models"
	"aerodesk/internal/adapters/persistence/repositories"
	"aerodesk/internal/core/domain"
	"aerodesk/internal/metrics"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReservationService handles the booking workflow. Seat confirmation runs
// inside a row-locking transaction so two concurrent selections of the
// same seat can never both commit.
type ReservationService struct {
	db              *gorm.DB
	reservationRepo *repositories.ReservationRepository
	flightRepo      *repositories.FlightRepository
	seatRepo        *repositories.SeatRepository
	metrics         *metrics.MetricsRegistry
}

// NewReservationService creates a new reservation service
func NewReservationService(
	db *gorm.DB,
	reservationRepo *repositories.ReservationRepository,
	flightRepo *repositories.FlightRepository,
	seatRepo *repositories.SeatRepository,
	reg *metrics.MetricsRegistry,
) *ReservationService {
	return &ReservationService{
		db:              db,
		reservationRepo: reservationRepo,
		flightRepo:      flightRepo,
		seatRepo:        seatRepo,
		metrics:         reg,
	}
}

// CreateReservationInput represents reservation creation input
type CreateReservationInput struct {
	FlightID uint `json:"vuelo_id" validate:"required"`
}

// SelectSeatInput represents seat selection input
type SelectSeatInput struct {
	SeatID uint `json:"asiento_id" validate:"required"`
}

// ChangeReservationStatusInput represents the admin status override input
type ChangeReservationStatusInput struct {
	Status string `json:"estado" validate:"required"`
}

// Create opens a pending reservation with no seat
func (s *ReservationService) Create(ctx context.Context, p domain.Principal, input *CreateReservationInput) (*models.Reservation, error) {
	if !domain.CanCreateReservation(p) {
		return nil, domain.ErrForbidden
	}

	flight, err := s.flightRepo.GetByID(ctx, input.FlightID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}

	if flight.Status != string(domain.FlightScheduled) || !flight.Departure.After(time.Now()) {
		return nil, domain.ErrFlightNotBookable
	}

	exists, err := s.reservationRepo.ExistsActive(ctx, flight.ID, p.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateReservation
	}

	reservation := &models.Reservation{
		FlightID:    flight.ID,
		PassengerID: p.ID,
		Status:      string(domain.ReservationPending),
	}

	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ReservationsCreatedTotal.Inc()
	}

	log.Printf("✅ Reservation %d opened on flight %s by passenger %d", reservation.ID, flight.Code, p.ID)

	reservation.Flight = flight
	return reservation, nil
}

// GetByID gets a reservation, enforcing ownership
func (s *ReservationService) GetByID(ctx context.Context, p domain.Principal, id uint) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}

	if !domain.CanActOnReservation(p, reservation.PassengerID) {
		return nil, domain.ErrForbidden
	}

	return reservation, nil
}

// SelectSeat assigns a seat to a pending reservation and confirms it.
// The whole check-and-write runs in one transaction holding row locks on
// both the reservation and the seat, so of two concurrent calls for the
// same seat exactly one commits; the loser gets ErrSeatTaken.
func (s *ReservationService) SelectSeat(ctx context.Context, p domain.Principal, reservationID uint, input *SelectSeatInput) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}

	if !domain.CanActOnReservation(p, reservation.PassengerID) {
		return nil, domain.ErrForbidden
	}

	noop := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lock := tx.Dialector.Name() != "sqlite"

		// Re-read the reservation under the lock; its status or seat may
		// have moved between the ownership check and this transaction
		// (admin override, concurrent selection on another connection).
		var current models.Reservation
		rq := tx.Model(&models.Reservation{})
		if lock {
			rq = rq.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := rq.First(&current, reservation.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrReservationNotFound
			}
			return err
		}

		if current.Status == string(domain.ReservationCancelled) {
			return domain.ErrReservationNotPending
		}

		// Re-selecting the seat the reservation already holds is a no-op.
		if current.SeatID != nil && *current.SeatID == input.SeatID &&
			current.Status == string(domain.ReservationConfirmed) {
			noop = true
			return nil
		}

		var seat models.Seat
		q := tx.Where("flight_id = ?", current.FlightID)
		if lock {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&seat, input.SeatID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrSeatNotFound
			}
			return err
		}

		if seat.Occupancy == string(domain.SeatMaintenance) {
			return domain.ErrSeatUnderMaintenance
		}

		// Re-check under the lock: any other pending or confirmed
		// reservation on this seat wins.
		var holders int64
		if err := tx.Model(&models.Reservation{}).
			Where("seat_id = ?", seat.ID).
			Where("status IN ?", []string{"P", "C"}).
			Where("id <> ?", current.ID).
			Count(&holders).Error; err != nil {
			return err
		}
		if holders > 0 || seat.Occupancy == string(domain.SeatOccupied) {
			return domain.ErrSeatTaken
		}

		// Release the previously held seat when switching.
		if current.SeatID != nil && *current.SeatID != seat.ID {
			if err := tx.Model(&models.Seat{}).
				Where("id = ?", *current.SeatID).
				Update("occupancy", string(domain.SeatAvailable)).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Reservation{}).
			Where("id = ?", current.ID).
			Updates(map[string]interface{}{
				"seat_id": seat.ID,
				"status":  string(domain.ReservationConfirmed),
			}).Error; err != nil {
			return err
		}

		return tx.Model(&models.Seat{}).
			Where("id = ?", seat.ID).
			Update("occupancy", string(domain.SeatOccupied)).Error
	})
	if err != nil {
		if isLockError(err) {
			err = domain.ErrConflict
		}
		if s.metrics != nil {
			if errors.Is(err, domain.ErrSeatTaken) || errors.Is(err, domain.ErrConflict) {
				s.metrics.SeatConflictsTotal.Inc()
				s.metrics.SeatConfirmationsTotal.WithLabelValues("conflict").Inc()
			} else {
				s.metrics.SeatConfirmationsTotal.WithLabelValues("error").Inc()
			}
		}
		return nil, err
	}

	if !noop {
		if s.metrics != nil {
			s.metrics.SeatConfirmationsTotal.WithLabelValues("confirmed").Inc()
		}
		log.Printf("✅ Reservation %d confirmed with seat %d", reservation.ID, input.SeatID)
	}

	return s.reservationRepo.GetByID(ctx, reservationID)
}

// ChangeStatus forces a reservation status transition (admin override).
// Moving to cancelled releases the held seat; a cancelled reservation is
// terminal.
func (s *ReservationService) ChangeStatus(ctx context.Context, p domain.Principal, reservationID uint, input *ChangeReservationStatusInput) (*models.Reservation, error) {
	if !domain.CanOverrideReservationStatus(p) {
		return nil, domain.ErrForbidden
	}

	if !domain.ReservationStatus(input.Status).Valid() {
		return nil, domain.ErrInvalidStatus
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Status and seat are validated on the locked row so a selection
		// committing on another connection cannot be overwritten blind.
		var current models.Reservation
		rq := tx.Model(&models.Reservation{})
		if tx.Dialector.Name() != "sqlite" {
			rq = rq.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := rq.First(&current, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrReservationNotFound
			}
			return err
		}

		if current.Status == input.Status {
			return nil
		}

		if current.Status == string(domain.ReservationCancelled) {
			return domain.ErrInvalidState
		}

		if input.Status == string(domain.ReservationConfirmed) && current.SeatID == nil {
			return domain.ErrSeatRequired
		}

		if err := tx.Model(&models.Reservation{}).
			Where("id = ?", current.ID).
			Update("status", input.Status).Error; err != nil {
			return err
		}

		if current.SeatID == nil {
			return nil
		}

		occupancy := string(domain.SeatOccupied)
		if input.Status == string(domain.ReservationCancelled) {
			occupancy = string(domain.SeatAvailable)
		} else if input.Status == string(domain.ReservationPending) {
			occupancy = string(domain.SeatReserved)
		}

		return tx.Model(&models.Seat{}).
			Where("id = ?", *current.SeatID).
			Update("occupancy", occupancy).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Reservation %d status changed to %s", reservationID, input.Status)

	return s.reservationRepo.GetByID(ctx, reservationID)
}

// ListForPassenger lists the caller's own reservations
func (s *ReservationService) ListForPassenger(ctx context.Context, p domain.Principal) ([]*models.ReservationResponse, error) {
	reservations, err := s.reservationRepo.ListByPassenger(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.ReservationResponse, len(reservations))
	for i, r := range reservations {
		responses[i] = r.ToResponse()
	}
	return responses, nil
}

// ListAll lists every reservation (admin view)
func (s *ReservationService) ListAll(ctx context.Context, p domain.Principal, page, limit int) ([]*models.ReservationResponse, int64, error) {
	if !p.IsAdmin() {
		return nil, 0, domain.ErrForbidden
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	reservations, total, err := s.reservationRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.ReservationResponse, len(reservations))
	for i, r := range reservations {
		responses[i] = r.ToResponse()
	}
	return responses, total, nil
}

// isLockError reports whether the storage error came from lock contention
// rather than a business rule. MySQL: 1205 lock wait timeout, 1213
// deadlock. SQLite: database is locked/busy.
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Error 1205") ||
		strings.Contains(msg, "Error 1213") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}
