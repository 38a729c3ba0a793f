package repositories

import (
	"context"

	"aerodesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ReservationRepository handles reservation data access
type ReservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create creates a new reservation
func (r *ReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// GetByID gets a reservation by ID with relations
func (r *ReservationRepository) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Flight").
		Preload("Flight.Aircraft").
		Preload("Passenger").
		Preload("Seat").
		First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ListByPassenger lists a passenger's reservations, newest first
func (r *ReservationRepository) ListByPassenger(ctx context.Context, passengerID uint) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Flight").
		Preload("Seat").
		Where("passenger_id = ?", passengerID).
		Order("created_at DESC").
		Find(&reservations).Error
	return reservations, err
}

// List lists all reservations with pagination
func (r *ReservationRepository) List(ctx context.Context, offset, limit int) ([]*models.Reservation, int64, error) {
	var reservations []*models.Reservation
	var total int64

	r.db.WithContext(ctx).Model(&models.Reservation{}).Count(&total)

	err := r.db.WithContext(ctx).
		Preload("Flight").
		Preload("Passenger").
		Preload("Seat").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reservations).Error

	return reservations, total, err
}

// ExistsActive checks whether the passenger already holds a pending or
// confirmed reservation on the flight
func (r *ReservationRepository) ExistsActive(ctx context.Context, flightID, passengerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("flight_id = ?", flightID).
		Where("passenger_id = ?", passengerID).
		Where("status IN ?", []string{"P", "C"}).
		Count(&count).Error
	return count > 0, err
}

// Update updates a reservation
func (r *ReservationRepository) Update(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

// ActiveByFlight lists pending/confirmed reservations on a flight with
// their passengers (reporting)
func (r *ReservationRepository) ActiveByFlight(ctx context.Context, flightID uint) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Passenger").
		Preload("Seat").
		Where("flight_id = ?", flightID).
		Where("status IN ?", []string{"P", "C"}).
		Order("created_at").
		Find(&reservations).Error
	return reservations, err
}

// ActiveByPassenger lists pending/confirmed reservations of a passenger
func (r *ReservationRepository) ActiveByPassenger(ctx context.Context, passengerID uint) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Flight").
		Preload("Seat").
		Where("passenger_id = ?", passengerID).
		Where("status IN ?", []string{"P", "C"}).
		Order("created_at").
		Find(&reservations).Error
	return reservations, err
}
