package repositories

import (
	"context"
	"time"

	"aerodesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// FlightRepository handles flight data access
type FlightRepository struct {
	db *gorm.DB
}

// NewFlightRepository creates a new flight repository
func NewFlightRepository(db *gorm.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// Create creates a new flight
func (r *FlightRepository) Create(ctx context.Context, flight *models.Flight) error {
	return r.db.WithContext(ctx).Create(flight).Error
}

// GetByID gets a flight by ID with relations
func (r *FlightRepository) GetByID(ctx context.Context, id uint) (*models.Flight, error) {
	var flight models.Flight
	err := r.db.WithContext(ctx).
		Preload("Aircraft").
		Preload("Crew").
		First(&flight, id).Error
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

// FlightFilter narrows flight listings
type FlightFilter struct {
	Origin      string
	Destination string
	Date        *time.Time
	// OnlyBookable restricts to future scheduled flights (passenger view)
	OnlyBookable bool
}

// List lists flights matching the filter, ordered by departure
func (r *FlightRepository) List(ctx context.Context, filter *FlightFilter, offset, limit int) ([]*models.Flight, int64, error) {
	var flights []*models.Flight
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Flight{})
	if filter != nil {
		if filter.Origin != "" {
			q = q.Where("origin = ?", filter.Origin)
		}
		if filter.Destination != "" {
			q = q.Where("destination = ?", filter.Destination)
		}
		if filter.Date != nil {
			day := filter.Date.Truncate(24 * time.Hour)
			q = q.Where("departure >= ? AND departure < ?", day, day.Add(24*time.Hour))
		}
		if filter.OnlyBookable {
			q = q.Where("status = ?", "scheduled").Where("departure >= ?", time.Now())
		}
	}

	q.Count(&total)

	err := q.
		Preload("Aircraft").
		Order("departure").
		Offset(offset).
		Limit(limit).
		Find(&flights).Error

	return flights, total, err
}

// Update updates a flight
func (r *FlightRepository) Update(ctx context.Context, flight *models.Flight) error {
	return r.db.WithContext(ctx).Save(flight).Error
}

// UpdateStatus updates only the status column
func (r *FlightRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Flight{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete deletes a flight and its seat set
func (r *FlightRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("flight_id = ?", id).Delete(&models.Seat{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Flight{ID: id}).Association("Crew").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Flight{}, id).Error
	})
}

// ReplaceCrew replaces the crew set of a flight
func (r *FlightRepository) ReplaceCrew(ctx context.Context, flight *models.Flight, crew []*models.User) error {
	return r.db.WithContext(ctx).Model(flight).Association("Crew").Replace(crew)
}

// CountReservations counts reservations referencing a flight
func (r *FlightRepository) CountReservations(ctx context.Context, flightID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).Where("flight_id = ?", flightID).Count(&count).Error
	return count, err
}

// ExistsByCode checks if a flight code is taken
func (r *FlightRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Flight{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// ListDepartedScheduled returns scheduled/delayed flights whose departure has
// passed (status sweep input)
func (r *FlightRepository) ListDepartedScheduled(ctx context.Context, now time.Time) ([]*models.Flight, error) {
	var flights []*models.Flight
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{"scheduled", "delayed"}).
		Where("departure <= ?", now).
		Find(&flights).Error
	return flights, err
}

// ListArrivedInProgress returns in-progress flights whose arrival has passed
func (r *FlightRepository) ListArrivedInProgress(ctx context.Context, now time.Time) ([]*models.Flight, error) {
	var flights []*models.Flight
	err := r.db.WithContext(ctx).
		Where("status = ?", "in_progress").
		Where("arrival <= ?", now).
		Find(&flights).Error
	return flights, err
}
