package repositories

import (
	"context"

	"aerodesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// AircraftRepository handles aircraft data access
type AircraftRepository struct {
	db *gorm.DB
}

// NewAircraftRepository creates a new aircraft repository
func NewAircraftRepository(db *gorm.DB) *AircraftRepository {
	return &AircraftRepository{db: db}
}

// Create creates a new aircraft
func (r *AircraftRepository) Create(ctx context.Context, aircraft *models.Aircraft) error {
	return r.db.WithContext(ctx).Create(aircraft).Error
}

// GetByID gets an aircraft by ID
func (r *AircraftRepository) GetByID(ctx context.Context, id uint) (*models.Aircraft, error) {
	var aircraft models.Aircraft
	err := r.db.WithContext(ctx).First(&aircraft, id).Error
	if err != nil {
		return nil, err
	}
	return &aircraft, nil
}

// List lists aircraft ordered by model
func (r *AircraftRepository) List(ctx context.Context, offset, limit int) ([]*models.Aircraft, int64, error) {
	var aircraft []*models.Aircraft
	var total int64

	r.db.WithContext(ctx).Model(&models.Aircraft{}).Count(&total)

	err := r.db.WithContext(ctx).
		Order("model").
		Offset(offset).
		Limit(limit).
		Find(&aircraft).Error

	return aircraft, total, err
}

// Update updates an aircraft
func (r *AircraftRepository) Update(ctx context.Context, aircraft *models.Aircraft) error {
	return r.db.WithContext(ctx).Save(aircraft).Error
}

// Delete deletes an aircraft
func (r *AircraftRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Aircraft{}, id).Error
}

// CountFlights counts flights referencing an aircraft (referential protection)
func (r *AircraftRepository) CountFlights(ctx context.Context, aircraftID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Flight{}).Where("aircraft_id = ?", aircraftID).Count(&count).Error
	return count, err
}

// ExistsByRegistration checks if a registration is taken
func (r *AircraftRepository) ExistsByRegistration(ctx context.Context, registration string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Aircraft{}).Where("registration = ?", registration).Count(&count).Error
	return count > 0, err
}
