package services

import (
	"context"
	"errors"
	"time"

	"aerodesk/internal/adapters/persistence/models"
	"aerodesk/internal/adapters/persistence/repositories"
	"aerodesk/internal/core/domain"

	"gorm.io/gorm"
)

// AircraftService handles aircraft catalogue business logic
type AircraftService struct {
	aircraftRepo *repositories.AircraftRepository
}

// NewAircraftService creates a new aircraft service
func NewAircraftService(aircraftRepo *repositories.AircraftRepository) *AircraftService {
	return &AircraftService{aircraftRepo: aircraftRepo}
}

// CreateAircraftInput represents aircraft creation input
type CreateAircraftInput struct {
	Model           string     `json:"model" validate:"required"`
	Registration    string     `json:"registration" validate:"required"`
	Rows            int        `json:"rows" validate:"required,min=1"`
	Columns         int        `json:"columns" validate:"required,min=1"`
	ManufactureDate time.Time  `json:"manufacture_date"`
	LastMaintenance *time.Time `json:"last_maintenance"`
}

// UpdateAircraftInput represents aircraft update input
type UpdateAircraftInput struct {
	Model           *string    `json:"model"`
	LastMaintenance *time.Time `json:"last_maintenance"`
}

// Create creates a new aircraft
func (s *AircraftService) Create(ctx context.Context, p domain.Principal, input *CreateAircraftInput) (*models.Aircraft, error) {
	if !domain.CanManageCatalogue(p) {
		return nil, domain.ErrForbidden
	}

	if input.Model == "" || input.Registration == "" || input.Rows < 1 || input.Columns < 1 {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.aircraftRepo.ExistsByRegistration(ctx, input.Registration)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrConflict
	}

	aircraft := &models.Aircraft{
		Model:           input.Model,
		Registration:    input.Registration,
		Capacity:        input.Rows * input.Columns,
		Rows:            input.Rows,
		Columns:         input.Columns,
		ManufactureDate: input.ManufactureDate,
	}
	if input.LastMaintenance != nil {
		aircraft.LastMaintenance = *input.LastMaintenance
	}

	if err := s.aircraftRepo.Create(ctx, aircraft); err != nil {
		return nil, err
	}

	return aircraft, nil
}

// GetByID gets an aircraft by ID
func (s *AircraftService) GetByID(ctx context.Context, id uint) (*models.Aircraft, error) {
	aircraft, err := s.aircraftRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAircraftNotFound
		}
		return nil, err
	}
	return aircraft, nil
}

// List lists aircraft, paginated
func (s *AircraftService) List(ctx context.Context, page, limit int) ([]*models.Aircraft, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.aircraftRepo.List(ctx, (page-1)*limit, limit)
}

// Update updates an aircraft. Grid dimensions are immutable once created;
// seats for existing flights were cloned from them.
func (s *AircraftService) Update(ctx context.Context, p domain.Principal, id uint, input *UpdateAircraftInput) (*models.Aircraft, error) {
	if !domain.CanManageCatalogue(p) {
		return nil, domain.ErrForbidden
	}

	aircraft, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Model != nil {
		aircraft.Model = *input.Model
	}
	if input.LastMaintenance != nil {
		aircraft.LastMaintenance = *input.LastMaintenance
	}

	if err := s.aircraftRepo.Update(ctx, aircraft); err != nil {
		return nil, err
	}

	return aircraft, nil
}

// Delete deletes an aircraft. Blocked while flights reference it.
func (s *AircraftService) Delete(ctx context.Context, p domain.Principal, id uint) error {
	if !domain.CanManageCatalogue(p) {
		return domain.ErrForbidden
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.aircraftRepo.CountFlights(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrAircraftInUse
	}

	return s.aircraftRepo.Delete(ctx, id)
}
