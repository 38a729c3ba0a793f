package repositories

import (
	"context"

	"aerodesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SeatRepository handles seat data access
type SeatRepository struct {
	db *gorm.DB
}

// NewSeatRepository creates a new seat repository
func NewSeatRepository(db *gorm.DB) *SeatRepository {
	return &SeatRepository{db: db}
}

// CreateBatch inserts a materialized seat set in one statement
func (r *SeatRepository) CreateBatch(ctx context.Context, seats []*models.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&seats).Error
}

// GetByID gets a seat by ID
func (r *SeatRepository) GetByID(ctx context.Context, id uint) (*models.Seat, error) {
	var seat models.Seat
	err := r.db.WithContext(ctx).First(&seat, id).Error
	if err != nil {
		return nil, err
	}
	return &seat, nil
}

// GetByFlightAndID gets a seat by ID scoped to a flight
func (r *SeatRepository) GetByFlightAndID(ctx context.Context, flightID, seatID uint) (*models.Seat, error) {
	var seat models.Seat
	err := r.db.WithContext(ctx).
		Where("flight_id = ?", flightID).
		First(&seat, seatID).Error
	if err != nil {
		return nil, err
	}
	return &seat, nil
}

// ListByFlight lists a flight's seats in cabin order
func (r *SeatRepository) ListByFlight(ctx context.Context, flightID uint) ([]*models.Seat, error) {
	var seats []*models.Seat
	err := r.db.WithContext(ctx).
		Where("flight_id = ?", flightID).
		Order("row, `column`").
		Find(&seats).Error
	return seats, err
}

// Update updates a seat
func (r *SeatRepository) Update(ctx context.Context, seat *models.Seat) error {
	return r.db.WithContext(ctx).Save(seat).Error
}

// HeldSeatIDs returns the seat ids blocked by pending or confirmed
// reservations on a flight, optionally excluding one reservation
func (r *SeatRepository) HeldSeatIDs(ctx context.Context, flightID uint, excludeReservationID uint) (map[uint]bool, error) {
	var ids []uint
	q := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("flight_id = ?", flightID).
		Where("status IN ?", []string{"P", "C"}).
		Where("seat_id IS NOT NULL")
	if excludeReservationID != 0 {
		q = q.Where("id <> ?", excludeReservationID)
	}
	if err := q.Pluck("seat_id", &ids).Error; err != nil {
		return nil, err
	}

	held := make(map[uint]bool, len(ids))
	for _, id := range ids {
		held[id] = true
	}
	return held, nil
}
