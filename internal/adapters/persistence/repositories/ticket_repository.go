package repositories

import (
	"context"

	"aerodesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// TicketRepository handles ticket data access
type TicketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create creates a new ticket. Barcode and reservation uniqueness are
// enforced by the store; callers retry on duplicate barcode.
func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

// GetByID gets a ticket by ID with reservation context
func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.WithContext(ctx).
		Preload("Reservation").
		Preload("Reservation.Flight").
		Preload("Reservation.Passenger").
		Preload("Reservation.Seat").
		First(&ticket, id).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetByReservationID gets the ticket issued for a reservation
func (r *TicketRepository) GetByReservationID(ctx context.Context, reservationID uint) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.WithContext(ctx).
		Preload("Reservation").
		Preload("Reservation.Flight").
		Preload("Reservation.Passenger").
		Preload("Reservation.Seat").
		Where("reservation_id = ?", reservationID).
		First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Update updates a ticket
func (r *TicketRepository) Update(ctx context.Context, ticket *models.Ticket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

// ExistsByBarcode checks whether a barcode is already assigned
func (r *TicketRepository) ExistsByBarcode(ctx context.Context, barcode string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Ticket{}).Where("barcode = ?", barcode).Count(&count).Error
	return count > 0, err
}
