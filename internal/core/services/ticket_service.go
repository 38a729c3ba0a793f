package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"aerodesk/internal/adapters/persistence/models"
	"aerodesk/internal/adapters/persistence/repositories"
	"aerodesk/internal/core/domain"
	"aerodesk/internal/metrics"
	"aerodesk/internal/pkg/pdf"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const barcodeMaxAttempts = 5

// TicketService handles ticket issuance and gate operations
type TicketService struct {
	ticketRepo      *repositories.TicketRepository
	reservationRepo *repositories.ReservationRepository
	metrics         *metrics.MetricsRegistry
}

// NewTicketService creates a new ticket service
func NewTicketService(
	ticketRepo *repositories.TicketRepository,
	reservationRepo *repositories.ReservationRepository,
	reg *metrics.MetricsRegistry,
) *TicketService {
	return &TicketService{
		ticketRepo:      ticketRepo,
		reservationRepo: reservationRepo,
		metrics:         reg,
	}
}

// IssueTicketInput represents ticket issuance input
type IssueTicketInput struct {
	ReservationID uint `json:"reserva_id" validate:"required"`
}

// CheckInInput represents gate check-in input
type CheckInInput struct {
	BoardingGate string `json:"puerta"`
}

// IssueResult reports whether the ticket was created by this call or
// already existed (the handler maps that to 201 vs 200)
type IssueResult struct {
	Ticket  *models.Ticket
	Created bool
}

// Issue issues the ticket for a confirmed reservation. Idempotent: a
// second call returns the existing ticket with its original barcode.
func (s *TicketService) Issue(ctx context.Context, p domain.Principal, input *IssueTicketInput) (*IssueResult, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, input.ReservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}

	if !domain.CanIssueTicket(p, reservation.PassengerID) {
		return nil, domain.ErrForbidden
	}

	if reservation.Status != string(domain.ReservationConfirmed) {
		return nil, domain.ErrTicketNotConfirmed
	}

	// Idempotency: reservation already ticketed.
	existing, err := s.ticketRepo.GetByReservationID(ctx, reservation.ID)
	if err == nil {
		return &IssueResult{Ticket: existing, Created: false}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	flightCode := ""
	if reservation.Flight != nil {
		flightCode = reservation.Flight.Code
	}

	var ticket *models.Ticket
	for attempt := 0; attempt < barcodeMaxAttempts; attempt++ {
		ticket = &models.Ticket{
			ReservationID: reservation.ID,
			Barcode:       generateBarcode(flightCode, reservation.PassengerID, reservation.ID),
			Status:        string(domain.TicketActive),
		}

		err = s.ticketRepo.Create(ctx, ticket)
		if err == nil {
			break
		}
		if isDuplicateError(err) {
			// A concurrent call issued the ticket for this reservation
			// between our check and the insert.
			if existing, getErr := s.ticketRepo.GetByReservationID(ctx, reservation.ID); getErr == nil {
				return &IssueResult{Ticket: existing, Created: false}, nil
			}
			// Barcode collision: pick a new suffix and retry.
			continue
		}
		return nil, err
	}
	if err != nil {
		return nil, domain.ErrTicketCodeExhausted
	}

	if s.metrics != nil {
		s.metrics.TicketsIssuedTotal.Inc()
	}

	log.Printf("✅ Ticket %s issued for reservation %d", ticket.Barcode, reservation.ID)

	ticket.Reservation = reservation
	return &IssueResult{Ticket: ticket, Created: true}, nil
}

// GetByID gets a ticket, enforcing ownership
func (s *TicketService) GetByID(ctx context.Context, p domain.Principal, id uint) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}

	owner := uint(0)
	if ticket.Reservation != nil {
		owner = ticket.Reservation.PassengerID
	}
	if !domain.CanIssueTicket(p, owner) {
		return nil, domain.ErrForbidden
	}

	return ticket, nil
}

// CheckIn marks a ticket used at the gate
func (s *TicketService) CheckIn(ctx context.Context, p domain.Principal, id uint, input *CheckInInput) (*models.Ticket, error) {
	if !domain.CanOperateTicket(p) {
		return nil, domain.ErrForbidden
	}

	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}

	if ticket.Status != string(domain.TicketActive) {
		return nil, domain.ErrTicketNotActive
	}

	now := time.Now()
	ticket.Status = string(domain.TicketUsed)
	ticket.CheckedInAt = &now
	if input != nil && input.BoardingGate != "" {
		ticket.BoardingGate = input.BoardingGate
	}

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}

	log.Printf("✅ Ticket %s checked in", ticket.Barcode)
	return ticket, nil
}

// Void voids a ticket. Idempotent on an already-void ticket.
func (s *TicketService) Void(ctx context.Context, p domain.Principal, id uint) (*models.Ticket, error) {
	if !domain.CanOperateTicket(p) {
		return nil, domain.ErrForbidden
	}

	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}

	if ticket.Status == string(domain.TicketVoid) {
		return ticket, nil
	}
	if ticket.Status == string(domain.TicketUsed) {
		return nil, domain.ErrTicketNotActive
	}

	ticket.Status = string(domain.TicketVoid)
	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}

	log.Printf("✅ Ticket %s voided", ticket.Barcode)
	return ticket, nil
}

// BoardingPass renders the ticket as a PDF boarding pass
func (s *TicketService) BoardingPass(ctx context.Context, p domain.Principal, id uint) ([]byte, string, error) {
	ticket, err := s.GetByID(ctx, p, id)
	if err != nil {
		return nil, "", err
	}

	data := pdf.BoardingPassData{
		Barcode:      ticket.Barcode,
		BoardingGate: ticket.BoardingGate,
	}
	if r := ticket.Reservation; r != nil {
		data.FinalPrice = r.FinalPrice()
		if r.Flight != nil {
			data.FlightCode = r.Flight.Code
			data.Origin = r.Flight.Origin
			data.Destination = r.Flight.Destination
			data.Departure = r.Flight.Departure
		}
		if r.Passenger != nil {
			data.PassengerName = r.Passenger.Username
			data.Document = r.Passenger.Document
		}
		if r.Seat != nil {
			data.SeatNumber = r.Seat.Number
			data.SeatClass = r.Seat.Class
		}
	}

	return pdf.BuildBoardingPass(data)
}

// generateBarcode builds B-<flight>-<passenger>-<reservation>-<RAND4>,
// where the suffix is four upper-case hex characters
func generateBarcode(flightCode string, passengerID, reservationID uint) string {
	id := uuid.New()
	suffix := strings.ToUpper(hex.EncodeToString(id[:2]))
	return fmt.Sprintf("B-%s-%d-%d-%s", flightCode, passengerID, reservationID, suffix)
}

// isDuplicateError reports whether the storage error is a unique
// constraint violation. MySQL: 1062; SQLite: UNIQUE constraint failed.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Error 1062") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
