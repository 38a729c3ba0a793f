package services

import (
	"context"
	"testing"

	"aerodesk/internal/adapters/persistence/repositories"
	"aerodesk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTicketService(db *gorm.DB) *TicketService {
	return NewTicketService(
		repositories.NewTicketRepository(db),
		repositories.NewReservationRepository(db),
		nil,
	)
}

// confirmedReservation walks a passenger through booking and seat
// selection so ticket tests start from a confirmed reservation
func confirmedReservation(t *testing.T, db *gorm.DB, code, username string) (domain.Principal, uint) {
	t.Helper()

	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, code)
	passenger := seedUser(t, db, username, domain.RolePassenger)
	seat := firstSeat(t, db, flight.ID)

	svc := newReservationService(db)
	ctx := context.Background()
	reservation, err := svc.Create(ctx, asPassenger(passenger), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)
	_, err = svc.SelectSeat(ctx, asPassenger(passenger), reservation.ID, &SelectSeatInput{SeatID: seat.ID})
	require.NoError(t, err)

	return asPassenger(passenger), reservation.ID
}

func TestIssueTicketIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newTicketService(db)
	p, reservationID := confirmedReservation(t, db, "AD200", "nina")

	ctx := context.Background()
	first, err := svc.Issue(ctx, p, &IssueTicketInput{ReservationID: reservationID})
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.NotEmpty(t, first.Ticket.Barcode)
	assert.Equal(t, string(domain.TicketActive), first.Ticket.Status)

	second, err := svc.Issue(ctx, p, &IssueTicketInput{ReservationID: reservationID})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Ticket.ID, second.Ticket.ID)
	assert.Equal(t, first.Ticket.Barcode, second.Ticket.Barcode)
}

func TestIssueTicketRequiresConfirmedReservation(t *testing.T) {
	db := newTestDB(t)
	svc := newTicketService(db)

	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD201")
	passenger := seedUser(t, db, "pedro", domain.RolePassenger)

	ctx := context.Background()
	reservation, err := newReservationService(db).Create(ctx, asPassenger(passenger), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)

	_, err = svc.Issue(ctx, asPassenger(passenger), &IssueTicketInput{ReservationID: reservation.ID})
	assert.ErrorIs(t, err, domain.ErrTicketNotConfirmed)
}

func TestIssueTicketOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newTicketService(db)
	_, reservationID := confirmedReservation(t, db, "AD202", "sara")

	intruder := seedUser(t, db, "mallory", domain.RolePassenger)

	_, err := svc.Issue(context.Background(), asPassenger(intruder), &IssueTicketInput{ReservationID: reservationID})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCheckInLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := newTicketService(db)
	p, reservationID := confirmedReservation(t, db, "AD203", "hugo")
	admin := seedUser(t, db, "gatekeeper", domain.RoleAdmin)

	ctx := context.Background()
	issued, err := svc.Issue(ctx, p, &IssueTicketInput{ReservationID: reservationID})
	require.NoError(t, err)

	// Passengers cannot operate the gate.
	_, err = svc.CheckIn(ctx, p, issued.Ticket.ID, &CheckInInput{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	checked, err := svc.CheckIn(ctx, asAdmin(admin), issued.Ticket.ID, &CheckInInput{BoardingGate: "B4"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.TicketUsed), checked.Status)
	assert.Equal(t, "B4", checked.BoardingGate)
	require.NotNil(t, checked.CheckedInAt)

	// A used ticket cannot board twice or be voided.
	_, err = svc.CheckIn(ctx, asAdmin(admin), issued.Ticket.ID, &CheckInInput{})
	assert.ErrorIs(t, err, domain.ErrTicketNotActive)
	_, err = svc.Void(ctx, asAdmin(admin), issued.Ticket.ID)
	assert.ErrorIs(t, err, domain.ErrTicketNotActive)
}

func TestVoidTicketIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newTicketService(db)
	p, reservationID := confirmedReservation(t, db, "AD204", "irene")
	admin := seedUser(t, db, "ops", domain.RoleAdmin)

	ctx := context.Background()
	issued, err := svc.Issue(ctx, p, &IssueTicketInput{ReservationID: reservationID})
	require.NoError(t, err)

	voided, err := svc.Void(ctx, asAdmin(admin), issued.Ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.TicketVoid), voided.Status)

	again, err := svc.Void(ctx, asAdmin(admin), issued.Ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.TicketVoid), again.Status)

	// Voided tickets cannot board.
	_, err = svc.CheckIn(ctx, asAdmin(admin), issued.Ticket.ID, &CheckInInput{})
	assert.ErrorIs(t, err, domain.ErrTicketNotActive)
}

func TestBoardingPassPDF(t *testing.T) {
	db := newTestDB(t)
	svc := newTicketService(db)
	p, reservationID := confirmedReservation(t, db, "AD205", "felix")

	ctx := context.Background()
	issued, err := svc.Issue(ctx, p, &IssueTicketInput{ReservationID: reservationID})
	require.NoError(t, err)

	content, filename, err := svc.BoardingPass(ctx, p, issued.Ticket.ID)
	require.NoError(t, err)
	assert.Contains(t, filename, issued.Ticket.Barcode)
	assert.True(t, len(content) > 0)
	assert.Equal(t, "%PDF", string(content[:4]))
}
