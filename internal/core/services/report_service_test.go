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

func newReportService(db *gorm.DB) *ReportService {
	return NewReportService(
		repositories.NewReservationRepository(db),
		repositories.NewFlightRepository(db),
		repositories.NewUserRepository(db),
		nil,
	)
}

func TestPassengersByFlightReport(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD700")
	admin := seedUser(t, db, "auditor", domain.RoleAdmin)
	active := seedUser(t, db, "onboard", domain.RolePassenger)
	ghost := seedUser(t, db, "ghost", domain.RolePassenger)
	seat := firstSeat(t, db, flight.ID)

	ctx := context.Background()
	rsvc := newReservationService(db)

	r1, err := rsvc.Create(ctx, asPassenger(active), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)
	_, err = rsvc.SelectSeat(ctx, asPassenger(active), r1.ID, &SelectSeatInput{SeatID: seat.ID})
	require.NoError(t, err)

	// Cancelled reservations never reach the manifest.
	r2, err := rsvc.Create(ctx, asPassenger(ghost), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)
	_, err = rsvc.ChangeStatus(ctx, asAdmin(admin), r2.ID, &ChangeReservationStatusInput{Status: "X"})
	require.NoError(t, err)

	report, err := svc.PassengersByFlight(ctx, asAdmin(admin), flight.ID)
	require.NoError(t, err)
	assert.Equal(t, flight.Code, report.FlightCode)
	require.Equal(t, 1, report.Total)
	assert.Equal(t, active.Username, report.Passengers[0].Username)
	assert.Equal(t, seat.Number, report.Passengers[0].SeatNumber)

	_, err = svc.PassengersByFlight(ctx, asPassenger(active), flight.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.PassengersByFlight(ctx, asAdmin(admin), 9999)
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
}

func TestReservationsByPassengerReport(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	aircraft := seedAircraft(t, db, 2, 2)
	f1 := seedFlight(t, db, aircraft, "AD701")
	f2 := seedFlight(t, db, aircraft, "AD702")
	admin := seedUser(t, db, "deskop", domain.RoleAdmin)
	frequent := seedUser(t, db, "frequent", domain.RolePassenger)

	ctx := context.Background()
	rsvc := newReservationService(db)
	_, err := rsvc.Create(ctx, asPassenger(frequent), &CreateReservationInput{FlightID: f1.ID})
	require.NoError(t, err)
	_, err = rsvc.Create(ctx, asPassenger(frequent), &CreateReservationInput{FlightID: f2.ID})
	require.NoError(t, err)

	report, err := svc.ReservationsByPassenger(ctx, asAdmin(admin), frequent.ID)
	require.NoError(t, err)
	assert.Equal(t, frequent.Username, report.Username)
	assert.Equal(t, 2, report.Total)

	_, err = svc.ReservationsByPassenger(ctx, asAdmin(admin), 9999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestReportCacheServesRepeatedReads(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD703")
	admin := seedUser(t, db, "cachet", domain.RoleAdmin)
	passenger := seedUser(t, db, "briefly", domain.RolePassenger)

	ctx := context.Background()
	first, err := svc.PassengersByFlight(ctx, asAdmin(admin), flight.ID)
	require.NoError(t, err)
	require.Equal(t, 0, first.Total)

	// Within the TTL the cached manifest is returned even after a new
	// reservation lands.
	_, err = newReservationService(db).Create(ctx, asPassenger(passenger), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)

	second, err := svc.PassengersByFlight(ctx, asAdmin(admin), flight.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Total)
}
