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

func newSeatService(db *gorm.DB) *SeatService {
	return NewSeatService(
		repositories.NewSeatRepository(db),
		repositories.NewFlightRepository(db),
	)
}

func TestSeatMapReflectsHolds(t *testing.T) {
	db := newTestDB(t)
	svc := newSeatService(db)

	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD400")
	passenger := seedUser(t, db, "mapuser", domain.RolePassenger)
	seat := firstSeat(t, db, flight.ID)

	ctx := context.Background()
	seats, err := svc.SeatMap(ctx, flight.ID)
	require.NoError(t, err)
	require.Len(t, seats, 4)
	for _, s := range seats {
		assert.False(t, s.Occupied)
	}

	rsvc := newReservationService(db)
	reservation, err := rsvc.Create(ctx, asPassenger(passenger), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)
	_, err = rsvc.SelectSeat(ctx, asPassenger(passenger), reservation.ID, &SelectSeatInput{SeatID: seat.ID})
	require.NoError(t, err)

	seats, err = svc.SeatMap(ctx, flight.ID)
	require.NoError(t, err)
	occupied := 0
	for _, s := range seats {
		if s.Occupied {
			occupied++
			assert.Equal(t, seat.ID, s.ID)
		}
	}
	assert.Equal(t, 1, occupied)

	available, err := svc.IsAvailable(ctx, flight.ID, seat.ID)
	require.NoError(t, err)
	assert.False(t, available)

	_, err = svc.SeatMap(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
}

func TestUpdateSeatMaintenanceToggle(t *testing.T) {
	db := newTestDB(t)
	svc := newSeatService(db)

	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD401")
	admin := seedUser(t, db, "mechanic", domain.RoleAdmin)
	passenger := seedUser(t, db, "sitter", domain.RolePassenger)
	seat := firstSeat(t, db, flight.ID)

	ctx := context.Background()
	on := true
	updated, err := svc.UpdateSeat(ctx, asAdmin(admin), flight.ID, seat.ID, &UpdateSeatInput{Maintenance: &on})
	require.NoError(t, err)
	assert.Equal(t, string(domain.SeatMaintenance), updated.Occupancy)

	available, err := svc.IsAvailable(ctx, flight.ID, seat.ID)
	require.NoError(t, err)
	assert.False(t, available)

	off := false
	updated, err = svc.UpdateSeat(ctx, asAdmin(admin), flight.ID, seat.ID, &UpdateSeatInput{Maintenance: &off})
	require.NoError(t, err)
	assert.Equal(t, string(domain.SeatAvailable), updated.Occupancy)

	// A held seat cannot be flagged for maintenance.
	rsvc := newReservationService(db)
	reservation, err := rsvc.Create(ctx, asPassenger(passenger), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)
	_, err = rsvc.SelectSeat(ctx, asPassenger(passenger), reservation.ID, &SelectSeatInput{SeatID: seat.ID})
	require.NoError(t, err)

	_, err = svc.UpdateSeat(ctx, asAdmin(admin), flight.ID, seat.ID, &UpdateSeatInput{Maintenance: &on})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestUpdateSeatClassAndSurcharge(t *testing.T) {
	db := newTestDB(t)
	svc := newSeatService(db)

	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD402")
	admin := seedUser(t, db, "pricer", domain.RoleAdmin)
	passenger := seedUser(t, db, "peon", domain.RolePassenger)
	seat := firstSeat(t, db, flight.ID)

	ctx := context.Background()
	class := string(domain.SeatBusiness)
	price := 35.0
	updated, err := svc.UpdateSeat(ctx, asAdmin(admin), flight.ID, seat.ID, &UpdateSeatInput{
		Class:      &class,
		ExtraPrice: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, class, updated.Class)
	assert.Equal(t, price, updated.ExtraPrice)

	bogus := "cargo"
	_, err = svc.UpdateSeat(ctx, asAdmin(admin), flight.ID, seat.ID, &UpdateSeatInput{Class: &bogus})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	negative := -1.0
	_, err = svc.UpdateSeat(ctx, asAdmin(admin), flight.ID, seat.ID, &UpdateSeatInput{ExtraPrice: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateSeat(ctx, asPassenger(passenger), flight.ID, seat.ID, &UpdateSeatInput{Class: &class})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
