package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"aerodesk/internal/adapters/persistence/models"
	"aerodesk/internal/adapters/persistence/repositories"
	"aerodesk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReservationService(db *gorm.DB) *ReservationService {
	return NewReservationService(
		db,
		repositories.NewReservationRepository(db),
		repositories.NewFlightRepository(db),
		repositories.NewSeatRepository(db),
		nil,
	)
}

func TestCreateReservation(t *testing.T) {
	db := newTestDB(t)
	svc := newReservationService(db)

	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD100")
	passenger := seedUser(t, db, "ana", domain.RolePassenger)

	ctx := context.Background()
	reservation, err := svc.Create(ctx, asPassenger(passenger), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)
	assert.Equal(t, string(domain.ReservationPending), reservation.Status)
	assert.Nil(t, reservation.SeatID)

	// A second active reservation on the same flight is rejected.
	_, err = svc.Create(ctx, asPassenger(passenger), &CreateReservationInput{FlightID: flight.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicateReservation)
}

func TestCreateReservationRejectsAdminsAndClosedFlights(t *testing.T) {
	db := newTestDB(t)
	svc := newReservationService(db)

	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD101")
	admin := seedUser(t, db, "boss", domain.RoleAdmin)
	passenger := seedUser(t, db, "luis", domain.RolePassenger)

	ctx := context.Background()
	_, err := svc.Create(ctx, asAdmin(admin), &CreateReservationInput{FlightID: flight.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, db.Model(&models.Flight{}).
		Where("id = ?", flight.ID).
		Update("status", string(domain.FlightCancelled)).Error)

	_, err = svc.Create(ctx, asPassenger(passenger), &CreateReservationInput{FlightID: flight.ID})
	assert.ErrorIs(t, err, domain.ErrFlightNotBookable)
}

func TestSelectSeatConfirmsReservation(t *testing.T) {
	db := newTestDB(t)
	svc := newReservationService(db)

	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD102")
	passenger := seedUser(t, db, "maria", domain.RolePassenger)
	seat := firstSeat(t, db, flight.ID)

	ctx := context.Background()
	reservation, err := svc.Create(ctx, asPassenger(passenger), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)

	confirmed, err := svc.SelectSeat(ctx, asPassenger(passenger), reservation.ID, &SelectSeatInput{SeatID: seat.ID})
	require.NoError(t, err)
	assert.Equal(t, string(domain.ReservationConfirmed), confirmed.Status)
	require.NotNil(t, confirmed.SeatID)
	assert.Equal(t, seat.ID, *confirmed.SeatID)

	var updated models.Seat
	require.NoError(t, db.First(&updated, seat.ID).Error)
	assert.Equal(t, string(domain.SeatOccupied), updated.Occupancy)

	// Re-selecting the same seat is a no-op, not an error.
	again, err := svc.SelectSeat(ctx, asPassenger(passenger), reservation.ID, &SelectSeatInput{SeatID: seat.ID})
	require.NoError(t, err)
	assert.Equal(t, string(domain.ReservationConfirmed), again.Status)
}

func TestSelectSeatExactlyOneWinnerUnderContention(t *testing.T) {
	db := newTestDB(t)
	svc := newReservationService(db)

	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD103")
	seat := firstSeat(t, db, flight.ID)

	ctx := context.Background()
	p1 := seedUser(t, db, "carla", domain.RolePassenger)
	p2 := seedUser(t, db, "diego", domain.RolePassenger)

	r1, err := svc.Create(ctx, asPassenger(p1), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)
	r2, err := svc.Create(ctx, asPassenger(p2), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = svc.SelectSeat(ctx, asPassenger(p1), r1.ID, &SelectSeatInput{SeatID: seat.ID})
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = svc.SelectSeat(ctx, asPassenger(p2), r2.ID, &SelectSeatInput{SeatID: seat.ID})
	}()
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		assert.True(t,
			errors.Is(err, domain.ErrSeatTaken) || errors.Is(err, domain.ErrConflict),
			"loser must get a seat conflict, got %v", err)
	}
	assert.Equal(t, 1, winners)

	var holders int64
	require.NoError(t, db.Model(&models.Reservation{}).
		Where("seat_id = ?", seat.ID).
		Where("status = ?", string(domain.ReservationConfirmed)).
		Count(&holders).Error)
	assert.EqualValues(t, 1, holders)
}

func TestSelectSeatRejectsSeatFromAnotherFlight(t *testing.T) {
	db := newTestDB(t)
	svc := newReservationService(db)

	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD104")
	other := seedFlight(t, db, aircraft, "AD105")
	passenger := seedUser(t, db, "elena", domain.RolePassenger)
	foreignSeat := firstSeat(t, db, other.ID)

	ctx := context.Background()
	reservation, err := svc.Create(ctx, asPassenger(passenger), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)

	_, err = svc.SelectSeat(ctx, asPassenger(passenger), reservation.ID, &SelectSeatInput{SeatID: foreignSeat.ID})
	assert.ErrorIs(t, err, domain.ErrSeatNotFound)
}

func TestSelectSeatRejectsMaintenanceSeat(t *testing.T) {
	db := newTestDB(t)
	svc := newReservationService(db)

	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD106")
	passenger := seedUser(t, db, "oscar", domain.RolePassenger)
	seat := firstSeat(t, db, flight.ID)

	require.NoError(t, db.Model(&models.Seat{}).
		Where("id = ?", seat.ID).
		Update("occupancy", string(domain.SeatMaintenance)).Error)

	ctx := context.Background()
	reservation, err := svc.Create(ctx, asPassenger(passenger), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)

	_, err = svc.SelectSeat(ctx, asPassenger(passenger), reservation.ID, &SelectSeatInput{SeatID: seat.ID})
	assert.ErrorIs(t, err, domain.ErrSeatUnderMaintenance)
}

func TestSelectSeatOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newReservationService(db)

	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD107")
	owner := seedUser(t, db, "paula", domain.RolePassenger)
	intruder := seedUser(t, db, "ivan", domain.RolePassenger)
	seat := firstSeat(t, db, flight.ID)

	ctx := context.Background()
	reservation, err := svc.Create(ctx, asPassenger(owner), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)

	_, err = svc.SelectSeat(ctx, asPassenger(intruder), reservation.ID, &SelectSeatInput{SeatID: seat.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestChangeStatusCancelReleasesSeat(t *testing.T) {
	db := newTestDB(t)
	svc := newReservationService(db)

	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD108")
	passenger := seedUser(t, db, "rosa", domain.RolePassenger)
	admin := seedUser(t, db, "staff", domain.RoleAdmin)
	seat := firstSeat(t, db, flight.ID)

	ctx := context.Background()
	reservation, err := svc.Create(ctx, asPassenger(passenger), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)
	_, err = svc.SelectSeat(ctx, asPassenger(passenger), reservation.ID, &SelectSeatInput{SeatID: seat.ID})
	require.NoError(t, err)

	cancelled, err := svc.ChangeStatus(ctx, asAdmin(admin), reservation.ID, &ChangeReservationStatusInput{Status: "X"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.ReservationCancelled), cancelled.Status)

	var released models.Seat
	require.NoError(t, db.First(&released, seat.ID).Error)
	assert.Equal(t, string(domain.SeatAvailable), released.Occupancy)

	// The freed seat can be taken by another passenger.
	second := seedUser(t, db, "tomas", domain.RolePassenger)
	r2, err := svc.Create(ctx, asPassenger(second), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)
	_, err = svc.SelectSeat(ctx, asPassenger(second), r2.ID, &SelectSeatInput{SeatID: seat.ID})
	assert.NoError(t, err)

	// A cancelled reservation is terminal.
	_, err = svc.ChangeStatus(ctx, asAdmin(admin), reservation.ID, &ChangeReservationStatusInput{Status: "P"})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestChangeStatusValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newReservationService(db)

	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD109")
	passenger := seedUser(t, db, "vera", domain.RolePassenger)
	admin := seedUser(t, db, "chief", domain.RoleAdmin)

	ctx := context.Background()
	reservation, err := svc.Create(ctx, asPassenger(passenger), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(ctx, asAdmin(admin), reservation.ID, &ChangeReservationStatusInput{Status: "Z"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	// Confirming without a seat is rejected.
	_, err = svc.ChangeStatus(ctx, asAdmin(admin), reservation.ID, &ChangeReservationStatusInput{Status: "C"})
	assert.ErrorIs(t, err, domain.ErrSeatRequired)

	// Passengers cannot use the override.
	_, err = svc.ChangeStatus(ctx, asPassenger(passenger), reservation.ID, &ChangeReservationStatusInput{Status: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSelectSeatRejectsCancelledReservation(t *testing.T) {
	db := newTestDB(t)
	svc := newReservationService(db)

	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD110")
	passenger := seedUser(t, db, "nadia", domain.RolePassenger)
	admin := seedUser(t, db, "gate", domain.RoleAdmin)
	seat := firstSeat(t, db, flight.ID)

	ctx := context.Background()
	reservation, err := svc.Create(ctx, asPassenger(passenger), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)
	_, err = svc.SelectSeat(ctx, asPassenger(passenger), reservation.ID, &SelectSeatInput{SeatID: seat.ID})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(ctx, asAdmin(admin), reservation.ID, &ChangeReservationStatusInput{Status: "X"})
	require.NoError(t, err)

	// Selecting after the cancel must not resurrect the reservation.
	_, err = svc.SelectSeat(ctx, asPassenger(passenger), reservation.ID, &SelectSeatInput{SeatID: seat.ID})
	assert.ErrorIs(t, err, domain.ErrReservationNotPending)

	var after models.Reservation
	require.NoError(t, db.First(&after, reservation.ID).Error)
	assert.Equal(t, string(domain.ReservationCancelled), after.Status)

	var released models.Seat
	require.NoError(t, db.First(&released, seat.ID).Error)
	assert.Equal(t, string(domain.SeatAvailable), released.Occupancy)
}

func TestSelectSeatSwitchReleasesPreviousSeat(t *testing.T) {
	db := newTestDB(t)
	svc := newReservationService(db)

	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD111")
	passenger := seedUser(t, db, "hugo", domain.RolePassenger)

	var seats []models.Seat
	require.NoError(t, db.Where("flight_id = ?", flight.ID).Order("id").Find(&seats).Error)
	require.GreaterOrEqual(t, len(seats), 2)

	ctx := context.Background()
	reservation, err := svc.Create(ctx, asPassenger(passenger), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)
	_, err = svc.SelectSeat(ctx, asPassenger(passenger), reservation.ID, &SelectSeatInput{SeatID: seats[0].ID})
	require.NoError(t, err)

	switched, err := svc.SelectSeat(ctx, asPassenger(passenger), reservation.ID, &SelectSeatInput{SeatID: seats[1].ID})
	require.NoError(t, err)
	require.NotNil(t, switched.SeatID)
	assert.Equal(t, seats[1].ID, *switched.SeatID)

	var freed models.Seat
	require.NoError(t, db.First(&freed, seats[0].ID).Error)
	assert.Equal(t, string(domain.SeatAvailable), freed.Occupancy)
}

func TestSelectSeatConcurrentSwitchLeavesNoOrphanSeat(t *testing.T) {
	db := newTestDB(t)
	svc := newReservationService(db)

	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD112")
	passenger := seedUser(t, db, "irene", domain.RolePassenger)

	var seats []models.Seat
	require.NoError(t, db.Where("flight_id = ?", flight.ID).Order("id").Find(&seats).Error)
	require.GreaterOrEqual(t, len(seats), 2)

	ctx := context.Background()
	reservation, err := svc.Create(ctx, asPassenger(passenger), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)

	// Two racing selections of different seats on the same reservation:
	// whatever the interleaving, the reservation must end up holding
	// exactly the one seat that stayed occupied.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = svc.SelectSeat(ctx, asPassenger(passenger), reservation.ID, &SelectSeatInput{SeatID: seats[0].ID})
	}()
	go func() {
		defer wg.Done()
		_, _ = svc.SelectSeat(ctx, asPassenger(passenger), reservation.ID, &SelectSeatInput{SeatID: seats[1].ID})
	}()
	wg.Wait()

	var after models.Reservation
	require.NoError(t, db.First(&after, reservation.ID).Error)
	require.NotNil(t, after.SeatID)
	assert.Equal(t, string(domain.ReservationConfirmed), after.Status)

	var occupied []models.Seat
	require.NoError(t, db.Where("flight_id = ?", flight.ID).
		Where("occupancy = ?", string(domain.SeatOccupied)).
		Find(&occupied).Error)
	require.Len(t, occupied, 1)
	assert.Equal(t, *after.SeatID, occupied[0].ID)
}
