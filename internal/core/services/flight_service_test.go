package services

import (
	"context"
	"testing"
	"time"

	"aerodesk/internal/adapters/persistence/models"
	"aerodesk/internal/adapters/persistence/repositories"
	"aerodesk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFlightService(db *gorm.DB) *FlightService {
	return NewFlightService(
		repositories.NewFlightRepository(db),
		repositories.NewAircraftRepository(db),
		repositories.NewSeatRepository(db),
		repositories.NewUserRepository(db),
	)
}

func TestCreateFlightMaterializesSeats(t *testing.T) {
	db := newTestDB(t)
	svc := newFlightService(db)
	admin := seedUser(t, db, "planner", domain.RoleAdmin)
	aircraft := seedAircraft(t, db, 3, 4)

	departure := time.Now().Add(72 * time.Hour)
	ctx := context.Background()
	flight, err := svc.Create(ctx, asAdmin(admin), &CreateFlightInput{
		Code:        "AD300",
		Origin:      "Bogota",
		Destination: "Cali",
		Departure:   departure,
		Arrival:     departure.Add(time.Hour),
		BasePrice:   99.50,
		AircraftID:  aircraft.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.FlightScheduled), flight.Status)

	var seats int64
	require.NoError(t, db.Model(&models.Seat{}).Where("flight_id = ?", flight.ID).Count(&seats).Error)
	assert.EqualValues(t, 12, seats)

	var corner models.Seat
	require.NoError(t, db.Where("flight_id = ? AND number = ?", flight.ID, "3D").First(&corner).Error)
	assert.Equal(t, 3, corner.Row)
	assert.Equal(t, "D", corner.Column)
	assert.Equal(t, string(domain.SeatAvailable), corner.Occupancy)
}

func TestCreateFlightValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newFlightService(db)
	admin := seedUser(t, db, "planner2", domain.RoleAdmin)
	passenger := seedUser(t, db, "walter", domain.RolePassenger)
	aircraft := seedAircraft(t, db, 2, 2)

	departure := time.Now().Add(72 * time.Hour)
	ctx := context.Background()

	valid := &CreateFlightInput{
		Code:        "AD301",
		Origin:      "Bogota",
		Destination: "Cali",
		Departure:   departure,
		Arrival:     departure.Add(time.Hour),
		BasePrice:   50,
		AircraftID:  aircraft.ID,
	}

	_, err := svc.Create(ctx, asPassenger(passenger), valid)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Arrival at or before departure is rejected.
	bad := *valid
	bad.Arrival = departure
	_, err = svc.Create(ctx, asAdmin(admin), &bad)
	assert.ErrorIs(t, err, domain.ErrInvalidSchedule)

	bad = *valid
	bad.AircraftID = 9999
	_, err = svc.Create(ctx, asAdmin(admin), &bad)
	assert.ErrorIs(t, err, domain.ErrAircraftNotFound)

	_, err = svc.Create(ctx, asAdmin(admin), valid)
	require.NoError(t, err)

	// Flight codes are unique.
	_, err = svc.Create(ctx, asAdmin(admin), valid)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestListFlightsHidesUnbookableFromPassengers(t *testing.T) {
	db := newTestDB(t)
	svc := newFlightService(db)
	admin := seedUser(t, db, "back", domain.RoleAdmin)
	passenger := seedUser(t, db, "viewer", domain.RolePassenger)
	aircraft := seedAircraft(t, db, 2, 2)

	open := seedFlight(t, db, aircraft, "AD302")
	closed := seedFlight(t, db, aircraft, "AD303")
	require.NoError(t, db.Model(&models.Flight{}).
		Where("id = ?", closed.ID).
		Update("status", string(domain.FlightCancelled)).Error)

	ctx := context.Background()
	forPassenger, err := svc.List(ctx, asPassenger(passenger), &ListFlightsInput{})
	require.NoError(t, err)
	require.Len(t, forPassenger.Flights, 1)
	assert.Equal(t, open.Code, forPassenger.Flights[0].Code)

	forAdmin, err := svc.List(ctx, asAdmin(admin), &ListFlightsInput{})
	require.NoError(t, err)
	assert.Len(t, forAdmin.Flights, 2)
}

func TestListFlightsRouteFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newFlightService(db)
	admin := seedUser(t, db, "router", domain.RoleAdmin)
	aircraft := seedAircraft(t, db, 2, 2)

	seedFlight(t, db, aircraft, "AD304")
	other := seedFlight(t, db, aircraft, "AD305")
	require.NoError(t, db.Model(&models.Flight{}).
		Where("id = ?", other.ID).
		Updates(map[string]interface{}{"origin": "Cali", "destination": "Pasto"}).Error)

	ctx := context.Background()
	result, err := svc.List(ctx, asAdmin(admin), &ListFlightsInput{Origin: "Cali"})
	require.NoError(t, err)
	require.Len(t, result.Flights, 1)
	assert.Equal(t, "AD305", result.Flights[0].Code)
}

func TestDeleteFlightBlockedByReservations(t *testing.T) {
	db := newTestDB(t)
	svc := newFlightService(db)
	admin := seedUser(t, db, "cleaner", domain.RoleAdmin)
	passenger := seedUser(t, db, "holder", domain.RolePassenger)
	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD306")

	ctx := context.Background()
	_, err := newReservationService(db).Create(ctx, asPassenger(passenger), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)

	err = svc.Delete(ctx, asAdmin(admin), flight.ID)
	assert.ErrorIs(t, err, domain.ErrFlightHasBookings)

	empty := seedFlight(t, db, aircraft, "AD307")
	require.NoError(t, svc.Delete(ctx, asAdmin(admin), empty.ID))
}

func TestChangeFlightStatusDoesNotCascade(t *testing.T) {
	db := newTestDB(t)
	svc := newFlightService(db)
	admin := seedUser(t, db, "dispatcher", domain.RoleAdmin)
	passenger := seedUser(t, db, "rider", domain.RolePassenger)
	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD308")
	seat := firstSeat(t, db, flight.ID)

	ctx := context.Background()
	rsvc := newReservationService(db)
	reservation, err := rsvc.Create(ctx, asPassenger(passenger), &CreateReservationInput{FlightID: flight.ID})
	require.NoError(t, err)
	_, err = rsvc.SelectSeat(ctx, asPassenger(passenger), reservation.ID, &SelectSeatInput{SeatID: seat.ID})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(ctx, asAdmin(admin), flight.ID, "bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	updated, err := svc.ChangeStatus(ctx, asAdmin(admin), flight.ID, string(domain.FlightCancelled))
	require.NoError(t, err)
	assert.Equal(t, string(domain.FlightCancelled), updated.Status)

	// Reservations stay put; staff resolve them case by case.
	var untouched models.Reservation
	require.NoError(t, db.First(&untouched, reservation.ID).Error)
	assert.Equal(t, string(domain.ReservationConfirmed), untouched.Status)
}

func TestAssignCrewRequiresAdmins(t *testing.T) {
	db := newTestDB(t)
	svc := newFlightService(db)
	admin := seedUser(t, db, "lead", domain.RoleAdmin)
	pilot := seedUser(t, db, "pilot", domain.RoleAdmin)
	passenger := seedUser(t, db, "notcrew", domain.RolePassenger)
	aircraft := seedAircraft(t, db, 2, 2)
	flight := seedFlight(t, db, aircraft, "AD309")

	ctx := context.Background()
	_, err := svc.AssignCrew(ctx, asAdmin(admin), flight.ID, []uint{pilot.ID, passenger.ID})
	assert.ErrorIs(t, err, domain.ErrCrewNotAdmin)

	_, err = svc.AssignCrew(ctx, asAdmin(admin), flight.ID, []uint{pilot.ID, 9999})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	updated, err := svc.AssignCrew(ctx, asAdmin(admin), flight.ID, []uint{pilot.ID})
	require.NoError(t, err)
	require.Len(t, updated.Crew, 1)
	assert.Equal(t, pilot.Username, updated.Crew[0].Username)
}
