package services

import (
	"context"
	"testing"
	"time"

	"aerodesk/internal/adapters/persistence/repositories"
	"aerodesk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAircraftService(db *gorm.DB) *AircraftService {
	return NewAircraftService(repositories.NewAircraftRepository(db))
}

func TestCreateAircraft(t *testing.T) {
	db := newTestDB(t)
	svc := newAircraftService(db)
	admin := seedUser(t, db, "fleet", domain.RoleAdmin)
	passenger := seedUser(t, db, "walkon", domain.RolePassenger)

	ctx := context.Background()
	input := &CreateAircraftInput{
		Model:           "Boeing 737",
		Registration:    "HK-1111",
		Rows:            25,
		Columns:         6,
		ManufactureDate: time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	created, err := svc.Create(ctx, asAdmin(admin), input)
	require.NoError(t, err)
	assert.Equal(t, 150, created.Capacity)

	_, err = svc.Create(ctx, asPassenger(passenger), input)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Registrations are unique.
	_, err = svc.Create(ctx, asAdmin(admin), input)
	assert.ErrorIs(t, err, domain.ErrConflict)

	bad := *input
	bad.Registration = "HK-2222"
	bad.Rows = 0
	_, err = svc.Create(ctx, asAdmin(admin), &bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteAircraftBlockedByFlights(t *testing.T) {
	db := newTestDB(t)
	svc := newAircraftService(db)
	admin := seedUser(t, db, "scrapper", domain.RoleAdmin)

	aircraft := seedAircraft(t, db, 2, 2)
	seedFlight(t, db, aircraft, "AD600")

	ctx := context.Background()
	err := svc.Delete(ctx, asAdmin(admin), aircraft.ID)
	assert.ErrorIs(t, err, domain.ErrAircraftInUse)

	idle := seedAircraft(t, db, 3, 3)
	require.NoError(t, svc.Delete(ctx, asAdmin(admin), idle.ID))

	_, err = svc.GetByID(ctx, idle.ID)
	assert.ErrorIs(t, err, domain.ErrAircraftNotFound)
}

func TestUpdateAircraftGridImmutable(t *testing.T) {
	db := newTestDB(t)
	svc := newAircraftService(db)
	admin := seedUser(t, db, "fitter", domain.RoleAdmin)
	aircraft := seedAircraft(t, db, 4, 4)

	ctx := context.Background()
	model := "Airbus A321neo"
	maintained := time.Now()
	updated, err := svc.Update(ctx, asAdmin(admin), aircraft.ID, &UpdateAircraftInput{
		Model:           &model,
		LastMaintenance: &maintained,
	})
	require.NoError(t, err)
	assert.Equal(t, model, updated.Model)
	assert.Equal(t, 4, updated.Rows)
	assert.Equal(t, 4, updated.Columns)
	assert.Equal(t, 16, updated.Capacity)
}
