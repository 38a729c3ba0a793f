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

func seedFlightAt(t *testing.T, db *gorm.DB, aircraft *models.Aircraft, code, status string, departure time.Time) *models.Flight {
	t.Helper()

	flight := &models.Flight{
		Code:        code,
		Origin:      "Bogota",
		Destination: "Medellin",
		Departure:   departure,
		Arrival:     departure.Add(time.Hour),
		BasePrice:   100,
		Status:      status,
		AircraftID:  aircraft.ID,
	}
	require.NoError(t, db.Create(flight).Error)
	return flight
}

func TestSweepAdvancesFlightStatuses(t *testing.T) {
	db := newTestDB(t)
	aircraft := seedAircraft(t, db, 2, 2)

	now := time.Now()
	departed := seedFlightAt(t, db, aircraft, "AD500", string(domain.FlightScheduled), now.Add(-30*time.Minute))
	delayed := seedFlightAt(t, db, aircraft, "AD501", string(domain.FlightDelayed), now.Add(-30*time.Minute))
	arrived := seedFlightAt(t, db, aircraft, "AD502", string(domain.FlightInProgress), now.Add(-3*time.Hour))
	future := seedFlightAt(t, db, aircraft, "AD503", string(domain.FlightScheduled), now.Add(3*time.Hour))
	cancelled := seedFlightAt(t, db, aircraft, "AD504", string(domain.FlightCancelled), now.Add(-30*time.Minute))

	svc := NewSweepService(
		repositories.NewFlightRepository(db),
		repositories.NewRefreshTokenRepository(db),
		nil,
	)
	svc.RunOnce(context.Background())

	status := func(id uint) string {
		var f models.Flight
		require.NoError(t, db.First(&f, id).Error)
		return f.Status
	}

	assert.Equal(t, string(domain.FlightInProgress), status(departed.ID))
	assert.Equal(t, string(domain.FlightInProgress), status(delayed.ID))
	assert.Equal(t, string(domain.FlightCompleted), status(arrived.ID))
	assert.Equal(t, string(domain.FlightScheduled), status(future.ID))
	assert.Equal(t, string(domain.FlightCancelled), status(cancelled.ID))
}
