package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"aerodesk/internal/adapters/persistence/models"
	"aerodesk/internal/core/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database limited to a single
// connection so every goroutine sees the same data
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	return db
}

var documentSeq uint32

func seedUser(t *testing.T, db *gorm.DB, username string, role domain.Role) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Document: fmt.Sprintf("%09d", atomic.AddUint32(&documentSeq, 1)),
		Role:     string(role),
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedAircraft(t *testing.T, db *gorm.DB, rows, columns int) *models.Aircraft {
	t.Helper()

	aircraft := &models.Aircraft{
		Model:        "Test A320",
		Registration: fmt.Sprintf("TS-%d%d", rows, columns),
		Rows:         rows,
		Columns:      columns,
		Capacity:     rows * columns,
	}
	require.NoError(t, db.Create(aircraft).Error)
	return aircraft
}

// seedFlight creates a future scheduled flight with its seat grid
func seedFlight(t *testing.T, db *gorm.DB, aircraft *models.Aircraft, code string) *models.Flight {
	t.Helper()

	departure := time.Now().Add(48 * time.Hour)
	flight := &models.Flight{
		Code:        code,
		Origin:      "Bogota",
		Destination: "Medellin",
		Departure:   departure,
		Arrival:     departure.Add(time.Hour),
		BasePrice:   100,
		Status:      string(domain.FlightScheduled),
		AircraftID:  aircraft.ID,
	}
	require.NoError(t, db.Create(flight).Error)

	for _, seat := range models.MaterializeSeats(aircraft, flight.ID) {
		require.NoError(t, db.Create(seat).Error)
	}
	return flight
}

func firstSeat(t *testing.T, db *gorm.DB, flightID uint) *models.Seat {
	t.Helper()

	var seat models.Seat
	require.NoError(t, db.Where("flight_id = ?", flightID).Order("id").First(&seat).Error)
	return &seat
}

func asPassenger(u *models.User) domain.Principal {
	return domain.Principal{ID: u.ID, Role: domain.RolePassenger}
}

func asAdmin(u *models.User) domain.Principal {
	return domain.Principal{ID: u.ID, Role: domain.RoleAdmin}
}
