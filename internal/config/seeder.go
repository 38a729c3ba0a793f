package config

import (
	"log"
	"time"

	"aerodesk/internal/adapters/persistence/models"
	"aerodesk/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedDemoFleet(); err != nil {
		log.Printf("⚠️ Fleet seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the default admin user
// This is for development/testing only
// In production, create admins through a secure process
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "ADMIN").Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: "admin",
		Email:    "admin@aerodesk.io",
		Password: hashedPassword,
		Document: "000000001",
		Role:     "ADMIN",
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}

// seedDemoFleet seeds one aircraft and two demo flights with their seat
// grids so a fresh install has something to book against
func (s *Seeder) seedDemoFleet() error {
	var count int64
	s.db.Model(&models.Aircraft{}).Count(&count)
	if count > 0 {
		return nil // Fleet already seeded
	}

	aircraft := &models.Aircraft{
		Model:           "Airbus A320",
		Registration:    "HK-4321",
		Rows:            30,
		Columns:         6,
		Capacity:        180,
		ManufactureDate: time.Date(2018, 6, 1, 0, 0, 0, 0, time.UTC),
		LastMaintenance: time.Now().AddDate(0, -1, 0),
	}
	if err := s.db.Create(aircraft).Error; err != nil {
		return err
	}

	departures := []struct {
		code        string
		origin      string
		destination string
		daysAhead   int
		price       float64
	}{
		{"AD101", "Bogota", "Medellin", 7, 120.00},
		{"AD202", "Medellin", "Cartagena", 10, 145.50},
	}

	for _, d := range departures {
		departure := time.Now().AddDate(0, 0, d.daysAhead).Truncate(time.Hour)
		flight := &models.Flight{
			Code:        d.code,
			Origin:      d.origin,
			Destination: d.destination,
			Departure:   departure,
			Arrival:     departure.Add(time.Hour),
			BasePrice:   d.price,
			Status:      "scheduled",
			AircraftID:  aircraft.ID,
		}
		if err := s.db.Create(flight).Error; err != nil {
			return err
		}

		seats := models.MaterializeSeats(aircraft, flight.ID)
		if err := s.db.CreateInBatches(seats, 200).Error; err != nil {
			return err
		}

		log.Printf("✅ Demo flight created: %s (%s → %s)", flight.Code, flight.Origin, flight.Destination)
	}

	return nil
}
