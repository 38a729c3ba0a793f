package services

import (
	"context"
	"fmt"
	"time"

	"aerodesk/internal/adapters/persistence/models"
	"aerodesk/internal/adapters/persistence/repositories"
	"aerodesk/internal/core/domain"
	"aerodesk/internal/metrics"

	gocache "github.com/patrickmn/go-cache"
)

const reportCacheTTL = 30 * time.Second

// ReportService produces the admin back-office reports. Results are
// cached briefly; staff refreshing a manifest every few seconds should
// not hammer the store.
type ReportService struct {
	reservationRepo *repositories.ReservationRepository
	flightRepo      *repositories.FlightRepository
	userRepo        repositories.UserRepository
	cache           *gocache.Cache
	metrics         *metrics.MetricsRegistry
}

// NewReportService creates a new report service
func NewReportService(
	reservationRepo *repositories.ReservationRepository,
	flightRepo *repositories.FlightRepository,
	userRepo repositories.UserRepository,
	reg *metrics.MetricsRegistry,
) *ReportService {
	return &ReportService{
		reservationRepo: reservationRepo,
		flightRepo:      flightRepo,
		userRepo:        userRepo,
		cache:           gocache.New(reportCacheTTL, 2*reportCacheTTL),
		metrics:         reg,
	}
}

// FlightPassengersReport lists the passengers holding active reservations
// on a flight
type FlightPassengersReport struct {
	FlightID   uint                   `json:"flight_id"`
	FlightCode string                 `json:"flight_code"`
	Passengers []FlightPassengerEntry `json:"passengers"`
	Total      int                    `json:"total"`
}

// FlightPassengerEntry is one manifest row
type FlightPassengerEntry struct {
	PassengerID   uint   `json:"passenger_id"`
	Username      string `json:"username"`
	Document      string `json:"document"`
	SeatNumber    string `json:"seat_number,omitempty"`
	ReservationID uint   `json:"reservation_id"`
	Status        string `json:"status"`
}

// PassengerReservationsReport lists a passenger's active reservations
type PassengerReservationsReport struct {
	PassengerID  uint                          `json:"passenger_id"`
	Username     string                        `json:"username"`
	Reservations []*models.ReservationResponse `json:"reservations"`
	Total        int                           `json:"total"`
}

// PassengersByFlight builds the manifest for a flight
func (s *ReportService) PassengersByFlight(ctx context.Context, p domain.Principal, flightID uint) (*FlightPassengersReport, error) {
	if !p.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	key := fmt.Sprintf("report:flight:%d", flightID)
	if cached, ok := s.cache.Get(key); ok {
		s.recordCache("flight_passengers", true)
		return cached.(*FlightPassengersReport), nil
	}
	s.recordCache("flight_passengers", false)

	flight, err := s.flightRepo.GetByID(ctx, flightID)
	if err != nil {
		return nil, domain.ErrFlightNotFound
	}

	reservations, err := s.reservationRepo.ActiveByFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}

	report := &FlightPassengersReport{
		FlightID:   flight.ID,
		FlightCode: flight.Code,
		Passengers: make([]FlightPassengerEntry, 0, len(reservations)),
	}
	for _, r := range reservations {
		entry := FlightPassengerEntry{
			PassengerID:   r.PassengerID,
			ReservationID: r.ID,
			Status:        r.Status,
		}
		if r.Passenger != nil {
			entry.Username = r.Passenger.Username
			entry.Document = r.Passenger.Document
		}
		if r.Seat != nil {
			entry.SeatNumber = r.Seat.Number
		}
		report.Passengers = append(report.Passengers, entry)
	}
	report.Total = len(report.Passengers)

	s.cache.Set(key, report, gocache.DefaultExpiration)
	return report, nil
}

// ReservationsByPassenger builds the active reservation list of a passenger
func (s *ReportService) ReservationsByPassenger(ctx context.Context, p domain.Principal, passengerID uint) (*PassengerReservationsReport, error) {
	if !p.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	key := fmt.Sprintf("report:passenger:%d", passengerID)
	if cached, ok := s.cache.Get(key); ok {
		s.recordCache("passenger_reservations", true)
		return cached.(*PassengerReservationsReport), nil
	}
	s.recordCache("passenger_reservations", false)

	user, err := s.userRepo.GetByID(ctx, passengerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	reservations, err := s.reservationRepo.ActiveByPassenger(ctx, passengerID)
	if err != nil {
		return nil, err
	}

	report := &PassengerReservationsReport{
		PassengerID:  user.ID,
		Username:     user.Username,
		Reservations: make([]*models.ReservationResponse, len(reservations)),
		Total:        len(reservations),
	}
	for i, r := range reservations {
		report.Reservations[i] = r.ToResponse()
	}

	s.cache.Set(key, report, gocache.DefaultExpiration)
	return report, nil
}

func (s *ReportService) recordCache(pattern string, hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.CacheHitsTotal.WithLabelValues(pattern).Inc()
	} else {
		s.metrics.CacheMissesTotal.WithLabelValues(pattern).Inc()
	}
}
