package services

import (
	"context"
	"log"
	"time"

	"aerodesk/internal/core/domain"
	"aerodesk/internal/metrics"

	"github.com/robfig/cron/v3"
)

// SweepService advances flight statuses on a schedule: scheduled or
// delayed flights past departure become in_progress, in_progress flights
// past arrival become completed. Cancelled flights are never touched.
type SweepService struct {
	flights FlightSweepSource
	tokens  TokenCleaner
	metrics *metrics.MetricsRegistry
	cron    *cron.Cron
}

// NewSweepService creates a new sweep service
func NewSweepService(flights FlightSweepSource, tokens TokenCleaner, reg *metrics.MetricsRegistry) *SweepService {
	return &SweepService{
		flights: flights,
		tokens:  tokens,
		metrics: reg,
		cron:    cron.New(),
	}
}

// Start registers and launches the cron entries
func (s *SweepService) Start() {
	s.cron.AddFunc("*/5 * * * *", func() {
		s.RunOnce(context.Background())
	})
	s.cron.AddFunc("0 3 * * *", func() {
		if err := s.tokens.DeleteExpired(context.Background()); err != nil {
			log.Printf("⚠️ Refresh token cleanup failed: %v", err)
		}
	})
	s.cron.Start()
	log.Println("🚀 SweepService started")
}

// Stop stops the cron scheduler, waiting for a running sweep to finish
func (s *SweepService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 SweepService stopped")
}

// RunOnce executes a single sweep pass
func (s *SweepService) RunOnce(ctx context.Context) {
	now := time.Now()
	if s.metrics != nil {
		s.metrics.SweepRunsTotal.Inc()
	}

	departed, err := s.flights.ListDepartedScheduled(ctx, now)
	if err != nil {
		log.Printf("⚠️ Sweep: listing departed flights failed: %v", err)
	} else {
		for _, f := range departed {
			if err := s.flights.UpdateStatus(ctx, f.ID, string(domain.FlightInProgress)); err != nil {
				log.Printf("⚠️ Sweep: flight %s: %v", f.Code, err)
				continue
			}
			if s.metrics != nil {
				s.metrics.SweepFlightsAdvanced.WithLabelValues("departed").Inc()
			}
		}
	}

	arrived, err := s.flights.ListArrivedInProgress(ctx, now)
	if err != nil {
		log.Printf("⚠️ Sweep: listing arrived flights failed: %v", err)
		return
	}
	for _, f := range arrived {
		if err := s.flights.UpdateStatus(ctx, f.ID, string(domain.FlightCompleted)); err != nil {
			log.Printf("⚠️ Sweep: flight %s: %v", f.Code, err)
			continue
		}
		if s.metrics != nil {
			s.metrics.SweepFlightsAdvanced.WithLabelValues("arrived").Inc()
		}
	}
}
