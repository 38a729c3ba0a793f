package services

import (
	"context"
	"time"

	"aerodesk/internal/adapters/persistence/models"
)

// Note: service implementations live in their own files; this file holds
// the narrow interfaces consumed across service boundaries.

// FlightSweepSource is the slice of flight persistence the status sweep
// needs. Satisfied by repositories.FlightRepository.
type FlightSweepSource interface {
	ListDepartedScheduled(ctx context.Context, now time.Time) ([]*models.Flight, error)
	ListArrivedInProgress(ctx context.Context, now time.Time) ([]*models.Flight, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

// TokenCleaner is the slice of refresh token persistence the cleanup
// sweep needs.
type TokenCleaner interface {
	DeleteExpired(ctx context.Context) error
}
