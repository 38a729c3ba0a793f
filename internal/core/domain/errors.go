package domain

import "errors"

// Common errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidState       = errors.New("operation not allowed in current state")
	ErrConflict           = errors.New("conflicting concurrent update")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInternalServer     = errors.New("internal server error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserInactive      = errors.New("user account is inactive")
	ErrInvalidRole       = errors.New("invalid role value")
)

// Catalogue errors
var (
	ErrAircraftNotFound  = errors.New("aircraft not found")
	ErrAircraftInUse     = errors.New("aircraft has flights and cannot be deleted")
	ErrFlightNotFound    = errors.New("flight not found")
	ErrFlightHasBookings = errors.New("flight has reservations and cannot be deleted")
	ErrInvalidSchedule   = errors.New("arrival must be after departure")
	ErrInvalidStatus     = errors.New("invalid status value")
	ErrCrewNotAdmin      = errors.New("crew members must be admin users")
)

// Reservation errors
var (
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrFlightNotBookable     = errors.New("flight is not open for booking")
	ErrDuplicateReservation  = errors.New("passenger already has an active reservation on this flight")
	ErrSeatNotFound          = errors.New("seat does not belong to this flight")
	ErrSeatTaken             = errors.New("seat is already held by another reservation")
	ErrSeatUnderMaintenance  = errors.New("seat is under maintenance")
	ErrReservationNotPending = errors.New("reservation is cancelled")
	ErrSeatRequired          = errors.New("a confirmed reservation requires a seat")
)

// Ticket errors
var (
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrTicketNotConfirmed  = errors.New("reservation is not confirmed")
	ErrTicketNotActive     = errors.New("ticket already used or void")
	ErrTicketCodeExhausted = errors.New("could not generate a unique ticket code")
)
