package handlers

import (
	"errors"
	"strconv"
	"time"

	"aerodesk/internal/adapters/http/middleware"
	"aerodesk/internal/core/domain"
	"aerodesk/internal/core/services"
	"aerodesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FlightHandler handles flight catalogue endpoints
type FlightHandler struct {
	flightService *services.FlightService
	seatService   *services.SeatService
}

// NewFlightHandler creates a new flight handler
func NewFlightHandler(flightService *services.FlightService, seatService *services.SeatService) *FlightHandler {
	return &FlightHandler{
		flightService: flightService,
		seatService:   seatService,
	}
}

// CreateFlightRequest represents flight creation request body
type CreateFlightRequest struct {
	Code        string    `json:"code"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Departure   time.Time `json:"departure"`
	Arrival     time.Time `json:"arrival"`
	BasePrice   float64   `json:"base_price"`
	AircraftID  uint      `json:"aircraft_id"`
}

// UpdateFlightRequest represents flight update request body
type UpdateFlightRequest struct {
	Origin      *string    `json:"origin"`
	Destination *string    `json:"destination"`
	Departure   *time.Time `json:"departure"`
	Arrival     *time.Time `json:"arrival"`
	BasePrice   *float64   `json:"base_price"`
}

// ChangeFlightStatusRequest represents the status change request body
type ChangeFlightStatusRequest struct {
	Status string `json:"estado"`
}

// AssignCrewRequest represents the crew assignment request body
type AssignCrewRequest struct {
	UserIDs []uint `json:"user_ids"`
}

// UpdateSeatRequest represents the admin seat override request body
type UpdateSeatRequest struct {
	Class       *string  `json:"class"`
	ExtraPrice  *float64 `json:"extra_price"`
	Maintenance *bool    `json:"maintenance"`
}

// CreateFlight handles flight creation (Admin only)
// @Summary Create flight
// @Description Create a flight and materialize its seats (Admin only)
// @Tags Flights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateFlightRequest true "Flight data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /flights [post]
func (h *FlightHandler) CreateFlight(c *fiber.Ctx) error {
	var req CreateFlightRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Code == "" || req.Origin == "" || req.Destination == "" {
		return response.BadRequest(c, "Code, origin and destination are required")
	}
	if req.AircraftID == 0 {
		return response.BadRequest(c, "Aircraft ID is required")
	}

	input := &services.CreateFlightInput{
		Code:        req.Code,
		Origin:      req.Origin,
		Destination: req.Destination,
		Departure:   req.Departure,
		Arrival:     req.Arrival,
		BasePrice:   req.BasePrice,
		AircraftID:  req.AircraftID,
	}

	flight, err := h.flightService.Create(c.Context(), middleware.PrincipalFromCtx(c), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Admin role required")
		case errors.Is(err, domain.ErrAircraftNotFound):
			return response.NotFound(c, "Aircraft not found")
		case errors.Is(err, domain.ErrInvalidSchedule):
			return response.BadRequest(c, "Arrival must be after departure")
		case errors.Is(err, domain.ErrConflict):
			return response.Conflict(c, "Flight code already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid flight data")
		default:
			return response.InternalServerError(c, "Failed to create flight")
		}
	}

	return response.Created(c, "Flight created successfully", fiber.Map{
		"flight": flight.ToResponse(),
	})
}

// ListFlights handles flight search
// @Summary List flights
// @Description Search flights by origin, destination and date. Passengers only see bookable flights.
// @Tags Flights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param origen query string false "Origin city"
// @Param destino query string false "Destination city"
// @Param fecha query string false "Departure date (YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /flights [get]
func (h *FlightHandler) ListFlights(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	input := &services.ListFlightsInput{
		Origin:      c.Query("origen"),
		Destination: c.Query("destino"),
		Page:        page,
		Limit:       limit,
	}

	if fecha := c.Query("fecha"); fecha != "" {
		date, err := time.Parse("2006-01-02", fecha)
		if err != nil {
			return response.BadRequest(c, "Date must be YYYY-MM-DD")
		}
		input.Date = &date
	}

	result, err := h.flightService.List(c.Context(), middleware.PrincipalFromCtx(c), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list flights")
	}

	return response.Success(c, "Flights retrieved successfully", result)
}

// GetFlight handles getting a flight by ID
// @Summary Get flight by ID
// @Description Get a specific flight with aircraft and crew
// @Tags Flights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Flight ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /flights/{id} [get]
func (h *FlightHandler) GetFlight(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid flight ID")
	}

	flight, err := h.flightService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrFlightNotFound) {
			return response.NotFound(c, "Flight not found")
		}
		return response.InternalServerError(c, "Failed to get flight")
	}

	return response.Success(c, "Flight retrieved successfully", fiber.Map{
		"flight": flight.ToResponse(),
	})
}

// UpdateFlight handles updating a flight (Admin only)
// @Summary Update flight
// @Description Update a flight's route, schedule or price (Admin only)
// @Tags Flights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Flight ID"
// @Param body body UpdateFlightRequest true "Update data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /flights/{id} [put]
func (h *FlightHandler) UpdateFlight(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid flight ID")
	}

	var req UpdateFlightRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateFlightInput{
		Origin:      req.Origin,
		Destination: req.Destination,
		Departure:   req.Departure,
		Arrival:     req.Arrival,
		BasePrice:   req.BasePrice,
	}

	flight, err := h.flightService.Update(c.Context(), middleware.PrincipalFromCtx(c), uint(id), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Admin role required")
		case errors.Is(err, domain.ErrFlightNotFound):
			return response.NotFound(c, "Flight not found")
		case errors.Is(err, domain.ErrInvalidSchedule):
			return response.BadRequest(c, "Arrival must be after departure")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid flight data")
		default:
			return response.InternalServerError(c, "Failed to update flight")
		}
	}

	return response.Success(c, "Flight updated successfully", fiber.Map{
		"flight": flight.ToResponse(),
	})
}

// DeleteFlight handles deleting a flight (Admin only)
// @Summary Delete flight
// @Description Delete a flight with no reservations (Admin only)
// @Tags Flights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Flight ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /flights/{id} [delete]
func (h *FlightHandler) DeleteFlight(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid flight ID")
	}

	if err := h.flightService.Delete(c.Context(), middleware.PrincipalFromCtx(c), uint(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Admin role required")
		case errors.Is(err, domain.ErrFlightNotFound):
			return response.NotFound(c, "Flight not found")
		case errors.Is(err, domain.ErrFlightHasBookings):
			return response.BadRequest(c, "Flight still has reservations")
		default:
			return response.InternalServerError(c, "Failed to delete flight")
		}
	}

	return response.Success(c, "Flight deleted successfully", nil)
}

// ChangeFlightStatus handles flight status transitions (Admin only)
// @Summary Change flight status
// @Description Transition a flight to a new lifecycle status (Admin only)
// @Tags Flights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Flight ID"
// @Param body body ChangeFlightStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /flights/{id}/cambiar_estado [post]
func (h *FlightHandler) ChangeFlightStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid flight ID")
	}

	var req ChangeFlightStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	flight, err := h.flightService.ChangeStatus(c.Context(), middleware.PrincipalFromCtx(c), uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Admin role required")
		case errors.Is(err, domain.ErrFlightNotFound):
			return response.NotFound(c, "Flight not found")
		case errors.Is(err, domain.ErrInvalidStatus):
			return response.BadRequest(c, "Status must be one of scheduled, delayed, cancelled, completed, in_progress")
		default:
			return response.InternalServerError(c, "Failed to change flight status")
		}
	}

	return response.Success(c, "Flight status changed successfully", fiber.Map{
		"flight": flight.ToResponse(),
	})
}

// GetSeatMap handles the seat map endpoint
// @Summary Get flight seat map
// @Description Get the seat set of a flight with live occupancy
// @Tags Flights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Flight ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /flights/{id}/asientos [get]
func (h *FlightHandler) GetSeatMap(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid flight ID")
	}

	seats, err := h.seatService.SeatMap(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrFlightNotFound) {
			return response.NotFound(c, "Flight not found")
		}
		return response.InternalServerError(c, "Failed to get seat map")
	}

	return response.Success(c, "Seat map retrieved successfully", fiber.Map{
		"seats": seats,
	})
}

// VerifySeat handles the seat availability check
// @Summary Verify seat availability
// @Description Check whether a seat on a flight can still be selected
// @Tags Flights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Flight ID"
// @Param asiento_id query int true "Seat ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /flights/{id}/verificar_asiento [get]
func (h *FlightHandler) VerifySeat(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid flight ID")
	}

	seatID, err := strconv.ParseUint(c.Query("asiento_id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Seat ID is required")
	}

	available, err := h.seatService.IsAvailable(c.Context(), uint(id), uint(seatID))
	if err != nil {
		if errors.Is(err, domain.ErrSeatNotFound) {
			return response.NotFound(c, "Seat not found on this flight")
		}
		return response.InternalServerError(c, "Failed to verify seat")
	}

	return response.Success(c, "Seat verified", fiber.Map{
		"seat_id":   uint(seatID),
		"available": available,
	})
}

// UpdateSeat handles the admin seat override
// @Summary Update seat
// @Description Change a seat's class, surcharge or maintenance flag (Admin only)
// @Tags Flights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Flight ID"
// @Param seatId path int true "Seat ID"
// @Param body body UpdateSeatRequest true "Seat data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /flights/{id}/asientos/{seatId} [patch]
func (h *FlightHandler) UpdateSeat(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid flight ID")
	}
	seatID, err := strconv.ParseUint(c.Params("seatId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid seat ID")
	}

	var req UpdateSeatRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateSeatInput{
		Class:       req.Class,
		ExtraPrice:  req.ExtraPrice,
		Maintenance: req.Maintenance,
	}

	seat, err := h.seatService.UpdateSeat(c.Context(), middleware.PrincipalFromCtx(c), uint(id), uint(seatID), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Admin role required")
		case errors.Is(err, domain.ErrSeatNotFound):
			return response.NotFound(c, "Seat not found on this flight")
		case errors.Is(err, domain.ErrInvalidState):
			return response.BadRequest(c, "Seat is held by a reservation")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid seat data")
		default:
			return response.InternalServerError(c, "Failed to update seat")
		}
	}

	return response.Success(c, "Seat updated successfully", fiber.Map{
		"seat": seat,
	})
}

// AssignCrew handles crew assignment (Admin only)
// @Summary Assign flight crew
// @Description Replace the crew of a flight; all members must be admins (Admin only)
// @Tags Flights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Flight ID"
// @Param body body AssignCrewRequest true "Crew user IDs"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /flights/{id}/crew [put]
func (h *FlightHandler) AssignCrew(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid flight ID")
	}

	var req AssignCrewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	flight, err := h.flightService.AssignCrew(c.Context(), middleware.PrincipalFromCtx(c), uint(id), req.UserIDs)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Admin role required")
		case errors.Is(err, domain.ErrFlightNotFound):
			return response.NotFound(c, "Flight not found")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "One or more crew members not found")
		case errors.Is(err, domain.ErrCrewNotAdmin):
			return response.BadRequest(c, "Crew members must be admin users")
		default:
			return response.InternalServerError(c, "Failed to assign crew")
		}
	}

	return response.Success(c, "Crew assigned successfully", fiber.Map{
		"flight": flight.ToResponse(),
	})
}
