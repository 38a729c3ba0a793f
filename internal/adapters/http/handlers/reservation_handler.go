package handlers

import (
	"errors"
	"strconv"

	"aerodesk/internal/adapters/http/middleware"
	"aerodesk/internal/core/domain"
	"aerodesk/internal/core/services"
	"aerodesk/internal/pkg/pagination"
	"aerodesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReservationHandler handles the booking workflow endpoints
type ReservationHandler struct {
	reservationService *services.ReservationService
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservationService *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
	}
}

// CreateReservation handles opening a reservation
// @Summary Create reservation
// @Description Open a pending reservation on a bookable flight
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateReservationInput true "Flight to book"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *fiber.Ctx) error {
	var input services.CreateReservationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.FlightID == 0 {
		return response.BadRequest(c, "Flight ID is required")
	}

	reservation, err := h.reservationService.Create(c.Context(), middleware.PrincipalFromCtx(c), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Only passengers can open reservations")
		case errors.Is(err, domain.ErrFlightNotFound):
			return response.NotFound(c, "Flight not found")
		case errors.Is(err, domain.ErrFlightNotBookable):
			return response.BadRequest(c, "Flight is not open for booking")
		case errors.Is(err, domain.ErrDuplicateReservation):
			return response.Conflict(c, "You already have an active reservation on this flight")
		default:
			return response.InternalServerError(c, "Failed to create reservation")
		}
	}

	return response.Created(c, "Reservation created successfully", fiber.Map{
		"reservation": reservation.ToResponse(),
	})
}

// ListReservations handles listing reservations. Passengers see their
// own; admins see everyone's, paginated.
// @Summary List reservations
// @Description List own reservations (passenger) or all reservations (admin)
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (admin listing)" default(1)
// @Param limit query int false "Items per page (admin listing)" default(20)
// @Success 200 {object} response.Response
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c *fiber.Ctx) error {
	p := middleware.PrincipalFromCtx(c)

	if p.IsAdmin() {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		limit, _ := strconv.Atoi(c.Query("limit", "20"))

		reservations, total, err := h.reservationService.ListAll(c.Context(), p, page, limit)
		if err != nil {
			return response.InternalServerError(c, "Failed to list reservations")
		}

		return response.Success(c, "Reservations retrieved successfully", fiber.Map{
			"reservations": reservations,
			"pagination":   pagination.NewPagination(page, limit, total),
		})
	}

	reservations, err := h.reservationService.ListForPassenger(c.Context(), p)
	if err != nil {
		return response.InternalServerError(c, "Failed to list reservations")
	}

	return response.Success(c, "Reservations retrieved successfully", fiber.Map{
		"reservations": reservations,
	})
}

// GetReservation handles getting a reservation by ID
// @Summary Get reservation by ID
// @Description Get a reservation; passengers may only read their own
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid reservation ID")
	}

	reservation, err := h.reservationService.GetByID(c.Context(), middleware.PrincipalFromCtx(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReservationNotFound):
			return response.NotFound(c, "Reservation not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only access your own reservations")
		default:
			return response.InternalServerError(c, "Failed to get reservation")
		}
	}

	return response.Success(c, "Reservation retrieved successfully", fiber.Map{
		"reservation": reservation.ToResponse(),
	})
}

// SelectSeat handles seat selection and confirmation
// @Summary Select seat
// @Description Assign a seat to a pending reservation and confirm it. Exactly one of two concurrent selections of the same seat succeeds.
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Param body body services.SelectSeatInput true "Seat to select"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /reservations/{id}/seleccionar_asiento [post]
func (h *ReservationHandler) SelectSeat(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid reservation ID")
	}

	var input services.SelectSeatInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.SeatID == 0 {
		return response.BadRequest(c, "Seat ID is required")
	}

	reservation, err := h.reservationService.SelectSeat(c.Context(), middleware.PrincipalFromCtx(c), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReservationNotFound):
			return response.NotFound(c, "Reservation not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only modify your own reservations")
		case errors.Is(err, domain.ErrReservationNotPending):
			return response.BadRequest(c, "Reservation is cancelled")
		case errors.Is(err, domain.ErrSeatNotFound):
			return response.NotFound(c, "Seat not found on this flight")
		case errors.Is(err, domain.ErrSeatUnderMaintenance):
			return response.BadRequest(c, "Seat is under maintenance")
		case errors.Is(err, domain.ErrSeatTaken):
			return response.Conflict(c, "Seat is already held by another reservation")
		case errors.Is(err, domain.ErrConflict):
			return response.Conflict(c, "Seat selection conflicted with a concurrent request, please retry")
		default:
			return response.InternalServerError(c, "Failed to select seat")
		}
	}

	return response.Success(c, "Seat selected successfully", fiber.Map{
		"reservation": reservation.ToResponse(),
	})
}

// ChangeReservationStatus handles the admin status override
// @Summary Change reservation status
// @Description Force a reservation status transition (Admin only). Cancelling releases the seat.
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Param body body services.ChangeReservationStatusInput true "New status (P, C or X)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reservations/{id}/cambiar_estado [patch]
func (h *ReservationHandler) ChangeReservationStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid reservation ID")
	}

	var input services.ChangeReservationStatusInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	reservation, err := h.reservationService.ChangeStatus(c.Context(), middleware.PrincipalFromCtx(c), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Admin role required")
		case errors.Is(err, domain.ErrReservationNotFound):
			return response.NotFound(c, "Reservation not found")
		case errors.Is(err, domain.ErrInvalidStatus):
			return response.BadRequest(c, "Status must be P, C or X")
		case errors.Is(err, domain.ErrInvalidState):
			return response.BadRequest(c, "Cancelled reservations cannot change status")
		case errors.Is(err, domain.ErrSeatRequired):
			return response.BadRequest(c, "A confirmed reservation requires a seat")
		default:
			return response.InternalServerError(c, "Failed to change reservation status")
		}
	}

	return response.Success(c, "Reservation status changed successfully", fiber.Map{
		"reservation": reservation.ToResponse(),
	})
}
