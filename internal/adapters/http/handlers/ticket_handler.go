package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"aerodesk/internal/adapters/http/middleware"
	"aerodesk/internal/core/domain"
	"aerodesk/internal/core/services"
	"aerodesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TicketHandler handles ticket issuance and gate operation endpoints
type TicketHandler struct {
	ticketService *services.TicketService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
	}
}

// IssueTicket handles ticket issuance
// @Summary Issue ticket
// @Description Issue the ticket for a confirmed reservation. Idempotent: re-issuing returns the existing ticket with status 200.
// @Tags Tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.IssueTicketInput true "Reservation to ticket"
// @Success 200 {object} response.Response
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tickets/generar [post]
func (h *TicketHandler) IssueTicket(c *fiber.Ctx) error {
	var input services.IssueTicketInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.ReservationID == 0 {
		return response.BadRequest(c, "Reservation ID is required")
	}

	result, err := h.ticketService.Issue(c.Context(), middleware.PrincipalFromCtx(c), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReservationNotFound):
			return response.NotFound(c, "Reservation not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only ticket your own reservations")
		case errors.Is(err, domain.ErrTicketNotConfirmed):
			return response.BadRequest(c, "Reservation is not confirmed")
		case errors.Is(err, domain.ErrTicketCodeExhausted):
			return response.InternalServerError(c, "Could not generate a unique ticket code")
		default:
			return response.InternalServerError(c, "Failed to issue ticket")
		}
	}

	if result.Created {
		return response.Created(c, "Ticket issued successfully", fiber.Map{
			"ticket": result.Ticket.ToResponse(),
		})
	}

	return response.Success(c, "Ticket already issued", fiber.Map{
		"ticket": result.Ticket.ToResponse(),
	})
}

// GetTicket handles getting a ticket by ID
// @Summary Get ticket by ID
// @Description Get a ticket; passengers may only read their own
// @Tags Tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid ticket ID")
	}

	ticket, err := h.ticketService.GetByID(c.Context(), middleware.PrincipalFromCtx(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTicketNotFound):
			return response.NotFound(c, "Ticket not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only access your own tickets")
		default:
			return response.InternalServerError(c, "Failed to get ticket")
		}
	}

	return response.Success(c, "Ticket retrieved successfully", fiber.Map{
		"ticket": ticket.ToResponse(),
	})
}

// CheckInTicket handles gate check-in (Admin only)
// @Summary Check in ticket
// @Description Mark a ticket used at the gate, optionally recording the boarding gate (Admin only)
// @Tags Tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Param body body services.CheckInInput false "Boarding gate"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tickets/{id}/checkin [post]
func (h *TicketHandler) CheckInTicket(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid ticket ID")
	}

	var input services.CheckInInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	ticket, err := h.ticketService.CheckIn(c.Context(), middleware.PrincipalFromCtx(c), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Admin role required")
		case errors.Is(err, domain.ErrTicketNotFound):
			return response.NotFound(c, "Ticket not found")
		case errors.Is(err, domain.ErrTicketNotActive):
			return response.BadRequest(c, "Ticket already used or void")
		default:
			return response.InternalServerError(c, "Failed to check in ticket")
		}
	}

	return response.Success(c, "Ticket checked in successfully", fiber.Map{
		"ticket": ticket.ToResponse(),
	})
}

// VoidTicket handles voiding a ticket (Admin only)
// @Summary Void ticket
// @Description Void an active ticket. Idempotent on an already-void ticket (Admin only)
// @Tags Tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tickets/{id}/anular [post]
func (h *TicketHandler) VoidTicket(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid ticket ID")
	}

	ticket, err := h.ticketService.Void(c.Context(), middleware.PrincipalFromCtx(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Admin role required")
		case errors.Is(err, domain.ErrTicketNotFound):
			return response.NotFound(c, "Ticket not found")
		case errors.Is(err, domain.ErrTicketNotActive):
			return response.BadRequest(c, "Used tickets cannot be voided")
		default:
			return response.InternalServerError(c, "Failed to void ticket")
		}
	}

	return response.Success(c, "Ticket voided successfully", fiber.Map{
		"ticket": ticket.ToResponse(),
	})
}

// DownloadBoardingPass handles the boarding pass PDF download
// @Summary Download boarding pass
// @Description Render the ticket as a PDF boarding pass
// @Tags Tickets
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Success 200 {file} binary
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tickets/{id}/pdf [get]
func (h *TicketHandler) DownloadBoardingPass(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid ticket ID")
	}

	content, filename, err := h.ticketService.BoardingPass(c.Context(), middleware.PrincipalFromCtx(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTicketNotFound):
			return response.NotFound(c, "Ticket not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only access your own tickets")
		default:
			return response.InternalServerError(c, "Failed to build boarding pass")
		}
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(content)
}
