package handlers

import (
	"errors"
	"strconv"

	"aerodesk/internal/adapters/http/middleware"
	"aerodesk/internal/core/domain"
	"aerodesk/internal/core/services"
	"aerodesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles the admin back-office reports
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// FlightPassengers handles the flight manifest report
// @Summary Flight passenger manifest
// @Description List passengers holding active reservations on a flight (Admin only)
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Flight ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reports/flights/{id}/passengers [get]
func (h *ReportHandler) FlightPassengers(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid flight ID")
	}

	report, err := h.reportService.PassengersByFlight(c.Context(), middleware.PrincipalFromCtx(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Admin role required")
		case errors.Is(err, domain.ErrFlightNotFound):
			return response.NotFound(c, "Flight not found")
		default:
			return response.InternalServerError(c, "Failed to build report")
		}
	}

	return response.Success(c, "Report retrieved successfully", report)
}

// PassengerReservations handles the per-passenger reservation report
// @Summary Passenger reservations report
// @Description List a passenger's active reservations (Admin only)
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Passenger user ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reports/passengers/{id}/reservations [get]
func (h *ReportHandler) PassengerReservations(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid passenger ID")
	}

	report, err := h.reportService.ReservationsByPassenger(c.Context(), middleware.PrincipalFromCtx(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Admin role required")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "Passenger not found")
		default:
			return response.InternalServerError(c, "Failed to build report")
		}
	}

	return response.Success(c, "Report retrieved successfully", report)
}
