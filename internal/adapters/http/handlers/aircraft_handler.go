package handlers

import (
	"errors"
	"strconv"
	"time"

	"aerodesk/internal/adapters/http/middleware"
	"aerodesk/internal/core/domain"
	"aerodesk/internal/core/services"
	"aerodesk/internal/pkg/pagination"
	"aerodesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AircraftHandler handles aircraft catalogue endpoints
type AircraftHandler struct {
	aircraftService *services.AircraftService
}

// NewAircraftHandler creates a new aircraft handler
func NewAircraftHandler(aircraftService *services.AircraftService) *AircraftHandler {
	return &AircraftHandler{
		aircraftService: aircraftService,
	}
}

// CreateAircraftRequest represents aircraft creation request body
type CreateAircraftRequest struct {
	Model           string `json:"model"`
	Registration    string `json:"registration"`
	Rows            int    `json:"rows"`
	Columns         int    `json:"columns"`
	ManufactureDate string `json:"manufacture_date"`
	LastMaintenance string `json:"last_maintenance"`
}

// UpdateAircraftRequest represents aircraft update request body
type UpdateAircraftRequest struct {
	Model           *string `json:"model"`
	LastMaintenance *string `json:"last_maintenance"`
}

// CreateAircraft handles aircraft creation (Admin only)
// @Summary Create aircraft
// @Description Register a new aircraft with its seat grid (Admin only)
// @Tags Aircraft
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateAircraftRequest true "Aircraft data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /aircraft [post]
func (h *AircraftHandler) CreateAircraft(c *fiber.Ctx) error {
	var req CreateAircraftRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Model == "" || req.Registration == "" {
		return response.BadRequest(c, "Model and registration are required")
	}
	if req.Rows < 1 || req.Columns < 1 {
		return response.BadRequest(c, "Rows and columns must be positive")
	}
	if req.Columns > 26 {
		return response.BadRequest(c, "Columns cannot exceed 26")
	}

	input := &services.CreateAircraftInput{
		Model:        req.Model,
		Registration: req.Registration,
		Rows:         req.Rows,
		Columns:      req.Columns,
	}
	if req.ManufactureDate != "" {
		d, err := time.Parse("2006-01-02", req.ManufactureDate)
		if err != nil {
			return response.BadRequest(c, "Manufacture date must be YYYY-MM-DD")
		}
		input.ManufactureDate = d
	}
	if req.LastMaintenance != "" {
		d, err := time.Parse("2006-01-02", req.LastMaintenance)
		if err != nil {
			return response.BadRequest(c, "Last maintenance must be YYYY-MM-DD")
		}
		input.LastMaintenance = &d
	}

	aircraft, err := h.aircraftService.Create(c.Context(), middleware.PrincipalFromCtx(c), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Admin role required")
		case errors.Is(err, domain.ErrConflict):
			return response.Conflict(c, "Registration already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid aircraft data")
		default:
			return response.InternalServerError(c, "Failed to create aircraft")
		}
	}

	return response.Created(c, "Aircraft created successfully", fiber.Map{
		"aircraft": aircraft,
	})
}

// ListAircraft handles listing aircraft
// @Summary List aircraft
// @Description Get all registered aircraft
// @Tags Aircraft
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /aircraft [get]
func (h *AircraftHandler) ListAircraft(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	aircraft, total, err := h.aircraftService.List(c.Context(), page, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list aircraft")
	}

	return response.Success(c, "Aircraft retrieved successfully", fiber.Map{
		"aircraft":   aircraft,
		"pagination": pagination.NewPagination(page, limit, total),
	})
}

// GetAircraft handles getting an aircraft by ID
// @Summary Get aircraft by ID
// @Description Get a specific aircraft
// @Tags Aircraft
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Aircraft ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /aircraft/{id} [get]
func (h *AircraftHandler) GetAircraft(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid aircraft ID")
	}

	aircraft, err := h.aircraftService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrAircraftNotFound) {
			return response.NotFound(c, "Aircraft not found")
		}
		return response.InternalServerError(c, "Failed to get aircraft")
	}

	return response.Success(c, "Aircraft retrieved successfully", fiber.Map{
		"aircraft": aircraft,
	})
}

// UpdateAircraft handles updating an aircraft (Admin only)
// @Summary Update aircraft
// @Description Update an aircraft's model or maintenance date (Admin only)
// @Tags Aircraft
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Aircraft ID"
// @Param body body UpdateAircraftRequest true "Update data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /aircraft/{id} [put]
func (h *AircraftHandler) UpdateAircraft(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid aircraft ID")
	}

	var req UpdateAircraftRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateAircraftInput{
		Model: req.Model,
	}
	if req.LastMaintenance != nil {
		d, err := time.Parse("2006-01-02", *req.LastMaintenance)
		if err != nil {
			return response.BadRequest(c, "Last maintenance must be YYYY-MM-DD")
		}
		input.LastMaintenance = &d
	}

	aircraft, err := h.aircraftService.Update(c.Context(), middleware.PrincipalFromCtx(c), uint(id), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Admin role required")
		case errors.Is(err, domain.ErrAircraftNotFound):
			return response.NotFound(c, "Aircraft not found")
		default:
			return response.InternalServerError(c, "Failed to update aircraft")
		}
	}

	return response.Success(c, "Aircraft updated successfully", fiber.Map{
		"aircraft": aircraft,
	})
}

// DeleteAircraft handles deleting an aircraft (Admin only)
// @Summary Delete aircraft
// @Description Delete an aircraft with no flights (Admin only)
// @Tags Aircraft
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Aircraft ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /aircraft/{id} [delete]
func (h *AircraftHandler) DeleteAircraft(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid aircraft ID")
	}

	if err := h.aircraftService.Delete(c.Context(), middleware.PrincipalFromCtx(c), uint(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Admin role required")
		case errors.Is(err, domain.ErrAircraftNotFound):
			return response.NotFound(c, "Aircraft not found")
		case errors.Is(err, domain.ErrAircraftInUse):
			return response.BadRequest(c, "Aircraft still has flights")
		default:
			return response.InternalServerError(c, "Failed to delete aircraft")
		}
	}

	return response.Success(c, "Aircraft deleted successfully", nil)
}
