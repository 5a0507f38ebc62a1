package handlers

import (
	"errors"
	"strconv"

	"edificio-hub/internal/core/services"
	"edificio-hub/internal/pkg/pagination"
	"edificio-hub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PersonalHandler handles building staff endpoints
type PersonalHandler struct {
	personalService *services.PersonalService
}

// NewPersonalHandler creates a new personal handler
func NewPersonalHandler(personalService *services.PersonalService) *PersonalHandler {
	return &PersonalHandler{personalService: personalService}
}

// Crear registers a staff member
// @Summary Create staff member
// @Tags Personal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePersonalInput true "Staff data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /personal [post]
func (h *PersonalHandler) Crear(c *fiber.Ctx) error {
	var input services.CreatePersonalInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Nombre == "" || input.Puesto == "" {
		return response.BadRequest(c, "El nombre y el puesto son requeridos")
	}

	personal, err := h.personalService.Crear(c.Context(), &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to create staff member")
	}

	return response.Created(c, "Personal registrado", personal)
}

// List returns paginated staff members
// @Summary List staff
// @Tags Personal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /personal [get]
func (h *PersonalHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	personal, total, err := h.personalService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list staff")
	}

	return response.Success(c, "Personal obtenido", fiber.Map{
		"personal": personal,
		"meta":     pagination.GetMeta(params, total),
	})
}

// GetByID returns one staff member
// @Summary Get staff member by ID
// @Tags Personal
// @Produce json
// @Security BearerAuth
// @Param id path int true "Personal ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /personal/{id} [get]
func (h *PersonalHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid personal ID")
	}

	personal, err := h.personalService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrPersonalNotFound) {
			return response.NotFound(c, "Personal no encontrado")
		}
		return response.InternalServerError(c, "Failed to get staff member")
	}

	return response.Success(c, "Personal obtenido", personal)
}

// Update updates staff fields
// @Summary Update staff member
// @Tags Personal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Personal ID"
// @Param body body services.UpdatePersonalInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /personal/{id} [put]
func (h *PersonalHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid personal ID")
	}

	var input services.UpdatePersonalInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	personal, err := h.personalService.Update(c.Context(), uint(id), &input)
	if err != nil {
		if errors.Is(err, services.ErrPersonalNotFound) {
			return response.NotFound(c, "Personal no encontrado")
		}
		return response.InternalServerError(c, "Failed to update staff member")
	}

	return response.Success(c, "Personal actualizado", personal)
}

// Delete removes a staff member
// @Summary Delete staff member
// @Tags Personal
// @Produce json
// @Security BearerAuth
// @Param id path int true "Personal ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /personal/{id} [delete]
func (h *PersonalHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid personal ID")
	}

	if err := h.personalService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrPersonalNotFound) {
			return response.NotFound(c, "Personal no encontrado")
		}
		return response.InternalServerError(c, "Failed to delete staff member")
	}

	return response.Success(c, "Personal eliminado", nil)
}
