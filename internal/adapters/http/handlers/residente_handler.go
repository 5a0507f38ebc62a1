package handlers

import (
	"errors"
	"strconv"

	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/core/services"
	"edificio-hub/internal/pkg/pagination"
	"edificio-hub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ResidenteHandler handles residente endpoints
type ResidenteHandler struct {
	residenteService *services.ResidenteService
}

// NewResidenteHandler creates a new residente handler
func NewResidenteHandler(residenteService *services.ResidenteService) *ResidenteHandler {
	return &ResidenteHandler{residenteService: residenteService}
}

// Create registers a residente for an existing usuario
// @Summary Create residente
// @Tags Residentes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateResidenteInput true "Residente data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /residentes [post]
func (h *ResidenteHandler) Create(c *fiber.Ctx) error {
	var input services.CreateResidenteInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.UsuarioID == 0 {
		return response.BadRequest(c, "El usuario es requerido")
	}
	if input.TipoRelacion == "" {
		return response.BadRequest(c, "El tipo de relación es requerido")
	}

	residente, err := h.residenteService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTipoRelacionInvalido):
			return response.BadRequest(c, "Tipo de relación inválido")
		case errors.Is(err, services.ErrUsuarioNotFound):
			return response.NotFound(c, "Usuario no encontrado")
		case errors.Is(err, services.ErrDepartamentoNotFound):
			return response.NotFound(c, "Departamento no encontrado")
		case errors.Is(err, services.ErrDepartamentoNoDisponible):
			return response.Conflict(c, "El departamento no está disponible")
		default:
			return response.InternalServerError(c, "Failed to create residente")
		}
	}

	return response.Created(c, "Residente creado", residente)
}

// List returns paginated residentes
// @Summary List residentes
// @Tags Residentes
// @Produce json
// @Security BearerAuth
// @Param activo query bool false "Filter by active state"
// @Param departamento_id query int false "Filter by departamento"
// @Success 200 {object} response.Response
// @Router /residentes [get]
func (h *ResidenteHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := &repositories.ResidenteFilter{}
	if v := c.Query("activo"); v != "" {
		activo := v == "true"
		filter.Activo = &activo
	}
	if v := c.Query("departamento_id"); v != "" {
		if deptoID, err := strconv.ParseUint(v, 10, 32); err == nil {
			id := uint(deptoID)
			filter.DepartamentoID = &id
		}
	}

	residentes, total, err := h.residenteService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list residentes")
	}

	return response.Success(c, "Residentes obtenidos", fiber.Map{
		"residentes": residentes,
		"meta":       pagination.GetMeta(params, total),
	})
}

// GetByID returns one residente
// @Summary Get residente by ID
// @Tags Residentes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Residente ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /residentes/{id} [get]
func (h *ResidenteHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid residente ID")
	}

	residente, err := h.residenteService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrResidenteNotFound) {
			return response.NotFound(c, "Residente no encontrado")
		}
		return response.InternalServerError(c, "Failed to get residente")
	}

	return response.Success(c, "Residente obtenido", residente)
}

// Me returns the residente profile of the authenticated usuario
// @Summary Get own residente profile
// @Tags Residentes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /residentes/me [get]
func (h *ResidenteHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	residente, err := h.residenteService.GetByUsuarioID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrResidenteNotFound) {
			return response.NotFound(c, "No existe un perfil de residente para esta cuenta")
		}
		return response.InternalServerError(c, "Failed to get residente")
	}

	return response.Success(c, "Residente obtenido", residente.ToResponse())
}

// Update updates residente fields
// @Summary Update residente
// @Tags Residentes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Residente ID"
// @Param body body services.UpdateResidenteInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /residentes/{id} [put]
func (h *ResidenteHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid residente ID")
	}

	var input services.UpdateResidenteInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	residente, err := h.residenteService.Update(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrResidenteNotFound):
			return response.NotFound(c, "Residente no encontrado")
		case errors.Is(err, services.ErrTipoRelacionInvalido):
			return response.BadRequest(c, "Tipo de relación inválido")
		default:
			return response.InternalServerError(c, "Failed to update residente")
		}
	}

	return response.Success(c, "Residente actualizado", residente)
}

// Desactivar deactivates a residente and frees the departamento when empty
// @Summary Deactivate residente
// @Tags Residentes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Residente ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /residentes/{id} [delete]
func (h *ResidenteHandler) Desactivar(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid residente ID")
	}

	if err := h.residenteService.Desactivar(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrResidenteNotFound) {
			return response.NotFound(c, "Residente no encontrado")
		}
		return response.InternalServerError(c, "Failed to deactivate residente")
	}

	return response.Success(c, "Residente desactivado", nil)
}
