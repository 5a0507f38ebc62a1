package handlers

import (
	"errors"
	"strconv"

	"edificio-hub/internal/core/services"
	"edificio-hub/internal/pkg/pagination"
	"edificio-hub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DepartamentoHandler handles departamento endpoints
type DepartamentoHandler struct {
	departamentoService *services.DepartamentoService
}

// NewDepartamentoHandler creates a new departamento handler
func NewDepartamentoHandler(departamentoService *services.DepartamentoService) *DepartamentoHandler {
	return &DepartamentoHandler{departamentoService: departamentoService}
}

// AsignarRequest represents the body for assigning a residente to a unit
type AsignarRequest struct {
	ResidenteID uint `json:"residente_id"`
}

// Create creates a departamento
// @Summary Create departamento
// @Tags Departamentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateDepartamentoInput true "Departamento data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /departamentos [post]
func (h *DepartamentoHandler) Create(c *fiber.Ctx) error {
	var input services.CreateDepartamentoInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Numero == "" {
		return response.BadRequest(c, "El número de departamento es requerido")
	}

	departamento, err := h.departamentoService.Create(c.Context(), &input)
	if err != nil {
		if errors.Is(err, services.ErrDepartamentoDuplicado) {
			return response.Conflict(c, "Ya existe un departamento con ese número")
		}
		return response.InternalServerError(c, "Failed to create departamento")
	}

	return response.Created(c, "Departamento creado", departamento)
}

// List returns paginated departamentos, optionally filtered by estado
// @Summary List departamentos
// @Tags Departamentos
// @Produce json
// @Security BearerAuth
// @Param estado query string false "disponible | ocupado | mantenimiento | no_disponible"
// @Success 200 {object} response.Response
// @Router /departamentos [get]
func (h *DepartamentoHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	estado := c.Query("estado")

	departamentos, total, err := h.departamentoService.List(c.Context(), estado, params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, services.ErrEstadoDepartamentoInvalido) {
			return response.BadRequest(c, "Estado de departamento inválido")
		}
		return response.InternalServerError(c, "Failed to list departamentos")
	}

	return response.Success(c, "Departamentos obtenidos", fiber.Map{
		"departamentos": departamentos,
		"meta":          pagination.GetMeta(params, total),
	})
}

// GetByID returns one departamento with its residentes
// @Summary Get departamento by ID
// @Tags Departamentos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Departamento ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /departamentos/{id} [get]
func (h *DepartamentoHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid departamento ID")
	}

	departamento, err := h.departamentoService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrDepartamentoNotFound) {
			return response.NotFound(c, "Departamento no encontrado")
		}
		return response.InternalServerError(c, "Failed to get departamento")
	}

	return response.Success(c, "Departamento obtenido", departamento)
}

// Update updates departamento fields
// @Summary Update departamento
// @Tags Departamentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Departamento ID"
// @Param body body services.UpdateDepartamentoInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /departamentos/{id} [put]
func (h *DepartamentoHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid departamento ID")
	}

	var input services.UpdateDepartamentoInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	departamento, err := h.departamentoService.Update(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDepartamentoNotFound):
			return response.NotFound(c, "Departamento no encontrado")
		case errors.Is(err, services.ErrEstadoDepartamentoInvalido):
			return response.BadRequest(c, "Estado de departamento inválido")
		default:
			return response.InternalServerError(c, "Failed to update departamento")
		}
	}

	return response.Success(c, "Departamento actualizado", departamento)
}

// Delete removes a departamento without active residentes
// @Summary Delete departamento
// @Tags Departamentos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Departamento ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /departamentos/{id} [delete]
func (h *DepartamentoHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid departamento ID")
	}

	if err := h.departamentoService.Delete(c.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrDepartamentoNotFound):
			return response.NotFound(c, "Departamento no encontrado")
		case errors.Is(err, services.ErrDepartamentoNoDisponible):
			return response.Conflict(c, "El departamento tiene residentes activos")
		default:
			return response.InternalServerError(c, "Failed to delete departamento")
		}
	}

	return response.Success(c, "Departamento eliminado", nil)
}

// Asignar assigns a residente to the departamento
// @Summary Assign residente to departamento
// @Tags Departamentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Departamento ID"
// @Param body body AsignarRequest true "Residente to assign"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /departamentos/{id}/asignar [post]
func (h *DepartamentoHandler) Asignar(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid departamento ID")
	}

	var req AsignarRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ResidenteID == 0 {
		return response.BadRequest(c, "El residente es requerido")
	}

	residente, err := h.departamentoService.AsignarResidente(c.Context(), uint(id), req.ResidenteID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDepartamentoNotFound):
			return response.NotFound(c, "Departamento no encontrado")
		case errors.Is(err, services.ErrResidenteNotFound):
			return response.NotFound(c, "Residente no encontrado")
		case errors.Is(err, services.ErrResidenteInactivo):
			return response.BadRequest(c, "El residente está inactivo")
		case errors.Is(err, services.ErrDepartamentoNoDisponible):
			return response.Conflict(c, "El departamento no está disponible")
		default:
			return response.InternalServerError(c, "Failed to assign residente")
		}
	}

	return response.Success(c, "Residente asignado", residente.ToResponse())
}

// Liberar releases the departamento and closes its active residencias
// @Summary Release departamento
// @Tags Departamentos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Departamento ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /departamentos/{id}/liberar [post]
func (h *DepartamentoHandler) Liberar(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid departamento ID")
	}

	if err := h.departamentoService.Liberar(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrDepartamentoNotFound) {
			return response.NotFound(c, "Departamento no encontrado")
		}
		return response.InternalServerError(c, "Failed to release departamento")
	}

	return response.Success(c, "Departamento liberado", nil)
}

// Sincronizar re-derives occupancy state for every departamento
// @Summary Synchronize departamento states
// @Tags Departamentos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /departamentos/sincronizar [post]
func (h *DepartamentoHandler) Sincronizar(c *fiber.Ctx) error {
	corregidos, err := h.departamentoService.SincronizarEstados(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to synchronize departamentos")
	}

	return response.Success(c, "Estados sincronizados", fiber.Map{
		"corregidos": corregidos,
	})
}
