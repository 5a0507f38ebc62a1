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

// MantenimientoHandler handles maintenance request endpoints
type MantenimientoHandler struct {
	mantenimientoService *services.MantenimientoService
}

// NewMantenimientoHandler creates a new mantenimiento handler
func NewMantenimientoHandler(mantenimientoService *services.MantenimientoService) *MantenimientoHandler {
	return &MantenimientoHandler{mantenimientoService: mantenimientoService}
}

// AsignarPersonalRequest represents the body for assigning staff
type AsignarPersonalRequest struct {
	PersonalID uint `json:"personal_id"`
}

// CambiarEstadoRequest represents a state change request
type CambiarEstadoRequest struct {
	Estado string `json:"estado"`
}

// Crear registers a maintenance request
// @Summary Create maintenance request
// @Tags Mantenimiento
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateMantenimientoInput true "Request data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /mantenimiento [post]
func (h *MantenimientoHandler) Crear(c *fiber.Ctx) error {
	var input services.CreateMantenimientoInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Titulo == "" {
		return response.BadRequest(c, "El título es requerido")
	}

	solicitud, err := h.mantenimientoService.Crear(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPrioridadInvalida):
			return response.BadRequest(c, "Prioridad inválida")
		case errors.Is(err, services.ErrDepartamentoNotFound):
			return response.NotFound(c, "Departamento no encontrado")
		case errors.Is(err, services.ErrResidenteNotFound):
			return response.NotFound(c, "Residente no encontrado")
		default:
			return response.InternalServerError(c, "Failed to create maintenance request")
		}
	}

	return response.Created(c, "Solicitud de mantenimiento creada", solicitud)
}

// List returns paginated maintenance requests
// @Summary List maintenance requests
// @Tags Mantenimiento
// @Produce json
// @Security BearerAuth
// @Param estado query string false "abierta | en_proceso | resuelta | cancelada"
// @Param departamento_id query int false "Filter by departamento"
// @Success 200 {object} response.Response
// @Router /mantenimiento [get]
func (h *MantenimientoHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := &repositories.MantenimientoFilter{
		Estado: c.Query("estado"),
	}
	if v := c.Query("departamento_id"); v != "" {
		if deptoID, err := strconv.ParseUint(v, 10, 32); err == nil {
			id := uint(deptoID)
			filter.DepartamentoID = &id
		}
	}

	solicitudes, total, err := h.mantenimientoService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list maintenance requests")
	}

	return response.Success(c, "Solicitudes de mantenimiento obtenidas", fiber.Map{
		"solicitudes": solicitudes,
		"meta":        pagination.GetMeta(params, total),
	})
}

// GetByID returns one maintenance request
// @Summary Get maintenance request by ID
// @Tags Mantenimiento
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /mantenimiento/{id} [get]
func (h *MantenimientoHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	solicitud, err := h.mantenimientoService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrMantenimientoNotFound) {
			return response.NotFound(c, "Solicitud de mantenimiento no encontrada")
		}
		return response.InternalServerError(c, "Failed to get maintenance request")
	}

	return response.Success(c, "Solicitud de mantenimiento obtenida", solicitud)
}

// Asignar assigns a staff member to the request
// @Summary Assign staff to maintenance request
// @Tags Mantenimiento
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param body body AsignarPersonalRequest true "Staff to assign"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /mantenimiento/{id}/asignar [post]
func (h *MantenimientoHandler) Asignar(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	var req AsignarPersonalRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.PersonalID == 0 {
		return response.BadRequest(c, "El personal es requerido")
	}

	solicitud, err := h.mantenimientoService.Asignar(c.Context(), uint(id), req.PersonalID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMantenimientoNotFound):
			return response.NotFound(c, "Solicitud de mantenimiento no encontrada")
		case errors.Is(err, services.ErrPersonalNotFound):
			return response.NotFound(c, "Personal no encontrado")
		case errors.Is(err, services.ErrMantenimientoCerrada):
			return response.Conflict(c, "La solicitud ya fue cerrada")
		default:
			return response.InternalServerError(c, "Failed to assign staff")
		}
	}

	return response.Success(c, "Personal asignado", solicitud)
}

// CambiarEstado moves the request through its state machine
// @Summary Change maintenance request state
// @Tags Mantenimiento
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param body body CambiarEstadoRequest true "New state"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /mantenimiento/{id}/estado [put]
func (h *MantenimientoHandler) CambiarEstado(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	var req CambiarEstadoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Estado == "" {
		return response.BadRequest(c, "El estado es requerido")
	}

	solicitud, err := h.mantenimientoService.CambiarEstado(c.Context(), uint(id), req.Estado)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMantenimientoNotFound):
			return response.NotFound(c, "Solicitud de mantenimiento no encontrada")
		case errors.Is(err, services.ErrTransicionInvalida):
			return response.Conflict(c, "Transición de estado inválida")
		default:
			return response.InternalServerError(c, "Failed to change state")
		}
	}

	return response.Success(c, "Estado actualizado", solicitud)
}
