package handlers

import (
	"errors"
	"strconv"
	"strings"

	"edificio-hub/internal/core/services"
	"edificio-hub/internal/pkg/pagination"
	"edificio-hub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SolicitudHandler handles rental application endpoints
type SolicitudHandler struct {
	solicitudService *services.SolicitudService
}

// NewSolicitudHandler creates a new solicitud handler
func NewSolicitudHandler(solicitudService *services.SolicitudService) *SolicitudHandler {
	return &SolicitudHandler{solicitudService: solicitudService}
}

// Crear registers a public rental application
// @Summary Create rental application
// @Tags Solicitudes
// @Accept json
// @Produce json
// @Param body body services.CreateSolicitudInput true "Application data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /solicitudes [post]
func (h *SolicitudHandler) Crear(c *fiber.Ctx) error {
	var input services.CreateSolicitudInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input.NombreCompleto = strings.TrimSpace(input.NombreCompleto)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if input.NombreCompleto == "" {
		return response.BadRequest(c, "El nombre completo es requerido")
	}
	if input.Email == "" {
		return response.BadRequest(c, "El correo es requerido")
	}
	if input.DepartamentoID == 0 {
		return response.BadRequest(c, "El departamento es requerido")
	}

	solicitud, err := h.solicitudService.Crear(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDepartamentoNotFound):
			return response.NotFound(c, "Departamento no encontrado")
		case errors.Is(err, services.ErrDepartamentoNoDisponible):
			return response.Conflict(c, "El departamento no está disponible")
		default:
			return response.InternalServerError(c, "Failed to create solicitud")
		}
	}

	return response.Created(c, "Solicitud registrada", solicitud)
}

// List returns paginated solicitudes
// @Summary List rental applications
// @Tags Solicitudes
// @Produce json
// @Security BearerAuth
// @Param estado query string false "pendiente | en_revision | aprobada | rechazada | completada | retirada"
// @Success 200 {object} response.Response
// @Router /solicitudes [get]
func (h *SolicitudHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	estado := c.Query("estado")

	solicitudes, total, err := h.solicitudService.List(c.Context(), estado, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list solicitudes")
	}

	return response.Success(c, "Solicitudes obtenidas", fiber.Map{
		"solicitudes": solicitudes,
		"meta":        pagination.GetMeta(params, total),
	})
}

// GetByID returns one solicitud
// @Summary Get solicitud by ID
// @Tags Solicitudes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Solicitud ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /solicitudes/{id} [get]
func (h *SolicitudHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid solicitud ID")
	}

	solicitud, err := h.solicitudService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrSolicitudNotFound) {
			return response.NotFound(c, "Solicitud no encontrada")
		}
		return response.InternalServerError(c, "Failed to get solicitud")
	}

	return response.Success(c, "Solicitud obtenida", solicitud)
}

// Revisar moves a solicitud through the review state machine
// @Summary Review solicitud
// @Tags Solicitudes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Solicitud ID"
// @Param body body services.RevisarSolicitudInput true "New state and notes"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /solicitudes/{id}/revisar [post]
func (h *SolicitudHandler) Revisar(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid solicitud ID")
	}

	revisorID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.RevisarSolicitudInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Estado == "" {
		return response.BadRequest(c, "El estado es requerido")
	}

	solicitud, err := h.solicitudService.Revisar(c.Context(), uint(id), revisorID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSolicitudNotFound):
			return response.NotFound(c, "Solicitud no encontrada")
		case errors.Is(err, services.ErrTransicionInvalida):
			return response.Conflict(c, "Transición de estado inválida")
		default:
			return response.InternalServerError(c, "Failed to review solicitud")
		}
	}

	return response.Success(c, "Solicitud actualizada", solicitud)
}

// Completar turns an approved solicitud into a usuario and residente with an
// assigned departamento.
// @Summary Complete approved solicitud
// @Tags Solicitudes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Solicitud ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /solicitudes/{id}/completar [post]
func (h *SolicitudHandler) Completar(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid solicitud ID")
	}

	revisorID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	result, err := h.solicitudService.Completar(c.Context(), uint(id), revisorID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSolicitudNotFound):
			return response.NotFound(c, "Solicitud no encontrada")
		case errors.Is(err, services.ErrSolicitudNoCompletable):
			return response.Conflict(c, "Solo las solicitudes aprobadas pueden completarse")
		case errors.Is(err, services.ErrDepartamentoNoDisponible):
			return response.Conflict(c, "El departamento ya no está disponible")
		default:
			return response.InternalServerError(c, "Failed to complete solicitud")
		}
	}

	payload := fiber.Map{
		"solicitud":            result.Solicitud,
		"usuario":              result.Usuario,
		"residente":            result.Residente,
		"usuario_preexistente": result.UsuarioPreexistente,
	}
	// The temporary password is shown once, only for freshly created accounts.
	if result.PasswordTemporal != "" {
		payload["password_temporal"] = result.PasswordTemporal
	}

	return response.Success(c, "Solicitud completada", payload)
}

// Retirar withdraws a solicitud
// @Summary Withdraw solicitud
// @Tags Solicitudes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Solicitud ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /solicitudes/{id}/retirar [post]
func (h *SolicitudHandler) Retirar(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid solicitud ID")
	}

	solicitud, err := h.solicitudService.Retirar(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSolicitudNotFound):
			return response.NotFound(c, "Solicitud no encontrada")
		case errors.Is(err, services.ErrTransicionInvalida):
			return response.Conflict(c, "La solicitud ya fue cerrada")
		default:
			return response.InternalServerError(c, "Failed to withdraw solicitud")
		}
	}

	return response.Success(c, "Solicitud retirada", solicitud)
}
