package handlers

import (
	"errors"
	"strconv"

	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/core/domain"
	"edificio-hub/internal/core/services"
	"edificio-hub/internal/pkg/pagination"
	"edificio-hub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SeguridadHandler handles security devices, IoT sensors and incidents
type SeguridadHandler struct {
	seguridadService *services.SeguridadService
}

// NewSeguridadHandler creates a new seguridad handler
func NewSeguridadHandler(seguridadService *services.SeguridadService) *SeguridadHandler {
	return &SeguridadHandler{seguridadService: seguridadService}
}

// CrearDispositivo registers a security device
// @Summary Create security device
// @Tags Seguridad
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateDispositivoInput true "Device data"
// @Success 201 {object} response.Response
// @Router /seguridad/dispositivos [post]
func (h *SeguridadHandler) CrearDispositivo(c *fiber.Ctx) error {
	var input services.CreateDispositivoInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Tipo == "" || input.Ubicacion == "" {
		return response.BadRequest(c, "El tipo y la ubicación son requeridos")
	}

	dispositivo, err := h.seguridadService.CrearDispositivo(c.Context(), &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to create device")
	}

	return response.Created(c, "Dispositivo registrado", dispositivo)
}

// ListDispositivos lists security devices
// @Summary List security devices
// @Tags Seguridad
// @Produce json
// @Security BearerAuth
// @Param estado query string false "activo | inactivo | falla"
// @Success 200 {object} response.Response
// @Router /seguridad/dispositivos [get]
func (h *SeguridadHandler) ListDispositivos(c *fiber.Ctx) error {
	dispositivos, err := h.seguridadService.ListDispositivos(c.Context(), c.Query("estado"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list devices")
	}

	return response.Success(c, "Dispositivos obtenidos", fiber.Map{
		"dispositivos": dispositivos,
	})
}

// UpdateDispositivo updates device fields
// @Summary Update security device
// @Tags Seguridad
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dispositivo ID"
// @Param body body services.UpdateDispositivoInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /seguridad/dispositivos/{id} [put]
func (h *SeguridadHandler) UpdateDispositivo(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid dispositivo ID")
	}

	var input services.UpdateDispositivoInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	dispositivo, err := h.seguridadService.UpdateDispositivo(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDispositivoNotFound):
			return response.NotFound(c, "Dispositivo no encontrado")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Estado de dispositivo inválido")
		default:
			return response.InternalServerError(c, "Failed to update device")
		}
	}

	return response.Success(c, "Dispositivo actualizado", dispositivo)
}

// CrearSensor registers an IoT sensor
// @Summary Create IoT sensor
// @Tags Seguridad
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateSensorInput true "Sensor data"
// @Success 201 {object} response.Response
// @Router /seguridad/sensores [post]
func (h *SeguridadHandler) CrearSensor(c *fiber.Ctx) error {
	var input services.CreateSensorInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Tipo == "" || input.Ubicacion == "" {
		return response.BadRequest(c, "El tipo y la ubicación son requeridos")
	}

	sensor, err := h.seguridadService.CrearSensor(c.Context(), &input)
	if err != nil {
		if errors.Is(err, services.ErrDispositivoNotFound) {
			return response.NotFound(c, "Dispositivo no encontrado")
		}
		return response.InternalServerError(c, "Failed to create sensor")
	}

	return response.Created(c, "Sensor registrado", sensor)
}

// ListSensores lists IoT sensors
// @Summary List IoT sensors
// @Tags Seguridad
// @Produce json
// @Security BearerAuth
// @Param activos query bool false "Only active sensors"
// @Success 200 {object} response.Response
// @Router /seguridad/sensores [get]
func (h *SeguridadHandler) ListSensores(c *fiber.Ctx) error {
	soloActivos := c.Query("activos") == "true"

	sensores, err := h.seguridadService.ListSensores(c.Context(), soloActivos)
	if err != nil {
		return response.InternalServerError(c, "Failed to list sensors")
	}

	return response.Success(c, "Sensores obtenidos", fiber.Map{
		"sensores": sensores,
	})
}

// RegistrarLectura submits a sensor reading
// @Summary Record sensor reading
// @Tags Seguridad
// @Accept json
// @Produce json
// @Param id path int true "Sensor ID"
// @Param body body services.LecturaInput true "Reading"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /seguridad/sensores/{id}/lectura [post]
func (h *SeguridadHandler) RegistrarLectura(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid sensor ID")
	}

	var input services.LecturaInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	sensor, err := h.seguridadService.RegistrarLectura(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSensorNotFound):
			return response.NotFound(c, "Sensor no encontrado")
		case errors.Is(err, services.ErrSensorInactivo):
			return response.BadRequest(c, "El sensor está inactivo")
		default:
			return response.InternalServerError(c, "Failed to record reading")
		}
	}

	return response.Success(c, "Lectura registrada", sensor)
}

// Reportar registers an incident
// @Summary Report incident
// @Tags Seguridad
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateIncidenteInput true "Incident data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /seguridad/incidentes [post]
func (h *SeguridadHandler) Reportar(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateIncidenteInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Tipo == "" {
		return response.BadRequest(c, "El tipo de incidente es requerido")
	}

	incidente, err := h.seguridadService.Reportar(c.Context(), userID, &input)
	if err != nil {
		if errors.Is(err, services.ErrSeveridadInvalida) {
			return response.BadRequest(c, "Severidad inválida")
		}
		return response.InternalServerError(c, "Failed to report incident")
	}

	return response.Created(c, "Incidente reportado", incidente)
}

// ListIncidentes lists incidents
// @Summary List incidents
// @Tags Seguridad
// @Produce json
// @Security BearerAuth
// @Param estado query string false "reportado | en_atencion | resuelto"
// @Param severidad query string false "baja | media | alta | critica"
// @Success 200 {object} response.Response
// @Router /seguridad/incidentes [get]
func (h *SeguridadHandler) ListIncidentes(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := &repositories.IncidenteFilter{
		Estado:    c.Query("estado"),
		Severidad: c.Query("severidad"),
	}

	incidentes, total, err := h.seguridadService.ListIncidentes(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list incidents")
	}

	return response.Success(c, "Incidentes obtenidos", fiber.Map{
		"incidentes": incidentes,
		"meta":       pagination.GetMeta(params, total),
	})
}

// GetIncidente returns one incident
// @Summary Get incident by ID
// @Tags Seguridad
// @Produce json
// @Security BearerAuth
// @Param id path int true "Incidente ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /seguridad/incidentes/{id} [get]
func (h *SeguridadHandler) GetIncidente(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid incidente ID")
	}

	incidente, err := h.seguridadService.GetIncidente(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrIncidenteNotFound) {
			return response.NotFound(c, "Incidente no encontrado")
		}
		return response.InternalServerError(c, "Failed to get incident")
	}

	return response.Success(c, "Incidente obtenido", incidente)
}

// Atender assigns staff and moves the incident to en_atencion
// @Summary Attend incident
// @Tags Seguridad
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Incidente ID"
// @Param body body AsignarPersonalRequest true "Staff attending"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /seguridad/incidentes/{id}/atender [post]
func (h *SeguridadHandler) Atender(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid incidente ID")
	}

	var req AsignarPersonalRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.PersonalID == 0 {
		return response.BadRequest(c, "El personal es requerido")
	}

	incidente, err := h.seguridadService.Atender(c.Context(), uint(id), req.PersonalID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIncidenteNotFound):
			return response.NotFound(c, "Incidente no encontrado")
		case errors.Is(err, services.ErrPersonalNotFound):
			return response.NotFound(c, "Personal no encontrado")
		case errors.Is(err, services.ErrTransicionInvalida):
			return response.Conflict(c, "El incidente ya fue resuelto")
		default:
			return response.InternalServerError(c, "Failed to attend incident")
		}
	}

	return response.Success(c, "Incidente en atención", incidente)
}

// Resolver closes an incident
// @Summary Resolve incident
// @Tags Seguridad
// @Produce json
// @Security BearerAuth
// @Param id path int true "Incidente ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /seguridad/incidentes/{id}/resolver [post]
func (h *SeguridadHandler) Resolver(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid incidente ID")
	}

	incidente, err := h.seguridadService.Resolver(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIncidenteNotFound):
			return response.NotFound(c, "Incidente no encontrado")
		case errors.Is(err, services.ErrTransicionInvalida):
			return response.Conflict(c, "El incidente ya fue resuelto")
		default:
			return response.InternalServerError(c, "Failed to resolve incident")
		}
	}

	return response.Success(c, "Incidente resuelto", incidente)
}
