package handlers

import (
	"errors"
	"strconv"

	"edificio-hub/internal/core/services"
	"edificio-hub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AreaHandler handles common area and reservation endpoints
type AreaHandler struct {
	areaService *services.AreaService
}

// NewAreaHandler creates a new area handler
func NewAreaHandler(areaService *services.AreaService) *AreaHandler {
	return &AreaHandler{areaService: areaService}
}

// CrearArea registers a common area
// @Summary Create common area
// @Tags Areas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateAreaInput true "Area data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /areas [post]
func (h *AreaHandler) CrearArea(c *fiber.Ctx) error {
	var input services.CreateAreaInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Nombre == "" {
		return response.BadRequest(c, "El nombre del área es requerido")
	}

	area, err := h.areaService.CrearArea(c.Context(), &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to create area")
	}

	return response.Created(c, "Área creada", area)
}

// ListAreas returns every common area
// @Summary List common areas
// @Tags Areas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /areas [get]
func (h *AreaHandler) ListAreas(c *fiber.Ctx) error {
	areas, err := h.areaService.ListAreas(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list areas")
	}

	return response.Success(c, "Áreas obtenidas", fiber.Map{
		"areas": areas,
	})
}

// GetArea returns one common area
// @Summary Get area by ID
// @Tags Areas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Area ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /areas/{id} [get]
func (h *AreaHandler) GetArea(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid area ID")
	}

	area, err := h.areaService.GetArea(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrAreaNotFound) {
			return response.NotFound(c, "Área no encontrada")
		}
		return response.InternalServerError(c, "Failed to get area")
	}

	return response.Success(c, "Área obtenida", area)
}

// UpdateArea updates area fields
// @Summary Update common area
// @Tags Areas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Area ID"
// @Param body body services.UpdateAreaInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /areas/{id} [put]
func (h *AreaHandler) UpdateArea(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid area ID")
	}

	var input services.UpdateAreaInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	area, err := h.areaService.UpdateArea(c.Context(), uint(id), &input)
	if err != nil {
		if errors.Is(err, services.ErrAreaNotFound) {
			return response.NotFound(c, "Área no encontrada")
		}
		return response.InternalServerError(c, "Failed to update area")
	}

	return response.Success(c, "Área actualizada", area)
}

// CrearReserva books a common area slot
// @Summary Create reservation
// @Tags Reservas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateReservaInput true "Reservation data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /reservas [post]
func (h *AreaHandler) CrearReserva(c *fiber.Ctx) error {
	var input services.CreateReservaInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.AreaID == 0 || input.ResidenteID == 0 {
		return response.BadRequest(c, "El área y el residente son requeridos")
	}
	if input.Fecha == "" || input.HoraInicio == "" || input.HoraFin == "" {
		return response.BadRequest(c, "La fecha y el horario son requeridos")
	}

	reserva, err := h.areaService.CrearReserva(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAreaNotFound):
			return response.NotFound(c, "Área no encontrada")
		case errors.Is(err, services.ErrAreaInactiva):
			return response.BadRequest(c, "El área no está disponible para reservas")
		case errors.Is(err, services.ErrResidenteNotFound):
			return response.NotFound(c, "Residente no encontrado")
		case errors.Is(err, services.ErrResidenteInactivo):
			return response.BadRequest(c, "El residente está inactivo")
		case errors.Is(err, services.ErrHorarioInvalido):
			return response.BadRequest(c, "Horario inválido")
		case errors.Is(err, services.ErrReservaTraslapada):
			return response.Conflict(c, "El horario se traslapa con otra reserva")
		default:
			return response.InternalServerError(c, "Failed to create reservation")
		}
	}

	return response.Created(c, "Reserva creada", reserva)
}

// GetReserva returns one reservation
// @Summary Get reservation by ID
// @Tags Reservas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reserva ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reservas/{id} [get]
func (h *AreaHandler) GetReserva(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid reserva ID")
	}

	reserva, err := h.areaService.GetReserva(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrReservaNotFound) {
			return response.NotFound(c, "Reserva no encontrada")
		}
		return response.InternalServerError(c, "Failed to get reservation")
	}

	return response.Success(c, "Reserva obtenida", reserva)
}

// ListReservasByResidente lists a residente's reservations
// @Summary List residente reservations
// @Tags Reservas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Residente ID"
// @Success 200 {object} response.Response
// @Router /residentes/{id}/reservas [get]
func (h *AreaHandler) ListReservasByResidente(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid residente ID")
	}

	reservas, err := h.areaService.ListReservasByResidente(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to list reservations")
	}

	return response.Success(c, "Reservas obtenidas", fiber.Map{
		"reservas": reservas,
	})
}

// Confirmar confirms a pending reservation
// @Summary Confirm reservation
// @Tags Reservas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reserva ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /reservas/{id}/confirmar [post]
func (h *AreaHandler) Confirmar(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid reserva ID")
	}

	reserva, err := h.areaService.Confirmar(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReservaNotFound):
			return response.NotFound(c, "Reserva no encontrada")
		case errors.Is(err, services.ErrReservaCerrada):
			return response.Conflict(c, "Solo las reservas pendientes pueden confirmarse")
		default:
			return response.InternalServerError(c, "Failed to confirm reservation")
		}
	}

	return response.Success(c, "Reserva confirmada", reserva)
}

// Cancelar cancels a reservation
// @Summary Cancel reservation
// @Tags Reservas
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reserva ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /reservas/{id}/cancelar [post]
func (h *AreaHandler) Cancelar(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid reserva ID")
	}

	reserva, err := h.areaService.Cancelar(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReservaNotFound):
			return response.NotFound(c, "Reserva no encontrada")
		case errors.Is(err, services.ErrReservaCerrada):
			return response.Conflict(c, "La reserva ya fue cancelada")
		default:
			return response.InternalServerError(c, "Failed to cancel reservation")
		}
	}

	return response.Success(c, "Reserva cancelada", reserva)
}
