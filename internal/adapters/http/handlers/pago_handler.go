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

// PagoHandler handles pago endpoints
type PagoHandler struct {
	pagoService *services.PagoService
}

// NewPagoHandler creates a new pago handler
func NewPagoHandler(pagoService *services.PagoService) *PagoHandler {
	return &PagoHandler{pagoService: pagoService}
}

// Crear creates a pago in estado pendiente
// @Summary Create pago
// @Tags Pagos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePagoInput true "Pago data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /pagos [post]
func (h *PagoHandler) Crear(c *fiber.Ctx) error {
	var input services.CreatePagoInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.ResidenteID == 0 {
		return response.BadRequest(c, "El residente es requerido")
	}
	if input.FechaVencimiento.IsZero() {
		return response.BadRequest(c, "La fecha de vencimiento es requerida")
	}

	pago, err := h.pagoService.Crear(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMontoInvalido):
			return response.BadRequest(c, "El monto debe ser mayor a cero")
		case errors.Is(err, services.ErrTipoPagoInvalido):
			return response.BadRequest(c, "Tipo de pago inválido")
		case errors.Is(err, services.ErrResidenteNotFound):
			return response.NotFound(c, "Residente no encontrado")
		case errors.Is(err, services.ErrResidenteInactivo):
			return response.BadRequest(c, "El residente está inactivo")
		default:
			return response.InternalServerError(c, "Failed to create pago")
		}
	}

	return response.Created(c, "Pago creado", pago)
}

// List returns paginated pagos
// @Summary List pagos
// @Tags Pagos
// @Produce json
// @Security BearerAuth
// @Param estado query string false "pendiente | pagado | atrasado | cancelado"
// @Param residente_id query int false "Filter by residente"
// @Param tipo_pago query string false "Filter by tipo"
// @Success 200 {object} response.Response
// @Router /pagos [get]
func (h *PagoHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := &repositories.PagoFilter{
		Estado:   c.Query("estado"),
		TipoPago: c.Query("tipo_pago"),
	}
	if v := c.Query("residente_id"); v != "" {
		if residenteID, err := strconv.ParseUint(v, 10, 32); err == nil {
			id := uint(residenteID)
			filter.ResidenteID = &id
		}
	}

	pagos, total, err := h.pagoService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list pagos")
	}

	return response.Success(c, "Pagos obtenidos", fiber.Map{
		"pagos": pagos,
		"meta":  pagination.GetMeta(params, total),
	})
}

// GetByID returns one pago
// @Summary Get pago by ID
// @Tags Pagos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pago ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pagos/{id} [get]
func (h *PagoHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid pago ID")
	}

	pago, err := h.pagoService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrPagoNotFound) {
			return response.NotFound(c, "Pago no encontrado")
		}
		return response.InternalServerError(c, "Failed to get pago")
	}

	return response.Success(c, "Pago obtenido", pago)
}

// Registrar marks a pago as paid through a manual method
// @Summary Register manual payment
// @Tags Pagos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pago ID"
// @Param body body services.RegistrarPagoInput true "Payment method"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /pagos/{id}/registrar [post]
func (h *PagoHandler) Registrar(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid pago ID")
	}

	var input services.RegistrarPagoInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.MetodoPago == "" {
		return response.BadRequest(c, "El método de pago es requerido")
	}

	pago, err := h.pagoService.Registrar(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPagoNotFound):
			return response.NotFound(c, "Pago no encontrado")
		case errors.Is(err, services.ErrPagoYaRegistrado):
			return response.BadRequest(c, "El pago ya ha sido registrado como pagado")
		case errors.Is(err, services.ErrPagoNoCancelable):
			return response.BadRequest(c, "El pago está cancelado")
		default:
			return response.InternalServerError(c, "Failed to register pago")
		}
	}

	return response.Success(c, "Pago registrado", pago)
}

// Cancelar cancels a pending pago
// @Summary Cancel pago
// @Tags Pagos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pago ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /pagos/{id}/cancelar [post]
func (h *PagoHandler) Cancelar(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid pago ID")
	}

	pago, err := h.pagoService.Cancelar(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPagoNotFound):
			return response.NotFound(c, "Pago no encontrado")
		case errors.Is(err, services.ErrPagoNoCancelable):
			return response.BadRequest(c, "Solo los pagos pendientes o atrasados pueden cancelarse")
		default:
			return response.InternalServerError(c, "Failed to cancel pago")
		}
	}

	return response.Success(c, "Pago cancelado", pago)
}

// Resumen returns aggregated payment counters
// @Summary Payment summary
// @Tags Pagos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /pagos/resumen [get]
func (h *PagoHandler) Resumen(c *fiber.Ctx) error {
	resumen, err := h.pagoService.Resumen(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get payment summary")
	}

	return response.Success(c, "Resumen de pagos obtenido", resumen)
}
