package handlers

import (
	"errors"
	"strconv"
	"time"

	"edificio-hub/internal/core/services"
	"edificio-hub/internal/pkg/pagination"
	"edificio-hub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ConsumoHandler handles utility consumption endpoints
type ConsumoHandler struct {
	consumoService *services.ConsumoService
}

// NewConsumoHandler creates a new consumo handler
func NewConsumoHandler(consumoService *services.ConsumoService) *ConsumoHandler {
	return &ConsumoHandler{consumoService: consumoService}
}

// Registrar records a consumption reading
// @Summary Record consumption reading
// @Tags Consumo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateConsumoInput true "Reading data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /consumo [post]
func (h *ConsumoHandler) Registrar(c *fiber.Ctx) error {
	var input services.CreateConsumoInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.DepartamentoID == 0 {
		return response.BadRequest(c, "El departamento es requerido")
	}

	metrica, err := h.consumoService.Registrar(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrServicioInvalido):
			return response.BadRequest(c, "Servicio inválido, use agua, luz o gas")
		case errors.Is(err, services.ErrLecturaInvalida):
			return response.BadRequest(c, "La lectura no puede ser negativa")
		case errors.Is(err, services.ErrDepartamentoNotFound):
			return response.NotFound(c, "Departamento no encontrado")
		default:
			return response.InternalServerError(c, "Failed to record reading")
		}
	}

	return response.Created(c, "Lectura registrada", metrica)
}

// ListByDepartamento lists readings for a departamento
// @Summary List consumption readings
// @Tags Consumo
// @Produce json
// @Security BearerAuth
// @Param id path int true "Departamento ID"
// @Param servicio query string false "agua | luz | gas"
// @Success 200 {object} response.Response
// @Router /departamentos/{id}/consumo [get]
func (h *ConsumoHandler) ListByDepartamento(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid departamento ID")
	}

	params := pagination.GetParams(c)
	servicio := c.Query("servicio")

	metricas, total, err := h.consumoService.ListByDepartamento(c.Context(), uint(id), servicio, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list readings")
	}

	return response.Success(c, "Lecturas obtenidas", fiber.Map{
		"metricas": metricas,
		"meta":     pagination.GetMeta(params, total),
	})
}

// ResumenMensual returns per-service consumption totals for a month
// @Summary Monthly consumption summary
// @Tags Consumo
// @Produce json
// @Security BearerAuth
// @Param id path int true "Departamento ID"
// @Param anio query int true "Year"
// @Param mes query int true "Month (1-12)"
// @Success 200 {object} response.Response
// @Router /departamentos/{id}/consumo/resumen [get]
func (h *ConsumoHandler) ResumenMensual(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid departamento ID")
	}

	now := time.Now()
	anio, _ := strconv.Atoi(c.Query("anio", strconv.Itoa(now.Year())))
	mes, _ := strconv.Atoi(c.Query("mes", strconv.Itoa(int(now.Month()))))
	if mes < 1 || mes > 12 {
		return response.BadRequest(c, "Mes inválido")
	}

	resumen, err := h.consumoService.ResumenMensual(c.Context(), uint(id), anio, time.Month(mes))
	if err != nil {
		return response.InternalServerError(c, "Failed to get consumption summary")
	}

	return response.Success(c, "Resumen de consumo obtenido", fiber.Map{
		"anio":      anio,
		"mes":       mes,
		"servicios": resumen,
	})
}
