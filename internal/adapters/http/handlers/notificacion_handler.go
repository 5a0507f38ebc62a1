package handlers

import (
	"errors"
	"strconv"

	"edificio-hub/internal/core/domain"
	"edificio-hub/internal/core/services"
	"edificio-hub/internal/pkg/pagination"
	"edificio-hub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificacionHandler handles notificacion endpoints
type NotificacionHandler struct {
	notificacionService *services.NotificacionService
}

// NewNotificacionHandler creates a new notificacion handler
func NewNotificacionHandler(notificacionService *services.NotificacionService) *NotificacionHandler {
	return &NotificacionHandler{notificacionService: notificacionService}
}

// Crear creates a notificacion for one usuario
// @Summary Create notificacion
// @Tags Notificaciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateNotificacionInput true "Notificacion data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /notificaciones [post]
func (h *NotificacionHandler) Crear(c *fiber.Ctx) error {
	var input services.CreateNotificacionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.UsuarioID == 0 || input.Titulo == "" {
		return response.BadRequest(c, "El usuario y el título son requeridos")
	}

	notificacion, err := h.notificacionService.Crear(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTipoNotifInvalido):
			return response.BadRequest(c, "Tipo de notificación inválido")
		case errors.Is(err, services.ErrUsuarioNotFound):
			return response.NotFound(c, "Usuario no encontrado")
		default:
			return response.InternalServerError(c, "Failed to create notificacion")
		}
	}

	return response.Created(c, "Notificación creada", notificacion)
}

// PublicarAnuncio fans out an announcement to every active usuario
// @Summary Publish building announcement
// @Tags Notificaciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AnuncioInput true "Announcement"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /notificaciones/anuncio [post]
func (h *NotificacionHandler) PublicarAnuncio(c *fiber.Ctx) error {
	var input services.AnuncioInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Titulo == "" || input.Mensaje == "" {
		return response.BadRequest(c, "El título y el mensaje son requeridos")
	}

	result, err := h.notificacionService.PublicarAnuncio(c.Context(), &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to publish anuncio")
	}

	return response.Success(c, "Anuncio publicado", result)
}

// List returns the current usuario's notificaciones
// @Summary List own notificaciones
// @Tags Notificaciones
// @Produce json
// @Security BearerAuth
// @Param no_leidas query bool false "Only unread"
// @Success 200 {object} response.Response
// @Router /notificaciones [get]
func (h *NotificacionHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	soloNoLeidas := c.Query("no_leidas") == "true"

	notificaciones, total, err := h.notificacionService.ListByUsuario(c.Context(), userID, soloNoLeidas, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list notificaciones")
	}

	return response.Success(c, "Notificaciones obtenidas", fiber.Map{
		"notificaciones": notificaciones,
		"meta":           pagination.GetMeta(params, total),
	})
}

// CountNoLeidas returns the unread counter for the current usuario
// @Summary Count unread notificaciones
// @Tags Notificaciones
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notificaciones/no-leidas [get]
func (h *NotificacionHandler) CountNoLeidas(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	count, err := h.notificacionService.CountNoLeidas(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to count notificaciones")
	}

	return response.Success(c, "Conteo obtenido", fiber.Map{
		"no_leidas": count,
	})
}

// MarcarLeida marks one notificacion as read
// @Summary Mark notificacion as read
// @Tags Notificaciones
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notificacion ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /notificaciones/{id}/leer [post]
func (h *NotificacionHandler) MarcarLeida(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid notificacion ID")
	}

	if err := h.notificacionService.MarcarLeida(c.Context(), uint(id), userID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotificacionNotFound):
			return response.NotFound(c, "Notificación no encontrada")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "La notificación pertenece a otro usuario")
		default:
			return response.InternalServerError(c, "Failed to mark notificacion")
		}
	}

	return response.Success(c, "Notificación marcada como leída", nil)
}

// MarcarTodasLeidas marks every notificacion of the usuario as read
// @Summary Mark all notificaciones as read
// @Tags Notificaciones
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notificaciones/leer-todas [post]
func (h *NotificacionHandler) MarcarTodasLeidas(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	marcadas, err := h.notificacionService.MarcarTodasLeidas(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to mark notificaciones")
	}

	return response.Success(c, "Notificaciones marcadas como leídas", fiber.Map{
		"marcadas": marcadas,
	})
}

// Eliminar deletes one of the usuario's notificaciones
// @Summary Delete notificacion
// @Tags Notificaciones
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notificacion ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /notificaciones/{id} [delete]
func (h *NotificacionHandler) Eliminar(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid notificacion ID")
	}

	if err := h.notificacionService.Eliminar(c.Context(), uint(id), userID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotificacionNotFound):
			return response.NotFound(c, "Notificación no encontrada")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "La notificación pertenece a otro usuario")
		default:
			return response.InternalServerError(c, "Failed to delete notificacion")
		}
	}

	return response.Success(c, "Notificación eliminada", nil)
}
