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

// UsuarioHandler handles usuario management endpoints
type UsuarioHandler struct {
	usuarioService *services.UsuarioService
}

// NewUsuarioHandler creates a new usuario handler
func NewUsuarioHandler(usuarioService *services.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{usuarioService: usuarioService}
}

// Create creates a usuario with an explicit rol
// @Summary Create usuario (admin)
// @Tags Usuarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateUsuarioInput true "Usuario data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /usuarios [post]
func (h *UsuarioHandler) Create(c *fiber.Ctx) error {
	var input services.CreateUsuarioInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Nombre == "" || input.Email == "" || input.Password == "" || input.Rol == "" {
		return response.BadRequest(c, "Nombre, email, password y rol son requeridos")
	}

	usuario, err := h.usuarioService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Rol inválido")
		case errors.Is(err, services.ErrWeakPassword):
			return response.BadRequest(c, "La contraseña debe tener al menos 8 caracteres")
		case errors.Is(err, services.ErrEmailAlreadyUsed):
			return response.Conflict(c, "El correo ya está registrado")
		default:
			return response.InternalServerError(c, "Failed to create usuario")
		}
	}

	return response.Created(c, "Usuario creado", usuario)
}

// List returns paginated usuarios
// @Summary List usuarios
// @Tags Usuarios
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Router /usuarios [get]
func (h *UsuarioHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	usuarios, total, err := h.usuarioService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list usuarios")
	}

	return response.Success(c, "Usuarios obtenidos", fiber.Map{
		"usuarios": usuarios,
		"meta":     pagination.GetMeta(params, total),
	})
}

// GetByID returns one usuario
// @Summary Get usuario by ID
// @Tags Usuarios
// @Produce json
// @Security BearerAuth
// @Param id path int true "Usuario ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /usuarios/{id} [get]
func (h *UsuarioHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid usuario ID")
	}

	usuario, err := h.usuarioService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrUsuarioNotFound) {
			return response.NotFound(c, "Usuario no encontrado")
		}
		return response.InternalServerError(c, "Failed to get usuario")
	}

	return response.Success(c, "Usuario obtenido", usuario)
}

// Update updates usuario fields
// @Summary Update usuario
// @Tags Usuarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Usuario ID"
// @Param body body services.UpdateUsuarioInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /usuarios/{id} [put]
func (h *UsuarioHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid usuario ID")
	}

	var input services.UpdateUsuarioInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	usuario, err := h.usuarioService.Update(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsuarioNotFound):
			return response.NotFound(c, "Usuario no encontrado")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Rol inválido")
		default:
			return response.InternalServerError(c, "Failed to update usuario")
		}
	}

	return response.Success(c, "Usuario actualizado", usuario)
}

// ChangePassword changes the current usuario's password
// @Summary Change own password
// @Tags Usuarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ChangePasswordInput true "Password change"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /usuarios/me/password [put]
func (h *UsuarioHandler) ChangePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.CurrentPassword == "" || input.NewPassword == "" {
		return response.BadRequest(c, "La contraseña actual y la nueva son requeridas")
	}

	if err := h.usuarioService.ChangePassword(c.Context(), userID, &input); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return response.Unauthorized(c, "La contraseña actual es incorrecta")
		case errors.Is(err, services.ErrWeakPassword):
			return response.BadRequest(c, "La nueva contraseña debe tener al menos 8 caracteres")
		default:
			return response.InternalServerError(c, "Failed to change password")
		}
	}

	return response.Success(c, "Contraseña actualizada", nil)
}

// Delete soft-deletes a usuario
// @Summary Delete usuario
// @Tags Usuarios
// @Produce json
// @Security BearerAuth
// @Param id path int true "Usuario ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /usuarios/{id} [delete]
func (h *UsuarioHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid usuario ID")
	}

	if err := h.usuarioService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrUsuarioNotFound) {
			return response.NotFound(c, "Usuario no encontrado")
		}
		return response.InternalServerError(c, "Failed to delete usuario")
	}

	return response.Success(c, "Usuario eliminado", nil)
}
