package handlers

import (
	"errors"
	"strings"

	"edificio-hub/internal/config"
	"edificio-hub/internal/core/services"
	"edificio-hub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
	Telefono string `json:"telefono"`
	Password string `json:"password"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents the refresh token request body
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register handles usuario registration
// @Summary Register new usuario
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Nombre == "" {
		return response.BadRequest(c, "El nombre es requerido")
	}
	if req.Email == "" {
		return response.BadRequest(c, "El correo es requerido")
	}
	if req.Password == "" {
		return response.BadRequest(c, "La contraseña es requerida")
	}

	input := &services.RegisterInput{
		Nombre:   strings.TrimSpace(req.Nombre),
		Apellido: strings.TrimSpace(req.Apellido),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Telefono: strings.TrimSpace(req.Telefono),
		Password: req.Password,
	}

	result, err := h.authService.Register(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWeakPassword):
			return response.BadRequest(c, "La contraseña debe tener al menos 8 caracteres")
		case errors.Is(err, services.ErrEmailAlreadyUsed):
			return response.Conflict(c, "El correo ya está registrado")
		default:
			return response.InternalServerError(c, "Failed to register usuario")
		}
	}

	return response.Created(c, "Usuario registrado correctamente", fiber.Map{
		"usuario":       result.Usuario,
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
	})
}

// Login handles usuario login
// @Summary Login usuario
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" {
		return response.BadRequest(c, "El correo es requerido")
	}
	if req.Password == "" {
		return response.BadRequest(c, "La contraseña es requerida")
	}

	input := &services.LoginInput{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: req.Password,
	}

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return response.Unauthorized(c, "Correo o contraseña incorrectos")
		case errors.Is(err, services.ErrUsuarioInactive):
			return response.Forbidden(c, "La cuenta está desactivada")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	return response.Success(c, "Sesión iniciada", fiber.Map{
		"usuario":       result.Usuario,
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
	})
}

// RefreshToken handles token refresh
// @Summary Refresh access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "Refresh token"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.RefreshToken == "" {
		return response.Unauthorized(c, "Refresh token required")
	}

	result, err := h.authService.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenExpired):
			return response.Unauthorized(c, "Refresh token expired, please login again")
		case errors.Is(err, services.ErrTokenRevoked):
			return response.Unauthorized(c, "Refresh token revoked, please login again")
		case errors.Is(err, services.ErrInvalidToken):
			return response.Unauthorized(c, "Invalid refresh token")
		case errors.Is(err, services.ErrUsuarioInactive):
			return response.Forbidden(c, "La cuenta está desactivada")
		default:
			return response.InternalServerError(c, "Failed to refresh token")
		}
	}

	return response.Success(c, "Token refreshed", fiber.Map{
		"usuario":       result.Usuario,
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
	})
}

// Logout handles usuario logout
// @Summary Logout usuario
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err == nil && req.RefreshToken != "" {
		_ = h.authService.Logout(c.Context(), req.RefreshToken)
	}

	return response.Success(c, "Sesión cerrada", nil)
}

// LogoutAll revokes every session of the current usuario
// @Summary Logout from all devices
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.authService.LogoutAll(c.Context(), userID); err != nil {
		return response.InternalServerError(c, "Failed to logout from all devices")
	}

	return response.Success(c, "Todas las sesiones fueron cerradas", nil)
}

// Me returns the current usuario
// @Summary Get current usuario
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	usuario, err := h.authService.GetUsuarioByID(c.Context(), userID)
	if err != nil {
		return response.NotFound(c, "Usuario no encontrado")
	}

	return response.Success(c, "Usuario obtenido", fiber.Map{
		"usuario": usuario.ToResponse(),
	})
}
