package handlers

import (
	"errors"
	"strconv"

	"edificio-hub/internal/core/services"
	"edificio-hub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NftHandler handles residency certificate NFT endpoints
type NftHandler struct {
	nftService *services.NftService
}

// NewNftHandler creates a new NFT handler
func NewNftHandler(nftService *services.NftService) *NftHandler {
	return &NftHandler{nftService: nftService}
}

// ClaimRequest represents the public claim request body
type ClaimRequest struct {
	Wallet string `json:"wallet"`
}

// GenerarToken issues a single-use claim token for a residente
// @Summary Generate NFT claim token
// @Tags NFT
// @Produce json
// @Security BearerAuth
// @Param id path int true "Residente ID"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /residentes/{id}/nft-token [post]
func (h *NftHandler) GenerarToken(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid residente ID")
	}

	result, err := h.nftService.GenerarToken(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrResidenteNotFound):
			return response.NotFound(c, "Residente no encontrado")
		case errors.Is(err, services.ErrResidenteInactivo):
			return response.BadRequest(c, "El residente está inactivo")
		case errors.Is(err, services.ErrResidenteSinDepto):
			return response.BadRequest(c, "El residente no tiene departamento asignado")
		default:
			return response.InternalServerError(c, "Failed to generate claim token")
		}
	}

	return response.Created(c, "Token de reclamo generado", result)
}

// ValidarToken checks a claim token without consuming it
// @Summary Validate NFT claim token
// @Tags NFT
// @Produce json
// @Param token path string true "Claim token"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /nft/claim/{token} [get]
func (h *NftHandler) ValidarToken(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return response.BadRequest(c, "Token requerido")
	}

	result, err := h.nftService.ValidarToken(c.Context(), token)
	if err != nil {
		if errors.Is(err, services.ErrClaimTokenNotFound) {
			return response.NotFound(c, "Token de reclamo no encontrado")
		}
		return response.InternalServerError(c, "Failed to validate claim token")
	}

	return response.Success(c, "Token validado", result)
}

// Claim consumes a claim token and mints the residency certificate to the
// given wallet. The token is burned before touching the chain, so a retry
// after a mint failure needs a fresh token.
// @Summary Claim residency certificate NFT
// @Tags NFT
// @Accept json
// @Produce json
// @Param token path string true "Claim token"
// @Param body body ClaimRequest true "Destination wallet"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /nft/claim/{token} [post]
func (h *NftHandler) Claim(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return response.BadRequest(c, "Token requerido")
	}

	var req ClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Wallet == "" {
		return response.BadRequest(c, "La wallet es requerida")
	}

	result, err := h.nftService.Claim(c.Context(), token, req.Wallet)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNftDisabled):
			return response.BadRequest(c, "El certificado NFT no está habilitado")
		case errors.Is(err, services.ErrWalletInvalida):
			return response.BadRequest(c, "La dirección de wallet no es válida")
		case errors.Is(err, services.ErrClaimTokenNotFound):
			return response.NotFound(c, "Token de reclamo no encontrado")
		case errors.Is(err, services.ErrClaimTokenUsado):
			return response.BadRequest(c, "El token ya fue utilizado")
		case errors.Is(err, services.ErrClaimTokenExpirado):
			return response.BadRequest(c, "El token ha expirado")
		case errors.Is(err, services.ErrResidenteSinDepto):
			return response.BadRequest(c, "El residente no tiene departamento asignado")
		case errors.Is(err, services.ErrMintFallido):
			return response.BadGateway(c, "No fue posible acuñar el certificado, solicite un nuevo token")
		default:
			return response.InternalServerError(c, "Failed to claim certificate")
		}
	}

	return response.Success(c, "Certificado acuñado", result)
}

// ListByResidente lists the claim tokens issued to a residente
// @Summary List residente claim tokens
// @Tags NFT
// @Produce json
// @Security BearerAuth
// @Param id path int true "Residente ID"
// @Success 200 {object} response.Response
// @Router /residentes/{id}/nft-tokens [get]
func (h *NftHandler) ListByResidente(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid residente ID")
	}

	tokens, err := h.nftService.ListByResidente(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to list claim tokens")
	}

	return response.Success(c, "Tokens obtenidos", fiber.Map{
		"tokens": tokens,
	})
}
