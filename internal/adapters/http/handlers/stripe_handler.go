package handlers

import (
	"errors"
	"strconv"

	"edificio-hub/internal/core/services"
	"edificio-hub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StripeHandler handles Stripe checkout and webhook endpoints
type StripeHandler struct {
	stripeService *services.StripeService
}

// NewStripeHandler creates a new stripe handler
func NewStripeHandler(stripeService *services.StripeService) *StripeHandler {
	return &StripeHandler{stripeService: stripeService}
}

// CrearIntento creates a PaymentIntent for a pending pago
// @Summary Create Stripe payment intent
// @Tags Stripe
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pago ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /pagos/{id}/intento [post]
func (h *StripeHandler) CrearIntento(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid pago ID")
	}

	intento, err := h.stripeService.CrearIntento(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStripeDisabled):
			return response.BadRequest(c, "Los pagos con tarjeta no están habilitados")
		case errors.Is(err, services.ErrPagoNotFound):
			return response.NotFound(c, "Pago no encontrado")
		case errors.Is(err, services.ErrPagoNoPendiente):
			return response.BadRequest(c, "Solo los pagos pendientes o atrasados pueden pagarse con tarjeta")
		case errors.Is(err, services.ErrStripeUnavailable):
			return response.BadGateway(c, "El proveedor de pagos no está disponible")
		default:
			return response.InternalServerError(c, "Failed to create payment intent")
		}
	}

	return response.Success(c, "Intento de pago creado", intento)
}

// Webhook receives Stripe event deliveries. The raw body is verified against
// the Stripe-Signature header before any state change.
// @Summary Stripe webhook
// @Tags Stripe
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /webhooks/stripe [post]
func (h *StripeHandler) Webhook(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get("Stripe-Signature")

	if err := h.stripeService.ProcesarWebhook(c.Context(), payload, signature); err != nil {
		if errors.Is(err, services.ErrWebhookInvalido) {
			return response.BadRequest(c, "Invalid webhook signature")
		}
		if errors.Is(err, services.ErrStripeDisabled) {
			return response.BadRequest(c, "Stripe no está configurado")
		}
		return response.InternalServerError(c, "Failed to process webhook")
	}

	return response.Success(c, "Webhook procesado", nil)
}
