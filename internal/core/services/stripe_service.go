package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"strconv"
	"time"

	"edificio-hub/internal/adapters/external/stripe"
	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/core/domain"

	"gorm.io/gorm"
)

// Stripe errors
var (
	ErrStripeDisabled    = errors.New("la pasarela de pagos no está configurada")
	ErrPagoNoPendiente   = errors.New("solo los pagos pendientes o atrasados pueden cobrarse")
	ErrWebhookInvalido   = errors.New("firma del webhook inválida")
	ErrStripeUnavailable = errors.New("la pasarela de pagos no respondió")
)

// StripeGateway abstracts the Stripe API client
type StripeGateway interface {
	CreatePaymentIntent(amountCentavos int64, currency string, metadata map[string]string) (*stripe.PaymentIntent, error)
	VerifyWebhook(payload []byte, signatureHeader string) (*stripe.WebhookEvent, error)
}

// StripeService orchestrates card payments over Stripe payment intents
type StripeService struct {
	gateway  StripeGateway
	pagoRepo *repositories.PagoRepository
}

// NewStripeService creates a new stripe service. gateway may be nil when the
// integration is not configured.
func NewStripeService(gateway StripeGateway, pagoRepo *repositories.PagoRepository) *StripeService {
	return &StripeService{
		gateway:  gateway,
		pagoRepo: pagoRepo,
	}
}

// Enabled reports whether the Stripe integration is configured
func (s *StripeService) Enabled() bool {
	return s.gateway != nil
}

// IntentResponse is returned to the frontend to confirm the card payment
type IntentResponse struct {
	PagoID       uint   `json:"pago_id"`
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	Monto        int64  `json:"monto_centavos"`
}

// CrearIntento creates a payment intent for a pendiente/atrasado pago and
// persists the intent id on the row.
func (s *StripeService) CrearIntento(ctx context.Context, pagoID uint) (*IntentResponse, error) {
	if s.gateway == nil {
		return nil, ErrStripeDisabled
	}

	pago, err := s.pagoRepo.GetByID(ctx, pagoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPagoNotFound
		}
		return nil, err
	}
	if pago.Estado != domain.PagoPendiente && pago.Estado != domain.PagoAtrasado {
		return nil, ErrPagoNoPendiente
	}

	centavos := int64(math.Round(pago.Monto * 100))
	intent, err := s.gateway.CreatePaymentIntent(centavos, "mxn", map[string]string{
		"pago_id": strconv.FormatUint(uint64(pago.ID), 10),
	})
	if err != nil {
		log.Printf("❌ Stripe intent failed for pago %d: %v", pago.ID, err)
		return nil, ErrStripeUnavailable
	}

	pago.StripePaymentIntentID = &intent.ID
	if err := s.pagoRepo.Update(ctx, pago); err != nil {
		return nil, err
	}

	log.Printf("✅ Stripe intent %s created for pago %d", intent.ID, pago.ID)

	return &IntentResponse{
		PagoID:       pago.ID,
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Monto:        centavos,
	}, nil
}

// ProcesarWebhook verifies the signature and applies payment intent events.
// State-guarded updates keep redelivered events idempotent.
func (s *StripeService) ProcesarWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	if s.gateway == nil {
		return ErrStripeDisabled
	}

	event, err := s.gateway.VerifyWebhook(payload, signatureHeader)
	if err != nil {
		log.Printf("❌ Webhook rejected: %v", err)
		return ErrWebhookInvalido
	}

	switch event.Type {
	case "payment_intent.succeeded":
		return s.aplicarPagoExitoso(ctx, event)
	case "payment_intent.payment_failed":
		return s.aplicarPagoFallido(ctx, event)
	default:
		// Unhandled event types are acknowledged without side effects
		log.Printf("⚠️ Webhook event ignored: %s", event.Type)
		return nil
	}
}

func (s *StripeService) aplicarPagoExitoso(ctx context.Context, event *stripe.WebhookEvent) error {
	intentID, err := intentIDFromEvent(event)
	if err != nil {
		return err
	}

	pago, err := s.pagoRepo.GetByPaymentIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("⚠️ Webhook for unknown intent: %s", intentID)
			return nil
		}
		return err
	}

	// Redelivered event on an already-paid row is a no-op
	if pago.Estado == domain.PagoPagado {
		return nil
	}

	now := time.Now()
	pago.Estado = domain.PagoPagado
	pago.MetodoPago = "stripe"
	pago.FechaPago = &now
	if err := s.pagoRepo.Update(ctx, pago); err != nil {
		return err
	}

	log.Printf("✅ Pago %d paid via Stripe (%s)", pago.ID, intentID)
	return nil
}

func (s *StripeService) aplicarPagoFallido(ctx context.Context, event *stripe.WebhookEvent) error {
	intentID, err := intentIDFromEvent(event)
	if err != nil {
		return err
	}

	pago, err := s.pagoRepo.GetByPaymentIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	// A failed charge never undoes a completed payment
	if pago.Estado == domain.PagoPagado {
		return nil
	}

	// An overdue pago goes back to pendiente so the resident can retry
	if pago.Estado == domain.PagoAtrasado {
		pago.Estado = domain.PagoPendiente
		if err := s.pagoRepo.Update(ctx, pago); err != nil {
			return err
		}
	}

	log.Printf("⚠️ Stripe payment failed for pago %d (%s)", pago.ID, intentID)
	return nil
}

func intentIDFromEvent(event *stripe.WebhookEvent) (string, error) {
	var object struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(event.Data.Object, &object); err != nil {
		return "", err
	}
	return object.ID, nil
}
