package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"edificio-hub/internal/adapters/external/stripe"
	"edificio-hub/internal/adapters/persistence/models"
	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeGateway records intent creations and replays canned webhook events
type fakeGateway struct {
	lastAmount   int64
	lastMetadata map[string]string
	intentErr    error
	verifyErr    error
	event        *stripe.WebhookEvent
}

func (f *fakeGateway) CreatePaymentIntent(amountCentavos int64, currency string, metadata map[string]string) (*stripe.PaymentIntent, error) {
	if f.intentErr != nil {
		return nil, f.intentErr
	}
	f.lastAmount = amountCentavos
	f.lastMetadata = metadata
	return &stripe.PaymentIntent{
		ID:           "pi_test_123",
		ClientSecret: "pi_test_123_secret",
		Amount:       amountCentavos,
		Currency:     currency,
		Status:       "requires_payment_method",
	}, nil
}

func (f *fakeGateway) VerifyWebhook(payload []byte, signatureHeader string) (*stripe.WebhookEvent, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.event, nil
}

func intentEvent(t *testing.T, eventType, intentID string) *stripe.WebhookEvent {
	t.Helper()
	object, err := json.Marshal(map[string]string{"id": intentID})
	require.NoError(t, err)
	event := &stripe.WebhookEvent{ID: "evt_1", Type: eventType}
	event.Data.Object = object
	return event
}

func seedPagoPendiente(t *testing.T, db *gorm.DB, monto float64) *models.Pago {
	t.Helper()
	usuario := seedUsuario(t, db, fmt.Sprintf("stripe%d@test.local", time.Now().UnixNano()))
	departamento := seedDepartamento(t, db, fmt.Sprintf("S%d", time.Now().UnixNano()%100000), domain.DeptoOcupado)
	residente := seedResidente(t, db, usuario.ID, &departamento.ID)

	pago := &models.Pago{
		ResidenteID:      residente.ID,
		TipoPago:         domain.PagoRenta,
		Monto:            monto,
		Estado:           domain.PagoPendiente,
		FechaVencimiento: time.Now().AddDate(0, 0, 10),
	}
	require.NoError(t, db.Create(pago).Error)
	return pago
}

func TestCrearIntentoConvierteACentavos(t *testing.T) {
	db := setupTestDB(t)
	gateway := &fakeGateway{}
	svc := NewStripeService(gateway, repositories.NewPagoRepository(db))
	ctx := context.Background()

	pago := seedPagoPendiente(t, db, 1250.50)

	intento, err := svc.CrearIntento(ctx, pago.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(125050), intento.Monto)
	assert.Equal(t, int64(125050), gateway.lastAmount)
	assert.Equal(t, fmt.Sprintf("%d", pago.ID), gateway.lastMetadata["pago_id"])

	var refreshed models.Pago
	require.NoError(t, db.First(&refreshed, pago.ID).Error)
	require.NotNil(t, refreshed.StripePaymentIntentID)
	assert.Equal(t, "pi_test_123", *refreshed.StripePaymentIntentID)
}

func TestCrearIntentoSoloPagosAbiertos(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStripeService(&fakeGateway{}, repositories.NewPagoRepository(db))
	ctx := context.Background()

	pago := seedPagoPendiente(t, db, 500)
	require.NoError(t, db.Model(pago).Update("estado", domain.PagoPagado).Error)

	_, err := svc.CrearIntento(ctx, pago.ID)
	assert.ErrorIs(t, err, ErrPagoNoPendiente)
}

func TestCrearIntentoSinGateway(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStripeService(nil, repositories.NewPagoRepository(db))

	_, err := svc.CrearIntento(context.Background(), 1)
	assert.ErrorIs(t, err, ErrStripeDisabled)
}

func TestWebhookPagoExitosoEsIdempotente(t *testing.T) {
	db := setupTestDB(t)
	gateway := &fakeGateway{}
	svc := NewStripeService(gateway, repositories.NewPagoRepository(db))
	ctx := context.Background()

	pago := seedPagoPendiente(t, db, 1000)
	intentID := "pi_hook_1"
	require.NoError(t, db.Model(pago).Update("stripe_payment_intent_id", intentID).Error)

	gateway.event = intentEvent(t, "payment_intent.succeeded", intentID)
	require.NoError(t, svc.ProcesarWebhook(ctx, []byte("{}"), "sig"))

	var refreshed models.Pago
	require.NoError(t, db.First(&refreshed, pago.ID).Error)
	assert.Equal(t, domain.PagoPagado, refreshed.Estado)
	assert.Equal(t, "stripe", refreshed.MetodoPago)
	require.NotNil(t, refreshed.FechaPago)
	primeraFecha := *refreshed.FechaPago

	// Redelivery must not touch the row again
	require.NoError(t, svc.ProcesarWebhook(ctx, []byte("{}"), "sig"))
	require.NoError(t, db.First(&refreshed, pago.ID).Error)
	assert.True(t, refreshed.FechaPago.Equal(primeraFecha))
}

func TestWebhookPagoFallidoNoDeshacePagado(t *testing.T) {
	db := setupTestDB(t)
	gateway := &fakeGateway{}
	svc := NewStripeService(gateway, repositories.NewPagoRepository(db))
	ctx := context.Background()

	pago := seedPagoPendiente(t, db, 1000)
	intentID := "pi_hook_2"
	require.NoError(t, db.Model(pago).Updates(map[string]interface{}{
		"stripe_payment_intent_id": intentID,
		"estado":                   domain.PagoPagado,
	}).Error)

	gateway.event = intentEvent(t, "payment_intent.payment_failed", intentID)
	require.NoError(t, svc.ProcesarWebhook(ctx, []byte("{}"), "sig"))

	var refreshed models.Pago
	require.NoError(t, db.First(&refreshed, pago.ID).Error)
	assert.Equal(t, domain.PagoPagado, refreshed.Estado)
}

func TestWebhookPagoFallidoRegresaAtrasadoAPendiente(t *testing.T) {
	db := setupTestDB(t)
	gateway := &fakeGateway{}
	svc := NewStripeService(gateway, repositories.NewPagoRepository(db))
	ctx := context.Background()

	pago := seedPagoPendiente(t, db, 1000)
	intentID := "pi_hook_3"
	require.NoError(t, db.Model(pago).Updates(map[string]interface{}{
		"stripe_payment_intent_id": intentID,
		"estado":                   domain.PagoAtrasado,
	}).Error)

	gateway.event = intentEvent(t, "payment_intent.payment_failed", intentID)
	require.NoError(t, svc.ProcesarWebhook(ctx, []byte("{}"), "sig"))

	var refreshed models.Pago
	require.NoError(t, db.First(&refreshed, pago.ID).Error)
	assert.Equal(t, domain.PagoPendiente, refreshed.Estado)
}

func TestWebhookFirmaInvalida(t *testing.T) {
	db := setupTestDB(t)
	gateway := &fakeGateway{verifyErr: errors.New("bad signature")}
	svc := NewStripeService(gateway, repositories.NewPagoRepository(db))

	err := svc.ProcesarWebhook(context.Background(), []byte("{}"), "bad")
	assert.ErrorIs(t, err, ErrWebhookInvalido)
}

func TestWebhookEventoDesconocidoSeIgnora(t *testing.T) {
	db := setupTestDB(t)
	gateway := &fakeGateway{event: intentEvent(t, "charge.refunded", "pi_x")}
	svc := NewStripeService(gateway, repositories.NewPagoRepository(db))

	assert.NoError(t, svc.ProcesarWebhook(context.Background(), []byte("{}"), "sig"))
}
