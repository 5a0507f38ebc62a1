package services

import (
	"context"
	"testing"
	"time"

	"edificio-hub/internal/adapters/persistence/models"
	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPagoService(db *gorm.DB) *PagoService {
	return NewPagoService(
		repositories.NewPagoRepository(db),
		repositories.NewResidenteRepository(db),
	)
}

func seedPagoFixture(t *testing.T, db *gorm.DB) *models.Residente {
	t.Helper()
	usuario := seedUsuario(t, db, "pagador@test.local")
	departamento := seedDepartamento(t, db, "101", domain.DeptoOcupado)
	return seedResidente(t, db, usuario.ID, &departamento.ID)
}

func TestCrearPagoValidaMontoYTipo(t *testing.T) {
	db := setupTestDB(t)
	svc := newPagoService(db)
	ctx := context.Background()
	residente := seedPagoFixture(t, db)

	_, err := svc.Crear(ctx, &CreatePagoInput{
		ResidenteID:      residente.ID,
		TipoPago:         domain.PagoRenta,
		Monto:            -100,
		FechaVencimiento: time.Now().AddDate(0, 0, 15),
	})
	assert.ErrorIs(t, err, ErrMontoInvalido)

	_, err = svc.Crear(ctx, &CreatePagoInput{
		ResidenteID:      residente.ID,
		TipoPago:         "propina",
		Monto:            100,
		FechaVencimiento: time.Now().AddDate(0, 0, 15),
	})
	assert.ErrorIs(t, err, ErrTipoPagoInvalido)
}

func TestCrearPagoQuedaPendiente(t *testing.T) {
	db := setupTestDB(t)
	svc := newPagoService(db)
	ctx := context.Background()
	residente := seedPagoFixture(t, db)

	pago, err := svc.Crear(ctx, &CreatePagoInput{
		ResidenteID:      residente.ID,
		TipoPago:         domain.PagoRenta,
		Monto:            12000,
		Descripcion:      "Renta septiembre",
		FechaVencimiento: time.Now().AddDate(0, 0, 15),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PagoPendiente, pago.Estado)
	assert.Equal(t, 12000.0, pago.Monto)
}

func TestRegistrarPagoEsIdempotenteEnError(t *testing.T) {
	db := setupTestDB(t)
	svc := newPagoService(db)
	ctx := context.Background()
	residente := seedPagoFixture(t, db)

	pago, err := svc.Crear(ctx, &CreatePagoInput{
		ResidenteID:      residente.ID,
		TipoPago:         domain.PagoRenta,
		Monto:            12000,
		FechaVencimiento: time.Now().AddDate(0, 0, 15),
	})
	require.NoError(t, err)

	registrado, err := svc.Registrar(ctx, pago.ID, &RegistrarPagoInput{MetodoPago: "efectivo"})
	require.NoError(t, err)
	assert.Equal(t, domain.PagoPagado, registrado.Estado)
	assert.NotNil(t, registrado.FechaPago)

	// A second registration must be rejected, not double-applied
	_, err = svc.Registrar(ctx, pago.ID, &RegistrarPagoInput{MetodoPago: "transferencia"})
	assert.ErrorIs(t, err, ErrPagoYaRegistrado)
}

func TestRegistrarPagoRespetaFechaDelCajero(t *testing.T) {
	db := setupTestDB(t)
	svc := newPagoService(db)
	ctx := context.Background()
	residente := seedPagoFixture(t, db)

	pago, err := svc.Crear(ctx, &CreatePagoInput{
		ResidenteID:      residente.ID,
		TipoPago:         domain.PagoRenta,
		Monto:            800,
		FechaVencimiento: time.Now().AddDate(0, 0, 15),
	})
	require.NoError(t, err)

	// un pago en efectivo capturado con retraso conserva su fecha real
	ayer := time.Now().AddDate(0, 0, -1).Truncate(time.Second)
	registrado, err := svc.Registrar(ctx, pago.ID, &RegistrarPagoInput{
		MetodoPago: "efectivo",
		FechaPago:  &ayer,
	})
	require.NoError(t, err)
	require.NotNil(t, registrado.FechaPago)
	assert.True(t, registrado.FechaPago.Equal(ayer))

	// sin fecha explícita se usa el momento del registro
	otro, err := svc.Crear(ctx, &CreatePagoInput{
		ResidenteID:      residente.ID,
		TipoPago:         domain.PagoRenta,
		Monto:            800,
		FechaVencimiento: time.Now().AddDate(0, 0, 15),
	})
	require.NoError(t, err)
	registrado, err = svc.Registrar(ctx, otro.ID, &RegistrarPagoInput{MetodoPago: "transferencia"})
	require.NoError(t, err)
	require.NotNil(t, registrado.FechaPago)
	assert.WithinDuration(t, time.Now(), *registrado.FechaPago, time.Minute)
}

func TestCancelarSoloPagosAbiertos(t *testing.T) {
	db := setupTestDB(t)
	svc := newPagoService(db)
	ctx := context.Background()
	residente := seedPagoFixture(t, db)

	pago, err := svc.Crear(ctx, &CreatePagoInput{
		ResidenteID:      residente.ID,
		TipoPago:         domain.PagoMantenimiento,
		Monto:            800,
		FechaVencimiento: time.Now().AddDate(0, 0, 15),
	})
	require.NoError(t, err)

	_, err = svc.Registrar(ctx, pago.ID, &RegistrarPagoInput{MetodoPago: "efectivo"})
	require.NoError(t, err)

	_, err = svc.Cancelar(ctx, pago.ID)
	assert.ErrorIs(t, err, ErrPagoNoCancelable)
}

func TestMarcarAtrasados(t *testing.T) {
	db := setupTestDB(t)
	svc := newPagoService(db)
	ctx := context.Background()
	residente := seedPagoFixture(t, db)

	vencido := &models.Pago{
		ResidenteID:      residente.ID,
		TipoPago:         domain.PagoRenta,
		Monto:            12000,
		Estado:           domain.PagoPendiente,
		FechaVencimiento: time.Now().AddDate(0, 0, -5),
	}
	vigente := &models.Pago{
		ResidenteID:      residente.ID,
		TipoPago:         domain.PagoRenta,
		Monto:            12000,
		Estado:           domain.PagoPendiente,
		FechaVencimiento: time.Now().AddDate(0, 0, 5),
	}
	require.NoError(t, db.Create(vencido).Error)
	require.NoError(t, db.Create(vigente).Error)

	marcados, err := svc.MarcarAtrasados(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), marcados)

	var refreshed models.Pago
	require.NoError(t, db.First(&refreshed, vencido.ID).Error)
	assert.Equal(t, domain.PagoAtrasado, refreshed.Estado)
}
