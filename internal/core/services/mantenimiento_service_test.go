package services

import (
	"context"
	"testing"

	"edificio-hub/internal/adapters/persistence/models"
	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMantenimientoService(db *gorm.DB) *MantenimientoService {
	return NewMantenimientoService(
		repositories.NewMantenimientoRepository(db),
		repositories.NewPersonalRepository(db),
		repositories.NewResidenteRepository(db),
	)
}

func seedPersonal(t *testing.T, db *gorm.DB, nombre string, activo bool) *models.PersonalEdificio {
	t.Helper()
	personal := &models.PersonalEdificio{
		Nombre: nombre,
		Puesto: "mantenimiento",
		Activo: activo,
	}
	if err := db.Create(personal).Error; err != nil {
		t.Fatalf("failed to seed personal: %v", err)
	}
	return personal
}

func TestCrearMantenimientoUsaPrioridadMedia(t *testing.T) {
	db := setupTestDB(t)
	service := newMantenimientoService(db)
	ctx := context.Background()

	solicitud, err := service.Crear(ctx, &CreateMantenimientoInput{Titulo: "Fuga en el baño"})
	require.NoError(t, err)
	assert.Equal(t, "media", solicitud.Prioridad)
	assert.Equal(t, domain.MantenimientoAbierta, solicitud.Estado)

	_, err = service.Crear(ctx, &CreateMantenimientoInput{Titulo: "Otra", Prioridad: "altísima"})
	assert.ErrorIs(t, err, ErrPrioridadInvalida)
}

func TestAsignarMueveAEnProceso(t *testing.T) {
	db := setupTestDB(t)
	service := newMantenimientoService(db)
	ctx := context.Background()
	personal := seedPersonal(t, db, "Carlos Ruiz", true)

	solicitud, err := service.Crear(ctx, &CreateMantenimientoInput{Titulo: "Puerta atascada"})
	require.NoError(t, err)

	solicitud, err = service.Asignar(ctx, solicitud.ID, personal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MantenimientoEnProceso, solicitud.Estado)
	require.NotNil(t, solicitud.AsignadaA)
	assert.Equal(t, personal.ID, *solicitud.AsignadaA)
}

func TestAsignarRechazaPersonalInactivoYSolicitudesCerradas(t *testing.T) {
	db := setupTestDB(t)
	service := newMantenimientoService(db)
	ctx := context.Background()
	inactivo := seedPersonal(t, db, "Baja Temporal", false)
	activo := seedPersonal(t, db, "Carlos Ruiz", true)

	solicitud, err := service.Crear(ctx, &CreateMantenimientoInput{Titulo: "Lámpara fundida"})
	require.NoError(t, err)

	_, err = service.Asignar(ctx, solicitud.ID, inactivo.ID)
	assert.ErrorIs(t, err, ErrPersonalNotFound)

	_, err = service.CambiarEstado(ctx, solicitud.ID, domain.MantenimientoCancelada)
	require.NoError(t, err)

	_, err = service.Asignar(ctx, solicitud.ID, activo.ID)
	assert.ErrorIs(t, err, ErrMantenimientoCerrada)
}

func TestCambiarEstadoRespetaTransiciones(t *testing.T) {
	db := setupTestDB(t)
	service := newMantenimientoService(db)
	ctx := context.Background()

	solicitud, err := service.Crear(ctx, &CreateMantenimientoInput{Titulo: "Gotera"})
	require.NoError(t, err)

	solicitud, err = service.CambiarEstado(ctx, solicitud.ID, domain.MantenimientoResuelta)
	require.NoError(t, err)
	assert.NotNil(t, solicitud.FechaResolucion)

	// resuelta es terminal
	_, err = service.CambiarEstado(ctx, solicitud.ID, domain.MantenimientoEnProceso)
	assert.ErrorIs(t, err, ErrTransicionInvalida)
	_, err = service.CambiarEstado(ctx, solicitud.ID, domain.MantenimientoCancelada)
	assert.ErrorIs(t, err, ErrTransicionInvalida)
}
