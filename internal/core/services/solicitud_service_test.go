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

func newSolicitudService(db *gorm.DB) *SolicitudService {
	return NewSolicitudService(
		repositories.NewSolicitudRentaRepository(db),
		repositories.NewDepartamentoRepository(db),
		repositories.NewUsuarioRepository(db),
		repositories.NewResidenteRepository(db),
		newDepartamentoService(db),
	)
}

func TestCrearSolicitudSoloDepartamentosDisponibles(t *testing.T) {
	db := setupTestDB(t)
	service := newSolicitudService(db)
	ctx := context.Background()

	disponible := seedDepartamento(t, db, "101", domain.DeptoDisponible)
	ocupado := seedDepartamento(t, db, "102", domain.DeptoOcupado)

	solicitud, err := service.Crear(ctx, &CreateSolicitudInput{
		NombreCompleto: "Laura Méndez",
		Email:          "laura@example.com",
		DepartamentoID: disponible.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SolicitudPendiente, solicitud.Estado)

	_, err = service.Crear(ctx, &CreateSolicitudInput{
		NombreCompleto: "Laura Méndez",
		Email:          "laura@example.com",
		DepartamentoID: ocupado.ID,
	})
	assert.ErrorIs(t, err, ErrDepartamentoNoDisponible)
}

func TestRevisarSolicitudRespetaTransiciones(t *testing.T) {
	db := setupTestDB(t)
	service := newSolicitudService(db)
	ctx := context.Background()
	revisor := seedUsuario(t, db, "revisor@example.com")

	depto := seedDepartamento(t, db, "201", domain.DeptoDisponible)
	solicitud, err := service.Crear(ctx, &CreateSolicitudInput{
		NombreCompleto: "Pedro Salas",
		Email:          "pedro@example.com",
		DepartamentoID: depto.ID,
	})
	require.NoError(t, err)

	// pendiente no puede saltar directo a aprobada
	_, err = service.Revisar(ctx, solicitud.ID, revisor.ID, &RevisarSolicitudInput{Estado: domain.SolicitudAprobada})
	assert.ErrorIs(t, err, ErrTransicionInvalida)

	solicitud, err = service.Revisar(ctx, solicitud.ID, revisor.ID, &RevisarSolicitudInput{Estado: domain.SolicitudEnRevision, Notas: "documentos en orden"})
	require.NoError(t, err)
	assert.Equal(t, domain.SolicitudEnRevision, solicitud.Estado)
	require.NotNil(t, solicitud.RevisadaPor)
	assert.Equal(t, revisor.ID, *solicitud.RevisadaPor)
	assert.NotNil(t, solicitud.FechaRevision)

	solicitud, err = service.Revisar(ctx, solicitud.ID, revisor.ID, &RevisarSolicitudInput{Estado: domain.SolicitudAprobada})
	require.NoError(t, err)
	assert.Equal(t, domain.SolicitudAprobada, solicitud.Estado)

	// aprobada no puede volver a pendiente
	_, err = service.Revisar(ctx, solicitud.ID, revisor.ID, &RevisarSolicitudInput{Estado: domain.SolicitudPendiente})
	assert.ErrorIs(t, err, ErrTransicionInvalida)
}

func TestCompletarCreaCuentaYOcupaDepartamento(t *testing.T) {
	db := setupTestDB(t)
	service := newSolicitudService(db)
	ctx := context.Background()
	revisor := seedUsuario(t, db, "admin@example.com")

	depto := seedDepartamento(t, db, "301", domain.DeptoDisponible)
	solicitud, err := service.Crear(ctx, &CreateSolicitudInput{
		NombreCompleto: "Ana Torres",
		Email:          "ana@example.com",
		Telefono:       "5512345678",
		DepartamentoID: depto.ID,
	})
	require.NoError(t, err)

	_, err = service.Revisar(ctx, solicitud.ID, revisor.ID, &RevisarSolicitudInput{Estado: domain.SolicitudEnRevision})
	require.NoError(t, err)
	_, err = service.Revisar(ctx, solicitud.ID, revisor.ID, &RevisarSolicitudInput{Estado: domain.SolicitudAprobada})
	require.NoError(t, err)

	result, err := service.Completar(ctx, solicitud.ID, revisor.ID)
	require.NoError(t, err)
	assert.False(t, result.UsuarioPreexistente)
	assert.NotEmpty(t, result.PasswordTemporal)
	assert.Equal(t, "ana@example.com", result.Usuario.Email)
	assert.Equal(t, string(domain.RolResidente), result.Usuario.Rol)
	require.NotNil(t, result.Residente.DepartamentoID)
	assert.Equal(t, depto.ID, *result.Residente.DepartamentoID)

	actualizado, err := service.GetByID(ctx, solicitud.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SolicitudCompletada, actualizado.Estado)

	var deptoActual models.Departamento
	require.NoError(t, db.First(&deptoActual, depto.ID).Error)
	assert.Equal(t, domain.DeptoOcupado, deptoActual.Estado)
}

func TestCompletarReutilizaCuentaExistente(t *testing.T) {
	db := setupTestDB(t)
	service := newSolicitudService(db)
	ctx := context.Background()
	revisor := seedUsuario(t, db, "admin@example.com")
	existente := seedUsuario(t, db, "conocido@example.com")

	depto := seedDepartamento(t, db, "401", domain.DeptoDisponible)
	solicitud, err := service.Crear(ctx, &CreateSolicitudInput{
		NombreCompleto: "Usuario Conocido",
		Email:          existente.Email,
		DepartamentoID: depto.ID,
	})
	require.NoError(t, err)

	_, err = service.Revisar(ctx, solicitud.ID, revisor.ID, &RevisarSolicitudInput{Estado: domain.SolicitudEnRevision})
	require.NoError(t, err)
	_, err = service.Revisar(ctx, solicitud.ID, revisor.ID, &RevisarSolicitudInput{Estado: domain.SolicitudAprobada})
	require.NoError(t, err)

	result, err := service.Completar(ctx, solicitud.ID, revisor.ID)
	require.NoError(t, err)
	assert.True(t, result.UsuarioPreexistente)
	assert.Empty(t, result.PasswordTemporal)
	assert.Equal(t, existente.ID, result.Usuario.ID)
}

func TestCompletarRequiereAprobada(t *testing.T) {
	db := setupTestDB(t)
	service := newSolicitudService(db)
	ctx := context.Background()
	revisor := seedUsuario(t, db, "admin@example.com")

	depto := seedDepartamento(t, db, "501", domain.DeptoDisponible)
	solicitud, err := service.Crear(ctx, &CreateSolicitudInput{
		NombreCompleto: "Sin Aprobar",
		Email:          "sinaprobar@example.com",
		DepartamentoID: depto.ID,
	})
	require.NoError(t, err)

	_, err = service.Completar(ctx, solicitud.ID, revisor.ID)
	assert.ErrorIs(t, err, ErrSolicitudNoCompletable)
}

func TestRetirarSoloSolicitudesAbiertas(t *testing.T) {
	db := setupTestDB(t)
	service := newSolicitudService(db)
	ctx := context.Background()

	depto := seedDepartamento(t, db, "601", domain.DeptoDisponible)
	solicitud, err := service.Crear(ctx, &CreateSolicitudInput{
		NombreCompleto: "Retirable",
		Email:          "retirable@example.com",
		DepartamentoID: depto.ID,
	})
	require.NoError(t, err)

	solicitud, err = service.Retirar(ctx, solicitud.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SolicitudRetirada, solicitud.Estado)

	_, err = service.Retirar(ctx, solicitud.ID)
	assert.ErrorIs(t, err, ErrTransicionInvalida)
}
