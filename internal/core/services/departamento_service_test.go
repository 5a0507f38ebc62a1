package services

import (
	"context"
	"testing"

	"edificio-hub/internal/adapters/persistence/models"
	"edificio-hub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsignarResidenteOcupaDepartamento(t *testing.T) {
	db := setupTestDB(t)
	svc := newDepartamentoService(db)
	ctx := context.Background()

	usuario := seedUsuario(t, db, "ana@test.local")
	residente := seedResidente(t, db, usuario.ID, nil)
	departamento := seedDepartamento(t, db, "101", domain.DeptoDisponible)

	asignado, err := svc.AsignarResidente(ctx, departamento.ID, residente.ID)
	require.NoError(t, err)
	require.NotNil(t, asignado.DepartamentoID)
	assert.Equal(t, departamento.ID, *asignado.DepartamentoID)
	assert.NotNil(t, asignado.FechaIngreso)

	var refreshed models.Departamento
	require.NoError(t, db.First(&refreshed, departamento.ID).Error)
	assert.Equal(t, domain.DeptoOcupado, refreshed.Estado)
}

func TestAsignarResidenteRechazaDepartamentoOcupado(t *testing.T) {
	db := setupTestDB(t)
	svc := newDepartamentoService(db)
	ctx := context.Background()

	usuario := seedUsuario(t, db, "ana@test.local")
	residente := seedResidente(t, db, usuario.ID, nil)
	departamento := seedDepartamento(t, db, "201", domain.DeptoOcupado)

	_, err := svc.AsignarResidente(ctx, departamento.ID, residente.ID)
	assert.ErrorIs(t, err, ErrDepartamentoNoDisponible)
}

func TestAsignarResidenteLiberaDepartamentoAnterior(t *testing.T) {
	db := setupTestDB(t)
	svc := newDepartamentoService(db)
	ctx := context.Background()

	usuario := seedUsuario(t, db, "ana@test.local")
	anterior := seedDepartamento(t, db, "301", domain.DeptoOcupado)
	nuevo := seedDepartamento(t, db, "302", domain.DeptoDisponible)
	residente := seedResidente(t, db, usuario.ID, &anterior.ID)

	_, err := svc.AsignarResidente(ctx, nuevo.ID, residente.ID)
	require.NoError(t, err)

	var viejo, destino models.Departamento
	require.NoError(t, db.First(&viejo, anterior.ID).Error)
	require.NoError(t, db.First(&destino, nuevo.ID).Error)
	assert.Equal(t, domain.DeptoDisponible, viejo.Estado)
	assert.Equal(t, domain.DeptoOcupado, destino.Estado)
}

func TestLiberarCierraResidencias(t *testing.T) {
	db := setupTestDB(t)
	svc := newDepartamentoService(db)
	ctx := context.Background()

	usuario := seedUsuario(t, db, "ana@test.local")
	departamento := seedDepartamento(t, db, "401", domain.DeptoOcupado)
	residente := seedResidente(t, db, usuario.ID, &departamento.ID)

	require.NoError(t, svc.Liberar(ctx, departamento.ID))

	var refreshedDepto models.Departamento
	require.NoError(t, db.First(&refreshedDepto, departamento.ID).Error)
	assert.Equal(t, domain.DeptoDisponible, refreshedDepto.Estado)

	var refreshedResidente models.Residente
	require.NoError(t, db.First(&refreshedResidente, residente.ID).Error)
	assert.Nil(t, refreshedResidente.DepartamentoID)
	assert.NotNil(t, refreshedResidente.FechaSalida)
}

func TestSincronizarEstadosCorrigeInconsistencias(t *testing.T) {
	db := setupTestDB(t)
	svc := newDepartamentoService(db)
	ctx := context.Background()

	// ocupado with no residents should flip back to disponible
	vacio := seedDepartamento(t, db, "501", domain.DeptoOcupado)
	// disponible with an active resident should flip to ocupado
	habitado := seedDepartamento(t, db, "502", domain.DeptoDisponible)
	usuario := seedUsuario(t, db, "ana@test.local")
	seedResidente(t, db, usuario.ID, &habitado.ID)
	// mantenimiento is never touched by the resync
	enObra := seedDepartamento(t, db, "503", domain.DeptoMantenimiento)

	corregidos, err := svc.SincronizarEstados(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, corregidos)

	var d1, d2, d3 models.Departamento
	require.NoError(t, db.First(&d1, vacio.ID).Error)
	require.NoError(t, db.First(&d2, habitado.ID).Error)
	require.NoError(t, db.First(&d3, enObra.ID).Error)
	assert.Equal(t, domain.DeptoDisponible, d1.Estado)
	assert.Equal(t, domain.DeptoOcupado, d2.Estado)
	assert.Equal(t, domain.DeptoMantenimiento, d3.Estado)
}

func TestDeleteRechazaDepartamentoConResidentes(t *testing.T) {
	db := setupTestDB(t)
	svc := newDepartamentoService(db)
	ctx := context.Background()

	usuario := seedUsuario(t, db, "ana@test.local")
	departamento := seedDepartamento(t, db, "601", domain.DeptoOcupado)
	seedResidente(t, db, usuario.ID, &departamento.ID)

	err := svc.Delete(ctx, departamento.ID)
	assert.ErrorIs(t, err, ErrDepartamentoNoDisponible)
}
