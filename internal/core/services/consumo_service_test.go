package services

import (
	"context"
	"testing"
	"time"

	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newConsumoService(db *gorm.DB) *ConsumoService {
	return NewConsumoService(repositories.NewConsumoRepository(db), repositories.NewDepartamentoRepository(db))
}

func TestRegistrarConsumoValidaServicioYLectura(t *testing.T) {
	db := setupTestDB(t)
	service := newConsumoService(db)
	ctx := context.Background()
	depto := seedDepartamento(t, db, "101", domain.DeptoOcupado)

	_, err := service.Registrar(ctx, &CreateConsumoInput{DepartamentoID: depto.ID, Servicio: "internet", Lectura: 10})
	assert.ErrorIs(t, err, ErrServicioInvalido)

	_, err = service.Registrar(ctx, &CreateConsumoInput{DepartamentoID: depto.ID, Servicio: "agua", Lectura: -1})
	assert.ErrorIs(t, err, ErrLecturaInvalida)

	_, err = service.Registrar(ctx, &CreateConsumoInput{DepartamentoID: 9999, Servicio: "agua", Lectura: 10})
	assert.ErrorIs(t, err, ErrDepartamentoNotFound)
}

func TestRegistrarConsumoAsignaUnidadPorServicio(t *testing.T) {
	db := setupTestDB(t)
	service := newConsumoService(db)
	ctx := context.Background()
	depto := seedDepartamento(t, db, "101", domain.DeptoOcupado)

	agua, err := service.Registrar(ctx, &CreateConsumoInput{DepartamentoID: depto.ID, Servicio: "agua", Lectura: 12.5})
	require.NoError(t, err)
	assert.Equal(t, "m3", agua.Unidad)

	luz, err := service.Registrar(ctx, &CreateConsumoInput{DepartamentoID: depto.ID, Servicio: "luz", Lectura: 230})
	require.NoError(t, err)
	assert.Equal(t, "kWh", luz.Unidad)

	litros := "l"
	custom, err := service.Registrar(ctx, &CreateConsumoInput{DepartamentoID: depto.ID, Servicio: "agua", Lectura: 3, Unidad: litros})
	require.NoError(t, err)
	assert.Equal(t, litros, custom.Unidad)
}

func TestResumenMensualAgrupaPorServicio(t *testing.T) {
	db := setupTestDB(t)
	service := newConsumoService(db)
	ctx := context.Background()
	depto := seedDepartamento(t, db, "101", domain.DeptoOcupado)

	enero := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.Local)
	febrero := time.Date(2026, time.February, 2, 12, 0, 0, 0, time.Local)

	for _, lectura := range []struct {
		servicio string
		valor    float64
		fecha    time.Time
	}{
		{"agua", 10, enero},
		{"agua", 5, enero.AddDate(0, 0, 10)},
		{"luz", 120, enero},
		{"agua", 99, febrero}, // fuera del mes consultado
	} {
		f := lectura.fecha
		_, err := service.Registrar(ctx, &CreateConsumoInput{
			DepartamentoID: depto.ID,
			Servicio:       lectura.servicio,
			Lectura:        lectura.valor,
			FechaLectura:   &f,
		})
		require.NoError(t, err)
	}

	resumen, err := service.ResumenMensual(ctx, depto.ID, 2026, time.January)
	require.NoError(t, err)

	totales := make(map[string]float64, len(resumen))
	for _, r := range resumen {
		totales[r.Servicio] = r.Total
	}
	assert.InDelta(t, 15, totales["agua"], 0.001)
	assert.InDelta(t, 120, totales["luz"], 0.001)
}
