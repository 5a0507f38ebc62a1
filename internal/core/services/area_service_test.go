package services

import (
	"context"
	"testing"

	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAreaService(db *gorm.DB) *AreaService {
	return NewAreaService(repositories.NewAreaRepository(db), repositories.NewResidenteRepository(db))
}

func seedAreaFixture(t *testing.T, db *gorm.DB) (*AreaService, uint, uint) {
	t.Helper()
	service := newAreaService(db)

	area, err := service.CrearArea(context.Background(), &CreateAreaInput{
		Nombre:          "Salón de eventos",
		Capacidad:       50,
		CostoReserva:    500,
		HorarioApertura: "08:00",
		HorarioCierre:   "22:00",
	})
	require.NoError(t, err)

	usuario := seedUsuario(t, db, "reservante@example.com")
	residente := seedResidente(t, db, usuario.ID, nil)
	return service, area.ID, residente.ID
}

func TestCrearReservaValidaHorario(t *testing.T) {
	db := setupTestDB(t)
	service, areaID, residenteID := seedAreaFixture(t, db)
	ctx := context.Background()

	casos := []CreateReservaInput{
		{AreaID: areaID, ResidenteID: residenteID, Fecha: "no-es-fecha", HoraInicio: "10:00", HoraFin: "12:00"},
		{AreaID: areaID, ResidenteID: residenteID, Fecha: "2026-10-01", HoraInicio: "25:00", HoraFin: "26:00"},
		{AreaID: areaID, ResidenteID: residenteID, Fecha: "2026-10-01", HoraInicio: "12:00", HoraFin: "10:00"},
		{AreaID: areaID, ResidenteID: residenteID, Fecha: "2026-10-01", HoraInicio: "10:00", HoraFin: "10:00"},
	}
	for _, caso := range casos {
		_, err := service.CrearReserva(ctx, &caso)
		assert.ErrorIs(t, err, ErrHorarioInvalido)
	}
}

func TestCrearReservaRechazaTraslapes(t *testing.T) {
	db := setupTestDB(t)
	service, areaID, residenteID := seedAreaFixture(t, db)
	ctx := context.Background()

	_, err := service.CrearReserva(ctx, &CreateReservaInput{
		AreaID: areaID, ResidenteID: residenteID,
		Fecha: "2026-10-01", HoraInicio: "10:00", HoraFin: "12:00",
	})
	require.NoError(t, err)

	// intersecta por la mitad
	_, err = service.CrearReserva(ctx, &CreateReservaInput{
		AreaID: areaID, ResidenteID: residenteID,
		Fecha: "2026-10-01", HoraInicio: "11:00", HoraFin: "13:00",
	})
	assert.ErrorIs(t, err, ErrReservaTraslapada)

	// contiene a la existente
	_, err = service.CrearReserva(ctx, &CreateReservaInput{
		AreaID: areaID, ResidenteID: residenteID,
		Fecha: "2026-10-01", HoraInicio: "09:00", HoraFin: "13:00",
	})
	assert.ErrorIs(t, err, ErrReservaTraslapada)

	// colindante no traslapa
	reserva, err := service.CrearReserva(ctx, &CreateReservaInput{
		AreaID: areaID, ResidenteID: residenteID,
		Fecha: "2026-10-01", HoraInicio: "12:00", HoraFin: "14:00",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReservaPendiente, reserva.Estado)

	// otra fecha queda libre
	_, err = service.CrearReserva(ctx, &CreateReservaInput{
		AreaID: areaID, ResidenteID: residenteID,
		Fecha: "2026-10-02", HoraInicio: "10:00", HoraFin: "12:00",
	})
	assert.NoError(t, err)
}

func TestReservaCanceladaLiberaHorario(t *testing.T) {
	db := setupTestDB(t)
	service, areaID, residenteID := seedAreaFixture(t, db)
	ctx := context.Background()

	reserva, err := service.CrearReserva(ctx, &CreateReservaInput{
		AreaID: areaID, ResidenteID: residenteID,
		Fecha: "2026-10-01", HoraInicio: "10:00", HoraFin: "12:00",
	})
	require.NoError(t, err)

	_, err = service.Cancelar(ctx, reserva.ID)
	require.NoError(t, err)

	_, err = service.CrearReserva(ctx, &CreateReservaInput{
		AreaID: areaID, ResidenteID: residenteID,
		Fecha: "2026-10-01", HoraInicio: "10:00", HoraFin: "12:00",
	})
	assert.NoError(t, err)
}

func TestConfirmarSoloReservasPendientes(t *testing.T) {
	db := setupTestDB(t)
	service, areaID, residenteID := seedAreaFixture(t, db)
	ctx := context.Background()

	reserva, err := service.CrearReserva(ctx, &CreateReservaInput{
		AreaID: areaID, ResidenteID: residenteID,
		Fecha: "2026-10-01", HoraInicio: "10:00", HoraFin: "12:00",
	})
	require.NoError(t, err)

	reserva, err = service.Confirmar(ctx, reserva.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservaConfirmada, reserva.Estado)

	_, err = service.Confirmar(ctx, reserva.ID)
	assert.ErrorIs(t, err, ErrTransicionInvalida)
}

func TestCancelarEsTerminal(t *testing.T) {
	db := setupTestDB(t)
	service, areaID, residenteID := seedAreaFixture(t, db)
	ctx := context.Background()

	reserva, err := service.CrearReserva(ctx, &CreateReservaInput{
		AreaID: areaID, ResidenteID: residenteID,
		Fecha: "2026-10-01", HoraInicio: "10:00", HoraFin: "12:00",
	})
	require.NoError(t, err)

	reserva, err = service.Cancelar(ctx, reserva.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservaCancelada, reserva.Estado)

	_, err = service.Cancelar(ctx, reserva.ID)
	assert.ErrorIs(t, err, ErrReservaCerrada)
}

func TestCrearReservaRequiereAreaActiva(t *testing.T) {
	db := setupTestDB(t)
	service, areaID, residenteID := seedAreaFixture(t, db)
	ctx := context.Background()

	inactiva := false
	_, err := service.UpdateArea(ctx, areaID, &UpdateAreaInput{Activa: &inactiva})
	require.NoError(t, err)

	_, err = service.CrearReserva(ctx, &CreateReservaInput{
		AreaID: areaID, ResidenteID: residenteID,
		Fecha: "2026-10-01", HoraInicio: "10:00", HoraFin: "12:00",
	})
	assert.ErrorIs(t, err, ErrAreaInactiva)
}
