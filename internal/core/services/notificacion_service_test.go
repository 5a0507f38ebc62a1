package services

import (
	"context"
	"errors"
	"testing"

	"edificio-hub/internal/adapters/persistence/models"
	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeEmailSender struct {
	enviados []string
	fallar   map[string]bool
}

func (f *fakeEmailSender) Enabled() bool { return true }

func (f *fakeEmailSender) SendEmail(destinatario, nombre, asunto, contenidoHTML string) error {
	if f.fallar[destinatario] {
		return errors.New("proveedor rechazó el correo")
	}
	f.enviados = append(f.enviados, destinatario)
	return nil
}

func newNotificacionService(db *gorm.DB, sender EmailSender) *NotificacionService {
	return NewNotificacionService(
		repositories.NewNotificacionRepository(db),
		repositories.NewUsuarioRepository(db),
		sender,
	)
}

func TestCrearNotificacionValidaTipo(t *testing.T) {
	db := setupTestDB(t)
	service := newNotificacionService(db, nil)
	usuario := seedUsuario(t, db, "ana@example.com")

	notificacion, err := service.Crear(context.Background(), &CreateNotificacionInput{
		UsuarioID: usuario.ID,
		Tipo:      domain.NotifPago,
		Titulo:    "Pago vencido",
	})
	require.NoError(t, err)
	assert.False(t, notificacion.Leida)

	_, err = service.Crear(context.Background(), &CreateNotificacionInput{
		UsuarioID: usuario.ID,
		Tipo:      "telegrama",
		Titulo:    "x",
	})
	assert.ErrorIs(t, err, ErrTipoNotifInvalido)
}

func TestPublicarAnuncioNotificaATodosLosActivos(t *testing.T) {
	db := setupTestDB(t)
	sender := &fakeEmailSender{}
	service := newNotificacionService(db, sender)
	ctx := context.Background()

	seedUsuario(t, db, "uno@example.com")
	seedUsuario(t, db, "dos@example.com")
	inactivo := seedUsuario(t, db, "baja@example.com")
	require.NoError(t, db.Model(inactivo).Update("activo", false).Error)

	result, err := service.PublicarAnuncio(ctx, &AnuncioInput{
		Titulo:  "Corte de agua",
		Mensaje: "Mañana de 9 a 12.",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Notificados)
	assert.Equal(t, 2, result.CorreosEnviados)
	assert.ElementsMatch(t, []string{"uno@example.com", "dos@example.com"}, sender.enviados)

	var total int64
	require.NoError(t, db.Model(&models.Notificacion{}).Where("tipo = ?", domain.NotifAnuncio).Count(&total).Error)
	assert.EqualValues(t, 2, total)
}

func TestPublicarAnuncioToleraFallosDeCorreo(t *testing.T) {
	db := setupTestDB(t)
	sender := &fakeEmailSender{fallar: map[string]bool{"uno@example.com": true}}
	service := newNotificacionService(db, sender)

	seedUsuario(t, db, "uno@example.com")
	seedUsuario(t, db, "dos@example.com")

	result, err := service.PublicarAnuncio(context.Background(), &AnuncioInput{
		Titulo:  "Fumigación",
		Mensaje: "Este viernes.",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Notificados)
	assert.Equal(t, 1, result.CorreosEnviados)
}

func TestMarcarLeidaExigePropiedad(t *testing.T) {
	db := setupTestDB(t)
	service := newNotificacionService(db, nil)
	ctx := context.Background()

	duenio := seedUsuario(t, db, "duenio@example.com")
	otro := seedUsuario(t, db, "otro@example.com")

	notificacion, err := service.Crear(ctx, &CreateNotificacionInput{
		UsuarioID: duenio.ID,
		Tipo:      domain.NotifSistema,
		Titulo:    "Bienvenido",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, service.MarcarLeida(ctx, notificacion.ID, otro.ID), domain.ErrForbidden)
	require.NoError(t, service.MarcarLeida(ctx, notificacion.ID, duenio.ID))

	pendientes, err := service.CountNoLeidas(ctx, duenio.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, pendientes)
}

func TestEliminarExigePropiedad(t *testing.T) {
	db := setupTestDB(t)
	service := newNotificacionService(db, nil)
	ctx := context.Background()

	duenio := seedUsuario(t, db, "duenio@example.com")
	otro := seedUsuario(t, db, "otro@example.com")

	notificacion, err := service.Crear(ctx, &CreateNotificacionInput{
		UsuarioID: duenio.ID,
		Tipo:      domain.NotifSistema,
		Titulo:    "Aviso",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, service.Eliminar(ctx, notificacion.ID, otro.ID), domain.ErrForbidden)
	require.NoError(t, service.Eliminar(ctx, notificacion.ID, duenio.ID))
	assert.ErrorIs(t, service.Eliminar(ctx, notificacion.ID, duenio.ID), ErrNotificacionNotFound)
}
