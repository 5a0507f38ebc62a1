package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"edificio-hub/internal/adapters/persistence/models"
	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/core/domain"

	"gorm.io/gorm"
)

// Notificacion errors
var (
	ErrNotificacionNotFound = errors.New("notificación no encontrada")
	ErrTipoNotifInvalido    = errors.New("tipo de notificación inválido")
)

// EmailSender abstracts the transactional email provider
type EmailSender interface {
	Enabled() bool
	SendEmail(destinatario, nombre, asunto, contenidoHTML string) error
}

// NotificacionService handles notificacion business logic
type NotificacionService struct {
	notificacionRepo *repositories.NotificacionRepository
	usuarioRepo      repositories.UsuarioRepository
	emailSender      EmailSender
}

// NewNotificacionService creates a new notificacion service. emailSender may
// be nil when no provider is configured.
func NewNotificacionService(
	notificacionRepo *repositories.NotificacionRepository,
	usuarioRepo repositories.UsuarioRepository,
	emailSender EmailSender,
) *NotificacionService {
	return &NotificacionService{
		notificacionRepo: notificacionRepo,
		usuarioRepo:      usuarioRepo,
		emailSender:      emailSender,
	}
}

// CreateNotificacionInput represents notificacion creation input
type CreateNotificacionInput struct {
	UsuarioID uint   `json:"usuario_id" validate:"required"`
	Tipo      string `json:"tipo" validate:"required"`
	Titulo    string `json:"titulo" validate:"required,max=200"`
	Mensaje   string `json:"mensaje"`
}

// AnuncioInput represents a building-wide announcement
type AnuncioInput struct {
	Titulo  string `json:"titulo" validate:"required,max=200"`
	Mensaje string `json:"mensaje" validate:"required"`
}

// Crear creates a notificacion for one usuario
func (s *NotificacionService) Crear(ctx context.Context, input *CreateNotificacionInput) (*models.Notificacion, error) {
	if !domain.Contains(domain.TiposNotificacion, input.Tipo) {
		return nil, ErrTipoNotifInvalido
	}

	if _, err := s.usuarioRepo.GetByID(ctx, input.UsuarioID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}

	notificacion := &models.Notificacion{
		UsuarioID: input.UsuarioID,
		Tipo:      input.Tipo,
		Titulo:    input.Titulo,
		Mensaje:   input.Mensaje,
	}

	if err := s.notificacionRepo.Create(ctx, notificacion); err != nil {
		return nil, err
	}

	return notificacion, nil
}

// Notificar is a convenience wrapper used by other services
func (s *NotificacionService) Notificar(ctx context.Context, usuarioID uint, tipo, titulo, mensaje string) {
	notificacion := &models.Notificacion{
		UsuarioID: usuarioID,
		Tipo:      tipo,
		Titulo:    titulo,
		Mensaje:   mensaje,
	}
	if err := s.notificacionRepo.Create(ctx, notificacion); err != nil {
		log.Printf("⚠️ Failed to create notificacion for usuario %d: %v", usuarioID, err)
	}
}

// AnuncioResult summarizes a fan-out announcement
type AnuncioResult struct {
	Notificados    int `json:"notificados"`
	CorreosEnviados int `json:"correos_enviados"`
}

// PublicarAnuncio fans out an anuncio notificacion to every active usuario and
// sends the announcement email best-effort: email failures are logged, never
// returned to the caller.
func (s *NotificacionService) PublicarAnuncio(ctx context.Context, input *AnuncioInput) (*AnuncioResult, error) {
	usuarios, err := s.usuarioRepo.ListActivos(ctx)
	if err != nil {
		return nil, err
	}

	notificaciones := make([]*models.Notificacion, 0, len(usuarios))
	for _, usuario := range usuarios {
		notificaciones = append(notificaciones, &models.Notificacion{
			UsuarioID: usuario.ID,
			Tipo:      domain.NotifAnuncio,
			Titulo:    input.Titulo,
			Mensaje:   input.Mensaje,
		})
	}

	if err := s.notificacionRepo.CreateBatch(ctx, notificaciones); err != nil {
		return nil, err
	}

	result := &AnuncioResult{Notificados: len(notificaciones)}

	if s.emailSender != nil && s.emailSender.Enabled() {
		contenido := fmt.Sprintf("<h2>%s</h2><p>%s</p>", input.Titulo, input.Mensaje)
		for _, usuario := range usuarios {
			nombre := usuario.Nombre + " " + usuario.Apellido
			if err := s.emailSender.SendEmail(usuario.Email, nombre, input.Titulo, contenido); err != nil {
				log.Printf("⚠️ Announcement email to %s failed: %v", usuario.Email, err)
				continue
			}
			result.CorreosEnviados++
		}
	}

	log.Printf("✅ Anuncio published: %d notificaciones, %d emails", result.Notificados, result.CorreosEnviados)
	return result, nil
}

// ListByUsuario lists notificaciones of a usuario
func (s *NotificacionService) ListByUsuario(ctx context.Context, usuarioID uint, soloNoLeidas bool, offset, limit int) ([]*models.Notificacion, int64, error) {
	return s.notificacionRepo.ListByUsuario(ctx, usuarioID, soloNoLeidas, offset, limit)
}

// MarcarLeida marks a notificacion as read, enforcing ownership
func (s *NotificacionService) MarcarLeida(ctx context.Context, id, usuarioID uint) error {
	notificacion, err := s.notificacionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificacionNotFound
		}
		return err
	}
	if notificacion.UsuarioID != usuarioID {
		return domain.ErrForbidden
	}

	return s.notificacionRepo.MarcarLeida(ctx, id)
}

// MarcarTodasLeidas marks every unread notificacion of a usuario as read
func (s *NotificacionService) MarcarTodasLeidas(ctx context.Context, usuarioID uint) (int64, error) {
	return s.notificacionRepo.MarcarTodasLeidas(ctx, usuarioID)
}

// Eliminar removes a notificacion, enforcing ownership
func (s *NotificacionService) Eliminar(ctx context.Context, id, usuarioID uint) error {
	notificacion, err := s.notificacionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificacionNotFound
		}
		return err
	}
	if notificacion.UsuarioID != usuarioID {
		return domain.ErrForbidden
	}

	return s.notificacionRepo.Delete(ctx, id)
}

// CountNoLeidas counts unread notificaciones
func (s *NotificacionService) CountNoLeidas(ctx context.Context, usuarioID uint) (int64, error) {
	return s.notificacionRepo.CountNoLeidas(ctx, usuarioID)
}
