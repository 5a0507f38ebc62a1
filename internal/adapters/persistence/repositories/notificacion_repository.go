package repositories

import (
	"context"
	"time"

	"edificio-hub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// NotificacionRepository handles notificacion data access
type NotificacionRepository struct {
	db *gorm.DB
}

// NewNotificacionRepository creates a new notificacion repository
func NewNotificacionRepository(db *gorm.DB) *NotificacionRepository {
	return &NotificacionRepository{db: db}
}

// Create creates a new notificacion
func (r *NotificacionRepository) Create(ctx context.Context, notificacion *models.Notificacion) error {
	return r.db.WithContext(ctx).Create(notificacion).Error
}

// CreateBatch inserts a batch of notificaciones in one statement
func (r *NotificacionRepository) CreateBatch(ctx context.Context, notificaciones []*models.Notificacion) error {
	if len(notificaciones) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(notificaciones, 100).Error
}

// GetByID gets a notificacion by ID
func (r *NotificacionRepository) GetByID(ctx context.Context, id uint) (*models.Notificacion, error) {
	var notificacion models.Notificacion
	err := r.db.WithContext(ctx).First(&notificacion, id).Error
	if err != nil {
		return nil, err
	}
	return &notificacion, nil
}

// ListByUsuario lists notificaciones for a usuario, newest first
func (r *NotificacionRepository) ListByUsuario(ctx context.Context, usuarioID uint, soloNoLeidas bool, offset, limit int) ([]*models.Notificacion, int64, error) {
	var notificaciones []*models.Notificacion
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Notificacion{}).Where("usuario_id = ?", usuarioID)
	if soloNoLeidas {
		query = query.Where("leida = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&notificaciones).Error
	return notificaciones, total, err
}

// MarcarLeida marks a single notificacion as read
func (r *NotificacionRepository) MarcarLeida(ctx context.Context, id uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.Notificacion{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"leida": true, "fecha_leida": now}).Error
}

// MarcarTodasLeidas marks every unread notificacion of a usuario as read
func (r *NotificacionRepository) MarcarTodasLeidas(ctx context.Context, usuarioID uint) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.Notificacion{}).
		Where("usuario_id = ? AND leida = ?", usuarioID, false).
		Updates(map[string]interface{}{"leida": true, "fecha_leida": now})
	return result.RowsAffected, result.Error
}

// Delete removes a notificacion
func (r *NotificacionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Notificacion{}, id).Error
}

// CountNoLeidas counts unread notificaciones for a usuario
func (r *NotificacionRepository) CountNoLeidas(ctx context.Context, usuarioID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notificacion{}).
		Where("usuario_id = ? AND leida = ?", usuarioID, false).
		Count(&count).Error
	return count, err
}
