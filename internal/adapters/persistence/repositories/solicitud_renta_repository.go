package repositories

import (
	"context"

	"edificio-hub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SolicitudRentaRepository handles solicitud de renta data access
type SolicitudRentaRepository struct {
	db *gorm.DB
}

// NewSolicitudRentaRepository creates a new solicitud renta repository
func NewSolicitudRentaRepository(db *gorm.DB) *SolicitudRentaRepository {
	return &SolicitudRentaRepository{db: db}
}

// Create creates a new solicitud
func (r *SolicitudRentaRepository) Create(ctx context.Context, solicitud *models.SolicitudRenta) error {
	return r.db.WithContext(ctx).Create(solicitud).Error
}

// GetByID gets a solicitud by ID with its departamento
func (r *SolicitudRentaRepository) GetByID(ctx context.Context, id uint) (*models.SolicitudRenta, error) {
	var solicitud models.SolicitudRenta
	err := r.db.WithContext(ctx).
		Preload("Departamento").
		Preload("Revisor").
		First(&solicitud, id).Error
	if err != nil {
		return nil, err
	}
	return &solicitud, nil
}

// List lists solicitudes with pagination, optionally filtered by estado
func (r *SolicitudRentaRepository) List(ctx context.Context, estado string, offset, limit int) ([]*models.SolicitudRenta, int64, error) {
	var solicitudes []*models.SolicitudRenta
	var total int64

	query := r.db.WithContext(ctx).Model(&models.SolicitudRenta{})
	if estado != "" {
		query = query.Where("estado = ?", estado)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Departamento").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&solicitudes).Error

	return solicitudes, total, err
}

// Update updates a solicitud
func (r *SolicitudRentaRepository) Update(ctx context.Context, solicitud *models.SolicitudRenta) error {
	return r.db.WithContext(ctx).Save(solicitud).Error
}

// CountByEstado counts solicitudes per state
func (r *SolicitudRentaRepository) CountByEstado(ctx context.Context, estado string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SolicitudRenta{}).Where("estado = ?", estado).Count(&count).Error
	return count, err
}
