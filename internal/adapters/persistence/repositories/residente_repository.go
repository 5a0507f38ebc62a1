package repositories

import (
	"context"

	"edificio-hub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ResidenteRepository handles residente data access
type ResidenteRepository struct {
	db *gorm.DB
}

// NewResidenteRepository creates a new residente repository
func NewResidenteRepository(db *gorm.DB) *ResidenteRepository {
	return &ResidenteRepository{db: db}
}

// Create creates a new residente
func (r *ResidenteRepository) Create(ctx context.Context, residente *models.Residente) error {
	return r.db.WithContext(ctx).Create(residente).Error
}

// GetByID gets a residente by ID with relations
func (r *ResidenteRepository) GetByID(ctx context.Context, id uint) (*models.Residente, error) {
	var residente models.Residente
	err := r.db.WithContext(ctx).
		Preload("Usuario").
		Preload("Departamento").
		First(&residente, id).Error
	if err != nil {
		return nil, err
	}
	return &residente, nil
}

// GetByUsuarioID gets a residente by usuario ID
func (r *ResidenteRepository) GetByUsuarioID(ctx context.Context, usuarioID uint) (*models.Residente, error) {
	var residente models.Residente
	err := r.db.WithContext(ctx).
		Preload("Usuario").
		Preload("Departamento").
		Where("usuario_id = ? AND activo = ?", usuarioID, true).
		First(&residente).Error
	if err != nil {
		return nil, err
	}
	return &residente, nil
}

// ListFilter represents residente list filters
type ResidenteFilter struct {
	Activo         *bool
	DepartamentoID *uint
}

// List lists residentes with pagination and filters
func (r *ResidenteRepository) List(ctx context.Context, filter *ResidenteFilter, offset, limit int) ([]*models.Residente, int64, error) {
	var residentes []*models.Residente
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Residente{})
	if filter != nil {
		if filter.Activo != nil {
			query = query.Where("activo = ?", *filter.Activo)
		}
		if filter.DepartamentoID != nil {
			query = query.Where("departamento_id = ?", *filter.DepartamentoID)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Usuario").
		Preload("Departamento").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&residentes).Error

	return residentes, total, err
}

// ListActivosByDepartamento lists active residentes assigned to a departamento
func (r *ResidenteRepository) ListActivosByDepartamento(ctx context.Context, departamentoID uint) ([]*models.Residente, error) {
	var residentes []*models.Residente
	err := r.db.WithContext(ctx).
		Where("departamento_id = ? AND activo = ?", departamentoID, true).
		Find(&residentes).Error
	return residentes, err
}

// Update updates a residente
func (r *ResidenteRepository) Update(ctx context.Context, residente *models.Residente) error {
	return r.db.WithContext(ctx).Save(residente).Error
}

// Delete soft deletes a residente
func (r *ResidenteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Residente{}, id).Error
}
