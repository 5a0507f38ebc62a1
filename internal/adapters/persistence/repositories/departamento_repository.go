package repositories

import (
	"context"

	"edificio-hub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// DepartamentoRepository handles departamento data access
type DepartamentoRepository struct {
	db *gorm.DB
}

// NewDepartamentoRepository creates a new departamento repository
func NewDepartamentoRepository(db *gorm.DB) *DepartamentoRepository {
	return &DepartamentoRepository{db: db}
}

// Create creates a new departamento
func (r *DepartamentoRepository) Create(ctx context.Context, departamento *models.Departamento) error {
	return r.db.WithContext(ctx).Create(departamento).Error
}

// GetByID gets a departamento by ID
func (r *DepartamentoRepository) GetByID(ctx context.Context, id uint) (*models.Departamento, error) {
	var departamento models.Departamento
	err := r.db.WithContext(ctx).First(&departamento, id).Error
	if err != nil {
		return nil, err
	}
	return &departamento, nil
}

// GetByNumero gets a departamento by unit number
func (r *DepartamentoRepository) GetByNumero(ctx context.Context, numero string) (*models.Departamento, error) {
	var departamento models.Departamento
	err := r.db.WithContext(ctx).Where("numero = ?", numero).First(&departamento).Error
	if err != nil {
		return nil, err
	}
	return &departamento, nil
}

// List lists departamentos with pagination, optionally filtered by estado
func (r *DepartamentoRepository) List(ctx context.Context, estado string, offset, limit int) ([]*models.Departamento, int64, error) {
	var departamentos []*models.Departamento
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Departamento{})
	if estado != "" {
		query = query.Where("estado = ?", estado)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("numero ASC").Offset(offset).Limit(limit).Find(&departamentos).Error
	return departamentos, total, err
}

// ListAll lists every departamento (occupancy reconciliation)
func (r *DepartamentoRepository) ListAll(ctx context.Context) ([]*models.Departamento, error) {
	var departamentos []*models.Departamento
	err := r.db.WithContext(ctx).Find(&departamentos).Error
	return departamentos, err
}

// Update updates a departamento
func (r *DepartamentoRepository) Update(ctx context.Context, departamento *models.Departamento) error {
	return r.db.WithContext(ctx).Save(departamento).Error
}

// UpdateEstado updates only the occupancy state
func (r *DepartamentoRepository) UpdateEstado(ctx context.Context, id uint, estado string) error {
	return r.db.WithContext(ctx).Model(&models.Departamento{}).
		Where("id = ?", id).
		Update("estado", estado).Error
}

// Delete soft deletes a departamento
func (r *DepartamentoRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Departamento{}, id).Error
}

// CountByEstado counts departamentos per occupancy state
func (r *DepartamentoRepository) CountByEstado(ctx context.Context, estado string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Departamento{}).Where("estado = ?", estado).Count(&count).Error
	return count, err
}
