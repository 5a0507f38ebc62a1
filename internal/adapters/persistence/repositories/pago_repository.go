package repositories

import (
	"context"
	"time"

	"edificio-hub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// PagoRepository handles pago data access
type PagoRepository struct {
	db *gorm.DB
}

// NewPagoRepository creates a new pago repository
func NewPagoRepository(db *gorm.DB) *PagoRepository {
	return &PagoRepository{db: db}
}

// Create creates a new pago
func (r *PagoRepository) Create(ctx context.Context, pago *models.Pago) error {
	return r.db.WithContext(ctx).Create(pago).Error
}

// GetByID gets a pago by ID with relations
func (r *PagoRepository) GetByID(ctx context.Context, id uint) (*models.Pago, error) {
	var pago models.Pago
	err := r.db.WithContext(ctx).
		Preload("Residente").
		Preload("Residente.Usuario").
		Preload("Residente.Departamento").
		First(&pago, id).Error
	if err != nil {
		return nil, err
	}
	return &pago, nil
}

// GetByPaymentIntentID gets a pago by its Stripe payment intent id
func (r *PagoRepository) GetByPaymentIntentID(ctx context.Context, intentID string) (*models.Pago, error) {
	var pago models.Pago
	err := r.db.WithContext(ctx).
		Where("stripe_payment_intent_id = ?", intentID).
		First(&pago).Error
	if err != nil {
		return nil, err
	}
	return &pago, nil
}

// PagoFilter represents pago list filters
type PagoFilter struct {
	Estado      string
	TipoPago    string
	ResidenteID *uint
}

// List lists pagos with pagination and filters
func (r *PagoRepository) List(ctx context.Context, filter *PagoFilter, offset, limit int) ([]*models.Pago, int64, error) {
	var pagos []*models.Pago
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Pago{})
	if filter != nil {
		if filter.Estado != "" {
			query = query.Where("estado = ?", filter.Estado)
		}
		if filter.TipoPago != "" {
			query = query.Where("tipo_pago = ?", filter.TipoPago)
		}
		if filter.ResidenteID != nil {
			query = query.Where("residente_id = ?", *filter.ResidenteID)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Residente").
		Preload("Residente.Usuario").
		Preload("Residente.Departamento").
		Order("fecha_vencimiento DESC").
		Offset(offset).
		Limit(limit).
		Find(&pagos).Error

	return pagos, total, err
}

// ListByPeriodo lists pagos whose due date falls inside [desde, hasta)
func (r *PagoRepository) ListByPeriodo(ctx context.Context, desde, hasta time.Time) ([]*models.Pago, error) {
	var pagos []*models.Pago
	err := r.db.WithContext(ctx).
		Preload("Residente").
		Preload("Residente.Usuario").
		Preload("Residente.Departamento").
		Where("fecha_vencimiento >= ? AND fecha_vencimiento < ?", desde, hasta).
		Order("fecha_vencimiento ASC").
		Find(&pagos).Error
	return pagos, err
}

// Update updates a pago
func (r *PagoRepository) Update(ctx context.Context, pago *models.Pago) error {
	return r.db.WithContext(ctx).Save(pago).Error
}

// MarcarAtrasados flips pendiente pagos past their due date to atrasado.
// Returns the number of affected rows.
func (r *PagoRepository) MarcarAtrasados(ctx context.Context, ahora time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Pago{}).
		Where("estado = ? AND fecha_vencimiento < ?", "pendiente", ahora).
		Update("estado", "atrasado")
	return result.RowsAffected, result.Error
}

// SumMontoByEstado sums monto on pagos matching estado since the given date
func (r *PagoRepository) SumMontoByEstado(ctx context.Context, estado string, desde time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Pago{}).
		Where("estado = ? AND fecha_pago >= ?", estado, desde).
		Select("COALESCE(SUM(monto), 0)").
		Scan(&total).Error
	return total, err
}

// CountByEstado counts pagos per state
func (r *PagoRepository) CountByEstado(ctx context.Context, estado string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Pago{}).Where("estado = ?", estado).Count(&count).Error
	return count, err
}
