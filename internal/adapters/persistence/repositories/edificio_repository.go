package repositories

import (
	"context"
	"time"

	"edificio-hub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ============================================================
// Personal del edificio
// ============================================================

// PersonalRepository handles personal_edificio data access
type PersonalRepository struct {
	db *gorm.DB
}

// NewPersonalRepository creates a new personal repository
func NewPersonalRepository(db *gorm.DB) *PersonalRepository {
	return &PersonalRepository{db: db}
}

func (r *PersonalRepository) Create(ctx context.Context, personal *models.PersonalEdificio) error {
	return r.db.WithContext(ctx).Create(personal).Error
}

func (r *PersonalRepository) GetByID(ctx context.Context, id uint) (*models.PersonalEdificio, error) {
	var personal models.PersonalEdificio
	err := r.db.WithContext(ctx).First(&personal, id).Error
	if err != nil {
		return nil, err
	}
	return &personal, nil
}

func (r *PersonalRepository) List(ctx context.Context, offset, limit int) ([]*models.PersonalEdificio, int64, error) {
	var personal []*models.PersonalEdificio
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.PersonalEdificio{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).Order("nombre ASC").Offset(offset).Limit(limit).Find(&personal).Error
	return personal, total, err
}

func (r *PersonalRepository) Update(ctx context.Context, personal *models.PersonalEdificio) error {
	return r.db.WithContext(ctx).Save(personal).Error
}

func (r *PersonalRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.PersonalEdificio{}, id).Error
}

// ============================================================
// Solicitudes de mantenimiento
// ============================================================

// MantenimientoRepository handles solicitudes_mantenimiento data access
type MantenimientoRepository struct {
	db *gorm.DB
}

// NewMantenimientoRepository creates a new mantenimiento repository
func NewMantenimientoRepository(db *gorm.DB) *MantenimientoRepository {
	return &MantenimientoRepository{db: db}
}

func (r *MantenimientoRepository) Create(ctx context.Context, solicitud *models.SolicitudMantenimiento) error {
	return r.db.WithContext(ctx).Create(solicitud).Error
}

func (r *MantenimientoRepository) GetByID(ctx context.Context, id uint) (*models.SolicitudMantenimiento, error) {
	var solicitud models.SolicitudMantenimiento
	err := r.db.WithContext(ctx).
		Preload("Departamento").
		Preload("Residente").
		Preload("Asignado").
		First(&solicitud, id).Error
	if err != nil {
		return nil, err
	}
	return &solicitud, nil
}

// MantenimientoFilter represents mantenimiento list filters
type MantenimientoFilter struct {
	Estado         string
	DepartamentoID *uint
}

func (r *MantenimientoRepository) List(ctx context.Context, filter *MantenimientoFilter, offset, limit int) ([]*models.SolicitudMantenimiento, int64, error) {
	var solicitudes []*models.SolicitudMantenimiento
	var total int64

	query := r.db.WithContext(ctx).Model(&models.SolicitudMantenimiento{})
	if filter != nil {
		if filter.Estado != "" {
			query = query.Where("estado = ?", filter.Estado)
		}
		if filter.DepartamentoID != nil {
			query = query.Where("departamento_id = ?", *filter.DepartamentoID)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Departamento").
		Preload("Asignado").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&solicitudes).Error

	return solicitudes, total, err
}

func (r *MantenimientoRepository) Update(ctx context.Context, solicitud *models.SolicitudMantenimiento) error {
	return r.db.WithContext(ctx).Save(solicitud).Error
}

func (r *MantenimientoRepository) CountByEstado(ctx context.Context, estado string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SolicitudMantenimiento{}).Where("estado = ?", estado).Count(&count).Error
	return count, err
}

// ============================================================
// Áreas comunes + reservas
// ============================================================

// AreaRepository handles areas_comunes and reservas_areas data access
type AreaRepository struct {
	db *gorm.DB
}

// NewAreaRepository creates a new area repository
func NewAreaRepository(db *gorm.DB) *AreaRepository {
	return &AreaRepository{db: db}
}

func (r *AreaRepository) Create(ctx context.Context, area *models.AreaComun) error {
	return r.db.WithContext(ctx).Create(area).Error
}

func (r *AreaRepository) GetByID(ctx context.Context, id uint) (*models.AreaComun, error) {
	var area models.AreaComun
	err := r.db.WithContext(ctx).First(&area, id).Error
	if err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *AreaRepository) List(ctx context.Context) ([]*models.AreaComun, error) {
	var areas []*models.AreaComun
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&areas).Error
	return areas, err
}

func (r *AreaRepository) Update(ctx context.Context, area *models.AreaComun) error {
	return r.db.WithContext(ctx).Save(area).Error
}

func (r *AreaRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.AreaComun{}, id).Error
}

func (r *AreaRepository) CreateReserva(ctx context.Context, reserva *models.ReservaArea) error {
	return r.db.WithContext(ctx).Create(reserva).Error
}

func (r *AreaRepository) GetReservaByID(ctx context.Context, id uint) (*models.ReservaArea, error) {
	var reserva models.ReservaArea
	err := r.db.WithContext(ctx).
		Preload("Area").
		Preload("Residente").
		First(&reserva, id).Error
	if err != nil {
		return nil, err
	}
	return &reserva, nil
}

// ListReservas lists reservas for an area on a date (overlap checks)
func (r *AreaRepository) ListReservas(ctx context.Context, areaID uint, fecha time.Time) ([]*models.ReservaArea, error) {
	var reservas []*models.ReservaArea
	err := r.db.WithContext(ctx).
		Where("area_id = ? AND fecha = ? AND estado <> ?", areaID, fecha, "cancelada").
		Find(&reservas).Error
	return reservas, err
}

// ListReservasByFecha lists confirmed reservas on a date (cron reminders)
func (r *AreaRepository) ListReservasByFecha(ctx context.Context, fecha time.Time) ([]*models.ReservaArea, error) {
	var reservas []*models.ReservaArea
	err := r.db.WithContext(ctx).
		Preload("Area").
		Preload("Residente").
		Preload("Residente.Usuario").
		Where("fecha = ? AND estado = ?", fecha, "confirmada").
		Find(&reservas).Error
	return reservas, err
}

// ListReservasByResidente lists reservas for a residente
func (r *AreaRepository) ListReservasByResidente(ctx context.Context, residenteID uint) ([]*models.ReservaArea, error) {
	var reservas []*models.ReservaArea
	err := r.db.WithContext(ctx).
		Preload("Area").
		Where("residente_id = ?", residenteID).
		Order("fecha DESC").
		Find(&reservas).Error
	return reservas, err
}

func (r *AreaRepository) UpdateReserva(ctx context.Context, reserva *models.ReservaArea) error {
	return r.db.WithContext(ctx).Save(reserva).Error
}

// ============================================================
// Métricas de consumo
// ============================================================

// ConsumoRepository handles metricas_consumo data access
type ConsumoRepository struct {
	db *gorm.DB
}

// NewConsumoRepository creates a new consumo repository
func NewConsumoRepository(db *gorm.DB) *ConsumoRepository {
	return &ConsumoRepository{db: db}
}

func (r *ConsumoRepository) Create(ctx context.Context, metrica *models.MetricaConsumo) error {
	return r.db.WithContext(ctx).Create(metrica).Error
}

// ListByDepartamento lists readings for a departamento, optionally per servicio
func (r *ConsumoRepository) ListByDepartamento(ctx context.Context, departamentoID uint, servicio string, offset, limit int) ([]*models.MetricaConsumo, int64, error) {
	var metricas []*models.MetricaConsumo
	var total int64

	query := r.db.WithContext(ctx).Model(&models.MetricaConsumo{}).Where("departamento_id = ?", departamentoID)
	if servicio != "" {
		query = query.Where("servicio = ?", servicio)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("fecha_lectura DESC").Offset(offset).Limit(limit).Find(&metricas).Error
	return metricas, total, err
}

// ConsumoMensual represents an aggregated monthly reading
type ConsumoMensual struct {
	Servicio string  `json:"servicio"`
	Total    float64 `json:"total"`
}

// ResumenMensual aggregates consumption per servicio inside [desde, hasta)
func (r *ConsumoRepository) ResumenMensual(ctx context.Context, departamentoID uint, desde, hasta time.Time) ([]ConsumoMensual, error) {
	var resumen []ConsumoMensual
	err := r.db.WithContext(ctx).Model(&models.MetricaConsumo{}).
		Select("servicio, COALESCE(SUM(lectura), 0) as total").
		Where("departamento_id = ? AND fecha_lectura >= ? AND fecha_lectura < ?", departamentoID, desde, hasta).
		Group("servicio").
		Scan(&resumen).Error
	return resumen, err
}
