package repositories

import (
	"context"
	"time"

	"edificio-hub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SeguridadRepository handles dispositivos, sensores and incidentes data access
type SeguridadRepository struct {
	db *gorm.DB
}

// NewSeguridadRepository creates a new seguridad repository
func NewSeguridadRepository(db *gorm.DB) *SeguridadRepository {
	return &SeguridadRepository{db: db}
}

// ============================================================
// Dispositivos
// ============================================================

func (r *SeguridadRepository) CreateDispositivo(ctx context.Context, dispositivo *models.DispositivoSeguridad) error {
	return r.db.WithContext(ctx).Create(dispositivo).Error
}

func (r *SeguridadRepository) GetDispositivoByID(ctx context.Context, id uint) (*models.DispositivoSeguridad, error) {
	var dispositivo models.DispositivoSeguridad
	err := r.db.WithContext(ctx).Preload("Sensores").First(&dispositivo, id).Error
	if err != nil {
		return nil, err
	}
	return &dispositivo, nil
}

func (r *SeguridadRepository) ListDispositivos(ctx context.Context, estado string) ([]*models.DispositivoSeguridad, error) {
	var dispositivos []*models.DispositivoSeguridad
	query := r.db.WithContext(ctx)
	if estado != "" {
		query = query.Where("estado = ?", estado)
	}
	err := query.Order("ubicacion ASC").Find(&dispositivos).Error
	return dispositivos, err
}

func (r *SeguridadRepository) UpdateDispositivo(ctx context.Context, dispositivo *models.DispositivoSeguridad) error {
	return r.db.WithContext(ctx).Save(dispositivo).Error
}

// ============================================================
// Sensores IoT
// ============================================================

func (r *SeguridadRepository) CreateSensor(ctx context.Context, sensor *models.SensorIoT) error {
	return r.db.WithContext(ctx).Create(sensor).Error
}

func (r *SeguridadRepository) GetSensorByID(ctx context.Context, id uint) (*models.SensorIoT, error) {
	var sensor models.SensorIoT
	err := r.db.WithContext(ctx).First(&sensor, id).Error
	if err != nil {
		return nil, err
	}
	return &sensor, nil
}

func (r *SeguridadRepository) ListSensores(ctx context.Context, soloActivos bool) ([]*models.SensorIoT, error) {
	var sensores []*models.SensorIoT
	query := r.db.WithContext(ctx)
	if soloActivos {
		query = query.Where("activo = ?", true)
	}
	err := query.Order("ubicacion ASC").Find(&sensores).Error
	return sensores, err
}

// RegistrarLectura stores the latest reading on a sensor
func (r *SeguridadRepository) RegistrarLectura(ctx context.Context, sensorID uint, lectura float64, fecha time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.SensorIoT{}).
		Where("id = ? AND activo = ?", sensorID, true).
		Updates(map[string]interface{}{
			"ultima_lectura": lectura,
			"fecha_lectura":  fecha,
		})
	return result.RowsAffected, result.Error
}

// ============================================================
// Incidentes y emergencias
// ============================================================

func (r *SeguridadRepository) CreateIncidente(ctx context.Context, incidente *models.IncidenteEmergencia) error {
	return r.db.WithContext(ctx).Create(incidente).Error
}

func (r *SeguridadRepository) GetIncidenteByID(ctx context.Context, id uint) (*models.IncidenteEmergencia, error) {
	var incidente models.IncidenteEmergencia
	err := r.db.WithContext(ctx).
		Preload("Reportante").
		Preload("Atendiente").
		First(&incidente, id).Error
	if err != nil {
		return nil, err
	}
	return &incidente, nil
}

// IncidenteFilter represents incidente list filters
type IncidenteFilter struct {
	Estado    string
	Severidad string
}

func (r *SeguridadRepository) ListIncidentes(ctx context.Context, filter *IncidenteFilter, offset, limit int) ([]*models.IncidenteEmergencia, int64, error) {
	var incidentes []*models.IncidenteEmergencia
	var total int64

	query := r.db.WithContext(ctx).Model(&models.IncidenteEmergencia{})
	if filter != nil {
		if filter.Estado != "" {
			query = query.Where("estado = ?", filter.Estado)
		}
		if filter.Severidad != "" {
			query = query.Where("severidad = ?", filter.Severidad)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Reportante").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&incidentes).Error

	return incidentes, total, err
}

func (r *SeguridadRepository) UpdateIncidente(ctx context.Context, incidente *models.IncidenteEmergencia) error {
	return r.db.WithContext(ctx).Save(incidente).Error
}

func (r *SeguridadRepository) CountIncidentesByEstado(ctx context.Context, estado string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.IncidenteEmergencia{}).Where("estado = ?", estado).Count(&count).Error
	return count, err
}
