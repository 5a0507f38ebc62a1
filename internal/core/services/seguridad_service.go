package services

import (
	"context"
	"errors"
	"log"
	"time"

	"edificio-hub/internal/adapters/persistence/models"
	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/core/domain"

	"gorm.io/gorm"
)

// Seguridad errors
var (
	ErrDispositivoNotFound = errors.New("dispositivo no encontrado")
	ErrSensorNotFound      = errors.New("sensor no encontrado")
	ErrSensorInactivo      = errors.New("el sensor está inactivo")
	ErrIncidenteNotFound   = errors.New("incidente no encontrado")
	ErrSeveridadInvalida   = errors.New("severidad inválida")
)

var estadosDispositivo = []string{"activo", "inactivo", "falla"}

// transicionesIncidente maps incident estados to reachable estados
var transicionesIncidente = map[string][]string{
	domain.IncidenteReportado:  {domain.IncidenteEnAtencion, domain.IncidenteResuelto},
	domain.IncidenteEnAtencion: {domain.IncidenteResuelto},
}

// SeguridadService handles security devices, sensors and incident flow
type SeguridadService struct {
	seguridadRepo *repositories.SeguridadRepository
	personalRepo  *repositories.PersonalRepository
}

// NewSeguridadService creates a new seguridad service
func NewSeguridadService(seguridadRepo *repositories.SeguridadRepository, personalRepo *repositories.PersonalRepository) *SeguridadService {
	return &SeguridadService{
		seguridadRepo: seguridadRepo,
		personalRepo:  personalRepo,
	}
}

// ============================================================
// Dispositivos
// ============================================================

// CreateDispositivoInput represents device registration input
type CreateDispositivoInput struct {
	Tipo      string `json:"tipo" validate:"required,max=30"`
	Ubicacion string `json:"ubicacion" validate:"required,max=200"`
}

// UpdateDispositivoInput represents device update input
type UpdateDispositivoInput struct {
	Tipo           *string    `json:"tipo"`
	Ubicacion      *string    `json:"ubicacion"`
	Estado         *string    `json:"estado"`
	UltimaRevision *time.Time `json:"ultima_revision"`
}

// CrearDispositivo registers a security device
func (s *SeguridadService) CrearDispositivo(ctx context.Context, input *CreateDispositivoInput) (*models.DispositivoSeguridad, error) {
	dispositivo := &models.DispositivoSeguridad{
		Tipo:      input.Tipo,
		Ubicacion: input.Ubicacion,
		Estado:    "activo",
	}

	if err := s.seguridadRepo.CreateDispositivo(ctx, dispositivo); err != nil {
		return nil, err
	}

	log.Printf("✅ Dispositivo created: %s @ %s", dispositivo.Tipo, dispositivo.Ubicacion)
	return dispositivo, nil
}

// GetDispositivo returns a device with its sensors
func (s *SeguridadService) GetDispositivo(ctx context.Context, id uint) (*models.DispositivoSeguridad, error) {
	dispositivo, err := s.seguridadRepo.GetDispositivoByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDispositivoNotFound
		}
		return nil, err
	}
	return dispositivo, nil
}

// ListDispositivos lists devices, optionally filtered by estado
func (s *SeguridadService) ListDispositivos(ctx context.Context, estado string) ([]*models.DispositivoSeguridad, error) {
	if estado != "" && !domain.Contains(estadosDispositivo, estado) {
		return nil, domain.ErrInvalidInput
	}
	return s.seguridadRepo.ListDispositivos(ctx, estado)
}

// UpdateDispositivo patches device fields
func (s *SeguridadService) UpdateDispositivo(ctx context.Context, id uint, input *UpdateDispositivoInput) (*models.DispositivoSeguridad, error) {
	dispositivo, err := s.GetDispositivo(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Tipo != nil {
		dispositivo.Tipo = *input.Tipo
	}
	if input.Ubicacion != nil {
		dispositivo.Ubicacion = *input.Ubicacion
	}
	if input.Estado != nil {
		if !domain.Contains(estadosDispositivo, *input.Estado) {
			return nil, domain.ErrInvalidInput
		}
		dispositivo.Estado = *input.Estado
	}
	if input.UltimaRevision != nil {
		dispositivo.UltimaRevision = input.UltimaRevision
	}

	if err := s.seguridadRepo.UpdateDispositivo(ctx, dispositivo); err != nil {
		return nil, err
	}

	log.Printf("✅ Dispositivo updated: %d", dispositivo.ID)
	return dispositivo, nil
}

// ============================================================
// Sensores
// ============================================================

// CreateSensorInput represents sensor registration input
type CreateSensorInput struct {
	DispositivoID *uint  `json:"dispositivo_id"`
	Tipo          string `json:"tipo" validate:"required,max=30"`
	Ubicacion     string `json:"ubicacion" validate:"required,max=200"`
}

// LecturaInput represents a sensor reading submission
type LecturaInput struct {
	Lectura float64 `json:"lectura" validate:"required"`
}

// CrearSensor registers an IoT sensor
func (s *SeguridadService) CrearSensor(ctx context.Context, input *CreateSensorInput) (*models.SensorIoT, error) {
	if input.DispositivoID != nil {
		if _, err := s.GetDispositivo(ctx, *input.DispositivoID); err != nil {
			return nil, err
		}
	}

	sensor := &models.SensorIoT{
		DispositivoID: input.DispositivoID,
		Tipo:          input.Tipo,
		Ubicacion:     input.Ubicacion,
		Activo:        true,
	}

	if err := s.seguridadRepo.CreateSensor(ctx, sensor); err != nil {
		return nil, err
	}

	log.Printf("✅ Sensor created: %s @ %s", sensor.Tipo, sensor.Ubicacion)
	return sensor, nil
}

// ListSensores lists sensors
func (s *SeguridadService) ListSensores(ctx context.Context, soloActivos bool) ([]*models.SensorIoT, error) {
	return s.seguridadRepo.ListSensores(ctx, soloActivos)
}

// RegistrarLectura stores the latest reading on an active sensor
func (s *SeguridadService) RegistrarLectura(ctx context.Context, sensorID uint, input *LecturaInput) (*models.SensorIoT, error) {
	afectados, err := s.seguridadRepo.RegistrarLectura(ctx, sensorID, input.Lectura, time.Now())
	if err != nil {
		return nil, err
	}
	if afectados == 0 {
		// Distinguish missing from inactive for the caller
		if _, err := s.seguridadRepo.GetSensorByID(ctx, sensorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSensorNotFound
			}
			return nil, err
		}
		return nil, ErrSensorInactivo
	}

	return s.seguridadRepo.GetSensorByID(ctx, sensorID)
}

// ============================================================
// Incidentes
// ============================================================

// CreateIncidenteInput represents an incident report
type CreateIncidenteInput struct {
	Tipo        string `json:"tipo" validate:"required,max=50"`
	Descripcion string `json:"descripcion"`
	Ubicacion   string `json:"ubicacion" validate:"max=200"`
	Severidad   string `json:"severidad"`
}

// Reportar registers an incident in estado reportado
func (s *SeguridadService) Reportar(ctx context.Context, reportadoPor uint, input *CreateIncidenteInput) (*models.IncidenteEmergencia, error) {
	severidad := input.Severidad
	if severidad == "" {
		severidad = domain.SeveridadMedia
	}
	if !domain.Contains(domain.Severidades, severidad) {
		return nil, ErrSeveridadInvalida
	}

	incidente := &models.IncidenteEmergencia{
		Tipo:         input.Tipo,
		Descripcion:  input.Descripcion,
		Ubicacion:    input.Ubicacion,
		Severidad:    severidad,
		Estado:       domain.IncidenteReportado,
		ReportadoPor: &reportadoPor,
	}

	if err := s.seguridadRepo.CreateIncidente(ctx, incidente); err != nil {
		return nil, err
	}

	log.Printf("⚠️ Incidente reported: %s [%s] @ %s", incidente.Tipo, severidad, incidente.Ubicacion)
	return incidente, nil
}

// GetIncidente returns an incident
func (s *SeguridadService) GetIncidente(ctx context.Context, id uint) (*models.IncidenteEmergencia, error) {
	incidente, err := s.seguridadRepo.GetIncidenteByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIncidenteNotFound
		}
		return nil, err
	}
	return incidente, nil
}

// ListIncidentes lists incidents with filters
func (s *SeguridadService) ListIncidentes(ctx context.Context, filter *repositories.IncidenteFilter, offset, limit int) ([]*models.IncidenteEmergencia, int64, error) {
	return s.seguridadRepo.ListIncidentes(ctx, filter, offset, limit)
}

// Atender assigns an incident to staff and moves it to en_atencion
func (s *SeguridadService) Atender(ctx context.Context, id, personalID uint) (*models.IncidenteEmergencia, error) {
	incidente, err := s.GetIncidente(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.Contains(transicionesIncidente[incidente.Estado], domain.IncidenteEnAtencion) {
		return nil, ErrTransicionInvalida
	}

	personal, err := s.personalRepo.GetByID(ctx, personalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonalNotFound
		}
		return nil, err
	}

	incidente.Estado = domain.IncidenteEnAtencion
	incidente.AtendidoPor = &personal.ID

	if err := s.seguridadRepo.UpdateIncidente(ctx, incidente); err != nil {
		return nil, err
	}

	log.Printf("✅ Incidente %d attended by %s", incidente.ID, personal.Nombre)
	return incidente, nil
}

// Resolver closes an incident
func (s *SeguridadService) Resolver(ctx context.Context, id uint) (*models.IncidenteEmergencia, error) {
	incidente, err := s.GetIncidente(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.Contains(transicionesIncidente[incidente.Estado], domain.IncidenteResuelto) {
		return nil, ErrTransicionInvalida
	}

	now := time.Now()
	incidente.Estado = domain.IncidenteResuelto
	incidente.FechaResolucion = &now

	if err := s.seguridadRepo.UpdateIncidente(ctx, incidente); err != nil {
		return nil, err
	}

	log.Printf("✅ Incidente resolved: %d", incidente.ID)
	return incidente, nil
}
