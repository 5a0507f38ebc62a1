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

// Mantenimiento errors
var (
	ErrMantenimientoNotFound = errors.New("solicitud de mantenimiento no encontrada")
	ErrMantenimientoCerrada  = errors.New("la solicitud ya está cerrada")
	ErrPersonalNotFound      = errors.New("personal no encontrado")
	ErrPrioridadInvalida     = errors.New("prioridad inválida")
)

var prioridades = []string{"baja", "media", "alta", "urgente"}

// transicionesMantenimiento maps estados to the estados reachable from them
var transicionesMantenimiento = map[string][]string{
	domain.MantenimientoAbierta:   {domain.MantenimientoEnProceso, domain.MantenimientoResuelta, domain.MantenimientoCancelada},
	domain.MantenimientoEnProceso: {domain.MantenimientoResuelta, domain.MantenimientoCancelada},
}

// MantenimientoService handles solicitudes de mantenimiento business logic
type MantenimientoService struct {
	mantenimientoRepo *repositories.MantenimientoRepository
	personalRepo      *repositories.PersonalRepository
	residenteRepo     *repositories.ResidenteRepository
}

// NewMantenimientoService creates a new mantenimiento service
func NewMantenimientoService(
	mantenimientoRepo *repositories.MantenimientoRepository,
	personalRepo *repositories.PersonalRepository,
	residenteRepo *repositories.ResidenteRepository,
) *MantenimientoService {
	return &MantenimientoService{
		mantenimientoRepo: mantenimientoRepo,
		personalRepo:      personalRepo,
		residenteRepo:     residenteRepo,
	}
}

// CreateMantenimientoInput represents a maintenance request
type CreateMantenimientoInput struct {
	DepartamentoID *uint  `json:"departamento_id"`
	ResidenteID    *uint  `json:"residente_id"`
	Titulo         string `json:"titulo" validate:"required,max=200"`
	Descripcion    string `json:"descripcion"`
	Prioridad      string `json:"prioridad"`
}

// Crear registers a maintenance request in estado abierta
func (s *MantenimientoService) Crear(ctx context.Context, input *CreateMantenimientoInput) (*models.SolicitudMantenimiento, error) {
	prioridad := input.Prioridad
	if prioridad == "" {
		prioridad = "media"
	}
	if !domain.Contains(prioridades, prioridad) {
		return nil, ErrPrioridadInvalida
	}

	if input.ResidenteID != nil {
		if _, err := s.residenteRepo.GetByID(ctx, *input.ResidenteID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrResidenteNotFound
			}
			return nil, err
		}
	}

	solicitud := &models.SolicitudMantenimiento{
		DepartamentoID: input.DepartamentoID,
		ResidenteID:    input.ResidenteID,
		Titulo:         input.Titulo,
		Descripcion:    input.Descripcion,
		Prioridad:      prioridad,
		Estado:         domain.MantenimientoAbierta,
	}

	if err := s.mantenimientoRepo.Create(ctx, solicitud); err != nil {
		return nil, err
	}

	log.Printf("✅ Mantenimiento request created: %d [%s]", solicitud.ID, prioridad)
	return solicitud, nil
}

// GetByID returns a maintenance request
func (s *MantenimientoService) GetByID(ctx context.Context, id uint) (*models.SolicitudMantenimiento, error) {
	solicitud, err := s.mantenimientoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMantenimientoNotFound
		}
		return nil, err
	}
	return solicitud, nil
}

// List lists maintenance requests with filters
func (s *MantenimientoService) List(ctx context.Context, filter *repositories.MantenimientoFilter, offset, limit int) ([]*models.SolicitudMantenimiento, int64, error) {
	return s.mantenimientoRepo.List(ctx, filter, offset, limit)
}

// Asignar assigns a maintenance request to a staff member and moves it to
// en_proceso when still abierta
func (s *MantenimientoService) Asignar(ctx context.Context, id, personalID uint) (*models.SolicitudMantenimiento, error) {
	solicitud, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if solicitud.Estado == domain.MantenimientoResuelta || solicitud.Estado == domain.MantenimientoCancelada {
		return nil, ErrMantenimientoCerrada
	}

	personal, err := s.personalRepo.GetByID(ctx, personalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonalNotFound
		}
		return nil, err
	}
	if !personal.Activo {
		return nil, ErrPersonalNotFound
	}

	solicitud.AsignadaA = &personalID
	if solicitud.Estado == domain.MantenimientoAbierta {
		solicitud.Estado = domain.MantenimientoEnProceso
	}

	if err := s.mantenimientoRepo.Update(ctx, solicitud); err != nil {
		return nil, err
	}

	log.Printf("✅ Mantenimiento %d assigned to %s", solicitud.ID, personal.Nombre)
	return solicitud, nil
}

// CambiarEstado moves a maintenance request through its state machine
func (s *MantenimientoService) CambiarEstado(ctx context.Context, id uint, estado string) (*models.SolicitudMantenimiento, error) {
	solicitud, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.Contains(transicionesMantenimiento[solicitud.Estado], estado) {
		return nil, ErrTransicionInvalida
	}

	solicitud.Estado = estado
	if estado == domain.MantenimientoResuelta {
		now := time.Now()
		solicitud.FechaResolucion = &now
	}

	if err := s.mantenimientoRepo.Update(ctx, solicitud); err != nil {
		return nil, err
	}

	log.Printf("✅ Mantenimiento %d → %s", solicitud.ID, estado)
	return solicitud, nil
}
