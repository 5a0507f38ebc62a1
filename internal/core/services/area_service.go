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

// Area / reserva errors
var (
	ErrAreaNotFound       = errors.New("área común no encontrada")
	ErrAreaInactiva       = errors.New("el área común no está activa")
	ErrReservaNotFound    = errors.New("reserva no encontrada")
	ErrReservaTraslapada  = errors.New("el horario se traslapa con otra reserva")
	ErrHorarioInvalido    = errors.New("horario inválido")
	ErrReservaCerrada     = errors.New("la reserva ya está cancelada")
)

// AreaService handles common areas and reservations
type AreaService struct {
	areaRepo      *repositories.AreaRepository
	residenteRepo *repositories.ResidenteRepository
}

// NewAreaService creates a new area service
func NewAreaService(areaRepo *repositories.AreaRepository, residenteRepo *repositories.ResidenteRepository) *AreaService {
	return &AreaService{
		areaRepo:      areaRepo,
		residenteRepo: residenteRepo,
	}
}

// CreateAreaInput represents common area creation input
type CreateAreaInput struct {
	Nombre          string  `json:"nombre" validate:"required,max=100"`
	Descripcion     string  `json:"descripcion"`
	Capacidad       int     `json:"capacidad"`
	CostoReserva    float64 `json:"costo_reserva"`
	HorarioApertura string  `json:"horario_apertura"`
	HorarioCierre   string  `json:"horario_cierre"`
}

// UpdateAreaInput represents common area update input
type UpdateAreaInput struct {
	Nombre          *string  `json:"nombre"`
	Descripcion     *string  `json:"descripcion"`
	Capacidad       *int     `json:"capacidad"`
	CostoReserva    *float64 `json:"costo_reserva"`
	HorarioApertura *string  `json:"horario_apertura"`
	HorarioCierre   *string  `json:"horario_cierre"`
	Activa          *bool    `json:"activa"`
}

// CreateReservaInput represents a reservation request
type CreateReservaInput struct {
	AreaID      uint   `json:"area_id" validate:"required"`
	ResidenteID uint   `json:"residente_id" validate:"required"`
	Fecha       string `json:"fecha" validate:"required"` // YYYY-MM-DD
	HoraInicio  string `json:"hora_inicio" validate:"required"` // HH:MM
	HoraFin     string `json:"hora_fin" validate:"required"`
	Notas       string `json:"notas"`
}

// CrearArea registers a common area
func (s *AreaService) CrearArea(ctx context.Context, input *CreateAreaInput) (*models.AreaComun, error) {
	area := &models.AreaComun{
		Nombre:          input.Nombre,
		Descripcion:     input.Descripcion,
		Capacidad:       input.Capacidad,
		CostoReserva:    input.CostoReserva,
		HorarioApertura: input.HorarioApertura,
		HorarioCierre:   input.HorarioCierre,
		Activa:          true,
	}

	if err := s.areaRepo.Create(ctx, area); err != nil {
		return nil, err
	}

	log.Printf("✅ Área común created: %s", area.Nombre)
	return area, nil
}

// GetArea returns a common area
func (s *AreaService) GetArea(ctx context.Context, id uint) (*models.AreaComun, error) {
	area, err := s.areaRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAreaNotFound
		}
		return nil, err
	}
	return area, nil
}

// ListAreas lists every common area
func (s *AreaService) ListAreas(ctx context.Context) ([]*models.AreaComun, error) {
	return s.areaRepo.List(ctx)
}

// UpdateArea patches common area fields
func (s *AreaService) UpdateArea(ctx context.Context, id uint, input *UpdateAreaInput) (*models.AreaComun, error) {
	area, err := s.GetArea(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Nombre != nil {
		area.Nombre = *input.Nombre
	}
	if input.Descripcion != nil {
		area.Descripcion = *input.Descripcion
	}
	if input.Capacidad != nil {
		area.Capacidad = *input.Capacidad
	}
	if input.CostoReserva != nil {
		area.CostoReserva = *input.CostoReserva
	}
	if input.HorarioApertura != nil {
		area.HorarioApertura = *input.HorarioApertura
	}
	if input.HorarioCierre != nil {
		area.HorarioCierre = *input.HorarioCierre
	}
	if input.Activa != nil {
		area.Activa = *input.Activa
	}

	if err := s.areaRepo.Update(ctx, area); err != nil {
		return nil, err
	}

	log.Printf("✅ Área común updated: %d", area.ID)
	return area, nil
}

// CrearReserva books an area slot. Two reservations overlap when they share
// the area and date and their [inicio, fin) ranges intersect.
func (s *AreaService) CrearReserva(ctx context.Context, input *CreateReservaInput) (*models.ReservaArea, error) {
	area, err := s.GetArea(ctx, input.AreaID)
	if err != nil {
		return nil, err
	}
	if !area.Activa {
		return nil, ErrAreaInactiva
	}

	residente, err := s.residenteRepo.GetByID(ctx, input.ResidenteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidenteNotFound
		}
		return nil, err
	}
	if !residente.Activo {
		return nil, ErrResidenteInactivo
	}

	fecha, err := time.Parse("2006-01-02", input.Fecha)
	if err != nil {
		return nil, ErrHorarioInvalido
	}
	if !horaValida(input.HoraInicio) || !horaValida(input.HoraFin) || input.HoraInicio >= input.HoraFin {
		return nil, ErrHorarioInvalido
	}

	existentes, err := s.areaRepo.ListReservas(ctx, input.AreaID, fecha)
	if err != nil {
		return nil, err
	}
	for _, otra := range existentes {
		if input.HoraInicio < otra.HoraFin && otra.HoraInicio < input.HoraFin {
			return nil, ErrReservaTraslapada
		}
	}

	reserva := &models.ReservaArea{
		AreaID:      input.AreaID,
		ResidenteID: input.ResidenteID,
		Fecha:       fecha,
		HoraInicio:  input.HoraInicio,
		HoraFin:     input.HoraFin,
		Estado:      domain.ReservaPendiente,
		Notas:       input.Notas,
	}

	if err := s.areaRepo.CreateReserva(ctx, reserva); err != nil {
		return nil, err
	}

	log.Printf("✅ Reserva created: area %d on %s %s-%s", input.AreaID, input.Fecha, input.HoraInicio, input.HoraFin)
	return reserva, nil
}

// GetReserva returns a reservation
func (s *AreaService) GetReserva(ctx context.Context, id uint) (*models.ReservaArea, error) {
	reserva, err := s.areaRepo.GetReservaByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservaNotFound
		}
		return nil, err
	}
	return reserva, nil
}

// ListReservasByResidente lists a residente's reservations
func (s *AreaService) ListReservasByResidente(ctx context.Context, residenteID uint) ([]*models.ReservaArea, error) {
	return s.areaRepo.ListReservasByResidente(ctx, residenteID)
}

// Confirmar confirms a pendiente reservation
func (s *AreaService) Confirmar(ctx context.Context, id uint) (*models.ReservaArea, error) {
	reserva, err := s.GetReserva(ctx, id)
	if err != nil {
		return nil, err
	}
	if reserva.Estado != domain.ReservaPendiente {
		return nil, ErrTransicionInvalida
	}

	reserva.Estado = domain.ReservaConfirmada
	if err := s.areaRepo.UpdateReserva(ctx, reserva); err != nil {
		return nil, err
	}

	log.Printf("✅ Reserva confirmed: %d", reserva.ID)
	return reserva, nil
}

// Cancelar cancels a reservation
func (s *AreaService) Cancelar(ctx context.Context, id uint) (*models.ReservaArea, error) {
	reserva, err := s.GetReserva(ctx, id)
	if err != nil {
		return nil, err
	}
	if reserva.Estado == domain.ReservaCancelada {
		return nil, ErrReservaCerrada
	}

	reserva.Estado = domain.ReservaCancelada
	if err := s.areaRepo.UpdateReserva(ctx, reserva); err != nil {
		return nil, err
	}

	log.Printf("✅ Reserva cancelled: %d", reserva.ID)
	return reserva, nil
}

// ReservasDeManana lists tomorrow's confirmed reservations (cron reminders)
func (s *AreaService) ReservasDeManana(ctx context.Context) ([]*models.ReservaArea, error) {
	manana := time.Now().AddDate(0, 0, 1)
	fecha := time.Date(manana.Year(), manana.Month(), manana.Day(), 0, 0, 0, 0, time.UTC)
	return s.areaRepo.ListReservasByFecha(ctx, fecha)
}

// horaValida accepts HH:MM between 00:00 and 23:59
func horaValida(hora string) bool {
	if len(hora) != 5 {
		return false
	}
	_, err := time.Parse("15:04", hora)
	return err == nil
}
