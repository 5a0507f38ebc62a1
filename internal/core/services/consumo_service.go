package services

import (
	"context"
	"errors"
	"log"
	"time"

	"edificio-hub/internal/adapters/persistence/models"
	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/core/domain"
)

// Consumo errors
var (
	ErrServicioInvalido = errors.New("servicio inválido")
	ErrLecturaInvalida  = errors.New("la lectura debe ser mayor o igual a cero")
)

var serviciosConsumo = []string{"agua", "luz", "gas"}

// unidadPorServicio maps each servicio to its default measurement unit
var unidadPorServicio = map[string]string{
	"agua": "m3",
	"luz":  "kWh",
	"gas":  "m3",
}

// ConsumoService handles consumption metric business logic
type ConsumoService struct {
	consumoRepo      *repositories.ConsumoRepository
	departamentoRepo *repositories.DepartamentoRepository
}

// NewConsumoService creates a new consumo service
func NewConsumoService(consumoRepo *repositories.ConsumoRepository, departamentoRepo *repositories.DepartamentoRepository) *ConsumoService {
	return &ConsumoService{
		consumoRepo:      consumoRepo,
		departamentoRepo: departamentoRepo,
	}
}

// CreateConsumoInput represents a meter reading
type CreateConsumoInput struct {
	DepartamentoID uint       `json:"departamento_id" validate:"required"`
	Servicio       string     `json:"servicio" validate:"required"`
	Lectura        float64    `json:"lectura" validate:"required"`
	Unidad         string     `json:"unidad"`
	FechaLectura   *time.Time `json:"fecha_lectura"`
}

// Registrar records a consumption reading for a departamento
func (s *ConsumoService) Registrar(ctx context.Context, input *CreateConsumoInput) (*models.MetricaConsumo, error) {
	if !domain.Contains(serviciosConsumo, input.Servicio) {
		return nil, ErrServicioInvalido
	}
	if input.Lectura < 0 {
		return nil, ErrLecturaInvalida
	}

	if _, err := s.departamentoRepo.GetByID(ctx, input.DepartamentoID); err != nil {
		return nil, ErrDepartamentoNotFound
	}

	unidad := input.Unidad
	if unidad == "" {
		unidad = unidadPorServicio[input.Servicio]
	}

	fecha := time.Now()
	if input.FechaLectura != nil {
		fecha = *input.FechaLectura
	}

	metrica := &models.MetricaConsumo{
		DepartamentoID: input.DepartamentoID,
		Servicio:       input.Servicio,
		Lectura:        input.Lectura,
		Unidad:         unidad,
		FechaLectura:   fecha,
	}

	if err := s.consumoRepo.Create(ctx, metrica); err != nil {
		return nil, err
	}

	log.Printf("✅ Consumo recorded: depto %d %s %.3f %s", metrica.DepartamentoID, metrica.Servicio, metrica.Lectura, metrica.Unidad)
	return metrica, nil
}

// ListByDepartamento lists readings for a departamento
func (s *ConsumoService) ListByDepartamento(ctx context.Context, departamentoID uint, servicio string, offset, limit int) ([]*models.MetricaConsumo, int64, error) {
	if servicio != "" && !domain.Contains(serviciosConsumo, servicio) {
		return nil, 0, ErrServicioInvalido
	}
	return s.consumoRepo.ListByDepartamento(ctx, departamentoID, servicio, offset, limit)
}

// ResumenMensual aggregates a month of consumption per servicio
func (s *ConsumoService) ResumenMensual(ctx context.Context, departamentoID uint, anio int, mes time.Month) ([]repositories.ConsumoMensual, error) {
	if _, err := s.departamentoRepo.GetByID(ctx, departamentoID); err != nil {
		return nil, ErrDepartamentoNotFound
	}

	desde := time.Date(anio, mes, 1, 0, 0, 0, 0, time.Local)
	hasta := desde.AddDate(0, 1, 0)
	return s.consumoRepo.ResumenMensual(ctx, departamentoID, desde, hasta)
}
