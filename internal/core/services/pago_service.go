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

// Pago errors
var (
	ErrPagoNotFound     = errors.New("pago no encontrado")
	ErrMontoInvalido    = errors.New("el monto debe ser mayor a cero")
	ErrTipoPagoInvalido = errors.New("tipo de pago inválido")
	ErrPagoYaRegistrado = errors.New("El pago ya ha sido registrado como pagado")
	ErrPagoNoCancelable = errors.New("solo los pagos pendientes o atrasados pueden cancelarse")
)

// PagoService handles pago business logic
type PagoService struct {
	pagoRepo      *repositories.PagoRepository
	residenteRepo *repositories.ResidenteRepository
}

// NewPagoService creates a new pago service
func NewPagoService(pagoRepo *repositories.PagoRepository, residenteRepo *repositories.ResidenteRepository) *PagoService {
	return &PagoService{
		pagoRepo:      pagoRepo,
		residenteRepo: residenteRepo,
	}
}

// CreatePagoInput represents pago creation input
type CreatePagoInput struct {
	ResidenteID      uint      `json:"residente_id" validate:"required"`
	TipoPago         string    `json:"tipo_pago" validate:"required"`
	Monto            float64   `json:"monto" validate:"required,gt=0"`
	Descripcion      string    `json:"descripcion"`
	FechaVencimiento time.Time `json:"fecha_vencimiento" validate:"required"`
}

// RegistrarPagoInput represents a manual payment registration
type RegistrarPagoInput struct {
	MetodoPago string     `json:"metodo_pago" validate:"required"`
	FechaPago  *time.Time `json:"fecha_pago"`
}

// Crear creates a pago in estado pendiente
func (s *PagoService) Crear(ctx context.Context, input *CreatePagoInput) (*models.PagoResponse, error) {
	// 1. Validate monto and tipo
	if input.Monto <= 0 {
		return nil, ErrMontoInvalido
	}
	if !domain.Contains(domain.TiposPago, input.TipoPago) {
		return nil, ErrTipoPagoInvalido
	}

	// 2. Residente must exist and be active
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

	// 3. Create pago
	pago := &models.Pago{
		ResidenteID:      input.ResidenteID,
		TipoPago:         input.TipoPago,
		Monto:            input.Monto,
		Estado:           domain.PagoPendiente,
		Descripcion:      input.Descripcion,
		FechaVencimiento: input.FechaVencimiento,
	}

	if err := s.pagoRepo.Create(ctx, pago); err != nil {
		return nil, err
	}
	pago.Residente = residente

	log.Printf("✅ Pago created: %d (%s $%.2f, residente %d)", pago.ID, pago.TipoPago, pago.Monto, pago.ResidenteID)
	return pago.ToResponse(), nil
}

// Registrar records a manual payment on a pendiente or atrasado pago
func (s *PagoService) Registrar(ctx context.Context, id uint, input *RegistrarPagoInput) (*models.PagoResponse, error) {
	pago, err := s.pagoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPagoNotFound
		}
		return nil, err
	}

	if pago.Estado == domain.PagoPagado {
		return nil, ErrPagoYaRegistrado
	}
	if pago.Estado == domain.PagoCancelado {
		return nil, ErrPagoNoCancelable
	}

	fechaPago := time.Now()
	if input.FechaPago != nil {
		fechaPago = *input.FechaPago
	}
	pago.Estado = domain.PagoPagado
	pago.MetodoPago = input.MetodoPago
	pago.FechaPago = &fechaPago

	if err := s.pagoRepo.Update(ctx, pago); err != nil {
		return nil, err
	}

	log.Printf("✅ Pago registered: %d via %s", pago.ID, input.MetodoPago)
	return pago.ToResponse(), nil
}

// Cancelar cancels a pendiente or atrasado pago
func (s *PagoService) Cancelar(ctx context.Context, id uint) (*models.PagoResponse, error) {
	pago, err := s.pagoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPagoNotFound
		}
		return nil, err
	}

	if pago.Estado != domain.PagoPendiente && pago.Estado != domain.PagoAtrasado {
		return nil, ErrPagoNoCancelable
	}

	pago.Estado = domain.PagoCancelado
	if err := s.pagoRepo.Update(ctx, pago); err != nil {
		return nil, err
	}

	log.Printf("✅ Pago cancelled: %d", pago.ID)
	return pago.ToResponse(), nil
}

// GetByID returns a single pago
func (s *PagoService) GetByID(ctx context.Context, id uint) (*models.PagoResponse, error) {
	pago, err := s.pagoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPagoNotFound
		}
		return nil, err
	}
	return pago.ToResponse(), nil
}

// List lists pagos with filters
func (s *PagoService) List(ctx context.Context, filter *repositories.PagoFilter, offset, limit int) ([]*models.PagoResponse, int64, error) {
	pagos, total, err := s.pagoRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.PagoResponse, 0, len(pagos))
	for _, pago := range pagos {
		responses = append(responses, pago.ToResponse())
	}
	return responses, total, nil
}

// ResumenPagos aggregates payment counters for the current month
type ResumenPagos struct {
	Pendientes    int64   `json:"pendientes"`
	Atrasados     int64   `json:"atrasados"`
	Pagados       int64   `json:"pagados"`
	IngresosDelMes float64 `json:"ingresos_del_mes"`
}

// Resumen returns payment totals
func (s *PagoService) Resumen(ctx context.Context) (*ResumenPagos, error) {
	resumen := &ResumenPagos{}

	var err error
	if resumen.Pendientes, err = s.pagoRepo.CountByEstado(ctx, domain.PagoPendiente); err != nil {
		return nil, err
	}
	if resumen.Atrasados, err = s.pagoRepo.CountByEstado(ctx, domain.PagoAtrasado); err != nil {
		return nil, err
	}
	if resumen.Pagados, err = s.pagoRepo.CountByEstado(ctx, domain.PagoPagado); err != nil {
		return nil, err
	}

	inicioMes := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.Local)
	if resumen.IngresosDelMes, err = s.pagoRepo.SumMontoByEstado(ctx, domain.PagoPagado, inicioMes); err != nil {
		return nil, err
	}

	return resumen, nil
}

// MarcarAtrasados flips overdue pendiente pagos to atrasado (cron)
func (s *PagoService) MarcarAtrasados(ctx context.Context) (int64, error) {
	afectados, err := s.pagoRepo.MarcarAtrasados(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if afectados > 0 {
		log.Printf("⚠️ %d pagos marked atrasado", afectados)
	}
	return afectados, nil
}

// ListByPeriodo lists pagos due inside a month (report export)
func (s *PagoService) ListByPeriodo(ctx context.Context, anio int, mes time.Month) ([]*models.Pago, error) {
	desde := time.Date(anio, mes, 1, 0, 0, 0, 0, time.Local)
	hasta := desde.AddDate(0, 1, 0)
	return s.pagoRepo.ListByPeriodo(ctx, desde, hasta)
}
