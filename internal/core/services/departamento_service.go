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

// Departamento errors
var (
	ErrDepartamentoNotFound       = errors.New("departamento no encontrado")
	ErrDepartamentoDuplicado      = errors.New("ya existe un departamento con ese número")
	ErrDepartamentoNoDisponible   = errors.New("el departamento no está disponible")
	ErrEstadoDepartamentoInvalido = errors.New("estado de departamento inválido")
	ErrResidenteNotFound          = errors.New("residente no encontrado")
	ErrResidenteInactivo          = errors.New("el residente está inactivo")
)

// DepartamentoService handles departamento business logic. Occupancy state and
// residente assignment always change together inside one transaction.
type DepartamentoService struct {
	departamentoRepo *repositories.DepartamentoRepository
	residenteRepo    *repositories.ResidenteRepository
	db               *gorm.DB
}

// NewDepartamentoService creates a new departamento service
func NewDepartamentoService(
	departamentoRepo *repositories.DepartamentoRepository,
	residenteRepo *repositories.ResidenteRepository,
	db *gorm.DB,
) *DepartamentoService {
	return &DepartamentoService{
		departamentoRepo: departamentoRepo,
		residenteRepo:    residenteRepo,
		db:               db,
	}
}

// CreateDepartamentoInput represents departamento creation input
type CreateDepartamentoInput struct {
	Numero             string  `json:"numero" validate:"required,max=20"`
	Piso               int     `json:"piso" validate:"required"`
	MetrosCuadrados    float64 `json:"metros_cuadrados"`
	Habitaciones       int     `json:"habitaciones"`
	RentaMensual       float64 `json:"renta_mensual"`
	CuotaMantenimiento float64 `json:"cuota_mantenimiento"`
	Descripcion        string  `json:"descripcion"`
}

// UpdateDepartamentoInput represents departamento update input
type UpdateDepartamentoInput struct {
	Piso               *int     `json:"piso"`
	MetrosCuadrados    *float64 `json:"metros_cuadrados"`
	Habitaciones       *int     `json:"habitaciones"`
	RentaMensual       *float64 `json:"renta_mensual"`
	CuotaMantenimiento *float64 `json:"cuota_mantenimiento"`
	Estado             *string  `json:"estado"`
	Descripcion        *string  `json:"descripcion"`
}

// Create creates a new departamento in estado disponible
func (s *DepartamentoService) Create(ctx context.Context, input *CreateDepartamentoInput) (*models.Departamento, error) {
	if _, err := s.departamentoRepo.GetByNumero(ctx, input.Numero); err == nil {
		return nil, ErrDepartamentoDuplicado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	departamento := &models.Departamento{
		Numero:             input.Numero,
		Piso:               input.Piso,
		MetrosCuadrados:    input.MetrosCuadrados,
		Habitaciones:       input.Habitaciones,
		RentaMensual:       input.RentaMensual,
		CuotaMantenimiento: input.CuotaMantenimiento,
		Estado:             domain.DeptoDisponible,
		Descripcion:        input.Descripcion,
	}

	if err := s.departamentoRepo.Create(ctx, departamento); err != nil {
		return nil, err
	}

	log.Printf("✅ Departamento created: %s", departamento.Numero)
	return departamento, nil
}

// GetByID returns a departamento
func (s *DepartamentoService) GetByID(ctx context.Context, id uint) (*models.Departamento, error) {
	departamento, err := s.departamentoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartamentoNotFound
		}
		return nil, err
	}
	return departamento, nil
}

// List lists departamentos, optionally filtered by estado
func (s *DepartamentoService) List(ctx context.Context, estado string, offset, limit int) ([]*models.Departamento, int64, error) {
	if estado != "" && !domain.Contains(domain.EstadosDepartamento, estado) {
		return nil, 0, ErrEstadoDepartamentoInvalido
	}
	return s.departamentoRepo.List(ctx, estado, offset, limit)
}

// Update patches departamento fields. Estado changes through here cover the
// manual states (mantenimiento, no_disponible); occupancy moves through
// AsignarResidente / Liberar.
func (s *DepartamentoService) Update(ctx context.Context, id uint, input *UpdateDepartamentoInput) (*models.Departamento, error) {
	departamento, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Piso != nil {
		departamento.Piso = *input.Piso
	}
	if input.MetrosCuadrados != nil {
		departamento.MetrosCuadrados = *input.MetrosCuadrados
	}
	if input.Habitaciones != nil {
		departamento.Habitaciones = *input.Habitaciones
	}
	if input.RentaMensual != nil {
		departamento.RentaMensual = *input.RentaMensual
	}
	if input.CuotaMantenimiento != nil {
		departamento.CuotaMantenimiento = *input.CuotaMantenimiento
	}
	if input.Descripcion != nil {
		departamento.Descripcion = *input.Descripcion
	}
	if input.Estado != nil {
		if !domain.Contains(domain.EstadosDepartamento, *input.Estado) {
			return nil, ErrEstadoDepartamentoInvalido
		}
		departamento.Estado = *input.Estado
	}

	if err := s.departamentoRepo.Update(ctx, departamento); err != nil {
		return nil, err
	}

	log.Printf("✅ Departamento updated: %s", departamento.Numero)
	return departamento, nil
}

// Delete soft deletes a departamento that has no active residents
func (s *DepartamentoService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	residentes, err := s.residenteRepo.ListActivosByDepartamento(ctx, id)
	if err != nil {
		return err
	}
	if len(residentes) > 0 {
		return ErrDepartamentoNoDisponible
	}

	if err := s.departamentoRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Departamento deleted: %d", id)
	return nil
}

// AsignarResidente assigns a residente to a departamento. The previous unit of
// the residente (if any) is released back to disponible; the target unit moves
// to ocupado. Everything runs in one transaction.
func (s *DepartamentoService) AsignarResidente(ctx context.Context, departamentoID, residenteID uint) (*models.Residente, error) {
	var residente models.Residente

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var departamento models.Departamento
		if err := tx.First(&departamento, departamentoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDepartamentoNotFound
			}
			return err
		}
		if departamento.Estado != domain.DeptoDisponible {
			return ErrDepartamentoNoDisponible
		}

		if err := tx.First(&residente, residenteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResidenteNotFound
			}
			return err
		}
		if !residente.Activo {
			return ErrResidenteInactivo
		}

		// Release the previous unit when no other active resident remains
		if residente.DepartamentoID != nil && *residente.DepartamentoID != departamentoID {
			anterior := *residente.DepartamentoID
			var otros int64
			if err := tx.Model(&models.Residente{}).
				Where("departamento_id = ? AND activo = ? AND id <> ?", anterior, true, residente.ID).
				Count(&otros).Error; err != nil {
				return err
			}
			if otros == 0 {
				if err := tx.Model(&models.Departamento{}).
					Where("id = ? AND estado = ?", anterior, domain.DeptoOcupado).
					Update("estado", domain.DeptoDisponible).Error; err != nil {
					return err
				}
			}
		}

		now := time.Now()
		residente.DepartamentoID = &departamentoID
		if residente.FechaIngreso == nil {
			residente.FechaIngreso = &now
		}
		if err := tx.Save(&residente).Error; err != nil {
			return err
		}

		return tx.Model(&models.Departamento{}).
			Where("id = ?", departamentoID).
			Update("estado", domain.DeptoOcupado).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Residente %d assigned to departamento %d", residenteID, departamentoID)
	return s.residenteRepo.GetByID(ctx, residente.ID)
}

// Liberar releases a departamento: every active residente pointing at it gets
// departamento_id nulled and the unit returns to disponible.
func (s *DepartamentoService) Liberar(ctx context.Context, departamentoID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var departamento models.Departamento
		if err := tx.First(&departamento, departamentoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDepartamentoNotFound
			}
			return err
		}

		now := time.Now()
		if err := tx.Model(&models.Residente{}).
			Where("departamento_id = ? AND activo = ?", departamentoID, true).
			Updates(map[string]interface{}{
				"departamento_id": nil,
				"fecha_salida":    now,
			}).Error; err != nil {
			return err
		}

		return tx.Model(&models.Departamento{}).
			Where("id = ?", departamentoID).
			Update("estado", domain.DeptoDisponible).Error
	})
	if err != nil {
		return err
	}

	log.Printf("✅ Departamento released: %d", departamentoID)
	return nil
}

// SincronizarEstados re-derives occupancy for every departamento: ocupado iff
// an active residente references it. Manual states (mantenimiento,
// no_disponible) are left untouched. Returns the number of corrections.
func (s *DepartamentoService) SincronizarEstados(ctx context.Context) (int, error) {
	corregidos := 0

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var departamentos []models.Departamento
		if err := tx.Find(&departamentos).Error; err != nil {
			return err
		}

		for i := range departamentos {
			departamento := &departamentos[i]
			if departamento.Estado == domain.DeptoMantenimiento || departamento.Estado == domain.DeptoNoDisponible {
				continue
			}

			var activos int64
			if err := tx.Model(&models.Residente{}).
				Where("departamento_id = ? AND activo = ?", departamento.ID, true).
				Count(&activos).Error; err != nil {
				return err
			}

			esperado := domain.DeptoDisponible
			if activos > 0 {
				esperado = domain.DeptoOcupado
			}

			if departamento.Estado != esperado {
				if err := tx.Model(&models.Departamento{}).
					Where("id = ?", departamento.ID).
					Update("estado", esperado).Error; err != nil {
					return err
				}
				corregidos++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if corregidos > 0 {
		log.Printf("✅ Occupancy sync corrected %d departamentos", corregidos)
	}
	return corregidos, nil
}
