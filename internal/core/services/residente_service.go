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

var ErrTipoRelacionInvalido = errors.New("tipo de relación inválido")

// ResidenteService handles residente business logic
type ResidenteService struct {
	residenteRepo       *repositories.ResidenteRepository
	usuarioRepo         repositories.UsuarioRepository
	departamentoService *DepartamentoService
	db                  *gorm.DB
}

// NewResidenteService creates a new residente service
func NewResidenteService(
	residenteRepo *repositories.ResidenteRepository,
	usuarioRepo repositories.UsuarioRepository,
	departamentoService *DepartamentoService,
	db *gorm.DB,
) *ResidenteService {
	return &ResidenteService{
		residenteRepo:       residenteRepo,
		usuarioRepo:         usuarioRepo,
		departamentoService: departamentoService,
		db:                  db,
	}
}

// CreateResidenteInput represents residente creation input
type CreateResidenteInput struct {
	UsuarioID      uint   `json:"usuario_id" validate:"required"`
	DepartamentoID *uint  `json:"departamento_id"`
	TipoRelacion   string `json:"tipo_relacion" validate:"required"`
	EsPrincipal    bool   `json:"es_principal"`
}

// UpdateResidenteInput represents residente update input
type UpdateResidenteInput struct {
	TipoRelacion *string `json:"tipo_relacion"`
	EsPrincipal  *bool   `json:"es_principal"`
}

// Create creates a residente for an existing usuario. When departamento_id is
// given, assignment goes through the transactional occupancy sync.
func (s *ResidenteService) Create(ctx context.Context, input *CreateResidenteInput) (*models.ResidenteResponse, error) {
	if !domain.Contains(domain.TiposRelacion, input.TipoRelacion) {
		return nil, ErrTipoRelacionInvalido
	}

	usuario, err := s.usuarioRepo.GetByID(ctx, input.UsuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}
	if !usuario.Activo {
		return nil, ErrUsuarioInactive
	}

	residente := &models.Residente{
		UsuarioID:    usuario.ID,
		TipoRelacion: input.TipoRelacion,
		EsPrincipal:  input.EsPrincipal,
		Activo:       true,
	}

	if err := s.residenteRepo.Create(ctx, residente); err != nil {
		return nil, err
	}

	if input.DepartamentoID != nil {
		if _, err := s.departamentoService.AsignarResidente(ctx, *input.DepartamentoID, residente.ID); err != nil {
			return nil, err
		}
	}

	creado, err := s.residenteRepo.GetByID(ctx, residente.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Residente created: %d (usuario %d)", residente.ID, usuario.ID)
	return creado.ToResponse(), nil
}

// GetByID returns a residente with its usuario and departamento
func (s *ResidenteService) GetByID(ctx context.Context, id uint) (*models.ResidenteResponse, error) {
	residente, err := s.residenteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidenteNotFound
		}
		return nil, err
	}
	return residente.ToResponse(), nil
}

// GetByUsuarioID returns the active residente record of a usuario
func (s *ResidenteService) GetByUsuarioID(ctx context.Context, usuarioID uint) (*models.Residente, error) {
	residente, err := s.residenteRepo.GetByUsuarioID(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidenteNotFound
		}
		return nil, err
	}
	return residente, nil
}

// List lists residentes with filters
func (s *ResidenteService) List(ctx context.Context, filter *repositories.ResidenteFilter, offset, limit int) ([]*models.ResidenteResponse, int64, error) {
	residentes, total, err := s.residenteRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.ResidenteResponse, 0, len(residentes))
	for _, residente := range residentes {
		responses = append(responses, residente.ToResponse())
	}
	return responses, total, nil
}

// Update patches residente fields
func (s *ResidenteService) Update(ctx context.Context, id uint, input *UpdateResidenteInput) (*models.ResidenteResponse, error) {
	residente, err := s.residenteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidenteNotFound
		}
		return nil, err
	}

	if input.TipoRelacion != nil {
		if !domain.Contains(domain.TiposRelacion, *input.TipoRelacion) {
			return nil, ErrTipoRelacionInvalido
		}
		residente.TipoRelacion = *input.TipoRelacion
	}
	if input.EsPrincipal != nil {
		residente.EsPrincipal = *input.EsPrincipal
	}

	if err := s.residenteRepo.Update(ctx, residente); err != nil {
		return nil, err
	}

	log.Printf("✅ Residente updated: %d", residente.ID)
	return residente.ToResponse(), nil
}

// Desactivar deactivates a residente and releases its departamento when it was
// the last active occupant. Runs in one transaction.
func (s *ResidenteService) Desactivar(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var residente models.Residente
		if err := tx.First(&residente, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResidenteNotFound
			}
			return err
		}

		now := time.Now()
		departamentoID := residente.DepartamentoID

		residente.Activo = false
		residente.DepartamentoID = nil
		residente.FechaSalida = &now
		if err := tx.Save(&residente).Error; err != nil {
			return err
		}

		if departamentoID != nil {
			var activos int64
			if err := tx.Model(&models.Residente{}).
				Where("departamento_id = ? AND activo = ?", *departamentoID, true).
				Count(&activos).Error; err != nil {
				return err
			}
			if activos == 0 {
				if err := tx.Model(&models.Departamento{}).
					Where("id = ? AND estado = ?", *departamentoID, domain.DeptoOcupado).
					Update("estado", domain.DeptoDisponible).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("✅ Residente deactivated: %d", id)
	return nil
}
