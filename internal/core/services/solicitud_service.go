package services

import (
	"context"
	"errors"
	"log"
	"time"

	"edificio-hub/internal/adapters/persistence/models"
	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/core/domain"
	"edificio-hub/internal/pkg/password"

	"gorm.io/gorm"
)

// Solicitud errors
var (
	ErrSolicitudNotFound      = errors.New("solicitud no encontrada")
	ErrTransicionInvalida     = errors.New("transición de estado inválida")
	ErrSolicitudNoCompletable = errors.New("solo las solicitudes aprobadas pueden completarse")
)

// transiciones maps each estado to the estados reachable from it
var transiciones = map[string][]string{
	domain.SolicitudPendiente:  {domain.SolicitudEnRevision, domain.SolicitudRechazada, domain.SolicitudRetirada},
	domain.SolicitudEnRevision: {domain.SolicitudAprobada, domain.SolicitudRechazada, domain.SolicitudRetirada},
	domain.SolicitudAprobada:   {domain.SolicitudCompletada, domain.SolicitudRetirada},
}

// SolicitudService handles solicitudes de renta business logic
type SolicitudService struct {
	solicitudRepo       *repositories.SolicitudRentaRepository
	departamentoRepo    *repositories.DepartamentoRepository
	usuarioRepo         repositories.UsuarioRepository
	residenteRepo       *repositories.ResidenteRepository
	departamentoService *DepartamentoService
}

// NewSolicitudService creates a new solicitud service
func NewSolicitudService(
	solicitudRepo *repositories.SolicitudRentaRepository,
	departamentoRepo *repositories.DepartamentoRepository,
	usuarioRepo repositories.UsuarioRepository,
	residenteRepo *repositories.ResidenteRepository,
	departamentoService *DepartamentoService,
) *SolicitudService {
	return &SolicitudService{
		solicitudRepo:       solicitudRepo,
		departamentoRepo:    departamentoRepo,
		usuarioRepo:         usuarioRepo,
		residenteRepo:       residenteRepo,
		departamentoService: departamentoService,
	}
}

// CreateSolicitudInput represents the public application form
type CreateSolicitudInput struct {
	NombreCompleto string `json:"nombre_completo" validate:"required,min=3,max=200"`
	Email          string `json:"email" validate:"required,email"`
	Telefono       string `json:"telefono" validate:"max=20"`
	DepartamentoID uint   `json:"departamento_id" validate:"required"`
	Mensaje        string `json:"mensaje"`
}

// RevisarSolicitudInput represents a state change by a reviewer
type RevisarSolicitudInput struct {
	Estado string `json:"estado" validate:"required"`
	Notas  string `json:"notas"`
}

// Crear registers a rental application against an available departamento
func (s *SolicitudService) Crear(ctx context.Context, input *CreateSolicitudInput) (*models.SolicitudRenta, error) {
	departamento, err := s.departamentoRepo.GetByID(ctx, input.DepartamentoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartamentoNotFound
		}
		return nil, err
	}
	if departamento.Estado != domain.DeptoDisponible {
		return nil, ErrDepartamentoNoDisponible
	}

	solicitud := &models.SolicitudRenta{
		NombreCompleto: input.NombreCompleto,
		Email:          input.Email,
		Telefono:       input.Telefono,
		DepartamentoID: input.DepartamentoID,
		Mensaje:        input.Mensaje,
		Estado:         domain.SolicitudPendiente,
	}

	if err := s.solicitudRepo.Create(ctx, solicitud); err != nil {
		return nil, err
	}
	solicitud.Departamento = departamento

	log.Printf("✅ Solicitud de renta created: %d (%s, depto %s)", solicitud.ID, solicitud.Email, departamento.Numero)
	return solicitud, nil
}

// GetByID returns a solicitud
func (s *SolicitudService) GetByID(ctx context.Context, id uint) (*models.SolicitudRenta, error) {
	solicitud, err := s.solicitudRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSolicitudNotFound
		}
		return nil, err
	}
	return solicitud, nil
}

// List lists solicitudes, optionally filtered by estado
func (s *SolicitudService) List(ctx context.Context, estado string, offset, limit int) ([]*models.SolicitudRenta, int64, error) {
	return s.solicitudRepo.List(ctx, estado, offset, limit)
}

// Revisar moves a solicitud along the review state machine
func (s *SolicitudService) Revisar(ctx context.Context, id uint, revisorID uint, input *RevisarSolicitudInput) (*models.SolicitudRenta, error) {
	solicitud, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.Contains(transiciones[solicitud.Estado], input.Estado) {
		return nil, ErrTransicionInvalida
	}

	now := time.Now()
	solicitud.Estado = input.Estado
	solicitud.RevisadaPor = &revisorID
	solicitud.FechaRevision = &now
	if input.Notas != "" {
		solicitud.Notas = input.Notas
	}

	if err := s.solicitudRepo.Update(ctx, solicitud); err != nil {
		return nil, err
	}

	log.Printf("✅ Solicitud %d → %s (revisor %d)", solicitud.ID, solicitud.Estado, revisorID)
	return solicitud, nil
}

// CompletarResult carries the artifacts of a completed application
type CompletarResult struct {
	Solicitud           *models.SolicitudRenta    `json:"solicitud"`
	Usuario             *models.UsuarioResponse   `json:"usuario"`
	Residente           *models.ResidenteResponse `json:"residente"`
	PasswordTemporal    string                    `json:"password_temporal,omitempty"`
	UsuarioPreexistente bool                      `json:"usuario_preexistente"`
}

// Completar finishes an approved solicitud: creates (or reuses) the usuario,
// creates the residente and runs the transactional departamento assignment.
func (s *SolicitudService) Completar(ctx context.Context, id uint, revisorID uint) (*CompletarResult, error) {
	solicitud, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if solicitud.Estado != domain.SolicitudAprobada {
		return nil, ErrSolicitudNoCompletable
	}

	result := &CompletarResult{Solicitud: solicitud}

	// 1. Reuse an existing account for the applicant's email, otherwise
	//    create one with a temporary password.
	usuario, err := s.usuarioRepo.GetByEmail(ctx, solicitud.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		passwordTemporal := password.GenerateTemporary()
		hashed, err := password.Hash(passwordTemporal)
		if err != nil {
			return nil, err
		}

		usuario = &models.Usuario{
			Nombre:   solicitud.NombreCompleto,
			Email:    solicitud.Email,
			Telefono: solicitud.Telefono,
			Password: hashed,
			Rol:      string(domain.RolResidente),
			Activo:   true,
		}
		if err := s.usuarioRepo.Create(ctx, usuario); err != nil {
			return nil, err
		}
		result.PasswordTemporal = passwordTemporal
	} else {
		result.UsuarioPreexistente = true
	}
	result.Usuario = usuario.ToResponse()

	// 2. Create the residente record
	residente := &models.Residente{
		UsuarioID:    usuario.ID,
		TipoRelacion: domain.RelacionInquilino,
		EsPrincipal:  true,
		Activo:       true,
	}
	if err := s.residenteRepo.Create(ctx, residente); err != nil {
		return nil, err
	}

	// 3. Transactional assignment flips the departamento to ocupado
	asignado, err := s.departamentoService.AsignarResidente(ctx, solicitud.DepartamentoID, residente.ID)
	if err != nil {
		return nil, err
	}
	result.Residente = asignado.ToResponse()

	// 4. Close the solicitud
	now := time.Now()
	solicitud.Estado = domain.SolicitudCompletada
	solicitud.RevisadaPor = &revisorID
	solicitud.FechaRevision = &now
	if err := s.solicitudRepo.Update(ctx, solicitud); err != nil {
		return nil, err
	}

	log.Printf("✅ Solicitud %d completed: residente %d on depto %d", solicitud.ID, residente.ID, solicitud.DepartamentoID)
	return result, nil
}

// Retirar lets the applicant withdraw an open solicitud
func (s *SolicitudService) Retirar(ctx context.Context, id uint) (*models.SolicitudRenta, error) {
	solicitud, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.Contains(transiciones[solicitud.Estado], domain.SolicitudRetirada) {
		return nil, ErrTransicionInvalida
	}

	solicitud.Estado = domain.SolicitudRetirada
	if err := s.solicitudRepo.Update(ctx, solicitud); err != nil {
		return nil, err
	}

	log.Printf("✅ Solicitud withdrawn: %d", solicitud.ID)
	return solicitud, nil
}
