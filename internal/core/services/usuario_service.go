package services

import (
	"context"
	"errors"
	"log"

	"edificio-hub/internal/adapters/persistence/models"
	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/core/domain"
	"edificio-hub/internal/pkg/password"

	"gorm.io/gorm"
)

// UsuarioService handles usuario administration business logic
type UsuarioService struct {
	usuarioRepo repositories.UsuarioRepository
}

// NewUsuarioService creates a new usuario service
func NewUsuarioService(usuarioRepo repositories.UsuarioRepository) *UsuarioService {
	return &UsuarioService{usuarioRepo: usuarioRepo}
}

// CreateUsuarioInput represents admin usuario creation input
type CreateUsuarioInput struct {
	Nombre   string `json:"nombre" validate:"required,min=2,max=100"`
	Apellido string `json:"apellido" validate:"max=100"`
	Email    string `json:"email" validate:"required,email"`
	Telefono string `json:"telefono" validate:"max=20"`
	Password string `json:"password" validate:"required,min=8"`
	Rol      string `json:"rol" validate:"required"`
}

// UpdateUsuarioInput represents usuario update input
type UpdateUsuarioInput struct {
	Nombre   *string `json:"nombre"`
	Apellido *string `json:"apellido"`
	Telefono *string `json:"telefono"`
	Rol      *string `json:"rol"`
	Activo   *bool   `json:"activo"`
}

// ChangePasswordInput represents password change input
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// Create creates a usuario with an explicit role (admin only)
func (s *UsuarioService) Create(ctx context.Context, input *CreateUsuarioInput) (*models.UsuarioResponse, error) {
	if input.Rol != string(domain.RolAdmin) && input.Rol != string(domain.RolStaff) && input.Rol != string(domain.RolResidente) {
		return nil, domain.ErrInvalidInput
	}
	if !password.Validate(input.Password) {
		return nil, ErrWeakPassword
	}

	exists, err := s.usuarioRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyUsed
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	usuario := &models.Usuario{
		Nombre:   input.Nombre,
		Apellido: input.Apellido,
		Email:    input.Email,
		Telefono: input.Telefono,
		Password: hashedPassword,
		Rol:      input.Rol,
		Activo:   true,
	}

	if err := s.usuarioRepo.Create(ctx, usuario); err != nil {
		return nil, err
	}

	log.Printf("✅ Usuario created by admin: %s [%s]", usuario.Email, usuario.Rol)
	return usuario.ToResponse(), nil
}

// GetByID returns a single usuario
func (s *UsuarioService) GetByID(ctx context.Context, id uint) (*models.UsuarioResponse, error) {
	usuario, err := s.usuarioRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}
	return usuario.ToResponse(), nil
}

// List lists usuarios with pagination
func (s *UsuarioService) List(ctx context.Context, offset, limit int) ([]*models.UsuarioResponse, int64, error) {
	usuarios, total, err := s.usuarioRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.UsuarioResponse, 0, len(usuarios))
	for _, usuario := range usuarios {
		responses = append(responses, usuario.ToResponse())
	}
	return responses, total, nil
}

// Update patches usuario fields
func (s *UsuarioService) Update(ctx context.Context, id uint, input *UpdateUsuarioInput) (*models.UsuarioResponse, error) {
	usuario, err := s.usuarioRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}

	if input.Nombre != nil {
		usuario.Nombre = *input.Nombre
	}
	if input.Apellido != nil {
		usuario.Apellido = *input.Apellido
	}
	if input.Telefono != nil {
		usuario.Telefono = *input.Telefono
	}
	if input.Rol != nil {
		if *input.Rol != string(domain.RolAdmin) && *input.Rol != string(domain.RolStaff) && *input.Rol != string(domain.RolResidente) {
			return nil, domain.ErrInvalidInput
		}
		usuario.Rol = *input.Rol
	}
	if input.Activo != nil {
		usuario.Activo = *input.Activo
	}

	if err := s.usuarioRepo.Update(ctx, usuario); err != nil {
		return nil, err
	}

	log.Printf("✅ Usuario updated: %d", usuario.ID)
	return usuario.ToResponse(), nil
}

// ChangePassword verifies the current password and sets a new one
func (s *UsuarioService) ChangePassword(ctx context.Context, usuarioID uint, input *ChangePasswordInput) error {
	usuario, err := s.usuarioRepo.GetByID(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUsuarioNotFound
		}
		return err
	}

	if !password.Verify(input.CurrentPassword, usuario.Password) {
		return ErrInvalidCredentials
	}
	if !password.Validate(input.NewPassword) {
		return ErrWeakPassword
	}

	hashedPassword, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	usuario.Password = hashedPassword
	if err := s.usuarioRepo.Update(ctx, usuario); err != nil {
		return err
	}

	log.Printf("✅ Password changed for usuario: %d", usuarioID)
	return nil
}

// Delete soft deletes a usuario
func (s *UsuarioService) Delete(ctx context.Context, id uint) error {
	if _, err := s.usuarioRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUsuarioNotFound
		}
		return err
	}

	if err := s.usuarioRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Usuario deleted: %d", id)
	return nil
}
