package services

import (
	"context"
	"errors"
	"log"
	"time"

	"edificio-hub/internal/adapters/persistence/models"
	"edificio-hub/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// PersonalService handles building staff business logic
type PersonalService struct {
	personalRepo *repositories.PersonalRepository
}

// NewPersonalService creates a new personal service
func NewPersonalService(personalRepo *repositories.PersonalRepository) *PersonalService {
	return &PersonalService{personalRepo: personalRepo}
}

// CreatePersonalInput represents staff creation input
type CreatePersonalInput struct {
	Nombre            string     `json:"nombre" validate:"required,max=200"`
	Puesto            string     `json:"puesto" validate:"required,max=100"`
	Telefono          string     `json:"telefono" validate:"max=20"`
	Email             string     `json:"email" validate:"omitempty,email"`
	Turno             string     `json:"turno"`
	FechaContratacion *time.Time `json:"fecha_contratacion"`
}

// UpdatePersonalInput represents staff update input
type UpdatePersonalInput struct {
	Nombre   *string `json:"nombre"`
	Puesto   *string `json:"puesto"`
	Telefono *string `json:"telefono"`
	Email    *string `json:"email"`
	Turno    *string `json:"turno"`
	Activo   *bool   `json:"activo"`
}

// Crear registers a staff member
func (s *PersonalService) Crear(ctx context.Context, input *CreatePersonalInput) (*models.PersonalEdificio, error) {
	personal := &models.PersonalEdificio{
		Nombre:            input.Nombre,
		Puesto:            input.Puesto,
		Telefono:          input.Telefono,
		Email:             input.Email,
		Turno:             input.Turno,
		FechaContratacion: input.FechaContratacion,
		Activo:            true,
	}

	if err := s.personalRepo.Create(ctx, personal); err != nil {
		return nil, err
	}

	log.Printf("✅ Personal created: %s (%s)", personal.Nombre, personal.Puesto)
	return personal, nil
}

// GetByID returns a staff member
func (s *PersonalService) GetByID(ctx context.Context, id uint) (*models.PersonalEdificio, error) {
	personal, err := s.personalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonalNotFound
		}
		return nil, err
	}
	return personal, nil
}

// List lists staff with pagination
func (s *PersonalService) List(ctx context.Context, offset, limit int) ([]*models.PersonalEdificio, int64, error) {
	return s.personalRepo.List(ctx, offset, limit)
}

// Update patches staff fields
func (s *PersonalService) Update(ctx context.Context, id uint, input *UpdatePersonalInput) (*models.PersonalEdificio, error) {
	personal, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Nombre != nil {
		personal.Nombre = *input.Nombre
	}
	if input.Puesto != nil {
		personal.Puesto = *input.Puesto
	}
	if input.Telefono != nil {
		personal.Telefono = *input.Telefono
	}
	if input.Email != nil {
		personal.Email = *input.Email
	}
	if input.Turno != nil {
		personal.Turno = *input.Turno
	}
	if input.Activo != nil {
		personal.Activo = *input.Activo
	}

	if err := s.personalRepo.Update(ctx, personal); err != nil {
		return nil, err
	}

	log.Printf("✅ Personal updated: %d", personal.ID)
	return personal, nil
}

// Delete soft deletes a staff member
func (s *PersonalService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.personalRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Personal deleted: %d", id)
	return nil
}
