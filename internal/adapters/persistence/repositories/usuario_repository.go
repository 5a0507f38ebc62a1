package repositories

import (
	"context"

	"edificio-hub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// usuarioRepository implements UsuarioRepository interface
type usuarioRepository struct {
	db *gorm.DB
}

// NewUsuarioRepository creates a new usuario repository
func NewUsuarioRepository(db *gorm.DB) UsuarioRepository {
	return &usuarioRepository{db: db}
}

// Create creates a new usuario
func (r *usuarioRepository) Create(ctx context.Context, usuario *models.Usuario) error {
	return r.db.WithContext(ctx).Create(usuario).Error
}

// GetByID gets a usuario by ID
func (r *usuarioRepository) GetByID(ctx context.Context, id uint) (*models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&usuario).Error
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

// GetByEmail gets a usuario by email
func (r *usuarioRepository) GetByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&usuario).Error
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

// Update updates a usuario
func (r *usuarioRepository) Update(ctx context.Context, usuario *models.Usuario) error {
	return r.db.WithContext(ctx).Save(usuario).Error
}

// Delete soft deletes a usuario
func (r *usuarioRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Usuario{}, id).Error
}

// List lists usuarios with pagination
func (r *usuarioRepository) List(ctx context.Context, offset, limit int) ([]*models.Usuario, int64, error) {
	var usuarios []*models.Usuario
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Usuario{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Order("created_at DESC").Find(&usuarios).Error; err != nil {
		return nil, 0, err
	}

	return usuarios, total, nil
}

// ListActivos lists all active usuarios (announcement fan-out)
func (r *usuarioRepository) ListActivos(ctx context.Context) ([]*models.Usuario, error) {
	var usuarios []*models.Usuario
	err := r.db.WithContext(ctx).Where("activo = ?", true).Find(&usuarios).Error
	return usuarios, err
}

// ExistsByEmail checks if email exists
func (r *usuarioRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Usuario{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
