package repositories

import (
	"context"

	"edificio-hub/internal/adapters/persistence/models"
)

// UsuarioRepository defines usuario repository interface
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *models.Usuario) error
	GetByID(ctx context.Context, id uint) (*models.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*models.Usuario, error)
	Update(ctx context.Context, usuario *models.Usuario) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Usuario, int64, error)
	ListActivos(ctx context.Context) ([]*models.Usuario, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUsuarioID(ctx context.Context, usuarioID uint) error
	DeleteExpired(ctx context.Context) error
}
