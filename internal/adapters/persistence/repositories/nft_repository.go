package repositories

import (
	"context"
	"time"

	"edificio-hub/internal/adapters/persistence/models"
	"edificio-hub/internal/core/domain"

	"gorm.io/gorm"
)

// NftRepository handles nft_claim_tokens data access
type NftRepository struct {
	db *gorm.DB
}

// NewNftRepository creates a new NFT repository
func NewNftRepository(db *gorm.DB) *NftRepository {
	return &NftRepository{db: db}
}

func (r *NftRepository) Create(ctx context.Context, token *models.NftClaimToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *NftRepository) GetByID(ctx context.Context, id uint) (*models.NftClaimToken, error) {
	var claim models.NftClaimToken
	err := r.db.WithContext(ctx).
		Preload("Residente").
		Preload("Residente.Usuario").
		Preload("Residente.Departamento").
		First(&claim, id).Error
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// GetByToken looks up a claim by its opaque token value
func (r *NftRepository) GetByToken(ctx context.Context, token string) (*models.NftClaimToken, error) {
	var claim models.NftClaimToken
	err := r.db.WithContext(ctx).
		Preload("Residente").
		Preload("Residente.Usuario").
		Preload("Residente.Departamento").
		Where("token = ?", token).
		First(&claim).Error
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// Consumir marks a token as used in a single guarded update. Returns the
// affected row count so callers can detect a token that was already claimed.
func (r *NftRepository) Consumir(ctx context.Context, id uint, wallet string) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.NftClaimToken{}).
		Where("id = ? AND usado = ?", id, false).
		Updates(map[string]interface{}{
			"usado":       true,
			"usado_at":    now,
			"wallet":      wallet,
			"estado_mint": domain.MintPendiente,
		})
	return result.RowsAffected, result.Error
}

// MarcarConfirmado records a successful mint
func (r *NftRepository) MarcarConfirmado(ctx context.Context, id uint, txHash string, tokenID string, metadataURI string) error {
	return r.db.WithContext(ctx).Model(&models.NftClaimToken{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"tx_hash":      txHash,
			"token_id":     tokenID,
			"metadata_uri": metadataURI,
			"estado_mint":  domain.MintConfirmado,
		}).Error
}

// MarcarFallido records a failed mint without releasing the token
func (r *NftRepository) MarcarFallido(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.NftClaimToken{}).
		Where("id = ?", id).
		Update("estado_mint", domain.MintFallido).Error
}

// ListByResidente lists claims for a residente, newest first
func (r *NftRepository) ListByResidente(ctx context.Context, residenteID uint) ([]*models.NftClaimToken, error) {
	var claims []*models.NftClaimToken
	err := r.db.WithContext(ctx).
		Where("residente_id = ?", residenteID).
		Order("created_at DESC").
		Find(&claims).Error
	return claims, err
}

// DeleteExpired removes unused tokens past their expiry (cron sweep)
func (r *NftRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("usado = ? AND expires_at < ?", false, time.Now()).
		Delete(&models.NftClaimToken{})
	return result.RowsAffected, result.Error
}
