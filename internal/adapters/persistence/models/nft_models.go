package models

import (
	"time"
)

// ============================================================
// NFT: certificado de residencia claim tokens
// ============================================================

// NftClaimToken represents the nft_claim_tokens table.
// A token transitions issued → claimed exactly once: claiming is rejected
// when usado = true or now > expires_at.
type NftClaimToken struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ResidenteID uint       `gorm:"not null;index" json:"residente_id"`
	Token       string     `gorm:"uniqueIndex;size:64;not null" json:"token"`
	ExpiresAt   time.Time  `gorm:"not null" json:"expires_at"`
	Usado       bool       `gorm:"default:false;index" json:"usado"`
	UsadoAt     *time.Time `json:"usado_at"`

	// Set once the token is consumed and the mint is attempted
	Wallet      *string `gorm:"size:64" json:"wallet"`
	TxHash      *string `gorm:"size:80" json:"tx_hash"`
	TokenID     *string `gorm:"size:80" json:"token_id"`
	MetadataURI *string `gorm:"size:255" json:"metadata_uri"`
	EstadoMint  string  `gorm:"size:20" json:"estado_mint"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Residente *Residente `gorm:"foreignKey:ResidenteID" json:"residente,omitempty"`
}

func (NftClaimToken) TableName() string {
	return "nft_claim_tokens"
}

func (t *NftClaimToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
