package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"edificio-hub/internal/adapters/external/chain"
	"edificio-hub/internal/adapters/external/pinata"
	"edificio-hub/internal/adapters/persistence/models"
	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/config"
	"edificio-hub/internal/pkg/document"

	"gorm.io/gorm"
)

// claim tokens expire 30 days after issuance
const claimTokenTTL = 30 * 24 * time.Hour

// NFT errors
var (
	ErrClaimTokenNotFound = errors.New("token de reclamo no encontrado")
	ErrClaimTokenUsado    = errors.New("el token ya fue utilizado")
	ErrClaimTokenExpirado = errors.New("el token ha expirado")
	ErrWalletInvalida     = errors.New("dirección de wallet inválida")
	ErrMintFallido        = errors.New("no fue posible acuñar el certificado")
	ErrNftDisabled        = errors.New("la integración de certificados NFT no está configurada")
	ErrResidenteSinDepto  = errors.New("el residente no tiene departamento asignado")
)

// Pinner abstracts the IPFS pinning provider
type Pinner interface {
	PinFile(name string, data []byte) (string, error)
	PinJSON(name string, metadata *pinata.Metadata) (string, error)
	GatewayURL(cid string) string
	IpfsURI(cid string) string
}

// Minter abstracts the on-chain ERC-721 mint
type Minter interface {
	Mint(ctx context.Context, wallet, metadataURI string) (*chain.MintResult, error)
}

// WalletValidator reports whether a wallet address is well formed
type WalletValidator func(wallet string) bool

// NftService orchestrates the residency certificate claim flow
type NftService struct {
	nftRepo       *repositories.NftRepository
	residenteRepo *repositories.ResidenteRepository
	pinner        Pinner
	minter        Minter
	validarWallet WalletValidator
	cfg           *config.Config
}

// NewNftService creates a new NFT service. pinner and minter may be nil when
// the chain integration is not configured; token generation and validation
// still work.
func NewNftService(
	nftRepo *repositories.NftRepository,
	residenteRepo *repositories.ResidenteRepository,
	pinner Pinner,
	minter Minter,
	validarWallet WalletValidator,
	cfg *config.Config,
) *NftService {
	return &NftService{
		nftRepo:       nftRepo,
		residenteRepo: residenteRepo,
		pinner:        pinner,
		minter:        minter,
		validarWallet: validarWallet,
		cfg:           cfg,
	}
}

// GenerateTokenResult is returned when a claim token is issued
type GenerateTokenResult struct {
	Token     string    `json:"token"`
	ClaimURL  string    `json:"claim_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GenerarToken issues a single-use claim token for an active residente
func (s *NftService) GenerarToken(ctx context.Context, residenteID uint) (*GenerateTokenResult, error) {
	residente, err := s.residenteRepo.GetByID(ctx, residenteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidenteNotFound
		}
		return nil, err
	}
	if !residente.Activo {
		return nil, ErrResidenteInactivo
	}

	// 32 random bytes → 64 hex chars
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	token := hex.EncodeToString(buf)

	claim := &models.NftClaimToken{
		ResidenteID: residenteID,
		Token:       token,
		ExpiresAt:   time.Now().Add(claimTokenTTL),
	}
	if err := s.nftRepo.Create(ctx, claim); err != nil {
		return nil, err
	}

	log.Printf("✅ Claim token issued for residente %d", residenteID)

	return &GenerateTokenResult{
		Token:     token,
		ClaimURL:  fmt.Sprintf("%s/claim/%s", s.cfg.AppURL, token),
		ExpiresAt: claim.ExpiresAt,
	}, nil
}

// ValidateTokenResult describes a claim token without consuming it
type ValidateTokenResult struct {
	Valid       bool       `json:"valid"`
	Motivo      string     `json:"motivo,omitempty"`
	ResidenteID uint       `json:"residente_id"`
	ExpiresAt   time.Time  `json:"expires_at"`
	UsadoAt     *time.Time `json:"usado_at,omitempty"`
}

// ValidarToken inspects a claim token
func (s *NftService) ValidarToken(ctx context.Context, token string) (*ValidateTokenResult, error) {
	claim, err := s.nftRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaimTokenNotFound
		}
		return nil, err
	}

	result := &ValidateTokenResult{
		ResidenteID: claim.ResidenteID,
		ExpiresAt:   claim.ExpiresAt,
		UsadoAt:     claim.UsadoAt,
	}

	switch {
	case claim.Usado:
		result.Motivo = "el token ya fue utilizado"
	case claim.IsExpired():
		result.Motivo = "el token ha expirado"
	default:
		result.Valid = true
	}

	return result, nil
}

// ClaimResult is returned after a successful mint
type ClaimResult struct {
	TxHash      string `json:"tx_hash"`
	TokenID     string `json:"token_id"`
	MetadataURI string `json:"metadata_uri"`
	PreviewURL  string `json:"preview_url"`
}

// Claim consumes a token and mints the residency certificate. The token is
// consumed atomically BEFORE any chain interaction: a concurrent second claim
// loses the guarded update and is rejected. Pin or mint failure leaves the
// token consumed with estado_mint fallido.
func (s *NftService) Claim(ctx context.Context, token, wallet string) (*ClaimResult, error) {
	if s.pinner == nil || s.minter == nil {
		return nil, ErrNftDisabled
	}
	if s.validarWallet != nil && !s.validarWallet(wallet) {
		return nil, ErrWalletInvalida
	}

	// 1. Joined lookup: residente + usuario + departamento
	claim, err := s.nftRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaimTokenNotFound
		}
		return nil, err
	}
	if claim.Usado {
		return nil, ErrClaimTokenUsado
	}
	if claim.IsExpired() {
		return nil, ErrClaimTokenExpirado
	}
	if claim.Residente == nil || claim.Residente.Usuario == nil {
		return nil, ErrResidenteNotFound
	}
	if claim.Residente.Departamento == nil {
		return nil, ErrResidenteSinDepto
	}

	// 2. Atomic consume: the guarded update is the idempotency barrier
	afectados, err := s.nftRepo.Consumir(ctx, claim.ID, wallet)
	if err != nil {
		return nil, err
	}
	if afectados == 0 {
		return nil, ErrClaimTokenUsado
	}

	result, err := s.mintCertificado(ctx, claim, wallet)
	if err != nil {
		if markErr := s.nftRepo.MarcarFallido(ctx, claim.ID); markErr != nil {
			log.Printf("❌ Failed to mark claim %d fallido: %v", claim.ID, markErr)
		}
		log.Printf("❌ Claim %d failed: %v", claim.ID, err)
		return nil, ErrMintFallido
	}

	if err := s.nftRepo.MarcarConfirmado(ctx, claim.ID, result.TxHash, result.TokenID, result.MetadataURI); err != nil {
		return nil, err
	}

	log.Printf("✅ Certificate minted for residente %d: token %s (tx %s)", claim.ResidenteID, result.TokenID, result.TxHash)
	return result, nil
}

// mintCertificado renders, pins and mints the certificate
func (s *NftService) mintCertificado(ctx context.Context, claim *models.NftClaimToken, wallet string) (*ClaimResult, error) {
	usuario := claim.Residente.Usuario
	departamento := claim.Residente.Departamento

	fechaIngreso := claim.Residente.CreatedAt
	if claim.Residente.FechaIngreso != nil {
		fechaIngreso = *claim.Residente.FechaIngreso
	}

	cert := &document.Certificado{
		NombreResidente: usuario.Nombre + " " + usuario.Apellido,
		Departamento:    departamento.Numero,
		TipoRelacion:    claim.Residente.TipoRelacion,
		FechaIngreso:    fechaIngreso,
		FechaEmision:    time.Now(),
		Folio:           fmt.Sprintf("CR-%06d", claim.ID),
	}

	// 1. Render certificate artifacts
	pdf, err := document.GenerarPDF(cert)
	if err != nil {
		return nil, err
	}
	png, err := document.GenerarPreviewPNG(cert)
	if err != nil {
		return nil, err
	}

	// 2. Pin artifacts + metadata to IPFS
	pdfCID, err := s.pinner.PinFile(cert.Folio+".pdf", pdf)
	if err != nil {
		return nil, err
	}
	pngCID, err := s.pinner.PinFile(cert.Folio+".png", png)
	if err != nil {
		return nil, err
	}

	metadata := &pinata.Metadata{
		Name:        "Certificado de Residencia " + cert.Folio,
		Description: fmt.Sprintf("Certifica la residencia de %s en el departamento %s.", cert.NombreResidente, cert.Departamento),
		Image:       s.pinner.IpfsURI(pngCID),
		Attributes: []pinata.Attribute{
			{TraitType: "Departamento", Value: cert.Departamento},
			{TraitType: "Relación", Value: cert.TipoRelacion},
			{TraitType: "Documento", Value: s.pinner.IpfsURI(pdfCID)},
		},
	}
	metadataCID, err := s.pinner.PinJSON(cert.Folio+".json", metadata)
	if err != nil {
		return nil, err
	}
	metadataURI := s.pinner.IpfsURI(metadataCID)

	// 3. Mint and wait for the receipt
	minted, err := s.minter.Mint(ctx, wallet, metadataURI)
	if err != nil {
		return nil, err
	}

	return &ClaimResult{
		TxHash:      minted.TxHash,
		TokenID:     minted.TokenID,
		MetadataURI: metadataURI,
		PreviewURL:  s.pinner.GatewayURL(pngCID),
	}, nil
}

// ListByResidente lists the claim history of a residente
func (s *NftService) ListByResidente(ctx context.Context, residenteID uint) ([]*models.NftClaimToken, error) {
	return s.nftRepo.ListByResidente(ctx, residenteID)
}

// LimpiarExpirados deletes unused expired tokens (cron)
func (s *NftService) LimpiarExpirados(ctx context.Context) (int64, error) {
	eliminados, err := s.nftRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if eliminados > 0 {
		log.Printf("✅ Swept %d expired claim tokens", eliminados)
	}
	return eliminados, nil
}
