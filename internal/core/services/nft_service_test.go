package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"edificio-hub/internal/adapters/external/chain"
	"edificio-hub/internal/adapters/external/pinata"
	"edificio-hub/internal/adapters/persistence/models"
	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testWallet = "0x52908400098527886E0F7030069857D2E4169EE7"

type fakePinner struct {
	pins   int
	pinErr error
}

func (f *fakePinner) PinFile(name string, data []byte) (string, error) {
	if f.pinErr != nil {
		return "", f.pinErr
	}
	f.pins++
	return fmt.Sprintf("QmFile%d", f.pins), nil
}

func (f *fakePinner) PinJSON(name string, metadata *pinata.Metadata) (string, error) {
	if f.pinErr != nil {
		return "", f.pinErr
	}
	f.pins++
	return fmt.Sprintf("QmJSON%d", f.pins), nil
}

func (f *fakePinner) GatewayURL(cid string) string { return "https://gateway.test/ipfs/" + cid }
func (f *fakePinner) IpfsURI(cid string) string    { return "ipfs://" + cid }

type fakeMinter struct {
	mintErr error
	wallet  string
	uri     string
}

func (f *fakeMinter) Mint(ctx context.Context, wallet, metadataURI string) (*chain.MintResult, error) {
	if f.mintErr != nil {
		return nil, f.mintErr
	}
	f.wallet = wallet
	f.uri = metadataURI
	return &chain.MintResult{TxHash: "0xabc123", TokenID: "7"}, nil
}

func newNftService(db *gorm.DB, pinner Pinner, minter Minter) *NftService {
	return NewNftService(
		repositories.NewNftRepository(db),
		repositories.NewResidenteRepository(db),
		pinner,
		minter,
		chain.ValidarWallet,
		testConfig(),
	)
}

func seedNftFixture(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	usuario := seedUsuario(t, db, "titular@example.com")
	depto := seedDepartamento(t, db, "PH-1", domain.DeptoOcupado)
	residente := seedResidente(t, db, usuario.ID, &depto.ID)
	return residente.ID
}

func TestGenerarTokenEmiteTokenConVigencia(t *testing.T) {
	db := setupTestDB(t)
	service := newNftService(db, &fakePinner{}, &fakeMinter{})
	residenteID := seedNftFixture(t, db)

	result, err := service.GenerarToken(context.Background(), residenteID)
	require.NoError(t, err)
	assert.Len(t, result.Token, 64)
	assert.Equal(t, "http://localhost:3000/claim/"+result.Token, result.ClaimURL)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), result.ExpiresAt, time.Minute)

	validacion, err := service.ValidarToken(context.Background(), result.Token)
	require.NoError(t, err)
	assert.True(t, validacion.Valid)
	assert.Equal(t, residenteID, validacion.ResidenteID)
}

func TestGenerarTokenRequiereResidenteActivo(t *testing.T) {
	db := setupTestDB(t)
	service := newNftService(db, &fakePinner{}, &fakeMinter{})
	residenteID := seedNftFixture(t, db)

	require.NoError(t, db.Model(&models.Residente{}).Where("id = ?", residenteID).Update("activo", false).Error)

	_, err := service.GenerarToken(context.Background(), residenteID)
	assert.ErrorIs(t, err, ErrResidenteInactivo)
}

func TestClaimAcunaCertificado(t *testing.T) {
	db := setupTestDB(t)
	pinner := &fakePinner{}
	minter := &fakeMinter{}
	service := newNftService(db, pinner, minter)
	residenteID := seedNftFixture(t, db)
	ctx := context.Background()

	token, err := service.GenerarToken(ctx, residenteID)
	require.NoError(t, err)

	result, err := service.Claim(ctx, token.Token, testWallet)
	require.NoError(t, err)
	assert.Equal(t, "0xabc123", result.TxHash)
	assert.Equal(t, "7", result.TokenID)
	assert.Equal(t, testWallet, minter.wallet)
	assert.Equal(t, result.MetadataURI, minter.uri)
	assert.Contains(t, result.MetadataURI, "ipfs://")

	var claim models.NftClaimToken
	require.NoError(t, db.Where("token = ?", token.Token).First(&claim).Error)
	assert.True(t, claim.Usado)
	assert.Equal(t, domain.MintConfirmado, claim.EstadoMint)
	require.NotNil(t, claim.TxHash)
	assert.Equal(t, "0xabc123", *claim.TxHash)
}

func TestClaimEsDeUnSoloUso(t *testing.T) {
	db := setupTestDB(t)
	service := newNftService(db, &fakePinner{}, &fakeMinter{})
	residenteID := seedNftFixture(t, db)
	ctx := context.Background()

	token, err := service.GenerarToken(ctx, residenteID)
	require.NoError(t, err)

	_, err = service.Claim(ctx, token.Token, testWallet)
	require.NoError(t, err)

	_, err = service.Claim(ctx, token.Token, testWallet)
	assert.ErrorIs(t, err, ErrClaimTokenUsado)
}

func TestClaimRechazaTokenExpirado(t *testing.T) {
	db := setupTestDB(t)
	service := newNftService(db, &fakePinner{}, &fakeMinter{})
	residenteID := seedNftFixture(t, db)
	ctx := context.Background()

	token, err := service.GenerarToken(ctx, residenteID)
	require.NoError(t, err)

	vencido := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.NftClaimToken{}).Where("token = ?", token.Token).Update("expires_at", vencido).Error)

	_, err = service.Claim(ctx, token.Token, testWallet)
	assert.ErrorIs(t, err, ErrClaimTokenExpirado)

	validacion, err := service.ValidarToken(ctx, token.Token)
	require.NoError(t, err)
	assert.False(t, validacion.Valid)
}

func TestClaimValidaWallet(t *testing.T) {
	db := setupTestDB(t)
	service := newNftService(db, &fakePinner{}, &fakeMinter{})
	residenteID := seedNftFixture(t, db)
	ctx := context.Background()

	token, err := service.GenerarToken(ctx, residenteID)
	require.NoError(t, err)

	_, err = service.Claim(ctx, token.Token, "no-es-una-wallet")
	assert.ErrorIs(t, err, ErrWalletInvalida)
}

func TestClaimSinIntegracionConfigurada(t *testing.T) {
	db := setupTestDB(t)
	service := newNftService(db, nil, nil)
	residenteID := seedNftFixture(t, db)
	ctx := context.Background()

	token, err := service.GenerarToken(ctx, residenteID)
	require.NoError(t, err)

	_, err = service.Claim(ctx, token.Token, testWallet)
	assert.ErrorIs(t, err, ErrNftDisabled)
}

func TestClaimMarcaFallidoCuandoElMintFalla(t *testing.T) {
	db := setupTestDB(t)
	service := newNftService(db, &fakePinner{}, &fakeMinter{mintErr: errors.New("rpc caído")})
	residenteID := seedNftFixture(t, db)
	ctx := context.Background()

	token, err := service.GenerarToken(ctx, residenteID)
	require.NoError(t, err)

	_, err = service.Claim(ctx, token.Token, testWallet)
	assert.ErrorIs(t, err, ErrMintFallido)

	var claim models.NftClaimToken
	require.NoError(t, db.Where("token = ?", token.Token).First(&claim).Error)
	assert.True(t, claim.Usado)
	assert.Equal(t, domain.MintFallido, claim.EstadoMint)
}

func TestLimpiarExpiradosSoloBorraTokensVencidosSinUsar(t *testing.T) {
	db := setupTestDB(t)
	service := newNftService(db, &fakePinner{}, &fakeMinter{})
	residenteID := seedNftFixture(t, db)
	ctx := context.Background()

	vigente, err := service.GenerarToken(ctx, residenteID)
	require.NoError(t, err)
	vencido, err := service.GenerarToken(ctx, residenteID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.NftClaimToken{}).
		Where("token = ?", vencido.Token).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)

	eliminados, err := service.LimpiarExpirados(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, eliminados)

	_, err = service.ValidarToken(ctx, vigente.Token)
	assert.NoError(t, err)
	_, err = service.ValidarToken(ctx, vencido.Token)
	assert.ErrorIs(t, err, ErrClaimTokenNotFound)
}
