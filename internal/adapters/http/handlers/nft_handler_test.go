package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"edificio-hub/internal/adapters/external/chain"
	"edificio-hub/internal/adapters/external/pinata"
	"edificio-hub/internal/adapters/persistence/models"
	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/config"
	"edificio-hub/internal/core/domain"
	"edificio-hub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const claimTestWallet = "0x52908400098527886E0F7030069857D2E4169EE7"

type stubPinner struct{}

func (stubPinner) PinFile(name string, data []byte) (string, error) { return "QmStubFile", nil }
func (stubPinner) PinJSON(name string, metadata *pinata.Metadata) (string, error) {
	return "QmStubJSON", nil
}
func (stubPinner) GatewayURL(cid string) string { return "https://gateway.test/ipfs/" + cid }
func (stubPinner) IpfsURI(cid string) string    { return "ipfs://" + cid }

type stubMinter struct{}

func (stubMinter) Mint(ctx context.Context, wallet, metadataURI string) (*chain.MintResult, error) {
	return &chain.MintResult{TxHash: "0xstub", TokenID: "1"}, nil
}

func setupClaimApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := &config.Config{AppURL: "http://localhost:3000"}
	nftService := services.NewNftService(
		repositories.NewNftRepository(db),
		repositories.NewResidenteRepository(db),
		stubPinner{},
		stubMinter{},
		chain.ValidarWallet,
		cfg,
	)
	handler := NewNftHandler(nftService)

	app := fiber.New()
	app.Post("/nft/claim/:token", handler.Claim)
	return app, db
}

func seedClaimToken(t *testing.T, db *gorm.DB, token string, usado bool, expiresAt time.Time) {
	t.Helper()

	usuario := &models.Usuario{
		Nombre:   "Ana",
		Apellido: "García",
		Email:    "ana@example.com",
		Password: "x",
		Rol:      string(domain.RolResidente),
		Activo:   true,
	}
	require.NoError(t, db.Create(usuario).Error)

	departamento := &models.Departamento{Numero: "101", Piso: 1, Estado: domain.DeptoOcupado}
	require.NoError(t, db.Create(departamento).Error)

	residente := &models.Residente{
		UsuarioID:      usuario.ID,
		DepartamentoID: &departamento.ID,
		TipoRelacion:   domain.RelacionInquilino,
		Activo:         true,
	}
	require.NoError(t, db.Create(residente).Error)

	require.NoError(t, db.Create(&models.NftClaimToken{
		ResidenteID: residente.ID,
		Token:       token,
		ExpiresAt:   expiresAt,
		Usado:       usado,
	}).Error)
}

func postClaim(t *testing.T, app *fiber.App, token, wallet string) (*http.Response, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(fiber.Map{"wallet": wallet})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/nft/claim/"+token, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestClaimTokenUtilizadoRespondeBadRequest(t *testing.T) {
	app, db := setupClaimApp(t)
	seedClaimToken(t, db, "token-usado", true, time.Now().Add(time.Hour))

	resp, body := postClaim(t, app, "token-usado", claimTestWallet)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "El token ya fue utilizado", body["error"])
}

func TestClaimTokenExpiradoRespondeBadRequest(t *testing.T) {
	app, db := setupClaimApp(t)
	seedClaimToken(t, db, "token-vencido", false, time.Now().Add(-time.Hour))

	resp, body := postClaim(t, app, "token-vencido", claimTestWallet)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "El token ha expirado", body["error"])
}

func TestClaimTokenDesconocidoRespondeNotFound(t *testing.T) {
	app, _ := setupClaimApp(t)

	resp, _ := postClaim(t, app, "token-inexistente", claimTestWallet)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
