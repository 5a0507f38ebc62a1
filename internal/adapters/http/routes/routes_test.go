package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"edificio-hub/internal/adapters/http/middleware"
	"edificio-hub/internal/adapters/persistence/models"
	"edificio-hub/internal/config"
	"edificio-hub/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
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

	cfg := &config.Config{
		AppMode: "dev",
		Port:    "8080",
		AppURL:  "http://localhost:3000",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	config.AppConfig = cfg
	config.DB = db

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.CustomErrorHandler,
	})
	Setup(app, db, cfg)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

// register devuelve el access token de una cuenta RESIDENTE recién creada
func register(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"nombre":   "Ana",
		"apellido": "García",
		"email":    email,
		"password": "supersecreta1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	return data["access_token"].(string)
}

// promoteToAdmin flips an account's rol directly in the DB and logs in again
// so the new rol lands in the token claims
func promoteToAdmin(t *testing.T, app *fiber.App, db *gorm.DB, email string) string {
	t.Helper()

	require.NoError(t, db.Model(&models.Usuario{}).Where("email = ?", email).Update("rol", "ADMIN").Error)
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    email,
		"password": "supersecreta1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	return data["access_token"].(string)
}

func TestRootYAPIInfoSonPublicos(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegistroYPerfil(t *testing.T) {
	app, _ := setupTestApp(t)
	token := register(t, app, "ana@example.com")

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	usuario := data["usuario"].(map[string]interface{})
	assert.Equal(t, "ana@example.com", usuario["email"])
	assert.Equal(t, "RESIDENTE", usuario["rol"])
}

func TestRutasProtegidasRequierenToken(t *testing.T) {
	app, _ := setupTestApp(t)

	for _, path := range []string{
		"/api/v1/auth/me",
		"/api/v1/usuarios/",
		"/api/v1/departamentos/",
		"/api/v1/dashboard/",
	} {
		resp, _ := doJSON(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/auth/me", "token-falso", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRolResidenteNoAccedeARutasDeStaff(t *testing.T) {
	app, _ := setupTestApp(t)
	token := register(t, app, "ana@example.com")

	for _, path := range []string{
		"/api/v1/usuarios/",
		"/api/v1/residentes/",
		"/api/v1/pagos/",
		"/api/v1/dashboard/",
	} {
		resp, _ := doJSON(t, app, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
	}
}

func TestAdminGestionaDepartamentos(t *testing.T) {
	app, db := setupTestApp(t)
	register(t, app, "admin@example.com")
	token := promoteToAdmin(t, app, db, "admin@example.com")

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/departamentos/", token, fiber.Map{
		"numero": "101",
		"piso":   1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "disponible", data["estado"])

	// número duplicado
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/departamentos/", token, fiber.Map{
		"numero": "101",
		"piso":   1,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSolicitudDeRentaEsPublica(t *testing.T) {
	app, db := setupTestApp(t)

	depto := &models.Departamento{Numero: "301", Piso: 3, Estado: "disponible"}
	require.NoError(t, db.Create(depto).Error)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/solicitudes/", "", fiber.Map{
		"nombre_completo": "Laura Méndez",
		"email":           "laura@example.com",
		"departamento_id": depto.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "pendiente", data["estado"])

	// listar solicitudes sí exige sesión de staff
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/solicitudes/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestClaimNftEsPublicoYRespondeNotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/nft/claim/"+fmt.Sprintf("%064d", 0), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWebhookStripeSinGatewayConfigurado(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/stripe", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginConCuentaSembrada(t *testing.T) {
	app, db := setupTestApp(t)

	hash, err := password.Hash("supersecreta1")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Usuario{
		Nombre:   "Marco",
		Email:    "marco@example.com",
		Password: hash,
		Rol:      "STAFF",
		Activo:   true,
	}).Error)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "marco@example.com",
		"password": "supersecreta1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	usuario := data["usuario"].(map[string]interface{})
	assert.Equal(t, "STAFF", usuario["rol"])

	// staff puede ver el listado de residentes
	token := data["access_token"].(string)
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/residentes/", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
