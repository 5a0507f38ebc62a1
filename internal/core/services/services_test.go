package services

import (
	"testing"
	"time"

	"edificio-hub/internal/adapters/persistence/models"
	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/config"
	"edificio-hub/internal/core/domain"
	"edificio-hub/internal/pkg/password"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func testConfig() *config.Config {
	return &config.Config{
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
}

func seedUsuario(t *testing.T, db *gorm.DB, email string) *models.Usuario {
	t.Helper()

	hash, err := password.Hash("supersecreta1")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	usuario := &models.Usuario{
		Nombre:   "Ana",
		Apellido: "García",
		Email:    email,
		Password: hash,
		Rol:      string(domain.RolResidente),
		Activo:   true,
	}
	if err := db.Create(usuario).Error; err != nil {
		t.Fatalf("failed to seed usuario: %v", err)
	}
	return usuario
}

func seedDepartamento(t *testing.T, db *gorm.DB, numero, estado string) *models.Departamento {
	t.Helper()

	departamento := &models.Departamento{
		Numero:       numero,
		Piso:         1,
		RentaMensual: 12000,
		Estado:       estado,
	}
	if err := db.Create(departamento).Error; err != nil {
		t.Fatalf("failed to seed departamento: %v", err)
	}
	return departamento
}

func seedResidente(t *testing.T, db *gorm.DB, usuarioID uint, departamentoID *uint) *models.Residente {
	t.Helper()

	now := time.Now()
	residente := &models.Residente{
		UsuarioID:      usuarioID,
		DepartamentoID: departamentoID,
		TipoRelacion:   domain.RelacionInquilino,
		FechaIngreso:   &now,
		Activo:         true,
	}
	if err := db.Create(residente).Error; err != nil {
		t.Fatalf("failed to seed residente: %v", err)
	}
	return residente
}

func newDepartamentoService(db *gorm.DB) *DepartamentoService {
	return NewDepartamentoService(
		repositories.NewDepartamentoRepository(db),
		repositories.NewResidenteRepository(db),
		db,
	)
}
