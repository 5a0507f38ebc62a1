package services

import (
	"context"
	"testing"

	"edificio-hub/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(
		repositories.NewUsuarioRepository(db),
		repositories.NewRefreshTokenRepository(db),
		testConfig(),
	)
}

func registerInput(email string) *RegisterInput {
	return &RegisterInput{
		Nombre:   "Ana",
		Apellido: "García",
		Email:    email,
		Password: "supersecreta1",
	}
}

func TestRegisterCreaCuentaResidente(t *testing.T) {
	db := setupTestDB(t)
	service := newAuthService(db)
	ctx := context.Background()

	resp, err := service.Register(ctx, registerInput("ana@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "RESIDENTE", resp.Usuario.Rol)
	assert.True(t, resp.Usuario.Activo)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := service.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.Usuario.ID, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestRegisterRechazaPasswordDebil(t *testing.T) {
	db := setupTestDB(t)
	service := newAuthService(db)

	input := registerInput("ana@example.com")
	input.Password = "corta"

	_, err := service.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterRechazaEmailDuplicado(t *testing.T) {
	db := setupTestDB(t)
	service := newAuthService(db)
	ctx := context.Background()

	_, err := service.Register(ctx, registerInput("ana@example.com"))
	require.NoError(t, err)

	_, err = service.Register(ctx, registerInput("ana@example.com"))
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestLoginVerificaCredenciales(t *testing.T) {
	db := setupTestDB(t)
	service := newAuthService(db)
	ctx := context.Background()
	seedUsuario(t, db, "ana@example.com")

	resp, err := service.Login(ctx, &LoginInput{Email: "ana@example.com", Password: "supersecreta1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = service.Login(ctx, &LoginInput{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(ctx, &LoginInput{Email: "nadie@example.com", Password: "supersecreta1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRechazaCuentaDesactivada(t *testing.T) {
	db := setupTestDB(t)
	service := newAuthService(db)
	usuario := seedUsuario(t, db, "baja@example.com")

	require.NoError(t, db.Model(usuario).Update("activo", false).Error)

	_, err := service.Login(context.Background(), &LoginInput{Email: "baja@example.com", Password: "supersecreta1"})
	assert.ErrorIs(t, err, ErrUsuarioInactive)
}

func TestRefreshTokenRotaElToken(t *testing.T) {
	db := setupTestDB(t)
	service := newAuthService(db)
	ctx := context.Background()

	registro, err := service.Register(ctx, registerInput("ana@example.com"))
	require.NoError(t, err)

	renovado, err := service.RefreshToken(ctx, registro.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registro.RefreshToken, renovado.RefreshToken)

	// el token anterior quedó revocado por la rotación
	_, err = service.RefreshToken(ctx, registro.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// el nuevo sigue siendo válido
	_, err = service.RefreshToken(ctx, renovado.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshTokenRechazaTokenAjeno(t *testing.T) {
	db := setupTestDB(t)
	service := newAuthService(db)

	_, err := service.RefreshToken(context.Background(), "no.es.un.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevocaElRefreshToken(t *testing.T) {
	db := setupTestDB(t)
	service := newAuthService(db)
	ctx := context.Background()

	registro, err := service.Register(ctx, registerInput("ana@example.com"))
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, registro.RefreshToken))

	_, err = service.RefreshToken(ctx, registro.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestLogoutAllCierraTodasLasSesiones(t *testing.T) {
	db := setupTestDB(t)
	service := newAuthService(db)
	ctx := context.Background()

	registro, err := service.Register(ctx, registerInput("ana@example.com"))
	require.NoError(t, err)
	sesion, err := service.Login(ctx, &LoginInput{Email: "ana@example.com", Password: "supersecreta1"})
	require.NoError(t, err)

	require.NoError(t, service.LogoutAll(ctx, registro.Usuario.ID))

	_, err = service.RefreshToken(ctx, registro.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	_, err = service.RefreshToken(ctx, sesion.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}
