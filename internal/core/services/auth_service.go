package services

import (
	"context"
	"errors"
	"log"

	"edificio-hub/internal/adapters/persistence/models"
	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/config"
	"edificio-hub/internal/pkg/jwt"
	"edificio-hub/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrUsuarioNotFound    = errors.New("usuario no encontrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrEmailAlreadyUsed   = errors.New("el correo ya está registrado")
	ErrInvalidToken       = errors.New("token inválido")
	ErrTokenExpired       = errors.New("token expirado")
	ErrTokenRevoked       = errors.New("token revocado")
	ErrUsuarioInactive    = errors.New("la cuenta está desactivada")
	ErrWeakPassword       = errors.New("la contraseña debe tener al menos 8 caracteres")
)

// AuthService handles authentication business logic
type AuthService struct {
	usuarioRepo      repositories.UsuarioRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	usuarioRepo repositories.UsuarioRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		usuarioRepo:      usuarioRepo,
		refreshTokenRepo: refreshTokenRepo,
		cfg:              cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Nombre   string `json:"nombre" validate:"required,min=2,max=100"`
	Apellido string `json:"apellido" validate:"max=100"`
	Email    string `json:"email" validate:"required,email"`
	Telefono string `json:"telefono" validate:"max=20"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Usuario      *models.UsuarioResponse `json:"usuario"`
	AccessToken  string                  `json:"access_token"`
	RefreshToken string                  `json:"refresh_token"`
}

// Register registers a new usuario with the RESIDENTE role
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	// 1. Validate password strength
	if !password.Validate(input.Password) {
		return nil, ErrWeakPassword
	}

	// 2. Check if email already exists
	exists, err := s.usuarioRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyUsed
	}

	// 3. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 4. Create usuario
	usuario := &models.Usuario{
		Nombre:   input.Nombre,
		Apellido: input.Apellido,
		Email:    input.Email,
		Telefono: input.Telefono,
		Password: hashedPassword,
		Rol:      "RESIDENTE",
		Activo:   true,
	}

	if err := s.usuarioRepo.Create(ctx, usuario); err != nil {
		return nil, err
	}

	// 5. Generate tokens
	tokens, err := s.generateTokens(usuario)
	if err != nil {
		return nil, err
	}

	// 6. Store refresh token
	if err := s.storeRefreshToken(ctx, usuario.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ Usuario registered: %s", usuario.Email)

	return &AuthResponse{
		Usuario:      usuario.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Login authenticates a usuario
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find usuario by email
	usuario, err := s.usuarioRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Check if usuario is active
	if !usuario.Activo {
		return nil, ErrUsuarioInactive
	}

	// 3. Verify password
	if !password.Verify(input.Password, usuario.Password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Generate tokens
	tokens, err := s.generateTokens(usuario)
	if err != nil {
		return nil, err
	}

	// 5. Store refresh token
	if err := s.storeRefreshToken(ctx, usuario.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ Usuario logged in: %s", usuario.Email)

	return &AuthResponse{
		Usuario:      usuario.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RefreshToken refreshes the access token using a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	// 2. Hash the token to find in DB
	tokenHash := password.HashToken(refreshToken)

	// 3. Find token in DB
	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	// 4. Check revocation and expiry
	if storedToken.IsRevoked() {
		return nil, ErrTokenRevoked
	}
	if storedToken.IsExpired() {
		return nil, ErrTokenExpired
	}

	// 5. Get usuario
	usuario, err := s.usuarioRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUsuarioNotFound
	}
	if !usuario.Activo {
		return nil, ErrUsuarioInactive
	}

	// 6. Revoke old refresh token (token rotation)
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	// 7. Generate and store new tokens
	tokens, err := s.generateTokens(usuario)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, usuario.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for usuario: %s", usuario.Email)

	return &AuthResponse{
		Usuario:      usuario.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)

	if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash); err != nil {
		return err
	}

	log.Printf("✅ Usuario logged out")
	return nil
}

// LogoutAll revokes all refresh tokens for a usuario
func (s *AuthService) LogoutAll(ctx context.Context, usuarioID uint) error {
	if err := s.refreshTokenRepo.RevokeAllByUsuarioID(ctx, usuarioID); err != nil {
		return err
	}

	log.Printf("✅ All sessions revoked for usuario ID: %d", usuarioID)
	return nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// GetUsuarioByID gets a usuario by ID
func (s *AuthService) GetUsuarioByID(ctx context.Context, usuarioID uint) (*models.Usuario, error) {
	return s.usuarioRepo.GetByID(ctx, usuarioID)
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(usuario *models.Usuario) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		usuario.ID,
		usuario.Email,
		usuario.Rol,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()

	refreshToken, err := jwt.GenerateRefreshToken(
		usuario.ID,
		tokenID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, usuarioID uint, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)
	expiresAt := jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays)

	token := &models.RefreshToken{
		UsuarioID: usuarioID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}

	return s.refreshTokenRepo.Create(ctx, token)
}
