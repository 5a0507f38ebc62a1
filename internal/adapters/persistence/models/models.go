package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Identity & building core tables
// ============================================================

// Usuario represents the usuarios table
type Usuario struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Nombre    string         `gorm:"size:100;not null" json:"nombre"`
	Apellido  string         `gorm:"size:100" json:"apellido"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Telefono  string         `gorm:"size:20" json:"telefono"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Rol       string         `gorm:"size:20;default:'RESIDENTE'" json:"rol"`
	Activo    bool           `gorm:"default:true" json:"activo"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Usuario) TableName() string {
	return "usuarios"
}

// UsuarioResponse DTO
type UsuarioResponse struct {
	ID        uint      `json:"id"`
	Nombre    string    `json:"nombre"`
	Apellido  string    `json:"apellido"`
	Email     string    `json:"email"`
	Telefono  string    `json:"telefono"`
	Rol       string    `json:"rol"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *Usuario) ToResponse() *UsuarioResponse {
	return &UsuarioResponse{
		ID:        u.ID,
		Nombre:    u.Nombre,
		Apellido:  u.Apellido,
		Email:     u.Email,
		Telefono:  u.Telefono,
		Rol:       u.Rol,
		Activo:    u.Activo,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UsuarioID uint       `gorm:"index;not null" json:"usuario_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	Usuario   Usuario    `gorm:"foreignKey:UsuarioID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// Departamento represents the departamentos table (physical units)
type Departamento struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Numero             string         `gorm:"uniqueIndex;size:20;not null" json:"numero"`
	Piso               int            `gorm:"not null" json:"piso"`
	MetrosCuadrados    float64        `gorm:"type:decimal(8,2)" json:"metros_cuadrados"`
	Habitaciones       int            `gorm:"default:1" json:"habitaciones"`
	RentaMensual       float64        `gorm:"type:decimal(12,2)" json:"renta_mensual"`
	CuotaMantenimiento float64        `gorm:"type:decimal(12,2)" json:"cuota_mantenimiento"`
	Estado             string         `gorm:"size:20;not null;default:'disponible';index" json:"estado"`
	Descripcion        string         `gorm:"type:text" json:"descripcion"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Residentes []Residente `gorm:"foreignKey:DepartamentoID" json:"residentes,omitempty"`
}

func (Departamento) TableName() string {
	return "departamentos"
}

// Residente represents the residentes table: links a usuario to a departamento
type Residente struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UsuarioID      uint           `gorm:"not null;index" json:"usuario_id"`
	DepartamentoID *uint          `gorm:"index" json:"departamento_id"`
	TipoRelacion   string         `gorm:"size:20;not null;default:'inquilino'" json:"tipo_relacion"`
	FechaIngreso   *time.Time     `gorm:"type:date" json:"fecha_ingreso"`
	FechaSalida    *time.Time     `gorm:"type:date" json:"fecha_salida"`
	EsPrincipal    bool           `gorm:"default:false" json:"es_principal"`
	Activo         bool           `gorm:"default:true;index" json:"activo"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Usuario      *Usuario      `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
	Departamento *Departamento `gorm:"foreignKey:DepartamentoID" json:"departamento,omitempty"`
}

func (Residente) TableName() string {
	return "residentes"
}

// ResidenteResponse DTO
type ResidenteResponse struct {
	ID             uint       `json:"id"`
	UsuarioID      uint       `json:"usuario_id"`
	NombreCompleto string     `json:"nombre_completo,omitempty"`
	Email          string     `json:"email,omitempty"`
	DepartamentoID *uint      `json:"departamento_id"`
	Departamento   string     `json:"departamento,omitempty"`
	TipoRelacion   string     `json:"tipo_relacion"`
	FechaIngreso   *time.Time `json:"fecha_ingreso"`
	FechaSalida    *time.Time `json:"fecha_salida"`
	EsPrincipal    bool       `json:"es_principal"`
	Activo         bool       `json:"activo"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (r *Residente) ToResponse() *ResidenteResponse {
	resp := &ResidenteResponse{
		ID:             r.ID,
		UsuarioID:      r.UsuarioID,
		DepartamentoID: r.DepartamentoID,
		TipoRelacion:   r.TipoRelacion,
		FechaIngreso:   r.FechaIngreso,
		FechaSalida:    r.FechaSalida,
		EsPrincipal:    r.EsPrincipal,
		Activo:         r.Activo,
		CreatedAt:      r.CreatedAt,
	}

	if r.Usuario != nil {
		resp.NombreCompleto = r.Usuario.Nombre + " " + r.Usuario.Apellido
		resp.Email = r.Usuario.Email
	}
	if r.Departamento != nil {
		resp.Departamento = r.Departamento.Numero
	}

	return resp
}

// Notificacion represents the notificaciones table
type Notificacion struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UsuarioID  uint       `gorm:"not null;index" json:"usuario_id"`
	Tipo       string     `gorm:"size:20;not null;default:'sistema'" json:"tipo"`
	Titulo     string     `gorm:"size:200;not null" json:"titulo"`
	Mensaje    string     `gorm:"type:text" json:"mensaje"`
	Leida      bool       `gorm:"default:false;index" json:"leida"`
	FechaLeida *time.Time `json:"fecha_leida"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Usuario *Usuario `gorm:"foreignKey:UsuarioID" json:"-"`
}

func (Notificacion) TableName() string {
	return "notificaciones"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for every table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity
		&Usuario{},
		&RefreshToken{},
		// Building core
		&Departamento{},
		&Residente{},
		&Notificacion{},
		// Finanzas
		&Pago{},
		&SolicitudRenta{},
		// Edificio operations
		&PersonalEdificio{},
		&SolicitudMantenimiento{},
		&AreaComun{},
		&ReservaArea{},
		&MetricaConsumo{},
		// Seguridad
		&DispositivoSeguridad{},
		&SensorIoT{},
		&IncidenteEmergencia{},
		// NFT
		&NftClaimToken{},
	)
}
