package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Seguridad: dispositivos, sensores IoT, incidentes
// ============================================================

// DispositivoSeguridad represents the dispositivos_seguridad table
type DispositivoSeguridad struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Tipo           string         `gorm:"size:30;not null" json:"tipo"`
	Ubicacion      string         `gorm:"size:200;not null" json:"ubicacion"`
	Estado         string         `gorm:"size:20;not null;default:'activo'" json:"estado"`
	UltimaRevision *time.Time     `json:"ultima_revision"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Sensores []SensorIoT `gorm:"foreignKey:DispositivoID" json:"sensores,omitempty"`
}

func (DispositivoSeguridad) TableName() string {
	return "dispositivos_seguridad"
}

// SensorIoT represents the sensores_iot table
type SensorIoT struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	DispositivoID *uint      `gorm:"index" json:"dispositivo_id"`
	Tipo          string     `gorm:"size:30;not null" json:"tipo"`
	Ubicacion     string     `gorm:"size:200;not null" json:"ubicacion"`
	UltimaLectura *float64   `gorm:"type:decimal(12,3)" json:"ultima_lectura"`
	FechaLectura  *time.Time `json:"fecha_lectura"`
	Activo        bool       `gorm:"default:true" json:"activo"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Dispositivo *DispositivoSeguridad `gorm:"foreignKey:DispositivoID" json:"dispositivo,omitempty"`
}

func (SensorIoT) TableName() string {
	return "sensores_iot"
}

// IncidenteEmergencia represents the incidentes_emergencias table
type IncidenteEmergencia struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Tipo            string         `gorm:"size:50;not null" json:"tipo"`
	Descripcion     string         `gorm:"type:text" json:"descripcion"`
	Ubicacion       string         `gorm:"size:200" json:"ubicacion"`
	Severidad       string         `gorm:"size:20;not null;default:'media'" json:"severidad"`
	Estado          string         `gorm:"size:20;not null;default:'reportado';index" json:"estado"`
	ReportadoPor    *uint          `json:"reportado_por"`
	AtendidoPor     *uint          `json:"atendido_por"`
	FechaResolucion *time.Time     `json:"fecha_resolucion"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Reportante *Usuario          `gorm:"foreignKey:ReportadoPor" json:"reportante,omitempty"`
	Atendiente *PersonalEdificio `gorm:"foreignKey:AtendidoPor" json:"atendiente,omitempty"`
}

func (IncidenteEmergencia) TableName() string {
	return "incidentes_emergencias"
}
