package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Operación del edificio: personal, mantenimiento, áreas, consumo
// ============================================================

// PersonalEdificio represents the personal_edificio table
type PersonalEdificio struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Nombre            string         `gorm:"size:200;not null" json:"nombre"`
	Puesto            string         `gorm:"size:100;not null" json:"puesto"`
	Telefono          string         `gorm:"size:20" json:"telefono"`
	Email             string         `gorm:"size:100" json:"email"`
	Turno             string         `gorm:"size:20" json:"turno"`
	FechaContratacion *time.Time     `gorm:"type:date" json:"fecha_contratacion"`
	Activo            bool           `json:"activo"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PersonalEdificio) TableName() string {
	return "personal_edificio"
}

// SolicitudMantenimiento represents the solicitudes_mantenimiento table
type SolicitudMantenimiento struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	DepartamentoID  *uint          `gorm:"index" json:"departamento_id"`
	ResidenteID     *uint          `gorm:"index" json:"residente_id"`
	Titulo          string         `gorm:"size:200;not null" json:"titulo"`
	Descripcion     string         `gorm:"type:text" json:"descripcion"`
	Prioridad       string         `gorm:"size:20;default:'media'" json:"prioridad"`
	Estado          string         `gorm:"size:20;not null;default:'abierta';index" json:"estado"`
	AsignadaA       *uint          `json:"asignada_a"`
	FechaResolucion *time.Time     `json:"fecha_resolucion"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Departamento *Departamento     `gorm:"foreignKey:DepartamentoID" json:"departamento,omitempty"`
	Residente    *Residente        `gorm:"foreignKey:ResidenteID" json:"residente,omitempty"`
	Asignado     *PersonalEdificio `gorm:"foreignKey:AsignadaA" json:"asignado,omitempty"`
}

func (SolicitudMantenimiento) TableName() string {
	return "solicitudes_mantenimiento"
}

// AreaComun represents the areas_comunes table
type AreaComun struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Nombre          string         `gorm:"size:100;not null" json:"nombre"`
	Descripcion     string         `gorm:"type:text" json:"descripcion"`
	Capacidad       int            `gorm:"default:0" json:"capacidad"`
	CostoReserva    float64        `gorm:"type:decimal(12,2);default:0" json:"costo_reserva"`
	HorarioApertura string         `gorm:"size:10" json:"horario_apertura"`
	HorarioCierre   string         `gorm:"size:10" json:"horario_cierre"`
	Activa          bool           `gorm:"default:true" json:"activa"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AreaComun) TableName() string {
	return "areas_comunes"
}

// ReservaArea represents the reservas_areas table
type ReservaArea struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	AreaID      uint           `gorm:"not null;index" json:"area_id"`
	ResidenteID uint           `gorm:"not null;index" json:"residente_id"`
	Fecha       time.Time      `gorm:"type:date;not null;index" json:"fecha"`
	HoraInicio  string         `gorm:"size:10;not null" json:"hora_inicio"`
	HoraFin     string         `gorm:"size:10;not null" json:"hora_fin"`
	Estado      string         `gorm:"size:20;not null;default:'pendiente'" json:"estado"`
	Notas       string         `gorm:"type:text" json:"notas"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Area      *AreaComun `gorm:"foreignKey:AreaID" json:"area,omitempty"`
	Residente *Residente `gorm:"foreignKey:ResidenteID" json:"residente,omitempty"`
}

func (ReservaArea) TableName() string {
	return "reservas_areas"
}

// MetricaConsumo represents the metricas_consumo table
type MetricaConsumo struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	DepartamentoID uint      `gorm:"not null;index" json:"departamento_id"`
	Servicio       string    `gorm:"size:20;not null" json:"servicio"`
	Lectura        float64   `gorm:"type:decimal(12,3);not null" json:"lectura"`
	Unidad         string    `gorm:"size:10" json:"unidad"`
	FechaLectura   time.Time `gorm:"not null;index" json:"fecha_lectura"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	Departamento *Departamento `gorm:"foreignKey:DepartamentoID" json:"departamento,omitempty"`
}

func (MetricaConsumo) TableName() string {
	return "metricas_consumo"
}
