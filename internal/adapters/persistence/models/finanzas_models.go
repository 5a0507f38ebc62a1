package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Finanzas: pagos & solicitudes de renta
// ============================================================

// Pago represents the pagos table
type Pago struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	ResidenteID           uint           `gorm:"not null;index" json:"residente_id"`
	TipoPago              string         `gorm:"size:20;not null" json:"tipo_pago"`
	Monto                 float64        `gorm:"type:decimal(12,2);not null" json:"monto"`
	Estado                string         `gorm:"size:20;not null;default:'pendiente';index" json:"estado"`
	Descripcion           string         `gorm:"size:255" json:"descripcion"`
	FechaVencimiento      time.Time      `gorm:"type:date;not null;index" json:"fecha_vencimiento"`
	FechaPago             *time.Time     `json:"fecha_pago"`
	MetodoPago            string         `gorm:"size:30" json:"metodo_pago"`
	StripePaymentIntentID *string        `gorm:"size:100;index" json:"stripe_payment_intent_id"`
	CreatedAt             time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Residente *Residente `gorm:"foreignKey:ResidenteID" json:"residente,omitempty"`
}

func (Pago) TableName() string {
	return "pagos"
}

// PagoResponse DTO
type PagoResponse struct {
	ID               uint       `json:"id"`
	ResidenteID      uint       `json:"residente_id"`
	Residente        string     `json:"residente,omitempty"`
	Departamento     string     `json:"departamento,omitempty"`
	TipoPago         string     `json:"tipo_pago"`
	Monto            float64    `json:"monto"`
	Estado           string     `json:"estado"`
	Descripcion      string     `json:"descripcion"`
	FechaVencimiento time.Time  `json:"fecha_vencimiento"`
	FechaPago        *time.Time `json:"fecha_pago"`
	MetodoPago       string     `json:"metodo_pago,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (p *Pago) ToResponse() *PagoResponse {
	resp := &PagoResponse{
		ID:               p.ID,
		ResidenteID:      p.ResidenteID,
		TipoPago:         p.TipoPago,
		Monto:            p.Monto,
		Estado:           p.Estado,
		Descripcion:      p.Descripcion,
		FechaVencimiento: p.FechaVencimiento,
		FechaPago:        p.FechaPago,
		MetodoPago:       p.MetodoPago,
		CreatedAt:        p.CreatedAt,
	}

	if p.Residente != nil {
		if p.Residente.Usuario != nil {
			resp.Residente = p.Residente.Usuario.Nombre + " " + p.Residente.Usuario.Apellido
		}
		if p.Residente.Departamento != nil {
			resp.Departamento = p.Residente.Departamento.Numero
		}
	}

	return resp
}

// SolicitudRenta represents the solicitudes_renta table
type SolicitudRenta struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	NombreCompleto string         `gorm:"size:200;not null" json:"nombre_completo"`
	Email          string         `gorm:"size:100;not null" json:"email"`
	Telefono       string         `gorm:"size:20" json:"telefono"`
	DepartamentoID uint           `gorm:"not null;index" json:"departamento_id"`
	Mensaje        string         `gorm:"type:text" json:"mensaje"`
	Estado         string         `gorm:"size:20;not null;default:'pendiente';index" json:"estado"`
	RevisadaPor    *uint          `json:"revisada_por"`
	FechaRevision  *time.Time     `json:"fecha_revision"`
	Notas          string         `gorm:"type:text" json:"notas"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Departamento *Departamento `gorm:"foreignKey:DepartamentoID" json:"departamento,omitempty"`
	Revisor      *Usuario      `gorm:"foreignKey:RevisadaPor" json:"revisor,omitempty"`
}

func (SolicitudRenta) TableName() string {
	return "solicitudes_renta"
}
