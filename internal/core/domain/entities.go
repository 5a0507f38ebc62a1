package domain

// Rol represents a user role in the system
type Rol string

const (
	RolAdmin     Rol = "ADMIN"
	RolStaff     Rol = "STAFF"
	RolResidente Rol = "RESIDENTE"
)

// Departamento occupancy states
const (
	DeptoDisponible   = "disponible"
	DeptoOcupado      = "ocupado"
	DeptoMantenimiento = "mantenimiento"
	DeptoNoDisponible = "no_disponible"
)

// EstadosDepartamento lists every valid occupancy state
var EstadosDepartamento = []string{DeptoDisponible, DeptoOcupado, DeptoMantenimiento, DeptoNoDisponible}

// Pago types
const (
	PagoRenta         = "renta"
	PagoMantenimiento = "mantenimiento"
	PagoServicio      = "servicio"
	PagoMulta         = "multa"
	PagoDeposito      = "deposito"
	PagoOtro          = "otro"
)

// TiposPago lists every valid payment type
var TiposPago = []string{PagoRenta, PagoMantenimiento, PagoServicio, PagoMulta, PagoDeposito, PagoOtro}

// Pago states
const (
	PagoPendiente = "pendiente"
	PagoPagado    = "pagado"
	PagoAtrasado  = "atrasado"
	PagoCancelado = "cancelado"
)

// SolicitudRenta states
const (
	SolicitudPendiente  = "pendiente"
	SolicitudEnRevision = "en_revision"
	SolicitudAprobada   = "aprobada"
	SolicitudRechazada  = "rechazada"
	SolicitudCompletada = "completada"
	SolicitudRetirada   = "retirada"
)

// Notificacion types
const (
	NotifPago    = "pago"
	NotifAnuncio = "anuncio"
	NotifSistema = "sistema"
	NotifChat    = "chat"
)

// TiposNotificacion lists every valid notification type
var TiposNotificacion = []string{NotifPago, NotifAnuncio, NotifSistema, NotifChat}

// Residente relationship types
const (
	RelacionPropietario = "propietario"
	RelacionInquilino   = "inquilino"
	RelacionFamiliar    = "familiar"
)

// TiposRelacion lists every valid resident relationship type
var TiposRelacion = []string{RelacionPropietario, RelacionInquilino, RelacionFamiliar}

// SolicitudMantenimiento states
const (
	MantenimientoAbierta   = "abierta"
	MantenimientoEnProceso = "en_proceso"
	MantenimientoResuelta  = "resuelta"
	MantenimientoCancelada = "cancelada"
)

// ReservaArea states
const (
	ReservaPendiente  = "pendiente"
	ReservaConfirmada = "confirmada"
	ReservaCancelada  = "cancelada"
)

// Incidente states and severities
const (
	IncidenteReportado  = "reportado"
	IncidenteEnAtencion = "en_atencion"
	IncidenteResuelto   = "resuelto"

	SeveridadBaja    = "baja"
	SeveridadMedia   = "media"
	SeveridadAlta    = "alta"
	SeveridadCritica = "critica"
)

// Severidades lists every valid incident severity
var Severidades = []string{SeveridadBaja, SeveridadMedia, SeveridadAlta, SeveridadCritica}

// NFT mint states for a consumed claim token
const (
	MintPendiente  = "pendiente"
	MintConfirmado = "confirmado"
	MintFallido    = "fallido"
)

// Contains reports whether value is one of the allowed values
func Contains(allowed []string, value string) bool {
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}
