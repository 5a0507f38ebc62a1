package services

import (
	"context"
	"log"
	"time"

	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/core/domain"
)

// DashboardService aggregates building-wide statistics
type DashboardService struct {
	residenteRepo     *repositories.ResidenteRepository
	departamentoRepo  *repositories.DepartamentoRepository
	pagoRepo          *repositories.PagoRepository
	solicitudRepo     *repositories.SolicitudRentaRepository
	mantenimientoRepo *repositories.MantenimientoRepository
	seguridadRepo     *repositories.SeguridadRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	residenteRepo *repositories.ResidenteRepository,
	departamentoRepo *repositories.DepartamentoRepository,
	pagoRepo *repositories.PagoRepository,
	solicitudRepo *repositories.SolicitudRentaRepository,
	mantenimientoRepo *repositories.MantenimientoRepository,
	seguridadRepo *repositories.SeguridadRepository,
) *DashboardService {
	return &DashboardService{
		residenteRepo:     residenteRepo,
		departamentoRepo:  departamentoRepo,
		pagoRepo:          pagoRepo,
		solicitudRepo:     solicitudRepo,
		mantenimientoRepo: mantenimientoRepo,
		seguridadRepo:     seguridadRepo,
	}
}

// DashboardStats is the aggregated dashboard payload
type DashboardStats struct {
	ResidentesActivos     int64            `json:"residentes_activos"`
	Departamentos         map[string]int64 `json:"departamentos"`
	PagosPendientes       int64            `json:"pagos_pendientes"`
	PagosAtrasados        int64            `json:"pagos_atrasados"`
	IngresosDelMes        float64          `json:"ingresos_del_mes"`
	SolicitudesAbiertas   int64            `json:"solicitudes_abiertas"`
	MantenimientoAbierto  int64            `json:"mantenimiento_abierto"`
	IncidentesAbiertos    int64            `json:"incidentes_abiertos"`
}

// GetStats builds the dashboard. Individual failures degrade to zeroed
// counters instead of failing the whole panel.
func (s *DashboardService) GetStats(ctx context.Context) *DashboardStats {
	stats := &DashboardStats{
		Departamentos: make(map[string]int64, len(domain.EstadosDepartamento)),
	}

	activo := true
	if _, total, err := s.residenteRepo.List(ctx, &repositories.ResidenteFilter{Activo: &activo}, 0, 1); err == nil {
		stats.ResidentesActivos = total
	} else {
		log.Printf("⚠️ Dashboard: residentes count failed: %v", err)
	}

	for _, estado := range domain.EstadosDepartamento {
		count, err := s.departamentoRepo.CountByEstado(ctx, estado)
		if err != nil {
			log.Printf("⚠️ Dashboard: departamento count (%s) failed: %v", estado, err)
			count = 0
		}
		stats.Departamentos[estado] = count
	}

	if count, err := s.pagoRepo.CountByEstado(ctx, domain.PagoPendiente); err == nil {
		stats.PagosPendientes = count
	} else {
		log.Printf("⚠️ Dashboard: pagos pendientes failed: %v", err)
	}
	if count, err := s.pagoRepo.CountByEstado(ctx, domain.PagoAtrasado); err == nil {
		stats.PagosAtrasados = count
	} else {
		log.Printf("⚠️ Dashboard: pagos atrasados failed: %v", err)
	}

	inicioMes := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.Local)
	if total, err := s.pagoRepo.SumMontoByEstado(ctx, domain.PagoPagado, inicioMes); err == nil {
		stats.IngresosDelMes = total
	} else {
		log.Printf("⚠️ Dashboard: ingresos del mes failed: %v", err)
	}

	for _, estado := range []string{domain.SolicitudPendiente, domain.SolicitudEnRevision} {
		if count, err := s.solicitudRepo.CountByEstado(ctx, estado); err == nil {
			stats.SolicitudesAbiertas += count
		} else {
			log.Printf("⚠️ Dashboard: solicitudes (%s) failed: %v", estado, err)
		}
	}

	for _, estado := range []string{domain.MantenimientoAbierta, domain.MantenimientoEnProceso} {
		if count, err := s.mantenimientoRepo.CountByEstado(ctx, estado); err == nil {
			stats.MantenimientoAbierto += count
		} else {
			log.Printf("⚠️ Dashboard: mantenimiento (%s) failed: %v", estado, err)
		}
	}

	for _, estado := range []string{domain.IncidenteReportado, domain.IncidenteEnAtencion} {
		if count, err := s.seguridadRepo.CountIncidentesByEstado(ctx, estado); err == nil {
			stats.IncidentesAbiertos += count
		} else {
			log.Printf("⚠️ Dashboard: incidentes (%s) failed: %v", estado, err)
		}
	}

	return stats
}
