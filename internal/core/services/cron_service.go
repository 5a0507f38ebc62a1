package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"edificio-hub/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// CronService owns the scheduled background jobs
type CronService struct {
	cron                *cron.Cron
	pagoService         *PagoService
	departamentoService *DepartamentoService
	nftService          *NftService
	areaService         *AreaService
	notificacionService *NotificacionService
}

// NewCronService creates a new cron service
func NewCronService(
	pagoService *PagoService,
	departamentoService *DepartamentoService,
	nftService *NftService,
	areaService *AreaService,
	notificacionService *NotificacionService,
) *CronService {
	return &CronService{
		cron:                cron.New(),
		pagoService:         pagoService,
		departamentoService: departamentoService,
		nftService:          nftService,
		areaService:         areaService,
		notificacionService: notificacionService,
	}
}

// Start registers and launches the scheduled jobs:
//   - hourly: mark overdue pagos atrasado
//   - 03:00 daily: occupancy resync
//   - 04:00 daily: expired claim token sweep
//   - 18:00 daily: reminders for tomorrow's confirmed reservas
func (s *CronService) Start() error {
	jobs := []struct {
		spec string
		name string
		run  func(ctx context.Context)
	}{
		{"0 * * * *", "pagos-atrasados", s.marcarPagosAtrasados},
		{"0 3 * * *", "sincronizar-departamentos", s.sincronizarDepartamentos},
		{"0 4 * * *", "limpiar-claim-tokens", s.limpiarClaimTokens},
		{"0 18 * * *", "recordatorios-reservas", s.recordatoriosReservas},
	}

	for _, job := range jobs {
		job := job
		if _, err := s.cron.AddFunc(job.spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			job.run(ctx)
		}); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", job.name, err)
		}
	}

	s.cron.Start()
	log.Printf("✅ Cron started with %d jobs", len(jobs))
	return nil
}

// Stop halts the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron stopped")
}

func (s *CronService) marcarPagosAtrasados(ctx context.Context) {
	if _, err := s.pagoService.MarcarAtrasados(ctx); err != nil {
		log.Printf("❌ Cron pagos-atrasados failed: %v", err)
	}
}

func (s *CronService) sincronizarDepartamentos(ctx context.Context) {
	if _, err := s.departamentoService.SincronizarEstados(ctx); err != nil {
		log.Printf("❌ Cron sincronizar-departamentos failed: %v", err)
	}
}

func (s *CronService) limpiarClaimTokens(ctx context.Context) {
	if _, err := s.nftService.LimpiarExpirados(ctx); err != nil {
		log.Printf("❌ Cron limpiar-claim-tokens failed: %v", err)
	}
}

func (s *CronService) recordatoriosReservas(ctx context.Context) {
	reservas, err := s.areaService.ReservasDeManana(ctx)
	if err != nil {
		log.Printf("❌ Cron recordatorios-reservas failed: %v", err)
		return
	}

	for _, reserva := range reservas {
		if reserva.Residente == nil || reserva.Area == nil {
			continue
		}
		mensaje := fmt.Sprintf(
			"Recuerda tu reserva de %s mañana de %s a %s.",
			reserva.Area.Nombre, reserva.HoraInicio, reserva.HoraFin,
		)
		s.notificacionService.Notificar(ctx, reserva.Residente.UsuarioID, domain.NotifSistema, "Recordatorio de reserva", mensaje)
	}

	if len(reservas) > 0 {
		log.Printf("✅ Sent %d reserva reminders", len(reservas))
	}
}
