package routes

import (
	"log"

	"edificio-hub/internal/adapters/external/brevo"
	"edificio-hub/internal/adapters/external/chain"
	"edificio-hub/internal/adapters/external/pinata"
	"edificio-hub/internal/adapters/external/stripe"
	"edificio-hub/internal/adapters/http/handlers"
	"edificio-hub/internal/adapters/http/middleware"
	"edificio-hub/internal/adapters/persistence/repositories"
	"edificio-hub/internal/config"
	"edificio-hub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers, and registers every route.
// It returns the cron service so main can run the scheduled jobs alongside
// the HTTP server.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.CronService {
	// Repositories
	usuarioRepo := repositories.NewUsuarioRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	residenteRepo := repositories.NewResidenteRepository(db)
	departamentoRepo := repositories.NewDepartamentoRepository(db)
	pagoRepo := repositories.NewPagoRepository(db)
	solicitudRepo := repositories.NewSolicitudRentaRepository(db)
	notificacionRepo := repositories.NewNotificacionRepository(db)
	personalRepo := repositories.NewPersonalRepository(db)
	mantenimientoRepo := repositories.NewMantenimientoRepository(db)
	areaRepo := repositories.NewAreaRepository(db)
	consumoRepo := repositories.NewConsumoRepository(db)
	seguridadRepo := repositories.NewSeguridadRepository(db)
	nftRepo := repositories.NewNftRepository(db)

	// External integrations. Each one degrades to a disabled service when
	// its credentials are absent.
	var stripeGateway services.StripeGateway
	if cfg.StripeEnabled() {
		stripeGateway = stripe.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
		log.Println("✅ Stripe gateway enabled")
	} else {
		log.Println("⚠️ Stripe disabled: missing STRIPE_SECRET_KEY")
	}

	var emailSender services.EmailSender
	if cfg.Email.BrevoAPIKey != "" {
		emailSender = brevo.NewClient(cfg.Email.BrevoAPIKey, cfg.Email.Remitente)
		log.Println("✅ Brevo email sender enabled")
	} else {
		log.Println("⚠️ Email disabled: missing BREVO_API_KEY")
	}

	var pinner services.Pinner
	var minter services.Minter
	if cfg.ChainEnabled() && cfg.Pinata.JWT != "" {
		m, err := chain.NewMinter(cfg.Chain.RPCURL, cfg.Chain.ContractAddress, cfg.Chain.DeployerKey)
		if err != nil {
			log.Printf("⚠️ NFT disabled: %v", err)
		} else {
			minter = m
			pinner = pinata.NewClient(cfg.Pinata.JWT, cfg.Pinata.Gateway)
			log.Println("✅ NFT certificate minting enabled")
		}
	} else {
		log.Println("⚠️ NFT disabled: missing chain or Pinata credentials")
	}

	// Services
	authService := services.NewAuthService(usuarioRepo, refreshTokenRepo, cfg)
	usuarioService := services.NewUsuarioService(usuarioRepo)
	departamentoService := services.NewDepartamentoService(departamentoRepo, residenteRepo, db)
	residenteService := services.NewResidenteService(residenteRepo, usuarioRepo, departamentoService, db)
	pagoService := services.NewPagoService(pagoRepo, residenteRepo)
	stripeService := services.NewStripeService(stripeGateway, pagoRepo)
	solicitudService := services.NewSolicitudService(solicitudRepo, departamentoRepo, usuarioRepo, residenteRepo, departamentoService)
	notificacionService := services.NewNotificacionService(notificacionRepo, usuarioRepo, emailSender)
	nftService := services.NewNftService(nftRepo, residenteRepo, pinner, minter, chain.ValidarWallet, cfg)
	personalService := services.NewPersonalService(personalRepo)
	mantenimientoService := services.NewMantenimientoService(mantenimientoRepo, personalRepo, residenteRepo)
	areaService := services.NewAreaService(areaRepo, residenteRepo)
	consumoService := services.NewConsumoService(consumoRepo, departamentoRepo)
	seguridadService := services.NewSeguridadService(seguridadRepo, personalRepo)
	dashboardService := services.NewDashboardService(residenteRepo, departamentoRepo, pagoRepo, solicitudRepo, mantenimientoRepo, seguridadRepo)
	cronService := services.NewCronService(pagoService, departamentoService, nftService, areaService, notificacionService)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	usuarioHandler := handlers.NewUsuarioHandler(usuarioService)
	residenteHandler := handlers.NewResidenteHandler(residenteService)
	departamentoHandler := handlers.NewDepartamentoHandler(departamentoService)
	pagoHandler := handlers.NewPagoHandler(pagoService)
	stripeHandler := handlers.NewStripeHandler(stripeService)
	solicitudHandler := handlers.NewSolicitudHandler(solicitudService)
	notificacionHandler := handlers.NewNotificacionHandler(notificacionService)
	nftHandler := handlers.NewNftHandler(nftService)
	personalHandler := handlers.NewPersonalHandler(personalService)
	mantenimientoHandler := handlers.NewMantenimientoHandler(mantenimientoService)
	areaHandler := handlers.NewAreaHandler(areaService)
	consumoHandler := handlers.NewConsumoHandler(consumoService)
	seguridadHandler := handlers.NewSeguridadHandler(seguridadService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	reporteHandler := handlers.NewReporteHandler(pagoService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public, rate limited)
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/refresh", middleware.AuthRateLimiter(), authHandler.RefreshToken)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)
	authRoutes.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)

	// Usuario management (admin only, except own password change)
	usuarioRoutes := apiV1.Group("/usuarios")
	usuarioRoutes.Use(middleware.AuthMiddleware(cfg))
	usuarioRoutes.Put("/me/password", usuarioHandler.ChangePassword)
	usuarioRoutes.Post("/", middleware.AdminOnly(), usuarioHandler.Create)
	usuarioRoutes.Get("/", middleware.AdminOnly(), usuarioHandler.List)
	usuarioRoutes.Get("/:id", middleware.AdminOnly(), usuarioHandler.GetByID)
	usuarioRoutes.Put("/:id", middleware.AdminOnly(), usuarioHandler.Update)
	usuarioRoutes.Delete("/:id", middleware.AdminOnly(), usuarioHandler.Delete)

	// Residentes (staff/admin manage, residentes read their own profile)
	residenteRoutes := apiV1.Group("/residentes")
	residenteRoutes.Use(middleware.AuthMiddleware(cfg))
	residenteRoutes.Get("/me", residenteHandler.Me)
	residenteRoutes.Post("/", middleware.StaffOrAdmin(), residenteHandler.Create)
	residenteRoutes.Get("/", middleware.StaffOrAdmin(), residenteHandler.List)
	residenteRoutes.Get("/:id", middleware.StaffOrAdmin(), residenteHandler.GetByID)
	residenteRoutes.Put("/:id", middleware.StaffOrAdmin(), residenteHandler.Update)
	residenteRoutes.Delete("/:id", middleware.StaffOrAdmin(), residenteHandler.Desactivar)
	residenteRoutes.Get("/:id/reservas", middleware.StaffOrAdmin(), areaHandler.ListReservasByResidente)
	residenteRoutes.Post("/:id/nft-token", middleware.AdminOnly(), nftHandler.GenerarToken)
	residenteRoutes.Get("/:id/nft-tokens", middleware.AdminOnly(), nftHandler.ListByResidente)

	// Departamentos
	departamentoRoutes := apiV1.Group("/departamentos")
	departamentoRoutes.Use(middleware.AuthMiddleware(cfg))
	departamentoRoutes.Post("/", middleware.AdminOnly(), departamentoHandler.Create)
	departamentoRoutes.Get("/", departamentoHandler.List)
	departamentoRoutes.Post("/sincronizar", middleware.AdminOnly(), departamentoHandler.Sincronizar)
	departamentoRoutes.Get("/:id", departamentoHandler.GetByID)
	departamentoRoutes.Put("/:id", middleware.AdminOnly(), departamentoHandler.Update)
	departamentoRoutes.Delete("/:id", middleware.AdminOnly(), departamentoHandler.Delete)
	departamentoRoutes.Post("/:id/asignar", middleware.StaffOrAdmin(), departamentoHandler.Asignar)
	departamentoRoutes.Post("/:id/liberar", middleware.StaffOrAdmin(), departamentoHandler.Liberar)
	departamentoRoutes.Get("/:id/consumo", middleware.StaffOrAdmin(), consumoHandler.ListByDepartamento)
	departamentoRoutes.Get("/:id/consumo/resumen", middleware.StaffOrAdmin(), consumoHandler.ResumenMensual)

	// Pagos
	pagoRoutes := apiV1.Group("/pagos")
	pagoRoutes.Use(middleware.AuthMiddleware(cfg))
	pagoRoutes.Post("/", middleware.StaffOrAdmin(), pagoHandler.Crear)
	pagoRoutes.Get("/", middleware.StaffOrAdmin(), pagoHandler.List)
	pagoRoutes.Get("/resumen", middleware.StaffOrAdmin(), pagoHandler.Resumen)
	pagoRoutes.Get("/:id", pagoHandler.GetByID)
	pagoRoutes.Post("/:id/registrar", middleware.StaffOrAdmin(), pagoHandler.Registrar)
	pagoRoutes.Post("/:id/cancelar", middleware.StaffOrAdmin(), pagoHandler.Cancelar)
	pagoRoutes.Post("/:id/intento", stripeHandler.CrearIntento)

	// Stripe webhook (public, signature-verified)
	apiV1.Post("/webhooks/stripe", stripeHandler.Webhook)

	// Solicitudes de renta (creation is public)
	solicitudRoutes := apiV1.Group("/solicitudes")
	solicitudRoutes.Post("/", middleware.AuthRateLimiter(), solicitudHandler.Crear)
	solicitudRoutes.Use(middleware.AuthMiddleware(cfg), middleware.StaffOrAdmin())
	solicitudRoutes.Get("/", solicitudHandler.List)
	solicitudRoutes.Get("/:id", solicitudHandler.GetByID)
	solicitudRoutes.Post("/:id/revisar", solicitudHandler.Revisar)
	solicitudRoutes.Post("/:id/completar", solicitudHandler.Completar)
	solicitudRoutes.Post("/:id/retirar", solicitudHandler.Retirar)

	// Notificaciones
	notificacionRoutes := apiV1.Group("/notificaciones")
	notificacionRoutes.Use(middleware.AuthMiddleware(cfg))
	notificacionRoutes.Get("/", notificacionHandler.List)
	notificacionRoutes.Get("/no-leidas", notificacionHandler.CountNoLeidas)
	notificacionRoutes.Post("/leer-todas", notificacionHandler.MarcarTodasLeidas)
	notificacionRoutes.Post("/", middleware.StaffOrAdmin(), notificacionHandler.Crear)
	notificacionRoutes.Post("/anuncio", middleware.AdminOnly(), notificacionHandler.PublicarAnuncio)
	notificacionRoutes.Post("/:id/leer", notificacionHandler.MarcarLeida)
	notificacionRoutes.Delete("/:id", notificacionHandler.Eliminar)

	// NFT claim (public, rate limited)
	nftRoutes := apiV1.Group("/nft")
	nftRoutes.Get("/claim/:token", middleware.ClaimRateLimiter(), nftHandler.ValidarToken)
	nftRoutes.Post("/claim/:token", middleware.ClaimRateLimiter(), nftHandler.Claim)

	// Personal del edificio
	personalRoutes := apiV1.Group("/personal")
	personalRoutes.Use(middleware.AuthMiddleware(cfg), middleware.StaffOrAdmin())
	personalRoutes.Post("/", middleware.AdminOnly(), personalHandler.Crear)
	personalRoutes.Get("/", personalHandler.List)
	personalRoutes.Get("/:id", personalHandler.GetByID)
	personalRoutes.Put("/:id", middleware.AdminOnly(), personalHandler.Update)
	personalRoutes.Delete("/:id", middleware.AdminOnly(), personalHandler.Delete)

	// Mantenimiento
	mantenimientoRoutes := apiV1.Group("/mantenimiento")
	mantenimientoRoutes.Use(middleware.AuthMiddleware(cfg))
	mantenimientoRoutes.Post("/", mantenimientoHandler.Crear)
	mantenimientoRoutes.Get("/", middleware.StaffOrAdmin(), mantenimientoHandler.List)
	mantenimientoRoutes.Get("/:id", mantenimientoHandler.GetByID)
	mantenimientoRoutes.Post("/:id/asignar", middleware.StaffOrAdmin(), mantenimientoHandler.Asignar)
	mantenimientoRoutes.Put("/:id/estado", middleware.StaffOrAdmin(), mantenimientoHandler.CambiarEstado)

	// Áreas comunes y reservas
	areaRoutes := apiV1.Group("/areas")
	areaRoutes.Use(middleware.AuthMiddleware(cfg))
	areaRoutes.Post("/", middleware.AdminOnly(), areaHandler.CrearArea)
	areaRoutes.Get("/", areaHandler.ListAreas)
	areaRoutes.Get("/:id", areaHandler.GetArea)
	areaRoutes.Put("/:id", middleware.AdminOnly(), areaHandler.UpdateArea)

	reservaRoutes := apiV1.Group("/reservas")
	reservaRoutes.Use(middleware.AuthMiddleware(cfg))
	reservaRoutes.Post("/", areaHandler.CrearReserva)
	reservaRoutes.Get("/:id", areaHandler.GetReserva)
	reservaRoutes.Post("/:id/confirmar", middleware.StaffOrAdmin(), areaHandler.Confirmar)
	reservaRoutes.Post("/:id/cancelar", areaHandler.Cancelar)

	// Métricas de consumo
	consumoRoutes := apiV1.Group("/consumo")
	consumoRoutes.Use(middleware.AuthMiddleware(cfg), middleware.StaffOrAdmin())
	consumoRoutes.Post("/", consumoHandler.Registrar)

	// Seguridad: dispositivos, sensores e incidentes
	seguridadRoutes := apiV1.Group("/seguridad")
	seguridadRoutes.Post("/sensores/:id/lectura", seguridadHandler.RegistrarLectura)
	seguridadRoutes.Use(middleware.AuthMiddleware(cfg))
	seguridadRoutes.Post("/dispositivos", middleware.StaffOrAdmin(), seguridadHandler.CrearDispositivo)
	seguridadRoutes.Get("/dispositivos", middleware.StaffOrAdmin(), seguridadHandler.ListDispositivos)
	seguridadRoutes.Put("/dispositivos/:id", middleware.StaffOrAdmin(), seguridadHandler.UpdateDispositivo)
	seguridadRoutes.Post("/sensores", middleware.StaffOrAdmin(), seguridadHandler.CrearSensor)
	seguridadRoutes.Get("/sensores", middleware.StaffOrAdmin(), seguridadHandler.ListSensores)
	seguridadRoutes.Post("/incidentes", seguridadHandler.Reportar)
	seguridadRoutes.Get("/incidentes", middleware.StaffOrAdmin(), seguridadHandler.ListIncidentes)
	seguridadRoutes.Get("/incidentes/:id", middleware.StaffOrAdmin(), seguridadHandler.GetIncidente)
	seguridadRoutes.Post("/incidentes/:id/atender", middleware.StaffOrAdmin(), seguridadHandler.Atender)
	seguridadRoutes.Post("/incidentes/:id/resolver", middleware.StaffOrAdmin(), seguridadHandler.Resolver)

	// Dashboard y reportes (staff/admin)
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg), middleware.StaffOrAdmin())
	dashboardRoutes.Get("/", dashboardHandler.GetStats)

	reporteRoutes := apiV1.Group("/reportes")
	reporteRoutes.Use(middleware.AuthMiddleware(cfg), middleware.StaffOrAdmin())
	reporteRoutes.Get("/pagos/export", reporteHandler.ExportPagos)

	return cronService
}
