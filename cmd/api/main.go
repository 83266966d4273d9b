package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/daemlu/convivencia-api/internal/application/analytics"
	"github.com/daemlu/convivencia-api/internal/application/auth"
	"github.com/daemlu/convivencia-api/internal/application/usecase"
	"github.com/daemlu/convivencia-api/internal/infrastructure/metrics"
	infrapdf "github.com/daemlu/convivencia-api/internal/infrastructure/pdf"
	"github.com/daemlu/convivencia-api/internal/infrastructure/postgres"
	httpRouter "github.com/daemlu/convivencia-api/internal/interfaces/http"
	"github.com/daemlu/convivencia-api/pkg/config"
	"github.com/daemlu/convivencia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	establecimientoRepo := postgres.NewEstablecimientoRepository(pool)
	protocoloRepo := postgres.NewProtocoloRepository(pool)
	activacionRepo := postgres.NewActivacionRepository(pool)
	decRepo := postgres.NewDECRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Siembra del primer administrador con las credenciales elevadas de arranque
	if cfg.Bootstrap.AdminEmail != "" {
		if err := authUC.EnsureAdmin(cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword, cfg.Bootstrap.AdminName); err != nil {
			log.Fatal().Err(err).Msg("siembra del administrador inicial")
		}
		log.Info().Str("email", cfg.Bootstrap.AdminEmail).Msg("administrador inicial verificado")
	}

	establecimientoUC := usecase.NewEstablecimientoUseCase(establecimientoRepo)
	protocoloUC := usecase.NewProtocoloUseCase(protocoloRepo)
	activacionUC := usecase.NewActivacionUseCase(activacionRepo)
	decUC := usecase.NewDECUseCase(decRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	dashboardUC := analytics.NewDashboardUseCase(decRepo, activacionRepo)

	// PDF: documento imprimible del DEC
	pdfGenerator := infrapdf.NewDECPDFGenerator()
	pdfUC := usecase.NewPDFUseCase(decRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	mets := metrics.New(cfg.App.Name)
	app.Use(mets.Middleware())
	app.Get("/metrics", mets.Handler())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Convivencia Escolar API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:            authUC,
		EstablecimientoUC: establecimientoUC,
		ProtocoloUC:       protocoloUC,
		ActivacionUC:      activacionUC,
		DECUC:             decUC,
		PDFUC:             pdfUC,
		UserUC:            userUC,
		DashboardUC:       dashboardUC,
		JWTSecret:         cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
