package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/pipeline"
	"github.com/jhoicas/crm-api/internal/application/reports"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/infrastructure/mail"
	"github.com/jhoicas/crm-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/crm-api/internal/interfaces/http"
	"github.com/jhoicas/crm-api/pkg/config"
	"github.com/jhoicas/crm-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	statusRepo := postgres.NewPipelineStatusRepository(pool)
	dealRepo := postgres.NewDealRepository(pool)
	historyRepo := postgres.NewDealHistoryRepository(pool)
	eventRepo := postgres.NewCalendarEventRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificaciones de cambio de etapa: solo si hay SMTP configurado.
	// Sin SMTP el pipeline funciona igual, simplemente no envía correos.
	var notifier pipeline.Notifier
	if cfg.SMTP.Enabled() {
		notifier = mail.NewNotifier(cfg.SMTP, log)
		log.Info().Str("host", cfg.SMTP.Host).Msg("notificaciones SMTP habilitadas")
	} else {
		log.Info().Msg("notificaciones SMTP deshabilitadas (SMTP_HOST vacío)")
	}

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	branchUC := usecase.NewBranchUseCase(branchRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	statusUC := usecase.NewPipelineStatusUseCase(statusRepo, dealRepo)
	pipelineUC := pipeline.NewUseCase(
		dealRepo, historyRepo, statusRepo, userRepo, clientRepo,
		txRunner, notifier, log,
	)
	calendarUC := usecase.NewCalendarUseCase(eventRepo)
	reportUC := reports.NewReportUseCase(reportRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CRM Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CompanyUC:  companyUC,
		BranchUC:   branchUC,
		UserUC:     userUC,
		ClientUC:   clientUC,
		StatusUC:   statusUC,
		PipelineUC: pipelineUC,
		CalendarUC: calendarUC,
		ReportUC:   reportUC,
		JWTSecret:  cfg.JWT.Secret,
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
