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

	_ "github.com/jhoicas/Inventario-reconciler/docs"
	"github.com/jhoicas/Inventario-reconciler/internal/application/dto"
	appreconciliation "github.com/jhoicas/Inventario-reconciler/internal/application/reconciliation"
	infrapdf "github.com/jhoicas/Inventario-reconciler/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-reconciler/internal/infrastructure/report"
	"github.com/jhoicas/Inventario-reconciler/internal/infrastructure/snapshot"
	httpRouter "github.com/jhoicas/Inventario-reconciler/internal/interfaces/http"
	"github.com/jhoicas/Inventario-reconciler/pkg/config"
	"github.com/jhoicas/Inventario-reconciler/pkg/logger"
)

// @title                       Inventory Reconciler API
// @version                     1.0
// @description                 Reconciliación de snapshots de inventario y detección de problemas de calidad de datos.
// @BasePath                    /
// @schemes                     http
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("auth", cfg.JWT.Enabled()).
		Msg("iniciando aplicación")

	loader := snapshot.NewLoader(snapshot.Options{
		Encoding:  cfg.Input.Encoding,
		Delimiter: cfg.Input.DelimiterRune(),
		Sheet:     cfg.Input.Sheet,
	}, log)

	// Renderizadores disponibles para el campo format del formulario
	reconciliationUC := appreconciliation.NewUseCase(loader, log,
		report.NewJSONRenderer(),
		report.NewXMLRenderer(true),
		infrapdf.NewMarotoReportRenderer(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventory Reconciler API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReconciliationUC: reconciliationUC,
		Logger:           log,
		JWTSecret:        cfg.JWT.Secret,
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
