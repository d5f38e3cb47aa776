package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gaigek/mrp-system/internal/application/ingest"
	"github.com/gaigek/mrp-system/internal/application/usecase"
	"github.com/gaigek/mrp-system/internal/application/worklist"
	"github.com/gaigek/mrp-system/internal/domain/planning"
	"github.com/gaigek/mrp-system/internal/infrastructure/memory"
	httpRouter "github.com/gaigek/mrp-system/internal/interfaces/http"
	"github.com/gaigek/mrp-system/pkg/config"
	"github.com/gaigek/mrp-system/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

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
		Msg("iniciando aplicación")

	itemRepo := memory.NewItemRepository()
	worklistRepo := memory.NewWorklistRepository()

	groupBy := planning.ParseGroupBy(cfg.Planning.GroupBy)
	defaults := usecase.PlanningDefaults{
		GroupBy:             groupBy,
		LeadTimeWeeks:       cfg.Planning.LeadTimeWeeks,
		UpcomingHorizonDays: cfg.Planning.UpcomingHorizonDays,
	}

	ingestUC := ingest.NewUseCase(itemRepo, log, groupBy)
	itemUC := usecase.NewItemUseCase(itemRepo)
	recommendUC := usecase.NewRecommendUseCase(itemRepo, defaults)
	worklistUC := worklist.NewUseCase(itemRepo, worklistRepo, log, groupBy)
	dashboardUC := usecase.NewDashboardUseCase(itemRepo, worklistRepo)

	// Snapshot inicial opcional desde disco (SNAPSHOT_FILE)
	if path := cfg.Planning.SnapshotFile; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatal().Err(err).Str("archivo", path).Msg("leer snapshot inicial")
		}
		if _, err := ingestUC.Ingest(string(data)); err != nil {
			log.Fatal().Err(err).Str("archivo", path).Msg("ingesta del snapshot inicial")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    64 * 1024 * 1024, // snapshots MRP grandes
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		IngestUC:    ingestUC,
		ItemUC:      itemUC,
		RecommendUC: recommendUC,
		WorklistUC:  worklistUC,
		DashboardUC: dashboardUC,
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
