package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"quartermaster/internal/adapters/http/middleware"
	"quartermaster/internal/adapters/http/routes"
	"quartermaster/internal/adapters/persistence/models"
	"quartermaster/internal/adapters/persistence/repositories"
	"quartermaster/internal/config"
	"quartermaster/internal/core/services"
	"quartermaster/internal/pkg/logger"
)

func main() {
	log := logger.Must(logger.New())
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := models.AutoMigrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	if err := config.SeedEquipmentTypes(db); err != nil {
		log.Fatal("failed to seed equipment catalog", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:      "Quartermaster API",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	middleware.Setup(app, cfg)
	routes.Setup(app, db, cfg, log)

	reminders := services.NewReminderService(
		repositories.NewTransferRepository(db),
		logger.Named(log, "reminders"),
	)
	reminders.Start()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		reminders.Stop()
		if err := app.Shutdown(); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	log.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("mode", cfg.AppMode),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server failed to start", zap.Error(err))
	}

	if err := config.CloseDatabase(db); err != nil {
		log.Error("failed to close database", zap.Error(err))
	}
	log.Info("server stopped")
}
