package main

import (
	"github.com/caseflow/caseflow/internal/config"
	"github.com/caseflow/caseflow/internal/handlers"
	"github.com/caseflow/caseflow/internal/models"
	"github.com/caseflow/caseflow/internal/services"
	"github.com/caseflow/caseflow/internal/utils"
	"github.com/caseflow/caseflow/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	digestService *services.DigestService
	taskQueue     services.TaskQueue
	importWorker  *services.ImportWorker
	authHandler   *handlers.AuthHandler
	importHandler *handlers.ImportHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	if err := models.SeedDefaultData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	services.InitSystemLogger(models.GetDB())

	// Stale-test digest scheduler
	digestService := services.NewDigestService(models.GetDB(), cfg.Digest, nil)
	digestService.StartScheduler()

	// Import queue (uses Redis if enabled, otherwise sync mode)
	importService := services.NewJUnitImportService(models.GetDB())
	taskQueue := services.InitTaskQueue(cfg)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(services.ProcessImportTask(importService))
	}

	var importWorker *services.ImportWorker
	if cfg.Redis.Enabled {
		importWorker = services.NewImportWorker(&cfg.Redis, importService)
		if importWorker != nil {
			importWorker.Start()
		}
	}

	authHandler := handlers.NewAuthHandler(models.GetDB(), cfg)
	if err := authHandler.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		digestService: digestService,
		taskQueue:     taskQueue,
		importWorker:  importWorker,
		authHandler:   authHandler,
		importHandler: handlers.NewImportHandler(models.GetDB(), taskQueue),
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.digestService.StopScheduler()

	if s.importWorker != nil {
		s.importWorker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
	logger.Info().Msg("All services stopped")
}
