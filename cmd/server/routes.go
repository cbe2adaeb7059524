package main

import (
	"github.com/caseflow/caseflow/internal/handlers"
	"github.com/caseflow/caseflow/internal/middleware"
	"github.com/caseflow/caseflow/internal/models"
	"github.com/caseflow/caseflow/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for import routes
	importLimiter := middleware.NewRateLimiter(10, 20)

	// Health check
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", svc.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.Audit())
		{
			protected.GET("/auth/me", svc.authHandler.Me)

			// Projects
			projectHandler := handlers.NewProjectHandler(models.GetDB())
			protected.GET("/projects", projectHandler.List)
			protected.GET("/projects/:id", projectHandler.GetByID)
			protected.POST("/projects", projectHandler.Create)

			// Reports
			reportHandler := handlers.NewReportHandler(models.GetDB())
			protected.POST("/reports/health", reportHandler.Health)
			protected.POST("/reports/flaky", reportHandler.Flaky)
			protected.POST("/reports/coverage", reportHandler.Coverage)
			protected.POST("/reports/trends", reportHandler.Trends)

			// Milestones
			milestoneHandler := handlers.NewMilestoneHandler(models.GetDB())
			protected.GET("/milestones/:id/progress", milestoneHandler.Progress)

			// Imports (rate limited: CI systems can be chatty)
			protected.POST("/imports/junit", importLimiter.Middleware(), svc.importHandler.JUnit)
		}

		// Admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			systemLogHandler := handlers.NewSystemLogHandler(models.GetDB())
			admin.GET("/system-logs", systemLogHandler.List)
			admin.POST("/system-logs/cleanup", systemLogHandler.Cleanup)
		}
	}
}
