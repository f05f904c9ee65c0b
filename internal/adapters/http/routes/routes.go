package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"quartermaster/internal/adapters/http/handlers"
	"quartermaster/internal/adapters/http/middleware"
	"quartermaster/internal/adapters/persistence/repositories"
	"quartermaster/internal/config"
	"quartermaster/internal/core/services"
)

// Setup wires repositories, services, and handlers onto the app
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	baseRepo := repositories.NewBaseRepository(db)
	equipmentRepo := repositories.NewEquipmentTypeRepository(db)
	assetRepo := repositories.NewAssetRepository(db)
	purchaseRepo := repositories.NewPurchaseRepository(db)
	transferRepo := repositories.NewTransferRepository(db)
	assignmentRepo := repositories.NewAssignmentRepository(db)
	expenditureRepo := repositories.NewExpenditureRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)

	// Services
	userService := services.NewUserService(userRepo, baseRepo)
	authService := services.NewAuthService(userRepo, userService, cfg)
	baseService := services.NewBaseService(baseRepo, userRepo)
	catalogService := services.NewCatalogService(equipmentRepo, assetRepo, baseRepo)
	ledgerService := services.NewLedgerService(purchaseRepo, expenditureRepo, baseRepo, equipmentRepo)
	transferService := services.NewTransferService(transferRepo, baseRepo, equipmentRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, assetRepo)
	auditService := services.NewAuditService(auditRepo, log)
	metricsService := services.NewMetricsService(db, userRepo, baseRepo, assetRepo, transferRepo, assignmentRepo, auditRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService, auditService, cfg)
	baseHandler := handlers.NewBaseHandler(baseService, auditService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, auditService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService, auditService)
	transferHandler := handlers.NewTransferHandler(transferService, auditService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService, auditService)
	metricsHandler := handlers.NewMetricsHandler(metricsService)
	adminHandler := handlers.NewAdminHandler(userService, metricsService, auditService)

	app.Get("/health", healthHandler.Check)

	api := app.Group("/api")

	// Public auth routes with a stricter rate limit
	auth := api.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/signup", middleware.AuthRateLimiter(), authHandler.Signup)
	auth.Post("/logout", authHandler.Logout)

	// Everything below requires a verified session
	api.Use(middleware.Auth(cfg))

	auth.Get("/me", authHandler.Me)

	api.Get("/bases", baseHandler.List)
	api.Post("/bases", middleware.AdminOnly(), baseHandler.Create)

	api.Get("/equipment-types", catalogHandler.ListEquipmentTypes)
	api.Post("/equipment-types", middleware.AdminOnly(), catalogHandler.CreateEquipmentType)

	api.Get("/assets", catalogHandler.ListAssets)
	api.Post("/assets", catalogHandler.CreateAsset)
	api.Get("/assets/:id", catalogHandler.GetAsset)

	api.Get("/purchases", ledgerHandler.ListPurchases)
	api.Post("/purchases", ledgerHandler.CreatePurchase)

	api.Get("/transfers", transferHandler.List)
	api.Post("/transfers", transferHandler.Create)
	api.Patch("/transfers/:id/status", transferHandler.UpdateStatus)

	api.Get("/expenditures", ledgerHandler.ListExpenditures)
	api.Post("/expenditures", ledgerHandler.CreateExpenditure)

	api.Get("/assignments", assignmentHandler.List)
	api.Post("/assignments", assignmentHandler.Create)
	api.Patch("/assignments/:id/status", assignmentHandler.UpdateStatus)

	api.Get("/dashboard/metrics", metricsHandler.Dashboard)

	admin := api.Group("/admin", middleware.AdminOnly())
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Get("/bases", baseHandler.List)
	admin.Post("/bases", baseHandler.Create)
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/audit-logs", adminHandler.ListAuditLogs)
}
