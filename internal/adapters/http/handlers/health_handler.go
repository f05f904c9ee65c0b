package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quartermaster/internal/config"
	"quartermaster/internal/pkg/response"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check returns service liveness plus storage reachability
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "up"
	if err := config.HealthCheck(h.db); err != nil {
		dbStatus = "down"
	}

	return response.Success(c, "OK", fiber.Map{
		"status":   "healthy",
		"database": dbStatus,
	})
}
