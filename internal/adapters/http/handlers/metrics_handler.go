package handlers

import (
	"github.com/gofiber/fiber/v2"

	"quartermaster/internal/adapters/http/middleware"
	"quartermaster/internal/core/services"
	"quartermaster/internal/pkg/response"
)

// MetricsHandler handles dashboard metrics requests
type MetricsHandler struct {
	metricsService *services.MetricsService
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(metricsService *services.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

// Dashboard handles GET /api/dashboard/metrics
func (h *MetricsHandler) Dashboard(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	filter := services.MetricsFilter{
		BaseID:          queryUint(c, "base_id"),
		StartDate:       queryDate(c, "start_date"),
		EndDate:         queryDate(c, "end_date"),
		EquipmentTypeID: queryUint(c, "equipment_type_id"),
	}

	metrics, err := h.metricsService.Dashboard(c.Context(), actor, filter)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "", metrics)
}
