package handlers

import (
	"github.com/gofiber/fiber/v2"

	"quartermaster/internal/adapters/http/middleware"
	"quartermaster/internal/core/services"
	"quartermaster/internal/pkg/pagination"
	"quartermaster/internal/pkg/response"
)

// AdminHandler handles the admin console: user provisioning, platform
// stats, and the audit trail. Every route here sits behind AdminOnly.
type AdminHandler struct {
	userService    *services.UserService
	metricsService *services.MetricsService
	auditService   *services.AuditService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	userService *services.UserService,
	metricsService *services.MetricsService,
	auditService *services.AuditService,
) *AdminHandler {
	return &AdminHandler{
		userService:    userService,
		metricsService: metricsService,
		auditService:   auditService,
	}
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.List(c.Context())
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "", users)
}

// CreateUser handles POST /api/admin/users
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var input services.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.Create(c.Context(), &input)
	if err != nil {
		return handleDomainError(c, err)
	}

	actor := middleware.ActorFromCtx(c)
	h.auditService.Record(c.Context(), services.Entry{
		ActorID:    actor.UserID,
		Action:     services.AuditActionSignup,
		RecordKind: "user",
		RecordID:   user.ID,
		NewValues:  user.ToResponse(),
		IPAddress:  c.IP(),
		UserAgent:  c.Get("User-Agent"),
	})

	return response.Created(c, "User created successfully", user.ToResponse())
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.metricsService.Stats(c.Context())
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "", stats)
}

// ListAuditLogs handles GET /api/admin/audit-logs
func (h *AdminHandler) ListAuditLogs(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	logs, total, err := h.auditService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "", pagination.NewResponse(logs, params, total))
}
