package handlers

import (
	"github.com/gofiber/fiber/v2"

	"quartermaster/internal/adapters/http/middleware"
	"quartermaster/internal/core/services"
	"quartermaster/internal/pkg/response"
)

// BaseHandler handles base requests
type BaseHandler struct {
	baseService  *services.BaseService
	auditService *services.AuditService
}

// NewBaseHandler creates a new base handler
func NewBaseHandler(baseService *services.BaseService, auditService *services.AuditService) *BaseHandler {
	return &BaseHandler{
		baseService:  baseService,
		auditService: auditService,
	}
}

// List handles GET /api/bases
func (h *BaseHandler) List(c *fiber.Ctx) error {
	bases, err := h.baseService.List(c.Context())
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "", bases)
}

// Create handles POST /api/bases (admin only, enforced at the route)
func (h *BaseHandler) Create(c *fiber.Ctx) error {
	var input services.CreateBaseInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	base, err := h.baseService.Create(c.Context(), &input)
	if err != nil {
		return handleDomainError(c, err)
	}

	actor := middleware.ActorFromCtx(c)
	h.auditService.Record(c.Context(), services.Entry{
		ActorID:    actor.UserID,
		Action:     services.AuditActionBaseCreated,
		RecordKind: "base",
		RecordID:   base.ID,
		NewValues:  base,
		IPAddress:  c.IP(),
		UserAgent:  c.Get("User-Agent"),
	})

	return response.Created(c, "Base created successfully", base)
}
