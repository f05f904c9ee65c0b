package handlers

import (
	"github.com/gofiber/fiber/v2"

	"quartermaster/internal/adapters/http/middleware"
	"quartermaster/internal/core/domain"
	"quartermaster/internal/core/services"
	"quartermaster/internal/pkg/response"
)

// AssignmentHandler handles assignment requests
type AssignmentHandler struct {
	assignmentService *services.AssignmentService
	auditService      *services.AuditService
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignmentService *services.AssignmentService, auditService *services.AuditService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		auditService:      auditService,
	}
}

// List handles GET /api/assignments
func (h *AssignmentHandler) List(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	assignments, err := h.assignmentService.List(c.Context(), actor, queryUint(c, "base_id"))
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "", assignments)
}

// Create handles POST /api/assignments
func (h *AssignmentHandler) Create(c *fiber.Ctx) error {
	var input services.CreateAssignmentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := middleware.ActorFromCtx(c)
	assignment, err := h.assignmentService.Create(c.Context(), actor, &input)
	if err != nil {
		return handleDomainError(c, err)
	}

	h.auditService.Record(c.Context(), services.Entry{
		ActorID:    actor.UserID,
		Action:     services.AuditActionCreate,
		RecordKind: "assignment",
		RecordID:   assignment.ID,
		NewValues:  assignment,
		IPAddress:  c.IP(),
		UserAgent:  c.Get("User-Agent"),
	})

	return response.Created(c, "Assignment created successfully", assignment)
}

// UpdateStatus handles PATCH /api/assignments/:id/status
func (h *AssignmentHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid assignment ID")
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	next, err := domain.ParseAssignmentStatus(body.Status)
	if err != nil {
		return handleDomainError(c, err)
	}

	actor := middleware.ActorFromCtx(c)
	before, after, err := h.assignmentService.UpdateStatus(c.Context(), actor, id, next)
	if err != nil {
		return handleDomainError(c, err)
	}

	h.auditService.Record(c.Context(), services.Entry{
		ActorID:    actor.UserID,
		Action:     services.AuditActionStatusChange,
		RecordKind: "assignment",
		RecordID:   after.ID,
		OldValues:  before,
		NewValues:  after,
		IPAddress:  c.IP(),
		UserAgent:  c.Get("User-Agent"),
	})

	return response.Success(c, "Assignment status updated", after)
}
