package handlers

import (
	"github.com/gofiber/fiber/v2"

	"quartermaster/internal/adapters/http/middleware"
	"quartermaster/internal/core/domain"
	"quartermaster/internal/core/services"
	"quartermaster/internal/pkg/response"
)

// TransferHandler handles transfer requests
type TransferHandler struct {
	transferService *services.TransferService
	auditService    *services.AuditService
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transferService *services.TransferService, auditService *services.AuditService) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
		auditService:    auditService,
	}
}

// List handles GET /api/transfers
func (h *TransferHandler) List(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	var status *domain.TransferStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := domain.ParseTransferStatus(raw)
		if err != nil {
			return handleDomainError(c, err)
		}
		status = &parsed
	}

	transfers, err := h.transferService.List(c.Context(), actor, queryUint(c, "base_id"), status)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "", transfers)
}

// Create handles POST /api/transfers
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var input services.CreateTransferInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := middleware.ActorFromCtx(c)
	transfer, err := h.transferService.Create(c.Context(), actor, &input)
	if err != nil {
		return handleDomainError(c, err)
	}

	h.auditService.Record(c.Context(), services.Entry{
		ActorID:    actor.UserID,
		Action:     services.AuditActionCreate,
		RecordKind: "transfer",
		RecordID:   transfer.ID,
		NewValues:  transfer,
		IPAddress:  c.IP(),
		UserAgent:  c.Get("User-Agent"),
	})

	return response.Created(c, "Transfer requested successfully", transfer)
}

// UpdateStatus handles PATCH /api/transfers/:id/status
func (h *TransferHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid transfer ID")
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	next, err := domain.ParseTransferStatus(body.Status)
	if err != nil {
		return handleDomainError(c, err)
	}

	actor := middleware.ActorFromCtx(c)
	before, after, err := h.transferService.UpdateStatus(c.Context(), actor, id, next)
	if err != nil {
		return handleDomainError(c, err)
	}

	h.auditService.Record(c.Context(), services.Entry{
		ActorID:    actor.UserID,
		Action:     services.AuditActionStatusChange,
		RecordKind: "transfer",
		RecordID:   after.ID,
		OldValues:  before,
		NewValues:  after,
		IPAddress:  c.IP(),
		UserAgent:  c.Get("User-Agent"),
	})

	return response.Success(c, "Transfer status updated", after)
}
