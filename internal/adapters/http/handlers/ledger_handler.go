package handlers

import (
	"github.com/gofiber/fiber/v2"

	"quartermaster/internal/adapters/http/middleware"
	"quartermaster/internal/core/services"
	"quartermaster/internal/pkg/response"
)

// LedgerHandler handles purchase and expenditure requests
type LedgerHandler struct {
	ledgerService *services.LedgerService
	auditService  *services.AuditService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *services.LedgerService, auditService *services.AuditService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
		auditService:  auditService,
	}
}

// ListPurchases handles GET /api/purchases
func (h *LedgerHandler) ListPurchases(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	purchases, err := h.ledgerService.ListPurchases(c.Context(), actor, queryUint(c, "base_id"))
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "", purchases)
}

// CreatePurchase handles POST /api/purchases
func (h *LedgerHandler) CreatePurchase(c *fiber.Ctx) error {
	var input services.CreatePurchaseInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := middleware.ActorFromCtx(c)
	purchase, err := h.ledgerService.CreatePurchase(c.Context(), actor, &input)
	if err != nil {
		return handleDomainError(c, err)
	}

	h.auditService.Record(c.Context(), services.Entry{
		ActorID:    actor.UserID,
		Action:     services.AuditActionCreate,
		RecordKind: "purchase",
		RecordID:   purchase.ID,
		NewValues:  purchase,
		IPAddress:  c.IP(),
		UserAgent:  c.Get("User-Agent"),
	})

	return response.Created(c, "Purchase recorded successfully", purchase)
}

// ListExpenditures handles GET /api/expenditures
func (h *LedgerHandler) ListExpenditures(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	expenditures, err := h.ledgerService.ListExpenditures(c.Context(), actor, queryUint(c, "base_id"))
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "", expenditures)
}

// CreateExpenditure handles POST /api/expenditures
func (h *LedgerHandler) CreateExpenditure(c *fiber.Ctx) error {
	var input services.CreateExpenditureInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := middleware.ActorFromCtx(c)
	expenditure, err := h.ledgerService.CreateExpenditure(c.Context(), actor, &input)
	if err != nil {
		return handleDomainError(c, err)
	}

	h.auditService.Record(c.Context(), services.Entry{
		ActorID:    actor.UserID,
		Action:     services.AuditActionCreate,
		RecordKind: "expenditure",
		RecordID:   expenditure.ID,
		NewValues:  expenditure,
		IPAddress:  c.IP(),
		UserAgent:  c.Get("User-Agent"),
	})

	return response.Created(c, "Expenditure recorded successfully", expenditure)
}
