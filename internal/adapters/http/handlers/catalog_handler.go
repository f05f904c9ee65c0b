package handlers

import (
	"github.com/gofiber/fiber/v2"

	"quartermaster/internal/adapters/http/middleware"
	"quartermaster/internal/core/services"
	"quartermaster/internal/pkg/response"
)

// CatalogHandler handles equipment catalog and asset requests
type CatalogHandler struct {
	catalogService *services.CatalogService
	auditService   *services.AuditService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *services.CatalogService, auditService *services.AuditService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		auditService:   auditService,
	}
}

// ListEquipmentTypes handles GET /api/equipment-types
func (h *CatalogHandler) ListEquipmentTypes(c *fiber.Ctx) error {
	types, err := h.catalogService.ListEquipmentTypes(c.Context())
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "", types)
}

// CreateEquipmentType handles POST /api/equipment-types (admin only,
// enforced at the route)
func (h *CatalogHandler) CreateEquipmentType(c *fiber.Ctx) error {
	var input services.CreateEquipmentTypeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	et, err := h.catalogService.CreateEquipmentType(c.Context(), &input)
	if err != nil {
		return handleDomainError(c, err)
	}

	actor := middleware.ActorFromCtx(c)
	h.auditService.Record(c.Context(), services.Entry{
		ActorID:    actor.UserID,
		Action:     services.AuditActionCreate,
		RecordKind: "equipment_type",
		RecordID:   et.ID,
		NewValues:  et,
		IPAddress:  c.IP(),
		UserAgent:  c.Get("User-Agent"),
	})

	return response.Created(c, "Equipment type created successfully", et)
}

// ListAssets handles GET /api/assets
func (h *CatalogHandler) ListAssets(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	assets, err := h.catalogService.ListAssets(c.Context(), actor, queryUint(c, "base_id"))
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "", assets)
}

// GetAsset handles GET /api/assets/:id
func (h *CatalogHandler) GetAsset(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	actor := middleware.ActorFromCtx(c)
	asset, err := h.catalogService.GetAsset(c.Context(), actor, id)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "", asset)
}

// CreateAsset handles POST /api/assets
func (h *CatalogHandler) CreateAsset(c *fiber.Ctx) error {
	var input services.CreateAssetInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := middleware.ActorFromCtx(c)
	asset, err := h.catalogService.CreateAsset(c.Context(), actor, &input)
	if err != nil {
		return handleDomainError(c, err)
	}

	h.auditService.Record(c.Context(), services.Entry{
		ActorID:    actor.UserID,
		Action:     services.AuditActionCreate,
		RecordKind: "asset",
		RecordID:   asset.ID,
		NewValues:  asset,
		IPAddress:  c.IP(),
		UserAgent:  c.Get("User-Agent"),
	})

	return response.Created(c, "Asset registered successfully", asset)
}
