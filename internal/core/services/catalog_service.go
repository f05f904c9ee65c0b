package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"quartermaster/internal/adapters/persistence/models"
	"quartermaster/internal/adapters/persistence/repositories"
	"quartermaster/internal/core/domain"
	"quartermaster/internal/core/policy"
)

// CatalogService handles the equipment type catalog and physical assets
type CatalogService struct {
	equipmentRepo repositories.EquipmentTypeRepository
	assetRepo     repositories.AssetRepository
	baseRepo      repositories.BaseRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	equipmentRepo repositories.EquipmentTypeRepository,
	assetRepo repositories.AssetRepository,
	baseRepo repositories.BaseRepository,
) *CatalogService {
	return &CatalogService{
		equipmentRepo: equipmentRepo,
		assetRepo:     assetRepo,
		baseRepo:      baseRepo,
	}
}

// ListEquipmentTypes returns the equipment catalog
func (s *CatalogService) ListEquipmentTypes(ctx context.Context) ([]*models.EquipmentType, error) {
	return s.equipmentRepo.List(ctx)
}

// CreateEquipmentTypeInput represents catalog entry input
type CreateEquipmentTypeInput struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
}

// CreateEquipmentType adds a catalog entry (admin only, enforced at the route)
func (s *CatalogService) CreateEquipmentType(ctx context.Context, input *CreateEquipmentTypeInput) (*models.EquipmentType, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || strings.TrimSpace(input.Unit) == "" {
		return nil, fmt.Errorf("%w: name and unit are required", domain.ErrInvalidInput)
	}

	exists, err := s.equipmentRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: equipment type already exists", domain.ErrDuplicateEntry)
	}

	et := &models.EquipmentType{
		Name:        name,
		Category:    strings.TrimSpace(input.Category),
		Unit:        strings.TrimSpace(input.Unit),
		Description: input.Description,
	}

	if err := s.equipmentRepo.Create(ctx, et); err != nil {
		return nil, err
	}
	return et, nil
}

// CreateAssetInput represents asset registration input
type CreateAssetInput struct {
	EquipmentTypeID uint   `json:"equipment_type_id"`
	BaseID          uint   `json:"base_id"`
	SerialNumber    string `json:"serial_number"`
	Condition       string `json:"condition"`
}

// CreateAsset registers a physical asset at a base. The actor must hold
// admin or commander rank and have access to the target base.
func (s *CatalogService) CreateAsset(ctx context.Context, actor policy.Actor, input *CreateAssetInput) (*models.Asset, error) {
	if !policy.HasRole(actor, domain.RoleAdmin, domain.RoleBaseCommander) {
		return nil, domain.ErrForbidden
	}
	if !policy.CanAccessBase(actor, input.BaseID) {
		return nil, domain.ErrForbidden
	}

	if strings.TrimSpace(input.SerialNumber) == "" {
		return nil, fmt.Errorf("%w: serial number is required", domain.ErrInvalidInput)
	}

	exists, err := s.baseRepo.Exists(ctx, input.BaseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: base %d", domain.ErrBaseNotFound, input.BaseID)
	}

	exists, err = s.equipmentRepo.Exists(ctx, input.EquipmentTypeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: equipment type %d", domain.ErrEquipmentNotFound, input.EquipmentTypeID)
	}

	asset := &models.Asset{
		EquipmentTypeID: input.EquipmentTypeID,
		BaseID:          input.BaseID,
		SerialNumber:    strings.TrimSpace(input.SerialNumber),
		Status:          domain.AssetAvailable,
		Condition:       input.Condition,
	}

	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// ListAssets returns assets visible to the actor
func (s *CatalogService) ListAssets(ctx context.Context, actor policy.Actor, requestedBase *uint) ([]*models.Asset, error) {
	baseID, empty := scopeBaseID(actor, requestedBase)
	if empty {
		return []*models.Asset{}, nil
	}
	return s.assetRepo.List(ctx, baseID)
}

// GetAsset returns a single asset if the actor may see it
func (s *CatalogService) GetAsset(ctx context.Context, actor policy.Actor, id uint) (*models.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !policy.CanAccessBase(actor, asset.BaseID) {
		return nil, domain.ErrForbidden
	}
	return asset, nil
}
