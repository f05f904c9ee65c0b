package repositories

import (
	"context"

	"gorm.io/gorm"

	"quartermaster/internal/adapters/persistence/models"
)

// assetRepository implements AssetRepository
type assetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *assetRepository) GetByID(ctx context.Context, id uint) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).Preload("EquipmentType").Preload("Base").Where("id = ?", id).First(&asset).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) List(ctx context.Context, baseID *uint) ([]*models.Asset, error) {
	query := r.db.WithContext(ctx).Preload("EquipmentType").Preload("Base")
	if baseID != nil {
		query = query.Where("base_id = ?", *baseID)
	}

	var assets []*models.Asset
	err := query.Order("created_at DESC").Find(&assets).Error
	return assets, err
}

func (r *assetRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Asset{}).Count(&count).Error
	return count, err
}
