package repositories

import (
	"context"

	"gorm.io/gorm"

	"quartermaster/internal/adapters/persistence/models"
)

// purchaseRepository implements PurchaseRepository
type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *purchaseRepository) List(ctx context.Context, baseID *uint) ([]*models.Purchase, error) {
	query := r.db.WithContext(ctx).
		Preload("Base").
		Preload("EquipmentType").
		Preload("Creator")
	if baseID != nil {
		query = query.Where("base_id = ?", *baseID)
	}

	var purchases []*models.Purchase
	err := query.Order("purchase_date DESC").Find(&purchases).Error
	return purchases, err
}
