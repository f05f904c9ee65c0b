package repositories

import (
	"context"

	"gorm.io/gorm"

	"quartermaster/internal/adapters/persistence/models"
)

// equipmentTypeRepository implements EquipmentTypeRepository
type equipmentTypeRepository struct {
	db *gorm.DB
}

// NewEquipmentTypeRepository creates a new equipment type repository
func NewEquipmentTypeRepository(db *gorm.DB) EquipmentTypeRepository {
	return &equipmentTypeRepository{db: db}
}

func (r *equipmentTypeRepository) Create(ctx context.Context, et *models.EquipmentType) error {
	return r.db.WithContext(ctx).Create(et).Error
}

func (r *equipmentTypeRepository) GetByID(ctx context.Context, id uint) (*models.EquipmentType, error) {
	var et models.EquipmentType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&et).Error
	if err != nil {
		return nil, err
	}
	return &et, nil
}

func (r *equipmentTypeRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EquipmentType{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *equipmentTypeRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EquipmentType{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *equipmentTypeRepository) List(ctx context.Context) ([]*models.EquipmentType, error) {
	var types []*models.EquipmentType
	err := r.db.WithContext(ctx).Order("category ASC, name ASC").Find(&types).Error
	return types, err
}
