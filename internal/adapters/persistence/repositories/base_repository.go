package repositories

import (
	"context"

	"gorm.io/gorm"

	"quartermaster/internal/adapters/persistence/models"
)

// baseRepository implements BaseRepository
type baseRepository struct {
	db *gorm.DB
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *gorm.DB) BaseRepository {
	return &baseRepository{db: db}
}

func (r *baseRepository) Create(ctx context.Context, base *models.Base) error {
	return r.db.WithContext(ctx).Create(base).Error
}

func (r *baseRepository) GetByID(ctx context.Context, id uint) (*models.Base, error) {
	var base models.Base
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&base).Error
	if err != nil {
		return nil, err
	}
	return &base, nil
}

func (r *baseRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Base{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *baseRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Base{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *baseRepository) List(ctx context.Context) ([]*models.Base, error) {
	var bases []*models.Base
	err := r.db.WithContext(ctx).Preload("Commander").Order("name ASC").Find(&bases).Error
	return bases, err
}

func (r *baseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Base{}).Count(&count).Error
	return count, err
}
