package repositories

import (
	"context"

	"gorm.io/gorm"

	"quartermaster/internal/adapters/persistence/models"
)

// expenditureRepository implements ExpenditureRepository
type expenditureRepository struct {
	db *gorm.DB
}

// NewExpenditureRepository creates a new expenditure repository
func NewExpenditureRepository(db *gorm.DB) ExpenditureRepository {
	return &expenditureRepository{db: db}
}

func (r *expenditureRepository) Create(ctx context.Context, expenditure *models.Expenditure) error {
	return r.db.WithContext(ctx).Create(expenditure).Error
}

func (r *expenditureRepository) List(ctx context.Context, baseID *uint) ([]*models.Expenditure, error) {
	query := r.db.WithContext(ctx).
		Preload("Base").
		Preload("EquipmentType").
		Preload("Recorder")
	if baseID != nil {
		query = query.Where("base_id = ?", *baseID)
	}

	var expenditures []*models.Expenditure
	err := query.Order("expenditure_date DESC").Find(&expenditures).Error
	return expenditures, err
}
