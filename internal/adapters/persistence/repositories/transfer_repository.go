package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quartermaster/internal/adapters/persistence/models"
	"quartermaster/internal/core/domain"
)

// transferRepository implements TransferRepository
type transferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a new transfer repository
func NewTransferRepository(db *gorm.DB) TransferRepository {
	return &transferRepository{db: db}
}

func (r *transferRepository) Create(ctx context.Context, transfer *models.Transfer) error {
	return r.db.WithContext(ctx).Create(transfer).Error
}

func (r *transferRepository) GetByID(ctx context.Context, id uint) (*models.Transfer, error) {
	var transfer models.Transfer
	err := r.db.WithContext(ctx).
		Preload("FromBase").
		Preload("ToBase").
		Preload("EquipmentType").
		Where("id = ?", id).
		First(&transfer).Error
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

func (r *transferRepository) Update(ctx context.Context, transfer *models.Transfer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(transfer).Error
}

func (r *transferRepository) List(ctx context.Context, baseID *uint, status *domain.TransferStatus) ([]*models.Transfer, error) {
	query := r.db.WithContext(ctx).
		Preload("FromBase").
		Preload("ToBase").
		Preload("EquipmentType").
		Preload("Requester").
		Preload("Approver")
	if baseID != nil {
		query = query.Where("from_base_id = ? OR to_base_id = ?", *baseID, *baseID)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var transfers []*models.Transfer
	err := query.Order("created_at DESC").Find(&transfers).Error
	return transfers, err
}

func (r *transferRepository) CountByStatuses(ctx context.Context, statuses ...domain.TransferStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Transfer{}).Where("status IN ?", statuses).Count(&count).Error
	return count, err
}

func (r *transferRepository) ListStalePending(ctx context.Context, olderThan time.Time) ([]*models.Transfer, error) {
	var transfers []*models.Transfer
	err := r.db.WithContext(ctx).
		Preload("FromBase").
		Preload("ToBase").
		Where("status = ? AND created_at < ?", domain.TransferPending, olderThan).
		Order("created_at ASC").
		Find(&transfers).Error
	return transfers, err
}
