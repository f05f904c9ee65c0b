package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quartermaster/internal/adapters/persistence/models"
	"quartermaster/internal/core/domain"
)

// assignmentRepository implements AssignmentRepository
type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

// CreateWithAssetStatus inserts the assignment and flips the asset status
// in one transaction; partial failure leaves neither record changed.
func (r *assignmentRepository) CreateWithAssetStatus(ctx context.Context, assignment *models.Assignment, assetStatus domain.AssetStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(assignment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Asset{}).
			Where("id = ?", assignment.AssetID).
			Update("status", assetStatus).Error
	})
}

func (r *assignmentRepository) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.db.WithContext(ctx).Preload("Asset").Where("id = ?", id).First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// UpdateWithAssetStatus saves the assignment and flips the asset status in
// one transaction.
func (r *assignmentRepository) UpdateWithAssetStatus(ctx context.Context, assignment *models.Assignment, assetStatus domain.AssetStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(assignment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Asset{}).
			Where("id = ?", assignment.AssetID).
			Update("status", assetStatus).Error
	})
}

// List scopes by the base of the assigned asset when baseID is set
func (r *assignmentRepository) List(ctx context.Context, baseID *uint) ([]*models.Assignment, error) {
	query := r.db.WithContext(ctx).
		Preload("Asset").
		Preload("Asset.EquipmentType").
		Preload("Assigner")
	if baseID != nil {
		query = query.
			Joins("JOIN assets ON assets.id = assignments.asset_id").
			Where("assets.base_id = ?", *baseID)
	}

	var assignments []*models.Assignment
	err := query.Order("assignment_date DESC").Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) CountActive(ctx context.Context, baseID *uint, since, until *time.Time) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Assignment{}).
		Where("assignments.status = ?", domain.AssignmentActive)
	if baseID != nil {
		query = query.
			Joins("JOIN assets ON assets.id = assignments.asset_id").
			Where("assets.base_id = ?", *baseID)
	}
	if since != nil && until != nil {
		query = query.Where("assignments.assignment_date BETWEEN ? AND ?", *since, *until)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}
