package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"quartermaster/internal/adapters/persistence/models"
	"quartermaster/internal/adapters/persistence/repositories"
	"quartermaster/internal/core/domain"
	"quartermaster/internal/core/policy"
)

// AssignmentService handles lending assets to named individuals. Creating
// or closing an assignment flips the underlying asset status in the same
// transaction.
type AssignmentService struct {
	assignmentRepo repositories.AssignmentRepository
	assetRepo      repositories.AssetRepository
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(
	assignmentRepo repositories.AssignmentRepository,
	assetRepo repositories.AssetRepository,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		assetRepo:      assetRepo,
	}
}

// CreateAssignmentInput represents assignment input
type CreateAssignmentInput struct {
	AssetID        uint      `json:"asset_id"`
	AssignedTo     string    `json:"assigned_to"`
	AssignmentDate time.Time `json:"assignment_date"`
	Purpose        string    `json:"purpose"`
}

// Create lends an available asset to a named individual. Only admins and
// base commanders may assign, and only for assets on a base they control.
func (s *AssignmentService) Create(ctx context.Context, actor policy.Actor, input *CreateAssignmentInput) (*models.Assignment, error) {
	if !policy.HasRole(actor, domain.RoleAdmin, domain.RoleBaseCommander) {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(input.AssignedTo) == "" {
		return nil, fmt.Errorf("%w: assigned_to is required", domain.ErrInvalidInput)
	}

	asset, err := s.assetRepo.GetByID(ctx, input.AssetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetUnavailable
		}
		return nil, err
	}
	if asset.Status != domain.AssetAvailable {
		return nil, domain.ErrAssetUnavailable
	}
	if !policy.CanAccessBase(actor, asset.BaseID) {
		return nil, domain.ErrForbidden
	}

	assignmentDate := input.AssignmentDate
	if assignmentDate.IsZero() {
		assignmentDate = time.Now()
	}

	assignment := &models.Assignment{
		AssetID:        input.AssetID,
		AssignedTo:     strings.TrimSpace(input.AssignedTo),
		AssignedBy:     actor.UserID,
		AssignmentDate: assignmentDate,
		Purpose:        input.Purpose,
		Status:         domain.AssignmentActive,
	}

	if err := s.assignmentRepo.CreateWithAssetStatus(ctx, assignment, domain.AssetAssigned); err != nil {
		return nil, err
	}
	return assignment, nil
}

// List returns assignments visible to the actor, scoped by the base the
// assigned asset belongs to.
func (s *AssignmentService) List(ctx context.Context, actor policy.Actor, requestedBase *uint) ([]*models.Assignment, error) {
	if !policy.HasRole(actor, domain.RoleAdmin, domain.RoleBaseCommander) {
		return nil, domain.ErrForbidden
	}
	baseID, empty := scopeBaseID(actor, requestedBase)
	if empty {
		return []*models.Assignment{}, nil
	}
	return s.assignmentRepo.List(ctx, baseID)
}

// assetStatusFor maps an assignment outcome to the asset's next state
func assetStatusFor(status domain.AssignmentStatus) domain.AssetStatus {
	switch status {
	case domain.AssignmentReturned:
		return domain.AssetAvailable
	case domain.AssignmentLost:
		return domain.AssetExpended
	case domain.AssignmentDamaged:
		return domain.AssetMaintenance
	}
	return domain.AssetAssigned
}

// UpdateStatus closes an active assignment as returned, lost, or damaged.
// It returns the assignment before and after for auditing.
func (s *AssignmentService) UpdateStatus(ctx context.Context, actor policy.Actor, id uint, next domain.AssignmentStatus) (before, after *models.Assignment, err error) {
	if !policy.HasRole(actor, domain.RoleAdmin, domain.RoleBaseCommander) {
		return nil, nil, domain.ErrForbidden
	}
	if next == domain.AssignmentActive {
		return nil, nil, fmt.Errorf("%w: assignment cannot return to active", domain.ErrInvalidTransition)
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, err
	}
	if assignment.Status != domain.AssignmentActive {
		return nil, nil, fmt.Errorf("%w: assignment already %s", domain.ErrInvalidTransition, assignment.Status)
	}
	if assignment.Asset != nil && !policy.CanAccessBase(actor, assignment.Asset.BaseID) {
		return nil, nil, domain.ErrForbidden
	}

	prev := *assignment
	assignment.Status = next
	if next == domain.AssignmentReturned {
		now := time.Now()
		assignment.ReturnDate = &now
	}

	if err := s.assignmentRepo.UpdateWithAssetStatus(ctx, assignment, assetStatusFor(next)); err != nil {
		return nil, nil, err
	}
	return &prev, assignment, nil
}
