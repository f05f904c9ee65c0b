package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"quartermaster/internal/adapters/persistence/models"
	"quartermaster/internal/adapters/persistence/repositories"
	"quartermaster/internal/core/domain"
	"quartermaster/internal/core/policy"
)

// TransferService governs the transfer lifecycle. A transfer only affects
// base balances once completed, and completion does not mutate any count:
// the metrics aggregation derives balances from completed transfers, so
// re-aggregation can never double-count.
type TransferService struct {
	transferRepo  repositories.TransferRepository
	baseRepo      repositories.BaseRepository
	equipmentRepo repositories.EquipmentTypeRepository
}

// NewTransferService creates a new transfer service
func NewTransferService(
	transferRepo repositories.TransferRepository,
	baseRepo repositories.BaseRepository,
	equipmentRepo repositories.EquipmentTypeRepository,
) *TransferService {
	return &TransferService{
		transferRepo:  transferRepo,
		baseRepo:      baseRepo,
		equipmentRepo: equipmentRepo,
	}
}

// CreateTransferInput represents transfer request input
type CreateTransferInput struct {
	FromBaseID      uint      `json:"from_base_id"`
	ToBaseID        uint      `json:"to_base_id"`
	EquipmentTypeID uint      `json:"equipment_type_id"`
	Quantity        int       `json:"quantity"`
	TransferDate    time.Time `json:"transfer_date"`
	Reason          string    `json:"reason"`
}

// Create requests a transfer. The requester must have access to the source
// base; the transfer starts pending with no approver.
func (s *TransferService) Create(ctx context.Context, actor policy.Actor, input *CreateTransferInput) (*models.Transfer, error) {
	if !policy.CanAccessBase(actor, input.FromBaseID) {
		return nil, domain.ErrForbidden
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if input.FromBaseID == input.ToBaseID {
		return nil, domain.ErrSameBase
	}

	for _, baseID := range []uint{input.FromBaseID, input.ToBaseID} {
		exists, err := s.baseRepo.Exists(ctx, baseID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: base %d", domain.ErrBaseNotFound, baseID)
		}
	}

	exists, err := s.equipmentRepo.Exists(ctx, input.EquipmentTypeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: equipment type %d", domain.ErrEquipmentNotFound, input.EquipmentTypeID)
	}

	transferDate := input.TransferDate
	if transferDate.IsZero() {
		transferDate = time.Now()
	}

	transfer := &models.Transfer{
		FromBaseID:      input.FromBaseID,
		ToBaseID:        input.ToBaseID,
		EquipmentTypeID: input.EquipmentTypeID,
		Quantity:        input.Quantity,
		TransferDate:    transferDate,
		Reason:          input.Reason,
		Status:          domain.TransferPending,
		RequestedBy:     actor.UserID,
	}

	if err := s.transferRepo.Create(ctx, transfer); err != nil {
		return nil, err
	}
	return transfer, nil
}

// List returns transfers visible to the actor: all of them for admins, and
// those touching the actor's home base (either side) for everyone else.
func (s *TransferService) List(ctx context.Context, actor policy.Actor, requestedBase *uint, status *domain.TransferStatus) ([]*models.Transfer, error) {
	baseID, empty := scopeBaseID(actor, requestedBase)
	if empty {
		return []*models.Transfer{}, nil
	}
	return s.transferRepo.List(ctx, baseID, status)
}

// UpdateStatus moves a transfer through its lifecycle. It returns the
// transfer before and after the transition so the caller can audit both.
func (s *TransferService) UpdateStatus(ctx context.Context, actor policy.Actor, id uint, next domain.TransferStatus) (before, after *models.Transfer, err error) {
	transfer, err := s.transferRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, err
	}

	if !transfer.Status.CanTransition(next) {
		return nil, nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, transfer.Status, next)
	}

	switch next {
	case domain.TransferInTransit, domain.TransferCompleted:
		if !policy.CanAdvanceTransfer(actor, transfer.FromBaseID, transfer.ToBaseID) {
			return nil, nil, domain.ErrForbidden
		}
	case domain.TransferCancelled:
		if !policy.CanCancelTransfer(actor, transfer.RequestedBy) {
			return nil, nil, domain.ErrForbidden
		}
	default:
		return nil, nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, transfer.Status, next)
	}

	prev := *transfer
	transfer.Status = next
	if next == domain.TransferInTransit || next == domain.TransferCompleted {
		transfer.ApprovedBy = &actor.UserID
	}
	if next == domain.TransferCompleted {
		now := time.Now()
		transfer.CompletedAt = &now
	}

	if err := s.transferRepo.Update(ctx, transfer); err != nil {
		return nil, nil, err
	}
	return &prev, transfer, nil
}
