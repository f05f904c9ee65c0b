package services

import (
	"context"
	"fmt"
	"time"

	"quartermaster/internal/adapters/persistence/models"
	"quartermaster/internal/adapters/persistence/repositories"
	"quartermaster/internal/core/domain"
	"quartermaster/internal/core/policy"
)

// LedgerService handles the immutable ledger records: purchases and
// expenditures. Both affect a base's effective balance, which is always
// recomputed from the ledger rather than stored.
type LedgerService struct {
	purchaseRepo    repositories.PurchaseRepository
	expenditureRepo repositories.ExpenditureRepository
	baseRepo        repositories.BaseRepository
	equipmentRepo   repositories.EquipmentTypeRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	purchaseRepo repositories.PurchaseRepository,
	expenditureRepo repositories.ExpenditureRepository,
	baseRepo repositories.BaseRepository,
	equipmentRepo repositories.EquipmentTypeRepository,
) *LedgerService {
	return &LedgerService{
		purchaseRepo:    purchaseRepo,
		expenditureRepo: expenditureRepo,
		baseRepo:        baseRepo,
		equipmentRepo:   equipmentRepo,
	}
}

func (s *LedgerService) validateBaseAndEquipment(ctx context.Context, baseID, equipmentTypeID uint) error {
	exists, err := s.baseRepo.Exists(ctx, baseID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: base %d", domain.ErrBaseNotFound, baseID)
	}

	exists, err = s.equipmentRepo.Exists(ctx, equipmentTypeID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: equipment type %d", domain.ErrEquipmentNotFound, equipmentTypeID)
	}
	return nil
}

// CreatePurchaseInput represents purchase input
type CreatePurchaseInput struct {
	BaseID          uint      `json:"base_id"`
	EquipmentTypeID uint      `json:"equipment_type_id"`
	Quantity        int       `json:"quantity"`
	UnitCost        float64   `json:"unit_cost"`
	Supplier        string    `json:"supplier"`
	PurchaseDate    time.Time `json:"purchase_date"`
	OrderNumber     string    `json:"order_number"`
}

// CreatePurchase records an acquisition at a base the actor can access
func (s *LedgerService) CreatePurchase(ctx context.Context, actor policy.Actor, input *CreatePurchaseInput) (*models.Purchase, error) {
	if !policy.CanAccessBase(actor, input.BaseID) {
		return nil, domain.ErrForbidden
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if err := s.validateBaseAndEquipment(ctx, input.BaseID, input.EquipmentTypeID); err != nil {
		return nil, err
	}

	purchaseDate := input.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	purchase := &models.Purchase{
		BaseID:          input.BaseID,
		EquipmentTypeID: input.EquipmentTypeID,
		Quantity:        input.Quantity,
		UnitCost:        input.UnitCost,
		TotalCost:       input.UnitCost * float64(input.Quantity),
		Supplier:        input.Supplier,
		PurchaseDate:    purchaseDate,
		OrderNumber:     input.OrderNumber,
		CreatedBy:       actor.UserID,
	}

	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// ListPurchases returns purchases visible to the actor
func (s *LedgerService) ListPurchases(ctx context.Context, actor policy.Actor, requestedBase *uint) ([]*models.Purchase, error) {
	baseID, empty := scopeBaseID(actor, requestedBase)
	if empty {
		return []*models.Purchase{}, nil
	}
	return s.purchaseRepo.List(ctx, baseID)
}

// CreateExpenditureInput represents expenditure input
type CreateExpenditureInput struct {
	BaseID          uint      `json:"base_id"`
	EquipmentTypeID uint      `json:"equipment_type_id"`
	Quantity        int       `json:"quantity"`
	ExpenditureDate time.Time `json:"expenditure_date"`
	Reason          string    `json:"reason"`
	OperationName   string    `json:"operation_name"`
	ExpenditureType string    `json:"expenditure_type"`
}

// CreateExpenditure records irreversible consumption at a base the actor
// can access. The effective balance is allowed to go negative; the ledger
// records what happened, it does not police stock levels.
func (s *LedgerService) CreateExpenditure(ctx context.Context, actor policy.Actor, input *CreateExpenditureInput) (*models.Expenditure, error) {
	if !policy.CanAccessBase(actor, input.BaseID) {
		return nil, domain.ErrForbidden
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	expType, err := domain.ParseExpenditureType(input.ExpenditureType)
	if err != nil {
		return nil, err
	}

	if err := s.validateBaseAndEquipment(ctx, input.BaseID, input.EquipmentTypeID); err != nil {
		return nil, err
	}

	expenditureDate := input.ExpenditureDate
	if expenditureDate.IsZero() {
		expenditureDate = time.Now()
	}

	expenditure := &models.Expenditure{
		BaseID:          input.BaseID,
		EquipmentTypeID: input.EquipmentTypeID,
		Quantity:        input.Quantity,
		ExpenditureDate: expenditureDate,
		Reason:          input.Reason,
		OperationName:   input.OperationName,
		ExpenditureType: expType,
		RecordedBy:      actor.UserID,
	}

	if err := s.expenditureRepo.Create(ctx, expenditure); err != nil {
		return nil, err
	}
	return expenditure, nil
}

// ListExpenditures returns expenditures visible to the actor
func (s *LedgerService) ListExpenditures(ctx context.Context, actor policy.Actor, requestedBase *uint) ([]*models.Expenditure, error) {
	baseID, empty := scopeBaseID(actor, requestedBase)
	if empty {
		return []*models.Expenditure{}, nil
	}
	return s.expenditureRepo.List(ctx, baseID)
}
