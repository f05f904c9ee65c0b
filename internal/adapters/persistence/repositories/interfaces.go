package repositories

import (
	"context"
	"time"

	"quartermaster/internal/adapters/persistence/models"
	"quartermaster/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// BaseRepository defines base repository interface
type BaseRepository interface {
	Create(ctx context.Context, base *models.Base) error
	GetByID(ctx context.Context, id uint) (*models.Base, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]*models.Base, error)
	Count(ctx context.Context) (int64, error)
}

// EquipmentTypeRepository defines equipment catalog repository interface
type EquipmentTypeRepository interface {
	Create(ctx context.Context, et *models.EquipmentType) error
	GetByID(ctx context.Context, id uint) (*models.EquipmentType, error)
	Exists(ctx context.Context, id uint) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]*models.EquipmentType, error)
}

// AssetRepository defines asset repository interface
type AssetRepository interface {
	Create(ctx context.Context, asset *models.Asset) error
	GetByID(ctx context.Context, id uint) (*models.Asset, error)
	List(ctx context.Context, baseID *uint) ([]*models.Asset, error)
	Count(ctx context.Context) (int64, error)
}

// PurchaseRepository defines purchase repository interface
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *models.Purchase) error
	List(ctx context.Context, baseID *uint) ([]*models.Purchase, error)
}

// TransferRepository defines transfer repository interface
type TransferRepository interface {
	Create(ctx context.Context, transfer *models.Transfer) error
	GetByID(ctx context.Context, id uint) (*models.Transfer, error)
	Update(ctx context.Context, transfer *models.Transfer) error
	// List returns transfers visible for the given base (source or
	// destination matches); a nil baseID returns all transfers.
	List(ctx context.Context, baseID *uint, status *domain.TransferStatus) ([]*models.Transfer, error)
	CountByStatuses(ctx context.Context, statuses ...domain.TransferStatus) (int64, error)
	ListStalePending(ctx context.Context, olderThan time.Time) ([]*models.Transfer, error)
}

// AssignmentRepository defines assignment repository interface. Creation
// and status updates flip the linked asset's status inside one transaction.
type AssignmentRepository interface {
	CreateWithAssetStatus(ctx context.Context, assignment *models.Assignment, assetStatus domain.AssetStatus) error
	GetByID(ctx context.Context, id uint) (*models.Assignment, error)
	UpdateWithAssetStatus(ctx context.Context, assignment *models.Assignment, assetStatus domain.AssetStatus) error
	List(ctx context.Context, baseID *uint) ([]*models.Assignment, error)
	// CountActive counts active assignments, optionally narrowed to a base
	// and to assignments made within [since, until].
	CountActive(ctx context.Context, baseID *uint, since, until *time.Time) (int64, error)
}

// ExpenditureRepository defines expenditure repository interface
type ExpenditureRepository interface {
	Create(ctx context.Context, expenditure *models.Expenditure) error
	List(ctx context.Context, baseID *uint) ([]*models.Expenditure, error)
}

// AuditLogRepository defines audit log repository interface
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, offset, limit int) ([]*models.AuditLog, int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}
