package services

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"quartermaster/internal/adapters/persistence/models"
	"quartermaster/internal/adapters/persistence/repositories"
	"quartermaster/internal/core/domain"
	"quartermaster/internal/core/policy"
)

// MetricsService computes derived counts and sums across the ledger. All
// figures are recomputed from the ledger on every call; nothing here is
// stored. Empty data sets yield zeros.
type MetricsService struct {
	db             *gorm.DB
	userRepo       repositories.UserRepository
	baseRepo       repositories.BaseRepository
	assetRepo      repositories.AssetRepository
	transferRepo   repositories.TransferRepository
	assignmentRepo repositories.AssignmentRepository
	auditRepo      repositories.AuditLogRepository
}

// NewMetricsService creates a new metrics service
func NewMetricsService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	baseRepo repositories.BaseRepository,
	assetRepo repositories.AssetRepository,
	transferRepo repositories.TransferRepository,
	assignmentRepo repositories.AssignmentRepository,
	auditRepo repositories.AuditLogRepository,
) *MetricsService {
	return &MetricsService{
		db:             db,
		userRepo:       userRepo,
		baseRepo:       baseRepo,
		assetRepo:      assetRepo,
		transferRepo:   transferRepo,
		assignmentRepo: assignmentRepo,
		auditRepo:      auditRepo,
	}
}

// MetricsFilter narrows the aggregation window
type MetricsFilter struct {
	BaseID          *uint
	StartDate       *time.Time
	EndDate         *time.Time
	EquipmentTypeID *uint
}

// BreakdownItem is a per-equipment quantity slice
type BreakdownItem struct {
	EquipmentName string `json:"equipment_name"`
	Quantity      int    `json:"quantity"`
}

// MetricsBreakdown groups breakdown slices by movement kind
type MetricsBreakdown struct {
	Purchases    []BreakdownItem `json:"purchases"`
	TransfersIn  []BreakdownItem `json:"transfersIn"`
	TransfersOut []BreakdownItem `json:"transfersOut"`
}

// DashboardMetrics is the dashboard aggregation result. Only completed
// transfers count toward movement, in both directions.
type DashboardMetrics struct {
	NetMovement  int              `json:"netMovement"`
	Purchases    int              `json:"purchases"`
	TransfersIn  int              `json:"transfersIn"`
	TransfersOut int              `json:"transfersOut"`
	Assignments  int64            `json:"assignments"`
	Expenditures int              `json:"expenditures"`
	Breakdown    MetricsBreakdown `json:"breakdown"`
}

// Dashboard computes the role-scoped dashboard metrics for the actor
func (s *MetricsService) Dashboard(ctx context.Context, actor policy.Actor, filter MetricsFilter) (*DashboardMetrics, error) {
	baseID, empty := scopeBaseID(actor, filter.BaseID)
	if empty {
		return &DashboardMetrics{
			Breakdown: MetricsBreakdown{
				Purchases:    []BreakdownItem{},
				TransfersIn:  []BreakdownItem{},
				TransfersOut: []BreakdownItem{},
			},
		}, nil
	}
	filter.BaseID = baseID

	metrics := &DashboardMetrics{}
	var err error

	if metrics.Purchases, err = s.sumQuantity(ctx, &models.Purchase{}, "base_id", filter, nil); err != nil {
		return nil, err
	}
	completed := domain.TransferCompleted
	if metrics.TransfersIn, err = s.sumQuantity(ctx, &models.Transfer{}, "to_base_id", filter, &completed); err != nil {
		return nil, err
	}
	if metrics.TransfersOut, err = s.sumQuantity(ctx, &models.Transfer{}, "from_base_id", filter, &completed); err != nil {
		return nil, err
	}
	if metrics.Expenditures, err = s.sumQuantity(ctx, &models.Expenditure{}, "base_id", filter, nil); err != nil {
		return nil, err
	}
	if metrics.Assignments, err = s.assignmentRepo.CountActive(ctx, filter.BaseID, filter.StartDate, filter.EndDate); err != nil {
		return nil, err
	}
	metrics.NetMovement = metrics.Purchases + metrics.TransfersIn - metrics.TransfersOut

	if metrics.Breakdown.Purchases, err = s.breakdown(ctx, &models.Purchase{}, "base_id", filter, nil); err != nil {
		return nil, err
	}
	if metrics.Breakdown.TransfersIn, err = s.breakdown(ctx, &models.Transfer{}, "to_base_id", filter, &completed); err != nil {
		return nil, err
	}
	if metrics.Breakdown.TransfersOut, err = s.breakdown(ctx, &models.Transfer{}, "from_base_id", filter, &completed); err != nil {
		return nil, err
	}

	return metrics, nil
}

// scopedQuery applies the shared filter clauses for one ledger table. Every
// column is qualified with the model's table name; the breakdown queries
// join equipment_types, which carries columns of the same names.
func (s *MetricsService) scopedQuery(ctx context.Context, model schema.Tabler, baseColumn string, filter MetricsFilter, status *domain.TransferStatus) *gorm.DB {
	table := model.TableName()
	query := s.db.WithContext(ctx).Model(model)
	if filter.BaseID != nil {
		query = query.Where(table+"."+baseColumn+" = ?", *filter.BaseID)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		query = query.Where(table+".created_at BETWEEN ? AND ?", *filter.StartDate, *filter.EndDate)
	}
	if filter.EquipmentTypeID != nil {
		query = query.Where(table+".equipment_type_id = ?", *filter.EquipmentTypeID)
	}
	if status != nil {
		query = query.Where(table+".status = ?", *status)
	}
	return query
}

func (s *MetricsService) sumQuantity(ctx context.Context, model schema.Tabler, baseColumn string, filter MetricsFilter, status *domain.TransferStatus) (int, error) {
	var total int
	err := s.scopedQuery(ctx, model, baseColumn, filter, status).
		Select("COALESCE(SUM(" + model.TableName() + ".quantity), 0)").
		Scan(&total).Error
	return total, err
}

func (s *MetricsService) breakdown(ctx context.Context, model schema.Tabler, baseColumn string, filter MetricsFilter, status *domain.TransferStatus) ([]BreakdownItem, error) {
	table := model.TableName()
	items := []BreakdownItem{}
	err := s.scopedQuery(ctx, model, baseColumn, filter, status).
		Select("equipment_types.name AS equipment_name, SUM(" + table + ".quantity) AS quantity").
		Joins("JOIN equipment_types ON equipment_types.id = " + table + ".equipment_type_id").
		Group("equipment_types.name").
		Scan(&items).Error
	return items, err
}

// AdminStats is the admin console aggregation result
type AdminStats struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalBases       int64 `json:"totalBases"`
	TotalAssets      int64 `json:"totalAssets"`
	ActiveTransfers  int64 `json:"activeTransfers"`
	PendingApprovals int64 `json:"pendingApprovals"`
	RecentActivity   int64 `json:"recentActivity"`
}

// Stats computes the admin console counts. RecentActivity counts audit
// entries from the last seven days.
func (s *MetricsService) Stats(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}
	var err error

	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalBases, err = s.baseRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalAssets, err = s.assetRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveTransfers, err = s.transferRepo.CountByStatuses(ctx, domain.TransferPending, domain.TransferInTransit); err != nil {
		return nil, err
	}
	if stats.PendingApprovals, err = s.transferRepo.CountByStatuses(ctx, domain.TransferPending); err != nil {
		return nil, err
	}
	if stats.RecentActivity, err = s.auditRepo.CountSince(ctx, time.Now().AddDate(0, 0, -7)); err != nil {
		return nil, err
	}

	return stats, nil
}
