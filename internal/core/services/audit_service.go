package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quartermaster/internal/adapters/persistence/models"
	"quartermaster/internal/adapters/persistence/repositories"
)

// Audit actions
const (
	AuditActionCreate       = "CREATE"
	AuditActionStatusChange = "STATUS_CHANGE"
	AuditActionLogin        = "LOGIN"
	AuditActionSignup       = "USER_CREATED"
	AuditActionBaseCreated  = "BASE_CREATED"
)

// AuditService appends immutable audit entries for state-changing
// operations. Recording is synchronous but best-effort: a storage failure
// here is logged and swallowed, never surfaced to the primary operation.
type AuditService struct {
	auditRepo repositories.AuditLogRepository
	log       *zap.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repositories.AuditLogRepository, log *zap.Logger) *AuditService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuditService{
		auditRepo: auditRepo,
		log:       log,
	}
}

// Entry describes one audited operation
type Entry struct {
	ActorID    uint
	Action     string
	RecordKind string
	RecordID   uint
	OldValues  interface{}
	NewValues  interface{}
	IPAddress  string
	UserAgent  string
}

// Record appends one audit log entry for the given operation
func (s *AuditService) Record(ctx context.Context, e Entry) {
	entry := &models.AuditLog{
		EventID:    uuid.New().String(),
		UserID:     e.ActorID,
		Action:     e.Action,
		RecordKind: e.RecordKind,
		RecordID:   e.RecordID,
		IPAddress:  e.IPAddress,
		UserAgent:  e.UserAgent,
	}

	if e.OldValues != nil {
		if data, err := json.Marshal(e.OldValues); err == nil {
			entry.OldValues = data
		}
	}
	if e.NewValues != nil {
		if data, err := json.Marshal(e.NewValues); err == nil {
			entry.NewValues = data
		}
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.log.Error("failed to record audit entry",
			zap.String("action", e.Action),
			zap.String("record_kind", e.RecordKind),
			zap.Uint("record_id", e.RecordID),
			zap.Error(err),
		)
	}
}

// List returns audit entries, newest first, with the total count
func (s *AuditService) List(ctx context.Context, offset, limit int) ([]*models.AuditLog, int64, error) {
	return s.auditRepo.List(ctx, offset, limit)
}
