package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"quartermaster/internal/adapters/persistence/repositories"
)

// staleAfter is how long a transfer may sit pending before the daily sweep
// flags it.
const staleAfter = 7 * 24 * time.Hour

// ReminderService runs a daily sweep over transfers stuck in pending and
// logs them for follow-up. It is read-only; no record is mutated.
type ReminderService struct {
	cron         *cron.Cron
	transferRepo repositories.TransferRepository
	log          *zap.Logger
}

// NewReminderService creates a new reminder service
func NewReminderService(transferRepo repositories.TransferRepository, log *zap.Logger) *ReminderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReminderService{
		cron:         cron.New(),
		transferRepo: transferRepo,
		log:          log,
	}
}

// Start schedules the daily sweep at 08:00
func (s *ReminderService) Start() {
	if _, err := s.cron.AddFunc("0 8 * * *", s.sweepStaleTransfers); err != nil {
		s.log.Error("failed to schedule stale transfer sweep", zap.Error(err))
		return
	}
	s.cron.Start()
	s.log.Info("reminder scheduler started")
}

// Stop stops the scheduler
func (s *ReminderService) Stop() {
	s.cron.Stop()
	s.log.Info("reminder scheduler stopped")
}

func (s *ReminderService) sweepStaleTransfers() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	stale, err := s.transferRepo.ListStalePending(ctx, time.Now().Add(-staleAfter))
	if err != nil {
		s.log.Error("stale transfer sweep failed", zap.Error(err))
		return
	}

	for _, t := range stale {
		fields := []zap.Field{
			zap.Uint("transfer_id", t.ID),
			zap.Int("quantity", t.Quantity),
			zap.Time("requested_at", t.CreatedAt),
		}
		if t.FromBase != nil {
			fields = append(fields, zap.String("from_base", t.FromBase.Name))
		}
		if t.ToBase != nil {
			fields = append(fields, zap.String("to_base", t.ToBase.Name))
		}
		s.log.Warn("transfer pending past follow-up window", fields...)
	}

	if len(stale) == 0 {
		s.log.Info("stale transfer sweep clean")
	}
}
