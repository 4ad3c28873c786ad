package crm

import (
	"context"
	"sync"

	"github.com/clinic/backend/internal/domain/crm"
	"go.uber.org/zap"
)

// Resyncer triggers a full recomputation of derived CRM state
type Resyncer interface {
	Resync(ctx context.Context) error
}

// SyncService runs the derivation pipeline: it reconciles the customer
// set from the booking snapshot, generates due follow-up tasks, and
// invalidates the cached marketing statistics. The whole pipeline runs
// under a single mutex; recomputation is snapshot-based and cheap, so
// writers simply queue behind each other instead of coordinating
// incremental updates.
type SyncService struct {
	bookingRepo  crm.BookingRepository
	customerRepo crm.CustomerRepository
	followUpRepo crm.FollowUpRepository
	statsCache   StatsCache
	logger       *zap.Logger
	mu           sync.Mutex
}

// NewSyncService creates a new SyncService
func NewSyncService(
	bookingRepo crm.BookingRepository,
	customerRepo crm.CustomerRepository,
	followUpRepo crm.FollowUpRepository,
	statsCache StatsCache,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		followUpRepo: followUpRepo,
		statsCache:   statsCache,
		logger:       logger,
	}
}

// Resync recomputes customers and follow-up tasks from the current
// booking snapshot and persists the result. It is invoked after every
// booking mutation and is safe to call concurrently.
func (s *SyncService) Resync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.bookingRepo.FindSnapshot(ctx)
	if err != nil {
		return err
	}
	customers, err := s.customerRepo.FindSnapshot(ctx)
	if err != nil {
		return err
	}
	tasks, err := s.followUpRepo.FindSnapshot(ctx)
	if err != nil {
		return err
	}

	reconciled, err := crm.Synchronize(bookings, customers)
	if err != nil {
		return err
	}

	merged := crm.GenerateFollowUps(bookings, reconciled, tasks)

	toSave := make([]*crm.Customer, len(reconciled))
	for i := range reconciled {
		toSave[i] = &reconciled[i]
	}
	if err := s.customerRepo.SaveBatch(ctx, toSave); err != nil {
		return err
	}

	// GenerateFollowUps appends new tasks after the existing ones, so
	// only the tail needs persisting. Existing tasks are staff-owned
	// after creation and must not be rewritten.
	newTasks := merged[len(tasks):]
	if len(newTasks) > 0 {
		taskPtrs := make([]*crm.FollowUpTask, len(newTasks))
		for i := range newTasks {
			taskPtrs[i] = &newTasks[i]
		}
		if err := s.followUpRepo.SaveBatch(ctx, taskPtrs); err != nil {
			return err
		}
	}

	if s.statsCache != nil {
		if err := s.statsCache.Invalidate(ctx); err != nil {
			s.logger.Warn("failed to invalidate marketing stats cache", zap.Error(err))
		}
	}

	s.logger.Info("resync completed",
		zap.Int("bookings", len(bookings)),
		zap.Int("customers", len(reconciled)),
		zap.Int("new_follow_ups", len(newTasks)),
	)

	return nil
}
