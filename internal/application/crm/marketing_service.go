package crm

import (
	"context"

	"github.com/clinic/backend/internal/domain/crm"
	"go.uber.org/zap"
)

// StatsCache caches computed marketing statistics between booking
// mutations. A nil return from Get with no error means a cache miss.
// Cache failures must never fail a stats request; callers fall back to
// recomputation.
type StatsCache interface {
	Get(ctx context.Context) (*crm.MarketingStats, error)
	Set(ctx context.Context, stats *crm.MarketingStats) error
	Invalidate(ctx context.Context) error
}

// MarketingService computes funnel and acquisition statistics over the
// booking snapshot.
type MarketingService struct {
	bookingRepo crm.BookingRepository
	statsCache  StatsCache
	logger      *zap.Logger
}

// NewMarketingService creates a new MarketingService
func NewMarketingService(bookingRepo crm.BookingRepository, statsCache StatsCache, logger *zap.Logger) *MarketingService {
	return &MarketingService{
		bookingRepo: bookingRepo,
		statsCache:  statsCache,
		logger:      logger,
	}
}

// Stats returns the current marketing statistics, recomputing from the
// booking snapshot on a cache miss.
func (s *MarketingService) Stats(ctx context.Context) (*MarketingStatsResponse, error) {
	if s.statsCache != nil {
		cached, err := s.statsCache.Get(ctx)
		if err != nil {
			s.logger.Warn("failed to read marketing stats cache", zap.Error(err))
		} else if cached != nil {
			response := ToMarketingStatsResponse(cached)
			return &response, nil
		}
	}

	bookings, err := s.bookingRepo.FindSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	stats := crm.Aggregate(bookings)

	if s.statsCache != nil {
		if err := s.statsCache.Set(ctx, &stats); err != nil {
			s.logger.Warn("failed to write marketing stats cache", zap.Error(err))
		}
	}

	response := ToMarketingStatsResponse(&stats)
	return &response, nil
}
