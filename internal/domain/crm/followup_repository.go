package crm

import (
	"context"
	"time"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// FollowUpRepository defines the interface for follow-up task persistence
type FollowUpRepository interface {
	// FindByID finds a follow-up task by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*FollowUpTask, error)

	// FindAll finds all tasks matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]FollowUpTask, error)

	// FindSnapshot returns the full task set, ordered deterministically
	FindSnapshot(ctx context.Context) ([]FollowUpTask, error)

	// FindByBookingID finds all tasks for a booking
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]FollowUpTask, error)

	// FindPendingDueBefore finds pending tasks whose due date is at or
	// before the given instant
	FindPendingDueBefore(ctx context.Context, due time.Time) ([]FollowUpTask, error)

	// Save creates or updates a task
	Save(ctx context.Context, task *FollowUpTask) error

	// SaveBatch creates or updates multiple tasks
	SaveBatch(ctx context.Context, tasks []*FollowUpTask) error

	// Count counts tasks matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
