package crm

import (
	"time"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// FollowUpType is the contact channel for a follow-up task
type FollowUpType string

const (
	FollowUpCall  FollowUpType = "call"
	FollowUpSMS   FollowUpType = "sms"
	FollowUpKakao FollowUpType = "kakao"
)

// FollowUpStatus is the lifecycle state of a follow-up task
type FollowUpStatus string

const (
	FollowUpPending   FollowUpStatus = "pending"
	FollowUpCompleted FollowUpStatus = "completed"
	FollowUpSkipped   FollowUpStatus = "skipped"
)

// FollowUpTask is a scheduled contact action derived from a booking's
// journey progress. A task is identified by the pair (BookingID, Reason):
// re-running generation never creates a second task for the same pair,
// regardless of the task's current status.
type FollowUpTask struct {
	shared.BaseAggregateRoot
	BookingID    uuid.UUID
	CustomerID   uuid.UUID
	CustomerName string // snapshot at creation time, not re-synced
	Phone        string
	Type         FollowUpType
	Reason       string
	DueDate      time.Time
	Status       FollowUpStatus
	Note         string
	ResolvedAt   *time.Time
}

// NewFollowUpTask creates a pending follow-up task
func NewFollowUpTask(bookingID, customerID uuid.UUID, customerName, phone string, taskType FollowUpType, reason string, dueDate time.Time) *FollowUpTask {
	task := &FollowUpTask{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BookingID:         bookingID,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Phone:             phone,
		Type:              taskType,
		Reason:            reason,
		DueDate:           dueDate,
		Status:            FollowUpPending,
	}

	task.AddDomainEvent(NewFollowUpCreatedEvent(task))

	return task
}

// Complete marks a pending task as done. Completed and skipped are
// terminal states.
func (t *FollowUpTask) Complete(note string) error {
	if t.Status != FollowUpPending {
		return shared.NewDomainError("INVALID_TRANSITION", "Only pending follow-up tasks can be completed")
	}

	now := time.Now()
	t.Status = FollowUpCompleted
	t.Note = note
	t.ResolvedAt = &now
	t.UpdatedAt = now

	t.AddDomainEvent(NewFollowUpResolvedEvent(t))

	return nil
}

// Skip marks a pending task as intentionally not performed.
func (t *FollowUpTask) Skip(note string) error {
	if t.Status != FollowUpPending {
		return shared.NewDomainError("INVALID_TRANSITION", "Only pending follow-up tasks can be skipped")
	}

	now := time.Now()
	t.Status = FollowUpSkipped
	t.Note = note
	t.ResolvedAt = &now
	t.UpdatedAt = now

	t.AddDomainEvent(NewFollowUpResolvedEvent(t))

	return nil
}

// IsOverdue reports whether a pending task's due date has passed
func (t *FollowUpTask) IsOverdue(now time.Time) bool {
	return t.Status == FollowUpPending && t.DueDate.Before(now)
}

// DedupKey identifies the task within its booking. Two tasks with the
// same key are the same logical obligation.
func (t *FollowUpTask) DedupKey() FollowUpKey {
	return FollowUpKey{BookingID: t.BookingID, Reason: t.Reason}
}

// FollowUpKey is the identity of a follow-up obligation
type FollowUpKey struct {
	BookingID uuid.UUID
	Reason    string
}
