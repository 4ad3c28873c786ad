package crm

import (
	"time"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeFollowUp = "FollowUpTask"

// Event type constants
const (
	EventTypeFollowUpCreated  = "FollowUpCreated"
	EventTypeFollowUpResolved = "FollowUpResolved"
)

// FollowUpCreatedEvent is published when a follow-up task is generated
type FollowUpCreatedEvent struct {
	shared.BaseDomainEvent
	TaskID    uuid.UUID    `json:"task_id"`
	BookingID uuid.UUID    `json:"booking_id"`
	Type      FollowUpType `json:"type"`
	Reason    string       `json:"reason"`
	DueDate   time.Time    `json:"due_date"`
}

// NewFollowUpCreatedEvent creates a new FollowUpCreatedEvent
func NewFollowUpCreatedEvent(task *FollowUpTask) *FollowUpCreatedEvent {
	return &FollowUpCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFollowUpCreated, AggregateTypeFollowUp, task.ID),
		TaskID:          task.ID,
		BookingID:       task.BookingID,
		Type:            task.Type,
		Reason:          task.Reason,
		DueDate:         task.DueDate,
	}
}

// FollowUpResolvedEvent is published when a task is completed or skipped
type FollowUpResolvedEvent struct {
	shared.BaseDomainEvent
	TaskID uuid.UUID      `json:"task_id"`
	Status FollowUpStatus `json:"status"`
	Note   string         `json:"note"`
}

// NewFollowUpResolvedEvent creates a new FollowUpResolvedEvent
func NewFollowUpResolvedEvent(task *FollowUpTask) *FollowUpResolvedEvent {
	return &FollowUpResolvedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFollowUpResolved, AggregateTypeFollowUp, task.ID),
		TaskID:          task.ID,
		Status:          task.Status,
		Note:            task.Note,
	}
}
