package crm

import (
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeBooking = "Booking"

// Event type constants
const (
	EventTypeBookingCreated       = "BookingCreated"
	EventTypeBookingStatusChanged = "BookingStatusChanged"
	EventTypeBookingStageAdvanced = "BookingStageAdvanced"
)

// BookingCreatedEvent is published when a new booking is created
type BookingCreatedEvent struct {
	shared.BaseDomainEvent
	BookingID uuid.UUID    `json:"booking_id"`
	Phone     string       `json:"phone"`
	Stage     JourneyStage `json:"stage"`
}

// NewBookingCreatedEvent creates a new BookingCreatedEvent
func NewBookingCreatedEvent(booking *Booking) *BookingCreatedEvent {
	return &BookingCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingCreated, AggregateTypeBooking, booking.ID),
		BookingID:       booking.ID,
		Phone:           booking.Phone,
		Stage:           booking.Stage,
	}
}

// BookingStatusChangedEvent is published when a booking's status changes
type BookingStatusChangedEvent struct {
	shared.BaseDomainEvent
	BookingID uuid.UUID     `json:"booking_id"`
	OldStatus BookingStatus `json:"old_status"`
	NewStatus BookingStatus `json:"new_status"`
}

// NewBookingStatusChangedEvent creates a new BookingStatusChangedEvent
func NewBookingStatusChangedEvent(booking *Booking, oldStatus, newStatus BookingStatus) *BookingStatusChangedEvent {
	return &BookingStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingStatusChanged, AggregateTypeBooking, booking.ID),
		BookingID:       booking.ID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// BookingStageAdvancedEvent is published when a booking moves to a new journey stage
type BookingStageAdvancedEvent struct {
	shared.BaseDomainEvent
	BookingID uuid.UUID    `json:"booking_id"`
	OldStage  JourneyStage `json:"old_stage"`
	NewStage  JourneyStage `json:"new_stage"`
}

// NewBookingStageAdvancedEvent creates a new BookingStageAdvancedEvent
func NewBookingStageAdvancedEvent(booking *Booking, oldStage, newStage JourneyStage) *BookingStageAdvancedEvent {
	return &BookingStageAdvancedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingStageAdvanced, AggregateTypeBooking, booking.ID),
		BookingID:       booking.ID,
		OldStage:        oldStage,
		NewStage:        newStage,
	}
}
