package crm

import (
	"regexp"
	"time"

	"github.com/clinic/backend/internal/domain/shared"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking represents a single requested appointment or contact event.
// It is the aggregate root for booking-related operations; the journey
// history it carries drives customer synchronization and follow-up
// scheduling.
type Booking struct {
	shared.BaseAggregateRoot
	Name     string
	Phone    string
	Status   BookingStatus
	Date     time.Time
	Source   string // acquisition attribution, may be empty
	Medium   string
	Campaign string
	Stage    JourneyStage
	History  []JourneyEvent
}

// NewBooking creates a new booking at the given journey stage. The
// initial stage is recorded as the first journey history entry.
func NewBooking(name, phone string, date time.Time, stage JourneyStage) (*Booking, error) {
	if err := validateBookingName(name); err != nil {
		return nil, err
	}
	if err := validateBookingPhone(phone); err != nil {
		return nil, err
	}
	if !IsValidStage(stage) {
		return nil, shared.NewDomainError("INVALID_STAGE", "Unknown journey stage")
	}

	booking := &Booking{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		Status:            BookingStatusPending,
		Date:              date,
		Stage:             stage,
		History: []JourneyEvent{
			{Stage: stage, Timestamp: time.Now()},
		},
	}

	booking.AddDomainEvent(NewBookingCreatedEvent(booking))

	return booking, nil
}

// SetAttribution sets the acquisition attribution fields.
func (b *Booking) SetAttribution(source, medium, campaign string) {
	b.Source = source
	b.Medium = medium
	b.Campaign = campaign
	b.UpdatedAt = time.Now()
}

// UpdateStatus changes the booking status. A cancelled booking is
// terminal and cannot change status again.
func (b *Booking) UpdateStatus(status BookingStatus) error {
	if err := validateBookingStatus(status); err != nil {
		return err
	}
	if b.Status == BookingStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled bookings cannot change status")
	}
	if b.Status == status {
		return shared.NewDomainError("INVALID_STATE", "Booking already has this status")
	}

	oldStatus := b.Status
	b.Status = status
	b.UpdatedAt = time.Now()

	b.AddDomainEvent(NewBookingStatusChangedEvent(b, oldStatus, status))

	return nil
}

// AdvanceStage moves the booking to a new journey stage and appends a
// journey history entry. The history is append-only.
func (b *Booking) AdvanceStage(stage JourneyStage, note string) error {
	if !IsValidStage(stage) {
		return shared.NewDomainError("INVALID_STAGE", "Unknown journey stage")
	}
	if b.Status == BookingStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled bookings cannot advance stages")
	}
	if b.Stage == stage {
		return shared.NewDomainError("INVALID_STATE", "Booking is already at this stage")
	}

	oldStage := b.Stage
	b.Stage = stage
	b.History = append(b.History, JourneyEvent{
		Stage:     stage,
		Timestamp: time.Now(),
		Note:      note,
	})
	b.UpdatedAt = time.Now()

	b.AddDomainEvent(NewBookingStageAdvancedEvent(b, oldStage, stage))

	return nil
}

// IsCancelled returns true if the booking has been cancelled.
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// CountsAsVisit reports whether the booking belongs to the completed
// set used for visit counting: status completed, or a journey stage of
// procedure_done or later.
func (b *Booking) CountsAsVisit() bool {
	if b.Status == BookingStatusCompleted {
		return true
	}
	return StageIndex(b.Stage) >= StageIndex(StageProcedureDone)
}

// FirstStageEvent returns the earliest journey history entry for the
// given stage, or false when the stage never appears in the history.
func (b *Booking) FirstStageEvent(stage JourneyStage) (JourneyEvent, bool) {
	for _, evt := range b.History {
		if evt.Stage == stage {
			return evt, true
		}
	}
	return JourneyEvent{}, false
}

// Validation functions

func validateBookingName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Booking name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Booking name cannot exceed 100 characters")
	}
	return nil
}

var validBookingPhone = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)

func validateBookingPhone(phone string) error {
	if phone == "" {
		return shared.NewDomainError("INVALID_PHONE", "Booking phone cannot be empty")
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	if !validBookingPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validateBookingStatus(status BookingStatus) error {
	switch status {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return nil
	default:
		return shared.NewDomainError("INVALID_STATUS", "Invalid booking status")
	}
}
