package crm

import (
	"context"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BookingRepository defines the interface for booking persistence
type BookingRepository interface {
	// FindByID finds a booking by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindAll finds all bookings matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Booking, error)

	// FindSnapshot returns the full booking set, ordered deterministically.
	// The synchronization pipeline and the marketing aggregator operate on
	// this snapshot.
	FindSnapshot(ctx context.Context) ([]Booking, error)

	// FindByPhone finds all bookings for a phone number
	FindByPhone(ctx context.Context, phone string) ([]Booking, error)

	// Save creates or updates a booking
	Save(ctx context.Context, booking *Booking) error

	// Count counts bookings matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
