package crm

import (
	"context"

	"github.com/clinic/backend/internal/domain/crm"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BookingService handles booking-related business operations. Every
// mutation triggers a resync of derived CRM state.
type BookingService struct {
	bookingRepo crm.BookingRepository
	resyncer    Resyncer
}

// NewBookingService creates a new BookingService
func NewBookingService(bookingRepo crm.BookingRepository, resyncer Resyncer) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		resyncer:    resyncer,
	}
}

// Create creates a new booking
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (*BookingResponse, error) {
	stage := crm.StageInquiry
	if req.Stage != "" {
		stage = crm.JourneyStage(req.Stage)
	}

	booking, err := crm.NewBooking(req.Name, req.Phone, req.Date, stage)
	if err != nil {
		return nil, err
	}

	if req.Source != "" || req.Medium != "" || req.Campaign != "" {
		booking.SetAttribution(req.Source, req.Medium, req.Campaign)
	}

	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.resyncer.Resync(ctx); err != nil {
		return nil, err
	}

	response := ToBookingResponse(booking)
	return &response, nil
}

// GetByID retrieves a booking by ID
func (s *BookingService) GetByID(ctx context.Context, bookingID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	response := ToBookingResponse(booking)
	return &response, nil
}

// List retrieves a list of bookings with filtering and pagination
func (s *BookingService) List(ctx context.Context, filter BookingListFilter) ([]BookingResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "date"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Stage != "" {
		domainFilter.Filters["stage"] = filter.Stage
	}
	if filter.Source != "" {
		domainFilter.Filters["source"] = filter.Source
	}

	bookings, err := s.bookingRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.bookingRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToBookingResponses(bookings), total, nil
}

// UpdateStatus changes a booking's status and resyncs derived state
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID uuid.UUID, req UpdateBookingStatusRequest) (*BookingResponse, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := booking.UpdateStatus(crm.BookingStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.resyncer.Resync(ctx); err != nil {
		return nil, err
	}

	response := ToBookingResponse(booking)
	return &response, nil
}

// AdvanceStage moves a booking to a new journey stage and resyncs derived state
func (s *BookingService) AdvanceStage(ctx context.Context, bookingID uuid.UUID, req AdvanceStageRequest) (*BookingResponse, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := booking.AdvanceStage(crm.JourneyStage(req.Stage), req.Note); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.resyncer.Resync(ctx); err != nil {
		return nil, err
	}

	response := ToBookingResponse(booking)
	return &response, nil
}
