package crm

import (
	"context"
	"time"

	"github.com/clinic/backend/internal/domain/crm"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// FollowUpService handles follow-up task operations. Tasks are created
// by the derivation pipeline; this service only exposes reads and the
// staff-driven status transitions.
type FollowUpService struct {
	followUpRepo crm.FollowUpRepository
}

// NewFollowUpService creates a new FollowUpService
func NewFollowUpService(followUpRepo crm.FollowUpRepository) *FollowUpService {
	return &FollowUpService{
		followUpRepo: followUpRepo,
	}
}

// GetByID retrieves a follow-up task by ID
func (s *FollowUpService) GetByID(ctx context.Context, taskID uuid.UUID) (*FollowUpResponse, error) {
	task, err := s.followUpRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	response := ToFollowUpResponse(task)
	return &response, nil
}

// List retrieves a list of follow-up tasks with filtering and pagination
func (s *FollowUpService) List(ctx context.Context, filter FollowUpListFilter) ([]FollowUpResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "due_date"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Phone != "" {
		domainFilter.Filters["phone"] = filter.Phone
	}

	tasks, err := s.followUpRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.followUpRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToFollowUpResponses(tasks), total, nil
}

// ListPending retrieves all unresolved tasks, soonest due first
func (s *FollowUpService) ListPending(ctx context.Context) ([]FollowUpResponse, error) {
	tasks, err := s.followUpRepo.FindAll(ctx, shared.Filter{
		OrderBy:  "due_date",
		OrderDir: "asc",
		Filters:  map[string]any{"status": string(crm.FollowUpPending)},
	})
	if err != nil {
		return nil, err
	}

	return ToFollowUpResponses(tasks), nil
}

// ListByCustomer retrieves all tasks belonging to one customer
func (s *FollowUpService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]FollowUpResponse, error) {
	tasks, err := s.followUpRepo.FindAll(ctx, shared.Filter{
		OrderBy:  "due_date",
		OrderDir: "asc",
		Filters:  map[string]any{"customer_id": customerID},
	})
	if err != nil {
		return nil, err
	}

	return ToFollowUpResponses(tasks), nil
}

// ListDue retrieves pending tasks whose due date has arrived
func (s *FollowUpService) ListDue(ctx context.Context, now time.Time) ([]FollowUpResponse, error) {
	tasks, err := s.followUpRepo.FindPendingDueBefore(ctx, now)
	if err != nil {
		return nil, err
	}

	return ToFollowUpResponses(tasks), nil
}

// UpdateStatus resolves a pending task to the requested terminal status
func (s *FollowUpService) UpdateStatus(ctx context.Context, taskID uuid.UUID, req UpdateFollowUpStatusRequest) (*FollowUpResponse, error) {
	resolve := ResolveFollowUpRequest{Note: req.Note}
	if req.Status == string(crm.FollowUpSkipped) {
		return s.Skip(ctx, taskID, resolve)
	}
	return s.Complete(ctx, taskID, resolve)
}

// Complete marks a pending task as done
func (s *FollowUpService) Complete(ctx context.Context, taskID uuid.UUID, req ResolveFollowUpRequest) (*FollowUpResponse, error) {
	task, err := s.followUpRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := task.Complete(req.Note); err != nil {
		return nil, err
	}

	if err := s.followUpRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	response := ToFollowUpResponse(task)
	return &response, nil
}

// Skip marks a pending task as intentionally not performed
func (s *FollowUpService) Skip(ctx context.Context, taskID uuid.UUID, req ResolveFollowUpRequest) (*FollowUpResponse, error) {
	task, err := s.followUpRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := task.Skip(req.Note); err != nil {
		return nil, err
	}

	if err := s.followUpRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	response := ToFollowUpResponse(task)
	return &response, nil
}
