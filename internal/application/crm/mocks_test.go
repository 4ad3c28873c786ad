package crm

import (
	"context"
	"time"

	"github.com/clinic/backend/internal/domain/crm"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockBookingRepository is a mock implementation of BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Booking, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]crm.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindSnapshot(ctx context.Context) ([]crm.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByPhone(ctx context.Context, phone string) ([]crm.Booking, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).([]crm.Booking), args.Error(1)
}

func (m *MockBookingRepository) Save(ctx context.Context, booking *crm.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phone string) (*crm.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindSnapshot(ctx context.Context) ([]crm.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *crm.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) SaveBatch(ctx context.Context, customers []*crm.Customer) error {
	args := m.Called(ctx, customers)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

// MockFollowUpRepository is a mock implementation of FollowUpRepository
type MockFollowUpRepository struct {
	mock.Mock
}

func (m *MockFollowUpRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.FollowUpTask, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.FollowUpTask), args.Error(1)
}

func (m *MockFollowUpRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.FollowUpTask, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]crm.FollowUpTask), args.Error(1)
}

func (m *MockFollowUpRepository) FindSnapshot(ctx context.Context) ([]crm.FollowUpTask, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.FollowUpTask), args.Error(1)
}

func (m *MockFollowUpRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]crm.FollowUpTask, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]crm.FollowUpTask), args.Error(1)
}

func (m *MockFollowUpRepository) FindPendingDueBefore(ctx context.Context, due time.Time) ([]crm.FollowUpTask, error) {
	args := m.Called(ctx, due)
	return args.Get(0).([]crm.FollowUpTask), args.Error(1)
}

func (m *MockFollowUpRepository) Save(ctx context.Context, task *crm.FollowUpTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockFollowUpRepository) SaveBatch(ctx context.Context, tasks []*crm.FollowUpTask) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

func (m *MockFollowUpRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockStatsCache is a mock implementation of StatsCache
type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) Get(ctx context.Context) (*crm.MarketingStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.MarketingStats), args.Error(1)
}

func (m *MockStatsCache) Set(ctx context.Context, stats *crm.MarketingStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockStatsCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockResyncer is a mock implementation of Resyncer
type MockResyncer struct {
	mock.Mock
}

func (m *MockResyncer) Resync(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
