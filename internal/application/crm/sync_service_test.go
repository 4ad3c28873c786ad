package crm

import (
	"context"
	"testing"
	"time"

	"github.com/clinic/backend/internal/domain/crm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSyncService_Resync_CreatesCustomerAndTask(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCustomers := new(MockCustomerRepository)
	mockTasks := new(MockFollowUpRepository)
	mockCache := new(MockStatsCache)
	service := NewSyncService(mockBookings, mockCustomers, mockTasks, mockCache, zap.NewNop())

	ctx := context.Background()
	booking, err := crm.NewBooking("김민지", "010-1234-5678", time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC), crm.StageProcedureDone)
	require.NoError(t, err)

	mockBookings.On("FindSnapshot", ctx).Return([]crm.Booking{*booking}, nil)
	mockCustomers.On("FindSnapshot", ctx).Return([]crm.Customer{}, nil)
	mockTasks.On("FindSnapshot", ctx).Return([]crm.FollowUpTask{}, nil)
	mockCustomers.On("SaveBatch", ctx, mock.MatchedBy(func(customers []*crm.Customer) bool {
		return len(customers) == 1 && customers[0].Phone == "010-1234-5678"
	})).Return(nil)
	mockTasks.On("SaveBatch", ctx, mock.MatchedBy(func(tasks []*crm.FollowUpTask) bool {
		return len(tasks) == 1 && tasks[0].Reason == "시술 후 경과 확인"
	})).Return(nil)
	mockCache.On("Invalidate", ctx).Return(nil)

	err = service.Resync(ctx)

	assert.NoError(t, err)
	mockBookings.AssertExpectations(t)
	mockCustomers.AssertExpectations(t)
	mockTasks.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestSyncService_Resync_NoNewTasks(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCustomers := new(MockCustomerRepository)
	mockTasks := new(MockFollowUpRepository)
	mockCache := new(MockStatsCache)
	service := NewSyncService(mockBookings, mockCustomers, mockTasks, mockCache, zap.NewNop())

	ctx := context.Background()
	booking, err := crm.NewBooking("김민지", "010-1234-5678", time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC), crm.StageInquiry)
	require.NoError(t, err)

	mockBookings.On("FindSnapshot", ctx).Return([]crm.Booking{*booking}, nil)
	mockCustomers.On("FindSnapshot", ctx).Return([]crm.Customer{}, nil)
	mockTasks.On("FindSnapshot", ctx).Return([]crm.FollowUpTask{}, nil)
	mockCustomers.On("SaveBatch", ctx, mock.Anything).Return(nil)
	mockCache.On("Invalidate", ctx).Return(nil)

	err = service.Resync(ctx)

	assert.NoError(t, err)
	mockTasks.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
}

func TestSyncService_Resync_CacheFailureIsNotFatal(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCustomers := new(MockCustomerRepository)
	mockTasks := new(MockFollowUpRepository)
	mockCache := new(MockStatsCache)
	service := NewSyncService(mockBookings, mockCustomers, mockTasks, mockCache, zap.NewNop())

	ctx := context.Background()
	mockBookings.On("FindSnapshot", ctx).Return([]crm.Booking{}, nil)
	mockCustomers.On("FindSnapshot", ctx).Return([]crm.Customer{}, nil)
	mockTasks.On("FindSnapshot", ctx).Return([]crm.FollowUpTask{}, nil)
	mockCustomers.On("SaveBatch", ctx, mock.Anything).Return(nil)
	mockCache.On("Invalidate", ctx).Return(assert.AnError)

	err := service.Resync(ctx)

	assert.NoError(t, err)
	mockCache.AssertExpectations(t)
}

func TestSyncService_Resync_NilCache(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCustomers := new(MockCustomerRepository)
	mockTasks := new(MockFollowUpRepository)
	service := NewSyncService(mockBookings, mockCustomers, mockTasks, nil, zap.NewNop())

	ctx := context.Background()
	mockBookings.On("FindSnapshot", ctx).Return([]crm.Booking{}, nil)
	mockCustomers.On("FindSnapshot", ctx).Return([]crm.Customer{}, nil)
	mockTasks.On("FindSnapshot", ctx).Return([]crm.FollowUpTask{}, nil)
	mockCustomers.On("SaveBatch", ctx, mock.Anything).Return(nil)

	assert.NoError(t, service.Resync(ctx))
}

func TestSyncService_Resync_PreservesResolvedTasks(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockCustomers := new(MockCustomerRepository)
	mockTasks := new(MockFollowUpRepository)
	mockCache := new(MockStatsCache)
	service := NewSyncService(mockBookings, mockCustomers, mockTasks, mockCache, zap.NewNop())

	ctx := context.Background()
	booking, err := crm.NewBooking("김민지", "010-1234-5678", time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC), crm.StageProcedureDone)
	require.NoError(t, err)

	customers, err := crm.Synchronize([]crm.Booking{*booking}, nil)
	require.NoError(t, err)
	existing := crm.GenerateFollowUps([]crm.Booking{*booking}, customers, nil)
	require.Len(t, existing, 1)
	require.NoError(t, existing[0].Complete("통화 완료"))

	mockBookings.On("FindSnapshot", ctx).Return([]crm.Booking{*booking}, nil)
	mockCustomers.On("FindSnapshot", ctx).Return(customers, nil)
	mockTasks.On("FindSnapshot", ctx).Return(existing, nil)
	mockCustomers.On("SaveBatch", ctx, mock.Anything).Return(nil)
	mockCache.On("Invalidate", ctx).Return(nil)

	err = service.Resync(ctx)

	assert.NoError(t, err)
	mockTasks.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
}
