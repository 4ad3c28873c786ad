package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	crmapp "github.com/clinic/backend/internal/application/crm"
	"github.com/clinic/backend/internal/domain/crm"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/clinic/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBookingRepository implements crm.BookingRepository for testing
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

// MockResyncer implements crmapp.Resyncer for testing
type MockResyncer struct {
	mock.Mock
}

func (m *MockResyncer) Resync(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func setupBookingRouter(t *testing.T, repo *MockBookingRepository, resyncer *MockResyncer) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	h := NewBookingHandler(crmapp.NewBookingService(repo, resyncer))

	engine := gin.New()
	engine.POST("/bookings", h.Create)
	engine.GET("/bookings", h.List)
	engine.GET("/bookings/:id", h.GetByID)
	engine.PUT("/bookings/:id/status", h.UpdateStatus)
	engine.PUT("/bookings/:id/stage", h.AdvanceStage)
	return engine
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total    int64 `json:"total"`
		Page     int   `json:"page"`
		PageSize int   `json:"page_size"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestBookingHandler_Create(t *testing.T) {
	t.Run("creates booking and resyncs", func(t *testing.T) {
		repo := new(MockBookingRepository)
		resyncer := new(MockResyncer)
		engine := setupBookingRouter(t, repo, resyncer)

		repo.On("Save", mock.Anything, mock.Anything).Return(nil)
		resyncer.On("Resync", mock.Anything).Return(nil)

		body, _ := json.Marshal(gin.H{
			"name":   "김민지",
			"phone":  "010-1234-5678",
			"date":   time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC),
			"source": "instagram",
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Success)

		var booking crmapp.BookingResponse
		require.NoError(t, json.Unmarshal(env.Data, &booking))
		assert.Equal(t, "김민지", booking.Name)
		assert.Equal(t, "inquiry", booking.Stage)
		assert.Equal(t, "instagram", booking.Source)

		repo.AssertExpectations(t)
		resyncer.AssertExpectations(t)
	})

	t.Run("rejects invalid phone", func(t *testing.T) {
		repo := new(MockBookingRepository)
		resyncer := new(MockResyncer)
		engine := setupBookingRouter(t, repo, resyncer)

		body, _ := json.Marshal(gin.H{
			"name":  "김민지",
			"phone": "not-a-phone!",
			"date":  time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC),
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.False(t, env.Success)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestBookingHandler_GetByID(t *testing.T) {
	t.Run("returns 404 for missing booking", func(t *testing.T) {
		repo := new(MockBookingRepository)
		resyncer := new(MockResyncer)
		engine := setupBookingRouter(t, repo, resyncer)

		bookingID := uuid.New()
		repo.On("FindByID", mock.Anything, bookingID).Return(nil, shared.ErrNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/bookings/"+bookingID.String(), nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w)
		assert.False(t, env.Success)
		require.NotNil(t, env.Error)
		assert.Equal(t, "ERR_NOT_FOUND", env.Error.Code)
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		repo := new(MockBookingRepository)
		resyncer := new(MockResyncer)
		engine := setupBookingRouter(t, repo, resyncer)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/bookings/not-a-uuid", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBookingHandler_UpdateStatus(t *testing.T) {
	t.Run("maps terminal state violation to 422", func(t *testing.T) {
		repo := new(MockBookingRepository)
		resyncer := new(MockResyncer)
		engine := setupBookingRouter(t, repo, resyncer)

		booking, err := crm.NewBooking("김민지", "010-1234-5678", time.Now(), crm.StageInquiry)
		require.NoError(t, err)
		require.NoError(t, booking.UpdateStatus(crm.BookingStatusCancelled))

		repo.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

		body, _ := json.Marshal(gin.H{"status": "confirmed"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/bookings/"+booking.ID.String()+"/status", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		env := decodeEnvelope(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, "ERR_INVALID_STATE", env.Error.Code)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestBookingHandler_List(t *testing.T) {
	t.Run("returns paginated bookings with meta", func(t *testing.T) {
		repo := new(MockBookingRepository)
		resyncer := new(MockResyncer)
		engine := setupBookingRouter(t, repo, resyncer)

		booking, err := crm.NewBooking("김민지", "010-1234-5678", time.Now(), crm.StageInquiry)
		require.NoError(t, err)

		repo.On("FindAll", mock.Anything, mock.Anything).Return([]crm.Booking{*booking}, nil)
		repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/bookings?page=1&page_size=20", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Success)
		require.NotNil(t, env.Meta)
		assert.Equal(t, int64(1), env.Meta.Total)
		assert.Equal(t, 1, env.Meta.Page)
	})
}
