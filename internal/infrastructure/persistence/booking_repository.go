package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/clinic/backend/internal/domain/crm"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/clinic/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBookingRepository implements BookingRepository using GORM
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID finds a booking by its ID
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Booking, error) {
	var model models.BookingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll finds all bookings matching the filter
func (r *GormBookingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Booking, error) {
	var bookingModels []models.BookingModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BookingModel{}), filter)

	if err := query.Find(&bookingModels).Error; err != nil {
		return nil, err
	}

	return toBookings(bookingModels)
}

// FindSnapshot returns the full booking set ordered by creation time
func (r *GormBookingRepository) FindSnapshot(ctx context.Context) ([]crm.Booking, error) {
	var bookingModels []models.BookingModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&bookingModels).Error; err != nil {
		return nil, err
	}

	return toBookings(bookingModels)
}

// FindByPhone finds all bookings for a phone number
func (r *GormBookingRepository) FindByPhone(ctx context.Context, phone string) ([]crm.Booking, error) {
	var bookingModels []models.BookingModel
	if err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Order("created_at ASC, id ASC").
		Find(&bookingModels).Error; err != nil {
		return nil, err
	}

	return toBookings(bookingModels)
}

// Save creates or updates a booking
func (r *GormBookingRepository) Save(ctx context.Context, booking *crm.Booking) error {
	model := models.BookingModelFromDomain(booking)
	return r.db.WithContext(ctx).Save(model).Error
}

// Count counts bookings matching the filter
func (r *GormBookingRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.BookingModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormBookingRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("date DESC, created_at DESC")
	}

	return query
}

func (r *GormBookingRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "stage":
			query = query.Where("stage = ?", value)
		case "source":
			query = query.Where("source = ?", value)
		}
	}

	return query
}

func toBookings(bookingModels []models.BookingModel) ([]crm.Booking, error) {
	bookings := make([]crm.Booking, len(bookingModels))
	for i := range bookingModels {
		booking, err := bookingModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		bookings[i] = *booking
	}
	return bookings, nil
}

// Ensure GormBookingRepository implements BookingRepository
var _ crm.BookingRepository = (*GormBookingRepository)(nil)
