package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/clinic/backend/internal/domain/crm"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/clinic/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFollowUpRepository implements FollowUpRepository using GORM
type GormFollowUpRepository struct {
	db *gorm.DB
}

// NewGormFollowUpRepository creates a new GormFollowUpRepository
func NewGormFollowUpRepository(db *gorm.DB) *GormFollowUpRepository {
	return &GormFollowUpRepository{db: db}
}

// FindByID finds a follow-up task by its ID
func (r *GormFollowUpRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.FollowUpTask, error) {
	var model models.FollowUpTaskModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all tasks matching the filter
func (r *GormFollowUpRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.FollowUpTask, error) {
	var taskModels []models.FollowUpTaskModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.FollowUpTaskModel{}), filter)

	if err := query.Find(&taskModels).Error; err != nil {
		return nil, err
	}

	return toFollowUpTasks(taskModels), nil
}

// FindSnapshot returns the full task set ordered by creation time
func (r *GormFollowUpRepository) FindSnapshot(ctx context.Context) ([]crm.FollowUpTask, error) {
	var taskModels []models.FollowUpTaskModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&taskModels).Error; err != nil {
		return nil, err
	}

	return toFollowUpTasks(taskModels), nil
}

// FindByBookingID finds all tasks for a booking
func (r *GormFollowUpRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]crm.FollowUpTask, error) {
	var taskModels []models.FollowUpTaskModel
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC, id ASC").
		Find(&taskModels).Error; err != nil {
		return nil, err
	}

	return toFollowUpTasks(taskModels), nil
}

// FindPendingDueBefore finds pending tasks due at or before the given instant
func (r *GormFollowUpRepository) FindPendingDueBefore(ctx context.Context, due time.Time) ([]crm.FollowUpTask, error) {
	var taskModels []models.FollowUpTaskModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND due_date <= ?", crm.FollowUpPending, due).
		Order("due_date ASC, id ASC").
		Find(&taskModels).Error; err != nil {
		return nil, err
	}

	return toFollowUpTasks(taskModels), nil
}

// Save creates or updates a task
func (r *GormFollowUpRepository) Save(ctx context.Context, task *crm.FollowUpTask) error {
	model := models.FollowUpTaskModelFromDomain(task)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveBatch creates or updates multiple tasks
func (r *GormFollowUpRepository) SaveBatch(ctx context.Context, tasks []*crm.FollowUpTask) error {
	if len(tasks) == 0 {
		return nil
	}

	taskModels := make([]*models.FollowUpTaskModel, len(tasks))
	for i, task := range tasks {
		taskModels[i] = models.FollowUpTaskModelFromDomain(task)
	}

	return r.db.WithContext(ctx).Save(taskModels).Error
}

// Count counts tasks matching the filter
func (r *GormFollowUpRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.FollowUpTaskModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormFollowUpRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("due_date ASC")
	}

	return query
}

func (r *GormFollowUpRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("customer_name LIKE ? OR phone LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "phone":
			query = query.Where("phone = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		}
	}

	return query
}

func toFollowUpTasks(taskModels []models.FollowUpTaskModel) []crm.FollowUpTask {
	tasks := make([]crm.FollowUpTask, len(taskModels))
	for i := range taskModels {
		tasks[i] = *taskModels[i].ToDomain()
	}
	return tasks
}

// Ensure GormFollowUpRepository implements FollowUpRepository
var _ crm.FollowUpRepository = (*GormFollowUpRepository)(nil)
