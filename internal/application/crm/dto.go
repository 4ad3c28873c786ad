package crm

import (
	"time"

	"github.com/clinic/backend/internal/domain/crm"
	"github.com/google/uuid"
)

// =============================================================================
// Booking DTOs
// =============================================================================

// CreateBookingRequest represents a request to create a new booking
type CreateBookingRequest struct {
	Name     string    `json:"name" binding:"required,min=1,max=100"`
	Phone    string    `json:"phone" binding:"required,phone,max=50"`
	Date     time.Time `json:"date" binding:"required"`
	Stage    string    `json:"stage" binding:"omitempty,stage"`
	Source   string    `json:"source" binding:"max=100"`
	Medium   string    `json:"medium" binding:"max=100"`
	Campaign string    `json:"campaign" binding:"max=100"`
}

// UpdateBookingStatusRequest represents a request to change a booking's status
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}

// AdvanceStageRequest represents a request to move a booking to a new journey stage
type AdvanceStageRequest struct {
	Stage string `json:"stage" binding:"required,stage"`
	Note  string `json:"note" binding:"max=500"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Phone     string             `json:"phone"`
	Status    string             `json:"status"`
	Date      time.Time          `json:"date"`
	Source    string             `json:"source"`
	Medium    string             `json:"medium"`
	Campaign  string             `json:"campaign"`
	Stage     string             `json:"stage"`
	History   []crm.JourneyEvent `json:"history"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	Version   int                `json:"version"`
}

// BookingListFilter represents filter options for booking list
type BookingListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	Stage    string `form:"stage" binding:"omitempty,stage"`
	Source   string `form:"source"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToBookingResponse converts a domain booking to a response DTO
func ToBookingResponse(booking *crm.Booking) BookingResponse {
	return BookingResponse{
		ID:        booking.ID,
		Name:      booking.Name,
		Phone:     booking.Phone,
		Status:    string(booking.Status),
		Date:      booking.Date,
		Source:    booking.Source,
		Medium:    booking.Medium,
		Campaign:  booking.Campaign,
		Stage:     string(booking.Stage),
		History:   booking.History,
		CreatedAt: booking.CreatedAt,
		UpdatedAt: booking.UpdatedAt,
		Version:   booking.Version,
	}
}

// ToBookingResponses converts a slice of domain bookings to response DTOs
func ToBookingResponses(bookings []crm.Booking) []BookingResponse {
	responses := make([]BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = ToBookingResponse(&bookings[i])
	}
	return responses
}

// =============================================================================
// Customer DTOs
// =============================================================================

// UpdateGradeRequest represents a request to change a customer's grade
type UpdateGradeRequest struct {
	Grade string `json:"grade" binding:"required,oneof=vip gold silver normal new"`
}

// AddTagRequest represents a request to add a tag to a customer
type AddTagRequest struct {
	Tag string `json:"tag" binding:"required,min=1,max=50"`
}

// AddMemoRequest represents a request to add a memo to a customer
type AddMemoRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
	Type    string `json:"type" binding:"max=50"`
}

// MemoResponse represents a customer memo in API responses
type MemoResponse struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Phone         string         `json:"phone"`
	Grade         string         `json:"grade"`
	Tags          []string       `json:"tags"`
	Memos         []MemoResponse `json:"memos"`
	BookingIDs    []uuid.UUID    `json:"booking_ids"`
	TotalVisits   int            `json:"total_visits"`
	LastVisitDate *time.Time     `json:"last_visit_date"`
	RegisteredAt  time.Time      `json:"registered_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	Version       int            `json:"version"`
}

// CustomerListFilter represents filter options for customer list
type CustomerListFilter struct {
	Search   string `form:"search"`
	Grade    string `form:"grade" binding:"omitempty,oneof=vip gold silver normal new"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToCustomerResponse converts a domain customer to a response DTO
func ToCustomerResponse(customer *crm.Customer) CustomerResponse {
	memos := make([]MemoResponse, len(customer.Memos))
	for i, m := range customer.Memos {
		memos[i] = MemoResponse{
			ID:        m.ID,
			Content:   m.Content,
			Type:      m.Type,
			CreatedAt: m.CreatedAt,
		}
	}

	return CustomerResponse{
		ID:            customer.ID,
		Name:          customer.Name,
		Phone:         customer.Phone,
		Grade:         string(customer.Grade),
		Tags:          customer.Tags,
		Memos:         memos,
		BookingIDs:    customer.BookingIDs,
		TotalVisits:   customer.TotalVisits,
		LastVisitDate: customer.LastVisitDate,
		RegisteredAt:  customer.RegisteredAt,
		CreatedAt:     customer.CreatedAt,
		UpdatedAt:     customer.UpdatedAt,
		Version:       customer.Version,
	}
}

// ToCustomerResponses converts a slice of domain customers to response DTOs
func ToCustomerResponses(customers []crm.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}

// =============================================================================
// Follow-up DTOs
// =============================================================================

// ResolveFollowUpRequest represents a request to complete or skip a follow-up task
type ResolveFollowUpRequest struct {
	Note string `json:"note" binding:"max=500"`
}

// UpdateFollowUpStatusRequest represents a request to resolve a pending
// follow-up task to a terminal status
type UpdateFollowUpStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=completed skipped"`
	Note   string `json:"note" binding:"max=500"`
}

// FollowUpResponse represents a follow-up task in API responses
type FollowUpResponse struct {
	ID           uuid.UUID  `json:"id"`
	BookingID    uuid.UUID  `json:"booking_id"`
	CustomerID   uuid.UUID  `json:"customer_id"`
	CustomerName string     `json:"customer_name"`
	Phone        string     `json:"phone"`
	Type         string     `json:"type"`
	Reason       string     `json:"reason"`
	DueDate      time.Time  `json:"due_date"`
	Status       string     `json:"status"`
	Note         string     `json:"note"`
	ResolvedAt   *time.Time `json:"resolved_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

// FollowUpListFilter represents filter options for follow-up task list
type FollowUpListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending completed skipped"`
	Type     string `form:"type" binding:"omitempty,oneof=call sms kakao"`
	Phone    string `form:"phone"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFollowUpResponse converts a domain follow-up task to a response DTO
func ToFollowUpResponse(task *crm.FollowUpTask) FollowUpResponse {
	return FollowUpResponse{
		ID:           task.ID,
		BookingID:    task.BookingID,
		CustomerID:   task.CustomerID,
		CustomerName: task.CustomerName,
		Phone:        task.Phone,
		Type:         string(task.Type),
		Reason:       task.Reason,
		DueDate:      task.DueDate,
		Status:       string(task.Status),
		Note:         task.Note,
		ResolvedAt:   task.ResolvedAt,
		CreatedAt:    task.CreatedAt,
	}
}

// ToFollowUpResponses converts a slice of domain tasks to response DTOs
func ToFollowUpResponses(tasks []crm.FollowUpTask) []FollowUpResponse {
	responses := make([]FollowUpResponse, len(tasks))
	for i := range tasks {
		responses[i] = ToFollowUpResponse(&tasks[i])
	}
	return responses
}

// =============================================================================
// Marketing DTOs
// =============================================================================

// MarketingStatsResponse represents marketing statistics in API responses
type MarketingStatsResponse struct {
	TotalLeads     int                          `json:"total_leads"`
	ConvertedLeads int                          `json:"converted_leads"`
	ConversionRate int                          `json:"conversion_rate"`
	SourceCounts   map[string]int               `json:"source_counts"`
	TopSource      string                       `json:"top_source"`
	Campaigns      map[string]crm.CampaignStats `json:"campaigns"`
	Funnel         []crm.FunnelStage            `json:"funnel"`
}

// ToMarketingStatsResponse converts domain marketing stats to a response DTO
func ToMarketingStatsResponse(stats *crm.MarketingStats) MarketingStatsResponse {
	return MarketingStatsResponse{
		TotalLeads:     stats.TotalLeads,
		ConvertedLeads: stats.ConvertedLeads,
		ConversionRate: stats.ConversionRate,
		SourceCounts:   stats.SourceCounts,
		TopSource:      stats.TopSource,
		Campaigns:      stats.Campaigns,
		Funnel:         stats.Funnel,
	}
}
