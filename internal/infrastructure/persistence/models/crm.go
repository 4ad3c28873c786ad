package models

import (
	"encoding/json"
	"time"

	"github.com/clinic/backend/internal/domain/crm"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BookingModel is the persistence model for the Booking domain entity.
// The journey history is stored as a JSON document; a record whose
// history cannot be decoded surfaces as a storage corruption error
// rather than a silent empty history.
type BookingModel struct {
	AggregateModel
	Name     string            `gorm:"type:varchar(100);not null"`
	Phone    string            `gorm:"type:varchar(50);not null;index"`
	Status   crm.BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Date     time.Time         `gorm:"not null;index"`
	Source   string            `gorm:"type:varchar(100);index"`
	Medium   string            `gorm:"type:varchar(100)"`
	Campaign string            `gorm:"type:varchar(100)"`
	Stage    crm.JourneyStage  `gorm:"type:varchar(30);not null;index"`
	History  string            `gorm:"type:jsonb;not null;default:'[]'"`
}

// TableName returns the table name for GORM
func (BookingModel) TableName() string {
	return "bookings"
}

// ToDomain converts the persistence model to a domain Booking entity.
func (m *BookingModel) ToDomain() (*crm.Booking, error) {
	var history []crm.JourneyEvent
	if err := json.Unmarshal([]byte(m.History), &history); err != nil {
		return nil, shared.NewDomainError("STORAGE_CORRUPTION", "Booking journey history could not be decoded")
	}

	booking := &crm.Booking{
		Name:     m.Name,
		Phone:    m.Phone,
		Status:   m.Status,
		Date:     m.Date,
		Source:   m.Source,
		Medium:   m.Medium,
		Campaign: m.Campaign,
		Stage:    m.Stage,
		History:  history,
	}
	m.PopulateAggregateRoot(&booking.BaseAggregateRoot)
	return booking, nil
}

// FromDomain populates the persistence model from a domain Booking entity.
func (m *BookingModel) FromDomain(b *crm.Booking) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.Name = b.Name
	m.Phone = b.Phone
	m.Status = b.Status
	m.Date = b.Date
	m.Source = b.Source
	m.Medium = b.Medium
	m.Campaign = b.Campaign
	m.Stage = b.Stage
	history, _ := json.Marshal(b.History)
	m.History = string(history)
}

// BookingModelFromDomain creates a new persistence model from a domain Booking entity.
func BookingModelFromDomain(b *crm.Booking) *BookingModel {
	m := &BookingModel{}
	m.FromDomain(b)
	return m
}

// CustomerModel is the persistence model for the Customer domain entity.
// Tags, memos and linked booking IDs are stored as JSON documents.
type CustomerModel struct {
	AggregateModel
	Name          string            `gorm:"type:varchar(100);not null"`
	Phone         string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	Grade         crm.CustomerGrade `gorm:"type:varchar(20);not null;default:'new';index"`
	Tags          string            `gorm:"type:jsonb;not null;default:'[]'"`
	Memos         string            `gorm:"type:jsonb;not null;default:'[]'"`
	BookingIDs    string            `gorm:"type:jsonb;not null;default:'[]'"`
	TotalVisits   int               `gorm:"not null;default:0"`
	LastVisitDate *time.Time        `gorm:""`
	RegisteredAt  time.Time         `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() (*crm.Customer, error) {
	var tags []string
	if err := json.Unmarshal([]byte(m.Tags), &tags); err != nil {
		return nil, shared.NewDomainError("STORAGE_CORRUPTION", "Customer tags could not be decoded")
	}
	var memos []crm.Memo
	if err := json.Unmarshal([]byte(m.Memos), &memos); err != nil {
		return nil, shared.NewDomainError("STORAGE_CORRUPTION", "Customer memos could not be decoded")
	}
	var bookingIDs []uuid.UUID
	if err := json.Unmarshal([]byte(m.BookingIDs), &bookingIDs); err != nil {
		return nil, shared.NewDomainError("STORAGE_CORRUPTION", "Customer booking links could not be decoded")
	}

	customer := &crm.Customer{
		Name:          m.Name,
		Phone:         m.Phone,
		Grade:         m.Grade,
		Tags:          tags,
		Memos:         memos,
		BookingIDs:    bookingIDs,
		TotalVisits:   m.TotalVisits,
		LastVisitDate: m.LastVisitDate,
		RegisteredAt:  m.RegisteredAt,
	}
	m.PopulateAggregateRoot(&customer.BaseAggregateRoot)
	return customer, nil
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *crm.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Phone = c.Phone
	m.Grade = c.Grade
	tags, _ := json.Marshal(c.Tags)
	m.Tags = string(tags)
	memos, _ := json.Marshal(c.Memos)
	m.Memos = string(memos)
	bookingIDs, _ := json.Marshal(c.BookingIDs)
	m.BookingIDs = string(bookingIDs)
	m.TotalVisits = c.TotalVisits
	m.LastVisitDate = c.LastVisitDate
	m.RegisteredAt = c.RegisteredAt
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *crm.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// FollowUpTaskModel is the persistence model for the FollowUpTask domain entity.
type FollowUpTaskModel struct {
	AggregateModel
	BookingID    uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_followup_booking_reason,priority:1"`
	CustomerID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	CustomerName string             `gorm:"type:varchar(100);not null"`
	Phone        string             `gorm:"type:varchar(50);not null;index"`
	Type         crm.FollowUpType   `gorm:"type:varchar(20);not null"`
	Reason       string             `gorm:"type:varchar(200);not null;uniqueIndex:idx_followup_booking_reason,priority:2"`
	DueDate      time.Time          `gorm:"not null;index"`
	Status       crm.FollowUpStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Note         string             `gorm:"type:text"`
	ResolvedAt   *time.Time         `gorm:""`
}

// TableName returns the table name for GORM
func (FollowUpTaskModel) TableName() string {
	return "follow_up_tasks"
}

// ToDomain converts the persistence model to a domain FollowUpTask entity.
func (m *FollowUpTaskModel) ToDomain() *crm.FollowUpTask {
	task := &crm.FollowUpTask{
		BookingID:    m.BookingID,
		CustomerID:   m.CustomerID,
		CustomerName: m.CustomerName,
		Phone:        m.Phone,
		Type:         m.Type,
		Reason:       m.Reason,
		DueDate:      m.DueDate,
		Status:       m.Status,
		Note:         m.Note,
		ResolvedAt:   m.ResolvedAt,
	}
	m.PopulateAggregateRoot(&task.BaseAggregateRoot)
	return task
}

// FromDomain populates the persistence model from a domain FollowUpTask entity.
func (m *FollowUpTaskModel) FromDomain(t *crm.FollowUpTask) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.BookingID = t.BookingID
	m.CustomerID = t.CustomerID
	m.CustomerName = t.CustomerName
	m.Phone = t.Phone
	m.Type = t.Type
	m.Reason = t.Reason
	m.DueDate = t.DueDate
	m.Status = t.Status
	m.Note = t.Note
	m.ResolvedAt = t.ResolvedAt
}

// FollowUpTaskModelFromDomain creates a new persistence model from a domain FollowUpTask entity.
func FollowUpTaskModelFromDomain(t *crm.FollowUpTask) *FollowUpTaskModel {
	m := &FollowUpTaskModel{}
	m.FromDomain(t)
	return m
}
