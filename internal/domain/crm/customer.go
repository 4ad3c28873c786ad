package crm

import (
	"time"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerGrade represents the customer's tier/grade. It is set
// manually by staff; synchronization only assigns the initial "new"
// grade at creation and never changes it afterwards.
type CustomerGrade string

const (
	GradeVIP    CustomerGrade = "vip"
	GradeGold   CustomerGrade = "gold"
	GradeSilver CustomerGrade = "silver"
	GradeNormal CustomerGrade = "normal"
	GradeNew    CustomerGrade = "new"
)

// Memo is a staff note attached to a customer. Memos are ordered
// most-recent-first and are never touched by synchronization.
type Memo struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Customer is the durable CRM profile derived from one or more
// bookings. It is the aggregate root for customer-related operations.
// Phone is the sole identity key for merging bookings into a profile;
// the ID is assigned once and never reused.
type Customer struct {
	shared.BaseAggregateRoot
	Name          string
	Phone         string
	Grade         CustomerGrade
	Tags          []string
	Memos         []Memo
	BookingIDs    []uuid.UUID
	TotalVisits   int
	LastVisitDate *time.Time
	RegisteredAt  time.Time
}

// NewCustomer creates a new customer profile for a phone number.
// registeredAt is the creation timestamp of the earliest booking ever
// seen for the phone and is immutable once set.
func NewCustomer(name, phone string, registeredAt time.Time) (*Customer, error) {
	if err := validateBookingName(name); err != nil {
		return nil, err
	}
	if err := validateBookingPhone(phone); err != nil {
		return nil, err
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		Grade:             GradeNew,
		Tags:              []string{},
		Memos:             []Memo{},
		BookingIDs:        []uuid.UUID{},
		RegisteredAt:      registeredAt,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// SetGrade sets the customer's grade. Grades only change through staff
// action, never through synchronization.
func (c *Customer) SetGrade(grade CustomerGrade) error {
	if err := validateCustomerGrade(grade); err != nil {
		return err
	}

	oldGrade := c.Grade
	c.Grade = grade
	c.UpdatedAt = time.Now()

	c.AddDomainEvent(NewCustomerGradeChangedEvent(c, oldGrade, grade))

	return nil
}

// AddTag adds a tag to the customer. Tags behave as a set.
func (c *Customer) AddTag(tag string) error {
	if tag == "" {
		return shared.NewDomainError("INVALID_TAG", "Tag cannot be empty")
	}
	if len(tag) > 50 {
		return shared.NewDomainError("INVALID_TAG", "Tag cannot exceed 50 characters")
	}
	for _, t := range c.Tags {
		if t == tag {
			return shared.NewDomainError("ALREADY_EXISTS", "Customer already has this tag")
		}
	}

	c.Tags = append(c.Tags, tag)
	c.UpdatedAt = time.Now()

	return nil
}

// RemoveTag removes a tag from the customer.
func (c *Customer) RemoveTag(tag string) error {
	for i, t := range c.Tags {
		if t == tag {
			c.Tags = append(c.Tags[:i], c.Tags[i+1:]...)
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "Customer does not have this tag")
}

// AddMemo prepends a staff memo, keeping memos most-recent-first.
func (c *Customer) AddMemo(content, memoType string) (*Memo, error) {
	if content == "" {
		return nil, shared.NewDomainError("INVALID_MEMO", "Memo content cannot be empty")
	}

	memo := Memo{
		ID:        uuid.New(),
		Content:   content,
		Type:      memoType,
		CreatedAt: time.Now(),
	}
	c.Memos = append([]Memo{memo}, c.Memos...)
	c.UpdatedAt = time.Now()

	return &memo, nil
}

// DeleteMemo removes a memo by ID.
func (c *Customer) DeleteMemo(memoID uuid.UUID) error {
	for i, m := range c.Memos {
		if m.ID == memoID {
			c.Memos = append(c.Memos[:i], c.Memos[i+1:]...)
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "Memo not found")
}

// ApplyBookingSnapshot updates the fields owned by synchronization:
// last-known name, matched booking IDs, visit count and last visit
// date. Grade, tags, memos, ID and registration time are never touched
// here.
func (c *Customer) ApplyBookingSnapshot(name string, bookingIDs []uuid.UUID, totalVisits int, lastVisitDate *time.Time) {
	c.Name = name
	c.BookingIDs = bookingIDs
	c.TotalVisits = totalVisits
	c.LastVisitDate = lastVisitDate
	c.UpdatedAt = time.Now()
}

// HasBooking reports whether the booking ID is already matched to this
// customer.
func (c *Customer) HasBooking(bookingID uuid.UUID) bool {
	for _, id := range c.BookingIDs {
		if id == bookingID {
			return true
		}
	}
	return false
}

func validateCustomerGrade(grade CustomerGrade) error {
	switch grade {
	case GradeVIP, GradeGold, GradeSilver, GradeNormal, GradeNew:
		return nil
	default:
		return shared.NewDomainError("INVALID_GRADE", "Invalid customer grade")
	}
}
