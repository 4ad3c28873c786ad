package crm

import (
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeCustomer = "Customer"

// Event type constants
const (
	EventTypeCustomerCreated      = "CustomerCreated"
	EventTypeCustomerGradeChanged = "CustomerGradeChanged"
)

// CustomerCreatedEvent is published when a new customer profile is derived
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Phone      string    `json:"phone"`
	Name       string    `json:"name"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(customer *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Phone:           customer.Phone,
		Name:            customer.Name,
	}
}

// CustomerGradeChangedEvent is published when a customer's grade changes
type CustomerGradeChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID     `json:"customer_id"`
	OldGrade   CustomerGrade `json:"old_grade"`
	NewGrade   CustomerGrade `json:"new_grade"`
}

// NewCustomerGradeChangedEvent creates a new CustomerGradeChangedEvent
func NewCustomerGradeChangedEvent(customer *Customer, oldGrade, newGrade CustomerGrade) *CustomerGradeChangedEvent {
	return &CustomerGradeChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerGradeChanged, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		OldGrade:        oldGrade,
		NewGrade:        newGrade,
	}
}
