package crm

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Synchronize derives the customer set from a full booking snapshot.
// It is a pure computation over its inputs: bookings are grouped by
// phone, each group is folded into the matching existing customer or a
// fresh profile, and customers without any matching booking are
// carried through untouched. Manually managed customer fields (grade,
// tags, memos) are never modified here.
//
// The returned slice is ordered deterministically: existing customers
// in their given order, then new profiles in the order their phone
// first appears in the booking snapshot.
func Synchronize(bookings []Booking, existing []Customer) ([]Customer, error) {
	groups := make(map[string][]Booking)
	phoneOrder := make([]string, 0)
	for _, b := range bookings {
		if _, ok := groups[b.Phone]; !ok {
			phoneOrder = append(phoneOrder, b.Phone)
		}
		groups[b.Phone] = append(groups[b.Phone], b)
	}

	result := make([]Customer, 0, len(existing))
	seen := make(map[string]bool, len(existing))

	for _, c := range existing {
		if group, ok := groups[c.Phone]; ok {
			foldBookings(&c, group)
		}
		result = append(result, c)
		seen[c.Phone] = true
	}

	for _, phone := range phoneOrder {
		if seen[phone] {
			continue
		}
		group := sortedByCreation(groups[phone])
		latest := group[len(group)-1]

		customer, err := NewCustomer(latest.Name, phone, group[0].CreatedAt)
		if err != nil {
			return nil, err
		}
		foldBookings(customer, group)
		result = append(result, *customer)
	}

	return result, nil
}

// foldBookings applies a phone group onto a customer: all booking IDs,
// the latest-created booking's name, and visit statistics derived from
// the completed set.
func foldBookings(c *Customer, group []Booking) {
	sorted := sortedByCreation(group)

	ids := make([]uuid.UUID, 0, len(sorted))
	visits := 0
	var lastVisit *Booking
	for i := range sorted {
		b := &sorted[i]
		ids = append(ids, b.ID)
		if !b.CountsAsVisit() {
			continue
		}
		visits++
		if lastVisit == nil || laterVisit(b, lastVisit) {
			lastVisit = b
		}
	}

	var lastVisitDate *time.Time
	if lastVisit != nil {
		d := lastVisit.Date
		lastVisitDate = &d
	}

	c.ApplyBookingSnapshot(sorted[len(sorted)-1].Name, ids, visits, lastVisitDate)
}

// laterVisit orders completed bookings by visit date, breaking ties on
// the booking ID so repeated runs pick the same booking.
func laterVisit(a, b *Booking) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return a.ID.String() > b.ID.String()
}

// sortedByCreation returns the group ordered by creation time, then by
// ID for bookings created at the same instant.
func sortedByCreation(group []Booking) []Booking {
	sorted := make([]Booking, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})
	return sorted
}
