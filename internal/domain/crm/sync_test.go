package crm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBooking(t *testing.T, name, phone string, date time.Time, stage JourneyStage) *Booking {
	t.Helper()
	booking, err := NewBooking(name, phone, date, stage)
	require.NoError(t, err)
	return booking
}

func TestSynchronize(t *testing.T) {
	date := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	t.Run("creates new customer for unknown phone", func(t *testing.T) {
		booking := mustBooking(t, "김민지", "010-1111-2222", date, StageInquiry)

		customers, err := Synchronize([]Booking{*booking}, nil)

		require.NoError(t, err)
		require.Len(t, customers, 1)
		assert.Equal(t, "김민지", customers[0].Name)
		assert.Equal(t, "010-1111-2222", customers[0].Phone)
		assert.Equal(t, GradeNew, customers[0].Grade)
		assert.Equal(t, booking.CreatedAt, customers[0].RegisteredAt)
		assert.Equal(t, []string{}, customers[0].Tags)
		require.Len(t, customers[0].BookingIDs, 1)
		assert.Equal(t, booking.ID, customers[0].BookingIDs[0])
	})

	t.Run("merges bookings sharing a phone into one customer", func(t *testing.T) {
		first := mustBooking(t, "김민지", "010-1111-2222", date, StageInquiry)
		second := mustBooking(t, "김민지", "010-1111-2222", date.AddDate(0, 1, 0), StageConsultation)
		other := mustBooking(t, "박서연", "010-3333-4444", date, StageInquiry)

		customers, err := Synchronize([]Booking{*first, *second, *other}, nil)

		require.NoError(t, err)
		require.Len(t, customers, 2)
		assert.Len(t, customers[0].BookingIDs, 2)
		assert.Len(t, customers[1].BookingIDs, 1)
	})

	t.Run("is idempotent", func(t *testing.T) {
		b1 := mustBooking(t, "김민지", "010-1111-2222", date, StageProcedureDone)
		b2 := mustBooking(t, "박서연", "010-3333-4444", date, StageInquiry)
		bookings := []Booking{*b1, *b2}

		once, err := Synchronize(bookings, nil)
		require.NoError(t, err)
		twice, err := Synchronize(bookings, once)
		require.NoError(t, err)

		require.Len(t, twice, len(once))
		for i := range once {
			assert.Equal(t, once[i].ID, twice[i].ID)
			assert.Equal(t, once[i].Phone, twice[i].Phone)
			assert.Equal(t, once[i].Name, twice[i].Name)
			assert.Equal(t, once[i].Grade, twice[i].Grade)
			assert.Equal(t, once[i].BookingIDs, twice[i].BookingIDs)
			assert.Equal(t, once[i].TotalVisits, twice[i].TotalVisits)
			assert.Equal(t, once[i].LastVisitDate, twice[i].LastVisitDate)
			assert.Equal(t, once[i].RegisteredAt, twice[i].RegisteredAt)
		}
	})

	t.Run("output has no duplicate phones", func(t *testing.T) {
		b1 := mustBooking(t, "김민지", "010-1111-2222", date, StageInquiry)
		b2 := mustBooking(t, "김민지", "010-1111-2222", date, StageConsultation)
		existing, err := Synchronize([]Booking{*b1}, nil)
		require.NoError(t, err)

		customers, err := Synchronize([]Booking{*b1, *b2}, existing)

		require.NoError(t, err)
		phones := make(map[string]int)
		for _, c := range customers {
			phones[c.Phone]++
		}
		for phone, count := range phones {
			assert.Equal(t, 1, count, "phone %s appears %d times", phone, count)
		}
	})

	t.Run("preserves manual fields on resync", func(t *testing.T) {
		b1 := mustBooking(t, "김민지", "010-1111-2222", date, StageInquiry)
		existing, err := Synchronize([]Booking{*b1}, nil)
		require.NoError(t, err)
		require.NoError(t, existing[0].SetGrade(GradeVIP))
		require.NoError(t, existing[0].AddTag("A"))
		originalID := existing[0].ID
		originalRegistered := existing[0].RegisteredAt

		b2 := mustBooking(t, "김민지", "010-1111-2222", date.AddDate(0, 1, 0), StageConsultation)
		customers, err := Synchronize([]Booking{*b1, *b2}, existing)

		require.NoError(t, err)
		require.Len(t, customers, 1)
		assert.Equal(t, originalID, customers[0].ID)
		assert.Equal(t, GradeVIP, customers[0].Grade)
		assert.Equal(t, []string{"A"}, customers[0].Tags)
		assert.Equal(t, originalRegistered, customers[0].RegisteredAt)
		assert.Len(t, customers[0].BookingIDs, 2)
	})

	t.Run("preserves customers whose phone has no bookings", func(t *testing.T) {
		orphan, err := NewCustomer("이하늘", "010-9999-8888", date)
		require.NoError(t, err)
		require.NoError(t, orphan.SetGrade(GradeGold))
		booking := mustBooking(t, "김민지", "010-1111-2222", date, StageInquiry)

		customers, err := Synchronize([]Booking{*booking}, []Customer{*orphan})

		require.NoError(t, err)
		require.Len(t, customers, 2)
		assert.Equal(t, orphan.ID, customers[0].ID)
		assert.Equal(t, GradeGold, customers[0].Grade)
	})

	t.Run("takes name from latest booking", func(t *testing.T) {
		first := mustBooking(t, "김민지", "010-1111-2222", date, StageInquiry)
		second := mustBooking(t, "김민지(개명)", "010-1111-2222", date.AddDate(0, 1, 0), StageInquiry)
		second.CreatedAt = first.CreatedAt.Add(time.Hour)

		customers, err := Synchronize([]Booking{*second, *first}, nil)

		require.NoError(t, err)
		require.Len(t, customers, 1)
		assert.Equal(t, "김민지(개명)", customers[0].Name)
		assert.Equal(t, first.CreatedAt, customers[0].RegisteredAt)
	})

	t.Run("visit count from completed set", func(t *testing.T) {
		// Scenario: one completed visit, one cancelled booking on the
		// same phone. The cancelled one is excluded from visits but
		// still linked to the profile.
		visitDate := time.Date(2026, 2, 20, 11, 0, 0, 0, time.UTC)
		completed := mustBooking(t, "김민지", "010-1111-2222", visitDate, StageInquiry)
		require.NoError(t, completed.UpdateStatus(BookingStatusCompleted))
		cancelled := mustBooking(t, "김민지", "010-1111-2222", date, StageInquiry)
		require.NoError(t, cancelled.UpdateStatus(BookingStatusCancelled))

		customers, err := Synchronize([]Booking{*completed, *cancelled}, nil)

		require.NoError(t, err)
		require.Len(t, customers, 1)
		assert.Equal(t, 1, customers[0].TotalVisits)
		assert.Len(t, customers[0].BookingIDs, 2)
		require.NotNil(t, customers[0].LastVisitDate)
		assert.Equal(t, visitDate, *customers[0].LastVisitDate)
	})

	t.Run("journey stage counts as visit without completed status", func(t *testing.T) {
		booking := mustBooking(t, "김민지", "010-1111-2222", date, StageInquiry)
		require.NoError(t, booking.AdvanceStage(StageConsultation, ""))
		require.NoError(t, booking.AdvanceStage(StageProcedureDone, ""))
		require.NoError(t, booking.UpdateStatus(BookingStatusCompleted))

		customers, err := Synchronize([]Booking{*booking}, nil)

		require.NoError(t, err)
		require.Len(t, customers, 1)
		assert.Equal(t, 1, customers[0].TotalVisits)
		require.NotNil(t, customers[0].LastVisitDate)
		assert.Equal(t, booking.Date, *customers[0].LastVisitDate)
	})

	t.Run("last visit date picks latest completed booking", func(t *testing.T) {
		early := mustBooking(t, "김민지", "010-1111-2222", date, StageProcedureDone)
		late := mustBooking(t, "김민지", "010-1111-2222", date.AddDate(0, 2, 0), StageProcedureDone)

		customers, err := Synchronize([]Booking{*early, *late}, nil)

		require.NoError(t, err)
		require.Len(t, customers, 1)
		assert.Equal(t, 2, customers[0].TotalVisits)
		require.NotNil(t, customers[0].LastVisitDate)
		assert.Equal(t, late.Date, *customers[0].LastVisitDate)
	})
}
