package crm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syncedCustomers(t *testing.T, bookings []Booking) []Customer {
	t.Helper()
	customers, err := Synchronize(bookings, nil)
	require.NoError(t, err)
	return customers
}

func TestGenerateFollowUps(t *testing.T) {
	date := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	t.Run("procedure done creates a single call task", func(t *testing.T) {
		booking := mustBooking(t, "김민지", "010-1111-2222", date, StageInquiry)
		require.NoError(t, booking.AdvanceStage(StageConsultation, ""))
		require.NoError(t, booking.AdvanceStage(StageProcedureDone, ""))
		require.NoError(t, booking.UpdateStatus(BookingStatusCompleted))
		bookings := []Booking{*booking}
		customers := syncedCustomers(t, bookings)

		tasks := GenerateFollowUps(bookings, customers, nil)

		require.Len(t, tasks, 1)
		task := tasks[0]
		assert.Equal(t, FollowUpCall, task.Type)
		assert.Equal(t, "시술 후 경과 확인", task.Reason)
		assert.Equal(t, booking.ID, task.BookingID)
		assert.Equal(t, customers[0].ID, task.CustomerID)
		assert.Equal(t, "김민지", task.CustomerName)
		assert.Equal(t, FollowUpPending, task.Status)

		evt, found := booking.FirstStageEvent(StageProcedureDone)
		require.True(t, found)
		assert.Equal(t, evt.Timestamp.Add(3*24*time.Hour), task.DueDate)
	})

	t.Run("follow up stage creates an sms task after 14 days", func(t *testing.T) {
		booking := mustBooking(t, "김민지", "010-1111-2222", date, StageProcedureDone)
		require.NoError(t, booking.AdvanceStage(StageFollowUp, ""))
		bookings := []Booking{*booking}
		customers := syncedCustomers(t, bookings)

		tasks := GenerateFollowUps(bookings, customers, nil)

		require.Len(t, tasks, 1)
		assert.Equal(t, FollowUpSMS, tasks[0].Type)
		assert.Equal(t, "재방문 안내", tasks[0].Reason)

		evt, found := booking.FirstStageEvent(StageFollowUp)
		require.True(t, found)
		assert.Equal(t, evt.Timestamp.Add(14*24*time.Hour), tasks[0].DueDate)
	})

	t.Run("consultation stage creates a call task after 7 days", func(t *testing.T) {
		booking := mustBooking(t, "김민지", "010-1111-2222", date, StageInquiry)
		require.NoError(t, booking.AdvanceStage(StageConsultation, ""))
		bookings := []Booking{*booking}
		customers := syncedCustomers(t, bookings)

		tasks := GenerateFollowUps(bookings, customers, nil)

		require.Len(t, tasks, 1)
		assert.Equal(t, FollowUpCall, tasks[0].Type)
		assert.Equal(t, "상담 후 시술 결정 확인", tasks[0].Reason)

		evt, found := booking.FirstStageEvent(StageConsultation)
		require.True(t, found)
		assert.Equal(t, evt.Timestamp.Add(7*24*time.Hour), tasks[0].DueDate)
	})

	t.Run("inquiry stage creates nothing", func(t *testing.T) {
		booking := mustBooking(t, "김민지", "010-1111-2222", date, StageInquiry)
		bookings := []Booking{*booking}
		customers := syncedCustomers(t, bookings)

		tasks := GenerateFollowUps(bookings, customers, nil)

		assert.Empty(t, tasks)
	})

	t.Run("cancelled booking is skipped", func(t *testing.T) {
		booking := mustBooking(t, "김민지", "010-1111-2222", date, StageProcedureDone)
		bookings := []Booking{*booking}
		customers := syncedCustomers(t, bookings)
		require.NoError(t, booking.UpdateStatus(BookingStatusCancelled))

		tasks := GenerateFollowUps([]Booking{*booking}, customers, nil)

		assert.Empty(t, tasks)
	})

	t.Run("missing history entry is skipped not fabricated", func(t *testing.T) {
		// Stage says follow_up but the history never recorded it.
		booking := mustBooking(t, "김민지", "010-1111-2222", date, StageInquiry)
		booking.Stage = StageFollowUp
		bookings := []Booking{*booking}
		customers := syncedCustomers(t, bookings)

		tasks := GenerateFollowUps(bookings, customers, nil)

		assert.Empty(t, tasks)
	})

	t.Run("booking without customer profile is skipped", func(t *testing.T) {
		booking := mustBooking(t, "김민지", "010-1111-2222", date, StageProcedureDone)

		tasks := GenerateFollowUps([]Booking{*booking}, nil, nil)

		assert.Empty(t, tasks)
	})

	t.Run("repeated generation never duplicates", func(t *testing.T) {
		booking := mustBooking(t, "김민지", "010-1111-2222", date, StageProcedureDone)
		bookings := []Booking{*booking}
		customers := syncedCustomers(t, bookings)

		once := GenerateFollowUps(bookings, customers, nil)
		twice := GenerateFollowUps(bookings, customers, once)

		assert.Len(t, twice, len(once))
	})

	t.Run("resolved task is not recreated", func(t *testing.T) {
		booking := mustBooking(t, "김민지", "010-1111-2222", date, StageProcedureDone)
		bookings := []Booking{*booking}
		customers := syncedCustomers(t, bookings)

		tasks := GenerateFollowUps(bookings, customers, nil)
		require.Len(t, tasks, 1)
		require.NoError(t, tasks[0].Complete("통화 완료"))

		regenerated := GenerateFollowUps(bookings, customers, tasks)

		require.Len(t, regenerated, 1)
		assert.Equal(t, FollowUpCompleted, regenerated[0].Status)
	})

	t.Run("existing tasks are carried through", func(t *testing.T) {
		b1 := mustBooking(t, "김민지", "010-1111-2222", date, StageProcedureDone)
		tasks := GenerateFollowUps([]Booking{*b1}, syncedCustomers(t, []Booking{*b1}), nil)
		require.Len(t, tasks, 1)

		b2 := mustBooking(t, "박서연", "010-3333-4444", date, StageInquiry)
		require.NoError(t, b2.AdvanceStage(StageConsultation, ""))
		bookings := []Booking{*b1, *b2}
		customers := syncedCustomers(t, bookings)

		merged := GenerateFollowUps(bookings, customers, tasks)

		require.Len(t, merged, 2)
		assert.Equal(t, tasks[0].ID, merged[0].ID)
		assert.Equal(t, "상담 후 시술 결정 확인", merged[1].Reason)
	})
}
