package crm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	date := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	t.Run("empty set yields zero rate", func(t *testing.T) {
		stats := Aggregate(nil)

		assert.Equal(t, 0, stats.TotalLeads)
		assert.Equal(t, 0, stats.ConvertedLeads)
		assert.Equal(t, 0, stats.ConversionRate)
		assert.Empty(t, stats.SourceCounts)
		assert.Equal(t, "", stats.TopSource)
	})

	t.Run("source counts exclude empty sources", func(t *testing.T) {
		bookings := make([]Booking, 0, 10)
		for i := 0; i < 3; i++ {
			b := mustBooking(t, "고객", "010-1111-2222", date, StageInquiry)
			b.SetAttribution("naver", "cpc", "")
			bookings = append(bookings, *b)
		}
		for i := 0; i < 2; i++ {
			b := mustBooking(t, "고객", "010-3333-4444", date, StageInquiry)
			b.SetAttribution("instagram", "social", "")
			bookings = append(bookings, *b)
		}
		for i := 0; i < 5; i++ {
			b := mustBooking(t, "고객", "010-5555-6666", date, StageInquiry)
			bookings = append(bookings, *b)
		}

		stats := Aggregate(bookings)

		assert.Equal(t, 10, stats.TotalLeads)
		assert.Equal(t, map[string]int{"naver": 3, "instagram": 2}, stats.SourceCounts)
		assert.Equal(t, "naver", stats.TopSource)
	})

	t.Run("conversion uses stage index threshold", func(t *testing.T) {
		converted := mustBooking(t, "고객", "010-1111-2222", date, StageProcedureDone)
		retained := mustBooking(t, "고객", "010-3333-4444", date, StageRetention)
		early := mustBooking(t, "고객", "010-5555-6666", date, StageConsultation)

		stats := Aggregate([]Booking{*converted, *retained, *early})

		assert.Equal(t, 3, stats.TotalLeads)
		assert.Equal(t, 2, stats.ConvertedLeads)
		assert.Equal(t, 67, stats.ConversionRate)
	})

	t.Run("rate stays within bounds", func(t *testing.T) {
		all := mustBooking(t, "고객", "010-1111-2222", date, StageRetention)
		none := mustBooking(t, "고객", "010-3333-4444", date, StageInquiry)

		full := Aggregate([]Booking{*all})
		assert.Equal(t, 100, full.ConversionRate)

		zero := Aggregate([]Booking{*none})
		assert.Equal(t, 0, zero.ConversionRate)
	})

	t.Run("campaign map tracks totals and conversions", func(t *testing.T) {
		b1 := mustBooking(t, "고객", "010-1111-2222", date, StageProcedureDone)
		b1.SetAttribution("naver", "cpc", "spring_event")
		b2 := mustBooking(t, "고객", "010-3333-4444", date, StageInquiry)
		b2.SetAttribution("naver", "cpc", "spring_event")
		b3 := mustBooking(t, "고객", "010-5555-6666", date, StageInquiry)

		stats := Aggregate([]Booking{*b1, *b2, *b3})

		require.Contains(t, stats.Campaigns, "spring_event")
		assert.Equal(t, CampaignStats{Total: 2, Converted: 1}, stats.Campaigns["spring_event"])
		assert.Len(t, stats.Campaigns, 1)
	})

	t.Run("funnel is cumulative over non-cancelled bookings", func(t *testing.T) {
		retained := mustBooking(t, "고객", "010-1111-2222", date, StageRetention)
		consulted := mustBooking(t, "고객", "010-3333-4444", date, StageConsultation)
		cancelled := mustBooking(t, "고객", "010-5555-6666", date, StageProcedureDone)
		require.NoError(t, cancelled.UpdateStatus(BookingStatusCancelled))

		stats := Aggregate([]Booking{*retained, *consulted, *cancelled})

		require.Len(t, stats.Funnel, 6)
		assert.Equal(t, FunnelStage{Stage: StageInquiry, Count: 2}, stats.Funnel[0])
		assert.Equal(t, FunnelStage{Stage: StageConsultation, Count: 2}, stats.Funnel[1])
		assert.Equal(t, FunnelStage{Stage: StageProcedureScheduled, Count: 1}, stats.Funnel[2])
		assert.Equal(t, FunnelStage{Stage: StageProcedureDone, Count: 1}, stats.Funnel[3])
		assert.Equal(t, FunnelStage{Stage: StageRetention, Count: 1}, stats.Funnel[5])
	})

	t.Run("top source ties resolve deterministically", func(t *testing.T) {
		b1 := mustBooking(t, "고객", "010-1111-2222", date, StageInquiry)
		b1.SetAttribution("naver", "", "")
		b2 := mustBooking(t, "고객", "010-3333-4444", date, StageInquiry)
		b2.SetAttribution("instagram", "", "")

		stats := Aggregate([]Booking{*b1, *b2})

		assert.Equal(t, "instagram", stats.TopSource)
	})
}
