package crm

import "math"

// CampaignStats aggregates lead volume and conversions for a campaign
type CampaignStats struct {
	Total     int `json:"total"`
	Converted int `json:"converted"`
}

// FunnelStage is the cumulative lead count at one journey stage
type FunnelStage struct {
	Stage JourneyStage `json:"stage"`
	Count int          `json:"count"`
}

// MarketingStats is the aggregate view of acquisition and conversion
// across the full booking set.
type MarketingStats struct {
	TotalLeads     int                      `json:"total_leads"`
	ConvertedLeads int                      `json:"converted_leads"`
	ConversionRate int                      `json:"conversion_rate"`
	SourceCounts   map[string]int           `json:"source_counts"`
	TopSource      string                   `json:"top_source"`
	Campaigns      map[string]CampaignStats `json:"campaigns"`
	Funnel         []FunnelStage            `json:"funnel"`
}

// Aggregate computes marketing statistics over a booking snapshot. It
// is a pure computation.
//
// Every booking counts as a lead, attributed or not. A lead is
// converted once its journey stage reaches procedure_done. Bookings
// with an empty source are excluded from source counts; the funnel is
// cumulative over non-cancelled bookings, so a booking at retention is
// counted at every earlier stage as well.
func Aggregate(bookings []Booking) MarketingStats {
	stats := MarketingStats{
		TotalLeads:   len(bookings),
		SourceCounts: make(map[string]int),
		Campaigns:    make(map[string]CampaignStats),
	}

	convertedAt := StageIndex(StageProcedureDone)
	funnelCounts := make([]int, len(journeyOrder))

	for i := range bookings {
		b := &bookings[i]
		converted := StageIndex(b.Stage) >= convertedAt
		if converted {
			stats.ConvertedLeads++
		}

		if b.Source != "" {
			stats.SourceCounts[b.Source]++
		}
		if b.Campaign != "" {
			cs := stats.Campaigns[b.Campaign]
			cs.Total++
			if converted {
				cs.Converted++
			}
			stats.Campaigns[b.Campaign] = cs
		}

		if !b.IsCancelled() {
			reached := StageIndex(b.Stage)
			for s := 0; s <= reached; s++ {
				funnelCounts[s]++
			}
		}
	}

	if stats.TotalLeads > 0 {
		stats.ConversionRate = int(math.Round(float64(stats.ConvertedLeads) / float64(stats.TotalLeads) * 100))
	}

	stats.TopSource = topSource(stats.SourceCounts)

	stats.Funnel = make([]FunnelStage, len(journeyOrder))
	for i, stage := range journeyOrder {
		stats.Funnel[i] = FunnelStage{Stage: stage, Count: funnelCounts[i]}
	}

	return stats
}

// topSource picks the source with the highest lead count. Ties resolve
// to the lexicographically smallest source so the result is stable.
func topSource(counts map[string]int) string {
	top := ""
	best := 0
	for source, count := range counts {
		if count > best || (count == best && (top == "" || source < top)) {
			top = source
			best = count
		}
	}
	return top
}
