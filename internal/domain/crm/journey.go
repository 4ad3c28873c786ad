package crm

import "time"

// JourneyStage classifies how far a contact has progressed through the
// clinic funnel. Stages form a fixed linear order; comparisons must go
// through StageIndex, never through string comparison.
type JourneyStage string

const (
	StageInquiry            JourneyStage = "inquiry"
	StageConsultation       JourneyStage = "consultation"
	StageProcedureScheduled JourneyStage = "procedure_scheduled"
	StageProcedureDone      JourneyStage = "procedure_done"
	StageFollowUp           JourneyStage = "follow_up"
	StageRetention          JourneyStage = "retention"
)

// journeyOrder is the canonical stage ordering used for funnel and
// conversion comparisons.
var journeyOrder = []JourneyStage{
	StageInquiry,
	StageConsultation,
	StageProcedureScheduled,
	StageProcedureDone,
	StageFollowUp,
	StageRetention,
}

// JourneyStages returns the stages in funnel order.
func JourneyStages() []JourneyStage {
	stages := make([]JourneyStage, len(journeyOrder))
	copy(stages, journeyOrder)
	return stages
}

// StageIndex returns the position of the stage in the funnel order,
// or -1 for an unknown stage.
func StageIndex(stage JourneyStage) int {
	for i, s := range journeyOrder {
		if s == stage {
			return i
		}
	}
	return -1
}

// IsValidStage reports whether the stage is one of the known journey stages.
func IsValidStage(stage JourneyStage) bool {
	return StageIndex(stage) >= 0
}

// JourneyEvent records a single stage transition in a booking's history.
// The history is append-only; events are never rewritten.
type JourneyEvent struct {
	Stage     JourneyStage `json:"stage"`
	Timestamp time.Time    `json:"timestamp"`
	Note      string       `json:"note,omitempty"`
}
