package crm

import (
	"time"
)

// FollowUpRule declares that reaching a journey stage creates a contact
// obligation after a fixed delay. The reason doubles as the stable part
// of the task's dedup identity, so it must never be reworded without a
// data migration.
type FollowUpRule struct {
	Stage  JourneyStage
	Type   FollowUpType
	Reason string
	Delay  time.Duration
}

// followUpRules is the active rule table, in funnel order.
var followUpRules = []FollowUpRule{
	{Stage: StageConsultation, Type: FollowUpCall, Reason: "상담 후 시술 결정 확인", Delay: 7 * 24 * time.Hour},
	{Stage: StageProcedureDone, Type: FollowUpCall, Reason: "시술 후 경과 확인", Delay: 3 * 24 * time.Hour},
	{Stage: StageFollowUp, Type: FollowUpSMS, Reason: "재방문 안내", Delay: 14 * 24 * time.Hour},
}

// FollowUpRules returns the active rule table.
func FollowUpRules() []FollowUpRule {
	rules := make([]FollowUpRule, len(followUpRules))
	copy(rules, followUpRules)
	return rules
}

// GenerateFollowUps computes the follow-up task set that should exist
// after a booking snapshot change, returning the existing tasks plus
// any newly due ones. It is a pure computation: each non-cancelled
// booking is checked against the rule for its current journey stage,
// with the due date anchored to the first journey history entry for
// that stage. A proposal whose (booking, reason) pair already exists
// among the known tasks is dropped regardless of the existing task's
// status, so completed and skipped tasks are never recreated.
//
// A booking whose current stage matches a rule but whose history lacks
// the stage entry yields no task. Bookings whose phone has no customer
// profile are skipped; synchronization runs before generation, so this
// only happens on stale data.
func GenerateFollowUps(bookings []Booking, customers []Customer, existing []FollowUpTask) []FollowUpTask {
	known := make(map[FollowUpKey]bool, len(existing))
	for i := range existing {
		known[existing[i].DedupKey()] = true
	}

	customerByPhone := make(map[string]*Customer, len(customers))
	for i := range customers {
		customerByPhone[customers[i].Phone] = &customers[i]
	}

	result := make([]FollowUpTask, 0, len(existing))
	result = append(result, existing...)

	for i := range bookings {
		b := &bookings[i]
		if b.IsCancelled() {
			continue
		}
		customer, ok := customerByPhone[b.Phone]
		if !ok {
			continue
		}

		for _, rule := range followUpRules {
			if b.Stage != rule.Stage {
				continue
			}

			key := FollowUpKey{BookingID: b.ID, Reason: rule.Reason}
			if known[key] {
				continue
			}

			evt, found := b.FirstStageEvent(rule.Stage)
			if !found {
				continue
			}

			task := NewFollowUpTask(b.ID, customer.ID, customer.Name, b.Phone, rule.Type, rule.Reason, evt.Timestamp.Add(rule.Delay))
			result = append(result, *task)
			known[key] = true
		}
	}

	return result
}
