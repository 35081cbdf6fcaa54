package triage

import "sort"

// MutationState carries the surge-simulation flags for a running client
// instance. The flags are never persisted remotely and, under the default
// policy, do not influence the ordering.
type MutationState struct {
	VolumeDoubled bool `json:"isVolumeDoubled"`
	StaffShortage bool `json:"isStaffShortage"`
}

// WeightPolicy computes the primary dispatch weight of an appointment under
// the given operating conditions. A surge policy can promote or demote whole
// levels here without touching the score and arrival-time tie-breaks.
type WeightPolicy func(state MutationState, a Appointment) int

// DefaultWeightPolicy ignores the operating conditions and uses the plain
// triage-level weight.
func DefaultWeightPolicy(_ MutationState, a Appointment) int {
	return a.TriageLevel.Weight()
}

// Less reports whether a dispatches before b under the default policy:
// higher level weight first, then higher triage score, then earlier
// registration.
func Less(a, b Appointment) bool {
	return lessBy(DefaultWeightPolicy, MutationState{}, a, b)
}

func lessBy(policy WeightPolicy, state MutationState, a, b Appointment) bool {
	wa, wb := policy(state, a), policy(state, b)
	if wa != wb {
		return wa > wb
	}
	if a.TriageScore != b.TriageScore {
		return a.TriageScore > b.TriageScore
	}
	return a.RegisteredTime().Before(b.RegisteredTime())
}

// SortedBy returns the appointments in dispatch order under the given policy.
// The input slice is left untouched; a nil policy means the default one.
func SortedBy(appts []Appointment, policy WeightPolicy, state MutationState) []Appointment {
	if policy == nil {
		policy = DefaultWeightPolicy
	}
	out := make([]Appointment, len(appts))
	copy(out, appts)
	sort.SliceStable(out, func(i, j int) bool {
		return lessBy(policy, state, out[i], out[j])
	})
	return out
}
