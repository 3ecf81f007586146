package models

// Status is the fulfillment pipeline state of a unit.
type Status string

const (
	StatusForReceiving Status = "forReceiving"
	StatusReceived     Status = "received"
	StatusSorted       Status = "sorted"
	StatusPacked       Status = "packed"
	StatusShipping     Status = "shipping"
	StatusShipped      Status = "shipped"

	// Side-channel states reachable from 'received'
	StatusMissing     Status = "missing"
	StatusDamaged     Status = "damaged"
	StatusForShipping Status = "forShipping"
)

// forwardNext is the only legal forward path:
// forReceiving -> received -> sorted -> packed -> shipping -> shipped.
// forShipping re-enters the forward path at packing.
var forwardNext = map[Status]Status{
	StatusForReceiving: StatusReceived,
	StatusReceived:     StatusSorted,
	StatusSorted:       StatusPacked,
	StatusPacked:       StatusShipping,
	StatusShipping:     StatusShipped,
	StatusForShipping:  StatusPacked,
}

// retagTargets is the side channel: received, missing and damaged may be
// retagged among {missing, damaged, forShipping}, never to themselves.
// This is the single source of truth for every screen's "tag as" menu.
var retagTargets = map[Status][]Status{
	StatusReceived: {StatusMissing, StatusDamaged},
	StatusMissing:  {StatusDamaged, StatusForShipping},
	StatusDamaged:  {StatusMissing, StatusForShipping},
}

// IsValidStatus reports whether s is a known pipeline status.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusForReceiving, StatusReceived, StatusSorted, StatusPacked,
		StatusShipping, StatusShipped, StatusMissing, StatusDamaged, StatusForShipping:
		return true
	}
	return false
}

// NextForward returns the next status on the forward path, or "" if the
// status is terminal (shipped) or side-channel only.
func NextForward(s Status) Status {
	return forwardNext[s]
}

// RetagTargets returns the side-channel statuses a unit may be retagged to
// from its current status. Empty for statuses with no retag menu.
func RetagTargets(s Status) []Status {
	targets := retagTargets[s]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// CanTransition reports whether from -> to is a documented transition.
// A same-status transition is allowed so that re-sending an identical
// (id, target) pair is idempotent.
func CanTransition(from, to Status) bool {
	if !IsValidStatus(from) || !IsValidStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	if forwardNext[from] == to {
		return true
	}
	for _, t := range retagTargets[from] {
		if t == to {
			return true
		}
	}
	return false
}
