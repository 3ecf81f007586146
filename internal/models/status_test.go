package models

import "testing"

func TestForwardPath(t *testing.T) {
	steps := []struct {
		from, to Status
	}{
		{StatusForReceiving, StatusReceived},
		{StatusReceived, StatusSorted},
		{StatusSorted, StatusPacked},
		{StatusPacked, StatusShipping},
		{StatusShipping, StatusShipped},
	}
	for _, s := range steps {
		if NextForward(s.from) != s.to {
			t.Errorf("NextForward(%s) = %s, want %s", s.from, NextForward(s.from), s.to)
		}
		if !CanTransition(s.from, s.to) {
			t.Errorf("CanTransition(%s, %s) = false, want true", s.from, s.to)
		}
	}
	if NextForward(StatusShipped) != "" {
		t.Errorf("shipped should be terminal, got next %s", NextForward(StatusShipped))
	}
}

func TestForShippingReentersAtPacking(t *testing.T) {
	if NextForward(StatusForShipping) != StatusPacked {
		t.Errorf("forShipping should re-enter the forward path at packed, got %s", NextForward(StatusForShipping))
	}
	if !CanTransition(StatusForShipping, StatusPacked) {
		t.Error("forShipping -> packed should be legal")
	}
}

func TestRetagTargets(t *testing.T) {
	tests := []struct {
		from Status
		want []Status
	}{
		{StatusReceived, []Status{StatusMissing, StatusDamaged}},
		{StatusMissing, []Status{StatusDamaged, StatusForShipping}},
		{StatusDamaged, []Status{StatusMissing, StatusForShipping}},
		{StatusSorted, nil},
		{StatusShipped, nil},
	}
	for _, tt := range tests {
		got := RetagTargets(tt.from)
		if len(got) != len(tt.want) {
			t.Errorf("RetagTargets(%s) = %v, want %v", tt.from, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("RetagTargets(%s)[%d] = %s, want %s", tt.from, i, got[i], tt.want[i])
			}
		}
	}
}

func TestRetagNeverOffersSelf(t *testing.T) {
	for _, from := range AllStatuses {
		for _, target := range RetagTargets(from) {
			if target == from {
				t.Errorf("RetagTargets(%s) offers the current status", from)
			}
		}
	}
}

func TestCanTransitionRejectsUndocumentedEdges(t *testing.T) {
	illegal := []struct {
		from, to Status
	}{
		{StatusForReceiving, StatusSorted},  // skipping a forward step
		{StatusReceived, StatusForShipping}, // received has no forShipping retag
		{StatusSorted, StatusMissing},       // sorted has no side channel
		{StatusShipped, StatusShipping},     // no backwards moves
		{StatusMissing, StatusReceived},     // side channel does not rewind
		{StatusPacked, Status("lost")},      // unknown status
	}
	for _, tt := range illegal {
		if CanTransition(tt.from, tt.to) {
			t.Errorf("CanTransition(%s, %s) = true, want false", tt.from, tt.to)
		}
	}
}

func TestSameStatusIsIdempotent(t *testing.T) {
	for _, s := range AllStatuses {
		if !CanTransition(s, s) {
			t.Errorf("CanTransition(%s, %s) = false; re-sending an identical tag must be legal", s, s)
		}
	}
}

func TestTransitionSourcesForMissing(t *testing.T) {
	sources := TransitionSources(StatusMissing)
	want := map[Status]bool{StatusReceived: true, StatusDamaged: true, StatusMissing: true}
	if len(sources) != len(want) {
		t.Fatalf("TransitionSources(missing) = %v, want sources %v", sources, want)
	}
	for _, s := range sources {
		if !want[s] {
			t.Errorf("unexpected source %s for missing", s)
		}
	}
}

func TestStageBuckets(t *testing.T) {
	if got := StageStatuses("receiving"); len(got) != 2 || got[0] != StatusForReceiving || got[1] != StatusReceived {
		t.Errorf("receiving bucket = %v", got)
	}
	if got := StageStatuses("packing"); len(got) != 1 || got[0] != StatusPacked {
		t.Errorf("packing bucket = %v", got)
	}
	if got := StageStatuses("warehouse"); len(got) != 0 {
		t.Errorf("unknown stage should have an empty bucket, got %v", got)
	}
}

func TestStageContainerKind(t *testing.T) {
	tests := []struct {
		stage string
		want  ContainerKind
	}{
		{"sorting", ContainerTray},
		{"packing", ContainerBox},
		{"shipping", ContainerTracking},
		{"receiving", ""},
		{"shipped", ""},
	}
	for _, tt := range tests {
		if got := StageContainerKind(tt.stage); got != tt.want {
			t.Errorf("StageContainerKind(%s) = %q, want %q", tt.stage, got, tt.want)
		}
	}
}

func TestCanReview(t *testing.T) {
	tests := []struct {
		current, decision CreditDecision
		want              bool
	}{
		{CreditPending, CreditApproved, true},
		{CreditPending, CreditRejected, true},
		{CreditApproved, CreditRejected, true},
		{CreditRejected, CreditApproved, true},
		{CreditApproved, CreditApproved, false},
		{CreditRejected, CreditRejected, false},
		{CreditApproved, CreditPending, false},
		{CreditRejected, CreditPending, false},
		{CreditPending, CreditPending, false},
	}
	for _, tt := range tests {
		if got := CanReview(tt.current, tt.decision); got != tt.want {
			t.Errorf("CanReview(%s, %s) = %v, want %v", tt.current, tt.decision, got, tt.want)
		}
	}
}
