package models

// AllStatuses enumerates every pipeline status.
var AllStatuses = []Status{
	StatusForReceiving, StatusReceived, StatusSorted, StatusPacked,
	StatusShipping, StatusShipped, StatusMissing, StatusDamaged, StatusForShipping,
}

// stageBuckets maps a screen stage to the status bucket its list shows.
// The Receiving tab shows both arriving and checked-in units; every other
// tab is a single status.
var stageBuckets = map[string][]Status{
	"receiving":   {StatusForReceiving, StatusReceived},
	"sorting":     {StatusSorted},
	"packing":     {StatusPacked},
	"shipping":    {StatusShipping},
	"shipped":     {StatusShipped},
	"missing":     {StatusMissing},
	"damaged":     {StatusDamaged},
	"forShipping": {StatusForShipping},
}

// StageStatuses returns the status bucket for a stage name, or nil for an
// unknown stage.
func StageStatuses(stage string) []Status {
	bucket := stageBuckets[stage]
	out := make([]Status, len(bucket))
	copy(out, bucket)
	return out
}

// StageContainerKind returns the container kind assignable on a stage, or ""
// for stages without grouping.
func StageContainerKind(stage string) ContainerKind {
	switch stage {
	case "sorting":
		return ContainerTray
	case "packing":
		return ContainerBox
	case "shipping":
		return ContainerTracking
	}
	return ""
}

// TransitionSources returns every status the target is reachable from,
// the target itself included (idempotent re-sends are legal).
func TransitionSources(target Status) []Status {
	var from []Status
	for _, s := range AllStatuses {
		if CanTransition(s, target) {
			from = append(from, s)
		}
	}
	return from
}
