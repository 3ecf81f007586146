package workflow

import "fulfillment-backend/internal/models"

// SelectionSet is the transient, stage-scoped set of unit ids chosen for a
// batch action. It is active exactly when it holds at least one id; activity
// is always computed from the post-toggle size. Switching stage clears it:
// selection is never global.
type SelectionSet struct {
	stage   string
	members map[string]struct{}
	order   []string
}

func NewSelectionSet(stage string) *SelectionSet {
	return &SelectionSet{stage: stage, members: make(map[string]struct{})}
}

func (s *SelectionSet) Stage() string { return s.stage }

// Active reports whether a batch action may be offered: |S| >= 1.
func (s *SelectionSet) Active() bool { return len(s.members) > 0 }

func (s *SelectionSet) Size() int { return len(s.members) }

func (s *SelectionSet) Contains(id string) bool {
	_, ok := s.members[id]
	return ok
}

// Toggle adds or removes one id and reports whether the set is active
// afterwards.
func (s *SelectionSet) Toggle(id string) bool {
	if _, ok := s.members[id]; ok {
		delete(s.members, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	} else {
		s.members[id] = struct{}{}
		s.order = append(s.order, id)
	}
	return s.Active()
}

// SelectAll selects every visible unit eligible for this stage's batch
// action. Units already grouped for the stage's container kind are skipped;
// they are not candidates for another assignment.
func (s *SelectionSet) SelectAll(visible []*models.Unit) {
	kind := models.StageContainerKind(s.stage)
	for _, u := range visible {
		if kind != "" && u.ContainerRef(kind) != nil {
			continue
		}
		if _, ok := s.members[u.ID]; !ok {
			s.members[u.ID] = struct{}{}
			s.order = append(s.order, u.ID)
		}
	}
}

func (s *SelectionSet) DeselectAll() {
	s.members = make(map[string]struct{})
	s.order = nil
}

// Clear is the explicit cancel, and the reset after a successful batch.
func (s *SelectionSet) Clear() { s.DeselectAll() }

// SetStage switches the selection to another stage, clearing membership when
// the stage actually changes.
func (s *SelectionSet) SetStage(stage string) {
	if s.stage != stage {
		s.stage = stage
		s.Clear()
	}
}

// IDs returns the selected ids in selection order.
func (s *SelectionSet) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
