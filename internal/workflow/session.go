package workflow

import (
	"context"
	"sync"

	"fulfillment-backend/internal/models"
)

// ScreenSession owns the state one screen shares with its siblings: the
// visible unit list, the SelectionSet, the busy flag, and the filter value.
// There is exactly one per active screen; screens receive it explicitly
// instead of keeping parallel copies of the same flags.
//
// Mutations follow one fixed shape: preconditions first (never dispatched on
// failure), exactly one network call with the full id list, then a full
// re-fetch on success. Local state is never patched in place; a mutation can
// silently move a unit out of the displayed bucket.
type ScreenSession struct {
	mu        sync.Mutex
	client    *Client
	stage     string
	Filters   FilterSpec
	selection *SelectionSet
	units     []*models.Unit
	total     int
	busy      bool
	epoch     uint64
}

func NewScreenSession(client *Client, stage string) *ScreenSession {
	return &ScreenSession{
		client:    client,
		stage:     stage,
		selection: NewSelectionSet(stage),
	}
}

func (s *ScreenSession) Stage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// Busy reports whether a mutating call is in flight. The triggering control
// is disabled while true; duplicate submission is prevented here, not by
// debouncing.
func (s *ScreenSession) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *ScreenSession) Selection() *SelectionSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

func (s *ScreenSession) Units() []*models.Unit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Unit, len(s.units))
	copy(out, s.units)
	return out
}

func (s *ScreenSession) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// SetStage switches the session to another tab. The selection clears
// (selection is stage-scoped) and the epoch advances so any response still
// in flight for the old stage is discarded on arrival.
func (s *ScreenSession) SetStage(stage string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage == stage {
		return
	}
	s.stage = stage
	s.selection.SetStage(stage)
	s.epoch++
	s.units = nil
	s.total = 0
}

// Close marks the screen no longer active. In-flight responses arriving
// afterwards are discarded.
func (s *ScreenSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
}

// Refresh re-requests the full list from the server. Stale responses (the
// screen changed stage or closed while the request was in flight) never
// mutate session state.
func (s *ScreenSession) Refresh(ctx context.Context) error {
	s.mu.Lock()
	epoch := s.epoch
	stage := s.stage
	filters := s.Filters
	s.mu.Unlock()

	resp, err := s.client.ListByStage(ctx, stage, filters)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return nil
	}
	s.units = resp.Data
	s.total = resp.Total
	return nil
}

// beginMutation flips the busy flag on, rejecting a second submission while
// one is in flight. The returned func always clears the flag.
func (s *ScreenSession) beginMutation() (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return nil, ValidationError{Message: "An operation is already in progress."}
	}
	s.busy = true
	return func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}, nil
}

// ApplyBatch tags every selected unit with target in exactly one network
// call. On success the selection clears and the screen re-fetches; on any
// failure the selection is kept and one aggregate error is surfaced. Success
// is never claimed while any id was rejected; the server rejects the whole
// batch in that case.
func (s *ScreenSession) ApplyBatch(ctx context.Context, target models.Status) error {
	s.mu.Lock()
	ids := s.selection.IDs()
	s.mu.Unlock()
	if len(ids) == 0 {
		return ValidationError{Message: "Nothing selected."}
	}

	done, err := s.beginMutation()
	if err != nil {
		return err
	}
	defer done()

	if _, err := s.client.SetStatus(ctx, ids, target); err != nil {
		return err
	}

	s.mu.Lock()
	s.selection.Clear()
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// TagUnit tags a single unit from its inline menu. It is the same batch path
// with a one-element id list, not a separate code path.
func (s *ScreenSession) TagUnit(ctx context.Context, id string, target models.Status) error {
	done, err := s.beginMutation()
	if err != nil {
		return err
	}
	defer done()

	if _, err := s.client.SetStatus(ctx, []string{id}, target); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// AssignContainer groups the current selection into the container described
// by req, filling req.OrderIDs with the selected ids that are still
// ungrouped for this stage. Validation failures block dispatch entirely.
func (s *ScreenSession) AssignContainer(ctx context.Context, req *models.AssignContainerRequest) error {
	s.mu.Lock()
	kind := models.StageContainerKind(s.stage)
	var ids []string
	for _, id := range s.selection.IDs() {
		if u := s.unitByID(id); u != nil && kind != "" && u.ContainerRef(kind) != nil {
			continue
		}
		ids = append(ids, id)
	}
	s.mu.Unlock()

	req.OrderIDs = ids
	if err := validateAssign(req); err != nil {
		return err
	}

	done, err := s.beginMutation()
	if err != nil {
		return err
	}
	defer done()

	if _, err := s.client.AssignContainer(ctx, req); err != nil {
		return err
	}

	s.mu.Lock()
	s.selection.Clear()
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// AssignContainerToUnit is the inline single-card variant. Same request,
// same endpoint; only the id list differs.
func (s *ScreenSession) AssignContainerToUnit(ctx context.Context, id string, req *models.AssignContainerRequest) error {
	req.OrderIDs = []string{id}
	if err := validateAssign(req); err != nil {
		return err
	}

	done, err := s.beginMutation()
	if err != nil {
		return err
	}
	defer done()

	if _, err := s.client.AssignContainer(ctx, req); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// validateAssign enforces the client-side preconditions for a grouping call.
func validateAssign(req *models.AssignContainerRequest) error {
	if len(req.OrderIDs) == 0 {
		return ValidationError{Message: "No ungrouped units selected."}
	}
	switch req.Kind() {
	case models.ContainerTray:
		// code presence is what Kind() keyed on
	case models.ContainerBox:
		b := req.BoxDetails
		if b.BoxNumber == "" {
			return ValidationError{Message: "Box number is required."}
		}
		if b.LengthCM <= 0 || b.WidthCM <= 0 || b.HeightCM <= 0 || b.WeightKG <= 0 {
			return ValidationError{Message: "Box dimensions and weight must be positive."}
		}
	case models.ContainerTracking:
		if req.DeliveryDate == "" {
			return ValidationError{Message: "Delivery date is required."}
		}
	default:
		return ValidationError{Message: "Container code is required."}
	}
	return nil
}

func (s *ScreenSession) unitByID(id string) *models.Unit {
	for _, u := range s.units {
		if u.ID == id {
			return u
		}
	}
	return nil
}
