package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"fulfillment-backend/internal/models"
)

// stageServer fakes the admin API for session tests: it records every call
// and serves a mutable per-status unit map.
type stageServer struct {
	mu          sync.Mutex
	units       map[string]*models.Unit
	statusCalls []models.SetStatusRequest
	assignCalls []models.AssignContainerRequest
	listCalls   int
	failStatus  string // when set, setStatus answers 422 with this message
}

func newStageServer(units ...*models.Unit) *stageServer {
	s := &stageServer{units: make(map[string]*models.Unit)}
	for _, u := range units {
		s.units[u.ID] = u
	}
	return s
}

func (s *stageServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/units", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listCalls++
		bucket := models.StageStatuses(r.URL.Query().Get("stage"))
		resp := models.UnitListResponse{Data: []*models.Unit{}}
		for _, u := range s.units {
			for _, st := range bucket {
				if u.Status == st {
					resp.Data = append(resp.Data, u)
				}
			}
		}
		resp.Total = len(resp.Data)
		json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("/api/units/status", func(w http.ResponseWriter, r *http.Request) {
		var req models.SetStatusRequest
		json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.statusCalls = append(s.statusCalls, req)
		if s.failStatus != "" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(models.SetStatusResponse{Success: false, Error: s.failStatus})
			return
		}
		for _, id := range req.OrderIDs {
			if u, ok := s.units[id]; ok {
				u.Status = req.Status
			}
		}
		json.NewEncoder(w).Encode(models.SetStatusResponse{Success: true, Updated: len(req.OrderIDs)})
	})
	mux.HandleFunc("/api/containers/assign", func(w http.ResponseWriter, r *http.Request) {
		var req models.AssignContainerRequest
		json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.assignCalls = append(s.assignCalls, req)
		code := req.Code()
		for _, id := range req.OrderIDs {
			if u, ok := s.units[id]; ok {
				switch req.Kind() {
				case models.ContainerTray:
					u.TrayNumber = &code
				case models.ContainerBox:
					u.BoxNumber = &code
				case models.ContainerTracking:
					u.TrackingNumber = &code
				}
			}
		}
		json.NewEncoder(w).Encode(models.AssignContainerResponse{Success: true, ContainerID: 1})
	})
	return mux
}

func newTestSession(t *testing.T, stage string, srv *stageServer) (*ScreenSession, func()) {
	t.Helper()
	ts := httptest.NewServer(srv.handler())
	sess := NewScreenSession(NewClient(ts.URL, NewMemoryTokenStore("tok")), stage)
	return sess, ts.Close
}

// Scenario: a received unit is individually tagged Missing. Exactly that id
// goes over the wire, and the unit leaves the receiving bucket and appears
// in the missing bucket on the next fetch.
func TestIndividualTagMissing(t *testing.T) {
	srv := newStageServer(
		&models.Unit{ID: "u1", Status: models.StatusReceived},
		&models.Unit{ID: "u2", Status: models.StatusReceived},
	)
	sess, stop := newTestSession(t, "receiving", srv)
	defer stop()
	ctx := context.Background()

	if err := sess.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	if err := sess.TagUnit(ctx, "u1", models.StatusMissing); err != nil {
		t.Fatal(err)
	}

	if len(srv.statusCalls) != 1 || len(srv.statusCalls[0].OrderIDs) != 1 || srv.statusCalls[0].OrderIDs[0] != "u1" {
		t.Fatalf("statusCalls = %+v, want one call with exactly [u1]", srv.statusCalls)
	}
	for _, u := range sess.Units() {
		if u.ID == "u1" {
			t.Error("u1 should be absent from the receiving list after the refresh")
		}
	}

	missing := NewScreenSession(sess.client, "missing")
	if err := missing.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	if len(missing.Units()) != 1 || missing.Units()[0].ID != "u1" {
		t.Errorf("missing list = %+v, want [u1]", missing.Units())
	}
	if sess.Busy() {
		t.Error("busy flag must clear after success")
	}
}

// Scenario: three ungrouped units on a packing screen get a box. One call,
// full id list, selection clears, screen re-fetches.
func TestBulkBoxAssignment(t *testing.T) {
	srv := newStageServer(
		&models.Unit{ID: "u1", Status: models.StatusPacked},
		&models.Unit{ID: "u2", Status: models.StatusPacked},
		&models.Unit{ID: "u3", Status: models.StatusPacked},
	)
	sess, stop := newTestSession(t, "packing", srv)
	defer stop()
	ctx := context.Background()

	if err := sess.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	listCallsBefore := srv.listCalls
	sel := sess.Selection()
	sel.Toggle("u1")
	sel.Toggle("u2")
	sel.Toggle("u3")

	req := &models.AssignContainerRequest{
		BoxDetails: &models.BoxDetails{BoxNumber: "BX-100", LengthCM: 40, WidthCM: 30, HeightCM: 20, WeightKG: 2.5},
	}
	if err := sess.AssignContainer(ctx, req); err != nil {
		t.Fatal(err)
	}

	if len(srv.assignCalls) != 1 {
		t.Fatalf("assignCalls = %d, want exactly 1", len(srv.assignCalls))
	}
	if got := srv.assignCalls[0].OrderIDs; len(got) != 3 {
		t.Errorf("assign carried %v, want all three ids", got)
	}
	if sess.Selection().Active() {
		t.Error("selection must clear after a successful batch")
	}
	if srv.listCalls != listCallsBefore+1 {
		t.Errorf("screen must re-fetch after the mutation (listCalls %d -> %d)", listCallsBefore, srv.listCalls)
	}
}

func TestAssignEmptySelectionNeverDispatches(t *testing.T) {
	srv := newStageServer()
	sess, stop := newTestSession(t, "packing", srv)
	defer stop()

	req := &models.AssignContainerRequest{
		BoxDetails: &models.BoxDetails{BoxNumber: "BX-1", LengthCM: 1, WidthCM: 1, HeightCM: 1, WeightKG: 1},
	}
	err := sess.AssignContainer(context.Background(), req)

	var ve ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(srv.assignCalls) != 0 || srv.listCalls != 0 {
		t.Error("validation failure must never reach the network")
	}
}

func TestAssignFiltersAlreadyGroupedUnits(t *testing.T) {
	box := "BX-9"
	srv := newStageServer(
		&models.Unit{ID: "u1", Status: models.StatusPacked},
		&models.Unit{ID: "u2", Status: models.StatusPacked, BoxNumber: &box},
	)
	sess, stop := newTestSession(t, "packing", srv)
	defer stop()
	ctx := context.Background()

	if err := sess.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	sess.Selection().Toggle("u1")
	sess.Selection().Toggle("u2")

	req := &models.AssignContainerRequest{
		BoxDetails: &models.BoxDetails{BoxNumber: "BX-100", LengthCM: 1, WidthCM: 1, HeightCM: 1, WeightKG: 1},
	}
	if err := sess.AssignContainer(ctx, req); err != nil {
		t.Fatal(err)
	}
	if got := srv.assignCalls[0].OrderIDs; len(got) != 1 || got[0] != "u1" {
		t.Errorf("assign carried %v, want only the ungrouped u1", got)
	}
}

func TestMissingTrackingDateBlocksDispatch(t *testing.T) {
	srv := newStageServer(&models.Unit{ID: "u1", Status: models.StatusShipping})
	sess, stop := newTestSession(t, "shipping", srv)
	defer stop()
	ctx := context.Background()

	if err := sess.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	sess.Selection().Toggle("u1")

	err := sess.AssignContainer(ctx, &models.AssignContainerRequest{TrackingNumber: "TRK-1"})
	var ve ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError for missing delivery date, got %v", err)
	}
	if len(srv.assignCalls) != 0 {
		t.Error("validation failure must never reach the network")
	}
}

func TestBatchFailureKeepsSelectionAndClearsBusy(t *testing.T) {
	srv := newStageServer(
		&models.Unit{ID: "u1", Status: models.StatusReceived},
		&models.Unit{ID: "u2", Status: models.StatusSorted},
	)
	srv.failStatus = "1 of 2 units cannot move to missing"
	sess, stop := newTestSession(t, "receiving", srv)
	defer stop()
	ctx := context.Background()

	if err := sess.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	sess.Selection().Toggle("u1")
	sess.Selection().Toggle("u2")
	listCallsBefore := srv.listCalls

	err := sess.ApplyBatch(ctx, models.StatusMissing)
	var se ServerError
	if !errors.As(err, &se) {
		t.Fatalf("want ServerError, got %v", err)
	}
	if se.Message != "1 of 2 units cannot move to missing" {
		t.Errorf("aggregate message altered: %q", se.Message)
	}
	if !sess.Selection().Active() || sess.Selection().Size() != 2 {
		t.Error("failed batch must keep the selection for an explicit re-trigger")
	}
	if sess.Busy() {
		t.Error("busy flag must clear on the failure path")
	}
	if srv.listCalls != listCallsBefore {
		t.Error("no refresh after a failed batch")
	}
}

func TestApplyBatchEmptySelection(t *testing.T) {
	srv := newStageServer()
	sess, stop := newTestSession(t, "receiving", srv)
	defer stop()

	err := sess.ApplyBatch(context.Background(), models.StatusMissing)
	var ve ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(srv.statusCalls) != 0 {
		t.Error("empty selection must not produce a network call")
	}
}

func TestBusyWhileMutating(t *testing.T) {
	srv := newStageServer(&models.Unit{ID: "u1", Status: models.StatusReceived})
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	sess := NewScreenSession(NewClient(ts.URL, NewMemoryTokenStore("tok")), "receiving")
	ctx := context.Background()
	if err := sess.Refresh(ctx); err != nil {
		t.Fatal(err)
	}

	// The second submission while one is in flight must be rejected by the
	// busy flag, not merely debounced.
	done, err := sess.beginMutation()
	if err != nil {
		t.Fatal(err)
	}
	if !sess.Busy() {
		t.Error("busy should be set during a mutation")
	}
	if err := sess.TagUnit(ctx, "u1", models.StatusMissing); err == nil {
		t.Error("second submission during an in-flight mutation must be rejected")
	}
	done()
	if sess.Busy() {
		t.Error("busy must clear")
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	srv := newStageServer(&models.Unit{ID: "u1", Status: models.StatusReceived})
	sess, stop := newTestSession(t, "receiving", srv)
	defer stop()
	ctx := context.Background()

	if err := sess.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	if len(sess.Units()) != 1 {
		t.Fatal("precondition: one unit loaded")
	}

	sess.SetStage("sorting") // clears the list and bumps the epoch

	// A refresh started before the stage switch resolves now; its epoch is
	// stale so it must not repopulate the session.
	sess.mu.Lock()
	staleEpoch := sess.epoch - 1
	sess.mu.Unlock()

	resp, err := sess.client.ListByStage(ctx, "receiving", FilterSpec{})
	if err != nil {
		t.Fatal(err)
	}
	sess.mu.Lock()
	if sess.epoch == staleEpoch {
		sess.units = resp.Data
		sess.total = resp.Total
	}
	sess.mu.Unlock()

	if len(sess.Units()) != 0 {
		t.Error("stale response mutated session state")
	}
}

func TestSetStageClearsSelection(t *testing.T) {
	srv := newStageServer()
	sess, stop := newTestSession(t, "receiving", srv)
	defer stop()

	sess.Selection().Toggle("u1")
	sess.SetStage("sorting")
	if sess.Selection().Active() {
		t.Error("switching tabs with an active selection must clear it")
	}
	if sess.Stage() != "sorting" {
		t.Errorf("stage = %q", sess.Stage())
	}
}
