package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fulfillment-backend/internal/models"
)

type fakeCreditStore struct {
	rows map[int]*models.CreditRequest
}

func (s *fakeCreditStore) Get(ctx context.Context, id int) (*models.CreditRequest, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, fmt.Errorf("credit request %d not found", id)
	}
	copied := *row
	return &copied, nil
}

func (s *fakeCreditStore) List(ctx context.Context, limit, offset int) ([]*models.CreditRequest, int, error) {
	var out []*models.CreditRequest
	for _, row := range s.rows {
		out = append(out, row)
	}
	total := len(out)
	if offset > len(out) {
		out = nil
	} else {
		out = out[offset:]
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (s *fakeCreditStore) Review(ctx context.Context, id int, decision models.CreditDecision, notes string, userID int) error {
	row, ok := s.rows[id]
	if !ok || row.Status == decision {
		return fmt.Errorf("credit request %d not reviewable as %s", id, decision)
	}
	row.Status = decision
	row.ReviewNotes = notes
	now := time.Now()
	row.ReviewedAt = &now
	row.ReviewedByUserID = &userID
	return nil
}

func TestReviewDecisionFlow(t *testing.T) {
	store := &fakeCreditStore{rows: map[int]*models.CreditRequest{
		7: {ID: 7, UnitID: "u1", Status: models.CreditPending},
	}}
	svc := NewCreditService(store)
	ctx := context.Background()

	reviewed, err := svc.ReviewDecision(ctx, 7, models.CreditApproved, "arrived broken", 3)
	if err != nil {
		t.Fatal(err)
	}
	if reviewed.Status != models.CreditApproved {
		t.Errorf("status = %s", reviewed.Status)
	}
	if reviewed.ReviewedByUserID == nil || *reviewed.ReviewedByUserID != 3 {
		t.Error("reviewer not recorded")
	}

	// A re-review flips the decision.
	reviewed, err = svc.ReviewDecision(ctx, 7, models.CreditRejected, "second look", 3)
	if err != nil {
		t.Fatal(err)
	}
	if reviewed.Status != models.CreditRejected {
		t.Errorf("status = %s, want rejected after flip", reviewed.Status)
	}
}

func TestReviewDecisionRejectsIllegal(t *testing.T) {
	store := &fakeCreditStore{rows: map[int]*models.CreditRequest{
		7: {ID: 7, UnitID: "u1", Status: models.CreditApproved},
	}}
	svc := NewCreditService(store)
	ctx := context.Background()

	if _, err := svc.ReviewDecision(ctx, 7, models.CreditApproved, "", 3); err == nil {
		t.Error("same decision again must be rejected")
	}
	if _, err := svc.ReviewDecision(ctx, 7, models.CreditPending, "", 3); err == nil {
		t.Error("back to pending must be rejected")
	}
	if _, err := svc.ReviewDecision(ctx, 99, models.CreditApproved, "", 3); err == nil {
		t.Error("unknown request must be rejected")
	}
	if store.rows[7].Status != models.CreditApproved {
		t.Error("rejected reviews must not touch the row")
	}
}

func TestListClampsPaging(t *testing.T) {
	store := &fakeCreditStore{rows: map[int]*models.CreditRequest{
		1: {ID: 1, Status: models.CreditPending},
		2: {ID: 2, Status: models.CreditPending},
	}}
	svc := NewCreditService(store)

	rows, total, err := svc.List(context.Background(), 0, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Errorf("total = %d", total)
	}
	if len(rows) != 2 {
		t.Errorf("rows = %d (limit should clamp to default, page to 1)", len(rows))
	}
}
