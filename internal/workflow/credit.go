package workflow

import (
	"context"
	"fmt"
	"sync"

	"fulfillment-backend/internal/models"
)

// CreditReviewList holds one loaded page of "Journey Mishap" claims. Review
// is the single place in the app allowed to update a displayed status before
// server confirmation, via the OptimisticMutation wrapper.
type CreditReviewList struct {
	mu     sync.Mutex
	client *Client
	page   int
	limit  int
	rows   []*models.CreditRequest
	total  int
	epoch  uint64
}

func NewCreditReviewList(client *Client) *CreditReviewList {
	return &CreditReviewList{client: client, page: 1, limit: 50}
}

// Load fetches one page of claims, replacing the current rows.
func (l *CreditReviewList) Load(ctx context.Context, page, limit int) error {
	l.mu.Lock()
	if page > 0 {
		l.page = page
	}
	if limit > 0 {
		l.limit = limit
	}
	epoch := l.epoch
	p, lim := l.page, l.limit
	l.mu.Unlock()

	resp, err := l.client.ListCreditRequests(ctx, p, lim)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.epoch != epoch {
		return nil
	}
	l.rows = resp.Data
	l.total = resp.Total
	return nil
}

// Close discards responses still in flight for this list.
func (l *CreditReviewList) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.epoch++
}

func (l *CreditReviewList) Rows() []*models.CreditRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*models.CreditRequest, len(l.rows))
	copy(out, l.rows)
	return out
}

func (l *CreditReviewList) Total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// PendingCount counts pending rows in the currently loaded page only. Under
// pagination this is a documented lower bound on the true pending total, not
// a separately fetched count.
func (l *CreditReviewList) PendingCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, r := range l.rows {
		if r.Status == models.CreditPending {
			n++
		}
	}
	return n
}

// Review records a decision on one loaded claim. The row's displayed status
// flips immediately; a failed confirmation reverts it to the prior decision
// and surfaces the error.
func (l *CreditReviewList) Review(ctx context.Context, id int, decision models.CreditDecision, notes string) error {
	l.mu.Lock()
	var row *models.CreditRequest
	for _, r := range l.rows {
		if r.ID == id {
			row = r
			break
		}
	}
	l.mu.Unlock()
	if row == nil {
		return ValidationError{Message: fmt.Sprintf("Credit request %d is not on this page.", id)}
	}
	if !models.CanReview(row.Status, decision) {
		return ValidationError{Message: fmt.Sprintf("Cannot mark a %s request as %s.", row.Status, decision)}
	}

	prior := row.Status
	return OptimisticMutation{
		Apply: func() {
			l.mu.Lock()
			row.Status = decision
			l.mu.Unlock()
		},
		Revert: func() {
			l.mu.Lock()
			row.Status = prior
			l.mu.Unlock()
		},
		Confirm: func(ctx context.Context) error {
			reviewed, err := l.client.ReviewCredit(ctx, id, decision, notes)
			if err != nil {
				return err
			}
			l.mu.Lock()
			row.ReviewNotes = reviewed.ReviewNotes
			row.ReviewedAt = reviewed.ReviewedAt
			row.ReviewedByUserID = reviewed.ReviewedByUserID
			l.mu.Unlock()
			return nil
		},
	}.Run(ctx)
}
