package services

import (
	"context"
	"fmt"

	"fulfillment-backend/internal/models"
)

// CreditStore is the persistence surface for buyer claims.
// *repositories.CreditRequestRepository satisfies it.
type CreditStore interface {
	Get(ctx context.Context, id int) (*models.CreditRequest, error)
	List(ctx context.Context, limit, offset int) ([]*models.CreditRequest, int, error)
	Review(ctx context.Context, id int, decision models.CreditDecision, notes string, userID int) error
}

type CreditService struct {
	Credits CreditStore
}

func NewCreditService(credits CreditStore) *CreditService {
	return &CreditService{Credits: credits}
}

func (s *CreditService) List(ctx context.Context, page, limit int) ([]*models.CreditRequest, int, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if page < 1 {
		page = 1
	}
	return s.Credits.List(ctx, limit, (page-1)*limit)
}

// ReviewDecision applies an admin decision to one claim. Pending requests
// accept either outcome; a decided request may only be flipped to the other
// outcome by a re-review.
func (s *CreditService) ReviewDecision(ctx context.Context, id int, decision models.CreditDecision, notes string, userID int) (*models.CreditRequest, error) {
	current, err := s.Credits.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanReview(current.Status, decision) {
		return nil, fmt.Errorf("cannot review %s request as %s", current.Status, decision)
	}
	if err := s.Credits.Review(ctx, id, decision, notes, userID); err != nil {
		return nil, err
	}
	return s.Credits.Get(ctx, id)
}
