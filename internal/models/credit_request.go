package models

import "time"

// CreditDecision is a review outcome for a credit request.
type CreditDecision string

const (
	CreditPending  CreditDecision = "pending"
	CreditApproved CreditDecision = "approved"
	CreditRejected CreditDecision = "rejected"
)

// CreditRequest is a buyer-raised claim of loss or damage against a unit.
// Created externally; transitions only via admin review. Approved and
// rejected are mutually reversible: a re-review can flip the decision.
type CreditRequest struct {
	ID               int            `json:"id"`
	UnitID           string         `json:"unit_id"`
	Status           CreditDecision `json:"status"`
	Reason           string         `json:"reason"`
	RequestedAt      time.Time      `json:"requested_at"`
	ReviewNotes      string         `json:"review_notes,omitempty"`
	ReviewedAt       *time.Time     `json:"reviewed_at,omitempty"`
	ReviewedByUserID *int           `json:"reviewed_by_user_id,omitempty"`
}

// CanReview reports whether a request in the given status accepts the
// decision. Pending goes to either outcome; approved and rejected may be
// flipped by a re-review but never back to pending.
func CanReview(current, decision CreditDecision) bool {
	if decision != CreditApproved && decision != CreditRejected {
		return false
	}
	switch current {
	case CreditPending:
		return true
	case CreditApproved, CreditRejected:
		return decision != current
	}
	return false
}

type ReviewDecisionRequest struct {
	Decision CreditDecision `json:"decision"`
	Notes    string         `json:"notes"`
}

type CreditListResponse struct {
	Data  []*CreditRequest `json:"data"`
	Total int              `json:"total"`
}
