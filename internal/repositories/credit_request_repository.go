package repositories

import (
	"context"
	"errors"
	"fmt"

	"fulfillment-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CreditRequestRepository struct {
	DB *pgxpool.Pool
}

func NewCreditRequestRepository(db *pgxpool.Pool) *CreditRequestRepository {
	return &CreditRequestRepository{DB: db}
}

const creditColumns = `id, unit_id, status, reason, requested_at, COALESCE(review_notes, ''),
	        reviewed_at, reviewed_by_user_id`

func (r *CreditRequestRepository) Get(ctx context.Context, id int) (*models.CreditRequest, error) {
	row := r.DB.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM credit_requests WHERE id=$1`, creditColumns), id)

	var c models.CreditRequest
	err := row.Scan(&c.ID, &c.UnitID, &c.Status, &c.Reason, &c.RequestedAt,
		&c.ReviewNotes, &c.ReviewedAt, &c.ReviewedByUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("credit request %d not found", id)
		}
		return nil, err
	}
	return &c, nil
}

// List returns one page of credit requests, newest first, with the total
// row count for the pager.
func (r *CreditRequestRepository) List(ctx context.Context, limit, offset int) ([]*models.CreditRequest, int, error) {
	rows, err := r.DB.Query(ctx, fmt.Sprintf(
		`SELECT %s, COUNT(*) OVER() FROM credit_requests
		 ORDER BY requested_at DESC LIMIT $1 OFFSET $2`, creditColumns),
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []*models.CreditRequest
	total := 0
	for rows.Next() {
		var c models.CreditRequest
		err := rows.Scan(&c.ID, &c.UnitID, &c.Status, &c.Reason, &c.RequestedAt,
			&c.ReviewNotes, &c.ReviewedAt, &c.ReviewedByUserID, &total)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, &c)
	}
	return requests, total, rows.Err()
}

// Review records a decision. The WHERE clause re-checks reviewability so a
// concurrent reviewer cannot resurrect a pending state.
func (r *CreditRequestRepository) Review(ctx context.Context, id int, decision models.CreditDecision, notes string, userID int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE credit_requests
		 SET status=$1, review_notes=$2, reviewed_at=NOW(), reviewed_by_user_id=$3
		 WHERE id=$4 AND status <> $1`,
		string(decision), notes, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("credit request %d not reviewable as %s", id, decision)
	}
	return nil
}

// Create inserts a buyer-raised claim. Requests arrive from the storefront
// side; the admin module only ever reviews them.
func (r *CreditRequestRepository) Create(ctx context.Context, c *models.CreditRequest) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO credit_requests (unit_id, status, reason)
		 VALUES ($1, 'pending', $2)
		 RETURNING id, status, requested_at`,
		c.UnitID, c.Reason).Scan(&c.ID, &c.Status, &c.RequestedAt)
}
