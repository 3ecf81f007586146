package repositories

import (
	"context"
	"errors"
	"fmt"

	"fulfillment-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrAlreadyGrouped is returned when any unit in an assignment batch already
// carries a container ref for the stage being assigned.
var ErrAlreadyGrouped = errors.New("one or more units are already grouped for this stage")

type ContainerRepository struct {
	DB *pgxpool.Pool
}

func NewContainerRepository(db *pgxpool.Pool) *ContainerRepository {
	return &ContainerRepository{DB: db}
}

func refColumn(kind models.ContainerKind) string {
	switch kind {
	case models.ContainerTray:
		return "tray_number"
	case models.ContainerBox:
		return "box_number"
	case models.ContainerTracking:
		return "tracking_number"
	}
	return ""
}

// Assign upserts the container row keyed by (kind, code) and appends the code
// to each unit's ref column for that stage, in one transaction. Preconditions
// re-checked inside the transaction: every unit exists and is ungrouped for
// the stage, or already in this very container (idempotent re-sends). Status
// is untouched; grouping and status tagging are separate user actions.
func (r *ContainerRepository) Assign(ctx context.Context, req *models.AssignContainerRequest) (int, error) {
	kind := req.Kind()
	col := refColumn(kind)
	if col == "" {
		return 0, errors.New("unknown container kind")
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var containerID int
	err = tx.QueryRow(ctx,
		`INSERT INTO containers (code, kind, length_cm, width_cm, height_cm, weight_kg,
		                         delivery_date, delivery_time, is_delayed)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7,'')::date, NULLIF($8,''), $9)
		 ON CONFLICT (kind, code) DO UPDATE SET
		   length_cm = COALESCE(EXCLUDED.length_cm, containers.length_cm),
		   width_cm = COALESCE(EXCLUDED.width_cm, containers.width_cm),
		   height_cm = COALESCE(EXCLUDED.height_cm, containers.height_cm),
		   weight_kg = COALESCE(EXCLUDED.weight_kg, containers.weight_kg),
		   delivery_date = COALESCE(EXCLUDED.delivery_date, containers.delivery_date),
		   delivery_time = COALESCE(EXCLUDED.delivery_time, containers.delivery_time),
		   is_delayed = EXCLUDED.is_delayed
		 RETURNING id`,
		req.Code(), string(kind), boxField(req, "length"), boxField(req, "width"),
		boxField(req, "height"), boxField(req, "weight"),
		req.DeliveryDate, req.DeliveryTime, req.IsDelayed).Scan(&containerID)
	if err != nil {
		return 0, err
	}

	var eligible int
	err = tx.QueryRow(ctx, fmt.Sprintf(
		`SELECT COUNT(*) FROM units
		 WHERE id = ANY($1) AND (%s IS NULL OR %s = $2)`, col, col),
		req.OrderIDs, req.Code()).Scan(&eligible)
	if err != nil {
		return 0, err
	}
	if eligible != len(req.OrderIDs) {
		return 0, ErrAlreadyGrouped
	}

	// Only the stage's own ref column changes; earlier refs are kept.
	_, err = tx.Exec(ctx, fmt.Sprintf(
		`UPDATE units SET %s=$1, updated_at=NOW() WHERE id = ANY($2)`, col),
		req.Code(), req.OrderIDs)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return containerID, nil
}

func boxField(req *models.AssignContainerRequest, field string) *float64 {
	if req.BoxDetails == nil {
		return nil
	}
	var v float64
	switch field {
	case "length":
		v = req.BoxDetails.LengthCM
	case "width":
		v = req.BoxDetails.WidthCM
	case "height":
		v = req.BoxDetails.HeightCM
	case "weight":
		v = req.BoxDetails.WeightKG
	}
	return &v
}

// GetByCode returns the container row for a human-entered or scanned code.
func (r *ContainerRepository) GetByCode(ctx context.Context, kind models.ContainerKind, code string) (*models.Container, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, code, kind, length_cm, width_cm, height_cm, weight_kg,
		        delivery_date::text, delivery_time, is_delayed, created_at
		 FROM containers WHERE kind=$1 AND code=$2`, string(kind), code)

	var c models.Container
	err := row.Scan(&c.ID, &c.Code, &c.Kind, &c.LengthCM, &c.WidthCM, &c.HeightCM,
		&c.WeightKG, &c.DeliveryDate, &c.DeliveryTime, &c.IsDelayed, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("container %s not found", code)
		}
		return nil, err
	}
	return &c, nil
}

// Members returns the container's current units in stable order.
func (r *ContainerRepository) Members(ctx context.Context, kind models.ContainerKind, code string) ([]*models.Unit, error) {
	col := refColumn(kind)
	if col == "" {
		return nil, errors.New("unknown container kind")
	}
	rows, err := r.DB.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM units u WHERE u.%s = $1 ORDER BY u.id`, unitColumns, col), code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []*models.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}
