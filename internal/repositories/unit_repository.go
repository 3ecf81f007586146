package repositories

import (
	"context"
	"fmt"
	"strings"

	"fulfillment-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

const unitColumns = `u.id, u.status, u.plant_code, u.source_country, u.flight_date,
	        u.tray_number, u.box_number, u.tracking_number,
	        u.receiver_id, u.seller_id, u.buyer_id, u.garden, u.listing_type, u.quantity,
	        u.created_at, u.updated_at`

// UnitFilters are the optional listByStage filters. A zero field means the
// filter is not applied at all.
type UnitFilters struct {
	Sort          string
	DateFrom      string
	DateTo        string
	SourceCountry []string
	Garden        string
	Seller        int
	Buyer         int
	Receiver      int
	Search        string
}

type UnitRepository struct {
	DB *pgxpool.Pool
}

func NewUnitRepository(db *pgxpool.Pool) *UnitRepository {
	return &UnitRepository{DB: db}
}

func scanUnit(row interface{ Scan(...any) error }) (*models.Unit, error) {
	var u models.Unit
	err := row.Scan(&u.ID, &u.Status, &u.PlantCode, &u.SourceCountry, &u.FlightDate,
		&u.TrayNumber, &u.BoxNumber, &u.TrackingNumber,
		&u.ReceiverID, &u.SellerID, &u.BuyerID, &u.Garden, &u.ListingType, &u.Quantity,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListByStatuses returns the units in the given status bucket, filtered and
// ordered, together with the total match count.
func (r *UnitRepository) ListByStatuses(ctx context.Context, statuses []models.Status, f UnitFilters) ([]*models.Unit, int, error) {
	where := []string{"u.status = ANY($1)"}
	args := []any{statusStrings(statuses)}

	add := func(clause string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if f.DateFrom != "" {
		add("u.flight_date >= $%d::date", f.DateFrom)
	}
	if f.DateTo != "" {
		add("u.flight_date <= $%d::date", f.DateTo)
	}
	if len(f.SourceCountry) > 0 {
		add("u.source_country = ANY($%d)", f.SourceCountry)
	}
	if f.Garden != "" {
		add("u.garden = $%d", f.Garden)
	}
	if f.Seller > 0 {
		add("u.seller_id = $%d", f.Seller)
	}
	if f.Buyer > 0 {
		add("u.buyer_id = $%d", f.Buyer)
	}
	if f.Receiver > 0 {
		add("u.receiver_id = $%d", f.Receiver)
	}
	if f.Search != "" {
		args = append(args, f.Search)
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(u.id ILIKE '%%' || $%d || '%%' OR u.plant_code ILIKE '%%' || $%d || '%%')", n, n))
	}

	order := "u.created_at DESC"
	switch f.Sort {
	case "flight_date":
		order = "u.flight_date ASC NULLS LAST, u.id ASC"
	case "flight_date_desc":
		order = "u.flight_date DESC NULLS LAST, u.id ASC"
	case "plant_code":
		order = "u.plant_code ASC, u.id ASC"
	case "oldest":
		order = "u.created_at ASC"
	}

	query := fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total
	 FROM units u
	 WHERE %s
	 ORDER BY %s`, unitColumns, strings.Join(where, " AND "), order)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var units []*models.Unit
	total := 0
	for rows.Next() {
		var u models.Unit
		err := rows.Scan(&u.ID, &u.Status, &u.PlantCode, &u.SourceCountry, &u.FlightDate,
			&u.TrayNumber, &u.BoxNumber, &u.TrackingNumber,
			&u.ReceiverID, &u.SellerID, &u.BuyerID, &u.Garden, &u.ListingType, &u.Quantity,
			&u.CreatedAt, &u.UpdatedAt, &total)
		if err != nil {
			return nil, 0, err
		}
		units = append(units, &u)
	}
	return units, total, rows.Err()
}

func (r *UnitRepository) Get(ctx context.Context, id string) (*models.Unit, error) {
	row := r.DB.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM units u WHERE u.id=$1`, unitColumns), id)
	return scanUnit(row)
}

func (r *UnitRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Unit, error) {
	rows, err := r.DB.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM units u WHERE u.id = ANY($1) ORDER BY u.id`, unitColumns), ids)
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

// ApplyStatusBatch moves every id to target in one transaction. allowedFrom
// is the set of statuses the transition is legal from (target itself
// included for idempotence). If any id is missing or in a status outside
// allowedFrom the whole batch is rolled back.
func (r *UnitRepository) ApplyStatusBatch(ctx context.Context, ids []string, target models.Status, allowedFrom []models.Status) (int, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var eligible int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM units WHERE id = ANY($1) AND status = ANY($2)`,
		ids, statusStrings(allowedFrom)).Scan(&eligible)
	if err != nil {
		return 0, err
	}
	if eligible != len(ids) {
		return 0, fmt.Errorf("%d of %d units cannot move to %s", len(ids)-eligible, len(ids), target)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE units SET status=$1, updated_at=NOW() WHERE id = ANY($2)`,
		string(target), ids)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// CountsByStatus returns the per-status unit counts for tab aggregates.
func (r *UnitRepository) CountsByStatus(ctx context.Context) (map[models.Status]int, error) {
	rows, err := r.DB.Query(ctx, `SELECT status, COUNT(*) FROM units GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.Status]int)
	for rows.Next() {
		var s string
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		counts[models.Status(s)] = n
	}
	return counts, rows.Err()
}

func statusStrings(statuses []models.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
