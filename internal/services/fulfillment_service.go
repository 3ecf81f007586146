package services

import (
	"context"
	"errors"
	"fmt"

	"fulfillment-backend/internal/models"
	"fulfillment-backend/internal/repositories"
)

// UnitStore is the persistence surface the status engine needs.
// *repositories.UnitRepository satisfies it.
type UnitStore interface {
	ListByStatuses(ctx context.Context, statuses []models.Status, f repositories.UnitFilters) ([]*models.Unit, int, error)
	Get(ctx context.Context, id string) (*models.Unit, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Unit, error)
	ApplyStatusBatch(ctx context.Context, ids []string, target models.Status, allowedFrom []models.Status) (int, error)
	CountsByStatus(ctx context.Context) (map[models.Status]int, error)
}

// FulfillmentService is the server-authoritative status engine. It alone
// decides transition legality; clients only offer restricted menus.
type FulfillmentService struct {
	Units UnitStore
}

func NewFulfillmentService(units UnitStore) *FulfillmentService {
	return &FulfillmentService{Units: units}
}

// ListByStage returns a stage's unit bucket under the given filters.
func (s *FulfillmentService) ListByStage(ctx context.Context, stage string, f repositories.UnitFilters) ([]*models.Unit, int, error) {
	statuses := models.StageStatuses(stage)
	if len(statuses) == 0 {
		return nil, 0, fmt.Errorf("unknown stage: %s", stage)
	}
	return s.Units.ListByStatuses(ctx, statuses, f)
}

// SetStatus applies one target status to the whole id list atomically.
// Either every unit moves (or already sits at the target) or none does.
// Returns the refreshed per-status counts on success.
func (s *FulfillmentService) SetStatus(ctx context.Context, ids []string, target models.Status) (int, map[models.Status]int, error) {
	if len(ids) == 0 {
		return 0, nil, errors.New("no unit ids provided")
	}
	if !models.IsValidStatus(target) {
		return 0, nil, fmt.Errorf("unknown status: %s", target)
	}

	ids = dedupe(ids)
	allowedFrom := models.TransitionSources(target)

	updated, err := s.Units.ApplyStatusBatch(ctx, ids, target, allowedFrom)
	if err != nil {
		return 0, nil, err
	}

	counts, err := s.Units.CountsByStatus(ctx)
	if err != nil {
		// The write committed; counts are advisory aggregates.
		counts = nil
	}
	return updated, counts, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
