package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment-backend/internal/models"
)

// ContainerStore is the persistence surface for grouping.
// *repositories.ContainerRepository satisfies it.
type ContainerStore interface {
	Assign(ctx context.Context, req *models.AssignContainerRequest) (int, error)
	GetByCode(ctx context.Context, kind models.ContainerKind, code string) (*models.Container, error)
	Members(ctx context.Context, kind models.ContainerKind, code string) ([]*models.Unit, error)
}

type ContainerService struct {
	Containers ContainerStore
}

func NewContainerService(containers ContainerStore) *ContainerService {
	return &ContainerService{Containers: containers}
}

// Assign is the single code path for grouping — one explicit unit and a full
// selection arrive through the same request shape and the same validation.
func (s *ContainerService) Assign(ctx context.Context, req *models.AssignContainerRequest) (int, error) {
	if len(req.OrderIDs) == 0 {
		return 0, errors.New("no unit ids provided")
	}
	kind := req.Kind()
	if kind == "" {
		return 0, errors.New("a tray number, box details or tracking number is required")
	}
	if req.Code() == "" {
		return 0, errors.New("container code must not be empty")
	}
	if kind == models.ContainerBox {
		b := req.BoxDetails
		if b.LengthCM <= 0 || b.WidthCM <= 0 || b.HeightCM <= 0 || b.WeightKG <= 0 {
			return 0, errors.New("box dimensions and weight must be positive")
		}
	}
	if kind == models.ContainerTracking && req.DeliveryDate == "" {
		return 0, errors.New("delivery date is required for a tracking assignment")
	}
	return s.Containers.Assign(ctx, req)
}

// Lookup materializes a container detail screen from a human-entered or
// scanned code. Count and flight date come from the current members, never
// from anything cached on the client.
func (s *ContainerService) Lookup(ctx context.Context, kind models.ContainerKind, code string) (*models.ContainerDetail, error) {
	if code == "" {
		return nil, errors.New("container code must not be empty")
	}
	container, err := s.Containers.GetByCode(ctx, kind, code)
	if err != nil {
		return nil, err
	}
	members, err := s.Containers.Members(ctx, kind, code)
	if err != nil {
		return nil, fmt.Errorf("loading members of %s: %w", code, err)
	}

	detail := &models.ContainerDetail{
		Container: container,
		Data:      members,
		UnitCount: len(members),
	}
	detail.FlightDate = earliestFlight(members)
	return detail, nil
}

func earliestFlight(units []*models.Unit) *time.Time {
	var earliest *time.Time
	for _, u := range units {
		if u.FlightDate == nil {
			continue
		}
		if earliest == nil || u.FlightDate.Before(*earliest) {
			earliest = u.FlightDate
		}
	}
	return earliest
}
