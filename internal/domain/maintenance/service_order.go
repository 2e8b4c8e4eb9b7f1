package maintenance

import (
	"context"
	"errors"
	"time"

	"fleetrent/internal/domain/shared/money"
	"fleetrent/internal/domain/shared/timespan"
	"fleetrent/internal/domain/vehicle"
)

var (
	ErrInvalidState  = errors.New("maintenance: invalid status transition")
	ErrWorkRequired  = errors.New("maintenance: work type required")
	ErrOrderNotFound = errors.New("maintenance: service order not found")
)

type OrderID string

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// ServiceOrder takes a vehicle off the road for the scheduled span. Open
// orders are mirrored as maintenance blocks on the vehicle schedule.
type ServiceOrder struct {
	ID          OrderID
	VehicleID   vehicle.VehicleID
	Span        timespan.Span
	WorkType    string
	Notes       string
	Cost        money.Money
	Status      Status
	CompletedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int64
}

type Repository interface {
	ByID(ctx context.Context, id OrderID) (*ServiceOrder, error)
	Save(ctx context.Context, order *ServiceOrder) error
	ListOpenByVehicle(ctx context.Context, vehicleID vehicle.VehicleID) ([]*ServiceOrder, error)
}

type ScheduleParams struct {
	ID        OrderID
	VehicleID vehicle.VehicleID
	Span      timespan.Span
	WorkType  string
	Notes     string
	CreatedAt time.Time
}

func Schedule(params ScheduleParams) (*ServiceOrder, error) {
	if params.WorkType == "" {
		return nil, ErrWorkRequired
	}
	if err := params.Span.Validate(); err != nil {
		return nil, err
	}
	now := params.CreatedAt.UTC()
	return &ServiceOrder{
		ID:        params.ID,
		VehicleID: params.VehicleID,
		Span:      params.Span,
		WorkType:  params.WorkType,
		Notes:     params.Notes,
		Status:    StatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (o *ServiceOrder) Complete(cost money.Money, now time.Time) error {
	if o.Status != StatusScheduled {
		return ErrInvalidState
	}
	if cost.IsNegative() {
		return errors.New("maintenance: cost cannot be negative")
	}
	o.Cost = cost
	o.Status = StatusCompleted
	o.CompletedAt = now.UTC()
	o.UpdatedAt = o.CompletedAt
	return nil
}

func (o *ServiceOrder) Cancel(now time.Time) error {
	if o.Status != StatusScheduled {
		return ErrInvalidState
	}
	o.Status = StatusCancelled
	o.UpdatedAt = now.UTC()
	return nil
}
