package vehicles

import (
	"context"
	"time"

	"fleetrent/internal/app/commands"
	"fleetrent/internal/app/handlers/support"
	"fleetrent/internal/app/uow"
	domainmaintenance "fleetrent/internal/domain/maintenance"
	"fleetrent/internal/domain/shared/money"
	"fleetrent/internal/domain/shared/timespan"
	domainvehicle "fleetrent/internal/domain/vehicle"
)

const (
	scheduleServiceKey = "vehicle.schedule_service"
	completeServiceKey = "vehicle.complete_service"
)

type ScheduleServiceCommand struct {
	CommandID string
	VehicleID string
	From      time.Time
	To        time.Time
	WorkType  string
	Notes     string
}

func (c ScheduleServiceCommand) Key() string { return scheduleServiceKey }

type ScheduleServiceResult struct {
	OrderID string `json:"order_id"`
}

type ScheduleServiceHandler struct {
	UoWFactory uow.UoWFactory
}

// Handle opens a service order and blocks the vehicle schedule for its
// span so the window cannot be double-booked.
func (h *ScheduleServiceHandler) Handle(ctx context.Context, cmd ScheduleServiceCommand) (_ *ScheduleServiceResult, err error) {
	unit, ctx, done, err := support.BeginUnit(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { err = done(err) }()

	span, err := timespan.New(cmd.From, cmd.To)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	veh, err := unit.Vehicles().ByID(ctx, domainvehicle.VehicleID(cmd.VehicleID))
	if err != nil {
		return nil, err
	}

	order, err := domainmaintenance.Schedule(domainmaintenance.ScheduleParams{
		ID:        domainmaintenance.OrderID(cmd.CommandID),
		VehicleID: veh.ID,
		Span:      span,
		WorkType:  cmd.WorkType,
		Notes:     cmd.Notes,
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	schedule, err := unit.Schedules().Schedule(ctx, veh.ID)
	if err != nil {
		return nil, err
	}
	if err := schedule.BlockForMaintenance(span, string(order.ID), now); err != nil {
		return nil, err
	}

	if err := unit.ServiceOrders().Save(ctx, order); err != nil {
		return nil, err
	}
	if err := unit.Schedules().Save(ctx, schedule); err != nil {
		return nil, err
	}

	return &ScheduleServiceResult{OrderID: string(order.ID)}, nil
}

type CompleteServiceCommand struct {
	OrderID  string
	Cost     int64
	Currency string
}

func (c CompleteServiceCommand) Key() string { return completeServiceKey }

type CompleteServiceResult struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type CompleteServiceHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *CompleteServiceHandler) Handle(ctx context.Context, cmd CompleteServiceCommand) (_ *CompleteServiceResult, err error) {
	unit, ctx, done, err := support.BeginUnit(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { err = done(err) }()

	now := time.Now().UTC()
	order, err := unit.ServiceOrders().ByID(ctx, domainmaintenance.OrderID(cmd.OrderID))
	if err != nil {
		return nil, err
	}
	cost := money.Money{Amount: cmd.Cost, Currency: cmd.Currency}
	if err := order.Complete(cost, now); err != nil {
		return nil, err
	}

	schedule, err := unit.Schedules().Schedule(ctx, order.VehicleID)
	if err != nil {
		return nil, err
	}
	if err := schedule.Release(string(order.ID), now); err == nil {
		if err := unit.Schedules().Save(ctx, schedule); err != nil {
			return nil, err
		}
	}

	if err := unit.ServiceOrders().Save(ctx, order); err != nil {
		return nil, err
	}

	return &CompleteServiceResult{OrderID: string(order.ID), Status: string(order.Status)}, nil
}

var _ commands.Handler[ScheduleServiceCommand, *ScheduleServiceResult] = (*ScheduleServiceHandler)(nil)
var _ commands.Handler[CompleteServiceCommand, *CompleteServiceResult] = (*CompleteServiceHandler)(nil)
