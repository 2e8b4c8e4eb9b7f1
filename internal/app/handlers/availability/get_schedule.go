package availability

import (
	"context"

	"fleetrent/internal/app/dto"
	"fleetrent/internal/app/handlers/support"
	"fleetrent/internal/app/queries"
	"fleetrent/internal/app/uow"
	domainvehicle "fleetrent/internal/domain/vehicle"
)

const getScheduleKey = "availability.schedule"

type GetScheduleQuery struct {
	VehicleID string
}

func (q GetScheduleQuery) Key() string { return getScheduleKey }

type GetScheduleHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetScheduleHandler) Handle(ctx context.Context, q GetScheduleQuery) (dto.Schedule, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Schedule{}, err
	}
	defer cleanup()

	schedule, err := unit.Schedules().Schedule(ctx, domainvehicle.VehicleID(q.VehicleID))
	if err != nil {
		return dto.Schedule{}, err
	}
	return dto.ScheduleFromDomain(schedule), nil
}

var _ queries.Handler[GetScheduleQuery, dto.Schedule] = (*GetScheduleHandler)(nil)
