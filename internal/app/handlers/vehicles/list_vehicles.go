package vehicles

import (
	"context"

	"fleetrent/internal/app/dto"
	"fleetrent/internal/app/handlers/support"
	"fleetrent/internal/app/queries"
	"fleetrent/internal/app/uow"
	domainvehicle "fleetrent/internal/domain/vehicle"
)

const (
	listVehiclesKey = "vehicle.list"
	getVehicleKey   = "vehicle.get"
)

type ListVehiclesQuery struct{}

func (q ListVehiclesQuery) Key() string { return listVehiclesKey }

type ListVehiclesHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListVehiclesHandler) Handle(ctx context.Context, _ ListVehiclesQuery) ([]dto.Vehicle, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	items, err := unit.Vehicles().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Vehicle, 0, len(items))
	for _, v := range items {
		out = append(out, dto.VehicleFromDomain(v))
	}
	return out, nil
}

type GetVehicleQuery struct {
	VehicleID string
}

func (q GetVehicleQuery) Key() string { return getVehicleKey }

type GetVehicleHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetVehicleHandler) Handle(ctx context.Context, q GetVehicleQuery) (dto.Vehicle, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Vehicle{}, err
	}
	defer cleanup()

	veh, err := unit.Vehicles().ByID(ctx, domainvehicle.VehicleID(q.VehicleID))
	if err != nil {
		return dto.Vehicle{}, err
	}
	return dto.VehicleFromDomain(veh), nil
}

var _ queries.Handler[ListVehiclesQuery, []dto.Vehicle] = (*ListVehiclesHandler)(nil)
var _ queries.Handler[GetVehicleQuery, dto.Vehicle] = (*GetVehicleHandler)(nil)
