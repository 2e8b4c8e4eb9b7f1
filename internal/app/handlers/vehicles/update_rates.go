package vehicles

import (
	"context"
	"time"

	"fleetrent/internal/app/commands"
	"fleetrent/internal/app/handlers/support"
	"fleetrent/internal/app/outbox"
	"fleetrent/internal/app/uow"
	"fleetrent/internal/domain/shared/money"
	domainvehicle "fleetrent/internal/domain/vehicle"
)

const updateRatesKey = "vehicle.update_rates"

type UpdateRatesCommand struct {
	VehicleID            string
	Currency             string
	HourlyRate           int64
	DailyRate            int64
	WeeklyRate           int64
	LateReturnPerHour    int64
	ExtraDistancePerUnit int64
}

func (c UpdateRatesCommand) Key() string { return updateRatesKey }

type UpdateRatesResult struct {
	VehicleID string `json:"vehicle_id"`
}

type UpdateRatesHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *UpdateRatesHandler) Handle(ctx context.Context, cmd UpdateRatesCommand) (_ *UpdateRatesResult, err error) {
	unit, ctx, done, err := support.BeginUnit(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { err = done(err) }()

	veh, err := unit.Vehicles().ByID(ctx, domainvehicle.VehicleID(cmd.VehicleID))
	if err != nil {
		return nil, err
	}
	cur := cmd.Currency
	if cur == "" {
		cur = veh.Rates.Daily.Currency
	}
	rates := domainvehicle.RateSchedule{
		Hourly: money.Money{Amount: cmd.HourlyRate, Currency: cur},
		Daily:  money.Money{Amount: cmd.DailyRate, Currency: cur},
		Weekly: money.Money{Amount: cmd.WeeklyRate, Currency: cur},
	}
	extras := domainvehicle.ExtraChargeRates{
		LateReturnPerHour:    money.Money{Amount: cmd.LateReturnPerHour, Currency: cur},
		ExtraDistancePerUnit: money.Money{Amount: cmd.ExtraDistancePerUnit, Currency: cur},
	}
	if err := veh.UpdateRates(rates, extras, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := unit.Vehicles().Save(ctx, veh); err != nil {
		return nil, err
	}

	pending := veh.PendingEvents()
	veh.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, encoderOrDefault(h.Encoder), pending); err != nil {
		return nil, err
	}

	return &UpdateRatesResult{VehicleID: string(veh.ID)}, nil
}

var _ commands.Handler[UpdateRatesCommand, *UpdateRatesResult] = (*UpdateRatesHandler)(nil)
