package vehicles

import (
	"context"
	"time"

	"fleetrent/internal/app/commands"
	"fleetrent/internal/app/handlers/support"
	"fleetrent/internal/app/outbox"
	"fleetrent/internal/app/uow"
	domainpricing "fleetrent/internal/domain/pricing"
	"fleetrent/internal/domain/shared/money"
	domainvehicle "fleetrent/internal/domain/vehicle"
)

const registerVehicleKey = "vehicle.register"

type RegisterVehicleCommand struct {
	CommandID            string
	Plate                string
	Make                 string
	Model                string
	Year                 int
	Class                string
	Odometer             int64
	Currency             string
	HourlyRate           int64
	DailyRate            int64
	WeeklyRate           int64
	LateReturnPerHour    int64
	ExtraDistancePerUnit int64
}

func (c RegisterVehicleCommand) Key() string { return registerVehicleKey }

type RegisterVehicleResult struct {
	VehicleID string `json:"vehicle_id"`
}

type RegisterVehicleHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *RegisterVehicleHandler) Handle(ctx context.Context, cmd RegisterVehicleCommand) (_ *RegisterVehicleResult, err error) {
	unit, ctx, done, err := support.BeginUnit(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { err = done(err) }()

	cur := cmd.Currency
	if cur == "" {
		cur = domainpricing.DefaultCurrency
	}
	veh, err := domainvehicle.Register(domainvehicle.RegisterParams{
		ID:       domainvehicle.VehicleID(cmd.CommandID),
		Plate:    cmd.Plate,
		Make:     cmd.Make,
		Model:    cmd.Model,
		Year:     cmd.Year,
		Class:    cmd.Class,
		Odometer: cmd.Odometer,
		Rates: domainvehicle.RateSchedule{
			Hourly: money.Money{Amount: cmd.HourlyRate, Currency: cur},
			Daily:  money.Money{Amount: cmd.DailyRate, Currency: cur},
			Weekly: money.Money{Amount: cmd.WeeklyRate, Currency: cur},
		},
		Extras: domainvehicle.ExtraChargeRates{
			LateReturnPerHour:    money.Money{Amount: cmd.LateReturnPerHour, Currency: cur},
			ExtraDistancePerUnit: money.Money{Amount: cmd.ExtraDistancePerUnit, Currency: cur},
		},
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
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

	return &RegisterVehicleResult{VehicleID: string(veh.ID)}, nil
}

func encoderOrDefault(enc outbox.EventEncoder) outbox.EventEncoder {
	if enc != nil {
		return enc
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[RegisterVehicleCommand, *RegisterVehicleResult] = (*RegisterVehicleHandler)(nil)
