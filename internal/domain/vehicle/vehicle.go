package vehicle

import (
	"context"
	"errors"
	"time"

	"fleetrent/internal/domain/shared/events"
	"fleetrent/internal/domain/shared/money"
)

var (
	ErrMissingDailyRate = errors.New("vehicle: daily rate is mandatory and must be positive")
	ErrNegativeRate     = errors.New("vehicle: rates cannot be negative")
	ErrInvalidState     = errors.New("vehicle: invalid status transition")
	ErrOdometerRollback = errors.New("vehicle: odometer cannot decrease")
	ErrVehicleNotFound  = errors.New("vehicle: not found")
)

type VehicleID string

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusRented    Status = "RENTED"
	StatusInService Status = "IN_SERVICE"
	StatusRetired   Status = "RETIRED"
)

// RateSchedule holds the pricing tiers for one vehicle. Daily is the
// mandatory fallback rate; Hourly and Weekly are offered when positive.
type RateSchedule struct {
	Hourly money.Money
	Daily  money.Money
	Weekly money.Money
}

func (r RateSchedule) Validate() error {
	if r.Hourly.IsNegative() || r.Daily.IsNegative() || r.Weekly.IsNegative() {
		return ErrNegativeRate
	}
	if r.Daily.Amount <= 0 {
		return ErrMissingDailyRate
	}
	return nil
}

// ExtraChargeRates holds per-vehicle surcharge rates. A zero amount means
// "not configured": the pricing engine substitutes its own default.
type ExtraChargeRates struct {
	LateReturnPerHour    money.Money
	ExtraDistancePerUnit money.Money
}

func (e ExtraChargeRates) Validate() error {
	if e.LateReturnPerHour.IsNegative() || e.ExtraDistancePerUnit.IsNegative() {
		return ErrNegativeRate
	}
	return nil
}

type Vehicle struct {
	ID        VehicleID
	Plate     string
	Make      string
	Model     string
	Year      int
	Class     string
	Status    Status
	Odometer  int64
	Rates     RateSchedule
	Extras    ExtraChargeRates
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id VehicleID) (*Vehicle, error)
	Save(ctx context.Context, v *Vehicle) error
	List(ctx context.Context) ([]*Vehicle, error)
}

type RegisterParams struct {
	ID        VehicleID
	Plate     string
	Make      string
	Model     string
	Year      int
	Class     string
	Odometer  int64
	Rates     RateSchedule
	Extras    ExtraChargeRates
	CreatedAt time.Time
}

func Register(params RegisterParams) (*Vehicle, error) {
	if params.Plate == "" {
		return nil, errors.New("vehicle: plate required")
	}
	if err := params.Rates.Validate(); err != nil {
		return nil, err
	}
	if err := params.Extras.Validate(); err != nil {
		return nil, err
	}
	if params.Odometer < 0 {
		return nil, ErrOdometerRollback
	}
	now := params.CreatedAt.UTC()
	v := &Vehicle{
		ID:        params.ID,
		Plate:     params.Plate,
		Make:      params.Make,
		Model:     params.Model,
		Year:      params.Year,
		Class:     params.Class,
		Status:    StatusAvailable,
		Odometer:  params.Odometer,
		Rates:     params.Rates,
		Extras:    params.Extras,
		CreatedAt: now,
		UpdatedAt: now,
	}
	v.Record(VehicleRegistered{VehicleID: v.ID, Plate: v.Plate, At: now})
	return v, nil
}

func (v *Vehicle) UpdateRates(rates RateSchedule, extras ExtraChargeRates, now time.Time) error {
	if err := rates.Validate(); err != nil {
		return err
	}
	if err := extras.Validate(); err != nil {
		return err
	}
	v.Rates = rates
	v.Extras = extras
	v.UpdatedAt = now.UTC()
	v.Record(RatesUpdated{VehicleID: v.ID, Rates: rates, At: v.UpdatedAt})
	return nil
}

func (v *Vehicle) MarkRented(now time.Time) error {
	if v.Status != StatusAvailable {
		return ErrInvalidState
	}
	return v.transition(StatusRented, now)
}

func (v *Vehicle) MarkReturned(now time.Time) error {
	if v.Status != StatusRented {
		return ErrInvalidState
	}
	return v.transition(StatusAvailable, now)
}

func (v *Vehicle) SendToService(now time.Time) error {
	if v.Status != StatusAvailable {
		return ErrInvalidState
	}
	return v.transition(StatusInService, now)
}

func (v *Vehicle) ReturnToFleet(now time.Time) error {
	if v.Status != StatusInService {
		return ErrInvalidState
	}
	return v.transition(StatusAvailable, now)
}

func (v *Vehicle) Retire(now time.Time) error {
	if v.Status == StatusRented {
		return ErrInvalidState
	}
	return v.transition(StatusRetired, now)
}

// RecordOdometer advances the reading; readings never move backwards.
func (v *Vehicle) RecordOdometer(reading int64, now time.Time) error {
	if reading < v.Odometer {
		return ErrOdometerRollback
	}
	v.Odometer = reading
	v.UpdatedAt = now.UTC()
	return nil
}

func (v *Vehicle) transition(next Status, now time.Time) error {
	v.Status = next
	v.UpdatedAt = now.UTC()
	v.Record(StatusChanged{VehicleID: v.ID, Status: next, At: v.UpdatedAt})
	return nil
}
