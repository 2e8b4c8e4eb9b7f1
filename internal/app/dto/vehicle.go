package dto

import (
	"time"

	domainvehicle "fleetrent/internal/domain/vehicle"
)

type RateSchedule struct {
	Currency string `json:"currency"`
	Hourly   int64  `json:"hourly"`
	Daily    int64  `json:"daily"`
	Weekly   int64  `json:"weekly"`
}

type ExtraChargeRates struct {
	LateReturnPerHour    int64 `json:"late_return_per_hour"`
	ExtraDistancePerUnit int64 `json:"extra_distance_per_unit"`
}

type Vehicle struct {
	ID        string           `json:"id"`
	Plate     string           `json:"plate"`
	Make      string           `json:"make"`
	Model     string           `json:"model"`
	Year      int              `json:"year"`
	Class     string           `json:"class"`
	Status    string           `json:"status"`
	Odometer  int64            `json:"odometer"`
	Rates     RateSchedule     `json:"rates"`
	Extras    ExtraChargeRates `json:"extras"`
	CreatedAt time.Time        `json:"created_at"`
}

func VehicleFromDomain(v *domainvehicle.Vehicle) Vehicle {
	return Vehicle{
		ID:       string(v.ID),
		Plate:    v.Plate,
		Make:     v.Make,
		Model:    v.Model,
		Year:     v.Year,
		Class:    v.Class,
		Status:   string(v.Status),
		Odometer: v.Odometer,
		Rates: RateSchedule{
			Currency: v.Rates.Daily.Currency,
			Hourly:   v.Rates.Hourly.Amount,
			Daily:    v.Rates.Daily.Amount,
			Weekly:   v.Rates.Weekly.Amount,
		},
		Extras: ExtraChargeRates{
			LateReturnPerHour:    v.Extras.LateReturnPerHour.Amount,
			ExtraDistancePerUnit: v.Extras.ExtraDistancePerUnit.Amount,
		},
		CreatedAt: v.CreatedAt,
	}
}
