package vehicle

import "time"

type VehicleRegistered struct {
	VehicleID VehicleID
	Plate     string
	At        time.Time
}

func (e VehicleRegistered) EventName() string     { return "vehicle.registered" }
func (e VehicleRegistered) AggregateID() string   { return string(e.VehicleID) }
func (e VehicleRegistered) OccurredAt() time.Time { return e.At }

type RatesUpdated struct {
	VehicleID VehicleID
	Rates     RateSchedule
	At        time.Time
}

func (e RatesUpdated) EventName() string     { return "vehicle.rates_updated" }
func (e RatesUpdated) AggregateID() string   { return string(e.VehicleID) }
func (e RatesUpdated) OccurredAt() time.Time { return e.At }

type StatusChanged struct {
	VehicleID VehicleID
	Status    Status
	At        time.Time
}

func (e StatusChanged) EventName() string     { return "vehicle.status_changed" }
func (e StatusChanged) AggregateID() string   { return string(e.VehicleID) }
func (e StatusChanged) OccurredAt() time.Time { return e.At }
