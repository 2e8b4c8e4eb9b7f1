package dto

import (
	"time"

	domainavailability "fleetrent/internal/domain/availability"
)

type AvailabilityResult struct {
	VehicleID string    `json:"vehicle_id"`
	PickupAt  time.Time `json:"pickup_at"`
	DropAt    time.Time `json:"drop_at"`
	Available bool      `json:"available"`
}

type ScheduleBlock struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Reason    string    `json:"reason"`
	Reference string    `json:"reference"`
}

type Schedule struct {
	VehicleID string          `json:"vehicle_id"`
	Blocks    []ScheduleBlock `json:"blocks"`
}

func ScheduleFromDomain(s *domainavailability.Schedule) Schedule {
	out := Schedule{VehicleID: string(s.VehicleID), Blocks: make([]ScheduleBlock, 0, len(s.Blocks))}
	for _, block := range s.Blocks {
		out.Blocks = append(out.Blocks, ScheduleBlock{
			Start:     block.Span.Start,
			End:       block.Span.End,
			Reason:    string(block.Reason),
			Reference: block.Reference,
		})
	}
	return out
}
