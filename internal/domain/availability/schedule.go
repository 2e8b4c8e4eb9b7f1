package availability

import (
	"context"
	"errors"
	"time"

	"fleetrent/internal/domain/shared/timespan"
	"fleetrent/internal/domain/vehicle"
)

var (
	ErrOverlappingBlock = errors.New("availability: span overlaps with an existing block")
	ErrBlockNotFound    = errors.New("availability: block not found")
)

type BlockReason string

const (
	ReasonBooking     BlockReason = "BOOKING"
	ReasonMaintenance BlockReason = "MAINTENANCE"
	ReasonPrepBuffer  BlockReason = "PREP_BUFFER"
)

type Block struct {
	Span      timespan.Span
	Reason    BlockReason
	Reference string
	CreatedAt time.Time
}

// Schedule tracks the non-booking blocks on one vehicle: maintenance
// windows and the preparation buffer between rentals. Booking conflicts are
// answered by IsAvailable over the live booking list; the schedule covers
// everything else that can take a vehicle off the road.
type Schedule struct {
	VehicleID       vehicle.VehicleID
	Blocks          []Block
	PrepBufferHours int
	Version         int64
}

type ScheduleRepository interface {
	Schedule(ctx context.Context, id vehicle.VehicleID) (*Schedule, error)
	Save(ctx context.Context, schedule *Schedule) error
}

func NewSchedule(id vehicle.VehicleID, prepBufferHours int) *Schedule {
	return &Schedule{VehicleID: id, PrepBufferHours: prepBufferHours}
}

func (s *Schedule) CanReserve(span timespan.Span) bool {
	for _, block := range s.Blocks {
		if block.Span.Overlaps(span) {
			return false
		}
	}
	return true
}

// Reserve blocks the span for a booking and, when a prep buffer is
// configured, pads it on both sides so the vehicle can be cleaned and
// inspected between rentals.
func (s *Schedule) Reserve(span timespan.Span, bookingID string, now time.Time) error {
	if !s.CanReserve(span) {
		return ErrOverlappingBlock
	}
	s.appendBlock(Block{Span: span, Reason: ReasonBooking, Reference: bookingID, CreatedAt: now.UTC()})

	if s.PrepBufferHours > 0 {
		buffer := time.Hour * time.Duration(s.PrepBufferHours)
		before := timespan.Span{Start: span.Start.Add(-buffer), End: span.Start}
		if before.End.After(before.Start) && s.CanReserve(before) {
			s.appendBlock(Block{Span: before, Reason: ReasonPrepBuffer, Reference: bookingID + "-before", CreatedAt: now.UTC()})
		}
		after := timespan.Span{Start: span.End, End: span.End.Add(buffer)}
		if after.End.After(after.Start) && s.CanReserve(after) {
			s.appendBlock(Block{Span: after, Reason: ReasonPrepBuffer, Reference: bookingID + "-after", CreatedAt: now.UTC()})
		}
	}
	return nil
}

func (s *Schedule) BlockForMaintenance(span timespan.Span, reference string, now time.Time) error {
	if !s.CanReserve(span) {
		return ErrOverlappingBlock
	}
	s.appendBlock(Block{Span: span, Reason: ReasonMaintenance, Reference: reference, CreatedAt: now.UTC()})
	return nil
}

// Release removes every block carrying the reference, including prep
// buffers added alongside a booking block.
func (s *Schedule) Release(reference string, now time.Time) error {
	kept := s.Blocks[:0]
	removed := 0
	for _, block := range s.Blocks {
		if block.Reference == reference || block.Reference == reference+"-before" || block.Reference == reference+"-after" {
			removed++
			continue
		}
		kept = append(kept, block)
	}
	if removed == 0 {
		return ErrBlockNotFound
	}
	s.Blocks = kept
	return nil
}

func (s *Schedule) appendBlock(block Block) {
	s.Blocks = append(s.Blocks, block)
}
