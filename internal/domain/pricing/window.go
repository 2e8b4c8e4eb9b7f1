package pricing

import (
	"fmt"
	"time"

	"fleetrent/internal/domain/shared/timespan"
)

// ErrInvalidWindow wraps timespan.ErrInvalidSpan so callers can match a bad
// window with either sentinel regardless of which layer rejected it.
var ErrInvalidWindow = fmt.Errorf("pricing: scheduled drop must be after pickup: %w", timespan.ErrInvalidSpan)

// RentalWindow describes one rental's timeline. A zero ActualDropAt means
// the vehicle came back exactly on schedule. ActualDropAt before, equal to,
// or after ScheduledDropAt are all legal (early, on-time, late return).
type RentalWindow struct {
	PickupAt        time.Time
	ScheduledDropAt time.Time
	ActualDropAt    time.Time
}

func NewRentalWindow(pickupAt, scheduledDropAt time.Time) (RentalWindow, error) {
	w := RentalWindow{PickupAt: pickupAt.UTC(), ScheduledDropAt: scheduledDropAt.UTC()}
	if err := w.Validate(); err != nil {
		return RentalWindow{}, err
	}
	return w, nil
}

func (w RentalWindow) Validate() error {
	if w.PickupAt.IsZero() || w.ScheduledDropAt.IsZero() {
		return ErrInvalidWindow
	}
	if !w.ScheduledDropAt.After(w.PickupAt) {
		return ErrInvalidWindow
	}
	return nil
}

// WithActualDrop returns a copy recording the real return instant.
func (w RentalWindow) WithActualDrop(at time.Time) RentalWindow {
	w.ActualDropAt = at.UTC()
	return w
}

// Span is the scheduled half-open rental interval [pickup, scheduled drop).
func (w RentalWindow) Span() timespan.Span {
	return timespan.Span{Start: w.PickupAt, End: w.ScheduledDropAt}
}

// DropAt resolves the effective return instant.
func (w RentalWindow) DropAt() time.Time {
	if w.ActualDropAt.IsZero() {
		return w.ScheduledDropAt
	}
	return w.ActualDropAt
}

// LateHours is the late-return overrun rounded up to whole hours; zero for
// early or on-time returns.
func (w RentalWindow) LateHours() int64 {
	return timespan.CeilHours(w.ScheduledDropAt, w.DropAt())
}
