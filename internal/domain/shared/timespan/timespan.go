package timespan

import (
	"errors"
	"time"
)

var ErrInvalidSpan = errors.New("timespan: end must be after start")

// Span represents a half-open time interval [Start, End).
type Span struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (Span, error) {
	s := Span{Start: start.UTC(), End: end.UTC()}
	if err := s.Validate(); err != nil {
		return Span{}, err
	}
	return s, nil
}

func (s Span) Validate() error {
	if s.Start.IsZero() || s.End.IsZero() {
		return ErrInvalidSpan
	}
	if !s.End.After(s.Start) {
		return ErrInvalidSpan
	}
	return nil
}

// Overlaps reports whether two half-open spans share at least one instant.
// Back-to-back spans (one ending exactly when the other starts) do not overlap.
func (s Span) Overlaps(other Span) bool {
	return s.Start.Before(other.End) && other.Start.Before(s.End)
}

func (s Span) Contains(other Span) bool {
	return !s.Start.After(other.Start) && !s.End.Before(other.End)
}

func (s Span) ContainsInstant(t time.Time) bool {
	t = t.UTC()
	return !t.Before(s.Start) && t.Before(s.End)
}

func (s Span) Adjacent(other Span) bool {
	return s.End.Equal(other.Start) || s.Start.Equal(other.End)
}

func (s Span) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// BillableHours is the span duration rounded up to whole hours. A rental
// touching any part of an hour is billed for the full hour.
func (s Span) BillableHours() int64 {
	return CeilHours(s.Start, s.End)
}

// BillableDays derives days from billable hours, rounding up. Hours are
// ceiled first so every implementation agrees bit-for-bit.
func (s Span) BillableDays() int64 {
	return CeilDays(s.BillableHours())
}

// CeilHours rounds the distance between two instants up to whole hours.
func CeilHours(from, to time.Time) int64 {
	d := to.Sub(from)
	if d <= 0 {
		return 0
	}
	hours := int64(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	return hours
}

// CeilDays converts billable hours into billable days, rounding up.
func CeilDays(hours int64) int64 {
	if hours <= 0 {
		return 0
	}
	days := hours / 24
	if hours%24 != 0 {
		days++
	}
	return days
}
