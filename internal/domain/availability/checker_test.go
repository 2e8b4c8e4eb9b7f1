package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetrent/internal/domain/shared/timespan"
	"fleetrent/internal/domain/vehicle"
)

var day0 = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

func spanAt(startOffset, endOffset time.Duration) timespan.Span {
	return timespan.Span{Start: day0.Add(startOffset), End: day0.Add(endOffset)}
}

func TestIsAvailableEmptyFleetIsFree(t *testing.T) {
	ok, err := IsAvailable("veh-1", spanAt(0, 48*time.Hour), nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsAvailableRejectsInvalidWindow(t *testing.T) {
	_, err := IsAvailable("veh-1", timespan.Span{Start: day0, End: day0}, nil)
	assert.ErrorIs(t, err, timespan.ErrInvalidSpan)
}

func TestIsAvailableConflicts(t *testing.T) {
	existing := []BookingInterval{
		{VehicleID: "veh-1", Span: spanAt(0, 48*time.Hour), Status: StatusReserved},
		{VehicleID: "veh-1", Span: spanAt(72*time.Hour, 96*time.Hour), Status: StatusActive},
		{VehicleID: "veh-1", Span: spanAt(120*time.Hour, 144*time.Hour), Status: StatusCompleted},
		{VehicleID: "veh-1", Span: spanAt(150*time.Hour, 160*time.Hour), Status: StatusCancelled},
		{VehicleID: "veh-2", Span: spanAt(0, 500*time.Hour), Status: StatusActive},
	}

	tests := []struct {
		name      string
		vehicleID vehicle.VehicleID
		candidate timespan.Span
		want      bool
	}{
		{"overlaps reserved", "veh-1", spanAt(24*time.Hour, 60*time.Hour), false},
		{"overlaps active", "veh-1", spanAt(80*time.Hour, 90*time.Hour), false},
		{"back to back after reserved", "veh-1", spanAt(48*time.Hour, 60*time.Hour), true},
		{"ends exactly at reserved start", "veh-1", spanAt(-24*time.Hour, 0), true},
		{"completed does not block", "veh-1", spanAt(120*time.Hour, 144*time.Hour), true},
		{"cancelled does not block", "veh-1", spanAt(150*time.Hour, 160*time.Hour), true},
		{"other vehicle irrelevant", "veh-3", spanAt(0, 48*time.Hour), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := IsAvailable(tc.vehicleID, tc.candidate, existing)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestScheduleReserveAddsPrepBuffers(t *testing.T) {
	s := NewSchedule("veh-1", 2)
	span := spanAt(24*time.Hour, 48*time.Hour)

	require.NoError(t, s.Reserve(span, "bkg-1", day0))
	require.Len(t, s.Blocks, 3)

	assert.Equal(t, ReasonBooking, s.Blocks[0].Reason)
	assert.Equal(t, ReasonPrepBuffer, s.Blocks[1].Reason)
	assert.Equal(t, span.Start, s.Blocks[1].Span.End)
	assert.Equal(t, ReasonPrepBuffer, s.Blocks[2].Reason)
	assert.Equal(t, span.End, s.Blocks[2].Span.Start)
}

func TestScheduleRejectsOverlap(t *testing.T) {
	s := NewSchedule("veh-1", 0)
	require.NoError(t, s.Reserve(spanAt(0, 24*time.Hour), "bkg-1", day0))

	err := s.Reserve(spanAt(12*time.Hour, 36*time.Hour), "bkg-2", day0)
	assert.ErrorIs(t, err, ErrOverlappingBlock)

	err = s.BlockForMaintenance(spanAt(6*time.Hour, 8*time.Hour), "svc-1", day0)
	assert.ErrorIs(t, err, ErrOverlappingBlock)
}

func TestSchedulePrepBufferBlocksNeighbouringWindow(t *testing.T) {
	s := NewSchedule("veh-1", 2)
	require.NoError(t, s.Reserve(spanAt(24*time.Hour, 48*time.Hour), "bkg-1", day0))

	// starts inside the after-buffer
	assert.False(t, s.CanReserve(spanAt(49*time.Hour, 72*time.Hour)))
	// clears the buffer entirely
	assert.True(t, s.CanReserve(spanAt(50*time.Hour, 72*time.Hour)))
}

func TestScheduleReleaseRemovesBuffers(t *testing.T) {
	s := NewSchedule("veh-1", 2)
	require.NoError(t, s.Reserve(spanAt(24*time.Hour, 48*time.Hour), "bkg-1", day0))
	require.NoError(t, s.BlockForMaintenance(spanAt(100*time.Hour, 110*time.Hour), "svc-1", day0))

	require.NoError(t, s.Release("bkg-1", day0))
	require.Len(t, s.Blocks, 1)
	assert.Equal(t, ReasonMaintenance, s.Blocks[0].Reason)

	assert.ErrorIs(t, s.Release("bkg-1", day0), ErrBlockNotFound)
}
