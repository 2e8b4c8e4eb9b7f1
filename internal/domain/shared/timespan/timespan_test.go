package timespan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func span(t *testing.T, startOffset, endOffset time.Duration) Span {
	t.Helper()
	s, err := New(base.Add(startOffset), base.Add(endOffset))
	require.NoError(t, err)
	return s
}

func TestNewRejectsBadSpans(t *testing.T) {
	_, err := New(base, base)
	assert.ErrorIs(t, err, ErrInvalidSpan)

	_, err = New(base.Add(time.Hour), base)
	assert.ErrorIs(t, err, ErrInvalidSpan)

	_, err = New(time.Time{}, base)
	assert.ErrorIs(t, err, ErrInvalidSpan)
}

func TestOverlapsHalfOpen(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"identical", span(t, 0, 2*time.Hour), span(t, 0, 2*time.Hour), true},
		{"partial overlap", span(t, 0, 2*time.Hour), span(t, time.Hour, 3*time.Hour), true},
		{"contained", span(t, 0, 4*time.Hour), span(t, time.Hour, 2*time.Hour), true},
		{"back to back", span(t, 0, 2*time.Hour), span(t, 2*time.Hour, 4*time.Hour), false},
		{"back to back reversed", span(t, 2*time.Hour, 4*time.Hour), span(t, 0, 2*time.Hour), false},
		{"disjoint", span(t, 0, time.Hour), span(t, 3*time.Hour, 4*time.Hour), false},
		{"one minute into the end", span(t, 0, 2*time.Hour), span(t, 2*time.Hour-time.Minute, 3*time.Hour), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a), "overlap must be symmetric")
		})
	}
}

func TestContainsInstantIsHalfOpen(t *testing.T) {
	s := span(t, 0, 2*time.Hour)
	assert.True(t, s.ContainsInstant(base))
	assert.True(t, s.ContainsInstant(base.Add(time.Hour)))
	assert.False(t, s.ContainsInstant(base.Add(2*time.Hour)))
}

func TestAdjacent(t *testing.T) {
	a := span(t, 0, 2*time.Hour)
	b := span(t, 2*time.Hour, 3*time.Hour)
	assert.True(t, a.Adjacent(b))
	assert.True(t, b.Adjacent(a))
	assert.False(t, a.Adjacent(span(t, 3*time.Hour, 4*time.Hour)))
}

func TestCeilHours(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want int64
	}{
		{"zero", 0, 0},
		{"negative", -time.Hour, 0},
		{"one second", time.Second, 1},
		{"exact hour", time.Hour, 1},
		{"ninety minutes", 90 * time.Minute, 2},
		{"two days", 48 * time.Hour, 48},
		{"two days and a minute", 48*time.Hour + time.Minute, 49},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CeilHours(base, base.Add(tc.d)))
		})
	}
}

func TestCeilDays(t *testing.T) {
	tests := []struct {
		hours int64
		want  int64
	}{
		{0, 0},
		{1, 1},
		{23, 1},
		{24, 1},
		{25, 2},
		{48, 2},
		{49, 3},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, CeilDays(tc.hours), "hours=%d", tc.hours)
	}
}

func TestBillableDaysFromSpan(t *testing.T) {
	// 49.5 scheduled hours ceil to 50 hours, then 3 days
	s := span(t, 0, 49*time.Hour+30*time.Minute)
	assert.Equal(t, int64(50), s.BillableHours())
	assert.Equal(t, int64(3), s.BillableDays())
}
