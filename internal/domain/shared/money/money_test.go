package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesCurrency(t *testing.T) {
	m, err := New(100, "inr")
	require.NoError(t, err)
	assert.Equal(t, "INR", m.Currency)

	_, err = New(100, "RUPEES")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestAddSubRequireSameCurrency(t *testing.T) {
	a := Must(100, "INR")
	b := Must(40, "INR")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(140), sum.Amount)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, int64(60), diff.Amount)

	_, err = a.Add(Must(1, "USD"))
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestScaleRoundsHalfUpOnce(t *testing.T) {
	tests := []struct {
		amount int64
		factor float64
		want   int64
	}{
		{100, 0.18, 18},
		{4300, 0.18, 774},
		{25, 0.5, 13},  // 12.5 rounds up
		{35, 0.1, 4},   // 3.5 rounds up
		{333, 0.1, 33}, // 33.3 rounds down
	}
	for _, tc := range tests {
		got := Money{Amount: tc.amount, Currency: "INR"}.Scale(tc.factor)
		assert.Equal(t, tc.want, got.Amount, "%d * %v", tc.amount, tc.factor)
	}
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, int64(0), RoundHalfUp(0))
	assert.Equal(t, int64(1), RoundHalfUp(0.5))
	assert.Equal(t, int64(1), RoundHalfUp(1.49))
	assert.Equal(t, int64(2), RoundHalfUp(1.5))
	assert.Equal(t, int64(55), RoundHalfUp(27.5*2))
}

func TestPredicates(t *testing.T) {
	assert.True(t, Zero("INR").IsZero())
	assert.True(t, Must(-1, "INR").IsNegative())
	assert.False(t, Must(1, "INR").IsNegative())
	assert.Equal(t, int64(-5), Must(5, "INR").Neg().Amount)
	assert.Equal(t, int64(15), Must(5, "INR").Multiply(3).Amount)
}
