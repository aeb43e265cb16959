package renko

import (
	"testing"

	"github.com/go-trading/bars"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeSpreadEqualsRangeSize(t *testing.T) {
	// 10 шагов по 0.01 - размах 0.1
	c, err := NewRange(10, d("0.01"))
	require.NoError(t, err)
	emitted := collect(c)

	feedTicks(t, c, "10.00", "10.05", "10.12")

	require.Len(t, *emitted, 1)
	bar := (*emitted)[0].(*bars.RangeBar)
	eq(t, "10.10", bar.High)
	eq(t, "10.00", bar.Low)
	eq(t, "0.1", bar.Spread())
	assert.True(t, bar.Closed)

	// следующий бар открывается на шаг цены дальше границы
	working := c.WorkingData().(*bars.RangeBar)
	eq(t, "10.11", working.Open)
	eq(t, "10.12", working.Close)
}

func TestRangeBarsDoNotOverlap(t *testing.T) {
	c, err := NewRange(1, d("1"))
	require.NoError(t, err)
	emitted := collect(c)

	feedTicks(t, c, "10", "14.5")

	require.Len(t, *emitted, 2)
	first := (*emitted)[0].(*bars.RangeBar)
	second := (*emitted)[1].(*bars.RangeBar)
	eq(t, "11", first.High)
	eq(t, "10", first.Low)
	eq(t, "13", second.High)
	eq(t, "12", second.Low)
	// мостовой бар через разрыв не несёт объёма
	eq(t, "0", second.Volume)

	// объём триггерного сэмпла оседает в баре, который его вместил
	working := c.WorkingData().(*bars.RangeBar)
	eq(t, "14", working.Open)
	eq(t, "1", working.Volume)
}

func TestRangeExactBoundaryDoesNotClose(t *testing.T) {
	// прорыв строгий: ход ровно на размах ещё не закрывает бар
	c, err := NewRange(1, d("1"))
	require.NoError(t, err)
	emitted := collect(c)

	feedTicks(t, c, "10", "11")
	assert.Empty(t, *emitted)

	feedTicks(t, c, "11.5")
	assert.Len(t, *emitted, 1)
}

func TestRangeRejectsBadConfig(t *testing.T) {
	_, err := NewRange(0, d("0.01"))
	assert.ErrorIs(t, err, bars.ErrConfiguration)
	_, err = NewRange(10, d("0"))
	assert.ErrorIs(t, err, bars.ErrConfiguration)
}
