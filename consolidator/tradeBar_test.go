package consolidator

import (
	"testing"
	"time"

	"github.com/go-trading/bars"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func eq(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s, got %s", want, got)
}

var day = time.Date(2022, 5, 10, 0, 0, 0, 0, time.UTC)

func tb(t time.Time, period time.Duration, o, h, lo, c, v string) *bars.TradeBar {
	return &bars.TradeBar{
		Symbol: "SPY", Time: t, Period: period,
		Open: d(o), High: d(h), Low: d(lo), Close: d(c), Volume: d(v),
	}
}

func TestCountModeMergesOHLCV(t *testing.T) {
	c, err := NewTradeBarCount(2)
	require.NoError(t, err)

	start := day.Add(9*time.Hour + 30*time.Minute)
	require.NoError(t, c.Update(tb(start, time.Minute, "10", "20", "5", "15", "75")))
	assert.Nil(t, c.Consolidated())

	require.NoError(t, c.Update(tb(start.Add(time.Minute), time.Minute, "17", "123", "1", "75", "100")))
	bar := c.Consolidated()
	require.NotNil(t, bar)

	got := bar.(*bars.TradeBar)
	eq(t, "10", got.Open)
	eq(t, "123", got.High)
	eq(t, "1", got.Low)
	eq(t, "75", got.Close)
	eq(t, "175", got.Volume)
	// счётный режим накапливает длительность источника
	assert.Equal(t, 2*time.Minute, got.Period)
	// рабочий бар пуст: следующий сэмпл начнёт новый
	assert.Nil(t, c.WorkingData())
}

func TestPeriodWindowHalfOpen(t *testing.T) {
	c, err := NewTradeBar(time.Minute)
	require.NoError(t, err)

	start := day.Add(9*time.Hour + 30*time.Minute)
	require.NoError(t, c.Update(tb(start.Add(5*time.Second), 10*time.Second, "10", "11", "9", "10.5", "100")))
	require.NoError(t, c.Update(tb(start.Add(55*time.Second), 10*time.Second, "10.5", "12", "10", "11", "50")))
	assert.Nil(t, c.Consolidated())

	// сэмпл ровно на границе окна принадлежит следующему окну
	require.NoError(t, c.Update(tb(start.Add(time.Minute), 10*time.Second, "11", "11", "11", "11", "10")))

	bar := c.Consolidated().(*bars.TradeBar)
	assert.Equal(t, start, bar.Time)
	assert.Equal(t, time.Minute, bar.Period)
	eq(t, "10", bar.Open)
	eq(t, "12", bar.High)
	eq(t, "9", bar.Low)
	eq(t, "11", bar.Close)
	eq(t, "150", bar.Volume)

	working := c.WorkingData().(*bars.TradeBar)
	assert.Equal(t, start.Add(time.Minute), working.Time)
}

func TestFirstWindowFlooredToGrid(t *testing.T) {
	c, err := NewTradeBar(time.Hour)
	require.NoError(t, err)

	require.NoError(t, c.Update(tb(day.Add(9*time.Hour+37*time.Minute), time.Minute, "10", "10", "10", "10", "1")))
	working := c.WorkingData().(*bars.TradeBar)
	assert.Equal(t, day.Add(9*time.Hour), working.Time)
	assert.Equal(t, time.Hour, working.Period)
}

func TestScanClosesExpiredWindow(t *testing.T) {
	c, err := NewTradeBar(time.Minute)
	require.NoError(t, err)

	start := day.Add(9*time.Hour + 30*time.Minute)
	require.NoError(t, c.Update(tb(start, time.Minute, "10", "10", "10", "10", "1")))

	// до конца окна эмиссии нет
	c.Scan(start.Add(59 * time.Second))
	assert.Nil(t, c.Consolidated())

	c.Scan(start.Add(time.Minute))
	require.NotNil(t, c.Consolidated())
	assert.Nil(t, c.WorkingData())

	// повторный скан без данных ничего не эмитирует
	prev := c.Consolidated()
	c.Scan(start.Add(2 * time.Minute))
	assert.Same(t, prev, c.Consolidated())
}

func TestWindowGridSurvivesGap(t *testing.T) {
	c, err := NewTradeBar(time.Minute)
	require.NoError(t, err)

	start := day.Add(9*time.Hour + 30*time.Minute)
	require.NoError(t, c.Update(tb(start.Add(10*time.Second), 10*time.Second, "10", "10", "10", "10", "1")))
	// пропуск в данных на семь минут
	require.NoError(t, c.Update(tb(start.Add(7*time.Minute+20*time.Second), 10*time.Second, "11", "11", "11", "11", "1")))

	// окно сдвинулось на целое число периодов, сетка сохранена
	working := c.WorkingData().(*bars.TradeBar)
	assert.Equal(t, start.Add(7*time.Minute), working.Time)
}

func TestMixedCountWins(t *testing.T) {
	c, err := NewTradeBarMixed(2, time.Hour)
	require.NoError(t, err)

	start := day.Add(9*time.Hour + 30*time.Minute)
	require.NoError(t, c.Update(tb(start, time.Minute, "10", "10", "10", "10", "1")))
	require.NoError(t, c.Update(tb(start.Add(time.Minute), time.Minute, "11", "11", "11", "11", "1")))

	bar := c.Consolidated().(*bars.TradeBar)
	// счётчик закрыл бар раньше конца окна: конец подтянут к последнему сэмплу
	assert.Equal(t, day.Add(9*time.Hour), bar.Time)
	assert.Equal(t, start.Add(2*time.Minute), bar.GetEndTime())
}

func TestMixedPeriodWins(t *testing.T) {
	c, err := NewTradeBarMixed(10, time.Minute)
	require.NoError(t, err)

	start := day.Add(9*time.Hour + 30*time.Minute)
	require.NoError(t, c.Update(tb(start, time.Minute, "10", "10", "10", "10", "1")))
	require.NoError(t, c.Update(tb(start.Add(time.Minute), time.Minute, "11", "11", "11", "11", "1")))

	bar := c.Consolidated().(*bars.TradeBar)
	eq(t, "10", bar.Close)
	assert.Equal(t, time.Minute, bar.Period)
}

func TestCountOneIsPassthrough(t *testing.T) {
	for _, count := range []int{0, 1} {
		c, err := NewTradeBarCount(count)
		require.NoError(t, err)

		emitted := 0
		c.OnConsolidated(func(_ bars.Consolidator, _ bars.DataPoint) { emitted++ })

		in := tb(day, time.Minute, "10", "20", "5", "15", "75")
		require.NoError(t, c.Update(in))
		require.NoError(t, c.Update(in))

		assert.Equal(t, 2, emitted, "count=%d", count)
		got := c.Consolidated().(*bars.TradeBar)
		eq(t, "15", got.Close)
		eq(t, "75", got.Volume)
	}
}

func TestRejectsWrongType(t *testing.T) {
	c, err := NewTradeBar(time.Minute)
	require.NoError(t, err)
	err = c.Update(bars.NewTradeTick("SPY", day, d("10"), d("1")))
	assert.ErrorIs(t, err, bars.ErrTypeMismatch)
}

func TestRejectsForeignSymbol(t *testing.T) {
	c, err := NewTradeBar(time.Minute)
	require.NoError(t, err)
	require.NoError(t, c.Update(tb(day, time.Minute, "10", "10", "10", "10", "1")))

	foreign := tb(day.Add(time.Minute), time.Minute, "1", "1", "1", "1", "1")
	foreign.Symbol = "QQQ"
	assert.ErrorIs(t, c.Update(foreign), bars.ErrSymbolMismatch)

	// рабочий бар не пострадал
	eq(t, "10", c.WorkingData().(*bars.TradeBar).Close)
}

func TestNegativeConfigRejected(t *testing.T) {
	_, err := NewTradeBar(-time.Minute)
	assert.ErrorIs(t, err, bars.ErrConfiguration)
	_, err = NewTradeBarCount(-1)
	assert.ErrorIs(t, err, bars.ErrConfiguration)
}

func TestResetIdempotent(t *testing.T) {
	c, err := NewTradeBar(time.Minute)
	require.NoError(t, err)
	require.NoError(t, c.Update(tb(day, time.Minute, "10", "10", "10", "10", "1")))

	c.Reset()
	c.Reset()
	assert.Nil(t, c.WorkingData())
	assert.Nil(t, c.Consolidated())

	// после сброса принимается другой инструмент
	other := tb(day, time.Minute, "5", "5", "5", "5", "1")
	other.Symbol = "QQQ"
	require.NoError(t, c.Update(other))
}
