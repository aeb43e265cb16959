package session

import (
	"testing"
	"time"

	"github.com/go-trading/bars"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionBarCrossTypeMerge(t *testing.T) {
	c, err := New(bars.NewEquityUSHours(), false)
	require.NoError(t, err)

	open := day.Add(9*time.Hour + 30*time.Minute)
	require.NoError(t, c.Update(minuteBar(open, "10", "11", "9", "10.5", "100")))

	// тиковый объём не добавляется поверх свечного
	require.NoError(t, c.Update(bars.NewTradeTick("SPY", open.Add(30*time.Minute), d("10.6"), d("5"))))

	// котировочная свеча двигает цену серединой спреда, объёма не несёт
	quote := &bars.QuoteBar{
		Symbol: "SPY", Time: open.Add(time.Hour), Period: time.Minute,
		Bid: &bars.Bar{Open: d("11"), High: d("12"), Low: d("11"), Close: d("12")},
		Ask: &bars.Bar{Open: d("12"), High: d("13"), Low: d("12"), Close: d("13")},
	}
	require.NoError(t, c.Update(quote))

	// открытый интерес копится отдельно и не трогает цены
	require.NoError(t, c.Update(bars.NewOpenInterestTick("SPY", open.Add(2*time.Hour), d("555"))))

	c.Scan(day.Add(16 * time.Hour))
	bar := c.Consolidated().(*bars.SessionBar)
	assert.Equal(t, open, bar.Time)
	assert.Equal(t, day.Add(16*time.Hour), bar.EndTime)
	eq(t, "10", bar.Open)
	eq(t, "12.5", bar.High) // (12+13)/2
	eq(t, "9", bar.Low)
	eq(t, "12.5", bar.Close)
	eq(t, "100", bar.Volume)
	eq(t, "555", bar.OpenInterest)
}

func TestSessionTickVolumeWithoutBars(t *testing.T) {
	c, err := New(bars.NewEquityUSHours(), false)
	require.NoError(t, err)

	open := day.Add(9*time.Hour + 30*time.Minute)
	require.NoError(t, c.Update(bars.NewTradeTick("SPY", open, d("10"), d("3"))))
	require.NoError(t, c.Update(bars.NewTradeTick("SPY", open.Add(time.Minute), d("11"), d("4"))))

	working := c.WorkingData().(*bars.SessionBar)
	eq(t, "7", working.Volume)
	eq(t, "11", working.Close)
}

func TestSessionDropsClosedMarketData(t *testing.T) {
	c, err := New(bars.NewEquityUSHours(), false)
	require.NoError(t, err)

	require.NoError(t, c.Update(bars.NewTradeTick("SPY", day.Add(5*time.Hour), d("10"), d("1"))))
	assert.Nil(t, c.WorkingData())

	// с extended пре-маркет принимается
	ce, err := New(bars.NewEquityUSHours(), true)
	require.NoError(t, err)
	require.NoError(t, ce.Update(bars.NewTradeTick("SPY", day.Add(5*time.Hour), d("10"), d("1"))))
	require.NotNil(t, ce.WorkingData())

	// окно - содержащая сессия, для пре-маркета это 4:00-9:30
	working := ce.WorkingData().(*bars.SessionBar)
	assert.Equal(t, day.Add(4*time.Hour), working.Time)
	assert.Equal(t, day.Add(9*time.Hour+30*time.Minute), working.EndTime)
}

func TestSessionNewBarPerSession(t *testing.T) {
	c, err := New(bars.NewEquityUSHours(), false)
	require.NoError(t, err)

	emitted := 0
	c.OnConsolidated(func(_ bars.Consolidator, _ bars.DataPoint) { emitted++ })

	require.NoError(t, c.Update(bars.NewTradeTick("SPY", day.Add(10*time.Hour), d("10"), d("1"))))
	// первый сэмпл следующего дня закрывает вчерашнюю сессию
	require.NoError(t, c.Update(bars.NewTradeTick("SPY", day.AddDate(0, 0, 1).Add(10*time.Hour), d("11"), d("1"))))

	assert.Equal(t, 1, emitted)
	working := c.WorkingData().(*bars.SessionBar)
	assert.Equal(t, day.AddDate(0, 0, 1).Add(9*time.Hour+30*time.Minute), working.Time)
}

func TestSessionReset(t *testing.T) {
	c, err := New(bars.NewEquityUSHours(), false)
	require.NoError(t, err)
	require.NoError(t, c.Update(bars.NewTradeTick("SPY", day.Add(10*time.Hour), d("10"), d("1"))))

	c.Reset()
	c.Reset()
	assert.Nil(t, c.WorkingData())
	assert.Nil(t, c.Consolidated())
}
