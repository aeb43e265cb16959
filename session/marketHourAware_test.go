package session

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

// вторник
var day = time.Date(2022, 5, 10, 0, 0, 0, 0, time.UTC)

func minuteBar(t time.Time, o, h, lo, c, v string) *bars.TradeBar {
	return &bars.TradeBar{
		Symbol: "SPY", Time: t, Period: time.Minute,
		Open: d(o), High: d(h), Low: d(lo), Close: d(c), Volume: d(v),
	}
}

func TestStrictDailyBarEndsAtSessionClose(t *testing.T) {
	c, err := NewMarketHourAware(24*time.Hour, bars.NewEquityUSHours(), true, false)
	require.NoError(t, err)

	// пре-маркет без extended отбрасывается молча
	require.NoError(t, c.Update(minuteBar(day.Add(5*time.Hour), "1", "1", "1", "1", "999")))
	assert.Nil(t, c.WorkingData())

	require.NoError(t, c.Update(minuteBar(day.Add(9*time.Hour+30*time.Minute), "10", "11", "9", "10.5", "100")))
	require.NoError(t, c.Update(minuteBar(day.Add(12*time.Hour), "10.5", "12", "10", "11", "50")))
	require.NoError(t, c.Update(minuteBar(day.Add(15*time.Hour+59*time.Minute), "11", "11.5", "10.8", "11.2", "25")))

	// скан в полночь следующего дня закрывает бар концом сессии
	c.Scan(day.AddDate(0, 0, 1))
	bar := c.Consolidated().(*bars.TradeBar)
	assert.Equal(t, day.Add(9*time.Hour+30*time.Minute), bar.Time)
	assert.Equal(t, day.Add(16*time.Hour), bar.GetEndTime())
	eq(t, "10", bar.Open)
	eq(t, "12", bar.High)
	eq(t, "9", bar.Low)
	eq(t, "11.2", bar.Close)
	eq(t, "175", bar.Volume)
}

func TestLenientDailyBarEndsAtMidnight(t *testing.T) {
	c, err := NewMarketHourAware(24*time.Hour, bars.NewEquityUSHours(), false, false)
	require.NoError(t, err)

	require.NoError(t, c.Update(minuteBar(day.Add(10*time.Hour), "10", "10", "10", "10", "1")))
	c.Scan(day.AddDate(0, 0, 1))

	bar := c.Consolidated().(*bars.TradeBar)
	assert.Equal(t, day.Add(9*time.Hour+30*time.Minute), bar.Time)
	assert.Equal(t, day.AddDate(0, 0, 1), bar.GetEndTime())
}

func TestHourlySourceAcceptedWhenClosed(t *testing.T) {
	c, err := NewMarketHourAware(24*time.Hour, bars.NewEquityUSHours(), true, false)
	require.NoError(t, err)

	// часовой источник предагрегирован, фильтр торговых часов не применяется
	hourly := minuteBar(day.Add(5*time.Hour), "10", "10", "10", "10", "1")
	hourly.Period = time.Hour
	require.NoError(t, c.Update(hourly))
	assert.NotNil(t, c.WorkingData())
}

func TestCoarserResolutionOwnsWindow(t *testing.T) {
	c, err := NewMarketHourAware(24*time.Hour, bars.NewEquityUSHours(), true, false)
	require.NoError(t, err)

	hourly := minuteBar(day.Add(10*time.Hour), "100", "101", "99", "100", "1000")
	hourly.Period = time.Hour
	require.NoError(t, c.Update(hourly))

	// запоздавший минутный дубль не перезаписывает часовые данные
	require.NoError(t, c.Update(minuteBar(day.Add(10*time.Hour+30*time.Minute), "50", "50", "50", "50", "5")))

	working := c.WorkingData().(*bars.TradeBar)
	eq(t, "100", working.Close)
	eq(t, "1000", working.Volume)
}

func TestValidateAndScanStrictBoundary(t *testing.T) {
	c, err := NewMarketHourAware(24*time.Hour, bars.NewEquityUSHours(), true, false)
	require.NoError(t, err)
	require.NoError(t, c.Update(minuteBar(day.Add(10*time.Hour), "10", "10", "10", "10", "1")))

	closed := func(time.Time) bool { return true }
	open := func(time.Time) bool { return false }

	// ровно в закрытие эмиссии ещё нет
	c.ValidateAndScan(day.Add(16*time.Hour), closed)
	assert.Nil(t, c.Consolidated())

	// рынок не закрыт - эмиссии нет даже после границы
	c.ValidateAndScan(day.Add(16*time.Hour+time.Minute), open)
	assert.Nil(t, c.Consolidated())

	c.ValidateAndScan(day.Add(16*time.Hour+time.Minute), closed)
	require.NotNil(t, c.Consolidated())
}

func TestMarketHourAwareAcceptsTradeTicks(t *testing.T) {
	c, err := NewMarketHourAware(24*time.Hour, bars.NewEquityUSHours(), true, false)
	require.NoError(t, err)

	require.NoError(t, c.Update(bars.NewTradeTick("SPY", day.Add(10*time.Hour), d("10"), d("3"))))
	require.NoError(t, c.Update(bars.NewTradeTick("SPY", day.Add(11*time.Hour), d("12"), d("2"))))

	working := c.WorkingData().(*bars.TradeBar)
	eq(t, "12", working.High)
	eq(t, "5", working.Volume)

	err = c.Update(bars.NewQuoteTick("SPY", day.Add(10*time.Hour), d("10"), d("11")))
	assert.ErrorIs(t, err, bars.ErrTypeMismatch)
}
