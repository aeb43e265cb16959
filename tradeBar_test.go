package bars

import (
	"testing"
	"time"

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

func TestTradeBarMerge(t *testing.T) {
	start := time.Date(2022, 5, 10, 9, 30, 0, 0, time.UTC)
	b := &TradeBar{
		Symbol: "SPY", Time: start, Period: time.Minute,
		Open: d("10"), High: d("20"), Low: d("5"), Close: d("15"), Volume: d("75"),
	}
	b.MergeTradeBar(&TradeBar{
		Symbol: "SPY", Time: start.Add(time.Minute), Period: time.Minute,
		Open: d("17"), High: d("123"), Low: d("1"), Close: d("75"), Volume: d("100"),
	})

	eq(t, "10", b.Open)
	eq(t, "123", b.High)
	eq(t, "1", b.Low)
	eq(t, "75", b.Close)
	eq(t, "175", b.Volume)
}

func TestTradeBarMergeTick(t *testing.T) {
	b := &TradeBar{Open: d("10"), High: d("10"), Low: d("10"), Close: d("10")}
	b.MergeTick(d("12.5"), d("3"))
	b.MergeTick(d("9"), d("2"))

	eq(t, "10", b.Open)
	eq(t, "12.5", b.High)
	eq(t, "9", b.Low)
	eq(t, "9", b.Close)
	eq(t, "5", b.Volume)
}

func TestTradeBarCloneIndependent(t *testing.T) {
	b := &TradeBar{Symbol: "SPY", Close: d("10")}
	clone := b.Clone()
	b.Close = d("99")
	eq(t, "10", clone.Close)
}

func TestTradeBarEndTime(t *testing.T) {
	start := time.Date(2022, 5, 10, 9, 30, 0, 0, time.UTC)
	b := &TradeBar{Time: start, Period: 5 * time.Minute}
	assert.Equal(t, start.Add(5*time.Minute), b.GetEndTime())
}

func TestQuoteTickValueIsMid(t *testing.T) {
	tick := NewQuoteTick("SPY", time.Now(), d("10"), d("11"))
	eq(t, "10.5", tick.GetValue())
}

func TestQuoteBarMergeSidesIndependent(t *testing.T) {
	q := &QuoteBar{Symbol: "SPY"}
	q.MergeQuoteTick(NewQuoteTick("SPY", time.Now(), d("10"), d("11")))
	// односторонняя котировка двигает только bid
	q.MergeQuoteTick(&Tick{Symbol: "SPY", Kind: TickQuote, Bid: d("9")})

	require.NotNil(t, q.Bid)
	require.NotNil(t, q.Ask)
	eq(t, "9", q.Bid.Close)
	eq(t, "9", q.Bid.Low)
	eq(t, "11", q.Ask.Close)
	eq(t, "10.5", q.MidOpen()) // (10+11)/2
	eq(t, "10", q.MidClose())  // (9+11)/2
}

func TestPeriod2Resolution(t *testing.T) {
	assert.Equal(t, ResolutionTick, Period2Resolution(0))
	assert.Equal(t, ResolutionSecond, Period2Resolution(time.Second))
	assert.Equal(t, ResolutionMinute, Period2Resolution(time.Minute))
	assert.Equal(t, ResolutionMinute, Period2Resolution(15*time.Minute))
	assert.Equal(t, ResolutionHour, Period2Resolution(time.Hour))
	assert.Equal(t, ResolutionDaily, Period2Resolution(24*time.Hour))
}

func TestCheckSymbol(t *testing.T) {
	var locked string
	require.NoError(t, CheckSymbol(&locked, &TradeBar{Symbol: "SPY"}))
	require.NoError(t, CheckSymbol(&locked, &TradeBar{Symbol: "SPY"}))
	err := CheckSymbol(&locked, &TradeBar{Symbol: "QQQ"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSymbolMismatch)
	// состояние не повреждено, родной инструмент принимается дальше
	require.NoError(t, CheckSymbol(&locked, &TradeBar{Symbol: "SPY"}))
}
