package bars

import (
	"time"

	"github.com/shopspring/decimal"
)

// Половинка котировочной свечи: OHLC одной стороны стакана
type Bar struct {
	Open  decimal.Decimal
	High  decimal.Decimal
	Low   decimal.Decimal
	Close decimal.Decimal
}

func NewBar(price decimal.Decimal) *Bar {
	return &Bar{Open: price, High: price, Low: price, Close: price}
}

// Update двигает half-бар очередной ценой
func (b *Bar) Update(price decimal.Decimal) {
	if price.GreaterThan(b.High) {
		b.High = price
	}
	if price.LessThan(b.Low) {
		b.Low = price
	}
	b.Close = price
}

// Merge вливает закрытый half-бар по правилу OHLC
func (b *Bar) Merge(d *Bar) {
	if d.High.GreaterThan(b.High) {
		b.High = d.High
	}
	if d.Low.LessThan(b.Low) {
		b.Low = d.Low
	}
	b.Close = d.Close
}

func (b *Bar) Clone() *Bar {
	clone := *b
	return &clone
}

var _ DataPoint = (*QuoteBar)(nil)

// Котировочная свеча: независимые OHLC по bid и ask.
// Любая из сторон может отсутствовать (односторонняя котировка)
type QuoteBar struct {
	Symbol      string
	Time        time.Time
	Period      time.Duration
	Bid         *Bar
	Ask         *Bar
	LastBidSize decimal.Decimal
	LastAskSize decimal.Decimal
}

func (q *QuoteBar) GetSymbol() string {
	return q.Symbol
}
func (q *QuoteBar) GetTime() time.Time {
	return q.Time
}
func (q *QuoteBar) GetEndTime() time.Time {
	return q.Time.Add(q.Period)
}
func (q *QuoteBar) GetPeriod() time.Duration {
	return q.Period
}

// середина спреда по ценам закрытия, при односторонней котировке - имеющаяся сторона
func (q *QuoteBar) GetValue() decimal.Decimal {
	switch {
	case q.Bid != nil && q.Ask != nil:
		return q.Bid.Close.Add(q.Ask.Close).Div(decimal.NewFromInt(2))
	case q.Bid != nil:
		return q.Bid.Close
	case q.Ask != nil:
		return q.Ask.Close
	default:
		return decimal.Zero
	}
}

// Mid* - OHLC середины спреда, при односторонней котировке - имеющаяся сторона
func (q *QuoteBar) MidOpen() decimal.Decimal {
	return q.mid(func(b *Bar) decimal.Decimal { return b.Open })
}
func (q *QuoteBar) MidHigh() decimal.Decimal {
	return q.mid(func(b *Bar) decimal.Decimal { return b.High })
}
func (q *QuoteBar) MidLow() decimal.Decimal {
	return q.mid(func(b *Bar) decimal.Decimal { return b.Low })
}
func (q *QuoteBar) MidClose() decimal.Decimal {
	return q.mid(func(b *Bar) decimal.Decimal { return b.Close })
}

func (q *QuoteBar) mid(f func(*Bar) decimal.Decimal) decimal.Decimal {
	switch {
	case q.Bid != nil && q.Ask != nil:
		return f(q.Bid).Add(f(q.Ask)).Div(decimal.NewFromInt(2))
	case q.Bid != nil:
		return f(q.Bid)
	case q.Ask != nil:
		return f(q.Ask)
	default:
		return decimal.Zero
	}
}

// MergeQuoteBar вливает закрытую котировочную свечу: стороны объединяются независимо
func (q *QuoteBar) MergeQuoteBar(d *QuoteBar) {
	if d.Bid != nil {
		if q.Bid == nil {
			q.Bid = d.Bid.Clone()
		} else {
			q.Bid.Merge(d.Bid)
		}
		q.LastBidSize = d.LastBidSize
	}
	if d.Ask != nil {
		if q.Ask == nil {
			q.Ask = d.Ask.Clone()
		} else {
			q.Ask.Merge(d.Ask)
		}
		q.LastAskSize = d.LastAskSize
	}
}

// MergeQuoteTick двигает стороны котировочным тиком
func (q *QuoteBar) MergeQuoteTick(t *Tick) {
	if !t.Bid.IsZero() {
		if q.Bid == nil {
			q.Bid = NewBar(t.Bid)
		} else {
			q.Bid.Update(t.Bid)
		}
		q.LastBidSize = t.BidSize
	}
	if !t.Ask.IsZero() {
		if q.Ask == nil {
			q.Ask = NewBar(t.Ask)
		} else {
			q.Ask.Update(t.Ask)
		}
		q.LastAskSize = t.AskSize
	}
}

func (q *QuoteBar) Clone() *QuoteBar {
	clone := *q
	if q.Bid != nil {
		clone.Bid = q.Bid.Clone()
	}
	if q.Ask != nil {
		clone.Ask = q.Ask.Clone()
	}
	return &clone
}
