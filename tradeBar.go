package bars

import (
	"time"

	"github.com/shopspring/decimal"
)

var _ DataPoint = (*TradeBar)(nil)

// Агрегированная свеча по сделкам
type TradeBar struct {
	Symbol string
	Time   time.Time     // время начала свечи, локальное время биржи
	Period time.Duration // длительность свечи
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}

func (b *TradeBar) GetSymbol() string {
	return b.Symbol
}
func (b *TradeBar) GetTime() time.Time {
	return b.Time
}
func (b *TradeBar) GetEndTime() time.Time {
	return b.Time.Add(b.Period)
}
func (b *TradeBar) GetPeriod() time.Duration {
	return b.Period
}
func (b *TradeBar) GetValue() decimal.Decimal {
	return b.Close
}

// MergeTradeBar складывает очередную свечу в рабочую по правилу OHLCV:
// open первой, high/low экстремумы, close последней, объём суммируется
func (b *TradeBar) MergeTradeBar(d *TradeBar) {
	if d.High.GreaterThan(b.High) {
		b.High = d.High
	}
	if d.Low.LessThan(b.Low) {
		b.Low = d.Low
	}
	b.Close = d.Close
	b.Volume = b.Volume.Add(d.Volume)
}

// MergeTick складывает тик как одноценовую свечу (open=high=low=close)
func (b *TradeBar) MergeTick(price decimal.Decimal, quantity decimal.Decimal) {
	if price.GreaterThan(b.High) {
		b.High = price
	}
	if price.LessThan(b.Low) {
		b.Low = price
	}
	b.Close = price
	b.Volume = b.Volume.Add(quantity)
}

func NewTradeBarFromTick(t *Tick, start time.Time, period time.Duration) *TradeBar {
	price := t.GetValue()
	return &TradeBar{
		Symbol: t.Symbol,
		Time:   start,
		Period: period,
		Open:   price,
		High:   price,
		Low:    price,
		Close:  price,
		Volume: t.Quantity,
	}
}

// копия, чтобы после эмиссии рабочий бар можно было мутировать дальше
func (b *TradeBar) Clone() *TradeBar {
	clone := *b
	return &clone
}
