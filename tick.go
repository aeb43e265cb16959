package bars

import (
	"time"

	"github.com/shopspring/decimal"
)

// вид тика: сделка, котировка или обновление открытого интереса
type TickKind int

const (
	TickTrade TickKind = iota
	TickQuote
	TickOpenInterest
)

func (k TickKind) String() string {
	switch k {
	case TickTrade:
		return "trade"
	case TickQuote:
		return "quote"
	default:
		return "openinterest"
	}
}

var _ DataPoint = (*Tick)(nil)

// Одиночное рыночное наблюдение без собственной длительности
type Tick struct {
	Symbol   string
	Time     time.Time // локальное время биржи
	Kind     TickKind
	Price    decimal.Decimal // цена последней сделки
	Quantity decimal.Decimal // объём последней сделки
	Bid      decimal.Decimal
	Ask      decimal.Decimal
	BidSize  decimal.Decimal
	AskSize  decimal.Decimal
}

func (t *Tick) GetSymbol() string {
	return t.Symbol
}
func (t *Tick) GetTime() time.Time {
	return t.Time
}
func (t *Tick) GetEndTime() time.Time {
	return t.Time
}
func (t *Tick) GetPeriod() time.Duration {
	return time.Duration(0)
}

// для котировочного тика без цены сделки берётся середина спреда
func (t *Tick) GetValue() decimal.Decimal {
	if t.Kind == TickQuote && t.Price.IsZero() && !t.Bid.IsZero() && !t.Ask.IsZero() {
		return t.Bid.Add(t.Ask).Div(decimal.NewFromInt(2))
	}
	return t.Price
}

func NewTradeTick(symbol string, time time.Time, price decimal.Decimal, quantity decimal.Decimal) *Tick {
	return &Tick{
		Symbol:   symbol,
		Time:     time,
		Kind:     TickTrade,
		Price:    price,
		Quantity: quantity,
	}
}

func NewQuoteTick(symbol string, time time.Time, bid decimal.Decimal, ask decimal.Decimal) *Tick {
	return &Tick{
		Symbol: symbol,
		Time:   time,
		Kind:   TickQuote,
		Bid:    bid,
		Ask:    ask,
	}
}

func NewOpenInterestTick(symbol string, time time.Time, value decimal.Decimal) *Tick {
	return &Tick{
		Symbol: symbol,
		Time:   time,
		Kind:   TickOpenInterest,
		Price:  value,
	}
}
