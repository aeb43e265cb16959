package bars

import (
	"time"

	"github.com/shopspring/decimal"
)

var _ DataPoint = (*SessionBar)(nil)

// Бар одной торговой сессии: OHLCV плюс отдельный аккумулятор
// открытого интереса, который не трогает ценовые поля
type SessionBar struct {
	Symbol       string
	Time         time.Time // открытие сессии
	EndTime      time.Time // закрытие сессии
	Open         decimal.Decimal
	High         decimal.Decimal
	Low          decimal.Decimal
	Close        decimal.Decimal
	Volume       decimal.Decimal
	OpenInterest decimal.Decimal
}

func (b *SessionBar) GetSymbol() string {
	return b.Symbol
}
func (b *SessionBar) GetTime() time.Time {
	return b.Time
}
func (b *SessionBar) GetEndTime() time.Time {
	return b.EndTime
}
func (b *SessionBar) GetPeriod() time.Duration {
	return b.EndTime.Sub(b.Time)
}
func (b *SessionBar) GetValue() decimal.Decimal {
	return b.Close
}

func (b *SessionBar) Clone() *SessionBar {
	clone := *b
	return &clone
}
