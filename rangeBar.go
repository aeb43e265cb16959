package bars

import (
	"time"

	"github.com/shopspring/decimal"
)

var _ DataPoint = (*RangeBar)(nil)

// Range-бар: размах закрытого бара всегда равен RangeSize,
// соседние бары не пересекаются (следующий открывается на шаг цены дальше)
type RangeBar struct {
	Symbol    string
	Start     time.Time
	EndTime   time.Time
	RangeSize decimal.Decimal // размах в абсолютных ценовых единицах
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	Volume    decimal.Decimal
	Closed    bool
}

func (b *RangeBar) GetSymbol() string {
	return b.Symbol
}
func (b *RangeBar) GetTime() time.Time {
	return b.Start
}
func (b *RangeBar) GetEndTime() time.Time {
	return b.EndTime
}
func (b *RangeBar) GetPeriod() time.Duration {
	return b.EndTime.Sub(b.Start)
}
func (b *RangeBar) GetValue() decimal.Decimal {
	return b.Close
}

func (b *RangeBar) Spread() decimal.Decimal {
	return b.High.Sub(b.Low)
}

func (b *RangeBar) Clone() *RangeBar {
	clone := *b
	return &clone
}
