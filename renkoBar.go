package bars

import (
	"time"

	"github.com/shopspring/decimal"
)

// вариант алгоритма ренко
type RenkoType int

const (
	RenkoClassic RenkoType = iota // классический: high/low обрезаются по размеру кирпича
	RenkoWicked                   // с тенями: high/low хранят истинный внутрикирпичный экстремум
)

func (t RenkoType) String() string {
	if t == RenkoWicked {
		return "Wicked"
	}
	return "Classic"
}

var _ DataPoint = (*RenkoBar)(nil)

// Кирпич ренко: бар, ограниченный не временем, а ходом цены
type RenkoBar struct {
	Symbol    string
	Start     time.Time // время первого сэмпла кирпича
	EndTime   time.Time // время сэмпла, закрывшего кирпич
	Type      RenkoType
	BrickSize decimal.Decimal
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	Volume    decimal.Decimal
	Direction BrickDirection
	Closed    bool
}

func (b *RenkoBar) GetSymbol() string {
	return b.Symbol
}
func (b *RenkoBar) GetTime() time.Time {
	return b.Start
}
func (b *RenkoBar) GetEndTime() time.Time {
	return b.EndTime
}
func (b *RenkoBar) GetPeriod() time.Duration {
	return b.EndTime.Sub(b.Start)
}
func (b *RenkoBar) GetValue() decimal.Decimal {
	return b.Close
}

// размах кирпича; у закрытого классического кирпича всегда равен BrickSize
func (b *RenkoBar) Spread() decimal.Decimal {
	return b.High.Sub(b.Low)
}

func (b *RenkoBar) Clone() *RenkoBar {
	clone := *b
	return &clone
}
