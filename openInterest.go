package bars

import (
	"time"

	"github.com/shopspring/decimal"
)

var _ DataPoint = (*OpenInterest)(nil)

// Значение открытого интереса инструмента
type OpenInterest struct {
	Symbol string
	Time   time.Time
	Period time.Duration // ноль для сырых обновлений, задаётся консолидатором
	Value  decimal.Decimal
}

func (o *OpenInterest) GetSymbol() string {
	return o.Symbol
}
func (o *OpenInterest) GetTime() time.Time {
	return o.Time
}
func (o *OpenInterest) GetEndTime() time.Time {
	return o.Time.Add(o.Period)
}
func (o *OpenInterest) GetPeriod() time.Duration {
	return o.Period
}
func (o *OpenInterest) GetValue() decimal.Decimal {
	return o.Value
}
