package bars

import (
	"time"

	"github.com/shopspring/decimal"
)

var _ DataPoint = (*VolumeRenkoBar)(nil)

// Кирпич по долларовому объёму: закрывается при накоплении
// price*quantity до порога, цена идёт как наблюдалась, без обрезки
type VolumeRenkoBar struct {
	Symbol      string
	Start       time.Time
	EndTime     time.Time
	BrickVolume decimal.Decimal // порог долларового объёма
	Open        decimal.Decimal
	High        decimal.Decimal
	Low         decimal.Decimal
	Close       decimal.Decimal
	Volume      decimal.Decimal // накопленный долларовый объём; у закрытого равен BrickVolume
	Closed      bool
}

func (b *VolumeRenkoBar) GetSymbol() string {
	return b.Symbol
}
func (b *VolumeRenkoBar) GetTime() time.Time {
	return b.Start
}
func (b *VolumeRenkoBar) GetEndTime() time.Time {
	return b.EndTime
}
func (b *VolumeRenkoBar) GetPeriod() time.Duration {
	return b.EndTime.Sub(b.Start)
}
func (b *VolumeRenkoBar) GetValue() decimal.Decimal {
	return b.Close
}

func (b *VolumeRenkoBar) Clone() *VolumeRenkoBar {
	clone := *b
	return &clone
}
