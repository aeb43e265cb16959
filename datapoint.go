package bars

import (
	"time"

	"github.com/shopspring/decimal"
)

// общий контракт рыночного сэмпла: тик, свеча, котировка, открытый интерес
// время всегда локальное время биржи, не UTC
type DataPoint interface {
	GetSymbol() string           // идентификатор инструмента
	GetTime() time.Time          // время начала сэмпла
	GetEndTime() time.Time       // время окончания сэмпла (для тика совпадает с началом)
	GetPeriod() time.Duration    // длительность сэмпла, для тиков ноль
	GetValue() decimal.Decimal   // репрезентативная цена (последняя/закрытия)
}

// направление кирпича ренко
type BrickDirection int

const (
	BrickNoDelta BrickDirection = iota // цена не сдвинулась
	BrickRising                        // растущий кирпич
	BrickFalling                       // падающий кирпич
)

func (d BrickDirection) String() string {
	switch d {
	case BrickRising:
		return "Rising"
	case BrickFalling:
		return "Falling"
	default:
		return "NoDelta"
	}
}
