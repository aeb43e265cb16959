package renko

import (
	"reflect"
	"time"

	"github.com/go-trading/bars"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var _ bars.Consolidator = (*DollarVolume)(nil)

// Кирпичи по долларовому объёму: кирпич закрывается, когда накопленная
// сумма price*quantity достигает порога. Цена идёт как наблюдалась,
// без синтетической обрезки; превышение порога переносится в
// накопление следующего кирпича
type DollarVolume struct {
	bars.ConsolidatedEvent
	threshold decimal.Decimal
	symbol    string
	working   *bars.VolumeRenkoBar
}

func NewDollarVolume(threshold decimal.Decimal) (*DollarVolume, error) {
	if !threshold.IsPositive() {
		return nil, errors.Wrapf(bars.ErrConfiguration, "dollar volume threshold must be positive, got %s", threshold)
	}
	return &DollarVolume{threshold: threshold}, nil
}

// принимаются только данные со сделочным объёмом: торговые тики и свечи
func (c *DollarVolume) Update(d bars.DataPoint) error {
	var price, quantity decimal.Decimal
	switch v := d.(type) {
	case *bars.Tick:
		if v.Kind != bars.TickTrade {
			return errors.Wrapf(bars.ErrTypeMismatch, "dollar volume renko needs trade data, got %s tick", v.Kind)
		}
		price, quantity = v.Price, v.Quantity
	case *bars.TradeBar:
		price, quantity = v.Close, v.Volume
	default:
		return errors.Wrapf(bars.ErrTypeMismatch, "dollar volume renko needs trade data, got %T", d)
	}
	if err := bars.CheckSymbol(&c.symbol, d); err != nil {
		return err
	}
	t := d.GetTime()

	if c.working == nil {
		c.working = c.newBrick(price, decimal.Zero, t)
	}

	c.working.High = decimal.Max(c.working.High, price)
	c.working.Low = decimal.Min(c.working.Low, price)
	c.working.Close = price
	c.working.Volume = c.working.Volume.Add(price.Mul(quantity))
	c.working.EndTime = t

	// один сэмпл с огромным объёмом может закрыть несколько кирпичей
	for c.working.Volume.GreaterThanOrEqual(c.threshold) {
		excess := c.working.Volume.Sub(c.threshold)
		brick := c.working.Clone()
		brick.Volume = c.threshold
		brick.Closed = true
		c.working = c.newBrick(price, excess, t)
		c.Emit(c, brick)
	}
	return nil
}

func (c *DollarVolume) newBrick(price decimal.Decimal, volume decimal.Decimal, t time.Time) *bars.VolumeRenkoBar {
	return &bars.VolumeRenkoBar{
		Symbol:      c.symbol,
		Start:       t,
		EndTime:     t,
		BrickVolume: c.threshold,
		Open:        price,
		High:        price,
		Low:         price,
		Close:       price,
		Volume:      volume,
	}
}

func (c *DollarVolume) Scan(now time.Time) {}

func (c *DollarVolume) Reset() {
	c.symbol = ""
	c.working = nil
	c.ResetEvent()
}

func (c *DollarVolume) WorkingData() bars.DataPoint {
	if c.working == nil {
		return nil
	}
	return c.working
}

func (c *DollarVolume) InputType() reflect.Type {
	return reflect.TypeOf(&bars.Tick{})
}

func (c *DollarVolume) OutputType() reflect.Type {
	return reflect.TypeOf(&bars.VolumeRenkoBar{})
}
