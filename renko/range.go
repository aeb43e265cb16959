package renko

import (
	"reflect"
	"time"

	"github.com/go-trading/bars"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var _ bars.Consolidator = (*Range)(nil)

// Range-бары: размах закрытого бара всегда равен units шагам цены.
// Следующий бар открывается на один шаг цены дальше границы
// предыдущего, поэтому соседние бары никогда не пересекаются.
// Разрывы цены мостятся пустыми барами с нулевым объёмом
type Range struct {
	bars.ConsolidatedEvent
	rangeSize      decimal.Decimal // units * increment, абсолютный размах
	increment      decimal.Decimal // минимальный шаг цены
	selector       Selector
	volumeSelector Selector
	symbol         string
	working        *bars.RangeBar
}

func NewRange(units int64, increment decimal.Decimal) (*Range, error) {
	return NewRangeSelector(units, increment, ValueSelector, VolumeSelector)
}

func NewRangeSelector(units int64, increment decimal.Decimal, selector Selector, volumeSelector Selector) (*Range, error) {
	if units <= 0 {
		return nil, errors.Wrapf(bars.ErrConfiguration, "range units must be positive, got %d", units)
	}
	if !increment.IsPositive() {
		return nil, errors.Wrapf(bars.ErrConfiguration, "price increment must be positive, got %s", increment)
	}
	return &Range{
		rangeSize:      increment.Mul(decimal.NewFromInt(units)),
		increment:      increment,
		selector:       selector,
		volumeSelector: volumeSelector,
	}, nil
}

func (c *Range) Update(d bars.DataPoint) error {
	if err := bars.CheckSymbol(&c.symbol, d); err != nil {
		return err
	}
	price := c.selector(d)
	volume := c.volumeSelector(d)
	t := d.GetTime()

	if c.working == nil {
		c.working = c.newBar(price, t)
	}

	// прорывы закрывают бары, пока текущий сэмпл не уложится в размах;
	// промежуточные бары - мосты через разрыв, объём в них не попадает
	for {
		if price.Sub(c.working.Low).GreaterThan(c.rangeSize) {
			top := c.working.Low.Add(c.rangeSize)
			c.closeBar(top, top, bars.BrickRising, t)
			c.working = c.newBar(top.Add(c.increment), t)
			continue
		}
		if c.working.High.Sub(price).GreaterThan(c.rangeSize) {
			bottom := c.working.High.Sub(c.rangeSize)
			c.closeBar(bottom, bottom, bars.BrickFalling, t)
			c.working = c.newBar(bottom.Sub(c.increment), t)
			continue
		}
		break
	}

	// сэмпл оседает в баре, который его вместил
	c.working.High = decimal.Max(c.working.High, price)
	c.working.Low = decimal.Min(c.working.Low, price)
	c.working.Close = price
	c.working.Volume = c.working.Volume.Add(volume)
	c.working.EndTime = t
	return nil
}

func (c *Range) newBar(price decimal.Decimal, t time.Time) *bars.RangeBar {
	return &bars.RangeBar{
		Symbol:    c.symbol,
		Start:     t,
		EndTime:   t,
		RangeSize: c.rangeSize,
		Open:      price,
		High:      price,
		Low:       price,
		Close:     price,
	}
}

func (c *Range) closeBar(boundary decimal.Decimal, close decimal.Decimal, direction bars.BrickDirection, t time.Time) {
	bar := c.working.Clone()
	if direction == bars.BrickRising {
		bar.High = boundary
	} else {
		bar.Low = boundary
	}
	bar.Close = close
	bar.EndTime = t
	bar.Closed = true
	c.working = nil
	c.Emit(c, bar)
}

func (c *Range) Scan(now time.Time) {}

func (c *Range) Reset() {
	c.symbol = ""
	c.working = nil
	c.ResetEvent()
}

func (c *Range) WorkingData() bars.DataPoint {
	if c.working == nil {
		return nil
	}
	return c.working
}

func (c *Range) InputType() reflect.Type {
	return reflect.TypeOf((*bars.DataPoint)(nil)).Elem()
}

func (c *Range) OutputType() reflect.Type {
	return reflect.TypeOf(&bars.RangeBar{})
}
