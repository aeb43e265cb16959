package renko

import (
	"reflect"
	"time"

	"github.com/go-trading/bars"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var _ bars.Consolidator = (*Classic)(nil)

// Классический ренко: кирпич закрывается при уходе цены на размер
// кирпича от открытия, high/low закрытого кирпича обрезаются по телу,
// тени не сохраняются
type Classic struct {
	bars.ConsolidatedEvent
	brickSize      decimal.Decimal
	selector       Selector
	volumeSelector Selector
	symbol         string
	working        *bars.RenkoBar
}

func NewClassic(brickSize decimal.Decimal) (*Classic, error) {
	return NewClassicSelector(brickSize, ValueSelector, VolumeSelector)
}

func NewClassicSelector(brickSize decimal.Decimal, selector Selector, volumeSelector Selector) (*Classic, error) {
	if !brickSize.IsPositive() {
		return nil, errors.Wrapf(bars.ErrConfiguration, "brick size must be positive, got %s", brickSize)
	}
	return &Classic{
		brickSize:      brickSize,
		selector:       selector,
		volumeSelector: volumeSelector,
	}, nil
}

func (c *Classic) Update(d bars.DataPoint) error {
	if err := bars.CheckSymbol(&c.symbol, d); err != nil {
		return err
	}
	price := c.selector(d)
	volume := c.volumeSelector(d)
	t := d.GetTime()

	if c.working == nil {
		open := floorToBrick(price, c.brickSize)
		c.working = &bars.RenkoBar{
			Symbol:    c.symbol,
			Start:     t,
			EndTime:   t,
			Type:      bars.RenkoClassic,
			BrickSize: c.brickSize,
			Open:      open,
			High:      decimal.Max(open, price),
			Low:       decimal.Min(open, price),
			Close:     price,
		}
	}

	c.working.Close = price
	c.working.High = decimal.Max(c.working.High, price)
	c.working.Low = decimal.Min(c.working.Low, price)
	c.working.Volume = c.working.Volume.Add(volume)
	c.working.EndTime = t

	// закрытие кирпичей; большой скачок цены закрывает несколько подряд
	for {
		top := c.working.Open.Add(c.brickSize)
		bottom := c.working.Open.Sub(c.brickSize)
		switch {
		case price.GreaterThanOrEqual(top):
			c.closeBrick(top, bars.BrickRising, t)
		case price.LessThanOrEqual(bottom):
			c.closeBrick(bottom, bars.BrickFalling, t)
		default:
			return nil
		}
	}
}

// закрывает текущий кирпич по цене close и открывает следующий от неё же.
// Остаток хода триггерного сэмпла переносится в новый кирпич
func (c *Classic) closeBrick(close decimal.Decimal, direction bars.BrickDirection, t time.Time) {
	brick := &bars.RenkoBar{
		Symbol:    c.symbol,
		Start:     c.working.Start,
		EndTime:   t,
		Type:      bars.RenkoClassic,
		BrickSize: c.brickSize,
		Open:      c.working.Open,
		High:      decimal.Max(c.working.Open, close),
		Low:       decimal.Min(c.working.Open, close),
		Close:     close,
		Volume:    c.working.Volume,
		Direction: direction,
		Closed:    true,
	}
	price := c.working.Close
	c.working = &bars.RenkoBar{
		Symbol:    c.symbol,
		Start:     t,
		EndTime:   t,
		Type:      bars.RenkoClassic,
		BrickSize: c.brickSize,
		Open:      close,
		High:      decimal.Max(close, price),
		Low:       decimal.Min(close, price),
		Close:     price,
		// объём триггерного сэмпла остаётся в первом закрытом кирпиче
	}
	l.Debug("кирпич закрыт",
		zap.String("symbol", c.symbol),
		zap.Stringer("direction", direction),
		zap.String("close", close.String()),
	)
	c.Emit(c, brick)
}

// ход времени кирпич не закрывает
func (c *Classic) Scan(now time.Time) {}

func (c *Classic) Reset() {
	c.symbol = ""
	c.working = nil
	c.ResetEvent()
}

func (c *Classic) WorkingData() bars.DataPoint {
	if c.working == nil {
		return nil
	}
	return c.working
}

func (c *Classic) InputType() reflect.Type {
	return reflect.TypeOf((*bars.DataPoint)(nil)).Elem()
}

func (c *Classic) OutputType() reflect.Type {
	return reflect.TypeOf(&bars.RenkoBar{})
}
