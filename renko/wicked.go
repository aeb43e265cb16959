package renko

import (
	"reflect"
	"time"

	"github.com/go-trading/bars"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var _ bars.Consolidator = (*Wicked)(nil)

// Ренко с тенями: открытый кирпич непрерывно запоминает истинные
// внутрикирпичные экстремумы, а не только пороги закрытия. Скачок
// через несколько размеров кирпича эмитирует несколько кирпичей
// за один Update, тень достаётся первому из них
type Wicked struct {
	bars.ConsolidatedEvent
	brickSize      decimal.Decimal
	selector       Selector
	volumeSelector Selector
	symbol         string
	working        *bars.RenkoBar
}

func NewWicked(brickSize decimal.Decimal) (*Wicked, error) {
	return NewWickedSelector(brickSize, ValueSelector, VolumeSelector)
}

func NewWickedSelector(brickSize decimal.Decimal, selector Selector, volumeSelector Selector) (*Wicked, error) {
	if !brickSize.IsPositive() {
		return nil, errors.Wrapf(bars.ErrConfiguration, "brick size must be positive, got %s", brickSize)
	}
	return &Wicked{
		brickSize:      brickSize,
		selector:       selector,
		volumeSelector: volumeSelector,
	}, nil
}

// NewWicko - исторически сложившееся имя того же алгоритма
// с обязательными функциями выбора цены и объёма
func NewWicko(brickSize decimal.Decimal, selector Selector, volumeSelector Selector) (*Wicked, error) {
	return NewWickedSelector(brickSize, selector, volumeSelector)
}

func (c *Wicked) Update(d bars.DataPoint) error {
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
			Type:      bars.RenkoWicked,
			BrickSize: c.brickSize,
			Open:      open,
			High:      price,
			Low:       price,
			Close:     price,
		}
	}

	// тень обновляется каждым сэмплом
	c.working.High = decimal.Max(c.working.High, price)
	c.working.Low = decimal.Min(c.working.Low, price)
	c.working.Close = price
	c.working.Volume = c.working.Volume.Add(volume)
	c.working.EndTime = t

	for {
		top := c.working.Open.Add(c.brickSize)
		bottom := c.working.Open.Sub(c.brickSize)
		switch {
		case price.GreaterThanOrEqual(top):
			c.closeBrick(top, bars.BrickRising, price, t)
		case price.LessThanOrEqual(bottom):
			c.closeBrick(bottom, bars.BrickFalling, price, t)
		default:
			return nil
		}
	}
}

func (c *Wicked) closeBrick(close decimal.Decimal, direction bars.BrickDirection, price decimal.Decimal, t time.Time) {
	brick := &bars.RenkoBar{
		Symbol:    c.symbol,
		Start:     c.working.Start,
		EndTime:   t,
		Type:      bars.RenkoWicked,
		BrickSize: c.brickSize,
		Open:      c.working.Open,
		Close:     close,
		Volume:    c.working.Volume,
		Direction: direction,
		Closed:    true,
	}
	if direction == bars.BrickRising {
		// растущий кирпич: верх обрезается телом, нижняя тень сохраняется
		brick.High = close
		brick.Low = decimal.Min(c.working.Low, c.working.Open)
	} else {
		brick.Low = close
		brick.High = decimal.Max(c.working.High, c.working.Open)
	}
	// следующий кирпич открывается от цены закрытия, тень сбрасывается:
	// вклад тени уже ушёл в эмитированный кирпич
	c.working = &bars.RenkoBar{
		Symbol:    c.symbol,
		Start:     t,
		EndTime:   t,
		Type:      bars.RenkoWicked,
		BrickSize: c.brickSize,
		Open:      close,
		High:      decimal.Max(close, price),
		Low:       decimal.Min(close, price),
		Close:     price,
	}
	c.Emit(c, brick)
}

func (c *Wicked) Scan(now time.Time) {}

func (c *Wicked) Reset() {
	c.symbol = ""
	c.working = nil
	c.ResetEvent()
}

func (c *Wicked) WorkingData() bars.DataPoint {
	if c.working == nil {
		return nil
	}
	return c.working
}

func (c *Wicked) InputType() reflect.Type {
	return reflect.TypeOf((*bars.DataPoint)(nil)).Elem()
}

func (c *Wicked) OutputType() reflect.Type {
	return reflect.TypeOf(&bars.RenkoBar{})
}
