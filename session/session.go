package session

// Сессионный консолидатор: один бар на торговую сессию, любые типы
// рыночных данных по одному инструменту сливаются в общий SessionBar

import (
	"reflect"
	"time"

	"github.com/go-trading/bars"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var _ bars.Consolidator = (*Consolidator)(nil)

type Consolidator struct {
	bars.ConsolidatedEvent
	hours         bars.ExchangeHours
	extendedHours bool

	symbol  string
	working *bars.SessionBar
	// разрешение источника, владеющего ценами текущей сессии
	priceAuthority    bars.Resolution
	hasPriceAuthority bool
	// разрешение источника, уже поставившего объём сделок:
	// тиковый объём не добавляется поверх свечного
	volumeAuthority    bars.Resolution
	hasVolumeAuthority bool
	start, end         time.Time
}

func New(hours bars.ExchangeHours, extendedHours bool) (*Consolidator, error) {
	if hours == nil {
		return nil, errors.Wrap(bars.ErrConfiguration, "exchange hours oracle is required")
	}
	return &Consolidator{hours: hours, extendedHours: extendedHours}, nil
}

func (c *Consolidator) Update(d bars.DataPoint) error {
	switch d.(type) {
	case *bars.Tick, *bars.TradeBar, *bars.QuoteBar, *bars.OpenInterest:
	default:
		return errors.Wrapf(bars.ErrTypeMismatch, "unsupported market data type %T", d)
	}

	t := d.GetTime()
	res := bars.Period2Resolution(d.GetPeriod())

	if res < bars.ResolutionHour && !c.hours.IsOpen(t, c.extendedHours) {
		l.Debug("сэмпл вне сессии отброшен",
			zap.String("symbol", d.GetSymbol()),
			zap.Time("time", t),
		)
		return nil
	}
	if err := bars.CheckSymbol(&c.symbol, d); err != nil {
		return err
	}

	if c.working == nil {
		c.start, c.end = c.sessionWindow(t)
	} else if !t.Before(c.end) {
		c.emit()
		c.start, c.end = c.sessionWindow(t)
	}
	if c.working == nil {
		c.working = &bars.SessionBar{
			Symbol:  c.symbol,
			Time:    c.start,
			EndTime: c.end,
		}
	}

	c.mergePrice(d, res)
	c.mergeVolume(d, res)
	return nil
}

// цены: более грубый источник владеет OHLC сессии, запоздавшие
// тики поверх свечей игнорируются
func (c *Consolidator) mergePrice(d bars.DataPoint, res bars.Resolution) {
	if oi, ok := d.(*bars.OpenInterest); ok {
		c.working.OpenInterest = oi.Value
		return
	}
	if t, ok := d.(*bars.Tick); ok && t.Kind == bars.TickOpenInterest {
		c.working.OpenInterest = t.GetValue()
		return
	}
	if c.hasPriceAuthority && res < c.priceAuthority {
		return
	}

	var o, h, low, cl decimal.Decimal
	switch v := d.(type) {
	case *bars.TradeBar:
		o, h, low, cl = v.Open, v.High, v.Low, v.Close
	case *bars.QuoteBar:
		// котировки участвуют серединой спреда
		o, h, low, cl = v.MidOpen(), v.MidHigh(), v.MidLow(), v.MidClose()
	case *bars.Tick:
		p := v.GetValue()
		o, h, low, cl = p, p, p, p
	}
	if cl.IsZero() && o.IsZero() {
		return
	}

	if c.working.Open.IsZero() && c.working.Close.IsZero() {
		c.working.Open = o
		c.working.High = h
		c.working.Low = low
		c.working.Close = cl
	} else {
		if h.GreaterThan(c.working.High) {
			c.working.High = h
		}
		if low.LessThan(c.working.Low) {
			c.working.Low = low
		}
		c.working.Close = cl
	}
	if !c.hasPriceAuthority || res > c.priceAuthority {
		c.priceAuthority = res
		c.hasPriceAuthority = true
	}
}

// объём: торговые свечи несут Volume, тики - Quantity, котировочные
// свечи объёма не несут. Тиковый объём принимается, только если окно
// ещё не занято более грубым торговым источником
func (c *Consolidator) mergeVolume(d bars.DataPoint, res bars.Resolution) {
	switch v := d.(type) {
	case *bars.TradeBar:
		c.working.Volume = c.working.Volume.Add(v.Volume)
		if !c.hasVolumeAuthority || res > c.volumeAuthority {
			c.volumeAuthority = res
			c.hasVolumeAuthority = true
		}
	case *bars.Tick:
		if v.Kind == bars.TickOpenInterest {
			return
		}
		if c.hasVolumeAuthority && c.volumeAuthority > bars.ResolutionTick {
			return
		}
		c.working.Volume = c.working.Volume.Add(v.Quantity)
		c.hasVolumeAuthority = true
	}
}

// границы сессии, содержащей t; вне сессий (предагрегированный
// источник) окном служат календарные сутки
func (c *Consolidator) sessionWindow(t time.Time) (time.Time, time.Time) {
	for _, s := range c.hours.Sessions(t) {
		if s.Extended && !c.extendedHours {
			continue
		}
		if s.Contains(t) {
			return s.Open, s.Close
		}
	}
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight, midnight.AddDate(0, 0, 1)
}

func (c *Consolidator) Scan(now time.Time) {
	if c.working == nil {
		return
	}
	if !now.Before(c.end) {
		c.emit()
	}
}

func (c *Consolidator) ValidateAndScan(now time.Time, marketClosed func(time.Time) bool) {
	if c.working == nil {
		return
	}
	if marketClosed != nil && !marketClosed(now) {
		return
	}
	c.Scan(now)
}

func (c *Consolidator) emit() {
	bar := c.working.Clone()
	c.working = nil
	c.hasPriceAuthority = false
	c.hasVolumeAuthority = false
	c.priceAuthority = bars.ResolutionTick
	c.volumeAuthority = bars.ResolutionTick
	c.Emit(c, bar)
}

func (c *Consolidator) Reset() {
	c.symbol = ""
	c.working = nil
	c.hasPriceAuthority = false
	c.hasVolumeAuthority = false
	c.priceAuthority = bars.ResolutionTick
	c.volumeAuthority = bars.ResolutionTick
	c.start, c.end = time.Time{}, time.Time{}
	c.ResetEvent()
}

func (c *Consolidator) WorkingData() bars.DataPoint {
	if c.working == nil {
		return nil
	}
	return c.working
}

func (c *Consolidator) InputType() reflect.Type {
	return reflect.TypeOf((*bars.DataPoint)(nil)).Elem()
}

func (c *Consolidator) OutputType() reflect.Type {
	return reflect.TypeOf(&bars.SessionBar{})
}
