package session

// Консолидатор с торговым календарём: границы бара определяются
// сессиями биржи, а не только настенными часами

import (
	"reflect"
	"time"

	"github.com/go-trading/bars"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var _ bars.Consolidator = (*MarketHourAware)(nil)

type MarketHourAware struct {
	bars.ConsolidatedEvent
	period        time.Duration      // номинальный период (напр. сутки)
	hours         bars.ExchangeHours // торговый календарь, только чтение
	strictEndTime bool               // конец бара обрезается по закрытию сессии
	extendedHours bool               // принимать данные расширенных сессий

	symbol       string
	working      *bars.TradeBar
	authority    bars.Resolution // разрешение источника, владеющего окном
	hasAuthority bool
	start, end   time.Time // текущее окно [start, end)
}

func NewMarketHourAware(period time.Duration, hours bars.ExchangeHours, strictEndTime bool, extendedHours bool) (*MarketHourAware, error) {
	if period <= 0 {
		return nil, errors.Wrapf(bars.ErrConfiguration, "period must be positive, got %s", period)
	}
	if hours == nil {
		return nil, errors.Wrap(bars.ErrConfiguration, "exchange hours oracle is required")
	}
	return &MarketHourAware{
		period:        period,
		hours:         hours,
		strictEndTime: strictEndTime,
		extendedHours: extendedHours,
	}, nil
}

func (c *MarketHourAware) Update(d bars.DataPoint) error {
	switch v := d.(type) {
	case *bars.TradeBar:
	case *bars.Tick:
		if v.Kind != bars.TickTrade {
			return errors.Wrapf(bars.ErrTypeMismatch, "want trade data, got %s tick", v.Kind)
		}
	default:
		return errors.Wrapf(bars.ErrTypeMismatch, "want *bars.TradeBar or trade tick, got %T", d)
	}

	t := d.GetTime()
	res := bars.Period2Resolution(d.GetPeriod())

	// данные вне торговых часов отбрасываются; часовое и более грубое
	// разрешение принимается всегда - такие источники предагрегированы
	if res < bars.ResolutionHour && !c.hours.IsOpen(t, c.extendedHours) {
		l.Debug("сэмпл вне торговых часов отброшен",
			zap.String("symbol", d.GetSymbol()),
			zap.Time("time", t),
		)
		return nil
	}
	if err := bars.CheckSymbol(&c.symbol, d); err != nil {
		return err
	}

	// более грубые данные владеют окном: запоздавший дубль более
	// тонкого разрешения не должен их перезаписать
	if c.working != nil && c.hasAuthority && res < c.authority && t.Before(c.end) {
		l.Debug("сэмпл более тонкого разрешения отброшен",
			zap.String("symbol", d.GetSymbol()),
			zap.Stringer("resolution", res),
			zap.Stringer("authority", c.authority),
		)
		return nil
	}

	if c.working == nil {
		c.start, c.end = c.windowFor(t)
	} else if !t.Before(c.end) {
		c.emit()
		c.start, c.end = c.windowFor(t)
	}

	if c.working == nil {
		c.working = &bars.TradeBar{
			Symbol: c.symbol,
			Time:   c.start,
			Period: c.end.Sub(c.start),
			Open:   d.GetValue(),
			High:   d.GetValue(),
			Low:    d.GetValue(),
			Close:  d.GetValue(),
		}
		if tb, ok := d.(*bars.TradeBar); ok {
			c.working.Open = tb.Open
			c.working.High = tb.High
			c.working.Low = tb.Low
			c.working.Close = tb.Close
		}
	} else {
		if tb, ok := d.(*bars.TradeBar); ok {
			high, low, close := tb.High, tb.Low, tb.Close
			if high.GreaterThan(c.working.High) {
				c.working.High = high
			}
			if low.LessThan(c.working.Low) {
				c.working.Low = low
			}
			c.working.Close = close
		} else {
			c.working.MergeTick(d.GetValue(), decimal.Zero)
		}
	}
	switch v := d.(type) {
	case *bars.TradeBar:
		c.working.Volume = c.working.Volume.Add(v.Volume)
	case *bars.Tick:
		c.working.Volume = c.working.Volume.Add(v.Quantity)
	}
	if !c.hasAuthority || res > c.authority {
		c.authority = res
		c.hasAuthority = true
	}
	return nil
}

// окно бара: в строгом режиме конец обрезается по фактическому
// закрытию сессии, которое может наступить раньше наивной границы
func (c *MarketHourAware) windowFor(t time.Time) (time.Time, time.Time) {
	naiveStart := floorPeriod(t, c.period)
	naiveEnd := naiveStart.Add(c.period)

	if c.period >= 24*time.Hour {
		// суточный бар живёт от открытия рынка до закрытия сессии
		for _, s := range c.hours.Sessions(t) {
			if s.Extended && !c.extendedHours {
				continue
			}
			if s.Contains(t) || s.Open.After(t) {
				if c.strictEndTime {
					return s.Open, s.Close
				}
				return s.Open, naiveEnd
			}
		}
		// вне сессий сюда попадает только предагрегированный источник
		return naiveStart, naiveEnd
	}

	if c.strictEndTime {
		close := c.hours.NextClose(naiveStart, c.extendedHours)
		if close.Before(naiveEnd) {
			return naiveStart, close
		}
	}
	return naiveStart, naiveEnd
}

func (c *MarketHourAware) Scan(now time.Time) {
	if c.working == nil {
		return
	}
	if !now.Before(c.end) {
		c.emit()
	}
}

// ValidateAndScan - Scan с защитой от преждевременной эмиссии ровно
// в момент закрытия: в строгом режиме бар закрывается только строго
// после границы сессии и только при закрытом рынке
func (c *MarketHourAware) ValidateAndScan(now time.Time, marketClosed func(time.Time) bool) {
	if c.working == nil {
		return
	}
	if marketClosed != nil && !marketClosed(now) {
		return
	}
	if c.strictEndTime {
		if now.After(c.end) {
			c.emit()
		}
		return
	}
	c.Scan(now)
}

func (c *MarketHourAware) emit() {
	bar := c.working.Clone()
	c.working = nil
	c.authority = bars.ResolutionTick
	c.hasAuthority = false
	c.Emit(c, bar)
}

func (c *MarketHourAware) Reset() {
	c.symbol = ""
	c.working = nil
	c.authority = bars.ResolutionTick
	c.hasAuthority = false
	c.start, c.end = time.Time{}, time.Time{}
	c.ResetEvent()
}

func (c *MarketHourAware) WorkingData() bars.DataPoint {
	if c.working == nil {
		return nil
	}
	return c.working
}

func (c *MarketHourAware) InputType() reflect.Type {
	return reflect.TypeOf(&bars.TradeBar{})
}

func (c *MarketHourAware) OutputType() reflect.Type {
	return reflect.TypeOf(&bars.TradeBar{})
}

func floorPeriod(t time.Time, p time.Duration) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	if p >= 24*time.Hour {
		return midnight
	}
	return midnight.Add(t.Sub(midnight).Truncate(p))
}
