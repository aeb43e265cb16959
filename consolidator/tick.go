package consolidator

import (
	"reflect"
	"time"

	"github.com/go-trading/bars"
	"github.com/pkg/errors"
)

var _ bars.Consolidator = (*TickConsolidator)(nil)

// Консолидатор торговых тиков в торговые свечи.
// Котировочные тики сюда не подключают - для них TickQuoteBarConsolidator
type TickConsolidator struct {
	periodCount
}

func NewTick(period time.Duration) (*TickConsolidator, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	c := newTickConsolidator()
	c.period = period
	c.timed = true
	return c, nil
}

func NewTickCount(count int) (*TickConsolidator, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}
	c := newTickConsolidator()
	c.count = count
	c.hasCount = true
	return c, nil
}

func NewTickMixed(count int, period time.Duration) (*TickConsolidator, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	c := newTickConsolidator()
	c.count = count
	c.hasCount = true
	c.period = period
	c.timed = true
	return c, nil
}

func NewTickCalendar(cal Calendar) *TickConsolidator {
	c := newTickConsolidator()
	c.window = cal.Window
	c.timed = true
	return c
}

func newTickConsolidator() *TickConsolidator {
	c := &TickConsolidator{}
	c.aggregate = aggregateTradeTick
	c.clip = clipTradeBar
	c.snapshot = snapshotTradeBar
	return c
}

func (c *TickConsolidator) Update(d bars.DataPoint) error {
	t, ok := d.(*bars.Tick)
	if !ok {
		return errors.Wrapf(bars.ErrTypeMismatch, "want *bars.Tick, got %T", d)
	}
	if t.Kind != bars.TickTrade {
		return errors.Wrapf(bars.ErrTypeMismatch, "want trade tick, got %s kind", t.Kind)
	}
	return c.update(c, d)
}

func (c *TickConsolidator) Scan(now time.Time) {
	c.scan(c, now)
}

func (c *TickConsolidator) InputType() reflect.Type {
	return reflect.TypeOf(&bars.Tick{})
}

func (c *TickConsolidator) OutputType() reflect.Type {
	return reflect.TypeOf(&bars.TradeBar{})
}

func aggregateTradeTick(working bars.DataPoint, d bars.DataPoint, start time.Time, period time.Duration) bars.DataPoint {
	t := d.(*bars.Tick)
	if working == nil {
		if start.IsZero() {
			// счётный режим: бар начинается со времени первого тика
			return bars.NewTradeBarFromTick(t, t.Time, 0)
		}
		return bars.NewTradeBarFromTick(t, start, period)
	}
	w := working.(*bars.TradeBar)
	w.MergeTick(t.GetValue(), t.Quantity)
	return w
}

var _ bars.Consolidator = (*TickQuoteBarConsolidator)(nil)

// Консолидатор котировочных тиков в котировочные свечи
type TickQuoteBarConsolidator struct {
	periodCount
}

func NewTickQuoteBar(period time.Duration) (*TickQuoteBarConsolidator, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	c := newTickQuoteBarConsolidator()
	c.period = period
	c.timed = true
	return c, nil
}

func NewTickQuoteBarCount(count int) (*TickQuoteBarConsolidator, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}
	c := newTickQuoteBarConsolidator()
	c.count = count
	c.hasCount = true
	return c, nil
}

func newTickQuoteBarConsolidator() *TickQuoteBarConsolidator {
	c := &TickQuoteBarConsolidator{}
	c.aggregate = aggregateQuoteTick
	c.clip = clipQuoteBar
	c.snapshot = snapshotQuoteBar
	return c
}

func (c *TickQuoteBarConsolidator) Update(d bars.DataPoint) error {
	t, ok := d.(*bars.Tick)
	if !ok {
		return errors.Wrapf(bars.ErrTypeMismatch, "want *bars.Tick, got %T", d)
	}
	if t.Kind != bars.TickQuote {
		return errors.Wrapf(bars.ErrTypeMismatch, "want quote tick, got %s kind", t.Kind)
	}
	return c.update(c, d)
}

func (c *TickQuoteBarConsolidator) Scan(now time.Time) {
	c.scan(c, now)
}

func (c *TickQuoteBarConsolidator) InputType() reflect.Type {
	return reflect.TypeOf(&bars.Tick{})
}

func (c *TickQuoteBarConsolidator) OutputType() reflect.Type {
	return reflect.TypeOf(&bars.QuoteBar{})
}

func aggregateQuoteTick(working bars.DataPoint, d bars.DataPoint, start time.Time, period time.Duration) bars.DataPoint {
	t := d.(*bars.Tick)
	var w *bars.QuoteBar
	if working == nil {
		w = &bars.QuoteBar{Symbol: t.Symbol, Time: start, Period: period}
		if start.IsZero() {
			w.Time = t.Time
		}
	} else {
		w = working.(*bars.QuoteBar)
	}
	w.MergeQuoteTick(t)
	return w
}
