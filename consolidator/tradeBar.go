package consolidator

import (
	"reflect"
	"time"

	"github.com/go-trading/bars"
	"github.com/pkg/errors"
)

var _ bars.Consolidator = (*TradeBarConsolidator)(nil)

// Консолидатор торговых свечей в более крупные торговые свечи
type TradeBarConsolidator struct {
	periodCount
}

// NewTradeBar закрывает бар по истечении периода
func NewTradeBar(period time.Duration) (*TradeBarConsolidator, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	c := newTradeBarConsolidator()
	c.period = period
	c.timed = true
	return c, nil
}

// NewTradeBarCount закрывает бар после count сэмплов;
// count 0 или 1 превращает консолидатор в сквозную передачу
func NewTradeBarCount(count int) (*TradeBarConsolidator, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}
	c := newTradeBarConsolidator()
	c.count = count
	c.hasCount = true
	return c, nil
}

// NewTradeBarMixed закрывает бар по первому из двух условий
func NewTradeBarMixed(count int, period time.Duration) (*TradeBarConsolidator, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	c := newTradeBarConsolidator()
	c.count = count
	c.hasCount = true
	c.period = period
	c.timed = true
	return c, nil
}

// NewTradeBarCalendar закрывает бар на календарной границе (неделя/месяц)
func NewTradeBarCalendar(cal Calendar) *TradeBarConsolidator {
	c := newTradeBarConsolidator()
	c.window = cal.Window
	c.timed = true
	return c
}

func newTradeBarConsolidator() *TradeBarConsolidator {
	c := &TradeBarConsolidator{}
	c.aggregate = aggregateTradeBar
	c.clip = clipTradeBar
	c.snapshot = snapshotTradeBar
	return c
}

func (c *TradeBarConsolidator) Update(d bars.DataPoint) error {
	if _, ok := d.(*bars.TradeBar); !ok {
		return errors.Wrapf(bars.ErrTypeMismatch, "want *bars.TradeBar, got %T", d)
	}
	return c.update(c, d)
}

func (c *TradeBarConsolidator) Scan(now time.Time) {
	c.scan(c, now)
}

func (c *TradeBarConsolidator) InputType() reflect.Type {
	return reflect.TypeOf(&bars.TradeBar{})
}

func (c *TradeBarConsolidator) OutputType() reflect.Type {
	return reflect.TypeOf(&bars.TradeBar{})
}

func aggregateTradeBar(working bars.DataPoint, d bars.DataPoint, start time.Time, period time.Duration) bars.DataPoint {
	tb := d.(*bars.TradeBar)
	if working == nil {
		w := tb.Clone()
		if !start.IsZero() {
			w.Time = start
			w.Period = period
		}
		return w
	}
	w := working.(*bars.TradeBar)
	w.MergeTradeBar(tb)
	if start.IsZero() {
		// счётный режим: бар накапливает длительность источника
		w.Period += tb.Period
	}
	return w
}

func clipTradeBar(working bars.DataPoint, end time.Time) {
	w := working.(*bars.TradeBar)
	w.Period = end.Sub(w.Time)
}

func snapshotTradeBar(working bars.DataPoint) bars.DataPoint {
	return working.(*bars.TradeBar).Clone()
}
