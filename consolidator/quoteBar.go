package consolidator

import (
	"reflect"
	"time"

	"github.com/go-trading/bars"
	"github.com/pkg/errors"
)

var _ bars.Consolidator = (*QuoteBarConsolidator)(nil)

// Консолидатор котировочных свечей: стороны bid и ask
// объединяются независимо по правилу OHLC
type QuoteBarConsolidator struct {
	periodCount
}

func NewQuoteBar(period time.Duration) (*QuoteBarConsolidator, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	c := newQuoteBarConsolidator()
	c.period = period
	c.timed = true
	return c, nil
}

func NewQuoteBarCount(count int) (*QuoteBarConsolidator, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}
	c := newQuoteBarConsolidator()
	c.count = count
	c.hasCount = true
	return c, nil
}

func NewQuoteBarMixed(count int, period time.Duration) (*QuoteBarConsolidator, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	c := newQuoteBarConsolidator()
	c.count = count
	c.hasCount = true
	c.period = period
	c.timed = true
	return c, nil
}

func NewQuoteBarCalendar(cal Calendar) *QuoteBarConsolidator {
	c := newQuoteBarConsolidator()
	c.window = cal.Window
	c.timed = true
	return c
}

func newQuoteBarConsolidator() *QuoteBarConsolidator {
	c := &QuoteBarConsolidator{}
	c.aggregate = aggregateQuoteBar
	c.clip = clipQuoteBar
	c.snapshot = snapshotQuoteBar
	return c
}

func (c *QuoteBarConsolidator) Update(d bars.DataPoint) error {
	if _, ok := d.(*bars.QuoteBar); !ok {
		return errors.Wrapf(bars.ErrTypeMismatch, "want *bars.QuoteBar, got %T", d)
	}
	return c.update(c, d)
}

func (c *QuoteBarConsolidator) Scan(now time.Time) {
	c.scan(c, now)
}

func (c *QuoteBarConsolidator) InputType() reflect.Type {
	return reflect.TypeOf(&bars.QuoteBar{})
}

func (c *QuoteBarConsolidator) OutputType() reflect.Type {
	return reflect.TypeOf(&bars.QuoteBar{})
}

func aggregateQuoteBar(working bars.DataPoint, d bars.DataPoint, start time.Time, period time.Duration) bars.DataPoint {
	qb := d.(*bars.QuoteBar)
	if working == nil {
		w := qb.Clone()
		if !start.IsZero() {
			w.Time = start
			w.Period = period
		}
		return w
	}
	w := working.(*bars.QuoteBar)
	w.MergeQuoteBar(qb)
	if start.IsZero() {
		w.Period += qb.Period
	}
	return w
}

func clipQuoteBar(working bars.DataPoint, end time.Time) {
	w := working.(*bars.QuoteBar)
	w.Period = end.Sub(w.Time)
}

func snapshotQuoteBar(working bars.DataPoint) bars.DataPoint {
	return working.(*bars.QuoteBar).Clone()
}
