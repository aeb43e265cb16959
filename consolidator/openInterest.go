package consolidator

import (
	"reflect"
	"time"

	"github.com/go-trading/bars"
	"github.com/pkg/errors"
)

var _ bars.Consolidator = (*OpenInterestConsolidator)(nil)

// Консолидатор открытого интереса: в окне остаётся последнее значение
type OpenInterestConsolidator struct {
	periodCount
}

func NewOpenInterest(period time.Duration) (*OpenInterestConsolidator, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	c := newOpenInterestConsolidator()
	c.period = period
	c.timed = true
	return c, nil
}

func NewOpenInterestCount(count int) (*OpenInterestConsolidator, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}
	c := newOpenInterestConsolidator()
	c.count = count
	c.hasCount = true
	return c, nil
}

func newOpenInterestConsolidator() *OpenInterestConsolidator {
	c := &OpenInterestConsolidator{}
	c.aggregate = aggregateOpenInterest
	c.clip = clipOpenInterest
	c.snapshot = snapshotOpenInterest
	return c
}

func (c *OpenInterestConsolidator) Update(d bars.DataPoint) error {
	switch v := d.(type) {
	case *bars.OpenInterest:
	case *bars.Tick:
		if v.Kind != bars.TickOpenInterest {
			return errors.Wrapf(bars.ErrTypeMismatch, "want open interest tick, got %s kind", v.Kind)
		}
	default:
		return errors.Wrapf(bars.ErrTypeMismatch, "want *bars.OpenInterest or open interest tick, got %T", d)
	}
	return c.update(c, d)
}

func (c *OpenInterestConsolidator) Scan(now time.Time) {
	c.scan(c, now)
}

func (c *OpenInterestConsolidator) InputType() reflect.Type {
	return reflect.TypeOf(&bars.OpenInterest{})
}

func (c *OpenInterestConsolidator) OutputType() reflect.Type {
	return reflect.TypeOf(&bars.OpenInterest{})
}

func aggregateOpenInterest(working bars.DataPoint, d bars.DataPoint, start time.Time, period time.Duration) bars.DataPoint {
	value := d.GetValue()
	if working == nil {
		w := &bars.OpenInterest{Symbol: d.GetSymbol(), Time: start, Period: period, Value: value}
		if start.IsZero() {
			w.Time = d.GetTime()
		}
		return w
	}
	w := working.(*bars.OpenInterest)
	w.Value = value
	return w
}

func clipOpenInterest(working bars.DataPoint, end time.Time) {
	w := working.(*bars.OpenInterest)
	w.Period = end.Sub(w.Time)
}

func snapshotOpenInterest(working bars.DataPoint) bars.DataPoint {
	w := *(working.(*bars.OpenInterest))
	return &w
}
