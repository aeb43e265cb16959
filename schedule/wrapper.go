package schedule

// Планировщик сканирований: решает, КОГДА дёргать Scan обёрнутого
// консолидатора. Расписание хранится в UTC, локальное время биржи
// выводится из UTC при каждом вызове - переводы часов (DST) не
// ломают сетку и не требуют спецобработки

import (
	"reflect"
	"time"

	"github.com/go-trading/bars"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var _ bars.Consolidator = (*Wrapper)(nil)

type Wrapper struct {
	inner     bars.Consolidator
	increment time.Duration
	loc       *time.Location

	next    time.Time // UTC; нулевое - расписание ещё не запущено
	emitted bool      // было ли излучение при последнем скане
}

// NewWrapper оборачивает консолидатор. Инкремент округляется вверх до
// целой секунды, минимум секунда: чаще сканировать бессмысленно
func NewWrapper(inner bars.Consolidator, increment time.Duration, loc *time.Location) (*Wrapper, error) {
	if inner == nil {
		return nil, errors.Wrap(bars.ErrConfiguration, "wrapped consolidator is required")
	}
	if loc == nil {
		loc = time.UTC
	}
	if increment < time.Second {
		increment = time.Second
	} else if rem := increment % time.Second; rem != 0 {
		increment += time.Second - rem
	}
	w := &Wrapper{
		inner:     inner,
		increment: increment,
		loc:       loc,
	}
	inner.OnConsolidated(func(_ bars.Consolidator, _ bars.DataPoint) {
		w.emitted = true
	})
	return w, nil
}

func (w *Wrapper) Update(d bars.DataPoint) error {
	return w.inner.Update(d)
}

// Scan сканирует обёрнутый консолидатор, только если настал срок.
// После холостого скана срок сдвигается ровно на инкремент; после
// излучения пересчитывается от проектного конца нового рабочего бара
func (w *Wrapper) Scan(nowUTC time.Time) {
	if w.next.IsZero() {
		w.next = nowUTC
	}
	if nowUTC.Before(w.next) {
		return
	}

	w.emitted = false
	w.inner.Scan(nowUTC.In(w.loc))

	if w.emitted {
		w.reschedule(nowUTC)
		return
	}
	for !w.next.After(nowUTC) {
		w.next = w.next.Add(w.increment)
	}
}

func (w *Wrapper) reschedule(nowUTC time.Time) {
	if wd := w.inner.WorkingData(); wd != nil {
		end := wd.GetEndTime().UTC()
		if end.After(nowUTC) {
			w.next = end
			return
		}
		l.Debug("проектный конец рабочего бара в прошлом",
			zap.Time("end", end),
			zap.Time("now", nowUTC),
		)
	}
	w.next = nowUTC.Add(w.increment)
}

// NextScan - ближайший запланированный момент скана в UTC
func (w *Wrapper) NextScan() time.Time {
	return w.next
}

func (w *Wrapper) Reset() {
	w.next = time.Time{}
	w.emitted = false
	w.inner.Reset()
}

func (w *Wrapper) Dispose() {
	w.inner.Dispose()
}

func (w *Wrapper) Consolidated() bars.DataPoint {
	return w.inner.Consolidated()
}

func (w *Wrapper) WorkingData() bars.DataPoint {
	return w.inner.WorkingData()
}

func (w *Wrapper) OnConsolidated(h bars.BarHandler) {
	w.inner.OnConsolidated(h)
}

func (w *Wrapper) InputType() reflect.Type {
	return w.inner.InputType()
}

func (w *Wrapper) OutputType() reflect.Type {
	return w.inner.OutputType()
}
