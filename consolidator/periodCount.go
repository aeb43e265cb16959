package consolidator

// Общий механизм "закрыть бар после N сэмплов или по истечении периода".
// Конкретные консолидаторы передают сюда явные функции агрегации
// вместо переопределения методов

import (
	"time"

	"github.com/go-trading/bars"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// складывает сэмпл в рабочий бар; nil рабочий бар означает начало нового.
// start/period описывают временное окно; нулевые - счётный режим,
// в нём бар сам накапливает длительность источника
type aggregate func(working bars.DataPoint, d bars.DataPoint, start time.Time, period time.Duration) bars.DataPoint

// переустанавливает конец рабочего бара (закрытие по счётчику в смешанном режиме)
type clip func(working bars.DataPoint, end time.Time)

// неизменяемая копия рабочего бара для эмиссии
type snapshot func(working bars.DataPoint) bars.DataPoint

// календарное или иное нестандартное окно: [start, end) для момента t
type window func(t time.Time) (start time.Time, end time.Time)

type periodCount struct {
	bars.ConsolidatedEvent

	period   time.Duration // фиксированный период окна; используется если window == nil
	timed    bool          // задан ли временной режим (период или календарь)
	count    int           // целевой счётчик сэмплов
	hasCount bool          // задан ли счётный режим
	window   window        // календарное окно, приоритетнее period

	aggregate aggregate
	clip      clip
	snapshot  snapshot

	symbol  string
	working bars.DataPoint
	samples int
	start   time.Time // текущее окно [start, end)
	end     time.Time
	lastEnd time.Time // конец последнего принятого сэмпла
}

// вырожденный режим: каждый сэмпл немедленно становится и рабочим, и закрытым баром
func (pc *periodCount) degenerate() bool {
	return (pc.hasCount && pc.count <= 1) || (pc.timed && pc.window == nil && pc.period == 0)
}

func (pc *periodCount) update(sender bars.Consolidator, d bars.DataPoint) error {
	if err := bars.CheckSymbol(&pc.symbol, d); err != nil {
		return err
	}
	t := d.GetTime()

	if pc.degenerate() {
		pc.working = pc.aggregate(nil, d, time.Time{}, 0)
		pc.samples = 0
		pc.Emit(sender, pc.snapshot(pc.working))
		return nil
	}

	if pc.timed {
		switch {
		case pc.start.IsZero():
			// первое окно выравнивается по границе периода
			pc.start, pc.end = pc.windowFor(t)
		case !t.Before(pc.end):
			// сэмпл ровно на границе окна принадлежит следующему окну,
			// поэтому сначала закрывается текущий бар
			if pc.working != nil {
				pc.emit(sender)
			}
			pc.advanceWindow(t)
		}
	}

	start, period := time.Time{}, time.Duration(0)
	if pc.timed {
		start, period = pc.start, pc.end.Sub(pc.start)
	}
	pc.working = pc.aggregate(pc.working, d, start, period)
	pc.samples++
	if d.GetEndTime().After(pc.lastEnd) {
		pc.lastEnd = d.GetEndTime()
	}

	if pc.hasCount && pc.samples >= pc.count {
		if pc.timed && pc.clip != nil {
			// бар закрыт счётчиком раньше конца окна - конец бара
			// подтягивается к последнему принятому сэмплу
			pc.clip(pc.working, pc.lastEnd)
		}
		pc.emit(sender)
		if pc.timed {
			// следующий бар начнёт новое окно от своего первого сэмпла
			pc.start, pc.end = time.Time{}, time.Time{}
		}
	}
	return nil
}

// Scan закрывает просроченное окно даже без новых данных
func (pc *periodCount) scan(sender bars.Consolidator, now time.Time) {
	if !pc.timed || pc.working == nil {
		return
	}
	if !now.Before(pc.end) {
		pc.emit(sender)
		// новое окно откроется от времени следующего сэмпла
		pc.start, pc.end = time.Time{}, time.Time{}
	}
}

func (pc *periodCount) emit(sender bars.Consolidator) {
	bar := pc.snapshot(pc.working)
	// состояние чистится до раздачи, чтобы подписчики видели
	// консолидатор уже в послеэмиссионном состоянии
	pc.working = nil
	pc.samples = 0
	pc.Emit(sender, bar)
}

func (pc *periodCount) windowFor(t time.Time) (time.Time, time.Time) {
	if pc.window != nil {
		start, end := pc.window(t)
		if !end.After(start) {
			l.DPanic("календарное окно пустое",
				zap.Time("start", start),
				zap.Time("end", end),
			)
		}
		return start, end
	}
	start := floorPeriod(t, pc.period)
	return start, start.Add(pc.period)
}

// сдвиг окна на целое число периодов вперёд; сетка выравнивания
// сохраняется даже через пропуски в данных
func (pc *periodCount) advanceWindow(t time.Time) {
	if pc.window != nil {
		pc.start, pc.end = pc.window(t)
		return
	}
	k := t.Sub(pc.start) / pc.period
	pc.start = pc.start.Add(k * pc.period)
	pc.end = pc.start.Add(pc.period)
}

func (pc *periodCount) Reset() {
	pc.working = nil
	pc.samples = 0
	pc.symbol = ""
	pc.start, pc.end = time.Time{}, time.Time{}
	pc.lastEnd = time.Time{}
	pc.ResetEvent()
}

func (pc *periodCount) WorkingData() bars.DataPoint {
	return pc.working
}

// выравнивание по настенным часам биржи: сутки и крупнее - к полуночи,
// внутридневные периоды - к сетке от полуночи
func floorPeriod(t time.Time, p time.Duration) time.Time {
	if p <= 0 {
		return t
	}
	if p >= 24*time.Hour {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.Add(t.Sub(midnight).Truncate(p))
}

func validatePeriod(period time.Duration) error {
	if period < 0 {
		return errors.Wrapf(bars.ErrConfiguration, "period must be >= 0, got %s", period)
	}
	return nil
}

func validateCount(count int) error {
	if count < 0 {
		return errors.Wrapf(bars.ErrConfiguration, "count must be >= 0, got %d", count)
	}
	return nil
}
