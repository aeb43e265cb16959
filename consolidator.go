package bars

import (
	"reflect"
	"time"

	"go.uber.org/multierr"
)

// обработчик закрытого бара; вызывается синхронно внутри Update/Scan
type BarHandler func(sender Consolidator, bar DataPoint)

// Контракт консолидатора: конечный автомат, превращающий поток сэмплов
// в более крупные бары. Каждый экземпляр обслуживает один инструмент
// и управляется из одной логической временной линии
type Consolidator interface {
	Update(d DataPoint) error   // скормить очередной сэмпл
	Scan(now time.Time)         // продвинуть время без данных, возможно с эмиссией
	Reset()                     // вернуть автомат в состояние после конструктора
	Dispose()                   // отписать всех получателей; повторный вызов безопасен
	Consolidated() DataPoint    // последний закрытый бар, nil до первой эмиссии
	WorkingData() DataPoint     // текущий незакрытый бар, nil если его нет
	InputType() reflect.Type    // принимаемый конкретный тип сэмпла
	OutputType() reflect.Type   // конкретный тип закрытого бара
	OnConsolidated(h BarHandler) // подписка на эмиссию
}

// Общая для всех консолидаторов механика подписки и эмиссии.
// Доставка строго синхронная, ровно один вызов на закрытый бар
type ConsolidatedEvent struct {
	handlers     []BarHandler
	consolidated DataPoint
	firing       bool
}

func (e *ConsolidatedEvent) OnConsolidated(h BarHandler) {
	e.handlers = append(e.handlers, h)
}

func (e *ConsolidatedEvent) Consolidated() DataPoint {
	return e.consolidated
}

// Emit раздаёт закрытый бар подписчикам. Рекурсивная эмиссия из
// обработчика - ошибка программирования
func (e *ConsolidatedEvent) Emit(sender Consolidator, bar DataPoint) {
	if e.firing {
		l.DPanic("повторная эмиссия из обработчика эмиссии")
		return
	}
	e.consolidated = bar
	countConsolidated(bar)
	e.firing = true
	for _, h := range e.handlers {
		h(sender, bar)
	}
	e.firing = false
}

// ResetEvent чистит последний закрытый бар, подписчики сохраняются
func (e *ConsolidatedEvent) ResetEvent() {
	e.consolidated = nil
}

func (e *ConsolidatedEvent) Dispose() {
	e.handlers = nil
}

// тип для работы с наборами консолидаторов одного инструмента
type Consolidators []Consolidator

func (cs Consolidators) UpdateAll(d DataPoint) (result error) {
	for _, c := range cs {
		result = multierr.Append(result, c.Update(d))
	}
	return result
}

func (cs Consolidators) ScanAll(now time.Time) {
	for _, c := range cs {
		c.Scan(now)
	}
}

func (cs Consolidators) ResetAll() {
	for _, c := range cs {
		c.Reset()
	}
}

func (cs Consolidators) DisposeAll() {
	for _, c := range cs {
		c.Dispose()
	}
}
