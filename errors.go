package bars

import (
	"github.com/pkg/errors"
)

// Все ошибки подсистемы - ошибки программирования или подключения,
// повторять вызов с теми же данными бессмысленно
var (
	// неположительный размер кирпича/диапазона/порога объёма; возвращается конструктором
	ErrConfiguration = errors.New("INCORRECT CONSOLIDATOR CONFIGURATION")
	// в Update передан тип, который консолидатор не принимает
	ErrTypeMismatch = errors.New("INCOMPATIBLE DATA TYPE")
	// сэмпл другого инструмента после фиксации символа; состояние консолидатора не повреждено
	ErrSymbolMismatch = errors.New("SYMBOL MISMATCH")
)

// CheckSymbol фиксирует символ рабочего бара при первом сэмпле
// и отвергает чужие инструменты при последующих
func CheckSymbol(locked *string, d DataPoint) error {
	if *locked == "" {
		*locked = d.GetSymbol()
		return nil
	}
	if *locked != d.GetSymbol() {
		return errors.Wrapf(ErrSymbolMismatch, "want %q, got %q", *locked, d.GetSymbol())
	}
	return nil
}
