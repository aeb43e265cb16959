package bars

// Помошники по трансформации периодов в разрешение источника данных

import (
	"time"
)

type Resolution int

const (
	ResolutionTick Resolution = iota
	ResolutionSecond
	ResolutionMinute
	ResolutionHour
	ResolutionDaily
)

var resolution2string = map[Resolution]string{
	ResolutionTick:   "tick",
	ResolutionSecond: "second",
	ResolutionMinute: "minute",
	ResolutionHour:   "hour",
	ResolutionDaily:  "daily",
}

func (r Resolution) String() string {
	return resolution2string[r]
}

// Period2Resolution определяет разрешение источника по длительности сэмпла.
// Промежуточные длительности округляются вниз: часовой порог важен для
// фильтрации данных вне торговой сессии
func Period2Resolution(d time.Duration) Resolution {
	switch {
	case d <= 0:
		return ResolutionTick
	case d < time.Minute:
		return ResolutionSecond
	case d < time.Hour:
		return ResolutionMinute
	case d < 24*time.Hour:
		return ResolutionHour
	default:
		return ResolutionDaily
	}
}

func Resolution2Period(r Resolution) time.Duration {
	switch r {
	case ResolutionSecond:
		return time.Second
	case ResolutionMinute:
		return time.Minute
	case ResolutionHour:
		return time.Hour
	case ResolutionDaily:
		return 24 * time.Hour
	default:
		return time.Duration(0)
	}
}
