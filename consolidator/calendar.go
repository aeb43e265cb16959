package consolidator

// Календарные окна: неделя от понедельника, месяц от первого числа

import (
	"time"
)

type Calendar int

const (
	CalendarWeekly Calendar = iota
	CalendarMonthly
)

func (c Calendar) String() string {
	if c == CalendarMonthly {
		return "Monthly"
	}
	return "Weekly"
}

// Window возвращает календарное окно [start, end), накрывающее момент t
func (c Calendar) Window(t time.Time) (time.Time, time.Time) {
	switch c {
	case CalendarMonthly:
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		return start, start.AddDate(0, 1, 0)
	default:
		// неделя начинается с понедельника
		days := int(t.Weekday())
		if days == 0 { // воскресенье
			days = 7
		}
		midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		start := midnight.AddDate(0, 0, 1-days)
		return start, start.AddDate(0, 0, 7)
	}
}
