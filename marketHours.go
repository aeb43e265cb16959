package bars

import (
	"time"

	"go.uber.org/zap"
)

// Торговая сессия биржи на конкретную дату, локальное время биржи
type Session struct {
	Open     time.Time
	Close    time.Time
	Extended bool // расширенная сессия (пре/пост-маркет)
}

// Contains проверяет попадание в полуоткрытый интервал [Open, Close)
func (s Session) Contains(t time.Time) bool {
	return !t.Before(s.Open) && t.Before(s.Close)
}

// Оракул торгового календаря биржи. Подсистема его только читает,
// передаётся в консолидаторы явно через конструктор
type ExchangeHours interface {
	Sessions(date time.Time) []Session              // сессии на дату, по возрастанию времени открытия
	IsOpen(t time.Time, extended bool) bool         // открыт ли рынок в момент t
	NextOpen(t time.Time, extended bool) time.Time  // ближайшее открытие строго после t
	NextClose(t time.Time, extended bool) time.Time // ближайшее закрытие строго после t
}

// Шаблон сессии: смещения от полуночи торгового дня
type SessionTemplate struct {
	Open     time.Duration
	Close    time.Duration
	Extended bool
}

var _ ExchangeHours = (*WeeklySchedule)(nil)

// Недельное расписание: одинаковый набор сессий для каждого дня недели.
// Достаточно для акций/фьючерсов без учёта праздников
type WeeklySchedule struct {
	days map[time.Weekday][]SessionTemplate
}

func NewWeeklySchedule(days map[time.Weekday][]SessionTemplate) *WeeklySchedule {
	return &WeeklySchedule{days: days}
}

// Расписание американских акций: 9:30-16:00,
// пре-маркет 4:00-9:30 и пост-маркет 16:00-20:00
func NewEquityUSHours() *WeeklySchedule {
	weekday := []SessionTemplate{
		{Open: 4 * time.Hour, Close: 9*time.Hour + 30*time.Minute, Extended: true},
		{Open: 9*time.Hour + 30*time.Minute, Close: 16 * time.Hour},
		{Open: 16 * time.Hour, Close: 20 * time.Hour, Extended: true},
	}
	return NewWeeklySchedule(map[time.Weekday][]SessionTemplate{
		time.Monday:    weekday,
		time.Tuesday:   weekday,
		time.Wednesday: weekday,
		time.Thursday:  weekday,
		time.Friday:    weekday,
	})
}

// Круглосуточное расписание без выходных (крипта)
func NewAlwaysOpenHours() *WeeklySchedule {
	allDay := []SessionTemplate{{Open: 0, Close: 24 * time.Hour}}
	days := map[time.Weekday][]SessionTemplate{}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		days[wd] = allDay
	}
	return NewWeeklySchedule(days)
}

func (ws *WeeklySchedule) Sessions(date time.Time) []Session {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	templates := ws.days[date.Weekday()]
	sessions := make([]Session, 0, len(templates))
	for _, st := range templates {
		sessions = append(sessions, Session{
			Open:     midnight.Add(st.Open),
			Close:    midnight.Add(st.Close),
			Extended: st.Extended,
		})
	}
	return sessions
}

func (ws *WeeklySchedule) IsOpen(t time.Time, extended bool) bool {
	for _, s := range ws.Sessions(t) {
		if s.Extended && !extended {
			continue
		}
		if s.Contains(t) {
			return true
		}
	}
	return false
}

// сколько дней вперёд сканируем календарь, прежде чем признать расписание пустым
const scheduleScanLimit = 21

func (ws *WeeklySchedule) NextOpen(t time.Time, extended bool) time.Time {
	for day := 0; day < scheduleScanLimit; day++ {
		for _, s := range ws.Sessions(t.AddDate(0, 0, day)) {
			if s.Extended && !extended {
				continue
			}
			if s.Open.After(t) {
				return s.Open
			}
		}
	}
	l.DPanic("в расписании нет ни одного открытия", zap.Time("after", t))
	return time.Time{}
}

func (ws *WeeklySchedule) NextClose(t time.Time, extended bool) time.Time {
	for day := 0; day < scheduleScanLimit; day++ {
		for _, s := range ws.Sessions(t.AddDate(0, 0, day)) {
			if s.Extended && !extended {
				continue
			}
			if s.Close.After(t) {
				return s.Close
			}
		}
	}
	l.DPanic("в расписании нет ни одного закрытия", zap.Time("after", t))
	return time.Time{}
}
