// Package extract содержит расписание звонков.
package extract

import (
	"time"

	"timetable/internal/model"
)

// DayType выбирает вариант расписания звонков по дню недели
type DayType string

// Типы дней: вторник, четверг и суббота имеют сдвинутые звонки
const (
	DayNormal   DayType = "normal"
	DayTuesday  DayType = "tuesday"
	DayThursday DayType = "thursday"
	DaySaturday DayType = "saturday"
)

// DayTypeFor классифицирует дату по дню недели
func DayTypeFor(date time.Time) DayType {
	switch date.Weekday() {
	case time.Tuesday:
		return DayTuesday
	case time.Thursday:
		return DayThursday
	case time.Saturday:
		return DaySaturday
	default:
		return DayNormal
	}
}

// bellWindow представляет интервал одной пары
type bellWindow struct {
	start model.TimeOfDay
	end   model.TimeOfDay
}

// fallbackWindow используется для нулевого или нераспознанного номера пары
var fallbackWindow = bellWindow{
	start: model.NewTimeOfDay(8, 0),
	end:   model.NewTimeOfDay(9, 30),
}

// bellTable задает звонки по номеру пары и типу дня. Пары 1-3 идут
// одинаково во все дни; у 4-6 вторник и четверг сдвинуты, у шестой
// пары свой вариант и в субботу.
var bellTable = map[int]map[DayType]bellWindow{
	1: {
		DayNormal: {model.NewTimeOfDay(8, 30), model.NewTimeOfDay(10, 0)},
	},
	2: {
		DayNormal: {model.NewTimeOfDay(10, 10), model.NewTimeOfDay(11, 40)},
	},
	3: {
		DayNormal: {model.NewTimeOfDay(12, 20), model.NewTimeOfDay(13, 50)},
	},
	4: {
		DayNormal:  {model.NewTimeOfDay(14, 10), model.NewTimeOfDay(15, 50)},
		DayTuesday: {model.NewTimeOfDay(15, 5), model.NewTimeOfDay(16, 45)},
	},
	5: {
		DayNormal:   {model.NewTimeOfDay(16, 0), model.NewTimeOfDay(17, 40)},
		DayTuesday:  {model.NewTimeOfDay(16, 55), model.NewTimeOfDay(18, 35)},
		DayThursday: {model.NewTimeOfDay(16, 35), model.NewTimeOfDay(18, 15)},
	},
	6: {
		DayNormal:   {model.NewTimeOfDay(17, 50), model.NewTimeOfDay(19, 25)},
		DayTuesday:  {model.NewTimeOfDay(18, 45), model.NewTimeOfDay(20, 20)},
		DayThursday: {model.NewTimeOfDay(18, 25), model.NewTimeOfDay(20, 0)},
		DaySaturday: {model.NewTimeOfDay(17, 5), model.NewTimeOfDay(18, 40)},
	},
}

// TimesFor возвращает время начала и конца пары по ее номеру и дате.
// Функция тотальна: для нулевого или неизвестного номера возвращается
// запасной интервал 08:00-09:30.
func TimesFor(lesson int, date time.Time) (start, end model.TimeOfDay) {
	w := windowFor(lesson, DayTypeFor(date))
	return w.start, w.end
}

// OrdinalForTime восстанавливает номер пары по времени начала, сканируя
// ту же таблицу звонков. Возвращает 0, если время не попало ни в один
// интервал. Используется при отображении уже сохраненных записей.
func OrdinalForTime(start model.TimeOfDay, date time.Time) int {
	dayType := DayTypeFor(date)
	for lesson := 1; lesson <= 6; lesson++ {
		w := windowFor(lesson, dayType)
		if start.Between(w.start, w.end) {
			return lesson
		}
	}
	return 0
}

func windowFor(lesson int, dayType DayType) bellWindow {
	perDay, ok := bellTable[lesson]
	if !ok {
		return fallbackWindow
	}
	if w, ok := perDay[dayType]; ok {
		return w
	}
	return perDay[DayNormal]
}
