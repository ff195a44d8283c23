package extract

import (
	"testing"
	"time"

	"timetable/internal/model"
)

// Даты одной недели мая 2023 для проверки всех типов дней
var (
	monday   = time.Date(2023, time.May, 22, 0, 0, 0, 0, time.UTC)
	tuesday  = time.Date(2023, time.May, 23, 0, 0, 0, 0, time.UTC)
	thursday = time.Date(2023, time.May, 25, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2023, time.May, 27, 0, 0, 0, 0, time.UTC)
)

func TestDayTypeFor(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want DayType
	}{
		{"monday", monday, DayNormal},
		{"tuesday", tuesday, DayTuesday},
		{"thursday", thursday, DayThursday},
		{"saturday", saturday, DaySaturday},
		{"sunday", time.Date(2023, time.May, 28, 0, 0, 0, 0, time.UTC), DayNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayTypeFor(tt.date); got != tt.want {
				t.Errorf("DayTypeFor(%v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestTimesFor(t *testing.T) {
	tests := []struct {
		name      string
		lesson    int
		date      time.Time
		wantStart model.TimeOfDay
		wantEnd   model.TimeOfDay
	}{
		{"lesson 1 any day", 1, monday, model.NewTimeOfDay(8, 30), model.NewTimeOfDay(10, 0)},
		{"lesson 2 any day", 2, thursday, model.NewTimeOfDay(10, 10), model.NewTimeOfDay(11, 40)},
		{"lesson 3 any day", 3, saturday, model.NewTimeOfDay(12, 20), model.NewTimeOfDay(13, 50)},
		{"lesson 4 normal", 4, monday, model.NewTimeOfDay(14, 10), model.NewTimeOfDay(15, 50)},
		{"lesson 4 tuesday", 4, tuesday, model.NewTimeOfDay(15, 5), model.NewTimeOfDay(16, 45)},
		{"lesson 4 thursday falls back to normal", 4, thursday, model.NewTimeOfDay(14, 10), model.NewTimeOfDay(15, 50)},
		{"lesson 5 normal", 5, monday, model.NewTimeOfDay(16, 0), model.NewTimeOfDay(17, 40)},
		{"lesson 5 tuesday", 5, tuesday, model.NewTimeOfDay(16, 55), model.NewTimeOfDay(18, 35)},
		{"lesson 5 thursday", 5, thursday, model.NewTimeOfDay(16, 35), model.NewTimeOfDay(18, 15)},
		{"lesson 6 normal", 6, monday, model.NewTimeOfDay(17, 50), model.NewTimeOfDay(19, 25)},
		{"lesson 6 tuesday", 6, tuesday, model.NewTimeOfDay(18, 45), model.NewTimeOfDay(20, 20)},
		{"lesson 6 thursday", 6, thursday, model.NewTimeOfDay(18, 25), model.NewTimeOfDay(20, 0)},
		{"lesson 6 saturday", 6, saturday, model.NewTimeOfDay(17, 5), model.NewTimeOfDay(18, 40)},
		{"lesson 0 falls back", 0, monday, model.NewTimeOfDay(8, 0), model.NewTimeOfDay(9, 30)},
		{"lesson 7 falls back", 7, tuesday, model.NewTimeOfDay(8, 0), model.NewTimeOfDay(9, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := TimesFor(tt.lesson, tt.date)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("TimesFor(%d, %v) = %v-%v, want %v-%v",
					tt.lesson, tt.date, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

// TestTimesFor_Total проверяет тотальность: любой номер пары в любой день
// дает корректный интервал со стартом раньше конца
func TestTimesFor_Total(t *testing.T) {
	days := []time.Time{monday, tuesday, thursday, saturday}

	for lesson := 0; lesson <= 8; lesson++ {
		for _, date := range days {
			start, end := TimesFor(lesson, date)
			if !start.Before(end) {
				t.Errorf("TimesFor(%d, %v): start %v not before end %v", lesson, date, start, end)
			}
		}
	}
}

func TestOrdinalForTime(t *testing.T) {
	tests := []struct {
		name  string
		start model.TimeOfDay
		date  time.Time
		want  int
	}{
		{"lesson 1 start", model.NewTimeOfDay(8, 30), monday, 1},
		{"inside lesson 2", model.NewTimeOfDay(11, 0), monday, 2},
		{"lesson 3 end boundary", model.NewTimeOfDay(13, 50), monday, 3},
		{"lesson 4 tuesday shifted", model.NewTimeOfDay(15, 5), tuesday, 4},
		{"15:05 inside normal lesson 4 on monday", model.NewTimeOfDay(15, 5), monday, 4},
		// 17:05 в субботу попадает и в обычное окно пятой пары (16:00-17:40),
		// и в субботнее окно шестой; линейный обход отдает первое совпадение
		{"lesson 6 saturday start maps to lesson 5", model.NewTimeOfDay(17, 5), saturday, 5},
		{"lesson 6 saturday past lesson 5 window", model.NewTimeOfDay(17, 45), saturday, 6},
		{"before first bell", model.NewTimeOfDay(7, 0), monday, 0},
		{"between lessons", model.NewTimeOfDay(10, 5), monday, 0},
		{"after last bell", model.NewTimeOfDay(21, 0), monday, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OrdinalForTime(tt.start, tt.date); got != tt.want {
				t.Errorf("OrdinalForTime(%v, %v) = %d, want %d", tt.start, tt.date, got, tt.want)
			}
		})
	}
}

// TestOrdinalForTime_RoundTrip проверяет согласованность прямой и обратной
// функций: время начала пары восстанавливает ее номер. Единственное
// исключение: субботняя шестая пара начинается внутри обычного окна пятой,
// и обход возвращает пятую.
func TestOrdinalForTime_RoundTrip(t *testing.T) {
	days := []time.Time{monday, tuesday, thursday, saturday}

	for lesson := 1; lesson <= 6; lesson++ {
		for _, date := range days {
			want := lesson
			if lesson == 6 && DayTypeFor(date) == DaySaturday {
				want = 5
			}

			start, _ := TimesFor(lesson, date)
			if got := OrdinalForTime(start, date); got != want {
				t.Errorf("OrdinalForTime(TimesFor(%d, %v)) = %d, want %d", lesson, date, got, want)
			}
		}
	}
}
