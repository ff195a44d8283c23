// Package model содержит модели данных.
package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeOfDay представляет время в пределах суток с точностью до минуты
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay создает время суток из часов и минут
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute}
}

// Minutes возвращает количество минут с начала суток
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Before сообщает, раньше ли время t, чем other
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

// Between сообщает, попадает ли время t в интервал [start, end] включительно
func (t TimeOfDay) Between(start, end TimeOfDay) bool {
	m := t.Minutes()
	return m >= start.Minutes() && m <= end.Minutes()
}

// String возвращает время в формате ЧЧ:ММ
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Value реализует driver.Valuer, время хранится в базе как текст ЧЧ:ММ
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan реализует sql.Scanner
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case time.Time:
		t.Hour, t.Minute = v.Hour(), v.Minute()
		return nil
	case nil:
		*t = TimeOfDay{}
		return nil
	default:
		return fmt.Errorf("unsupported time of day type %T", src)
	}
}

func (t *TimeOfDay) parse(s string) error {
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		// В базе время может оказаться с секундами
		parsed, err = time.Parse("15:04:05", s)
		if err != nil {
			return fmt.Errorf("failed to parse time of day %q: %w", s, err)
		}
	}
	t.Hour, t.Minute = parsed.Hour(), parsed.Minute()
	return nil
}
