package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeFormat возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrTimeOutOfRange возвращается, когда часы или минуты вне допустимого диапазона
	ErrTimeOutOfRange = errors.New("time of day out of range")
)

// TimeOfDay время суток в минутах от полуночи (00:00 = 0, 23:59 = 1439).
// Вся арифметика слотов ведётся в минутах, строка "HH:MM" появляется
// только на границах: JSON, SQL и разбор входных данных.
type TimeOfDay int

// NewTimeOfDay создает время суток из часов и минут
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrTimeOutOfRange, hour, minute)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// TimeOfDayFromTime извлекает время суток из time.Time (секунды отбрасываются)
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// ParseTimeOfDay разбирает строку строго в формате HH:MM (две цифры часа, две цифры минут)
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hour, ok := twoDigits(s[0], s[1])
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minute, ok := twoDigits(s[3], s[4])
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return NewTimeOfDay(hour, minute)
}

// MustParseTimeOfDay как ParseTimeOfDay, но паникует при ошибке.
// Предназначен для констант и тестов.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// Hour возвращает часы
func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

// Minute возвращает минуты
func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// Minutes возвращает количество минут от полуночи
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// Validate проверяет, что значение лежит в пределах суток
func (t TimeOfDay) Validate() error {
	if t < 0 || int(t) >= MinutesPerDay {
		return fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, int(t))
	}
	return nil
}

// String возвращает время в формате HH:MM
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// AddMinutes прибавляет минуты с переходом через полночь (по модулю суток).
// Генератор слотов сравнивает значения без переноса, поэтому перенос
// здесь никогда не приводит к зацикливанию.
func (t TimeOfDay) AddMinutes(minutes int) TimeOfDay {
	v := (int(t) + minutes) % MinutesPerDay
	if v < 0 {
		v += MinutesPerDay
	}
	return TimeOfDay(v)
}

// MarshalJSON сериализует время как строку "HH:MM"
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON разбирает строку "HH:MM"
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer (хранится как VARCHAR(5) "HH:MM")
func (t TimeOfDay) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t.String(), nil
}

// Scan реализует sql.Scanner.
// Поддерживает "HH:MM" и "HH:MM:SS" (если колонка имеет тип TIME).
func (t *TimeOfDay) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		*t = TimeOfDayFromTime(v)
		return nil
	case nil:
		return fmt.Errorf("%w: NULL", ErrInvalidTimeFormat)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeFormat, src)
	}

	if len(s) == 8 && s[5] == ':' {
		s = s[:5]
	}

	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
