package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const (
	timeLayout        = "15:04"
	timeLayoutSeconds = "15:04:05"
	minutesPerDay     = 24 * 60
)

var (
	// ErrInvalidTimeFormat возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

	// ErrTimeOverflow возвращается, когда результат арифметики выходит за пределы суток
	ErrTimeOverflow = errors.New("types: time is out of day bounds")
)

// TimeString время суток без даты в формате HH:MM
// В БД хранится как TIME, в JSON - как строка
type TimeString string

// NewTimeString создает TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку HH:MM (или HH:MM:SS)
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := parseClock(s)
	if err != nil {
		return "", err
	}
	return NewTimeString(t), nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOverflow, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate проверяет корректность значения
func (ts TimeString) Validate() error {
	_, err := parseClock(string(ts))
	return err
}

// Minutes возвращает количество минут от полуночи или ErrInvalidTimeFormat для некорректного значения
func (ts TimeString) Minutes() (int, error) {
	t, err := parseClock(string(ts))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AddMinutes прибавляет минуты; результат обязан остаться в пределах тех же суток
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := ts.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(total + minutes)
}

// IsBefore возвращает true, если ts строго раньше other.
// Некорректные значения не сравнимы ни с чем: результат false
func (ts TimeString) IsBefore(other TimeString) bool {
	a, b, ok := minutesPair(ts, other)
	return ok && a < b
}

// IsAfter возвращает true, если ts строго позже other.
// Некорректные значения не сравнимы ни с чем: результат false
func (ts TimeString) IsAfter(other TimeString) bool {
	a, b, ok := minutesPair(ts, other)
	return ok && a > b
}

// OnDate возвращает момент времени ts на указанную дату в локации loc.
// Значение должно быть проверено через Validate (или прочитано из БД); некорректное дает полночь
func (ts TimeString) OnDate(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	total, _ := ts.Minutes()
	return time.Date(y, m, d, total/60, total%60, 0, 0, loc)
}

// String реализует fmt.Stringer
func (ts TimeString) String() string {
	return string(ts)
}

// Scan реализует sql.Scanner для колонок типа TIME
func (ts *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*ts = ""
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case []byte:
		return ts.scanString(string(v))
	case string:
		return ts.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeFormat, value)
	}
}

// Value реализует driver.Valuer
func (ts TimeString) Value() (driver.Value, error) {
	if ts == "" {
		return nil, nil
	}
	return string(ts), nil
}

func (ts *TimeString) scanString(s string) error {
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

func minutesPair(a, b TimeString) (int, int, bool) {
	am, err := a.Minutes()
	if err != nil {
		return 0, 0, false
	}
	bm, err := b.Minutes()
	if err != nil {
		return 0, 0, false
	}
	return am, bm, true
}

func parseClock(s string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(timeLayoutSeconds, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
}
