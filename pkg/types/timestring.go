package types

import (
	"errors"
	"fmt"
	"time"
)

// timeLayout формат времени HH:MM (24 часа)
const timeLayout = "15:04"

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, когда сложение выходит за пределы суток
	ErrTimeOverflow = errors.New("time string overflows the day")
)

// TimeString время суток в формате "HH:MM"
// Сериализуется в JSON как обычная строка ("10:00")
type TimeString string

// NewTimeString создает TimeString из часов и минут переданного времени
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит и валидирует строку формата HH:MM
// Допускается также формат HH:MM:SS, секунды отбрасываются
func NewTimeStringFromString(s string) (TimeString, error) {
	if len(s) == len("15:04:05") {
		s = s[:len(timeLayout)]
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

// String возвращает строковое представление
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero возвращает true, если время не задано
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate проверяет формат HH:MM
func (ts TimeString) Validate() error {
	if ts.IsZero() {
		return ErrInvalidTimeString
	}
	if _, err := time.Parse(timeLayout, string(ts)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return nil
}

// Minutes возвращает количество минут с начала суток
// Для некорректного значения возвращает -1
func (ts TimeString) Minutes() int {
	t, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		return -1
	}
	return t.Hour()*60 + t.Minute()
}

// IsBefore возвращает true, если ts строго раньше other
func (ts TimeString) IsBefore(other TimeString) bool {
	return ts.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если ts строго позже other
func (ts TimeString) IsAfter(other TimeString) bool {
	return ts.Minutes() > other.Minutes()
}

// AddMinutes возвращает время, сдвинутое на указанное количество минут
// Ровно 24:00 не допускается: результат должен оставаться в пределах суток
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	start := ts.Minutes()
	if start < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	total := start + minutes
	if total < 0 || total >= minutesPerDay {
		return "", ErrTimeOverflow
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// On возвращает момент времени ts в дату day (в часовом поясе day)
func (ts TimeString) On(day time.Time) (time.Time, error) {
	m := ts.Minutes()
	if m < 0 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	y, mo, d := day.Date()
	return time.Date(y, mo, d, m/60, m%60, 0, 0, day.Location()), nil
}
