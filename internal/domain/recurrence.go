package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidRecurrence возвращается при разборе некорректного описания повторения
var ErrInvalidRecurrence = errors.New("invalid recurrence descriptor")

// Допустимые интервалы повторения в неделях
const (
	RecurrenceWeekly   = 1
	RecurrenceBiWeekly = 2
)

var weekdayCodes = [...]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// Recurrence разобранное описание повторения вида FREQ=WEEKLY;INTERVAL=<1|2>;BYDAY=<XX>
type Recurrence struct {
	Interval int
	Weekday  time.Weekday
}

// NewRecurrence создает описание повторения с проверкой интервала и дня недели
func NewRecurrence(interval int, weekday time.Weekday) (Recurrence, error) {
	if interval != RecurrenceWeekly && interval != RecurrenceBiWeekly {
		return Recurrence{}, fmt.Errorf("%w: interval must be 1 or 2, got %d", ErrInvalidRecurrence, interval)
	}
	if weekday < time.Sunday || weekday > time.Saturday {
		return Recurrence{}, fmt.Errorf("%w: weekday %d out of range", ErrInvalidRecurrence, weekday)
	}
	return Recurrence{Interval: interval, Weekday: weekday}, nil
}

// ParseRecurrence разбирает текстовое описание повторения
// Ключи нечувствительны к регистру и могут идти в любом порядке, INTERVAL по умолчанию равен 1
func ParseRecurrence(s string) (Recurrence, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "RRULE:")
	if s == "" {
		return Recurrence{}, fmt.Errorf("%w: empty descriptor", ErrInvalidRecurrence)
	}

	var (
		freq     string
		interval = RecurrenceWeekly
		byDay    string
		seen     = make(map[string]bool)
	)

	for _, part := range strings.Split(s, ";") {
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return Recurrence{}, fmt.Errorf("%w: malformed part %q", ErrInvalidRecurrence, part)
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		value = strings.ToUpper(strings.TrimSpace(value))
		if seen[key] {
			return Recurrence{}, fmt.Errorf("%w: duplicate key %s", ErrInvalidRecurrence, key)
		}
		seen[key] = true

		switch key {
		case "FREQ":
			freq = value
		case "INTERVAL":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Recurrence{}, fmt.Errorf("%w: interval %q is not a number", ErrInvalidRecurrence, value)
			}
			interval = n
		case "BYDAY":
			byDay = value
		default:
			return Recurrence{}, fmt.Errorf("%w: unsupported key %s", ErrInvalidRecurrence, key)
		}
	}

	if freq != "WEEKLY" {
		return Recurrence{}, fmt.Errorf("%w: only FREQ=WEEKLY is supported, got %q", ErrInvalidRecurrence, freq)
	}

	weekday, err := ParseWeekdayCode(byDay)
	if err != nil {
		return Recurrence{}, err
	}

	return NewRecurrence(interval, weekday)
}

// String возвращает каноническое текстовое представление
func (r Recurrence) String() string {
	return fmt.Sprintf("FREQ=WEEKLY;INTERVAL=%d;BYDAY=%s", r.Interval, WeekdayCode(r.Weekday))
}

// WeekdayCode возвращает двухбуквенный код дня недели (SU, MO, ...)
func WeekdayCode(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return weekdayCodes[d]
}

// ParseWeekdayCode разбирает двухбуквенный код дня недели
func ParseWeekdayCode(code string) (time.Weekday, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for i, c := range weekdayCodes {
		if c == code {
			return time.Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown weekday code %q", ErrInvalidRecurrence, code)
}
