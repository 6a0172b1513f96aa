package domain

import "time"

// Default configuration values
const (
	DefaultSlotDurationMinutes     = 30
	DefaultAlternativesLimit       = 3
	DefaultAlternativesHorizonDays = 30
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MaxWindowDays          = 366
	MaxNotesLength         = 500
	MaxReasonLength        = 500
	MaxBatchSize           = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// StartOfDay возвращает 00:00:00.000 календарного дня t в его часовом поясе
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay возвращает 23:59:59.999 календарного дня t в его часовом поясе
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
