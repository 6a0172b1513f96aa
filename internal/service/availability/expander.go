package availability

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

const daysInWeek = 7

var rruleWeekdays = [...]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// recurrenceEpoch понедельник нулевой недели; четность недель считается от него
var recurrenceEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Expander разворачивает правило доступности в конкретные календарные даты
type Expander struct {
	logger Logger
}

// NewExpander создает новый экземпляр Expander
func NewExpander(logger Logger) *Expander {
	return &Expander{logger: logger}
}

// Expand возвращает упорядоченные даты (полночь в часовом поясе from), в которые действует правило
// Окно [from, to] закрытое и сравнивается по календарным датам.
// Некорректное описание повторения не является ошибкой: правило разворачивается как еженедельное.
func (e *Expander) Expand(rule domain.AvailabilityRule, from, to time.Time) []time.Time {
	anchor, ok := firstWeekdayOnOrAfter(rule.Weekday, from, to)
	if !ok {
		return []time.Time{}
	}

	rec, err := rule.ParsedRecurrence()
	if err != nil {
		e.logger.Warn("Expand: rule id=%s has invalid recurrence %q, falling back to weekly: %v",
			rule.ID, *rule.Recurrence, err)
		return everyNDays(anchor, to, daysInWeek)
	}
	if rec == nil {
		return everyNDays(anchor, to, daysInWeek)
	}

	// Окно может начинаться в "нерабочую" неделю: сдвигаем anchor на вхождение серии
	anchor = alignToSeries(anchor, rec.Interval)
	if anchor.After(to) {
		return []time.Time{}
	}

	dates, err := occurrences(*rec, anchor, to)
	if err != nil {
		e.logger.Warn("Expand: rule id=%s recurrence %s rejected by rrule, falling back to weekly: %v",
			rule.ID, rec, err)
		return everyNDays(anchor, to, daysInWeek)
	}

	return dates
}

// firstWeekdayOnOrAfter ищет первую дату с нужным днем недели, не выходя за to
func firstWeekdayOnOrAfter(weekday time.Weekday, from, to time.Time) (time.Time, bool) {
	day := domain.StartOfDay(from)
	for i := 0; i < daysInWeek; i++ {
		if day.After(to) {
			return time.Time{}, false
		}
		if day.Weekday() == weekday {
			return day, true
		}
		day = day.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}

// weekIndex номер недели (пн-вс), содержащей day, считая от recurrenceEpoch
// Считается по календарной дате, часовой пояс и переходы на летнее время не влияют
func weekIndex(day time.Time) int {
	y, m, d := day.Date()
	days := int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Sub(recurrenceEpoch).Hours() / 24)
	// Понедельник = 0
	days -= (int(day.Weekday()) + daysInWeek - 1) % daysInWeek
	return floorDiv(days, daysInWeek)
}

// alignToSeries переносит anchor на ближайшую неделю серии с шагом interval
func alignToSeries(anchor time.Time, interval int) time.Time {
	if interval <= 1 {
		return anchor
	}
	for weekIndex(anchor)%interval != 0 {
		anchor = anchor.AddDate(0, 0, daysInWeek)
	}
	return anchor
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func everyNDays(anchor, to time.Time, step int) []time.Time {
	dates := make([]time.Time, 0)
	for day := anchor; !day.After(to); day = day.AddDate(0, 0, step) {
		dates = append(dates, day)
	}
	return dates
}

// occurrences разворачивает описание повторения через RRULE с началом в anchor
func occurrences(rec domain.Recurrence, anchor, to time.Time) ([]time.Time, error) {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Interval:  rec.Interval,
		Wkst:      rrule.MO,
		Byweekday: []rrule.Weekday{rruleWeekdays[rec.Weekday]},
		Dtstart:   anchor,
	})
	if err != nil {
		return nil, err
	}

	found := rule.Between(anchor, to, true)
	dates := make([]time.Time, 0, len(found))
	for _, d := range found {
		dates = append(dates, domain.StartOfDay(d))
	}
	return dates, nil
}
