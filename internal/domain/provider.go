package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// AvailabilityRule one recurring weekly block of bookable time
type AvailabilityRule struct {
	ID         string           `json:"id"`
	Weekday    time.Weekday     `json:"weekday"` // 0 = воскресенье ... 6 = суббота
	StartTime  types.TimeString `json:"startTime"`
	EndTime    types.TimeString `json:"endTime"`
	Recurrence *string          `json:"recurrence,omitempty"` // FREQ=WEEKLY;INTERVAL=<1|2>;BYDAY=<XX>
}

// Provider represents a schedulable entity
type Provider struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Specialties  []string           `json:"specialties"`
	Availability []AvailabilityRule `json:"availability"`
	Rating       float64            `json:"rating"`
	Location     string             `json:"location"`
}

// Clone returns a deep copy of the provider
func (p *Provider) Clone() *Provider {
	c := *p
	c.Specialties = append([]string(nil), p.Specialties...)
	c.Availability = make([]AvailabilityRule, len(p.Availability))
	for i, rule := range p.Availability {
		c.Availability[i] = rule
		if rule.Recurrence != nil {
			r := *rule.Recurrence
			c.Availability[i].Recurrence = &r
		}
	}
	return &c
}

// ParsedRecurrence разбирает описание повторения правила
// Возвращает nil без ошибки, если описание не задано.
// День недели в описании обязан совпадать с днем недели правила.
func (r AvailabilityRule) ParsedRecurrence() (*Recurrence, error) {
	if r.Recurrence == nil || *r.Recurrence == "" {
		return nil, nil
	}

	rec, err := ParseRecurrence(*r.Recurrence)
	if err != nil {
		return nil, err
	}

	if rec.Weekday != r.Weekday {
		return nil, fmt.Errorf("%w: BYDAY=%s does not match rule weekday %s",
			ErrInvalidRecurrence, WeekdayCode(rec.Weekday), WeekdayCode(r.Weekday))
	}

	return &rec, nil
}

// Validate проверяет правило целиком: день недели, время и описание повторения
func (r AvailabilityRule) Validate() error {
	if r.Weekday < time.Sunday || r.Weekday > time.Saturday {
		return fmt.Errorf("%w: weekday %d out of range", ErrInvalidRequest, r.Weekday)
	}
	if err := r.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidRequest, err)
	}
	if err := r.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidRequest, err)
	}
	if !r.StartTime.IsBefore(r.EndTime) {
		return fmt.Errorf("%w: startTime %s must be before endTime %s", ErrInvalidRequest, r.StartTime, r.EndTime)
	}
	if _, err := r.ParsedRecurrence(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}
