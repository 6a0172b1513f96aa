package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// AvailabilityRuleInput правило доступности во входящем запросе
type AvailabilityRuleInput struct {
	ID         string  `json:"id,omitempty"`         // Генерируется, если не указан
	Weekday    int     `json:"weekday"`              // 0 = воскресенье ... 6 = суббота
	StartTime  string  `json:"startTime"`            // HH:MM
	EndTime    string  `json:"endTime"`              // HH:MM
	Recurrence *string `json:"recurrence,omitempty"` // FREQ=WEEKLY;INTERVAL=<1|2>;BYDAY=<XX>
}

// CreateProviderRequest запрос на создание провайдера
type CreateProviderRequest struct {
	ID           string                  `json:"id,omitempty"` // Генерируется, если не указан
	Name         string                  `json:"name"`
	Specialties  []string                `json:"specialties"`
	Availability []AvailabilityRuleInput `json:"availability"`
	Rating       float64                 `json:"rating"`
	Location     string                  `json:"location"`
}

// ReplaceScheduleRequest запрос на полную замену расписания провайдера
type ReplaceScheduleRequest struct {
	Availability []AvailabilityRuleInput `json:"availability"`
}

// ToDomainRule конвертирует входное правило в доменное без проверок
func (r AvailabilityRuleInput) ToDomainRule() domain.AvailabilityRule {
	return domain.AvailabilityRule{
		ID:         r.ID,
		Weekday:    time.Weekday(r.Weekday),
		StartTime:  types.TimeString(r.StartTime),
		EndTime:    types.TimeString(r.EndTime),
		Recurrence: r.Recurrence,
	}
}
