package get_available_slots

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	errMissingWindow   = errors.New("from and to are required")
	errInvalidDuration = errors.New("invalid durationMinutes")
)

// slotsQuery разобранные query параметры
type slotsQuery struct {
	From     time.Time
	To       time.Time
	Duration time.Duration
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ProviderID      string                  `json:"providerId"`
	From            string                  `json:"from"`
	To              string                  `json:"to"`
	DurationMinutes int                     `json:"durationMinutes"`
	Slots           []handlers.SlotResponse `json:"slots"`
}

// parseQuery разбирает from, to и durationMinutes
// Если durationMinutes не указан, используется defaultDuration
func parseQuery(values url.Values, defaultDuration time.Duration) (*slotsQuery, error) {
	fromStr, toStr := values.Get("from"), values.Get("to")
	if fromStr == "" || toStr == "" {
		return nil, errMissingWindow
	}

	from, err := handlers.ParseTime(fromStr)
	if err != nil {
		return nil, err
	}
	to, err := handlers.ParseTime(toStr)
	if err != nil {
		return nil, err
	}

	duration := defaultDuration
	if raw := values.Get("durationMinutes"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes < domain.MinSlotDurationMinutes || minutes > domain.MaxSlotDurationMinutes {
			return nil, fmt.Errorf("%w: %q, expected %d..%d", errInvalidDuration, raw,
				domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
		}
		duration = time.Duration(minutes) * time.Minute
	}

	return &slotsQuery{From: from, To: to, Duration: duration}, nil
}

// FromSlots конвертирует результат агрегатора в HTTP response
func FromSlots(providerID string, q *slotsQuery, slots []domain.CandidateSlot) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		ProviderID:      providerID,
		From:            q.From.Format(time.RFC3339),
		To:              q.To.Format(time.RFC3339),
		DurationMinutes: int(q.Duration / time.Minute),
		Slots:           handlers.FromSlots(slots),
	}
}
