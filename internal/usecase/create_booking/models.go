package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	ProviderID  string    // ID провайдера
	Start       time.Time // Начало слота
	End         time.Time // Конец слота
	OwnerName   string    // Кто записывает
	SubjectName string    // Кого записывают
	Reason      *string   // Причина обращения (опционально)
	Notes       *string   // Заметки (опционально)
}

// BatchResult исход одной заявки в пакетной записи
type BatchResult struct {
	Index       int                 // Позиция заявки в пакете
	Appointment *domain.Appointment // Созданная запись, если успешно
	Err         error               // Ошибка, если запись не создана
}
