package completion

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule проверка раз в пять минут
const DefaultSchedule = "@every 5m"

const runTimeout = 30 * time.Second

// Scheduler периодически переводит завершившиеся записи в статус completed
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	service  AppointmentService
	metrics  Metrics
	logger   Logger
}

// NewScheduler создает планировщик
// schedule принимает стандартный cron из пяти полей или дескрипторы вида "@every 5m"
func NewScheduler(schedule string, service AppointmentService, metrics Metrics, logger Logger) (*Scheduler, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("completion: invalid schedule %q: %w", schedule, err)
	}

	return &Scheduler{
		cron:     cron.New(),
		schedule: schedule,
		service:  service,
		metrics:  metrics,
		logger:   logger,
	}, nil
}

// Start регистрирует задачу и запускает планировщик
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.Run); err != nil {
		return fmt.Errorf("completion: failed to register job: %w", err)
	}
	s.cron.Start()
	s.logger.Info("CompletionScheduler: started with schedule %s", s.schedule)
	return nil
}

// Stop останавливает планировщик и ждет завершения текущего запуска
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("CompletionScheduler: stopped")
}

// Run выполняет один проход
func (s *Scheduler) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	count, err := s.service.CompleteElapsed(ctx)
	if err != nil {
		s.logger.Error("CompletionScheduler: run failed: %v", err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordAppointmentsCompleted(count)
	}
}
