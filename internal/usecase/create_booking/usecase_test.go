package create_booking

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/kv"
	providerRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/lockmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) RecordBookingOutcome(operation, outcome string) {
	m.Called(operation, outcome)
}

type failingCreate struct{}

func (failingCreate) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	return nil, errors.New("write failed")
}

// 2026-11-01 воскресенье, правило: понедельник 09:00-12:00
var now = time.Date(2026, 11, 1, 8, 0, 0, 0, time.UTC)

func monday(hour, minute int) time.Time {
	return time.Date(2026, 11, 2, hour, minute, 0, 0, time.UTC)
}

type fixture struct {
	uc           *UseCase
	appointments *appointmentRepo.Repository
}

func newFixture(t *testing.T, metrics Metrics, repo AppointmentRepository) *fixture {
	t.Helper()
	return newFixtureWithRules(t, metrics, repo, domain.AvailabilityRule{ID: "r1", Weekday: time.Monday, StartTime: "09:00", EndTime: "12:00"})
}

func newFixtureWithRules(t *testing.T, metrics Metrics, repo AppointmentRepository, rules ...domain.AvailabilityRule) *fixture {
	t.Helper()

	store := kv.NewStore(kv.NewMemoryBackend(), nil)
	providers := providerRepo.NewRepository(store)
	appointments := appointmentRepo.NewRepository(store)

	_, err := providers.Create(context.Background(), &domain.Provider{
		ID:   "p1",
		Name: "Dr. Smith",
		Availability: rules,
	})
	require.NoError(t, err)

	log := logger.NewWithWriter(io.Discard, "debug")
	slots := availability.NewService(providers, appointments, nil, log, 0)
	slots.SetTimeProvider(fixedClock{now: now})

	if repo == nil {
		repo = appointments
	}
	uc := NewUseCase(repo, slots, lockmanager.NewLockManager(), metrics, log, 0)
	uc.SetTimeProvider(fixedClock{now: now})

	return &fixture{uc: uc, appointments: appointments}
}

func request(start, end time.Time) *Request {
	return &Request{
		ProviderID:  "p1",
		Start:       start,
		End:         end,
		OwnerName:   "Alice",
		SubjectName: "Bob",
		Reason:      ptr.Ptr("checkup"),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t, nil, nil)

	appointment, err := f.uc.Execute(context.Background(), request(monday(10, 0), monday(10, 30)))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusScheduled, appointment.Status)
	assert.Equal(t, "p1", appointment.ProviderID)
	assert.Equal(t, "Alice", appointment.OwnerName)
	assert.Equal(t, "Bob", appointment.SubjectName)
	assert.True(t, appointment.CreatedAt.Equal(now))
	assert.True(t, appointment.UpdatedAt.Equal(now))
	_, err = uuid.Parse(appointment.ID)
	assert.NoError(t, err)

	stored, err := f.appointments.GetByID(context.Background(), appointment.ID)
	require.NoError(t, err)
	assert.True(t, stored.Start.Equal(monday(10, 0)))
}

func TestExecute_ValidationOrder(t *testing.T) {
	f := newFixture(t, nil, nil)
	past := now.Add(-time.Hour)

	tests := []struct {
		name     string
		req      *Request
		expected error
	}{
		{"nil request", nil, domain.ErrInvalidRequest},
		{"missing provider", &Request{Start: monday(10, 0), End: monday(10, 30)}, domain.ErrInvalidRequest},
		{"missing end", &Request{ProviderID: "p1", Start: monday(10, 0)}, domain.ErrInvalidRequest},
		{"end before start", request(monday(10, 30), monday(10, 0)), domain.ErrInvalidRequest},
		{"end equals start", request(monday(10, 0), monday(10, 0)), domain.ErrInvalidRequest},
		{"end before start wins over past", request(past, past.Add(-time.Minute)), domain.ErrInvalidRequest},
		{"duration below minimum", request(monday(9, 0), monday(9, 0).Add(10*time.Millisecond)), domain.ErrInvalidRequest},
		{"fractional minutes", request(monday(9, 0), monday(9, 0).Add(30*time.Minute+time.Second)), domain.ErrInvalidRequest},
		{"duration above maximum", request(monday(9, 0), monday(9, 0).Add(9*time.Hour)), domain.ErrInvalidRequest},
		{"short duration wins over past", request(past, past.Add(time.Microsecond)), domain.ErrInvalidRequest},
		{"start in the past", request(past, past.Add(30*time.Minute)), domain.ErrInThePast},
		{"unknown provider", &Request{ProviderID: "ghost", Start: monday(10, 0), End: monday(10, 30)}, domain.ErrNotFound},
		{"not aligned", request(monday(10, 5), monday(10, 35)), domain.ErrSlotUnavailable},
		{"wrong duration", request(monday(10, 0), monday(10, 45)), domain.ErrSlotUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appointment, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.expected)
			assert.Nil(t, appointment)
		})
	}

	all, err := f.appointments.GetByProviderWithFilter(context.Background(), domain.AppointmentsFilter{ProviderID: "p1", IncludeCancelled: true})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestExecute_BiWeeklyOffWeekRejected(t *testing.T) {
	f := newFixtureWithRules(t, nil, nil, domain.AvailabilityRule{
		ID:         "r1",
		Weekday:    time.Monday,
		StartTime:  "09:00",
		EndTime:    "12:00",
		Recurrence: ptr.Ptr("FREQ=WEEKLY;INTERVAL=2;BYDAY=MO"),
	})
	ctx := context.Background()
	nextMonday := monday(9, 0).AddDate(0, 0, 7)

	_, err := f.uc.Execute(ctx, request(nextMonday, nextMonday.Add(30*time.Minute)))
	var unavailable *domain.SlotUnavailableError
	require.ErrorAs(t, err, &unavailable)
	for _, alt := range unavailable.Alternatives {
		assert.NotEqual(t, nextMonday.YearDay(), alt.Start.YearDay())
	}

	appointment, err := f.uc.Execute(ctx, request(monday(9, 0), monday(9, 30)))
	require.NoError(t, err)
	assert.True(t, appointment.Start.Equal(monday(9, 0)))
}

func TestExecute_SlotUnavailableAlternatives(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request(monday(9, 0), monday(9, 30)))
	require.NoError(t, err)

	// Повторная запись на тот же слот
	_, err = f.uc.Execute(ctx, request(monday(9, 0), monday(9, 30)))
	require.ErrorIs(t, err, domain.ErrSlotUnavailable)

	var unavailable *domain.SlotUnavailableError
	require.ErrorAs(t, err, &unavailable)
	require.Len(t, unavailable.Alternatives, 3)
	assert.True(t, unavailable.Alternatives[0].Start.Equal(monday(9, 30)))
	assert.True(t, unavailable.Alternatives[1].Start.Equal(monday(10, 0)))
	assert.True(t, unavailable.Alternatives[2].Start.Equal(monday(10, 30)))
	for _, alt := range unavailable.Alternatives {
		assert.Equal(t, 30*time.Minute, alt.Duration())
	}
}

func TestExecute_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	const attempts = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(ctx, request(monday(11, 0), monday(11, 30)))
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}

func TestExecute_StorageFailure(t *testing.T) {
	f := newFixture(t, nil, failingCreate{})

	_, err := f.uc.Execute(context.Background(), request(monday(10, 0), monday(10, 30)))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, domain.CodeInternal, domain.ErrorCode(err))
}

func TestExecute_RecordsOutcome(t *testing.T) {
	metrics := &mockMetrics{}
	metrics.On("RecordBookingOutcome", operationBook, outcomeSuccess).Once()
	metrics.On("RecordBookingOutcome", operationBook, "slot_unavailable").Once()
	metrics.On("RecordBookingOutcome", operationBook, "in_the_past").Once()

	f := newFixture(t, metrics, nil)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request(monday(10, 0), monday(10, 30)))
	require.NoError(t, err)
	_, err = f.uc.Execute(ctx, request(monday(10, 0), monday(10, 30)))
	require.Error(t, err)
	_, err = f.uc.Execute(ctx, request(now.Add(-time.Hour), now))
	require.Error(t, err)

	metrics.AssertExpectations(t)
}

func TestExecuteBatch(t *testing.T) {
	f := newFixture(t, nil, nil)

	results, err := f.uc.ExecuteBatch(context.Background(), []*Request{
		request(monday(9, 0), monday(9, 30)),
		request(monday(9, 0), monday(9, 30)),
		request(monday(9, 30), monday(9, 0)),
		request(monday(9, 30), monday(10, 0)),
	})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.NoError(t, results[0].Err)
	assert.NotNil(t, results[0].Appointment)
	assert.ErrorIs(t, results[1].Err, domain.ErrSlotUnavailable)
	assert.ErrorIs(t, results[2].Err, domain.ErrInvalidRequest)
	assert.NoError(t, results[3].Err)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
	}
}

func TestExecuteBatch_Limits(t *testing.T) {
	f := newFixture(t, nil, nil)

	results, err := f.uc.ExecuteBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)

	oversized := make([]*Request, domain.MaxBatchSize+1)
	for i := range oversized {
		oversized[i] = request(monday(9, 0), monday(9, 30))
	}
	_, err = f.uc.ExecuteBatch(context.Background(), oversized)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}
