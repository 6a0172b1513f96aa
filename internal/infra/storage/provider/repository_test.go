package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/kv"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

func newTestRepository() *Repository {
	return NewRepository(kv.NewStore(kv.NewMemoryBackend(), nil))
}

func TestRepository_CreateGetAll(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	for _, id := range []string{"p2", "p1"} {
		_, err := repo.Create(ctx, &domain.Provider{ID: id, Name: "Provider " + id})
		require.NoError(t, err)
	}

	_, err := repo.Create(ctx, &domain.Provider{ID: "p1"})
	assert.ErrorIs(t, err, ErrDuplicateID)

	_, err = repo.Create(ctx, &domain.Provider{})
	assert.ErrorIs(t, err, ErrInvalidProvider)

	got, err := repo.GetByID(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, "Provider p2", got.Name)

	_, err = repo.GetByID(ctx, "p3")
	assert.ErrorIs(t, err, ErrProviderNotFound)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "p1", all[0].ID)
	assert.Equal(t, "p2", all[1].ID)
}

func TestRepository_ReplaceAvailability(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.Provider{
		ID: "p1",
		Availability: []domain.AvailabilityRule{
			{ID: "old", Weekday: time.Monday, StartTime: "09:00", EndTime: "12:00"},
		},
	})
	require.NoError(t, err)

	rules := []domain.AvailabilityRule{
		{ID: "r1", Weekday: time.Tuesday, StartTime: "10:00", EndTime: "11:00", Recurrence: ptr.Ptr("FREQ=WEEKLY;INTERVAL=2;BYDAY=TU")},
	}
	updated, err := repo.ReplaceAvailability(ctx, "p1", rules)
	require.NoError(t, err)
	require.Len(t, updated.Availability, 1)
	assert.Equal(t, "r1", updated.Availability[0].ID)

	// Изменение входного среза не влияет на сохраненные данные
	*rules[0].Recurrence = "broken"

	stored, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, stored.Availability, 1)
	assert.Equal(t, "FREQ=WEEKLY;INTERVAL=2;BYDAY=TU", ptr.Value(stored.Availability[0].Recurrence))

	_, err = repo.ReplaceAvailability(ctx, "missing", rules)
	assert.ErrorIs(t, err, ErrProviderNotFound)
}
