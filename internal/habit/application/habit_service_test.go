package application

import (
	"testing"
	"time"

	"github.com/adomanski/TrackKit/internal/habit/domain"
	habitErrors "github.com/adomanski/TrackKit/internal/habit/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHabitService() (*HabitService, *mockHabitRepository, *mockHabitLogRepository) {
	repo := newMockHabitRepository()
	logRepo := newMockHabitLogRepository()
	service := NewHabitService(repo, logRepo, newMockCategoryService(1, 2))
	return service, repo, logRepo
}

func TestCreateHabit(t *testing.T) {
	service, repo, _ := newTestHabitService()

	habit := &domain.Habit{
		UserID:      "user-1",
		Name:        "Morning run",
		CategoryID:  1,
		Frequency:   domain.FrequencyDaily,
		TargetCount: 1,
	}

	err := service.CreateHabit(habit)
	require.NoError(t, err)
	assert.NotEmpty(t, habit.ID)
	assert.False(t, habit.Archived)

	stored, err := repo.FindByID(habit.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Morning run", stored.Name)
}

func TestCreateHabit_ValidationFailures(t *testing.T) {
	service, _, _ := newTestHabitService()

	t.Run("empty name", func(t *testing.T) {
		err := service.CreateHabit(&domain.Habit{
			UserID: "user-1", CategoryID: 1, Frequency: domain.FrequencyDaily, TargetCount: 1,
		})
		assert.True(t, habitErrors.IsValidationError(err))
	})

	t.Run("unknown frequency", func(t *testing.T) {
		err := service.CreateHabit(&domain.Habit{
			UserID: "user-1", Name: "Read", CategoryID: 1, Frequency: "monthly", TargetCount: 1,
		})
		assert.True(t, habitErrors.IsValidationError(err))
	})

	t.Run("unknown category", func(t *testing.T) {
		err := service.CreateHabit(&domain.Habit{
			UserID: "user-1", Name: "Read", CategoryID: 99, Frequency: domain.FrequencyDaily, TargetCount: 1,
		})
		assert.ErrorIs(t, err, habitErrors.ErrInvalidCategory)
	})
}

func TestUpdateHabit_PreservesArchivedFlag(t *testing.T) {
	service, repo, _ := newTestHabitService()

	habit := &domain.Habit{
		UserID: "user-1", Name: "Read", CategoryID: 1,
		Frequency: domain.FrequencyDaily, TargetCount: 1,
	}
	require.NoError(t, service.CreateHabit(habit))
	require.NoError(t, service.ArchiveHabit(habit.ID, "user-1"))

	updated := &domain.Habit{
		ID: habit.ID, UserID: "user-1", Name: "Read more", CategoryID: 2,
		Frequency: domain.FrequencyWeekly, TargetCount: 3,
	}
	require.NoError(t, service.UpdateHabit(updated))

	stored, err := repo.FindByID(habit.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Read more", stored.Name)
	assert.True(t, stored.Archived, "an update must not silently restore an archived habit")
}

func TestUpdateHabit_NotFoundForOtherUser(t *testing.T) {
	service, _, _ := newTestHabitService()

	habit := &domain.Habit{
		UserID: "user-1", Name: "Read", CategoryID: 1,
		Frequency: domain.FrequencyDaily, TargetCount: 1,
	}
	require.NoError(t, service.CreateHabit(habit))

	err := service.UpdateHabit(&domain.Habit{
		ID: habit.ID, UserID: "user-2", Name: "Hijack", CategoryID: 1,
		Frequency: domain.FrequencyDaily, TargetCount: 1,
	})
	assert.ErrorIs(t, err, habitErrors.ErrHabitNotFound)
}

func TestArchiveAndRestoreHabit(t *testing.T) {
	service, _, _ := newTestHabitService()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	habit := &domain.Habit{
		UserID: "user-1", Name: "Read", CategoryID: 1,
		Frequency: domain.FrequencyDaily, TargetCount: 1,
	}
	require.NoError(t, service.CreateHabit(habit))

	require.NoError(t, service.ArchiveHabit(habit.ID, "user-1"))
	habits, err := service.GetUserHabits("user-1", false, now)
	require.NoError(t, err)
	assert.Empty(t, habits)

	require.NoError(t, service.RestoreHabit(habit.ID, "user-1"))
	habits, err = service.GetUserHabits("user-1", false, now)
	require.NoError(t, err)
	assert.Len(t, habits, 1)
}

func TestGetDashboard_ExcludesArchivedFromMetrics(t *testing.T) {
	service, _, logRepo := newTestHabitService()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	active := &domain.Habit{
		UserID: "user-1", Name: "Run", CategoryID: 1,
		Frequency: domain.FrequencyDaily, TargetCount: 1,
	}
	archived := &domain.Habit{
		UserID: "user-1", Name: "Old", CategoryID: 1,
		Frequency: domain.FrequencyDaily, TargetCount: 1,
	}
	require.NoError(t, service.CreateHabit(active))
	require.NoError(t, service.CreateHabit(archived))
	require.NoError(t, service.ArchiveHabit(archived.ID, "user-1"))

	require.NoError(t, logRepo.Save(domain.HabitLog{
		ID: "l1", HabitID: active.ID, UserID: "user-1",
		Date: domain.NormalizeDate(now), Completed: true,
	}))
	require.NoError(t, logRepo.Save(domain.HabitLog{
		ID: "l2", HabitID: archived.ID, UserID: "user-1",
		Date: domain.NormalizeDate(now), Completed: true,
	}))

	habits, metrics, streaks, err := service.GetDashboard("user-1", now)
	require.NoError(t, err)

	assert.Len(t, habits, 1)
	assert.Equal(t, 1, metrics.TotalHabits)
	assert.Equal(t, 1, metrics.CompletedToday)
	assert.Equal(t, 1, streaks[active.ID])
	assert.NotContains(t, streaks, archived.ID)
}

func TestGetUserHabits_EmptyListNotNil(t *testing.T) {
	service, _, _ := newTestHabitService()

	habits, err := service.GetUserHabits("user-without-habits", false, time.Now())
	require.NoError(t, err)
	assert.NotNil(t, habits)
	assert.Empty(t, habits)
}
