package application

import (
	"testing"
	"time"

	"github.com/adomanski/TrackKit/internal/habit/domain"
	habitErrors "github.com/adomanski/TrackKit/internal/habit/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogService(t *testing.T) (*HabitLogService, string) {
	t.Helper()
	habitRepo := newMockHabitRepository()
	logRepo := newMockHabitLogRepository()

	habitService := NewHabitService(habitRepo, logRepo, newMockCategoryService(1))
	habit := &domain.Habit{
		UserID: "user-1", Name: "Run", CategoryID: 1,
		Frequency: domain.FrequencyDaily, TargetCount: 1,
	}
	require.NoError(t, habitService.CreateHabit(habit))

	return NewHabitLogService(logRepo, habitRepo), habit.ID
}

func TestLogCompletion(t *testing.T) {
	service, habitID := newTestLogService(t)
	when := time.Date(2024, 3, 15, 18, 45, 0, 0, time.UTC)

	log, err := service.LogCompletion(habitID, "user-1", when)
	require.NoError(t, err)

	assert.NotEmpty(t, log.ID)
	assert.True(t, log.Completed)
	// The stored date is the calendar day, not the instant.
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), log.Date)
}

func TestLogCompletion_SameDayTwiceConflicts(t *testing.T) {
	service, habitID := newTestLogService(t)
	day := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)

	_, err := service.LogCompletion(habitID, "user-1", day)
	require.NoError(t, err)

	// A different time of the same day normalizes to the same date.
	_, err = service.LogCompletion(habitID, "user-1", day.Add(10*time.Hour))
	assert.ErrorIs(t, err, habitErrors.ErrDuplicateLog)
}

func TestLogCompletion_UnknownHabit(t *testing.T) {
	service, _ := newTestLogService(t)

	_, err := service.LogCompletion("missing-habit", "user-1", time.Now())
	assert.ErrorIs(t, err, habitErrors.ErrHabitNotFound)
}

func TestLogCompletion_OtherUsersHabit(t *testing.T) {
	service, habitID := newTestLogService(t)

	_, err := service.LogCompletion(habitID, "user-2", time.Now())
	assert.ErrorIs(t, err, habitErrors.ErrHabitNotFound)
}

func TestDeleteLog(t *testing.T) {
	service, habitID := newTestLogService(t)
	day := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)

	_, err := service.LogCompletion(habitID, "user-1", day)
	require.NoError(t, err)

	require.NoError(t, service.DeleteLog(habitID, "user-1", day))
	assert.ErrorIs(t, service.DeleteLog(habitID, "user-1", day), habitErrors.ErrLogNotFound)

	// The date is free again once the log is gone.
	_, err = service.LogCompletion(habitID, "user-1", day)
	assert.NoError(t, err)
}

func TestGetHabitLogs_SurvivesArchiving(t *testing.T) {
	habitRepo := newMockHabitRepository()
	logRepo := newMockHabitLogRepository()
	habitService := NewHabitService(habitRepo, logRepo, newMockCategoryService(1))
	logService := NewHabitLogService(logRepo, habitRepo)

	habit := &domain.Habit{
		UserID: "user-1", Name: "Run", CategoryID: 1,
		Frequency: domain.FrequencyDaily, TargetCount: 1,
	}
	require.NoError(t, habitService.CreateHabit(habit))

	_, err := logService.LogCompletion(habit.ID, "user-1", time.Now())
	require.NoError(t, err)

	require.NoError(t, habitService.ArchiveHabit(habit.ID, "user-1"))

	logs, err := logService.GetHabitLogs(habit.ID, "user-1")
	require.NoError(t, err)
	assert.Len(t, logs, 1, "archiving hides the habit, not its history")
}

func TestGetHabitLogs_EmptyHistoryNotNil(t *testing.T) {
	service, habitID := newTestLogService(t)

	logs, err := service.GetHabitLogs(habitID, "user-1")
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
}
