package application

import (
	"testing"
	"time"

	"github.com/adomanski/TrackKit/internal/habit/domain"
	"github.com/stretchr/testify/assert"
)

func logOn(habitID string, day time.Time) domain.HabitLog {
	return domain.HabitLog{
		ID:        "log-" + habitID + day.Format("2006-01-02"),
		HabitID:   habitID,
		UserID:    "user-1",
		Date:      domain.NormalizeDate(day),
		Completed: true,
	}
}

func habitWithLogs(id string, logs ...domain.HabitLog) domain.Habit {
	return domain.Habit{
		ID:        id,
		UserID:    "user-1",
		Name:      "Habit " + id,
		Frequency: domain.FrequencyDaily,
		Logs:      logs,
	}
}

func TestComputeDashboardMetrics_CompletedTodayNeverExceedsTotal(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	// Two completions of the same habit today still count it once.
	habits := []domain.Habit{
		habitWithLogs("h1", logOn("h1", now)),
		habitWithLogs("h2", logOn("h2", now), logOn("h2", now.AddDate(0, 0, -1))),
		habitWithLogs("h3"),
	}

	metrics := ComputeDashboardMetrics(habits, now)

	assert.Equal(t, 3, metrics.TotalHabits)
	assert.Equal(t, 2, metrics.CompletedToday)
	assert.LessOrEqual(t, metrics.CompletedToday, metrics.TotalHabits)
}

func TestComputeDashboardMetrics_CurrentStreakAcrossHabits(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	// Today and yesterday covered by h1, two days ago by h2, then a gap.
	// The streak counts days, not habits, so this is exactly three.
	habits := []domain.Habit{
		habitWithLogs("h1",
			logOn("h1", now),
			logOn("h1", now.AddDate(0, 0, -1)),
			logOn("h1", now.AddDate(0, 0, -4)),
		),
		habitWithLogs("h2", logOn("h2", now.AddDate(0, 0, -2))),
	}

	metrics := ComputeDashboardMetrics(habits, now)
	assert.Equal(t, 3, metrics.CurrentStreak)
}

func TestComputeDashboardMetrics_StreakZeroWithoutTodayCompletion(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	habits := []domain.Habit{
		habitWithLogs("h1", logOn("h1", now.AddDate(0, 0, -1)), logOn("h1", now.AddDate(0, 0, -2))),
	}

	metrics := ComputeDashboardMetrics(habits, now)
	assert.Equal(t, 0, metrics.CurrentStreak)
}

func TestComputeDashboardMetrics_StreakCappedAtThirtyDays(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	var logs []domain.HabitLog
	for offset := 0; offset < 45; offset++ {
		logs = append(logs, logOn("h1", now.AddDate(0, 0, -offset)))
	}
	habits := []domain.Habit{habitWithLogs("h1", logs...)}

	metrics := ComputeDashboardMetrics(habits, now)
	assert.Equal(t, 30, metrics.CurrentStreak)
}

func TestWeeklyCompletionRate_Bounds(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("no habits yields zero, not a division error", func(t *testing.T) {
		metrics := ComputeDashboardMetrics([]domain.Habit{}, now)
		assert.Equal(t, 0, metrics.WeeklyCompletionRate)
	})

	t.Run("every habit every day yields one hundred", func(t *testing.T) {
		var habits []domain.Habit
		for _, id := range []string{"h1", "h2"} {
			var logs []domain.HabitLog
			for offset := 0; offset < 7; offset++ {
				logs = append(logs, logOn(id, now.AddDate(0, 0, -offset)))
			}
			habits = append(habits, habitWithLogs(id, logs...))
		}
		metrics := ComputeDashboardMetrics(habits, now)
		assert.Equal(t, 100, metrics.WeeklyCompletionRate)
	})

	t.Run("partial week rounds to nearest integer", func(t *testing.T) {
		// 1 habit, 3 of 7 days: 3/7 = 42.857..., rounds to 43.
		habits := []domain.Habit{habitWithLogs("h1",
			logOn("h1", now),
			logOn("h1", now.AddDate(0, 0, -2)),
			logOn("h1", now.AddDate(0, 0, -5)),
		)}
		metrics := ComputeDashboardMetrics(habits, now)
		assert.Equal(t, 43, metrics.WeeklyCompletionRate)
		assert.GreaterOrEqual(t, metrics.WeeklyCompletionRate, 0)
		assert.LessOrEqual(t, metrics.WeeklyCompletionRate, 100)
	})
}

func TestHabitStreak_ConsecutiveDays(t *testing.T) {
	// Noon reference keeps the whole-day distance math unambiguous.
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	logs := []domain.HabitLog{
		logOn("h1", now),
		logOn("h1", now.AddDate(0, 0, -1)),
		logOn("h1", now.AddDate(0, 0, -3)),
	}

	assert.Equal(t, 2, HabitStreak(logs, now))
}

func TestHabitStreak_IgnoresIncompleteLogs(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	incomplete := logOn("h1", now)
	incomplete.Completed = false
	logs := []domain.HabitLog{incomplete, logOn("h1", now.AddDate(0, 0, -1))}

	// Today's log is not completed, and yesterday alone is a whole day away
	// at noon, so the chain never starts.
	assert.Equal(t, 0, HabitStreak(logs, now))
}

// The per-habit streak measures distance from the live instant rather than
// from a normalized day, so the same logs score differently before and after
// midnight. This pins the behavior on both sides of the boundary.
func TestHabitStreak_MidnightBoundary(t *testing.T) {
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	logs := []domain.HabitLog{logOn("h1", today.AddDate(0, 0, -1))}

	t.Run("late evening counts yesterday as day zero", func(t *testing.T) {
		lateEvening := today.Add(-1 * time.Hour) // 23:00 on the 14th
		assert.Equal(t, 1, HabitStreak(logs, lateEvening))
	})

	t.Run("just after midnight the same log breaks the chain", func(t *testing.T) {
		earlyMorning := today.Add(30 * time.Minute) // 00:30 on the 15th
		assert.Equal(t, 0, HabitStreak(logs, earlyMorning))
	})
}
