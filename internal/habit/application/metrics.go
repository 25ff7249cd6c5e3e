package application

import (
	"math"
	"sort"
	"time"

	"github.com/adomanski/TrackKit/internal/habit/domain"
)

// maxStreakLookback bounds the global streak walk; the dashboard never shows
// more than 30 consecutive days.
const maxStreakLookback = 30

// DashboardMetrics are the display aggregates recomputed from the raw rows on
// every load. Nothing here is ever persisted.
type DashboardMetrics struct {
	TotalHabits          int `json:"total_habits"`
	CompletedToday       int `json:"completed_today"`
	CurrentStreak        int `json:"current_streak"`
	WeeklyCompletionRate int `json:"weekly_completion_rate"`
}

// ComputeDashboardMetrics derives the dashboard aggregates from the user's
// active habits and their nested logs. Pure function of its input; now is the
// reference instant captured by the caller.
func ComputeDashboardMetrics(habits []domain.Habit, now time.Time) DashboardMetrics {
	metrics := DashboardMetrics{
		TotalHabits: len(habits),
	}

	for _, habit := range habits {
		if completedOn(habit.Logs, now) {
			metrics.CompletedToday++
		}
	}

	// A streak day is any day on which at least one habit was completed,
	// regardless of which habit it was.
	for offset := 0; offset < maxStreakLookback; offset++ {
		day := now.AddDate(0, 0, -offset)
		active := false
		for _, habit := range habits {
			if completedOn(habit.Logs, day) {
				active = true
				break
			}
		}
		if !active {
			break
		}
		metrics.CurrentStreak++
	}

	metrics.WeeklyCompletionRate = weeklyCompletionRate(habits, now)

	return metrics
}

// weeklyCompletionRate sums, over the trailing seven days (today inclusive),
// how many distinct habits were completed each day, against a denominator of
// habit count times seven. Zero habits means a rate of 0, not a division.
func weeklyCompletionRate(habits []domain.Habit, now time.Time) int {
	if len(habits) == 0 {
		return 0
	}

	completions := 0
	for offset := 0; offset < 7; offset++ {
		day := now.AddDate(0, 0, -offset)
		for _, habit := range habits {
			if completedOn(habit.Logs, day) {
				completions++
			}
		}
	}

	rate := float64(completions) / float64(len(habits)*7) * 100
	return int(math.Round(rate))
}

// HabitStreak counts how many of the most recent consecutive calendar days
// carry a completed log for a single habit, walking its logs in descending
// date order and comparing each log's whole-day distance from now against the
// running count. The distance uses the live instant, not a normalized day, so
// results shift near local midnight; callers rely on that behavior staying
// put.
func HabitStreak(logs []domain.HabitLog, now time.Time) int {
	completed := make([]domain.HabitLog, 0, len(logs))
	for _, log := range logs {
		if log.Completed {
			completed = append(completed, log)
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].Date.After(completed[j].Date)
	})

	streak := 0
	for _, log := range completed {
		diff := int(now.Sub(log.Date).Hours() / 24)
		if diff != streak {
			break
		}
		streak++
	}
	return streak
}

func completedOn(logs []domain.HabitLog, day time.Time) bool {
	for _, log := range logs {
		if log.Completed && sameDay(log.Date, day) {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
