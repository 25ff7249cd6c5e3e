package domain

import (
	"time"
)

type HabitLogRepository interface {
	Save(log HabitLog) error
	FindByHabit(habitID, userID string) ([]HabitLog, error)
	FindByUserSince(userID string, since time.Time) ([]HabitLog, error)
	Delete(habitID, userID string, date time.Time) error
}

// HabitLog marks one habit completed on one calendar date. The database
// enforces at most one log per (habit, user, date); the application never
// pre-checks for duplicates.
type HabitLog struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	UserID    string    `json:"-"`
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeDate truncates a timestamp to its calendar date in UTC, the
// representation used by the log_date column.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
