package domain

import (
	"strings"
	"time"

	habitErrors "github.com/adomanski/TrackKit/internal/habit/errors"
)

const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"

	maxNameLength = 100
)

type HabitRepository interface {
	Save(habit Habit) error
	FindByUser(userID string, includeArchived bool) ([]Habit, error)
	FindByID(habitID, userID string) (*Habit, error)
	Update(habit Habit) error
	SetArchived(habitID, userID string, archived bool) error
}

// Habit is a user-owned tracked habit. Archival is a soft delete: the row is
// kept and only the flag flips, so historical logs stay reachable.
type Habit struct {
	ID          string     `json:"id"`
	UserID      string     `json:"-"`
	Name        string     `json:"name"`
	CategoryID  int        `json:"category_id"`
	Color       string     `json:"color"`
	Icon        string     `json:"icon"`
	Frequency   string     `json:"frequency"` // "daily" or "weekly"
	TargetCount int        `json:"target_count"`
	Archived    bool       `json:"archived"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Logs        []HabitLog `json:"logs,omitempty"`
}

func IsValidFrequency(frequency string) bool {
	return frequency == FrequencyDaily || frequency == FrequencyWeekly
}

func (h *Habit) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return habitErrors.NewValidationError("Name must not be empty")
	}
	if len(h.Name) > maxNameLength {
		return habitErrors.NewValidationError("Name must be of length less than 100")
	}
	if !IsValidFrequency(h.Frequency) {
		return habitErrors.NewValidationError("Frequency must be 'daily' or 'weekly'")
	}
	if h.TargetCount < 1 {
		return habitErrors.NewValidationError("Target count must be at least 1")
	}
	return nil
}
