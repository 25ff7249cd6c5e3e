package application

import (
	"time"

	"github.com/adomanski/TrackKit/internal/habit/domain"
	"github.com/google/uuid"
)

type HabitLogService struct {
	repo      domain.HabitLogRepository
	habitRepo domain.HabitRepository
}

func NewHabitLogService(repo domain.HabitLogRepository, habitRepo domain.HabitRepository) *HabitLogService {
	return &HabitLogService{repo: repo, habitRepo: habitRepo}
}

// LogCompletion records one completion for one calendar date. A duplicate
// (habit, user, date) insert is rejected by the database constraint and comes
// back as ErrDuplicateLog; there is no application-side pre-check.
func (s *HabitLogService) LogCompletion(habitID, userID string, date time.Time) (*domain.HabitLog, error) {
	if _, err := s.habitRepo.FindByID(habitID, userID); err != nil {
		return nil, err
	}

	log := domain.HabitLog{
		ID:        uuid.NewString(),
		HabitID:   habitID,
		UserID:    userID,
		Date:      domain.NormalizeDate(date),
		Completed: true,
	}

	if err := s.repo.Save(log); err != nil {
		return nil, err
	}
	return &log, nil
}

// DeleteLog undoes a completion. Logs are hard-deleted, unlike habits.
func (s *HabitLogService) DeleteLog(habitID, userID string, date time.Time) error {
	if _, err := s.habitRepo.FindByID(habitID, userID); err != nil {
		return err
	}
	return s.repo.Delete(habitID, userID, domain.NormalizeDate(date))
}

// GetHabitLogs returns the full log history of one habit, archived or not.
func (s *HabitLogService) GetHabitLogs(habitID, userID string) ([]domain.HabitLog, error) {
	if _, err := s.habitRepo.FindByID(habitID, userID); err != nil {
		return nil, err
	}

	logs, err := s.repo.FindByHabit(habitID, userID)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		return []domain.HabitLog{}, nil
	}
	return logs, nil
}
