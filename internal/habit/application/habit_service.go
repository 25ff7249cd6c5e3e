package application

import (
	"time"

	"github.com/adomanski/TrackKit/internal/habit/domain"
	habitErrors "github.com/adomanski/TrackKit/internal/habit/errors"
	"github.com/google/uuid"
)

type CategoryServiceInterface interface {
	DoesCategoryExist(categoryID int) (bool, error)
	GetAllCategories() ([]domain.HabitCategory, error)
}

type HabitService struct {
	repo            domain.HabitRepository
	logRepo         domain.HabitLogRepository
	categoryService CategoryServiceInterface
}

func NewHabitService(repo domain.HabitRepository, logRepo domain.HabitLogRepository, categoryService CategoryServiceInterface) *HabitService {
	return &HabitService{repo: repo, logRepo: logRepo, categoryService: categoryService}
}

func (s *HabitService) CreateHabit(habit *domain.Habit) error {
	habit.ID = uuid.NewString()
	habit.Archived = false
	if err := habit.Validate(); err != nil {
		return err
	}

	exists, err := s.categoryService.DoesCategoryExist(habit.CategoryID)
	if err != nil {
		return err
	}
	if !exists {
		return habitErrors.ErrInvalidCategory
	}

	return s.repo.Save(*habit)
}

func (s *HabitService) UpdateHabit(habit *domain.Habit) error {
	existing, err := s.repo.FindByID(habit.ID, habit.UserID)
	if err != nil {
		return err
	}

	habit.Archived = existing.Archived
	if err := habit.Validate(); err != nil {
		return err
	}

	exists, err := s.categoryService.DoesCategoryExist(habit.CategoryID)
	if err != nil {
		return err
	}
	if !exists {
		return habitErrors.ErrInvalidCategory
	}

	return s.repo.Update(*habit)
}

// ArchiveHabit soft-deletes: the row stays, only the flag flips, and the
// habit's logs remain retrievable by id.
func (s *HabitService) ArchiveHabit(habitID, userID string) error {
	return s.repo.SetArchived(habitID, userID, true)
}

func (s *HabitService) RestoreHabit(habitID, userID string) error {
	return s.repo.SetArchived(habitID, userID, false)
}

// GetUserHabits returns the user's habits with their logs of the trailing
// streak window nested per habit, the full record set a dashboard load
// consumes.
func (s *HabitService) GetUserHabits(userID string, includeArchived bool, now time.Time) ([]domain.Habit, error) {
	habits, err := s.repo.FindByUser(userID, includeArchived)
	if err != nil {
		return nil, err
	}

	since := domain.NormalizeDate(now.AddDate(0, 0, -maxStreakLookback))
	logs, err := s.logRepo.FindByUserSince(userID, since)
	if err != nil {
		return nil, err
	}

	logsByHabit := make(map[string][]domain.HabitLog)
	for _, log := range logs {
		logsByHabit[log.HabitID] = append(logsByHabit[log.HabitID], log)
	}
	for i := range habits {
		habits[i].Logs = logsByHabit[habits[i].ID]
	}

	if habits == nil {
		return []domain.Habit{}, nil
	}
	return habits, nil
}

// GetDashboard bundles the habit list with its derived metrics and per-habit
// streaks, all computed from the same snapshot and the same reference instant.
func (s *HabitService) GetDashboard(userID string, now time.Time) ([]domain.Habit, DashboardMetrics, map[string]int, error) {
	habits, err := s.GetUserHabits(userID, false, now)
	if err != nil {
		return nil, DashboardMetrics{}, nil, err
	}

	metrics := ComputeDashboardMetrics(habits, now)

	streaks := make(map[string]int, len(habits))
	for _, habit := range habits {
		streaks[habit.ID] = HabitStreak(habit.Logs, now)
	}

	return habits, metrics, streaks, nil
}
