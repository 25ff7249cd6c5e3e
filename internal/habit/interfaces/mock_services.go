package interfaces

import (
	"time"

	"github.com/adomanski/TrackKit/internal/habit/application"
	"github.com/adomanski/TrackKit/internal/habit/domain"
)

type MockHabitService struct {
	CreateHabitFn   func(habit *domain.Habit) error
	UpdateHabitFn   func(habit *domain.Habit) error
	ArchiveHabitFn  func(habitID, userID string) error
	RestoreHabitFn  func(habitID, userID string) error
	GetUserHabitsFn func(userID string, includeArchived bool, now time.Time) ([]domain.Habit, error)
	GetDashboardFn  func(userID string, now time.Time) ([]domain.Habit, application.DashboardMetrics, map[string]int, error)
}

func (m *MockHabitService) CreateHabit(habit *domain.Habit) error {
	if m.CreateHabitFn != nil {
		return m.CreateHabitFn(habit)
	}
	return nil
}

func (m *MockHabitService) UpdateHabit(habit *domain.Habit) error {
	if m.UpdateHabitFn != nil {
		return m.UpdateHabitFn(habit)
	}
	return nil
}

func (m *MockHabitService) ArchiveHabit(habitID, userID string) error {
	if m.ArchiveHabitFn != nil {
		return m.ArchiveHabitFn(habitID, userID)
	}
	return nil
}

func (m *MockHabitService) RestoreHabit(habitID, userID string) error {
	if m.RestoreHabitFn != nil {
		return m.RestoreHabitFn(habitID, userID)
	}
	return nil
}

func (m *MockHabitService) GetUserHabits(userID string, includeArchived bool, now time.Time) ([]domain.Habit, error) {
	if m.GetUserHabitsFn != nil {
		return m.GetUserHabitsFn(userID, includeArchived, now)
	}
	return []domain.Habit{}, nil
}

func (m *MockHabitService) GetDashboard(userID string, now time.Time) ([]domain.Habit, application.DashboardMetrics, map[string]int, error) {
	if m.GetDashboardFn != nil {
		return m.GetDashboardFn(userID, now)
	}
	return []domain.Habit{}, application.DashboardMetrics{}, map[string]int{}, nil
}

type MockHabitLogService struct {
	LogCompletionFn func(habitID, userID string, date time.Time) (*domain.HabitLog, error)
	DeleteLogFn     func(habitID, userID string, date time.Time) error
	GetHabitLogsFn  func(habitID, userID string) ([]domain.HabitLog, error)
}

func (m *MockHabitLogService) LogCompletion(habitID, userID string, date time.Time) (*domain.HabitLog, error) {
	if m.LogCompletionFn != nil {
		return m.LogCompletionFn(habitID, userID, date)
	}
	return &domain.HabitLog{HabitID: habitID, UserID: userID, Date: domain.NormalizeDate(date), Completed: true}, nil
}

func (m *MockHabitLogService) DeleteLog(habitID, userID string, date time.Time) error {
	if m.DeleteLogFn != nil {
		return m.DeleteLogFn(habitID, userID, date)
	}
	return nil
}

func (m *MockHabitLogService) GetHabitLogs(habitID, userID string) ([]domain.HabitLog, error) {
	if m.GetHabitLogsFn != nil {
		return m.GetHabitLogsFn(habitID, userID)
	}
	return []domain.HabitLog{}, nil
}

type MockCategoryService struct {
	GetAllCategoriesFn func() ([]domain.HabitCategory, error)
}

func (m *MockCategoryService) GetAllCategories() ([]domain.HabitCategory, error) {
	if m.GetAllCategoriesFn != nil {
		return m.GetAllCategoriesFn()
	}
	return []domain.HabitCategory{}, nil
}
