package application

import (
	"time"

	"github.com/adomanski/TrackKit/internal/habit/domain"
	habitErrors "github.com/adomanski/TrackKit/internal/habit/errors"
)

type mockHabitRepository struct {
	habits map[string]domain.Habit
}

func newMockHabitRepository() *mockHabitRepository {
	return &mockHabitRepository{habits: make(map[string]domain.Habit)}
}

func (m *mockHabitRepository) Save(habit domain.Habit) error {
	m.habits[habit.ID] = habit
	return nil
}

func (m *mockHabitRepository) FindByUser(userID string, includeArchived bool) ([]domain.Habit, error) {
	var habits []domain.Habit
	for _, habit := range m.habits {
		if habit.UserID != userID {
			continue
		}
		if habit.Archived && !includeArchived {
			continue
		}
		habits = append(habits, habit)
	}
	return habits, nil
}

func (m *mockHabitRepository) FindByID(habitID, userID string) (*domain.Habit, error) {
	habit, ok := m.habits[habitID]
	if !ok || habit.UserID != userID {
		return nil, habitErrors.ErrHabitNotFound
	}
	return &habit, nil
}

func (m *mockHabitRepository) Update(habit domain.Habit) error {
	if _, ok := m.habits[habit.ID]; !ok {
		return habitErrors.ErrHabitNotFound
	}
	m.habits[habit.ID] = habit
	return nil
}

func (m *mockHabitRepository) SetArchived(habitID, userID string, archived bool) error {
	habit, ok := m.habits[habitID]
	if !ok || habit.UserID != userID {
		return habitErrors.ErrHabitNotFound
	}
	habit.Archived = archived
	m.habits[habitID] = habit
	return nil
}

type mockHabitLogRepository struct {
	logs []domain.HabitLog
}

func newMockHabitLogRepository() *mockHabitLogRepository {
	return &mockHabitLogRepository{}
}

func (m *mockHabitLogRepository) Save(log domain.HabitLog) error {
	for _, existing := range m.logs {
		if existing.HabitID == log.HabitID && existing.UserID == log.UserID && existing.Date.Equal(log.Date) {
			return habitErrors.ErrDuplicateLog
		}
	}
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockHabitLogRepository) FindByHabit(habitID, userID string) ([]domain.HabitLog, error) {
	var logs []domain.HabitLog
	for _, log := range m.logs {
		if log.HabitID == habitID && log.UserID == userID {
			logs = append(logs, log)
		}
	}
	return logs, nil
}

func (m *mockHabitLogRepository) FindByUserSince(userID string, since time.Time) ([]domain.HabitLog, error) {
	var logs []domain.HabitLog
	for _, log := range m.logs {
		if log.UserID == userID && !log.Date.Before(since) {
			logs = append(logs, log)
		}
	}
	return logs, nil
}

func (m *mockHabitLogRepository) Delete(habitID, userID string, date time.Time) error {
	for i, log := range m.logs {
		if log.HabitID == habitID && log.UserID == userID && log.Date.Equal(date) {
			m.logs = append(m.logs[:i], m.logs[i+1:]...)
			return nil
		}
	}
	return habitErrors.ErrLogNotFound
}

type mockCategoryService struct {
	existingIDs map[int]bool
}

func newMockCategoryService(ids ...int) *mockCategoryService {
	existing := make(map[int]bool, len(ids))
	for _, id := range ids {
		existing[id] = true
	}
	return &mockCategoryService{existingIDs: existing}
}

func (m *mockCategoryService) DoesCategoryExist(categoryID int) (bool, error) {
	return m.existingIDs[categoryID], nil
}

func (m *mockCategoryService) GetAllCategories() ([]domain.HabitCategory, error) {
	var categories []domain.HabitCategory
	for id := range m.existingIDs {
		categories = append(categories, domain.HabitCategory{ID: id, Name: "Category"})
	}
	return categories, nil
}
