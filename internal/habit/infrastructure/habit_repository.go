package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/adomanski/TrackKit/internal/habit/domain"
	habitErrors "github.com/adomanski/TrackKit/internal/habit/errors"
)

type HabitRepository struct {
	db *sql.DB
}

func NewHabitRepository(db *sql.DB) *HabitRepository {
	return &HabitRepository{db: db}
}

func (r *HabitRepository) Save(habit domain.Habit) error {
	_, err := r.db.Exec(
		`INSERT INTO habits
        (id, user_id, name, category_id, color, icon, frequency, target_count, archived, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())`,
		habit.ID, habit.UserID, habit.Name, habit.CategoryID, habit.Color,
		habit.Icon, habit.Frequency, habit.TargetCount, habit.Archived,
	)
	return err
}

// FindByUser lists the caller's habits. Archived rows are filtered out unless
// explicitly requested; every query is scoped to the owning user.
func (r *HabitRepository) FindByUser(userID string, includeArchived bool) ([]domain.Habit, error) {
	query := `SELECT id, user_id, name, category_id, color, icon, frequency, target_count, archived, created_at, updated_at
        FROM habits WHERE user_id = $1`
	if !includeArchived {
		query += ` AND archived = FALSE`
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []domain.Habit
	for rows.Next() {
		var habit domain.Habit
		if err := rows.Scan(&habit.ID, &habit.UserID, &habit.Name, &habit.CategoryID, &habit.Color,
			&habit.Icon, &habit.Frequency, &habit.TargetCount, &habit.Archived, &habit.CreatedAt, &habit.UpdatedAt); err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	return habits, rows.Err()
}

func (r *HabitRepository) FindByID(habitID, userID string) (*domain.Habit, error) {
	var habit domain.Habit
	err := r.db.QueryRow(
		`SELECT id, user_id, name, category_id, color, icon, frequency, target_count, archived, created_at, updated_at
        FROM habits WHERE id = $1 AND user_id = $2`,
		habitID, userID,
	).Scan(&habit.ID, &habit.UserID, &habit.Name, &habit.CategoryID, &habit.Color,
		&habit.Icon, &habit.Frequency, &habit.TargetCount, &habit.Archived, &habit.CreatedAt, &habit.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, habitErrors.ErrHabitNotFound
		}
		return nil, err
	}
	return &habit, nil
}

func (r *HabitRepository) Update(habit domain.Habit) error {
	result, err := r.db.Exec(
		`UPDATE habits
        SET name = $3, category_id = $4, color = $5, icon = $6, frequency = $7, target_count = $8, updated_at = NOW()
        WHERE id = $1 AND user_id = $2`,
		habit.ID, habit.UserID, habit.Name, habit.CategoryID, habit.Color,
		habit.Icon, habit.Frequency, habit.TargetCount,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *HabitRepository) SetArchived(habitID, userID string, archived bool) error {
	result, err := r.db.Exec(
		`UPDATE habits SET archived = $3, updated_at = NOW() WHERE id = $1 AND user_id = $2`,
		habitID, userID, archived,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return habitErrors.ErrHabitNotFound
	}
	return nil
}
