package infrastructure

import (
	"database/sql"
	"errors"
	"time"

	"github.com/adomanski/TrackKit/internal/habit/domain"
	habitErrors "github.com/adomanski/TrackKit/internal/habit/errors"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

type HabitLogRepository struct {
	db *sql.DB
}

func NewHabitLogRepository(db *sql.DB) *HabitLogRepository {
	return &HabitLogRepository{db: db}
}

// Save inserts one completion row. The (habit_id, user_id, log_date) unique
// constraint is the single source of truth for duplicates; a violation is
// translated to ErrDuplicateLog here so callers never see driver errors.
func (r *HabitLogRepository) Save(log domain.HabitLog) error {
	_, err := r.db.Exec(
		`INSERT INTO habit_logs (id, habit_id, user_id, log_date, completed, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())`,
		log.ID, log.HabitID, log.UserID, log.Date, log.Completed,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return habitErrors.ErrDuplicateLog
		}
		return err
	}
	return nil
}

func (r *HabitLogRepository) FindByHabit(habitID, userID string) ([]domain.HabitLog, error) {
	rows, err := r.db.Query(
		`SELECT id, habit_id, user_id, log_date, completed, created_at
        FROM habit_logs WHERE habit_id = $1 AND user_id = $2
        ORDER BY log_date DESC`,
		habitID, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLogs(rows)
}

func (r *HabitLogRepository) FindByUserSince(userID string, since time.Time) ([]domain.HabitLog, error) {
	rows, err := r.db.Query(
		`SELECT id, habit_id, user_id, log_date, completed, created_at
        FROM habit_logs WHERE user_id = $1 AND log_date >= $2
        ORDER BY log_date DESC`,
		userID, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLogs(rows)
}

func (r *HabitLogRepository) Delete(habitID, userID string, date time.Time) error {
	result, err := r.db.Exec(
		`DELETE FROM habit_logs WHERE habit_id = $1 AND user_id = $2 AND log_date = $3`,
		habitID, userID, date,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return habitErrors.ErrLogNotFound
	}
	return nil
}

func scanLogs(rows *sql.Rows) ([]domain.HabitLog, error) {
	var logs []domain.HabitLog
	for rows.Next() {
		var log domain.HabitLog
		if err := rows.Scan(&log.ID, &log.HabitID, &log.UserID, &log.Date, &log.Completed, &log.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
