package infrastructure

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/adomanski/TrackKit/internal/finance/domain"
	financeErrors "github.com/adomanski/TrackKit/internal/finance/errors"
)

type PersonalTransactionRepository struct {
	db *sql.DB
}

func NewPersonalTransactionRepository(db *sql.DB) *PersonalTransactionRepository {
	return &PersonalTransactionRepository{db: db}
}

func (r *PersonalTransactionRepository) Save(transaction domain.Transaction) error {
	_, err := r.db.Exec(
		`INSERT INTO transactions
        (id, user_id, amount, type, category, description, date, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())`,
		transaction.ID, transaction.UserID, transaction.Amount, transaction.Type,
		transaction.Category, transaction.Description, transaction.Date,
	)
	return err
}

// FindByUser pages through the user's transactions, newest first, optionally
// narrowed to one type and a date range. Zero time bounds mean unbounded.
func (r *PersonalTransactionRepository) FindByUser(userID, transactionType string, startDate, endDate time.Time, limit, page int) ([]domain.Transaction, error) {
	query := `SELECT id, user_id, amount, type, category, description, date, created_at, updated_at
        FROM transactions WHERE user_id = $1`
	args := []interface{}{userID}

	if transactionType != "" {
		args = append(args, transactionType)
		query += ` AND type = $2`
	}
	if !startDate.IsZero() {
		args = append(args, startDate)
		query += ` AND date >= $` + strconv.Itoa(len(args))
	}
	if !endDate.IsZero() {
		args = append(args, endDate)
		query += ` AND date <= $` + strconv.Itoa(len(args))
	}

	args = append(args, limit)
	query += ` ORDER BY date DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, (page-1)*limit)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *PersonalTransactionRepository) FindByID(transactionID, userID string) (*domain.Transaction, error) {
	var transaction domain.Transaction
	err := r.db.QueryRow(
		`SELECT id, user_id, amount, type, category, description, date, created_at, updated_at
        FROM transactions WHERE id = $1 AND user_id = $2`,
		transactionID, userID,
	).Scan(&transaction.ID, &transaction.UserID, &transaction.Amount, &transaction.Type,
		&transaction.Category, &transaction.Description, &transaction.Date,
		&transaction.CreatedAt, &transaction.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrTransactionNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *PersonalTransactionRepository) Update(transaction domain.Transaction) error {
	result, err := r.db.Exec(
		`UPDATE transactions
        SET amount = $3, type = $4, category = $5, description = $6, date = $7, updated_at = NOW()
        WHERE id = $1 AND user_id = $2`,
		transaction.ID, transaction.UserID, transaction.Amount, transaction.Type,
		transaction.Category, transaction.Description, transaction.Date,
	)
	if err != nil {
		return err
	}
	return requireTransactionRow(result)
}

// Delete removes the row for good. There is no archived state to fall back
// to, so a re-created transaction gets a fresh id.
func (r *PersonalTransactionRepository) Delete(transactionID, userID string) error {
	result, err := r.db.Exec(
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`,
		transactionID, userID,
	)
	if err != nil {
		return err
	}
	return requireTransactionRow(result)
}

func (r *PersonalTransactionRepository) GetTransactionsInDateRange(userID string, startDate, endDate time.Time) ([]domain.Transaction, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, amount, type, category, description, date, created_at, updated_at
        FROM transactions WHERE user_id = $1 AND date >= $2 AND date < $3
        ORDER BY date DESC`,
		userID, startDate, endDate,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	for rows.Next() {
		var transaction domain.Transaction
		if err := rows.Scan(&transaction.ID, &transaction.UserID, &transaction.Amount, &transaction.Type,
			&transaction.Category, &transaction.Description, &transaction.Date,
			&transaction.CreatedAt, &transaction.UpdatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

func requireTransactionRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return financeErrors.ErrTransactionNotFound
	}
	return nil
}
