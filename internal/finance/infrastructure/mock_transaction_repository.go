package infrastructure

import (
	"sort"
	"time"

	"github.com/adomanski/TrackKit/internal/finance/domain"
	financeErrors "github.com/adomanski/TrackKit/internal/finance/errors"
)

// MockTransactionRepository is an in-memory TransactionRepository for tests.
type MockTransactionRepository struct {
	Transactions map[string]domain.Transaction
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{Transactions: make(map[string]domain.Transaction)}
}

func (m *MockTransactionRepository) Save(transaction domain.Transaction) error {
	m.Transactions[transaction.ID] = transaction
	return nil
}

func (m *MockTransactionRepository) FindByUser(userID, transactionType string, startDate, endDate time.Time, limit, page int) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID {
			continue
		}
		if transactionType != "" && transaction.Type != transactionType {
			continue
		}
		if !startDate.IsZero() && transaction.Date.Before(startDate) {
			continue
		}
		if !endDate.IsZero() && transaction.Date.After(endDate) {
			continue
		}
		transactions = append(transactions, transaction)
	}
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})

	offset := (page - 1) * limit
	if offset >= len(transactions) {
		return nil, nil
	}
	end := offset + limit
	if end > len(transactions) {
		end = len(transactions)
	}
	return transactions[offset:end], nil
}

func (m *MockTransactionRepository) FindByID(transactionID, userID string) (*domain.Transaction, error) {
	transaction, ok := m.Transactions[transactionID]
	if !ok || transaction.UserID != userID {
		return nil, financeErrors.ErrTransactionNotFound
	}
	return &transaction, nil
}

func (m *MockTransactionRepository) Update(transaction domain.Transaction) error {
	if _, ok := m.Transactions[transaction.ID]; !ok {
		return financeErrors.ErrTransactionNotFound
	}
	m.Transactions[transaction.ID] = transaction
	return nil
}

func (m *MockTransactionRepository) Delete(transactionID, userID string) error {
	transaction, ok := m.Transactions[transactionID]
	if !ok || transaction.UserID != userID {
		return financeErrors.ErrTransactionNotFound
	}
	delete(m.Transactions, transactionID)
	return nil
}

func (m *MockTransactionRepository) GetTransactionsInDateRange(userID string, startDate, endDate time.Time) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID {
			continue
		}
		if transaction.Date.Before(startDate) || !transaction.Date.Before(endDate) {
			continue
		}
		transactions = append(transactions, transaction)
	}
	return transactions, nil
}
