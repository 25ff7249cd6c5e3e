package interfaces

import (
	"time"

	"github.com/adomanski/TrackKit/internal/finance/application"
	"github.com/adomanski/TrackKit/internal/finance/domain"
)

type MockTransactionService struct {
	CreateTransactionFn     func(transaction *domain.Transaction) error
	UpdateTransactionFn     func(transaction *domain.Transaction) error
	DeleteTransactionFn     func(transactionID, userID string) error
	GetUserTransactionsFn   func(userID, transactionType string, startDate, endDate time.Time, limit, page int) ([]domain.Transaction, error)
	GetTransactionTotalsFn  func(userID string, startDate, endDate time.Time) (application.TransactionTotals, error)
	GetTransactionSummaryFn func(userID string, startDate, endDate time.Time) (map[int]application.TransactionSummary, error)
	GetBudgetStatusFn       func(userID string, now time.Time) (application.BudgetStatus, error)
}

func (m *MockTransactionService) CreateTransaction(transaction *domain.Transaction) error {
	if m.CreateTransactionFn != nil {
		return m.CreateTransactionFn(transaction)
	}
	return nil
}

func (m *MockTransactionService) UpdateTransaction(transaction *domain.Transaction) error {
	if m.UpdateTransactionFn != nil {
		return m.UpdateTransactionFn(transaction)
	}
	return nil
}

func (m *MockTransactionService) DeleteTransaction(transactionID, userID string) error {
	if m.DeleteTransactionFn != nil {
		return m.DeleteTransactionFn(transactionID, userID)
	}
	return nil
}

func (m *MockTransactionService) GetUserTransactions(userID, transactionType string, startDate, endDate time.Time, limit, page int) ([]domain.Transaction, error) {
	if m.GetUserTransactionsFn != nil {
		return m.GetUserTransactionsFn(userID, transactionType, startDate, endDate, limit, page)
	}
	return []domain.Transaction{}, nil
}

func (m *MockTransactionService) GetTransactionTotals(userID string, startDate, endDate time.Time) (application.TransactionTotals, error) {
	if m.GetTransactionTotalsFn != nil {
		return m.GetTransactionTotalsFn(userID, startDate, endDate)
	}
	return application.TransactionTotals{}, nil
}

func (m *MockTransactionService) GetTransactionSummary(userID string, startDate, endDate time.Time) (map[int]application.TransactionSummary, error) {
	if m.GetTransactionSummaryFn != nil {
		return m.GetTransactionSummaryFn(userID, startDate, endDate)
	}
	return map[int]application.TransactionSummary{}, nil
}

func (m *MockTransactionService) GetBudgetStatus(userID string, now time.Time) (application.BudgetStatus, error) {
	if m.GetBudgetStatusFn != nil {
		return m.GetBudgetStatusFn(userID, now)
	}
	return application.BudgetStatus{}, nil
}
