package application

import (
	"testing"
	"time"

	"github.com/adomanski/TrackKit/internal/finance/domain"
	financeErrors "github.com/adomanski/TrackKit/internal/finance/errors"
	"github.com/adomanski/TrackKit/internal/finance/infrastructure"
	"github.com/adomanski/TrackKit/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProfileService struct {
	profiles map[string]*user.Profile
}

func (m *mockProfileService) GetProfile(userID string) (*user.Profile, error) {
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, user.ErrProfileNotFound
	}
	return profile, nil
}

func newTestTransactionService(budget float64) (*PersonalTransactionService, *infrastructure.MockTransactionRepository) {
	repo := infrastructure.NewMockTransactionRepository()
	profiles := &mockProfileService{profiles: map[string]*user.Profile{
		"user-1": {UserID: "user-1", DisplayName: "Tester", MonthlyBudget: budget},
	}}
	return NewPersonalTransactionService(repo, profiles), repo
}

func validTransaction(amount float64, transactionType string, date time.Time) *domain.Transaction {
	return &domain.Transaction{
		UserID:      "user-1",
		Amount:      amount,
		Type:        transactionType,
		Category:    "food",
		Description: "Groceries",
		Date:        date,
	}
}

func TestCreateTransaction(t *testing.T) {
	service, repo := newTestTransactionService(0)

	transaction := validTransaction(19.999, domain.TypeExpense, time.Now())
	require.NoError(t, service.CreateTransaction(transaction))

	assert.NotEmpty(t, transaction.ID)
	assert.Equal(t, 20.0, transaction.Amount, "amounts round to two decimal places")
	assert.Len(t, repo.Transactions, 1)
}

func TestCreateTransaction_Validation(t *testing.T) {
	service, _ := newTestTransactionService(0)
	now := time.Now()

	cases := []struct {
		name        string
		transaction *domain.Transaction
	}{
		{"zero amount", validTransaction(0, domain.TypeExpense, now)},
		{"negative amount", validTransaction(-10, domain.TypeExpense, now)},
		{"bad type", validTransaction(10, "transfer", now)},
		{"zero date", validTransaction(10, domain.TypeExpense, time.Time{})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := service.CreateTransaction(tc.transaction)
			assert.True(t, financeErrors.IsValidationError(err))
		})
	}

	t.Run("unknown category", func(t *testing.T) {
		transaction := validTransaction(10, domain.TypeExpense, now)
		transaction.Category = "gadgets"
		err := service.CreateTransaction(transaction)
		assert.True(t, financeErrors.IsValidationError(err))
	})
}

func TestUpdateTransaction_OwnershipEnforced(t *testing.T) {
	service, _ := newTestTransactionService(0)

	transaction := validTransaction(10, domain.TypeExpense, time.Now())
	require.NoError(t, service.CreateTransaction(transaction))

	hijacked := *transaction
	hijacked.UserID = "user-2"
	hijacked.Amount = 999

	err := service.UpdateTransaction(&hijacked)
	assert.ErrorIs(t, err, financeErrors.ErrTransactionNotFound)
}

func TestDeleteTransaction_IsPermanent(t *testing.T) {
	service, repo := newTestTransactionService(0)

	transaction := validTransaction(10, domain.TypeExpense, time.Now())
	require.NoError(t, service.CreateTransaction(transaction))

	require.NoError(t, service.DeleteTransaction(transaction.ID, "user-1"))
	assert.Empty(t, repo.Transactions)
	assert.ErrorIs(t, service.DeleteTransaction(transaction.ID, "user-1"), financeErrors.ErrTransactionNotFound)
}

func TestGetTransactionTotals(t *testing.T) {
	service, _ := newTestTransactionService(0)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	require.NoError(t, service.CreateTransaction(validTransaction(100, domain.TypeIncome, now)))
	require.NoError(t, service.CreateTransaction(validTransaction(40, domain.TypeExpense, now)))
	require.NoError(t, service.CreateTransaction(validTransaction(10, domain.TypeExpense, now.AddDate(0, 0, -1))))

	totals, err := service.GetTransactionTotals("user-1", now.AddDate(0, 0, -7), now.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, 100.0, totals.IncomeTotal)
	assert.Equal(t, 50.0, totals.ExpenseTotal)
	assert.Equal(t, 50.0, totals.Balance)
}

func TestGetTransactionTotals_IncludesEndDate(t *testing.T) {
	service, _ := newTestTransactionService(0)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	// Dated exactly on the end of the range.
	require.NoError(t, service.CreateTransaction(validTransaction(100, domain.TypeIncome, end)))

	// The listing and the totals agree on the boundary: a transaction dated
	// end_date shows up in both.
	listed, err := service.GetUserTransactions("user-1", "", start, end, 10, 1)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	totals, err := service.GetTransactionTotals("user-1", start, end)
	require.NoError(t, err)
	assert.Equal(t, 100.0, totals.IncomeTotal)

	summary, err := service.GetTransactionSummary("user-1", start, end)
	require.NoError(t, err)
	assert.Equal(t, 100.0, summary[2024].IncomeTotal)
}

func TestGetUserTransactions_FilterAndPaging(t *testing.T) {
	service, _ := newTestTransactionService(0)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for day := 0; day < 5; day++ {
		require.NoError(t, service.CreateTransaction(validTransaction(10, domain.TypeExpense, base.AddDate(0, 0, day))))
	}
	require.NoError(t, service.CreateTransaction(validTransaction(500, domain.TypeIncome, base)))

	expenses, err := service.GetUserTransactions("user-1", domain.TypeExpense, time.Time{}, time.Time{}, 3, 1)
	require.NoError(t, err)
	assert.Len(t, expenses, 3)
	for _, transaction := range expenses {
		assert.Equal(t, domain.TypeExpense, transaction.Type)
	}

	secondPage, err := service.GetUserTransactions("user-1", domain.TypeExpense, time.Time{}, time.Time{}, 3, 2)
	require.NoError(t, err)
	assert.Len(t, secondPage, 2)

	empty, err := service.GetUserTransactions("user-without-data", "", time.Time{}, time.Time{}, 10, 1)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestGetTransactionSummary(t *testing.T) {
	service, _ := newTestTransactionService(0)

	january := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	february := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, service.CreateTransaction(validTransaction(1000, domain.TypeIncome, january)))
	require.NoError(t, service.CreateTransaction(validTransaction(200, domain.TypeExpense, january)))
	require.NoError(t, service.CreateTransaction(validTransaction(300, domain.TypeExpense, february)))

	summary, err := service.GetTransactionSummary("user-1",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	yearSummary, ok := summary[2024]
	require.True(t, ok)
	assert.Equal(t, 1000.0, yearSummary.IncomeTotal)
	assert.Equal(t, 500.0, yearSummary.ExpenseTotal)
	assert.Equal(t, 1000.0, yearSummary.Months["January"].IncomeTotal)
	assert.Equal(t, 300.0, yearSummary.Months["February"].ExpenseTotal)
}

func TestGetBudgetStatus(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("under budget", func(t *testing.T) {
		service, _ := newTestTransactionService(1000)
		require.NoError(t, service.CreateTransaction(validTransaction(400, domain.TypeExpense, now)))
		// Last month's spending does not count against this month.
		require.NoError(t, service.CreateTransaction(validTransaction(900, domain.TypeExpense, now.AddDate(0, -1, 0))))

		status, err := service.GetBudgetStatus("user-1", now)
		require.NoError(t, err)
		assert.Equal(t, 1000.0, status.MonthlyBudget)
		assert.Equal(t, 400.0, status.SpentThisMonth)
		assert.Equal(t, 600.0, status.Remaining)
		assert.False(t, status.OverBudget)
	})

	t.Run("over budget", func(t *testing.T) {
		service, _ := newTestTransactionService(100)
		require.NoError(t, service.CreateTransaction(validTransaction(250, domain.TypeExpense, now)))

		status, err := service.GetBudgetStatus("user-1", now)
		require.NoError(t, err)
		assert.True(t, status.OverBudget)
		assert.Equal(t, -150.0, status.Remaining)
	})

	t.Run("no budget set", func(t *testing.T) {
		service, _ := newTestTransactionService(0)
		require.NoError(t, service.CreateTransaction(validTransaction(250, domain.TypeExpense, now)))

		status, err := service.GetBudgetStatus("user-1", now)
		require.NoError(t, err)
		assert.False(t, status.OverBudget, "a zero budget never reports overspend")
	})
}
