package domain

import (
	"math"
	"time"

	"github.com/adomanski/TrackKit/internal/finance/errors"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"

	maxDescriptionLength = 200
)

// Categories form a closed set shared by every user; there are no
// user-defined categories.
var transactionCategories = map[string]bool{
	"food":          true,
	"transport":     true,
	"housing":       true,
	"entertainment": true,
	"health":        true,
	"shopping":      true,
	"salary":        true,
	"other":         true,
}

type TransactionRepository interface {
	Save(transaction Transaction) error
	FindByUser(userID, transactionType string, startDate, endDate time.Time, limit, page int) ([]Transaction, error)
	FindByID(transactionID, userID string) (*Transaction, error)
	Update(transaction Transaction) error
	Delete(transactionID, userID string) error
	GetTransactionsInDateRange(userID string, startDate, endDate time.Time) ([]Transaction, error)
}

type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func IsValidCategory(category string) bool {
	return transactionCategories[category]
}

func TransactionCategories() []string {
	return []string{"food", "transport", "housing", "entertainment", "health", "shopping", "salary", "other"}
}

func (t *Transaction) Validate() error {
	if t.Amount <= 0 {
		return errors.NewValidationError("Amount must be greater than zero")
	}
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return errors.NewValidationError("Type must be 'income' or 'expense'")
	}
	if !IsValidCategory(t.Category) {
		return errors.NewValidationError("Unknown category: " + t.Category)
	}
	if len(t.Description) > maxDescriptionLength {
		return errors.NewValidationError("Description must be of length less than 200")
	}
	if t.Date.IsZero() {
		return errors.NewValidationError("Date is required")
	}
	return nil
}

func (t *Transaction) RoundToTwoDecimalPlaces() {
	t.Amount = math.Round(t.Amount*100) / 100
}
