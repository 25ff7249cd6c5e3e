package application

import (
	"time"

	"github.com/adomanski/TrackKit/internal/finance/domain"
	"github.com/adomanski/TrackKit/internal/user"
	"github.com/google/uuid"
)

type ProfileServiceInterface interface {
	GetProfile(userID string) (*user.Profile, error)
}

type PersonalTransactionService struct {
	repo           domain.TransactionRepository
	profileService ProfileServiceInterface
}

func NewPersonalTransactionService(repo domain.TransactionRepository, profileService ProfileServiceInterface) *PersonalTransactionService {
	return &PersonalTransactionService{repo: repo, profileService: profileService}
}

// TransactionTotals are the headline numbers of the dashboard, derived from
// whatever slice of transactions the caller selected.
type TransactionTotals struct {
	IncomeTotal  float64 `json:"income_total"`
	ExpenseTotal float64 `json:"expense_total"`
	Balance      float64 `json:"balance"`
}

type TransactionSummary struct {
	Year         int
	IncomeTotal  float64
	ExpenseTotal float64
	Months       map[string]MonthSummary
}

type MonthSummary struct {
	IncomeTotal  float64
	ExpenseTotal float64
	Weeks        []WeekSummary
}

type WeekSummary struct {
	Week         int
	IncomeTotal  float64
	ExpenseTotal float64
}

// BudgetStatus compares the current month's spending against the budget the
// user set on their profile. A zero budget means the user never set one.
type BudgetStatus struct {
	MonthlyBudget  float64 `json:"monthly_budget"`
	SpentThisMonth float64 `json:"spent_this_month"`
	Remaining      float64 `json:"remaining"`
	OverBudget     bool    `json:"over_budget"`
}

func (s *PersonalTransactionService) CreateTransaction(transaction *domain.Transaction) error {
	transaction.ID = uuid.NewString()
	transaction.RoundToTwoDecimalPlaces()
	if err := transaction.Validate(); err != nil {
		return err
	}
	return s.repo.Save(*transaction)
}

func (s *PersonalTransactionService) UpdateTransaction(transaction *domain.Transaction) error {
	if _, err := s.repo.FindByID(transaction.ID, transaction.UserID); err != nil {
		return err
	}
	transaction.RoundToTwoDecimalPlaces()
	if err := transaction.Validate(); err != nil {
		return err
	}
	return s.repo.Update(*transaction)
}

// DeleteTransaction removes the row permanently. Transactions have no archive
// state the way habits do.
func (s *PersonalTransactionService) DeleteTransaction(transactionID, userID string) error {
	return s.repo.Delete(transactionID, userID)
}

func (s *PersonalTransactionService) GetUserTransactions(userID, transactionType string, startDate, endDate time.Time, limit, page int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}

	transactions, err := s.repo.FindByUser(userID, transactionType, startDate, endDate, limit, page)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		return []domain.Transaction{}, nil
	}
	return transactions, nil
}

// GetTransactionTotals sums income and expense over the user's transactions
// in the range and derives the balance. Totals are recomputed on each call,
// never stored. endDate is an inclusive calendar date, the same contract the
// transaction listing uses for its end_date filter.
func (s *PersonalTransactionService) GetTransactionTotals(userID string, startDate, endDate time.Time) (TransactionTotals, error) {
	transactions, err := s.repo.GetTransactionsInDateRange(userID, startDate, endDate.AddDate(0, 0, 1))
	if err != nil {
		return TransactionTotals{}, err
	}

	var totals TransactionTotals
	for _, transaction := range transactions {
		switch transaction.Type {
		case domain.TypeIncome:
			totals.IncomeTotal += transaction.Amount
		case domain.TypeExpense:
			totals.ExpenseTotal += transaction.Amount
		}
	}
	totals.Balance = totals.IncomeTotal - totals.ExpenseTotal
	return totals, nil
}

// GetTransactionSummary groups the range into a year/month/ISO-week rollup.
// Like the totals, endDate is inclusive.
func (s *PersonalTransactionService) GetTransactionSummary(userID string, startDate, endDate time.Time) (map[int]TransactionSummary, error) {
	transactions, err := s.repo.GetTransactionsInDateRange(userID, startDate, endDate.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	summary := make(map[int]TransactionSummary)

	for _, transaction := range transactions {
		year := transaction.Date.Year()
		month := transaction.Date.Month().String()
		_, week := transaction.Date.ISOWeek()

		if _, exists := summary[year]; !exists {
			summary[year] = TransactionSummary{
				Year:   year,
				Months: make(map[string]MonthSummary),
			}
		}
		yearSummary := summary[year]

		if _, exists := yearSummary.Months[month]; !exists {
			yearSummary.Months[month] = MonthSummary{Weeks: []WeekSummary{}}
		}
		monthSummary := yearSummary.Months[month]

		if transaction.Type == domain.TypeIncome {
			yearSummary.IncomeTotal += transaction.Amount
			monthSummary.IncomeTotal += transaction.Amount
		} else if transaction.Type == domain.TypeExpense {
			yearSummary.ExpenseTotal += transaction.Amount
			monthSummary.ExpenseTotal += transaction.Amount
		}

		found := false
		for i, weekSummary := range monthSummary.Weeks {
			if weekSummary.Week == week {
				if transaction.Type == domain.TypeIncome {
					monthSummary.Weeks[i].IncomeTotal += transaction.Amount
				} else if transaction.Type == domain.TypeExpense {
					monthSummary.Weeks[i].ExpenseTotal += transaction.Amount
				}
				found = true
				break
			}
		}
		if !found {
			weekSummary := WeekSummary{Week: week}
			if transaction.Type == domain.TypeIncome {
				weekSummary.IncomeTotal = transaction.Amount
			} else if transaction.Type == domain.TypeExpense {
				weekSummary.ExpenseTotal = transaction.Amount
			}
			monthSummary.Weeks = append(monthSummary.Weeks, weekSummary)
		}

		yearSummary.Months[month] = monthSummary
		summary[year] = yearSummary
	}

	return summary, nil
}

// GetBudgetStatus measures the current calendar month's expenses against the
// profile's monthly budget, using the instant the caller captured.
func (s *PersonalTransactionService) GetBudgetStatus(userID string, now time.Time) (BudgetStatus, error) {
	profile, err := s.profileService.GetProfile(userID)
	if err != nil {
		return BudgetStatus{}, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	transactions, err := s.repo.GetTransactionsInDateRange(userID, monthStart, monthEnd)
	if err != nil {
		return BudgetStatus{}, err
	}

	status := BudgetStatus{MonthlyBudget: profile.MonthlyBudget}
	for _, transaction := range transactions {
		if transaction.Type == domain.TypeExpense {
			status.SpentThisMonth += transaction.Amount
		}
	}
	status.Remaining = status.MonthlyBudget - status.SpentThisMonth
	status.OverBudget = status.MonthlyBudget > 0 && status.SpentThisMonth > status.MonthlyBudget
	return status, nil
}
