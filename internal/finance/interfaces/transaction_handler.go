package interfaces

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/adomanski/TrackKit/internal/finance/application"
	"github.com/adomanski/TrackKit/internal/finance/domain"
	financeErrors "github.com/adomanski/TrackKit/internal/finance/errors"
	val "github.com/adomanski/TrackKit/internal/validator"
	"github.com/go-playground/validator/v10"
)

type TransactionServiceInterface interface {
	CreateTransaction(transaction *domain.Transaction) error
	UpdateTransaction(transaction *domain.Transaction) error
	DeleteTransaction(transactionID, userID string) error
	GetUserTransactions(userID, transactionType string, startDate, endDate time.Time, limit, page int) ([]domain.Transaction, error)
	GetTransactionTotals(userID string, startDate, endDate time.Time) (application.TransactionTotals, error)
	GetTransactionSummary(userID string, startDate, endDate time.Time) (map[int]application.TransactionSummary, error)
	GetBudgetStatus(userID string, now time.Time) (application.BudgetStatus, error)
}

type PersonalTransactionHandler struct {
	service      TransactionServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewPersonalTransactionHandler(
	service TransactionServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *PersonalTransactionHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil || respondError == nil {
		log.Fatal("Respond functions must not be nil")
		return nil
	}
	return &PersonalTransactionHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type transactionRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Type        string  `json:"type" validate:"required,oneof=income expense"`
	Category    string  `json:"category" validate:"required,oneof=food transport housing entertainment health shopping salary other"`
	Description string  `json:"description" validate:"max=200"`
	Date        string  `json:"date" validate:"required,dateonly"`
}

func validateStruct(v any) error {
	if err := val.Validate.Struct(v); err != nil {
		var errs []string
		for _, e := range err.(validator.ValidationErrors) {
			errs = append(errs, fieldErrorToString(e))
		}
		return fmt.Errorf("invalid input: %s", strings.Join(errs, "; "))
	}
	return nil
}

func fieldErrorToString(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "dateonly":
		return fmt.Sprintf("%s must be in YYYY-MM-DD format", e.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than zero", e.Field())
	case "max":
		return fmt.Sprintf("%s is too long", e.Field())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}

func (h *PersonalTransactionHandler) decodeTransaction(w http.ResponseWriter, r *http.Request, userID string) (*domain.Transaction, bool) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if err := validateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return nil, false
	}

	return &domain.Transaction{
		UserID:      userID,
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	}, true
}

func (h *PersonalTransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	transaction, ok := h.decodeTransaction(w, r, userID)
	if !ok {
		return
	}

	if err := h.service.CreateTransaction(transaction); err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Println("Error during transaction creation:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully created.",
		"data":    transaction,
	})
}

func (h *PersonalTransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	transaction, ok := h.decodeTransaction(w, r, userID)
	if !ok {
		return
	}
	transaction.ID = r.PathValue("transactionID")

	if err := h.service.UpdateTransaction(transaction); err != nil {
		switch {
		case errors.Is(err, financeErrors.ErrTransactionNotFound):
			h.respondError(w, http.StatusNotFound, "Transaction not found")
		case financeErrors.IsValidationError(err):
			h.respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Println("Error during transaction update:", err.Error())
			h.respondError(w, http.StatusInternalServerError, "Failed to update transaction")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   transaction,
	})
}

func (h *PersonalTransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.service.DeleteTransaction(r.PathValue("transactionID"), userID); err != nil {
		if errors.Is(err, financeErrors.ErrTransactionNotFound) {
			h.respondError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		log.Println("Error during transaction deletion:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction deleted.",
	})
}

func (h *PersonalTransactionHandler) GetUserTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := r.URL.Query()
	transactionType := query.Get("type")
	if transactionType != "" && transactionType != domain.TypeIncome && transactionType != domain.TypeExpense {
		h.respondError(w, http.StatusBadRequest, "type must be 'income' or 'expense'")
		return
	}

	startDate, endDate, ok := h.parseDateRange(w, query.Get("start_date"), query.Get("end_date"))
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(query.Get("limit"))
	page, _ := strconv.Atoi(query.Get("page"))

	transactions, err := h.service.GetUserTransactions(userID, transactionType, startDate, endDate, limit, page)
	if err != nil {
		log.Println("Error fetching transactions:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   transactions,
	})
}

// GetTransactionTotals serves the income/expense/balance header. The default
// range is all time; start_date and end_date narrow it.
func (h *PersonalTransactionHandler) GetTransactionTotals(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := r.URL.Query()
	startDate, endDate, ok := h.parseDateRange(w, query.Get("start_date"), query.Get("end_date"))
	if !ok {
		return
	}
	// The service treats endDate as inclusive, so "today" covers transactions
	// dated today.
	if startDate.IsZero() {
		startDate = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if endDate.IsZero() {
		endDate = time.Now()
	}

	totals, err := h.service.GetTransactionTotals(userID, startDate, endDate)
	if err != nil {
		log.Println("Error computing totals:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to compute totals")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   totals,
	})
}

func (h *PersonalTransactionHandler) GetTransactionSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := r.URL.Query()
	startDate, endDate, ok := h.parseDateRange(w, query.Get("start_date"), query.Get("end_date"))
	if !ok {
		return
	}
	if startDate.IsZero() || endDate.IsZero() {
		h.respondError(w, http.StatusBadRequest, "start_date and end_date are required")
		return
	}

	summary, err := h.service.GetTransactionSummary(userID, startDate, endDate)
	if err != nil {
		log.Println("Error computing summary:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to compute summary")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

func (h *PersonalTransactionHandler) GetBudgetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	status, err := h.service.GetBudgetStatus(userID, time.Now())
	if err != nil {
		log.Println("Error computing budget status:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to compute budget status")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   status,
	})
}

// GetCategories serves the closed category list the client builds its
// dropdowns from.
func (h *PersonalTransactionHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   domain.TransactionCategories(),
	})
}

func (h *PersonalTransactionHandler) parseDateRange(w http.ResponseWriter, start, end string) (time.Time, time.Time, bool) {
	var startDate, endDate time.Time
	var err error

	if start != "" {
		startDate, err = time.Parse("2006-01-02", start)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "start_date must be in YYYY-MM-DD format")
			return time.Time{}, time.Time{}, false
		}
	}
	if end != "" {
		endDate, err = time.Parse("2006-01-02", end)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "end_date must be in YYYY-MM-DD format")
			return time.Time{}, time.Time{}, false
		}
	}
	return startDate, endDate, true
}
