package interfaces

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/adomanski/TrackKit/internal/habit/application"
	"github.com/adomanski/TrackKit/internal/habit/domain"
	habitErrors "github.com/adomanski/TrackKit/internal/habit/errors"
	val "github.com/adomanski/TrackKit/internal/validator"
	"github.com/go-playground/validator/v10"
)

type HabitServiceInterface interface {
	CreateHabit(habit *domain.Habit) error
	UpdateHabit(habit *domain.Habit) error
	ArchiveHabit(habitID, userID string) error
	RestoreHabit(habitID, userID string) error
	GetUserHabits(userID string, includeArchived bool, now time.Time) ([]domain.Habit, error)
	GetDashboard(userID string, now time.Time) ([]domain.Habit, application.DashboardMetrics, map[string]int, error)
}

type HabitLogServiceInterface interface {
	LogCompletion(habitID, userID string, date time.Time) (*domain.HabitLog, error)
	DeleteLog(habitID, userID string, date time.Time) error
	GetHabitLogs(habitID, userID string) ([]domain.HabitLog, error)
}

type HabitHandler struct {
	service      HabitServiceInterface
	logService   HabitLogServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewHabitHandler(
	service HabitServiceInterface,
	logService HabitLogServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *HabitHandler {
	if service == nil || logService == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil || respondError == nil {
		log.Fatal("Respond functions must not be nil")
		return nil
	}
	return &HabitHandler{
		service:      service,
		logService:   logService,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type habitRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=100"`
	CategoryID  int    `json:"category_id" validate:"required,gt=0"`
	Color       string `json:"color" validate:"max=20"`
	Icon        string `json:"icon" validate:"max=50"`
	Frequency   string `json:"frequency" validate:"required,oneof=daily weekly"`
	TargetCount int    `json:"target_count" validate:"omitempty,gte=1"`
}

type logRequest struct {
	Date string `json:"date" validate:"omitempty,dateonly"`
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
	case "notblank":
		return fmt.Sprintf("%s must not be blank", e.Field())
	case "dateonly":
		return fmt.Sprintf("%s must be in YYYY-MM-DD format", e.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s is too long", e.Field())
	case "gt", "gte":
		return fmt.Sprintf("%s must be positive", e.Field())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}

// HandleGetDashboard serves the habit list together with its derived metrics
// and per-habit streaks in one payload, recomputed on every call.
func (h *HabitHandler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	habits, metrics, streaks, err := h.service.GetDashboard(userID, time.Now())
	if err != nil {
		log.Println("Error fetching dashboard:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"habits":  habits,
			"metrics": metrics,
			"streaks": streaks,
		},
	})
}

func (h *HabitHandler) HandleListHabits(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	includeArchived := r.URL.Query().Get("include_archived") == "true"
	habits, err := h.service.GetUserHabits(userID, includeArchived, time.Now())
	if err != nil {
		log.Println("Error fetching habits:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch habits")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   habits,
	})
}

func (h *HabitHandler) HandleCreateHabit(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req habitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	habit := domain.Habit{
		UserID:      userID,
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		Color:       req.Color,
		Icon:        req.Icon,
		Frequency:   req.Frequency,
		TargetCount: req.TargetCount,
	}
	if habit.TargetCount == 0 {
		habit.TargetCount = 1
	}

	if err := h.service.CreateHabit(&habit); err != nil {
		if habitErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Println("Error during habit creation:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to create habit")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Habit successfully created.",
		"data":    habit,
	})
}

func (h *HabitHandler) HandleUpdateHabit(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req habitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	habit := domain.Habit{
		ID:          r.PathValue("habitID"),
		UserID:      userID,
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		Color:       req.Color,
		Icon:        req.Icon,
		Frequency:   req.Frequency,
		TargetCount: req.TargetCount,
	}
	if habit.TargetCount == 0 {
		habit.TargetCount = 1
	}

	if err := h.service.UpdateHabit(&habit); err != nil {
		switch {
		case errors.Is(err, habitErrors.ErrHabitNotFound):
			h.respondError(w, http.StatusNotFound, "Habit not found")
		case habitErrors.IsValidationError(err):
			h.respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Println("Error during habit update:", err.Error())
			h.respondError(w, http.StatusInternalServerError, "Failed to update habit")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   habit,
	})
}

// HandleArchiveHabit is the delete endpoint. The habit row survives and keeps
// its logs; it just disappears from active listings.
func (h *HabitHandler) HandleArchiveHabit(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, true, "Habit archived.")
}

func (h *HabitHandler) HandleRestoreHabit(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, false, "Habit restored.")
}

func (h *HabitHandler) setArchived(w http.ResponseWriter, r *http.Request, archived bool, message string) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var err error
	if archived {
		err = h.service.ArchiveHabit(r.PathValue("habitID"), userID)
	} else {
		err = h.service.RestoreHabit(r.PathValue("habitID"), userID)
	}
	if err != nil {
		if errors.Is(err, habitErrors.ErrHabitNotFound) {
			h.respondError(w, http.StatusNotFound, "Habit not found")
			return
		}
		log.Println("Error toggling habit archive:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to update habit")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": message,
	})
}

// HandleLogCompletion marks the habit done for a calendar date, today when the
// body names none. Logging the same date twice yields a conflict.
func (h *HabitHandler) HandleLogCompletion(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	date, ok := h.decodeLogDate(w, r)
	if !ok {
		return
	}

	logEntry, err := h.logService.LogCompletion(r.PathValue("habitID"), userID, date)
	if err != nil {
		switch {
		case errors.Is(err, habitErrors.ErrHabitNotFound):
			h.respondError(w, http.StatusNotFound, "Habit not found")
		case errors.Is(err, habitErrors.ErrDuplicateLog):
			h.respondError(w, http.StatusConflict, "Habit already logged for this date")
		default:
			log.Println("Error logging completion:", err.Error())
			h.respondError(w, http.StatusInternalServerError, "Failed to log completion")
		}
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data":   logEntry,
	})
}

func (h *HabitHandler) HandleDeleteLog(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	date, ok := h.decodeLogDate(w, r)
	if !ok {
		return
	}

	if err := h.logService.DeleteLog(r.PathValue("habitID"), userID, date); err != nil {
		switch {
		case errors.Is(err, habitErrors.ErrHabitNotFound):
			h.respondError(w, http.StatusNotFound, "Habit not found")
		case errors.Is(err, habitErrors.ErrLogNotFound):
			h.respondError(w, http.StatusNotFound, "Log not found")
		default:
			log.Println("Error deleting log:", err.Error())
			h.respondError(w, http.StatusInternalServerError, "Failed to delete log")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Log removed.",
	})
}

func (h *HabitHandler) HandleGetLogs(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	logs, err := h.logService.GetHabitLogs(r.PathValue("habitID"), userID)
	if err != nil {
		if errors.Is(err, habitErrors.ErrHabitNotFound) {
			h.respondError(w, http.StatusNotFound, "Habit not found")
			return
		}
		log.Println("Error fetching logs:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch logs")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   logs,
	})
}

// decodeLogDate reads the optional {"date": "YYYY-MM-DD"} body. An empty body
// or an empty date means today. DELETE requests reuse it via the query string
// when no body is sent.
func (h *HabitHandler) decodeLogDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	var req logRequest

	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid request body")
			return time.Time{}, false
		}
	}
	if req.Date == "" {
		req.Date = r.URL.Query().Get("date")
	}
	if req.Date == "" {
		return time.Now(), true
	}

	if err := validateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return time.Time{}, false
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return date, true
}
