package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adomanski/TrackKit/internal/habit/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleGetCategories(t *testing.T) {
	service := &MockCategoryService{
		GetAllCategoriesFn: func() ([]domain.HabitCategory, error) {
			return []domain.HabitCategory{
				{ID: 1, Name: "Health", Icon: "heart", Color: "#ef4444"},
				{ID: 2, Name: "Fitness", Icon: "dumbbell", Color: "#f97316"},
			}, nil
		},
	}
	handler := NewCategoryHandler(service, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/habit-categories", nil)
	w := httptest.NewRecorder()

	handler.HandleGetCategories(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Status string                 `json:"status"`
		Data   []domain.HabitCategory `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "success", response.Status)
	require.Len(t, response.Data, 2)
	assert.Equal(t, "Health", response.Data[0].Name)
}

func TestHandleGetCategories_ServiceError(t *testing.T) {
	service := &MockCategoryService{
		GetAllCategoriesFn: func() ([]domain.HabitCategory, error) {
			return nil, errors.New("db down")
		},
	}
	handler := NewCategoryHandler(service, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/habit-categories", nil)
	w := httptest.NewRecorder()

	handler.HandleGetCategories(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Result().StatusCode)
}
