package save

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ccf-analysis/internal/storage"
)

type MockVariablesSaver struct {
	mock.Mock
}

func (m *MockVariablesSaver) SaveVariables(ctx context.Context, overrides storage.VariableOverrides) error {
	args := m.Called(ctx, overrides)
	return args.Error(0)
}

func (m *MockVariablesSaver) Variables(ctx context.Context) (storage.Variables, error) {
	args := m.Called(ctx)
	return args.Get(0).(storage.Variables), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSaveVariables_Success(t *testing.T) {
	mockSaver := new(MockVariablesSaver)

	effective := storage.DefaultVariables()
	effective.TargetStaffProductivityPerHour = 500

	mockSaver.On("SaveVariables", mock.Anything, mock.MatchedBy(func(o storage.VariableOverrides) bool {
		return o.TargetStaffProductivityPerHour != nil && *o.TargetStaffProductivityPerHour == 500
	})).Return(nil)
	mockSaver.On("Variables", mock.Anything).Return(effective, nil)

	handler := SaveVariables(testLogger(), mockSaver)

	req := httptest.NewRequest(http.MethodPost, "/api/variables",
		strings.NewReader(`{"targetStaffProductivityPerHour": 500}`))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success   bool              `json:"success"`
		Variables storage.Variables `json:"variables"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	assert.True(t, resp.Success)
	assert.Equal(t, 500.0, resp.Variables.TargetStaffProductivityPerHour)

	mockSaver.AssertExpectations(t)
}

func TestSaveVariables_InvalidJSON(t *testing.T) {
	handler := SaveVariables(testLogger(), new(MockVariablesSaver))

	req := httptest.NewRequest(http.MethodPost, "/api/variables", strings.NewReader(`{broken`))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveVariables_StoreError(t *testing.T) {
	mockSaver := new(MockVariablesSaver)
	mockSaver.On("SaveVariables", mock.Anything, mock.Anything).Return(errors.New("db closed"))

	handler := SaveVariables(testLogger(), mockSaver)

	req := httptest.NewRequest(http.MethodPost, "/api/variables", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
