package run

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

	"ccf-analysis/internal/service/simulation"
	"ccf-analysis/internal/storage"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, vars storage.Variables) (simulation.Result, error) {
	args := m.Called(ctx, vars)
	return args.Get(0).(simulation.Result), args.Error(1)
}

type MockVariablesStorage struct {
	mock.Mock
}

func (m *MockVariablesStorage) Variables(ctx context.Context) (storage.Variables, error) {
	args := m.Called(ctx)
	return args.Get(0).(storage.Variables), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunSimulation_EmptyBodyUsesStoredVariables(t *testing.T) {
	mockRunner := new(MockRunner)
	mockVars := new(MockVariablesStorage)

	mockVars.On("Variables", mock.Anything).Return(storage.DefaultVariables(), nil)
	mockRunner.On("Run", mock.Anything, storage.DefaultVariables()).
		Return(simulation.Result{ProcessedDays: 30, TotalRecords: 45000}, nil)

	handler := RunSimulation(testLogger(), mockRunner, mockVars)

	req := httptest.NewRequest(http.MethodPost, "/api/process-simulation", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success       bool  `json:"success"`
		ProcessedDays int   `json:"processedDays"`
		TotalRecords  int64 `json:"totalRecords"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	assert.True(t, resp.Success)
	assert.Equal(t, 30, resp.ProcessedDays)
	assert.Equal(t, int64(45000), resp.TotalRecords)

	mockRunner.AssertExpectations(t)
}

func TestRunSimulation_BodyOverridesApplied(t *testing.T) {
	mockRunner := new(MockRunner)
	mockVars := new(MockVariablesStorage)

	mockVars.On("Variables", mock.Anything).Return(storage.DefaultVariables(), nil)
	mockRunner.On("Run", mock.Anything, mock.MatchedBy(func(v storage.Variables) bool {
		// The override lands without disturbing other defaults.
		return v.LaborHoursPerDay == 10 && v.LumPicksPerHour == 80
	})).Return(simulation.Result{ProcessedDays: 1}, nil)

	handler := RunSimulation(testLogger(), mockRunner, mockVars)

	req := httptest.NewRequest(http.MethodPost, "/api/process-simulation",
		strings.NewReader(`{"laborHoursPerDay": 10}`))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRunner.AssertExpectations(t)
}

func TestRunSimulation_InvalidJSON(t *testing.T) {
	handler := RunSimulation(testLogger(), new(MockRunner), new(MockVariablesStorage))

	req := httptest.NewRequest(http.MethodPost, "/api/process-simulation", strings.NewReader(`{{`))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunSimulation_EngineError(t *testing.T) {
	mockRunner := new(MockRunner)
	mockVars := new(MockVariablesStorage)

	mockVars.On("Variables", mock.Anything).Return(storage.DefaultVariables(), nil)
	mockRunner.On("Run", mock.Anything, mock.Anything).
		Return(simulation.Result{}, errors.New("db closed"))

	handler := RunSimulation(testLogger(), mockRunner, mockVars)

	req := httptest.NewRequest(http.MethodPost, "/api/process-simulation", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
