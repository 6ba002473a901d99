package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentvsbuy/domain"
	"rentvsbuy/repository"
	"rentvsbuy/service"
)

func newTestHandler() *SimulationHandler {
	repo := repository.NewSimulationRepositoryMemory(10)
	cache := repository.NewMockCache()
	svc := service.NewSimulationService(repo, cache, zerolog.Nop())
	return NewSimulationHandler(svc, zerolog.Nop())
}

func postSimulate(t *testing.T, handler *SimulationHandler, params domain.SimulationParameters) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(params)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/simulate", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.Simulate(w, req)
	return w
}

func TestSimulateHandler_OK(t *testing.T) {

	handler := newTestHandler()
	w := postSimulate(t, handler, service.DefaultParameters())

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		domain.SimulationResult
		Verdict string `json:"verdict"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	assert.Equal(t, 360, resp.Months)
	assert.NotEmpty(t, resp.Verdict)
	assert.Equal(t, 10_000_000.0, resp.Params.HousePrice)
}

func TestSimulateHandler_MethodNotAllowed(t *testing.T) {

	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/simulate", nil)
	w := httptest.NewRecorder()
	handler.Simulate(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestSimulateHandler_BadRequest(t *testing.T) {

	handler := newTestHandler()

	req := httptest.NewRequest(
		http.MethodPost,
		"/simulate",
		bytes.NewBuffer([]byte(`{invalid-json}`)),
	)
	w := httptest.NewRecorder()
	handler.Simulate(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimulateHandler_InvalidParameters(t *testing.T) {

	handler := newTestHandler()

	params := service.DefaultParameters()
	params.HorizonYears = 0
	w := postSimulate(t, handler, params)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDefaultsHandler(t *testing.T) {

	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/simulate/defaults", nil)
	w := httptest.NewRecorder()
	handler.Defaults(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var params domain.SimulationParameters
	require.NoError(t, json.NewDecoder(w.Body).Decode(&params))
	assert.Equal(t, service.DefaultParameters(), params)
}

func TestHistoryHandler(t *testing.T) {

	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/simulate/history", nil)
	w := httptest.NewRecorder()
	handler.History(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var records []domain.SimulationRecord
	require.NoError(t, json.NewDecoder(w.Body).Decode(&records))
	assert.Empty(t, records)

	postSimulate(t, handler, service.DefaultParameters())

	w = httptest.NewRecorder()
	handler.History(w, httptest.NewRequest(http.MethodGet, "/simulate/history", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&records))
	require.Len(t, records, 1)
	assert.Equal(t, 360, records[0].Result.Months)
}

func TestHistoryHandler_InvalidLimit(t *testing.T) {

	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/simulate/history?limit=abc", nil)
	w := httptest.NewRecorder()
	handler.History(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {

	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()

	handler := RateLimitMiddleware(limiter, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	))

	req := httptest.NewRequest(http.MethodGet, "/simulate/defaults", nil)
	req.RemoteAddr = "10.0.0.1:12345"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// A different client has its own bucket.
	other := httptest.NewRequest(http.MethodGet, "/simulate/defaults", nil)
	other.RemoteAddr = "10.0.0.2:12345"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, other)
	assert.Equal(t, http.StatusOK, w.Code)
}
