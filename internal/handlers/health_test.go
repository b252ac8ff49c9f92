package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/werewolf-agent/internal/storage"
)

type fixedCounter int

func (c fixedCounter) ActiveGames() int { return int(c) }

func TestHealthHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))

	tests := []struct {
		name            string
		method          string
		pingErr         error
		games           GameCounter
		expectedStatus  int
		expectedHealth  string
		expectedStorage string
		expectedGames   int
	}{
		{
			name:            "all healthy",
			method:          http.MethodGet,
			games:           fixedCounter(3),
			expectedStatus:  http.StatusOK,
			expectedHealth:  "healthy",
			expectedStorage: "healthy",
			expectedGames:   3,
		},
		{
			name:            "no game counter",
			method:          http.MethodGet,
			expectedStatus:  http.StatusOK,
			expectedHealth:  "healthy",
			expectedStorage: "healthy",
		},
		{
			name:            "unhealthy storage",
			method:          http.MethodGet,
			pingErr:         errors.New("connection failed"),
			games:           fixedCounter(1),
			expectedStatus:  http.StatusServiceUnavailable,
			expectedHealth:  "degraded",
			expectedStorage: "unhealthy",
			expectedGames:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			store.SetPingError(tt.pingErr)
			handler := NewHealthHandler(store, tt.games, "test-model", logger)

			req := httptest.NewRequest(tt.method, "/health", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var response HealthResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))

			assert.Equal(t, tt.expectedHealth, response.Status)
			assert.Equal(t, tt.expectedStorage, response.Components["storage"])
			assert.Equal(t, "test-model", response.Model)
			assert.Equal(t, tt.expectedGames, response.ActiveGames)
			assert.Equal(t, "werewolf-agent", response.Service)
		})
	}
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	handler := NewHealthHandler(storage.NewMemoryStore(), nil, "test-model", slog.New(slog.DiscardHandler))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/health", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	var response ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	assert.Equal(t, "Method not allowed", response.Error)
}
