package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jwebster45206/gift-hunt/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		setupStore     func() services.HuntStore
		expectedStatus int
		expectedHealth string
		expectedStore  string
	}{
		{
			name:           "memory only",
			setupStore:     func() services.HuntStore { return nil },
			expectedStatus: http.StatusOK,
			expectedHealth: "healthy",
			expectedStore:  "disabled",
		},
		{
			name:           "healthy store",
			setupStore:     func() services.HuntStore { return services.NewMockStore() },
			expectedStatus: http.StatusOK,
			expectedHealth: "healthy",
			expectedStore:  "healthy",
		},
		{
			name: "unhealthy store",
			setupStore: func() services.HuntStore {
				store := services.NewMockStore()
				store.SetPingError(errors.New("connection failed"))
				return store
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedHealth: "degraded",
			expectedStore:  "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.setupStore(), logger)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var resp HealthResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.expectedHealth, resp.Status)
			assert.Equal(t, "gift-hunt", resp.Service)
			assert.Equal(t, tt.expectedStore, resp.Components["store"])
		})
	}
}
