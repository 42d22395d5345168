package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mstgnz/interkassa/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLookup struct {
	configured map[string]bool
}

func (s stubLookup) GetProvider(name string) (provider.FormProvider, string, error) {
	if s.configured[name] {
		return nil, name, nil
	}
	return nil, "", provider.ErrProviderNotConfigured
}

type healthBody struct {
	Code    int          `json:"code"`
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    HealthStatus `json:"data"`
}

func TestNewHealthHandler(t *testing.T) {
	handler := NewHealthHandler(stubLookup{}, nil, false, "test")
	require.NotNil(t, handler)
	assert.False(t, handler.startTime.IsZero())
}

func TestHealthHandler_CheckHealth(t *testing.T) {
	tests := []struct {
		name           string
		configured     map[string]bool
		providerNames  []string
		expectedStatus int
		expectedHealth string
	}{
		{
			name:           "No providers",
			expectedStatus: http.StatusServiceUnavailable,
			expectedHealth: "unhealthy",
		},
		{
			name:           "All providers configured",
			configured:     map[string]bool{"interkassa": true},
			providerNames:  []string{"interkassa"},
			expectedStatus: http.StatusOK,
			expectedHealth: "healthy",
		},
		{
			name:           "Some providers configured",
			configured:     map[string]bool{"interkassa": true},
			providerNames:  []string{"interkassa", "other"},
			expectedStatus: http.StatusOK,
			expectedHealth: "degraded",
		},
		{
			name:           "No provider configured",
			providerNames:  []string{"interkassa"},
			expectedStatus: http.StatusServiceUnavailable,
			expectedHealth: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(stubLookup{configured: tt.configured}, tt.providerNames, true, "test")

			req := httptest.NewRequest("GET", "/health", nil)
			w := httptest.NewRecorder()
			handler.CheckHealth(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body healthBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedHealth, body.Data.Status)
			assert.Equal(t, "Service is "+tt.expectedHealth, body.Message)
			assert.Equal(t, "test", body.Data.Environment)
			assert.True(t, body.Data.OpenSearchEnabled)
			assert.Len(t, body.Data.Providers, len(tt.providerNames))
			require.NotNil(t, body.Data.System)
			assert.Positive(t, body.Data.System.GoRoutines)
		})
	}
}

func TestHealthHandler_ProviderDetails(t *testing.T) {
	handler := NewHealthHandler(stubLookup{configured: map[string]bool{"interkassa": true}}, []string{"interkassa", "other"}, false, "test")

	providers := handler.checkProviders()

	assert.Equal(t, &ProviderHealth{Status: "healthy", Configured: true}, providers["interkassa"])
	assert.Equal(t, "not_available", providers["other"].Status)
	assert.False(t, providers["other"].Configured)
	assert.Equal(t, provider.ErrProviderNotConfigured.Error(), providers["other"].Error)
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes    uint64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{1073741824, "1.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatBytes(tt.bytes))
		})
	}
}

func BenchmarkHealthCheck(b *testing.B) {
	handler := NewHealthHandler(stubLookup{configured: map[string]bool{"interkassa": true}}, []string{"interkassa"}, false, "test")

	for b.Loop() {
		req := httptest.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		handler.CheckHealth(w, req)
	}
}
