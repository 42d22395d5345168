package middle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})
}

func newTestRateLimiter(rate int, window time.Duration, now *time.Time) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
		now:      func() time.Time { return *now },
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := newTestRateLimiter(2, time.Second, &now)

	clientIP := "192.168.1.1"

	if !rl.Allow(clientIP) {
		t.Error("First request should be allowed")
	}
	if !rl.Allow(clientIP) {
		t.Error("Second request should be allowed")
	}
	if rl.Allow(clientIP) {
		t.Error("Third request should be blocked")
	}
	if !rl.Allow("192.168.1.2") {
		t.Error("Other clients have their own window")
	}

	now = now.Add(time.Second + 100*time.Millisecond)
	if !rl.Allow(clientIP) {
		t.Error("Request after window should be allowed")
	}
}

func TestNewRateLimiter_Defaults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 0, 0)
	assert.Equal(t, 100, rl.rate)
	assert.Equal(t, time.Minute, rl.window)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 1, 10*time.Millisecond)
	rl.Allow("10.0.0.1")

	assert.Eventually(t, func() bool {
		rl.mu.Lock()
		defer rl.mu.Unlock()
		return len(rl.visitors) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestRateLimitMiddleware(t *testing.T) {
	now := time.Now()
	handler := RateLimitMiddleware(newTestRateLimiter(1, time.Minute, &now))(okHandler())

	req1 := httptest.NewRequest("GET", "/v1/checkout/interkassa/form", nil)
	req1.RemoteAddr = "192.168.1.1:12345"
	rr1 := httptest.NewRecorder()
	handler.ServeHTTP(rr1, req1)
	assert.Equal(t, http.StatusOK, rr1.Code)

	req2 := httptest.NewRequest("GET", "/v1/checkout/interkassa/form", nil)
	req2.RemoteAddr = "192.168.1.1:12346"
	rr2 := httptest.NewRecorder()
	handler.ServeHTTP(rr2, req2)
	assert.Equal(t, http.StatusTooManyRequests, rr2.Code)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{name: "remote addr", remoteAddr: "10.0.0.1:5000", expected: "10.0.0.1"},
		{name: "ipv6 loopback", remoteAddr: "[::1]:5000", expected: "127.0.0.1"},
		{name: "no port", remoteAddr: "10.0.0.1", expected: "10.0.0.1"},
		{
			name:       "x-forwarded-for ignored",
			remoteAddr: "10.0.0.1:5000",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.2"},
			expected:   "10.0.0.1",
		},
		{
			name:       "x-real-ip ignored",
			remoteAddr: "10.0.0.1:5000",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			expected:   "10.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, GetClientIP(req))
		})
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	handler := SecurityHeadersMiddleware()(okHandler())

	req := httptest.NewRequest("GET", "/test", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	expectedHeaders := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"X-XSS-Protection":       "1; mode=block",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}

	for header, expectedValue := range expectedHeaders {
		assert.Equal(t, expectedValue, rr.Header().Get(header), header)
	}
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "form-action 'self' http: https:")
}

func TestIPWhitelistMiddleware(t *testing.T) {
	handler := IPWhitelistMiddleware([]string{"127.0.0.1", " 192.168.1.100 "})(okHandler())

	tests := []struct {
		name           string
		clientIP       string
		expectedStatus int
	}{
		{name: "Whitelisted IP", clientIP: "127.0.0.1", expectedStatus: http.StatusOK},
		{name: "Another whitelisted IP", clientIP: "192.168.1.100", expectedStatus: http.StatusOK},
		{name: "Non-whitelisted IP", clientIP: "192.168.1.99", expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/callback/interkassa/status", nil)
			req.RemoteAddr = tt.clientIP + ":12345"

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestIPWhitelistMiddleware_SpoofedForwardedFor(t *testing.T) {
	handler := IPWhitelistMiddleware([]string{"10.0.0.1"})(okHandler())

	req := httptest.NewRequest("POST", "/callback/interkassa/status", nil)
	req.RemoteAddr = "203.0.113.7:4000"
	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestIPWhitelistMiddleware_BehindRealIP(t *testing.T) {
	handler := middleware.RealIP(IPWhitelistMiddleware([]string{"10.0.0.1"})(okHandler()))

	req := httptest.NewRequest("POST", "/callback/interkassa/status", nil)
	req.RemoteAddr = "172.16.0.2:4000"
	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestIPWhitelistMiddleware_EmptyAllowsAll(t *testing.T) {
	handler := IPWhitelistMiddleware(nil)(okHandler())

	req := httptest.NewRequest("POST", "/callback/interkassa/status", nil)
	req.RemoteAddr = "8.8.8.8:1234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequestValidationMiddleware(t *testing.T) {
	handler := RequestValidationMiddleware()(okHandler())

	tests := []struct {
		name           string
		method         string
		path           string
		contentType    string
		contentLength  int64
		expectedStatus int
	}{
		{
			name:           "Valid JSON POST",
			method:         "POST",
			path:           "/v1/checkout/interkassa",
			contentType:    "application/json",
			contentLength:  100,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Form POST to API",
			method:         "POST",
			path:           "/v1/checkout/interkassa",
			contentType:    "application/x-www-form-urlencoded",
			contentLength:  100,
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "API POST without content type",
			method:         "POST",
			path:           "/v1/checkout/interkassa",
			contentLength:  100,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Form POST to callback",
			method:         "POST",
			path:           "/callback/interkassa/status",
			contentType:    "application/x-www-form-urlencoded",
			contentLength:  100,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Multipart POST to callback",
			method:         "POST",
			path:           "/callback/interkassa/status",
			contentType:    "multipart/form-data; boundary=x",
			contentLength:  100,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Callback without content type",
			method:         "POST",
			path:           "/callback/interkassa/status",
			contentLength:  100,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Callback with unsupported content type",
			method:         "POST",
			path:           "/callback/interkassa/status",
			contentType:    "text/plain",
			contentLength:  100,
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "GET request without content type",
			method:         "GET",
			path:           "/v1/checkout/interkassa/form",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Request too large",
			method:         "POST",
			path:           "/v1/checkout/interkassa",
			contentType:    "application/json",
			contentLength:  2 << 20,
			expectedStatus: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("test body"))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			req.ContentLength = tt.contentLength

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}
