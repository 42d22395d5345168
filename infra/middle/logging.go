package middle

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/mstgnz/interkassa/infra/logger"
)

// responseWriter wraps http.ResponseWriter to capture the status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	written     int
	wroteHeader bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.written += n
	return n, err
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if rw.wroteHeader {
		return
	}
	rw.wroteHeader = true
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

// AccessLogMiddleware logs every checkout and callback request through the system logger.
// Server errors are logged as errors, client errors as warnings.
func AccessLogMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isPaymentEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			startTime := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			ctx := logger.LogContext{
				Provider:  extractProviderFromURL(r.URL.Path),
				RequestID: middleware.GetReqID(r.Context()),
				Fields: map[string]any{
					"method":        r.Method,
					"path":          r.URL.Path,
					"status":        rw.statusCode,
					"bytes":         rw.written,
					"client_ip":     GetClientIP(r),
					"processing_ms": time.Since(startTime).Milliseconds(),
				},
			}

			switch {
			case rw.statusCode >= http.StatusInternalServerError:
				logger.Error("Request failed", nil, ctx)
			case rw.statusCode >= http.StatusBadRequest:
				logger.Warn("Request rejected", ctx)
			default:
				logger.Info("Request served", ctx)
			}
		})
	}
}

// isPaymentEndpoint checks if the URL path is a checkout or callback endpoint
func isPaymentEndpoint(path string) bool {
	return strings.HasPrefix(path, "/v1/checkout") || strings.HasPrefix(path, "/callback")
}

// extractProviderFromURL extracts the provider name from the URL path
func extractProviderFromURL(path string) string {
	// /v1/checkout/{provider}/... and /callback/{provider}/...
	segments := strings.Split(strings.Trim(path, "/"), "/")

	switch {
	case len(segments) >= 3 && segments[0] == "v1" && segments[1] == "checkout":
		return segments[2]
	case len(segments) >= 2 && segments[0] == "callback":
		return segments[1]
	}

	return ""
}
