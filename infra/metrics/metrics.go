package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/mstgnz/interkassa/infra/logger"
)

// Notification results
const (
	ResultVerified   = "verified"
	ResultUnverified = "unverified"
	ResultRejected   = "rejected"
)

// Setup starts pushing metrics to pushURL every interval. It is a no-op when pushURL is empty.
func Setup(pushURL string, interval time.Duration, commonLabels string) {
	if pushURL == "" {
		return
	}

	if err := metrics.InitPush(pushURL, interval, commonLabels, true); err != nil {
		logger.Error("Error initializing metrics push", err)
	}
}

// IncNotification counts a received notification by provider and result
func IncNotification(provider, result string) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`interkassa_notifications_total{provider=%q,result=%q}`, provider, result)).Inc()
}

// IncCheckout counts a built checkout form; failed reports a rejected request
func IncCheckout(provider string, failed bool) {
	result := "created"
	if failed {
		result = "failed"
	}
	metrics.GetOrCreateCounter(fmt.Sprintf(`interkassa_checkouts_total{provider=%q,result=%q}`, provider, result)).Inc()
}

// ObserveNotificationDuration records how long a notification took to validate
func ObserveNotificationDuration(provider string, startTime time.Time) {
	metrics.GetOrCreateHistogram(fmt.Sprintf(`interkassa_notification_duration_seconds{provider=%q}`, provider)).UpdateDuration(startTime)
}

// NotificationCount returns the current value of a notification counter
func NotificationCount(provider, result string) uint64 {
	return metrics.GetOrCreateCounter(fmt.Sprintf(`interkassa_notifications_total{provider=%q,result=%q}`, provider, result)).Get()
}

// WritePrometheus writes all metrics in Prometheus text format
func WritePrometheus(w io.Writer) {
	metrics.WritePrometheus(w, true)
}
