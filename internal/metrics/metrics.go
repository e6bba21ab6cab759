// Package metrics exposes Prometheus instruments for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TaskOperations counts task store operations by name and outcome.
	TaskOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roomkeeper_task_operations_total",
		Help: "Task operations processed, labelled by operation and outcome.",
	}, []string{"operation", "outcome"})

	// NotificationsSent counts successfully delivered notification intents.
	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roomkeeper_notifications_sent_total",
		Help: "Notification intents delivered to the push sink.",
	})

	// NotificationsSuppressed counts intents dropped because notifications are disabled.
	NotificationsSuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roomkeeper_notifications_suppressed_total",
		Help: "Notification intents dropped by the disabled preference flag.",
	})

	// NotificationsFailed counts intents whose delivery failed.
	NotificationsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roomkeeper_notifications_failed_total",
		Help: "Notification intents that failed to deliver.",
	})
)

// ObserveTaskOperation records one task operation outcome.
func ObserveTaskOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	TaskOperations.WithLabelValues(operation, outcome).Inc()
}
