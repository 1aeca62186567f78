// Package metrics provides Prometheus exporters for store activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OperationsTotal counts facade operations by name and outcome.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badgestore_operations_total",
			Help: "Total number of store operations executed",
		},
		[]string{"operation", "status"},
	)

	// NotificationsTotal counts events handed to the notification sink.
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badgestore_notifications_total",
			Help: "Total number of notifications published, by topic",
		},
		[]string{"topic"},
	)
)

// RecordOperation records one store operation with its outcome
// ("ok" or "error").
func RecordOperation(operation, status string) {
	OperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordNotification records one published notification.
func RecordNotification(topic string) {
	NotificationsTotal.WithLabelValues(topic).Inc()
}
