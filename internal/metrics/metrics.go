package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sportify"

// Registry is the Prometheus registry for all application metrics.
var Registry = prometheus.NewRegistry()

// AppInfo exposes the build version as a label (value is always 1).
var AppInfo = promauto.With(Registry).NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "app_info",
		Help:      "Application version information (always 1, version in labels)",
	},
	[]string{"version"},
)

// EventTransitions counts applied lifecycle transitions.
var EventTransitions = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_transitions_total",
		Help:      "Total number of applied event lifecycle transitions",
	},
	[]string{"operation", "from", "to"},
)

// EventTransitionFailures counts rejected transition attempts by error kind.
var EventTransitionFailures = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_transition_failures_total",
		Help:      "Total number of event operations that failed",
	},
	[]string{"operation", "kind"}, // kind: validation|forbidden|not_found|conflict|store
)

// NotificationsSent counts moderation emails by template and outcome.
var NotificationsSent = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of moderation notifications attempted",
	},
	[]string{"template", "status"}, // status: sent|error
)

// Init registers runtime collectors and records the version.
func Init(version string) {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	AppInfo.WithLabelValues(version).Set(1)
}
