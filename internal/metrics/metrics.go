// Package metrics exposes Prometheus counters and gauges for the
// benchmark run: tasks attempted and failed, vendor call latency, and
// per-vendor in-flight call counts.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// TasksTotal counts attempted tasks, labeled by vendor, model and variant.
	TasksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cbmbench_tasks_total",
			Help: "Total number of benchmark tasks attempted",
		},
		[]string{"vendor", "model", "variant"},
	)

	// TaskFailuresTotal counts tasks that failed (vendor error or timeout),
	// labeled by vendor and failure reason. An unparseable response is not
	// a failure: it still yields a result.
	TaskFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cbmbench_task_failures_total",
			Help: "Total number of benchmark tasks that failed",
		},
		[]string{"vendor", "reason"},
	)

	// VendorCallDuration observes wall-clock time of a single vendor call.
	VendorCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cbmbench_vendor_call_duration_seconds",
			Help:    "Duration of a single vendor API call",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"vendor"},
	)

	// VendorInFlight gauges the number of in-flight calls per vendor.
	VendorInFlight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cbmbench_vendor_in_flight",
			Help: "Number of in-flight API calls per vendor",
		},
		[]string{"vendor"},
	)

	// RunResultsTotal counts successfully recorded results, labeled by
	// dataset and variant.
	RunResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cbmbench_run_results_total",
			Help: "Total number of results recorded for a run",
		},
		[]string{"dataset", "variant"},
	)
)

// Register registers every metric with the default Prometheus registry.
// Call once at process startup.
func Register() {
	prometheus.MustRegister(TasksTotal)
	prometheus.MustRegister(TaskFailuresTotal)
	prometheus.MustRegister(VendorCallDuration)
	prometheus.MustRegister(VendorInFlight)
	prometheus.MustRegister(RunResultsTotal)
}
