package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// remindersDispatched counts per-recipient dispatch outcomes.
	// Labels:
	// - category: BIRTHDAY, SHAKEN_2M, ...
	// - outcome:  "sent", "failed" or "skipped" (no messaging identifier)
	remindersDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "garagepro",
			Subsystem: "reminders",
			Name:      "dispatched_total",
			Help:      "Reminder dispatch attempts by category and outcome",
		},
		[]string{"category", "outcome"},
	)

	sentLogRows = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "garagepro",
			Subsystem: "reminders",
			Name:      "sent_log_rows_total",
			Help:      "Sent-log rows submitted for insertion",
		},
	)

	// monthScanDuration tracks month aggregation latency.
	monthScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "garagepro",
			Subsystem: "reminders",
			Name:      "month_scan_duration_seconds",
			Help:      "Duration of a month replay including sent-flag overlay",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func RecordDispatch(category, outcome string) {
	remindersDispatched.WithLabelValues(category, outcome).Inc()
}

func AddSentLogRows(n int) {
	sentLogRows.Add(float64(n))
}

func ObserveMonthScan(d time.Duration) {
	monthScanDuration.Observe(d.Seconds())
}
