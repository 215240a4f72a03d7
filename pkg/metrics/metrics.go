package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	JournalAppends = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "cura", Subsystem: "journal", Name: "appends_total", Help: "Number of journal entries persisted."},
	)
	JournalAppendFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cura", Subsystem: "journal", Name: "append_failures_total", Help: "Number of rejected or failed appends by reason."},
		[]string{"reason"},
	)
	JournalCorruptLoads = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "cura", Subsystem: "journal", Name: "corrupt_loads_total", Help: "Number of loads that found an undecodable log."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cura", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cura", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(JournalAppends)
	reg.MustRegister(JournalAppendFailures)
	reg.MustRegister(JournalCorruptLoads)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
