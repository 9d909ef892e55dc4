package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "stockroom", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "stockroom", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	StoreMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "stockroom", Name: "store_mutations_total", Help: "Number of persisted document mutations by collection and operation."},
		[]string{"collection", "op"},
	)
	StoreSaveErrors = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "stockroom", Name: "store_save_errors_total", Help: "Number of failed document writes."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(StoreMutations)
	reg.MustRegister(StoreSaveErrors)
}
