package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RegistryOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "avtostart", Name: "registry_operations_total", Help: "Number of document registry operations by name and outcome."},
		[]string{"operation", "outcome"},
	)
	LeadsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "avtostart", Name: "leads_sent_total", Help: "Number of lead notification attempts by outcome."},
		[]string{"outcome"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "avtostart", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "avtostart", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RegistryOps)
	reg.MustRegister(LeadsSent)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
