package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AuthRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "codebin", Name: "auth_rejected_total", Help: "Number of requests rejected by the auth gate, by reason."},
		[]string{"reason"},
	)
	RequestFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "codebin", Name: "request_failures_total", Help: "Number of failed requests rendered by the error pipeline, by HTTP status."},
		[]string{"status"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "codebin", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "codebin", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	BlacklistErrors = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "codebin", Name: "blacklist_errors_total", Help: "Number of failed revocation checks that were allowed through."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(AuthRejected)
	reg.MustRegister(RequestFailures)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(BlacklistErrors)
}
