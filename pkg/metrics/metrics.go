package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "geomark", Name: "http_requests_total", Help: "Number of handled HTTP requests by route and status."},
		[]string{"route", "status"},
	)
	AuthRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "geomark", Name: "auth_rejected_total", Help: "Number of requests rejected by the token validator, by reason."},
		[]string{"reason"},
	)
	DocIDRetries = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "geomark", Name: "document_id_retries_total", Help: "Number of document id generation retries due to collisions."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "geomark", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "geomark", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RequestsTotal)
	reg.MustRegister(AuthRejected)
	reg.MustRegister(DocIDRetries)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
