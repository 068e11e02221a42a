package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "arverify"

var (
	registerOnce sync.Once

	tipChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "verify",
			Name:      "tip_checks_total",
			Help:      "Tip lookups classified by result",
		},
		[]string{"result"},
	)

	claimValidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "verify",
			Name:      "claim_validations_total",
			Help:      "Identity claim validations classified by result",
		},
		[]string{"result"},
	)

	attestations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "verify",
			Name:      "attestations_total",
			Help:      "Attestation broadcasts classified by result",
		},
		[]string{"result"},
	)

	externalCallSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "external",
			Name:      "call_seconds",
			Help:      "Latency of calls to the ledger and identity provider",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
		[]string{"call"},
	)
)

func ensureRegistered() {
	registerOnce.Do(func() {
		prometheus.MustRegister(tipChecks, claimValidations, attestations, externalCallSeconds)
	})
}

// TipChecks counts tip lookups: found, not_found, error, already_verified.
func TipChecks() *prometheus.CounterVec {
	ensureRegistered()
	return tipChecks
}

// ClaimValidations counts callback claims: verified, no_access_token, token_rejected, email_unverified, error.
func ClaimValidations() *prometheus.CounterVec {
	ensureRegistered()
	return claimValidations
}

// Attestations counts broadcasts: sent, error.
func Attestations() *prometheus.CounterVec {
	ensureRegistered()
	return attestations
}

func ExternalCallObserver(call string) prometheus.Observer {
	ensureRegistered()
	return externalCallSeconds.WithLabelValues(call)
}

// Register makes the collectors visible on /metrics before the first request.
func Register() {
	ensureRegistered()
}
