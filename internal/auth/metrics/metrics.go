// Package metrics exposes Prometheus counters for authentication flows.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kader_login_attempts_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})

	LoginDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kader_login_duration_ms",
		Help:    "Latency of login attempts in milliseconds.",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000},
	})

	PasswordsChanged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kader_passwords_changed_total",
		Help: "Number of self-service password changes.",
	})
)

// Login outcome label values.
const (
	OutcomeSuccess      = "success"
	OutcomeBadPassword  = "bad_password"
	OutcomeUnknownPhone = "unknown_phone"
	OutcomeInactive     = "inactive"
)
