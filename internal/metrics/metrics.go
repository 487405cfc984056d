package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "acadres",
		Subsystem: "auth",
		Name:      "login_attempts_total",
		Help:      "Login attempts by outcome",
	}, []string{"outcome"})

	PasswordResets = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "acadres",
		Subsystem: "auth",
		Name:      "password_resets_total",
		Help:      "Password reset attempts by outcome",
	}, []string{"outcome"})

	RecoveryRequests = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "acadres",
		Subsystem: "auth",
		Name:      "recovery_requests_total",
		Help:      "Accepted password recovery requests",
	})

	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "acadres",
		Subsystem: "auth",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter",
	}, []string{"route"})
)
