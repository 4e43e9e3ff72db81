package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AuthLoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	AuthRegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "Total number of registration attempts by result",
		},
		[]string{"result"},
	)

	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_created_total",
			Help: "Total number of sessions created",
		},
	)

	SessionsDestroyed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_destroyed_total",
			Help: "Total number of sessions destroyed on logout",
		},
	)

	SessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_expired_total",
			Help: "Total number of expired sessions rejected on lookup",
		},
	)

	SessionsCleanupDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_cleanup_deleted_total",
			Help: "Total number of expired sessions deleted during cleanup",
		},
	)

	SessionValidationsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_validations_failed_total",
			Help: "Total number of session cookies that failed signature or expiry checks",
		},
	)
)
