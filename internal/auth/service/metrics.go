package service

import (
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/observability/metrics"
)

func recordLogin(result string) {
	metrics.AuthLoginsTotal.WithLabelValues(result).Inc()
}

func recordRegistration(result string) {
	metrics.AuthRegistrationsTotal.WithLabelValues(result).Inc()
}
