package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/constants"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/observability/metrics"
)

func StartPoolMetrics(ctx context.Context, pool *sql.DB, interval time.Duration) {
	if interval <= 0 {
		interval = constants.DBPoolMetricsInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			recordPoolStats(pool.Stats())

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func recordPoolStats(stats sql.DBStats) {
	metrics.DBPoolInUseConnections.Set(float64(stats.InUse))
	metrics.DBPoolIdleConnections.Set(float64(stats.Idle))
	metrics.DBPoolMaxConnections.Set(float64(stats.MaxOpenConnections))
	metrics.DBPoolOpenConnections.Set(float64(stats.OpenConnections))
	metrics.DBPoolWaitCount.Set(float64(stats.WaitCount))
}
