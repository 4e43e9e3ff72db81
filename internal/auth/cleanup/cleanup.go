package cleanup

import (
	"context"
	"time"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/constants"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/logger"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/observability/metrics"
)

type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// StartCleanup blocks, deleting expired rows every interval until ctx is done.
func StartCleanup(ctx context.Context, repo ExpiredDeleter, log *logger.Logger, repoName string, interval time.Duration, onDeleted func(int64)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := repo.DeleteExpired(ctx)
			if err != nil {
				log.Errorf("%s cleanup failed: %v", repoName, err)
				continue
			}
			if deleted > 0 {
				if onDeleted != nil {
					onDeleted(deleted)
				}
				log.Infof("%s cleanup: deleted %d expired rows", repoName, deleted)
			}
		}
	}
}

func StartSessionCleanup(ctx context.Context, store ExpiredDeleter, log *logger.Logger) {
	StartCleanup(ctx, store, log, "session", constants.SessionCleanupInterval, func(n int64) {
		metrics.SessionsCleanupDeleted.Add(float64(n))
	})
}
