package cleanup

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/logger"
)

type mockDeleter struct {
	DeleteExpiredFunc func(ctx context.Context) (int64, error)
	calls             atomic.Int32
}

func (m *mockDeleter) DeleteExpired(ctx context.Context) (int64, error) {
	m.calls.Add(1)
	return m.DeleteExpiredFunc(ctx)
}

func TestStartCleanup_RunsUntilCancelled(t *testing.T) {
	var failNext atomic.Bool
	failNext.Store(true)

	repo := &mockDeleter{
		DeleteExpiredFunc: func(context.Context) (int64, error) {
			if failNext.Swap(false) {
				return 0, errors.New("db down")
			}
			return 2, nil
		},
	}

	var total atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		StartCleanup(ctx, repo, logger.NewWithWriter(io.Discard, "test", "error"), "session", 5*time.Millisecond, func(n int64) {
			total.Add(n)
		})
		close(done)
	}()

	assert.Eventually(t, func() bool { return total.Load() >= 4 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup did not stop on cancel")
	}
	assert.GreaterOrEqual(t, repo.calls.Load(), int32(3))
}
