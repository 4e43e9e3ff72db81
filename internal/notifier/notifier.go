package notifier

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/clock"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/constants"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/logger"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/observability/metrics"
)

var ErrSweepInProgress = errors.New("notifier sweep already in progress")

type SweepResult struct {
	Pending   int
	Delivered int
	Failed    int
}

type Notifier struct {
	repo     Repository
	sender   Sender
	clock    clock.Clock
	interval time.Duration
	log      *logger.Logger

	running atomic.Bool
	wg      sync.WaitGroup
}

func New(repo Repository, sender Sender, clk clock.Clock, interval time.Duration, log *logger.Logger) *Notifier {
	if interval <= 0 {
		interval = constants.DefaultNotifyInterval
	}
	return &Notifier{
		repo:     repo,
		sender:   sender,
		clock:    clk,
		interval: interval,
		log:      log,
	}
}

// Run sweeps every interval until ctx is done, then waits for an in-flight sweep.
func (n *Notifier) Run(ctx context.Context) {
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()
	defer n.wg.Wait()

	n.log.Infof("notifier started, interval %s", n.interval)

	for {
		select {
		case <-ctx.Done():
			n.log.Info("notifier stopping")
			return
		case <-ticker.C:
			n.wg.Add(1)
			go func() {
				defer n.wg.Done()
				n.trigger(ctx)
			}()
		}
	}
}

func (n *Notifier) trigger(ctx context.Context) {
	result, err := n.Sweep(ctx)
	switch {
	case errors.Is(err, ErrSweepInProgress):
		n.log.Warn("previous notifier sweep still running, skipping trigger")
	case err != nil:
		n.log.Errorf("notifier sweep failed: %v", err)
	case result.Pending > 0:
		n.log.WithFields(ctx, logger.Fields{
			"pending":   result.Pending,
			"delivered": result.Delivered,
			"failed":    result.Failed,
		}).Info("notifier sweep finished")
	}
}

// Sweep delivers every pending item once. Each item is marked right after its
// own delivery succeeds; a failed item stays pending for the next sweep.
func (n *Notifier) Sweep(ctx context.Context) (SweepResult, error) {
	if !n.running.CompareAndSwap(false, true) {
		metrics.NotifierSweepsTotal.WithLabelValues("skipped").Inc()
		return SweepResult{}, ErrSweepInProgress
	}
	defer n.running.Store(false)

	start := n.clock.Now()
	defer func() {
		metrics.NotifierSweepDurationSeconds.Observe(n.clock.Since(start).Seconds())
	}()

	pending, err := n.repo.ListPending(ctx)
	if err != nil {
		metrics.NotifierSweepsTotal.WithLabelValues("error").Inc()
		return SweepResult{}, err
	}

	result := SweepResult{Pending: len(pending)}
	for _, p := range pending {
		if ctx.Err() != nil {
			break
		}
		if n.deliver(ctx, p) {
			result.Delivered++
		} else {
			result.Failed++
		}
	}

	metrics.NotifierSweepsTotal.WithLabelValues("completed").Inc()
	return result, nil
}

func (n *Notifier) deliver(ctx context.Context, p Pending) bool {
	fields := logger.Fields{
		"item_id": p.ItemID,
		"user_id": p.UserID,
		"chat_id": p.ChatID,
		"action":  "notify_item",
	}

	sendCtx, cancel := context.WithTimeout(ctx, constants.NotifierSendTimeout)
	defer cancel()

	if err := n.sender.Send(sendCtx, p.ChatID, FormatMessage(p)); err != nil {
		metrics.NotifierDeliveriesTotal.WithLabelValues("failed").Inc()
		n.log.WithFields(ctx, fields).Warnf("delivery failed: %v", err)
		return false
	}

	if err := n.repo.MarkNotified(ctx, p.ItemID); err != nil {
		// Delivered but unmarked: the next sweep sends it again.
		metrics.NotifierDeliveriesTotal.WithLabelValues("unmarked").Inc()
		n.log.WithFields(ctx, fields).Errorf("failed to mark item notified: %v", err)
		return false
	}

	metrics.NotifierDeliveriesTotal.WithLabelValues("delivered").Inc()
	return true
}

// Announce posts a startup notice to chatID.
func (n *Notifier) Announce(ctx context.Context, chatID string) error {
	sendCtx, cancel := context.WithTimeout(ctx, constants.NotifierSendTimeout)
	defer cancel()
	return n.sender.Send(sendCtx, chatID, "To-do list service started")
}
