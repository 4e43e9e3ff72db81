package notifier

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/clock"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/logger"
	tododomain "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/todo/domain"
)

// memoryRepo keeps items keyed by id; ListPending returns those not yet marked.
type memoryRepo struct {
	mu       sync.Mutex
	items    []Pending
	notified map[tododomain.ID]bool
	listErr  error
	markErr  error
}

func newMemoryRepo(items ...Pending) *memoryRepo {
	return &memoryRepo{items: items, notified: make(map[tododomain.ID]bool)}
}

func (r *memoryRepo) ListPending(context.Context) ([]Pending, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []Pending
	for _, p := range r.items {
		if !r.notified[p.ItemID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryRepo) MarkNotified(_ context.Context, id tododomain.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.markErr != nil {
		return r.markErr
	}
	r.notified[id] = true
	return nil
}

type sent struct {
	chatID string
	text   string
}

type recordingSender struct {
	mu      sync.Mutex
	sent    []sent
	failFor map[string]bool
	block   chan struct{}
}

func (s *recordingSender) Send(_ context.Context, chatID, text string) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFor[chatID] {
		return errors.New("chat not found")
	}
	s.sent = append(s.sent, sent{chatID: chatID, text: text})
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

var testNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestNotifier(repo Repository, sender Sender) *Notifier {
	return New(repo, sender, clock.NewMockClock(testNow), time.Minute, logger.NewWithWriter(io.Discard, "test", "error"))
}

func TestSweep_DeliversAndMarks(t *testing.T) {
	repo := newMemoryRepo(Pending{
		ItemID:    1,
		Text:      "buy milk",
		CreatedAt: time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC),
		Username:  "alice",
		ChatID:    "123",
	})
	sender := &recordingSender{}
	n := newTestNotifier(repo, sender)

	result, err := n.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Pending: 1, Delivered: 1}, result)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "123", sender.sent[0].chatID)
	assert.Contains(t, sender.sent[0].text, "buy milk")
	assert.Contains(t, sender.sent[0].text, "alice")
	assert.True(t, repo.notified[1])

	result, err = n.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{}, result)
	assert.Equal(t, 1, sender.count(), "second sweep must not deliver again")
}

func TestSweep_FailureIsIsolatedPerItem(t *testing.T) {
	repo := newMemoryRepo(
		Pending{ItemID: 1, Text: "a", Username: "alice", ChatID: "bad"},
		Pending{ItemID: 2, Text: "b", Username: "bob", ChatID: "456"},
	)
	sender := &recordingSender{failFor: map[string]bool{"bad": true}}
	n := newTestNotifier(repo, sender)

	result, err := n.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Pending: 2, Delivered: 1, Failed: 1}, result)
	assert.False(t, repo.notified[1])
	assert.True(t, repo.notified[2])

	sender.failFor = nil
	result, err = n.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Pending: 1, Delivered: 1}, result)
	assert.True(t, repo.notified[1])
}

func TestSweep_ListErrorAborts(t *testing.T) {
	repo := newMemoryRepo()
	repo.listErr = errors.New("connection refused")
	sender := &recordingSender{}

	_, err := newTestNotifier(repo, sender).Sweep(context.Background())
	require.Error(t, err)
	assert.Zero(t, sender.count())
}

func TestSweep_MarkFailureCountsAsFailed(t *testing.T) {
	repo := newMemoryRepo(Pending{ItemID: 1, Text: "a", Username: "alice", ChatID: "1"})
	repo.markErr = errors.New("deadlock")
	sender := &recordingSender{}

	result, err := newTestNotifier(repo, sender).Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Pending: 1, Failed: 1}, result)
	assert.Equal(t, 1, sender.count())
}

func TestSweep_SkipsWhileAnotherIsRunning(t *testing.T) {
	repo := newMemoryRepo(Pending{ItemID: 1, Text: "a", Username: "alice", ChatID: "1"})
	sender := &recordingSender{block: make(chan struct{})}
	n := newTestNotifier(repo, sender)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = n.Sweep(context.Background())
	}()

	require.Eventually(t, n.running.Load, time.Second, time.Millisecond)

	_, err := n.Sweep(context.Background())
	assert.ErrorIs(t, err, ErrSweepInProgress)

	close(sender.block)
	<-done
	assert.Equal(t, 1, sender.count())
	assert.False(t, n.running.Load())
}

func TestRun_StopsOnCancel(t *testing.T) {
	repo := newMemoryRepo(Pending{ItemID: 1, Text: "a", Username: "alice", ChatID: "1"})
	sender := &recordingSender{}
	n := New(repo, sender, clock.NewRealClock(), 5*time.Millisecond, logger.NewWithWriter(io.Discard, "test", "error"))

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		n.Run(ctx)
		close(stopped)
	}()

	require.Eventually(t, func() bool { return sender.count() == 1 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, 1, sender.count())
}

func TestAnnounce(t *testing.T) {
	sender := &recordingSender{}
	require.NoError(t, newTestNotifier(newMemoryRepo(), sender).Announce(context.Background(), "-100500"))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "-100500", sender.sent[0].chatID)
}

func TestFormatMessage(t *testing.T) {
	msg := FormatMessage(Pending{
		Text:      "buy milk",
		Username:  "alice",
		CreatedAt: time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC),
	})

	assert.Equal(t, "New to-do item from alice:\nbuy milk\nCreated: 2025-05-01 09:30:00", msg)
}
