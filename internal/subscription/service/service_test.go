package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/logger"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/subscription/domain"
	userdomain "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/user/domain"
)

type memoryRepo struct {
	rows map[userdomain.ID]string
	err  error
}

func (r *memoryRepo) Upsert(_ context.Context, userID userdomain.ID, chatID string) error {
	if r.err != nil {
		return r.err
	}
	r.rows[userID] = chatID
	return nil
}

func (r *memoryRepo) FindByUser(_ context.Context, userID userdomain.ID) (domain.Subscription, error) {
	if r.err != nil {
		return domain.Subscription{}, r.err
	}
	chatID, ok := r.rows[userID]
	if !ok {
		return domain.Subscription{}, commonerrors.ErrSubscriptionNotFound
	}
	return domain.Subscription{UserID: userID, ChatID: chatID}, nil
}

func newTestService(repo *memoryRepo) *Service {
	return NewService(repo, logger.NewWithWriter(io.Discard, "test", "error"))
}

func TestSubscribe_Idempotent(t *testing.T) {
	repo := &memoryRepo{rows: map[userdomain.ID]string{}}
	svc := newTestService(repo)

	require.NoError(t, svc.Subscribe(context.Background(), 1, "123"))
	require.NoError(t, svc.Subscribe(context.Background(), 1, " 123 "))

	assert.Len(t, repo.rows, 1)
	assert.Equal(t, "123", repo.rows[1])
}

func TestSubscribe_Overwrites(t *testing.T) {
	repo := &memoryRepo{rows: map[userdomain.ID]string{}}
	svc := newTestService(repo)

	require.NoError(t, svc.Subscribe(context.Background(), 1, "123"))
	require.NoError(t, svc.Subscribe(context.Background(), 1, "@news"))

	sub, ok, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "@news", sub.ChatID)
}

func TestSubscribe_Validation(t *testing.T) {
	repo := &memoryRepo{rows: map[userdomain.ID]string{}}
	svc := newTestService(repo)

	assert.ErrorIs(t, svc.Subscribe(context.Background(), 1, ""), ErrChatIDRequired)
	assert.ErrorIs(t, svc.Subscribe(context.Background(), 1, "   "), ErrChatIDRequired)
	assert.ErrorIs(t, svc.Subscribe(context.Background(), 1, strings.Repeat("1", 65)), ErrChatIDTooLong)
	assert.Empty(t, repo.rows)
}

func TestSubscribe_StoreFailure(t *testing.T) {
	svc := newTestService(&memoryRepo{err: errors.New("down")})
	assert.ErrorIs(t, svc.Subscribe(context.Background(), 1, "123"), commonerrors.ErrInternalError)
}

func TestGet_Missing(t *testing.T) {
	svc := newTestService(&memoryRepo{rows: map[userdomain.ID]string{}})

	_, ok, err := svc.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, ok)
}
