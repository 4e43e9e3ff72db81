package session

import (
	"context"
	"sync"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/clock"
	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
)

// MemoryStore keeps sessions in process memory; they do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	clock    clock.Clock
}

func NewMemoryStore(clk clock.Clock) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		clock:    clk,
	}
}

func (s *MemoryStore) Save(_ context.Context, tokenHash string, sess Session) error {
	sess.Token = ""
	s.mu.Lock()
	s.sessions[tokenHash] = sess
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Find(_ context.Context, tokenHash string) (Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[tokenHash]
	s.mu.RUnlock()
	if !ok {
		return Session{}, commonerrors.ErrSessionNotFound
	}
	return sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	delete(s.sessions, tokenHash)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context) (int64, error) {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for hash, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, hash)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
