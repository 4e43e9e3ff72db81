package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/clock"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/constants"
	commoncrypto "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/crypto"
	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/logger"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/observability/metrics"
	userdomain "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/user/domain"
)

type Manager struct {
	store Store
	codec *Codec
	ids   commoncrypto.TokenGenerator
	clock clock.Clock
	ttl   time.Duration
	log   *logger.Logger
}

func NewManager(
	store Store,
	codec *Codec,
	ids commoncrypto.TokenGenerator,
	clk clock.Clock,
	ttl time.Duration,
	log *logger.Logger,
) *Manager {
	if ttl <= 0 {
		ttl = constants.DefaultSessionTTL
	}
	return &Manager{
		store: store,
		codec: codec,
		ids:   ids,
		clock: clk,
		ttl:   ttl,
		log:   log,
	}
}

// Create starts a fixed-lifetime session and returns it with the signed cookie value.
func (m *Manager) Create(ctx context.Context, userID userdomain.ID, username string) (Session, string, error) {
	token, err := m.ids.NewToken()
	if err != nil {
		return Session{}, "", commonerrors.ErrInternalError.WithCause(err)
	}

	now := m.clock.Now()
	s := Session{
		Token:     token,
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.store.Save(ctx, commoncrypto.HashToken(token), s); err != nil {
		m.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "session_create",
		}).Errorf("failed to save session: %v", err)
		return Session{}, "", commonerrors.ErrInternalError.WithCause(err)
	}

	value, err := m.codec.Encode(s)
	if err != nil {
		return Session{}, "", commonerrors.ErrInternalError.WithCause(fmt.Errorf("sign session cookie: %w", err))
	}

	metrics.SessionsCreated.Inc()
	return s, value, nil
}

// Resolve maps a cookie value to a live session. Forged, expired and unknown
// cookies all yield ErrSessionNotFound; only store failures differ.
func (m *Manager) Resolve(ctx context.Context, cookieValue string) (Session, error) {
	if cookieValue == "" {
		return Session{}, commonerrors.ErrSessionNotFound
	}

	token, err := m.codec.Decode(cookieValue)
	if err != nil {
		metrics.SessionValidationsFailed.Inc()
		if m.log.ShouldLog(logger.DEBUG) {
			m.log.WithFields(ctx, logger.Fields{"action": "session_resolve"}).Debugf("rejected session cookie: %v", err)
		}
		return Session{}, commonerrors.ErrSessionNotFound
	}

	tokenHash := commoncrypto.HashToken(token)
	s, err := m.store.Find(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, commonerrors.ErrSessionNotFound) {
			return Session{}, err
		}
		return Session{}, commonerrors.ErrInternalError.WithCause(err)
	}

	if s.Expired(m.clock.Now()) {
		metrics.SessionsExpired.Inc()
		if err := m.store.Delete(ctx, tokenHash); err != nil {
			m.log.WithFields(ctx, logger.Fields{"action": "session_resolve"}).Warnf("failed to drop expired session: %v", err)
		}
		return Session{}, commonerrors.ErrSessionNotFound
	}

	s.Token = token
	return s, nil
}

// Destroy drops the session behind cookieValue. A cookie that does not verify
// has nothing server-side to drop and is not an error.
func (m *Manager) Destroy(ctx context.Context, cookieValue string) error {
	if cookieValue == "" {
		return nil
	}

	token, err := m.codec.Decode(cookieValue)
	if err != nil {
		return nil
	}

	if err := m.store.Delete(ctx, commoncrypto.HashToken(token)); err != nil {
		m.log.WithFields(ctx, logger.Fields{"action": "session_destroy"}).Errorf("failed to delete session: %v", err)
		return commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.SessionsDestroyed.Inc()
	return nil
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}
