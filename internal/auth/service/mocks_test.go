package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/auth/session"
	commoncrypto "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/crypto"
	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
	userdomain "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/user/domain"
)

type mockUserRepo struct {
	createFunc         func(ctx context.Context, username, passwordHash string) (userdomain.ID, error)
	findByUsernameFunc func(ctx context.Context, username string) (userdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, username, passwordHash string) (userdomain.ID, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, username, passwordHash)
	}
	return 1, nil
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (userdomain.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return userdomain.User{}, commonerrors.ErrUserNotFound
}

type mockSessions struct {
	createFunc  func(ctx context.Context, userID userdomain.ID, username string) (session.Session, string, error)
	destroyFunc func(ctx context.Context, cookieValue string) error
}

func (m *mockSessions) Create(ctx context.Context, userID userdomain.ID, username string) (session.Session, string, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, username)
	}
	return session.Session{Token: "tok", UserID: userID, Username: username}, "cookie", nil
}

func (m *mockSessions) Destroy(ctx context.Context, cookieValue string) error {
	if m.destroyFunc != nil {
		return m.destroyFunc(ctx, cookieValue)
	}
	return nil
}

var errMalformedHash = errors.New("malformed hash")

// prefixHasher is a reversible stand-in for bcrypt that counts comparisons.
type prefixHasher struct {
	hashErr  error
	compares int
}

func (h *prefixHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + password, nil
}

func (h *prefixHasher) Compare(hash, password string) error {
	h.compares++
	if !strings.HasPrefix(hash, "hashed:") {
		return errMalformedHash
	}
	if strings.TrimPrefix(hash, "hashed:") != password {
		return commoncrypto.ErrMismatchedPassword
	}
	return nil
}
