package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/auth/session"
	commoncrypto "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/crypto"
	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/logger"
	userdomain "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/user/domain"
	userrepo "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/user/repository"
)

type SessionIssuer interface {
	Create(ctx context.Context, userID userdomain.ID, username string) (session.Session, string, error)
	Destroy(ctx context.Context, cookieValue string) error
}

type AuthService struct {
	users    userrepo.Repository
	sessions SessionIssuer
	hasher   commoncrypto.PasswordHasher
	validate *validator.Validate
	log      *logger.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(
	users userrepo.Repository,
	sessions SessionIssuer,
	hasher commoncrypto.PasswordHasher,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		validate: newValidator(),
		log:      log,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	input.Username = strings.TrimSpace(input.Username)

	if err := s.validate.Struct(input); err != nil {
		err = translate(err)
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		recordRegistration("invalid")
		return err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		recordRegistration("error")
		return commonerrors.ErrInternalError.WithCause(err)
	}

	id, err := s.users.Create(ctx, input.Username, hash)
	if err != nil {
		if errors.Is(err, commonerrors.ErrUsernameAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_username_exists",
			}).Warn("register failed: already exists")
			recordRegistration("conflict")
			return ErrUsernameTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		recordRegistration("error")
		return commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"user_id":  id,
		"action":   "register_success",
	}).Info("register success")
	recordRegistration("success")

	return nil
}

// Login answers ErrInvalidCredentials for an unknown user and a wrong password alike,
// and runs one bcrypt comparison on both paths.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (session.Session, string, error) {
	input.Username = strings.TrimSpace(input.Username)

	if err := s.validate.Struct(input); err != nil {
		recordLogin("invalid")
		return session.Session{}, "", translate(err)
	}

	user, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		if !errors.Is(err, commonerrors.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "login_lookup_failed",
			}).Errorf("login failed: %v", err)
			recordLogin("error")
			return session.Session{}, "", commonerrors.ErrInternalError.WithCause(err)
		}

		_ = s.hasher.Compare(s.placeholderHash(), input.Password)
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_user_not_found",
		}).Warn("login failed: invalid credentials")
		recordLogin("invalid_credentials")
		return session.Session{}, "", ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		if !commoncrypto.IsMismatch(err) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"user_id":  user.ID,
				"action":   "login_hash_invalid",
			}).Errorf("login failed: stored hash unusable: %v", err)
			recordLogin("error")
			return session.Session{}, "", commonerrors.ErrInternalError.WithCause(err)
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"user_id":  user.ID,
			"action":   "login_password_mismatch",
		}).Warn("login failed: invalid credentials")
		recordLogin("invalid_credentials")
		return session.Session{}, "", ErrInvalidCredentials
	}

	sess, cookie, err := s.sessions.Create(ctx, user.ID, user.Username)
	if err != nil {
		recordLogin("error")
		return session.Session{}, "", err
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  user.ID,
		"action":   "login_success",
	}).Info("login success")
	recordLogin("success")

	return sess, cookie, nil
}

func (s *AuthService) Logout(ctx context.Context, cookieValue string) error {
	if err := s.sessions.Destroy(ctx, cookieValue); err != nil {
		s.log.WithFields(ctx, logger.Fields{"action": "logout_failed"}).Errorf("logout failed: %v", err)
		return err
	}
	return nil
}

func (s *AuthService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("placeholder-password")
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}
