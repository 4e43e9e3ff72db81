package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/logger"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/subscription/domain"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/subscription/repository"
	userdomain "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/user/domain"
)

var (
	ErrChatIDRequired = commonerrors.NewValidationError("CHAT_ID_REQUIRED", "Chat ID is required")
	ErrChatIDTooLong  = commonerrors.NewValidationError("CHAT_ID_TOO_LONG", "Chat ID must be at most 64 characters")
)

type subscribeInput struct {
	ChatID string `validate:"required,max=64"`
}

type Service struct {
	repo     repository.Repository
	validate *validator.Validate
	log      *logger.Logger
}

func NewService(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		log:      log,
	}
}

// Subscribe creates or overwrites the caller's subscription; repeating it is a no-op.
func (s *Service) Subscribe(ctx context.Context, userID userdomain.ID, chatID string) error {
	input := subscribeInput{ChatID: strings.TrimSpace(chatID)}
	if err := s.validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 && fieldErrs[0].Tag() == "max" {
			return ErrChatIDTooLong
		}
		return ErrChatIDRequired
	}

	if err := s.repo.Upsert(ctx, userID, input.ChatID); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "subscribe_failed",
		}).Errorf("subscribe failed: %v", err)
		return commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": userID,
		"chat_id": input.ChatID,
		"action":  "subscribe_success",
	}).Info("telegram subscription saved")

	return nil
}

func (s *Service) Get(ctx context.Context, userID userdomain.ID) (domain.Subscription, bool, error) {
	sub, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, commonerrors.ErrSubscriptionNotFound) {
			return domain.Subscription{}, false, nil
		}
		return domain.Subscription{}, false, commonerrors.ErrInternalError.WithCause(err)
	}
	return sub, true, nil
}
