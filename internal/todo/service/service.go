package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/logger"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/todo/domain"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/todo/repository"
	userdomain "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/user/domain"
)

var (
	ErrEmptyText     = commonerrors.NewValidationError("EMPTY_ITEM_TEXT", "Item text cannot be empty")
	ErrInvalidItemID = commonerrors.NewValidationError("INVALID_ITEM_ID", "Invalid item ID")
)

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

func (s *Service) Add(ctx context.Context, userID userdomain.ID, text string) (domain.ID, error) {
	text, err := s.cleanText(text)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Insert(ctx, userID, text)
	if err != nil {
		return 0, s.storeError(ctx, "add_item", userID, 0, err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": userID,
		"item_id": id,
		"action":  "add_item",
	}).Debug("item added")

	return id, nil
}

func (s *Service) List(ctx context.Context, userID userdomain.ID) ([]domain.Item, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, s.storeError(ctx, "list_items", userID, 0, err)
	}
	return items, nil
}

// Update and Delete report ErrItemNotFound both for a missing item and for
// someone else's item.
func (s *Service) Update(ctx context.Context, userID userdomain.ID, itemID domain.ID, text string) error {
	if err := s.checkID(itemID); err != nil {
		return err
	}

	text, err := s.cleanText(text)
	if err != nil {
		return err
	}

	matched, err := s.repo.UpdateText(ctx, userID, itemID, text)
	if err != nil {
		return s.storeError(ctx, "update_item", userID, itemID, err)
	}
	if !matched {
		return commonerrors.ErrItemNotFound
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, userID userdomain.ID, itemID domain.ID) error {
	if err := s.checkID(itemID); err != nil {
		return err
	}

	matched, err := s.repo.Delete(ctx, userID, itemID)
	if err != nil {
		return s.storeError(ctx, "delete_item", userID, itemID, err)
	}
	if !matched {
		return commonerrors.ErrItemNotFound
	}
	return nil
}

func (s *Service) cleanText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if err := s.validate.Var(text, "required"); err != nil {
		return "", ErrEmptyText
	}
	return text, nil
}

func (s *Service) checkID(id domain.ID) error {
	if err := s.validate.Var(int64(id), "gt=0"); err != nil {
		return ErrInvalidItemID
	}
	return nil
}

func (s *Service) storeError(ctx context.Context, action string, userID userdomain.ID, itemID domain.ID, err error) error {
	fields := logger.Fields{
		"user_id": userID,
		"action":  action,
	}
	if itemID != 0 {
		fields["item_id"] = itemID
	}
	s.log.WithFields(ctx, fields).Errorf("%s failed: %v", action, err)
	return commonerrors.ErrInternalError.WithCause(err)
}
