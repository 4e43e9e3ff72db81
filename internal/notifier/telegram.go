package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/constants"
	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
)

type Sender interface {
	Send(ctx context.Context, chatID, text string) error
}

type TelegramSender struct {
	bot *tgbotapi.BotAPI
}

// NewTelegramSender makes no Bot API request; an unreachable API surfaces on
// Verify or on the first Send. An empty endpoint means the public Telegram API.
func NewTelegramSender(token, endpoint string, client *http.Client) (*TelegramSender, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("telegram bot token is empty")
	}
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: constants.NotifierSendTimeout}
	}

	bot := &tgbotapi.BotAPI{Token: token, Client: client, Buffer: 100}
	bot.SetAPIEndpoint(endpoint)
	return &TelegramSender{bot: bot}, nil
}

// Verify checks the token with getMe and records the bot identity.
func (s *TelegramSender) Verify(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	self, err := s.bot.GetMe()
	if err != nil {
		return fmt.Errorf("failed to verify telegram bot: %w", err)
	}
	s.bot.Self = self
	return nil
}

// BotName is empty until Verify succeeds.
func (s *TelegramSender) BotName() string {
	return s.bot.Self.UserName
}

// Send accepts a numeric chat id or an @channel name.
func (s *TelegramSender) Send(ctx context.Context, chatID, text string) error {
	msg, err := newMessage(chatID, text)
	if err != nil {
		return err
	}

	// tgbotapi requests are not cancellable once started.
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.bot.Send(msg); err != nil {
		return commonerrors.ErrDeliveryFailed.WithCause(fmt.Errorf("chat %s: %w", chatID, err))
	}
	return nil
}

func newMessage(chatID, text string) (tgbotapi.MessageConfig, error) {
	chatID = strings.TrimSpace(chatID)
	if strings.HasPrefix(chatID, "@") && len(chatID) > 1 {
		return tgbotapi.NewMessageToChannel(chatID, text), nil
	}

	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return tgbotapi.MessageConfig{}, fmt.Errorf("invalid chat id %q", chatID)
	}
	return tgbotapi.NewMessage(id, text), nil
}
