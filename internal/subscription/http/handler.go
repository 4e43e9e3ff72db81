package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/auth/session"
	commonhttp "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/http"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/logger"
	userdomain "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/user/domain"
)

type Subscriber interface {
	Subscribe(ctx context.Context, userID userdomain.ID, chatID string) error
}

type Handler struct {
	svc        Subscriber
	sessions   *session.Manager
	errHandler *commonhttp.ErrorHandler
	timeout    time.Duration
}

func NewHandler(svc Subscriber, sessions *session.Manager, timeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{
		svc:        svc,
		sessions:   sessions,
		errHandler: commonhttp.NewErrorHandler(log),
		timeout:    timeout,
	}
}

func (h *Handler) Routes(mux *http.ServeMux) {
	mux.Handle("POST /subscribe-telegram",
		h.sessions.RequireAPI(commonhttp.WithTimeout(h.timeout)(http.HandlerFunc(h.subscribe))))
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	if err := commonhttp.ParseForm(r); err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}

	sess, _ := session.FromContext(r.Context())
	chatID := strings.TrimSpace(r.PostFormValue("chatId"))
	if err := h.svc.Subscribe(r.Context(), sess.UserID, chatID); err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteSuccess(w, commonhttp.SuccessResponse{
		Message: fmt.Sprintf("Telegram notifications enabled for chat %s", chatID),
	})
}
