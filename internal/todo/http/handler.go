package http

import (
	"context"
	"net/http"
	"time"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/auth/session"
	commonhttp "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/http"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/logger"
	subdomain "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/subscription/domain"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/todo/domain"
	userdomain "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/user/domain"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/web"
)

type ItemService interface {
	Add(ctx context.Context, userID userdomain.ID, text string) (domain.ID, error)
	List(ctx context.Context, userID userdomain.ID) ([]domain.Item, error)
	Update(ctx context.Context, userID userdomain.ID, itemID domain.ID, text string) error
	Delete(ctx context.Context, userID userdomain.ID, itemID domain.ID) error
}

type SubscriptionReader interface {
	Get(ctx context.Context, userID userdomain.ID) (subdomain.Subscription, bool, error)
}

type Handler struct {
	items         ItemService
	subscriptions SubscriptionReader
	sessions      *session.Manager
	pages         *web.Renderer
	errHandler    *commonhttp.ErrorHandler
	timeout       time.Duration
	log           *logger.Logger
}

func NewHandler(
	items ItemService,
	subscriptions SubscriptionReader,
	sessions *session.Manager,
	pages *web.Renderer,
	timeout time.Duration,
	log *logger.Logger,
) *Handler {
	return &Handler{
		items:         items,
		subscriptions: subscriptions,
		sessions:      sessions,
		pages:         pages,
		errHandler:    commonhttp.NewErrorHandler(log),
		timeout:       timeout,
		log:           log,
	}
}

func (h *Handler) Routes(mux *http.ServeMux) {
	withTimeout := commonhttp.WithTimeout(h.timeout)
	api := func(fn http.HandlerFunc) http.Handler {
		return h.sessions.RequireAPI(withTimeout(fn))
	}

	mux.Handle("GET /{$}", h.sessions.RequirePage(withTimeout(http.HandlerFunc(h.index))))
	mux.Handle("POST /add-item", api(h.addItem))
	mux.Handle("POST /update-item", api(h.updateItem))
	mux.Handle("POST /delete-item", api(h.deleteItem))
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	items, err := h.items.List(r.Context(), sess.UserID)
	if err != nil {
		http.Error(w, "Error loading page", http.StatusInternalServerError)
		return
	}

	page := web.IndexPage{Username: sess.Username, Items: items}

	sub, ok, err := h.subscriptions.Get(r.Context(), sess.UserID)
	if err != nil {
		// The list is still useful without the subscription panel.
		h.log.WithFields(r.Context(), logger.Fields{"user_id": sess.UserID}).Warnf("subscription lookup failed: %v", err)
	} else if ok {
		page.ChatID = sub.ChatID
		page.Subscribed = true
	}

	if err := h.pages.Render(w, http.StatusOK, web.PageIndex, page); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"page": web.PageIndex}).Errorf("render failed: %v", err)
		http.Error(w, "Error loading page", http.StatusInternalServerError)
	}
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	if err := commonhttp.ParseForm(r); err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}

	sess, _ := session.FromContext(r.Context())
	id, err := h.items.Add(r.Context(), sess.UserID, r.PostFormValue("text"))
	if err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteSuccess(w, commonhttp.SuccessResponse{ID: int64(id)})
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	if err := commonhttp.ParseForm(r); err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}

	// A malformed id reaches the service as 0 and fails validation there.
	id, _ := commonhttp.FormID(r, "id")

	sess, _ := session.FromContext(r.Context())
	if err := h.items.Update(r.Context(), sess.UserID, domain.ID(id), r.PostFormValue("text")); err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteSuccess(w, commonhttp.SuccessResponse{})
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	if err := commonhttp.ParseForm(r); err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}

	id, _ := commonhttp.FormID(r, "id")

	sess, _ := session.FromContext(r.Context())
	if err := h.items.Delete(r.Context(), sess.UserID, domain.ID(id)); err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteSuccess(w, commonhttp.SuccessResponse{})
}
