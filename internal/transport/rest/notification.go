package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/auth"
	"github.com/heartmarshall/storyflow-backend/internal/service/notification"
)

type notificationService interface {
	List(ctx context.Context, in notification.ListInput) (*notification.Page, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, ids []uuid.UUID) (int, error)
	MarkUnread(ctx context.Context, ids []uuid.UUID) (int, error)
	MarkAllRead(ctx context.Context) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// liveStreamer holds an SSE connection open for one user.
type liveStreamer interface {
	ServeSSE(w http.ResponseWriter, r *http.Request, userID uuid.UUID)
}

// NotificationHandler serves the caller's inbox and live stream.
type NotificationHandler struct {
	svc    notificationService
	stream liveStreamer
	log    *slog.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(svc notificationService, stream liveStreamer, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{svc: svc, stream: stream, log: logger.With("handler", "notification")}
}

type notificationPageResponse struct {
	Items  []notificationResponse `json:"items"`
	Total  int                    `json:"total"`
	Unread int                    `json:"unread"`
}

type idsRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type countResponse struct {
	Count int `json:"count"`
}

// List handles GET /api/notifications?unreadOnly=&limit=&offset=.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := parsePage(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	unreadOnly, err := queryBool(r, "unreadOnly")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.List(r.Context(), notification.ListInput{UnreadOnly: unreadOnly, Limit: p.limit, Offset: p.offset})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := notificationPageResponse{
		Items:  make([]notificationResponse, len(res.Items)),
		Total:  res.Total,
		Unread: res.Unread,
	}
	for i, n := range res.Items {
		resp.Items[i] = toNotificationResponse(n)
	}
	writeJSON(w, http.StatusOK, resp)
}

// UnreadCount handles GET /api/notifications/unread-count.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.UnreadCount(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// MarkRead handles POST /api/notifications/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.changeRead(w, r, h.svc.MarkRead)
}

// MarkUnread handles POST /api/notifications/unread.
func (h *NotificationHandler) MarkUnread(w http.ResponseWriter, r *http.Request) {
	h.changeRead(w, r, h.svc.MarkUnread)
}

func (h *NotificationHandler) changeRead(w http.ResponseWriter, r *http.Request, apply func(context.Context, []uuid.UUID) (int, error)) {
	var req idsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	n, err := apply(r.Context(), req.IDs)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// MarkAllRead handles POST /api/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.MarkAllRead(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// Delete handles DELETE /api/notifications/{id}.
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stream handles GET /api/notifications/stream (text/event-stream).
func (h *NotificationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromCtx(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	h.stream.ServeSSE(w, r, actor.ID)
}
