package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/domain"
	"github.com/heartmarshall/storyflow-backend/internal/service/comment"
)

type commentService interface {
	Create(ctx context.Context, input comment.CreateInput) (*domain.Comment, error)
	Edit(ctx context.Context, id uuid.UUID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, submissionID uuid.UUID) ([]domain.Comment, error)
	Resolve(ctx context.Context, id uuid.UUID, resolved bool) (*domain.Comment, error)
}

// CommentHandler serves feedback threads.
type CommentHandler struct {
	svc commentService
	log *slog.Logger
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(svc commentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{svc: svc, log: logger.With("handler", "comment")}
}

type createCommentRequest struct {
	Content  string     `json:"content"`
	ParentID *uuid.UUID `json:"parentId"`
}

type editCommentRequest struct {
	Content string `json:"content"`
}

type resolveCommentRequest struct {
	Resolved *bool `json:"resolved"`
}

// List handles GET /api/submissions/{id}/comments.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	subID, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	threads, err := h.svc.List(r.Context(), subID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	out := make([]commentResponse, len(threads))
	for i := range threads {
		out[i] = toCommentResponse(&threads[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /api/submissions/{id}/comments.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	subID, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req createCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	c, err := h.svc.Create(r.Context(), comment.CreateInput{
		SubmissionID: subID,
		Content:      req.Content,
		ParentID:     req.ParentID,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentResponse(c))
}

// Edit handles PATCH /api/comments/{id}.
func (h *CommentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req editCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	c, err := h.svc.Edit(r.Context(), id, req.Content)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommentResponse(c))
}

// Delete handles DELETE /api/comments/{id}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Resolve handles POST /api/comments/{id}/resolve. The body may set
// "resolved": false to reopen; an empty body resolves.
func (h *CommentHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req resolveCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	resolved := req.Resolved == nil || *req.Resolved

	c, err := h.svc.Resolve(r.Context(), id, resolved)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommentResponse(c))
}
