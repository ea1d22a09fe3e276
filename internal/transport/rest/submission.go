package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/domain"
	"github.com/heartmarshall/storyflow-backend/internal/service/submission"
	"github.com/heartmarshall/storyflow-backend/internal/service/workflow"
)

type submissionService interface {
	CreateDraft(ctx context.Context, input submission.CreateInput) (*domain.Submission, error)
	UpdateDraft(ctx context.Context, id uuid.UUID, input submission.UpdateInput) (*domain.Submission, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	ListQueue(ctx context.Context, input submission.QueueInput) ([]domain.Submission, int, error)
	ListMine(ctx context.Context, limit, offset int) ([]domain.Submission, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type workflowService interface {
	ApplyTransition(ctx context.Context, input workflow.TransitionInput) (*workflow.TransitionResult, error)
	BulkSetStatus(ctx context.Context, input workflow.BulkStatusInput) (*workflow.BulkResult, error)
	History(ctx context.Context, submissionID uuid.UUID) ([]domain.Transition, error)
	AvailableActions(ctx context.Context, submissionID uuid.UUID) ([]workflow.AvailableAction, error)
}

// SubmissionHandler serves submission drafts and workflow endpoints.
type SubmissionHandler struct {
	drafts   submissionService
	workflow workflowService
	log      *slog.Logger
}

// NewSubmissionHandler creates a SubmissionHandler.
func NewSubmissionHandler(drafts submissionService, wf workflowService, logger *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{drafts: drafts, workflow: wf, log: logger.With("handler", "submission")}
}

type createSubmissionRequest struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Source  *string `json:"source"`
}

type updateSubmissionRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type transitionRequest struct {
	Action            string  `json:"action"`
	Feedback          *string `json:"feedback"`
	BookDecision      *string `json:"bookDecision"`
	PublicationFormat *string `json:"publicationFormat"`
	ExpectedVersion   *int    `json:"expectedVersion"`
}

type transitionResultResponse struct {
	Submission submissionResponse `json:"submission"`
	Transition transitionResponse `json:"transition"`
}

type bulkStatusRequest struct {
	SubmissionIDs []uuid.UUID `json:"submissionIds"`
	TargetStatus  string      `json:"targetStatus"`
	Comment       *string     `json:"comment"`
}

type bulkItemResponse struct {
	SubmissionID uuid.UUID `json:"submissionId"`
	OK           bool      `json:"ok"`
	Error        string    `json:"error,omitempty"`
}

type bulkStatusResponse struct {
	Target    string             `json:"target"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Items     []bulkItemResponse `json:"items"`
}

// Create handles POST /api/submissions.
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSubmissionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	sub, err := h.drafts.CreateDraft(r.Context(), submission.CreateInput{
		Title:   req.Title,
		Content: req.Content,
		Source:  req.Source,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSubmissionResponse(sub))
}

// Get handles GET /api/submissions/{id}.
func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	sub, err := h.drafts.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubmissionResponse(sub))
}

// Update handles PATCH /api/submissions/{id}.
func (h *SubmissionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req updateSubmissionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	sub, err := h.drafts.UpdateDraft(r.Context(), id, submission.UpdateInput{Title: req.Title, Content: req.Content})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubmissionResponse(sub))
}

// Delete handles DELETE /api/submissions/{id}.
func (h *SubmissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.drafts.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Queue handles GET /api/submissions/queue?status=&search=&limit=&offset=.
func (h *SubmissionHandler) Queue(w http.ResponseWriter, r *http.Request) {
	p, err := parsePage(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	in := submission.QueueInput{Search: r.URL.Query().Get("search"), Limit: p.limit, Offset: p.offset}
	if v := r.URL.Query().Get("status"); v != "" {
		in.Status = &v
	}

	subs, total, err := h.drafts.ListQueue(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[submissionResponse]{Items: toSubmissionResponses(subs), Total: total})
}

// Mine handles GET /api/submissions/mine.
func (h *SubmissionHandler) Mine(w http.ResponseWriter, r *http.Request) {
	p, err := parsePage(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	subs, total, err := h.drafts.ListMine(r.Context(), p.limit, p.offset)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[submissionResponse]{Items: toSubmissionResponses(subs), Total: total})
}

// Transition handles POST /api/submissions/{id}/transitions. An
// Idempotency-Key header makes retries of the same request safe.
func (h *SubmissionHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req transitionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.workflow.ApplyTransition(r.Context(), workflow.TransitionInput{
		SubmissionID:      id,
		Action:            req.Action,
		Feedback:          req.Feedback,
		BookDecision:      req.BookDecision,
		PublicationFormat: req.PublicationFormat,
		ExpectedVersion:   req.ExpectedVersion,
		IdempotencyKey:    r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, transitionResultResponse{
		Submission: toSubmissionResponse(res.Submission),
		Transition: toTransitionResponse(res.Transition),
	})
}

// History handles GET /api/submissions/{id}/transitions.
func (h *SubmissionHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	transitions, err := h.workflow.History(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	out := make([]transitionResponse, len(transitions))
	for i, t := range transitions {
		out[i] = toTransitionResponse(t)
	}
	writeJSON(w, http.StatusOK, out)
}

// Actions handles GET /api/submissions/{id}/actions.
func (h *SubmissionHandler) Actions(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	actions, err := h.workflow.AvailableActions(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAvailableActions(actions))
}

// BulkStatus handles POST /api/admin/submissions/status.
func (h *SubmissionHandler) BulkStatus(w http.ResponseWriter, r *http.Request) {
	var req bulkStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.workflow.BulkSetStatus(r.Context(), workflow.BulkStatusInput{
		SubmissionIDs: req.SubmissionIDs,
		TargetStatus:  req.TargetStatus,
		Comment:       req.Comment,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := bulkStatusResponse{
		Target:    string(res.Target),
		Succeeded: res.Succeeded,
		Failed:    res.Failed,
		Items:     make([]bulkItemResponse, len(res.Items)),
	}
	for i, item := range res.Items {
		resp.Items[i] = bulkItemResponse{SubmissionID: item.SubmissionID, OK: item.OK, Error: bulkItemError(item.Error)}
	}
	writeJSON(w, http.StatusOK, resp)
}

// bulkItemError reports client-facing reasons verbatim and hides the rest.
func bulkItemError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrNotFound):
		return "not found"
	case errors.Is(err, domain.ErrPreconditionFailed):
		return preconditionMessage(err)
	case errors.Is(err, domain.ErrValidation):
		return err.Error()
	default:
		return "internal error"
	}
}
